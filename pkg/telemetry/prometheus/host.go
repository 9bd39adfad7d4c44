// Copyright 2023 LiveKit, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package prometheus

import (
	"time"

	"github.com/frostbyte73/core"
	"github.com/mackerelio/go-osstat/memory"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/livekit/protocol/logger"
)

var (
	promHostCPULoad = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: stageNamespace,
		Subsystem: "host",
		Name:      "cpu_load",
		Help:      "Share of CPU time spent busy since the previous sample.",
	})
	promHostMemoryLoad = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: stageNamespace,
		Subsystem: "host",
		Name:      "memory_load",
	})
	promHostLoadAvg = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: stageNamespace,
		Subsystem: "host",
		Name:      "load_avg_1m",
	})
)

type cpuTimes struct {
	total uint64
	idle  uint64
}

type HostStats struct {
	CPULoad    float64
	MemoryLoad float64
	LoadAvg    float64
}

// cpuLoad is zero until two samples with progressing counters are available
func cpuLoad(prev, curr cpuTimes) float64 {
	if prev.total == 0 || curr.total <= prev.total || curr.idle < prev.idle {
		return 0
	}
	return 1 - float64(curr.idle-prev.idle)/float64(curr.total-prev.total)
}

type hostSampler struct {
	last cpuTimes
}

func (s *hostSampler) sample() (HostStats, error) {
	times, err := readCPUTimes()
	if err != nil {
		return HostStats{}, err
	}
	stats := HostStats{CPULoad: cpuLoad(s.last, times)}
	s.last = times

	// not available everywhere, keep the rest of the sample
	if mem, err := memory.Get(); err == nil && mem.Total != 0 {
		stats.MemoryLoad = float64(mem.Used) / float64(mem.Total)
	}
	if avg, err := readLoadAvg(); err == nil {
		stats.LoadAvg = avg
	}
	return stats, nil
}

// StartHostStats samples host load into the host gauges until stop is called
func StartHostStats(interval time.Duration) (stop func()) {
	var done core.Fuse
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		sampler := &hostSampler{}
		for {
			stats, err := sampler.sample()
			if err != nil {
				logger.Debugw("host stats unavailable", "error", err)
				return
			}
			promHostCPULoad.Set(stats.CPULoad)
			promHostMemoryLoad.Set(stats.MemoryLoad)
			promHostLoadAvg.Set(stats.LoadAvg)

			select {
			case <-done.Watch():
				return
			case <-ticker.C:
			}
		}
	}()
	return done.Break
}
