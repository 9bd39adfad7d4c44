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

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/atomic"
)

const (
	stageNamespace string = "stage"

	statusSuccess = "success"
	statusFailure = "failure"
)

var (
	initialized atomic.Bool

	promEventCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: stageNamespace,
		Subsystem: "session",
		Name:      "events",
		Help:      "Call SDK events processed by the engine.",
	}, []string{"type"})
	promAppMessageCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: stageNamespace,
		Subsystem: "session",
		Name:      "app_messages",
		Help:      "Application messages received from peers, by outcome.",
	}, []string{"type", "status"})
	promCommandCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: stageNamespace,
		Subsystem: "session",
		Name:      "commands",
	}, []string{"command", "status"})
	promCommandDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: stageNamespace,
		Subsystem: "session",
		Name:      "command_duration_seconds",
		Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	}, []string{"command"})
	promParticipantCurrent = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: stageNamespace,
		Subsystem: "participant",
		Name:      "total",
	}, []string{"role"})
	promStreamState = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: stageNamespace,
		Subsystem: "broadcast",
		Name:      "active",
		Help:      "1 while the live stream or recording is on.",
	}, []string{"kind"})
	promShareRecoveries = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: stageNamespace,
		Subsystem: "session",
		Name:      "share_recoveries",
	})
	promPlaybackCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: stageNamespace,
		Subsystem: "renderer",
		Name:      "playback_attempts",
	}, []string{"kind", "status"})
	promAudioResumeCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: stageNamespace,
		Subsystem: "audio",
		Name:      "resumes",
	}, []string{"status"})
	promViewClients = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: stageNamespace,
		Subsystem: "view",
		Name:      "clients",
	})
)

// Init registers the collectors with the default registry. Recording works without it.
func Init() {
	if initialized.Swap(true) {
		return
	}

	prometheus.MustRegister(promEventCounter)
	prometheus.MustRegister(promAppMessageCounter)
	prometheus.MustRegister(promCommandCounter)
	prometheus.MustRegister(promCommandDuration)
	prometheus.MustRegister(promParticipantCurrent)
	prometheus.MustRegister(promStreamState)
	prometheus.MustRegister(promShareRecoveries)
	prometheus.MustRegister(promPlaybackCounter)
	prometheus.MustRegister(promAudioResumeCounter)
	prometheus.MustRegister(promViewClients)
	prometheus.MustRegister(promHostCPULoad)
	prometheus.MustRegister(promHostMemoryLoad)
	prometheus.MustRegister(promHostLoadAvg)
}

func RecordEvent(eventType string) {
	promEventCounter.WithLabelValues(eventType).Inc()
}

func RecordAppMessage(messageType string, status string) {
	promAppMessageCounter.WithLabelValues(messageType, status).Inc()
}

func RecordCommand(command string, err error, duration time.Duration) {
	promCommandCounter.WithLabelValues(command, status(err)).Inc()
	promCommandDuration.WithLabelValues(command).Observe(duration.Seconds())
}

func SetParticipants(stage int, backstage int) {
	promParticipantCurrent.WithLabelValues("stage").Set(float64(stage))
	promParticipantCurrent.WithLabelValues("backstage").Set(float64(backstage))
}

func SetStreamActive(kind string, active bool) {
	v := 0.0
	if active {
		v = 1
	}
	promStreamState.WithLabelValues(kind).Set(v)
}

func RecordShareRecovery() {
	promShareRecoveries.Inc()
}

func RecordPlayback(kind string, err error) {
	promPlaybackCounter.WithLabelValues(kind, status(err)).Inc()
}

func RecordAudioResume(err error) {
	promAudioResumeCounter.WithLabelValues(status(err)).Inc()
}

func AddViewClient() {
	promViewClients.Inc()
}

func SubViewClient() {
	promViewClients.Dec()
}

func status(err error) string {
	if err != nil {
		return statusFailure
	}
	return statusSuccess
}
