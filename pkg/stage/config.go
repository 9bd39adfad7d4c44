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

package stage

import (
	"time"

	"github.com/livekit/livekit-stage/pkg/layout"
	"github.com/livekit/livekit-stage/pkg/stage/composition"
)

type Config struct {
	ErrorDisplay           time.Duration `yaml:"error_display,omitempty"`
	LiveErrorDisplay       time.Duration `yaml:"live_error_display,omitempty"`
	FatalGrace             time.Duration `yaml:"fatal_grace,omitempty"`
	LayoutDebounce         time.Duration `yaml:"layout_debounce,omitempty"`
	VolumeDebounce         time.Duration `yaml:"volume_debounce,omitempty"`
	CommandTimeout         time.Duration `yaml:"command_timeout,omitempty"`
	SubscriptionRetryDelay time.Duration `yaml:"subscription_retry_delay,omitempty"`
	HealthCheckInterval    time.Duration `yaml:"health_check_interval,omitempty"`
	HealthCheckThreshold   int           `yaml:"health_check_threshold,omitempty"`
	MessageCacheSize       int           `yaml:"message_cache_size,omitempty"`
	CommandWorkers         int           `yaml:"command_workers,omitempty"`

	// filled from the broadcast and layout sections
	Endpoints   []string           `yaml:"-"`
	Composition composition.Config `yaml:"-"`
	Layout      layout.Config      `yaml:"-"`
}

var DefaultConfig = Config{
	ErrorDisplay:           3 * time.Second,
	LiveErrorDisplay:       5 * time.Second,
	FatalGrace:             3 * time.Second,
	LayoutDebounce:         100 * time.Millisecond,
	VolumeDebounce:         100 * time.Millisecond,
	CommandTimeout:         10 * time.Second,
	SubscriptionRetryDelay: time.Second,
	HealthCheckInterval:    5 * time.Second,
	HealthCheckThreshold:   3,
	MessageCacheSize:       256,
	CommandWorkers:         4,
	Composition:            composition.DefaultConfig,
	Layout:                 layout.DefaultConfig,
}

// withDefaults fills zero values so a partially populated config is usable
func (c Config) withDefaults() Config {
	d := DefaultConfig
	if c.ErrorDisplay <= 0 {
		c.ErrorDisplay = d.ErrorDisplay
	}
	if c.LiveErrorDisplay <= 0 {
		c.LiveErrorDisplay = d.LiveErrorDisplay
	}
	if c.FatalGrace <= 0 {
		c.FatalGrace = d.FatalGrace
	}
	if c.LayoutDebounce <= 0 {
		c.LayoutDebounce = d.LayoutDebounce
	}
	if c.VolumeDebounce <= 0 {
		c.VolumeDebounce = d.VolumeDebounce
	}
	if c.CommandTimeout <= 0 {
		c.CommandTimeout = d.CommandTimeout
	}
	if c.SubscriptionRetryDelay <= 0 {
		c.SubscriptionRetryDelay = d.SubscriptionRetryDelay
	}
	if c.HealthCheckInterval <= 0 {
		c.HealthCheckInterval = d.HealthCheckInterval
	}
	if c.HealthCheckThreshold <= 0 {
		c.HealthCheckThreshold = d.HealthCheckThreshold
	}
	if c.MessageCacheSize <= 0 {
		c.MessageCacheSize = d.MessageCacheSize
	}
	if c.CommandWorkers <= 0 {
		c.CommandWorkers = d.CommandWorkers
	}
	if c.Composition.MaxSidebarTiles == 0 {
		c.Composition = d.Composition
	}
	if c.Layout.AspectRatio == 0 {
		c.Layout = d.Layout
	}
	return c
}
