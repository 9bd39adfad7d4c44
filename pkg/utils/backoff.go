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

package utils

import (
	"context"
	"time"
)

type BackoffConfig struct {
	BaseInterval  time.Duration `yaml:"base_interval,omitempty"`
	BackoffFactor float64       `yaml:"backoff_factor,omitempty"`
	MaxInterval   time.Duration `yaml:"max_interval,omitempty"`
	MaxAttempts   int           `yaml:"max_attempts,omitempty"`
}

var DefaultBackoffConfig = BackoffConfig{
	BaseInterval:  100 * time.Millisecond,
	BackoffFactor: 2,
	MaxInterval:   2 * time.Second,
	MaxAttempts:   5,
}

// Interval returns the wait before the given retry, attempt 1 being the first retry
func (c BackoffConfig) Interval(attempt int) time.Duration {
	if attempt < 1 {
		return 0
	}
	interval := c.BaseInterval
	for i := 1; i < attempt; i++ {
		interval = time.Duration(float64(interval) * c.BackoffFactor)
		if c.MaxInterval > 0 && interval > c.MaxInterval {
			return c.MaxInterval
		}
	}
	if c.MaxInterval > 0 && interval > c.MaxInterval {
		return c.MaxInterval
	}
	return interval
}

// Retry calls fn until it succeeds, attempts are exhausted or ctx is done. The last error is returned.
func Retry(ctx context.Context, c BackoffConfig, fn func(attempt int) error) error {
	attempts := c.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(c.Interval(attempt)):
			}
		}
		if err = fn(attempt); err == nil {
			return nil
		}
	}
	return err
}
