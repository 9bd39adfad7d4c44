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
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"
)

func TestDebouncer(t *testing.T) {
	t.Run("coalesces bursts", func(t *testing.T) {
		d := NewDebouncer(20 * time.Millisecond)
		var calls atomic.Int32
		for i := 0; i < 10; i++ {
			d.Schedule(func() { calls.Inc() })
		}
		require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)
		time.Sleep(50 * time.Millisecond)
		require.EqualValues(t, 1, calls.Load())
	})

	t.Run("cancel drops pending work", func(t *testing.T) {
		d := NewDebouncer(20 * time.Millisecond)
		var calls atomic.Int32
		d.Schedule(func() { calls.Inc() })
		d.Cancel()
		d.Schedule(func() { calls.Inc() })
		time.Sleep(80 * time.Millisecond)
		require.EqualValues(t, 0, calls.Load())
	})
}

func TestDeferredWork(t *testing.T) {
	t.Run("runs after delay", func(t *testing.T) {
		w := NewDeferredWork()
		var fired atomic.Bool
		w.After(10*time.Millisecond, func() { fired.Store(true) })
		require.Eventually(t, fired.Load, time.Second, 5*time.Millisecond)
		require.Equal(t, 0, w.Pending())
	})

	t.Run("token cancels one", func(t *testing.T) {
		w := NewDeferredWork()
		var a, b atomic.Bool
		ta := w.After(20*time.Millisecond, func() { a.Store(true) })
		w.After(20*time.Millisecond, func() { b.Store(true) })
		require.True(t, ta.Cancel())
		require.False(t, ta.Cancel())
		require.Eventually(t, b.Load, time.Second, 5*time.Millisecond)
		require.False(t, a.Load())
	})

	t.Run("close cancels all", func(t *testing.T) {
		w := NewDeferredWork()
		var calls atomic.Int32
		for i := 0; i < 5; i++ {
			w.After(20*time.Millisecond, func() { calls.Inc() })
		}
		require.Equal(t, 5, w.Pending())
		w.Close()
		w.After(time.Millisecond, func() { calls.Inc() })
		time.Sleep(60 * time.Millisecond)
		require.EqualValues(t, 0, calls.Load())
		require.Equal(t, 0, w.Pending())
	})
}

func TestBackoff(t *testing.T) {
	c := BackoffConfig{
		BaseInterval:  10 * time.Millisecond,
		BackoffFactor: 2,
		MaxInterval:   35 * time.Millisecond,
		MaxAttempts:   4,
	}
	require.Equal(t, time.Duration(0), c.Interval(0))
	require.Equal(t, 10*time.Millisecond, c.Interval(1))
	require.Equal(t, 20*time.Millisecond, c.Interval(2))
	require.Equal(t, 35*time.Millisecond, c.Interval(3))
	require.Equal(t, 35*time.Millisecond, c.Interval(10))

	t.Run("succeeds eventually", func(t *testing.T) {
		attempts := 0
		err := Retry(context.Background(), c, func(attempt int) error {
			attempts++
			if attempt < 2 {
				return errors.New("not yet")
			}
			return nil
		})
		require.NoError(t, err)
		require.Equal(t, 3, attempts)
	})

	t.Run("gives up", func(t *testing.T) {
		attempts := 0
		err := Retry(context.Background(), c, func(int) error {
			attempts++
			return errors.New("blocked")
		})
		require.EqualError(t, err, "blocked")
		require.Equal(t, 4, attempts)
	})

	t.Run("honours context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := Retry(ctx, c, func(int) error { return errors.New("blocked") })
		require.ErrorIs(t, err, context.Canceled)
	})
}
