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

package audio_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"

	"github.com/livekit/livekit-stage/pkg/audio"
	"github.com/livekit/livekit-stage/pkg/audio/audiofakes"
)

const (
	safariUA       = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/16.1 Safari/605.1.15"
	oldSafariUA    = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_6) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/14.1.2 Safari/605.1.15"
	mobileSafariUA = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1"
	chromeUA       = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

func TestClassifier(t *testing.T) {
	c, err := audio.NewClassifier(audio.DefaultConfig.AffectedBrowsers)
	require.NoError(t, err)

	require.True(t, c.IsAffected(safariUA))
	require.True(t, c.IsAffected(mobileSafariUA))
	require.False(t, c.IsAffected(chromeUA))
	require.False(t, c.IsAffected(""))

	b := c.Parse(safariUA)
	require.Equal(t, "Safari", b.Family)
	require.Equal(t, "16.1", b.Version)

	t.Run("version constraints", func(t *testing.T) {
		c, err := audio.NewClassifier([]audio.BrowserRule{{Family: "Safari", Versions: "< 15"}})
		require.NoError(t, err)
		require.True(t, c.IsAffected(oldSafariUA))
		require.False(t, c.IsAffected(safariUA))
		require.False(t, c.IsAffected(mobileSafariUA))
	})

	t.Run("invalid constraint", func(t *testing.T) {
		_, err := audio.NewClassifier([]audio.BrowserRule{{Family: "Safari", Versions: "around 15"}})
		require.Error(t, err)
	})
}

type testStream struct {
	id     string
	paused atomic.Bool
	plays  atomic.Int32
}

func (s *testStream) StreamID() string { return s.id }
func (s *testStream) Paused() bool     { return s.paused.Load() }
func (s *testStream) EnsurePlaying(context.Context) error {
	s.plays.Inc()
	s.paused.Store(false)
	return nil
}

type harness struct {
	unlocker *audio.Unlocker
	contexts []*audiofakes.FakeContext
	gestures *audiofakes.FakeGestureSource
	streams  *audiofakes.FakeStreamSource

	lock    sync.Mutex
	gesture func()
}

func newHarness(t *testing.T, userAgent string, state audio.State) *harness {
	h := &harness{
		gestures: &audiofakes.FakeGestureSource{},
		streams:  &audiofakes.FakeStreamSource{},
	}
	h.gestures.OnFirstGestureCalls(func(fn func()) func() {
		h.lock.Lock()
		h.gesture = fn
		h.lock.Unlock()
		return func() {}
	})

	config := audio.DefaultConfig
	config.ReconnectDelay = 5 * time.Millisecond
	config.PollInterval = 10 * time.Millisecond

	u, err := audio.NewUnlocker(audio.UnlockerParams{
		Config:    config,
		UserAgent: userAgent,
		Factory: func() (audio.Context, error) {
			c := &audiofakes.FakeContext{}
			c.StateReturns(state)
			c.ResumeCalls(func(context.Context) error {
				c.StateReturns(audio.StateRunning)
				return nil
			})
			h.lock.Lock()
			h.contexts = append(h.contexts, c)
			h.lock.Unlock()
			return c, nil
		},
		Gestures: h.gestures,
	})
	require.NoError(t, err)
	h.unlocker = u
	t.Cleanup(u.Close)
	return h
}

func (h *harness) context(i int) *audiofakes.FakeContext {
	h.lock.Lock()
	defer h.lock.Unlock()
	return h.contexts[i]
}

func (h *harness) numContexts() int {
	h.lock.Lock()
	defer h.lock.Unlock()
	return len(h.contexts)
}

func TestUnlockerUnaffected(t *testing.T) {
	h := newHarness(t, chromeUA, audio.StateSuspended)
	require.False(t, h.unlocker.IsAffectedBrowser())

	h.unlocker.Init(h.streams)
	require.NoError(t, h.unlocker.EnsureRunning(context.Background()))
	require.NoError(t, h.unlocker.Connect(&testStream{id: "s"}))
	h.unlocker.ForceReconnectAll(context.Background())

	require.Equal(t, 0, h.numContexts())
	require.Equal(t, 0, h.gestures.OnFirstGestureCallCount())
	require.Equal(t, 0, h.streams.AudioStreamsCallCount())
}

func TestUnlockerFirstGesture(t *testing.T) {
	h := newHarness(t, safariUA, audio.StateSuspended)
	require.True(t, h.unlocker.IsAffectedBrowser())

	stream := &testStream{id: "p1/audio"}
	stream.paused.Store(true)
	h.streams.AudioStreamsReturns([]audio.Stream{stream})

	h.unlocker.Init(h.streams)
	require.Equal(t, 1, h.numContexts())
	require.Equal(t, 1, h.gestures.OnFirstGestureCallCount())

	h.lock.Lock()
	gesture := h.gesture
	h.lock.Unlock()
	gesture()
	gesture()

	ctx := h.context(0)
	require.Equal(t, 1, ctx.ResumeCallCount())
	require.True(t, h.unlocker.HasUserInteracted())

	// reconnect follows the resume
	require.Eventually(t, func() bool {
		return ctx.ConnectCallCount() == 1 && stream.plays.Load() == 1
	}, time.Second, 5*time.Millisecond)
	require.Equal(t, stream, ctx.ConnectArgsForCall(0))
}

func TestUnlockerReinitializesClosedContext(t *testing.T) {
	h := newHarness(t, mobileSafariUA, audio.StateClosed)
	h.unlocker.Init(h.streams)
	require.Equal(t, 1, h.numContexts())

	require.NoError(t, h.unlocker.EnsureRunning(context.Background()))
	require.Equal(t, 2, h.numContexts())
	require.Equal(t, 0, h.context(1).ResumeCallCount())
}

func TestUnlockerResumeFailure(t *testing.T) {
	h := newHarness(t, safariUA, audio.StateSuspended)
	h.unlocker.Init(h.streams)
	h.context(0).ResumeReturns(errors.New("not allowed"))

	err := h.unlocker.EnsureRunning(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "not allowed")
}

func TestUnlockerMonitoring(t *testing.T) {
	h := newHarness(t, safariUA, audio.StateSuspended)
	h.unlocker.Init(h.streams)
	h.unlocker.StartMonitoring()
	h.unlocker.StartMonitoring()

	require.Eventually(t, func() bool {
		return h.context(0).ResumeCallCount() == 1
	}, time.Second, 5*time.Millisecond)

	// suspended again later on
	h.context(0).StateReturns(audio.StateSuspended)
	require.Eventually(t, func() bool {
		return h.context(0).ResumeCallCount() == 2
	}, time.Second, 5*time.Millisecond)

	h.unlocker.StopMonitoring()
	time.Sleep(30 * time.Millisecond)
	h.context(0).StateReturns(audio.StateSuspended)
	time.Sleep(50 * time.Millisecond)
	require.Equal(t, 2, h.context(0).ResumeCallCount())
}

func TestUnlockerClose(t *testing.T) {
	h := newHarness(t, safariUA, audio.StateRunning)
	h.unlocker.Init(h.streams)
	h.unlocker.Close()

	require.Equal(t, 1, h.context(0).CloseCallCount())
	require.ErrorIs(t, h.unlocker.EnsureRunning(context.Background()), audio.ErrNoContext)
}
