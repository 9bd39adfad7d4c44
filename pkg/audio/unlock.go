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

package audio

import (
	"context"
	"sync"
	"time"

	"github.com/frostbyte73/core"
	"github.com/pkg/errors"
	"go.uber.org/atomic"
	"golang.org/x/sync/singleflight"

	"github.com/livekit/protocol/logger"

	"github.com/livekit/livekit-stage/pkg/telemetry/prometheus"
	"github.com/livekit/livekit-stage/pkg/utils"
)

var ErrNoContext = errors.New("audio context unavailable")

type UnlockerParams struct {
	Config    Config
	UserAgent string
	Factory   ContextFactory
	Gestures  GestureSource
	Logger    logger.Logger
}

// Unlocker owns the audio output context. Other components only request operations on it.
// Every operation is a no-op on browsers that are not affected.
type Unlocker struct {
	params   UnlockerParams
	affected bool

	lock          sync.Mutex
	audioCtx      Context
	streams       StreamSource
	cancelGesture func()
	pollStop      *core.Fuse

	interacted atomic.Bool
	ensure     singleflight.Group
	deferred   *utils.DeferredWork
	closed     core.Fuse
}

func NewUnlocker(params UnlockerParams) (*Unlocker, error) {
	if params.Logger == nil {
		params.Logger = logger.GetLogger()
	}
	if params.Config.PollInterval <= 0 {
		params.Config.PollInterval = DefaultConfig.PollInterval
	}
	classifier, err := NewClassifier(params.Config.AffectedBrowsers)
	if err != nil {
		return nil, err
	}

	return &Unlocker{
		params:   params,
		affected: classifier.IsAffected(params.UserAgent),
		deferred: utils.NewDeferredWork(),
	}, nil
}

func (u *Unlocker) IsAffectedBrowser() bool {
	return u.affected
}

func (u *Unlocker) HasUserInteracted() bool {
	return u.interacted.Load()
}

// Init creates the audio context and arms the first-gesture listener
func (u *Unlocker) Init(streams StreamSource) {
	if !u.affected || u.closed.IsBroken() {
		return
	}

	u.lock.Lock()
	u.streams = streams
	if u.audioCtx == nil {
		u.audioCtx = u.newContextLocked()
	}
	if u.cancelGesture == nil && u.params.Gestures != nil {
		u.cancelGesture = u.params.Gestures.OnFirstGesture(u.onFirstGesture)
	}
	u.lock.Unlock()
}

func (u *Unlocker) onFirstGesture() {
	if u.closed.IsBroken() || u.interacted.Swap(true) {
		return
	}
	u.params.Logger.Debugw("user interaction detected, resuming audio output")
	if err := u.EnsureRunning(context.Background()); err != nil {
		u.params.Logger.Warnw("could not resume audio output after interaction", err)
	}
}

// EnsureRunning resumes a suspended context and replaces one that was closed or lost.
// Concurrent callers share one attempt.
func (u *Unlocker) EnsureRunning(ctx context.Context) error {
	if !u.affected {
		return nil
	}
	if u.closed.IsBroken() {
		return ErrNoContext
	}

	_, err, _ := u.ensure.Do("ensure", func() (interface{}, error) {
		return nil, u.ensureRunning(ctx)
	})
	return err
}

func (u *Unlocker) ensureRunning(ctx context.Context) error {
	u.lock.Lock()
	audioCtx := u.audioCtx
	if audioCtx == nil || audioCtx.State() == StateClosed {
		u.params.Logger.Warnw("audio output context lost, reinitializing", nil)
		audioCtx = u.newContextLocked()
		u.audioCtx = audioCtx
	}
	u.lock.Unlock()

	if audioCtx == nil {
		return ErrNoContext
	}

	switch audioCtx.State() {
	case StateSuspended, StateInterrupted:
		err := audioCtx.Resume(ctx)
		prometheus.RecordAudioResume(err)
		if err != nil {
			return errors.Wrap(err, "resume audio output")
		}
		u.params.Logger.Infow("audio output resumed")
		u.deferred.After(u.params.Config.ReconnectDelay, func() {
			u.ForceReconnectAll(context.Background())
		})
	}
	return nil
}

func (u *Unlocker) newContextLocked() Context {
	if u.params.Factory == nil {
		return nil
	}
	audioCtx, err := u.params.Factory()
	if err != nil {
		u.params.Logger.Warnw("could not create audio output context", err)
		return nil
	}
	return audioCtx
}

// Connect routes a stream through the shared context
func (u *Unlocker) Connect(stream Stream) error {
	if !u.affected || stream == nil {
		return nil
	}

	u.lock.Lock()
	audioCtx := u.audioCtx
	u.lock.Unlock()
	if audioCtx == nil {
		return ErrNoContext
	}

	if audioCtx.State() != StateRunning {
		go func() {
			if err := u.EnsureRunning(context.Background()); err != nil {
				u.params.Logger.Debugw("audio output not running", "error", err)
			}
		}()
	}
	if err := audioCtx.Connect(stream); err != nil {
		return errors.Wrapf(err, "connect stream %s", stream.StreamID())
	}
	return nil
}

// ForceReconnectAll reconnects every rendered audio stream and restarts paused ones once the
// user has interacted with the page
func (u *Unlocker) ForceReconnectAll(ctx context.Context) {
	if !u.affected || u.closed.IsBroken() {
		return
	}

	u.lock.Lock()
	streams := u.streams
	u.lock.Unlock()
	if streams == nil {
		return
	}

	for _, s := range streams.AudioStreams() {
		if err := u.Connect(s); err != nil {
			u.params.Logger.Warnw("could not reconnect audio stream", err, "stream", s.StreamID())
			continue
		}
		if s.Paused() && u.interacted.Load() {
			go func(s Stream) {
				_ = s.EnsurePlaying(ctx)
			}(s)
		}
	}
}

// StartMonitoring polls the context while a call is active
func (u *Unlocker) StartMonitoring() {
	if !u.affected || u.closed.IsBroken() {
		return
	}

	u.lock.Lock()
	if u.pollStop != nil {
		u.lock.Unlock()
		return
	}
	stop := &core.Fuse{}
	u.pollStop = stop
	u.lock.Unlock()

	go u.poll(stop)
}

func (u *Unlocker) StopMonitoring() {
	u.lock.Lock()
	stop := u.pollStop
	u.pollStop = nil
	u.lock.Unlock()

	if stop != nil {
		stop.Break()
	}
}

func (u *Unlocker) poll(stop *core.Fuse) {
	ticker := time.NewTicker(u.params.Config.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop.Watch():
			return
		case <-u.closed.Watch():
			return
		case <-ticker.C:
			u.lock.Lock()
			audioCtx := u.audioCtx
			u.lock.Unlock()

			if audioCtx != nil && audioCtx.State() == StateRunning {
				continue
			}
			if err := u.EnsureRunning(context.Background()); err != nil {
				u.params.Logger.Debugw("audio output still not running", "error", err)
			}
		}
	}
}

func (u *Unlocker) Close() {
	if u.closed.IsBroken() {
		return
	}
	u.closed.Break()
	u.StopMonitoring()
	u.deferred.Close()

	u.lock.Lock()
	cancel := u.cancelGesture
	u.cancelGesture = nil
	audioCtx := u.audioCtx
	u.audioCtx = nil
	u.lock.Unlock()

	if cancel != nil {
		cancel()
	}
	if audioCtx != nil {
		if err := audioCtx.Close(); err != nil {
			u.params.Logger.Debugw("could not close audio output context", "error", err)
		}
	}
}
