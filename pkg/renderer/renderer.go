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

package renderer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/frostbyte73/core"

	"github.com/livekit/protocol/logger"

	"github.com/livekit/livekit-stage/pkg/audio"
	"github.com/livekit/livekit-stage/pkg/stage/types"
	"github.com/livekit/livekit-stage/pkg/telemetry/prometheus"
	"github.com/livekit/livekit-stage/pkg/utils"
)

var (
	ErrNoTrack        = errors.New("no track attached")
	ErrRendererClosed = errors.New("renderer closed")
)

// Player is the playback element a track is rendered into
type Player interface {
	Attach(track types.Track) error
	Detach()
	Play(ctx context.Context) error
	Paused() bool
	SetVolume(volume float64)
}

type PlayerFactory func(id types.ParticipantID, kind types.TrackKind) Player

// AudioOutput is the part of the audio unlock helper renderers rely on
type AudioOutput interface {
	IsAffectedBrowser() bool
	EnsureRunning(ctx context.Context) error
	Connect(stream audio.Stream) error
}

type Config struct {
	Backoff         utils.BackoffConfig `yaml:"backoff,omitempty"`
	MonitorInterval time.Duration       `yaml:"monitor_interval,omitempty"`
}

var DefaultConfig = Config{
	Backoff:         utils.DefaultBackoffConfig,
	MonitorInterval: 2 * time.Second,
}

type TrackRendererParams struct {
	ParticipantID types.ParticipantID
	Kind          types.TrackKind
	Player        Player
	Audio         AudioOutput
	Config        Config
	Logger        logger.Logger
}

// TrackRenderer keeps one track playing in one player
type TrackRenderer struct {
	params TrackRendererParams

	lock   sync.Mutex
	track  types.Track
	volume float64

	closed core.Fuse
}

func NewTrackRenderer(params TrackRendererParams) *TrackRenderer {
	if params.Logger == nil {
		params.Logger = logger.GetLogger()
	}
	params.Logger = params.Logger.WithValues("participant", params.ParticipantID, "kind", params.Kind)
	return &TrackRenderer{
		params: params,
		volume: 1,
	}
}

func (r *TrackRenderer) ParticipantID() types.ParticipantID {
	return r.params.ParticipantID
}

func (r *TrackRenderer) Kind() types.TrackKind {
	return r.params.Kind
}

func (r *TrackRenderer) StreamID() string {
	return fmt.Sprintf("%s/%s", r.params.ParticipantID, r.params.Kind)
}

func (r *TrackRenderer) Track() types.Track {
	r.lock.Lock()
	defer r.lock.Unlock()

	return r.track
}

// SetTrack attaches track, detaching any previous one. Returns false when track is already attached.
func (r *TrackRenderer) SetTrack(track types.Track) (bool, error) {
	if r.closed.IsBroken() {
		return false, ErrRendererClosed
	}

	r.lock.Lock()
	defer r.lock.Unlock()

	if track != nil && types.SameTrack(r.track, track) {
		return false, nil
	}
	if r.track != nil {
		r.params.Player.Detach()
		r.track = nil
	}
	if track == nil {
		return true, nil
	}
	if err := r.params.Player.Attach(track); err != nil {
		return false, err
	}
	r.track = track
	r.params.Player.SetVolume(r.volume)
	return true, nil
}

func (r *TrackRenderer) RemoveTrack() {
	_, _ = r.SetTrack(nil)
}

func (r *TrackRenderer) SetVolume(volume float64) {
	volume = max(0, min(1, volume))

	r.lock.Lock()
	defer r.lock.Unlock()

	r.volume = volume
	if r.track != nil {
		r.params.Player.SetVolume(volume)
	}
}

func (r *TrackRenderer) Volume() float64 {
	r.lock.Lock()
	defer r.lock.Unlock()

	return r.volume
}

func (r *TrackRenderer) Paused() bool {
	return r.params.Player.Paused()
}

// EnsurePlaying starts playback, retrying with backoff while autoplay is refused
func (r *TrackRenderer) EnsurePlaying(ctx context.Context) error {
	if r.closed.IsBroken() {
		return ErrRendererClosed
	}
	if r.Track() == nil {
		return ErrNoTrack
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-r.closed.Watch():
			cancel()
		case <-ctx.Done():
		}
	}()

	if r.params.Kind.IsAudio() && r.params.Audio != nil && r.params.Audio.IsAffectedBrowser() {
		if err := r.params.Audio.EnsureRunning(ctx); err != nil {
			r.params.Logger.Debugw("audio output not running before play", "error", err)
		}
		if err := r.params.Audio.Connect(r); err != nil {
			r.params.Logger.Debugw("could not connect to audio output", "error", err)
		}
	}

	err := utils.Retry(ctx, r.params.Config.Backoff, func(attempt int) error {
		if r.Track() == nil {
			return ErrNoTrack
		}
		if attempt > 0 {
			r.params.Logger.Debugw("retrying playback", "attempt", attempt)
		}
		return r.params.Player.Play(ctx)
	})
	prometheus.RecordPlayback(string(r.params.Kind), err)
	if err != nil && !errors.Is(err, context.Canceled) {
		r.params.Logger.Warnw("playback did not start", err)
	}
	return err
}

// StartMonitor periodically restarts a paused audio player that still has a track
func (r *TrackRenderer) StartMonitor() {
	if !r.params.Kind.IsAudio() || r.params.Config.MonitorInterval <= 0 {
		return
	}
	go r.monitor()
}

func (r *TrackRenderer) monitor() {
	ticker := time.NewTicker(r.params.Config.MonitorInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.closed.Watch():
			return
		case <-ticker.C:
			if r.Track() == nil || !r.Paused() {
				continue
			}
			r.params.Logger.Debugw("audio paused unexpectedly, restarting")
			_ = r.EnsurePlaying(context.Background())
		}
	}
}

func (r *TrackRenderer) Close() {
	if r.closed.IsBroken() {
		return
	}
	r.RemoveTrack()
	r.closed.Break()
}
