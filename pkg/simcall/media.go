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

package simcall

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/pion/webrtc/v3"

	"github.com/livekit/livekit-stage/pkg/audio"
	"github.com/livekit/livekit-stage/pkg/renderer"
	"github.com/livekit/livekit-stage/pkg/stage/types"
)

// Track is a media track handle with no media behind it
type Track struct {
	id   string
	kind webrtc.RTPCodecType
}

func NewTrack(kind types.TrackKind) *Track {
	return &Track{
		id:   "TR_" + uuid.NewString(),
		kind: kind.CodecType(),
	}
}

func (t *Track) ID() string {
	return t.id
}

func (t *Track) Kind() webrtc.RTPCodecType {
	return t.kind
}

// Player renders nothing but tracks playback state like a media element would
type Player struct {
	lock    sync.Mutex
	track   types.Track
	playing bool
	volume  float64
}

var _ renderer.Player = (*Player)(nil)

func NewPlayer(types.ParticipantID, types.TrackKind) renderer.Player {
	return &Player{volume: 1}
}

func (p *Player) Attach(track types.Track) error {
	p.lock.Lock()
	defer p.lock.Unlock()
	p.track = track
	p.playing = false
	return nil
}

func (p *Player) Detach() {
	p.lock.Lock()
	defer p.lock.Unlock()
	p.track = nil
	p.playing = false
}

func (p *Player) Play(context.Context) error {
	p.lock.Lock()
	defer p.lock.Unlock()
	if p.track == nil {
		return renderer.ErrNoTrack
	}
	p.playing = true
	return nil
}

func (p *Player) Paused() bool {
	p.lock.Lock()
	defer p.lock.Unlock()
	return !p.playing
}

func (p *Player) SetVolume(volume float64) {
	p.lock.Lock()
	defer p.lock.Unlock()
	p.volume = volume
}

func (p *Player) Volume() float64 {
	p.lock.Lock()
	defer p.lock.Unlock()
	return p.volume
}

// AudioContext starts suspended and resumes on request
type AudioContext struct {
	lock      sync.Mutex
	state     audio.State
	connected map[string]bool
}

var _ audio.Context = (*AudioContext)(nil)

func NewAudioContext() (audio.Context, error) {
	return &AudioContext{
		state:     audio.StateSuspended,
		connected: make(map[string]bool),
	}, nil
}

func (c *AudioContext) State() audio.State {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.state
}

func (c *AudioContext) Resume(context.Context) error {
	c.lock.Lock()
	defer c.lock.Unlock()
	if c.state == audio.StateClosed {
		return audio.ErrNoContext
	}
	c.state = audio.StateRunning
	return nil
}

func (c *AudioContext) Connect(stream audio.Stream) error {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.connected[stream.StreamID()] = true
	return nil
}

func (c *AudioContext) Close() error {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.state = audio.StateClosed
	return nil
}

// Gestures lets a view client stand in for the user's first interaction
type Gestures struct {
	lock      sync.Mutex
	listeners map[int]func()
	nextID    int
	fired     bool
}

var _ audio.GestureSource = (*Gestures)(nil)

func NewGestures() *Gestures {
	return &Gestures{listeners: make(map[int]func())}
}

func (g *Gestures) OnFirstGesture(fn func()) func() {
	g.lock.Lock()
	defer g.lock.Unlock()
	if g.fired {
		go fn()
		return func() {}
	}
	id := g.nextID
	g.nextID++
	g.listeners[id] = fn
	return func() {
		g.lock.Lock()
		defer g.lock.Unlock()
		delete(g.listeners, id)
	}
}

// Fire reports a user interaction
func (g *Gestures) Fire() {
	g.lock.Lock()
	if g.fired {
		g.lock.Unlock()
		return
	}
	g.fired = true
	listeners := g.listeners
	g.listeners = make(map[int]func())
	g.lock.Unlock()

	for _, fn := range listeners {
		fn()
	}
}
