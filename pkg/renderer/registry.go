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
	"sync"

	"github.com/elliotchance/orderedmap/v2"

	"github.com/livekit/protocol/logger"

	"github.com/livekit/livekit-stage/pkg/audio"
	"github.com/livekit/livekit-stage/pkg/stage/types"
)

type handleKey struct {
	id   types.ParticipantID
	kind types.TrackKind
}

// Slot is a ready track the rendering layer should be playing
type Slot struct {
	ParticipantID types.ParticipantID
	Kind          types.TrackKind
	Track         types.Track
}

type RegistryParams struct {
	Factory PlayerFactory
	Audio   AudioOutput
	Config  Config
	Logger  logger.Logger
}

// Registry maps (participant, track kind) to render handles, in registration order.
// Volumes are remembered per participant so that handles created later start at the right level.
type Registry struct {
	params RegistryParams

	lock    sync.RWMutex
	handles *orderedmap.OrderedMap[handleKey, *TrackRenderer]
	volumes map[types.ParticipantID]float64
}

func NewRegistry(params RegistryParams) *Registry {
	if params.Logger == nil {
		params.Logger = logger.GetLogger()
	}
	return &Registry{
		params:  params,
		handles: orderedmap.NewOrderedMap[handleKey, *TrackRenderer](),
		volumes: make(map[types.ParticipantID]float64),
	}
}

// Register adds a handle, closing any handle it replaces
func (r *Registry) Register(h *TrackRenderer) {
	key := handleKey{id: h.ParticipantID(), kind: h.Kind()}

	r.lock.Lock()
	old, _ := r.handles.Get(key)
	r.handles.Set(key, h)
	volume, ok := r.volumes[key.id]
	r.lock.Unlock()

	if old != nil && old != h {
		old.Close()
	}
	if ok && key.kind.IsAudio() {
		h.SetVolume(volume)
	}
}

func (r *Registry) Unregister(id types.ParticipantID, kind types.TrackKind) {
	key := handleKey{id: id, kind: kind}

	r.lock.Lock()
	h, ok := r.handles.Get(key)
	if ok {
		r.handles.Delete(key)
	}
	r.lock.Unlock()

	if ok {
		h.Close()
	}
}

func (r *Registry) Get(id types.ParticipantID, kind types.TrackKind) (*TrackRenderer, bool) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	return r.handles.Get(handleKey{id: id, kind: kind})
}

func (r *Registry) Len() int {
	r.lock.RLock()
	defer r.lock.RUnlock()

	return r.handles.Len()
}

// Reconcile makes the registered handles match slots. New or replaced tracks are started.
func (r *Registry) Reconcile(ctx context.Context, slots []Slot) {
	wanted := make(map[handleKey]Slot, len(slots))
	for _, s := range slots {
		if s.Track == nil {
			continue
		}
		wanted[handleKey{id: s.ParticipantID, kind: s.Kind}] = s
	}

	r.lock.RLock()
	var stale []handleKey
	for el := r.handles.Front(); el != nil; el = el.Next() {
		if _, ok := wanted[el.Key]; !ok {
			stale = append(stale, el.Key)
		}
	}
	r.lock.RUnlock()

	for _, key := range stale {
		r.Unregister(key.id, key.kind)
	}

	for _, s := range slots {
		if s.Track == nil {
			continue
		}
		h, ok := r.Get(s.ParticipantID, s.Kind)
		if !ok {
			if r.params.Factory == nil {
				continue
			}
			h = NewTrackRenderer(TrackRendererParams{
				ParticipantID: s.ParticipantID,
				Kind:          s.Kind,
				Player:        r.params.Factory(s.ParticipantID, s.Kind),
				Audio:         r.params.Audio,
				Config:        r.params.Config,
				Logger:        r.params.Logger,
			})
			r.Register(h)
			h.StartMonitor()
		}

		changed, err := h.SetTrack(s.Track)
		if err != nil {
			r.params.Logger.Warnw("could not attach track", err, "participant", s.ParticipantID, "kind", s.Kind)
			continue
		}
		if changed {
			go func(h *TrackRenderer) {
				_ = h.EnsurePlaying(ctx)
			}(h)
		}
	}
}

// SetVolume sets the playback volume of a participant's audio handles and returns how many
// handles were updated
func (r *Registry) SetVolume(id types.ParticipantID, volume float64) int {
	r.lock.Lock()
	r.volumes[id] = volume
	var targets []*TrackRenderer
	for el := r.handles.Front(); el != nil; el = el.Next() {
		if el.Key.id == id && el.Key.kind.IsAudio() {
			targets = append(targets, el.Value)
		}
	}
	r.lock.Unlock()

	for _, h := range targets {
		h.SetVolume(volume)
	}
	return len(targets)
}

func (r *Registry) EnsurePlaying(ctx context.Context, id types.ParticipantID) {
	for _, h := range r.handlesFor(id) {
		go func(h *TrackRenderer) {
			_ = h.EnsurePlaying(ctx)
		}(h)
	}
}

func (r *Registry) Handles(id types.ParticipantID) []types.RenderHandle {
	handles := r.handlesFor(id)
	out := make([]types.RenderHandle, 0, len(handles))
	for _, h := range handles {
		out = append(out, h)
	}
	return out
}

func (r *Registry) handlesFor(id types.ParticipantID) []*TrackRenderer {
	r.lock.RLock()
	defer r.lock.RUnlock()

	var out []*TrackRenderer
	for el := r.handles.Front(); el != nil; el = el.Next() {
		if el.Key.id == id {
			out = append(out, el.Value)
		}
	}
	return out
}

// AudioStreams lists audio handles that have a track attached
func (r *Registry) AudioStreams() []audio.Stream {
	r.lock.RLock()
	defer r.lock.RUnlock()

	var out []audio.Stream
	for el := r.handles.Front(); el != nil; el = el.Next() {
		if el.Key.kind.IsAudio() && el.Value.Track() != nil {
			out = append(out, el.Value)
		}
	}
	return out
}

func (r *Registry) Forget(id types.ParticipantID) {
	for _, h := range r.handlesFor(id) {
		r.Unregister(h.ParticipantID(), h.Kind())
	}

	r.lock.Lock()
	delete(r.volumes, id)
	r.lock.Unlock()
}

func (r *Registry) Close() {
	r.lock.Lock()
	var all []*TrackRenderer
	for el := r.handles.Front(); el != nil; el = el.Next() {
		all = append(all, el.Value)
	}
	r.handles = orderedmap.NewOrderedMap[handleKey, *TrackRenderer]()
	r.lock.Unlock()

	for _, h := range all {
		h.Close()
	}
}

var (
	_ types.TrackRegistry = (*Registry)(nil)
	_ types.RenderHandle  = (*TrackRenderer)(nil)
	_ audio.StreamSource  = (*Registry)(nil)
	_ audio.Stream        = (*TrackRenderer)(nil)
)
