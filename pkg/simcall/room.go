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
	"maps"
	"sort"
	"sync"

	"github.com/livekit/protocol/logger"

	"github.com/livekit/livekit-stage/pkg/stage/types"
	"github.com/livekit/livekit-stage/pkg/utils"
)

// Room is an in-process call. Sessions joined to it see each other's commands as SDK events, and
// scripted remote participants can be added without a session behind them.
type Room struct {
	logger logger.Logger

	lock      sync.Mutex
	sessions  map[types.ParticipantID]*Session
	remotes   map[types.ParticipantID]*types.ParticipantInfo
	live      bool
	recording bool
	// composition last sent by any session
	liveLayout      *types.CompositionRequest
	recordingLayout *types.CompositionRequest
	outbox          []Envelope
}

// Envelope is an app message addressed to a scripted participant
type Envelope struct {
	From types.ParticipantID
	To   types.ParticipantID
	Data []byte
}

func NewRoom(l logger.Logger) *Room {
	if l == nil {
		l = logger.GetLogger()
	}
	return &Room{
		logger:   l,
		sessions: make(map[types.ParticipantID]*Session),
		remotes:  make(map[types.ParticipantID]*types.ParticipantInfo),
	}
}

type delivery struct {
	to  *Session
	evt types.Event
}

func deliver(ds []delivery) {
	for _, d := range ds {
		d.to.emit(d.evt)
	}
}

// broadcastLocked builds deliveries of evt to every joined session, optionally skipping one
func (r *Room) broadcastLocked(evt func(to *Session) types.Event, skip types.ParticipantID) []delivery {
	ids := utils.SortedKeys(r.sessions)
	ds := make([]delivery, 0, len(ids))
	for _, id := range ids {
		if id == skip {
			continue
		}
		s := r.sessions[id]
		ds = append(ds, delivery{to: s, evt: evt(s)})
	}
	return ds
}

// rosterLocked is the participant list as seen by viewer
func (r *Room) rosterLocked(viewer types.ParticipantID) []types.ParticipantInfo {
	var out []types.ParticipantInfo
	for _, id := range utils.SortedKeys(r.sessions) {
		out = append(out, r.sessions[id].infoFor(viewer))
	}
	for _, id := range utils.SortedKeys(r.remotes) {
		out = append(out, cloneInfo(*r.remotes[id], false))
	}
	return out
}

func (r *Room) join(s *Session) {
	r.lock.Lock()
	r.sessions[s.id] = s
	roster := r.rosterLocked(s.id)
	ds := []delivery{{to: s, evt: types.JoinedEvent{Participants: roster}}}
	if r.live {
		ds = append(ds, delivery{to: s, evt: types.StreamingEvent{Kind: types.EventLiveStreamingStarted}})
	}
	if r.recording {
		ds = append(ds, delivery{to: s, evt: types.StreamingEvent{Kind: types.EventRecordingStarted}})
	}
	ds = append(ds, r.broadcastLocked(func(to *Session) types.Event {
		return types.ParticipantEvent{Kind: types.EventParticipantJoined, Participant: s.infoFor(to.id)}
	}, s.id)...)
	r.lock.Unlock()

	r.logger.Debugw("session joined", "participant", s.id)
	deliver(ds)
}

func (r *Room) leave(s *Session) {
	r.lock.Lock()
	if _, ok := r.sessions[s.id]; !ok {
		r.lock.Unlock()
		return
	}
	delete(r.sessions, s.id)
	ds := []delivery{{to: s, evt: types.LeftEvent{}}}
	ds = append(ds, r.broadcastLocked(func(to *Session) types.Event {
		return types.ParticipantEvent{Kind: types.EventParticipantLeft, Participant: s.infoFor(to.id)}
	}, "")...)
	r.lock.Unlock()

	r.logger.Debugw("session left", "participant", s.id)
	deliver(ds)
}

// updated announces a session's participant update to everyone, itself included
func (r *Room) updated(s *Session) {
	r.lock.Lock()
	ds := r.broadcastLocked(func(to *Session) types.Event {
		return types.ParticipantEvent{Kind: types.EventParticipantUpdated, Participant: s.infoFor(to.id)}
	}, "")
	r.lock.Unlock()
	deliver(ds)
}

func (r *Room) trackChanged(s *Session, kind types.TrackKind, started bool) {
	eventKind := types.EventTrackStopped
	if started {
		eventKind = types.EventTrackStarted
	}
	r.lock.Lock()
	ds := r.broadcastLocked(func(to *Session) types.Event {
		info := s.infoFor(to.id)
		return types.TrackEvent{Kind: eventKind, Participant: info, TrackKind: kind, Track: info.Track(kind).Track}
	}, "")
	r.lock.Unlock()
	deliver(ds)
}

func (r *Room) sendMessage(from *Session, data []byte, to types.ParticipantID) {
	r.lock.Lock()
	var ds []delivery
	switch {
	case to == types.BroadcastTarget:
		ds = r.broadcastLocked(func(*Session) types.Event {
			return types.AppMessageEvent{FromID: from.id, Data: data}
		}, from.id)
		for _, id := range utils.SortedKeys(r.remotes) {
			r.outbox = append(r.outbox, Envelope{From: from.id, To: id, Data: data})
		}
	case r.sessions[to] != nil:
		ds = []delivery{{to: r.sessions[to], evt: types.AppMessageEvent{FromID: from.id, Data: data}}}
	default:
		r.outbox = append(r.outbox, Envelope{From: from.id, To: to, Data: data})
	}
	r.lock.Unlock()
	deliver(ds)
}

func (r *Room) setStreaming(recording bool, on bool, layout *types.CompositionRequest) error {
	r.lock.Lock()
	active := &r.live
	started, stopped := types.EventLiveStreamingStarted, types.EventLiveStreamingStopped
	if recording {
		active = &r.recording
		started, stopped = types.EventRecordingStarted, types.EventRecordingStopped
	}
	if *active == on {
		r.lock.Unlock()
		if on {
			return ErrAlreadyStreaming
		}
		return ErrNotStreaming
	}
	*active = on
	if recording {
		r.recordingLayout = layout
	} else {
		r.liveLayout = layout
	}
	kind := stopped
	if on {
		kind = started
	}
	ds := r.broadcastLocked(func(*Session) types.Event {
		return types.StreamingEvent{Kind: kind}
	}, "")
	r.lock.Unlock()
	deliver(ds)
	return nil
}

func (r *Room) updateLayout(recording bool, layout *types.CompositionRequest) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	if recording {
		if !r.recording {
			return ErrNotStreaming
		}
		r.recordingLayout = layout
		return nil
	}
	if !r.live {
		return ErrNotStreaming
	}
	r.liveLayout = layout
	return nil
}

// LiveLayout is the composition the live stream currently renders
func (r *Room) LiveLayout() *types.CompositionRequest {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.liveLayout
}

func (r *Room) RecordingLayout() *types.CompositionRequest {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.recordingLayout
}

func (r *Room) IsLive() bool {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.live
}

// Outbox returns messages sent to scripted participants
func (r *Room) Outbox() []Envelope {
	r.lock.Lock()
	defer r.lock.Unlock()
	return append([]Envelope(nil), r.outbox...)
}

// AddRemote adds a scripted participant and announces it to every session
func (r *Room) AddRemote(info types.ParticipantInfo) {
	info.Local = false
	c := cloneInfo(info, false)
	r.lock.Lock()
	r.remotes[info.SessionID] = &c
	ds := r.broadcastLocked(func(*Session) types.Event {
		return types.ParticipantEvent{Kind: types.EventParticipantJoined, Participant: cloneInfo(c, false)}
	}, "")
	r.lock.Unlock()
	deliver(ds)
}

// UpdateRemote replaces a scripted participant's user data
func (r *Room) UpdateRemote(id types.ParticipantID, userData map[string]interface{}) bool {
	r.lock.Lock()
	info, ok := r.remotes[id]
	if !ok {
		r.lock.Unlock()
		return false
	}
	info.UserData = maps.Clone(userData)
	c := cloneInfo(*info, false)
	ds := r.broadcastLocked(func(*Session) types.Event {
		return types.ParticipantEvent{Kind: types.EventParticipantUpdated, Participant: c}
	}, "")
	r.lock.Unlock()
	deliver(ds)
	return true
}

// SetRemoteTrack starts or stops one of a scripted participant's tracks
func (r *Room) SetRemoteTrack(id types.ParticipantID, kind types.TrackKind, started bool) bool {
	r.lock.Lock()
	info, ok := r.remotes[id]
	if !ok {
		r.lock.Unlock()
		return false
	}
	if info.Tracks == nil {
		info.Tracks = make(map[types.TrackKind]types.TrackInfo)
	}
	eventKind := types.EventTrackStopped
	if started {
		eventKind = types.EventTrackStarted
		info.Tracks[kind] = types.TrackInfo{Track: NewTrack(kind), State: types.TrackStatePlayable}
	} else {
		t := info.Tracks[kind]
		t.State = types.TrackStateOff
		info.Tracks[kind] = t
	}
	c := cloneInfo(*info, false)
	ds := r.broadcastLocked(func(*Session) types.Event {
		return types.TrackEvent{Kind: eventKind, Participant: c, TrackKind: kind, Track: c.Track(kind).Track}
	}, "")
	r.lock.Unlock()
	deliver(ds)
	return true
}

func (r *Room) RemoveRemote(id types.ParticipantID) bool {
	r.lock.Lock()
	info, ok := r.remotes[id]
	if !ok {
		r.lock.Unlock()
		return false
	}
	delete(r.remotes, id)
	c := cloneInfo(*info, false)
	ds := r.broadcastLocked(func(*Session) types.Event {
		return types.ParticipantEvent{Kind: types.EventParticipantLeft, Participant: c}
	}, "")
	r.lock.Unlock()
	deliver(ds)
	return true
}

// SendFrom delivers an app message from a scripted participant
func (r *Room) SendFrom(from types.ParticipantID, data []byte, to types.ParticipantID) {
	r.lock.Lock()
	var ds []delivery
	if to == types.BroadcastTarget {
		ds = r.broadcastLocked(func(*Session) types.Event {
			return types.AppMessageEvent{FromID: from, Data: data}
		}, "")
	} else if s, ok := r.sessions[to]; ok {
		ds = []delivery{{to: s, evt: types.AppMessageEvent{FromID: from, Data: data}}}
	}
	r.lock.Unlock()
	deliver(ds)
}

// Emit delivers an arbitrary event to every session
func (r *Room) Emit(evt types.Event) {
	r.lock.Lock()
	ds := r.broadcastLocked(func(*Session) types.Event { return evt }, "")
	r.lock.Unlock()
	deliver(ds)
}

func (r *Room) Participants() []types.ParticipantID {
	r.lock.Lock()
	defer r.lock.Unlock()
	ids := append(utils.SortedKeys(r.sessions), utils.SortedKeys(r.remotes)...)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func cloneInfo(info types.ParticipantInfo, local bool) types.ParticipantInfo {
	c := info
	c.Local = local
	c.UserData = maps.Clone(info.UserData)
	c.Tracks = maps.Clone(info.Tracks)
	return c
}
