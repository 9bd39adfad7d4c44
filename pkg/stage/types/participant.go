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

package types

// ParticipantInfo is a participant snapshot as delivered by the call SDK
type ParticipantInfo struct {
	SessionID ParticipantID
	UserName  string
	Local     bool
	UserData  map[string]interface{}
	Tracks    map[TrackKind]TrackInfo
}

func (p ParticipantInfo) Track(kind TrackKind) TrackInfo {
	if p.Tracks == nil {
		return TrackInfo{}
	}
	return p.Tracks[kind]
}

// Participant is the engine's view of a call member
type Participant struct {
	ID       ParticipantID
	UserName string
	Local    bool
	Role     RoleSource

	tracks map[TrackKind]Track
	ready  map[TrackKind]bool
}

func NewParticipant(info ParticipantInfo, role RoleSource) *Participant {
	p := &Participant{
		ID:       info.SessionID,
		UserName: info.UserName,
		Local:    info.Local,
		Role:     role,
		tracks:   make(map[TrackKind]Track),
		ready:    make(map[TrackKind]bool),
	}
	for _, kind := range TrackKinds {
		p.ApplyTrack(kind, info.Track(kind))
	}
	return p
}

func (p *Participant) Track(kind TrackKind) Track {
	return p.tracks[kind]
}

func (p *Participant) IsReady(kind TrackKind) bool {
	return p.ready[kind]
}

// ApplyTrack records the slot's readiness. The stored track handle changes only when a ready track
// with a different id arrives, so a flapping slot keeps its last good handle. Returns true when
// either the readiness or the handle changed.
func (p *Participant) ApplyTrack(kind TrackKind, info TrackInfo) bool {
	ready := info.Ready()
	changed := p.ready[kind] != ready
	p.ready[kind] = ready
	if ready && !SameTrack(p.tracks[kind], info.Track) {
		p.tracks[kind] = info.Track
		changed = true
	}
	return changed
}

// StopTrack marks a slot as not ready without dropping the handle
func (p *Participant) StopTrack(kind TrackKind) bool {
	changed := p.ready[kind]
	p.ready[kind] = false
	return changed
}

func (p *Participant) HasScreenShare() bool {
	return p.ready[TrackKindScreenVideo] && p.tracks[TrackKindScreenVideo] != nil
}

func (p *Participant) Clone() *Participant {
	c := *p
	c.tracks = make(map[TrackKind]Track, len(p.tracks))
	for k, t := range p.tracks {
		c.tracks[k] = t
	}
	c.ready = make(map[TrackKind]bool, len(p.ready))
	for k, r := range p.ready {
		c.ready[k] = r
	}
	return &c
}
