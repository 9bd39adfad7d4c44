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
	"maps"
	"slices"

	"github.com/livekit/livekit-stage/pkg/layout"
	"github.com/livekit/livekit-stage/pkg/stage/composition"
	"github.com/livekit/livekit-stage/pkg/stage/types"
)

type ParticipantState struct {
	ID            types.ParticipantID `json:"id"`
	UserName      string              `json:"userName"`
	Local         bool                `json:"local"`
	Role          types.Role          `json:"role"`
	RoleConfirmed bool                `json:"roleConfirmed"`
	Video         bool                `json:"video"`
	Audio         bool                `json:"audio"`
	ScreenVideo   bool                `json:"screenVideo"`
	ScreenAudio   bool                `json:"screenAudio"`
	Volume        float64             `json:"volume"`

	// handles of ready tracks, for the rendering layer
	Tracks map[types.TrackKind]types.Track `json:"-"`
}

func (p ParticipantState) IsStage() bool {
	return p.Role == types.RoleStage
}

// State is an immutable view of the engine, rebuilt after every mutation
type State struct {
	CallState        types.CallState     `json:"callState"`
	LocalID          types.ParticipantID `json:"localId,omitempty"`
	LocalRole        types.Role          `json:"localRole,omitempty"`
	Participants     []ParticipantState  `json:"participants"`
	Layout           types.Layout        `json:"layout"`
	AvailableLayouts []types.Layout      `json:"availableLayouts"`
	ScreenShareOwner types.ParticipantID `json:"screenShareOwner,omitempty"`
	IsScreenSharing  bool                `json:"isScreenSharing"`
	ShareBusy        bool                `json:"shareBusy"`
	ActiveSpeaker    types.ParticipantID `json:"activeSpeaker,omitempty"`
	Overlays         types.Overlays      `json:"overlays"`
	Live             types.StreamState   `json:"live"`
	Recording        types.StreamState   `json:"recording"`
	RecordingEnabled bool                `json:"recordingEnabled"`
	StageVolume      float64             `json:"stageVolume"`
	BackstageMuted   bool                `json:"backstageMuted"`
	Error            string              `json:"error,omitempty"`
	Geometry         *layout.Geometry    `json:"geometry,omitempty"`

	Composition   *types.CompositionRequest                            `json:"composition,omitempty"`
	Subscriptions map[types.ParticipantID]types.SubscriptionSettings `json:"subscriptions,omitempty"`
}

func (s State) Participant(id types.ParticipantID) (ParticipantState, bool) {
	i, found := slices.BinarySearchFunc(s.Participants, id, func(p ParticipantState, id types.ParticipantID) int {
		switch {
		case p.ID < id:
			return -1
		case p.ID > id:
			return 1
		}
		return 0
	})
	if !found {
		return ParticipantState{}, false
	}
	return s.Participants[i], true
}

func (s State) Stage() []ParticipantState {
	return s.filter(types.RoleStage)
}

func (s State) Backstage() []ParticipantState {
	return s.filter(types.RoleBackstage)
}

func (s State) filter(role types.Role) []ParticipantState {
	out := make([]ParticipantState, 0, len(s.Participants))
	for _, p := range s.Participants {
		if p.Role == role {
			out = append(out, p)
		}
	}
	return out
}

func (s State) Clone() State {
	c := s
	c.Participants = make([]ParticipantState, len(s.Participants))
	for i, p := range s.Participants {
		p.Tracks = maps.Clone(p.Tracks)
		c.Participants[i] = p
	}
	c.AvailableLayouts = slices.Clone(s.AvailableLayouts)
	if s.Geometry != nil {
		g := *s.Geometry
		c.Geometry = &g
	}
	if s.Composition != nil {
		c.Composition = cloneComposition(s.Composition)
	}
	c.Subscriptions = maps.Clone(s.Subscriptions)
	return c
}

func cloneComposition(r *types.CompositionRequest) *types.CompositionRequest {
	c := *r
	c.Participants.Video = slices.Clone(r.Participants.Video)
	c.Participants.Audio = slices.Clone(r.Participants.Audio)
	c.SidebarParticipants = slices.Clone(r.SidebarParticipants)
	c.PreferredParticipantIDs = slices.Clone(r.PreferredParticipantIDs)
	return &c
}

// buildState must run on the engine queue
func (e *Engine) buildState() State {
	owner := e.screenShareOwner()
	st := State{
		CallState:        e.callState,
		LocalID:          e.localID,
		Participants:     make([]ParticipantState, 0, len(e.participants)),
		Layout:           e.layout,
		ScreenShareOwner: owner,
		IsScreenSharing:  e.isScreenSharing,
		ShareBusy:        e.sharePending,
		ActiveSpeaker:    e.activeSpeaker,
		Overlays:         e.overlays,
		Live:             e.live,
		Recording:        e.recording,
		RecordingEnabled: e.recordingEnabled,
		StageVolume:      e.stageVolume,
		BackstageMuted:   e.backstageMuted,
		Error:            e.notice,
	}
	if local := e.localParticipant(); local != nil {
		st.LocalRole = local.Role.Role
	}
	for _, l := range types.Layouts {
		if l.Available(owner != "") {
			st.AvailableLayouts = append(st.AvailableLayouts, l)
		}
	}
	for _, id := range e.sortedParticipantIDs() {
		p := e.participants[id]
		ps := ParticipantState{
			ID:            p.ID,
			UserName:      p.UserName,
			Local:         p.Local,
			Role:          p.Role.Role,
			RoleConfirmed: p.Role.Confirmed,
			Video:         p.IsReady(types.TrackKindVideo),
			Audio:         p.IsReady(types.TrackKindAudio),
			ScreenVideo:   p.IsReady(types.TrackKindScreenVideo),
			ScreenAudio:   p.IsReady(types.TrackKindScreenAudio),
			Volume:        e.volumeFor(p),
			Tracks:        make(map[types.TrackKind]types.Track),
		}
		for _, kind := range types.TrackKinds {
			if t := p.Track(kind); t != nil && p.IsReady(kind) {
				ps.Tracks[kind] = t
			}
		}
		st.Participants = append(st.Participants, ps)
	}
	if e.geometry != nil {
		g := *e.geometry
		st.Geometry = &g
	}
	if e.callState == types.CallJoined {
		st.Composition = composition.Compose(e.config.Composition, e.compositionInput())
		st.Subscriptions = e.subscriptionPolicy()
	}
	return st
}
