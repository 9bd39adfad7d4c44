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

package view

import (
	"errors"

	"github.com/livekit/livekit-stage/pkg/stage"
	"github.com/livekit/livekit-stage/pkg/stage/types"
)

var (
	ErrUnknownFrame  = errors.New("unknown frame type")
	ErrUnknownIntent = errors.New("unknown intent")
	ErrMissingField  = errors.New("missing intent field")
)

type FrameType string

const (
	FrameState  FrameType = "state"
	FrameSignal FrameType = "signal"
	FrameIntent FrameType = "intent"
	FrameAck    FrameType = "ack"
	FrameError  FrameType = "error"
)

const (
	IntentRequestRole         = "request_role"
	IntentToggleRole          = "toggle_role"
	IntentChangeLayout        = "change_layout"
	IntentToggleOverlay       = "toggle_overlay"
	IntentToggleLive          = "toggle_live"
	IntentToggleScreenShare   = "toggle_screen_share"
	IntentToggleLocalVideo    = "toggle_local_video"
	IntentToggleLocalAudio    = "toggle_local_audio"
	IntentSetStageVolume      = "set_stage_volume"
	IntentToggleBackstageMute = "toggle_backstage_mute"
	IntentSetRecording        = "set_recording_enabled"
	IntentSetViewport         = "set_viewport"
	IntentDismissError        = "dismiss_error"
	IntentLeave               = "leave"
	IntentGesture             = "gesture"
)

const (
	SignalLive      = "live"
	SignalJoined    = "joined"
	SignalOverlays  = "overlays"
	SignalRecording = "recording"
	SignalError     = "error"
)

// ServerFrame is everything the feed writes to a view
type ServerFrame struct {
	Type   FrameType    `json:"type"`
	ID     string       `json:"id,omitempty"`
	State  *stage.State `json:"state,omitempty"`
	Signal *Signal      `json:"signal,omitempty"`
	Error  string       `json:"error,omitempty"`
}

type Signal struct {
	Name  string      `json:"name"`
	Value interface{} `json:"value"`
}

// ClientFrame is an intent sent by a view. Only the fields the intent needs are read.
type ClientFrame struct {
	Type        FrameType           `json:"type"`
	ID          string              `json:"id,omitempty"`
	Intent      string              `json:"intent,omitempty"`
	Participant types.ParticipantID `json:"participant,omitempty"`
	Role        types.Role          `json:"role,omitempty"`
	Layout      types.Layout        `json:"layout,omitempty"`
	Overlay     types.OverlayKind   `json:"overlay,omitempty"`
	Volume      *float64            `json:"volume,omitempty"`
	Enabled     *bool               `json:"enabled,omitempty"`
	Width       int                 `json:"width,omitempty"`
	Height      int                 `json:"height,omitempty"`
}

// Engine is the part of the session engine a view drives
type Engine interface {
	Snapshot() stage.State
	OnStateChanged(key string, f func())
	RemoveStateObserver(key string)

	Leave() error
	RequestRole(id types.ParticipantID, role types.Role) error
	ToggleRole(id types.ParticipantID) error
	ChangeLayout(l types.Layout) error
	ToggleOverlay(kind types.OverlayKind) error
	ToggleLive() error
	ToggleScreenShare() error
	ToggleLocalVideo() error
	ToggleLocalAudio() error
	SetStageVolume(v float64) error
	ToggleBackstageMute() error
	SetRecordingEnabled(enabled bool) error
	SetViewport(width, height int) error
	DismissError() error
}

var _ Engine = (*stage.Engine)(nil)

// DispatchIntent runs one view intent against the engine and returns its validation error
func DispatchIntent(e Engine, f *ClientFrame, gesture func()) error {
	switch f.Intent {
	case IntentRequestRole:
		if f.Participant == "" || f.Role == "" {
			return ErrMissingField
		}
		return e.RequestRole(f.Participant, f.Role)
	case IntentToggleRole:
		if f.Participant == "" {
			return ErrMissingField
		}
		return e.ToggleRole(f.Participant)
	case IntentChangeLayout:
		return e.ChangeLayout(f.Layout)
	case IntentToggleOverlay:
		return e.ToggleOverlay(f.Overlay)
	case IntentToggleLive:
		return e.ToggleLive()
	case IntentToggleScreenShare:
		return e.ToggleScreenShare()
	case IntentToggleLocalVideo:
		return e.ToggleLocalVideo()
	case IntentToggleLocalAudio:
		return e.ToggleLocalAudio()
	case IntentSetStageVolume:
		if f.Volume == nil {
			return ErrMissingField
		}
		return e.SetStageVolume(*f.Volume)
	case IntentToggleBackstageMute:
		return e.ToggleBackstageMute()
	case IntentSetRecording:
		if f.Enabled == nil {
			return ErrMissingField
		}
		return e.SetRecordingEnabled(*f.Enabled)
	case IntentSetViewport:
		return e.SetViewport(f.Width, f.Height)
	case IntentDismissError:
		return e.DismissError()
	case IntentLeave:
		return e.Leave()
	case IntentGesture:
		if gesture != nil {
			gesture()
		}
		return nil
	default:
		return ErrUnknownIntent
	}
}
