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

import (
	"context"
)

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -generate

// BroadcastTarget addresses an application message to every peer
const BroadcastTarget ParticipantID = "*"

type Identity struct {
	UserName string
	Token    string
}

// CallSession is the call SDK surface consumed by the engine
//
//counterfeiter:generate . CallSession
type CallSession interface {
	Join(ctx context.Context, identity Identity, roomURL string) error
	Leave(ctx context.Context) error
	Destroy()

	On(event EventType, handler EventHandler)
	Off(event EventType)

	SendAppMessage(ctx context.Context, data []byte, to ParticipantID) error
	SetUserData(ctx context.Context, data map[string]interface{}) error
	SetLocalMedia(ctx context.Context, video bool, audio bool) error
	LocalMedia() (video bool, audio bool)

	StartScreenShare(ctx context.Context) error
	StopScreenShare(ctx context.Context) error

	StartLiveStreaming(ctx context.Context, config StreamingConfig) error
	UpdateLiveStreaming(ctx context.Context, layout *CompositionRequest) error
	StopLiveStreaming(ctx context.Context) error

	StartRecording(ctx context.Context, config StreamingConfig) error
	UpdateRecording(ctx context.Context, layout *CompositionRequest) error
	StopRecording(ctx context.Context) error

	UpdateReceiveSettings(ctx context.Context, settings map[ParticipantID]SubscriptionSettings) error
}

// RenderHandle is an opaque handle to a rendered media track
type RenderHandle interface {
	ParticipantID() ParticipantID
	Kind() TrackKind
	SetVolume(volume float64)
	Volume() float64
	EnsurePlaying(ctx context.Context) error
	Paused() bool
}

// TrackRegistry maps (participant, track kind) to render handles. The engine only talks to the
// rendering layer through it.
//
//counterfeiter:generate . TrackRegistry
type TrackRegistry interface {
	SetVolume(id ParticipantID, volume float64) int
	EnsurePlaying(ctx context.Context, id ParticipantID)
	Handles(id ParticipantID) []RenderHandle
	// Forget drops every handle and the stored volume of a participant that left
	Forget(id ParticipantID)
}
