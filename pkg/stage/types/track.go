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
	"github.com/pion/webrtc/v3"
)

type TrackKind string

const (
	TrackKindVideo       TrackKind = "video"
	TrackKindAudio       TrackKind = "audio"
	TrackKindScreenVideo TrackKind = "screenVideo"
	TrackKindScreenAudio TrackKind = "screenAudio"
)

var TrackKinds = []TrackKind{TrackKindVideo, TrackKindAudio, TrackKindScreenVideo, TrackKindScreenAudio}

func (k TrackKind) Valid() bool {
	switch k {
	case TrackKindVideo, TrackKindAudio, TrackKindScreenVideo, TrackKindScreenAudio:
		return true
	}
	return false
}

func (k TrackKind) IsScreen() bool {
	return k == TrackKindScreenVideo || k == TrackKindScreenAudio
}

func (k TrackKind) IsAudio() bool {
	return k == TrackKindAudio || k == TrackKindScreenAudio
}

func (k TrackKind) CodecType() webrtc.RTPCodecType {
	if k.IsAudio() {
		return webrtc.RTPCodecTypeAudio
	}
	return webrtc.RTPCodecTypeVideo
}

// TrackState is the state reported by the call SDK for a track slot
type TrackState string

const (
	TrackStatePlayable    TrackState = "playable"
	TrackStateLoading     TrackState = "loading"
	TrackStateInterrupted TrackState = "interrupted"
	TrackStateBlocked     TrackState = "blocked"
	TrackStateOff         TrackState = "off"
	TrackStateSendable    TrackState = "sendable"
)

func (s TrackState) IsReady() bool {
	return s == TrackStatePlayable || s == TrackStateLoading
}

// Track is an opaque media track handle owned by the call SDK
//
//counterfeiter:generate . Track
type Track interface {
	ID() string
	Kind() webrtc.RTPCodecType
}

type TrackInfo struct {
	Track Track
	State TrackState
}

func (t TrackInfo) Ready() bool {
	return t.Track != nil && t.State.IsReady()
}

func SameTrack(a, b Track) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.ID() == b.ID()
}
