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

import "fmt"

type Layout string

const (
	LayoutGrid             Layout = "grid"
	LayoutPinnedVertical   Layout = "pinned-vertical"
	LayoutPinnedHorizontal Layout = "pinned-horizontal"
	LayoutFullScreen       Layout = "full-screen"
	LayoutPresentation     Layout = "presentation"
)

var Layouts = []Layout{LayoutGrid, LayoutPinnedVertical, LayoutPinnedHorizontal, LayoutFullScreen, LayoutPresentation}

func (l Layout) Valid() bool {
	switch l {
	case LayoutGrid, LayoutPinnedVertical, LayoutPinnedHorizontal, LayoutFullScreen, LayoutPresentation:
		return true
	}
	return false
}

// RequiresScreenShare is true for layouts that only make sense with an active share
func (l Layout) RequiresScreenShare() bool {
	return l != LayoutGrid
}

// Available tells whether the layout can be selected given whether a share is active. Grid is the
// only layout without a share and the one layout not offered during a share.
func (l Layout) Available(shareActive bool) bool {
	if !l.Valid() {
		return false
	}
	return shareActive == l.RequiresScreenShare()
}

type OverlayKind string

const (
	OverlayText  OverlayKind = "text"
	OverlayImage OverlayKind = "image"
)

func (k OverlayKind) Valid() bool {
	return k == OverlayText || k == OverlayImage
}

type Overlays struct {
	Text  bool `json:"text"`
	Image bool `json:"image"`
}

func (o Overlays) Get(kind OverlayKind) bool {
	switch kind {
	case OverlayText:
		return o.Text
	case OverlayImage:
		return o.Image
	}
	return false
}

func (o *Overlays) Set(kind OverlayKind, visible bool) {
	switch kind {
	case OverlayText:
		o.Text = visible
	case OverlayImage:
		o.Image = visible
	}
}

// StreamState is shared by the live broadcast and the recording sub-machines
type StreamState int

const (
	StreamOff StreamState = iota
	StreamStarting
	StreamOn
	StreamStopping
)

func (s StreamState) String() string {
	switch s {
	case StreamOff:
		return "off"
	case StreamStarting:
		return "starting"
	case StreamOn:
		return "on"
	case StreamStopping:
		return "stopping"
	default:
		return fmt.Sprintf("%d", int(s))
	}
}

func (s StreamState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *StreamState) UnmarshalText(text []byte) error {
	for _, v := range []StreamState{StreamOff, StreamStarting, StreamOn, StreamStopping} {
		if v.String() == string(text) {
			*s = v
			return nil
		}
	}
	return fmt.Errorf("unknown stream state %q", text)
}

type CallState int

const (
	CallIdle CallState = iota
	CallJoining
	CallJoined
	CallLeaving
	CallLeft
)

func (s CallState) String() string {
	switch s {
	case CallIdle:
		return "idle"
	case CallJoining:
		return "joining"
	case CallJoined:
		return "joined"
	case CallLeaving:
		return "leaving"
	case CallLeft:
		return "left"
	default:
		return fmt.Sprintf("%d", int(s))
	}
}

func (s CallState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *CallState) UnmarshalText(text []byte) error {
	for _, v := range []CallState{CallIdle, CallJoining, CallJoined, CallLeaving, CallLeft} {
		if v.String() == string(text) {
			*s = v
			return nil
		}
	}
	return fmt.Errorf("unknown call state %q", text)
}

type VideoLayer string

const (
	VideoLayerLow  VideoLayer = "low"
	VideoLayerHigh VideoLayer = "high"
)

type SubscriptionSettings struct {
	Audio       bool       `json:"audio"`
	Video       bool       `json:"video"`
	ScreenVideo bool       `json:"screenVideo"`
	ScreenAudio bool       `json:"screenAudio"`
	VideoLayer  VideoLayer `json:"videoLayer"`
}
