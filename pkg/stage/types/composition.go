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

type CompositionMode string

const (
	CompositionGrid     CompositionMode = "grid"
	CompositionDominant CompositionMode = "dominant"
	CompositionSingle   CompositionMode = "single"
)

type CompositionParticipants struct {
	Video []ParticipantID `json:"video"`
	Audio []ParticipantID `json:"audio"`
}

type TextOverlay struct {
	Visible    bool   `json:"visible"`
	Content    string `json:"content,omitempty"`
	FontFamily string `json:"fontFamily,omitempty"`
	FontSize   int    `json:"fontSize,omitempty"`
	Color      string `json:"color,omitempty"`
	Background string `json:"backgroundColor,omitempty"`
	Position   string `json:"position,omitempty"`
}

type ImageOverlay struct {
	Visible   bool    `json:"visible"`
	AssetRef  string  `json:"assetRef,omitempty"`
	Position  string  `json:"position,omitempty"`
	WidthPct  float64 `json:"widthPct,omitempty"`
	Opacity   float64 `json:"opacity,omitempty"`
}

// CompositionRequest is the payload handed to the broadcast and recording service. Its JSON
// encoding is deterministic for equal inputs.
type CompositionRequest struct {
	Preset                  string                  `json:"preset"`
	Mode                    CompositionMode         `json:"mode"`
	Participants            CompositionParticipants `json:"participants"`
	DominantPosition        string                  `json:"dominantPosition,omitempty"`
	SplitPosition           float64                 `json:"splitPosition,omitempty"`
	SidebarTileCount        int                     `json:"sidebarTileCount,omitempty"`
	SidebarParticipants     []ParticipantID         `json:"sidebarParticipants,omitempty"`
	PreferredParticipantIDs []ParticipantID         `json:"preferredParticipantIds,omitempty"`
	MaxCamStreams           int                     `json:"maxCamStreams,omitempty"`
	ScaleMode               string                  `json:"scaleMode,omitempty"`
	OmitAudioOnly           bool                    `json:"omitAudioOnly,omitempty"`
	PreferScreenshare       bool                    `json:"preferScreenshare"`
	ShowLabels              bool                    `json:"showLabels"`
	BackgroundColor         string                  `json:"backgroundColor,omitempty"`
	TextOverlay             TextOverlay             `json:"textOverlay"`
	ImageOverlay            ImageOverlay            `json:"imageOverlay"`
}

type StreamingConfig struct {
	Endpoints []string            `json:"endpoints,omitempty"`
	Layout    *CompositionRequest `json:"layout"`
}
