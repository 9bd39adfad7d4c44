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

package composition

import (
	"slices"

	"github.com/livekit/livekit-stage/pkg/stage/types"
	"github.com/livekit/livekit-stage/pkg/utils"
)

const (
	PresetCustom = "custom"

	PositionTop  = "top"
	PositionLeft = "left"

	ScaleModeFit = "fit"
)

type TextOverlayConfig struct {
	Content    string `yaml:"content,omitempty"`
	FontFamily string `yaml:"font_family,omitempty"`
	FontSize   int    `yaml:"font_size,omitempty"`
	Color      string `yaml:"color,omitempty"`
	Background string `yaml:"background,omitempty"`
	Position   string `yaml:"position,omitempty"`
}

type ImageOverlayConfig struct {
	AssetRef string  `yaml:"asset_ref,omitempty"`
	Position string  `yaml:"position,omitempty"`
	WidthPct float64 `yaml:"width_pct,omitempty"`
	Opacity  float64 `yaml:"opacity,omitempty"`
}

type Config struct {
	MaxSidebarTiles   int                `yaml:"max_sidebar_tiles,omitempty"`
	VerticalSplit     float64            `yaml:"vertical_split,omitempty"`
	HorizontalSplit   float64            `yaml:"horizontal_split,omitempty"`
	PresentationSplit float64            `yaml:"presentation_split,omitempty"`
	ShowLabels        bool               `yaml:"show_labels,omitempty"`
	BackgroundColor   string             `yaml:"background_color,omitempty"`
	TextOverlay       TextOverlayConfig  `yaml:"text_overlay,omitempty"`
	ImageOverlay      ImageOverlayConfig `yaml:"image_overlay,omitempty"`
}

var DefaultConfig = Config{
	MaxSidebarTiles:   5,
	VerticalSplit:     0.7,
	HorizontalSplit:   0.75,
	PresentationSplit: 0.8,
	BackgroundColor:   "#000000",
	TextOverlay: TextOverlayConfig{
		Content:    "LIVE",
		FontFamily: "Roboto",
		FontSize:   36,
		Color:      "#ffffff",
		Background: "rgba(0, 0, 0, 0.6)",
		Position:   "bottom-left",
	},
	ImageOverlay: ImageOverlayConfig{
		AssetRef: "overlay.png",
		Position: "top-right",
		WidthPct: 12,
		Opacity:  1,
	},
}

// Input is everything a composition depends on
type Input struct {
	Layout        types.Layout
	StageIDs      []types.ParticipantID
	ShareOwner    types.ParticipantID
	ActiveSpeaker types.ParticipantID
	Overlays      types.Overlays
}

// Compose maps the stage state to the request sent to the broadcast service. It has no hidden
// state: equal inputs give equal requests, and participant lists are always sorted.
func Compose(config Config, in Input) *types.CompositionRequest {
	stage := utils.DedupeSlice(utils.SortedCopy(in.StageIDs))

	req := &types.CompositionRequest{
		Preset: PresetCustom,
		Participants: types.CompositionParticipants{
			Video: stage,
			Audio: slices.Clone(stage),
		},
		ShowLabels:   config.ShowLabels,
		TextOverlay:  textOverlay(config.TextOverlay, in.Overlays.Text),
		ImageOverlay: imageOverlay(config.ImageOverlay, in.Overlays.Image),
	}
	if req.Participants.Audio == nil {
		req.Participants.Audio = []types.ParticipantID{}
	}

	if len(stage) == 0 {
		req.Mode = types.CompositionGrid
		req.BackgroundColor = config.BackgroundColor
		return req
	}

	// an owner off stage cannot be the broadcast's visual source
	owner := in.ShareOwner
	if !slices.Contains(stage, owner) {
		owner = ""
	}

	switch in.Layout {
	case types.LayoutPinnedVertical:
		dominant(req, config, stage, PositionTop, config.VerticalSplit)

	case types.LayoutPinnedHorizontal:
		dominant(req, config, stage, PositionLeft, config.HorizontalSplit)

	case types.LayoutFullScreen:
		req.Mode = types.CompositionSingle
		req.PreferScreenshare = true
		req.MaxCamStreams = 1
		req.OmitAudioOnly = true
		if owner != "" {
			req.PreferredParticipantIDs = []types.ParticipantID{owner}
		}

	case types.LayoutPresentation:
		sidebar := PresentationSidebar(stage, owner, in.ActiveSpeaker)
		req.Mode = types.CompositionDominant
		req.PreferScreenshare = true
		req.DominantPosition = PositionLeft
		req.SplitPosition = config.PresentationSplit
		req.SidebarTileCount = len(sidebar)
		req.SidebarParticipants = sidebar
		req.MaxCamStreams = len(sidebar)
		req.ScaleMode = ScaleModeFit
		if owner != "" {
			req.PreferredParticipantIDs = []types.ParticipantID{owner}
		}

	default:
		req.Mode = types.CompositionGrid
	}
	return req
}

func dominant(req *types.CompositionRequest, config Config, stage []types.ParticipantID, position string, split float64) {
	req.Mode = types.CompositionDominant
	req.PreferScreenshare = true
	req.DominantPosition = position
	req.SplitPosition = split
	req.SidebarTileCount = min(config.MaxSidebarTiles, len(stage))
	req.MaxCamStreams = len(stage)
	req.ScaleMode = ScaleModeFit
}

// PresentationSidebar picks the single camera shown next to the presentation: the active speaker
// when on stage, else the share owner, else the first stage participant. stage must be sorted.
func PresentationSidebar(stage []types.ParticipantID, owner, activeSpeaker types.ParticipantID) []types.ParticipantID {
	if len(stage) == 0 {
		return nil
	}
	switch {
	case activeSpeaker != "" && slices.Contains(stage, activeSpeaker):
		return []types.ParticipantID{activeSpeaker}
	case owner != "" && slices.Contains(stage, owner):
		return []types.ParticipantID{owner}
	default:
		return []types.ParticipantID{stage[0]}
	}
}

func textOverlay(c TextOverlayConfig, visible bool) types.TextOverlay {
	return types.TextOverlay{
		Visible:    visible,
		Content:    c.Content,
		FontFamily: c.FontFamily,
		FontSize:   c.FontSize,
		Color:      c.Color,
		Background: c.Background,
		Position:   c.Position,
	}
}

func imageOverlay(c ImageOverlayConfig, visible bool) types.ImageOverlay {
	return types.ImageOverlay{
		Visible:  visible,
		AssetRef: c.AssetRef,
		Position: c.Position,
		WidthPct: c.WidthPct,
		Opacity:  c.Opacity,
	}
}
