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

package layout

import (
	"math"

	"github.com/livekit/livekit-stage/pkg/stage/types"
)

type Config struct {
	AspectRatio         float64 `yaml:"aspect_ratio,omitempty"`
	Padding             int     `yaml:"padding,omitempty"`
	Gap                 int     `yaml:"gap,omitempty"`
	MinTileSize         int     `yaml:"min_tile_size,omitempty"`
	StripHeaderHeight   int     `yaml:"strip_header_height,omitempty"`
	SidebarHeaderHeight int     `yaml:"sidebar_header_height,omitempty"`
	VerticalSplit       float64 `yaml:"vertical_split,omitempty"`
	HorizontalSplit     float64 `yaml:"horizontal_split,omitempty"`
}

var DefaultConfig = Config{
	AspectRatio:         16.0 / 9.0,
	Padding:             16,
	Gap:                 8,
	MinTileSize:         80,
	StripHeaderHeight:   40,
	SidebarHeaderHeight: 50,
	VerticalSplit:       0.7,
	HorizontalSplit:     0.75,
}

type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

func (s Size) Area() int {
	return s.Width * s.Height
}

// Geometry is the computed arrangement for one layout family. Dominant is zero for the grid.
type Geometry struct {
	Family   types.Layout `json:"family"`
	Cols     int          `json:"cols"`
	Rows     int          `json:"rows"`
	Tile     Size         `json:"tile"`
	Dominant Size         `json:"dominant"`
	Gap      int          `json:"gap"`
}

type Calculator struct {
	config Config
}

func NewCalculator(config Config) *Calculator {
	if config.AspectRatio <= 0 {
		config.AspectRatio = DefaultConfig.AspectRatio
	}
	return &Calculator{config: config}
}

// Compute returns the geometry of the given family for count tiles inside a width x height
// container. ok is false for degenerate input or families without local geometry.
func (c *Calculator) Compute(family types.Layout, width, height, count int) (Geometry, bool) {
	switch family {
	case types.LayoutGrid:
		return c.Grid(width, height, count)
	case types.LayoutPinnedVertical:
		return c.PinnedVertical(width, height, count)
	case types.LayoutPinnedHorizontal:
		return c.PinnedHorizontal(width, height, count)
	}
	return Geometry{}, false
}

// Grid tries every column count and keeps the one giving the largest tile area
func (c *Calculator) Grid(width, height, count int) (Geometry, bool) {
	if count <= 0 {
		return Geometry{}, false
	}
	availableWidth := width - c.config.Padding
	availableHeight := height - c.config.Padding
	if availableWidth <= 0 || availableHeight <= 0 {
		return Geometry{}, false
	}

	best := Geometry{Family: types.LayoutGrid, Cols: 1, Rows: 1, Gap: c.config.Gap}
	bestArea := 0
	for cols := 1; cols <= count; cols++ {
		rows := (count + cols - 1) / cols
		tile := c.gridTile(availableWidth, availableHeight, cols, rows)
		if tile.Area() > bestArea {
			bestArea = tile.Area()
			best.Cols = cols
			best.Rows = rows
			best.Tile = tile
		}
	}
	return best, true
}

func (c *Calculator) gridTile(width, height, cols, rows int) Size {
	widthForTiles := float64(width - c.config.Gap*(cols-1))
	heightForTiles := float64(height - c.config.Gap*(rows-1))
	if widthForTiles <= 0 || heightForTiles <= 0 {
		return Size{}
	}

	hScale := widthForTiles / (float64(cols) * c.config.AspectRatio)
	vScale := heightForTiles / float64(rows)

	var tile Size
	if hScale <= vScale {
		tile.Width = floor(widthForTiles / float64(cols))
		tile.Height = floor(float64(tile.Width) / c.config.AspectRatio)
	} else {
		tile.Height = floor(heightForTiles / float64(rows))
		tile.Width = floor(float64(tile.Height) * c.config.AspectRatio)
	}
	return tile
}

// PinnedVertical places the dominant region on top and a strip of tiles below it
func (c *Calculator) PinnedVertical(width, height, count int) (Geometry, bool) {
	if count <= 0 {
		return Geometry{}, false
	}
	availableWidth := width - c.config.Padding
	availableHeight := height - c.config.StripHeaderHeight - c.config.Padding
	if availableWidth <= 0 || availableHeight <= 0 {
		return Geometry{}, false
	}

	dominant := Size{Width: availableWidth, Height: floor(float64(availableHeight) * c.config.VerticalSplit)}

	tileHeight := availableHeight - dominant.Height - c.config.Gap
	tileWidth := floor(float64(tileHeight) * c.config.AspectRatio)
	maxTileWidth := availableWidth/count - c.config.Gap
	if tileWidth > maxTileWidth {
		tileWidth = maxTileWidth
		tileHeight = floor(float64(tileWidth) / c.config.AspectRatio)
	}

	return Geometry{
		Family:   types.LayoutPinnedVertical,
		Cols:     count,
		Rows:     1,
		Tile:     c.clampTile(Size{Width: tileWidth, Height: tileHeight}),
		Dominant: dominant,
		Gap:      c.config.Gap,
	}, true
}

// PinnedHorizontal places the dominant region on the left and a sidebar of tiles on the right
func (c *Calculator) PinnedHorizontal(width, height, count int) (Geometry, bool) {
	if count <= 0 {
		return Geometry{}, false
	}
	availableWidth := width - c.config.Padding
	availableHeight := height - c.config.SidebarHeaderHeight - c.config.Padding
	if availableWidth <= 0 || availableHeight <= 0 {
		return Geometry{}, false
	}

	dominant := Size{Width: floor(float64(availableWidth) * c.config.HorizontalSplit), Height: availableHeight}

	tileWidth := availableWidth - dominant.Width - c.config.Gap
	tileHeight := floor(float64(tileWidth) / c.config.AspectRatio)
	maxTileHeight := availableHeight/count - c.config.Gap
	if tileHeight > maxTileHeight {
		tileHeight = maxTileHeight
		tileWidth = floor(float64(tileHeight) * c.config.AspectRatio)
	}

	return Geometry{
		Family:   types.LayoutPinnedHorizontal,
		Cols:     1,
		Rows:     count,
		Tile:     c.clampTile(Size{Width: tileWidth, Height: tileHeight}),
		Dominant: dominant,
		Gap:      c.config.Gap,
	}, true
}

func (c *Calculator) clampTile(s Size) Size {
	minHeight := floor(float64(c.config.MinTileSize) / c.config.AspectRatio)
	if s.Width < c.config.MinTileSize {
		s.Width = c.config.MinTileSize
	}
	if s.Height < minHeight {
		s.Height = minHeight
	}
	return s
}

// floor absorbs float error so that e.g. 700 * 0.7 lands on 490
func floor(v float64) int {
	return int(math.Floor(v + 1e-9))
}
