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

package config

import (
	"flag"
	"testing"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/livekit/livekit-stage/pkg/config/configtest"
)

func TestConfig_DefaultsKept(t *testing.T) {
	const content = `session:
  error_display: 10s
layout:
  gap: 4`
	conf, err := NewConfig(content, true, nil, nil)
	require.NoError(t, err)
	require.Equal(t, 10*time.Second, conf.Session.ErrorDisplay)
	require.Equal(t, DefaultConfig.Session.FatalGrace, conf.Session.FatalGrace)
	require.Equal(t, 4, conf.Layout.Gap)
	require.Equal(t, DefaultConfig.Layout.MinTileSize, conf.Layout.MinTileSize)
	require.Equal(t, "#000000", conf.Broadcast.BackgroundColor)
	require.Equal(t, "info", conf.Logging.Level)
}

func TestConfig_UnknownKeys(t *testing.T) {
	const content = `unknown: 10
session:
  error_display: 10s`
	_, err := NewConfig(content, true, nil, nil)
	require.Error(t, err)

	_, err = NewConfig(content, false, nil, nil)
	require.NoError(t, err)
}

func TestConfig_Broadcast(t *testing.T) {
	const content = `broadcast:
  endpoints:
    - rtmps://live.example.com/app/key
  background_color: "#101010"
  max_sidebar_tiles: 3
  text_overlay:
    content: ON AIR
  image_overlay:
    asset_ref: ~/overlay.png`
	conf, err := NewConfig(content, true, nil, nil)
	require.NoError(t, err)

	home, err := homedir.Dir()
	require.NoError(t, err)
	require.Equal(t, home+"/overlay.png", conf.Broadcast.ImageOverlay.AssetRef)

	engine := conf.EngineConfig()
	require.Equal(t, []string{"rtmps://live.example.com/app/key"}, engine.Endpoints)
	require.Equal(t, "#101010", engine.Composition.BackgroundColor)
	require.Equal(t, 3, engine.Composition.MaxSidebarTiles)
	require.Equal(t, "ON AIR", engine.Composition.TextOverlay.Content)
	require.Equal(t, conf.Layout, engine.Layout)
	require.Equal(t, conf.Session.CommandWorkers, engine.CommandWorkers)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		content string
		err     error
	}{
		{"split too large", "layout:\n  vertical_split: 1.5", ErrInvalidSplit},
		{"broadcast split", "broadcast:\n  presentation_split: 1", ErrInvalidSplit},
		{"aspect ratio", "layout:\n  aspect_ratio: -1", ErrInvalidAspectRatio},
		{"empty endpoint", "broadcast:\n  endpoints: [\"\"]", ErrEmptyEndpoint},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := NewConfig(test.content, true, nil, nil)
			require.ErrorIs(t, err, test.err)
		})
	}
}

func TestConfig_Development(t *testing.T) {
	app := cli.NewApp()
	set := flag.NewFlagSet("test", 0)
	set.Bool("dev", false, "")
	set.Uint("port", 0, "")
	set.String("user-agent", "", "")
	require.NoError(t, set.Parse([]string{"--dev", "--port=9000", "--user-agent=Mozilla/5.0"}))
	c := cli.NewContext(app, set, nil)

	conf, err := NewConfig("", true, c, nil)
	require.NoError(t, err)
	require.True(t, conf.Development)
	require.Equal(t, "debug", conf.Logging.Level)
	require.Equal(t, uint32(9000), conf.View.Port)
	require.Equal(t, "Mozilla/5.0", conf.Call.UserAgent)
}

func TestGeneratedFlags(t *testing.T) {
	generatedFlags, err := GenerateCLIFlags(nil, true)
	require.NoError(t, err)

	wanted := map[string]bool{
		"session.fatal_grace":        true,
		"layout.gap":                 true,
		"broadcast.background_color": true,
		"view.port":                  true,
		"prometheus_port":            true,
	}
	app := cli.NewApp()
	app.Name = "test"
	for _, f := range generatedFlags {
		if wanted[f.Names()[0]] {
			app.Flags = append(app.Flags, f)
		}
	}
	require.Len(t, app.Flags, len(wanted))

	set := flag.NewFlagSet("test", 0)
	set.Duration("session.fatal_grace", 7*time.Second, "") // duration
	set.Int("layout.gap", 12, "")                           // int
	set.String("broadcast.background_color", "#222222", "") // inlined string
	set.Uint64("view.port", 8000, "")                       // uint32
	set.Uint64("prometheus_port", 9999, "")                 // uint32

	c := cli.NewContext(app, set, nil)
	conf, err := NewConfig("", true, c, nil)
	require.NoError(t, err)

	require.Equal(t, 7*time.Second, conf.Session.FatalGrace)
	require.Equal(t, 12, conf.Layout.Gap)
	require.Equal(t, "#222222", conf.Broadcast.BackgroundColor)
	require.Equal(t, uint32(8000), conf.View.Port)
	require.Equal(t, uint32(9999), conf.PrometheusPort)
}

func TestYAMLTags(t *testing.T) {
	require.NoError(t, configtest.CheckYAMLTags(Config{}))
}
