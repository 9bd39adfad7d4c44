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

package scenario

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/livekit/livekit-stage/pkg/stage"
	"github.com/livekit/livekit-stage/pkg/stage/types"
	"github.com/livekit/livekit-stage/pkg/view"
)

const goLive = `
name: go-live
local: host
steps:
  - join:
      id: guest
      name: Guest
      role: stage
      tracks: [video, audio]
  - join:
      id: viewer
      name: Viewer
  - intent:
      intent: change_layout
      layout: presentation
  - speaker: guest
  - intent:
      intent: toggle_live
  - message:
      from: viewer
      type: ROLE_REQUEST
  - leave:
      id: nobody
`

func testRunConfig() stage.Config {
	c := stage.DefaultConfig
	c.LayoutDebounce = 5 * time.Millisecond
	c.VolumeDebounce = 5 * time.Millisecond
	c.HealthCheckInterval = time.Hour
	c.Endpoints = []string{"rtmps://live.example.com/app/key"}
	return c
}

func TestParse(t *testing.T) {
	s, err := Parse([]byte(goLive))
	require.NoError(t, err)
	require.Equal(t, "go-live", s.Name)
	require.Equal(t, types.ParticipantID("host"), s.Local)
	require.Len(t, s.Steps, 7)
	require.Equal(t, []types.TrackKind{types.TrackKindVideo, types.TrackKindAudio}, s.Steps[0].Join.Tracks)
	require.Equal(t, view.IntentChangeLayout, s.Steps[2].Intent.Intent)
	require.Equal(t, "speaker guest", s.Steps[3].String())

	t.Run("default local", func(t *testing.T) {
		s, err := Parse([]byte("steps:\n  - wait: 1ms\n"))
		require.NoError(t, err)
		require.Equal(t, types.ParticipantID("local"), s.Local)
		require.Equal(t, time.Millisecond, s.Steps[0].Wait)
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := Parse([]byte("name: empty\n"))
		require.ErrorIs(t, err, ErrNoSteps)

		_, err = Parse([]byte("steps:\n  - {}\n"))
		require.ErrorIs(t, err, ErrEmptyStep)

		_, err = Parse([]byte("steps:\n  - speaker: a\n    wait: 1s\n"))
		require.ErrorIs(t, err, ErrMultiAction)

		_, err = Parse([]byte("steps:\n  - dance: a\n"))
		require.Error(t, err)
	})
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(goLive), 0600))

	t.Setenv("SCENARIO_DIR", dir)
	s, err := Load("${SCENARIO_DIR}/scenario.yaml")
	require.NoError(t, err)
	require.Equal(t, "go-live", s.Name)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
}

func TestRun(t *testing.T) {
	s, err := Parse([]byte(goLive))
	require.NoError(t, err)

	report, err := Run(context.Background(), s, RunParams{Config: testRunConfig()})
	require.NoError(t, err)
	require.Len(t, report.Results, len(s.Steps))

	// layout change without a share, role request without a role, unknown participant
	require.Equal(t, 3, report.Failed())
	require.ErrorIs(t, report.Results[2].Err, stage.ErrLayoutNotAllowed)
	require.Error(t, report.Results[5].Err)
	require.ErrorIs(t, report.Results[6].Err, errUnknownParticipant)
	require.NoError(t, report.Results[4].Err)

	st := report.State
	require.Equal(t, types.CallJoined, st.CallState)
	require.Equal(t, types.StreamOn, st.Live)
	require.Equal(t, types.LayoutGrid, st.Layout)
	require.Equal(t, types.ParticipantID("guest"), st.ActiveSpeaker)

	guest, ok := st.Participant("guest")
	require.True(t, ok)
	require.Equal(t, types.RoleStage, guest.Role)
	require.True(t, guest.Video)

	viewer, ok := st.Participant("viewer")
	require.True(t, ok)
	require.Equal(t, types.RoleBackstage, viewer.Role)

	require.NotNil(t, report.Live)
	require.Contains(t, report.Live.Participants.Video, types.ParticipantID("guest"))
	require.NotContains(t, report.Live.Participants.Video, types.ParticipantID("viewer"))
}

func TestRunCancelled(t *testing.T) {
	s, err := Parse([]byte("steps:\n  - wait: 1h\n"))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	report, err := Run(ctx, s, RunParams{Config: testRunConfig()})
	require.NoError(t, err)
	require.ErrorIs(t, report.Results[0].Err, context.DeadlineExceeded)
}
