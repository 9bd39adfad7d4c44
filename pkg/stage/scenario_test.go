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
	"context"
	"fmt"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/livekit/livekit-stage/pkg/simcall"
	"github.com/livekit/livekit-stage/pkg/stage/types"
	"github.com/livekit/livekit-stage/pkg/testutils"
)

func joinRoom(t *testing.T, room *simcall.Room, id string) (*Engine, *simcall.Session) {
	s := room.NewSession(simcall.SessionParams{ID: types.ParticipantID(id), StartMedia: true})
	e := newTestEngine(t, s, func(p *EngineParams) {
		p.Identity = types.Identity{UserName: "user-" + id}
	})
	require.NoError(t, e.Join(context.Background()))
	e.Drain()
	return e, s
}

func drainAll(engines ...*Engine) {
	for i := 0; i < 3; i++ {
		for _, e := range engines {
			e.Drain()
		}
	}
}

func waitFor(t *testing.T, engines []*Engine, desc string, cond func(State) bool) {
	testutils.WithTimeout(t, func() string {
		for i, e := range engines {
			if !cond(e.Snapshot()) {
				return fmt.Sprintf("engine %d: %s", i, desc)
			}
		}
		return ""
	})
}

func TestScenarioShareSwitchesLayout(t *testing.T) {
	room := simcall.NewRoom(nil)
	ea, _ := joinRoom(t, room, "a")
	eb, _ := joinRoom(t, room, "b")
	all := []*Engine{ea, eb}

	require.NoError(t, ea.RequestRole("a", types.RoleStage))
	waitFor(t, all, "a on stage", func(st State) bool {
		p, ok := st.Participant("a")
		return ok && p.Role == types.RoleStage && p.RoleConfirmed
	})

	require.NoError(t, ea.ToggleScreenShare())
	waitFor(t, all, "pinned horizontal", func(st State) bool {
		return st.ScreenShareOwner == "a" && st.Layout == types.LayoutPinnedHorizontal
	})
	require.True(t, ea.Snapshot().IsScreenSharing)
	require.False(t, eb.Snapshot().IsScreenSharing)
	require.Equal(t, []types.ParticipantID{"a"}, eb.Composition().Participants.Video)
	require.Equal(t, types.CompositionDominant, eb.Composition().Mode)

	require.NoError(t, ea.ToggleScreenShare())
	waitFor(t, all, "back to grid", func(st State) bool {
		return st.ScreenShareOwner == "" && st.Layout == types.LayoutGrid
	})
}

func TestScenarioLateJoinerIsSynced(t *testing.T) {
	room := simcall.NewRoom(nil)
	ea, _ := joinRoom(t, room, "a")
	eb, sb := joinRoom(t, room, "b")
	drainAll(ea, eb)

	require.NoError(t, ea.RequestRole("a", types.RoleStage))
	drainAll(ea, eb)
	require.NoError(t, ea.ToggleScreenShare())
	drainAll(ea, eb)
	require.NoError(t, ea.ChangeLayout(types.LayoutPresentation))
	require.NoError(t, ea.ToggleOverlay(types.OverlayText))
	waitFor(t, []*Engine{ea, eb}, "presentation with text", func(st State) bool {
		return st.Layout == types.LayoutPresentation && st.Overlays.Text
	})
	sent := sb.Calls(simcall.CommandSendAppMessage)

	ec, _ := joinRoom(t, room, "c")
	waitFor(t, []*Engine{ec}, "synced", func(st State) bool {
		return st.Layout == types.LayoutPresentation && st.Overlays.Text && !st.Overlays.Image
	})
	drainAll(ea, eb, ec)
	require.Equal(t, sent, sb.Calls(simcall.CommandSendAppMessage))
}

func TestScenarioOverlayWhileLive(t *testing.T) {
	room := simcall.NewRoom(nil)
	ea, sa := joinRoom(t, room, "a")
	eb, sb := joinRoom(t, room, "b")
	all := []*Engine{ea, eb}

	require.NoError(t, ea.RequestRole("a", types.RoleStage))
	drainAll(all...)
	require.NoError(t, ea.ToggleLive())
	waitFor(t, all, "live", func(st State) bool {
		return st.Live == types.StreamOn
	})
	drainAll(all...)
	require.Zero(t, sa.Calls(simcall.CommandUpdateLiveStreaming))

	require.NoError(t, ea.ToggleOverlay(types.OverlayText))
	waitFor(t, all, "text overlay", func(st State) bool {
		return st.Overlays.Text
	})
	drainAll(all...)

	require.Equal(t, 1, sa.Calls(simcall.CommandUpdateLiveStreaming))
	require.Zero(t, sb.Calls(simcall.CommandUpdateLiveStreaming))
	layout := room.LiveLayout()
	require.True(t, layout.TextOverlay.Visible)
	require.False(t, layout.ImageOverlay.Visible)
	require.Equal(t, []types.ParticipantID{"a"}, layout.Participants.Video)
}

// replays random roster churn and checks the participant set against a model
func TestScenarioRosterReplay(t *testing.T) {
	room := simcall.NewRoom(nil)
	e, _ := joinRoom(t, room, "local")

	rng := rand.New(rand.NewSource(42))
	roles := []types.Role{"", types.RoleStage, types.RoleBackstage}
	type entry struct {
		role   types.Role
		screen bool
	}
	model := make(map[types.ParticipantID]*entry)

	resolve := func(id types.ParticipantID, role types.Role) types.Role {
		if role != "" {
			return role
		}
		if m, ok := model[id]; ok {
			return m.role
		}
		return types.RoleBackstage
	}

	for step := 0; step < 300; step++ {
		id := types.ParticipantID(fmt.Sprintf("r%d", rng.Intn(6)))
		role := roles[rng.Intn(len(roles))]
		var userData map[string]interface{}
		if role != "" {
			userData = types.RoleUserData(role)
		}

		switch rng.Intn(4) {
		case 0:
			room.AddRemote(types.ParticipantInfo{SessionID: id, UserName: string(id), UserData: userData})
			model[id] = &entry{role: resolve(id, role)}
		case 1:
			if room.UpdateRemote(id, userData) {
				model[id].role = resolve(id, role)
			}
		case 2:
			if room.RemoveRemote(id) {
				delete(model, id)
			}
		case 3:
			started := rng.Intn(2) == 0
			if room.SetRemoteTrack(id, types.TrackKindScreenVideo, started) {
				model[id].screen = started
			}
		}

		if step%25 == 0 {
			e.Drain()
		}
	}
	e.Drain()

	st := e.Snapshot()
	got := make(map[types.ParticipantID]types.Role)
	for _, p := range st.Participants {
		if !p.Local {
			got[p.ID] = p.Role
		}
	}
	want := make(map[types.ParticipantID]types.Role)
	var sharers []types.ParticipantID
	for id, m := range model {
		want[id] = m.role
		if m.role == types.RoleStage && m.screen {
			sharers = append(sharers, id)
		}
	}
	require.Equal(t, want, got)

	sort.Slice(sharers, func(i, j int) bool { return sharers[i] < sharers[j] })
	if len(sharers) == 0 {
		require.Empty(t, st.ScreenShareOwner)
		require.Equal(t, types.LayoutGrid, st.Layout)
	} else {
		require.Equal(t, sharers[0], st.ScreenShareOwner)
	}
}
