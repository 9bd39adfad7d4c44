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
	"errors"
	"maps"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/thoas/go-funk"

	"github.com/livekit/livekit-stage/pkg/broadcast"
	"github.com/livekit/livekit-stage/pkg/simcall"
	"github.com/livekit/livekit-stage/pkg/stage/protocol"
	"github.com/livekit/livekit-stage/pkg/stage/types"
	"github.com/livekit/livekit-stage/pkg/stage/types/typesfakes"
	"github.com/livekit/livekit-stage/pkg/testutils"
)

const testEndpoint = "rtmp://live.example.com/app/stream-key"

func testConfig() Config {
	c := DefaultConfig
	c.ErrorDisplay = 30 * time.Millisecond
	c.LiveErrorDisplay = 30 * time.Millisecond
	c.FatalGrace = 20 * time.Millisecond
	c.LayoutDebounce = 5 * time.Millisecond
	c.VolumeDebounce = 5 * time.Millisecond
	c.SubscriptionRetryDelay = 10 * time.Millisecond
	c.HealthCheckInterval = time.Hour
	c.Endpoints = []string{testEndpoint}
	return c
}

// fakeCall wraps the generated fake and keeps the handlers the engine attaches
type fakeCall struct {
	*typesfakes.FakeCallSession

	lock     sync.Mutex
	handlers map[types.EventType]types.EventHandler
}

func newFakeCall(roster ...types.ParticipantInfo) *fakeCall {
	f := &fakeCall{
		FakeCallSession: &typesfakes.FakeCallSession{},
		handlers:        make(map[types.EventType]types.EventHandler),
	}
	f.OnCalls(func(t types.EventType, h types.EventHandler) {
		f.lock.Lock()
		defer f.lock.Unlock()
		f.handlers[t] = h
	})
	f.OffCalls(func(t types.EventType) {
		f.lock.Lock()
		defer f.lock.Unlock()
		delete(f.handlers, t)
	})
	f.JoinCalls(func(context.Context, types.Identity, string) error {
		f.emit(types.JoinedEvent{Participants: roster})
		return nil
	})
	return f
}

func (f *fakeCall) emit(evt types.Event) {
	f.lock.Lock()
	h := f.handlers[evt.Type()]
	f.lock.Unlock()
	if h != nil {
		h(evt)
	}
}

func (f *fakeCall) attached() int {
	f.lock.Lock()
	defer f.lock.Unlock()
	return len(f.handlers)
}

// sentMessages decodes every app message the engine sent
func (f *fakeCall) sentMessages(t *testing.T) []*protocol.Message {
	var out []*protocol.Message
	for i := 0; i < f.SendAppMessageCallCount(); i++ {
		_, data, _ := f.SendAppMessageArgsForCall(i)
		m, err := protocol.Decode(data)
		require.NoError(t, err)
		out = append(out, m)
	}
	return out
}

func participant(id string, local bool, role types.Role) types.ParticipantInfo {
	info := types.ParticipantInfo{
		SessionID: types.ParticipantID(id),
		UserName:  "user-" + id,
		Local:     local,
	}
	if role != "" {
		info.UserData = types.RoleUserData(role)
	}
	return info
}

func withTrack(info types.ParticipantInfo, kind types.TrackKind, state types.TrackState) types.ParticipantInfo {
	tracks := maps.Clone(info.Tracks)
	if tracks == nil {
		tracks = make(map[types.TrackKind]types.TrackInfo)
	}
	tracks[kind] = types.TrackInfo{Track: simcall.NewTrack(kind), State: state}
	info.Tracks = tracks
	return info
}

func trackEvent(kind types.EventType, info types.ParticipantInfo, track types.TrackKind) types.TrackEvent {
	return types.TrackEvent{Kind: kind, Participant: info, TrackKind: track, Track: info.Track(track).Track}
}

func updated(info types.ParticipantInfo) types.ParticipantEvent {
	return types.ParticipantEvent{Kind: types.EventParticipantUpdated, Participant: info}
}

func appMessage(t *testing.T, from string, m *protocol.Message) types.AppMessageEvent {
	data, err := protocol.Encode(m)
	require.NoError(t, err)
	return types.AppMessageEvent{FromID: types.ParticipantID(from), Data: data}
}

func newTestEngine(t *testing.T, session types.CallSession, opts ...func(*EngineParams)) *Engine {
	params := EngineParams{
		Session:  session,
		Config:   testConfig(),
		Identity: types.Identity{UserName: "tester"},
		RoomURL:  "https://example.daily.co/stage",
	}
	for _, o := range opts {
		o(&params)
	}
	e := NewEngine(params)
	t.Cleanup(e.Close)
	return e
}

func joinedEngine(t *testing.T, f *fakeCall, opts ...func(*EngineParams)) *Engine {
	e := newTestEngine(t, f, opts...)
	require.NoError(t, e.Join(context.Background()))
	e.Drain()
	require.Equal(t, types.CallJoined, e.Snapshot().CallState)
	return e
}

func stageIDs(ps []ParticipantState) []types.ParticipantID {
	return funk.Map(ps, func(p ParticipantState) types.ParticipantID { return p.ID }).([]types.ParticipantID)
}

func TestJoin(t *testing.T) {
	t.Run("local participant starts backstage", func(t *testing.T) {
		f := newFakeCall(
			participant("a", true, types.RoleStage),
			participant("b", false, types.RoleStage),
			participant("c", false, ""),
		)
		e := joinedEngine(t, f)

		st := e.Snapshot()
		require.Equal(t, types.ParticipantID("a"), st.LocalID)
		require.Equal(t, types.RoleBackstage, st.LocalRole)
		require.Len(t, st.Participants, 3)
		require.Equal(t, []types.ParticipantID{"b"}, stageIDs(e.StageParticipants()))
		require.Equal(t, []types.ParticipantID{"a", "c"}, stageIDs(e.BackstageParticipants()))

		require.Equal(t, 1, f.SetUserDataCallCount())
		_, data := f.SetUserDataArgsForCall(0)
		require.Equal(t, types.RoleUserData(types.RoleBackstage), data)
		require.Equal(t, len(types.EventTypes), f.attached())
	})

	t.Run("join twice", func(t *testing.T) {
		e := joinedEngine(t, newFakeCall(participant("a", true, "")))
		require.ErrorIs(t, e.Join(context.Background()), ErrAlreadyJoined)
	})

	t.Run("intents need a joined call", func(t *testing.T) {
		e := newTestEngine(t, newFakeCall())
		require.ErrorIs(t, e.ToggleLive(), ErrNotJoined)
		require.ErrorIs(t, e.ChangeLayout(types.LayoutGrid), ErrNotJoined)
		require.ErrorIs(t, e.ToggleOverlay(types.OverlayText), ErrNotJoined)
		require.ErrorIs(t, e.Leave(), ErrNotJoined)
		require.Nil(t, e.Composition())
	})

	t.Run("join failure ends the call", func(t *testing.T) {
		f := newFakeCall()
		f.JoinReturns(errors.New("room not found"))
		e := newTestEngine(t, f)
		ended := make(chan struct{})
		e.OnCallEnded(func() { close(ended) })

		require.NoError(t, e.Join(context.Background()))
		e.Drain()
		st := e.Snapshot()
		require.Equal(t, types.CallLeft, st.CallState)
		require.Contains(t, st.Error, noticeJoinFailed)
		require.Zero(t, f.attached())

		select {
		case <-ended:
		case <-time.After(time.Second):
			t.Fatal("call ended not signalled")
		}
	})
}

func TestLeave(t *testing.T) {
	f := newFakeCall(participant("a", true, ""))
	f.LeaveCalls(func(context.Context) error {
		f.emit(types.LeftEvent{})
		return nil
	})
	e := joinedEngine(t, f)
	ended := make(chan struct{})
	e.OnCallEnded(func() { close(ended) })

	require.NoError(t, e.Leave())
	e.Drain()
	require.Equal(t, types.CallLeft, e.Snapshot().CallState)
	require.Equal(t, 1, f.DestroyCallCount())
	require.Zero(t, f.attached())
	<-ended
}

func TestParticipantEvents(t *testing.T) {
	f := newFakeCall(participant("a", true, ""))
	e := joinedEngine(t, f)

	// unknown participant in an update is added
	f.emit(updated(participant("b", false, types.RoleStage)))
	e.Drain()
	p, ok := e.Snapshot().Participant("b")
	require.True(t, ok)
	require.True(t, p.RoleConfirmed)
	require.Equal(t, types.RoleStage, p.Role)

	// missing metadata falls back to the cached role
	f.emit(updated(participant("b", false, "")))
	e.Drain()
	p, _ = e.Snapshot().Participant("b")
	require.Equal(t, types.RoleStage, p.Role)
	require.False(t, p.RoleConfirmed)

	// duplicate delivery is idempotent
	joined := types.ParticipantEvent{Kind: types.EventParticipantJoined, Participant: participant("c", false, "")}
	f.emit(joined)
	f.emit(joined)
	e.Drain()
	require.Len(t, e.Snapshot().Participants, 3)

	f.emit(types.ParticipantEvent{Kind: types.EventParticipantLeft, Participant: participant("b", false, "")})
	e.Drain()
	_, ok = e.Snapshot().Participant("b")
	require.False(t, ok)

	// a rejoin does not inherit the old role
	f.emit(types.ParticipantEvent{Kind: types.EventParticipantJoined, Participant: participant("b", false, "")})
	e.Drain()
	p, _ = e.Snapshot().Participant("b")
	require.Equal(t, types.RoleBackstage, p.Role)
}

func TestScreenShare(t *testing.T) {
	local := participant("a", true, "")

	t.Run("backstage cannot share", func(t *testing.T) {
		f := newFakeCall(local)
		e := joinedEngine(t, f)
		require.ErrorIs(t, e.ToggleScreenShare(), ErrShareRequiresStage)
		require.Zero(t, f.StartScreenShareCallCount())
	})

	t.Run("owner drives the layout", func(t *testing.T) {
		f := newFakeCall(local)
		e := joinedEngine(t, f)
		onStage := participant("a", true, types.RoleStage)
		f.emit(updated(onStage))
		e.Drain()

		require.NoError(t, e.ToggleScreenShare())
		e.Drain()
		require.Equal(t, 1, f.StartScreenShareCallCount())
		require.False(t, e.Snapshot().IsScreenSharing)

		sharing := withTrack(onStage, types.TrackKindScreenVideo, types.TrackStatePlayable)
		f.emit(trackEvent(types.EventTrackStarted, sharing, types.TrackKindScreenVideo))
		e.Drain()
		st := e.Snapshot()
		require.True(t, st.IsScreenSharing)
		require.Equal(t, types.ParticipantID("a"), st.ScreenShareOwner)
		require.Equal(t, types.LayoutPinnedHorizontal, st.Layout)
		require.NotContains(t, st.AvailableLayouts, types.LayoutGrid)

		require.NoError(t, e.ToggleScreenShare())
		e.Drain()
		require.Equal(t, 1, f.StopScreenShareCallCount())

		f.emit(trackEvent(types.EventTrackStopped, sharing, types.TrackKindScreenVideo))
		e.Drain()
		st = e.Snapshot()
		require.False(t, st.IsScreenSharing)
		require.Empty(t, st.ScreenShareOwner)
		require.Equal(t, types.LayoutGrid, st.Layout)
	})

	t.Run("demotion stops the share", func(t *testing.T) {
		f := newFakeCall(local)
		e := joinedEngine(t, f)
		sharing := withTrack(participant("a", true, types.RoleStage), types.TrackKindScreenVideo, types.TrackStatePlayable)
		f.emit(updated(sharing))
		f.emit(trackEvent(types.EventTrackStarted, sharing, types.TrackKindScreenVideo))
		e.Drain()
		require.True(t, e.Snapshot().IsScreenSharing)

		demoted := sharing
		demoted.UserData = types.RoleUserData(types.RoleBackstage)
		f.emit(updated(demoted))
		e.Drain()

		st := e.Snapshot()
		require.False(t, st.IsScreenSharing)
		require.Empty(t, st.ScreenShareOwner)
		require.Equal(t, types.LayoutGrid, st.Layout)
		require.Equal(t, 1, f.StopScreenShareCallCount())
	})

	t.Run("demotion during a pending start", func(t *testing.T) {
		for _, trackFirst := range []bool{false, true} {
			f := newFakeCall(local)
			release := make(chan struct{})
			f.StartScreenShareCalls(func(context.Context) error {
				<-release
				return nil
			})
			e := joinedEngine(t, f)
			onStage := participant("a", true, types.RoleStage)
			f.emit(updated(onStage))
			e.Drain()

			require.NoError(t, e.ToggleScreenShare())
			demoted := participant("a", true, types.RoleBackstage)
			f.emit(updated(demoted))
			testutils.WithTimeout(t, func() string {
				if p, _ := e.Snapshot().Participant("a"); p.Role != types.RoleBackstage {
					return "local participant not demoted"
				}
				return ""
			})

			sharing := withTrack(demoted, types.TrackKindScreenVideo, types.TrackStatePlayable)
			if trackFirst {
				f.emit(trackEvent(types.EventTrackStarted, sharing, types.TrackKindScreenVideo))
				testutils.WithTimeout(t, func() string {
					if !e.Snapshot().IsScreenSharing {
						return "share not reported"
					}
					return ""
				})
				require.Zero(t, f.StopScreenShareCallCount())
			}
			close(release)
			e.Drain()
			if !trackFirst {
				f.emit(trackEvent(types.EventTrackStarted, sharing, types.TrackKindScreenVideo))
				e.Drain()
			}

			st := e.Snapshot()
			require.False(t, st.IsScreenSharing)
			require.Empty(t, st.ScreenShareOwner)
			require.Equal(t, 1, f.StopScreenShareCallCount())
		}
	})

	t.Run("failed start rolls back", func(t *testing.T) {
		f := newFakeCall(local)
		f.StartScreenShareReturns(errors.New("permission denied"))
		e := joinedEngine(t, f)
		f.emit(updated(participant("a", true, types.RoleStage)))
		e.Drain()

		require.NoError(t, e.ToggleScreenShare())
		e.Drain()
		st := e.Snapshot()
		require.False(t, st.IsScreenSharing)
		require.False(t, st.ShareBusy)
		require.Equal(t, noticeShareFailed, st.Error)
	})

	t.Run("remote owner is the first stage sharer", func(t *testing.T) {
		f := newFakeCall(local)
		e := joinedEngine(t, f)
		c := withTrack(participant("c", false, types.RoleStage), types.TrackKindScreenVideo, types.TrackStatePlayable)
		b := withTrack(participant("b", false, types.RoleBackstage), types.TrackKindScreenVideo, types.TrackStatePlayable)
		f.emit(updated(c))
		f.emit(updated(b))
		f.emit(trackEvent(types.EventTrackStarted, c, types.TrackKindScreenVideo))
		f.emit(trackEvent(types.EventTrackStarted, b, types.TrackKindScreenVideo))
		e.Drain()
		owner, ok := e.ScreenShareOwner()
		require.True(t, ok)
		require.Equal(t, types.ParticipantID("c"), owner)

		// b is promoted and sorts first
		b.UserData = types.RoleUserData(types.RoleStage)
		f.emit(updated(b))
		e.Drain()
		owner, _ = e.ScreenShareOwner()
		require.Equal(t, types.ParticipantID("b"), owner)
		require.Equal(t, types.LayoutPinnedHorizontal, e.Snapshot().Layout)

		f.emit(types.ParticipantEvent{Kind: types.EventParticipantLeft, Participant: b})
		f.emit(types.ParticipantEvent{Kind: types.EventParticipantLeft, Participant: c})
		e.Drain()
		_, ok = e.ScreenShareOwner()
		require.False(t, ok)
		require.Equal(t, types.LayoutGrid, e.Snapshot().Layout)
	})
}

func TestHealthCheckRestartsShare(t *testing.T) {
	f := newFakeCall(participant("a", true, ""))
	e := joinedEngine(t, f, func(p *EngineParams) {
		p.Config.HealthCheckInterval = 5 * time.Millisecond
		p.Config.HealthCheckThreshold = 2
	})
	onStage := participant("a", true, types.RoleStage)
	f.emit(updated(onStage))

	// the SDK reports the share as loading without a track
	loading := onStage
	loading.Tracks = map[types.TrackKind]types.TrackInfo{
		types.TrackKindScreenVideo: {State: types.TrackStateLoading},
	}
	f.emit(types.TrackEvent{Kind: types.EventTrackStarted, Participant: loading, TrackKind: types.TrackKindScreenVideo})
	e.Drain()
	st := e.Snapshot()
	require.True(t, st.IsScreenSharing)
	require.Empty(t, st.ScreenShareOwner)

	testutils.WithTimeout(t, func() string {
		if f.StopScreenShareCallCount() == 0 || f.StartScreenShareCallCount() == 0 {
			return "share was not restarted"
		}
		return ""
	})
}

func TestChangeLayout(t *testing.T) {
	f := newFakeCall(participant("a", true, ""), participant("b", false, types.RoleStage))
	e := joinedEngine(t, f)

	require.ErrorIs(t, e.ChangeLayout("mosaic"), ErrInvalidLayout)
	for _, l := range []types.Layout{types.LayoutPinnedHorizontal, types.LayoutPinnedVertical, types.LayoutFullScreen, types.LayoutPresentation} {
		require.ErrorIs(t, e.ChangeLayout(l), ErrLayoutNotAllowed, l)
		require.Equal(t, types.LayoutGrid, e.Snapshot().Layout)
	}
	require.NoError(t, e.ChangeLayout(types.LayoutGrid))
	e.Drain()
	require.Zero(t, f.SendAppMessageCallCount())

	b := withTrack(participant("b", false, types.RoleStage), types.TrackKindScreenVideo, types.TrackStatePlayable)
	f.emit(trackEvent(types.EventTrackStarted, b, types.TrackKindScreenVideo))
	e.Drain()
	require.Equal(t, types.LayoutPinnedHorizontal, e.Snapshot().Layout)

	require.ErrorIs(t, e.ChangeLayout(types.LayoutGrid), ErrLayoutNotAllowed)
	require.NoError(t, e.ChangeLayout(types.LayoutPresentation))
	e.Drain()
	require.Equal(t, types.LayoutPresentation, e.Snapshot().Layout)

	msgs := f.sentMessages(t)
	require.Len(t, msgs, 1)
	require.Equal(t, protocol.MessageLayoutChange, msgs[0].Type)
	require.Equal(t, types.LayoutPresentation, msgs[0].Layout)
	require.Equal(t, types.ParticipantID("a"), msgs[0].Origin)
	_, _, to := f.SendAppMessageArgsForCall(0)
	require.Equal(t, types.BroadcastTarget, to)

	comp := e.Composition()
	require.Equal(t, types.CompositionDominant, comp.Mode)
	require.Equal(t, []types.ParticipantID{"b"}, comp.SidebarParticipants)
}

func TestAppMessages(t *testing.T) {
	f := newFakeCall(participant("a", true, ""), participant("b", false, ""))
	e := joinedEngine(t, f)

	t.Run("last layout wins", func(t *testing.T) {
		f.emit(appMessage(t, "b", protocol.NewLayoutChange("b", types.LayoutPinnedVertical)))
		f.emit(appMessage(t, "b", protocol.NewLayoutChange("b", types.LayoutFullScreen)))
		e.Drain()
		require.Equal(t, types.LayoutFullScreen, e.Snapshot().Layout)
	})

	t.Run("ignored messages", func(t *testing.T) {
		dup := protocol.NewLayoutChange("b", types.LayoutPinnedVertical)
		f.emit(appMessage(t, "b", dup))
		f.emit(appMessage(t, "b", protocol.NewLayoutChange("b", types.LayoutGrid)))
		f.emit(appMessage(t, "b", dup))
		f.emit(appMessage(t, "b", protocol.NewLayoutChange("a", types.LayoutPresentation)))
		f.emit(types.AppMessageEvent{FromID: "b", Data: []byte(`{"type":"CHAT","text":"hi"}`)})
		f.emit(types.AppMessageEvent{FromID: "b", Data: []byte(`not json`)})
		f.emit(types.AppMessageEvent{FromID: "b", Data: []byte(`{"type":"LAYOUT_CHANGE","layout":"mosaic"}`)})
		e.Drain()
		require.Equal(t, types.LayoutGrid, e.Snapshot().Layout)
	})

	t.Run("overlay and recording settings", func(t *testing.T) {
		f.emit(appMessage(t, "b", protocol.NewOverlayUpdate("b", types.OverlayImage, true)))
		f.emit(appMessage(t, "b", protocol.NewRecordingSetting("b", true)))
		e.Drain()
		st := e.Snapshot()
		require.True(t, st.Overlays.Image)
		require.False(t, st.Overlays.Text)
		require.True(t, st.RecordingEnabled)
		// adopting a setting does not send anything back
		require.Zero(t, f.SendAppMessageCallCount())
	})

	t.Run("role request", func(t *testing.T) {
		f.emit(appMessage(t, "b", protocol.NewRoleRequest("b", types.RoleStage)))
		e.Drain()
		require.Equal(t, 2, f.SetUserDataCallCount())
		_, data := f.SetUserDataArgsForCall(1)
		require.Equal(t, types.RoleUserData(types.RoleStage), data)
	})
}

func TestRoleRequests(t *testing.T) {
	f := newFakeCall(participant("a", true, ""), participant("b", false, ""))
	e := joinedEngine(t, f)

	require.ErrorIs(t, e.RequestRole("b", "host"), ErrInvalidRole)
	require.ErrorIs(t, e.ToggleRole("z"), ErrUnknownParticipant)

	require.NoError(t, e.ToggleRole("b"))
	e.Drain()
	msgs := f.sentMessages(t)
	require.Len(t, msgs, 1)
	require.Equal(t, protocol.MessageRoleRequest, msgs[0].Type)
	require.Equal(t, types.RoleStage, msgs[0].NewRole)
	_, _, to := f.SendAppMessageArgsForCall(0)
	require.Equal(t, types.ParticipantID("b"), to)

	// roles only change on the SDK's update
	p, _ := e.Snapshot().Participant("b")
	require.Equal(t, types.RoleBackstage, p.Role)

	require.NoError(t, e.RequestRole("a", types.RoleBackstage))
	require.NoError(t, e.ToggleRole("a"))
	e.Drain()
	require.Equal(t, 2, f.SetUserDataCallCount())

	f.SetUserDataReturns(errors.New("rate limited"))
	require.NoError(t, e.ToggleRole("a"))
	e.Drain()
	require.Equal(t, noticeSetRoleFailed, e.Snapshot().Error)
	testutils.WithTimeout(t, func() string {
		if e.Snapshot().Error != "" {
			return "error not cleared"
		}
		return ""
	})
}

func TestActiveSpeakerIsSticky(t *testing.T) {
	f := newFakeCall(participant("a", true, ""), participant("b", false, types.RoleStage), participant("c", false, types.RoleStage))
	e := joinedEngine(t, f)

	f.emit(types.ActiveSpeakerEvent{PeerID: "b"})
	f.emit(types.ActiveSpeakerEvent{PeerID: ""})
	e.Drain()
	require.Equal(t, types.ParticipantID("b"), e.Snapshot().ActiveSpeaker)
	policy := e.SubscriptionPolicy()
	require.Equal(t, types.VideoLayerHigh, policy["b"].VideoLayer)
	require.Equal(t, types.VideoLayerLow, policy["c"].VideoLayer)

	f.emit(types.ActiveSpeakerEvent{PeerID: "c"})
	e.Drain()
	require.Equal(t, types.ParticipantID("c"), e.Snapshot().ActiveSpeaker)
}

func TestSubscriptions(t *testing.T) {
	t.Run("audio follows roles", func(t *testing.T) {
		f := newFakeCall(participant("a", true, ""), participant("b", false, types.RoleStage), participant("c", false, ""))
		e := joinedEngine(t, f)

		policy := e.SubscriptionPolicy()
		require.Len(t, policy, 2)
		require.True(t, policy["b"].Audio)
		require.True(t, policy["c"].Audio)
		for _, s := range policy {
			require.True(t, s.Video)
			require.True(t, s.ScreenVideo)
			require.True(t, s.ScreenAudio)
		}
		n := f.UpdateReceiveSettingsCallCount()
		require.Positive(t, n)
		_, sent := f.UpdateReceiveSettingsArgsForCall(n - 1)
		require.Equal(t, policy, sent)

		f.emit(updated(participant("a", true, types.RoleStage)))
		e.Drain()
		policy = e.SubscriptionPolicy()
		require.True(t, policy["b"].Audio)
		require.False(t, policy["c"].Audio)
		_, sent = f.UpdateReceiveSettingsArgsForCall(f.UpdateReceiveSettingsCallCount() - 1)
		require.Equal(t, policy, sent)

		// nothing changed, nothing sent
		n = f.UpdateReceiveSettingsCallCount()
		f.emit(updated(participant("a", true, types.RoleStage)))
		e.Drain()
		require.Equal(t, n, f.UpdateReceiveSettingsCallCount())
	})

	t.Run("failed update is retried once", func(t *testing.T) {
		f := newFakeCall(participant("a", true, ""), participant("b", false, ""))
		f.UpdateReceiveSettingsReturns(errors.New("not connected"))
		e := joinedEngine(t, f, func(p *EngineParams) {
			p.Config.ErrorDisplay = time.Minute
		})

		testutils.WithTimeout(t, func() string {
			if f.UpdateReceiveSettingsCallCount() < 2 {
				return "update not retried"
			}
			if e.Snapshot().Error != noticeSubscriptionFailed {
				return "failure not surfaced"
			}
			return ""
		})
		time.Sleep(30 * time.Millisecond)
		require.Equal(t, 2, f.UpdateReceiveSettingsCallCount())
	})
}

func TestVolumes(t *testing.T) {
	registry := &typesfakes.FakeTrackRegistry{}
	f := newFakeCall(participant("a", true, ""), participant("b", false, types.RoleStage), participant("c", false, ""))
	e := joinedEngine(t, f, func(p *EngineParams) {
		p.Registry = registry
	})

	last := func() map[types.ParticipantID]float64 {
		out := make(map[types.ParticipantID]float64)
		for i := 0; i < registry.SetVolumeCallCount(); i++ {
			id, v := registry.SetVolumeArgsForCall(i)
			out[id] = v
		}
		return out
	}
	testutils.WithTimeout(t, func() string {
		if len(last()) != 2 {
			return "volumes not applied"
		}
		return ""
	})
	require.Equal(t, map[types.ParticipantID]float64{"b": 1, "c": 1}, last())

	require.NoError(t, e.SetStageVolume(0.4))
	require.NoError(t, e.ToggleBackstageMute())
	require.Equal(t, map[types.ParticipantID]float64{"b": 0.4, "c": 0}, last())
	p, _ := e.Snapshot().Participant("c")
	require.Zero(t, p.Volume)

	require.NoError(t, e.SetStageVolume(3))
	require.Equal(t, 1.0, e.Snapshot().StageVolume)

	// going on stage resets the personal mix
	require.NoError(t, e.SetStageVolume(0.2))
	f.emit(updated(participant("a", true, types.RoleStage)))
	e.Drain()
	st := e.Snapshot()
	require.Equal(t, 1.0, st.StageVolume)
	require.False(t, st.BackstageMuted)

	b := withTrack(participant("b", false, types.RoleStage), types.TrackKindAudio, types.TrackStatePlayable)
	f.emit(trackEvent(types.EventTrackStarted, b, types.TrackKindAudio))
	e.Drain()
	require.Equal(t, 1, registry.EnsurePlayingCallCount())
	_, id := registry.EnsurePlayingArgsForCall(0)
	require.Equal(t, types.ParticipantID("b"), id)

	f.emit(types.ParticipantEvent{Kind: types.EventParticipantLeft, Participant: participant("c", false, "")})
	e.Drain()
	require.Equal(t, 1, registry.ForgetCallCount())
	require.Equal(t, types.ParticipantID("c"), registry.ForgetArgsForCall(0))
}

func TestLive(t *testing.T) {
	roster := []types.ParticipantInfo{
		participant("a", true, ""),
		participant("b", false, types.RoleStage),
		participant("c", false, types.RoleStage),
	}

	t.Run("event sourced lifecycle", func(t *testing.T) {
		channel := broadcast.NewChannel()
		defer channel.Close()
		f := newFakeCall(roster...)
		e := joinedEngine(t, f, func(p *EngineParams) {
			p.Channel = channel
		})

		require.NoError(t, e.ToggleLive())
		e.Drain()
		require.Equal(t, types.StreamStarting, e.Snapshot().Live)
		require.ErrorIs(t, e.ToggleLive(), ErrLiveTransitionPending)
		require.Equal(t, 1, f.StartLiveStreamingCallCount())
		_, config := f.StartLiveStreamingArgsForCall(0)
		require.Equal(t, []string{testEndpoint}, config.Endpoints)
		require.Equal(t, []types.ParticipantID{"b", "c"}, config.Layout.Participants.Video)
		require.Zero(t, f.StartRecordingCallCount())

		f.emit(types.StreamingEvent{Kind: types.EventLiveStreamingStarted})
		e.Drain()
		require.Equal(t, types.StreamOn, e.Snapshot().Live)
		require.Zero(t, f.UpdateLiveStreamingCallCount())
		channel.Flush()
		live, _ := channel.Live.Value()
		require.True(t, live)

		// one update per overlay toggle
		require.NoError(t, e.ToggleOverlay(types.OverlayText))
		e.Drain()
		require.Equal(t, 1, f.UpdateLiveStreamingCallCount())
		_, req := f.UpdateLiveStreamingArgsForCall(0)
		require.True(t, req.TextOverlay.Visible)
		require.False(t, req.ImageOverlay.Visible)

		// a stage change is pushed
		f.emit(updated(participant("c", false, types.RoleBackstage)))
		e.Drain()
		require.Equal(t, 2, f.UpdateLiveStreamingCallCount())
		_, req = f.UpdateLiveStreamingArgsForCall(1)
		require.Equal(t, []types.ParticipantID{"b"}, req.Participants.Video)

		// a camera track does not change the composition
		f.emit(trackEvent(types.EventTrackStarted, withTrack(roster[1], types.TrackKindVideo, types.TrackStatePlayable), types.TrackKindVideo))
		e.Drain()
		require.Equal(t, 2, f.UpdateLiveStreamingCallCount())

		require.NoError(t, e.ToggleLive())
		e.Drain()
		require.Equal(t, types.StreamStopping, e.Snapshot().Live)
		f.emit(types.StreamingEvent{Kind: types.EventLiveStreamingStopped})
		e.Drain()
		require.Equal(t, types.StreamOff, e.Snapshot().Live)
	})

	t.Run("toggle through the channel", func(t *testing.T) {
		channel := broadcast.NewChannel()
		defer channel.Close()
		f := newFakeCall(roster...)
		joinedEngine(t, f, func(p *EngineParams) {
			p.Channel = channel
		})

		channel.ToggleLive.Publish(struct{}{})
		testutils.WithTimeout(t, func() string {
			if f.StartLiveStreamingCallCount() != 1 {
				return "live stream not started"
			}
			return ""
		})
	})

	t.Run("start failure", func(t *testing.T) {
		f := newFakeCall(roster...)
		f.StartLiveStreamingReturns(errors.New("quota exceeded"))
		e := joinedEngine(t, f)

		require.NoError(t, e.ToggleLive())
		e.Drain()
		st := e.Snapshot()
		require.Equal(t, types.StreamOff, st.Live)
		require.Equal(t, noticeLiveStartFailed, st.Error)
	})

	t.Run("error event", func(t *testing.T) {
		f := newFakeCall(roster...)
		e := joinedEngine(t, f)
		f.emit(types.StreamingEvent{Kind: types.EventLiveStreamingStarted})
		f.emit(types.StreamingEvent{Kind: types.EventLiveStreamingError, Message: "ingest lost"})
		e.Drain()
		st := e.Snapshot()
		require.Equal(t, types.StreamOff, st.Live)
		require.Equal(t, noticeLiveError, st.Error)
	})

	t.Run("recording follows live", func(t *testing.T) {
		f := newFakeCall(roster...)
		e := joinedEngine(t, f)

		require.NoError(t, e.SetRecordingEnabled(true))
		require.NoError(t, e.ToggleLive())
		e.Drain()
		require.Equal(t, 1, f.StartRecordingCallCount())
		_, config := f.StartRecordingArgsForCall(0)
		require.Empty(t, config.Endpoints)
		require.Equal(t, types.StreamStarting, e.Snapshot().Recording)

		msgs := f.sentMessages(t)
		require.Len(t, msgs, 1)
		require.Equal(t, protocol.MessageRecordingSetting, msgs[0].Type)
		require.True(t, *msgs[0].Enabled)

		f.emit(types.StreamingEvent{Kind: types.EventLiveStreamingStarted})
		f.emit(types.StreamingEvent{Kind: types.EventRecordingStarted})
		e.Drain()
		require.Equal(t, types.StreamOn, e.Snapshot().Recording)

		f.emit(updated(participant("a", true, types.RoleStage)))
		e.Drain()
		require.Equal(t, 1, f.UpdateLiveStreamingCallCount())
		require.Equal(t, 1, f.UpdateRecordingCallCount())

		require.NoError(t, e.SetRecordingEnabled(false))
		e.Drain()
		require.Equal(t, 1, f.StopRecordingCallCount())
		require.Zero(t, f.StopLiveStreamingCallCount())
	})

	t.Run("late recording is stopped with live", func(t *testing.T) {
		f := newFakeCall(roster...)
		e := joinedEngine(t, f)

		require.NoError(t, e.SetRecordingEnabled(true))
		require.NoError(t, e.ToggleLive())
		e.Drain()
		f.emit(types.StreamingEvent{Kind: types.EventLiveStreamingStarted})
		e.Drain()
		require.Equal(t, types.StreamStarting, e.Snapshot().Recording)

		require.NoError(t, e.ToggleLive())
		e.Drain()
		require.Zero(t, f.StopRecordingCallCount())

		f.emit(types.StreamingEvent{Kind: types.EventLiveStreamingStopped})
		f.emit(types.StreamingEvent{Kind: types.EventRecordingStarted})
		e.Drain()
		st := e.Snapshot()
		require.Equal(t, types.StreamOff, st.Live)
		require.Equal(t, types.StreamStopping, st.Recording)
		require.Equal(t, 1, f.StopRecordingCallCount())

		f.emit(types.StreamingEvent{Kind: types.EventRecordingStopped})
		e.Drain()
		require.Equal(t, types.StreamOff, e.Snapshot().Recording)
	})

	t.Run("disabling stops a recording without live", func(t *testing.T) {
		f := newFakeCall(roster...)
		e := joinedEngine(t, f)

		require.NoError(t, e.SetRecordingEnabled(true))
		e.Drain()
		require.Zero(t, f.StartRecordingCallCount())

		// started by a peer
		f.emit(types.StreamingEvent{Kind: types.EventRecordingStarted})
		e.Drain()
		require.Equal(t, types.StreamOn, e.Snapshot().Recording)
		require.Zero(t, f.StopRecordingCallCount())

		require.NoError(t, e.SetRecordingEnabled(false))
		e.Drain()
		require.Equal(t, 1, f.StopRecordingCallCount())
		require.Equal(t, types.StreamStopping, e.Snapshot().Recording)
	})
}

func TestErrors(t *testing.T) {
	t.Run("transient errors clear", func(t *testing.T) {
		f := newFakeCall(participant("a", true, ""))
		e := joinedEngine(t, f)
		f.emit(types.LoadEvent{Kind: types.EventLoadAttemptFailed})
		e.Drain()
		require.Equal(t, noticeLoadFailed, e.Snapshot().Error)
		testutils.WithTimeout(t, func() string {
			if e.Snapshot().Error != "" {
				return "error not cleared"
			}
			return ""
		})
	})

	t.Run("dismiss", func(t *testing.T) {
		f := newFakeCall(participant("a", true, ""))
		e := joinedEngine(t, f)
		f.emit(types.ErrorEvent{Message: "camera in use"})
		e.Drain()
		require.Equal(t, "camera in use", e.Snapshot().Error)
		require.NoError(t, e.DismissError())
		require.Empty(t, e.Snapshot().Error)
	})

	t.Run("fatal error ends the call", func(t *testing.T) {
		f := newFakeCall(participant("a", true, ""))
		e := joinedEngine(t, f)
		ended := make(chan struct{})
		e.OnCallEnded(func() { close(ended) })

		f.emit(types.ErrorEvent{Message: "Failed to load call object bundle"})
		e.Drain()
		st := e.Snapshot()
		require.Equal(t, types.CallLeaving, st.CallState)
		require.Equal(t, "Failed to load call object bundle", st.Error)

		select {
		case <-ended:
		case <-time.After(time.Second):
			t.Fatal("call ended not signalled")
		}
		testutils.WithTimeout(t, func() string {
			if f.DestroyCallCount() != 1 {
				return "session not destroyed"
			}
			return ""
		})
		require.Equal(t, types.CallLeft, e.Snapshot().CallState)
	})
}

func TestLocalMedia(t *testing.T) {
	f := newFakeCall(participant("a", true, ""))
	f.LocalMediaReturns(true, false)
	e := joinedEngine(t, f)

	require.NoError(t, e.ToggleLocalVideo())
	require.NoError(t, e.ToggleLocalAudio())
	e.Drain()
	require.Equal(t, 2, f.SetLocalMediaCallCount())
	var got [][2]bool
	for i := 0; i < 2; i++ {
		_, v, a := f.SetLocalMediaArgsForCall(i)
		got = append(got, [2]bool{v, a})
	}
	require.ElementsMatch(t, [][2]bool{{false, false}, {true, true}}, got)
}

func TestGeometry(t *testing.T) {
	f := newFakeCall(participant("a", true, ""), participant("b", false, types.RoleStage))
	e := joinedEngine(t, f)

	require.NoError(t, e.SetViewport(0, 600))
	time.Sleep(20 * time.Millisecond)
	require.Nil(t, e.Snapshot().Geometry)

	require.NoError(t, e.SetViewport(1016, 579))
	testutils.WithTimeout(t, func() string {
		g := e.Snapshot().Geometry
		if g == nil {
			return "no geometry"
		}
		if g.Tile.Width != 1000 || g.Tile.Height != 562 {
			return "unexpected tile size"
		}
		return ""
	})

	// a remote share moves the call to the pinned family
	sharing := withTrack(participant("b", false, types.RoleStage), types.TrackKindScreenVideo, types.TrackStatePlayable)
	f.emit(trackEvent(types.EventTrackStarted, sharing, types.TrackKindScreenVideo))
	testutils.WithTimeout(t, func() string {
		g := e.Snapshot().Geometry
		if g == nil || g.Family != types.LayoutPinnedHorizontal {
			return "no pinned geometry"
		}
		return ""
	})

	require.NoError(t, e.ChangeLayout(types.LayoutPresentation))
	testutils.WithTimeout(t, func() string {
		if e.Snapshot().Geometry != nil {
			return "stale geometry kept"
		}
		return ""
	})
	require.Equal(t, types.LayoutPresentation, e.Snapshot().Layout)
}

func TestCloseDetachesHandlers(t *testing.T) {
	f := newFakeCall(participant("a", true, ""))
	e := joinedEngine(t, f)
	e.Close()
	require.Zero(t, f.attached())
	require.ErrorIs(t, e.ToggleLive(), ErrEngineClosed)
	e.Close()
}
