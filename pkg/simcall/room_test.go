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

package simcall_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/livekit/livekit-stage/pkg/simcall"
	"github.com/livekit/livekit-stage/pkg/stage/types"
)

type recorder struct {
	lock   sync.Mutex
	events []types.Event
}

func record(s *simcall.Session) *recorder {
	r := &recorder{}
	for _, t := range types.EventTypes {
		s.On(t, func(evt types.Event) {
			r.lock.Lock()
			defer r.lock.Unlock()
			r.events = append(r.events, evt)
		})
	}
	return r
}

func (r *recorder) types() []types.EventType {
	r.lock.Lock()
	defer r.lock.Unlock()
	out := make([]types.EventType, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type())
	}
	return out
}

func (r *recorder) last() types.Event {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.events[len(r.events)-1]
}

func TestRoom(t *testing.T) {
	ctx := context.Background()
	room := simcall.NewRoom(nil)
	a := room.NewSession(simcall.SessionParams{ID: "a"})
	b := room.NewSession(simcall.SessionParams{ID: "b", StartMedia: true})
	ra, rb := record(a), record(b)

	require.ErrorIs(t, a.SendAppMessage(ctx, []byte("hi"), types.BroadcastTarget), simcall.ErrNotJoined)

	require.NoError(t, a.Join(ctx, types.Identity{UserName: "alice"}, "room"))
	require.NoError(t, b.Join(ctx, types.Identity{UserName: "bob"}, "room"))

	require.Equal(t, []types.EventType{types.EventJoinedMeeting, types.EventParticipantJoined}, ra.types())
	joined := rb.types()
	require.Equal(t, []types.EventType{types.EventJoinedMeeting}, joined)
	roster := rb.last().(types.JoinedEvent).Participants
	require.Len(t, roster, 2)
	local, ok := rb.last().(types.JoinedEvent).Local()
	require.True(t, ok)
	require.Equal(t, types.ParticipantID("b"), local.SessionID)
	require.True(t, local.Track(types.TrackKindVideo).Ready())

	v, au := b.LocalMedia()
	require.True(t, v)
	require.True(t, au)

	t.Run("user data is echoed to everyone", func(t *testing.T) {
		require.NoError(t, a.SetUserData(ctx, types.RoleUserData(types.RoleStage)))
		for _, r := range []*recorder{ra, rb} {
			evt := r.last().(types.ParticipantEvent)
			require.Equal(t, types.EventParticipantUpdated, evt.Kind)
			require.Equal(t, types.RoleUserData(types.RoleStage), evt.Participant.UserData)
		}
		require.True(t, ra.last().(types.ParticipantEvent).Participant.Local)
		require.False(t, rb.last().(types.ParticipantEvent).Participant.Local)
	})

	t.Run("screen share", func(t *testing.T) {
		require.NoError(t, a.StartScreenShare(ctx))
		evt := rb.last().(types.TrackEvent)
		require.Equal(t, types.EventTrackStarted, evt.Kind)
		require.Equal(t, types.TrackKindScreenVideo, evt.TrackKind)
		require.NotNil(t, evt.Track)

		require.NoError(t, a.StopScreenShare(ctx))
		require.Equal(t, types.EventTrackStopped, rb.last().Type())
	})

	t.Run("app messages", func(t *testing.T) {
		require.NoError(t, a.SendAppMessage(ctx, []byte("hello"), "b"))
		msg := rb.last().(types.AppMessageEvent)
		require.Equal(t, types.ParticipantID("a"), msg.FromID)
		require.Equal(t, []byte("hello"), msg.Data)

		require.NoError(t, a.SendAppMessage(ctx, []byte("scripted"), "z"))
		out := room.Outbox()
		require.Len(t, out, 1)
		require.Equal(t, types.ParticipantID("z"), out[0].To)
	})

	t.Run("live streaming", func(t *testing.T) {
		require.ErrorIs(t, a.UpdateLiveStreaming(ctx, &types.CompositionRequest{}), simcall.ErrNotStreaming)
		req := &types.CompositionRequest{Mode: types.CompositionGrid}
		require.NoError(t, a.StartLiveStreaming(ctx, types.StreamingConfig{Layout: req}))
		require.Equal(t, types.EventLiveStreamingStarted, rb.last().Type())
		require.ErrorIs(t, b.StartLiveStreaming(ctx, types.StreamingConfig{}), simcall.ErrAlreadyStreaming)
		require.True(t, room.IsLive())

		next := &types.CompositionRequest{Mode: types.CompositionSingle}
		require.NoError(t, b.UpdateLiveStreaming(ctx, next))
		require.Equal(t, next, room.LiveLayout())

		require.NoError(t, a.StopLiveStreaming(ctx))
		require.Equal(t, types.EventLiveStreamingStopped, ra.last().Type())
	})

	t.Run("failure injection", func(t *testing.T) {
		boom := errors.New("boom")
		a.FailNext(simcall.CommandSetLocalMedia, boom)
		require.ErrorIs(t, a.SetLocalMedia(ctx, true, true), boom)
		require.NoError(t, a.SetLocalMedia(ctx, true, true))
		require.Equal(t, 2, a.Calls(simcall.CommandSetLocalMedia))
	})

	t.Run("leave", func(t *testing.T) {
		require.NoError(t, b.Leave(ctx))
		require.Equal(t, types.EventLeftMeeting, rb.last().Type())
		evt := ra.last().(types.ParticipantEvent)
		require.Equal(t, types.EventParticipantLeft, evt.Kind)
		require.Equal(t, []types.ParticipantID{"a"}, room.Participants())
	})
}

func TestPlayer(t *testing.T) {
	p := simcall.NewPlayer("a", types.TrackKindAudio)
	require.Error(t, p.Play(context.Background()))
	require.NoError(t, p.Attach(simcall.NewTrack(types.TrackKindAudio)))
	require.True(t, p.Paused())
	require.NoError(t, p.Play(context.Background()))
	require.False(t, p.Paused())
	p.Detach()
	require.True(t, p.Paused())
}
