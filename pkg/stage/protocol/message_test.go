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

package protocol

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/livekit/livekit-stage/pkg/stage/types"
)

func TestDecode(t *testing.T) {
	t.Run("bare peer payloads", func(t *testing.T) {
		m, err := Decode([]byte(`{"type":"LAYOUT_CHANGE","layout":"presentation"}`))
		require.NoError(t, err)
		require.Equal(t, MessageLayoutChange, m.Type)
		require.Equal(t, types.LayoutPresentation, m.Layout)
		require.Empty(t, m.Origin)

		m, err = Decode([]byte(`{"type":"ROLE_REQUEST","newRole":"stage"}`))
		require.NoError(t, err)
		require.Equal(t, types.RoleStage, m.NewRole)

		m, err = Decode([]byte(`{"type":"OVERLAY_UPDATE","overlay":"image","visible":false}`))
		require.NoError(t, err)
		require.Equal(t, types.OverlayImage, m.Overlay)
		require.False(t, *m.Visible)

		m, err = Decode([]byte(`{"type":"RECORDING_SETTING","enabled":true}`))
		require.NoError(t, err)
		require.True(t, *m.Enabled)
	})

	t.Run("unknown types", func(t *testing.T) {
		_, err := Decode([]byte(`{"type":"CHAT","text":"hi"}`))
		require.ErrorIs(t, err, ErrUnknownMessage)

		_, err = Decode([]byte(`{"text":"hi"}`))
		require.ErrorIs(t, err, ErrUnknownMessage)
	})

	t.Run("malformed", func(t *testing.T) {
		for _, payload := range []string{
			`not json`,
			`{"type":"LAYOUT_CHANGE","layout":"mosaic"}`,
			`{"type":"LAYOUT_SYNC"}`,
			`{"type":"ROLE_REQUEST","newRole":"host"}`,
			`{"type":"OVERLAY_UPDATE","overlay":"text"}`,
			`{"type":"OVERLAY_UPDATE","overlay":"video","visible":true}`,
			`{"type":"RECORDING_SETTING"}`,
		} {
			_, err := Decode([]byte(payload))
			require.ErrorIs(t, err, ErrMalformedMessage, payload)
		}
	})

	t.Run("provenance survives the wire", func(t *testing.T) {
		sent := NewOverlayUpdate("alice", types.OverlayText, true)
		data, err := Encode(sent)
		require.NoError(t, err)

		m, err := Decode(data)
		require.NoError(t, err)
		require.Equal(t, types.ParticipantID("alice"), m.Origin)
		require.Equal(t, sent.ID, m.ID)
		require.NotEmpty(t, m.ID)
	})
}

func TestDeduper(t *testing.T) {
	d := NewDeduper(2)

	a := NewLayoutChange("p1", types.LayoutGrid)
	b := NewLayoutChange("p1", types.LayoutGrid)
	require.NotEqual(t, a.ID, b.ID)

	require.False(t, d.Seen(a))
	require.True(t, d.Seen(a))
	require.False(t, d.Seen(b))

	anonymous := &Message{Type: MessageLayoutChange, Layout: types.LayoutGrid}
	require.False(t, d.Seen(anonymous))
	require.False(t, d.Seen(anonymous))

	// evicted once capacity is exceeded
	require.False(t, d.Seen(NewLayoutSync("p2", types.LayoutGrid)))
	require.False(t, d.Seen(NewLayoutSync("p2", types.LayoutGrid)))
	require.False(t, d.Seen(a))
}
