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

	"github.com/pkg/errors"

	"github.com/livekit/livekit-stage/pkg/stage/protocol"
	"github.com/livekit/livekit-stage/pkg/stage/types"
	"github.com/livekit/livekit-stage/pkg/telemetry/prometheus"
)

const (
	messageAccepted  = "accepted"
	messageMalformed = "malformed"
	messageSelf      = "self"
	messageDuplicate = "duplicate"
)

func (e *Engine) handleAppMessage(ev types.AppMessageEvent) {
	if e.callState != types.CallJoined {
		return
	}
	msg, err := protocol.Decode(ev.Data)
	if err != nil {
		e.logger.Debugw("ignoring app message", "from", ev.FromID, "error", err)
		prometheus.RecordAppMessage("unknown", messageMalformed)
		return
	}
	if msg.Origin != "" && msg.Origin == e.localID {
		prometheus.RecordAppMessage(string(msg.Type), messageSelf)
		return
	}
	if e.dedupe.Seen(msg) {
		e.logger.Debugw("dropping duplicate app message", "message", msg)
		prometheus.RecordAppMessage(string(msg.Type), messageDuplicate)
		return
	}
	prometheus.RecordAppMessage(string(msg.Type), messageAccepted)
	e.logger.Debugw("app message received", "from", ev.FromID, "message", msg)

	switch msg.Type {
	case protocol.MessageRoleRequest:
		if e.localRole() != msg.NewRole {
			e.writeLocalRole(msg.NewRole)
		}
	case protocol.MessageLayoutChange, protocol.MessageLayoutSync:
		if msg.Layout != e.layout {
			e.layout = msg.Layout
			e.scheduleGeometry()
			e.changed()
		}
	case protocol.MessageOverlayUpdate:
		if e.overlays.Get(msg.Overlay) != *msg.Visible {
			e.overlays.Set(msg.Overlay, *msg.Visible)
			e.changed()
		}
	case protocol.MessageRecordingSetting:
		if e.recordingEnabled != *msg.Enabled {
			e.recordingEnabled = *msg.Enabled
			e.changed()
		}
	}
}

// syncJoiner sends the current layout and visible overlays to a participant who just joined
func (e *Engine) syncJoiner(id types.ParticipantID) {
	e.logger.Debugw("syncing late joiner", "participant", id, "layout", e.layout)
	e.sendMessage(protocol.NewLayoutSync(e.localID, e.layout), id)
	for _, kind := range []types.OverlayKind{types.OverlayText, types.OverlayImage} {
		if e.overlays.Get(kind) {
			e.sendMessage(protocol.NewOverlayUpdate(e.localID, kind, true), id)
		}
	}
	if e.recordingEnabled {
		e.sendMessage(protocol.NewRecordingSetting(e.localID, true), id)
	}
}

// sendMessage delivers an app message to one peer or, with types.BroadcastTarget, to everyone.
// Delivery failures are logged only.
func (e *Engine) sendMessage(msg *protocol.Message, to types.ParticipantID) {
	data, err := protocol.Encode(msg)
	if err != nil {
		e.logger.Warnw("could not encode app message", err, "message", msg)
		return
	}
	e.run(e.ordered, "send_app_message", func(ctx context.Context) error {
		return e.params.Session.SendAppMessage(ctx, data, to)
	}, func(err error) {
		if err != nil {
			e.logger.Warnw("could not send app message", err, "message", msg, "to", to)
		}
	})
}

// writeLocalRole stores the role in the local participant's metadata. The role only takes effect
// when the SDK reports the update.
func (e *Engine) writeLocalRole(role types.Role) {
	e.run(e.ordered, "set_user_data", func(ctx context.Context) error {
		return errors.Wrap(e.params.Session.SetUserData(ctx, types.RoleUserData(role)), "set user data")
	}, func(err error) {
		if err != nil {
			e.logger.Warnw("could not set local role", err, "role", role)
			e.showNotice(noticeSetRoleFailed, e.config.ErrorDisplay)
			e.changed()
		}
	})
}
