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
	"math"

	"github.com/pkg/errors"

	"github.com/livekit/livekit-stage/pkg/stage/protocol"
	"github.com/livekit/livekit-stage/pkg/stage/types"
)

func (e *Engine) requireJoined() error {
	if e.callState != types.CallJoined {
		return ErrNotJoined
	}
	return nil
}

// RequestRole moves a participant to a role. The local role is written to metadata; remote
// participants are asked to change their own.
func (e *Engine) RequestRole(id types.ParticipantID, role types.Role) error {
	if !role.Valid() {
		return ErrInvalidRole
	}
	return e.do(func() error {
		return e.requestRole(id, role)
	})
}

func (e *Engine) ToggleRole(id types.ParticipantID) error {
	return e.do(func() error {
		if err := e.requireJoined(); err != nil {
			return err
		}
		p, ok := e.participants[id]
		if !ok {
			return ErrUnknownParticipant
		}
		return e.requestRole(id, p.Role.Role.Opposite())
	})
}

func (e *Engine) requestRole(id types.ParticipantID, role types.Role) error {
	if err := e.requireJoined(); err != nil {
		return err
	}
	p, ok := e.participants[id]
	if !ok {
		return ErrUnknownParticipant
	}
	if p.Role.Role == role {
		return nil
	}
	e.logger.Infow("requesting role change", "participant", id, "role", role)
	if p.Local {
		e.writeLocalRole(role)
	} else {
		e.sendMessage(protocol.NewRoleRequest(e.localID, role), id)
	}
	return nil
}

// ChangeLayout selects a layout for everyone in the call
func (e *Engine) ChangeLayout(l types.Layout) error {
	if !l.Valid() {
		return ErrInvalidLayout
	}
	return e.do(func() error {
		if err := e.requireJoined(); err != nil {
			return err
		}
		if !l.Available(e.screenShareOwner() != "") {
			return ErrLayoutNotAllowed
		}
		if l == e.layout {
			return nil
		}
		e.logger.Infow("changing layout", "layout", l, "previous", e.layout)
		e.layout = l
		e.sendMessage(protocol.NewLayoutChange(e.localID, l), types.BroadcastTarget)
		e.pushComposition()
		e.scheduleGeometry()
		e.changed()
		return nil
	})
}

func (e *Engine) ToggleOverlay(kind types.OverlayKind) error {
	if !kind.Valid() {
		return ErrInvalidOverlay
	}
	return e.do(func() error {
		if err := e.requireJoined(); err != nil {
			return err
		}
		visible := !e.overlays.Get(kind)
		e.overlays.Set(kind, visible)
		e.sendMessage(protocol.NewOverlayUpdate(e.localID, kind, visible), types.BroadcastTarget)
		e.pushComposition()
		e.changed()
		return nil
	})
}

// ToggleLive starts or stops the live stream. The live state only settles on the SDK's
// streaming events.
func (e *Engine) ToggleLive() error {
	return e.do(func() error {
		if err := e.requireJoined(); err != nil {
			return err
		}
		switch e.live {
		case types.StreamOff:
			e.startLive()
			if e.recordingEnabled && e.recording == types.StreamOff {
				e.startRecording()
			}
		case types.StreamOn:
			e.stopLive()
			// a recording still starting is stopped once it reports in
			if e.recording == types.StreamOn {
				e.stopRecording()
			}
		default:
			return ErrLiveTransitionPending
		}
		e.changed()
		return nil
	})
}

func (e *Engine) ToggleScreenShare() error {
	return e.do(func() error {
		if err := e.requireJoined(); err != nil {
			return err
		}
		if e.sharePending {
			return ErrShareTransitionPending
		}
		if e.isScreenSharing {
			e.stopShare()
			e.changed()
			return nil
		}
		if e.localRole() != types.RoleStage {
			return ErrShareRequiresStage
		}
		e.sharePending = true
		e.run(e.commands, "start_screen_share", e.params.Session.StartScreenShare, func(err error) {
			e.sharePending = false
			if err != nil {
				e.logger.Warnw("could not start screen share", err)
				e.rollbackShare()
				e.showNotice(noticeShareFailed, e.config.ErrorDisplay)
			}
			// the local participant may have left the stage while the share was starting
			e.stopShareOffStage()
			e.changed()
		})
		e.changed()
		return nil
	})
}

func (e *Engine) stopShare() {
	e.sharePending = true
	e.run(e.commands, "stop_screen_share", e.params.Session.StopScreenShare, func(err error) {
		e.sharePending = false
		if err != nil {
			e.logger.Warnw("could not stop screen share", err)
			e.rollbackShare()
			e.showNotice(noticeShareFailed, e.config.ErrorDisplay)
		}
		e.changed()
	})
}

// stopShareOffStage stops a local share once the local participant is no longer on stage. A
// pending share command re-checks when it resolves.
func (e *Engine) stopShareOffStage() {
	if !e.isScreenSharing || e.sharePending || e.localRole() == types.RoleStage {
		return
	}
	e.logger.Infow("stopping screen share after leaving stage")
	e.isScreenSharing = false
	e.stopShare()
}

// rollbackShare resets the local sharing flag to what the SDK last reported
func (e *Engine) rollbackShare() {
	local := e.localParticipant()
	e.isScreenSharing = local != nil && local.IsReady(types.TrackKindScreenVideo)
}

func (e *Engine) ToggleLocalVideo() error {
	return e.toggleLocalMedia(true)
}

func (e *Engine) ToggleLocalAudio() error {
	return e.toggleLocalMedia(false)
}

func (e *Engine) toggleLocalMedia(video bool) error {
	return e.do(func() error {
		if err := e.requireJoined(); err != nil {
			return err
		}
		v, a := e.params.Session.LocalMedia()
		if video {
			v = !v
		} else {
			a = !a
		}
		e.run(e.commands, "set_local_media", func(ctx context.Context) error {
			return errors.Wrap(e.params.Session.SetLocalMedia(ctx, v, a), "set local media")
		}, func(err error) {
			if err != nil {
				e.logger.Warnw("could not update local media", err, "video", v, "audio", a)
				e.showNotice(noticeMediaFailed, e.config.ErrorDisplay)
				e.changed()
			}
		})
		return nil
	})
}

// SetStageVolume sets the playback volume of stage participants, clamped to [0, 1]
func (e *Engine) SetStageVolume(v float64) error {
	if math.IsNaN(v) {
		return errors.New("invalid volume")
	}
	v = math.Max(0, math.Min(1, v))
	return e.do(func() error {
		e.stageVolume = v
		e.applyVolumes()
		e.changed()
		return nil
	})
}

func (e *Engine) ToggleBackstageMute() error {
	return e.do(func() error {
		e.backstageMuted = !e.backstageMuted
		e.applyVolumes()
		e.changed()
		return nil
	})
}

// SetRecordingEnabled controls whether going live also records. The setting is shared with peers.
func (e *Engine) SetRecordingEnabled(enabled bool) error {
	return e.do(func() error {
		if err := e.requireJoined(); err != nil {
			return err
		}
		if e.recordingEnabled == enabled {
			return nil
		}
		e.recordingEnabled = enabled
		e.sendMessage(protocol.NewRecordingSetting(e.localID, enabled), types.BroadcastTarget)
		switch {
		case enabled && e.live == types.StreamOn && e.recording == types.StreamOff:
			e.startRecording()
		case !enabled && e.recording == types.StreamOn:
			e.stopRecording()
		}
		e.changed()
		return nil
	})
}

// SetViewport records the size of the call container. Geometry follows after a short debounce.
func (e *Engine) SetViewport(width, height int) error {
	if width < 0 || height < 0 {
		return ErrInvalidViewport
	}
	return e.do(func() error {
		e.viewport.Width = width
		e.viewport.Height = height
		e.scheduleGeometry()
		return nil
	})
}

func (e *Engine) DismissError() error {
	return e.do(func() error {
		if e.noticeToken != nil {
			e.noticeToken.Cancel()
			e.noticeToken = nil
		}
		if e.notice != "" {
			e.notice = ""
			e.changed()
		}
		return nil
	})
}
