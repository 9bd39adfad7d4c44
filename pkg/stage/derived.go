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
	"maps"

	"github.com/pkg/errors"

	"github.com/livekit/livekit-stage/pkg/stage/composition"
	"github.com/livekit/livekit-stage/pkg/stage/types"
)

func (e *Engine) stageIDs() []types.ParticipantID {
	var ids []types.ParticipantID
	for _, id := range e.sortedParticipantIDs() {
		if e.participants[id].Role.Role == types.RoleStage {
			ids = append(ids, id)
		}
	}
	return ids
}

// screenShareOwner is the first stage participant, by id, with a ready screen video track
func (e *Engine) screenShareOwner() types.ParticipantID {
	for _, id := range e.sortedParticipantIDs() {
		p := e.participants[id]
		if p.Role.Role == types.RoleStage && p.HasScreenShare() {
			return id
		}
	}
	return ""
}

func (e *Engine) compositionInput() composition.Input {
	return composition.Input{
		Layout:        e.layout,
		StageIDs:      e.stageIDs(),
		ShareOwner:    e.screenShareOwner(),
		ActiveSpeaker: e.activeSpeaker,
		Overlays:      e.overlays,
	}
}

// subscriptionPolicy derives receive settings for every remote participant. Audio follows the
// stage/backstage visibility rules; video is always received and only its layer changes.
func (e *Engine) subscriptionPolicy() map[types.ParticipantID]types.SubscriptionSettings {
	localRole := e.localRole()
	owner := e.screenShareOwner()
	policy := make(map[types.ParticipantID]types.SubscriptionSettings, len(e.participants))
	for id, p := range e.participants {
		if p.Local {
			continue
		}
		layer := types.VideoLayerLow
		if id == owner || id == e.activeSpeaker {
			layer = types.VideoLayerHigh
		}
		policy[id] = types.SubscriptionSettings{
			Audio:       localRole == types.RoleBackstage || p.Role.Role == types.RoleStage,
			Video:       true,
			ScreenVideo: true,
			ScreenAudio: true,
			VideoLayer:  layer,
		}
	}
	return policy
}

// volumeFor is the playback volume of a remote participant's audio
func (e *Engine) volumeFor(p *types.Participant) float64 {
	switch {
	case p.Local:
		return 0
	case p.Role.Role == types.RoleStage:
		return e.stageVolume
	case e.backstageMuted:
		return 0
	default:
		return 1
	}
}

// refresh recomputes the screen share owner and everything that hangs off it. stageChanged is set
// when stage membership changed, which always requires a new composition while live.
func (e *Engine) refresh(stageChanged bool) {
	owner := e.screenShareOwner()
	ownerChanged := owner != e.owner
	layoutChanged := false
	if ownerChanged {
		prev := e.owner
		e.owner = owner
		e.logger.Debugw("screen share owner changed", "owner", owner, "previous", prev)

		next := e.layout
		switch {
		case owner == "":
			next = types.LayoutGrid
		case prev == "":
			next = types.LayoutPinnedHorizontal
		}
		if next != e.layout {
			e.logger.Infow("layout switched", "layout", next, "previous", e.layout)
			e.layout = next
			layoutChanged = true
		}
	}

	e.updateSubscriptions()
	if stageChanged || ownerChanged || layoutChanged {
		e.pushComposition()
		e.scheduleGeometry()
	}
	e.changed()
}

// pushComposition sends the current composition to the live stream and recording, if active
func (e *Engine) pushComposition() {
	if e.callState != types.CallJoined {
		return
	}
	if e.live == types.StreamOn {
		req := composition.Compose(e.config.Composition, e.compositionInput())
		e.run(e.ordered, "update_live_streaming", func(ctx context.Context) error {
			return errors.Wrap(e.params.Session.UpdateLiveStreaming(ctx, req), "update live streaming")
		}, func(err error) {
			if err != nil {
				e.logger.Warnw("could not update live stream layout", err)
				e.showNotice(noticeLiveUpdateFailed, e.config.LiveErrorDisplay)
				e.changed()
			}
		})
	}
	if e.recording == types.StreamOn {
		req := composition.Compose(e.config.Composition, e.compositionInput())
		e.run(e.ordered, "update_recording", func(ctx context.Context) error {
			return errors.Wrap(e.params.Session.UpdateRecording(ctx, req), "update recording")
		}, func(err error) {
			if err != nil {
				e.logger.Warnw("could not update recording layout", err)
				e.showNotice(noticeLiveUpdateFailed, e.config.LiveErrorDisplay)
				e.changed()
			}
		})
	}
}

// updateSubscriptions sends the receive policy when it differs from the last one sent. A failed
// update is retried once with whatever policy is current at that point.
func (e *Engine) updateSubscriptions() {
	e.sendSubscriptions(true)
}

func (e *Engine) sendSubscriptions(retry bool) {
	if e.callState != types.CallJoined {
		return
	}
	policy := e.subscriptionPolicy()
	if len(policy) == 0 || maps.Equal(policy, e.lastPolicy) {
		return
	}
	e.lastPolicy = policy
	e.run(e.commands, "update_receive_settings", func(ctx context.Context) error {
		return errors.Wrap(e.params.Session.UpdateReceiveSettings(ctx, policy), "update receive settings")
	}, func(err error) {
		if err == nil {
			return
		}
		e.lastPolicy = nil
		if !retry {
			e.logger.Warnw("could not update subscriptions", err)
			e.showNotice(noticeSubscriptionFailed, e.config.ErrorDisplay)
			e.changed()
			return
		}
		e.logger.Debugw("retrying subscription update", "error", err)
		e.deferred.After(e.config.SubscriptionRetryDelay, func() {
			e.queue.Enqueue(func() {
				e.sendSubscriptions(false)
			})
		})
	})
}

func (e *Engine) scheduleGeometry() {
	if e.viewport.Width <= 0 || e.viewport.Height <= 0 {
		return
	}
	e.layoutDebounce.Schedule(func() {
		e.queue.Enqueue(e.recomputeGeometry)
	})
}

func (e *Engine) recomputeGeometry() {
	g, ok := e.calculator.Compute(e.layout, e.viewport.Width, e.viewport.Height, len(e.stageIDs()))
	if !ok {
		// presentation and full-screen have no local tiles
		if e.geometry != nil {
			e.geometry = nil
			e.changed()
		}
		return
	}
	if e.geometry != nil && *e.geometry == g {
		return
	}
	e.geometry = &g
	e.changed()
}

func (e *Engine) scheduleVolumes() {
	if e.params.Registry == nil {
		return
	}
	e.volumeDebounce.Schedule(func() {
		e.queue.Enqueue(e.applyVolumes)
	})
}

// applyVolumes pushes the playback volume of every remote participant to the registry
func (e *Engine) applyVolumes() {
	if e.params.Registry == nil || e.callState != types.CallJoined {
		return
	}
	for _, id := range e.sortedParticipantIDs() {
		p := e.participants[id]
		if p.Local {
			continue
		}
		e.params.Registry.SetVolume(id, e.volumeFor(p))
	}
}
