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
	"time"

	"github.com/livekit/livekit-stage/pkg/stage/types"
	"github.com/livekit/livekit-stage/pkg/telemetry/prometheus"
)

func (e *Engine) handleEvent(evt types.Event) {
	if e.closed.IsBroken() {
		return
	}
	prometheus.RecordEvent(string(evt.Type()))

	switch ev := evt.(type) {
	case types.JoinedEvent:
		e.handleJoined(ev)
	case types.LeftEvent:
		e.handleLeft()
	case types.ParticipantEvent:
		switch ev.Kind {
		case types.EventParticipantJoined:
			e.handleParticipantJoined(ev.Participant)
		case types.EventParticipantUpdated:
			e.handleParticipantUpdated(ev.Participant)
		case types.EventParticipantLeft:
			e.handleParticipantLeft(ev.Participant)
		}
	case types.TrackEvent:
		e.handleTrack(ev)
	case types.ActiveSpeakerEvent:
		e.handleActiveSpeaker(ev.PeerID)
	case types.AppMessageEvent:
		e.handleAppMessage(ev)
	case types.ErrorEvent:
		e.handleError(ev.Message)
	case types.LoadEvent:
		e.handleLoad(ev)
	case types.StreamingEvent:
		e.handleStreaming(ev)
	default:
		e.logger.Debugw("ignoring unknown event", "type", evt.Type())
	}
}

func (e *Engine) handleJoined(ev types.JoinedEvent) {
	switch e.callState {
	case types.CallJoined:
		// replayed roster
		for _, info := range ev.Participants {
			e.upsertParticipant(info)
		}
		e.refresh(true)
		return
	case types.CallJoining:
	default:
		e.logger.Debugw("ignoring joined event", "callState", e.callState)
		return
	}

	local, ok := ev.Local()
	if !ok {
		e.logger.Warnw("joined event without local participant", nil)
		return
	}
	e.callState = types.CallJoined
	e.localID = local.SessionID
	e.logger.Infow("joined call", "localID", e.localID, "participants", len(ev.Participants))

	for _, info := range ev.Participants {
		e.upsertParticipant(info)
	}

	// everyone joins backstage
	lp := e.participants[e.localID]
	lp.Role = types.Cached(types.RoleBackstage)
	e.roleCache[e.localID] = types.RoleBackstage
	e.isScreenSharing = lp.HasScreenShare()
	e.writeLocalRole(types.RoleBackstage)

	if e.params.Audio != nil {
		e.params.Audio.StartMonitoring()
	}
	e.startHealthCheck()
	e.refresh(true)
	e.scheduleVolumes()
}

func (e *Engine) handleLeft() {
	if e.callState == types.CallIdle {
		return
	}
	e.finishLeft()
}

// upsertParticipant creates or refreshes a participant from an SDK snapshot. Returns true when the
// participant was not known before.
func (e *Engine) upsertParticipant(info types.ParticipantInfo) (*types.Participant, bool) {
	id := info.SessionID
	role := types.ResolveRole(info.UserData, e.roleCache[id])
	p, ok := e.participants[id]
	if !ok {
		p = types.NewParticipant(info, role)
		e.participants[id] = p
	} else {
		p.UserName = info.UserName
		p.Role = role
		for _, kind := range types.TrackKinds {
			p.ApplyTrack(kind, info.Track(kind))
		}
	}
	e.roleCache[id] = role.Role
	return p, !ok
}

func (e *Engine) handleParticipantJoined(info types.ParticipantInfo) {
	if e.callState != types.CallJoined {
		return
	}
	_, created := e.upsertParticipant(info)
	if created {
		e.logger.Debugw("participant joined", "participant", info.SessionID, "userName", info.UserName)
		if !info.Local && e.isSyncLeader(info.SessionID) {
			e.syncJoiner(info.SessionID)
		}
	}
	e.refresh(true)
	e.scheduleVolumes()
}

func (e *Engine) handleParticipantUpdated(info types.ParticipantInfo) {
	if e.callState != types.CallJoined {
		return
	}
	p, ok := e.participants[info.SessionID]
	if !ok {
		e.handleParticipantJoined(info)
		return
	}

	prev := p.Role.Role
	p.UserName = info.UserName
	p.Role = types.ResolveRole(info.UserData, e.roleCache[p.ID])
	e.roleCache[p.ID] = p.Role.Role
	roleChanged := prev != p.Role.Role

	if roleChanged {
		e.logger.Infow("participant role changed", "participant", p.ID, "role", p.Role.Role, "previous", prev)
		if p.Local {
			e.onLocalRoleChanged(prev, p.Role.Role)
		}
	}
	e.refresh(roleChanged)
	e.scheduleVolumes()
}

func (e *Engine) onLocalRoleChanged(prev, next types.Role) {
	switch {
	case prev == types.RoleBackstage && next == types.RoleStage:
		e.stageVolume = 1
		e.backstageMuted = false
	case prev == types.RoleStage && next == types.RoleBackstage:
		e.stopShareOffStage()
	}
}

func (e *Engine) handleParticipantLeft(info types.ParticipantInfo) {
	id := info.SessionID
	p, ok := e.participants[id]
	if !ok || p.Local {
		return
	}
	e.logger.Debugw("participant left", "participant", id)
	delete(e.participants, id)
	delete(e.roleCache, id)
	if e.params.Registry != nil {
		e.params.Registry.Forget(id)
	}
	e.refresh(p.Role.Role == types.RoleStage)
}

func (e *Engine) handleTrack(ev types.TrackEvent) {
	if e.callState != types.CallJoined || !ev.TrackKind.Valid() {
		return
	}
	p, ok := e.participants[ev.Participant.SessionID]
	if !ok {
		return
	}

	info := ev.Participant.Track(ev.TrackKind)
	if ev.Track != nil {
		info.Track = ev.Track
	}
	if ev.Kind == types.EventTrackStopped {
		p.StopTrack(ev.TrackKind)
	} else {
		p.ApplyTrack(ev.TrackKind, info)
	}

	// the SDK can report a share as loading before a track handle exists
	if p.Local && ev.TrackKind == types.TrackKindScreenVideo {
		e.isScreenSharing = ev.Kind == types.EventTrackStarted && info.State.IsReady()
		e.stopShareOffStage()
	}
	if !p.Local && ev.TrackKind.IsAudio() && p.IsReady(ev.TrackKind) && e.params.Registry != nil {
		e.params.Registry.EnsurePlaying(context.Background(), p.ID)
		e.scheduleVolumes()
	}
	e.refresh(false)
}

// handleActiveSpeaker keeps the last positive signal; silence never clears it
func (e *Engine) handleActiveSpeaker(id types.ParticipantID) {
	if e.callState != types.CallJoined || id == "" || id == e.activeSpeaker {
		return
	}
	e.activeSpeaker = id
	e.updateSubscriptions()
	if e.layout == types.LayoutPresentation {
		e.pushComposition()
	}
	e.changed()
}

func (e *Engine) handleError(msg string) {
	e.logger.Warnw("call error", nil, "message", msg)
	if isFatal(msg) {
		e.showNotice(msg, 0)
		e.onFatalError(msg)
		return
	}
	e.showNotice(msg, e.config.ErrorDisplay)
	e.changed()
}

func (e *Engine) handleLoad(ev types.LoadEvent) {
	switch ev.Kind {
	case types.EventLoadAttemptFailed:
		e.logger.Warnw("call resources failed to load", nil, "message", ev.Message)
		e.showNotice(noticeLoadFailed, e.config.ErrorDisplay)
		e.changed()
	default:
		e.logger.Debugw("call load event", "event", ev.Kind)
	}
}

func (e *Engine) handleStreaming(ev types.StreamingEvent) {
	switch ev.Kind {
	case types.EventLiveStreamingStarted:
		e.setLive(types.StreamOn)
	case types.EventLiveStreamingStopped:
		e.setLive(types.StreamOff)
	case types.EventLiveStreamingError:
		e.logger.Warnw("live streaming error", nil, "message", ev.Message)
		e.setLive(types.StreamOff)
		e.showNotice(noticeLiveError, e.config.LiveErrorDisplay)
	case types.EventRecordingStarted:
		e.setRecording(types.StreamOn)
	case types.EventRecordingStopped:
		e.setRecording(types.StreamOff)
	case types.EventRecordingError:
		e.logger.Warnw("recording error", nil, "message", ev.Message)
		e.setRecording(types.StreamOff)
		e.showNotice(noticeRecordingError, e.config.LiveErrorDisplay)
	}
	e.changed()
}

// isSyncLeader reports whether the local participant has the smallest id among those present
// before the joiner arrived
func (e *Engine) isSyncLeader(joiner types.ParticipantID) bool {
	if e.localID == "" {
		return false
	}
	for id := range e.participants {
		if id != joiner && id < e.localID {
			return false
		}
	}
	return true
}

// startHealthCheck runs until teardown
func (e *Engine) startHealthCheck() {
	interval := e.config.HealthCheckInterval
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-e.healthStop.Watch():
				return
			case <-ticker.C:
				e.queue.Enqueue(e.checkShareHealth)
			}
		}
	}()
}

// checkShareHealth restarts a local share that no longer produces a discoverable owner
func (e *Engine) checkShareHealth() {
	if e.callState != types.CallJoined || !e.isScreenSharing || e.sharePending ||
		e.localRole() != types.RoleStage || e.screenShareOwner() != "" {
		e.missingOwner = 0
		return
	}
	e.missingOwner++
	if e.missingOwner < e.config.HealthCheckThreshold {
		return
	}
	e.missingOwner = 0
	e.logger.Warnw("screen share has no owner, restarting", nil)
	prometheus.RecordShareRecovery()

	e.sharePending = true
	e.run(e.commands, "restart_screen_share", func(ctx context.Context) error {
		if err := e.params.Session.StopScreenShare(ctx); err != nil {
			return err
		}
		return e.params.Session.StartScreenShare(ctx)
	}, func(err error) {
		e.sharePending = false
		if err != nil {
			e.logger.Warnw("screen share recovery failed", err)
			e.rollbackShare()
			e.showNotice(noticeShareFailed, e.config.ErrorDisplay)
		}
		e.stopShareOffStage()
		e.changed()
	})
	e.changed()
}
