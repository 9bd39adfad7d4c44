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

package simcall

import (
	"context"
	"errors"
	"maps"
	"sync"

	"github.com/google/uuid"

	"github.com/livekit/livekit-stage/pkg/stage/types"
)

var (
	ErrNotJoined        = errors.New("session is not joined")
	ErrAlreadyStreaming = errors.New("stream already started")
	ErrNotStreaming     = errors.New("stream is not running")
	ErrDestroyed        = errors.New("session destroyed")
)

// command names, for failure injection and call counts
const (
	CommandJoin                  = "join"
	CommandLeave                 = "leave"
	CommandSendAppMessage        = "send_app_message"
	CommandSetUserData           = "set_user_data"
	CommandSetLocalMedia         = "set_local_media"
	CommandStartScreenShare      = "start_screen_share"
	CommandStopScreenShare       = "stop_screen_share"
	CommandStartLiveStreaming    = "start_live_streaming"
	CommandUpdateLiveStreaming   = "update_live_streaming"
	CommandStopLiveStreaming     = "stop_live_streaming"
	CommandStartRecording        = "start_recording"
	CommandUpdateRecording       = "update_recording"
	CommandStopRecording         = "stop_recording"
	CommandUpdateReceiveSettings = "update_receive_settings"
)

// Session is a loopback types.CallSession. Commands resolve immediately and the corroborating SDK
// events are delivered before the command returns.
type Session struct {
	room *Room
	id   types.ParticipantID

	lock       sync.Mutex
	userName   string
	joined     bool
	destroyed  bool
	userData   map[string]interface{}
	tracks     map[types.TrackKind]types.TrackInfo
	handlers   map[types.EventType]types.EventHandler
	failures   map[string][]error
	calls      map[string]int
	receive    map[types.ParticipantID]types.SubscriptionSettings
	startMedia bool
}

var _ types.CallSession = (*Session)(nil)

type SessionParams struct {
	// generated when empty
	ID types.ParticipantID
	// camera and microphone start on join
	StartMedia bool
}

func (r *Room) NewSession(params SessionParams) *Session {
	if params.ID == "" {
		params.ID = types.ParticipantID(uuid.NewString())
	}
	return &Session{
		room:       r,
		id:         params.ID,
		userData:   make(map[string]interface{}),
		tracks:     make(map[types.TrackKind]types.TrackInfo),
		handlers:   make(map[types.EventType]types.EventHandler),
		failures:   make(map[string][]error),
		calls:      make(map[string]int),
		startMedia: params.StartMedia,
	}
}

func (s *Session) ID() types.ParticipantID {
	return s.id
}

// FailNext makes the next call of command return err. Calls queue up.
func (s *Session) FailNext(command string, err error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.failures[command] = append(s.failures[command], err)
}

func (s *Session) Calls(command string) int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.calls[command]
}

func (s *Session) ReceiveSettings() map[types.ParticipantID]types.SubscriptionSettings {
	s.lock.Lock()
	defer s.lock.Unlock()
	return maps.Clone(s.receive)
}

func (s *Session) UserData() map[string]interface{} {
	s.lock.Lock()
	defer s.lock.Unlock()
	return maps.Clone(s.userData)
}

// begin counts the call and pops an injected failure
func (s *Session) begin(command string, needJoined bool) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.calls[command]++
	if s.destroyed {
		return ErrDestroyed
	}
	if errs := s.failures[command]; len(errs) > 0 {
		s.failures[command] = errs[1:]
		return errs[0]
	}
	if needJoined && !s.joined {
		return ErrNotJoined
	}
	return nil
}

func (s *Session) emit(evt types.Event) {
	s.lock.Lock()
	h := s.handlers[evt.Type()]
	s.lock.Unlock()
	if h != nil {
		h(evt)
	}
}

// infoFor is this session's participant as seen by viewer
func (s *Session) infoFor(viewer types.ParticipantID) types.ParticipantInfo {
	s.lock.Lock()
	defer s.lock.Unlock()
	return types.ParticipantInfo{
		SessionID: s.id,
		UserName:  s.userName,
		Local:     viewer == s.id,
		UserData:  maps.Clone(s.userData),
		Tracks:    maps.Clone(s.tracks),
	}
}

func (s *Session) Join(ctx context.Context, identity types.Identity, roomURL string) error {
	if err := s.begin(CommandJoin, false); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.lock.Lock()
	s.userName = identity.UserName
	s.joined = true
	if s.startMedia {
		s.tracks[types.TrackKindVideo] = types.TrackInfo{Track: NewTrack(types.TrackKindVideo), State: types.TrackStatePlayable}
		s.tracks[types.TrackKindAudio] = types.TrackInfo{Track: NewTrack(types.TrackKindAudio), State: types.TrackStatePlayable}
	}
	s.lock.Unlock()

	s.room.join(s)
	return nil
}

func (s *Session) Leave(context.Context) error {
	if err := s.begin(CommandLeave, true); err != nil {
		return err
	}
	s.lock.Lock()
	s.joined = false
	s.lock.Unlock()

	s.room.leave(s)
	return nil
}

func (s *Session) Destroy() {
	s.lock.Lock()
	wasJoined := s.joined
	s.joined = false
	s.destroyed = true
	s.lock.Unlock()

	if wasJoined {
		s.room.leave(s)
	}
	s.lock.Lock()
	s.handlers = make(map[types.EventType]types.EventHandler)
	s.lock.Unlock()
}

func (s *Session) On(event types.EventType, handler types.EventHandler) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.handlers[event] = handler
}

func (s *Session) Off(event types.EventType) {
	s.lock.Lock()
	defer s.lock.Unlock()
	delete(s.handlers, event)
}

func (s *Session) SendAppMessage(_ context.Context, data []byte, to types.ParticipantID) error {
	if err := s.begin(CommandSendAppMessage, true); err != nil {
		return err
	}
	s.room.sendMessage(s, data, to)
	return nil
}

func (s *Session) SetUserData(_ context.Context, data map[string]interface{}) error {
	if err := s.begin(CommandSetUserData, true); err != nil {
		return err
	}
	s.lock.Lock()
	s.userData = maps.Clone(data)
	s.lock.Unlock()

	s.room.updated(s)
	return nil
}

func (s *Session) SetLocalMedia(_ context.Context, video bool, audio bool) error {
	if err := s.begin(CommandSetLocalMedia, true); err != nil {
		return err
	}
	type change struct {
		kind    types.TrackKind
		started bool
	}
	var changes []change
	s.lock.Lock()
	for _, c := range []change{{types.TrackKindVideo, video}, {types.TrackKindAudio, audio}} {
		if s.setTrackLocked(c.kind, c.started) {
			changes = append(changes, c)
		}
	}
	s.lock.Unlock()

	for _, c := range changes {
		s.room.trackChanged(s, c.kind, c.started)
	}
	return nil
}

func (s *Session) LocalMedia() (bool, bool) {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.tracks[types.TrackKindVideo].Ready(), s.tracks[types.TrackKindAudio].Ready()
}

// setTrackLocked reports whether the track state changed
func (s *Session) setTrackLocked(kind types.TrackKind, on bool) bool {
	t := s.tracks[kind]
	if t.Ready() == on {
		return false
	}
	if on {
		s.tracks[kind] = types.TrackInfo{Track: NewTrack(kind), State: types.TrackStatePlayable}
	} else {
		t.State = types.TrackStateOff
		s.tracks[kind] = t
	}
	return true
}

func (s *Session) StartScreenShare(context.Context) error {
	return s.setScreenShare(CommandStartScreenShare, true)
}

func (s *Session) StopScreenShare(context.Context) error {
	return s.setScreenShare(CommandStopScreenShare, false)
}

func (s *Session) setScreenShare(command string, on bool) error {
	if err := s.begin(command, true); err != nil {
		return err
	}
	s.lock.Lock()
	changed := s.setTrackLocked(types.TrackKindScreenVideo, on)
	s.lock.Unlock()

	if changed {
		s.room.trackChanged(s, types.TrackKindScreenVideo, on)
	}
	return nil
}

func (s *Session) StartLiveStreaming(_ context.Context, config types.StreamingConfig) error {
	if err := s.begin(CommandStartLiveStreaming, true); err != nil {
		return err
	}
	return s.room.setStreaming(false, true, config.Layout)
}

func (s *Session) UpdateLiveStreaming(_ context.Context, layout *types.CompositionRequest) error {
	if err := s.begin(CommandUpdateLiveStreaming, true); err != nil {
		return err
	}
	return s.room.updateLayout(false, layout)
}

func (s *Session) StopLiveStreaming(context.Context) error {
	if err := s.begin(CommandStopLiveStreaming, true); err != nil {
		return err
	}
	return s.room.setStreaming(false, false, nil)
}

func (s *Session) StartRecording(_ context.Context, config types.StreamingConfig) error {
	if err := s.begin(CommandStartRecording, true); err != nil {
		return err
	}
	return s.room.setStreaming(true, true, config.Layout)
}

func (s *Session) UpdateRecording(_ context.Context, layout *types.CompositionRequest) error {
	if err := s.begin(CommandUpdateRecording, true); err != nil {
		return err
	}
	return s.room.updateLayout(true, layout)
}

func (s *Session) StopRecording(context.Context) error {
	if err := s.begin(CommandStopRecording, true); err != nil {
		return err
	}
	return s.room.setStreaming(true, false, nil)
}

func (s *Session) UpdateReceiveSettings(_ context.Context, settings map[types.ParticipantID]types.SubscriptionSettings) error {
	if err := s.begin(CommandUpdateReceiveSettings, true); err != nil {
		return err
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.receive = maps.Clone(settings)
	return nil
}
