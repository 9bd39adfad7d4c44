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

package types

type EventType string

const (
	EventJoinedMeeting        EventType = "joined-meeting"
	EventLeftMeeting          EventType = "left-meeting"
	EventParticipantJoined    EventType = "participant-joined"
	EventParticipantUpdated   EventType = "participant-updated"
	EventParticipantLeft      EventType = "participant-left"
	EventTrackStarted         EventType = "track-started"
	EventTrackStopped         EventType = "track-stopped"
	EventActiveSpeakerChange  EventType = "active-speaker-change"
	EventAppMessage           EventType = "app-message"
	EventError                EventType = "error"
	EventLoading              EventType = "loading"
	EventLoaded               EventType = "loaded"
	EventLoadAttemptFailed    EventType = "load-attempt-failed"
	EventLiveStreamingStarted EventType = "live-streaming-started"
	EventLiveStreamingStopped EventType = "live-streaming-stopped"
	EventLiveStreamingError   EventType = "live-streaming-error"
	EventRecordingStarted     EventType = "recording-started"
	EventRecordingStopped     EventType = "recording-stopped"
	EventRecordingError       EventType = "recording-error"
)

// EventTypes lists every event the engine subscribes to
var EventTypes = []EventType{
	EventJoinedMeeting,
	EventLeftMeeting,
	EventParticipantJoined,
	EventParticipantUpdated,
	EventParticipantLeft,
	EventTrackStarted,
	EventTrackStopped,
	EventActiveSpeakerChange,
	EventAppMessage,
	EventError,
	EventLoading,
	EventLoaded,
	EventLoadAttemptFailed,
	EventLiveStreamingStarted,
	EventLiveStreamingStopped,
	EventLiveStreamingError,
	EventRecordingStarted,
	EventRecordingStopped,
	EventRecordingError,
}

type Event interface {
	Type() EventType
}

type EventHandler func(Event)

type JoinedEvent struct {
	Participants []ParticipantInfo
}

func (JoinedEvent) Type() EventType { return EventJoinedMeeting }

func (e JoinedEvent) Local() (ParticipantInfo, bool) {
	for _, p := range e.Participants {
		if p.Local {
			return p, true
		}
	}
	return ParticipantInfo{}, false
}

type LeftEvent struct{}

func (LeftEvent) Type() EventType { return EventLeftMeeting }

// ParticipantEvent carries participant-joined, participant-updated and participant-left
type ParticipantEvent struct {
	Kind        EventType
	Participant ParticipantInfo
}

func (e ParticipantEvent) Type() EventType { return e.Kind }

// TrackEvent carries track-started and track-stopped
type TrackEvent struct {
	Kind        EventType
	Participant ParticipantInfo
	TrackKind   TrackKind
	Track       Track
}

func (e TrackEvent) Type() EventType { return e.Kind }

type ActiveSpeakerEvent struct {
	PeerID ParticipantID
}

func (ActiveSpeakerEvent) Type() EventType { return EventActiveSpeakerChange }

type AppMessageEvent struct {
	FromID ParticipantID
	Data   []byte
}

func (AppMessageEvent) Type() EventType { return EventAppMessage }

type ErrorEvent struct {
	Message string
}

func (ErrorEvent) Type() EventType { return EventError }

// LoadEvent carries loading, loaded and load-attempt-failed
type LoadEvent struct {
	Kind    EventType
	Message string
}

func (e LoadEvent) Type() EventType { return e.Kind }

// StreamingEvent carries the live-streaming-* and recording-* events
type StreamingEvent struct {
	Kind    EventType
	Message string
}

func (e StreamingEvent) Type() EventType { return e.Kind }
