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

import "errors"

var (
	ErrEngineClosed           = errors.New("engine has already closed")
	ErrNotJoined              = errors.New("call is not joined")
	ErrAlreadyJoined          = errors.New("call has already been joined")
	ErrUnknownParticipant     = errors.New("participant is not in the call")
	ErrInvalidRole            = errors.New("invalid role")
	ErrInvalidLayout          = errors.New("invalid layout")
	ErrInvalidOverlay         = errors.New("invalid overlay")
	ErrLayoutNotAllowed       = errors.New("layout is not available while a screen share is active or absent")
	ErrLiveTransitionPending  = errors.New("live stream is already starting or stopping")
	ErrShareTransitionPending = errors.New("screen share is already starting or stopping")
	ErrShareRequiresStage     = errors.New("only stage participants can share their screen")
	ErrInvalidViewport        = errors.New("viewport size cannot be negative")
)

// user visible notices
const (
	noticeSetRoleFailed        = "Failed to set local role."
	noticeLoadFailed           = "Failed to load call resources. Please check your connection."
	noticeLiveStartFailed      = "Failed to start live stream. Please try again."
	noticeLiveStopFailed       = "Failed to stop live stream. Please try again."
	noticeLiveUpdateFailed     = "Failed to update live stream layout. Please try again."
	noticeLiveError            = "Live streaming error occurred. Please try again."
	noticeRecordingStartFailed = "Failed to start recording. Please try again."
	noticeRecordingStopFailed  = "Failed to stop recording. Please try again."
	noticeRecordingError       = "Recording error occurred. Please try again."
	noticeShareFailed          = "Failed to toggle screen share. Please try again."
	noticeMediaFailed          = "Failed to update camera or microphone."
	noticeSubscriptionFailed   = "Failed to update media subscriptions."
	noticeJoinFailed           = "Failed to join the call."
)

var fatalErrorMarkers = []string{"Failed to load", "Failed to fetch"}
