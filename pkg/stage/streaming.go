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
	"reflect"

	"github.com/pkg/errors"

	"github.com/livekit/livekit-stage/pkg/stage/composition"
	"github.com/livekit/livekit-stage/pkg/stage/types"
	"github.com/livekit/livekit-stage/pkg/telemetry/prometheus"
)

func (e *Engine) startLive() {
	req := composition.Compose(e.config.Composition, e.compositionInput())
	config := types.StreamingConfig{
		Endpoints: e.config.Endpoints,
		Layout:    req,
	}
	e.live = types.StreamStarting
	e.liveRequest = req
	e.logger.Infow("starting live stream", "endpoints", len(config.Endpoints), "mode", req.Mode)
	e.run(e.ordered, "start_live_streaming", func(ctx context.Context) error {
		return errors.Wrap(e.params.Session.StartLiveStreaming(ctx, config), "start live streaming")
	}, func(err error) {
		if err == nil {
			return
		}
		e.logger.Warnw("could not start live stream", err)
		if e.live == types.StreamStarting {
			e.live = types.StreamOff
			e.liveRequest = nil
		}
		e.showNotice(noticeLiveStartFailed, e.config.LiveErrorDisplay)
		e.changed()
	})
}

func (e *Engine) stopLive() {
	e.live = types.StreamStopping
	e.logger.Infow("stopping live stream")
	e.run(e.ordered, "stop_live_streaming", func(ctx context.Context) error {
		return errors.Wrap(e.params.Session.StopLiveStreaming(ctx), "stop live streaming")
	}, func(err error) {
		if err == nil {
			return
		}
		e.logger.Warnw("could not stop live stream", err)
		if e.live == types.StreamStopping {
			e.live = types.StreamOn
		}
		e.showNotice(noticeLiveStopFailed, e.config.LiveErrorDisplay)
		e.changed()
	})
}

func (e *Engine) startRecording() {
	req := composition.Compose(e.config.Composition, e.compositionInput())
	e.recording = types.StreamStarting
	e.recordingRequest = req
	e.logger.Infow("starting recording")
	e.run(e.ordered, "start_recording", func(ctx context.Context) error {
		return errors.Wrap(e.params.Session.StartRecording(ctx, types.StreamingConfig{Layout: req}), "start recording")
	}, func(err error) {
		if err == nil {
			return
		}
		e.logger.Warnw("could not start recording", err)
		if e.recording == types.StreamStarting {
			e.recording = types.StreamOff
			e.recordingRequest = nil
		}
		e.showNotice(noticeRecordingStartFailed, e.config.LiveErrorDisplay)
		e.changed()
	})
}

func (e *Engine) stopRecording() {
	e.recording = types.StreamStopping
	e.logger.Infow("stopping recording")
	e.run(e.ordered, "stop_recording", func(ctx context.Context) error {
		return errors.Wrap(e.params.Session.StopRecording(ctx), "stop recording")
	}, func(err error) {
		if err == nil {
			return
		}
		e.logger.Warnw("could not stop recording", err)
		if e.recording == types.StreamStopping {
			e.recording = types.StreamOn
		}
		e.showNotice(noticeRecordingStopFailed, e.config.LiveErrorDisplay)
		e.changed()
	})
}

// setLive applies a streaming event. A stream that comes up with a stale layout is corrected once.
func (e *Engine) setLive(s types.StreamState) {
	if e.live == s {
		return
	}
	e.logger.Infow("live state changed", "state", s, "previous", e.live)
	e.live = s
	prometheus.SetStreamActive("live", s == types.StreamOn)

	sent := e.liveRequest
	e.liveRequest = nil
	if s != types.StreamOn || sent == nil || e.callState != types.CallJoined {
		return
	}
	if !reflect.DeepEqual(sent, composition.Compose(e.config.Composition, e.compositionInput())) {
		e.pushComposition()
	}
}

func (e *Engine) setRecording(s types.StreamState) {
	if e.recording == s {
		return
	}
	e.logger.Infow("recording state changed", "state", s, "previous", e.recording)
	e.recording = s
	prometheus.SetStreamActive("recording", s == types.StreamOn)

	sent := e.recordingRequest
	e.recordingRequest = nil
	if s != types.StreamOn || sent == nil || e.callState != types.CallJoined {
		return
	}
	// a recording started here that came up after the live stream ended or recording was disabled
	if !e.recordingEnabled || e.live == types.StreamOff || e.live == types.StreamStopping {
		e.logger.Infow("stopping recording that outlived the live stream", "live", e.live)
		e.stopRecording()
		return
	}
	if !reflect.DeepEqual(sent, composition.Compose(e.config.Composition, e.compositionInput())) {
		e.pushComposition()
	}
}
