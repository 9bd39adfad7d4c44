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

package scenario

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/livekit/protocol/logger"

	"github.com/livekit/livekit-stage/pkg/simcall"
	"github.com/livekit/livekit-stage/pkg/stage"
	"github.com/livekit/livekit-stage/pkg/stage/protocol"
	"github.com/livekit/livekit-stage/pkg/stage/types"
	"github.com/livekit/livekit-stage/pkg/view"
)

var (
	ErrEmptyStep   = errors.New("step has no action")
	ErrMultiAction = errors.New("step has more than one action")
	ErrNoSteps     = errors.New("scenario has no steps")
)

// Scenario is a scripted call: remote participants come and go while the local participant
// sends intents
type Scenario struct {
	Local types.ParticipantID `yaml:"local,omitempty"`
	Name  string              `yaml:"name,omitempty"`
	Steps []Step              `yaml:"steps"`
}

type Participant struct {
	ID     types.ParticipantID `yaml:"id"`
	Name   string              `yaml:"name,omitempty"`
	Role   types.Role          `yaml:"role,omitempty"`
	Tracks []types.TrackKind   `yaml:"tracks,omitempty"`
}

type TrackStep struct {
	ID      types.ParticipantID `yaml:"id"`
	Kind    types.TrackKind     `yaml:"kind"`
	Started bool                `yaml:"started"`
}

type MessageStep struct {
	From    types.ParticipantID  `yaml:"from"`
	To      types.ParticipantID  `yaml:"to,omitempty"`
	Type    protocol.MessageType `yaml:"type"`
	Role    types.Role           `yaml:"role,omitempty"`
	Layout  types.Layout         `yaml:"layout,omitempty"`
	Overlay types.OverlayKind    `yaml:"overlay,omitempty"`
	Visible *bool                `yaml:"visible,omitempty"`
	Enabled *bool                `yaml:"enabled,omitempty"`
}

// EventStep injects an SDK event that is not tied to a participant, e.g. live-streaming-error
type EventStep struct {
	Type    types.EventType `yaml:"type"`
	Message string          `yaml:"message,omitempty"`
}

// Step holds exactly one action
type Step struct {
	Join    *Participant        `yaml:"join,omitempty"`
	Update  *Participant        `yaml:"update,omitempty"`
	Leave   *Participant        `yaml:"leave,omitempty"`
	Track   *TrackStep          `yaml:"track,omitempty"`
	Speaker types.ParticipantID `yaml:"speaker,omitempty"`
	Message *MessageStep        `yaml:"message,omitempty"`
	Event   *EventStep          `yaml:"event,omitempty"`
	Intent  *view.ClientFrame   `yaml:"intent,omitempty"`
	Wait    time.Duration       `yaml:"wait,omitempty"`
}

func (s *Step) actions() int {
	n := 0
	for _, set := range []bool{
		s.Join != nil, s.Update != nil, s.Leave != nil, s.Track != nil, s.Speaker != "",
		s.Message != nil, s.Event != nil, s.Intent != nil, s.Wait > 0,
	} {
		if set {
			n++
		}
	}
	return n
}

func (s *Step) String() string {
	switch {
	case s.Join != nil:
		return fmt.Sprintf("join %s", s.Join.ID)
	case s.Update != nil:
		return fmt.Sprintf("update %s -> %s", s.Update.ID, s.Update.Role)
	case s.Leave != nil:
		return fmt.Sprintf("leave %s", s.Leave.ID)
	case s.Track != nil:
		verb := "stop"
		if s.Track.Started {
			verb = "start"
		}
		return fmt.Sprintf("%s %s %s", verb, s.Track.ID, s.Track.Kind)
	case s.Speaker != "":
		return fmt.Sprintf("speaker %s", s.Speaker)
	case s.Message != nil:
		return fmt.Sprintf("message %s from %s", s.Message.Type, s.Message.From)
	case s.Event != nil:
		return fmt.Sprintf("event %s", s.Event.Type)
	case s.Intent != nil:
		return fmt.Sprintf("intent %s", s.Intent.Intent)
	case s.Wait > 0:
		return fmt.Sprintf("wait %s", s.Wait)
	}
	return "empty"
}

func Load(path string) (*Scenario, error) {
	file, err := homedir.Expand(os.ExpandEnv(path))
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func Parse(data []byte) (*Scenario, error) {
	s := &Scenario{}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(s); err != nil {
		return nil, errors.Wrap(err, "could not parse scenario")
	}
	if len(s.Steps) == 0 {
		return nil, ErrNoSteps
	}
	for i := range s.Steps {
		switch s.Steps[i].actions() {
		case 0:
			return nil, errors.Wrapf(ErrEmptyStep, "step %d", i+1)
		case 1:
		default:
			return nil, errors.Wrapf(ErrMultiAction, "step %d", i+1)
		}
	}
	if s.Local == "" {
		s.Local = "local"
	}
	return s, nil
}

type Result struct {
	Step    int
	Action  string
	Err     error
	Elapsed time.Duration
}

type Report struct {
	Name     string
	Results  []Result
	State    stage.State
	Live     *types.CompositionRequest
	Duration time.Duration
}

// Failed counts steps whose action was rejected
func (r *Report) Failed() int {
	n := 0
	for _, res := range r.Results {
		if res.Err != nil {
			n++
		}
	}
	return n
}

type RunParams struct {
	Config stage.Config
	Logger logger.Logger
}

// Run plays the scenario against a loopback call and reports the final engine state.
// Rejected intents are recorded in the report, they do not stop the run.
func Run(ctx context.Context, s *Scenario, params RunParams) (*Report, error) {
	if params.Logger == nil {
		params.Logger = logger.GetLogger()
	}
	room := simcall.NewRoom(params.Logger)
	engine := stage.NewEngine(stage.EngineParams{
		Session:  room.NewSession(simcall.SessionParams{ID: s.Local, StartMedia: true}),
		Config:   params.Config,
		Logger:   params.Logger,
		Identity: types.Identity{UserName: string(s.Local)},
		RoomURL:  "loopback://" + s.Name,
	})
	defer engine.Close()

	start := time.Now()
	if err := engine.Join(ctx); err != nil {
		return nil, errors.Wrap(err, "join")
	}
	engine.Drain()

	report := &Report{Name: s.Name}
	for i := range s.Steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		step := &s.Steps[i]
		stepStart := time.Now()
		err := runStep(ctx, room, engine, step)
		engine.Drain()
		report.Results = append(report.Results, Result{
			Step:    i + 1,
			Action:  step.String(),
			Err:     err,
			Elapsed: time.Since(stepStart),
		})
	}

	report.State = engine.Snapshot()
	report.Live = room.LiveLayout()
	if report.Live == nil {
		report.Live = engine.Composition()
	}
	report.Duration = time.Since(start)
	return report, nil
}

var errUnknownParticipant = errors.New("no such scripted participant")

func runStep(ctx context.Context, room *simcall.Room, engine *stage.Engine, step *Step) error {
	switch {
	case step.Join != nil:
		p := step.Join
		info := types.ParticipantInfo{SessionID: p.ID, UserName: p.Name}
		if p.Role != "" {
			info.UserData = types.RoleUserData(p.Role)
		}
		room.AddRemote(info)
		for _, kind := range p.Tracks {
			room.SetRemoteTrack(p.ID, kind, true)
		}
		return nil

	case step.Update != nil:
		if !room.UpdateRemote(step.Update.ID, types.RoleUserData(step.Update.Role)) {
			return errUnknownParticipant
		}
		return nil

	case step.Leave != nil:
		if !room.RemoveRemote(step.Leave.ID) {
			return errUnknownParticipant
		}
		return nil

	case step.Track != nil:
		if !room.SetRemoteTrack(step.Track.ID, step.Track.Kind, step.Track.Started) {
			return errUnknownParticipant
		}
		return nil

	case step.Speaker != "":
		room.Emit(types.ActiveSpeakerEvent{PeerID: step.Speaker})
		return nil

	case step.Message != nil:
		m := step.Message
		msg := &protocol.Message{
			Type:    m.Type,
			ID:      protocol.NewMessageID(),
			Origin:  m.From,
			NewRole: m.Role,
			Layout:  m.Layout,
			Overlay: m.Overlay,
			Visible: m.Visible,
			Enabled: m.Enabled,
		}
		if err := msg.Validate(); err != nil {
			return err
		}
		data, err := protocol.Encode(msg)
		if err != nil {
			return err
		}
		room.SendFrom(m.From, data, m.To)
		return nil

	case step.Event != nil:
		switch step.Event.Type {
		case types.EventError:
			room.Emit(types.ErrorEvent{Message: step.Event.Message})
		case types.EventLoading, types.EventLoaded, types.EventLoadAttemptFailed:
			room.Emit(types.LoadEvent{Kind: step.Event.Type, Message: step.Event.Message})
		default:
			room.Emit(types.StreamingEvent{Kind: step.Event.Type, Message: step.Event.Message})
		}
		return nil

	case step.Intent != nil:
		return view.DispatchIntent(engine, step.Intent, nil)

	case step.Wait > 0:
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(step.Wait):
		}
		return nil
	}
	return ErrEmptyStep
}
