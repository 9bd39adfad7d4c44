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

package audio

import (
	"context"
	"time"
)

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -generate

type State string

const (
	StateRunning     State = "running"
	StateSuspended   State = "suspended"
	StateInterrupted State = "interrupted"
	StateClosed      State = "closed"
)

// Context is the process-wide audio output graph
//
//counterfeiter:generate . Context
type Context interface {
	State() State
	Resume(ctx context.Context) error
	// Connect routes the stream through a unity gain node to the output
	Connect(stream Stream) error
	Close() error
}

type ContextFactory func() (Context, error)

// Stream is a rendered remote audio stream
type Stream interface {
	StreamID() string
	Paused() bool
	EnsurePlaying(ctx context.Context) error
}

// StreamSource lists the audio streams currently rendered
//
//counterfeiter:generate . StreamSource
type StreamSource interface {
	AudioStreams() []Stream
}

// GestureSource reports the first user interaction (click, touch or key press) once
//
//counterfeiter:generate . GestureSource
type GestureSource interface {
	OnFirstGesture(fn func()) (cancel func())
}

type BrowserRule struct {
	Family string `yaml:"family,omitempty"`
	// go-version constraint on the browser version, empty matches all
	Versions string `yaml:"versions,omitempty"`
}

type Config struct {
	AffectedBrowsers []BrowserRule `yaml:"affected_browsers,omitempty"`
	PollInterval     time.Duration `yaml:"poll_interval,omitempty"`
	ReconnectDelay   time.Duration `yaml:"reconnect_delay,omitempty"`
}

var DefaultConfig = Config{
	AffectedBrowsers: []BrowserRule{
		{Family: "Safari"},
		{Family: "Mobile Safari"},
	},
	PollInterval:   time.Second,
	ReconnectDelay: 100 * time.Millisecond,
}
