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

package broadcast

import (
	"sync"

	"github.com/frostbyte73/core"
	"github.com/gammazero/workerpool"

	"github.com/livekit/livekit-stage/pkg/stage/types"
	"github.com/livekit/livekit-stage/pkg/utils"
)

// Channel carries in-process call signals between the engine and any number of view components.
// Deliveries happen on one worker, in publish order, never on the publisher's goroutine.
type Channel struct {
	pool   *workerpool.WorkerPool
	closed core.Fuse

	Live      *Subject[bool]
	Joined    *Subject[bool]
	Overlays  *Subject[types.Overlays]
	Recording *Subject[bool]
	Error     *Subject[string]

	// ToggleLive carries requests, not state, so late subscribers get nothing replayed
	ToggleLive *Subject[struct{}]
}

func NewChannel() *Channel {
	c := &Channel{
		pool: workerpool.New(1),
	}
	c.Live = newSubject[bool](c, true)
	c.Joined = newSubject[bool](c, true)
	c.Overlays = newSubject[types.Overlays](c, true)
	c.Recording = newSubject[bool](c, true)
	c.Error = newSubject[string](c, true)
	c.ToggleLive = newSubject[struct{}](c, false)
	return c
}

// Reset clears state between calls without dropping subscribers
func (c *Channel) Reset() {
	c.Live.Publish(false)
	c.Joined.Publish(false)
	c.Overlays.Publish(types.Overlays{})
	c.Recording.Publish(false)
	c.Error.Publish("")
}

func (c *Channel) Close() {
	if c.closed.IsBroken() {
		return
	}
	c.closed.Break()
	c.pool.StopWait()
}

// Flush waits for pending deliveries
func (c *Channel) Flush() {
	if c.closed.IsBroken() {
		return
	}
	done := make(chan struct{})
	c.pool.Submit(func() { close(done) })
	<-done
}

func (c *Channel) dispatch(f func()) {
	if c.closed.IsBroken() {
		return
	}
	c.pool.Submit(f)
}

type Subject[T any] struct {
	channel *Channel
	replay  bool

	lock     sync.Mutex
	value    T
	hasValue bool
	nextID   uint64
	subs     map[uint64]func(T)
}

func newSubject[T any](c *Channel, replay bool) *Subject[T] {
	return &Subject[T]{
		channel: c,
		replay:  replay,
		subs:    make(map[uint64]func(T)),
	}
}

func (s *Subject[T]) Publish(v T) {
	s.lock.Lock()
	if s.replay {
		s.value = v
		s.hasValue = true
	}
	subs := make([]func(T), 0, len(s.subs))
	for _, id := range utils.SortedKeys(s.subs) {
		subs = append(subs, s.subs[id])
	}
	s.lock.Unlock()

	if len(subs) == 0 {
		return
	}
	s.channel.dispatch(func() {
		for _, f := range subs {
			f(v)
		}
	})
}

// Value returns the last published value of a state subject
func (s *Subject[T]) Value() (T, bool) {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.value, s.hasValue
}

// Subscribe registers fn and, for state subjects, replays the current value to it
func (s *Subject[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	s.lock.Lock()
	s.nextID++
	id := s.nextID
	s.subs[id] = fn
	v, replay := s.value, s.replay && s.hasValue
	s.lock.Unlock()

	if replay {
		s.channel.dispatch(func() { fn(v) })
	}

	return func() {
		s.lock.Lock()
		defer s.lock.Unlock()
		delete(s.subs, id)
	}
}

func (s *Subject[T]) Subscribers() int {
	s.lock.Lock()
	defer s.lock.Unlock()

	return len(s.subs)
}
