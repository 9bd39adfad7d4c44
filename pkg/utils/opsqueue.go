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

package utils

import (
	"fmt"
	"runtime/debug"
	"sync"

	"github.com/frostbyte73/core"
	"github.com/gammazero/deque"
	"github.com/livekit/protocol/logger"
)

// OpsQueue runs queued operations one at a time on a single goroutine, in enqueue order.
// It is unbounded, so producers never block and never drop.
type OpsQueue struct {
	logger logger.Logger
	name   string

	lock      sync.Mutex
	ops       deque.Deque[func()]
	wake      chan struct{}
	isStarted bool
	isStopped bool

	stop    core.Fuse
	stopped core.Fuse
}

func NewOpsQueue(logger logger.Logger, name string) *OpsQueue {
	return &OpsQueue{
		logger: logger,
		name:   name,
		wake:   make(chan struct{}, 1),
	}
}

func (oq *OpsQueue) SetLogger(logger logger.Logger) {
	oq.logger = logger
}

func (oq *OpsQueue) Start() {
	oq.lock.Lock()
	if oq.isStarted || oq.isStopped {
		oq.lock.Unlock()
		return
	}
	oq.isStarted = true
	oq.lock.Unlock()

	go oq.process()
}

// Stop discards pending operations. An operation already running completes.
func (oq *OpsQueue) Stop() {
	oq.lock.Lock()
	if oq.isStopped {
		oq.lock.Unlock()
		return
	}
	oq.isStopped = true
	started := oq.isStarted
	for oq.ops.Len() != 0 {
		oq.ops.PopFront()
	}
	oq.lock.Unlock()

	oq.stop.Break()
	if !started {
		oq.stopped.Break()
	}
}

func (oq *OpsQueue) IsStopped() bool {
	oq.lock.Lock()
	defer oq.lock.Unlock()

	return oq.isStopped
}

// Stopped is closed once the processing goroutine has exited
func (oq *OpsQueue) Stopped() <-chan struct{} {
	return oq.stopped.Watch()
}

func (oq *OpsQueue) Len() int {
	oq.lock.Lock()
	defer oq.lock.Unlock()

	return oq.ops.Len()
}

// Enqueue returns false if the queue has been stopped
func (oq *OpsQueue) Enqueue(op func()) bool {
	oq.lock.Lock()
	if oq.isStopped {
		oq.lock.Unlock()
		return false
	}
	oq.ops.PushBack(op)
	oq.lock.Unlock()

	select {
	case oq.wake <- struct{}{}:
	default:
	}
	return true
}

// EnqueueAndWait blocks until op has run. It returns false if the queue was stopped before op
// could run. Must not be called from an operation running on the same queue.
func (oq *OpsQueue) EnqueueAndWait(op func()) bool {
	done := make(chan struct{})
	if !oq.Enqueue(func() {
		defer close(done)
		op()
	}) {
		return false
	}

	select {
	case <-done:
		return true
	case <-oq.stopped.Watch():
		select {
		case <-done:
			return true
		default:
			return false
		}
	}
}

func (oq *OpsQueue) process() {
	defer oq.stopped.Break()

	for {
		select {
		case <-oq.stop.Watch():
			return
		case <-oq.wake:
		}

		for {
			oq.lock.Lock()
			if oq.isStopped || oq.ops.Len() == 0 {
				oq.lock.Unlock()
				break
			}
			op := oq.ops.PopFront()
			oq.lock.Unlock()

			oq.run(op)
		}
	}
}

func (oq *OpsQueue) run(op func()) {
	defer func() {
		if r := recover(); r != nil {
			oq.logger.Errorw("ops queue operation panicked", fmt.Errorf("%v", r),
				"name", oq.name,
				"stack", string(debug.Stack()),
			)
		}
	}()
	op()
}
