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
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/frostbyte73/core"
)

// Debouncer coalesces bursts of work into a single trailing-edge call. Once cancelled, pending
// and future work is dropped.
type Debouncer struct {
	debounced func(func())
	cancelled core.Fuse
}

func NewDebouncer(after time.Duration) *Debouncer {
	return &Debouncer{
		debounced: debounce.New(after),
	}
}

func (d *Debouncer) Schedule(f func()) {
	if d.cancelled.IsBroken() {
		return
	}
	d.debounced(func() {
		if d.cancelled.IsBroken() {
			return
		}
		f()
	})
}

func (d *Debouncer) Cancel() {
	d.cancelled.Break()
	// replaces the pending call
	d.debounced(func() {})
}

// DeferredWork owns one-shot timers so that all outstanding work can be cancelled together
type DeferredWork struct {
	lock   sync.Mutex
	nextID uint64
	timers map[uint64]*time.Timer
	closed bool
}

func NewDeferredWork() *DeferredWork {
	return &DeferredWork{
		timers: make(map[uint64]*time.Timer),
	}
}

// After runs f once after d unless cancelled. The returned token cancels just this piece of work.
func (w *DeferredWork) After(d time.Duration, f func()) *DeferredToken {
	w.lock.Lock()
	defer w.lock.Unlock()

	if w.closed {
		return &DeferredToken{}
	}

	w.nextID++
	id := w.nextID
	w.timers[id] = time.AfterFunc(d, func() {
		w.lock.Lock()
		if _, ok := w.timers[id]; !ok || w.closed {
			w.lock.Unlock()
			return
		}
		delete(w.timers, id)
		w.lock.Unlock()

		f()
	})
	return &DeferredToken{work: w, id: id}
}

func (w *DeferredWork) Pending() int {
	w.lock.Lock()
	defer w.lock.Unlock()

	return len(w.timers)
}

// Close cancels every outstanding timer. Later calls to After are no-ops.
func (w *DeferredWork) Close() {
	w.lock.Lock()
	defer w.lock.Unlock()

	w.closed = true
	for id, t := range w.timers {
		t.Stop()
		delete(w.timers, id)
	}
}

func (w *DeferredWork) cancel(id uint64) bool {
	w.lock.Lock()
	defer w.lock.Unlock()

	t, ok := w.timers[id]
	if !ok {
		return false
	}
	t.Stop()
	delete(w.timers, id)
	return true
}

type DeferredToken struct {
	work *DeferredWork
	id   uint64
}

// Cancel returns true if the work was still pending
func (t *DeferredToken) Cancel() bool {
	if t == nil || t.work == nil {
		return false
	}
	return t.work.cancel(t.id)
}
