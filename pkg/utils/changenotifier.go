/*
 * Copyright 2023 LiveKit, Inc
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package utils

import (
	"sort"
	"sync"
)

// ChangeNotifier fans a change signal out to keyed observers. Observers run off the caller's
// goroutine, in key order, one notification at a time.
type ChangeNotifier struct {
	lock      sync.Mutex
	observers map[string]func()

	notifyLock sync.Mutex
}

func NewChangeNotifier() *ChangeNotifier {
	return &ChangeNotifier{
		observers: make(map[string]func()),
	}
}

func (n *ChangeNotifier) AddObserver(key string, onChanged func()) {
	n.lock.Lock()
	defer n.lock.Unlock()

	n.observers[key] = onChanged
}

func (n *ChangeNotifier) RemoveObserver(key string) {
	n.lock.Lock()
	defer n.lock.Unlock()

	delete(n.observers, key)
}

func (n *ChangeNotifier) HasObservers() bool {
	n.lock.Lock()
	defer n.lock.Unlock()

	return len(n.observers) > 0
}

func (n *ChangeNotifier) NotifyChanged() {
	observers := n.snapshot()
	if len(observers) == 0 {
		return
	}

	go func() {
		n.notifyLock.Lock()
		defer n.notifyLock.Unlock()

		for _, f := range observers {
			f()
		}
	}()
}

func (n *ChangeNotifier) snapshot() []func() {
	n.lock.Lock()
	defer n.lock.Unlock()

	if len(n.observers) == 0 {
		return nil
	}
	keys := make([]string, 0, len(n.observers))
	for k := range n.observers {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	observers := make([]func(), 0, len(keys))
	for _, k := range keys {
		observers = append(observers, n.observers[k])
	}
	return observers
}
