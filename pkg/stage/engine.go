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
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/frostbyte73/core"
	"github.com/gammazero/workerpool"
	"go.uber.org/atomic"

	"github.com/livekit/protocol/logger"

	"github.com/livekit/livekit-stage/pkg/broadcast"
	"github.com/livekit/livekit-stage/pkg/layout"
	"github.com/livekit/livekit-stage/pkg/stage/protocol"
	"github.com/livekit/livekit-stage/pkg/stage/types"
	"github.com/livekit/livekit-stage/pkg/telemetry/prometheus"
	"github.com/livekit/livekit-stage/pkg/utils"
)

// AudioMonitor keeps audio output alive while a call is active
type AudioMonitor interface {
	StartMonitoring()
	StopMonitoring()
}

type EngineParams struct {
	Session  types.CallSession
	Registry types.TrackRegistry
	Audio    AudioMonitor
	Channel  *broadcast.Channel
	Config   Config
	Logger   logger.Logger
	Identity types.Identity
	RoomURL  string
}

// Engine is the single owner of call state. Every mutation runs on one ops queue; SDK commands run
// on worker pools and report back through the queue.
type Engine struct {
	params EngineParams
	config Config
	logger logger.Logger

	queue    *utils.OpsQueue
	commands *workerpool.WorkerPool
	// app messages, role writes and broadcast commands keep their issue order
	ordered  *workerpool.WorkerPool
	inflight atomic.Int32

	deferred       *utils.DeferredWork
	terminal       *utils.DeferredWork
	layoutDebounce *utils.Debouncer
	volumeDebounce *utils.Debouncer
	dedupe         *protocol.Deduper
	calculator     *layout.Calculator
	notifier       *utils.ChangeNotifier
	healthStop     core.Fuse
	closed         core.Fuse

	stateLock sync.RWMutex
	state     State

	callEndedLock sync.Mutex
	onCallEnded   []func()
	callEnded     bool

	unsubscribeToggleLive func()

	// fields below are only touched on the queue
	callState        types.CallState
	handlersAttached bool
	localID          types.ParticipantID
	participants     map[types.ParticipantID]*types.Participant
	roleCache        map[types.ParticipantID]types.Role
	layout           types.Layout
	overlays         types.Overlays
	activeSpeaker    types.ParticipantID
	owner            types.ParticipantID
	isScreenSharing  bool
	sharePending     bool
	live             types.StreamState
	recording        types.StreamState
	recordingEnabled bool
	liveRequest      *types.CompositionRequest
	recordingRequest *types.CompositionRequest
	stageVolume      float64
	backstageMuted   bool
	notice           string
	noticeToken      *utils.DeferredToken
	viewport         layout.Size
	geometry         *layout.Geometry
	lastPolicy       map[types.ParticipantID]types.SubscriptionSettings
	missingOwner     int
	published        published
}

// last values pushed to the broadcast channel
type published struct {
	joined    bool
	live      bool
	recording bool
	overlays  types.Overlays
	notice    string
}

func NewEngine(params EngineParams) *Engine {
	if params.Logger == nil {
		params.Logger = logger.GetLogger()
	}
	config := params.Config.withDefaults()
	e := &Engine{
		params:         params,
		config:         config,
		logger:         params.Logger.WithValues("room", params.RoomURL),
		commands:       workerpool.New(config.CommandWorkers),
		ordered:        workerpool.New(1),
		deferred:       utils.NewDeferredWork(),
		terminal:       utils.NewDeferredWork(),
		layoutDebounce: utils.NewDebouncer(config.LayoutDebounce),
		volumeDebounce: utils.NewDebouncer(config.VolumeDebounce),
		dedupe:         protocol.NewDeduper(config.MessageCacheSize),
		calculator:     layout.NewCalculator(config.Layout),
		notifier:       utils.NewChangeNotifier(),
		participants:   make(map[types.ParticipantID]*types.Participant),
		roleCache:      make(map[types.ParticipantID]types.Role),
		layout:         types.LayoutGrid,
		stageVolume:    1,
	}
	e.queue = utils.NewOpsQueue(e.logger, "stage-engine")
	e.queue.Start()
	e.state = e.buildState()

	if params.Channel != nil {
		e.unsubscribeToggleLive = params.Channel.ToggleLive.Subscribe(func(struct{}) {
			if err := e.ToggleLive(); err != nil {
				e.logger.Debugw("toggle live request rejected", "error", err)
			}
		})
	}
	return e
}

// Join attaches event handlers and issues the join command. The call becomes joined when the SDK
// reports it.
func (e *Engine) Join(ctx context.Context) error {
	err := e.do(func() error {
		if e.callState != types.CallIdle {
			return ErrAlreadyJoined
		}
		e.callState = types.CallJoining
		e.attachHandlers()
		e.logger.Infow("joining call", "userName", e.params.Identity.UserName)
		e.changed()
		return nil
	})
	if err != nil {
		return err
	}

	e.run(e.commands, "join", func(context.Context) error {
		return e.params.Session.Join(ctx, e.params.Identity, e.params.RoomURL)
	}, func(err error) {
		if err != nil {
			e.onJoinFailed(err)
		}
	})
	return nil
}

func (e *Engine) Leave() error {
	return e.do(func() error {
		switch e.callState {
		case types.CallJoining, types.CallJoined:
		case types.CallLeaving:
			return nil
		default:
			return ErrNotJoined
		}
		e.callState = types.CallLeaving
		e.logger.Infow("leaving call")
		e.changed()
		e.run(e.commands, "leave", e.params.Session.Leave, func(err error) {
			if err != nil {
				e.logger.Warnw("leave failed", err)
				e.finishLeft()
			}
		})
		return nil
	})
}

// OnCallEnded registers a callback fired once when the call reaches a terminal state
func (e *Engine) OnCallEnded(f func()) {
	e.callEndedLock.Lock()
	defer e.callEndedLock.Unlock()
	e.onCallEnded = append(e.onCallEnded, f)
}

func (e *Engine) OnStateChanged(key string, f func()) {
	e.notifier.AddObserver(key, f)
}

func (e *Engine) RemoveStateObserver(key string) {
	e.notifier.RemoveObserver(key)
}

// Close tears the engine down without leaving the call
func (e *Engine) Close() {
	if e.closed.IsBroken() {
		return
	}
	e.closed.Break()

	e.queue.EnqueueAndWait(func() {
		e.teardown()
	})
	if e.unsubscribeToggleLive != nil {
		e.unsubscribeToggleLive()
	}
	e.queue.Stop()
	e.terminal.Close()
	e.commands.StopWait()
	e.ordered.StopWait()
}

// Drain waits until the queue and all in-flight commands are quiescent
func (e *Engine) Drain() {
	for {
		if e.inflight.Load() == 0 {
			if !e.queue.EnqueueAndWait(func() {}) {
				return
			}
			if e.inflight.Load() == 0 && e.queue.Len() == 0 {
				return
			}
		}
		time.Sleep(time.Millisecond)
	}
}

func (e *Engine) Snapshot() State {
	e.stateLock.RLock()
	defer e.stateLock.RUnlock()
	return e.state.Clone()
}

func (e *Engine) StageParticipants() []ParticipantState {
	return e.Snapshot().Stage()
}

func (e *Engine) BackstageParticipants() []ParticipantState {
	return e.Snapshot().Backstage()
}

func (e *Engine) ScreenShareOwner() (types.ParticipantID, bool) {
	owner := e.Snapshot().ScreenShareOwner
	return owner, owner != ""
}

// Composition returns the request that would be pushed for the current state, nil before joining
func (e *Engine) Composition() *types.CompositionRequest {
	return e.Snapshot().Composition
}

func (e *Engine) SubscriptionPolicy() map[types.ParticipantID]types.SubscriptionSettings {
	return e.Snapshot().Subscriptions
}

// do runs f on the queue and waits for its result
func (e *Engine) do(f func() error) error {
	if e.closed.IsBroken() {
		return ErrEngineClosed
	}
	var err error
	if !e.queue.EnqueueAndWait(func() {
		err = f()
	}) {
		return ErrEngineClosed
	}
	return err
}

// run executes an SDK command off the queue, then hands the result back to the queue
func (e *Engine) run(pool *workerpool.WorkerPool, name string, cmd func(ctx context.Context) error, done func(err error)) {
	if pool.Stopped() {
		return
	}
	e.inflight.Inc()
	pool.Submit(func() {
		defer e.inflight.Dec()

		ctx, cancel := context.WithTimeout(context.Background(), e.config.CommandTimeout)
		start := time.Now()
		err := cmd(ctx)
		cancel()
		prometheus.RecordCommand(name, err, time.Since(start))
		if err != nil {
			e.logger.Debugw("command failed", "command", name, "error", err)
		}
		if done != nil {
			e.queue.Enqueue(func() {
				done(err)
			})
		}
	})
}

func (e *Engine) attachHandlers() {
	if e.handlersAttached {
		return
	}
	e.handlersAttached = true
	for _, t := range types.EventTypes {
		e.params.Session.On(t, e.onEvent)
	}
}

func (e *Engine) detachHandlers() {
	if !e.handlersAttached {
		return
	}
	e.handlersAttached = false
	for _, t := range types.EventTypes {
		e.params.Session.Off(t)
	}
}

// onEvent is called from SDK goroutines
func (e *Engine) onEvent(evt types.Event) {
	e.queue.Enqueue(func() {
		e.handleEvent(evt)
	})
}

func (e *Engine) onJoinFailed(err error) {
	if e.callState != types.CallJoining {
		return
	}
	e.logger.Warnw("join failed", err)
	e.showNotice(noticeJoinFailed+" "+err.Error(), 0)
	e.callState = types.CallLeft
	e.teardown()
	e.changed()
	e.endCallAfter(e.config.FatalGrace, false)
}

// onFatalError ends the call after a grace period so the user can read the error
func (e *Engine) onFatalError(msg string) {
	if e.callState == types.CallLeft {
		return
	}
	e.logger.Warnw("fatal call error", nil, "message", msg)
	if e.callState == types.CallJoined || e.callState == types.CallJoining {
		e.callState = types.CallLeaving
	}
	e.changed()
	e.endCallAfter(e.config.FatalGrace, true)
}

func (e *Engine) endCallAfter(d time.Duration, destroy bool) {
	e.terminal.After(d, func() {
		if destroy {
			e.queue.Enqueue(e.finishLeft)
			return
		}
		e.fireCallEnded()
	})
}

// finishLeft moves the call to its terminal state
func (e *Engine) finishLeft() {
	if e.callState == types.CallLeft {
		return
	}
	e.callState = types.CallLeft
	e.logger.Infow("left call")
	e.teardown()
	e.changed()
	e.run(e.commands, "destroy", func(context.Context) error {
		e.params.Session.Destroy()
		return nil
	}, nil)
	e.fireCallEnded()
}

// teardown cancels everything tied to the call: handlers, timers, and the health check
func (e *Engine) teardown() {
	e.detachHandlers()
	e.healthStop.Break()
	e.layoutDebounce.Cancel()
	e.volumeDebounce.Cancel()
	e.deferred.Close()
	e.noticeToken = nil
	if e.params.Audio != nil {
		e.params.Audio.StopMonitoring()
	}
	prometheus.SetStreamActive("live", false)
	prometheus.SetStreamActive("recording", false)
}

func (e *Engine) fireCallEnded() {
	e.callEndedLock.Lock()
	if e.callEnded {
		e.callEndedLock.Unlock()
		return
	}
	e.callEnded = true
	callbacks := e.onCallEnded
	e.callEndedLock.Unlock()

	go func() {
		for _, f := range callbacks {
			f()
		}
	}()
}

// changed publishes the current state. Must run on the queue.
func (e *Engine) changed() {
	st := e.buildState()
	e.stateLock.Lock()
	e.state = st
	e.stateLock.Unlock()

	prometheus.SetParticipants(len(st.Stage()), len(st.Backstage()))
	e.publishSignals(st)
	e.notifier.NotifyChanged()
}

func (e *Engine) publishSignals(st State) {
	ch := e.params.Channel
	if ch == nil {
		return
	}
	joined := st.CallState == types.CallJoined
	if joined != e.published.joined {
		e.published.joined = joined
		ch.Joined.Publish(joined)
	}
	live := st.Live == types.StreamOn
	if live != e.published.live {
		e.published.live = live
		ch.Live.Publish(live)
	}
	recording := st.Recording == types.StreamOn
	if recording != e.published.recording {
		e.published.recording = recording
		ch.Recording.Publish(recording)
	}
	if st.Overlays != e.published.overlays {
		e.published.overlays = st.Overlays
		ch.Overlays.Publish(st.Overlays)
	}
	if st.Error != e.published.notice {
		e.published.notice = st.Error
		ch.Error.Publish(st.Error)
	}
}

// showNotice surfaces a user visible error. A zero duration keeps it until dismissed.
func (e *Engine) showNotice(msg string, d time.Duration) {
	if e.noticeToken != nil {
		e.noticeToken.Cancel()
		e.noticeToken = nil
	}
	e.notice = msg
	if d > 0 {
		e.noticeToken = e.deferred.After(d, func() {
			e.queue.Enqueue(func() {
				if e.notice == msg {
					e.notice = ""
					e.changed()
				}
			})
		})
	}
}

func isFatal(msg string) bool {
	for _, m := range fatalErrorMarkers {
		if strings.Contains(msg, m) {
			return true
		}
	}
	return false
}

func (e *Engine) localParticipant() *types.Participant {
	if e.localID == "" {
		return nil
	}
	return e.participants[e.localID]
}

func (e *Engine) localRole() types.Role {
	if p := e.localParticipant(); p != nil {
		return p.Role.Role
	}
	return types.RoleBackstage
}

func (e *Engine) sortedParticipantIDs() []types.ParticipantID {
	ids := make([]types.ParticipantID, 0, len(e.participants))
	for id := range e.participants {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
