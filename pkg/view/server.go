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

package view

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/frostbyte73/core"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/urfave/negroni/v3"
	"go.uber.org/atomic"

	"github.com/livekit/protocol/logger"

	"github.com/livekit/livekit-stage/pkg/broadcast"
	"github.com/livekit/livekit-stage/pkg/config"
	"github.com/livekit/livekit-stage/pkg/renderer"
	"github.com/livekit/livekit-stage/pkg/stage"
	"github.com/livekit/livekit-stage/pkg/stage/types"
	"github.com/livekit/livekit-stage/pkg/telemetry/prometheus"
)

const observerKey = "view"

// TrackRenderer keeps the rendering layer in step with the tracks a view shows
type TrackRenderer interface {
	Reconcile(ctx context.Context, slots []renderer.Slot)
}

type ServerParams struct {
	Engine   Engine
	Channel  *broadcast.Channel
	Renderer TrackRenderer
	// OnGesture is called when a view reports a user interaction
	OnGesture func()
	Logger    logger.Logger
}

// Server is the websocket feed between the engine and the views rendering it
type Server struct {
	config *config.Config
	params ServerParams
	logger logger.Logger

	upgrader   websocket.Upgrader
	handler    http.Handler
	httpServer *http.Server
	promServer *http.Server
	running    atomic.Bool
	doneChan   chan struct{}

	lock    sync.Mutex
	clients map[string]*client

	stateChanged chan struct{}
	unsubscribe  []func()
	closed       core.Fuse
}

func NewServer(conf *config.Config, params ServerParams) *Server {
	if params.Logger == nil {
		params.Logger = logger.GetLogger()
	}
	s := &Server{
		config:       conf,
		params:       params,
		logger:       params.Logger.WithName("view"),
		doneChan:     make(chan struct{}, 1),
		clients:      make(map[string]*client),
		stateChanged: make(chan struct{}, 1),
	}
	s.upgrader = websocket.Upgrader{
		CheckOrigin: s.checkOrigin,
	}

	middlewares := []negroni.Handler{
		// always the first
		negroni.NewRecovery(),
		cors.New(cors.Options{
			AllowedOrigins: conf.View.AllowedOrigins,
			AllowedMethods: []string{http.MethodGet},
		}),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.serveWebsocket)
	mux.HandleFunc("/state", s.serveState)
	mux.HandleFunc("/", s.healthCheck)
	s.handler = configureMiddlewares(mux, middlewares...)

	s.httpServer = &http.Server{
		Handler: s.handler,
	}
	if conf.PrometheusPort > 0 {
		s.promServer = &http.Server{
			Addr:    fmt.Sprintf(":%d", conf.PrometheusPort),
			Handler: promhttp.Handler(),
		}
	}

	params.Engine.OnStateChanged(observerKey, s.onStateChanged)
	if params.Channel != nil {
		s.unsubscribe = append(s.unsubscribe,
			params.Channel.Live.Subscribe(signalHandler[bool](s, SignalLive)),
			params.Channel.Joined.Subscribe(signalHandler[bool](s, SignalJoined)),
			params.Channel.Overlays.Subscribe(signalHandler[types.Overlays](s, SignalOverlays)),
			params.Channel.Recording.Subscribe(signalHandler[bool](s, SignalRecording)),
			params.Channel.Error.Subscribe(signalHandler[string](s, SignalError)),
		)
	}
	go s.stateWorker()
	s.onStateChanged()

	return s
}

// Handler exposes the feed without binding a listener
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) IsRunning() bool {
	return s.running.Load()
}

func (s *Server) Start() error {
	if s.running.Swap(true) {
		return errors.New("already running")
	}

	addresses := s.config.View.BindAddresses
	if len(addresses) == 0 {
		addresses = []string{""}
	}

	// ensure we could listen
	listeners := make([]net.Listener, 0, len(addresses))
	for _, addr := range addresses {
		ln, err := net.Listen("tcp", net.JoinHostPort(addr, strconv.Itoa(int(s.config.View.Port))))
		if err != nil {
			for _, l := range listeners {
				_ = l.Close()
			}
			s.running.Store(false)
			return err
		}
		listeners = append(listeners, ln)
	}

	for _, ln := range listeners {
		go func(ln net.Listener) {
			s.logger.Infow("starting view feed", "address", ln.Addr().String())
			if err := s.httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
				s.logger.Errorw("view feed stopped", err)
			}
		}(ln)
	}
	if s.promServer != nil {
		go func() {
			s.logger.Infow("starting prometheus server", "address", s.promServer.Addr)
			if err := s.promServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				s.logger.Errorw("prometheus server stopped", err)
			}
		}()
	}

	<-s.doneChan

	// wait for shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = s.httpServer.Shutdown(ctx)
	if s.promServer != nil {
		_ = s.promServer.Shutdown(ctx)
	}
	s.Close()
	return nil
}

func (s *Server) Stop() {
	if !s.running.Load() {
		s.Close()
		return
	}
	select {
	case s.doneChan <- struct{}{}:
	default:
	}
}

// Close disconnects every view and detaches from the engine
func (s *Server) Close() {
	if s.closed.IsBroken() {
		return
	}
	s.closed.Break()

	s.params.Engine.RemoveStateObserver(observerKey)
	for _, unsubscribe := range s.unsubscribe {
		unsubscribe()
	}

	s.lock.Lock()
	clients := make([]*client, 0, len(s.clients))
	for _, c := range s.clients {
		clients = append(clients, c)
	}
	s.lock.Unlock()

	for _, c := range clients {
		c.close()
	}
}

func (s *Server) ClientCount() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return len(s.clients)
}

func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	allowed := s.config.View.AllowedOrigins
	if origin == "" || len(allowed) == 0 || slices.Contains(allowed, "*") {
		return true
	}
	return slices.Contains(allowed, origin)
}

func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func (s *Server) serveState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	state := s.params.Engine.Snapshot()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(&state); err != nil {
		s.logger.Warnw("could not write state", err)
	}
}

func (s *Server) serveWebsocket(w http.ResponseWriter, r *http.Request) {
	if s.closed.IsBroken() {
		http.Error(w, "view feed closed", http.StatusServiceUnavailable)
		return
	}
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// upgrader has already written the response
		s.logger.Debugw("could not upgrade view connection", "error", err)
		return
	}

	c := newClient(clientParams{
		ID:     uuid.NewString(),
		Conn:   conn,
		Config: s.config.View,
		Logger: s.logger,
	})

	s.lock.Lock()
	s.clients[c.id] = c
	s.lock.Unlock()
	prometheus.AddViewClient()
	if s.closed.IsBroken() {
		// raced with Close
		c.close()
	}
	c.logger.Infow("view connected", "remote", r.RemoteAddr)

	defer func() {
		s.lock.Lock()
		delete(s.clients, c.id)
		s.lock.Unlock()
		prometheus.SubViewClient()
		c.close()
		c.logger.Infow("view disconnected")
	}()

	go c.writeWorker(s.params.Engine.Snapshot)
	go c.pingWorker()
	c.notify()

	for {
		f, err := c.readFrame()
		if err != nil {
			if errors.Is(err, errMalformedFrame) {
				c.writeFrame(&ServerFrame{Type: FrameError, Error: err.Error()})
				continue
			}
			if !IsWebSocketCloseError(err) {
				c.logger.Warnw("view read failed", err)
			}
			return
		}
		s.handleFrame(c, f)
	}
}

func (s *Server) handleFrame(c *client, f *ClientFrame) {
	if f.Type != FrameIntent {
		c.writeFrame(&ServerFrame{Type: FrameError, ID: f.ID, Error: ErrUnknownFrame.Error()})
		return
	}
	if err := DispatchIntent(s.params.Engine, f, s.params.OnGesture); err != nil {
		c.logger.Debugw("intent rejected", "intent", f.Intent, "error", err)
		c.writeFrame(&ServerFrame{Type: FrameError, ID: f.ID, Error: err.Error()})
		return
	}
	c.writeFrame(&ServerFrame{Type: FrameAck, ID: f.ID})
}

func (s *Server) onStateChanged() {
	select {
	case s.stateChanged <- struct{}{}:
	default:
	}
}

// stateWorker coalesces engine changes, reconciles renderers and wakes every view
func (s *Server) stateWorker() {
	for {
		select {
		case <-s.closed.Watch():
			return
		case <-s.stateChanged:
		}

		if s.params.Renderer != nil {
			s.params.Renderer.Reconcile(context.Background(), RenderSlots(s.params.Engine.Snapshot()))
		}

		s.lock.Lock()
		for _, c := range s.clients {
			c.notify()
		}
		s.lock.Unlock()
	}
}

func (s *Server) broadcastFrame(f *ServerFrame) {
	s.lock.Lock()
	clients := make([]*client, 0, len(s.clients))
	for _, c := range s.clients {
		clients = append(clients, c)
	}
	s.lock.Unlock()

	for _, c := range clients {
		c.writeFrame(f)
	}
}

func signalHandler[T any](s *Server, name string) func(T) {
	return func(v T) {
		s.broadcastFrame(&ServerFrame{Type: FrameSignal, Signal: &Signal{Name: name, Value: v}})
	}
}

// RenderSlots lists the ready tracks a view plays. The local participant's audio is never played back.
func RenderSlots(st stage.State) []renderer.Slot {
	var slots []renderer.Slot
	for _, p := range st.Participants {
		for _, kind := range types.TrackKinds {
			track, ok := p.Tracks[kind]
			if !ok || (p.Local && kind.IsAudio()) {
				continue
			}
			slots = append(slots, renderer.Slot{
				ParticipantID: p.ID,
				Kind:          kind,
				Track:         track,
			})
		}
	}
	return slots
}

func configureMiddlewares(handler http.Handler, middlewares ...negroni.Handler) *negroni.Negroni {
	n := negroni.New()
	for _, m := range middlewares {
		n.Use(m)
	}
	n.UseHandler(handler)
	return n
}
