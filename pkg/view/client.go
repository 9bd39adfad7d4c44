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
	"encoding/json"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/frostbyte73/core"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	"github.com/livekit/protocol/logger"

	"github.com/livekit/livekit-stage/pkg/config"
	"github.com/livekit/livekit-stage/pkg/stage"
)

var errMalformedFrame = errors.New("malformed frame")

type clientParams struct {
	ID     string
	Conn   *websocket.Conn
	Config config.ViewConfig
	Logger logger.Logger
}

// client is one connected view. Writes are serialized, state pushes are coalesced.
type client struct {
	id     string
	conn   *websocket.Conn
	config config.ViewConfig
	logger logger.Logger

	mu      sync.Mutex
	pending chan struct{}
	closed  core.Fuse
}

func newClient(params clientParams) *client {
	return &client{
		id:      params.ID,
		conn:    params.Conn,
		config:  params.Config,
		logger:  params.Logger.WithValues("clientID", params.ID),
		pending: make(chan struct{}, 1),
	}
}

func (c *client) notify() {
	select {
	case c.pending <- struct{}{}:
	default:
	}
}

func (c *client) close() {
	if c.closed.IsBroken() {
		return
	}
	c.closed.Break()

	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(c.config.WriteTimeout),
	)
	_ = c.conn.Close()
}

func (c *client) readFrame() (*ClientFrame, error) {
	messageType, payload, err := c.conn.ReadMessage()
	if err != nil {
		return nil, err
	}
	if messageType != websocket.TextMessage {
		return nil, errors.Wrapf(errMalformedFrame, "unsupported message type %d", messageType)
	}

	f := &ClientFrame{}
	if err := json.Unmarshal(payload, f); err != nil {
		return nil, errors.Wrap(errMalformedFrame, err.Error())
	}
	return f, nil
}

func (c *client) writeFrame(f *ServerFrame) {
	if c.closed.IsBroken() {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.config.WriteTimeout > 0 {
		_ = c.conn.SetWriteDeadline(time.Now().Add(c.config.WriteTimeout))
	}
	if err := c.conn.WriteJSON(f); err != nil {
		if !IsWebSocketCloseError(err) {
			c.logger.Warnw("could not write to view", err, "type", f.Type)
		}
		go c.close()
	}
}

// writeWorker sends the latest snapshot whenever the engine has changed since the last send
func (c *client) writeWorker(snapshot func() stage.State) {
	for {
		select {
		case <-c.closed.Watch():
			return
		case <-c.pending:
			state := snapshot()
			c.writeFrame(&ServerFrame{Type: FrameState, State: &state})
		}
	}
}

func (c *client) pingWorker() {
	if c.config.PingInterval <= 0 {
		return
	}
	ticker := time.NewTicker(c.config.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.closed.Watch():
			return
		case <-ticker.C:
			c.mu.Lock()
			err := c.conn.WriteControl(websocket.PingMessage, []byte(""), time.Now().Add(c.config.PingTimeout))
			c.mu.Unlock()
			if err != nil {
				return
			}
		}
	}
}

// IsWebSocketCloseError checks that error is normal/expected closure
func IsWebSocketCloseError(err error) bool {
	return errors.Is(err, io.EOF) ||
		strings.HasSuffix(err.Error(), "use of closed network connection") ||
		strings.HasSuffix(err.Error(), "connection reset by peer") ||
		websocket.IsCloseError(
			err,
			websocket.CloseAbnormalClosure,
			websocket.CloseGoingAway,
			websocket.CloseNormalClosure,
			websocket.CloseNoStatusReceived,
		)
}
