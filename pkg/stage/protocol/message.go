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

package protocol

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/jxskiss/base62"

	"github.com/livekit/livekit-stage/pkg/stage/types"
)

var (
	ErrUnknownMessage   = errors.New("unknown message type")
	ErrMalformedMessage = errors.New("malformed message")
)

type MessageType string

const (
	MessageRoleRequest      MessageType = "ROLE_REQUEST"
	MessageLayoutChange     MessageType = "LAYOUT_CHANGE"
	MessageLayoutSync       MessageType = "LAYOUT_SYNC"
	MessageOverlayUpdate    MessageType = "OVERLAY_UPDATE"
	MessageRecordingSetting MessageType = "RECORDING_SETTING"
)

// Message is the peer wire format. Origin and ID are provenance tags: Origin is the sender's
// session id and ID is unique per message. Both are optional for compatibility with peers that
// do not send them.
type Message struct {
	Type   MessageType         `json:"type"`
	ID     string              `json:"id,omitempty"`
	Origin types.ParticipantID `json:"origin,omitempty"`

	NewRole types.Role        `json:"newRole,omitempty"`
	Layout  types.Layout      `json:"layout,omitempty"`
	Overlay types.OverlayKind `json:"overlay,omitempty"`
	Visible *bool             `json:"visible,omitempty"`
	Enabled *bool             `json:"enabled,omitempty"`
}

func (m *Message) String() string {
	switch m.Type {
	case MessageRoleRequest:
		return fmt.Sprintf("%s{newRole: %s}", m.Type, m.NewRole)
	case MessageLayoutChange, MessageLayoutSync:
		return fmt.Sprintf("%s{layout: %s}", m.Type, m.Layout)
	case MessageOverlayUpdate:
		return fmt.Sprintf("%s{overlay: %s, visible: %v}", m.Type, m.Overlay, m.Visible != nil && *m.Visible)
	case MessageRecordingSetting:
		return fmt.Sprintf("%s{enabled: %v}", m.Type, m.Enabled != nil && *m.Enabled)
	}
	return string(m.Type)
}

func NewMessageID() string {
	id := uuid.New()
	return base62.EncodeToString(id[:])
}

func newMessage(t MessageType, origin types.ParticipantID) *Message {
	return &Message{
		Type:   t,
		ID:     NewMessageID(),
		Origin: origin,
	}
}

func NewRoleRequest(origin types.ParticipantID, role types.Role) *Message {
	m := newMessage(MessageRoleRequest, origin)
	m.NewRole = role
	return m
}

func NewLayoutChange(origin types.ParticipantID, layout types.Layout) *Message {
	m := newMessage(MessageLayoutChange, origin)
	m.Layout = layout
	return m
}

func NewLayoutSync(origin types.ParticipantID, layout types.Layout) *Message {
	m := newMessage(MessageLayoutSync, origin)
	m.Layout = layout
	return m
}

func NewOverlayUpdate(origin types.ParticipantID, overlay types.OverlayKind, visible bool) *Message {
	m := newMessage(MessageOverlayUpdate, origin)
	m.Overlay = overlay
	m.Visible = &visible
	return m
}

func NewRecordingSetting(origin types.ParticipantID, enabled bool) *Message {
	m := newMessage(MessageRecordingSetting, origin)
	m.Enabled = &enabled
	return m
}

func Encode(m *Message) ([]byte, error) {
	return json.Marshal(m)
}

// Decode parses and validates a peer message. Unknown types return ErrUnknownMessage and
// incomplete known types return ErrMalformedMessage.
func Decode(data []byte) (*Message, error) {
	m := &Message{}
	if err := json.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Message) Validate() error {
	switch m.Type {
	case MessageRoleRequest:
		if !m.NewRole.Valid() {
			return fmt.Errorf("%w: invalid role %q", ErrMalformedMessage, m.NewRole)
		}
	case MessageLayoutChange, MessageLayoutSync:
		if !m.Layout.Valid() {
			return fmt.Errorf("%w: invalid layout %q", ErrMalformedMessage, m.Layout)
		}
	case MessageOverlayUpdate:
		if !m.Overlay.Valid() || m.Visible == nil {
			return fmt.Errorf("%w: invalid overlay update", ErrMalformedMessage)
		}
	case MessageRecordingSetting:
		if m.Enabled == nil {
			return fmt.Errorf("%w: missing enabled", ErrMalformedMessage)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownMessage, m.Type)
	}
	return nil
}

// Deduper remembers recently seen message ids
type Deduper struct {
	seen *lru.Cache[string, struct{}]
}

func NewDeduper(size int) *Deduper {
	if size <= 0 {
		size = 256
	}
	seen, _ := lru.New[string, struct{}](size)
	return &Deduper{seen: seen}
}

// Seen records the id and reports whether it had been seen before. Messages without an id are
// never considered duplicates.
func (d *Deduper) Seen(m *Message) bool {
	if m.ID == "" {
		return false
	}
	ok, _ := d.seen.ContainsOrAdd(m.ID, struct{}{})
	return ok
}
