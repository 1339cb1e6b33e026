package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Client message types.
const (
	TypeMessage    = "message"
	TypeNewSession = "new_session"
)

// Server message types. TypeMessage is shared with the client side.
const (
	TypeSessionCreated = "session_created"
	TypeTyping         = "typing"
	TypeError          = "error"
)

var errMissingType = errors.New("missing field `type`")

// ClientMessage is one frame sent by a client.
type ClientMessage struct {
	Type      string `json:"type"`
	Content   string `json:"content,omitempty"`
	SessionID string `json:"session_id,omitempty"`
}

// DecodeClientMessage parses and validates a client frame. A "message"
// frame must carry both content and session_id.
func DecodeClientMessage(data []byte) (ClientMessage, error) {
	var raw struct {
		Type      *string `json:"type"`
		Content   *string `json:"content"`
		SessionID *string `json:"session_id"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return ClientMessage{}, err
	}
	if raw.Type == nil {
		return ClientMessage{}, errMissingType
	}

	switch *raw.Type {
	case TypeNewSession:
		return ClientMessage{Type: TypeNewSession}, nil
	case TypeMessage:
		if raw.Content == nil {
			return ClientMessage{}, errors.New("missing field `content`")
		}
		if raw.SessionID == nil {
			return ClientMessage{}, errors.New("missing field `session_id`")
		}
		return ClientMessage{Type: TypeMessage, Content: *raw.Content, SessionID: *raw.SessionID}, nil
	default:
		return ClientMessage{}, fmt.Errorf("unknown variant `%s`, expected `%s` or `%s`", *raw.Type, TypeMessage, TypeNewSession)
	}
}

// ServerMessage is one frame sent to a client. Only the fields belonging
// to Type are encoded.
type ServerMessage struct {
	Type      string `json:"type"`
	Content   string `json:"content,omitempty"`
	SessionID string `json:"session_id,omitempty"`
}

func NewReply(content, sessionID string) ServerMessage {
	return ServerMessage{Type: TypeMessage, Content: content, SessionID: sessionID}
}

func NewSessionCreated(sessionID string) ServerMessage {
	return ServerMessage{Type: TypeSessionCreated, SessionID: sessionID}
}

func NewTyping() ServerMessage {
	return ServerMessage{Type: TypeTyping}
}

func NewError(content string) ServerMessage {
	return ServerMessage{Type: TypeError, Content: content}
}

// MarshalJSON encodes the variant's fields, including empty strings.
func (m ServerMessage) MarshalJSON() ([]byte, error) {
	switch m.Type {
	case TypeMessage:
		return json.Marshal(struct {
			Type      string `json:"type"`
			Content   string `json:"content"`
			SessionID string `json:"session_id"`
		}{m.Type, m.Content, m.SessionID})
	case TypeSessionCreated:
		return json.Marshal(struct {
			Type      string `json:"type"`
			SessionID string `json:"session_id"`
		}{m.Type, m.SessionID})
	case TypeError:
		return json.Marshal(struct {
			Type    string `json:"type"`
			Content string `json:"content"`
		}{m.Type, m.Content})
	default:
		return json.Marshal(struct {
			Type string `json:"type"`
		}{m.Type})
	}
}
