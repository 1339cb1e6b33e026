// Package protocol defines the conversation and tool-call types shared by
// every subsystem: chat messages, embedded tool invocations, and tool
// definitions advertised to the model.
package protocol

import (
	"encoding/json"
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// Role identifies the sender of a conversation message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single entry in a conversation. Ordering within a
// conversation is significant; histories are append-only except for trimming.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// NewMessage creates a Message with the given role and content.
//
// Example:
//
//	msg := protocol.NewMessage(protocol.RoleUser, "Hello, world!")
func NewMessage(role Role, content string) Message {
	return Message{Role: role, Content: content}
}

// SystemMessage is shorthand for NewMessage(RoleSystem, content).
func SystemMessage(content string) Message { return NewMessage(RoleSystem, content) }

// UserMessage is shorthand for NewMessage(RoleUser, content).
func UserMessage(content string) Message { return NewMessage(RoleUser, content) }

// AssistantMessage is shorthand for NewMessage(RoleAssistant, content).
func AssistantMessage(content string) Message { return NewMessage(RoleAssistant, content) }

// ToolCall is a structured tool invocation extracted from model output.
// Arguments is a google.protobuf.Value: null, bool, number, string, list,
// or struct. Schema conformance is checked by the tool at execution time.
type ToolCall struct {
	Name      string
	Arguments *structpb.Value
}

// Args returns the arguments as a mapping. Non-object arguments yield an
// empty map.
func (tc ToolCall) Args() map[string]any {
	if s := tc.Arguments.GetStructValue(); s != nil {
		return s.AsMap()
	}
	return map[string]any{}
}

// MarshalJSON serializes to {"name": ..., "arguments": ...}, the same
// object shape the model embeds between tool-call markers.
func (tc ToolCall) MarshalJSON() ([]byte, error) {
	args := json.RawMessage(`{}`)
	if tc.Arguments != nil {
		data, err := protojson.Marshal(tc.Arguments)
		if err != nil {
			return nil, err
		}
		args = data
	}

	return json.Marshal(struct {
		Name      string          `json:"name"`
		Arguments json.RawMessage `json:"arguments"`
	}{
		Name:      tc.Name,
		Arguments: args,
	})
}

// UnmarshalJSON accepts {"name": ..., "arguments": ...}. Missing arguments
// default to an empty mapping.
func (tc *ToolCall) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name      string          `json:"name"`
		Arguments json.RawMessage `json:"arguments"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	tc.Name = raw.Name
	tc.Arguments = structpb.NewStructValue(&structpb.Struct{Fields: map[string]*structpb.Value{}})

	if len(raw.Arguments) == 0 || string(raw.Arguments) == "null" {
		return nil
	}

	var v structpb.Value
	if err := protojson.Unmarshal(raw.Arguments, &v); err != nil {
		return fmt.Errorf("tool call %s arguments: %w", raw.Name, err)
	}
	tc.Arguments = &v
	return nil
}
