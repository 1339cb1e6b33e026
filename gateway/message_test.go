package gateway_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yemubit/zeroclaw/gateway"
)

func TestDecodeClientMessage(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    gateway.ClientMessage
		wantErr string
	}{
		{
			name:  "message",
			input: `{"type":"message","content":"hello","session_id":"abc"}`,
			want:  gateway.ClientMessage{Type: "message", Content: "hello", SessionID: "abc"},
		},
		{
			name:  "new session",
			input: `{"type":"new_session"}`,
			want:  gateway.ClientMessage{Type: "new_session"},
		},
		{
			name:  "empty content allowed",
			input: `{"type":"message","content":"","session_id":"abc"}`,
			want:  gateway.ClientMessage{Type: "message", SessionID: "abc"},
		},
		{name: "missing content", input: `{"type":"message","session_id":"abc"}`, wantErr: "content"},
		{name: "missing session", input: `{"type":"message","content":"hi"}`, wantErr: "session_id"},
		{name: "missing type", input: `{"content":"hi"}`, wantErr: "type"},
		{name: "unknown type", input: `{"type":"shout"}`, wantErr: "unknown variant"},
		{name: "not json", input: `hello`, wantErr: "invalid character"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := gateway.DecodeClientMessage([]byte(tt.input))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestServerMessage_MarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		msg  gateway.ServerMessage
		want string
	}{
		{"message", gateway.NewReply("Hello!", "abc"), `{"type":"message","content":"Hello!","session_id":"abc"}`},
		{"empty message", gateway.NewReply("", "abc"), `{"type":"message","content":"","session_id":"abc"}`},
		{"session created", gateway.NewSessionCreated("xyz"), `{"type":"session_created","session_id":"xyz"}`},
		{"typing", gateway.NewTyping(), `{"type":"typing"}`},
		{"error", gateway.NewError("boom"), `{"type":"error","content":"boom"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.msg)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(data))
		})
	}
}
