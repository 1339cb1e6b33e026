package protocol_test

import (
	"encoding/json"
	"testing"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/yemubit/zeroclaw/core/protocol"
)

func TestNewMessage(t *testing.T) {
	msg := protocol.NewMessage(protocol.RoleUser, "Hello")

	if msg.Role != protocol.RoleUser {
		t.Errorf("got role %q, want %q", msg.Role, protocol.RoleUser)
	}
	if msg.Content != "Hello" {
		t.Errorf("got content %q, want %q", msg.Content, "Hello")
	}
}

func TestRoleConstants(t *testing.T) {
	tests := []struct {
		role     protocol.Role
		expected string
	}{
		{protocol.RoleSystem, "system"},
		{protocol.RoleUser, "user"},
		{protocol.RoleAssistant, "assistant"},
	}

	for _, tt := range tests {
		if string(tt.role) != tt.expected {
			t.Errorf("got %q, want %q", tt.role, tt.expected)
		}
	}
}

func TestRoleHelpers(t *testing.T) {
	if m := protocol.SystemMessage("s"); m.Role != protocol.RoleSystem {
		t.Errorf("SystemMessage role = %q", m.Role)
	}
	if m := protocol.UserMessage("u"); m.Role != protocol.RoleUser {
		t.Errorf("UserMessage role = %q", m.Role)
	}
	if m := protocol.AssistantMessage("a"); m.Role != protocol.RoleAssistant {
		t.Errorf("AssistantMessage role = %q", m.Role)
	}
}

func TestToolCall_UnmarshalJSON(t *testing.T) {
	t.Run("object arguments", func(t *testing.T) {
		data := `{"name":"get_weather","arguments":{"location":"Boston","days":3}}`

		var tc protocol.ToolCall
		if err := json.Unmarshal([]byte(data), &tc); err != nil {
			t.Fatalf("unmarshal failed: %v", err)
		}

		if tc.Name != "get_weather" {
			t.Errorf("got name %q, want %q", tc.Name, "get_weather")
		}
		args := tc.Args()
		if args["location"] != "Boston" {
			t.Errorf("got location %v, want Boston", args["location"])
		}
		if args["days"] != float64(3) {
			t.Errorf("got days %v, want 3", args["days"])
		}
	})

	t.Run("missing arguments default to empty mapping", func(t *testing.T) {
		var tc protocol.ToolCall
		if err := json.Unmarshal([]byte(`{"name":"noop"}`), &tc); err != nil {
			t.Fatalf("unmarshal failed: %v", err)
		}
		if tc.Arguments.GetStructValue() == nil {
			t.Fatal("expected struct arguments")
		}
		if len(tc.Args()) != 0 {
			t.Errorf("got %d args, want 0", len(tc.Args()))
		}
	})

	t.Run("list arguments", func(t *testing.T) {
		var tc protocol.ToolCall
		if err := json.Unmarshal([]byte(`{"name":"sum","arguments":[1,2,3]}`), &tc); err != nil {
			t.Fatalf("unmarshal failed: %v", err)
		}
		list := tc.Arguments.GetListValue()
		if list == nil || len(list.Values) != 3 {
			t.Fatalf("got %v, want 3-element list", tc.Arguments)
		}
		if len(tc.Args()) != 0 {
			t.Error("non-object arguments should yield empty Args")
		}
	})
}

func TestToolCall_MarshalRoundTrip(t *testing.T) {
	argv, err := structpb.NewValue(map[string]any{
		"query": "golang",
		"limit": 5,
		"tags":  []any{"a", "b"},
	})
	if err != nil {
		t.Fatalf("NewValue failed: %v", err)
	}
	original := protocol.ToolCall{Name: "search", Arguments: argv}

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded protocol.ToolCall
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if decoded.Name != "search" {
		t.Errorf("got name %q, want %q", decoded.Name, "search")
	}
	args := decoded.Args()
	if args["query"] != "golang" {
		t.Errorf("got query %v, want golang", args["query"])
	}
	tags, ok := args["tags"].([]any)
	if !ok || len(tags) != 2 {
		t.Errorf("got tags %v, want [a b]", args["tags"])
	}
}

func TestToolCall_UnmarshalInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not an object", `["shell"]`},
		{"non-string name", `{"name": 42}`},
		{"invalid arguments", `{"name": "x", "arguments": {"a": }}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var tc protocol.ToolCall
			if err := json.Unmarshal([]byte(tt.data), &tc); err == nil {
				t.Errorf("expected error for %s", tt.data)
			}
		})
	}
}

func TestToolCall_MarshalNilArguments(t *testing.T) {
	data, err := json.Marshal(protocol.ToolCall{Name: "x"})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(data) != `{"name":"x","arguments":{}}` {
		t.Errorf("got %s", data)
	}
}
