// Package history bounds conversation length.
package history

import "github.com/yemubit/zeroclaw/core/protocol"

// DefaultLimit is the number of non-system messages retained per conversation.
const DefaultLimit = 50

// Trim returns a copy of messages holding at most limit non-system messages.
// A system message at index 0 is always kept; the oldest messages after it
// are dropped first. Only index 0 is treated as the system prompt: a system
// message elsewhere counts toward the limit. Negative limits behave as 0.
// Trim is idempotent and never modifies its input.
func Trim(messages []protocol.Message, limit int) []protocol.Message {
	if limit < 0 {
		limit = 0
	}

	start := 0
	if len(messages) > 0 && messages[0].Role == protocol.RoleSystem {
		start = 1
	}

	excess := len(messages) - start - limit
	if excess < 0 {
		excess = 0
	}

	out := make([]protocol.Message, 0, len(messages)-excess)
	out = append(out, messages[:start]...)
	out = append(out, messages[start+excess:]...)
	return out
}
