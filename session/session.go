// Package session holds conversation state: a single-conversation Session
// for the interactive runner and a multi-session Store for the gateway.
package session

import (
	"github.com/yemubit/zeroclaw/core/protocol"
)

// Session holds an ordered sequence of conversation messages. Implementations
// must be safe for concurrent use.
type Session interface {
	// ID returns the unique session identifier.
	ID() string
	// AddMessage appends a message to the conversation history.
	AddMessage(msg protocol.Message)
	// Messages returns a defensive copy of the conversation history.
	Messages() []protocol.Message
	// Replace swaps the whole history, e.g. after a turn completes.
	Replace(msgs []protocol.Message)
	// Clear resets the conversation history.
	Clear()
}
