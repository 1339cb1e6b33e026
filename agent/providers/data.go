package providers

import (
	"strings"

	"github.com/yemubit/zeroclaw/core/protocol"
)

// ChatData is a provider-neutral chat request.
type ChatData struct {
	Model       string
	Messages    []protocol.Message
	Temperature float64
}

// Split separates system messages from the conversation. System contents
// are joined with blank lines, for vendors that take the system prompt as a
// request field rather than a message.
func (d *ChatData) Split() (string, []protocol.Message) {
	var (
		system []string
		rest   = make([]protocol.Message, 0, len(d.Messages))
	)
	for _, m := range d.Messages {
		if m.Role == protocol.RoleSystem {
			system = append(system, m.Content)
			continue
		}
		rest = append(rest, m)
	}
	return strings.Join(system, "\n\n"), rest
}
