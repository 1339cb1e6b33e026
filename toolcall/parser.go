// Package toolcall extracts tool invocations embedded in model output and
// renders the text exchanged with the model around them.
//
// A tool call is a JSON object with "name" and "arguments" keys placed
// between OpenTag and CloseTag. Everything outside the markers is free text.
package toolcall

import (
	"encoding/json"
	"errors"
	"log/slog"
	"strings"

	"github.com/yemubit/zeroclaw/core/protocol"
)

const (
	OpenTag  = "<tool_call>"
	CloseTag = "</tool_call>"
)

var errNoName = errors.New("payload has no tool name")

// Parser splits model output into free text and tool calls.
// The zero value logs diagnostics to slog.Default().
type Parser struct {
	Logger *slog.Logger
}

// NewParser creates a Parser that reports dropped payloads to logger.
func NewParser(logger *slog.Logger) *Parser {
	return &Parser{Logger: logger}
}

// Parse is shorthand for (&Parser{}).Parse(response).
func Parse(response string) (string, []protocol.ToolCall) {
	return (&Parser{}).Parse(response)
}

// Parse returns the free text of response and the tool calls it contains,
// both in source order. Text segments are trimmed, empty ones skipped, and
// the rest joined by newlines.
//
// A payload that does not decode to an object with a string name is dropped
// with a warning and scanning resumes after its closing marker. An opening
// marker with no closing marker ends the parse; text from that marker on is
// discarded.
func (p *Parser) Parse(response string) (string, []protocol.ToolCall) {
	var (
		text  []string
		calls []protocol.ToolCall
	)

	addText := func(s string) {
		if s = strings.TrimSpace(s); s != "" {
			text = append(text, s)
		}
	}

	remaining := response
	for {
		start := strings.Index(remaining, OpenTag)
		if start < 0 {
			addText(remaining)
			break
		}
		addText(remaining[:start])

		body := remaining[start+len(OpenTag):]
		end := strings.Index(body, CloseTag)
		if end < 0 {
			p.logger().Warn("unterminated tool call marker, discarding remainder",
				"discarded_bytes", len(body))
			break
		}

		call, err := decode(body[:end])
		if err != nil {
			p.logger().Warn("malformed tool call payload", "error", err)
		} else {
			calls = append(calls, call)
		}

		remaining = body[end+len(CloseTag):]
	}

	return strings.Join(text, "\n"), calls
}

func (p *Parser) logger() *slog.Logger {
	if p.Logger == nil {
		return slog.Default()
	}
	return p.Logger
}

func decode(payload string) (protocol.ToolCall, error) {
	var call protocol.ToolCall
	if err := json.Unmarshal([]byte(strings.TrimSpace(payload)), &call); err != nil {
		return protocol.ToolCall{}, err
	}
	if call.Name == "" {
		return protocol.ToolCall{}, errNoName
	}
	return call, nil
}
