package gateway

import (
	"context"
	"sync/atomic"

	"github.com/yemubit/zeroclaw/kernel"
	"github.com/yemubit/zeroclaw/observability"
)

// MetricsSnapshot is a point-in-time copy of gateway counters.
type MetricsSnapshot struct {
	Connections  int64 `json:"connections"`
	MessagesRecv int64 `json:"messages_received"`
	MessagesSent int64 `json:"messages_sent"`
	Turns        int64 `json:"turns"`
	ToolCalls    int64 `json:"tool_calls"`
	Errors       int64 `json:"errors"`
}

// Metrics counts gateway activity. Safe for concurrent use.
//
// Metrics is also an observability.Observer: attached to the kernel it
// counts the tool calls made while serving turns.
type Metrics struct {
	connections  atomic.Int64
	messagesRecv atomic.Int64
	messagesSent atomic.Int64
	turns        atomic.Int64
	toolCalls    atomic.Int64
	errors       atomic.Int64
}

func NewMetrics() *Metrics {
	return &Metrics{}
}

func (m *Metrics) RecordConnection(delta int) {
	m.connections.Add(int64(delta))
}

func (m *Metrics) RecordMessageRecv() {
	m.messagesRecv.Add(1)
}

func (m *Metrics) RecordMessageSent(msg ServerMessage) {
	m.messagesSent.Add(1)
	if msg.Type == TypeError {
		m.errors.Add(1)
	}
}

func (m *Metrics) RecordTurn() {
	m.turns.Add(1)
}

func (m *Metrics) OnEvent(_ context.Context, event observability.Event) {
	if event.Type == kernel.EventToolCall {
		m.toolCalls.Add(1)
	}
}

func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		Connections:  m.connections.Load(),
		MessagesRecv: m.messagesRecv.Load(),
		MessagesSent: m.messagesSent.Load(),
		Turns:        m.turns.Load(),
		ToolCalls:    m.toolCalls.Load(),
		Errors:       m.errors.Load(),
	}
}
