// Package gateway exposes conversations to realtime clients. Each
// connection sends discrete JSON frames that create sessions or run one
// turn against a stored session; every failure is answered with an error
// frame and the connection stays open.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/yemubit/zeroclaw/core/protocol"
	"github.com/yemubit/zeroclaw/kernel"
	"github.com/yemubit/zeroclaw/session"
)

// Executor runs turns and supplies the system prompt for new sessions.
// *kernel.Kernel satisfies it.
type Executor interface {
	Execute(ctx context.Context, history []protocol.Message) (*kernel.Result, error)
	SystemPrompt(ctx context.Context) (string, error)
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithLogger sets the logger for connection diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(g *Gateway) { g.logger = l }
}

// WithMetrics replaces the gateway's counters.
func WithMetrics(m *Metrics) Option {
	return func(g *Gateway) { g.metrics = m }
}

// Gateway maps client frames onto a shared session store and executor.
// Safe for concurrent use by many connections.
type Gateway struct {
	store   *session.Store
	exec    Executor
	logger  *slog.Logger
	metrics *Metrics
}

// New creates a Gateway over store and exec.
func New(store *session.Store, exec Executor, opts ...Option) *Gateway {
	g := &Gateway{
		store:   store,
		exec:    exec,
		logger:  slog.Default(),
		metrics: NewMetrics(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Store returns the session store the gateway serves.
func (g *Gateway) Store() *session.Store { return g.store }

// Metrics returns the gateway's counters.
func (g *Gateway) Metrics() *Metrics { return g.metrics }

// Serve processes frames from conn in arrival order until Read fails.
// Turns run on a context detached from ctx: closing the connection stops
// further reads but an in-flight turn runs to completion.
func (g *Gateway) Serve(ctx context.Context, conn Conn) error {
	g.metrics.RecordConnection(1)
	defer g.metrics.RecordConnection(-1)

	send := func(msg ServerMessage) {
		data, err := json.Marshal(msg)
		if err != nil {
			data = []byte("{}")
		}
		if err := conn.Write(ctx, data); err != nil {
			g.logger.DebugContext(ctx, "failed to write frame", slog.String("type", msg.Type), slog.Any("error", err))
			return
		}
		g.metrics.RecordMessageSent(msg)
	}

	for {
		data, err := conn.Read(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		g.metrics.RecordMessageRecv()
		g.Handle(ctx, data, send)
	}
}

// Handle processes a single client frame, delivering replies through send
// in order.
func (g *Gateway) Handle(ctx context.Context, data []byte, send func(ServerMessage)) {
	msg, err := DecodeClientMessage(data)
	if err != nil {
		send(NewError(fmt.Sprintf("Invalid message format: %v", err)))
		return
	}

	switch msg.Type {
	case TypeNewSession:
		id, err := g.CreateSession(ctx)
		if err != nil {
			send(NewError(err.Error()))
			return
		}
		send(NewSessionCreated(id))

	case TypeMessage:
		g.chat(ctx, msg, send)
	}
}

// CreateSession creates a session seeded with the executor's system prompt.
func (g *Gateway) CreateSession(ctx context.Context) (string, error) {
	prompt, err := g.exec.SystemPrompt(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to build system prompt: %w", err)
	}

	id, err := g.store.Create()
	if err != nil {
		return "", err
	}

	if prompt != "" {
		if err := g.store.Append(id, protocol.SystemMessage(prompt)); err != nil {
			return "", err
		}
	}

	g.logger.DebugContext(ctx, "session created", slog.String("session_id", id))
	return id, nil
}

func (g *Gateway) chat(ctx context.Context, msg ClientMessage, send func(ServerMessage)) {
	if !g.store.Exists(msg.SessionID) {
		id, err := g.CreateSession(ctx)
		if err != nil {
			send(NewError(err.Error()))
			return
		}
		send(NewError(fmt.Sprintf("Session '%s' not found. Created new session.", msg.SessionID)))
		send(NewSessionCreated(id))
		return
	}

	if err := g.store.Append(msg.SessionID, protocol.UserMessage(msg.Content)); err != nil {
		send(NewError(err.Error()))
		return
	}

	send(NewTyping())

	history, err := g.store.History(msg.SessionID)
	if err != nil {
		send(NewError(err.Error()))
		return
	}

	g.metrics.RecordTurn()
	result, err := g.exec.Execute(context.WithoutCancel(ctx), history)
	if err != nil {
		g.logger.WarnContext(ctx, "turn failed",
			slog.String("session_id", msg.SessionID),
			slog.Any("error", err),
		)
		send(NewError(turnError(err)))
		return
	}

	if err := g.store.Append(msg.SessionID, protocol.AssistantMessage(result.Response)); err != nil {
		g.logger.WarnContext(ctx, "failed to record response",
			slog.String("session_id", msg.SessionID),
			slog.Any("error", err),
		)
	}

	send(NewReply(result.Response, msg.SessionID))
}

func turnError(err error) string {
	if errors.Is(err, kernel.ErrProvider) {
		cause := strings.TrimPrefix(err.Error(), kernel.ErrProvider.Error()+": ")
		return "Provider error: " + cause
	}
	return err.Error()
}
