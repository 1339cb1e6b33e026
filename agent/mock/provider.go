// Package mock provides a scripted provider for exercising agents and the
// turn executor without a network.
package mock

import (
	"context"
	"errors"
	"sync"

	"github.com/yemubit/zeroclaw/core/protocol"
)

// ErrExhausted is returned when a Provider has no scripted replies left.
var ErrExhausted = errors.New("mock provider: no scripted replies left")

// Reply is one scripted provider outcome.
type Reply struct {
	Text string
	Err  error
}

// Call records one Chat invocation.
type Call struct {
	Messages    []protocol.Message
	Model       string
	Temperature float64
}

// Provider replays scripted replies in order and records every call.
type Provider struct {
	mu      sync.Mutex
	name    string
	replies []Reply
	calls   []Call
	// Hook, when set, runs on every call before the scripted reply is taken.
	// A non-nil return replaces the scripted reply.
	Hook func(ctx context.Context, messages []protocol.Message) (*Reply, error)
}

// NewProvider creates a Provider returning texts in order.
func NewProvider(texts ...string) *Provider {
	p := &Provider{name: "mock"}
	for _, t := range texts {
		p.replies = append(p.replies, Reply{Text: t})
	}
	return p
}

// NewScripted creates a Provider replaying the given replies.
func NewScripted(replies ...Reply) *Provider {
	return &Provider{name: "mock", replies: replies}
}

// Repeat creates a Provider that returns text for every call.
func Repeat(text string) *Provider {
	p := &Provider{name: "mock"}
	p.Hook = func(context.Context, []protocol.Message) (*Reply, error) {
		return &Reply{Text: text}, nil
	}
	return p
}

func (p *Provider) Name() string { return p.name }

// Chat records the call and returns the next scripted reply.
func (p *Provider) Chat(ctx context.Context, messages []protocol.Message, model string, temperature float64) (string, error) {
	p.mu.Lock()
	p.calls = append(p.calls, Call{
		Messages:    append([]protocol.Message(nil), messages...),
		Model:       model,
		Temperature: temperature,
	})
	hook := p.Hook
	p.mu.Unlock()

	if hook != nil {
		r, err := hook(ctx, messages)
		if err != nil {
			return "", err
		}
		if r != nil {
			return r.Text, r.Err
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.replies) == 0 {
		return "", ErrExhausted
	}
	r := p.replies[0]
	p.replies = p.replies[1:]
	return r.Text, r.Err
}

// Calls returns a copy of the recorded calls.
func (p *Provider) Calls() []Call {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Call(nil), p.calls...)
}

// CallCount returns the number of Chat invocations so far.
func (p *Provider) CallCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.calls)
}
