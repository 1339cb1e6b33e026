// Package agent binds a provider to the model, temperature, and system
// prompt an agent runs with.
package agent

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/yemubit/zeroclaw/agent/providers"
	"github.com/yemubit/zeroclaw/core/config"
	"github.com/yemubit/zeroclaw/core/protocol"
)

// Agent is a configured model endpoint. Safe for concurrent use when the
// underlying provider is.
type Agent struct {
	id           string
	provider     providers.Provider
	model        string
	temperature  float64
	systemPrompt string
}

// New creates an Agent from configuration, constructing its provider.
func New(cfg *config.AgentConfig) (*Agent, error) {
	p, err := providers.New(&cfg.Provider)
	if err != nil {
		return nil, fmt.Errorf("failed to create provider: %w", err)
	}
	return NewWithProvider(p, cfg)
}

// NewWithProvider creates an Agent that uses p instead of the provider
// named in cfg.
func NewWithProvider(p providers.Provider, cfg *config.AgentConfig) (*Agent, error) {
	if p == nil {
		return nil, ErrNoProvider
	}
	return &Agent{
		id:           uuid.Must(uuid.NewV7()).String(),
		provider:     p,
		model:        cfg.Model,
		temperature:  cfg.EffectiveTemperature(),
		systemPrompt: cfg.SystemPrompt,
	}, nil
}

func (a *Agent) ID() string                   { return a.id }
func (a *Agent) Provider() providers.Provider { return a.provider }
func (a *Agent) Model() string                { return a.model }

// Chat sends messages to the agent's provider with its model and temperature.
func (a *Agent) Chat(ctx context.Context, messages []protocol.Message) (string, error) {
	return a.provider.Chat(ctx, messages, a.model, a.temperature)
}

// Complete runs a single exchange: the agent's system prompt, if any,
// followed by message. No tools are offered and no history is kept.
func (a *Agent) Complete(ctx context.Context, message string) (string, error) {
	messages := make([]protocol.Message, 0, 2)
	if a.systemPrompt != "" {
		messages = append(messages, protocol.SystemMessage(a.systemPrompt))
	}
	messages = append(messages, protocol.UserMessage(message))
	return a.Chat(ctx, messages)
}
