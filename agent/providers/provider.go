// Package providers adapts model vendor SDKs to the single chat operation
// the turn executor depends on.
package providers

import (
	"context"
	"errors"
	"fmt"

	"github.com/yemubit/zeroclaw/core/config"
	"github.com/yemubit/zeroclaw/core/protocol"
)

// ErrUnknownProvider is returned by New for an unsupported provider name.
var ErrUnknownProvider = errors.New("unknown provider")

const (
	openRouterBaseURL = "https://openrouter.ai/api/v1"
	ollamaBaseURL     = "http://localhost:11434/v1"
)

// Provider turns a conversation into the model's next raw text output.
// Implementations must be safe for concurrent use.
type Provider interface {
	Name() string
	Chat(ctx context.Context, messages []protocol.Message, model string, temperature float64) (string, error)
}

// New creates a Provider from configuration. openrouter and ollama are
// served by the OpenAI adapter with their own default base URLs.
func New(cfg *config.ProviderConfig) (Provider, error) {
	switch cfg.Name {
	case "openai":
		return NewOpenAI("openai", cfg.BaseURL, cfg.APIKey), nil
	case "openrouter":
		return NewOpenAI("openrouter", orDefault(cfg.BaseURL, openRouterBaseURL), cfg.APIKey), nil
	case "ollama":
		return NewOpenAI("ollama", orDefault(cfg.BaseURL, ollamaBaseURL), cfg.APIKey), nil
	case "anthropic":
		return NewAnthropic(cfg.BaseURL, cfg.APIKey), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Name)
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
