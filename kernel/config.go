package kernel

import (
	"github.com/yemubit/zeroclaw/core/config"
	"github.com/yemubit/zeroclaw/memory"
	"github.com/yemubit/zeroclaw/session"
)

const defaultMaxIterations = 10

// Config holds initialization parameters for all kernel subsystems.
// Each subsystem section delegates to that subsystem's config-driven constructor.
type Config struct {
	Agent         config.AgentConfig            `json:"agent" yaml:"agent"`
	Agents        map[string]config.AgentConfig `json:"agents,omitempty" yaml:"agents,omitempty"`
	Session       session.Config                `json:"session" yaml:"session"`
	Memory        memory.Config                 `json:"memory" yaml:"memory"`
	MaxIterations int                           `json:"max_iterations,omitempty" yaml:"max_iterations,omitempty"`
	SystemPrompt  string                        `json:"system_prompt,omitempty" yaml:"system_prompt,omitempty"`
	Observer      string                        `json:"observer,omitempty" yaml:"observer,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults for all subsystems.
func DefaultConfig() Config {
	return Config{
		Agent:         config.DefaultAgentConfig(),
		Session:       session.DefaultConfig(),
		Memory:        memory.DefaultConfig(),
		MaxIterations: defaultMaxIterations,
		Observer:      "slog",
	}
}

// Merge applies non-zero values from source into c, delegating to each
// subsystem's Merge method. A non-empty Agents map replaces c.Agents.
func (c *Config) Merge(source *Config) {
	c.Agent.Merge(&source.Agent)
	c.Session.Merge(&source.Session)
	c.Memory.Merge(&source.Memory)

	if source.MaxIterations > 0 {
		c.MaxIterations = source.MaxIterations
	}
	if source.SystemPrompt != "" {
		c.SystemPrompt = source.SystemPrompt
	}
	if source.Observer != "" {
		c.Observer = source.Observer
	}

	if len(source.Agents) > 0 {
		c.Agents = source.Agents
	}
}

// LoadConfig reads a JSON (comments allowed) or YAML config file, merges
// it with defaults, and returns the resulting Config.
func LoadConfig(filename string) (*Config, error) {
	cfg := DefaultConfig()

	var loaded Config
	if err := config.DecodeFile(filename, &loaded); err != nil {
		return nil, err
	}

	cfg.Merge(&loaded)
	return &cfg, nil
}
