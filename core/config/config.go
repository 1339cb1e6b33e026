// Package config holds the provider and agent configuration sections shared
// by the kernel, the delegate agents, and the CLI.
package config

const (
	// DefaultTemperature applies when an agent leaves temperature unset.
	DefaultTemperature = 0.7
	// DefaultMaxDepth bounds delegation nesting for an agent target.
	DefaultMaxDepth = 3
)

// ProviderConfig selects and authenticates a model provider.
// Name is one of "openai", "anthropic", "openrouter" or "ollama".
type ProviderConfig struct {
	Name    string `json:"name" yaml:"name"`
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`
	APIKey  string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
}

// Merge applies non-zero values from source into c.
func (c *ProviderConfig) Merge(source *ProviderConfig) {
	if source.Name != "" {
		c.Name = source.Name
	}
	if source.BaseURL != "" {
		c.BaseURL = source.BaseURL
	}
	if source.APIKey != "" {
		c.APIKey = source.APIKey
	}
}

// AgentConfig describes one configured agent: the provider it talks to, the
// model and temperature it uses, and an optional system prompt. MaxDepth
// applies when the agent is the target of a delegation.
type AgentConfig struct {
	Name         string         `json:"name,omitempty" yaml:"name,omitempty"`
	Provider     ProviderConfig `json:"provider" yaml:"provider"`
	Model        string         `json:"model" yaml:"model"`
	SystemPrompt string         `json:"system_prompt,omitempty" yaml:"system_prompt,omitempty"`
	Temperature  *float64       `json:"temperature,omitempty" yaml:"temperature,omitempty"`
	MaxDepth     int            `json:"max_depth,omitempty" yaml:"max_depth,omitempty"`
}

// DefaultAgentConfig returns an AgentConfig targeting OpenAI with default
// temperature and delegation depth.
func DefaultAgentConfig() AgentConfig {
	return AgentConfig{
		Provider: ProviderConfig{Name: "openai"},
		Model:    "gpt-4o-mini",
		MaxDepth: DefaultMaxDepth,
	}
}

// Merge applies non-zero values from source into c.
func (c *AgentConfig) Merge(source *AgentConfig) {
	if source.Name != "" {
		c.Name = source.Name
	}
	c.Provider.Merge(&source.Provider)
	if source.Model != "" {
		c.Model = source.Model
	}
	if source.SystemPrompt != "" {
		c.SystemPrompt = source.SystemPrompt
	}
	if source.Temperature != nil {
		t := *source.Temperature
		c.Temperature = &t
	}
	if source.MaxDepth > 0 {
		c.MaxDepth = source.MaxDepth
	}
}

// EffectiveTemperature returns the configured temperature or DefaultTemperature.
func (c *AgentConfig) EffectiveTemperature() float64 {
	if c.Temperature == nil {
		return DefaultTemperature
	}
	return *c.Temperature
}

// EffectiveMaxDepth returns the configured depth bound or DefaultMaxDepth.
func (c *AgentConfig) EffectiveMaxDepth() int {
	if c.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return c.MaxDepth
}
