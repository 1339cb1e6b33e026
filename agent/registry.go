package agent

import (
	"fmt"
	"sort"
	"sync"

	"github.com/yemubit/zeroclaw/core/config"
)

// AgentInfo describes a registered agent without instantiating it.
type AgentInfo struct {
	Name     string
	Provider string
	Model    string
	MaxDepth int
}

// Factory builds an Agent from configuration.
type Factory func(cfg *config.AgentConfig) (*Agent, error)

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithFactory replaces the function used to instantiate agents.
func WithFactory(f Factory) RegistryOption {
	return func(r *Registry) { r.factory = f }
}

// Registry manages named agent configurations with lazy instantiation.
// Configs are stored at registration time; agents are created on first
// Get call. Thread-safe for concurrent access.
type Registry struct {
	mu      sync.RWMutex
	configs map[string]config.AgentConfig
	agents  map[string]*Agent
	factory Factory
}

// NewRegistry creates an empty Registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		configs: make(map[string]config.AgentConfig),
		agents:  make(map[string]*Agent),
		factory: New,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Get retrieves a named agent, instantiating it lazily on first access.
func (r *Registry) Get(name string) (*Agent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cfg, registered := r.configs[name]
	if !registered {
		return nil, fmt.Errorf("%w: %s", ErrAgentNotFound, name)
	}

	if a, exists := r.agents[name]; exists {
		return a, nil
	}

	a, err := r.factory(&cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create agent %q: %w", name, err)
	}

	r.agents[name] = a
	return a, nil
}

// Names returns the registered agent names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.configs))
	for name := range r.configs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// List returns information about all registered agents, sorted by name.
func (r *Registry) List() []AgentInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	infos := make([]AgentInfo, 0, len(r.configs))
	for name, cfg := range r.configs {
		infos = append(infos, infoFromConfig(name, &cfg))
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Name < infos[j].Name
	})

	return infos
}

// Register adds a named agent configuration to the registry.
// The agent is not instantiated until Get is called.
func (r *Registry) Register(name string, cfg config.AgentConfig) error {
	if name == "" {
		return ErrEmptyAgentName
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.configs[name]; exists {
		return fmt.Errorf("%w: %s", ErrAgentExists, name)
	}

	r.configs[name] = cfg
	return nil
}

func infoFromConfig(name string, cfg *config.AgentConfig) AgentInfo {
	return AgentInfo{
		Name:     name,
		Provider: cfg.Provider.Name,
		Model:    cfg.Model,
		MaxDepth: cfg.EffectiveMaxDepth(),
	}
}
