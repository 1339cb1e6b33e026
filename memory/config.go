package memory

// Config holds workspace context parameters.
type Config struct {
	Path     string `json:"path,omitempty" yaml:"path,omitempty"`                         // Workspace root; empty disables context.
	MaxChars int    `json:"prompt_max_chars,omitempty" yaml:"prompt_max_chars,omitempty"` // Per-document cap; 0 means unlimited.
}

// DefaultConfig returns the default memory configuration (disabled).
func DefaultConfig() Config {
	return Config{}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source.Path != "" {
		c.Path = source.Path
	}
	if source.MaxChars > 0 {
		c.MaxChars = source.MaxChars
	}
}

// NewStore creates a Store from configuration. Returns nil Store when Path
// is empty, indicating context is disabled.
func NewStore(cfg *Config) (Store, error) {
	if cfg.Path == "" {
		return nil, nil
	}
	return NewFileStore(cfg.Path), nil
}
