package session

import (
	"time"

	"github.com/yemubit/zeroclaw/history"
)

const (
	defaultMaxSessions = 100
	defaultTimeoutSecs = 3600
)

// Config holds session limits shared by the Store and the interactive runner.
type Config struct {
	MaxSessions  int `json:"max_sessions,omitempty" yaml:"max_sessions,omitempty"`
	TimeoutSecs  int `json:"timeout_secs,omitempty" yaml:"timeout_secs,omitempty"`
	HistoryLimit int `json:"history_limit,omitempty" yaml:"history_limit,omitempty"`
}

// DefaultConfig returns the default session configuration: 100 sessions,
// one hour idle timeout, 50 retained messages.
func DefaultConfig() Config {
	return Config{
		MaxSessions:  defaultMaxSessions,
		TimeoutSecs:  defaultTimeoutSecs,
		HistoryLimit: history.DefaultLimit,
	}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source.MaxSessions > 0 {
		c.MaxSessions = source.MaxSessions
	}
	if source.TimeoutSecs > 0 {
		c.TimeoutSecs = source.TimeoutSecs
	}
	if source.HistoryLimit > 0 {
		c.HistoryLimit = source.HistoryLimit
	}
}

// Timeout returns the idle timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSecs) * time.Second
}

// New creates a Session from configuration. Currently returns an in-memory session.
func New(cfg *Config) (Session, error) {
	return NewMemorySession(), nil
}
