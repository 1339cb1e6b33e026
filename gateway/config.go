package gateway

import (
	"time"

	"github.com/yemubit/zeroclaw/core/config"
)

const (
	defaultAddr              = "127.0.0.1:3000"
	defaultSweepIntervalSecs = 60
	defaultReadLimitBytes    = 16 << 20
)

// Config holds the network surface parameters of the gateway.
type Config struct {
	Addr              string   `json:"addr,omitempty" yaml:"addr,omitempty"`
	Token             string   `json:"token,omitempty" yaml:"token,omitempty"`
	SweepIntervalSecs int      `json:"sweep_interval_secs,omitempty" yaml:"sweep_interval_secs,omitempty"`
	AllowedOrigins    []string `json:"allowed_origins,omitempty" yaml:"allowed_origins,omitempty"`
	ReadLimitBytes    int64    `json:"read_limit_bytes,omitempty" yaml:"read_limit_bytes,omitempty"`
}

// DefaultConfig returns a loopback listener with no token, a one-minute
// sweep and a 16 MiB frame limit.
func DefaultConfig() Config {
	return Config{
		Addr:              defaultAddr,
		SweepIntervalSecs: defaultSweepIntervalSecs,
		ReadLimitBytes:    defaultReadLimitBytes,
	}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source.Addr != "" {
		c.Addr = source.Addr
	}
	if source.Token != "" {
		c.Token = source.Token
	}
	if source.SweepIntervalSecs > 0 {
		c.SweepIntervalSecs = source.SweepIntervalSecs
	}
	if len(source.AllowedOrigins) > 0 {
		c.AllowedOrigins = source.AllowedOrigins
	}
	if source.ReadLimitBytes > 0 {
		c.ReadLimitBytes = source.ReadLimitBytes
	}
}

// ReadLimit returns the largest client frame accepted, in bytes.
func (c *Config) ReadLimit() int64 {
	if c.ReadLimitBytes <= 0 {
		return defaultReadLimitBytes
	}
	return c.ReadLimitBytes
}

// SweepInterval returns the idle sweep period.
func (c *Config) SweepInterval() time.Duration {
	return time.Duration(c.SweepIntervalSecs) * time.Second
}

// LoadConfig reads the "gateway" section of a JSON (comments allowed) or
// YAML file and merges it with defaults. Other sections are ignored.
func LoadConfig(filename string) (*Config, error) {
	cfg := DefaultConfig()

	var file struct {
		Gateway Config `json:"gateway" yaml:"gateway"`
	}
	if err := config.DecodeFile(filename, &file); err != nil {
		return nil, err
	}

	cfg.Merge(&file.Gateway)
	return &cfg, nil
}
