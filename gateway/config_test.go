package gateway_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yemubit/zeroclaw/gateway"
)

func TestDefaultConfig(t *testing.T) {
	cfg := gateway.DefaultConfig()

	assert.Equal(t, "127.0.0.1:3000", cfg.Addr)
	assert.Empty(t, cfg.Token)
	assert.Equal(t, time.Minute, cfg.SweepInterval())
	assert.Equal(t, int64(16<<20), cfg.ReadLimit())
}

func TestConfig_ReadLimit(t *testing.T) {
	cfg := gateway.DefaultConfig()
	cfg.Merge(&gateway.Config{ReadLimitBytes: 1024})
	assert.Equal(t, int64(1024), cfg.ReadLimit())

	var zero gateway.Config
	assert.Equal(t, int64(16<<20), zero.ReadLimit())
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zeroclaw.yaml")
	content := `
max_iterations: 5
gateway:
  addr: 0.0.0.0:8080
  token: secret
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := gateway.LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.Addr)
	assert.Equal(t, "secret", cfg.Token)
	assert.Equal(t, 60, cfg.SweepIntervalSecs)
}

func TestLoadConfig_MissingSection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zeroclaw.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"max_iterations": 5}`), 0644))

	cfg, err := gateway.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, gateway.DefaultConfig().Addr, cfg.Addr)
}
