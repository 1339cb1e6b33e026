package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yemubit/zeroclaw/core/config"
)

func TestDecodeFile(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "jsonc with comments and trailing comma",
			file: "agent.jsonc",
			content: `{
				// provider section
				"provider": {"name": "anthropic", "api_key": "k"},
				"model": "claude",
				"temperature": 0.3, /* inline */
				"max_depth": 2,
			}`,
		},
		{
			name: "yaml",
			file: "agent.yaml",
			content: `
provider:
  name: anthropic
  api_key: k
model: claude
temperature: 0.3
max_depth: 2
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			var cfg config.AgentConfig
			require.NoError(t, config.DecodeFile(path, &cfg))

			assert.Equal(t, "anthropic", cfg.Provider.Name)
			assert.Equal(t, "k", cfg.Provider.APIKey)
			assert.Equal(t, "claude", cfg.Model)
			assert.Equal(t, 0.3, cfg.EffectiveTemperature())
			assert.Equal(t, 2, cfg.MaxDepth)
		})
	}
}

func TestDecodeFile_Errors(t *testing.T) {
	var cfg config.AgentConfig

	err := config.DecodeFile(filepath.Join(t.TempDir(), "missing.json"), &cfg)
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0o644))
	assert.Error(t, config.DecodeFile(path, &cfg))
}
