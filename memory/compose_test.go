package memory_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yemubit/zeroclaw/memory"
)

func TestCompose(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, root, "AGENTS.md", "Be concise.\n")
	writeTestFile(t, root, "USER.md", "   ")
	writeTestFile(t, root, "notes/today.txt", "Ship the gateway.")

	got, err := memory.Compose(context.Background(), memory.NewFileStore(root), 0)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(got, memory.ContextHeading))
	assert.Contains(t, got, "### AGENTS.md\n\nBe concise.\n")
	assert.Contains(t, got, "### notes/today.txt\n\nShip the gateway.\n")
	assert.NotContains(t, got, "USER.md", "blank documents are skipped")
	assert.Less(t, strings.Index(got, "AGENTS.md"), strings.Index(got, "notes/today.txt"))
}

func TestCompose_Truncates(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, root, "long.md", strings.Repeat("é", 20))

	got, err := memory.Compose(context.Background(), memory.NewFileStore(root), 5)
	require.NoError(t, err)

	assert.Contains(t, got, strings.Repeat("é", 5)+"\n\n[... truncated at 5 chars]")
	assert.NotContains(t, got, strings.Repeat("é", 6))
}

func TestCompose_EmptyOrDisabled(t *testing.T) {
	got, err := memory.Compose(context.Background(), nil, 0)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = memory.Compose(context.Background(), memory.NewFileStore(t.TempDir()), 0)
	require.NoError(t, err)
	assert.Empty(t, got)
}
