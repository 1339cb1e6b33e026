package memory

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ContextHeading opens the rendered workspace section.
const ContextHeading = "## Workspace Context"

// Compose loads every document in store and renders it as a prompt section.
// Each document body is cut to maxChars characters when maxChars > 0.
// A nil store or an empty workspace yields "".
func Compose(ctx context.Context, store Store, maxChars int) (string, error) {
	if store == nil {
		return "", nil
	}

	keys, err := store.List(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to list context documents: %w", err)
	}
	if len(keys) == 0 {
		return "", nil
	}

	entries, err := store.Load(ctx, keys...)
	if err != nil {
		return "", fmt.Errorf("failed to load context documents: %w", err)
	}

	var b strings.Builder
	b.WriteString(ContextHeading)
	b.WriteString("\n")
	for _, e := range entries {
		body := strings.TrimSpace(string(e.Value))
		if body == "" {
			continue
		}
		fmt.Fprintf(&b, "\n### %s\n\n%s\n", e.Key, truncate(body, maxChars))
	}
	return b.String(), nil
}

func truncate(s string, maxChars int) string {
	if maxChars <= 0 || utf8.RuneCountInString(s) <= maxChars {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxChars]) + fmt.Sprintf("\n\n[... truncated at %d chars]", maxChars)
}
