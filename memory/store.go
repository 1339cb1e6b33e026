// Package memory supplies workspace context for the system prompt. A Store
// exposes text documents (notes, persona, conventions) under /-separated
// keys; Compose renders them into a prompt section.
package memory

import "context"

// Store is a read-only source of context documents.
// Implementations are stateless and perform I/O on each call.
type Store interface {
	// List returns all available keys in lexical order.
	List(ctx context.Context) ([]string, error)
	// Load retrieves entries for the specified keys, in the order given.
	Load(ctx context.Context, keys ...string) ([]Entry, error)
}
