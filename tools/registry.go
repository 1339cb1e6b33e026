package tools

import (
	"context"
	"fmt"
	"sync"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/yemubit/zeroclaw/core/protocol"
)

// Registry holds tools in registration order. Lookup returns the first tool
// with a matching name. Safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	tools []Tool
}

// NewRegistry creates a Registry holding the given tools. Duplicate names
// are rejected with ErrAlreadyExists.
func NewRegistry(tools ...Tool) (*Registry, error) {
	r := &Registry{}
	for _, t := range tools {
		if err := r.Register(t); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register appends a tool.
// Returns ErrAlreadyExists if a tool with the same name is already registered.
func (r *Registry) Register(t Tool) error {
	if t.Name() == "" {
		return ErrEmptyName
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.index(t.Name()) >= 0 {
		return fmt.Errorf("%w: %s", ErrAlreadyExists, t.Name())
	}

	r.tools = append(r.tools, t)
	return nil
}

// Get retrieves a tool by exact name.
func (r *Registry) Get(name string) (Tool, bool) {
	if r == nil {
		return nil, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if i := r.index(name); i >= 0 {
		return r.tools[i], true
	}
	return nil, false
}

// List returns the definitions of all registered tools in order.
func (r *Registry) List() []protocol.Tool {
	if r == nil {
		return nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	defs := make([]protocol.Tool, 0, len(r.tools))
	for _, t := range r.tools {
		defs = append(defs, Definition(t))
	}
	return defs
}

// Execute dispatches a call to the named tool.
// Returns ErrNotFound if the tool is not registered. Errors from the tool
// itself are returned as is.
func (r *Registry) Execute(ctx context.Context, name string, args *structpb.Value) (Result, error) {
	t, ok := r.Get(name)
	if !ok {
		return Result{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return t.Execute(ctx, args)
}

func (r *Registry) index(name string) int {
	for i, t := range r.tools {
		if t.Name() == name {
			return i
		}
	}
	return -1
}
