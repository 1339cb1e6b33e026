package delegate

import (
	"context"
	"errors"
	"fmt"
)

// ErrDepthExceeded is returned when a delegation would nest beyond the
// target's configured maximum.
var ErrDepthExceeded = errors.New("delegation depth exceeded")

// Completer performs a single-shot completion for a sub-agent.
type Completer interface {
	Complete(ctx context.Context, message string) (string, error)
}

// CompleterFunc adapts a function to Completer.
type CompleterFunc func(ctx context.Context, message string) (string, error)

func (f CompleterFunc) Complete(ctx context.Context, message string) (string, error) {
	return f(ctx, message)
}

// Guard bounds delegation into one target agent.
type Guard struct {
	target   string
	maxDepth int
	agent    Completer
}

// NewGuard creates a Guard for target allowing at most maxDepth nested
// delegations in flight.
func NewGuard(target string, maxDepth int, agent Completer) *Guard {
	return &Guard{target: target, maxDepth: maxDepth, agent: agent}
}

// Target returns the guarded agent name.
func (g *Guard) Target() string { return g.target }

// MaxDepth returns the nesting bound.
func (g *Guard) MaxDepth() int { return g.maxDepth }

// Invoke runs the target's completion when depth is below the bound. The
// counter is held for the duration of the call and released on every exit
// path.
func (g *Guard) Invoke(ctx context.Context, depth *Depth, message string) (string, error) {
	if !depth.tryEnter(g.maxDepth) {
		return "", fmt.Errorf("%w: %s at depth %d (max %d)", ErrDepthExceeded, g.target, depth.Current(), g.maxDepth)
	}
	defer depth.leave()

	return g.agent.Complete(ctx, message)
}
