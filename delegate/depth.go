// Package delegate lets the model hand a task to another configured agent
// while bounding how deeply such hand-offs may nest within one turn.
package delegate

import (
	"context"
	"sync/atomic"
)

// Depth counts the delegations in progress for one top-level turn.
// Every invocation spawned from that turn shares the same counter.
type Depth struct {
	n atomic.Int32
}

// Current returns the number of delegations in progress.
func (d *Depth) Current() int {
	return int(d.n.Load())
}

// tryEnter increments the counter unless it has reached limit.
func (d *Depth) tryEnter(limit int) bool {
	for {
		cur := d.n.Load()
		if int(cur) >= limit {
			return false
		}
		if d.n.CompareAndSwap(cur, cur+1) {
			return true
		}
	}
}

func (d *Depth) leave() {
	d.n.Add(-1)
}

type depthKey struct{}

// WithDepth returns a context carrying d.
func WithDepth(ctx context.Context, d *Depth) context.Context {
	return context.WithValue(ctx, depthKey{}, d)
}

// DepthFrom returns the counter carried by ctx, if any.
func DepthFrom(ctx context.Context) (*Depth, bool) {
	d, ok := ctx.Value(depthKey{}).(*Depth)
	return d, ok && d != nil
}

// EnsureDepth returns ctx unchanged when it already carries a counter,
// otherwise a child context with a fresh one.
func EnsureDepth(ctx context.Context) (context.Context, *Depth) {
	if d, ok := DepthFrom(ctx); ok {
		return ctx, d
	}
	d := &Depth{}
	return WithDepth(ctx, d), d
}
