package observability

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// ErrUnknownObserver is returned by New for an unregistered name.
var ErrUnknownObserver = errors.New("unknown observer")

// Factory builds an observer that logs through logger when it logs at all.
type Factory func(logger *slog.Logger) Observer

var (
	factories = map[string]Factory{
		"noop": func(*slog.Logger) Observer { return NoOpObserver{} },
		"slog": func(l *slog.Logger) Observer { return NewSlogObserver(l) },
	}
	mutex sync.RWMutex
)

// New returns the observer registered under name, built for logger.
// Pre-registered: "noop" and "slog". An empty name selects "slog".
func New(name string, logger *slog.Logger) (Observer, error) {
	if name == "" {
		name = "slog"
	}

	mutex.RLock()
	factory, exists := factories[name]
	mutex.RUnlock()

	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrUnknownObserver, name)
	}
	return factory(logger), nil
}

// Register adds or replaces a named observer factory.
func Register(name string, factory Factory) {
	mutex.Lock()
	defer mutex.Unlock()

	factories[name] = factory
}
