package session

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yemubit/zeroclaw/core/protocol"
	"github.com/yemubit/zeroclaw/history"
)

// Sentinel errors for the session store.
var (
	ErrNotFound         = errors.New("session not found")
	ErrCapacityExceeded = errors.New("maximum sessions reached")
)

// Info is a point-in-time summary of one stored session.
type Info struct {
	ID           string        `json:"id"`
	MessageCount int           `json:"message_count"`
	Age          time.Duration `json:"age"`
	Idle         time.Duration `json:"idle"`
}

type entry struct {
	mu           sync.Mutex
	history      []protocol.Message
	createdAt    time.Time
	lastActivity time.Time
	evicted      bool
}

// Store owns every live conversation keyed by an opaque id. The map is
// guarded by the store lock; each entry has its own lock so work on one
// session never blocks another. Lock order is store, then entry.
type Store struct {
	mu           sync.RWMutex
	entries      map[string]*entry
	maxSessions  int
	timeout      time.Duration
	historyLimit int
	now          func() time.Time
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithClock replaces the time source.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) { s.now = now }
}

// NewStore creates an empty Store. Non-positive MaxSessions and HistoryLimit
// fall back to their defaults. TimeoutSecs is used as given: zero makes
// every session eligible for eviction.
func NewStore(cfg *Config, opts ...StoreOption) *Store {
	s := &Store{
		entries:      make(map[string]*entry),
		maxSessions:  cfg.MaxSessions,
		timeout:      cfg.Timeout(),
		historyLimit: cfg.HistoryLimit,
		now:          time.Now,
	}
	if s.maxSessions <= 0 {
		s.maxSessions = defaultMaxSessions
	}
	if s.historyLimit <= 0 {
		s.historyLimit = history.DefaultLimit
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create allocates a new empty session.
// Returns ErrCapacityExceeded when the store is full.
func (s *Store) Create() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.entries) >= s.maxSessions {
		return "", fmt.Errorf("%w: %d", ErrCapacityExceeded, s.maxSessions)
	}

	id := uuid.Must(uuid.NewV7()).String()
	now := s.now()
	s.entries[id] = &entry{createdAt: now, lastActivity: now}
	return id, nil
}

// History returns a copy of the session's messages and marks it active.
func (s *Store) History(id string) ([]protocol.Message, error) {
	e, err := s.lock(id)
	if err != nil {
		return nil, err
	}
	defer e.mu.Unlock()

	e.lastActivity = s.now()
	return slices.Clone(e.history), nil
}

// Append adds msg to the session, marks it active, and trims the history
// to the configured limit.
func (s *Store) Append(id string, msg protocol.Message) error {
	e, err := s.lock(id)
	if err != nil {
		return err
	}
	defer e.mu.Unlock()

	e.history = history.Trim(append(e.history, msg), s.historyLimit)
	e.lastActivity = s.now()
	return nil
}

// List returns a summary of every session, oldest first.
func (s *Store) List() []Info {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now()
	infos := make([]Info, 0, len(s.entries))
	created := make(map[string]time.Time, len(s.entries))
	for id, e := range s.entries {
		e.mu.Lock()
		infos = append(infos, Info{
			ID:           id,
			MessageCount: len(e.history),
			Age:          now.Sub(e.createdAt),
			Idle:         now.Sub(e.lastActivity),
		})
		created[id] = e.createdAt
		e.mu.Unlock()
	}

	sort.Slice(infos, func(i, j int) bool {
		ci, cj := created[infos[i].ID], created[infos[j].ID]
		if ci.Equal(cj) {
			return infos[i].ID < infos[j].ID
		}
		return ci.Before(cj)
	})
	return infos
}

// EvictExpired removes every session idle for at least the configured
// timeout and returns how many were removed.
func (s *Store) EvictExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, e := range s.entries {
		e.mu.Lock()
		if now.Sub(e.lastActivity) >= s.timeout {
			e.evicted = true
			delete(s.entries, id)
			removed++
		}
		e.mu.Unlock()
	}
	return removed
}

// Exists reports whether id names a live session.
func (s *Store) Exists(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.entries[id]
	return ok
}

// Count returns the number of live sessions.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// lock returns the entry for id with its lock held.
func (s *Store) lock(id string) (*entry, error) {
	s.mu.RLock()
	e, ok := s.entries[id]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	e.mu.Lock()
	if e.evicted {
		e.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return e, nil
}
