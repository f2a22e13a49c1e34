// Package store provides the observable state containers the domain
// services are built on. A Store holds one state value, applies functional
// updates, optionally persists the full state through the kv adapter, and
// notifies subscribers synchronously after every mutation.
package store

import (
	"log/slog"
	"sync"

	"github.com/gfontes/caderneta/internal/kv"
)

type Listener[S any] func(S)

type Option[S any] func(*Store[S])

// WithPersistence loads the initial snapshot from db before first use and
// writes the full state back after every Set.
func WithPersistence[S any](db *kv.Store, key string) Option[S] {
	return func(s *Store[S]) {
		s.db = db
		s.key = key
	}
}

// WithRehydrate runs fn over the loaded (or initial) state once at
// construction time. Derived fields are recomputed here rather than trusted
// from disk.
func WithRehydrate[S any](fn func(S) S) Option[S] {
	return func(s *Store[S]) {
		s.rehydrate = fn
	}
}

type subscriber[S any] struct {
	id int
	fn Listener[S]
}

type Store[S any] struct {
	mu        sync.Mutex
	state     S
	subs      []subscriber[S]
	nextID    int
	db        *kv.Store
	key       string
	rehydrate func(S) S
}

// New builds a store seeded with initial. With persistence configured the
// persisted snapshot wins over initial; a missing or unreadable snapshot
// falls back to initial.
func New[S any](initial S, opts ...Option[S]) *Store[S] {
	s := &Store[S]{state: initial}

	for _, opt := range opts {
		opt(s)
	}

	if s.db != nil {
		s.state = kv.Load(s.db, s.key, initial)
	}

	if s.rehydrate != nil {
		s.state = s.rehydrate(s.state)
	}

	return s
}

// Get returns the current state snapshot. Callers must treat nested slices
// and maps as read-only; all mutation goes through Set.
func (s *Store[S]) Get() S {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state
}

// Set applies fn to the current state, persists the result when configured,
// and then notifies every subscriber in registration order. Each call
// produces exactly one notification round. The whole
// read-compute-persist-notify sequence is serialized against other Set
// calls.
func (s *Store[S]) Set(fn func(S) S) {
	s.mu.Lock()

	s.state = fn(s.state)
	next := s.state

	if s.db != nil {
		if err := s.db.Save(s.key, next, 0); err != nil {
			slog.Error("failed to persist state", "key", s.key, "error", err)
		}
	}

	subs := make([]subscriber[S], len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, sub := range subs {
		sub.fn(next)
	}
}

// Subscribe registers fn and returns its unsubscribe function. Calling the
// returned function more than once is harmless.
func (s *Store[S]) Subscribe(fn Listener[S]) func() {
	s.mu.Lock()

	id := s.nextID
	s.nextID++
	s.subs = append(s.subs, subscriber[S]{id: id, fn: fn})

	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				return
			}
		}
	}
}
