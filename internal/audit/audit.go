// Package audit keeps the append-only trail of state-changing actions.
package audit

import (
	"time"

	"github.com/google/uuid"

	"github.com/gfontes/caderneta/internal/kv"
	"github.com/gfontes/caderneta/internal/store"
)

// MaxEntries caps the trail; the oldest entries are dropped on append.
const MaxEntries = 500

const storageKey = "audit-log"

// Entry records one state-changing action, tagged with the acting user.
type Entry struct {
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	Details   string    `json:"details"`
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName"`
	Timestamp time.Time `json:"timestamp"`
}

// PrincipalFunc resolves the currently authenticated user. Returning
// ok=false makes the trail fall back to the "system" identity; it never
// fails a write.
type PrincipalFunc func() (id, name string, ok bool)

type state struct {
	Entries []Entry `json:"entries"`
}

type Trail struct {
	store     *store.Store[state]
	principal PrincipalFunc
	now       func() time.Time
}

type Option func(*Trail)

// WithClock overrides the wall clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(t *Trail) { t.now = now }
}

func New(db *kv.Store, principal PrincipalFunc, opts ...Option) *Trail {
	t := &Trail{
		store:     store.New(state{}, store.WithPersistence[state](db, storageKey)),
		principal: principal,
		now:       time.Now,
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// Log prepends an entry for action and truncates the trail to the
// MaxEntries most recent records.
func (t *Trail) Log(action, details string) {
	userID, userName := "system", "system"
	if t.principal != nil {
		if id, name, ok := t.principal(); ok {
			userID, userName = id, name
		}
	}

	entry := Entry{
		ID:        uuid.NewString(),
		Action:    action,
		Details:   details,
		UserID:    userID,
		UserName:  userName,
		Timestamp: t.now(),
	}

	t.store.Set(func(st state) state {
		entries := make([]Entry, 0, len(st.Entries)+1)
		entries = append(entries, entry)
		entries = append(entries, st.Entries...)

		if len(entries) > MaxEntries {
			entries = entries[:MaxEntries]
		}

		st.Entries = entries

		return st
	})
}

// Read returns the full trail, most-recent-first.
func (t *Trail) Read() []Entry {
	return t.store.Get().Entries
}

// Subscribe notifies fn with the full trail after every append.
func (t *Trail) Subscribe(fn func([]Entry)) func() {
	return t.store.Subscribe(func(st state) {
		fn(st.Entries)
	})
}
