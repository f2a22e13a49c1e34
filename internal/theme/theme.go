// Package theme persists the UI appearance preference.
package theme

import (
	"github.com/gfontes/caderneta/internal/kv"
	"github.com/gfontes/caderneta/internal/store"
)

const storageKey = "theme"

type Mode string

const (
	ModeLight Mode = "light"
	ModeDark  Mode = "dark"
)

type State struct {
	Mode Mode `json:"mode"`
}

type Service struct {
	store *store.Store[State]
}

func NewService(db *kv.Store) *Service {
	return &Service{
		store: store.New(State{Mode: ModeLight}, store.WithPersistence[State](db, storageKey)),
	}
}

func (s *Service) Mode() Mode {
	return s.store.Get().Mode
}

func (s *Service) Set(mode Mode) {
	if mode != ModeLight && mode != ModeDark {
		return
	}

	s.store.Set(func(st State) State {
		st.Mode = mode
		return st
	})
}

// Toggle flips between light and dark.
func (s *Service) Toggle() Mode {
	s.store.Set(func(st State) State {
		if st.Mode == ModeDark {
			st.Mode = ModeLight
		} else {
			st.Mode = ModeDark
		}

		return st
	})

	return s.Mode()
}

func (s *Service) Subscribe(fn func(State)) func() {
	return s.store.Subscribe(fn)
}
