package store_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gfontes/caderneta/internal/kv"
	"github.com/gfontes/caderneta/internal/store"
)

type counter struct {
	Value int      `json:"value"`
	Log   []string `json:"log"`
}

func TestSet_AppliesFunctionalUpdate(t *testing.T) {
	s := store.New(counter{Value: 1})

	s.Set(func(c counter) counter {
		c.Value += 9
		return c
	})

	assert.Equal(t, 10, s.Get().Value)
}

func TestSet_NotifiesInRegistrationOrder(t *testing.T) {
	s := store.New(counter{})

	var order []string

	s.Subscribe(func(counter) { order = append(order, "first") })
	s.Subscribe(func(counter) { order = append(order, "second") })
	s.Subscribe(func(counter) { order = append(order, "third") })

	s.Set(func(c counter) counter { return c })

	assert.Equal(t, []string{"first", "second", "third"}, order)
}

func TestSet_OneNotificationRoundPerCall(t *testing.T) {
	s := store.New(counter{})

	calls := 0
	s.Subscribe(func(counter) { calls++ })

	s.Set(func(c counter) counter { return c })
	s.Set(func(c counter) counter { return c })

	assert.Equal(t, 2, calls)
}

func TestSubscribe_UnsubscribeStopsDelivery(t *testing.T) {
	s := store.New(counter{})

	var got []string

	unsub := s.Subscribe(func(counter) { got = append(got, "a") })
	s.Subscribe(func(counter) { got = append(got, "b") })

	s.Set(func(c counter) counter { return c })
	unsub()
	unsub() // second call is harmless
	s.Set(func(c counter) counter { return c })

	assert.Equal(t, []string{"a", "b", "b"}, got)
}

func TestSubscriber_SeesPostMutationState(t *testing.T) {
	s := store.New(counter{Value: 1})

	var seen int

	s.Subscribe(func(c counter) { seen = c.Value })
	s.Set(func(c counter) counter {
		c.Value = 42
		return c
	})

	assert.Equal(t, 42, seen)
}

func TestPersistence_RoundTripAcrossInstances(t *testing.T) {
	db, err := kv.Open(filepath.Join(t.TempDir(), "store.db"), "test")
	require.NoError(t, err)
	defer db.Close()

	s1 := store.New(counter{}, store.WithPersistence[counter](db, "counter"))
	s1.Set(func(c counter) counter {
		c.Value = 7
		c.Log = append(c.Log, "set")
		return c
	})

	s2 := store.New(counter{}, store.WithPersistence[counter](db, "counter"))
	assert.Equal(t, 7, s2.Get().Value)
	assert.Equal(t, []string{"set"}, s2.Get().Log)
}

func TestPersistence_MissingSnapshotFallsBackToInitial(t *testing.T) {
	db, err := kv.Open(filepath.Join(t.TempDir(), "store.db"), "test")
	require.NoError(t, err)
	defer db.Close()

	s := store.New(counter{Value: 3}, store.WithPersistence[counter](db, "untouched"))
	assert.Equal(t, 3, s.Get().Value)
}

func TestRehydrate_RecomputesDerivedStateOnLoad(t *testing.T) {
	db, err := kv.Open(filepath.Join(t.TempDir(), "store.db"), "test")
	require.NoError(t, err)
	defer db.Close()

	s1 := store.New(counter{}, store.WithPersistence[counter](db, "counter"))
	s1.Set(func(c counter) counter {
		c.Value = 5
		return c
	})

	s2 := store.New(counter{},
		store.WithPersistence[counter](db, "counter"),
		store.WithRehydrate(func(c counter) counter {
			c.Log = []string{"rehydrated"}
			return c
		}),
	)

	assert.Equal(t, 5, s2.Get().Value)
	assert.Equal(t, []string{"rehydrated"}, s2.Get().Log)
}
