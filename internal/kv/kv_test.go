package kv_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gfontes/caderneta/internal/kv"
)

func openStore(t *testing.T) *kv.Store {
	t.Helper()

	s, err := kv.Open(filepath.Join(t.TempDir(), "test.db"), "test")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	return s
}

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	s := openStore(t)

	want := payload{Name: "cerveja", Count: 3}
	require.NoError(t, s.Save("item", want, 0))

	got := kv.Load(s, "item", payload{})
	assert.Equal(t, want, got)
}

func TestLoad_MissingKeyReturnsDefault(t *testing.T) {
	s := openStore(t)

	got := kv.Load(s, "nothing", payload{Name: "fallback"})
	assert.Equal(t, "fallback", got.Name)
}

func TestLoad_ExpiredEntryPurged(t *testing.T) {
	s := openStore(t)

	require.NoError(t, s.Save("ephemeral", payload{Name: "gone"}, time.Millisecond))
	time.Sleep(5 * time.Millisecond)

	got := kv.Load(s, "ephemeral", payload{Name: "default"})
	assert.Equal(t, "default", got.Name)
	assert.False(t, s.Has("ephemeral"))
}

func TestLoad_MismatchedPayloadDegradesToDefault(t *testing.T) {
	s := openStore(t)

	require.NoError(t, s.Save("item", "just a string", 0))

	got := kv.Load(s, "item", payload{Name: "default"})
	assert.Equal(t, "default", got.Name)
	// The unreadable entry is dropped, not left to fail again.
	assert.False(t, s.Has("item"))
}

func TestUpdate_MergesIntoExistingPayload(t *testing.T) {
	s := openStore(t)

	require.NoError(t, s.Save("item", payload{Name: "leite", Count: 1}, 0))
	require.NoError(t, s.Update("item", map[string]any{"count": 7}))

	got := kv.Load(s, "item", payload{})
	assert.Equal(t, "leite", got.Name)
	assert.Equal(t, 7, got.Count)
}

func TestUpdate_MissingKeyStartsEmpty(t *testing.T) {
	s := openStore(t)

	require.NoError(t, s.Update("fresh", map[string]any{"name": "novo"}))

	got := kv.Load(s, "fresh", payload{})
	assert.Equal(t, "novo", got.Name)
}

func TestRemoveAndClear(t *testing.T) {
	s := openStore(t)

	require.NoError(t, s.Save("a", 1, 0))
	require.NoError(t, s.Save("b", 2, 0))

	require.NoError(t, s.Remove("a"))
	assert.False(t, s.Has("a"))
	assert.True(t, s.Has("b"))

	// Removing an absent key is a no-op.
	require.NoError(t, s.Remove("a"))

	require.NoError(t, s.Clear())
	assert.False(t, s.Has("b"))
}
