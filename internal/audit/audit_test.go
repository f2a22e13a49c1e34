package audit_test

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gfontes/caderneta/internal/audit"
	"github.com/gfontes/caderneta/internal/kv"
)

func openDB(t *testing.T) *kv.Store {
	t.Helper()

	db, err := kv.Open(filepath.Join(t.TempDir(), "audit.db"), "test")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return db
}

func TestLog_TagsPrincipal(t *testing.T) {
	trail := audit.New(openDB(t), func() (string, string, bool) {
		return "u1", "Maria", true
	})

	trail.Log("sale_created", "venda de R$ 30,00")

	entries := trail.Read()
	require.Len(t, entries, 1)
	assert.Equal(t, "sale_created", entries[0].Action)
	assert.Equal(t, "venda de R$ 30,00", entries[0].Details)
	assert.Equal(t, "u1", entries[0].UserID)
	assert.Equal(t, "Maria", entries[0].UserName)
	assert.NotEmpty(t, entries[0].ID)
}

func TestLog_FallsBackToSystemPrincipal(t *testing.T) {
	trail := audit.New(openDB(t), func() (string, string, bool) {
		return "", "", false
	})

	trail.Log("product_deleted", "produto removido")

	entries := trail.Read()
	require.Len(t, entries, 1)
	assert.Equal(t, "system", entries[0].UserID)
	assert.Equal(t, "system", entries[0].UserName)
}

func TestLog_MostRecentFirst(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	trail := audit.New(openDB(t), nil, audit.WithClock(func() time.Time {
		now = now.Add(time.Second)
		return now
	}))

	trail.Log("first", "")
	trail.Log("second", "")
	trail.Log("third", "")

	entries := trail.Read()
	require.Len(t, entries, 3)
	assert.Equal(t, "third", entries[0].Action)
	assert.Equal(t, "second", entries[1].Action)
	assert.Equal(t, "first", entries[2].Action)
	assert.True(t, entries[0].Timestamp.After(entries[2].Timestamp))
}

func TestLog_CapsAtMaxEntries(t *testing.T) {
	trail := audit.New(openDB(t), nil)

	for i := 0; i < audit.MaxEntries+20; i++ {
		trail.Log("action", fmt.Sprintf("entry %d", i))
	}

	entries := trail.Read()
	require.Len(t, entries, audit.MaxEntries)

	// The newest entry survives at the head; the oldest 20 were dropped.
	assert.Equal(t, fmt.Sprintf("entry %d", audit.MaxEntries+19), entries[0].Details)
	assert.Equal(t, "entry 20", entries[len(entries)-1].Details)
}

func TestTrail_PersistsAcrossInstances(t *testing.T) {
	db := openDB(t)

	trail := audit.New(db, nil)
	trail.Log("sale_created", "persisted")

	reopened := audit.New(db, nil)
	entries := reopened.Read()
	require.Len(t, entries, 1)
	assert.Equal(t, "persisted", entries[0].Details)
}
