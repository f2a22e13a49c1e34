package theme_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gfontes/caderneta/internal/kv"
	"github.com/gfontes/caderneta/internal/theme"
)

func newDB(t *testing.T, path string) *kv.Store {
	t.Helper()

	db, err := kv.Open(path, "test")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return db
}

func TestDefaultsToLight(t *testing.T) {
	db := newDB(t, filepath.Join(t.TempDir(), "theme.db"))

	svc := theme.NewService(db)
	assert.Equal(t, theme.ModeLight, svc.Mode())
}

func TestSet_IgnoresUnknownModes(t *testing.T) {
	db := newDB(t, filepath.Join(t.TempDir(), "theme.db"))
	svc := theme.NewService(db)

	svc.Set(theme.ModeDark)
	assert.Equal(t, theme.ModeDark, svc.Mode())

	svc.Set(theme.Mode("sepia"))
	assert.Equal(t, theme.ModeDark, svc.Mode())
}

func TestToggle(t *testing.T) {
	db := newDB(t, filepath.Join(t.TempDir(), "theme.db"))
	svc := theme.NewService(db)

	assert.Equal(t, theme.ModeDark, svc.Toggle())
	assert.Equal(t, theme.ModeLight, svc.Toggle())
}

func TestPersistence_SurvivesRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme.db")

	db, err := kv.Open(path, "test")
	require.NoError(t, err)

	theme.NewService(db).Set(theme.ModeDark)
	require.NoError(t, db.Close())

	db, err = kv.Open(path, "test")
	require.NoError(t, err)
	defer db.Close()

	assert.Equal(t, theme.ModeDark, theme.NewService(db).Mode())
}
