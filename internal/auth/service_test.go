package auth_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gfontes/caderneta/internal/auth"
	"github.com/gfontes/caderneta/internal/kv"
)

func newService(t *testing.T) (*auth.Service, *kv.Store) {
	t.Helper()

	db, err := kv.Open(filepath.Join(t.TempDir(), "auth.db"), "test")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return auth.NewService(db), db
}

func TestRegister_SignsUserIn(t *testing.T) {
	svc, _ := newService(t)

	u, err := svc.Register("Maria", "maria@example.com", "segredo")
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "maria@example.com", u.Email)

	current, ok := svc.Current()
	require.True(t, ok)
	assert.Equal(t, u.ID, current.ID)

	id, name, ok := svc.Principal()
	require.True(t, ok)
	assert.Equal(t, u.ID, id)
	assert.Equal(t, "Maria", name)
}

func TestRegister_Failures(t *testing.T) {
	tests := []struct {
		name     string
		userName string
		email    string
		password string
		wantErr  error
	}{
		{name: "DuplicateEmail", userName: "Outro", email: "maria@example.com", password: "x", wantErr: auth.ErrEmailTaken},
		{name: "DuplicateEmailDifferentCase", userName: "Outro", email: "MARIA@example.com", password: "x", wantErr: auth.ErrEmailTaken},
		{name: "EmptyName", userName: "", email: "novo@example.com", password: "x", wantErr: auth.ErrMissingField},
		{name: "EmptyPassword", userName: "Novo", email: "novo@example.com", password: "", wantErr: auth.ErrMissingField},
	}

	svc, _ := newService(t)
	_, err := svc.Register("Maria", "maria@example.com", "segredo")
	require.NoError(t, err)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(tt.userName, tt.email, tt.password)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLogin(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.Register("Maria", "maria@example.com", "segredo")
	require.NoError(t, err)
	svc.Logout()

	t.Run("Success", func(t *testing.T) {
		u, err := svc.Login("Maria@Example.com", "segredo")
		require.NoError(t, err)
		assert.Equal(t, "Maria", u.Name)

		_, ok := svc.Current()
		assert.True(t, ok)
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		_, err := svc.Login("ninguem@example.com", "segredo")
		assert.ErrorIs(t, err, auth.ErrUnknownEmail)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		_, err := svc.Login("maria@example.com", "errada")
		assert.ErrorIs(t, err, auth.ErrWrongPassword)
	})
}

func TestLogout_ClearsPrincipal(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.Register("Maria", "maria@example.com", "segredo")
	require.NoError(t, err)

	svc.Logout()

	_, ok := svc.Current()
	assert.False(t, ok)

	_, _, ok = svc.Principal()
	assert.False(t, ok)
}

func TestSession_SurvivesRestart(t *testing.T) {
	svc, db := newService(t)

	u, err := svc.Register("Maria", "maria@example.com", "segredo")
	require.NoError(t, err)

	reopened := auth.NewService(db)
	current, ok := reopened.Current()
	require.True(t, ok)
	assert.Equal(t, u.ID, current.ID)

	// Credentials also survive.
	svc.Logout()
	_, err = reopened.Login("maria@example.com", "segredo")
	assert.NoError(t, err)
}
