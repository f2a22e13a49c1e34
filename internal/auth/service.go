package auth

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/gfontes/caderneta/internal/kv"
	"github.com/gfontes/caderneta/internal/store"
)

const (
	usersKey     = "auth_users"
	sessionKey   = "auth_user"
	passwordsKey = "auth_passwords"
)

type AuditRecorder interface {
	Log(action, details string)
}

type usersState struct {
	Users []User `json:"users"`
}

type sessionState struct {
	Current *User `json:"current"`
}

// Service owns user profiles, the credential map and the active session.
type Service struct {
	users   *store.Store[usersState]
	session *store.Store[sessionState]
	db      *kv.Store
	audit   AuditRecorder
}

func NewService(db *kv.Store) *Service {
	return &Service{
		users:   store.New(usersState{}, store.WithPersistence[usersState](db, usersKey)),
		session: store.New(sessionState{}, store.WithPersistence[sessionState](db, sessionKey)),
		db:      db,
	}
}

// AttachTrail wires the audit trail in after construction. The trail needs
// this service's Principal to tag entries, so the two cannot be built in
// one step.
func (s *Service) AttachTrail(rec AuditRecorder) {
	s.audit = rec
}

// Register creates a profile, stores the bcrypt hash of the password and
// signs the new user in. Duplicate emails and blank fields fail with a
// user-facing reason.
func (s *Service) Register(name, email, password string) (User, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)

	if name == "" || email == "" || password == "" {
		return User{}, ErrMissingField
	}

	if _, ok := s.findByEmail(email); ok {
		return User{}, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, fmt.Errorf("hashing password: %w", err)
	}

	u := User{ID: uuid.NewString(), Name: name, Email: email}

	s.users.Set(func(st usersState) usersState {
		users := make([]User, 0, len(st.Users)+1)
		users = append(users, u)
		users = append(users, st.Users...)
		st.Users = users

		return st
	})

	s.savePassword(u.ID, string(hash))
	s.setCurrent(&u)

	if s.audit != nil {
		s.audit.Log("user_registered", fmt.Sprintf("usuário %q cadastrado", u.Name))
	}

	return u, nil
}

// Login verifies the credentials and marks the user as the active
// principal. Unknown emails and bad passwords fail with a user-facing
// reason, never a panic or an opaque error.
func (s *Service) Login(email, password string) (User, error) {
	u, ok := s.findByEmail(normalizeEmail(email))
	if !ok {
		return User{}, ErrUnknownEmail
	}

	hashes := kv.Load(s.db, passwordsKey, map[string]string{})
	if err := bcrypt.CompareHashAndPassword([]byte(hashes[u.ID]), []byte(password)); err != nil {
		return User{}, ErrWrongPassword
	}

	s.setCurrent(&u)

	if s.audit != nil {
		s.audit.Log("user_login", fmt.Sprintf("usuário %q entrou", u.Name))
	}

	return u, nil
}

// Logout clears the active session.
func (s *Service) Logout() {
	s.setCurrent(nil)
}

// Current returns the signed-in user, if any.
func (s *Service) Current() (User, bool) {
	st := s.session.Get()
	if st.Current == nil {
		return User{}, false
	}

	return *st.Current, true
}

// Principal adapts Current to the audit trail's resolver contract.
func (s *Service) Principal() (string, string, bool) {
	u, ok := s.Current()
	if !ok {
		return "", "", false
	}

	return u.ID, u.Name, true
}

// Users lists the registered profiles, most-recent-first.
func (s *Service) Users() []User {
	return s.users.Get().Users
}

func (s *Service) findByEmail(email string) (User, bool) {
	for _, u := range s.users.Get().Users {
		if u.Email == email {
			return u, true
		}
	}

	return User{}, false
}

func (s *Service) setCurrent(u *User) {
	s.session.Set(func(st sessionState) sessionState {
		st.Current = u
		return st
	})
}

func (s *Service) savePassword(userID, hash string) {
	hashes := kv.Load(s.db, passwordsKey, map[string]string{})
	hashes[userID] = hash

	if err := s.db.Save(passwordsKey, hashes, 0); err != nil {
		slog.Error("failed to persist credentials", "error", err)
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
