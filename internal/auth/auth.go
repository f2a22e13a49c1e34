package auth

import "errors"

// User is the authenticated principal. Credentials live apart from the
// profile, under their own storage key, as bcrypt hashes.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Failure reasons returned by Register and Login. Their messages are meant
// to be shown to the user directly.
var (
	ErrEmailTaken       = errors.New("e-mail já cadastrado")
	ErrUnknownEmail     = errors.New("e-mail não cadastrado")
	ErrWrongPassword    = errors.New("senha incorreta")
	ErrMissingField     = errors.New("preencha todos os campos")
	ErrNotAuthenticated = errors.New("nenhum usuário autenticado")
)
