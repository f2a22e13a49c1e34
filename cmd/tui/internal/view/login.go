package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/gfontes/caderneta/internal/auth"
)

// LoggedInMsg tells the shell a session is active.
type LoggedInMsg struct {
	User auth.User
}

type LoginModel struct {
	CommonModel
	authService *auth.Service

	form *huh.Form
	err  error

	formMode     string
	formName     string
	formEmail    string
	formPassword string
}

func NewLoginModel(authSvc *auth.Service) LoginModel {
	m := LoginModel{authService: authSvc, formMode: "login"}
	m.form = m.newForm()

	return m
}

func (m LoginModel) newForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("mode").
				Title("Acesso").
				Options(
					huh.NewOption("Entrar", "login"),
					huh.NewOption("Criar conta", "register"),
				).
				Value(&m.formMode),

			huh.NewInput().
				Key("name").
				Title("Nome").
				Value(&m.formName),

			huh.NewInput().
				Key("email").
				Title("E-mail").
				Value(&m.formEmail).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("e-mail é obrigatório")
					}
					return nil
				}),

			huh.NewInput().
				Key("password").
				Title("Senha").
				EchoMode(huh.EchoModePassword).
				Value(&m.formPassword),
		),
	).WithWidth(45).WithShowHelp(false)
}

func (m LoginModel) Title() string     { return "Login" }
func (m LoginModel) ShortHelp() string { return "Enter: confirmar | Ctrl+C: sair" }

func (m LoginModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	mode := m.form.GetString("mode")
	name := m.form.GetString("name")
	email := m.form.GetString("email")
	password := m.form.GetString("password")

	var (
		u   auth.User
		err error
	)

	if mode == "register" {
		u, err = m.authService.Register(name, email, password)
	} else {
		u, err = m.authService.Login(email, password)
	}

	if err != nil {
		m.err = err
		m.form = m.newForm()

		return m, m.form.Init()
	}

	m.err = nil

	return m, func() tea.Msg { return LoggedInMsg{User: u} }
}

func (m LoginModel) View() string {
	content := "Caderneta\n\n" + m.form.View()

	if m.err != nil {
		content += "\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(m.err.Error())
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}
