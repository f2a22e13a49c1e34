package view

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gfontes/caderneta/internal/payment"
	"github.com/gfontes/caderneta/internal/sale"
	"github.com/gfontes/caderneta/internal/theme"
)

type DashboardModel struct {
	CommonModel
	saleService    *sale.Service
	paymentService *payment.Service
	themeService   *theme.Service
}

func NewDashboardModel(saleSvc *sale.Service, paymentSvc *payment.Service, themeSvc *theme.Service) DashboardModel {
	return DashboardModel{
		saleService:    saleSvc,
		paymentService: paymentSvc,
		themeService:   themeSvc,
	}
}

func (m DashboardModel) Title() string     { return "Resumo" }
func (m DashboardModel) ShortHelp() string { return "Esc: voltar | t: tema" }

func (m DashboardModel) Init() tea.Cmd {
	return nil
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "t":
			m.themeService.Toggle()
			return m, nil
		}
	}

	return m, nil
}

func (m DashboardModel) View() string {
	salesToday := m.saleService.Today()
	salesMonth := m.saleService.Month()
	payToday := m.paymentService.Today()
	payMonth := m.paymentService.Month()

	salesCard := panelStyle().Render(fmt.Sprintf(
		"Vendas\n\nHoje:  %s (%d)\n  dinheiro %s | pix %s\n\nMês:   %s (%d)\n  dinheiro %s | pix %s",
		FormatAmount(salesToday.Total), len(salesToday.IDs),
		FormatAmount(salesToday.Cash), FormatAmount(salesToday.Pix),
		FormatAmount(salesMonth.Total), len(salesMonth.IDs),
		FormatAmount(salesMonth.Cash), FormatAmount(salesMonth.Pix),
	))

	paymentsCard := panelStyle().Render(fmt.Sprintf(
		"Pagamentos\n\nHoje:  %s (%d)\n\nMês:   %s (%d)",
		FormatAmount(payToday.Total), len(payToday.IDs),
		FormatAmount(payMonth.Total), len(payMonth.IDs),
	))

	footer := lipgloss.NewStyle().Faint(true).Render(
		fmt.Sprintf("tema: %s | %s", m.themeService.Mode(), m.ShortHelp()),
	)

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.JoinHorizontal(lipgloss.Top, salesCard, " ", paymentsCard),
			"",
			footer,
		),
	)
}
