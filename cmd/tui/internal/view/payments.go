package view

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/gfontes/caderneta/internal/employee"
	"github.com/gfontes/caderneta/internal/money"
	"github.com/gfontes/caderneta/internal/payment"
)

type paymentsState int

const (
	paymentsStateBrowse paymentsState = iota
	paymentsStateAdd
)

type PaymentsModel struct {
	CommonModel
	paymentService  *payment.Service
	employeeService *employee.Service

	state    paymentsState
	table    table.Model
	payments []payment.Payment
	form     *huh.Form
	status   string

	// Form bindings
	formReceiver string
	formPick     int64
	formAmount   string
}

func NewPaymentsModel(paymentSvc *payment.Service, employeeSvc *employee.Service) PaymentsModel {
	columns := []table.Column{
		{Title: "Data", Width: 12},
		{Title: "Valor", Width: 14},
		{Title: "Funcionário", Width: 30},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	m := PaymentsModel{
		paymentService:  paymentSvc,
		employeeService: employeeSvc,
		table:           t,
	}
	m.refreshTable()

	return m
}

func (m PaymentsModel) Title() string { return "Pagamentos" }
func (m PaymentsModel) ShortHelp() string {
	if m.state == paymentsStateAdd {
		return "Enter: confirmar | Esc: cancelar"
	}
	return "Esc: voltar | n: novo | d: excluir | r: atualizar"
}

func (m PaymentsModel) Init() tea.Cmd {
	return nil
}

func (m PaymentsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case paymentsStateBrowse:
		return m.updateBrowse(msg)
	case paymentsStateAdd:
		return m.updateAdd(msg)
	}

	return m, nil
}

func (m PaymentsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.refreshTable()
			return m, nil
		case "n":
			return m.enterAddMode()
		case "d":
			idx := m.table.Cursor()
			if idx >= 0 && idx < len(m.payments) {
				m.paymentService.Delete(m.payments[idx].ID)
				m.status = "pagamento excluído"
				m.refreshTable()
			}

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m PaymentsModel) enterAddMode() (tea.Model, tea.Cmd) {
	employees := m.employeeService.List()
	if len(employees) == 0 {
		m.status = "cadastre um funcionário antes"
		return m, nil
	}

	options := make([]huh.Option[string], 0, len(employees))
	for _, e := range employees {
		options = append(options, huh.NewOption(e.Name, e.ID))
	}

	m.formAmount = ""

	// Bindings outlive this copy of the model, so they live on the heap.
	receiver := &m.formReceiver
	pick := &m.formPick

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("receiver").
				Title("Funcionário").
				Options(options...).
				Value(receiver),
		),
		huh.NewGroup(
			huh.NewSelect[int64]().
				Key("pick").
				Title("Valor").
				OptionsFunc(func() []huh.Option[int64] {
					return m.rateOptions(*receiver)
				}, receiver).
				Value(pick),
		),
		huh.NewGroup(
			huh.NewInput().
				Key("amount").
				Title("Outro valor").
				Placeholder("R$ 0,00").
				Value(&m.formAmount).
				Validate(func(s string) error {
					v, err := money.ParseBRL(s)
					if err != nil || v <= 0 {
						return fmt.Errorf("valor deve ser positivo")
					}
					return nil
				}),
		).WithHideFunc(func() bool {
			return *pick != 0
		}),
	).WithWidth(45).WithShowHelp(false)

	m.state = paymentsStateAdd
	m.table.Blur()

	return m, m.form.Init()
}

// rateOptions offers the employee's quick-pick payout presets. Zero rates
// are left out; "outro valor" opens the free input.
func (m PaymentsModel) rateOptions(employeeID string) []huh.Option[int64] {
	var options []huh.Option[int64]

	if e, ok := m.employeeService.Get(employeeID); ok {
		if e.DefaultRates[0] > 0 {
			options = append(options, huh.NewOption("Diária "+FormatAmount(e.DefaultRates[0]), e.DefaultRates[0]))
		}

		if e.DefaultRates[1] > 0 {
			options = append(options, huh.NewOption("Meia diária "+FormatAmount(e.DefaultRates[1]), e.DefaultRates[1]))
		}
	}

	return append(options, huh.NewOption[int64]("Outro valor", 0))
}

func (m PaymentsModel) updateAdd(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = paymentsStateBrowse
			m.form = nil
			m.table.Focus()

			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	amount, _ := m.form.Get("pick").(int64)
	if amount == 0 {
		parsed, err := money.ParseBRL(m.form.GetString("amount"))
		if err == nil {
			amount = parsed
		}
	}

	if amount > 0 {
		m.paymentService.Add(payment.CreateParams{
			Date:       time.Now(),
			Amount:     amount,
			ReceiverID: m.form.GetString("receiver"),
		})
		m.status = "pagamento registrado"
	}

	m.state = paymentsStateBrowse
	m.form = nil
	m.table.Focus()
	m.refreshTable()

	return m, nil
}

func (m PaymentsModel) View() string {
	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := tableView

	if m.state == paymentsStateAdd && m.form != nil {
		panel := panelStyle().Width(48).Render("Novo pagamento\n\n" + m.form.View())
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *PaymentsModel) refreshTable() {
	m.payments = m.paymentService.List()

	rows := make([]table.Row, 0, len(m.payments))
	for _, p := range m.payments {
		name, ok := m.paymentService.ReceiverName(p)
		if !ok {
			name = "funcionário removido"
		}

		rows = append(rows, table.Row{
			FormatDate(p.Date),
			FormatAmount(p.Amount),
			name,
		})
	}
	m.table.SetRows(rows)
}
