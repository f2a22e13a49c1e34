package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/gfontes/caderneta/internal/employee"
	"github.com/gfontes/caderneta/internal/money"
	"github.com/gfontes/caderneta/internal/payment"
)

type employeesState int

const (
	employeesStateBrowse employeesState = iota
	employeesStateEdit
)

type EmployeesModel struct {
	CommonModel
	employeeService *employee.Service
	paymentService  *payment.Service

	state     employeesState
	table     table.Model
	employees []employee.Employee
	form      *huh.Form
	editID    string
	status    string

	// Form bindings
	formName     string
	formDayRate  string
	formHalfRate string
}

func NewEmployeesModel(employeeSvc *employee.Service, paymentSvc *payment.Service) EmployeesModel {
	columns := []table.Column{
		{Title: "Nome", Width: 30},
		{Title: "Diária", Width: 14},
		{Title: "Meia", Width: 14},
		{Title: "Pagamentos", Width: 12},
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

	m := EmployeesModel{
		employeeService: employeeSvc,
		paymentService:  paymentSvc,
		table:           t,
	}
	m.refreshTable()

	return m
}

func (m EmployeesModel) Title() string { return "Funcionários" }
func (m EmployeesModel) ShortHelp() string {
	if m.state == employeesStateEdit {
		return "Enter: salvar | Esc: cancelar"
	}
	return "Esc: voltar | n: novo | e: editar | d: excluir"
}

func (m EmployeesModel) Init() tea.Cmd {
	return nil
}

func (m EmployeesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case employeesStateBrowse:
		return m.updateBrowse(msg)
	case employeesStateEdit:
		return m.updateEdit(msg)
	}

	return m, nil
}

func (m EmployeesModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "n":
			return m.enterEditMode("")
		case "e":
			idx := m.table.Cursor()
			if idx >= 0 && idx < len(m.employees) {
				return m.enterEditMode(m.employees[idx].ID)
			}

			return m, nil
		case "d":
			idx := m.table.Cursor()
			if idx >= 0 && idx < len(m.employees) {
				m.employeeService.Delete(m.employees[idx].ID)
				m.status = "funcionário removido; pagamentos antigos continuam no histórico"
				m.refreshTable()
			}

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m EmployeesModel) enterEditMode(id string) (tea.Model, tea.Cmd) {
	m.editID = id
	m.formName = ""
	m.formDayRate = ""
	m.formHalfRate = ""

	if id != "" {
		if e, ok := m.employeeService.Get(id); ok {
			m.formName = e.Name
			m.formDayRate = FormatAmount(e.DefaultRates[0])
			m.formHalfRate = FormatAmount(e.DefaultRates[1])
		}
	}

	rateValidate := func(s string) error {
		if strings.TrimSpace(s) == "" {
			return nil
		}

		if v, err := money.ParseBRL(s); err != nil || v < 0 {
			return fmt.Errorf("valor inválido")
		}

		return nil
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title("Nome").
				Value(&m.formName).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("nome é obrigatório")
					}
					return nil
				}),

			huh.NewInput().
				Key("day_rate").
				Title("Diária").
				Placeholder("R$ 0,00").
				Value(&m.formDayRate).
				Validate(rateValidate),

			huh.NewInput().
				Key("half_rate").
				Title("Meia diária").
				Placeholder("R$ 0,00").
				Value(&m.formHalfRate).
				Validate(rateValidate),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = employeesStateEdit
	m.table.Blur()

	return m, m.form.Init()
}

func (m EmployeesModel) updateEdit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = employeesStateBrowse
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

	name := m.form.GetString("name")
	if name != "" {
		params := employee.CreateParams{
			Name: name,
			DefaultRates: [2]int64{
				parseRate(m.form.GetString("day_rate")),
				parseRate(m.form.GetString("half_rate")),
			},
		}

		if m.editID == "" {
			m.employeeService.Add(params)
			m.status = "funcionário cadastrado"
		} else {
			m.employeeService.Update(m.editID, params)
			m.status = "funcionário atualizado"
		}
	}

	m.state = employeesStateBrowse
	m.form = nil
	m.table.Focus()
	m.refreshTable()

	return m, nil
}

func (m EmployeesModel) View() string {
	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := tableView

	if m.state == employeesStateEdit && m.form != nil {
		title := "Novo funcionário"
		if m.editID != "" {
			title = "Editar funcionário"
		}

		panel := panelStyle().Width(48).Render(title + "\n\n" + m.form.View())
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *EmployeesModel) refreshTable() {
	m.employees = m.employeeService.List()

	rows := make([]table.Row, 0, len(m.employees))
	for _, e := range m.employees {
		rows = append(rows, table.Row{
			e.Name,
			FormatAmount(e.DefaultRates[0]),
			FormatAmount(e.DefaultRates[1]),
			fmt.Sprintf("%d", len(m.paymentService.ByReceiver(e.ID))),
		})
	}
	m.table.SetRows(rows)
}

func parseRate(s string) int64 {
	v, err := money.ParseBRL(s)
	if err != nil || v < 0 {
		return 0
	}

	return v
}
