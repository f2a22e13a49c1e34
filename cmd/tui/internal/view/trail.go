package view

import (
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gfontes/caderneta/internal/audit"
)

// TrailModel is a read-only browser for the audit log.
type TrailModel struct {
	CommonModel
	trail *audit.Trail

	table table.Model
}

func NewTrailModel(trail *audit.Trail) TrailModel {
	columns := []table.Column{
		{Title: "Quando", Width: 18},
		{Title: "Quem", Width: 20},
		{Title: "Ação", Width: 18},
		{Title: "Detalhes", Width: 50},
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

	m := TrailModel{trail: trail, table: t}
	m.refreshTable()

	return m
}

func (m TrailModel) Title() string     { return "Histórico" }
func (m TrailModel) ShortHelp() string { return "Esc: voltar | r: atualizar" }

func (m TrailModel) Init() tea.Cmd {
	return nil
}

func (m TrailModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.refreshTable()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m TrailModel) View() string {
	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	return lipgloss.NewStyle().Padding(1).Render(tableView)
}

func (m *TrailModel) refreshTable() {
	entries := m.trail.Read()

	rows := make([]table.Row, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, table.Row{
			e.Timestamp.Format("2006-01-02 15:04"),
			e.UserName,
			e.Action,
			e.Details,
		})
	}
	m.table.SetRows(rows)
}
