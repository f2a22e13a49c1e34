package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gfontes/caderneta/internal/sale"
)

type SalesModel struct {
	CommonModel
	saleService *sale.Service

	table  table.Model
	sales  []sale.Sale
	status string
}

func NewSalesModel(saleSvc *sale.Service) SalesModel {
	columns := []table.Column{
		{Title: "Data", Width: 12},
		{Title: "Total", Width: 14},
		{Title: "Forma", Width: 12},
		{Title: "Itens", Width: 40},
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

	m := SalesModel{saleService: saleSvc, table: t}
	m.refreshTable()

	return m
}

func (m SalesModel) Title() string     { return "Vendas" }
func (m SalesModel) ShortHelp() string { return "Esc: voltar | d: excluir | r: atualizar" }

func (m SalesModel) Init() tea.Cmd {
	return nil
}

func (m SalesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
		case "d":
			idx := m.table.Cursor()
			if idx >= 0 && idx < len(m.sales) {
				removed := m.sales[idx]
				m.saleService.Delete(removed.ID)
				m.status = fmt.Sprintf("venda de %s excluída", FormatAmount(removed.Price.Total))
				m.refreshTable()
			}

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m SalesModel) View() string {
	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := tableView

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *SalesModel) refreshTable() {
	m.sales = m.saleService.List()

	rows := make([]table.Row, 0, len(m.sales))
	for _, sl := range m.sales {
		rows = append(rows, table.Row{
			FormatDate(sl.Date),
			FormatAmount(sl.Price.Total),
			string(sl.Method),
			m.describeLines(sl),
		})
	}
	m.table.SetRows(rows)
}

func (m *SalesModel) describeLines(sl sale.Sale) string {
	lines := m.saleService.Lines(sl)

	parts := make([]string, 0, len(lines))
	for _, l := range lines {
		parts = append(parts, fmt.Sprintf("%gx %s", l.Quantity, l.Name))
	}

	return strings.Join(parts, ", ")
}
