package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/gfontes/caderneta/internal/money"
	"github.com/gfontes/caderneta/internal/product"
)

type productsState int

const (
	productsStateBrowse productsState = iota
	productsStateEdit
)

type ProductsModel struct {
	CommonModel
	productService *product.Service

	state    productsState
	table    table.Model
	products []product.Product
	form     *huh.Form
	editID   string
	status   string

	// Form bindings
	formName  string
	formUnit  string
	formPrice string
}

func NewProductsModel(productSvc *product.Service) ProductsModel {
	columns := []table.Column{
		{Title: "Produto", Width: 30},
		{Title: "Unidade", Width: 10},
		{Title: "Preço", Width: 14},
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

	m := ProductsModel{productService: productSvc, table: t}
	m.refreshTable()

	return m
}

func (m ProductsModel) Title() string { return "Produtos" }
func (m ProductsModel) ShortHelp() string {
	if m.state == productsStateEdit {
		return "Enter: salvar | Esc: cancelar"
	}
	return "Esc: voltar | n: novo | e: editar | d: excluir"
}

func (m ProductsModel) Init() tea.Cmd {
	return nil
}

func (m ProductsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case productsStateBrowse:
		return m.updateBrowse(msg)
	case productsStateEdit:
		return m.updateEdit(msg)
	}

	return m, nil
}

func (m ProductsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "n":
			return m.enterEditMode("")
		case "e":
			idx := m.table.Cursor()
			if idx >= 0 && idx < len(m.products) {
				return m.enterEditMode(m.products[idx].ID)
			}

			return m, nil
		case "d":
			idx := m.table.Cursor()
			if idx >= 0 && idx < len(m.products) {
				m.productService.Delete(m.products[idx].ID)
				m.status = "produto removido"
				m.refreshTable()
			}

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

// enterEditMode opens the form. An empty id means a new product.
func (m ProductsModel) enterEditMode(id string) (tea.Model, tea.Cmd) {
	m.editID = id
	m.formName = ""
	m.formUnit = string(product.UnitEach)
	m.formPrice = ""

	if id != "" {
		if p, ok := m.productService.Get(id); ok {
			m.formName = p.Name
			m.formUnit = string(p.Unit)
			m.formPrice = FormatAmount(p.Price)
		}
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

			huh.NewSelect[string]().
				Key("unit").
				Title("Unidade").
				Options(
					huh.NewOption("unidade", string(product.UnitEach)),
					huh.NewOption("litro", string(product.UnitLiter)),
				).
				Value(&m.formUnit),

			huh.NewInput().
				Key("price").
				Title("Preço").
				Placeholder("R$ 0,00").
				Value(&m.formPrice).
				Validate(func(s string) error {
					v, err := money.ParseBRL(s)
					if err != nil || v < 0 {
						return fmt.Errorf("preço inválido")
					}
					return nil
				}),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = productsStateEdit
	m.table.Blur()

	return m, m.form.Init()
}

func (m ProductsModel) updateEdit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = productsStateBrowse
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
	unit := product.Unit(m.form.GetString("unit"))
	price, err := money.ParseBRL(m.form.GetString("price"))

	if err == nil && name != "" && unit.Valid() {
		if m.editID == "" {
			m.productService.Add(product.CreateParams{Name: name, Unit: unit, Price: price})
			m.status = "produto cadastrado"
		} else {
			m.productService.Update(m.editID, product.UpdateParams{
				Name:  &name,
				Unit:  &unit,
				Price: &price,
			})
			m.status = "produto atualizado"
		}
	}

	m.state = productsStateBrowse
	m.form = nil
	m.table.Focus()
	m.refreshTable()

	return m, nil
}

func (m ProductsModel) View() string {
	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := tableView

	if m.state == productsStateEdit && m.form != nil {
		title := "Novo produto"
		if m.editID != "" {
			title = "Editar produto"
		}

		panel := panelStyle().Width(48).Render(title + "\n\n" + m.form.View())
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *ProductsModel) refreshTable() {
	m.products = m.productService.List()

	rows := make([]table.Row, 0, len(m.products))
	for _, p := range m.products {
		rows = append(rows, table.Row{
			p.Name,
			string(p.Unit),
			FormatAmount(p.Price),
		})
	}
	m.table.SetRows(rows)
}
