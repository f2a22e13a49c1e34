package view

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/gfontes/caderneta/internal/money"
	"github.com/gfontes/caderneta/internal/product"
	"github.com/gfontes/caderneta/internal/sale"
)

type CheckoutModel struct {
	CommonModel
	saleService    *sale.Service
	productService *product.Service

	form   *huh.Form
	status string
	err    error

	// Form bindings
	formProductID string
	formQuantity  string
	formMethod    string
	formCash      string
}

func NewCheckoutModel(saleSvc *sale.Service, productSvc *product.Service) CheckoutModel {
	m := CheckoutModel{
		saleService:    saleSvc,
		productService: productSvc,
		formQuantity:   "1",
		formMethod:     string(sale.PaymentCash),
	}
	m.form = m.newForm()

	return m
}

func (m CheckoutModel) newForm() *huh.Form {
	products := m.productService.List()

	options := make([]huh.Option[string], 0, len(products))
	for _, p := range products {
		label := fmt.Sprintf("%s (%s / %s)", p.Name, FormatAmount(p.Price), p.Unit)
		options = append(options, huh.NewOption(label, p.ID))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("product").
				Title("Produto").
				Options(options...).
				Value(&m.formProductID),

			huh.NewInput().
				Key("quantity").
				Title("Quantidade").
				Value(&m.formQuantity).
				Validate(func(s string) error {
					q, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
					if err != nil || q <= 0 {
						return fmt.Errorf("quantidade deve ser positiva")
					}
					return nil
				}),

			huh.NewSelect[string]().
				Key("method").
				Title("Forma de pagamento").
				Options(
					huh.NewOption("Dinheiro", string(sale.PaymentCash)),
					huh.NewOption("Pix", string(sale.PaymentPix)),
					huh.NewOption("Combinado", string(sale.PaymentCombined)),
				).
				Value(&m.formMethod),

			huh.NewInput().
				Key("cash").
				Title("Parte em dinheiro (só combinado)").
				Placeholder("R$ 0,00").
				Value(&m.formCash),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m CheckoutModel) Title() string     { return "Caixa" }
func (m CheckoutModel) ShortHelp() string { return "Enter: registrar | Esc: voltar" }

func (m CheckoutModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m CheckoutModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	if err := m.submit(); err != nil {
		m.err = err
	} else {
		m.err = nil
		m.status = "venda registrada"
	}

	m.formCash = ""
	m.form = m.newForm()

	return m, m.form.Init()
}

// submit assembles the sale from the completed form, enforcing the same
// rules the HTTP boundary applies.
func (m *CheckoutModel) submit() error {
	productID := m.form.GetString("product")
	if productID == "" {
		return fmt.Errorf("nenhum produto selecionado")
	}

	quantity, err := strconv.ParseFloat(strings.Replace(m.form.GetString("quantity"), ",", ".", 1), 64)
	if err != nil || quantity <= 0 {
		return fmt.Errorf("quantidade deve ser positiva")
	}

	method := sale.PaymentMethod(m.form.GetString("method"))
	if !method.Valid() {
		return fmt.Errorf("forma de pagamento desconhecida")
	}

	items := sale.Items{
		Regular: []sale.LineItem{{ProductID: productID, Quantity: quantity}},
	}

	total := m.saleService.ComputeTotal(items)
	price := sale.Price{Total: total}

	if method == sale.PaymentCombined {
		cash, err := money.ParseBRL(m.form.GetString("cash"))
		if err != nil {
			return fmt.Errorf("parte em dinheiro inválida: %w", err)
		}

		if cash < 0 || cash > total {
			return fmt.Errorf("parte em dinheiro fora do total")
		}

		price.Cash = cash
		price.Pix = total - cash
	}

	m.saleService.Add(sale.CreateParams{
		Date:   time.Now(),
		Items:  items,
		Price:  price,
		Method: method,
	})

	return nil
}

func (m CheckoutModel) View() string {
	content := "Registrar venda\n\n" + m.form.View()

	if m.err != nil {
		content += "\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(m.err.Error())
	} else if m.status != "" {
		content += "\n" + lipgloss.NewStyle().Faint(true).Render(m.status)
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}
