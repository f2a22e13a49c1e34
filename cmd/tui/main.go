package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/gfontes/caderneta/cmd/tui/internal/view"
	"github.com/gfontes/caderneta/internal/audit"
	"github.com/gfontes/caderneta/internal/auth"
	"github.com/gfontes/caderneta/internal/config"
	"github.com/gfontes/caderneta/internal/employee"
	"github.com/gfontes/caderneta/internal/kv"
	"github.com/gfontes/caderneta/internal/payment"
	"github.com/gfontes/caderneta/internal/product"
	"github.com/gfontes/caderneta/internal/sale"
	"github.com/gfontes/caderneta/internal/theme"
)

type model struct {
	authService     *auth.Service
	saleService     *sale.Service
	paymentService  *payment.Service
	productService  *product.Service
	employeeService *employee.Service
	themeService    *theme.Service
	trail           *audit.Trail

	currentView View

	loginView     view.LoginModel
	dashboardView view.DashboardModel
	checkoutView  view.CheckoutModel
	salesView     view.SalesModel
	paymentsView  view.PaymentsModel
	productsView  view.ProductsModel
	employeesView view.EmployeesModel
	trailView     view.TrailModel
}

type View int

const (
	ViewLogin     View = 0
	ViewMenu      View = 1
	ViewDashboard View = 2
	ViewCheckout  View = 3
	ViewSales     View = 4
	ViewPayments  View = 5
	ViewProducts  View = 6
	ViewEmployees View = 7
	ViewTrail     View = 8
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	path, err := cfg.DatabasePath()
	if err != nil {
		slog.Error("failed to resolve data dir", "error", err)
		os.Exit(1)
	}

	db, err := kv.Open(path, cfg.Storage.Namespace)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}

	authSvc := auth.NewService(db)
	trail := audit.New(db, authSvc.Principal)
	authSvc.AttachTrail(trail)

	productSvc := product.NewService(db, trail)
	employeeSvc := employee.NewService(db, trail)
	saleSvc := sale.NewService(db, productSvc, trail)
	paymentSvc := payment.NewService(db, employeeSvc, trail)
	themeSvc := theme.NewService(db)

	m := model{
		authService:     authSvc,
		saleService:     saleSvc,
		paymentService:  paymentSvc,
		productService:  productSvc,
		employeeService: employeeSvc,
		themeService:    themeSvc,
		trail:           trail,
		currentView:     ViewLogin,
		loginView:       view.NewLoginModel(authSvc),
	}

	// A persisted session skips the login screen.
	if _, ok := authSvc.Current(); ok {
		m.currentView = ViewMenu
	}

	return m
}

func (m model) Init() tea.Cmd {
	if m.currentView == ViewLogin {
		return m.loginView.Init()
	}

	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.currentView == ViewMenu {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewCheckout
				m.checkoutView = view.NewCheckoutModel(m.saleService, m.productService)

				return m, m.checkoutView.Init()
			case "2":
				m.currentView = ViewSales
				m.salesView = view.NewSalesModel(m.saleService)

				return m, m.salesView.Init()
			case "3":
				m.currentView = ViewPayments
				m.paymentsView = view.NewPaymentsModel(m.paymentService, m.employeeService)

				return m, m.paymentsView.Init()
			case "4":
				m.currentView = ViewProducts
				m.productsView = view.NewProductsModel(m.productService)

				return m, m.productsView.Init()
			case "5":
				m.currentView = ViewEmployees
				m.employeesView = view.NewEmployeesModel(m.employeeService, m.paymentService)

				return m, m.employeesView.Init()
			case "6":
				m.currentView = ViewDashboard
				m.dashboardView = view.NewDashboardModel(m.saleService, m.paymentService, m.themeService)

				return m, m.dashboardView.Init()
			case "7":
				m.currentView = ViewTrail
				m.trailView = view.NewTrailModel(m.trail)

				return m, m.trailView.Init()
			case "s":
				m.authService.Logout()
				m.currentView = ViewLogin
				m.loginView = view.NewLoginModel(m.authService)

				return m, m.loginView.Init()
			}
		}
	case view.LoggedInMsg:
		m.currentView = ViewMenu
		return m, nil
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewLogin:
		var newModel tea.Model
		newModel, cmd = m.loginView.Update(msg)
		m.loginView = newModel.(view.LoginModel)
	case ViewDashboard:
		var newModel tea.Model
		newModel, cmd = m.dashboardView.Update(msg)
		m.dashboardView = newModel.(view.DashboardModel)
	case ViewCheckout:
		var newModel tea.Model
		newModel, cmd = m.checkoutView.Update(msg)
		m.checkoutView = newModel.(view.CheckoutModel)
	case ViewSales:
		var newModel tea.Model
		newModel, cmd = m.salesView.Update(msg)
		m.salesView = newModel.(view.SalesModel)
	case ViewPayments:
		var newModel tea.Model
		newModel, cmd = m.paymentsView.Update(msg)
		m.paymentsView = newModel.(view.PaymentsModel)
	case ViewProducts:
		var newModel tea.Model
		newModel, cmd = m.productsView.Update(msg)
		m.productsView = newModel.(view.ProductsModel)
	case ViewEmployees:
		var newModel tea.Model
		newModel, cmd = m.employeesView.Update(msg)
		m.employeesView = newModel.(view.EmployeesModel)
	case ViewTrail:
		var newModel tea.Model
		newModel, cmd = m.trailView.Update(msg)
		m.trailView = newModel.(view.TrailModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewLogin:
		return m.loginView.View()
	case ViewMenu:
		user := ""
		if u, ok := m.authService.Current(); ok {
			user = " (" + u.Name + ")"
		}

		return lipgloss.NewStyle().Padding(2).Render(
			"Caderneta" + user + "\n\n" +
				"1. Caixa\n" +
				"2. Vendas\n" +
				"3. Pagamentos\n" +
				"4. Produtos\n" +
				"5. Funcionários\n" +
				"6. Resumo\n" +
				"7. Histórico\n\n" +
				"s. Sair da conta\n" +
				"q. Fechar",
		)
	case ViewDashboard:
		return m.dashboardView.View()
	case ViewCheckout:
		return m.checkoutView.View()
	case ViewSales:
		return m.salesView.View()
	case ViewPayments:
		return m.paymentsView.View()
	case ViewProducts:
		return m.productsView.View()
	case ViewEmployees:
		return m.employeesView.View()
	case ViewTrail:
		return m.trailView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
