package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/gfontes/caderneta/internal/audit"
	"github.com/gfontes/caderneta/internal/auth"
	"github.com/gfontes/caderneta/internal/config"
	"github.com/gfontes/caderneta/internal/employee"
	"github.com/gfontes/caderneta/internal/export"
	cadernetaHttp "github.com/gfontes/caderneta/internal/http"
	auditHandler "github.com/gfontes/caderneta/internal/http/audit"
	authHandler "github.com/gfontes/caderneta/internal/http/auth"
	employeeHandler "github.com/gfontes/caderneta/internal/http/employee"
	exportHandler "github.com/gfontes/caderneta/internal/http/export"
	importHandler "github.com/gfontes/caderneta/internal/http/importcsv"
	paymentHandler "github.com/gfontes/caderneta/internal/http/payment"
	productHandler "github.com/gfontes/caderneta/internal/http/product"
	saleHandler "github.com/gfontes/caderneta/internal/http/sale"
	themeHandler "github.com/gfontes/caderneta/internal/http/theme"
	"github.com/gfontes/caderneta/internal/importer"
	"github.com/gfontes/caderneta/internal/kv"
	"github.com/gfontes/caderneta/internal/payment"
	"github.com/gfontes/caderneta/internal/product"
	"github.com/gfontes/caderneta/internal/sale"
	"github.com/gfontes/caderneta/internal/theme"
)

func main() {
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
	defer db.Close()

	authService := auth.NewService(db)
	trail := audit.New(db, authService.Principal)
	authService.AttachTrail(trail)

	var (
		productService  = product.NewService(db, trail)
		employeeService = employee.NewService(db, trail)
		saleService     = sale.NewService(db, productService, trail)
		paymentService  = payment.NewService(db, employeeService, trail)
		themeService    = theme.NewService(db)
		importService   = importer.NewService()
		exportService   = export.NewService(saleService)
	)

	var (
		authH     = authHandler.NewHandler(authService, cfg.Auth.JWTSecret)
		saleH     = saleHandler.NewHandler(saleService)
		paymentH  = paymentHandler.NewHandler(paymentService)
		productH  = productHandler.NewHandler(productService)
		employeeH = employeeHandler.NewHandler(employeeService, paymentService)
		auditH    = auditHandler.NewHandler(trail)
		importH   = importHandler.NewHandler(importService, productService, trail)
		exportH   = exportHandler.NewHandler(exportService)
		themeH    = themeHandler.NewHandler(themeService)
	)

	router := cadernetaHttp.New(
		cadernetaHttp.Config{
			CORSOrigin: cfg.HTTP.CORSOrigin,
			JWTSecret:  cfg.Auth.JWTSecret,
		},
		authH, saleH, paymentH, productH, employeeH, auditH, importH, exportH, themeH,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "app", cfg.App.Name, "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
