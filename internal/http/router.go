package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/gfontes/caderneta/internal/http/audit"
	"github.com/gfontes/caderneta/internal/http/auth"
	"github.com/gfontes/caderneta/internal/http/employee"
	"github.com/gfontes/caderneta/internal/http/export"
	"github.com/gfontes/caderneta/internal/http/importcsv"
	"github.com/gfontes/caderneta/internal/http/payment"
	"github.com/gfontes/caderneta/internal/http/product"
	"github.com/gfontes/caderneta/internal/http/sale"
	"github.com/gfontes/caderneta/internal/http/theme"
)

type Config struct {
	CORSOrigin string
	JWTSecret  string
}

func New(
	cfg Config,
	authV1 *auth.Handler,
	salesV1 *sale.Handler,
	paymentsV1 *payment.Handler,
	productsV1 *product.Handler,
	employeesV1 *employee.Handler,
	auditV1 *audit.Handler,
	importV1 *importcsv.Handler,
	exportV1 *export.Handler,
	themeV1 *theme.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.CORSOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			authV1.Routes(r)
		})

		// Everything past this point needs a session token.
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireToken(cfg.JWTSecret))

			r.Route("/sales", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				salesV1.Routes(r)
			})

			r.Route("/payments", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				paymentsV1.Routes(r)
			})

			r.Route("/products", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				productsV1.Routes(r)
			})

			r.Route("/employees", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				employeesV1.Routes(r)
			})

			r.Route("/audit", auditV1.Routes)
			r.Route("/import", importV1.Routes)

			r.Route("/export", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				exportV1.Routes(r)
			})

			r.Route("/theme", themeV1.Routes)
		})
	})

	return router
}
