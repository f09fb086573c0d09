package api

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/propoffice/Property-Office-Backend/internal/api/handlers"
	custommiddleware "github.com/propoffice/Property-Office-Backend/internal/api/middleware"
	"github.com/propoffice/Property-Office-Backend/internal/config"
	"github.com/propoffice/Property-Office-Backend/internal/service"
)

// NewRouter creates and configures the HTTP router
func NewRouter(
	db *sql.DB,
	authService *service.AuthService,
	financeService *service.FinanceService,
	propertyService *service.PropertyService,
	incomeService *service.IncomeService,
	expenseService *service.ExpenseService,
	cfg *config.Config,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	session := custommiddleware.NewSession(authService)
	authHandler := handlers.NewAuthHandler(authService)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Public routes: authentication happens here, everything else
		// requires a session.
		r.Post("/login", authHandler.Login)
		r.Post("/logout", authHandler.Logout)
		r.Post("/register", authHandler.Register)

		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(db)
			r.Get("/health", systemHandler.Health)
		})

		r.Group(func(r chi.Router) {
			r.Use(session.Handler)

			r.Get("/me", authHandler.Me)
			r.Get("/users", authHandler.Users)

			r.Route("/finance", func(r chi.Router) {
				financeHandler := handlers.NewFinanceHandler(financeService)
				r.Get("/summary", financeHandler.Summary)
			})

			r.Route("/properties", func(r chi.Router) {
				propertyHandler := handlers.NewPropertyHandler(propertyService)
				r.Get("/", propertyHandler.Properties)
				r.Get("/stats", propertyHandler.Stats)
				r.Post("/", propertyHandler.CreateProperty)
				r.Put("/{id}", propertyHandler.UpdateProperty)
				r.Delete("/{id}", propertyHandler.DeleteProperty)
			})

			r.Route("/income", func(r chi.Router) {
				incomeHandler := handlers.NewIncomeHandler(incomeService)
				r.Get("/", incomeHandler.Income)
				r.Patch("/", incomeHandler.BulkUpdate)
			})

			expenseHandler := handlers.NewExpenseHandler(expenseService)
			r.Route("/expenses", func(r chi.Router) {
				r.Get("/", expenseHandler.Expenses)
				r.Get("/stats", expenseHandler.Stats)
				r.Post("/", expenseHandler.CreateExpense)
				r.Put("/{id}", expenseHandler.UpdateExpense)
				r.Delete("/{id}", expenseHandler.DeleteExpense)
			})

			r.Route("/expense-types", func(r chi.Router) {
				r.Get("/", expenseHandler.ExpenseTypes)
				r.Post("/", expenseHandler.CreateExpenseType)
			})
		})
	})

	return r
}
