package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/propoffice/Property-Office-Backend/internal/api"
	"github.com/propoffice/Property-Office-Backend/internal/config"
	"github.com/propoffice/Property-Office-Backend/internal/database"
	"github.com/propoffice/Property-Office-Backend/internal/repository"
	"github.com/propoffice/Property-Office-Backend/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	log.Printf("Connected to database: %s", cfg.Database.Path)

	// Create repositories
	propertyRepo := repository.NewPropertyRepository(db)
	incomeRepo := repository.NewIncomeRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)
	expenseTypeRepo := repository.NewExpenseTypeRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Create services
	sessionTTL, err := time.ParseDuration(cfg.Auth.SessionTTL)
	if err != nil {
		log.Fatalf("Invalid SESSION_TTL: %v", err)
	}

	authService, err := service.NewAuthService(userRepo, cfg.Auth.SessionKey, sessionTTL)
	if err != nil {
		log.Fatalf("Failed to create auth service: %v", err)
	}

	scopeResolver := service.NewScopeResolver(propertyRepo)
	financeService := service.NewFinanceService(scopeResolver, incomeRepo, expenseRepo)
	propertyService := service.NewPropertyService(scopeResolver, propertyRepo, userRepo)
	incomeService := service.NewIncomeService(scopeResolver, incomeRepo, propertyRepo)
	expenseService := service.NewExpenseService(scopeResolver, expenseRepo, expenseTypeRepo, propertyRepo)
	integrityService := service.NewIntegrityService(propertyRepo)

	// Schedule the ownership integrity audit
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.Audit.Schedule, integrityService.RunAudit); err != nil {
		log.Fatalf("Invalid AUDIT_SCHEDULE %q: %v", cfg.Audit.Schedule, err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Create router
	router := api.NewRouter(db, authService, financeService, propertyService, incomeService, expenseService, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
