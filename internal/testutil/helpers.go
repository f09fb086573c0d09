package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/propoffice/Property-Office-Backend/internal/repository"
	"github.com/propoffice/Property-Office-Backend/internal/service"
)

// MakeID generates a fresh UUID string for test fixtures.
func MakeID() string {
	return uuid.New().String()
}

// NewTestScopeResolver constructs a ScopeResolver backed by the test database.
func NewTestScopeResolver(t *testing.T, db *sql.DB) *service.ScopeResolver {
	t.Helper()

	return service.NewScopeResolver(repository.NewPropertyRepository(db))
}

// NewTestFinanceService constructs a FinanceService backed by the test database.
func NewTestFinanceService(t *testing.T, db *sql.DB) *service.FinanceService {
	t.Helper()

	return service.NewFinanceService(
		NewTestScopeResolver(t, db),
		repository.NewIncomeRepository(db),
		repository.NewExpenseRepository(db),
	)
}

// NewTestPropertyService constructs a PropertyService backed by the test database.
func NewTestPropertyService(t *testing.T, db *sql.DB) *service.PropertyService {
	t.Helper()

	return service.NewPropertyService(
		NewTestScopeResolver(t, db),
		repository.NewPropertyRepository(db),
		repository.NewUserRepository(db),
	)
}

// NewTestIncomeService constructs an IncomeService backed by the test database.
func NewTestIncomeService(t *testing.T, db *sql.DB) *service.IncomeService {
	t.Helper()

	return service.NewIncomeService(
		NewTestScopeResolver(t, db),
		repository.NewIncomeRepository(db),
		repository.NewPropertyRepository(db),
	)
}

// NewTestExpenseService constructs an ExpenseService backed by the test database.
func NewTestExpenseService(t *testing.T, db *sql.DB) *service.ExpenseService {
	t.Helper()

	return service.NewExpenseService(
		NewTestScopeResolver(t, db),
		repository.NewExpenseRepository(db),
		repository.NewExpenseTypeRepository(db),
		repository.NewPropertyRepository(db),
	)
}

// NewTestIntegrityService constructs an IntegrityService backed by the test database.
func NewTestIntegrityService(t *testing.T, db *sql.DB) *service.IntegrityService {
	t.Helper()

	return service.NewIntegrityService(repository.NewPropertyRepository(db))
}

// NewTestAuthService constructs an AuthService with a generated session key.
func NewTestAuthService(t *testing.T, db *sql.DB) *service.AuthService {
	t.Helper()

	svc, err := service.NewAuthService(repository.NewUserRepository(db), "", time.Hour)
	if err != nil {
		t.Fatalf("Failed to create auth service: %v", err)
	}
	return svc
}
