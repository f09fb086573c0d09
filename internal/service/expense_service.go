package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/propoffice/Property-Office-Backend/internal/errors"
	"github.com/propoffice/Property-Office-Backend/internal/model"
	"github.com/propoffice/Property-Office-Backend/internal/repository"
)

// ExpenseService handles expense listing, statistics and write operations,
// always scoped to the caller's visible property set.
type ExpenseService struct {
	scopeResolver   *ScopeResolver
	expenseRepo     *repository.ExpenseRepository
	expenseTypeRepo *repository.ExpenseTypeRepository
	propertyRepo    *repository.PropertyRepository
	now             func() time.Time
}

// NewExpenseService creates a new ExpenseService with the provided dependencies.
func NewExpenseService(
	scopeResolver *ScopeResolver,
	expenseRepo *repository.ExpenseRepository,
	expenseTypeRepo *repository.ExpenseTypeRepository,
	propertyRepo *repository.PropertyRepository,
) *ExpenseService {
	return &ExpenseService{
		scopeResolver:   scopeResolver,
		expenseRepo:     expenseRepo,
		expenseTypeRepo: expenseTypeRepo,
		propertyRepo:    propertyRepo,
		now:             time.Now,
	}
}

// ExpenseQuery narrows an expense listing or statistics request.
type ExpenseQuery struct {
	Owners     []string
	Properties []string
	Types      []string
	DateFrom   time.Time
	DateTo     time.Time
}

// ListExpenses retrieves the expenses visible to the caller, newest first.
func (s *ExpenseService) ListExpenses(query ExpenseQuery, caller model.Caller) ([]model.Expense, error) {
	scope, err := s.scopeResolver.Resolve(caller, query.Owners, query.Properties)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve visible properties: %w", err)
	}

	if len(scope.Properties) == 0 {
		return []model.Expense{}, nil
	}

	return s.expenseRepo.GetExpenses(model.ExpenseFilter{
		PropertyIDs: scope.PropertyIDs(),
		TypeIDs:     query.Types,
		DateFrom:    query.DateFrom,
		DateTo:      query.DateTo,
	})
}

// GetExpenseStats computes running expense totals over the caller's
// visible rows: lifetime, current wall-clock month, current wall-clock
// year, and the filtered period.
//
// The current-month and current-year figures deliberately ignore the
// query's date filters: they are "now" tiles, evaluated against
// wall-clock time regardless of the selected reporting period. The
// period total equals the lifetime total when no date filter is given.
func (s *ExpenseService) GetExpenseStats(query ExpenseQuery, caller model.Caller) (model.ExpenseStats, error) {
	scope, err := s.scopeResolver.Resolve(caller, query.Owners, query.Properties)
	if err != nil {
		return model.ExpenseStats{}, fmt.Errorf("failed to resolve visible properties: %w", err)
	}

	if len(scope.Properties) == 0 {
		return model.ExpenseStats{}, nil
	}

	// Lifetime row set; the period filter is applied in memory below so
	// one query serves all four figures.
	expenses, err := s.expenseRepo.GetExpenses(model.ExpenseFilter{
		PropertyIDs: scope.PropertyIDs(),
	})
	if err != nil {
		return model.ExpenseStats{}, fmt.Errorf("failed to load expense rows: %w", err)
	}

	now := s.now()
	currentYear, currentMonth := now.Year(), now.Month()
	hasPeriod := !query.DateFrom.IsZero() || !query.DateTo.IsZero()

	var stats model.ExpenseStats

	for _, e := range expenses {
		stats.TotalAmount += e.AmountUSD

		if e.Date.Year() == currentYear {
			stats.CurrentYearAmount += e.AmountUSD
			if e.Date.Month() == currentMonth {
				stats.CurrentMonthAmount += e.AmountUSD
			}
		}

		if hasPeriod {
			if !query.DateFrom.IsZero() && e.Date.Before(query.DateFrom) {
				continue
			}
			if !query.DateTo.IsZero() && e.Date.After(query.DateTo) {
				continue
			}
			stats.PeriodAmount += e.AmountUSD
		}
	}

	if !hasPeriod {
		stats.PeriodAmount = stats.TotalAmount
	}

	stats.TotalAmount = round(stats.TotalAmount)
	stats.CurrentMonthAmount = round(stats.CurrentMonthAmount)
	stats.CurrentYearAmount = round(stats.CurrentYearAmount)
	stats.PeriodAmount = round(stats.PeriodAmount)

	return stats, nil
}

// CreateExpense validates and records a new expense on behalf of the caller.
func (s *ExpenseService) CreateExpense(e model.Expense, caller model.Caller) (model.Expense, error) {
	if e.AmountUSD < 0 {
		return model.Expense{}, apperrors.ErrNegativeAmount
	}

	// Property must exist; a dangling expense row would silently skew
	// every downstream aggregate.
	if _, err := s.propertyRepo.GetPropertyOnID(e.PropertyID); err != nil {
		return model.Expense{}, err
	}

	e.ID = uuid.New().String()
	e.CreatedBy = caller.ID
	e.CreatedAt = s.now().UTC()

	if err := s.expenseRepo.CreateExpense(e); err != nil {
		return model.Expense{}, err
	}

	return e, nil
}

// UpdateExpense applies changes to an existing expense.
func (s *ExpenseService) UpdateExpense(e model.Expense) (model.Expense, error) {
	if e.AmountUSD < 0 {
		return model.Expense{}, apperrors.ErrNegativeAmount
	}

	existing, err := s.expenseRepo.GetExpenseOnID(e.ID)
	if err != nil {
		return model.Expense{}, err
	}

	e.CreatedBy = existing.CreatedBy
	e.CreatedAt = existing.CreatedAt

	if err := s.expenseRepo.UpdateExpense(e); err != nil {
		return model.Expense{}, err
	}

	return e, nil
}

// DeleteExpense removes an expense.
func (s *ExpenseService) DeleteExpense(expenseID string) error {
	return s.expenseRepo.DeleteExpense(expenseID)
}

// ListExpenseTypes retrieves all expense types.
func (s *ExpenseService) ListExpenseTypes() ([]model.ExpenseType, error) {
	return s.expenseTypeRepo.GetExpenseTypes()
}

// CreateExpenseType creates a new non-system expense type with a unique name.
func (s *ExpenseService) CreateExpenseType(name, description string) (model.ExpenseType, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.ExpenseType{}, apperrors.ErrMissingRequiredField
	}

	if _, err := s.expenseTypeRepo.GetExpenseTypeOnName(name); err == nil {
		return model.ExpenseType{}, apperrors.ErrDuplicateEntry
	} else if err != apperrors.ErrExpenseTypeNotFound {
		return model.ExpenseType{}, err
	}

	expenseType := model.ExpenseType{
		ID:          uuid.New().String(),
		Name:        name,
		Description: description,
		IsSystem:    false,
	}

	if err := s.expenseTypeRepo.CreateExpenseType(expenseType); err != nil {
		return model.ExpenseType{}, err
	}

	return expenseType, nil
}
