package service

import (
	"fmt"
	"time"

	apperrors "github.com/propoffice/Property-Office-Backend/internal/errors"
	"github.com/propoffice/Property-Office-Backend/internal/model"
	"github.com/propoffice/Property-Office-Backend/internal/repository"
)

// IncomeService handles the monthly income grid: scoped listing with
// statistics and the bulk upsert used by the income editing page.
type IncomeService struct {
	scopeResolver *ScopeResolver
	incomeRepo    *repository.IncomeRepository
	propertyRepo  *repository.PropertyRepository
	now           func() time.Time
}

// NewIncomeService creates a new IncomeService with the provided dependencies.
func NewIncomeService(
	scopeResolver *ScopeResolver,
	incomeRepo *repository.IncomeRepository,
	propertyRepo *repository.PropertyRepository,
) *IncomeService {
	return &IncomeService{
		scopeResolver: scopeResolver,
		incomeRepo:    incomeRepo,
		propertyRepo:  propertyRepo,
		now:           time.Now,
	}
}

// IncomeList is the income page payload: the scoped rows for a year plus
// their statistics.
type IncomeList struct {
	Income []model.IncomeRecord `json:"income"`
	Stats  model.IncomeStats    `json:"stats"`
}

// ListIncome retrieves the caller's visible income rows for a year with
// summary statistics. The monthly total covers the current wall-clock
// month within the queried year's rows; it tracks "now", not the query.
func (s *IncomeService) ListIncome(year int, owners, properties []string, caller model.Caller) (IncomeList, error) {
	scope, err := s.scopeResolver.Resolve(caller, owners, properties)
	if err != nil {
		return IncomeList{}, fmt.Errorf("failed to resolve visible properties: %w", err)
	}

	if len(scope.Properties) == 0 {
		return IncomeList{Income: []model.IncomeRecord{}}, nil
	}

	records, err := s.incomeRepo.GetIncomeWithPropertyNames(scope.PropertyIDs(), year)
	if err != nil {
		return IncomeList{}, fmt.Errorf("failed to load income rows: %w", err)
	}

	currentMonth := int(s.now().Month())

	var stats model.IncomeStats
	propertiesWithIncome := make(map[string]struct{})

	for _, rec := range records {
		stats.YearlyTotal += rec.AmountUSD
		if rec.Month == currentMonth {
			stats.MonthlyTotal += rec.AmountUSD
		}
		if rec.AmountUSD > 0 {
			propertiesWithIncome[rec.PropertyID] = struct{}{}
		}
	}

	stats.YearlyTotal = round(stats.YearlyTotal)
	stats.MonthlyTotal = round(stats.MonthlyTotal)
	stats.AverageMonthly = round(stats.YearlyTotal / 12)
	stats.PropertiesWithIncome = len(propertiesWithIncome)

	return IncomeList{Income: records, Stats: stats}, nil
}

// BulkUpsertIncome applies a batch of income updates. A zero amount
// deletes the record for that (property, year, month); a positive amount
// creates or updates it, keeping at most one record per slot. Entries
// referencing unknown properties or invalid months are rejected as a
// whole batch. Returns the number of records that exist after the call.
func (s *IncomeService) BulkUpsertIncome(updates []model.IncomeUpdate) (int, error) {
	for _, u := range updates {
		if u.Month < 1 || u.Month > 12 {
			return 0, apperrors.ErrInvalidMonth
		}
		if u.AmountUSD < 0 {
			return 0, apperrors.ErrNegativeAmount
		}
		if _, err := s.propertyRepo.GetPropertyOnID(u.PropertyID); err != nil {
			return 0, err
		}
	}

	applied := 0
	for _, u := range updates {
		exists, err := s.incomeRepo.UpsertIncome(u)
		if err != nil {
			return applied, err
		}
		if exists {
			applied++
		}
	}

	return applied, nil
}
