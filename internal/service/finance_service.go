package service

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/propoffice/Property-Office-Backend/internal/model"
	"github.com/propoffice/Property-Office-Backend/internal/repository"
)

// FinanceService computes the plan-vs-actual finance summary: per visible
// property it reconciles expected rent, recorded income and recorded
// expenses into one summary line, plus portfolio-wide totals.
//
// The service is stateless and read-only; every call recomputes from the
// current row snapshot. Income and expense rows are loaded concurrently
// without a shared transaction, so a write landing between the two reads
// may surface in a part-old/part-new summary. That read skew is an
// accepted property of the query path.
type FinanceService struct {
	scopeResolver *ScopeResolver
	incomeRepo    *repository.IncomeRepository
	expenseRepo   *repository.ExpenseRepository
}

// NewFinanceService creates a new FinanceService with the provided dependencies.
func NewFinanceService(
	scopeResolver *ScopeResolver,
	incomeRepo *repository.IncomeRepository,
	expenseRepo *repository.ExpenseRepository,
) *FinanceService {
	return &FinanceService{
		scopeResolver: scopeResolver,
		incomeRepo:    incomeRepo,
		expenseRepo:   expenseRepo,
	}
}

// emptyFinanceSummary is the defined result for an empty visibility
// scope: no summary lines and all-zero stats, not an error.
func emptyFinanceSummary() model.FinanceSummary {
	return model.FinanceSummary{
		Summary: []model.FinanceSummaryItem{},
		Stats:   model.FinanceStats{},
	}
}

// Summarize computes the finance summary for the caller's visible
// property set over the requested reporting window.
//
// Per property, in order: expected income (rent rate × months in scope),
// actual income (sum of matched income rows), actual expenses (sum of
// matched expense rows). For an owner-role caller each of the three is
// scaled by the caller's own ownership share, never by another owner's,
// even when the owners filter names other owners; that filter only
// narrows which properties are visible. Delta and plan percentage follow,
// and every figure is rounded to cents.
//
// Portfolio stats are sums of the already-rounded per-property figures;
// the overall plan percentage is derived from the totals, not averaged
// across properties. Every visible property appears exactly once, with
// zeros when it has no rows in the window.
//
// Any storage read failure aborts the whole aggregation; partial results
// are never returned.
func (s *FinanceService) Summarize(filter model.FinanceFilter, caller model.Caller) (model.FinanceSummary, error) {
	scope, err := s.scopeResolver.Resolve(caller, filter.Owners, filter.Properties)
	if err != nil {
		return model.FinanceSummary{}, fmt.Errorf("failed to resolve visible properties: %w", err)
	}

	if len(scope.Properties) == 0 {
		return emptyFinanceSummary(), nil
	}

	period := ResolvePeriod(filter.Year, filter.Months)
	propertyIDs := scope.PropertyIDs()

	var incomeRows []model.IncomeRecord
	var expenseRows []model.Expense

	// Income and expense loads are independent reads; run them in
	// parallel and fail the whole aggregation if either fails.
	var g errgroup.Group

	g.Go(func() error {
		var err error
		incomeRows, err = s.incomeRepo.GetIncomeForProperties(propertyIDs, period.Year, period.Months)
		if err != nil {
			return fmt.Errorf("failed to load income rows: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		dateFrom, dateTo := period.YearBounds()
		var err error
		expenseRows, err = s.expenseRepo.GetExpenses(model.ExpenseFilter{
			PropertyIDs: propertyIDs,
			DateFrom:    dateFrom,
			DateTo:      dateTo,
		})
		if err != nil {
			return fmt.Errorf("failed to load expense rows: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return model.FinanceSummary{}, fmt.Errorf("finance aggregation failed: %w", err)
	}

	incomeByProperty := make(map[string]float64, len(scope.Properties))
	for _, rec := range incomeRows {
		incomeByProperty[rec.PropertyID] += rec.AmountUSD
	}

	// Expense rows were loaded for the whole calendar year; narrow to the
	// selected months here because the expense table keys on full dates.
	expensesByProperty := make(map[string]float64, len(scope.Properties))
	for _, e := range expenseRows {
		if !period.Contains(int(e.Date.Month())) {
			continue
		}
		expensesByProperty[e.PropertyID] += e.AmountUSD
	}

	summary := make([]model.FinanceSummaryItem, len(scope.Properties))
	var stats model.FinanceStats

	for i, property := range scope.Properties {
		expected := property.RentRateUSD * float64(period.MonthCount)
		actualIncome := incomeByProperty[property.ID]
		actualExpenses := expensesByProperty[property.ID]

		if !caller.Role.Privileged() {
			share := scope.ShareOf(property.ID, caller.ID) / 100
			expected *= share
			actualIncome *= share
			actualExpenses *= share
		}

		delta := actualIncome - actualExpenses

		planPercentage := 0.0
		if expected > 0 {
			planPercentage = actualIncome / expected * 100
		}

		item := model.FinanceSummaryItem{
			PropertyID:     property.ID,
			PropertyName:   property.Name,
			ExpectedIncome: round(expected),
			ActualIncome:   round(actualIncome),
			ActualExpenses: round(actualExpenses),
			Delta:          round(delta),
			PlanPercentage: round(planPercentage),
		}
		summary[i] = item

		// Totals accumulate the rounded per-property figures so the
		// portfolio line reconciles cent-for-cent with the table rows.
		stats.TotalExpected += item.ExpectedIncome
		stats.TotalActualIncome += item.ActualIncome
		stats.TotalExpenses += item.ActualExpenses
		stats.TotalDelta += item.Delta
	}

	stats.TotalExpected = round(stats.TotalExpected)
	stats.TotalActualIncome = round(stats.TotalActualIncome)
	stats.TotalExpenses = round(stats.TotalExpenses)
	stats.TotalDelta = round(stats.TotalDelta)

	if stats.TotalExpected > 0 {
		stats.OverallPlanPercentage = round(stats.TotalActualIncome / stats.TotalExpected * 100)
	}

	return model.FinanceSummary{Summary: summary, Stats: stats}, nil
}
