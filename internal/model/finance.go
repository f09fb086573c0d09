package model

// FinanceFilter selects the reporting window and scope for a finance
// summary query. Months empty means the full year. Owners and Properties
// narrow the visible property set; they never change whose ownership
// share is applied.
type FinanceFilter struct {
	Year       int
	Months     []int
	Owners     []string
	Properties []string
}

// FinanceSummaryItem is the per-property plan-vs-actual line of the
// finance summary. Derived on every query, never persisted. All monetary
// figures are rounded to cents.
type FinanceSummaryItem struct {
	PropertyID     string  `json:"property_id"`
	PropertyName   string  `json:"property_name"`
	ExpectedIncome float64 `json:"expected_income"`
	ActualIncome   float64 `json:"actual_income"`
	ActualExpenses float64 `json:"actual_expenses"`
	Delta          float64 `json:"delta"`
	PlanPercentage float64 `json:"plan_percentage"`
}

// FinanceStats holds portfolio-wide totals. Each total is the sum of the
// already-rounded per-property figures; the overall plan percentage is
// computed from the totals, not averaged across properties.
type FinanceStats struct {
	TotalExpected         float64 `json:"total_expected"`
	TotalActualIncome     float64 `json:"total_actual_income"`
	TotalExpenses         float64 `json:"total_expenses"`
	TotalDelta            float64 `json:"total_delta"`
	OverallPlanPercentage float64 `json:"overall_plan_percentage"`
}

// FinanceSummary is the full response of the finance summary query.
type FinanceSummary struct {
	Summary []FinanceSummaryItem `json:"summary"`
	Stats   FinanceStats         `json:"stats"`
}
