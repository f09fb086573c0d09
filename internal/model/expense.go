package model

import "time"

// ExpenseType categorizes expenses. System types cannot be deleted.
type ExpenseType struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	IsSystem    bool   `json:"is_system"`
}

// Expense represents an operating expense row. Unlike income, there is no
// uniqueness constraint: a property may record many expenses per day.
type Expense struct {
	ID           string    `json:"id"`
	PropertyID   string    `json:"property_id"`
	TypeID       string    `json:"type_id"`
	Date         time.Time `json:"date"`
	AmountUSD    float64   `json:"amount_usd"`
	Comment      string    `json:"comment,omitempty"`
	CreatedBy    string    `json:"created_by"`
	PropertyName string    `json:"property_name,omitempty"`
	TypeName     string    `json:"type_name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// ExpenseFilter narrows an expense listing or stats query.
// DateFrom/DateTo are inclusive and independent of the reporting period
// used by the finance summary.
type ExpenseFilter struct {
	PropertyIDs []string
	TypeIDs     []string
	DateFrom    time.Time
	DateTo      time.Time
}

// ExpenseStats holds running expense totals. CurrentMonthAmount and
// CurrentYearAmount are evaluated against wall-clock time at query time,
// not against the query's date filters; PeriodAmount equals TotalAmount
// when no date filter is supplied.
type ExpenseStats struct {
	TotalAmount        float64 `json:"totalAmount"`
	CurrentMonthAmount float64 `json:"currentMonthAmount"`
	CurrentYearAmount  float64 `json:"currentYearAmount"`
	PeriodAmount       float64 `json:"periodAmount"`
}
