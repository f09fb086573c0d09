package model

import "time"

// IncomeRecord represents a recorded rent payment for one property and
// month. At most one record exists per (property, year, month); a month
// without a record means zero income, not missing data.
type IncomeRecord struct {
	ID           string    `json:"id"`
	PropertyID   string    `json:"property_id"`
	Year         int       `json:"year"`
	Month        int       `json:"month"`
	AmountUSD    float64   `json:"amount_usd"`
	PropertyName string    `json:"property_name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IncomeUpdate is one entry of a bulk income upsert. Amount 0 deletes the
// record for that (property, year, month); a positive amount creates or
// updates it.
type IncomeUpdate struct {
	PropertyID string  `json:"property_id"`
	Year       int     `json:"year"`
	Month      int     `json:"month"`
	AmountUSD  float64 `json:"amount_usd"`
}

// IncomeStats summarizes income rows for the income page.
// MonthlyTotal covers the current wall-clock month regardless of the
// queried year, matching the dashboard's live tile.
type IncomeStats struct {
	YearlyTotal          float64 `json:"yearlyTotal"`
	MonthlyTotal         float64 `json:"monthlyTotal"`
	AverageMonthly       float64 `json:"averageMonthly"`
	PropertiesWithIncome int     `json:"propertiesWithIncome"`
}
