package model

import "time"

// Property represents a property row from the database.
type Property struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	AreaSqm     float64   `json:"area_sqm"`
	RentRateUSD float64   `json:"rent_rate_usd"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Ownership links a user to a property with a percentage share.
// Shares for one property must sum to 100 (within ±0.01); this is
// enforced when the owner set is written, not when it is read.
type Ownership struct {
	PropertyID string  `json:"property_id"`
	UserID     string  `json:"user_id"`
	SharePct   float64 `json:"share_pct"`
}

// PropertyOwner is an ownership row joined with the owning user's name,
// as returned by the property listing.
type PropertyOwner struct {
	UserID    string  `json:"user_id"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	SharePct  float64 `json:"share_pct"`
}

// PropertyWithOwners is a property together with its full owner set.
type PropertyWithOwners struct {
	Property
	Owners []PropertyOwner `json:"owners"`
}

// OwnerShare is a (user, share) pair used when creating or replacing a
// property's owner set.
type OwnerShare struct {
	UserID   string  `json:"user_id"`
	SharePct float64 `json:"share_pct"`
}

// ScopeFilter narrows the set of properties visible to a query.
// Owners and Properties come from the request's query string; CallerID is
// set for restricted-role callers and limits the base set to properties
// in which the caller holds an ownership row.
type ScopeFilter struct {
	CallerID   string
	Owners     []string
	Properties []string
}

// PropertyStats summarizes the visible portfolio for the properties page.
// For restricted callers, area and expected income are scaled by the
// caller's own ownership share per property.
type PropertyStats struct {
	TotalProperties       int     `json:"total_properties"`
	TotalArea             float64 `json:"total_area"`
	ExpectedMonthlyIncome float64 `json:"expected_monthly_income"`
	AverageRatePerSqm     float64 `json:"average_rate_per_sqm"`
	MultiOwnerProperties  int     `json:"multi_owner_properties"`
}
