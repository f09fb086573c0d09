package service

import "time"

// Period is the resolved reporting window of a finance query: the months
// in scope and their count, which pro-rates expected income (a rent rate
// is a fixed monthly figure, so expected = rate × MonthCount).
type Period struct {
	Year       int
	Months     []int
	MonthCount int
}

// ResolvePeriod determines the calendar window for a year and an optional
// month selection. An empty months slice means the full year.
func ResolvePeriod(year int, months []int) Period {
	if len(months) == 0 {
		return Period{Year: year, Months: nil, MonthCount: 12}
	}

	return Period{Year: year, Months: months, MonthCount: len(months)}
}

// Contains reports whether a month lies in the period's month set.
func (p Period) Contains(month int) bool {
	if len(p.Months) == 0 {
		return true
	}
	for _, m := range p.Months {
		if m == month {
			return true
		}
	}
	return false
}

// YearBounds returns the inclusive calendar bounds of the period's year
// (Jan 1 through Dec 31), used for coarse date-range loads that are then
// filtered per month in memory.
func (p Period) YearBounds() (time.Time, time.Time) {
	start := time.Date(p.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(p.Year, time.December, 31, 23, 59, 59, 0, time.UTC)
	return start, end
}
