package service_test

import (
	"testing"
	"time"

	"github.com/propoffice/Property-Office-Backend/internal/service"
)

// TestResolvePeriod tests reporting window resolution.
//
// WHY: The month count multiplies the rent rate into expected income, so
// an off-by-one here misstates the plan for every property at once.
func TestResolvePeriod(t *testing.T) {
	t.Run("empty month selection means the full year", func(t *testing.T) {
		period := service.ResolvePeriod(2024, nil)

		if period.MonthCount != 12 {
			t.Errorf("Expected MonthCount 12, got %d", period.MonthCount)
		}
		if !period.Contains(1) || !period.Contains(12) {
			t.Error("Full-year period must contain every month")
		}
	})

	t.Run("explicit months define the count and membership", func(t *testing.T) {
		period := service.ResolvePeriod(2024, []int{1, 2, 3})

		if period.MonthCount != 3 {
			t.Errorf("Expected MonthCount 3, got %d", period.MonthCount)
		}
		if !period.Contains(2) {
			t.Error("Expected period to contain month 2")
		}
		if period.Contains(4) {
			t.Error("Expected period not to contain month 4")
		}
	})

	t.Run("year bounds span the full calendar year", func(t *testing.T) {
		period := service.ResolvePeriod(2024, []int{6})
		from, to := period.YearBounds()

		wantFrom := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
		if !from.Equal(wantFrom) {
			t.Errorf("Expected bounds to start at %v, got %v", wantFrom, from)
		}
		if to.Year() != 2024 || to.Month() != time.December || to.Day() != 31 {
			t.Errorf("Expected bounds to end on Dec 31 2024, got %v", to)
		}
	})
}
