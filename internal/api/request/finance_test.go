package request

import (
	"net/url"
	"reflect"
	"testing"
	"time"
)

// TestParseFinanceFilter tests query parameter parsing for the summary.
//
// WHY: The services assume validated filters. Any malformed year or month
// must be rejected here, and defaults must be applied consistently.
func TestParseFinanceFilter(t *testing.T) {
	t.Run("applies defaults for an empty query", func(t *testing.T) {
		filter, err := ParseFinanceFilter(url.Values{})
		if err != nil {
			t.Fatalf("ParseFinanceFilter() returned unexpected error: %v", err)
		}

		if filter.Year != time.Now().Year() {
			t.Errorf("Expected current year default, got %d", filter.Year)
		}
		if filter.Months != nil {
			t.Errorf("Expected no month filter, got %v", filter.Months)
		}
	})

	t.Run("parses explicit parameters", func(t *testing.T) {
		query := url.Values{}
		query.Set("year", "2023")
		query.Set("months", "1, 2,3")
		query.Set("owners", "a,b")
		query.Set("properties", "p1")

		filter, err := ParseFinanceFilter(query)
		if err != nil {
			t.Fatalf("ParseFinanceFilter() returned unexpected error: %v", err)
		}

		if filter.Year != 2023 {
			t.Errorf("Expected year 2023, got %d", filter.Year)
		}
		if !reflect.DeepEqual(filter.Months, []int{1, 2, 3}) {
			t.Errorf("Expected months [1 2 3], got %v", filter.Months)
		}
		if !reflect.DeepEqual(filter.Owners, []string{"a", "b"}) {
			t.Errorf("Expected owners [a b], got %v", filter.Owners)
		}
		if !reflect.DeepEqual(filter.Properties, []string{"p1"}) {
			t.Errorf("Expected properties [p1], got %v", filter.Properties)
		}
	})

	t.Run("rejects malformed values", func(t *testing.T) {
		cases := []struct {
			name  string
			key   string
			value string
		}{
			{"non-numeric year", "year", "20x4"},
			{"non-numeric month", "months", "jan"},
			{"month below range", "months", "0"},
			{"month above range", "months", "13"},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				query := url.Values{}
				query.Set(tc.key, tc.value)

				if _, err := ParseFinanceFilter(query); err == nil {
					t.Errorf("Expected error for %s=%s, got nil", tc.key, tc.value)
				}
			})
		}
	})
}

// TestParseDate tests optional date parameter parsing.
func TestParseDate(t *testing.T) {
	t.Run("empty parameter yields the zero time", func(t *testing.T) {
		date, err := ParseDate("")
		if err != nil {
			t.Fatalf("ParseDate() returned unexpected error: %v", err)
		}
		if !date.IsZero() {
			t.Errorf("Expected zero time, got %v", date)
		}
	})

	t.Run("accepts plain dates and RFC3339", func(t *testing.T) {
		date, err := ParseDate("2024-03-15")
		if err != nil {
			t.Fatalf("ParseDate() returned unexpected error: %v", err)
		}
		if date.Year() != 2024 || date.Month() != time.March || date.Day() != 15 {
			t.Errorf("Expected 2024-03-15, got %v", date)
		}

		date, err = ParseDate("2024-03-15T10:30:00Z")
		if err != nil {
			t.Fatalf("ParseDate() returned unexpected error: %v", err)
		}
		if date.Hour() != 10 {
			t.Errorf("Expected hour 10, got %v", date)
		}
	})

	t.Run("rejects malformed dates", func(t *testing.T) {
		if _, err := ParseDate("15/03/2024"); err == nil {
			t.Error("Expected error for malformed date, got nil")
		}
	})
}
