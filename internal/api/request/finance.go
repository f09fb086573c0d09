// Package request converts raw query-string parameters into validated,
// well-typed filter structs. The services assume validated inputs; every
// rejection happens here, at the boundary.
package request

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/propoffice/Property-Office-Backend/internal/model"
)

// splitList splits a comma-separated parameter into its non-empty parts.
func splitList(param string) []string {
	if param == "" {
		return nil
	}

	parts := strings.Split(param, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			values = append(values, part)
		}
	}
	return values
}

// ParseFinanceFilter extracts and validates finance summary filters from
// query parameters.
//
// Parameters:
//   - year: four-digit year; defaults to the current year
//   - months: comma-separated ints, each 1-12; empty means the full year
//   - owners, properties: comma-separated IDs narrowing visibility
//
// Returns an error when year or any month fails to parse or lies outside
// its valid range.
func ParseFinanceFilter(query url.Values) (model.FinanceFilter, error) {
	filter := model.FinanceFilter{
		Year:       time.Now().Year(),
		Owners:     splitList(query.Get("owners")),
		Properties: splitList(query.Get("properties")),
	}

	if yearParam := query.Get("year"); yearParam != "" {
		year, err := strconv.Atoi(yearParam)
		if err != nil {
			return model.FinanceFilter{}, fmt.Errorf("invalid year: %s", yearParam)
		}
		filter.Year = year
	}

	for _, monthParam := range splitList(query.Get("months")) {
		month, err := strconv.Atoi(monthParam)
		if err != nil {
			return model.FinanceFilter{}, fmt.Errorf("invalid month: %s", monthParam)
		}
		if month < 1 || month > 12 {
			return model.FinanceFilter{}, fmt.Errorf("month out of range: %d", month)
		}
		filter.Months = append(filter.Months, month)
	}

	return filter, nil
}

// ParseYear extracts the year parameter, defaulting to the current year.
func ParseYear(query url.Values) (int, error) {
	yearParam := query.Get("year")
	if yearParam == "" {
		return time.Now().Year(), nil
	}

	year, err := strconv.Atoi(yearParam)
	if err != nil {
		return 0, fmt.Errorf("invalid year: %s", yearParam)
	}
	return year, nil
}

// ParseDate parses an optional date parameter in "2006-01-02" or RFC3339
// format. A missing parameter yields the zero time.
func ParseDate(param string) (time.Time, error) {
	if param == "" {
		return time.Time{}, nil
	}

	date, err := time.Parse("2006-01-02", param)
	if err != nil {
		date, err = time.Parse(time.RFC3339, param)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid date: %s", param)
		}
	}
	return date.UTC(), nil
}

// IDList extracts a comma-separated ID list parameter.
func IDList(query url.Values, name string) []string {
	return splitList(query.Get(name))
}
