package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/propoffice/Property-Office-Backend/internal/api/middleware"
	"github.com/propoffice/Property-Office-Backend/internal/model"
	"github.com/propoffice/Property-Office-Backend/internal/testutil"
)

// TestFinanceHandler_Summary tests the finance summary endpoint.
//
// WHY: The endpoint is the one read surface of the aggregation engine.
// These cases pin the wire format, the authentication requirement and the
// parameter validation responses.
func TestFinanceHandler_Summary(t *testing.T) {
	setupHandler := func(t *testing.T) (*FinanceHandler, *sql.DB) {
		t.Helper()
		db := testutil.SetupTestDB(t)
		fs := testutil.NewTestFinanceService(t, db)
		return NewFinanceHandler(fs), db
	}

	t.Run("returns summary and stats for an authenticated caller", func(t *testing.T) {
		handler, db := setupHandler(t)

		manager := testutil.CreateUser(t, db, model.RoleManager)
		property := testutil.NewProperty().WithRentRate(1000).Build(t, db)
		testutil.AddIncome(t, db, property.ID, 2024, 1, 950)

		req := httptest.NewRequest(http.MethodGet, "/api/finance/summary?year=2024&months=1", nil)
		req = req.WithContext(middleware.WithCaller(req.Context(), testutil.Caller(manager)))
		w := httptest.NewRecorder()

		handler.Summary(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response model.FinanceSummary
		if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}

		if len(response.Summary) != 1 {
			t.Fatalf("Expected 1 summary line, got %d", len(response.Summary))
		}
		if response.Summary[0].ExpectedIncome != 1000 {
			t.Errorf("Expected expected_income 1000, got %v", response.Summary[0].ExpectedIncome)
		}
		if response.Summary[0].ActualIncome != 950 {
			t.Errorf("Expected actual_income 950, got %v", response.Summary[0].ActualIncome)
		}
		if response.Stats.OverallPlanPercentage != 95 {
			t.Errorf("Expected overall_plan_percentage 95, got %v", response.Stats.OverallPlanPercentage)
		}
	})

	t.Run("emits snake_case field names", func(t *testing.T) {
		handler, db := setupHandler(t)

		manager := testutil.CreateUser(t, db, model.RoleManager)
		testutil.NewProperty().WithRentRate(1000).Build(t, db)

		req := httptest.NewRequest(http.MethodGet, "/api/finance/summary?year=2024", nil)
		req = req.WithContext(middleware.WithCaller(req.Context(), testutil.Caller(manager)))
		w := httptest.NewRecorder()

		handler.Summary(w, req)

		var raw struct {
			Summary []map[string]any `json:"summary"`
			Stats   map[string]any   `json:"stats"`
		}
		if err := json.NewDecoder(w.Body).Decode(&raw); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}

		for _, key := range []string{"property_id", "expected_income", "actual_income", "actual_expenses", "delta", "plan_percentage"} {
			if _, ok := raw.Summary[0][key]; !ok {
				t.Errorf("Expected summary key %q, got %v", key, raw.Summary[0])
			}
		}
		if _, ok := raw.Stats["overall_plan_percentage"]; !ok {
			t.Errorf("Expected stats key overall_plan_percentage, got %v", raw.Stats)
		}
	})

	t.Run("rejects unauthenticated requests", func(t *testing.T) {
		handler, _ := setupHandler(t)

		req := httptest.NewRequest(http.MethodGet, "/api/finance/summary", nil)
		w := httptest.NewRecorder()

		handler.Summary(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("Expected 401, got %d", w.Code)
		}
	})

	t.Run("rejects invalid filter parameters", func(t *testing.T) {
		handler, db := setupHandler(t)

		manager := testutil.CreateUser(t, db, model.RoleManager)

		for _, query := range []string{"?year=abc", "?months=13", "?months=x"} {
			req := httptest.NewRequest(http.MethodGet, "/api/finance/summary"+query, nil)
			req = req.WithContext(middleware.WithCaller(req.Context(), testutil.Caller(manager)))
			w := httptest.NewRecorder()

			handler.Summary(w, req)

			if w.Code != http.StatusBadRequest {
				t.Errorf("Expected 400 for %s, got %d", query, w.Code)
			}
		}
	})

	t.Run("returns empty summary for a caller with no scope", func(t *testing.T) {
		handler, db := setupHandler(t)

		owner := testutil.CreateUser(t, db, model.RoleOwner)
		testutil.NewProperty().WithRentRate(1000).Build(t, db)

		req := httptest.NewRequest(http.MethodGet, "/api/finance/summary?year=2024", nil)
		req = req.WithContext(middleware.WithCaller(req.Context(), testutil.Caller(owner)))
		w := httptest.NewRecorder()

		handler.Summary(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response model.FinanceSummary
		if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if len(response.Summary) != 0 {
			t.Errorf("Expected empty summary, got %d lines", len(response.Summary))
		}
		if response.Stats != (model.FinanceStats{}) {
			t.Errorf("Expected zero stats, got %+v", response.Stats)
		}
	})
}
