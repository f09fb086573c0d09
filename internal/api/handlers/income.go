package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/propoffice/Property-Office-Backend/internal/api/middleware"
	"github.com/propoffice/Property-Office-Backend/internal/api/request"
	"github.com/propoffice/Property-Office-Backend/internal/api/response"
	apperrors "github.com/propoffice/Property-Office-Backend/internal/errors"
	"github.com/propoffice/Property-Office-Backend/internal/model"
	"github.com/propoffice/Property-Office-Backend/internal/service"
)

// IncomeHandler handles income-related HTTP requests
type IncomeHandler struct {
	incomeService *service.IncomeService
}

// NewIncomeHandler creates a new IncomeHandler
func NewIncomeHandler(incomeService *service.IncomeService) *IncomeHandler {
	return &IncomeHandler{
		incomeService: incomeService,
	}
}

// Income serves GET /api/income: the caller's visible income rows for a
// year plus summary statistics.
func (h *IncomeHandler) Income(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		response.RespondError(w, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	year, err := request.ParseYear(r.URL.Query())
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "Invalid year", err.Error())
		return
	}

	list, err := h.incomeService.ListIncome(
		year,
		request.IDList(r.URL.Query(), "owners"),
		request.IDList(r.URL.Query(), "properties"),
		caller,
	)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "Failed to retrieve income", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, list)
}

// BulkUpdateRequest is the PATCH /api/income body.
type BulkUpdateRequest struct {
	Updates []model.IncomeUpdate `json:"updates"`
}

// BulkUpdate serves PATCH /api/income (admin/manager only): upserts a
// batch of monthly amounts, deleting rows where the amount is zero.
func (h *IncomeHandler) BulkUpdate(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok || !caller.Role.Privileged() {
		response.RespondError(w, http.StatusForbidden, "Insufficient permissions", nil)
		return
	}

	var req BulkUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	if req.Updates == nil {
		response.RespondError(w, http.StatusBadRequest, "Updates array is required", nil)
		return
	}

	updated, err := h.incomeService.BulkUpsertIncome(req.Updates)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInvalidMonth),
			errors.Is(err, apperrors.ErrNegativeAmount),
			errors.Is(err, apperrors.ErrPropertyNotFound):
			response.RespondError(w, http.StatusBadRequest, "Invalid income update", err.Error())
		default:
			response.RespondError(w, http.StatusInternalServerError, "Failed to update income", err.Error())
		}
		return
	}

	response.RespondJSON(w, http.StatusOK, map[string]any{
		"message": "Income updated successfully",
		"updated": updated,
	})
}
