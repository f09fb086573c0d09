package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/propoffice/Property-Office-Backend/internal/api/middleware"
	"github.com/propoffice/Property-Office-Backend/internal/api/request"
	"github.com/propoffice/Property-Office-Backend/internal/api/response"
	apperrors "github.com/propoffice/Property-Office-Backend/internal/errors"
	"github.com/propoffice/Property-Office-Backend/internal/model"
	"github.com/propoffice/Property-Office-Backend/internal/service"
	"github.com/propoffice/Property-Office-Backend/internal/validation"
)

// ExpenseHandler handles expense-related HTTP requests
type ExpenseHandler struct {
	expenseService *service.ExpenseService
}

// NewExpenseHandler creates a new ExpenseHandler
func NewExpenseHandler(expenseService *service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{
		expenseService: expenseService,
	}
}

// parseExpenseQuery extracts the shared listing/stats filters.
func parseExpenseQuery(r *http.Request) (service.ExpenseQuery, error) {
	query := r.URL.Query()

	dateFrom, err := request.ParseDate(query.Get("dateFrom"))
	if err != nil {
		return service.ExpenseQuery{}, err
	}

	dateTo, err := request.ParseDate(query.Get("dateTo"))
	if err != nil {
		return service.ExpenseQuery{}, err
	}

	if !dateFrom.IsZero() && !dateTo.IsZero() && dateFrom.After(dateTo) {
		return service.ExpenseQuery{}, apperrors.ErrInvalidDateRange
	}

	return service.ExpenseQuery{
		Owners:     request.IDList(query, "owners"),
		Properties: request.IDList(query, "properties"),
		Types:      request.IDList(query, "types"),
		DateFrom:   dateFrom,
		DateTo:     dateTo,
	}, nil
}

// Expenses serves GET /api/expenses.
func (h *ExpenseHandler) Expenses(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		response.RespondError(w, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	query, err := parseExpenseQuery(r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "Invalid filter", err.Error())
		return
	}

	expenses, err := h.expenseService.ListExpenses(query, caller)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "Failed to retrieve expenses", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, map[string]any{"expenses": expenses})
}

// Stats serves GET /api/expenses/stats.
func (h *ExpenseHandler) Stats(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		response.RespondError(w, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	query, err := parseExpenseQuery(r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "Invalid filter", err.Error())
		return
	}

	stats, err := h.expenseService.GetExpenseStats(query, caller)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "Failed to compute expense stats", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, stats)
}

// ExpenseRequest is the create/update body.
type ExpenseRequest struct {
	PropertyID string  `json:"property_id"`
	TypeID     string  `json:"type_id"`
	Date       string  `json:"date"`
	AmountUSD  float64 `json:"amount_usd"`
	Comment    string  `json:"comment"`
}

func (req ExpenseRequest) toExpense() (model.Expense, error) {
	if req.PropertyID == "" || req.TypeID == "" || req.Date == "" {
		return model.Expense{}, apperrors.ErrMissingRequiredField
	}

	date, err := request.ParseDate(req.Date)
	if err != nil {
		return model.Expense{}, err
	}

	return model.Expense{
		PropertyID: req.PropertyID,
		TypeID:     req.TypeID,
		Date:       date,
		AmountUSD:  req.AmountUSD,
		Comment:    req.Comment,
	}, nil
}

// CreateExpense serves POST /api/expenses (admin/manager only).
func (h *ExpenseHandler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok || !caller.Role.Privileged() {
		response.RespondError(w, http.StatusForbidden, "Insufficient permissions", nil)
		return
	}

	var req ExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	expense, err := req.toExpense()
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "Invalid expense", err.Error())
		return
	}

	created, err := h.expenseService.CreateExpense(expense, caller)
	if err != nil {
		respondExpenseError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusCreated, created)
}

// UpdateExpense serves PUT /api/expenses/{id} (admin/manager only).
func (h *ExpenseHandler) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok || !caller.Role.Privileged() {
		response.RespondError(w, http.StatusForbidden, "Insufficient permissions", nil)
		return
	}

	expenseID := chi.URLParam(r, "id")
	if err := validation.ValidateUUID(expenseID); err != nil {
		response.RespondError(w, http.StatusBadRequest, "Invalid expense ID", err.Error())
		return
	}

	var req ExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	expense, err := req.toExpense()
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "Invalid expense", err.Error())
		return
	}
	expense.ID = expenseID

	updated, err := h.expenseService.UpdateExpense(expense)
	if err != nil {
		respondExpenseError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, updated)
}

// DeleteExpense serves DELETE /api/expenses/{id} (admin/manager only).
func (h *ExpenseHandler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok || !caller.Role.Privileged() {
		response.RespondError(w, http.StatusForbidden, "Insufficient permissions", nil)
		return
	}

	expenseID := chi.URLParam(r, "id")
	if err := validation.ValidateUUID(expenseID); err != nil {
		response.RespondError(w, http.StatusBadRequest, "Invalid expense ID", err.Error())
		return
	}

	if err := h.expenseService.DeleteExpense(expenseID); err != nil {
		respondExpenseError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, map[string]any{"success": true})
}

// ExpenseTypes serves GET /api/expense-types.
func (h *ExpenseHandler) ExpenseTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.expenseService.ListExpenseTypes()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "Failed to retrieve expense types", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, map[string]any{"expenseTypes": types})
}

// ExpenseTypeRequest is the POST /api/expense-types body.
type ExpenseTypeRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CreateExpenseType serves POST /api/expense-types (admin only).
func (h *ExpenseHandler) CreateExpenseType(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok || caller.Role != model.RoleAdmin {
		response.RespondError(w, http.StatusForbidden, "Only admins can create expense types", nil)
		return
	}

	var req ExpenseTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	created, err := h.expenseService.CreateExpenseType(req.Name, req.Description)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrMissingRequiredField):
			response.RespondError(w, http.StatusBadRequest, "Name is required", nil)
		case errors.Is(err, apperrors.ErrDuplicateEntry):
			response.RespondError(w, http.StatusBadRequest, "Expense type with this name already exists", nil)
		default:
			response.RespondError(w, http.StatusInternalServerError, "Failed to create expense type", err.Error())
		}
		return
	}

	response.RespondJSON(w, http.StatusCreated, created)
}

func respondExpenseError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperrors.ErrExpenseNotFound):
		response.RespondError(w, http.StatusNotFound, "Expense not found", nil)
	case errors.Is(err, apperrors.ErrPropertyNotFound):
		response.RespondError(w, http.StatusBadRequest, "Property does not exist", nil)
	case errors.Is(err, apperrors.ErrNegativeAmount):
		response.RespondError(w, http.StatusBadRequest, "Amount cannot be negative", nil)
	default:
		response.RespondError(w, http.StatusInternalServerError, "Expense operation failed", err.Error())
	}
}
