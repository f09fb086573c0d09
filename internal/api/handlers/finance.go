package handlers

import (
	"net/http"

	"github.com/propoffice/Property-Office-Backend/internal/api/middleware"
	"github.com/propoffice/Property-Office-Backend/internal/api/request"
	"github.com/propoffice/Property-Office-Backend/internal/api/response"
	"github.com/propoffice/Property-Office-Backend/internal/service"
)

// FinanceHandler handles finance summary HTTP requests
type FinanceHandler struct {
	financeService *service.FinanceService
}

// NewFinanceHandler creates a new FinanceHandler
func NewFinanceHandler(financeService *service.FinanceService) *FinanceHandler {
	return &FinanceHandler{
		financeService: financeService,
	}
}

// Summary serves GET /api/finance/summary: the plan-vs-actual summary of
// the caller's visible properties over the requested reporting window.
// An empty visibility scope yields an empty summary with zero stats, not
// an error; an aggregation failure yields a 500 with no partial data.
func (h *FinanceHandler) Summary(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		response.RespondError(w, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	filter, err := request.ParseFinanceFilter(r.URL.Query())
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "Invalid filter", err.Error())
		return
	}

	summary, err := h.financeService.Summarize(filter, caller)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "Failed to compute finance summary", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, summary)
}
