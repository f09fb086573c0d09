package handlers

import (
	"database/sql"
	"net/http"

	"github.com/propoffice/Property-Office-Backend/internal/api/response"
	"github.com/propoffice/Property-Office-Backend/internal/database"
)

// SystemHandler handles health and version requests
type SystemHandler struct {
	db *sql.DB
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(db *sql.DB) *SystemHandler {
	return &SystemHandler{db: db}
}

// Health serves GET /api/system/health: liveness plus a database ping.
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := database.HealthCheck(h.db); err != nil {
		response.RespondJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "unhealthy",
			"detail": err.Error(),
		})
		return
	}

	response.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
