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

// PropertyHandler handles property-related HTTP requests
type PropertyHandler struct {
	propertyService *service.PropertyService
}

// NewPropertyHandler creates a new PropertyHandler
func NewPropertyHandler(propertyService *service.PropertyService) *PropertyHandler {
	return &PropertyHandler{
		propertyService: propertyService,
	}
}

// PropertyRequest is the create/update body. Owners is optional on
// update; when present it replaces the whole owner set.
type PropertyRequest struct {
	Name        string             `json:"name"`
	Address     string             `json:"address"`
	AreaSqm     float64            `json:"area_sqm"`
	RentRateUSD float64            `json:"rent_rate_usd"`
	Owners      []model.OwnerShare `json:"owners"`
}

// Properties serves GET /api/properties: the caller's visible properties
// with their owner sets.
func (h *PropertyHandler) Properties(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		response.RespondError(w, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	properties, err := h.propertyService.ListProperties(
		request.IDList(r.URL.Query(), "owners"),
		request.IDList(r.URL.Query(), "properties"),
		caller,
	)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "Failed to retrieve properties", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"properties": properties,
	})
}

// Stats serves GET /api/properties/stats.
func (h *PropertyHandler) Stats(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		response.RespondError(w, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	stats, err := h.propertyService.GetPropertyStats(
		request.IDList(r.URL.Query(), "owners"),
		request.IDList(r.URL.Query(), "properties"),
		caller,
	)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "Failed to compute property stats", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, stats)
}

// CreateProperty serves POST /api/properties (admin/manager only).
func (h *PropertyHandler) CreateProperty(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok || !caller.Role.Privileged() {
		response.RespondError(w, http.StatusForbidden, "Insufficient permissions", nil)
		return
	}

	var req PropertyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	if req.Name == "" || req.Address == "" || req.AreaSqm <= 0 || req.RentRateUSD < 0 {
		response.RespondError(w, http.StatusBadRequest, "Name, address, area and rent rate are required", nil)
		return
	}

	property, err := h.propertyService.CreateProperty(model.Property{
		Name:        req.Name,
		Address:     req.Address,
		AreaSqm:     req.AreaSqm,
		RentRateUSD: req.RentRateUSD,
	}, req.Owners)
	if err != nil {
		respondPropertyError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusCreated, map[string]any{
		"success":  true,
		"property": property,
	})
}

// UpdateProperty serves PUT /api/properties/{id} (admin/manager only).
func (h *PropertyHandler) UpdateProperty(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok || !caller.Role.Privileged() {
		response.RespondError(w, http.StatusForbidden, "Insufficient permissions", nil)
		return
	}

	propertyID := chi.URLParam(r, "id")
	if err := validation.ValidateUUID(propertyID); err != nil {
		response.RespondError(w, http.StatusBadRequest, "Invalid property ID", err.Error())
		return
	}

	var req PropertyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	err := h.propertyService.UpdateProperty(model.Property{
		ID:          propertyID,
		Name:        req.Name,
		Address:     req.Address,
		AreaSqm:     req.AreaSqm,
		RentRateUSD: req.RentRateUSD,
	}, req.Owners)
	if err != nil {
		respondPropertyError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, map[string]any{"success": true})
}

// DeleteProperty serves DELETE /api/properties/{id} (admin only).
func (h *PropertyHandler) DeleteProperty(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok || caller.Role != model.RoleAdmin {
		response.RespondError(w, http.StatusForbidden, "Insufficient permissions", nil)
		return
	}

	propertyID := chi.URLParam(r, "id")
	if err := validation.ValidateUUID(propertyID); err != nil {
		response.RespondError(w, http.StatusBadRequest, "Invalid property ID", err.Error())
		return
	}

	if err := h.propertyService.DeleteProperty(propertyID); err != nil {
		respondPropertyError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, map[string]any{"success": true})
}

func respondPropertyError(w http.ResponseWriter, err error) {
	var validationErr *validation.Error

	switch {
	case errors.Is(err, apperrors.ErrPropertyNotFound):
		response.RespondError(w, http.StatusNotFound, "Property not found", nil)
	case errors.Is(err, apperrors.ErrUserNotFound):
		response.RespondError(w, http.StatusBadRequest, "Owner does not exist", nil)
	case errors.As(err, &validationErr):
		response.RespondError(w, http.StatusBadRequest, "Validation failed", validationErr.Fields)
	default:
		response.RespondError(w, http.StatusInternalServerError, "Property operation failed", err.Error())
	}
}
