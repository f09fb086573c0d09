package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/propoffice/Property-Office-Backend/internal/api/middleware"
	"github.com/propoffice/Property-Office-Backend/internal/api/response"
	apperrors "github.com/propoffice/Property-Office-Backend/internal/errors"
	"github.com/propoffice/Property-Office-Backend/internal/model"
	"github.com/propoffice/Property-Office-Backend/internal/service"
)

// AuthHandler handles login, logout, registration and profile requests
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// LoginRequest is the POST /api/login body
type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// RegisterRequest is the POST /api/register body
type RegisterRequest struct {
	Login     string `json:"login"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

// UserResponse is the public shape of a user (no password hash)
type UserResponse struct {
	ID        string     `json:"id"`
	Login     string     `json:"login"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Phone     string     `json:"phone,omitempty"`
	Role      model.Role `json:"role"`
}

func toUserResponse(u model.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Login:     u.Login,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Phone:     u.Phone,
		Role:      u.Role,
	}
}

// Login verifies credentials and sets the session cookie.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	if req.Login == "" || req.Password == "" {
		response.RespondError(w, http.StatusBadRequest, "Login and password are required", nil)
		return
	}

	user, token, err := h.authService.Login(req.Login, req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidCredentials) {
			response.RespondError(w, http.StatusUnauthorized, "Invalid login or password", nil)
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "Login failed", err.Error())
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.authService.SessionTTL().Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})

	response.RespondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"user":    toUserResponse(user),
	})
}

// Logout clears the session cookie.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})

	response.RespondJSON(w, http.StatusOK, map[string]any{"success": true})
}

// Register creates a new owner-role user.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	user, err := h.authService.Register(req.Login, req.Password, req.FirstName, req.LastName, req.Phone)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrMissingRequiredField):
			response.RespondError(w, http.StatusBadRequest, "All fields are required", nil)
		case errors.Is(err, apperrors.ErrDuplicateEntry):
			response.RespondError(w, http.StatusBadRequest, "Login is already taken", nil)
		default:
			response.RespondError(w, http.StatusInternalServerError, "Registration failed", err.Error())
		}
		return
	}

	response.RespondJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"user":    toUserResponse(user),
	})
}

// Me returns the authenticated caller's profile.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		response.RespondError(w, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	user, err := h.authService.GetUser(caller.ID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			response.RespondError(w, http.StatusUnauthorized, "Unauthorized", nil)
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "Failed to load profile", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, toUserResponse(user))
}

// Users returns all users, for the owner filter dropdowns. Restricted to
// privileged roles.
func (h *AuthHandler) Users(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok || !caller.Role.Privileged() {
		response.RespondError(w, http.StatusForbidden, "Insufficient permissions", nil)
		return
	}

	role := model.Role(r.URL.Query().Get("role"))
	users, err := h.authService.ListUsers(role)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "Failed to list users", err.Error())
		return
	}

	result := make([]UserResponse, len(users))
	for i, u := range users {
		result[i] = toUserResponse(u)
	}

	response.RespondJSON(w, http.StatusOK, result)
}
