package middleware

import (
	"context"
	"net/http"

	"github.com/propoffice/Property-Office-Backend/internal/api/response"
	"github.com/propoffice/Property-Office-Backend/internal/model"
	"github.com/propoffice/Property-Office-Backend/internal/service"
)

// SessionCookie is the name of the cookie carrying the fernet session token.
const SessionCookie = "session"

type contextKey string

const callerKey contextKey = "caller"

// Session authenticates requests from the session cookie. Requests
// without a valid token are rejected with 401 before any handler runs;
// successful verification attaches the caller identity to the request
// context.
type Session struct {
	authService *service.AuthService
}

// NewSession creates the session middleware backed by the given AuthService.
func NewSession(authService *service.AuthService) *Session {
	return &Session{authService: authService}
}

// Handler is the middleware function for chi.
func (s *Session) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookie)
		if err != nil {
			response.RespondError(w, http.StatusUnauthorized, "Unauthorized", "Missing session")
			return
		}

		caller, err := s.authService.VerifyToken(cookie.Value)
		if err != nil {
			response.RespondError(w, http.StatusUnauthorized, "Unauthorized", "Invalid or expired session")
			return
		}

		ctx := context.WithValue(r.Context(), callerKey, caller)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// CallerFromContext returns the authenticated caller attached by the
// session middleware. The second return is false on routes that did not
// pass through it.
func CallerFromContext(ctx context.Context) (model.Caller, bool) {
	caller, ok := ctx.Value(callerKey).(model.Caller)
	return caller, ok
}

// WithCaller attaches a caller to a context. Intended for tests that
// invoke handlers without the middleware chain.
func WithCaller(ctx context.Context, caller model.Caller) context.Context {
	return context.WithValue(ctx, callerKey, caller)
}
