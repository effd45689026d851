package auth

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/easykanban/easykanban/internal/apperr"
)

type contextKey int

const claimsContextKey contextKey = iota

// ContextWithClaims returns a new context carrying the given claims.
func ContextWithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsContextKey, claims)
}

// ClaimsFromContext extracts the claims from the context, or nil if not present.
func ClaimsFromContext(ctx context.Context) *Claims {
	claims, _ := ctx.Value(claimsContextKey).(*Claims)
	return claims
}

// Middleware authorizes the Authorization header and injects the claims into
// the request context.
func Middleware(svc *Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := svc.Authorize(r.Header.Get("Authorization"))
			if err != nil {
				writeAuthError(w, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(ContextWithClaims(r.Context(), claims)))
		})
	}
}

type errorResponse struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

func writeAuthError(w http.ResponseWriter, err error) {
	status, message := http.StatusUnauthorized, "Unauthorized user"
	if e, ok := apperr.As(err); ok {
		status, message = e.Status, e.Message
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{Message: message, Status: status})
}
