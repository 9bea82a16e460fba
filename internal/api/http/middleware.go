package http

import (
	"context"
	"net/http"
	"strings"

	"hackmate-backend/internal/security"
)

type contextKey string

const userIDKey contextKey = "user_id"

// AuthMiddleware resolves the acting user from a Bearer access token. Token
// issuance and sessions belong to the identity service; only verification
// happens here.
func AuthMiddleware(verifier security.TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok || token == "" {
				writeJSON(w, http.StatusUnauthorized, errorResponse{
					Error: errorBody{Code: "UNAUTHORIZED", Message: "missing bearer token"},
				})
				return
			}
			claims, err := verifier.ValidateToken(token)
			if err != nil {
				writeJSON(w, http.StatusUnauthorized, errorResponse{
					Error: errorBody{Code: "UNAUTHORIZED", Message: err.Error()},
				})
				return
			}
			ctx := context.WithValue(r.Context(), userIDKey, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// userID returns the acting user set by AuthMiddleware.
func userID(r *http.Request) int32 {
	id, _ := r.Context().Value(userIDKey).(int32)
	return id
}
