package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/metlabs/backend/internal/services"
)

type contextKey string

const (
	// ContextUserID carries the authenticated user's ID.
	ContextUserID contextKey = "userID"
	// ContextEmail carries the authenticated user's email.
	ContextEmail contextKey = "email"
)

// AuthMiddleware gates a route on a valid Bearer session token and places the
// token's identity claims on the request context.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "Authorization header required", http.StatusUnauthorized)
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			http.Error(w, "Invalid authorization header format", http.StatusUnauthorized)
			return
		}

		claims, err := services.VerifyToken(parts[1])
		if err != nil {
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), ContextUserID, claims.UserID)
		ctx = context.WithValue(ctx, ContextEmail, claims.Email)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
