package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

type contextKeyType string

const (
	bearerTokenKey contextKeyType = "bearer_token"
	customerIDKey  contextKeyType = "customer_id"
)

// BearerToken extracts the Authorization bearer token and the X-Customer-ID
// header into the request context. The token is not validated here; the
// upstream commerce API owns authentication, this layer only forwards
// credentials.
func BearerToken() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if authHeader := r.Header.Get("Authorization"); authHeader != "" {
				parts := strings.SplitN(authHeader, " ", 2)
				if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
					ctx = context.WithValue(ctx, bearerTokenKey, parts[1])
				}
			}
			if customerID := r.Header.Get("X-Customer-ID"); customerID != "" {
				ctx = context.WithValue(ctx, customerIDKey, customerID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireToken rejects requests that did not carry a bearer token. Mount it
// on route groups that proxy authenticated upstream endpoints (orders,
// addresses, profile).
func RequireToken() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if TokenFromContext(r.Context()) == "" {
				writeAuthError(w, "missing or malformed authorization header")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// TokenFromContext extracts the bearer token from the request context.
func TokenFromContext(ctx context.Context) string {
	if token, ok := ctx.Value(bearerTokenKey).(string); ok {
		return token
	}
	return ""
}

// CustomerIDFromContext extracts the customer ID from the request context.
func CustomerIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(customerIDKey).(string); ok {
		return id
	}
	return ""
}

func writeAuthError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"code":    "UNAUTHORIZED",
		"message": message,
	})
}
