package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"healthlink/internal/auth"
)

// TokenValidator validates a bearer token and returns the session claims it
// carries. Implemented by the auth token service.
type TokenValidator interface {
	Validate(tokenString string) (auth.Claims, error)
}

type contextKeyClaims struct{}

// ContextKeyClaims is exported for tests that build contexts directly.
var ContextKeyClaims = contextKeyClaims{}

// GetClaims retrieves the authenticated session claims from the context.
func GetClaims(ctx context.Context) (auth.Claims, bool) {
	claims, ok := ctx.Value(ContextKeyClaims).(auth.Claims)
	return claims, ok
}

// RequireAuth rejects requests without a valid bearer token and injects the
// decoded claims into the request context. No storage round-trip happens
// here; the token alone reconstructs the session.
func RequireAuth(validator TokenValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || token == "" {
				logger.WarnContext(ctx, "unauthorized access - missing token",
					"request_id", GetRequestID(ctx),
				)
				writeUnauthorized(w)
				return
			}

			claims, err := validator.Validate(token)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - invalid token",
					"error", err,
					"request_id", GetRequestID(ctx),
				)
				writeUnauthorized(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(ctx, ContextKeyClaims, claims)))
		})
	}
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"unauthorized","error_description":"Invalid or expired token"}`))
}
