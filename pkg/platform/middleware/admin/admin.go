package admin

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"net/http"

	request "logvault/pkg/platform/middleware/request"
	"logvault/pkg/secrets"
)

type contextKeyAdminActorID struct{}

type contextKeyAdminAuthorized struct{}

// GetAdminActorID retrieves the admin actor identifier from the context.
// Returns empty string if not set or if this is not an admin request.
func GetAdminActorID(ctx context.Context) string {
	if actorID, ok := ctx.Value(contextKeyAdminActorID{}).(string); ok {
		return actorID
	}
	return ""
}

// IsAdminRequest reports whether RequireAdminToken authorized this request.
func IsAdminRequest(ctx context.Context) bool {
	ok, _ := ctx.Value(contextKeyAdminAuthorized{}).(bool)
	return ok
}

// RequireAdminToken guards destructive log operations (clear, capacity
// changes). expectedToken is either the plaintext token or its bcrypt hash.
// An empty expectedToken disables the guard.
func RequireAdminToken(expectedToken string, logger *slog.Logger) func(http.Handler) http.Handler {
	matches := func(token string) bool {
		return subtle.ConstantTimeCompare([]byte(token), []byte(expectedToken)) == 1
	}
	if secrets.IsHash(expectedToken) {
		matches = func(token string) bool {
			return token != "" && secrets.Verify(token, expectedToken) == nil
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if expectedToken == "" {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			token := r.Header.Get("X-Admin-Token")
			if !matches(token) {
				logger.WarnContext(ctx, "admin token mismatch",
					"path", r.URL.Path,
					"request_id", request.GetRequestID(ctx),
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":"unauthorized","error_description":"admin token required"}`))
				return
			}

			ctx = context.WithValue(ctx, contextKeyAdminAuthorized{}, true)
			if actorID := r.Header.Get("X-Admin-Actor-ID"); actorID != "" {
				ctx = context.WithValue(ctx, contextKeyAdminActorID{}, actorID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
