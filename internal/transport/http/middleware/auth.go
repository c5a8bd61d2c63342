package middleware

import (
	"context"
	"errors"
	"net/http"

	"minitweet/internal/httputil"
	"minitweet/internal/metrics"
	"minitweet/internal/model"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const (
	// UserIDKey is the context key for the authenticated user's ID
	UserIDKey contextKey = "user_id"
)

// TokenVerifier resolves a session token to the user id it was issued for.
type TokenVerifier interface {
	Verify(token string) (int64, error)
}

// AuthMiddleware creates a middleware that admits only requests carrying a
// valid session token. The Authorization header holds the raw token; no
// scheme prefix is expected.
func AuthMiddleware(verifier TokenVerifier, recorder metrics.Recorder) func(http.Handler) http.Handler {
	if recorder == nil {
		recorder = metrics.Nop{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := r.Header.Get("Authorization")
			if tokenString == "" {
				recorder.RecordAuthFailure("missing_token")
				httputil.WriteUnauthorized(w, "Unauthorized")
				return
			}

			userID, err := verifier.Verify(tokenString)
			if err != nil {
				reason := "invalid_token"
				if !errors.Is(err, model.ErrInvalidToken) {
					reason = "verify_error"
				}
				recorder.RecordAuthFailure(reason)
				httputil.WriteUnauthorized(w, "Unauthorized")
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserIDFromContext extracts the user ID from the request context
// Returns the user ID and true if found, or 0 and false if not found
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(UserIDKey).(int64)
	return userID, ok
}
