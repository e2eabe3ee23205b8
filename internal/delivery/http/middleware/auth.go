package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	h "confdesk/internal/delivery/http/helpers"
	"confdesk/internal/domain"
)

type contextKey string

const userKey contextKey = "user"

// SetUser returns a context with the authenticated user set. Used by auth
// middleware and by tests.
func SetUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// UserFromContext returns the authenticated user from the context, if present.
func UserFromContext(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(userKey).(*domain.User)
	return user, ok && user != nil
}

// RequireUser returns a wrapper that validates the Bearer token, loads the
// full user record, and sets it in the request context. Missing or invalid
// tokens and deactivated accounts get a 401 and next is not called. Loading
// the record (rather than trusting claims) means staff and role changes take
// effect immediately instead of at token expiry.
func RequireUser(verifier domain.TokenVerifier, users domain.UserRepository, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if auth == "" {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing authorization header")
				return
			}
			const prefix = "Bearer "
			if !strings.HasPrefix(auth, prefix) {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid authorization format")
				return
			}
			token := strings.TrimSpace(auth[len(prefix):])
			if token == "" {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing token")
				return
			}
			userID, err := verifier.Verify(token)
			if err != nil {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid or expired token")
				return
			}
			user, err := users.GetByID(r.Context(), userID)
			if err != nil {
				logger.WarnContext(r.Context(), "token user lookup failed", "user_id", userID, "err", err)
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid or expired token")
				return
			}
			if !user.IsActive {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "account is deactivated")
				return
			}
			r = r.WithContext(SetUser(r.Context(), user))
			next(w, r)
		}
	}
}
