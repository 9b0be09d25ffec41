package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	h "eventregistration/internal/delivery/http/helpers"
	"eventregistration/internal/domain"
)

type contextKey string

const organizerKey contextKey = "organizer"

// SetOrganizer returns a context with the organizer username set. Used by auth middleware.
func SetOrganizer(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, organizerKey, username)
}

// OrganizerFromContext returns the authenticated organizer username from the context, if present.
func OrganizerFromContext(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(organizerKey).(string)
	return username, ok
}

// RequireAuth returns a wrapper that validates the Bearer token and sets the organizer in the request context.
// If the token is missing or invalid, it responds with 401 and does not call next.
func RequireAuth(verifier domain.TokenVerifier, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
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
			username, err := verifier.Verify(token)
			if err != nil {
				logger.Debug("rejected token", "err", err)
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid or expired token")
				return
			}
			r = r.WithContext(SetOrganizer(r.Context(), username))
			next(w, r)
		}
	}
}
