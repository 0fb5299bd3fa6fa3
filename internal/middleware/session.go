package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/recruitflow/availability/internal/api"
	"github.com/recruitflow/availability/internal/domain"
)

// UserIDHeader carries the authenticated user's ID, set by the upstream
// auth gateway.
const UserIDHeader = "X-User-Id"

// UserLookup resolves the user behind a session header.
// repo.UserRepo satisfies it.
type UserLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.User, error)
}

type sessionKey struct{}

// WithSession returns a copy of ctx carrying sess.
func WithSession(ctx context.Context, sess domain.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, sess)
}

// SessionFromContext returns the session stored by NewSessionHandler.
func SessionFromContext(ctx context.Context) (domain.Session, bool) {
	sess, ok := ctx.Value(sessionKey{}).(domain.Session)
	return sess, ok
}

// NewSessionHandler returns a middleware that resolves UserIDHeader to a
// domain.Session and stores it in the request context. Requests without the
// header, with a malformed ID, or naming an unknown user get 401.
func NewSessionHandler(users UserLookup, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get(UserIDHeader)
			if raw == "" {
				writeError(w, http.StatusUnauthorized, api.CodeUnauthenticated, "missing "+UserIDHeader+" header")
				return
			}
			id, err := uuid.Parse(raw)
			if err != nil {
				writeError(w, http.StatusUnauthorized, api.CodeUnauthenticated, "malformed "+UserIDHeader+" header")
				return
			}

			u, err := users.GetByID(r.Context(), id)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					writeError(w, http.StatusUnauthorized, api.CodeUnauthenticated, "unknown user")
					return
				}
				log.ErrorContext(r.Context(), "session lookup failed", "error", err)
				writeError(w, http.StatusInternalServerError, api.CodeInternal, "internal server error")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), domain.SessionFor(u))))
		})
	}
}

// writeError writes the API's standard error envelope.
func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(api.ErrorResponse{Error: api.ErrorDetail{Code: code, Message: message}})
}
