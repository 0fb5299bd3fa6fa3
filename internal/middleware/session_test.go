package middleware_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recruitflow/availability/internal/domain"
	"github.com/recruitflow/availability/internal/middleware"
)

type lookupFunc func(ctx context.Context, id uuid.UUID) (domain.User, error)

func (f lookupFunc) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	return f(ctx, id)
}

var _ middleware.UserLookup = lookupFunc(nil)

func sessionHandler(lookup lookupFunc, seen *domain.Session) http.Handler {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, ok := middleware.SessionFromContext(r.Context())
		if ok && seen != nil {
			*seen = sess
		}
		w.WriteHeader(http.StatusOK)
	})
	return middleware.NewSessionHandler(lookup, slog.New(slog.DiscardHandler))(next)
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body.Error.Code
}

// TestSessionHandler_KnownUser verifies the resolved session reaches the handler.
func TestSessionHandler_KnownUser(t *testing.T) {
	user := domain.User{ID: uuid.New(), Name: "Ada", Email: "ada@example.com", Role: domain.RoleCandidate}
	var seen domain.Session
	h := sessionHandler(func(_ context.Context, id uuid.UUID) (domain.User, error) {
		require.Equal(t, user.ID, id)
		return user, nil
	}, &seen)

	req := httptest.NewRequest(http.MethodGet, "/availability", nil)
	req.Header.Set(middleware.UserIDHeader, user.ID.String())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.SessionFor(user), seen)
}

// TestSessionHandler_Rejects401 covers every way a caller fails to identify.
func TestSessionHandler_Rejects401(t *testing.T) {
	unknown := func(context.Context, uuid.UUID) (domain.User, error) {
		return domain.User{}, domain.ErrNotFound
	}
	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"malformed id", "not-a-uuid"},
		{"unknown user", uuid.NewString()},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := sessionHandler(unknown, nil)
			req := httptest.NewRequest(http.MethodGet, "/availability", nil)
			if tc.header != "" {
				req.Header.Set(middleware.UserIDHeader, tc.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, "unauthenticated", errorCode(t, rec))
		})
	}
}

// TestSessionHandler_LookupFailure verifies store errors become 500, not 401.
func TestSessionHandler_LookupFailure(t *testing.T) {
	h := sessionHandler(func(context.Context, uuid.UUID) (domain.User, error) {
		return domain.User{}, errors.New("db down")
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/availability", nil)
	req.Header.Set(middleware.UserIDHeader, uuid.NewString())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

// TestSessionFromContext_Empty verifies the zero case.
func TestSessionFromContext_Empty(t *testing.T) {
	_, ok := middleware.SessionFromContext(context.Background())

	assert.False(t, ok)
}
