package middleware_test

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recruitflow/availability/internal/middleware"
)

func requestFrom(addr string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/availability", nil)
	req.RemoteAddr = addr
	return req
}

// TestRateLimitHandler_BurstThen429 verifies that a client exceeding its burst
// is rejected with 429 and a Retry-After header.
func TestRateLimitHandler_BurstThen429(t *testing.T) {
	h := middleware.NewRateLimitHandler(0.001, 2, slog.New(slog.DiscardHandler))(trivialHandler)

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, requestFrom("10.0.0.1:1234"))
		require.Equal(t, http.StatusOK, rec.Code, "request %d within burst", i+1)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, requestFrom("10.0.0.1:5678"))

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
	assert.Contains(t, rec.Body.String(), "rate_limited")
}

// TestRateLimitHandler_PerClient verifies that each address has its own bucket.
func TestRateLimitHandler_PerClient(t *testing.T) {
	h := middleware.NewRateLimitHandler(0.001, 1, slog.New(slog.DiscardHandler))(trivialHandler)

	first := httptest.NewRecorder()
	h.ServeHTTP(first, requestFrom("10.0.0.1:1"))
	second := httptest.NewRecorder()
	h.ServeHTTP(second, requestFrom("10.0.0.2:1"))

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusOK, second.Code)
}

// TestRateLimitHandler_Disabled verifies that a zero rate passes everything.
func TestRateLimitHandler_Disabled(t *testing.T) {
	h := middleware.NewRateLimitHandler(0, 0, slog.New(slog.DiscardHandler))(trivialHandler)

	for i := 0; i < 50; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, requestFrom("10.0.0.1:1"))
		require.Equal(t, http.StatusOK, rec.Code)
	}
}
