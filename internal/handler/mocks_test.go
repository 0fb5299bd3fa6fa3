package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/recruitflow/availability/internal/api"
	"github.com/recruitflow/availability/internal/domain"
	"github.com/recruitflow/availability/internal/handler"
	"github.com/recruitflow/availability/internal/middleware"
	"github.com/recruitflow/availability/internal/service"
)

// Test doubles for the handler's service interfaces. Set only the method
// fields your test needs.

type mockAvailability struct {
	list   func(ctx context.Context, sess domain.Session) ([]domain.Slot, error)
	submit func(ctx context.Context, sess domain.Session, batch []domain.Interval) ([]domain.Slot, error)
	delete func(ctx context.Context, sess domain.Session, id uuid.UUID) error
}

func (m *mockAvailability) List(ctx context.Context, sess domain.Session) ([]domain.Slot, error) {
	return m.list(ctx, sess)
}
func (m *mockAvailability) Submit(ctx context.Context, sess domain.Session, batch []domain.Interval) ([]domain.Slot, error) {
	return m.submit(ctx, sess, batch)
}
func (m *mockAvailability) Delete(ctx context.Context, sess domain.Session, id uuid.UUID) error {
	return m.delete(ctx, sess, id)
}

var _ handler.AvailabilityServicer = (*mockAvailability)(nil)

type mockSchedule struct {
	candidates   func(ctx context.Context, sess domain.Session, p domain.PaginationParams) ([]domain.CandidateSummary, int64, error)
	forCandidate func(ctx context.Context, sess domain.Session, id uuid.UUID) (domain.CandidateAvailability, error)
	match        func(ctx context.Context, sess domain.Session, req service.MatchRequest) (domain.Meeting, error)
}

func (m *mockSchedule) Candidates(ctx context.Context, sess domain.Session, p domain.PaginationParams) ([]domain.CandidateSummary, int64, error) {
	return m.candidates(ctx, sess, p)
}
func (m *mockSchedule) ForCandidate(ctx context.Context, sess domain.Session, id uuid.UUID) (domain.CandidateAvailability, error) {
	return m.forCandidate(ctx, sess, id)
}
func (m *mockSchedule) Match(ctx context.Context, sess domain.Session, req service.MatchRequest) (domain.Meeting, error) {
	return m.match(ctx, sess, req)
}

var _ handler.ScheduleServicer = (*mockSchedule)(nil)

type mockMeetings struct {
	dashboard func(ctx context.Context, sess domain.Session) (domain.Dashboard, error)
	get       func(ctx context.Context, sess domain.Session, id uuid.UUID) (domain.Meeting, error)
	cancel    func(ctx context.Context, sess domain.Session, id uuid.UUID) (domain.Meeting, error)
}

func (m *mockMeetings) Dashboard(ctx context.Context, sess domain.Session) (domain.Dashboard, error) {
	return m.dashboard(ctx, sess)
}
func (m *mockMeetings) Get(ctx context.Context, sess domain.Session, id uuid.UUID) (domain.Meeting, error) {
	return m.get(ctx, sess, id)
}
func (m *mockMeetings) Cancel(ctx context.Context, sess domain.Session, id uuid.UUID) (domain.Meeting, error) {
	return m.cancel(ctx, sess, id)
}

var _ handler.MeetingServicer = (*mockMeetings)(nil)

type mockExport struct {
	export func(ctx context.Context, sess domain.Session) ([]domain.ExportRow, error)
}

func (m *mockExport) Export(ctx context.Context, sess domain.Session) ([]domain.ExportRow, error) {
	return m.export(ctx, sess)
}

var _ handler.ExportServicer = (*mockExport)(nil)

// ---- helpers ---------------------------------------------------------------

var (
	candidateSession = domain.Session{UserID: uuid.New(), Name: "Ada", Email: "ada@example.com", Role: domain.RoleCandidate}
	recruiterSession = domain.Session{UserID: uuid.New(), Name: "Rita", Email: "rita@example.com", Role: domain.RoleRecruiter}
)

// asUser is a stand-in for the session middleware that always authenticates sess.
func asUser(sess domain.Session) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(middleware.WithSession(r.Context(), sess)))
		})
	}
}

// services bundles the mocks so each test sets only what it needs.
type services struct {
	slots    *mockAvailability
	schedule *mockSchedule
	meetings *mockMeetings
	export   *mockExport
}

// newAPI wires a Server with the given mocks into the router, as main.go does.
func newAPI(svcs services, sess domain.Session) http.Handler {
	srv := handler.NewServer(svcs.slots, svcs.schedule, svcs.meetings, svcs.export, nil)
	return srv.Handler(asUser(sess))
}

func do(t *testing.T, h http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	return out
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) api.ErrorDetail {
	t.Helper()
	return decode[api.ErrorResponse](t, rec).Error
}
