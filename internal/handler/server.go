// Package handler implements the HTTP handlers for the availability API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, availability.go, etc.) but share the same Server struct so
// they can access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/recruitflow/availability/internal/domain"
	"github.com/recruitflow/availability/internal/service"
)

// AvailabilityServicer defines the candidate slot operations the handlers use.
// Defining the interface here (in the consumer package) lets handler tests
// inject a mock without touching the database or service layer.
type AvailabilityServicer interface {
	List(ctx context.Context, sess domain.Session) ([]domain.Slot, error)
	Submit(ctx context.Context, sess domain.Session, batch []domain.Interval) ([]domain.Slot, error)
	Delete(ctx context.Context, sess domain.Session, id uuid.UUID) error
}

// ScheduleServicer defines the recruiter candidate and matching operations.
type ScheduleServicer interface {
	Candidates(ctx context.Context, sess domain.Session, p domain.PaginationParams) ([]domain.CandidateSummary, int64, error)
	ForCandidate(ctx context.Context, sess domain.Session, id uuid.UUID) (domain.CandidateAvailability, error)
	Match(ctx context.Context, sess domain.Session, req service.MatchRequest) (domain.Meeting, error)
}

// MeetingServicer defines the dashboard and meeting operations.
type MeetingServicer interface {
	Dashboard(ctx context.Context, sess domain.Session) (domain.Dashboard, error)
	Get(ctx context.Context, sess domain.Session, id uuid.UUID) (domain.Meeting, error)
	Cancel(ctx context.Context, sess domain.Session, id uuid.UUID) (domain.Meeting, error)
}

// ExportServicer defines the export operation.
type ExportServicer interface {
	Export(ctx context.Context, sess domain.Session) ([]domain.ExportRow, error)
}

// Server holds the dependencies of every endpoint.
type Server struct {
	slots    AvailabilityServicer
	schedule ScheduleServicer
	meetings MeetingServicer
	export   ExportServicer
	log      *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
// A nil logger falls back to slog.Default().
func NewServer(slots AvailabilityServicer, schedule ScheduleServicer, meetings MeetingServicer, export ExportServicer, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{slots: slots, schedule: schedule, meetings: meetings, export: export, log: log}
}

// NewHealthHandler returns a Server for health-check-only use.
func NewHealthHandler() *Server {
	return NewServer(nil, nil, nil, nil, nil)
}

// Handler returns the API router. Health and the OpenAPI document are public;
// every other route runs behind auth, which must place a domain.Session in the
// request context (see middleware.NewSessionHandler).
func (s *Server) Handler(auth func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Group(func(r chi.Router) {
		r.Use(auth)

		r.Get("/availability", s.ListAvailability)
		r.Post("/availability", s.CreateAvailability)
		r.Delete("/availability/{id}", s.DeleteAvailability)

		r.Get("/candidates", s.ListCandidates)
		r.Get("/candidates/{id}/availability", s.GetCandidateAvailability)
		r.Post("/schedule/match", s.MatchSchedule)

		r.Get("/meetings", s.GetDashboard)
		r.Get("/meetings/{id}", s.GetMeeting)
		r.Post("/meetings/{id}/cancel", s.CancelMeeting)

		r.Get("/export", s.GetExport)
	})
	return r
}
