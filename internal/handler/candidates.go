package handler

import (
	"net/http"
	"time"

	"github.com/oapi-codegen/runtime"

	"github.com/recruitflow/availability/internal/api"
	"github.com/recruitflow/availability/internal/domain"
	"github.com/recruitflow/availability/internal/service"
)

// ListCandidates handles GET /candidates.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=20, max=100).
func (s *Server) ListCandidates(w http.ResponseWriter, r *http.Request) {
	sess, ok := session(w, r)
	if !ok {
		return
	}

	var page, limit *int
	q := r.URL.Query()
	if err := runtime.BindQueryParameter("form", true, false, "page", q, &page); err != nil {
		requestError(w, "page must be an integer")
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", q, &limit); err != nil {
		requestError(w, "limit must be an integer")
		return
	}
	params := domain.NewPaginationParams(page, limit)

	candidates, total, err := s.schedule.Candidates(r.Context(), sess, params)
	if err != nil {
		s.serviceError(w, r, err, "candidates not found")
		return
	}

	data := make([]api.Candidate, len(candidates))
	for i, c := range candidates {
		data[i] = candidateToResponse(c)
	}
	writeJSON(w, http.StatusOK, api.CandidateList{
		Data: data,
		Pagination: api.Pagination{
			Page:  params.Page,
			Limit: params.Limit,
			Total: int(total),
		},
	})
}

// GetCandidateAvailability handles GET /candidates/{id}/availability.
func (s *Server) GetCandidateAvailability(w http.ResponseWriter, r *http.Request) {
	sess, ok := session(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "candidate")
	if !ok {
		return
	}

	view, err := s.schedule.ForCandidate(r.Context(), sess, id)
	if err != nil {
		s.serviceError(w, r, err, "candidate not found")
		return
	}
	writeJSON(w, http.StatusOK, api.CandidateAvailability{
		Candidate: candidateToResponse(view.Candidate),
		Slots:     slotsToResponse(view.Slots),
		Meetings:  meetingsToResponse(view.Meetings),
	})
}

// MatchSchedule handles POST /schedule/match.
func (s *Server) MatchSchedule(w http.ResponseWriter, r *http.Request) {
	sess, ok := session(w, r)
	if !ok {
		return
	}
	var body api.MatchRequest
	if !decodeBody(w, r, &body) {
		return
	}

	m, err := s.schedule.Match(r.Context(), sess, service.MatchRequest{
		CandidateID: body.CandidateId,
		Duration:    time.Duration(body.DurationMinutes) * time.Minute,
		WindowStart: body.WindowStart,
		WindowEnd:   body.WindowEnd,
	})
	if err != nil {
		s.serviceError(w, r, err, "candidate not found")
		return
	}
	writeJSON(w, http.StatusCreated, meetingToResponse(m))
}
