package handler

import (
	"net/http"

	"github.com/recruitflow/availability/internal/api"
)

// GetDashboard handles GET /meetings.
func (s *Server) GetDashboard(w http.ResponseWriter, r *http.Request) {
	sess, ok := session(w, r)
	if !ok {
		return
	}
	d, err := s.meetings.Dashboard(r.Context(), sess)
	if err != nil {
		s.serviceError(w, r, err, "meetings not found")
		return
	}
	writeJSON(w, http.StatusOK, api.Dashboard{
		Upcoming: meetingsToResponse(d.Upcoming),
		Past:     meetingsToResponse(d.Past),
	})
}

// GetMeeting handles GET /meetings/{id}.
func (s *Server) GetMeeting(w http.ResponseWriter, r *http.Request) {
	sess, ok := session(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "meeting")
	if !ok {
		return
	}
	m, err := s.meetings.Get(r.Context(), sess, id)
	if err != nil {
		s.serviceError(w, r, err, "meeting not found")
		return
	}
	writeJSON(w, http.StatusOK, meetingToResponse(m))
}

// CancelMeeting handles POST /meetings/{id}/cancel.
func (s *Server) CancelMeeting(w http.ResponseWriter, r *http.Request) {
	sess, ok := session(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "meeting")
	if !ok {
		return
	}
	m, err := s.meetings.Cancel(r.Context(), sess, id)
	if err != nil {
		s.serviceError(w, r, err, "meeting not found")
		return
	}
	writeJSON(w, http.StatusOK, meetingToResponse(m))
}
