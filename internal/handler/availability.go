package handler

import (
	"net/http"

	"github.com/recruitflow/availability/internal/api"
	"github.com/recruitflow/availability/internal/domain"
)

// ListAvailability handles GET /availability.
func (s *Server) ListAvailability(w http.ResponseWriter, r *http.Request) {
	sess, ok := session(w, r)
	if !ok {
		return
	}
	slots, err := s.slots.List(r.Context(), sess)
	if err != nil {
		s.serviceError(w, r, err, "slots not found")
		return
	}
	writeJSON(w, http.StatusOK, api.SlotList{Data: slotsToResponse(slots)})
}

// CreateAvailability handles POST /availability.
func (s *Server) CreateAvailability(w http.ResponseWriter, r *http.Request) {
	sess, ok := session(w, r)
	if !ok {
		return
	}
	var body api.CreateSlotsRequest
	if !decodeBody(w, r, &body) {
		return
	}

	batch := make([]domain.Interval, len(body.Slots))
	for i, in := range body.Slots {
		if in.StartTime.IsZero() || in.EndTime.IsZero() {
			requestError(w, "start_time and end_time are required")
			return
		}
		batch[i] = domain.Interval{Start: in.StartTime, End: in.EndTime}
	}

	created, err := s.slots.Submit(r.Context(), sess, batch)
	if err != nil {
		s.serviceError(w, r, err, "slot not found")
		return
	}
	writeJSON(w, http.StatusCreated, api.SlotList{Data: slotsToResponse(created)})
}

// DeleteAvailability handles DELETE /availability/{id}.
func (s *Server) DeleteAvailability(w http.ResponseWriter, r *http.Request) {
	sess, ok := session(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "slot")
	if !ok {
		return
	}
	if err := s.slots.Delete(r.Context(), sess, id); err != nil {
		s.serviceError(w, r, err, "slot not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
