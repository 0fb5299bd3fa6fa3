package handler

import (
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/recruitflow/availability/internal/api"
	"github.com/recruitflow/availability/internal/domain"
)

// --- mapping helpers --------------------------------------------------------

func slotToResponse(s domain.Slot) api.Slot {
	return api.Slot{
		Id:          s.ID,
		CandidateId: s.CandidateID,
		StartTime:   s.StartTime,
		EndTime:     s.EndTime,
		CreatedAt:   s.CreatedAt,
	}
}

func slotsToResponse(in []domain.Slot) []api.Slot {
	out := make([]api.Slot, len(in))
	for i, s := range in {
		out[i] = slotToResponse(s)
	}
	return out
}

func candidateToResponse(c domain.CandidateSummary) api.Candidate {
	return api.Candidate{
		Id:        c.ID,
		Name:      c.Name,
		Email:     openapi_types.Email(c.Email),
		Status:    string(c.Status),
		SlotCount: c.SlotCount,
	}
}

func participant(u domain.User) api.Participant {
	return api.Participant{Id: u.ID, Name: u.Name, Email: openapi_types.Email(u.Email)}
}

func meetingToResponse(m domain.Meeting) api.Meeting {
	return api.Meeting{
		Id:            m.ID,
		Title:         m.Title,
		StartTime:     m.StartTime,
		EndTime:       m.EndTime,
		Status:        string(m.Status),
		Location:      optional(m.Location),
		VideoCallLink: optional(m.VideoCallLink),
		CalendarLink:  optional(m.CalendarLink),
		Candidate:     participant(m.Candidate),
		Recruiter:     participant(m.Recruiter),
	}
}

func meetingsToResponse(in []domain.Meeting) []api.Meeting {
	out := make([]api.Meeting, len(in))
	for i, m := range in {
		out[i] = meetingToResponse(m)
	}
	return out
}

// optional turns empty strings into nil so they are omitted from JSON.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
