// Package api defines the JSON bodies exchanged over the HTTP API. The server
// handlers and internal/client share these types so both ends agree on the
// wire format described in openapi/openapi.yaml.
package api

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ErrorDetail is the machine-readable code and human message of a failure.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps every non-2xx response body.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// Error codes carried in ErrorDetail.Code.
const (
	CodeValidation      = "validation_error"
	CodeNotFound        = "not_found"
	CodeForbidden       = "forbidden"
	CodeConflict        = "conflict"
	CodeUnauthenticated = "unauthenticated"
	CodeRateLimited     = "rate_limited"
	CodeInternal        = "internal_error"
)

// HealthResponse is returned by GET /healthz.
type HealthResponse struct {
	Status string `json:"status"`
}

// Pagination describes the page returned by a list endpoint.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// Slot is a persisted availability slot.
type Slot struct {
	Id          openapi_types.UUID `json:"id"`
	CandidateId openapi_types.UUID `json:"candidate_id"`
	StartTime   time.Time          `json:"start_time"`
	EndTime     time.Time          `json:"end_time"`
	CreatedAt   time.Time          `json:"created_at"`
}

// SlotInput is one slot in a submission.
type SlotInput struct {
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

// CreateSlotsRequest is the body of POST /availability.
type CreateSlotsRequest struct {
	Slots []SlotInput `json:"slots"`
}

// SlotList is the body of GET /availability and the 201 of POST /availability.
type SlotList struct {
	Data []Slot `json:"data"`
}

// Candidate is one row of the recruiter's candidate list.
type Candidate struct {
	Id        openapi_types.UUID  `json:"id"`
	Name      string              `json:"name"`
	Email     openapi_types.Email `json:"email"`
	Status    string              `json:"status"`
	SlotCount int                 `json:"slot_count"`
}

// CandidateList is the body of GET /candidates.
type CandidateList struct {
	Data       []Candidate `json:"data"`
	Pagination Pagination  `json:"pagination"`
}

// Participant is a meeting attendee.
type Participant struct {
	Id    openapi_types.UUID  `json:"id"`
	Name  string              `json:"name"`
	Email openapi_types.Email `json:"email"`
}

// Meeting is an interview with both participants.
type Meeting struct {
	Id            openapi_types.UUID `json:"id"`
	Title         string             `json:"title"`
	StartTime     time.Time          `json:"start_time"`
	EndTime       time.Time          `json:"end_time"`
	Status        string             `json:"status"`
	Location      *string            `json:"location,omitempty"`
	VideoCallLink *string            `json:"video_call_link,omitempty"`
	CalendarLink  *string            `json:"calendar_link,omitempty"`
	Candidate     Participant        `json:"candidate"`
	Recruiter     Participant        `json:"recruiter"`
}

// Dashboard is the body of GET /meetings.
type Dashboard struct {
	Upcoming []Meeting `json:"upcoming"`
	Past     []Meeting `json:"past"`
}

// CandidateAvailability is the body of GET /candidates/{id}/availability.
type CandidateAvailability struct {
	Candidate Candidate `json:"candidate"`
	Slots     []Slot    `json:"slots"`
	Meetings  []Meeting `json:"meetings"`
}

// MatchRequest is the body of POST /schedule/match.
type MatchRequest struct {
	CandidateId     openapi_types.UUID `json:"candidate_id"`
	DurationMinutes int                `json:"duration_minutes"`
	WindowStart     string             `json:"window_start"`
	WindowEnd       string             `json:"window_end"`
}

// ExportRow is one row of GET /export.
type ExportRow struct {
	CandidateId     openapi_types.UUID  `json:"candidate_id"`
	CandidateName   string              `json:"candidate_name"`
	CandidateEmail  openapi_types.Email `json:"candidate_email"`
	CandidateStatus string              `json:"candidate_status"`
	SlotStart       *time.Time          `json:"slot_start,omitempty"`
	SlotEnd         *time.Time          `json:"slot_end,omitempty"`
}

// ExportFormat selects the GET /export representation.
type ExportFormat string

const (
	Csv  ExportFormat = "csv"
	Json ExportFormat = "json"
)
