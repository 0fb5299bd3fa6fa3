package domain

import (
	"time"

	"github.com/google/uuid"
)

// MeetingStatus is the lifecycle state of an interview.
type MeetingStatus string

const (
	MeetingScheduled MeetingStatus = "scheduled"
	MeetingCompleted MeetingStatus = "completed"
	MeetingCancelled MeetingStatus = "cancelled"
)

// Meeting is an interview between one candidate and one recruiter.
// Candidate and Recruiter are populated by reads that join users; writes only
// need the IDs.
type Meeting struct {
	ID            uuid.UUID
	CandidateID   uuid.UUID
	RecruiterID   uuid.UUID
	Title         string
	StartTime     time.Time
	EndTime       time.Time
	Status        MeetingStatus
	Location      string
	VideoCallLink string
	CalendarLink  string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Candidate User
	Recruiter User
}

// Interval returns the meeting's time span.
func (m Meeting) Interval() Interval {
	return Interval{Start: m.StartTime, End: m.EndTime}
}

// HasParticipant reports whether userID is the candidate or the recruiter.
func (m Meeting) HasParticipant(userID uuid.UUID) bool {
	return m.CandidateID == userID || m.RecruiterID == userID
}

// Dashboard splits a user's meetings at a point in time.
// A meeting is upcoming when it starts strictly after that point.
type Dashboard struct {
	Upcoming []Meeting
	Past     []Meeting
}

// CandidateStatus is the recruiter-facing scheduling state of a candidate.
type CandidateStatus string

const (
	CandidateAvailable CandidateStatus = "available"
	CandidateScheduled CandidateStatus = "scheduled"
)

// CandidateSummary is one row of the recruiter's candidate list.
type CandidateSummary struct {
	User
	Status    CandidateStatus
	SlotCount int
}

// CandidateAvailability is the recruiter's detail view of one candidate.
type CandidateAvailability struct {
	Candidate CandidateSummary
	Slots     []Slot
	Meetings  []Meeting
}
