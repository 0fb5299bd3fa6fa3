package domain

import "time"

// ExportRow is a single row in the recruiter's availability export.
// It is a flat, denormalized view: one row per slot, with candidate fields
// repeated for every slot. Candidates with no slots yield one row with nil
// slot times.
type ExportRow struct {
	CandidateID     string
	CandidateName   string
	CandidateEmail  string
	CandidateStatus CandidateStatus

	SlotStart *time.Time
	SlotEnd   *time.Time
}
