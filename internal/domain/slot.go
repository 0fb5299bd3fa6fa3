// Package domain contains the core data types for the availability service.
// This package depends only on google/uuid and is imported by every other
// internal package (repo, service, handler, availability, client).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Origin tells whether a slot has been accepted by the backend or only
// exists in a client's local staging area.
type Origin string

const (
	OriginPersisted Origin = "persisted"
	OriginStaged    Origin = "staged"
)

// Interval is a half-open span of absolute time [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// Duration returns End - Start.
func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// Slot is one availability window declared by a candidate.
// ID is server-assigned for persisted slots and generated locally for staged
// ones; CandidateID and CreatedAt are zero for staged slots.
type Slot struct {
	ID          uuid.UUID `json:"id"`
	CandidateID uuid.UUID `json:"candidate_id"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Origin      Origin    `json:"origin"`
	CreatedAt   time.Time `json:"created_at"`
}

// Interval returns the slot's time span.
func (s Slot) Interval() Interval {
	return Interval{Start: s.StartTime, End: s.EndTime}
}
