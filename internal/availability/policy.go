// Package availability holds the candidate slot rules and the client-side
// workspace that stages slots before they are submitted to the API.
// Nothing in this package talks to a database; the workspace reaches the
// server only through the Backend interface.
package availability

import (
	"fmt"
	"time"
)

const (
	// DefaultSlotDuration is the fixed length of every availability slot.
	DefaultSlotDuration = time.Hour

	// DefaultMaxSlots caps how many slots (persisted plus staged) a candidate holds.
	DefaultMaxSlots = 5
)

// Policy carries the constants the validator enforces.
// Location decides which calendar day a slot falls on for the weekend rule.
type Policy struct {
	SlotDuration time.Duration
	MaxSlots     int
	Location     *time.Location
}

// DefaultPolicy returns the standard policy evaluated in loc.
// A nil loc means UTC.
func DefaultPolicy(loc *time.Location) Policy {
	if loc == nil {
		loc = time.UTC
	}
	return Policy{
		SlotDuration: DefaultSlotDuration,
		MaxSlots:     DefaultMaxSlots,
		Location:     loc,
	}
}

// PolicyForZone is DefaultPolicy for an IANA zone name such as "Europe/Berlin".
func PolicyForZone(name string) (Policy, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return Policy{}, fmt.Errorf("availability.PolicyForZone: %w", err)
	}
	return DefaultPolicy(loc), nil
}

// Zone returns the policy location, defaulting to UTC.
func (p Policy) Zone() *time.Location {
	if p.Location == nil {
		return time.UTC
	}
	return p.Location
}
