package availability

import (
	"fmt"
	"time"

	"github.com/recruitflow/availability/internal/domain"
)

// Rejection reasons. Each wraps domain.ErrValidation so callers can branch on
// either the specific reason or the whole family.
var (
	ErrDuration = fmt.Errorf("%w: slot must be exactly 1 hour", domain.ErrValidation)
	ErrWeekend  = fmt.Errorf("%w: slots cannot fall on a weekend", domain.ErrValidation)
	ErrCapacity = fmt.Errorf("%w: slot limit reached", domain.ErrValidation)
	ErrOverlap  = fmt.Errorf("%w: slot overlaps an existing one", domain.ErrValidation)
)

// Validate decides whether candidate may join existing.
//
// Checks run in a fixed order and the first failure wins:
// duration, weekday, capacity, overlap. Capacity is checked before any
// overlap work so a full set is rejected regardless of where the new slot
// falls. existing is the candidate's whole set, persisted and staged.
func Validate(p Policy, candidate domain.Interval, existing []domain.Slot) error {
	if candidate.Duration() != p.SlotDuration {
		return ErrDuration
	}
	if isWeekend(candidate.Start.In(p.Zone())) {
		return ErrWeekend
	}
	if len(existing) >= p.MaxSlots {
		return ErrCapacity
	}
	for _, s := range existing {
		if Overlaps(candidate, s.Interval()) {
			return ErrOverlap
		}
	}
	return nil
}

// Overlaps reports whether a and b share any instant other than a common
// boundary. a overlaps b when a starts strictly inside b, ends strictly
// inside b, or covers b entirely. Back-to-back intervals do not overlap.
func Overlaps(a, b domain.Interval) bool {
	switch {
	case strictlyInside(a.Start, b):
		return true
	case strictlyInside(a.End, b):
		return true
	case !a.Start.After(b.Start) && !a.End.Before(b.End):
		return true
	}
	return false
}

func strictlyInside(t time.Time, iv domain.Interval) bool {
	return t.After(iv.Start) && t.Before(iv.End)
}

func isWeekend(t time.Time) bool {
	d := t.Weekday()
	return d == time.Saturday || d == time.Sunday
}
