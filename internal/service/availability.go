package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/recruitflow/availability/internal/availability"
	"github.com/recruitflow/availability/internal/domain"
	"github.com/recruitflow/availability/internal/repo"
)

// AvailabilityService manages a candidate's own persisted slots.
type AvailabilityService struct {
	slots  repo.SlotRepo
	policy availability.Policy
}

// NewAvailabilityService constructs an AvailabilityService enforcing policy.
func NewAvailabilityService(slots repo.SlotRepo, policy availability.Policy) *AvailabilityService {
	return &AvailabilityService{slots: slots, policy: policy}
}

// List returns the caller's slots in insertion order.
func (s *AvailabilityService) List(ctx context.Context, sess domain.Session) ([]domain.Slot, error) {
	if err := requireRole(sess, domain.RoleCandidate); err != nil {
		return nil, fmt.Errorf("service.AvailabilityService.List: %w", err)
	}
	slots, err := s.slots.ListByCandidate(ctx, sess.UserID)
	if err != nil {
		return nil, fmt.Errorf("service.AvailabilityService.List: %w", err)
	}
	if slots == nil {
		slots = []domain.Slot{}
	}
	return slots, nil
}

// Submit stores a batch of slots for the caller, all or nothing.
// Each slot is validated against the stored slots plus the slots before it
// in the batch, so a batch that would break the rules is rejected whole even
// when another submission landed first.
func (s *AvailabilityService) Submit(ctx context.Context, sess domain.Session, batch []domain.Interval) ([]domain.Slot, error) {
	if err := requireRole(sess, domain.RoleCandidate); err != nil {
		return nil, fmt.Errorf("service.AvailabilityService.Submit: %w", err)
	}
	if len(batch) == 0 {
		return nil, fmt.Errorf("service.AvailabilityService.Submit: %w", availability.ErrNothingToSubmit)
	}

	check := func(existing []domain.Slot) error {
		merged := append(make([]domain.Slot, 0, len(existing)+len(batch)), existing...)
		for i, iv := range batch {
			if err := availability.Validate(s.policy, iv, merged); err != nil {
				return fmt.Errorf("slot %d: %w", i+1, err)
			}
			merged = append(merged, domain.Slot{StartTime: iv.Start, EndTime: iv.End, Origin: domain.OriginStaged})
		}
		return nil
	}

	created, err := s.slots.CreateBatch(ctx, sess.UserID, batch, check)
	if err != nil {
		return nil, fmt.Errorf("service.AvailabilityService.Submit: %w", err)
	}
	return created, nil
}

// Delete removes one of the caller's slots.
func (s *AvailabilityService) Delete(ctx context.Context, sess domain.Session, id uuid.UUID) error {
	if err := requireRole(sess, domain.RoleCandidate); err != nil {
		return fmt.Errorf("service.AvailabilityService.Delete: %w", err)
	}
	if err := s.slots.Delete(ctx, sess.UserID, id); err != nil {
		return fmt.Errorf("service.AvailabilityService.Delete: %w", err)
	}
	return nil
}
