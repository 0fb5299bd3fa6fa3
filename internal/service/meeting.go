package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/recruitflow/availability/internal/domain"
	"github.com/recruitflow/availability/internal/repo"
)

// MeetingService serves the dashboard and meeting lifecycle.
type MeetingService struct {
	meetings repo.MeetingRepo
	now      func() time.Time
}

// NewMeetingService constructs a MeetingService. Pass nil now for time.Now.
func NewMeetingService(meetings repo.MeetingRepo, now func() time.Time) *MeetingService {
	if now == nil {
		now = time.Now
	}
	return &MeetingService{meetings: meetings, now: now}
}

// Dashboard returns the caller's meetings split into upcoming and past.
func (s *MeetingService) Dashboard(ctx context.Context, sess domain.Session) (domain.Dashboard, error) {
	all, err := s.meetings.ListByUser(ctx, sess.UserID)
	if err != nil {
		return domain.Dashboard{}, fmt.Errorf("service.MeetingService.Dashboard: %w", err)
	}

	now := s.now()
	d := domain.Dashboard{Upcoming: []domain.Meeting{}, Past: []domain.Meeting{}}
	for _, m := range all {
		if m.StartTime.After(now) {
			d.Upcoming = append(d.Upcoming, m)
		} else {
			d.Past = append(d.Past, m)
		}
	}
	return d, nil
}

// Get returns one meeting the caller takes part in. Meetings of other users
// are reported as not found.
func (s *MeetingService) Get(ctx context.Context, sess domain.Session, id uuid.UUID) (domain.Meeting, error) {
	m, err := s.meetings.GetByID(ctx, id)
	if err != nil {
		return domain.Meeting{}, fmt.Errorf("service.MeetingService.Get: %w", err)
	}
	if !m.HasParticipant(sess.UserID) {
		return domain.Meeting{}, fmt.Errorf("service.MeetingService.Get: %w", domain.ErrNotFound)
	}
	return m, nil
}

// Cancel cancels a scheduled meeting owned by the calling recruiter.
func (s *MeetingService) Cancel(ctx context.Context, sess domain.Session, id uuid.UUID) (domain.Meeting, error) {
	if err := requireRole(sess, domain.RoleRecruiter); err != nil {
		return domain.Meeting{}, fmt.Errorf("service.MeetingService.Cancel: %w", err)
	}
	m, err := s.Get(ctx, sess, id)
	if err != nil {
		return domain.Meeting{}, fmt.Errorf("service.MeetingService.Cancel: %w", err)
	}
	if m.Status != domain.MeetingScheduled {
		return domain.Meeting{}, fmt.Errorf("service.MeetingService.Cancel: %w: meeting is %s", domain.ErrConflict, m.Status)
	}

	updated, err := s.meetings.UpdateStatus(ctx, id, domain.MeetingCancelled)
	if err != nil {
		return domain.Meeting{}, fmt.Errorf("service.MeetingService.Cancel: %w", err)
	}
	return updated, nil
}

// CompleteEnded marks every scheduled meeting that has ended as completed.
// It is run periodically by the sweeper in cmd/api.
func (s *MeetingService) CompleteEnded(ctx context.Context) (int64, error) {
	n, err := s.meetings.CompleteEnded(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("service.MeetingService.CompleteEnded: %w", err)
	}
	return n, nil
}
