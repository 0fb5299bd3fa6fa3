package service

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/recruitflow/availability/internal/availability"
	"github.com/recruitflow/availability/internal/domain"
	"github.com/recruitflow/availability/internal/repo"
)

// MatchRequest asks for an interview of Duration with a candidate, placed
// inside the daily window [WindowStart, WindowEnd) given as "HH:MM" in the
// policy time zone.
type MatchRequest struct {
	CandidateID uuid.UUID
	Duration    time.Duration
	WindowStart string
	WindowEnd   string
}

// ScheduleService serves the recruiter's candidate views and books meetings
// into candidate availability.
type ScheduleService struct {
	users    repo.UserRepo
	slots    repo.SlotRepo
	meetings repo.MeetingRepo
	policy   availability.Policy
	now      func() time.Time
}

// NewScheduleService constructs a ScheduleService. now is injectable for tests;
// pass nil for time.Now.
func NewScheduleService(users repo.UserRepo, slots repo.SlotRepo, meetings repo.MeetingRepo, policy availability.Policy, now func() time.Time) *ScheduleService {
	if now == nil {
		now = time.Now
	}
	return &ScheduleService{users: users, slots: slots, meetings: meetings, policy: policy, now: now}
}

// Candidates returns one page of candidates with their scheduling status.
func (s *ScheduleService) Candidates(ctx context.Context, sess domain.Session, p domain.PaginationParams) ([]domain.CandidateSummary, int64, error) {
	if err := requireRole(sess, domain.RoleRecruiter); err != nil {
		return nil, 0, fmt.Errorf("service.ScheduleService.Candidates: %w", err)
	}
	out, total, err := s.users.ListCandidatesPaged(ctx, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.ScheduleService.Candidates: %w", err)
	}
	if out == nil {
		out = []domain.CandidateSummary{}
	}
	return out, total, nil
}

// ForCandidate loads a candidate with their slots and meetings.
func (s *ScheduleService) ForCandidate(ctx context.Context, sess domain.Session, id uuid.UUID) (domain.CandidateAvailability, error) {
	if err := requireRole(sess, domain.RoleRecruiter); err != nil {
		return domain.CandidateAvailability{}, fmt.Errorf("service.ScheduleService.ForCandidate: %w", err)
	}

	var out domain.CandidateAvailability
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		c, err := s.users.GetCandidate(gctx, id)
		out.Candidate = c
		return err
	})
	g.Go(func() error {
		slots, err := s.slots.ListByCandidate(gctx, id)
		out.Slots = slots
		return err
	})
	g.Go(func() error {
		meetings, err := s.meetings.ListByUser(gctx, id)
		out.Meetings = meetings
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.CandidateAvailability{}, fmt.Errorf("service.ScheduleService.ForCandidate: %w", err)
	}

	if out.Slots == nil {
		out.Slots = []domain.Slot{}
	}
	if out.Meetings == nil {
		out.Meetings = []domain.Meeting{}
	}
	return out, nil
}

// Match books the earliest interview that fits one of the candidate's future
// slots, the daily window, and the recruiter's calendar.
// A candidate who already has a scheduled meeting, or for whom nothing fits,
// yields domain.ErrConflict.
func (s *ScheduleService) Match(ctx context.Context, sess domain.Session, req MatchRequest) (domain.Meeting, error) {
	if err := requireRole(sess, domain.RoleRecruiter); err != nil {
		return domain.Meeting{}, fmt.Errorf("service.ScheduleService.Match: %w", err)
	}
	window, err := parseWindow(req)
	if err != nil {
		return domain.Meeting{}, fmt.Errorf("service.ScheduleService.Match: %w", err)
	}

	cand, err := s.users.GetCandidate(ctx, req.CandidateID)
	if err != nil {
		return domain.Meeting{}, fmt.Errorf("service.ScheduleService.Match: %w", err)
	}
	if cand.Status == domain.CandidateScheduled {
		return domain.Meeting{}, fmt.Errorf("service.ScheduleService.Match: %w: candidate already has a scheduled meeting", domain.ErrConflict)
	}

	slots, err := s.slots.ListByCandidate(ctx, cand.ID)
	if err != nil {
		return domain.Meeting{}, fmt.Errorf("service.ScheduleService.Match: %w", err)
	}
	busy, err := s.meetings.ListScheduledByRecruiter(ctx, sess.UserID)
	if err != nil {
		return domain.Meeting{}, fmt.Errorf("service.ScheduleService.Match: %w", err)
	}

	at, ok := s.earliestFit(slots, busy, window, req.Duration)
	if !ok {
		return domain.Meeting{}, fmt.Errorf("service.ScheduleService.Match: %w: no availability fits the window", domain.ErrConflict)
	}

	m, err := s.meetings.Create(ctx, domain.Meeting{
		CandidateID: cand.ID,
		RecruiterID: sess.UserID,
		Title:       "Interview with " + cand.Name,
		StartTime:   at.Start,
		EndTime:     at.End,
		Location:    "Video call",
	})
	if err != nil {
		return domain.Meeting{}, fmt.Errorf("service.ScheduleService.Match: %w", err)
	}
	return m, nil
}

// dailyWindow is a time-of-day range in minutes after midnight.
type dailyWindow struct{ from, to int }

func parseWindow(req MatchRequest) (dailyWindow, error) {
	if req.Duration <= 0 || req.Duration%time.Minute != 0 {
		return dailyWindow{}, fmt.Errorf("%w: duration must be a positive number of minutes", domain.ErrValidation)
	}
	from, err := parseClock(req.WindowStart)
	if err != nil {
		return dailyWindow{}, err
	}
	to, err := parseClock(req.WindowEnd)
	if err != nil {
		return dailyWindow{}, err
	}
	if to <= from {
		return dailyWindow{}, fmt.Errorf("%w: window end must be after window start", domain.ErrValidation)
	}
	if time.Duration(to-from)*time.Minute < req.Duration {
		return dailyWindow{}, fmt.Errorf("%w: window is shorter than the meeting", domain.ErrValidation)
	}
	return dailyWindow{from: from, to: to}, nil
}

func parseClock(v string) (int, error) {
	t, err := time.Parse("15:04", v)
	if err != nil {
		return 0, fmt.Errorf("%w: time of day %q must be HH:MM", domain.ErrValidation, v)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// earliestFit walks the slots by start time and returns the first interval of
// length d that lies in a slot, inside the window on that slot's day, after
// now, and clear of every busy meeting.
func (s *ScheduleService) earliestFit(slots []domain.Slot, busy []domain.Meeting, w dailyWindow, d time.Duration) (domain.Interval, bool) {
	now := s.now()
	loc := s.policy.Zone()

	ordered := slices.Clone(slots)
	slices.SortFunc(ordered, func(a, b domain.Slot) int { return a.StartTime.Compare(b.StartTime) })

	for _, slot := range ordered {
		local := slot.StartTime.In(loc)
		midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
		winStart := midnight.Add(time.Duration(w.from) * time.Minute)
		winEnd := midnight.Add(time.Duration(w.to) * time.Minute)

		start := latest(slot.StartTime, winStart, now)
		if t := start.Truncate(time.Minute); !t.Equal(start) {
			start = t.Add(time.Minute)
		}
		limit := earliest(slot.EndTime, winEnd)

		for !start.Add(d).After(limit) {
			iv := domain.Interval{Start: start, End: start.Add(d)}
			clash, hit := firstClash(iv, busy)
			if !hit {
				return iv, true
			}
			start = clash.End
		}
	}
	return domain.Interval{}, false
}

func firstClash(iv domain.Interval, busy []domain.Meeting) (domain.Interval, bool) {
	for _, m := range busy {
		if availability.Overlaps(iv, m.Interval()) {
			return m.Interval(), true
		}
	}
	return domain.Interval{}, false
}

func latest(ts ...time.Time) time.Time {
	out := ts[0]
	for _, t := range ts[1:] {
		if t.After(out) {
			out = t
		}
	}
	return out
}

func earliest(ts ...time.Time) time.Time {
	out := ts[0]
	for _, t := range ts[1:] {
		if t.Before(out) {
			out = t
		}
	}
	return out
}
