package service_test

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/recruitflow/availability/internal/domain"
	"github.com/recruitflow/availability/internal/repo"
)

// Hand-written test doubles. Each method is a function field; set only the
// ones a test needs.

type mockSlotRepo struct {
	listByCandidate func(ctx context.Context, candidateID uuid.UUID) ([]domain.Slot, error)
	listAll         func(ctx context.Context) ([]domain.Slot, error)
	createBatch     func(ctx context.Context, candidateID uuid.UUID, slots []domain.Interval, check repo.BatchCheck) ([]domain.Slot, error)
	delete          func(ctx context.Context, candidateID, slotID uuid.UUID) error
}

func (m *mockSlotRepo) ListByCandidate(ctx context.Context, candidateID uuid.UUID) ([]domain.Slot, error) {
	return m.listByCandidate(ctx, candidateID)
}
func (m *mockSlotRepo) ListAll(ctx context.Context) ([]domain.Slot, error) {
	return m.listAll(ctx)
}
func (m *mockSlotRepo) CreateBatch(ctx context.Context, candidateID uuid.UUID, slots []domain.Interval, check repo.BatchCheck) ([]domain.Slot, error) {
	return m.createBatch(ctx, candidateID, slots, check)
}
func (m *mockSlotRepo) Delete(ctx context.Context, candidateID, slotID uuid.UUID) error {
	return m.delete(ctx, candidateID, slotID)
}

var _ repo.SlotRepo = (*mockSlotRepo)(nil)

type mockUserRepo struct {
	getByID             func(ctx context.Context, id uuid.UUID) (domain.User, error)
	getCandidate        func(ctx context.Context, id uuid.UUID) (domain.CandidateSummary, error)
	listCandidates      func(ctx context.Context) ([]domain.CandidateSummary, error)
	listCandidatesPaged func(ctx context.Context, p domain.PaginationParams) ([]domain.CandidateSummary, int64, error)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	return m.getByID(ctx, id)
}
func (m *mockUserRepo) GetCandidate(ctx context.Context, id uuid.UUID) (domain.CandidateSummary, error) {
	return m.getCandidate(ctx, id)
}
func (m *mockUserRepo) ListCandidates(ctx context.Context) ([]domain.CandidateSummary, error) {
	return m.listCandidates(ctx)
}
func (m *mockUserRepo) ListCandidatesPaged(ctx context.Context, p domain.PaginationParams) ([]domain.CandidateSummary, int64, error) {
	return m.listCandidatesPaged(ctx, p)
}

var _ repo.UserRepo = (*mockUserRepo)(nil)

type mockMeetingRepo struct {
	create                   func(ctx context.Context, m domain.Meeting) (domain.Meeting, error)
	getByID                  func(ctx context.Context, id uuid.UUID) (domain.Meeting, error)
	listByUser               func(ctx context.Context, userID uuid.UUID) ([]domain.Meeting, error)
	listScheduledByRecruiter func(ctx context.Context, recruiterID uuid.UUID) ([]domain.Meeting, error)
	updateStatus             func(ctx context.Context, id uuid.UUID, status domain.MeetingStatus) (domain.Meeting, error)
	completeEnded            func(ctx context.Context, now time.Time) (int64, error)
}

func (m *mockMeetingRepo) Create(ctx context.Context, mt domain.Meeting) (domain.Meeting, error) {
	return m.create(ctx, mt)
}
func (m *mockMeetingRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Meeting, error) {
	return m.getByID(ctx, id)
}
func (m *mockMeetingRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Meeting, error) {
	return m.listByUser(ctx, userID)
}
func (m *mockMeetingRepo) ListScheduledByRecruiter(ctx context.Context, recruiterID uuid.UUID) ([]domain.Meeting, error) {
	return m.listScheduledByRecruiter(ctx, recruiterID)
}
func (m *mockMeetingRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.MeetingStatus) (domain.Meeting, error) {
	return m.updateStatus(ctx, id, status)
}
func (m *mockMeetingRepo) CompleteEnded(ctx context.Context, now time.Time) (int64, error) {
	return m.completeEnded(ctx, now)
}

var _ repo.MeetingRepo = (*mockMeetingRepo)(nil)

// ---- shared fixtures -------------------------------------------------------

var (
	candidate = domain.Session{UserID: uuid.New(), Name: "Ada", Email: "ada@example.com", Role: domain.RoleCandidate}
	recruiter = domain.Session{UserID: uuid.New(), Name: "Rita", Email: "rita@example.com", Role: domain.RoleRecruiter}
)

// day returns 2030-06-<d> hh:mm UTC. June 3 2030 is a Monday.
func day(d, hh, mm int) time.Time {
	return time.Date(2030, time.June, d, hh, mm, 0, 0, time.UTC)
}

func slotAt(owner uuid.UUID, start time.Time) domain.Slot {
	return domain.Slot{
		ID:          uuid.New(),
		CandidateID: owner,
		StartTime:   start,
		EndTime:     start.Add(time.Hour),
		Origin:      domain.OriginPersisted,
	}
}

func hourAt(start time.Time) domain.Interval {
	return domain.Interval{Start: start, End: start.Add(time.Hour)}
}
