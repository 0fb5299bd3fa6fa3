package repo_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recruitflow/availability/internal/domain"
	"github.com/recruitflow/availability/internal/repo"
)

func TestSlotRepo_CreateBatch(t *testing.T) {
	tx := newTestTx(t)
	r := repo.NewSlotRepo(tx)
	ctx := context.Background()
	cand := mustCreateUser(t, tx, "Ada", domain.RoleCandidate)

	got, err := r.CreateBatch(ctx, cand.ID, []domain.Interval{hour(weekday(4, 9)), hour(weekday(3, 9))}, nil)

	require.NoError(t, err)
	require.Len(t, got, 2)
	for _, s := range got {
		assert.NotEqual(t, uuid.UUID{}, s.ID, "ID should be DB-generated UUID")
		assert.Equal(t, cand.ID, s.CandidateID)
		assert.Equal(t, domain.OriginPersisted, s.Origin)
		assert.False(t, s.CreatedAt.IsZero(), "CreatedAt should be set by DB")
	}
	assert.True(t, got[0].StartTime.Equal(weekday(4, 9)))
}

func TestSlotRepo_ListByCandidate_InsertionOrder(t *testing.T) {
	tx := newTestTx(t)
	r := repo.NewSlotRepo(tx)
	ctx := context.Background()
	cand := mustCreateUser(t, tx, "Ada", domain.RoleCandidate)
	other := mustCreateUser(t, tx, "Bob", domain.RoleCandidate)

	_, err := r.CreateBatch(ctx, cand.ID, []domain.Interval{hour(weekday(5, 9))}, nil)
	require.NoError(t, err)
	_, err = r.CreateBatch(ctx, other.ID, []domain.Interval{hour(weekday(3, 9))}, nil)
	require.NoError(t, err)
	_, err = r.CreateBatch(ctx, cand.ID, []domain.Interval{hour(weekday(3, 9))}, nil)
	require.NoError(t, err)

	got, err := r.ListByCandidate(ctx, cand.ID)

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.True(t, got[0].StartTime.Equal(weekday(5, 9)), "first inserted comes first")
	assert.True(t, got[1].StartTime.Equal(weekday(3, 9)))
}

func TestSlotRepo_CreateBatch_CheckSeesExistingAndAborts(t *testing.T) {
	tx := newTestTx(t)
	r := repo.NewSlotRepo(tx)
	ctx := context.Background()
	cand := mustCreateUser(t, tx, "Ada", domain.RoleCandidate)
	_, err := r.CreateBatch(ctx, cand.ID, []domain.Interval{hour(weekday(3, 9))}, nil)
	require.NoError(t, err)

	reject := errors.New("rejected")
	var seen int
	_, err = r.CreateBatch(ctx, cand.ID, []domain.Interval{hour(weekday(3, 10)), hour(weekday(3, 11))},
		func(existing []domain.Slot) error {
			seen = len(existing)
			return reject
		})

	assert.ErrorIs(t, err, reject)
	assert.Equal(t, 1, seen)
	got, err := r.ListByCandidate(ctx, cand.ID)
	require.NoError(t, err)
	assert.Len(t, got, 1, "aborted batch writes nothing")
}

func TestSlotRepo_Delete(t *testing.T) {
	tx := newTestTx(t)
	r := repo.NewSlotRepo(tx)
	ctx := context.Background()
	cand := mustCreateUser(t, tx, "Ada", domain.RoleCandidate)
	created, err := r.CreateBatch(ctx, cand.ID, []domain.Interval{hour(weekday(3, 9)), hour(weekday(3, 10))}, nil)
	require.NoError(t, err)

	require.NoError(t, r.Delete(ctx, cand.ID, created[0].ID))

	got, err := r.ListByCandidate(ctx, cand.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, created[1].ID, got[0].ID)
}

func TestSlotRepo_Delete_OtherCandidatesSlot(t *testing.T) {
	tx := newTestTx(t)
	r := repo.NewSlotRepo(tx)
	ctx := context.Background()
	owner := mustCreateUser(t, tx, "Ada", domain.RoleCandidate)
	intruder := mustCreateUser(t, tx, "Eve", domain.RoleCandidate)
	created, err := r.CreateBatch(ctx, owner.ID, []domain.Interval{hour(weekday(3, 9))}, nil)
	require.NoError(t, err)

	err = r.Delete(ctx, intruder.ID, created[0].ID)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSlotRepo_ListAll(t *testing.T) {
	tx := newTestTx(t)
	r := repo.NewSlotRepo(tx)
	ctx := context.Background()
	a := mustCreateUser(t, tx, "Ada", domain.RoleCandidate)
	b := mustCreateUser(t, tx, "Bob", domain.RoleCandidate)
	_, err := r.CreateBatch(ctx, a.ID, []domain.Interval{hour(weekday(3, 9))}, nil)
	require.NoError(t, err)
	_, err = r.CreateBatch(ctx, b.ID, []domain.Interval{hour(weekday(4, 9)), hour(weekday(4, 10))}, nil)
	require.NoError(t, err)

	got, err := r.ListAll(ctx)

	require.NoError(t, err)
	var mine int
	for _, s := range got {
		if s.CandidateID == a.ID || s.CandidateID == b.ID {
			mine++
		}
	}
	assert.Equal(t, 3, mine)
}
