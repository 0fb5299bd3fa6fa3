package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/recruitflow/availability/internal/domain"
)

// BatchCheck inspects a candidate's current slots, read inside the insert
// transaction, and returns an error to abort the whole batch.
type BatchCheck func(existing []domain.Slot) error

// SlotRepo defines the persistence operations for availability slots.
// Every read and write is scoped by candidate to enforce ownership.
type SlotRepo interface {
	// ListByCandidate returns a candidate's slots in insertion order.
	ListByCandidate(ctx context.Context, candidateID uuid.UUID) ([]domain.Slot, error)

	// ListAll returns every slot ordered by candidate, then insertion order.
	ListAll(ctx context.Context) ([]domain.Slot, error)

	// CreateBatch inserts all intervals for a candidate in one transaction.
	// The candidate's rows are locked for the duration, check sees the current
	// set, and nothing is written if check or any insert fails.
	CreateBatch(ctx context.Context, candidateID uuid.UUID, slots []domain.Interval, check BatchCheck) ([]domain.Slot, error)

	// Delete removes one slot owned by candidateID.
	// Returns domain.ErrNotFound if no such slot belongs to that candidate.
	Delete(ctx context.Context, candidateID, slotID uuid.UUID) error
}

// pgSlotRepo is the Postgres implementation of SlotRepo.
type pgSlotRepo struct {
	db db
}

// NewSlotRepo constructs a SlotRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewSlotRepo(db db) SlotRepo {
	return &pgSlotRepo{db: db}
}

const slotColumns = `id, candidate_id, start_time, end_time, created_at`

func (r *pgSlotRepo) ListByCandidate(ctx context.Context, candidateID uuid.UUID) ([]domain.Slot, error) {
	slots, err := listSlots(ctx, r.db, `
		SELECT `+slotColumns+`
		FROM availability_slots
		WHERE candidate_id = @candidate_id
		ORDER BY seq`, pgx.NamedArgs{"candidate_id": candidateID})
	if err != nil {
		return nil, fmt.Errorf("repo.SlotRepo.ListByCandidate: %w", err)
	}
	return slots, nil
}

func (r *pgSlotRepo) ListAll(ctx context.Context) ([]domain.Slot, error) {
	slots, err := listSlots(ctx, r.db, `
		SELECT `+slotColumns+`
		FROM availability_slots
		ORDER BY candidate_id, seq`, pgx.NamedArgs{})
	if err != nil {
		return nil, fmt.Errorf("repo.SlotRepo.ListAll: %w", err)
	}
	return slots, nil
}

// CreateBatch serialises concurrent submissions for the same candidate with a
// transaction-scoped advisory lock keyed on the candidate ID.
func (r *pgSlotRepo) CreateBatch(ctx context.Context, candidateID uuid.UUID, slots []domain.Interval, check BatchCheck) ([]domain.Slot, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("repo.SlotRepo.CreateBatch: begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	const lock = `SELECT pg_advisory_xact_lock(hashtextextended(@candidate_id::text, 0))`
	if _, err := tx.Exec(ctx, lock, pgx.NamedArgs{"candidate_id": candidateID}); err != nil {
		return nil, fmt.Errorf("repo.SlotRepo.CreateBatch: lock: %w", err)
	}

	existing, err := listSlots(ctx, tx, `
		SELECT `+slotColumns+`
		FROM availability_slots
		WHERE candidate_id = @candidate_id
		ORDER BY seq`, pgx.NamedArgs{"candidate_id": candidateID})
	if err != nil {
		return nil, fmt.Errorf("repo.SlotRepo.CreateBatch: %w", err)
	}
	if check != nil {
		if err := check(existing); err != nil {
			return nil, err
		}
	}

	const q = `
		INSERT INTO availability_slots (candidate_id, start_time, end_time)
		VALUES (@candidate_id, @start_time, @end_time)
		RETURNING ` + slotColumns

	created := make([]domain.Slot, 0, len(slots))
	for _, iv := range slots {
		row := tx.QueryRow(ctx, q, pgx.NamedArgs{
			"candidate_id": candidateID,
			"start_time":   iv.Start,
			"end_time":     iv.End,
		})
		s, err := scanSlot(row)
		if err != nil {
			return nil, fmt.Errorf("repo.SlotRepo.CreateBatch: insert: %w", err)
		}
		created = append(created, s)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("repo.SlotRepo.CreateBatch: commit: %w", err)
	}
	return created, nil
}

func (r *pgSlotRepo) Delete(ctx context.Context, candidateID, slotID uuid.UUID) error {
	const q = `DELETE FROM availability_slots WHERE id = @id AND candidate_id = @candidate_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": slotID, "candidate_id": candidateID})
	if err != nil {
		return fmt.Errorf("repo.SlotRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.SlotRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func listSlots(ctx context.Context, q querier, sql string, args pgx.NamedArgs) ([]domain.Slot, error) {
	rows, err := q.Query(ctx, sql, args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var slots []domain.Slot
	for rows.Next() {
		s, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		slots = append(slots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return slots, nil
}

// scanSlot maps a single database row into a persisted domain.Slot.
func scanSlot(s scanner) (domain.Slot, error) {
	var (
		slot        domain.Slot
		id          pgtype.UUID
		candidateID pgtype.UUID
	)
	if err := s.Scan(&id, &candidateID, &slot.StartTime, &slot.EndTime, &slot.CreatedAt); err != nil {
		return domain.Slot{}, err
	}
	slot.ID = uuid.UUID(id.Bytes)
	slot.CandidateID = uuid.UUID(candidateID.Bytes)
	slot.Origin = domain.OriginPersisted
	return slot, nil
}
