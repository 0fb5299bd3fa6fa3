package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/recruitflow/availability/internal/domain"
)

// UserRepo reads the accounts provisioned by the external auth service.
type UserRepo interface {
	// GetByID retrieves a user by primary key.
	// Returns domain.ErrNotFound if no user with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.User, error)

	// GetCandidate returns one candidate with derived status and slot count.
	// Returns domain.ErrNotFound if the ID is unknown or not a candidate.
	GetCandidate(ctx context.Context, id uuid.UUID) (domain.CandidateSummary, error)

	// ListCandidates returns every candidate ordered by name.
	ListCandidates(ctx context.Context) ([]domain.CandidateSummary, error)

	// ListCandidatesPaged returns one page of candidates and the total count.
	ListCandidatesPaged(ctx context.Context, p domain.PaginationParams) ([]domain.CandidateSummary, int64, error)
}

// pgUserRepo is the Postgres implementation of UserRepo.
type pgUserRepo struct {
	db db
}

// NewUserRepo constructs a UserRepo backed by the provided db connection.
func NewUserRepo(db db) UserRepo {
	return &pgUserRepo{db: db}
}

// candidateSelect derives status from the presence of a scheduled meeting.
const candidateSelect = `
	SELECT u.id, u.name, u.email, u.role,
	       CASE WHEN EXISTS (
	           SELECT 1 FROM meetings m
	           WHERE m.candidate_id = u.id AND m.status = 'scheduled'
	       ) THEN 'scheduled' ELSE 'available' END AS status,
	       (SELECT count(*) FROM availability_slots s WHERE s.candidate_id = u.id) AS slot_count
	FROM users u
	WHERE u.role = 'candidate'`

func (r *pgUserRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	const q = `SELECT id, name, email, role FROM users WHERE id = @id`

	var (
		u   domain.User
		uid pgtype.UUID
	)
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}).Scan(&uid, &u.Name, &u.Email, &u.Role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, fmt.Errorf("repo.UserRepo.GetByID: %w", domain.ErrNotFound)
		}
		return domain.User{}, fmt.Errorf("repo.UserRepo.GetByID: %w", err)
	}
	u.ID = uuid.UUID(uid.Bytes)
	return u, nil
}

func (r *pgUserRepo) GetCandidate(ctx context.Context, id uuid.UUID) (domain.CandidateSummary, error) {
	row := r.db.QueryRow(ctx, candidateSelect+` AND u.id = @id`, pgx.NamedArgs{"id": id})
	c, err := scanCandidate(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.CandidateSummary{}, fmt.Errorf("repo.UserRepo.GetCandidate: %w", domain.ErrNotFound)
		}
		return domain.CandidateSummary{}, fmt.Errorf("repo.UserRepo.GetCandidate: %w", err)
	}
	return c, nil
}

func (r *pgUserRepo) ListCandidates(ctx context.Context) ([]domain.CandidateSummary, error) {
	out, err := r.listCandidates(ctx, candidateSelect+` ORDER BY u.name, u.id`, pgx.NamedArgs{})
	if err != nil {
		return nil, fmt.Errorf("repo.UserRepo.ListCandidates: %w", err)
	}
	return out, nil
}

func (r *pgUserRepo) ListCandidatesPaged(ctx context.Context, p domain.PaginationParams) ([]domain.CandidateSummary, int64, error) {
	var total int64
	const count = `SELECT count(*) FROM users WHERE role = 'candidate'`
	if err := r.db.QueryRow(ctx, count).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.UserRepo.ListCandidatesPaged: count: %w", err)
	}

	out, err := r.listCandidates(ctx,
		candidateSelect+` ORDER BY u.name, u.id LIMIT @limit OFFSET @offset`,
		pgx.NamedArgs{"limit": p.Limit, "offset": p.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.UserRepo.ListCandidatesPaged: %w", err)
	}
	return out, total, nil
}

func (r *pgUserRepo) listCandidates(ctx context.Context, q string, args pgx.NamedArgs) ([]domain.CandidateSummary, error) {
	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.CandidateSummary
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return out, nil
}

func scanCandidate(s scanner) (domain.CandidateSummary, error) {
	var (
		c     domain.CandidateSummary
		id    pgtype.UUID
		count int64
	)
	if err := s.Scan(&id, &c.Name, &c.Email, &c.Role, &c.Status, &count); err != nil {
		return domain.CandidateSummary{}, err
	}
	c.ID = uuid.UUID(id.Bytes)
	c.SlotCount = int(count)
	return c, nil
}
