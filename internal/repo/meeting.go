package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/recruitflow/availability/internal/domain"
)

// MeetingRepo defines the persistence operations for interviews.
type MeetingRepo interface {
	// Create inserts a scheduled meeting and returns it with participants joined.
	// Returns domain.ErrConflict if the candidate already has a scheduled meeting.
	Create(ctx context.Context, m domain.Meeting) (domain.Meeting, error)

	// GetByID retrieves a meeting with both participants joined.
	// Returns domain.ErrNotFound if no meeting with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Meeting, error)

	// ListByUser returns every meeting the user takes part in, by start time.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Meeting, error)

	// ListScheduledByRecruiter returns a recruiter's scheduled meetings by start time.
	ListScheduledByRecruiter(ctx context.Context, recruiterID uuid.UUID) ([]domain.Meeting, error)

	// UpdateStatus sets the status of a meeting and returns the updated record.
	// Returns domain.ErrNotFound if no meeting with that ID exists.
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.MeetingStatus) (domain.Meeting, error)

	// CompleteEnded marks every scheduled meeting that ended at or before now
	// as completed and returns how many rows changed.
	CompleteEnded(ctx context.Context, now time.Time) (int64, error)
}

// pgMeetingRepo is the Postgres implementation of MeetingRepo.
type pgMeetingRepo struct {
	db db
}

// NewMeetingRepo constructs a MeetingRepo backed by the provided db connection.
func NewMeetingRepo(db db) MeetingRepo {
	return &pgMeetingRepo{db: db}
}

const meetingSelect = `
	SELECT m.id, m.candidate_id, m.recruiter_id, m.title, m.start_time, m.end_time,
	       m.status, m.location, m.video_call_link, m.calendar_link,
	       m.created_at, m.updated_at,
	       c.name, c.email, r.name, r.email
	FROM meetings m
	JOIN users c ON c.id = m.candidate_id
	JOIN users r ON r.id = m.recruiter_id`

func (r *pgMeetingRepo) Create(ctx context.Context, m domain.Meeting) (domain.Meeting, error) {
	const q = `
		INSERT INTO meetings (candidate_id, recruiter_id, title, start_time, end_time,
		                      status, location, video_call_link, calendar_link)
		VALUES (@candidate_id, @recruiter_id, @title, @start_time, @end_time,
		        'scheduled', @location, @video_call_link, @calendar_link)
		RETURNING id`

	var id pgtype.UUID
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{
		"candidate_id":    m.CandidateID,
		"recruiter_id":    m.RecruiterID,
		"title":           m.Title,
		"start_time":      m.StartTime,
		"end_time":        m.EndTime,
		"location":        m.Location,
		"video_call_link": m.VideoCallLink,
		"calendar_link":   m.CalendarLink,
	}).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Meeting{}, fmt.Errorf("repo.MeetingRepo.Create: candidate already scheduled: %w", domain.ErrConflict)
		}
		return domain.Meeting{}, fmt.Errorf("repo.MeetingRepo.Create: %w", err)
	}

	created, err := r.GetByID(ctx, uuid.UUID(id.Bytes))
	if err != nil {
		return domain.Meeting{}, fmt.Errorf("repo.MeetingRepo.Create: %w", err)
	}
	return created, nil
}

func (r *pgMeetingRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Meeting, error) {
	row := r.db.QueryRow(ctx, meetingSelect+` WHERE m.id = @id`, pgx.NamedArgs{"id": id})
	m, err := scanMeeting(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Meeting{}, fmt.Errorf("repo.MeetingRepo.GetByID: %w", domain.ErrNotFound)
		}
		return domain.Meeting{}, fmt.Errorf("repo.MeetingRepo.GetByID: %w", err)
	}
	return m, nil
}

func (r *pgMeetingRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Meeting, error) {
	out, err := r.list(ctx,
		meetingSelect+` WHERE m.candidate_id = @user_id OR m.recruiter_id = @user_id ORDER BY m.start_time`,
		pgx.NamedArgs{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("repo.MeetingRepo.ListByUser: %w", err)
	}
	return out, nil
}

func (r *pgMeetingRepo) ListScheduledByRecruiter(ctx context.Context, recruiterID uuid.UUID) ([]domain.Meeting, error) {
	out, err := r.list(ctx,
		meetingSelect+` WHERE m.recruiter_id = @recruiter_id AND m.status = 'scheduled' ORDER BY m.start_time`,
		pgx.NamedArgs{"recruiter_id": recruiterID})
	if err != nil {
		return nil, fmt.Errorf("repo.MeetingRepo.ListScheduledByRecruiter: %w", err)
	}
	return out, nil
}

func (r *pgMeetingRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.MeetingStatus) (domain.Meeting, error) {
	const q = `UPDATE meetings SET status = @status, updated_at = now() WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id, "status": string(status)})
	if err != nil {
		return domain.Meeting{}, fmt.Errorf("repo.MeetingRepo.UpdateStatus: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.Meeting{}, fmt.Errorf("repo.MeetingRepo.UpdateStatus: %w", domain.ErrNotFound)
	}
	return r.GetByID(ctx, id)
}

func (r *pgMeetingRepo) CompleteEnded(ctx context.Context, now time.Time) (int64, error) {
	const q = `
		UPDATE meetings
		SET status = 'completed', updated_at = now()
		WHERE status = 'scheduled' AND end_time <= @now`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"now": now})
	if err != nil {
		return 0, fmt.Errorf("repo.MeetingRepo.CompleteEnded: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *pgMeetingRepo) list(ctx context.Context, q string, args pgx.NamedArgs) ([]domain.Meeting, error) {
	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Meeting
	for rows.Next() {
		m, err := scanMeeting(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return out, nil
}

// scanMeeting maps a meetingSelect row into a domain.Meeting, filling the
// joined participant records as well as the foreign keys.
func scanMeeting(s scanner) (domain.Meeting, error) {
	var (
		m            domain.Meeting
		id, cid, rid pgtype.UUID
	)
	err := s.Scan(
		&id, &cid, &rid, &m.Title, &m.StartTime, &m.EndTime,
		&m.Status, &m.Location, &m.VideoCallLink, &m.CalendarLink,
		&m.CreatedAt, &m.UpdatedAt,
		&m.Candidate.Name, &m.Candidate.Email, &m.Recruiter.Name, &m.Recruiter.Email,
	)
	if err != nil {
		return domain.Meeting{}, err
	}
	m.ID = uuid.UUID(id.Bytes)
	m.CandidateID = uuid.UUID(cid.Bytes)
	m.RecruiterID = uuid.UUID(rid.Bytes)
	m.Candidate.ID, m.Candidate.Role = m.CandidateID, domain.RoleCandidate
	m.Recruiter.ID, m.Recruiter.Role = m.RecruiterID, domain.RoleRecruiter
	return m, nil
}
