package service

import (
	"context"
	"fmt"

	"github.com/recruitflow/availability/internal/domain"
	"github.com/recruitflow/availability/internal/repo"
)

// ExportService assembles a flat export of every candidate and their slots.
type ExportService struct {
	users repo.UserRepo
	slots repo.SlotRepo
}

// NewExportService constructs an ExportService backed by the provided repos.
func NewExportService(users repo.UserRepo, slots repo.SlotRepo) *ExportService {
	return &ExportService{users: users, slots: slots}
}

// Export returns one ExportRow per slot across all candidates.
// Candidates with no slots contribute one row with empty slot fields.
func (s *ExportService) Export(ctx context.Context, sess domain.Session) ([]domain.ExportRow, error) {
	if err := requireRole(sess, domain.RoleRecruiter); err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}

	candidates, err := s.users.ListCandidates(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: list candidates: %w", err)
	}
	all, err := s.slots.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: list slots: %w", err)
	}

	byCandidate := make(map[string][]domain.Slot, len(candidates))
	for _, sl := range all {
		key := sl.CandidateID.String()
		byCandidate[key] = append(byCandidate[key], sl)
	}

	rows := make([]domain.ExportRow, 0, len(all)+len(candidates))
	for _, c := range candidates {
		base := domain.ExportRow{
			CandidateID:     c.ID.String(),
			CandidateName:   c.Name,
			CandidateEmail:  c.Email,
			CandidateStatus: c.Status,
		}
		slots := byCandidate[base.CandidateID]
		if len(slots) == 0 {
			rows = append(rows, base)
			continue
		}
		for _, sl := range slots {
			row := base
			start, end := sl.StartTime, sl.EndTime
			row.SlotStart = &start
			row.SlotEnd = &end
			rows = append(rows, row)
		}
	}
	return rows, nil
}
