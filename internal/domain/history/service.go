package history

import (
	"context"

	"github.com/google/uuid"

	"github.com/clinic/crm/internal/platform/apperr"
)

type PatientChecker interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// StatusHistogram groups the ledger by status and appends a synthetic
// "total" row equal to the sum. The repository is an explicit parameter:
// the computation owns no state and reads fresh on every call.
func StatusHistogram(ctx context.Context, repo Repository) (map[string]int, error) {
	counts, err := repo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	total := 0
	for _, n := range counts {
		total += n
	}
	counts["total"] = total
	return counts, nil
}

type Service struct {
	repo     Repository
	patients PatientChecker
}

func NewService(repo Repository, patients PatientChecker) *Service {
	return &Service{repo: repo, patients: patients}
}

// RecordOutcome appends one entry to the ledger. The booking must exist;
// repeat entries for the same booking are allowed.
func (s *Service) RecordOutcome(ctx context.Context, patientID uuid.UUID, status string) (*Entry, error) {
	if !ValidStatus(status) {
		return nil, apperr.Validation("status", "must be attended, waiting or cancelled")
	}
	ok, err := s.patients.Exists(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.Validation("patient_id", "patient does not exist")
	}
	e := &Entry{PatientID: patientID, Status: status}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// UpdateStatus rewrites one entry's status label.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*Entry, error) {
	if !ValidStatus(status) {
		return nil, apperr.Validation("status", "must be attended, waiting or cancelled")
	}
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	e.Status = status
	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Entry, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Entry, int, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *Service) Histogram(ctx context.Context) (map[string]int, error) {
	return StatusHistogram(ctx, s.repo)
}

// AttendedSummary reports how many ledger entries carry the attended
// label. Always equal to the histogram's attended row.
func (s *Service) AttendedSummary(ctx context.Context) (*StatusCount, error) {
	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	return &StatusCount{Status: StatusAttended, Count: counts[StatusAttended]}, nil
}
