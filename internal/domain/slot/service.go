package slot

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/clinic/crm/internal/platform/apperr"
)

const clockLayout = "15:04"

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, rt *RecordingTime) error {
	if err := validateShift(rt); err != nil {
		return err
	}
	return s.repo.Create(ctx, rt)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*RecordingTime, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, rt *RecordingTime) error {
	if err := validateShift(rt); err != nil {
		return err
	}
	return s.repo.Update(ctx, rt)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*RecordingTime, int, error) {
	return s.repo.List(ctx, limit, offset)
}

// validateShift requires both bounds in "15:04" form with start strictly
// before end. Shifts never cross midnight.
func validateShift(rt *RecordingTime) error {
	start, err := time.Parse(clockLayout, rt.ShiftStart)
	if err != nil {
		return apperr.Validation("shift_start", "must be a time in HH:MM form")
	}
	end, err := time.Parse(clockLayout, rt.ShiftEnd)
	if err != nil {
		return apperr.Validation("shift_end", "must be a time in HH:MM form")
	}
	if !start.Before(end) {
		return apperr.Validation("shift_end", "must be after shift_start")
	}
	return nil
}
