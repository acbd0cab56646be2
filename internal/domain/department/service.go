package department

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/clinic/crm/internal/platform/apperr"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, d *Department) error {
	if err := validate(d); err != nil {
		return err
	}
	if d.Floor == 0 {
		d.Floor = 1
	}
	if d.Cabinet == 0 {
		d.Cabinet = 1
	}
	return s.repo.Create(ctx, d)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Department, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, d *Department) error {
	if err := validate(d); err != nil {
		return err
	}
	return s.repo.Update(ctx, d)
}

// Delete removes the department and everything hanging off it. Cascade
// semantics live in the store (FK ON DELETE CASCADE), so a failure leaves
// the whole subtree untouched.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Department, int, error) {
	return s.repo.List(ctx, limit, offset)
}

func validate(d *Department) error {
	d.Name = strings.TrimSpace(d.Name)
	if d.Name == "" {
		return apperr.Validation("department_name", "is required")
	}
	if d.Cabinet < 0 {
		return apperr.Validation("cabinet", "must not be negative")
	}
	return nil
}
