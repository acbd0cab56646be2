package catalog

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, s *Service) error
	GetByID(ctx context.Context, id uuid.UUID) (*Service, error)
	Update(ctx context.Context, s *Service) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListWithDepartment(ctx context.Context, limit, offset int) ([]*ServiceWithDepartment, int, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}
