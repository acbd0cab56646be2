package patient

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, p *Patient) error
	GetByID(ctx context.Context, id uuid.UUID) (*Patient, error)
	Update(ctx context.Context, p *Patient) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*Patient, int, error)
	ListSafe(ctx context.Context, limit, offset int) ([]*SafeView, int, error)
	ListForDoctor(ctx context.Context, limit, offset int) ([]*DoctorView, int, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}
