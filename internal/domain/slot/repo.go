package slot

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, rt *RecordingTime) error
	GetByID(ctx context.Context, id uuid.UUID) (*RecordingTime, error)
	Update(ctx context.Context, rt *RecordingTime) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*RecordingTime, int, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}
