package specialty

import (
	"github.com/google/uuid"
)

// Specialty maps to the specialty table. Reference data; accounts with the
// doctor role link to it many-to-many.
type Specialty struct {
	ID   uuid.UUID `db:"id" json:"id"`
	Name string    `db:"specialty_name" json:"specialty_name"`
}
