package department

import (
	"github.com/google/uuid"
)

// Department maps to the department table. It is the cascade root: deleting
// a department removes its services, patient bookings, and their ledger
// entries in one atomic unit.
type Department struct {
	ID      uuid.UUID `db:"id" json:"id"`
	Name    string    `db:"department_name" json:"department_name"`
	Floor   int       `db:"floor" json:"floor"`
	Cabinet int       `db:"cabinet" json:"cabinet"`
}
