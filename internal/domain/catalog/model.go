package catalog

import (
	"github.com/google/uuid"
)

// Service maps to the service table: a billable clinic service owned by a
// department.
type Service struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Name         string    `db:"service_name" json:"service_name"`
	Price        int       `db:"service_price" json:"service_price"`
	DepartmentID uuid.UUID `db:"department_id" json:"department_id"`
}

// DepartmentInfo is the slice of the owning department exposed on the
// service list read path.
type DepartmentInfo struct {
	Name    string `db:"department_name" json:"department_name"`
	Floor   int    `db:"floor" json:"floor"`
	Cabinet int    `db:"cabinet" json:"cabinet"`
}

// ServiceWithDepartment is the joined projection returned by the catalog
// list: every service together with its department's name/floor/cabinet.
type ServiceWithDepartment struct {
	ID         uuid.UUID      `json:"id"`
	Name       string         `json:"service_name"`
	Price      int            `json:"service_price"`
	Department DepartmentInfo `json:"department"`
}
