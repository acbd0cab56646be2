package account

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleDoctor    = "doctor"
	RoleReception = "reception"
	RoleAdmin     = "admin"
)

// ValidRole reports whether role is one of the three staff roles.
func ValidRole(role string) bool {
	switch role {
	case RoleDoctor, RoleReception, RoleAdmin:
		return true
	}
	return false
}

// Account is a staff identity. Role-specific attributes (experience,
// department, bonus) stay optional columns on the one row; the role label
// decides which of them carry meaning.
type Account struct {
	ID             uuid.UUID   `json:"id" db:"id"`
	FullName       string      `json:"full_name" db:"full_name"`
	Email          string      `json:"email" db:"email"`
	Role           string      `json:"role" db:"role"`
	Phone          *string     `json:"phone_number,omitempty" db:"phone_number"`
	ProfilePicture string      `json:"profile_picture,omitempty" db:"profile_picture"`
	Age            *int        `json:"age,omitempty" db:"age"`
	Experience     *int        `json:"experience,omitempty" db:"experience"`
	DepartmentID   *uuid.UUID  `json:"department_id,omitempty" db:"department_id"`
	Bonus          *int        `json:"bonus,omitempty" db:"bonus"`
	SpecialtyIDs   []uuid.UUID `json:"specialty_ids,omitempty" db:"-"`
	CreatedDate    time.Time   `json:"created_date" db:"created_date"`
	PasswordHash   string      `json:"-" db:"password_hash"`
}

// AuthResult is handed back by Register and Login: the stored account plus
// a fresh token pair.
type AuthResult struct {
	User    *Account `json:"user"`
	Access  string   `json:"access"`
	Refresh string   `json:"refresh"`
}
