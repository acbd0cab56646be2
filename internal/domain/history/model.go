package history

import (
	"time"

	"github.com/google/uuid"
)

// Exact wire labels. Reports key on these strings.
const (
	StatusAttended  = "attended"
	StatusWaiting   = "waiting"
	StatusCancelled = "cancelled"
)

// ValidStatus reports whether s is one of the three ledger labels.
func ValidStatus(s string) bool {
	switch s {
	case StatusAttended, StatusWaiting, StatusCancelled:
		return true
	}
	return false
}

// Entry is one visit outcome. The ledger is append-mostly: a booking can
// accumulate any number of entries over time.
type Entry struct {
	ID        uuid.UUID `json:"id" db:"id"`
	PatientID uuid.UUID `json:"patient_id" db:"patient_id"`
	Status    string    `json:"status" db:"status"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// StatusCount is one reporting row: a label and how many ledger entries
// carry it.
type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}
