package slot

import "github.com/google/uuid"

// RecordingTime is a bookable shift window. Start and end are wall-clock
// times in "15:04" form; no date or timezone is attached.
type RecordingTime struct {
	ID         uuid.UUID `json:"id" db:"id"`
	ShiftStart string    `json:"shift_start" db:"shift_start"`
	ShiftEnd   string    `json:"shift_end" db:"shift_end"`
}
