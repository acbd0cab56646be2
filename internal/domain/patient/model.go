package patient

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	BookingOnline    = "online"
	BookingWalkIn    = "walk-in queue"
	BookingCancelled = "cancelled"
)

const (
	GenderMan   = "man"
	GenderWoman = "woman"
)

const dateLayout = "2006-01-02"

// Date is a calendar day with no time of day. It marshals as "2006-01-02"
// and implements sql.Scanner/driver.Valuer so pgx can move it through a
// DATE column in either wire format.
type Date struct {
	time.Time
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: must be in YYYY-MM-DD form", s)
	}
	return Date{Time: t}, nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format(dateLayout))
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		*d = Date{Time: v}
		return nil
	case string:
		parsed, err := ParseDate(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	}
	return fmt.Errorf("cannot scan %T into Date", src)
}

func (d Date) Value() (driver.Value, error) {
	return d.Time, nil
}

// Patient is a booking record: who is coming, to which department and
// service, with which doctor and reception, in which slots.
type Patient struct {
	ID             uuid.UUID   `json:"id" db:"id"`
	FullName       string      `json:"full_name" db:"full_name"`
	Birthday       Date        `json:"birthday" db:"birthday"`
	Gender         *string     `json:"gender,omitempty" db:"gender"`
	Phone          *string     `json:"phone_number,omitempty" db:"phone_number"`
	SecondaryPhone *string     `json:"secondary_phone,omitempty" db:"secondary_phone"`
	DepartmentID   uuid.UUID   `json:"department_id" db:"department_id"`
	ServiceID      uuid.UUID   `json:"service_id" db:"service_id"`
	DoctorID       uuid.UUID   `json:"doctor_id" db:"doctor_id"`
	ReceptionID    uuid.UUID   `json:"reception_id" db:"reception_id"`
	SlotIDs        []uuid.UUID `json:"slot_ids,omitempty" db:"-"`
	BookingType    string      `json:"booking_type" db:"booking_type"`
	MedicalHistory *string     `json:"medical_history,omitempty" db:"medical_history"`
	CreatedAt      time.Time   `json:"created_at" db:"created_at"`
}

// SafeView is the reception list projection: no medical history, no
// booking internals.
type SafeView struct {
	ID       uuid.UUID `json:"id"`
	FullName string    `json:"full_name"`
	Gender   *string   `json:"gender,omitempty"`
	Phone    *string   `json:"phone_number,omitempty"`
}

// DoctorView adds what the doctor list needs on top of the safe fields.
type DoctorView struct {
	ID             uuid.UUID `json:"id"`
	FullName       string    `json:"full_name"`
	Gender         *string   `json:"gender,omitempty"`
	Phone          *string   `json:"phone_number,omitempty"`
	MedicalHistory *string   `json:"medical_history,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// UpdateInput is the mutable surface after creation: references and
// booking metadata move, identity fields do not.
type UpdateInput struct {
	DepartmentID uuid.UUID   `json:"department_id"`
	ServiceID    uuid.UUID   `json:"service_id"`
	SlotIDs      []uuid.UUID `json:"slot_ids"`
	BookingType  string      `json:"booking_type"`
	CreatedAt    *time.Time  `json:"created_at"`
}
