package staff

import (
	"time"

	"github.com/google/uuid"

	"github.com/spa/spa/pkg/timerange"
)

// Therapist maps to the therapists table.
type Therapist struct {
	ID        uuid.UUID `db:"id" json:"id"`
	FullName  string    `db:"full_name" json:"full_name"`
	Phone     *string   `db:"phone" json:"phone,omitempty"`
	Specialty *string   `db:"specialty" json:"specialty,omitempty"`
	Active    bool      `db:"active" json:"active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// ShiftStatus is the day-level roster state for a therapist.
type ShiftStatus string

const (
	ShiftWorking ShiftStatus = "WORKING"
	ShiftOff     ShiftStatus = "OFF"
	ShiftLeave   ShiftStatus = "LEAVE"
	ShiftSick    ShiftStatus = "SICK"
)

func (s ShiftStatus) Valid() bool {
	switch s {
	case ShiftWorking, ShiftOff, ShiftLeave, ShiftSick:
		return true
	}
	return false
}

// Shift maps to the work_shifts table. At most one row per therapist
// per date. StartMinute/EndMinute are meaningful only for WORKING rows.
type Shift struct {
	ID          uuid.UUID   `db:"id" json:"id"`
	TherapistID uuid.UUID   `db:"therapist_id" json:"therapist_id"`
	ShiftDate   time.Time   `db:"shift_date" json:"shift_date"`
	StartMinute int         `db:"start_minute" json:"start_minute"`
	EndMinute   int         `db:"end_minute" json:"end_minute"`
	Status      ShiftStatus `db:"status" json:"status"`
	CreatedAt   time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time   `db:"updated_at" json:"updated_at"`
}

// Window returns the working interval of the shift.
func (s *Shift) Window() timerange.Range {
	return timerange.Range{Start: s.StartMinute, End: s.EndMinute}
}

// RosterEntry is a therapist together with their working window on a
// given date. Produced by the roster queries the scheduler consumes.
type RosterEntry struct {
	TherapistID   uuid.UUID       `json:"therapist_id"`
	TherapistName string          `json:"therapist_name"`
	Window        timerange.Range `json:"window"`
}
