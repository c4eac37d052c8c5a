package staff

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type TherapistRepository interface {
	Create(ctx context.Context, t *Therapist) error
	GetByID(ctx context.Context, id uuid.UUID) (*Therapist, error)
	Update(ctx context.Context, t *Therapist) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, activeOnly bool) ([]*Therapist, error)
}

type ShiftRepository interface {
	// Upsert inserts or replaces the shift row for (therapist, date).
	Upsert(ctx context.Context, s *Shift) error
	GetForDate(ctx context.Context, therapistID uuid.UUID, date time.Time) (*Shift, error)
	ListByTherapist(ctx context.Context, therapistID uuid.UUID, from, to time.Time) ([]*Shift, error)
	// ListWorkingOn returns roster entries for therapists with a WORKING
	// shift on the date, ordered by therapist name.
	ListWorkingOn(ctx context.Context, date time.Time) ([]RosterEntry, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
