package scheduling

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ReservationRepository is the single source of truth for bookings.
// The calendar is a derived view over it, never cached.
type ReservationRepository interface {
	Create(ctx context.Context, r *Reservation) error
	GetByID(ctx context.Context, id uuid.UUID) (*Reservation, error)
	GetByNumber(ctx context.Context, number string) (*Reservation, error)
	Update(ctx context.Context, r *Reservation) error
	// ListActiveForResource returns reservations with an active status
	// for the resource on the date, ordered by start minute.
	ListActiveForResource(ctx context.Context, res Resource, date time.Time) ([]*Reservation, error)
	ListByDate(ctx context.Context, date time.Time) ([]*Reservation, error)
	ListByClient(ctx context.Context, clientID uuid.UUID, limit, offset int) ([]*Reservation, int, error)
	// ListOverdueConfirmed returns CONFIRMED reservations whose window
	// has fully passed as of now. Feed for the no-show sweep.
	ListOverdueConfirmed(ctx context.Context, now time.Time) ([]*Reservation, error)
}
