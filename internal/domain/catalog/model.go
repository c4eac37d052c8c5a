package catalog

import (
	"time"

	"github.com/google/uuid"
)

// SpaService maps to the services table. "Spa" prefix avoids colliding
// with the application Service type in this package.
type SpaService struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Category    *string   `db:"category" json:"category,omitempty"`
	Description *string   `db:"description" json:"description,omitempty"`
	Active      bool      `db:"active" json:"active"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// Variant maps to the service_variants table. Duration and price are
// snapshotted onto reservations at booking time, so editing a variant
// never changes existing bookings.
type Variant struct {
	ID              uuid.UUID `db:"id" json:"id"`
	ServiceID       uuid.UUID `db:"service_id" json:"service_id"`
	DurationMinutes int       `db:"duration_minutes" json:"duration_minutes"`
	RegularPrice    float64   `db:"regular_price" json:"regular_price"`
	PromoPrice      *float64  `db:"promo_price" json:"promo_price,omitempty"`
	Active          bool      `db:"active" json:"active"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

// EffectivePrice returns the promo price when one is set, otherwise the
// regular price.
func (v *Variant) EffectivePrice() float64 {
	if v.PromoPrice != nil {
		return *v.PromoPrice
	}
	return v.RegularPrice
}
