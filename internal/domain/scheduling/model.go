// Package scheduling implements the reservation engine: conflict
// validation against rosters and resource calendars, the booking
// lifecycle state machine, and the slot availability query.
package scheduling

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/spa/spa/pkg/timerange"
)

// Status is the booking lifecycle state.
type Status string

const (
	StatusNew        Status = "NEW"
	StatusConfirmed  Status = "CONFIRMED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
	StatusCancelled  Status = "CANCELLED"
	StatusNoShow     Status = "NO_SHOW"
)

func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusConfirmed, StatusInProgress, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// Terminal reports whether no further lifecycle transition is possible.
func (s Status) Terminal() bool {
	switch s {
	case StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// Active reports whether the reservation still occupies its interval.
// Only active reservations count as busy for conflict checks.
func (s Status) Active() bool {
	switch s {
	case StatusNew, StatusConfirmed, StatusInProgress:
		return true
	}
	return false
}

// PaymentStatus tracks payment independently of the booking lifecycle.
type PaymentStatus string

const (
	PaymentUnpaid        PaymentStatus = "UNPAID"
	PaymentPartiallyPaid PaymentStatus = "PARTIALLY_PAID"
	PaymentPaid          PaymentStatus = "PAID"
)

func (p PaymentStatus) Valid() bool {
	switch p {
	case PaymentUnpaid, PaymentPartiallyPaid, PaymentPaid:
		return true
	}
	return false
}

// ResourceKind identifies which axis of double-booking a resource
// belongs to.
type ResourceKind string

const (
	ResourceTherapist ResourceKind = "therapist"
	ResourceRoom      ResourceKind = "room"
)

// Resource is either a therapist or a room, the two things a
// reservation can conflict over.
type Resource struct {
	Kind ResourceKind
	ID   uuid.UUID
}

func TherapistResource(id uuid.UUID) Resource { return Resource{Kind: ResourceTherapist, ID: id} }
func RoomResource(id uuid.UUID) Resource     { return Resource{Kind: ResourceRoom, ID: id} }

// Reservation maps to the reservations table. Price and window length
// are snapshots of the service variant at booking time.
type Reservation struct {
	ID            uuid.UUID     `db:"id" json:"id"`
	Number        string        `db:"number" json:"number"`
	ClientID      uuid.UUID     `db:"client_id" json:"client_id"`
	TherapistID   uuid.UUID     `db:"therapist_id" json:"therapist_id"`
	RoomID        uuid.UUID     `db:"room_id" json:"room_id"`
	ServiceID     uuid.UUID     `db:"service_id" json:"service_id"`
	VariantID     uuid.UUID     `db:"variant_id" json:"variant_id"`
	ReservedDate  time.Time     `db:"reserved_date" json:"reserved_date"`
	StartMinute   int           `db:"start_minute" json:"start_minute"`
	EndMinute     int           `db:"end_minute" json:"end_minute"`
	Status        Status        `db:"status" json:"status"`
	PaymentStatus PaymentStatus `db:"payment_status" json:"payment_status"`
	PaymentMethod *string       `db:"payment_method" json:"payment_method,omitempty"`
	Price         float64       `db:"price" json:"price"`
	Source        *string       `db:"source" json:"source,omitempty"`
	Notes         *string       `db:"notes" json:"notes,omitempty"`
	CreatedBy     *string       `db:"created_by" json:"created_by,omitempty"`
	CreatedAt     time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time     `db:"updated_at" json:"updated_at"`
}

// Window returns the reservation's interval within the day.
func (r *Reservation) Window() timerange.Range {
	return timerange.Range{Start: r.StartMinute, End: r.EndMinute}
}

// EndsAt returns the wall-clock end of the reservation.
func (r *Reservation) EndsAt() time.Time {
	return r.ReservedDate.Add(time.Duration(r.EndMinute) * time.Minute)
}

// StartsAt returns the wall-clock start of the reservation.
func (r *Reservation) StartsAt() time.Time {
	return r.ReservedDate.Add(time.Duration(r.StartMinute) * time.Minute)
}

// SlotOffer is one bookable option returned by the availability query:
// a therapist, the first room free for the window, and the window.
type SlotOffer struct {
	TherapistID   uuid.UUID       `json:"therapist_id"`
	TherapistName string          `json:"therapist_name"`
	RoomID        uuid.UUID       `json:"room_id"`
	Window        timerange.Range `json:"window"`
}

// newNumber produces a short display code for receipts and phone
// confirmations. Uniqueness is enforced by the store.
func newNumber() string {
	return fmt.Sprintf("R-%08X", rand.Uint32())
}
