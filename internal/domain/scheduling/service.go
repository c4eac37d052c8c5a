package scheduling

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/spa/spa/internal/domain/catalog"
	"github.com/spa/spa/internal/domain/room"
	"github.com/spa/spa/internal/domain/staff"
	"github.com/spa/spa/internal/platform/db"
	"github.com/spa/spa/internal/platform/metrics"
	"github.com/spa/spa/pkg/timerange"
)

// Roster extends RosterProvider with the day-wide listing the
// availability query needs. Satisfied by staff.Service.
type Roster interface {
	RosterProvider
	WorkingTherapists(ctx context.Context, date time.Time) ([]staff.RosterEntry, error)
}

// RoomProvider lists the rooms that can host bookings. Satisfied by
// room.Service.
type RoomProvider interface {
	ListActive(ctx context.Context) ([]*room.Room, error)
}

// VariantProvider resolves the service variant being booked. Satisfied
// by catalog.Service.
type VariantProvider interface {
	GetVariant(ctx context.Context, id uuid.UUID) (*catalog.Variant, error)
}

// Options carries the booking policy knobs from config.
type Options struct {
	// GraceMinutes is how far into the past a new booking's start may
	// lie before it is rejected.
	GraceMinutes int
	// StepMinutes is the slot grid alignment for availability.
	StepMinutes int
}

// Service is the single write path for reservations. Every mutation
// runs in one transaction holding advisory locks for the involved
// (resource, day) pairs, so two conflicting attempts serialize and the
// loser fails conflict validation.
type Service struct {
	repo      ReservationRepository
	cal       *Calendar
	validator *Validator
	roster    Roster
	rooms     RoomProvider
	variants  VariantProvider
	log       zerolog.Logger
	step      int

	runTx    func(ctx context.Context, fn func(ctx context.Context) error) error
	lockDays func(ctx context.Context, keys ...int64) error
	now      func() time.Time
}

func NewService(pool *pgxpool.Pool, repo ReservationRepository, roster Roster, rooms RoomProvider, variants VariantProvider, log zerolog.Logger, opts Options) *Service {
	if opts.StepMinutes <= 0 {
		opts.StepMinutes = 30
	}
	cal := NewCalendar(repo)
	return &Service{
		repo:      repo,
		cal:       cal,
		validator: NewValidator(cal, roster, opts.GraceMinutes),
		roster:    roster,
		rooms:     rooms,
		variants:  variants,
		log:       log,
		step:      opts.StepMinutes,
		runTx: func(ctx context.Context, fn func(ctx context.Context) error) error {
			return db.WithTx(ctx, pool, fn)
		},
		lockDays: db.AcquireDayLocks,
		now:      time.Now,
	}
}

// CreateRequest is the typed booking request. Structural validation
// happens here before any business check runs.
type CreateRequest struct {
	ClientID    uuid.UUID
	TherapistID uuid.UUID
	RoomID      uuid.UUID
	VariantID   uuid.UUID
	Date        time.Time
	Window      timerange.Range
	Source      *string
	Notes       *string
	CreatedBy   *string
}

func (req CreateRequest) validate() error {
	switch {
	case req.ClientID == uuid.Nil:
		return newError(KindNotFound, "client_id is required")
	case req.TherapistID == uuid.Nil:
		return newError(KindNotFound, "therapist_id is required")
	case req.RoomID == uuid.Nil:
		return newError(KindNotFound, "room_id is required")
	case req.VariantID == uuid.Nil:
		return newError(KindNotFound, "variant_id is required")
	case req.Date.IsZero():
		return newError(KindPastDateTime, "date is required")
	case !req.Window.Valid():
		return newError(KindInvalidDuration, "window %s is empty or inverted", req.Window.Clock())
	}
	return nil
}

// Create books a reservation. The variant's duration and price are
// snapshotted onto the row, so later catalog edits never touch it.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Reservation, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	date := day(req.Date)
	var created *Reservation
	err := s.runTx(ctx, func(ctx context.Context) error {
		err := s.lockDays(ctx,
			db.DayLockKey(req.TherapistID, date),
			db.DayLockKey(req.RoomID, date))
		if err != nil {
			return err
		}
		v, err := s.variant(ctx, req.VariantID)
		if err != nil {
			return err
		}
		err = s.validator.Validate(ctx, ValidateRequest{
			TherapistID: req.TherapistID,
			RoomID:      req.RoomID,
			Date:        date,
			Window:      req.Window,
			Duration:    v.DurationMinutes,
		})
		if err != nil {
			return err
		}
		res := &Reservation{
			ID:            uuid.New(),
			Number:        newNumber(),
			ClientID:      req.ClientID,
			TherapistID:   req.TherapistID,
			RoomID:        req.RoomID,
			ServiceID:     v.ServiceID,
			VariantID:     v.ID,
			ReservedDate:  date,
			StartMinute:   req.Window.Start,
			EndMinute:     req.Window.End,
			Status:        StatusNew,
			PaymentStatus: PaymentUnpaid,
			Price:         v.EffectivePrice(),
			Source:        req.Source,
			Notes:         req.Notes,
			CreatedBy:     req.CreatedBy,
		}
		if err := s.repo.Create(ctx, res); err != nil {
			return err
		}
		created = res
		return nil
	})
	if err != nil {
		countRejection(err)
		return nil, err
	}
	metrics.ReservationsCreated.Inc()
	s.log.Info().
		Str("number", created.Number).
		Str("date", date.Format("2006-01-02")).
		Str("window", created.Window().Clock()).
		Msg("reservation created")
	return created, nil
}

// UpdateStatus applies one lifecycle transition. An illegal transition
// fails and leaves the row unchanged.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, to Status) (*Reservation, error) {
	if !to.Valid() {
		return nil, newError(KindIllegalStatusTransition, "unknown status %q", to)
	}
	var out *Reservation
	err := s.runTx(ctx, func(ctx context.Context) error {
		res, err := s.get(ctx, id)
		if err != nil {
			return err
		}
		if !CanTransition(res.Status, to) {
			return newError(KindIllegalStatusTransition, "cannot move %s from %s to %s", res.Number, res.Status, to)
		}
		now := s.now()
		if to == StatusNoShow && now.Before(res.EndsAt()) {
			return newError(KindIllegalStatusTransition, "no-show can only be recorded after the window ends")
		}
		if to == StatusInProgress && now.Before(res.StartsAt()) {
			s.log.Warn().Str("number", res.Number).Msg("session started before scheduled time")
		}
		res.Status = to
		if err := s.repo.Update(ctx, res); err != nil {
			return err
		}
		out = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	if to == StatusCancelled {
		metrics.ReservationsCancelled.Inc()
	}
	return out, nil
}

// Cancel releases the interval while keeping the row for history.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID) (*Reservation, error) {
	return s.UpdateStatus(ctx, id, StatusCancelled)
}

// UpdatePayment changes the payment sub-state. It is orthogonal to the
// booking lifecycle; cancelling never auto-refunds.
func (s *Service) UpdatePayment(ctx context.Context, id uuid.UUID, status PaymentStatus, method *string) (*Reservation, error) {
	if !status.Valid() {
		return nil, newError(KindIllegalStatusTransition, "unknown payment status %q", status)
	}
	var out *Reservation
	err := s.runTx(ctx, func(ctx context.Context) error {
		res, err := s.get(ctx, id)
		if err != nil {
			return err
		}
		res.PaymentStatus = status
		if method != nil {
			res.PaymentMethod = method
		}
		if err := s.repo.Update(ctx, res); err != nil {
			return err
		}
		out = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// RescheduleRequest moves an existing booking; nil therapist/room keep
// the current assignment.
type RescheduleRequest struct {
	Date        time.Time
	Window      timerange.Range
	TherapistID *uuid.UUID
	RoomID      *uuid.UUID
}

// Reschedule atomically swaps the reservation onto a new date, window,
// and optionally new therapist or room. Old and new resource-days are
// locked together so no concurrent check observes the booking occupying
// both intervals or neither.
func (s *Service) Reschedule(ctx context.Context, id uuid.UUID, req RescheduleRequest) (*Reservation, error) {
	if req.Date.IsZero() {
		return nil, newError(KindPastDateTime, "date is required")
	}
	if !req.Window.Valid() {
		return nil, newError(KindInvalidDuration, "window %s is empty or inverted", req.Window.Clock())
	}
	date := day(req.Date)
	var out *Reservation
	err := s.runTx(ctx, func(ctx context.Context) error {
		res, err := s.get(ctx, id)
		if err != nil {
			return err
		}
		if res.Status.Terminal() {
			return newError(KindIllegalStatusTransition, "cannot reschedule a %s reservation", res.Status)
		}
		therapistID := res.TherapistID
		if req.TherapistID != nil {
			therapistID = *req.TherapistID
		}
		roomID := res.RoomID
		if req.RoomID != nil {
			roomID = *req.RoomID
		}
		err = s.lockDays(ctx,
			db.DayLockKey(res.TherapistID, res.ReservedDate),
			db.DayLockKey(res.RoomID, res.ReservedDate),
			db.DayLockKey(therapistID, date),
			db.DayLockKey(roomID, date))
		if err != nil {
			return err
		}
		err = s.validator.Validate(ctx, ValidateRequest{
			TherapistID: therapistID,
			RoomID:      roomID,
			Date:        date,
			Window:      req.Window,
			Duration:    res.Window().Duration(),
			Exclude:     &res.ID,
			Reschedule:  true,
		})
		if err != nil {
			return err
		}
		res.TherapistID = therapistID
		res.RoomID = roomID
		res.ReservedDate = date
		res.StartMinute = req.Window.Start
		res.EndMinute = req.Window.End
		if err := s.repo.Update(ctx, res); err != nil {
			return err
		}
		out = res
		return nil
	})
	if err != nil {
		countRejection(err)
		return nil, err
	}
	s.log.Info().
		Str("number", out.Number).
		Str("date", date.Format("2006-01-02")).
		Str("window", out.Window().Clock()).
		Msg("reservation rescheduled")
	return out, nil
}

// AvailableSlots answers "what can I book" for a date and variant,
// optionally narrowed to one therapist. A slot is offered only when at
// least one active room is also free; rooms are a shared pool. Output
// is ordered by start, then therapist name. Read-only and lock-free;
// booking re-validates under lock.
func (s *Service) AvailableSlots(ctx context.Context, date time.Time, variantID uuid.UUID, therapistID *uuid.UUID) ([]SlotOffer, error) {
	metrics.SlotQueries.Inc()
	date = day(date)

	v, err := s.variant(ctx, variantID)
	if err != nil {
		return nil, err
	}
	entries, err := s.roster.WorkingTherapists(ctx, date)
	if err != nil {
		return nil, err
	}
	rooms, err := s.rooms.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	roomBusy := make(map[uuid.UUID][]timerange.Range, len(rooms))
	for _, rm := range rooms {
		busy, err := s.cal.busy(ctx, RoomResource(rm.ID), date, nil)
		if err != nil {
			return nil, err
		}
		roomBusy[rm.ID] = busy
	}

	var offers []SlotOffer
	for _, e := range entries {
		if therapistID != nil && e.TherapistID != *therapistID {
			continue
		}
		slots, err := s.cal.FreeSlots(ctx, TherapistResource(e.TherapistID), date, e.Window, s.step, v.DurationMinutes, nil)
		if err != nil {
			return nil, err
		}
		for _, w := range slots {
			for _, rm := range rooms {
				if freeAgainst(roomBusy[rm.ID], w) {
					offers = append(offers, SlotOffer{
						TherapistID:   e.TherapistID,
						TherapistName: e.TherapistName,
						RoomID:        rm.ID,
						Window:        w,
					})
					break
				}
			}
		}
	}

	sort.SliceStable(offers, func(i, j int) bool {
		if offers[i].Window.Start != offers[j].Window.Start {
			return offers[i].Window.Start < offers[j].Window.Start
		}
		return offers[i].TherapistName < offers[j].TherapistName
	})
	return offers, nil
}

// -- Read surface --

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Reservation, error) {
	return s.get(ctx, id)
}

func (s *Service) GetByNumber(ctx context.Context, number string) (*Reservation, error) {
	res, err := s.repo.GetByNumber(ctx, number)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, newError(KindNotFound, "reservation %s not found", number)
	}
	return res, err
}

func (s *Service) ListByDate(ctx context.Context, date time.Time) ([]*Reservation, error) {
	return s.repo.ListByDate(ctx, day(date))
}

func (s *Service) ListByClient(ctx context.Context, clientID uuid.UUID, limit, offset int) ([]*Reservation, int, error) {
	return s.repo.ListByClient(ctx, clientID, limit, offset)
}

// DayScheduleEntry groups one therapist's reservations for the grid.
type DayScheduleEntry struct {
	TherapistID  uuid.UUID      `json:"therapist_id"`
	Reservations []*Reservation `json:"reservations"`
}

// DaySchedule returns the date's reservations grouped per therapist,
// groups ordered by their earliest start.
func (s *Service) DaySchedule(ctx context.Context, date time.Time) ([]DayScheduleEntry, error) {
	items, err := s.repo.ListByDate(ctx, day(date))
	if err != nil {
		return nil, err
	}
	index := make(map[uuid.UUID]int)
	var entries []DayScheduleEntry
	for _, r := range items {
		i, ok := index[r.TherapistID]
		if !ok {
			i = len(entries)
			index[r.TherapistID] = i
			entries = append(entries, DayScheduleEntry{TherapistID: r.TherapistID})
		}
		entries[i].Reservations = append(entries[i].Reservations, r)
	}
	return entries, nil
}

// NoShowCandidates lists CONFIRMED reservations whose window has fully
// passed. Consumed by the periodic sweep; the transition itself stays
// an explicit operator action.
func (s *Service) NoShowCandidates(ctx context.Context, now time.Time) ([]*Reservation, error) {
	return s.repo.ListOverdueConfirmed(ctx, now)
}

// -- helpers --

func (s *Service) get(ctx context.Context, id uuid.UUID) (*Reservation, error) {
	res, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, newError(KindNotFound, "reservation not found")
	}
	return res, err
}

func (s *Service) variant(ctx context.Context, id uuid.UUID) (*catalog.Variant, error) {
	v, err := s.variants.GetVariant(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, newError(KindNotFound, "service variant not found")
	}
	return v, err
}

func countRejection(err error) {
	if kind, ok := KindOf(err); ok {
		metrics.BookingConflicts.WithLabelValues(string(kind)).Inc()
	}
}

func day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
