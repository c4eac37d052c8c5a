package staff

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spa/spa/pkg/timerange"
)

type Service struct {
	therapists TherapistRepository
	shifts     ShiftRepository
}

func NewService(therapists TherapistRepository, shifts ShiftRepository) *Service {
	return &Service{therapists: therapists, shifts: shifts}
}

// -- Therapists --

func (s *Service) CreateTherapist(ctx context.Context, t *Therapist) error {
	t.FullName = strings.TrimSpace(t.FullName)
	if t.FullName == "" {
		return fmt.Errorf("full_name is required")
	}
	return s.therapists.Create(ctx, t)
}

func (s *Service) GetTherapist(ctx context.Context, id uuid.UUID) (*Therapist, error) {
	return s.therapists.GetByID(ctx, id)
}

func (s *Service) UpdateTherapist(ctx context.Context, t *Therapist) error {
	t.FullName = strings.TrimSpace(t.FullName)
	if t.FullName == "" {
		return fmt.Errorf("full_name is required")
	}
	return s.therapists.Update(ctx, t)
}

func (s *Service) DeleteTherapist(ctx context.Context, id uuid.UUID) error {
	return s.therapists.Delete(ctx, id)
}

func (s *Service) ListTherapists(ctx context.Context, activeOnly bool) ([]*Therapist, error) {
	return s.therapists.List(ctx, activeOnly)
}

// -- Shifts --

func validateShift(sh *Shift) error {
	if sh.TherapistID == uuid.Nil {
		return fmt.Errorf("therapist_id is required")
	}
	if sh.ShiftDate.IsZero() {
		return fmt.Errorf("shift_date is required")
	}
	if !sh.Status.Valid() {
		return fmt.Errorf("invalid shift status: %s", sh.Status)
	}
	if sh.Status == ShiftWorking && !sh.Window().Valid() {
		return fmt.Errorf("working shift needs a valid time window")
	}
	return nil
}

func (s *Service) UpsertShift(ctx context.Context, sh *Shift) error {
	if err := validateShift(sh); err != nil {
		return err
	}
	if _, err := s.therapists.GetByID(ctx, sh.TherapistID); err != nil {
		return fmt.Errorf("therapist not found")
	}
	sh.ShiftDate = day(sh.ShiftDate)
	return s.shifts.Upsert(ctx, sh)
}

// UpsertWeek replaces the roster rows for a set of shift entries in one
// call, a convenience for weekly roster maintenance.
func (s *Service) UpsertWeek(ctx context.Context, shifts []*Shift) error {
	for i, sh := range shifts {
		if err := validateShift(sh); err != nil {
			return fmt.Errorf("shift %d: %w", i, err)
		}
	}
	for _, sh := range shifts {
		sh.ShiftDate = day(sh.ShiftDate)
		if err := s.shifts.Upsert(ctx, sh); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) ListShifts(ctx context.Context, therapistID uuid.UUID, from, to time.Time) ([]*Shift, error) {
	return s.shifts.ListByTherapist(ctx, therapistID, day(from), day(to))
}

func (s *Service) DeleteShift(ctx context.Context, id uuid.UUID) error {
	return s.shifts.Delete(ctx, id)
}

// -- Roster queries consumed by the scheduler --

// WorkingWindow reports the therapist's working interval on the date.
// The second return is false when there is no WORKING shift that day.
func (s *Service) WorkingWindow(ctx context.Context, therapistID uuid.UUID, date time.Time) (timerange.Range, bool, error) {
	sh, err := s.shifts.GetForDate(ctx, therapistID, day(date))
	if errors.Is(err, pgx.ErrNoRows) {
		// No roster row means the therapist is simply not scheduled.
		return timerange.Range{}, false, nil
	}
	if err != nil {
		return timerange.Range{}, false, err
	}
	if sh.Status != ShiftWorking {
		return timerange.Range{}, false, nil
	}
	return sh.Window(), true, nil
}

// WorkingTherapists lists therapists with a WORKING shift on the date,
// ordered by name.
func (s *Service) WorkingTherapists(ctx context.Context, date time.Time) ([]RosterEntry, error) {
	return s.shifts.ListWorkingOn(ctx, day(date))
}

func day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
