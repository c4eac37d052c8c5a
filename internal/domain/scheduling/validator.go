package scheduling

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/spa/spa/pkg/timerange"
)

// RosterProvider exposes who works when. Satisfied by staff.Service.
type RosterProvider interface {
	// WorkingWindow reports the therapist's working interval on the
	// date; false when there is no WORKING shift that day.
	WorkingWindow(ctx context.Context, therapistID uuid.UUID, date time.Time) (timerange.Range, bool, error)
}

// ValidateRequest is a proposed booking window to check.
type ValidateRequest struct {
	TherapistID uuid.UUID
	RoomID      uuid.UUID
	Date        time.Time
	Window      timerange.Range
	// Duration is the snapshot duration the window must match, taken
	// from the variant at create time or from the row on reschedule.
	Duration int
	// Exclude makes conflict checks ignore the reservation being
	// moved, so a booking never conflicts with itself.
	Exclude *uuid.UUID
	// Reschedule skips the past-start check; moving an existing
	// booking is an operator action, not a new commitment.
	Reschedule bool
}

// Validator runs the ordered conflict checks for a proposed booking.
// Checks short-circuit on the first failure and every rejection carries
// a Kind.
type Validator struct {
	cal    *Calendar
	roster RosterProvider
	grace  time.Duration
	now    func() time.Time
}

func NewValidator(cal *Calendar, roster RosterProvider, graceMinutes int) *Validator {
	return &Validator{
		cal:    cal,
		roster: roster,
		grace:  time.Duration(graceMinutes) * time.Minute,
		now:    time.Now,
	}
}

func (v *Validator) Validate(ctx context.Context, req ValidateRequest) error {
	if req.Window.Duration() != req.Duration {
		return newError(KindInvalidDuration, "window %s is %d minutes, service takes %d",
			req.Window.Clock(), req.Window.Duration(), req.Duration)
	}

	working, ok, err := v.roster.WorkingWindow(ctx, req.TherapistID, req.Date)
	if err != nil {
		return err
	}
	if !ok || !timerange.Contains(working, req.Window) {
		return newError(KindOutsideWorkingHours, "therapist is not rostered for %s on %s",
			req.Window.Clock(), req.Date.Format("2006-01-02"))
	}

	free, err := v.cal.IsFree(ctx, TherapistResource(req.TherapistID), req.Date, req.Window, req.Exclude)
	if err != nil {
		return err
	}
	if !free {
		return newError(KindTherapistConflict, "therapist already booked during %s", req.Window.Clock())
	}

	free, err = v.cal.IsFree(ctx, RoomResource(req.RoomID), req.Date, req.Window, req.Exclude)
	if err != nil {
		return err
	}
	if !free {
		return newError(KindRoomConflict, "room already booked during %s", req.Window.Clock())
	}

	if !req.Reschedule {
		start := req.Date.Add(time.Duration(req.Window.Start) * time.Minute)
		if start.Before(v.now().Add(-v.grace)) {
			return newError(KindPastDateTime, "start %s %s is in the past",
				req.Date.Format("2006-01-02"), timerange.FormatMinute(req.Window.Start))
		}
	}

	return nil
}
