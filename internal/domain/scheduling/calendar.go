package scheduling

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/spa/spa/pkg/timerange"
)

// Calendar answers busy/free questions for a resource on a date. It is
// a read-only view recomputed from the reservation store on every call.
type Calendar struct {
	repo ReservationRepository
}

func NewCalendar(repo ReservationRepository) *Calendar {
	return &Calendar{repo: repo}
}

// busy returns the occupied intervals for the resource on the date,
// skipping the excluded reservation if one is given.
func (c *Calendar) busy(ctx context.Context, res Resource, date time.Time, exclude *uuid.UUID) ([]timerange.Range, error) {
	items, err := c.repo.ListActiveForResource(ctx, res, date)
	if err != nil {
		return nil, err
	}
	var intervals []timerange.Range
	for _, r := range items {
		if exclude != nil && r.ID == *exclude {
			continue
		}
		intervals = append(intervals, r.Window())
	}
	return intervals, nil
}

// IsFree reports whether the resource has no active reservation
// overlapping w on the date. exclude lets an update-in-place check
// ignore the reservation being modified.
func (c *Calendar) IsFree(ctx context.Context, res Resource, date time.Time, w timerange.Range, exclude *uuid.UUID) (bool, error) {
	intervals, err := c.busy(ctx, res, date, exclude)
	if err != nil {
		return false, err
	}
	return freeAgainst(intervals, w), nil
}

// FreeSlots returns every window of the given duration starting on a
// step boundary, contained in working and clear of busy intervals,
// ascending by start.
func (c *Calendar) FreeSlots(ctx context.Context, res Resource, date time.Time, working timerange.Range, step, duration int, exclude *uuid.UUID) ([]timerange.Range, error) {
	intervals, err := c.busy(ctx, res, date, exclude)
	if err != nil {
		return nil, err
	}
	return slotsAgainst(intervals, working, step, duration), nil
}

func freeAgainst(busy []timerange.Range, w timerange.Range) bool {
	for _, b := range busy {
		if timerange.Overlaps(b, w) {
			return false
		}
	}
	return true
}

func slotsAgainst(busy []timerange.Range, working timerange.Range, step, duration int) []timerange.Range {
	var slots []timerange.Range
	for _, start := range timerange.AlignedStarts(working, step, duration) {
		w := timerange.Range{Start: start, End: start + duration}
		if freeAgainst(busy, w) {
			slots = append(slots, w)
		}
	}
	return slots
}
