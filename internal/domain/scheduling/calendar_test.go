package scheduling

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/spa/spa/pkg/timerange"
)

func seedReservation(t *testing.T, repo *mockRepo, therapistID, roomID uuid.UUID, start, end int, status Status) *Reservation {
	t.Helper()
	res := &Reservation{
		ID:            uuid.New(),
		Number:        newNumber(),
		ClientID:      uuid.New(),
		TherapistID:   therapistID,
		RoomID:        roomID,
		ServiceID:     uuid.New(),
		VariantID:     uuid.New(),
		ReservedDate:  testDate,
		StartMinute:   start,
		EndMinute:     end,
		Status:        status,
		PaymentStatus: PaymentUnpaid,
	}
	if err := repo.Create(context.Background(), res); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return res
}

func TestIsFree(t *testing.T) {
	repo := newMockRepo()
	cal := NewCalendar(repo)
	therapistID, roomID := uuid.New(), uuid.New()
	seedReservation(t, repo, therapistID, roomID, 600, 660, StatusConfirmed)

	tests := []struct {
		name   string
		window timerange.Range
		want   bool
	}{
		{"same window", timerange.Range{Start: 600, End: 660}, false},
		{"partial overlap", timerange.Range{Start: 630, End: 690}, false},
		{"covering", timerange.Range{Start: 570, End: 690}, false},
		{"abutting after", timerange.Range{Start: 660, End: 720}, true},
		{"abutting before", timerange.Range{Start: 540, End: 600}, true},
		{"disjoint", timerange.Range{Start: 720, End: 780}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			free, err := cal.IsFree(context.Background(), TherapistResource(therapistID), testDate, tt.window, nil)
			if err != nil {
				t.Fatalf("IsFree: %v", err)
			}
			if free != tt.want {
				t.Errorf("IsFree(%s) = %v, want %v", tt.window, free, tt.want)
			}
		})
	}
}

func TestIsFreeIgnoresInactiveStatuses(t *testing.T) {
	repo := newMockRepo()
	cal := NewCalendar(repo)
	therapistID, roomID := uuid.New(), uuid.New()

	for _, status := range []Status{StatusCancelled, StatusNoShow, StatusCompleted} {
		seedReservation(t, repo, therapistID, roomID, 600, 660, status)
	}

	free, err := cal.IsFree(context.Background(), TherapistResource(therapistID), testDate, timerange.Range{Start: 600, End: 660}, nil)
	if err != nil {
		t.Fatalf("IsFree: %v", err)
	}
	if !free {
		t.Error("released intervals must not count as busy")
	}
}

func TestIsFreeExclude(t *testing.T) {
	repo := newMockRepo()
	cal := NewCalendar(repo)
	therapistID, roomID := uuid.New(), uuid.New()
	res := seedReservation(t, repo, therapistID, roomID, 600, 660, StatusConfirmed)

	free, err := cal.IsFree(context.Background(), TherapistResource(therapistID), testDate, timerange.Range{Start: 600, End: 660}, &res.ID)
	if err != nil {
		t.Fatalf("IsFree: %v", err)
	}
	if !free {
		t.Error("excluded reservation must not conflict with itself")
	}
}

func TestFreeSlotsBoundary(t *testing.T) {
	repo := newMockRepo()
	cal := NewCalendar(repo)
	working := timerange.Range{Start: 600, End: 1080} // 10:00-18:00

	slots, err := cal.FreeSlots(context.Background(), TherapistResource(uuid.New()), testDate, working, 30, 90, nil)
	if err != nil {
		t.Fatalf("FreeSlots: %v", err)
	}
	if len(slots) == 0 {
		t.Fatal("expected slots")
	}
	last := slots[len(slots)-1]
	if last.Start != 990 {
		t.Errorf("last slot starts at %s, want 16:30", timerange.FormatMinute(last.Start))
	}
	if slots[0].Start != 600 {
		t.Errorf("first slot starts at %s, want 10:00", timerange.FormatMinute(slots[0].Start))
	}
}

func TestFreeSlotsSkipBusy(t *testing.T) {
	repo := newMockRepo()
	cal := NewCalendar(repo)
	therapistID, roomID := uuid.New(), uuid.New()
	seedReservation(t, repo, therapistID, roomID, 600, 660, StatusNew)
	working := timerange.Range{Start: 600, End: 1080}

	slots, err := cal.FreeSlots(context.Background(), TherapistResource(therapistID), testDate, working, 30, 60, nil)
	if err != nil {
		t.Fatalf("FreeSlots: %v", err)
	}
	if len(slots) == 0 {
		t.Fatal("expected slots")
	}
	if slots[0].Start != 660 {
		t.Errorf("first free slot starts at %s, want 11:00", timerange.FormatMinute(slots[0].Start))
	}
	for i := 1; i < len(slots); i++ {
		if slots[i].Start <= slots[i-1].Start {
			t.Fatal("slots not strictly ascending")
		}
	}
}

func TestFreeSlotsRestartable(t *testing.T) {
	repo := newMockRepo()
	cal := NewCalendar(repo)
	therapistID, roomID := uuid.New(), uuid.New()
	seedReservation(t, repo, therapistID, roomID, 720, 780, StatusConfirmed)
	working := timerange.Range{Start: 600, End: 1080}

	first, err := cal.FreeSlots(context.Background(), TherapistResource(therapistID), testDate, working, 30, 60, nil)
	if err != nil {
		t.Fatalf("FreeSlots: %v", err)
	}
	second, err := cal.FreeSlots(context.Background(), TherapistResource(therapistID), testDate, working, 30, 60, nil)
	if err != nil {
		t.Fatalf("FreeSlots: %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("repeated query differs: %d vs %d slots", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("slot %d differs: %s vs %s", i, first[i], second[i])
		}
	}
}
