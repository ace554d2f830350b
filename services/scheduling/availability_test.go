package scheduling

import (
	"testing"
	"time"

	"advisorly/models"
)

// 2026-09-01 is a Tuesday, 2026-09-06 is a Sunday.
func tuesday() time.Time {
	return time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
}

func TestAvailableSlotsEmptyCalendar(t *testing.T) {
	e := NewEngine(DefaultParams())

	slots := e.AvailableSlots(tuesday(), "afternoon", 0, nil)
	if len(slots) != 2 {
		t.Fatalf("got %d slots, want 2", len(slots))
	}
	for i, s := range slots {
		if s.Date != "2026-09-01" {
			t.Errorf("slot %d date = %q", i, s.Date)
		}
		if s.End-s.Start != 30 {
			t.Errorf("slot %d duration = %d, want 30", i, s.End-s.Start)
		}
		if s.Start < 720 || s.End > 960 {
			t.Errorf("slot %d [%d,%d) outside afternoon window", i, s.Start, s.End)
		}
	}
	if slots[0].End > slots[1].Start {
		t.Errorf("offered slots overlap: %+v", slots)
	}
}

func TestAvailableSlotsSkipBooked(t *testing.T) {
	e := NewEngine(DefaultParams())
	existing := []models.Booking{
		{Code: "AB-111", Date: "2026-09-01", Start: 720, End: 750, Status: models.BookingStatusCreated},
	}

	slots := e.AvailableSlots(tuesday(), "afternoon", 30, existing)
	if len(slots) != 2 {
		t.Fatalf("got %d slots, want 2", len(slots))
	}
	for _, s := range slots {
		if s.Overlaps("2026-09-01", 720, 750) {
			t.Errorf("slot %+v overlaps existing booking", s)
		}
	}
	if slots[0].Start != 750 {
		t.Errorf("first free slot should start at 12:30, got %d", slots[0].Start)
	}
}

func TestAvailableSlotsIgnoreWaitlistAndCancelled(t *testing.T) {
	e := NewEngine(DefaultParams())
	existing := []models.Booking{
		{Code: "AB-111", Date: "2026-09-01", Start: 720, End: 750, Status: models.BookingStatusCreated, IsWaitlist: true},
		{Code: "AB-222", Date: "2026-09-01", Start: 750, End: 780, Status: models.BookingStatusCancelled},
	}

	slots := e.AvailableSlots(tuesday(), "afternoon", 30, existing)
	if len(slots) != 2 || slots[0].Start != 720 {
		t.Fatalf("waitlist/cancelled bookings must not block slots, got %+v", slots)
	}
}

func TestAvailableSlotsSundayShiftsToMonday(t *testing.T) {
	e := NewEngine(DefaultParams())
	sunday := time.Date(2026, 9, 6, 0, 0, 0, 0, time.UTC)

	slots := e.AvailableSlots(sunday, "morning", 30, nil)
	if len(slots) == 0 {
		t.Fatal("expected slots on the following Monday")
	}
	for _, s := range slots {
		if s.Date != "2026-09-07" {
			t.Errorf("slot date = %q, want Monday 2026-09-07", s.Date)
		}
	}
}

func TestAvailableSlotsExtendPastWindowEnd(t *testing.T) {
	e := NewEngine(DefaultParams())
	// Fill the whole evening window except nothing: block 16:00-17:30, leaving
	// one in-window slot and forcing the second from the extension region.
	existing := []models.Booking{
		{Code: "AB-111", Date: "2026-09-01", Start: 960, End: 1050, Status: models.BookingStatusCreated},
	}

	slots := e.AvailableSlots(tuesday(), "evening", 30, existing)
	if len(slots) != 1 {
		// Evening ends at working-hours end, so the extension is bounded away.
		t.Fatalf("got %d slots, want 1 (extension bounded by working hours)", len(slots))
	}
	if slots[0].Start != 1050 || slots[0].End != 1080 {
		t.Errorf("slot = %+v, want 17:30-18:00", slots[0])
	}

	// Morning ends at 12:00 with working hours until 18:00, so the extension
	// region past the window is usable.
	full := []models.Booking{
		{Code: "AB-222", Date: "2026-09-01", Start: 600, End: 690, Status: models.BookingStatusCreated},
	}
	slots = e.AvailableSlots(tuesday(), "morning", 30, full)
	if len(slots) != 2 {
		t.Fatalf("got %d slots, want 2 via extension", len(slots))
	}
	if slots[1].Start != 720 || slots[1].End != 750 {
		t.Errorf("extended slot = %+v, want 12:00-12:30", slots[1])
	}
}

func TestAvailableSlotsNoRoom(t *testing.T) {
	p := DefaultParams()
	e := NewEngine(p)
	var existing []models.Booking
	for start := p.DayStart; start < p.DayEnd; start += 30 {
		existing = append(existing, models.Booking{
			Code: "AB-111", Date: "2026-09-01", Start: start, End: start + 30,
			Status: models.BookingStatusCreated,
		})
	}

	if slots := e.AvailableSlots(tuesday(), "any", 30, existing); len(slots) != 0 {
		t.Fatalf("fully booked day must yield no slots, got %+v", slots)
	}
}

func TestCheckSlotOverlap(t *testing.T) {
	e := NewEngine(DefaultParams())
	existing := []models.Booking{
		{Code: "AB-111", Date: "2026-09-01", Start: 720, End: 750, Status: models.BookingStatusCreated},
	}

	has, overlapping := e.CheckSlotOverlap("2026-09-01", 730, 760, existing)
	if !has || len(overlapping) != 1 {
		t.Fatalf("expected overlap with AB-111, got %v %v", has, overlapping)
	}

	// Half-open intervals: touching boundaries do not collide.
	if has, _ := e.CheckSlotOverlap("2026-09-01", 750, 780, existing); has {
		t.Errorf("adjacent interval must not overlap")
	}
	if has, _ := e.CheckSlotOverlap("2026-09-02", 720, 750, existing); has {
		t.Errorf("different day must not overlap")
	}
}

func TestWindowFor(t *testing.T) {
	p := DefaultParams()
	cases := map[int]string{
		600:  "morning",
		719:  "morning",
		720:  "afternoon",
		900:  "afternoon",
		960:  "evening",
		1079: "evening",
		300:  "any",
	}
	for minutes, want := range cases {
		if got := p.WindowFor(minutes); got != want {
			t.Errorf("WindowFor(%d) = %q, want %q", minutes, got, want)
		}
	}
}
