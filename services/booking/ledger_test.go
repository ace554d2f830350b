package booking

import (
	"context"
	"testing"

	ledgerRepo "advisorly/database/repository/ledger"
	"advisorly/models"
)

func newTestLedger() *DefaultLedgerService {
	return NewDefaultLedgerService(ledgerRepo.NewMemoryRepository())
}

func TestGenerateBookingCodeFormatAndUniqueness(t *testing.T) {
	issued := make(map[string]struct{})
	for i := 0; i < 10000; i++ {
		code, err := GenerateBookingCode(issued)
		if err != nil {
			t.Fatalf("generation %d failed: %v", i, err)
		}
		if !CodePattern.MatchString(code) {
			t.Fatalf("code %q does not match pattern", code)
		}
		if _, dup := issued[code]; dup {
			t.Fatalf("duplicate code issued: %q", code)
		}
		issued[code] = struct{}{}
	}
}

func TestExtractBookingCode(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"my code is NL-A742", "NL-A742"},
		{"it was nl-a742 I think", "NL-A742"},
		{"code AB-12CD please", "AB-12CD"},
		{"I have no idea", ""},
		{"X-123 is not valid", ""},
	}
	for _, tc := range cases {
		if got := ExtractBookingCode(tc.text); got != tc.want {
			t.Errorf("ExtractBookingCode(%q) = %q, want %q", tc.text, got, tc.want)
		}
	}
}

func TestCreateBookingForcesWaitlistOnConflict(t *testing.T) {
	svc := newTestLedger()
	ctx := context.Background()
	slot := models.Slot{Date: "2026-09-01", Start: 720, End: 750}

	first, err := svc.CreateBooking(ctx, "tax_planning", slot)
	if err != nil {
		t.Fatalf("first booking failed: %v", err)
	}
	if first.IsWaitlist {
		t.Fatalf("first booking should not be waitlisted")
	}

	second, err := svc.CreateBooking(ctx, "insurance_review", slot)
	if err != nil {
		t.Fatalf("second booking failed: %v", err)
	}
	if !second.IsWaitlist {
		t.Fatalf("second booking for a taken interval must be forced onto the waitlist")
	}
	if second.Code == first.Code {
		t.Fatalf("codes must be unique, both got %q", first.Code)
	}

	// Waitlisted records never occupy the interval index.
	conflict, overlapping, err := svc.CheckConflict(ctx, slot.Date, slot.Start, slot.End, first.Code)
	if err != nil {
		t.Fatalf("CheckConflict: %v", err)
	}
	if conflict {
		t.Fatalf("waitlist entry must not block the interval, got overlaps %v", overlapping)
	}
}

func TestRescheduleRoundTrip(t *testing.T) {
	svc := newTestLedger()
	ctx := context.Background()

	created, err := svc.CreateBooking(ctx, "retirement_planning", models.Slot{Date: "2026-09-01", Start: 720, End: 750})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	moved, err := svc.RescheduleBooking(ctx, created.Code, models.Slot{Date: "2026-09-02", Start: 840, End: 870})
	if err != nil {
		t.Fatalf("reschedule: %v", err)
	}
	if moved.Code != created.Code {
		t.Errorf("code changed on reschedule: %q -> %q", created.Code, moved.Code)
	}
	if moved.Status != models.BookingStatusRescheduled {
		t.Errorf("status = %q, want %q", moved.Status, models.BookingStatusRescheduled)
	}
	if moved.Date != "2026-09-02" || moved.Start != 840 || moved.End != 870 {
		t.Errorf("slot not updated: %+v", moved)
	}
	if !moved.UpdatedAt.After(created.CreatedAt) && !moved.UpdatedAt.Equal(created.CreatedAt) {
		t.Errorf("UpdatedAt was not bumped")
	}

	// The old interval is free again.
	conflict, _, err := svc.CheckConflict(ctx, "2026-09-01", 720, 750, "")
	if err != nil {
		t.Fatalf("CheckConflict: %v", err)
	}
	if conflict {
		t.Errorf("old interval should be free after reschedule")
	}
}

func TestRescheduleIntoTakenIntervalConflicts(t *testing.T) {
	svc := newTestLedger()
	ctx := context.Background()

	blocker, err := svc.CreateBooking(ctx, "tax_planning", models.Slot{Date: "2026-09-03", Start: 600, End: 630})
	if err != nil {
		t.Fatalf("create blocker: %v", err)
	}
	victim, err := svc.CreateBooking(ctx, "estate_planning", models.Slot{Date: "2026-09-03", Start: 660, End: 690})
	if err != nil {
		t.Fatalf("create victim: %v", err)
	}

	if _, err := svc.RescheduleBooking(ctx, victim.Code, blocker.Slot()); !HasCode(err, CodeConflict) {
		t.Fatalf("expected conflictError, got %v", err)
	}

	// A booking may be rescheduled onto its own interval.
	if _, err := svc.RescheduleBooking(ctx, victim.Code, victim.Slot()); err != nil {
		t.Fatalf("reschedule onto own interval: %v", err)
	}
}

func TestCancelIsLogicalAndIdempotent(t *testing.T) {
	svc := newTestLedger()
	ctx := context.Background()

	created, err := svc.CreateBooking(ctx, "loan_consultation", models.Slot{Date: "2026-09-04", Start: 900, End: 930})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	ok, err := svc.CancelBooking(ctx, created.Code)
	if err != nil || !ok {
		t.Fatalf("cancel = (%v, %v), want (true, nil)", ok, err)
	}

	// Second cancel is a no-op, not an error.
	ok, err = svc.CancelBooking(ctx, created.Code)
	if err != nil || ok {
		t.Fatalf("double cancel = (%v, %v), want (false, nil)", ok, err)
	}

	// Unknown code likewise.
	ok, err = svc.CancelBooking(ctx, "ZZ-999")
	if err != nil || ok {
		t.Fatalf("cancel unknown = (%v, %v), want (false, nil)", ok, err)
	}

	// Tombstone retained for audit, interval released.
	record, err := svc.GetBooking(ctx, created.Code)
	if err != nil {
		t.Fatalf("cancelled record must survive: %v", err)
	}
	if record.Status != models.BookingStatusCancelled {
		t.Errorf("status = %q, want cancelled", record.Status)
	}
	conflict, _, err := svc.CheckConflict(ctx, "2026-09-04", 900, 930, "")
	if err != nil {
		t.Fatalf("CheckConflict: %v", err)
	}
	if conflict {
		t.Errorf("cancelled booking must not occupy its interval")
	}
}

func TestCreateBookingValidation(t *testing.T) {
	svc := newTestLedger()
	ctx := context.Background()

	if _, err := svc.CreateBooking(ctx, "", models.Slot{Date: "2026-09-05", Start: 600, End: 630}); !HasCode(err, CodeValidation) {
		t.Errorf("missing topic: expected validationError, got %v", err)
	}
	if _, err := svc.CreateBooking(ctx, "tax_planning", models.Slot{}); !HasCode(err, CodeValidation) {
		t.Errorf("missing slot: expected validationError, got %v", err)
	}
}
