package dialog

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	ledgerRepo "advisorly/database/repository/ledger"
	sessionRepo "advisorly/database/repository/session"
	"advisorly/models"
	bookingSvc "advisorly/services/booking"
	"advisorly/services/intelligence"
	"advisorly/services/scheduling"
	"advisorly/utils"
)

func newTestAssistant() (*DefaultAssistantService, bookingSvc.LedgerService) {
	ledger := bookingSvc.NewDefaultLedgerService(ledgerRepo.NewMemoryRepository())
	svc := NewDefaultAssistantService(
		sessionRepo.NewMemoryStore(),
		ledger,
		scheduling.NewEngine(scheduling.DefaultParams()),
		intelligence.NewDefaultAIService(""),
		0.6,
	)
	return svc, ledger
}

// workingDayPhrase returns a relative day reference that never lands on a
// Sunday, so tests stay deterministic regardless of when they run.
func workingDayPhrase() (string, string) {
	day := time.Now().AddDate(0, 0, 1)
	phrase := "tomorrow"
	if day.Weekday() == time.Sunday {
		day = day.AddDate(0, 0, 1)
		phrase = "day after tomorrow"
	}
	return phrase, day.Format(utils.DateLayout)
}

func turn(t *testing.T, svc *DefaultAssistantService, sessionID, text string) *models.AssistantResponse {
	t.Helper()
	resp, err := svc.ProcessTurn(context.Background(), sessionID, text)
	if err != nil {
		t.Fatalf("ProcessTurn(%q): %v", text, err)
	}
	return resp
}

func TestBookingHappyPath(t *testing.T) {
	svc, _ := newTestAssistant()
	phrase, wantDate := workingDayPhrase()

	resp := turn(t, svc, "", "I'd like to book a consultation")
	sid := resp.SessionID
	if resp.Intent != models.IntentBookNew || resp.State != models.StateIntentConfirmation {
		t.Fatalf("after first turn: intent=%q state=%q", resp.Intent, resp.State)
	}

	resp = turn(t, svc, sid, "yes")
	if resp.State != models.StateTopicSelection {
		t.Fatalf("expected topic question, got state %q: %s", resp.State, resp.Reply)
	}

	resp = turn(t, svc, sid, "I need help with my income tax filing")
	if resp.State != models.StateTopicConfirmation {
		t.Fatalf("expected topic confirmation, got state %q", resp.State)
	}

	resp = turn(t, svc, sid, "yes")
	if resp.State != models.StateTimePreference {
		t.Fatalf("expected time question, got state %q", resp.State)
	}

	resp = turn(t, svc, sid, phrase+" afternoon")
	if resp.State != models.StateSlotOffer {
		t.Fatalf("expected slot offer, got state %q: %s", resp.State, resp.Reply)
	}

	session, err := svc.Sessions.Get(context.Background(), sid)
	if err != nil {
		t.Fatal(err)
	}
	slots := session.Slots.AvailableSlots
	if len(slots) != 2 {
		t.Fatalf("offered %d slots, want exactly 2", len(slots))
	}
	for i, s := range slots {
		if s.Date != wantDate {
			t.Errorf("slot %d on %s, want %s", i, s.Date, wantDate)
		}
		if s.Start < 720 || s.End > 990 {
			t.Errorf("slot %d at %d-%d outside the afternoon range", i, s.Start, s.End)
		}
	}
	if slots[0].End > slots[1].Start {
		t.Errorf("offered slots overlap: %v", slots)
	}

	resp = turn(t, svc, sid, "the first one")
	if resp.State != models.StateSlotConfirmation {
		t.Fatalf("expected slot confirmation, got state %q", resp.State)
	}

	resp = turn(t, svc, sid, "yes, confirm")
	if resp.State != models.StateCompleted {
		t.Fatalf("expected completed, got state %q: %s", resp.State, resp.Reply)
	}
	if !bookingSvc.CodePattern.MatchString(resp.BookingCode) {
		t.Fatalf("booking code %q has wrong shape", resp.BookingCode)
	}

	// Commit emits the tool commands in a fixed order, calendar hold first.
	wantCmds := []string{
		models.ToolEventCreateTentative,
		models.ToolNotesAppendPrebooking,
		models.ToolEmailAdvisorDraft,
	}
	if len(resp.Commands) != len(wantCmds) {
		t.Fatalf("got %d commands, want %d: %+v", len(resp.Commands), len(wantCmds), resp.Commands)
	}
	for i, want := range wantCmds {
		if resp.Commands[i].Name != want {
			t.Errorf("command %d = %q, want %q", i, resp.Commands[i].Name, want)
		}
	}
}

func TestPIIRefusalLeavesStateUntouched(t *testing.T) {
	svc, _ := newTestAssistant()

	resp := turn(t, svc, "", "book a consultation please")
	sid := resp.SessionID
	turn(t, svc, sid, "yes")

	before, _ := svc.Sessions.Get(context.Background(), sid)

	resp = turn(t, svc, sid, "my number is 9876543210")
	if resp.Reply != msgPIIRefusal {
		t.Fatalf("expected the fixed refusal, got %q", resp.Reply)
	}

	after, _ := svc.Sessions.Get(context.Background(), sid)
	if after.CurrentState != before.CurrentState || after.Intent != before.Intent {
		t.Errorf("guardrail hit changed state: %q/%q -> %q/%q",
			before.CurrentState, before.Intent, after.CurrentState, after.Intent)
	}
	last := after.Messages[len(after.Messages)-2]
	if strings.Contains(last.Text, "9876543210") {
		t.Errorf("raw phone number stored in history: %q", last.Text)
	}
}

func TestInvestmentAdviceRefusal(t *testing.T) {
	svc, _ := newTestAssistant()
	resp := turn(t, svc, "", "which stock should I buy?")
	if resp.Reply != msgAdviceRefusal {
		t.Fatalf("expected the advice refusal, got %q", resp.Reply)
	}
	if resp.Intent != models.IntentNone {
		t.Errorf("refused turn classified an intent: %q", resp.Intent)
	}
}

func TestCancelFlow(t *testing.T) {
	svc, ledger := newTestAssistant()
	_, wantDate := workingDayPhrase()

	booked, err := ledger.CreateBooking(context.Background(), TopicTaxPlanning,
		models.Slot{Date: wantDate, Start: 720, End: 750})
	if err != nil {
		t.Fatal(err)
	}

	resp := turn(t, svc, "", "I want to cancel my booking")
	sid := resp.SessionID
	if resp.Intent != models.IntentCancel {
		t.Fatalf("intent = %q, want cancel", resp.Intent)
	}

	resp = turn(t, svc, sid, "yes")
	if resp.State != models.StateCancelCodeInput {
		t.Fatalf("expected code question, got state %q", resp.State)
	}

	resp = turn(t, svc, sid, "it's "+booked.Code)
	if resp.State != models.StateCancelConfirmation {
		t.Fatalf("expected cancel confirmation, got state %q: %s", resp.State, resp.Reply)
	}

	resp = turn(t, svc, sid, "yes, go ahead")
	if resp.State != models.StateCompleted {
		t.Fatalf("expected completed, got state %q", resp.State)
	}

	got, err := ledger.GetBooking(context.Background(), booked.Code)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != models.BookingStatusCancelled {
		t.Errorf("status = %q, want cancelled", got.Status)
	}
	active, err := ledger.ActiveBookings(context.Background(), wantDate)
	if err != nil {
		t.Fatal(err)
	}
	if len(active) != 0 {
		t.Errorf("cancelled interval still blocks the calendar: %+v", active)
	}
}

func TestUnknownCodeIsRePrompted(t *testing.T) {
	svc, _ := newTestAssistant()

	resp := turn(t, svc, "", "cancel my appointment")
	sid := resp.SessionID
	turn(t, svc, sid, "yes")

	resp = turn(t, svc, sid, "the code is ZZ-999")
	if resp.Reply != msgCodeNotFound {
		t.Fatalf("expected not-found reply, got %q", resp.Reply)
	}
	if resp.State != models.StateCancelCodeInput {
		t.Errorf("state = %q, want to stay at code input", resp.State)
	}
}

func TestNonWorkingDayIsDeclined(t *testing.T) {
	params := scheduling.DefaultParams()
	delete(params.WorkingDays, time.Saturday)
	svc := NewDefaultAssistantService(
		sessionRepo.NewMemoryStore(),
		bookingSvc.NewDefaultLedgerService(ledgerRepo.NewMemoryRepository()),
		scheduling.NewEngine(params),
		intelligence.NewDefaultAIService(""),
		0.6,
	)

	resp := turn(t, svc, "", "book me a consultation")
	sid := resp.SessionID
	turn(t, svc, sid, "yes")
	turn(t, svc, sid, "retirement planning")
	turn(t, svc, sid, "yes")

	resp = turn(t, svc, sid, "saturday morning")
	if resp.Reply != msgWeekendDecline {
		t.Fatalf("expected decline, got %q", resp.Reply)
	}
	if resp.State != models.StateTimePreference {
		t.Errorf("state = %q, want to stay at time preference", resp.State)
	}

	session, _ := svc.Sessions.Get(context.Background(), sid)
	if len(session.Slots.AvailableSlots) != 0 {
		t.Errorf("slot search ran for a declined day: %+v", session.Slots.AvailableSlots)
	}
}

func TestWaitlistWhenDayIsFull(t *testing.T) {
	svc, ledger := newTestAssistant()
	phrase, wantDate := workingDayPhrase()

	// Fill the whole working day.
	for start := 600; start < 1080; start += 30 {
		if _, err := ledger.CreateBooking(context.Background(), TopicTaxPlanning,
			models.Slot{Date: wantDate, Start: start, End: start + 30}); err != nil {
			t.Fatal(err)
		}
	}

	resp := turn(t, svc, "", "book a consultation")
	sid := resp.SessionID
	turn(t, svc, sid, "yes")
	turn(t, svc, sid, "insurance policy review")
	turn(t, svc, sid, "yes")

	resp = turn(t, svc, sid, phrase+" afternoon")
	if resp.State != models.StateWaitlistConfirmation {
		t.Fatalf("expected waitlist offer, got state %q: %s", resp.State, resp.Reply)
	}
	if resp.Reply != msgWaitlistOffer {
		t.Fatalf("reply = %q, want waitlist offer", resp.Reply)
	}

	resp = turn(t, svc, sid, "yes please")
	if resp.State != models.StateCompleted {
		t.Fatalf("expected completed, got state %q", resp.State)
	}

	got, err := ledger.GetBooking(context.Background(), resp.BookingCode)
	if err != nil {
		t.Fatal(err)
	}
	if !got.IsWaitlist {
		t.Error("booking should be a waitlist entry")
	}
	// Waitlist commits never place a calendar hold.
	for _, cmd := range resp.Commands {
		if cmd.Name == models.ToolEventCreateTentative {
			t.Errorf("waitlist commit emitted a calendar hold: %+v", resp.Commands)
		}
	}
}

func TestCompletedIsReEntrant(t *testing.T) {
	svc, ledger := newTestAssistant()
	phrase, _ := workingDayPhrase()

	resp := turn(t, svc, "", "book a consultation")
	sid := resp.SessionID
	turn(t, svc, sid, "yes")
	turn(t, svc, sid, "home loan advice")
	turn(t, svc, sid, "yes")
	turn(t, svc, sid, phrase+" morning")
	turn(t, svc, sid, "1")
	resp = turn(t, svc, sid, "yes")
	if resp.State != models.StateCompleted {
		t.Fatalf("setup booking failed: state %q, reply %s", resp.State, resp.Reply)
	}
	code := resp.BookingCode

	// The topic and code survive into the next cycle, so a follow-up cancel
	// skips straight to its confirmation.
	resp = turn(t, svc, sid, "actually, cancel that booking")
	if resp.Intent != models.IntentCancel {
		t.Fatalf("intent = %q, want cancel", resp.Intent)
	}
	resp = turn(t, svc, sid, "yes")
	if resp.State != models.StateCancelConfirmation {
		t.Fatalf("expected cancel confirmation without re-asking the code, got %q: %s", resp.State, resp.Reply)
	}
	resp = turn(t, svc, sid, "yes")
	if resp.State != models.StateCompleted {
		t.Fatalf("cancel did not complete: %q", resp.State)
	}

	got, err := ledger.GetBooking(context.Background(), code)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != models.BookingStatusCancelled {
		t.Errorf("status = %q, want cancelled", got.Status)
	}
}

func TestRescheduleFlow(t *testing.T) {
	svc, ledger := newTestAssistant()
	phrase, wantDate := workingDayPhrase()

	booked, err := ledger.CreateBooking(context.Background(), TopicLoanConsultation,
		models.Slot{Date: wantDate, Start: 720, End: 750})
	if err != nil {
		t.Fatal(err)
	}

	resp := turn(t, svc, "", "I need to reschedule my appointment")
	sid := resp.SessionID
	if resp.Intent != models.IntentReschedule {
		t.Fatalf("intent = %q, want reschedule", resp.Intent)
	}
	turn(t, svc, sid, "yes")

	resp = turn(t, svc, sid, fmt.Sprintf("code %s", booked.Code))
	if resp.State != models.StateRescheduleTime {
		t.Fatalf("expected time question, got state %q: %s", resp.State, resp.Reply)
	}

	resp = turn(t, svc, sid, phrase+" evening")
	if resp.State != models.StateSlotOffer {
		t.Fatalf("expected slot offer, got state %q: %s", resp.State, resp.Reply)
	}

	resp = turn(t, svc, sid, "option 2")
	if resp.State != models.StateRescheduleSlotConfirmation {
		t.Fatalf("expected reschedule confirmation, got state %q", resp.State)
	}

	resp = turn(t, svc, sid, "yes")
	if resp.State != models.StateCompleted {
		t.Fatalf("expected completed, got state %q: %s", resp.State, resp.Reply)
	}

	got, err := ledger.GetBooking(context.Background(), booked.Code)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != models.BookingStatusRescheduled {
		t.Errorf("status = %q, want rescheduled", got.Status)
	}
	if got.Start < 960 {
		t.Errorf("booking not moved to the evening: start=%d", got.Start)
	}
	// The old noon interval is free again.
	conflict, _, err := ledger.CheckConflict(context.Background(), wantDate, 720, 750, "")
	if err != nil {
		t.Fatal(err)
	}
	if conflict {
		t.Error("old interval still blocked after reschedule")
	}
}

func TestForgotCodeResetsToGreeting(t *testing.T) {
	svc, _ := newTestAssistant()

	resp := turn(t, svc, "", "reschedule my booking")
	sid := resp.SessionID
	turn(t, svc, sid, "yes")

	resp = turn(t, svc, sid, "I forgot my code")
	if resp.Reply != msgForgotCode {
		t.Fatalf("expected forgot-code help, got %q", resp.Reply)
	}
	if resp.State != models.StateGreeting {
		t.Errorf("state = %q, want greeting", resp.State)
	}
	if resp.Intent != models.IntentNone {
		t.Errorf("intent = %q, want cleared", resp.Intent)
	}
}

func TestWhatToPrepare(t *testing.T) {
	svc, _ := newTestAssistant()

	resp := turn(t, svc, "", "what should I prepare for my visit?")
	sid := resp.SessionID
	if resp.Intent != models.IntentWhatToPrepare {
		t.Fatalf("intent = %q, want what_to_prepare", resp.Intent)
	}
	turn(t, svc, sid, "yes")

	resp = turn(t, svc, sid, "it's about my income tax")
	if resp.Reply != PreparationChecklists[TopicTaxPlanning] {
		t.Fatalf("expected the tax checklist, got %q", resp.Reply)
	}
	if resp.State != models.StateCompleted {
		t.Errorf("state = %q, want completed", resp.State)
	}
}

func TestCheckAvailabilityChainsIntoBooking(t *testing.T) {
	svc, _ := newTestAssistant()
	phrase, wantDate := workingDayPhrase()

	resp := turn(t, svc, "", "what times are available "+phrase+"?")
	sid := resp.SessionID
	if resp.Intent != models.IntentCheckAvailability {
		t.Fatalf("intent = %q, want check_availability", resp.Intent)
	}
	turn(t, svc, sid, "yes")

	resp = turn(t, svc, sid, phrase+" morning")
	if resp.State != models.StateSlotOffer {
		t.Fatalf("expected slot offer, got state %q: %s", resp.State, resp.Reply)
	}
	if resp.Intent != models.IntentBookNew {
		t.Errorf("intent = %q, want chained into book_new", resp.Intent)
	}
	var gotLookup bool
	for _, cmd := range resp.Commands {
		if cmd.Name == models.ToolCalendarGetAvailability {
			gotLookup = true
			if cmd.Params["date"] != wantDate {
				t.Errorf("lookup date = %v, want %s", cmd.Params["date"], wantDate)
			}
		}
	}
	if !gotLookup {
		t.Error("availability check emitted no calendar lookup command")
	}
}
