package models

import (
	"encoding/json"
	"testing"
)

func TestTransitionToRecordsHistory(t *testing.T) {
	s := &Session{ID: "s1", CurrentState: StateInitial}

	s.TransitionTo(StateGreeting)
	s.TransitionTo(StateIntentConfirmation)

	if s.CurrentState != StateIntentConfirmation {
		t.Fatalf("current state = %q", s.CurrentState)
	}
	if len(s.Transitions) != 2 {
		t.Fatalf("recorded %d transitions, want 2", len(s.Transitions))
	}
	first := s.Transitions[0]
	if first.From != StateInitial || first.To != StateGreeting {
		t.Errorf("first transition = %+v", first)
	}
	if first.At.IsZero() {
		t.Error("transition missing timestamp")
	}
}

func TestSlotsMergeKeepsExistingValues(t *testing.T) {
	s := SessionSlots{Topic: "tax_planning", PreferredDay: "2026-09-02"}

	s.Merge(SessionSlots{PreferredWindow: "afternoon"})

	if s.Topic != "tax_planning" || s.PreferredDay != "2026-09-02" {
		t.Errorf("merge cleared existing slots: %+v", s)
	}
	if s.PreferredWindow != "afternoon" {
		t.Errorf("merge dropped the patch: %+v", s)
	}

	// Non-zero values overwrite.
	s.Merge(SessionSlots{Topic: "estate_planning"})
	if s.Topic != "estate_planning" {
		t.Errorf("merge did not overwrite topic: %+v", s)
	}
}

func TestSessionSurvivesJSONRoundTrip(t *testing.T) {
	s := Session{
		ID:           "s1",
		CurrentState: StateSlotOffer,
		Intent:       IntentBookNew,
		Slots: SessionSlots{
			Topic:          "loan_consultation",
			SelectedSlot:   &Slot{Date: "2026-09-02", Start: 720, End: 750},
			AvailableSlots: []Slot{{Date: "2026-09-02", Start: 720, End: 750}},
		},
	}

	data, err := json.Marshal(s)
	if err != nil {
		t.Fatal(err)
	}
	var got Session
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if got.CurrentState != StateSlotOffer || got.Intent != IntentBookNew {
		t.Errorf("state/intent lost in round trip: %+v", got)
	}
	if got.Slots.SelectedSlot == nil || got.Slots.SelectedSlot.Start != 720 {
		t.Errorf("selected slot lost in round trip: %+v", got.Slots)
	}
}

func TestAreRequiredSlotsFilled(t *testing.T) {
	cases := []struct {
		name  string
		s     Session
		want  bool
	}{
		{"book_new missing window", Session{Intent: IntentBookNew, Slots: SessionSlots{Topic: "tax_planning", PreferredDay: "2026-09-02"}}, false},
		{"book_new complete", Session{Intent: IntentBookNew, Slots: SessionSlots{Topic: "tax_planning", PreferredDay: "2026-09-02", PreferredWindow: "any"}}, true},
		{"reschedule missing code", Session{Intent: IntentReschedule, Slots: SessionSlots{PreferredDay: "2026-09-02", PreferredWindow: "any"}}, false},
		{"cancel needs only code", Session{Intent: IntentCancel, Slots: SessionSlots{BookingCode: "NL-A742"}}, true},
		{"prepare has no requirements", Session{Intent: IntentWhatToPrepare}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.s.AreRequiredSlotsFilled(); got != tc.want {
				t.Errorf("AreRequiredSlotsFilled() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestSlotOverlapsIsHalfOpen(t *testing.T) {
	s := Slot{Date: "2026-09-02", Start: 720, End: 750}

	if s.Overlaps("2026-09-02", 750, 780) {
		t.Error("adjacent interval should not overlap")
	}
	if !s.Overlaps("2026-09-02", 749, 780) {
		t.Error("one-minute overlap missed")
	}
	if s.Overlaps("2026-09-03", 720, 750) {
		t.Error("different day should not overlap")
	}
}
