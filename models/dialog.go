package models

import "time"

// DialogState identifies where a session currently sits in the conversation flow.
type DialogState string

const (
	StateInitial            DialogState = "initial"
	StateGreeting           DialogState = "greeting"
	StateIntentConfirmation DialogState = "intent_confirmation"

	// book_new sub-states.
	StateTopicSelection       DialogState = "topic_selection"
	StateTopicConfirmation    DialogState = "topic_confirmation"
	StateTimePreference       DialogState = "time_preference"
	StateSlotOffer            DialogState = "slot_offer"
	StateSlotConfirmation     DialogState = "slot_confirmation"
	StateWaitlistConfirmation DialogState = "waitlist_confirmation"

	// reschedule sub-states.
	StateRescheduleCodeInput        DialogState = "reschedule_code_input"
	StateRescheduleTime             DialogState = "reschedule_time"
	StateRescheduleSlotConfirmation DialogState = "reschedule_slot_confirmation"

	// cancel sub-states.
	StateCancelCodeInput    DialogState = "cancel_code_input"
	StateCancelConfirmation DialogState = "cancel_confirmation"

	StatePreparationInfo   DialogState = "preparation_info"
	StateAvailabilityCheck DialogState = "availability_check"

	// StateCompleted is terminal but re-entrant: a new intent restarts the cycle.
	StateCompleted DialogState = "completed"
	// StateError is terminal and unrecoverable.
	StateError DialogState = "error"
)

// Intent is the caller's confirmed goal for the current conversation cycle.
type Intent string

const (
	IntentNone              Intent = ""
	IntentBookNew           Intent = "book_new"
	IntentReschedule        Intent = "reschedule"
	IntentCancel            Intent = "cancel"
	IntentWhatToPrepare     Intent = "what_to_prepare"
	IntentCheckAvailability Intent = "check_availability"
)

// SessionSlots carries the values captured so far for the active intent.
// Zero values mean "not yet captured"; merges never clear a previously set slot.
type SessionSlots struct {
	Topic           string `json:"topic,omitempty"`
	PreferredDay    string `json:"preferred_day,omitempty"`    // "2006-01-02"
	PreferredWindow string `json:"preferred_window,omitempty"` // morning/afternoon/evening/any
	SpecificTime    int    `json:"specific_time,omitempty"`    // minutes from midnight, 0 = unset
	BookingCode     string `json:"booking_code,omitempty"`
	SelectedSlot    *Slot  `json:"selected_slot,omitempty"`
	AvailableSlots  []Slot `json:"available_slots,omitempty"`
}

// Merge applies the non-zero fields of patch on top of the existing slots.
func (s *SessionSlots) Merge(patch SessionSlots) {
	if patch.Topic != "" {
		s.Topic = patch.Topic
	}
	if patch.PreferredDay != "" {
		s.PreferredDay = patch.PreferredDay
	}
	if patch.PreferredWindow != "" {
		s.PreferredWindow = patch.PreferredWindow
	}
	if patch.SpecificTime != 0 {
		s.SpecificTime = patch.SpecificTime
	}
	if patch.BookingCode != "" {
		s.BookingCode = patch.BookingCode
	}
	if patch.SelectedSlot != nil {
		s.SelectedSlot = patch.SelectedSlot
	}
	if patch.AvailableSlots != nil {
		s.AvailableSlots = patch.AvailableSlots
	}
}

// Message is one entry of the ordered per-session conversation history.
type Message struct {
	Role string    `json:"role"` // "user" or "assistant"
	Text string    `json:"text"`
	At   time.Time `json:"at"`
}

// Transition records one state change in the ordered transition history.
type Transition struct {
	From DialogState `json:"from"`
	To   DialogState `json:"to"`
	At   time.Time   `json:"at"`
}

// Session holds per-caller dialog state between turns.
type Session struct {
	ID           string       `json:"session_id"`
	CurrentState DialogState  `json:"current_state"`
	Intent       Intent       `json:"intent,omitempty"`
	Slots        SessionSlots `json:"slots"`
	Messages     []Message    `json:"messages,omitempty"`
	Transitions  []Transition `json:"transitions,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// TransitionTo is the only legal way to change the session state. It appends
// a timestamped record to the transition history.
func (s *Session) TransitionTo(state DialogState) {
	now := time.Now().UTC()
	s.Transitions = append(s.Transitions, Transition{From: s.CurrentState, To: state, At: now})
	s.CurrentState = state
	s.UpdatedAt = now
}

// SetIntent records the classified intent without touching state or slots.
func (s *Session) SetIntent(intent Intent) {
	s.Intent = intent
	s.UpdatedAt = time.Now().UTC()
}

// UpdateSlots shallow-merges the patch into the captured slots.
func (s *Session) UpdateSlots(patch SessionSlots) {
	s.Slots.Merge(patch)
	s.UpdatedAt = time.Now().UTC()
}

// AppendMessage records one utterance or reply in the ordered history.
func (s *Session) AppendMessage(role, text string) {
	s.Messages = append(s.Messages, Message{Role: role, Text: text, At: time.Now().UTC()})
}

// AreRequiredSlotsFilled reports whether the active intent has everything it
// needs to commit. The rule set is intent-specific; intents without hard
// requirements always report true.
func (s *Session) AreRequiredSlotsFilled() bool {
	switch s.Intent {
	case IntentBookNew:
		return s.Slots.Topic != "" && s.Slots.PreferredDay != "" && s.Slots.PreferredWindow != ""
	case IntentReschedule:
		return s.Slots.BookingCode != "" && s.Slots.PreferredDay != "" && s.Slots.PreferredWindow != ""
	case IntentCancel:
		return s.Slots.BookingCode != ""
	default:
		return true
	}
}
