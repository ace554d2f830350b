package models

import "time"

// AssistantRequest is the payload coming from the frontend into /api/assistant/chat.
type AssistantRequest struct {
	SessionID string `json:"session_id,omitempty"` // empty on the first turn
	Text      string `json:"text"`                 // caller's message (voice→text or typed)
}

// AssistantResponse is what the assistant returns for one turn.
type AssistantResponse struct {
	SessionID   string       `json:"session_id"`
	Reply       string       `json:"reply"`
	State       DialogState  `json:"state"`
	Intent      Intent       `json:"intent,omitempty"`
	BookingCode string       `json:"booking_code,omitempty"`
	Commands    []ToolCommand `json:"-"`
	ToolResults []ToolResult `json:"tool_results,omitempty"`
}

// Tool command names dispatched to the external executor.
const (
	ToolEventCreateTentative    = "event_create_tentative"
	ToolEventUpdateTime         = "event_update_time"
	ToolEventCancel             = "event_cancel"
	ToolCalendarGetAvailability = "calendar_get_availability"
	ToolEmailAdvisorDraft       = "email_create_advisor_draft"
	ToolNotesAppendPrebooking   = "notes_append_prebooking"
)

// ToolCommand is a side-effect instruction emitted by the orchestrator for the
// external executor. Params are keyed by booking code so retries are idempotent.
type ToolCommand struct {
	Name   string         `json:"name"`
	Params map[string]any `json:"params"`
}

// ToolResult is the outcome of one executed tool command. TimedOut marks a
// bounded-timeout expiry, distinct from an explicit rejection.
type ToolResult struct {
	Name     string         `json:"name"`
	Success  bool           `json:"success"`
	Data     map[string]any `json:"data,omitempty"`
	Error    string         `json:"error,omitempty"`
	TimedOut bool           `json:"timed_out,omitempty"`
}

// TimePreference is the structured result of parsing a free-text day/time wish.
type TimePreference struct {
	Date             time.Time `json:"-"`
	HasDate          bool      `json:"has_date"`
	Window           string    `json:"window,omitempty"`        // morning/afternoon/evening/any
	SpecificTime     int       `json:"specific_time,omitempty"` // minutes from midnight, 0 = none
	IsWeekend        bool      `json:"is_weekend"`
	RequestedWeekend bool      `json:"requested_weekend"` // caller named a non-working day explicitly
}
