package scheduling

import (
	"time"

	"advisorly/models"
	"advisorly/utils"
)

// maxOfferedSlots bounds how many candidates one availability answer carries.
const maxOfferedSlots = 2

// Engine generates conflict-free candidate slots within the configured
// calendar policy. "No slots" is an ordinary outcome, never an error.
type Engine struct {
	Params Params
}

func NewEngine(params Params) *Engine {
	return &Engine{Params: params}
}

// ResolveWorkingDay shifts a date forward to the next working day. Sunday
// resolves to Monday; a working day resolves to itself.
func (e *Engine) ResolveWorkingDay(date time.Time) time.Time {
	for i := 0; i < 7; i++ {
		if e.Params.IsWorkingDay(date) {
			return date
		}
		date = date.AddDate(0, 0, 1)
	}
	return date
}

// AvailableSlots enumerates up to two free durationMinutes slots on the given
// day within the named window. Non-working days shift to the next working day.
// When the window yields fewer than two free slots, the search extends one
// slot length past the window end, still bounded by working hours.
func (e *Engine) AvailableSlots(date time.Time, window string, durationMinutes int, existing []models.Booking) []models.Slot {
	if durationMinutes <= 0 {
		durationMinutes = e.Params.SlotDuration
	}
	day := e.ResolveWorkingDay(date)
	dateStr := day.Format(utils.DateLayout)

	w := e.Params.WindowRange(window)
	rangeStart := maxInt(w.Start, e.Params.DayStart)
	rangeEnd := minInt(w.End, e.Params.DayEnd)

	slots := e.enumerate(dateStr, rangeStart, rangeEnd, durationMinutes, existing)
	if len(slots) < maxOfferedSlots {
		// Best-effort extension one slot past the window, inside working hours.
		extendedEnd := minInt(rangeEnd+durationMinutes, e.Params.DayEnd)
		if extendedEnd > rangeEnd {
			extra := e.enumerate(dateStr, rangeEnd, extendedEnd, durationMinutes, existing)
			slots = append(slots, extra...)
		}
	}
	if len(slots) > maxOfferedSlots {
		slots = slots[:maxOfferedSlots]
	}
	return slots
}

func (e *Engine) enumerate(date string, from, to, duration int, existing []models.Booking) []models.Slot {
	var out []models.Slot
	for start := from; start+duration <= to; start += duration {
		end := start + duration
		if overlapsAny(date, start, end, existing) {
			continue
		}
		out = append(out, models.Slot{
			Date:  date,
			Start: start,
			End:   end,
			Label: models.SlotLabel(start, end),
		})
		if len(out) == maxOfferedSlots {
			break
		}
	}
	return out
}

// CheckSlotOverlap decides whether a specific requested interval collides with
// an existing active booking. The orchestrator uses the answer to choose
// between offering alternatives and offering the waitlist.
func (e *Engine) CheckSlotOverlap(date string, start, end int, existing []models.Booking) (bool, []models.Booking) {
	var overlapping []models.Booking
	for _, b := range existing {
		if !b.Active() {
			continue
		}
		if b.Slot().Overlaps(date, start, end) {
			overlapping = append(overlapping, b)
		}
	}
	return len(overlapping) > 0, overlapping
}

func overlapsAny(date string, start, end int, existing []models.Booking) bool {
	for _, b := range existing {
		if !b.Active() {
			continue
		}
		if b.Slot().Overlaps(date, start, end) {
			return true
		}
	}
	return false
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
