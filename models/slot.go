package models

import "fmt"

// Slot represents a candidate or booked consultation interval on a single day.
// Times are minutes from midnight; the interval is half-open [Start, End).
type Slot struct {
	Date  string `bson:"date" json:"date"` // "2006-01-02"
	Start int    `bson:"start" json:"start"`
	End   int    `bson:"end" json:"end"`
	Label string `bson:"-" json:"label,omitempty"` // e.g. "12:00 PM - 12:30 PM"
}

// Overlaps reports whether the slot collides with [start, end) on the same day.
func (s Slot) Overlaps(date string, start, end int) bool {
	return s.Date == date && s.Start < end && s.End > start
}

// FormatMinutes renders minutes-from-midnight as a 12-hour clock label.
func FormatMinutes(m int) string {
	h, min := m/60, m%60
	suffix := "AM"
	if h >= 12 {
		suffix = "PM"
	}
	display := h % 12
	if display == 0 {
		display = 12
	}
	return fmt.Sprintf("%d:%02d %s", display, min, suffix)
}

// SlotLabel builds the human-readable label for an interval.
func SlotLabel(start, end int) string {
	return fmt.Sprintf("%s - %s", FormatMinutes(start), FormatMinutes(end))
}
