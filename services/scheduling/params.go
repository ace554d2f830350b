package scheduling

import (
	"time"

	"advisorly/config"
)

// Window is a half-open time-of-day range in minutes from midnight.
type Window struct {
	Start int
	End   int
}

// Params carries the calendar policy. Everything here is injected at
// construction; the engine itself hardcodes nothing.
type Params struct {
	WorkingDays  map[time.Weekday]bool
	DayStart     int // minutes from midnight
	DayEnd       int
	SlotDuration int // minutes
	Windows      map[string]Window
}

// DefaultParams is the stock advisor calendar: Monday through Saturday,
// 10:00-18:00, 30-minute consultations.
func DefaultParams() Params {
	return Params{
		WorkingDays: map[time.Weekday]bool{
			time.Monday: true, time.Tuesday: true, time.Wednesday: true,
			time.Thursday: true, time.Friday: true, time.Saturday: true,
		},
		DayStart:     600,
		DayEnd:       1080,
		SlotDuration: 30,
		Windows: map[string]Window{
			"morning":   {Start: 600, End: 720},
			"afternoon": {Start: 720, End: 960},
			"evening":   {Start: 960, End: 1080},
			"any":       {Start: 600, End: 1080},
		},
	}
}

// ParamsFromConfig builds the calendar policy from application configuration.
func ParamsFromConfig() Params {
	p := DefaultParams()
	cfg := config.AppConfig
	if len(cfg.WorkingDays) > 0 {
		days := make(map[time.Weekday]bool, len(cfg.WorkingDays))
		for _, d := range cfg.WorkingDays {
			days[time.Weekday(d)] = true
		}
		p.WorkingDays = days
	}
	if cfg.WorkingHoursStart > 0 {
		p.DayStart = cfg.WorkingHoursStart
	}
	if cfg.WorkingHoursEnd > 0 {
		p.DayEnd = cfg.WorkingHoursEnd
	}
	if cfg.SlotDurationMinutes > 0 {
		p.SlotDuration = cfg.SlotDurationMinutes
	}
	// The four windows keep their fixed names but track the working hours.
	p.Windows = map[string]Window{
		"morning":   {Start: p.DayStart, End: 720},
		"afternoon": {Start: 720, End: 960},
		"evening":   {Start: 960, End: p.DayEnd},
		"any":       {Start: p.DayStart, End: p.DayEnd},
	}
	return p
}

// IsWorkingDay reports whether the calendar accepts bookings on t's weekday.
func (p Params) IsWorkingDay(t time.Time) bool {
	return p.WorkingDays[t.Weekday()]
}

// WindowRange resolves a window name, defaulting to "any" for unknown names.
func (p Params) WindowRange(name string) Window {
	if w, ok := p.Windows[name]; ok {
		return w
	}
	return p.Windows["any"]
}

// WindowFor buckets a specific time into one of the named windows.
func (p Params) WindowFor(minutes int) string {
	for _, name := range []string{"morning", "afternoon", "evening"} {
		if w, ok := p.Windows[name]; ok && minutes >= w.Start && minutes < w.End {
			return name
		}
	}
	return "any"
}
