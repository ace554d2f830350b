package dialog

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"advisorly/models"
	"advisorly/services/scheduling"
)

var (
	weekdayPattern  = regexp.MustCompile(`\b(next\s+|this\s+|coming\s+)?(sunday|monday|tuesday|wednesday|thursday|friday|saturday)\b`)
	clockPattern    = regexp.MustCompile(`\b(\d{1,2})(?::(\d{2}))?\s*(am|pm|a\.m\.|p\.m\.)?\b`)
	beforeAfterWord = regexp.MustCompile(`\b(after|before|around|at|by)\b`)
)

var weekdayByName = map[string]time.Weekday{
	"sunday": time.Sunday, "monday": time.Monday, "tuesday": time.Tuesday,
	"wednesday": time.Wednesday, "thursday": time.Thursday,
	"friday": time.Friday, "saturday": time.Saturday,
}

// ParseDateTimePreference extracts a concrete day and time window from free
// text. Relative references resolve against now; explicit times map onto the
// fixed windows. When the caller names a non-working day, RequestedWeekend is
// set so the orchestrator declines explicitly instead of silently shifting.
func ParseDateTimePreference(text string, now time.Time, params scheduling.Params) models.TimePreference {
	lower := strings.ToLower(text)
	pref := models.TimePreference{}

	namedDay := false
	switch {
	case strings.Contains(lower, "day after tomorrow"):
		pref.Date, pref.HasDate, namedDay = midnight(now.AddDate(0, 0, 2)), true, true
	case strings.Contains(lower, "tomorrow"):
		pref.Date, pref.HasDate, namedDay = midnight(now.AddDate(0, 0, 1)), true, true
	case strings.Contains(lower, "today"), strings.Contains(lower, "tonight"):
		pref.Date, pref.HasDate, namedDay = midnight(now), true, true
	case strings.Contains(lower, "weekend"):
		// "The weekend" in this calendar means Sunday, the one non-working day.
		pref.Date, pref.HasDate, namedDay = nextWeekday(now, time.Sunday, false), true, true
	default:
		if m := weekdayPattern.FindStringSubmatch(lower); m != nil {
			wd := weekdayByName[m[2]]
			skipWeek := strings.HasPrefix(strings.TrimSpace(m[1]), "next")
			pref.Date, pref.HasDate, namedDay = nextWeekday(now, wd, skipWeek), true, true
		}
	}

	if pref.HasDate {
		pref.IsWeekend = !params.IsWorkingDay(pref.Date)
		pref.RequestedWeekend = pref.IsWeekend && namedDay
	}

	pref.Window = parseWindow(lower, params)

	if minutes, ok := parseClock(lower, params); ok {
		pref.SpecificTime = minutes
		if pref.Window == "" {
			pref.Window = params.WindowFor(minutes)
		}
	}

	return pref
}

func parseWindow(lower string, params scheduling.Params) string {
	switch {
	case strings.Contains(lower, "before noon"), strings.Contains(lower, "morning"):
		return "morning"
	case strings.Contains(lower, "afternoon"), strings.Contains(lower, "after noon"), strings.Contains(lower, "midday"):
		return "afternoon"
	case strings.Contains(lower, "evening"), strings.Contains(lower, "tonight"), strings.Contains(lower, "late"):
		return "evening"
	case strings.Contains(lower, "noon"):
		return "afternoon"
	case strings.Contains(lower, "anytime"), strings.Contains(lower, "any time"), strings.Contains(lower, "whenever"):
		return "any"
	}
	return ""
}

// parseClock finds an explicit time like "3 PM", "10:30 am" or "after 4".
// Bare hours below the working-day start are read as afternoon/evening times.
func parseClock(lower string, params scheduling.Params) (int, bool) {
	matches := clockPattern.FindAllStringSubmatch(lower, -1)
	for _, m := range matches {
		hour, err := strconv.Atoi(m[1])
		if err != nil || hour > 23 {
			continue
		}
		minute := 0
		if m[2] != "" {
			minute, err = strconv.Atoi(m[2])
			if err != nil || minute > 59 {
				continue
			}
		}
		meridiem := strings.ReplaceAll(m[3], ".", "")
		switch meridiem {
		case "pm":
			if hour < 12 {
				hour += 12
			}
		case "am":
			if hour == 12 {
				hour = 0
			}
		default:
			// No am/pm marker and no minutes usually means a date fragment or a
			// bare count; only accept bare hours that plausibly mean a time.
			if m[2] == "" && !beforeAfterWord.MatchString(lower) {
				continue
			}
			if hour*60 < params.DayStart && hour <= 9 {
				hour += 12
			}
		}
		return hour*60 + minute, true
	}
	return 0, false
}

func nextWeekday(now time.Time, wd time.Weekday, skipWeek bool) time.Time {
	days := (int(wd) - int(now.Weekday()) + 7) % 7
	if days == 0 {
		days = 7
	}
	if skipWeek {
		days += 7
	}
	return midnight(now.AddDate(0, 0, days))
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
