package intelligence

import (
	"strings"

	"advisorly/models"
)

// keywordIntents power the deterministic classifier used when the primary
// model call errors, rate-limits, or returns an unparseable result. Order
// matters: reschedule and cancel phrasing often also contains "book".
var keywordIntents = []struct {
	intent   models.Intent
	keywords []string
}{
	{models.IntentReschedule, []string{"reschedule", "move my", "shift my", "postpone", "change my booking", "change the time", "different time for my"}},
	{models.IntentCancel, []string{"cancel", "call off", "drop my booking", "don't want the appointment", "delete my booking"}},
	{models.IntentWhatToPrepare, []string{"prepare", "bring", "carry", "documents", "what do i need", "checklist"}},
	{models.IntentCheckAvailability, []string{"availability", "available", "free slots", "open slots", "any slots", "what times", "when can"}},
	{models.IntentBookNew, []string{"book", "appointment", "schedule", "consultation", "meet the advisor", "see an advisor", "slot"}},
}

// ClassifyByKeywords maps free text to an intent deterministically. Returns
// IntentNone when nothing matches.
func ClassifyByKeywords(text string) models.Intent {
	lower := strings.ToLower(text)
	for _, ki := range keywordIntents {
		for _, kw := range ki.keywords {
			if strings.Contains(lower, kw) {
				return ki.intent
			}
		}
	}
	return models.IntentNone
}

// ValidIntent checks membership in the fixed intent set.
func ValidIntent(intent models.Intent) bool {
	switch intent {
	case models.IntentBookNew, models.IntentReschedule, models.IntentCancel,
		models.IntentWhatToPrepare, models.IntentCheckAvailability:
		return true
	}
	return false
}
