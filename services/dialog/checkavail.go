package dialog

import (
	"context"
	"time"

	"advisorly/models"
	"advisorly/utils"
)

func (s *DefaultAssistantService) handleCheckAvailability(ctx context.Context, session *models.Session, text string) (string, []models.ToolCommand, error) {
	if session.CurrentState == models.StateSlotOffer {
		// The caller decided to book one of the slots we just listed; hand off
		// to the booking flow.
		return s.handleBookNew(ctx, session, text)
	}

	pref := ParseDateTimePreference(text, time.Now(), s.Engine.Params)
	if pref.RequestedWeekend {
		return msgWeekendDecline, nil, nil
	}
	if !pref.HasDate {
		nlPref, confidence, err := s.AI.InterpretDateTime(ctx, text, time.Now())
		if err != nil || !nlPref.HasDate || confidence < s.ConfidenceThreshold {
			return msgTimeClarify, nil, nil
		}
		if !s.Engine.Params.IsWorkingDay(nlPref.Date) {
			return msgWeekendDecline, nil, nil
		}
		if pref.Window != "" && nlPref.Window == "" {
			nlPref.Window = pref.Window
		}
		pref = nlPref
	}

	window := pref.Window
	if window == "" {
		window = "any"
	}
	day := s.Engine.ResolveWorkingDay(pref.Date)
	dateStr := day.Format(utils.DateLayout)

	existing, err := s.Ledger.ActiveBookings(ctx, dateStr)
	if err != nil {
		return "", nil, err
	}
	slots := s.Engine.AvailableSlots(day, window, 0, existing)

	// Availability checks are read-only against the ledger but still surface
	// the calendar lookup to the tool channel.
	cmds := []models.ToolCommand{cmdGetAvailability(dateStr, window)}

	if len(slots) == 0 {
		return msgAvailability(nil), cmds, nil
	}

	// Chain straight into booking so "1" on the next turn picks a slot.
	session.UpdateSlots(models.SessionSlots{PreferredDay: dateStr, PreferredWindow: window, AvailableSlots: slots})
	session.SetIntent(models.IntentBookNew)
	session.TransitionTo(models.StateSlotOffer)
	return msgAvailability(slots), cmds, nil
}
