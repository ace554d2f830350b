package dialog

import (
	"context"
	"regexp"
	"strconv"
	"time"

	"advisorly/models"
	bookingSvc "advisorly/services/booking"
	"advisorly/utils"

	"go.uber.org/zap"
)

var optionPattern = regexp.MustCompile(`(?i)\b(?:option\s*)?([12])\b|\b(first|second|former|latter)\b`)

func (s *DefaultAssistantService) handleBookNew(ctx context.Context, session *models.Session, text string) (string, []models.ToolCommand, error) {
	switch session.CurrentState {
	case models.StateTopicSelection:
		topic := MapToTopic(text)
		if topic == "" {
			return msgTopicRetry, nil, nil
		}
		session.UpdateSlots(models.SessionSlots{Topic: topic})
		session.TransitionTo(models.StateTopicConfirmation)
		return msgTopicConfirm(topic), nil, nil

	case models.StateTopicConfirmation:
		switch {
		case isAffirmative(text):
			// A slot carried over from an availability check skips straight to
			// confirmation.
			if session.Slots.SelectedSlot != nil {
				session.TransitionTo(models.StateSlotConfirmation)
				return msgSlotConfirm(*session.Slots.SelectedSlot), nil, nil
			}
			session.TransitionTo(models.StateTimePreference)
			return msgAskTime, nil, nil
		case isNegative(text):
			session.Slots.Topic = ""
			session.TransitionTo(models.StateTopicSelection)
			return msgAskTopic, nil, nil
		default:
			return msgTopicConfirm(session.Slots.Topic), nil, nil
		}

	case models.StateTimePreference:
		return s.resolveTimeAndOffer(ctx, session, text, "")

	case models.StateSlotOffer:
		slot, ok := pickOfferedSlot(text, session.Slots.AvailableSlots)
		if !ok {
			return msgSlotOffer(session.Slots.AvailableSlots), nil, nil
		}
		session.UpdateSlots(models.SessionSlots{SelectedSlot: &slot})
		session.TransitionTo(models.StateSlotConfirmation)
		return msgSlotConfirm(slot), nil, nil

	case models.StateSlotConfirmation:
		switch {
		case isAffirmative(text):
			if session.Slots.Topic == "" {
				// Chained in from check_availability without a topic yet.
				session.TransitionTo(models.StateTopicSelection)
				return msgAskTopic, nil, nil
			}
			return s.commitNewBooking(ctx, session)
		case isNegative(text):
			session.Slots.SelectedSlot = nil
			session.TransitionTo(models.StateTimePreference)
			return msgAskTime, nil, nil
		default:
			if session.Slots.SelectedSlot == nil {
				session.TransitionTo(models.StateTimePreference)
				return msgAskTime, nil, nil
			}
			return msgSlotConfirm(*session.Slots.SelectedSlot), nil, nil
		}

	case models.StateWaitlistConfirmation:
		switch {
		case isAffirmative(text):
			return s.commitWaitlist(ctx, session)
		case isNegative(text):
			session.Slots.SelectedSlot = nil
			session.TransitionTo(models.StateTimePreference)
			return msgWaitlistDecline, nil, nil
		default:
			return msgWaitlistOffer, nil, nil
		}
	}

	// Unknown state for this intent; restart the flow safely.
	session.TransitionTo(models.StateTopicSelection)
	return msgAskTopic, nil, nil
}

// resolveTimeAndOffer parses the caller's day/time wish, runs the availability
// search, and moves the session to the matching offer state. excludeCode keeps
// a rescheduled booking's own interval out of its conflict checks.
func (s *DefaultAssistantService) resolveTimeAndOffer(ctx context.Context, session *models.Session, text, excludeCode string) (string, []models.ToolCommand, error) {
	pref := ParseDateTimePreference(text, time.Now(), s.Engine.Params)

	if pref.RequestedWeekend {
		// The caller named a non-working day: decline explicitly, never shift
		// silently. No slot search happens.
		return msgWeekendDecline, nil, nil
	}

	if !pref.HasDate {
		// Two-stage resolver: the deterministic parser came up empty, so ask
		// the NL interpreter — and only trust it above the threshold.
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

	session.UpdateSlots(models.SessionSlots{PreferredDay: dateStr, PreferredWindow: window, SpecificTime: pref.SpecificTime})

	existing, err := s.Ledger.ActiveBookings(ctx, dateStr)
	if err != nil {
		return "", nil, err
	}
	if excludeCode != "" {
		filtered := existing[:0]
		for _, b := range existing {
			if b.Code != excludeCode {
				filtered = append(filtered, b)
			}
		}
		existing = filtered
	}

	// A specific requested time is checked directly: a free exact slot goes
	// straight to confirmation, a taken one chooses between alternatives and
	// the waitlist.
	if pref.SpecificTime > 0 {
		start := pref.SpecificTime
		end := start + s.Engine.Params.SlotDuration
		if start >= s.Engine.Params.DayStart && end <= s.Engine.Params.DayEnd {
			exact := models.Slot{Date: dateStr, Start: start, End: end, Label: models.SlotLabel(start, end)}
			if taken, _ := s.Engine.CheckSlotOverlap(dateStr, start, end, existing); !taken {
				session.UpdateSlots(models.SessionSlots{SelectedSlot: &exact})
				session.TransitionTo(s.slotConfirmState(session))
				return msgSlotConfirm(exact), nil, nil
			}
			alternatives := s.Engine.AvailableSlots(day, window, 0, existing)
			if len(alternatives) == 0 && session.Intent == models.IntentBookNew {
				session.UpdateSlots(models.SessionSlots{SelectedSlot: &exact})
				session.TransitionTo(models.StateWaitlistConfirmation)
				return msgWaitlistOffer, nil, nil
			}
			if len(alternatives) == 0 {
				return msgAvailability(nil), nil, nil
			}
			session.UpdateSlots(models.SessionSlots{AvailableSlots: alternatives})
			session.TransitionTo(models.StateSlotOffer)
			return "That exact time is taken. " + msgSlotOffer(alternatives), nil, nil
		}
	}

	slots := s.Engine.AvailableSlots(day, window, 0, existing)
	if len(slots) == 0 {
		if session.Intent == models.IntentBookNew {
			w := s.Engine.Params.WindowRange(window)
			fallback := models.Slot{Date: dateStr, Start: w.Start, End: w.Start + s.Engine.Params.SlotDuration}
			fallback.Label = models.SlotLabel(fallback.Start, fallback.End)
			session.UpdateSlots(models.SessionSlots{SelectedSlot: &fallback})
			session.TransitionTo(models.StateWaitlistConfirmation)
			return msgWaitlistOffer, nil, nil
		}
		return msgAvailability(nil), nil, nil
	}

	session.UpdateSlots(models.SessionSlots{AvailableSlots: slots})
	session.TransitionTo(models.StateSlotOffer)
	return msgSlotOffer(slots), nil, nil
}

func (s *DefaultAssistantService) slotConfirmState(session *models.Session) models.DialogState {
	if session.Intent == models.IntentReschedule {
		return models.StateRescheduleSlotConfirmation
	}
	return models.StateSlotConfirmation
}

func (s *DefaultAssistantService) commitNewBooking(ctx context.Context, session *models.Session) (string, []models.ToolCommand, error) {
	if session.Slots.SelectedSlot == nil {
		session.TransitionTo(models.StateTimePreference)
		return msgAskTime, nil, nil
	}

	record, err := s.Ledger.CreateBooking(ctx, session.Slots.Topic, *session.Slots.SelectedSlot)
	if err != nil {
		if bookingSvc.HasCode(err, bookingSvc.CodeGenerationExhausted) {
			utils.GetLogger().Error("booking code space exhausted", zap.Error(err))
			return msgTryAgain, nil, nil
		}
		return "", nil, err
	}

	session.UpdateSlots(models.SessionSlots{BookingCode: record.Code})
	session.TransitionTo(models.StateCompleted)

	cmds := commitCommands(record, "created")
	if record.IsWaitlist {
		// The availability race was lost between offer and commit; the ledger
		// already demoted the record to the waitlist.
		return msgWaitlisted(record), cmds, nil
	}
	return msgBookingConfirmed(record), cmds, nil
}

func (s *DefaultAssistantService) commitWaitlist(ctx context.Context, session *models.Session) (string, []models.ToolCommand, error) {
	if session.Slots.SelectedSlot == nil {
		session.TransitionTo(models.StateTimePreference)
		return msgAskTime, nil, nil
	}
	record, err := s.Ledger.CreateWaitlistBooking(ctx, session.Slots.Topic, *session.Slots.SelectedSlot)
	if err != nil {
		if bookingSvc.HasCode(err, bookingSvc.CodeGenerationExhausted) {
			return msgTryAgain, nil, nil
		}
		return "", nil, err
	}
	session.UpdateSlots(models.SessionSlots{BookingCode: record.Code})
	session.TransitionTo(models.StateCompleted)
	return msgWaitlisted(record), commitCommands(record, "created"), nil
}

// pickOfferedSlot resolves "1"/"2"/"first"/"second" or an explicit time
// against the offered candidates.
func pickOfferedSlot(text string, offered []models.Slot) (models.Slot, bool) {
	if len(offered) == 0 {
		return models.Slot{}, false
	}
	if m := optionPattern.FindStringSubmatch(text); m != nil {
		idx := 0
		if m[1] != "" {
			n, _ := strconv.Atoi(m[1])
			idx = n - 1
		} else if m[2] == "second" || m[2] == "latter" {
			idx = 1
		}
		if idx >= 0 && idx < len(offered) {
			return offered[idx], true
		}
		return models.Slot{}, false
	}
	for _, slot := range offered {
		if clockMatchesSlot(text, slot.Start) {
			return slot, true
		}
	}
	if isAffirmative(text) {
		return offered[0], true
	}
	return models.Slot{}, false
}

func clockMatchesSlot(text string, startMinutes int) bool {
	m := clockPattern.FindStringSubmatch(text)
	if m == nil {
		return false
	}
	hour, err := strconv.Atoi(m[1])
	if err != nil {
		return false
	}
	minute := 0
	if m[2] != "" {
		minute, _ = strconv.Atoi(m[2])
	}
	candidates := []int{hour*60 + minute}
	if hour < 12 {
		candidates = append(candidates, (hour+12)*60+minute)
	}
	for _, c := range candidates {
		if c == startMinutes {
			return true
		}
	}
	return false
}
