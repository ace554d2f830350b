package dialog

import (
	"context"

	"advisorly/models"
	bookingSvc "advisorly/services/booking"
)

func (s *DefaultAssistantService) handleReschedule(ctx context.Context, session *models.Session, text string) (string, []models.ToolCommand, error) {
	switch session.CurrentState {
	case models.StateRescheduleCodeInput:
		if forgotPattern.MatchString(text) {
			session.SetIntent(models.IntentNone)
			session.TransitionTo(models.StateGreeting)
			return msgForgotCode, nil, nil
		}
		code := bookingSvc.ExtractBookingCode(text)
		if code == "" {
			return msgAskCode, nil, nil
		}
		if _, err := s.Ledger.GetBooking(ctx, code); err != nil {
			if bookingSvc.HasCode(err, bookingSvc.CodeNotFound) {
				return msgCodeNotFound, nil, nil
			}
			return "", nil, err
		}
		session.UpdateSlots(models.SessionSlots{BookingCode: code})
		session.TransitionTo(models.StateRescheduleTime)
		return msgAskTime, nil, nil

	case models.StateRescheduleTime:
		// The booking's own interval must not block its own move.
		return s.resolveTimeAndOffer(ctx, session, text, session.Slots.BookingCode)

	case models.StateSlotOffer:
		slot, ok := pickOfferedSlot(text, session.Slots.AvailableSlots)
		if !ok {
			return msgSlotOffer(session.Slots.AvailableSlots), nil, nil
		}
		session.UpdateSlots(models.SessionSlots{SelectedSlot: &slot})
		session.TransitionTo(models.StateRescheduleSlotConfirmation)
		return msgSlotConfirm(slot), nil, nil

	case models.StateRescheduleSlotConfirmation:
		switch {
		case isAffirmative(text):
			return s.commitReschedule(ctx, session)
		case isNegative(text):
			session.Slots.SelectedSlot = nil
			session.TransitionTo(models.StateRescheduleTime)
			return msgAskTime, nil, nil
		default:
			if session.Slots.SelectedSlot == nil {
				session.TransitionTo(models.StateRescheduleTime)
				return msgAskTime, nil, nil
			}
			return msgSlotConfirm(*session.Slots.SelectedSlot), nil, nil
		}
	}

	session.TransitionTo(models.StateRescheduleCodeInput)
	return msgAskCode, nil, nil
}

func (s *DefaultAssistantService) commitReschedule(ctx context.Context, session *models.Session) (string, []models.ToolCommand, error) {
	if session.Slots.SelectedSlot == nil || session.Slots.BookingCode == "" {
		session.TransitionTo(models.StateRescheduleCodeInput)
		return msgAskCode, nil, nil
	}

	record, err := s.Ledger.RescheduleBooking(ctx, session.Slots.BookingCode, *session.Slots.SelectedSlot)
	if err != nil {
		switch {
		case bookingSvc.HasCode(err, bookingSvc.CodeConflict):
			// Lost the slot between offer and confirm; re-run the search.
			session.Slots.SelectedSlot = nil
			session.TransitionTo(models.StateRescheduleTime)
			return "That slot was just taken. " + msgAskTime, nil, nil
		case bookingSvc.HasCode(err, bookingSvc.CodeNotFound):
			session.Slots.BookingCode = ""
			session.TransitionTo(models.StateRescheduleCodeInput)
			return msgCodeNotFound, nil, nil
		default:
			return "", nil, err
		}
	}

	session.TransitionTo(models.StateCompleted)
	return msgRescheduled(record), commitCommands(record, "rescheduled"), nil
}
