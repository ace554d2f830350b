package dialog

import (
	"context"

	"advisorly/models"
	bookingSvc "advisorly/services/booking"
)

func (s *DefaultAssistantService) handleCancel(ctx context.Context, session *models.Session, text string) (string, []models.ToolCommand, error) {
	switch session.CurrentState {
	case models.StateCancelCodeInput:
		if forgotPattern.MatchString(text) {
			session.SetIntent(models.IntentNone)
			session.TransitionTo(models.StateGreeting)
			return msgForgotCode, nil, nil
		}
		code := bookingSvc.ExtractBookingCode(text)
		if code == "" {
			return msgAskCode, nil, nil
		}
		b, err := s.Ledger.GetBooking(ctx, code)
		if err != nil {
			if bookingSvc.HasCode(err, bookingSvc.CodeNotFound) {
				return msgCodeNotFound, nil, nil
			}
			return "", nil, err
		}
		if b.Status == models.BookingStatusCancelled {
			session.TransitionTo(models.StateCompleted)
			return "That booking is already cancelled, so there's nothing to do. Anything else?", nil, nil
		}
		session.UpdateSlots(models.SessionSlots{BookingCode: code})
		session.TransitionTo(models.StateCancelConfirmation)
		return msgCancelConfirm(b), nil, nil

	case models.StateCancelConfirmation:
		switch {
		case isAffirmative(text):
			return s.commitCancel(ctx, session)
		case isNegative(text):
			session.TransitionTo(models.StateCompleted)
			return msgCancelKept, nil, nil
		default:
			b, err := s.Ledger.GetBooking(ctx, session.Slots.BookingCode)
			if err != nil {
				return msgAskCode, nil, nil
			}
			return msgCancelConfirm(b), nil, nil
		}
	}

	session.TransitionTo(models.StateCancelCodeInput)
	return msgAskCode, nil, nil
}

func (s *DefaultAssistantService) commitCancel(ctx context.Context, session *models.Session) (string, []models.ToolCommand, error) {
	code := session.Slots.BookingCode
	if code == "" {
		session.TransitionTo(models.StateCancelCodeInput)
		return msgAskCode, nil, nil
	}

	record, err := s.Ledger.GetBooking(ctx, code)
	if err != nil && !bookingSvc.HasCode(err, bookingSvc.CodeNotFound) {
		return "", nil, err
	}

	cancelled, err := s.Ledger.CancelBooking(ctx, code)
	if err != nil {
		return "", nil, err
	}

	session.Slots.BookingCode = ""
	session.TransitionTo(models.StateCompleted)

	if !cancelled {
		// Idempotent: a repeat cancel (or an unknown code) is a no-op answer,
		// not an error.
		return "That booking was already cancelled, so you're all set. Anything else?", nil, nil
	}
	if record == nil {
		return msgCancelled(code), nil, nil
	}
	record.Status = models.BookingStatusCancelled
	return msgCancelled(code), commitCommands(record, "cancelled"), nil
}
