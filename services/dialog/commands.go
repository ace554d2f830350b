package dialog

import "advisorly/models"

// Command builders. Every calendar/email/notes command carries the booking
// code so the external executor can reconcile retries idempotently instead of
// duplicating events.

func cmdCreateTentative(b *models.Booking) models.ToolCommand {
	return models.ToolCommand{
		Name: models.ToolEventCreateTentative,
		Params: map[string]any{
			"booking_code": b.Code,
			"topic":        b.Topic,
			"date":         b.Date,
			"start":        b.Start,
			"end":          b.End,
			"summary":      "Advisor consultation: " + TopicLabels[b.Topic],
		},
	}
}

func cmdUpdateEventTime(b *models.Booking) models.ToolCommand {
	return models.ToolCommand{
		Name: models.ToolEventUpdateTime,
		Params: map[string]any{
			"booking_code": b.Code,
			"date":         b.Date,
			"start":        b.Start,
			"end":          b.End,
		},
	}
}

func cmdCancelEvent(code string) models.ToolCommand {
	return models.ToolCommand{
		Name:   models.ToolEventCancel,
		Params: map[string]any{"booking_code": code},
	}
}

func cmdGetAvailability(date, window string) models.ToolCommand {
	return models.ToolCommand{
		Name:   models.ToolCalendarGetAvailability,
		Params: map[string]any{"date": date, "window": window},
	}
}

func cmdPrebookingNote(b *models.Booking, action string) models.ToolCommand {
	return models.ToolCommand{
		Name: models.ToolNotesAppendPrebooking,
		Params: map[string]any{
			"booking_code": b.Code,
			"action":       action,
			"topic":        b.Topic,
			"date":         b.Date,
			"start":        b.Start,
			"end":          b.End,
			"waitlist":     b.IsWaitlist,
		},
	}
}

func cmdAdvisorEmail(b *models.Booking, action string) models.ToolCommand {
	return models.ToolCommand{
		Name: models.ToolEmailAdvisorDraft,
		Params: map[string]any{
			"booking_code": b.Code,
			"action":       action,
			"topic":        b.Topic,
			"date":         b.Date,
			"slot":         models.SlotLabel(b.Start, b.End),
		},
	}
}

// commitCommands is the fixed-order side-effect bundle for a booking action:
// calendar first, then audit note, then advisor email.
func commitCommands(b *models.Booking, action string) []models.ToolCommand {
	var cmds []models.ToolCommand
	switch action {
	case "created":
		if !b.IsWaitlist {
			cmds = append(cmds, cmdCreateTentative(b))
		}
	case "rescheduled":
		cmds = append(cmds, cmdUpdateEventTime(b))
	case "cancelled":
		cmds = append(cmds, cmdCancelEvent(b.Code))
	}
	cmds = append(cmds, cmdPrebookingNote(b, action), cmdAdvisorEmail(b, action))
	return cmds
}
