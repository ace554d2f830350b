package dialog

import (
	"context"

	"advisorly/models"
)

func (s *DefaultAssistantService) handlePrepare(ctx context.Context, session *models.Session, text string) (string, []models.ToolCommand, error) {
	topic := MapToTopic(text)
	if topic == "" {
		if session.Slots.Topic != "" {
			topic = session.Slots.Topic
		} else {
			return msgTopicRetry, nil, nil
		}
	}
	session.UpdateSlots(models.SessionSlots{Topic: topic})
	session.TransitionTo(models.StateCompleted)
	// Any stored booking code survives so a follow-up reschedule or cancel
	// doesn't have to re-ask for it.
	return PreparationChecklists[topic], nil, nil
}
