package dialog

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	sessionRepo "advisorly/database/repository/session"
	"advisorly/models"
	"advisorly/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	affirmPattern = regexp.MustCompile(`(?i)\b(yes|yeah|yep|yup|sure|correct|right|confirm|confirmed|ok|okay|haan|go ahead|sounds good|please do)\b`)
	negatePattern = regexp.MustCompile(`(?i)\b(no|nope|nah|wrong|incorrect|not really|don't|dont)\b`)
	forgotPattern = regexp.MustCompile(`(?i)\b(forgot|forgotten|lost|don't have|dont have|can't find|cant find|no idea|misplaced)\b`)
)

func isAffirmative(text string) bool {
	return affirmPattern.MatchString(text) && !negatePattern.MatchString(text)
}

func isNegative(text string) bool {
	return negatePattern.MatchString(text) && !affirmPattern.MatchString(text)
}

// ProcessTurn handles one utterance for one session. Sessions are created
// lazily on the first message and only mutated here, one in-flight turn at a
// time per session.
func (s *DefaultAssistantService) ProcessTurn(ctx context.Context, sessionID, text string) (*models.AssistantResponse, error) {
	logger := utils.GetLogger()

	session, err := s.loadOrCreate(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	// Guardrails run before anything is logged into history and before intent
	// classification. A hit returns a fixed refusal with no state transition.
	if pii := DetectPII(text); pii.Detected {
		logger.Warn("pii detected in utterance",
			zap.String("session", session.ID), zap.String("kind", pii.Kind))
		session.AppendMessage("user", RedactPII(text))
		session.AppendMessage("assistant", msgPIIRefusal)
		if err := s.Sessions.Save(ctx, session); err != nil {
			return nil, err
		}
		return s.respond(session, msgPIIRefusal, nil), nil
	}
	if DetectInvestmentAdvice(text) {
		logger.Warn("investment advice request refused", zap.String("session", session.ID))
		session.AppendMessage("user", text)
		session.AppendMessage("assistant", msgAdviceRefusal)
		if err := s.Sessions.Save(ctx, session); err != nil {
			return nil, err
		}
		return s.respond(session, msgAdviceRefusal, nil), nil
	}

	session.AppendMessage("user", text)

	if session.CurrentState == models.StateInitial {
		session.TransitionTo(models.StateGreeting)
	}

	// COMPLETED is re-entrant: a fresh message begins a new intent cycle.
	// Captured topic and booking code survive so the caller can chain
	// reschedule/cancel without re-supplying them.
	if session.CurrentState == models.StateCompleted {
		session.SetIntent(models.IntentNone)
		session.Slots.PreferredDay = ""
		session.Slots.PreferredWindow = ""
		session.Slots.SpecificTime = 0
		session.Slots.SelectedSlot = nil
		session.Slots.AvailableSlots = nil
		session.TransitionTo(models.StateGreeting)
	}

	reply, cmds, err := s.route(ctx, session, text)
	if err != nil {
		logger.Error("turn failed", zap.String("session", session.ID), zap.Error(err))
		reply, cmds = msgTryAgain, nil
	}

	session.AppendMessage("assistant", reply)
	if err := s.Sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return s.respond(session, reply, cmds), nil
}

func (s *DefaultAssistantService) route(ctx context.Context, session *models.Session, text string) (string, []models.ToolCommand, error) {
	// Intent resolution.
	if session.Intent == models.IntentNone && session.CurrentState != models.StateIntentConfirmation {
		intent, err := s.AI.ClassifyIntent(ctx, text)
		if err != nil {
			return "", nil, fmt.Errorf("intent classification: %w", err)
		}
		if intent == models.IntentNone {
			return msgIntentRetry, nil, nil
		}
		session.SetIntent(intent)
		session.TransitionTo(models.StateIntentConfirmation)
		return msgIntentConfirm(intent), nil, nil
	}

	if session.CurrentState == models.StateIntentConfirmation {
		switch {
		case isAffirmative(text):
			return s.enterIntentFlow(ctx, session)
		case isNegative(text):
			session.SetIntent(models.IntentNone)
			session.TransitionTo(models.StateGreeting)
			return msgGreeting, nil, nil
		default:
			return msgIntentConfirm(session.Intent), nil, nil
		}
	}

	switch session.Intent {
	case models.IntentBookNew:
		return s.handleBookNew(ctx, session, text)
	case models.IntentReschedule:
		return s.handleReschedule(ctx, session, text)
	case models.IntentCancel:
		return s.handleCancel(ctx, session, text)
	case models.IntentWhatToPrepare:
		return s.handlePrepare(ctx, session, text)
	case models.IntentCheckAvailability:
		return s.handleCheckAvailability(ctx, session, text)
	default:
		return msgIntentRetry, nil, nil
	}
}

// enterIntentFlow moves a confirmed intent into its sub-flow and asks the
// first disambiguating question.
func (s *DefaultAssistantService) enterIntentFlow(ctx context.Context, session *models.Session) (string, []models.ToolCommand, error) {
	switch session.Intent {
	case models.IntentBookNew:
		if session.Slots.Topic != "" {
			session.TransitionTo(models.StateTopicConfirmation)
			return msgTopicConfirm(session.Slots.Topic), nil, nil
		}
		session.TransitionTo(models.StateTopicSelection)
		return msgAskTopic, nil, nil

	case models.IntentReschedule:
		if session.Slots.BookingCode != "" {
			if _, err := s.Ledger.GetBooking(ctx, session.Slots.BookingCode); err == nil {
				session.TransitionTo(models.StateRescheduleTime)
				return msgAskTime, nil, nil
			}
			session.Slots.BookingCode = ""
		}
		session.TransitionTo(models.StateRescheduleCodeInput)
		return msgAskCode, nil, nil

	case models.IntentCancel:
		if session.Slots.BookingCode != "" {
			if b, err := s.Ledger.GetBooking(ctx, session.Slots.BookingCode); err == nil && b.Status != models.BookingStatusCancelled {
				session.TransitionTo(models.StateCancelConfirmation)
				return msgCancelConfirm(b), nil, nil
			}
			session.Slots.BookingCode = ""
		}
		session.TransitionTo(models.StateCancelCodeInput)
		return msgAskCode, nil, nil

	case models.IntentWhatToPrepare:
		if session.Slots.Topic != "" {
			reply := PreparationChecklists[session.Slots.Topic]
			session.TransitionTo(models.StateCompleted)
			return reply, nil, nil
		}
		session.TransitionTo(models.StatePreparationInfo)
		return msgAskTopic, nil, nil

	case models.IntentCheckAvailability:
		session.TransitionTo(models.StateAvailabilityCheck)
		return msgAskTime, nil, nil
	}
	return msgIntentRetry, nil, nil
}

func (s *DefaultAssistantService) loadOrCreate(ctx context.Context, sessionID string) (*models.Session, error) {
	if sessionID != "" {
		session, err := s.Sessions.Get(ctx, sessionID)
		if err == nil {
			return session, nil
		}
		if !errors.Is(err, sessionRepo.ErrNotFound) {
			return nil, err
		}
	}
	now := time.Now().UTC()
	return &models.Session{
		ID:           uuid.New().String(),
		CurrentState: models.StateInitial,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

func (s *DefaultAssistantService) respond(session *models.Session, reply string, cmds []models.ToolCommand) *models.AssistantResponse {
	return &models.AssistantResponse{
		SessionID:   session.ID,
		Reply:       reply,
		State:       session.CurrentState,
		Intent:      session.Intent,
		BookingCode: session.Slots.BookingCode,
		Commands:    cmds,
	}
}
