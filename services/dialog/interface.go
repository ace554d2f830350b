package dialog

import (
	"context"

	sessionRepo "advisorly/database/repository/session"
	"advisorly/models"
	bookingSvc "advisorly/services/booking"
	"advisorly/services/intelligence"
	"advisorly/services/scheduling"
)

// AssistantService runs one dialog turn: guardrails, intent resolution,
// sub-flow dispatch, and command emission. It never executes side effects
// itself — commands go to the external dispatcher.
type AssistantService interface {
	ProcessTurn(ctx context.Context, sessionID, text string) (*models.AssistantResponse, error)
}

// DefaultAssistantService implements AssistantService.
type DefaultAssistantService struct {
	Sessions            sessionRepo.Store
	Ledger              bookingSvc.LedgerService
	Engine              *scheduling.Engine
	AI                  intelligence.Service
	ConfidenceThreshold float64
}

func NewDefaultAssistantService(
	sessions sessionRepo.Store,
	ledger bookingSvc.LedgerService,
	engine *scheduling.Engine,
	ai intelligence.Service,
	confidenceThreshold float64,
) *DefaultAssistantService {
	if confidenceThreshold <= 0 {
		confidenceThreshold = 0.6
	}
	return &DefaultAssistantService{
		Sessions:            sessions,
		Ledger:              ledger,
		Engine:              engine,
		AI:                  ai,
		ConfidenceThreshold: confidenceThreshold,
	}
}
