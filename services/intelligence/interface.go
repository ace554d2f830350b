package intelligence

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"advisorly/models"
	"advisorly/utils"

	"go.uber.org/zap"
)

// Service resolves what a free-text utterance means: the caller's intent, and
// day/time wishes the deterministic parser could not handle.
type Service interface {
	ClassifyIntent(ctx context.Context, text string) (models.Intent, error)
	// InterpretDateTime returns a preference plus the model's confidence.
	// Callers must treat sub-threshold confidence as "needs clarification",
	// never as a silent best guess.
	InterpretDateTime(ctx context.Context, text string, now time.Time) (models.TimePreference, float64, error)
}

// DefaultAIService fronts Gemini and degrades to the deterministic keyword
// classifier whenever the model errors or answers something unparseable. The
// fallback is required behavior, not a nicety: classification must keep
// working when the model is down.
type DefaultAIService struct {
	gemini *GeminiClient
}

// NewDefaultAIService builds the service. An empty API key yields a
// fallback-only service, which is also what tests use.
func NewDefaultAIService(apiKey string) *DefaultAIService {
	svc := &DefaultAIService{}
	if apiKey == "" {
		return svc
	}
	client, err := NewGeminiClient(apiKey)
	if err != nil {
		utils.GetLogger().Warn("gemini unavailable, running on keyword fallback", zap.Error(err))
		return svc
	}
	svc.gemini = client
	return svc
}

const intentPrompt = `Classify the user's goal into exactly one of:
book_new, reschedule, cancel, what_to_prepare, check_availability, none.
Reply with the single label only.
User: %s`

func (s *DefaultAIService) ClassifyIntent(ctx context.Context, text string) (models.Intent, error) {
	if s.gemini != nil {
		raw, err := s.gemini.GenerateContent(ctx, fmt.Sprintf(intentPrompt, text))
		if err == nil {
			intent := models.Intent(strings.TrimSpace(strings.ToLower(raw)))
			if ValidIntent(intent) {
				return intent, nil
			}
			if intent == "none" {
				return models.IntentNone, nil
			}
			utils.GetLogger().Warn("unparseable intent from model, falling back",
				zap.String("raw", raw))
		} else {
			utils.GetLogger().Warn("intent model call failed, falling back", zap.Error(err))
		}
	}
	return ClassifyByKeywords(text), nil
}

const datetimePrompt = `Today is %s. Extract the requested consultation day and
time window from the user's message. Reply with JSON only:
{"date":"YYYY-MM-DD","window":"morning|afternoon|evening|any","confidence":0.0}
Use an empty date if no day is mentioned. User: %s`

type datetimeAnswer struct {
	Date       string  `json:"date"`
	Window     string  `json:"window"`
	Confidence float64 `json:"confidence"`
}

func (s *DefaultAIService) InterpretDateTime(ctx context.Context, text string, now time.Time) (models.TimePreference, float64, error) {
	if s.gemini == nil {
		return models.TimePreference{}, 0, nil
	}
	raw, err := s.gemini.GenerateContent(ctx, fmt.Sprintf(datetimePrompt, now.Format(utils.DateLayout), text))
	if err != nil {
		utils.GetLogger().Warn("datetime model call failed", zap.Error(err))
		return models.TimePreference{}, 0, err
	}

	var answer datetimeAnswer
	if err := json.Unmarshal([]byte(stripFences(raw)), &answer); err != nil {
		utils.GetLogger().Warn("unparseable datetime answer", zap.String("raw", raw))
		return models.TimePreference{}, 0, err
	}

	pref := models.TimePreference{Window: answer.Window}
	if answer.Date != "" {
		date, err := time.ParseInLocation(utils.DateLayout, answer.Date, now.Location())
		if err == nil {
			pref.Date = date
			pref.HasDate = true
		}
	}
	return pref, answer.Confidence, nil
}

// stripFences removes markdown code fences the model sometimes wraps JSON in.
func stripFences(raw string) string {
	out := strings.TrimSpace(raw)
	out = strings.TrimPrefix(out, "```json")
	out = strings.TrimPrefix(out, "```")
	out = strings.TrimSuffix(out, "```")
	return strings.TrimSpace(out)
}
