package pipeline

import (
	"context"

	"github.com/dharmesh8t/mental-health-crisis-agent/internal/app/gateway"
	"github.com/dharmesh8t/mental-health-crisis-agent/internal/domain"
	"github.com/dharmesh8t/mental-health-crisis-agent/internal/observability"
)

// AssessmentStage classifies the severity of a user message and merges the
// result into the session.
type AssessmentStage struct {
	gw    *gateway.Gateway
	store domain.SessionStore
}

func NewAssessmentStage(gw *gateway.Gateway, store domain.SessionStore) *AssessmentStage {
	return &AssessmentStage{gw: gw, store: store}
}

func (a *AssessmentStage) Name() string {
	return "assessment"
}

// Assess classifies the message and writes crisis level and symptoms into
// the session. The gateway's failure containment means the worst case is an
// unknown-level fallback result, never an error.
func (a *AssessmentStage) Assess(ctx context.Context, sessionID domain.SessionID, userMessage string) AssessmentOutput {
	log := observability.LoggerFromContext(ctx).With("stage", a.Name(), "session_id", sessionID)

	result := a.gw.AssessSeverity(ctx, userMessage)

	status := domain.StatusSuccess
	if result.CrisisLevel == domain.LevelUnknown && result.Confidence == 0 {
		status = domain.StatusFallback
	}

	if err := a.store.SetCrisisLevel(sessionID, result.CrisisLevel); err != nil {
		log.Error("failed to store crisis level", "error", err)
		return AssessmentOutput{Result: result, Status: domain.StatusError}
	}
	if err := a.store.SetSymptoms(sessionID, result.KeySymptoms); err != nil {
		log.Error("failed to store symptoms", "error", err)
		return AssessmentOutput{Result: result, Status: domain.StatusError}
	}

	log.Info("assessment complete", "crisis_level", result.CrisisLevel, "confidence", result.Confidence)
	return AssessmentOutput{Result: result, Status: status}
}
