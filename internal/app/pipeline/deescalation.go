package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dharmesh8t/mental-health-crisis-agent/internal/app/gateway"
	"github.com/dharmesh8t/mental-health-crisis-agent/internal/domain"
	"github.com/dharmesh8t/mental-health-crisis-agent/internal/observability"
	"github.com/dharmesh8t/mental-health-crisis-agent/internal/refdata"
)

// DeescalationStage recommends coping techniques tailored to the crisis
// level and asks the model for a personalized supportive message.
type DeescalationStage struct {
	gw    *gateway.Gateway
	store domain.SessionStore
}

func NewDeescalationStage(gw *gateway.Gateway, store domain.SessionStore) *DeescalationStage {
	return &DeescalationStage{gw: gw, store: store}
}

func (d *DeescalationStage) Name() string {
	return "deescalation"
}

// Provide selects the level-keyed strategies and generates the de-escalation
// response. Whatever path produced the text, it is appended to the session's
// messages.
func (d *DeescalationStage) Provide(ctx context.Context, sessionID domain.SessionID, level domain.CrisisLevel) DeescalationResult {
	log := observability.LoggerFromContext(ctx).With("stage", d.Name(), "session_id", sessionID)

	strategies := refdata.StrategiesForLevel(level)

	latestConcern := ""
	recent, err := d.store.GetRecentMessages(sessionID, 0)
	if err != nil {
		log.Error("failed to load conversation", "error", err)
		return d.fallback(sessionID, level, err.Error(), log)
	}
	for i := len(recent) - 1; i >= 0; i-- {
		if recent[i].Role == domain.RoleUser {
			latestConcern = recent[i].Text
			break
		}
	}

	names := make([]string, 0, len(strategies))
	for _, s := range strategies {
		names = append(names, s.Key)
	}

	sctx, err := d.store.GetContext(sessionID)
	if err != nil {
		log.Error("failed to load session context", "error", err)
		return d.fallback(sessionID, level, err.Error(), log)
	}

	prompt := fmt.Sprintf(`Based on this crisis situation at %s level, provide empathetic de-escalation support.
User's concern: %s
%s

Provide:
1. Immediate validation of their feelings
2. 2-3 recommended coping techniques from: %s
3. Step-by-step guidance for one technique
4. Encouragement to reach out for professional help

Keep response concise, supportive, and actionable. Use simple language.`,
		level, latestConcern, gateway.BuildContextBlock(sctx), strings.Join(names, ", "))

	response, ok := d.gw.CompleteOK(ctx, prompt)
	if !ok {
		return d.fallback(sessionID, level, "llm completion failed", log)
	}

	if err := d.store.AppendMessage(sessionID, domain.RoleAssistant, response); err != nil {
		log.Error("failed to append response", "error", err)
		return d.fallback(sessionID, level, err.Error(), log)
	}
	_ = d.store.MarkInterventionUsed(sessionID, d.Name())

	return DeescalationResult{
		Response:    response,
		Strategies:  strategies,
		CrisisLevel: level,
		Status:      domain.StatusSuccess,
	}
}

// fallback selects one of the two static scripts by whether the level is
// escalated. The text is appended to the session either way.
func (d *DeescalationStage) fallback(sessionID domain.SessionID, level domain.CrisisLevel, cause string, log *slog.Logger) DeescalationResult {
	response := refdata.DeescalationFallback(level)
	if err := d.store.AppendMessage(sessionID, domain.RoleAssistant, response); err != nil {
		log.Error("failed to append fallback response", "error", err)
	}
	return DeescalationResult{
		Response:    response,
		Strategies:  refdata.StrategiesForLevel(level),
		CrisisLevel: level,
		Status:      domain.StatusFallback,
		Err:         cause,
	}
}
