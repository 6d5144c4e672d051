package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dharmesh8t/mental-health-crisis-agent/internal/app/gateway"
	"github.com/dharmesh8t/mental-health-crisis-agent/internal/domain"
	"github.com/dharmesh8t/mental-health-crisis-agent/internal/observability"
	"github.com/dharmesh8t/mental-health-crisis-agent/internal/refdata"
)

// ResourceStage selects directory entries for the crisis level and the
// user's identified needs, and asks the model to explain how to access them.
type ResourceStage struct {
	gw    *gateway.Gateway
	store domain.SessionStore
	now   func() time.Time
}

func NewResourceStage(gw *gateway.Gateway, store domain.SessionStore) *ResourceStage {
	return &ResourceStage{gw: gw, store: store, now: time.Now}
}

func (r *ResourceStage) Name() string {
	return "resource_finder"
}

// FindResources builds the severity+needs resource bundle and records the
// recommendation in the session. When no explicit needs are supplied they
// are derived from the session's full user-message history by keyword scan.
func (r *ResourceStage) FindResources(ctx context.Context, sessionID domain.SessionID, level domain.CrisisLevel, needs []domain.NeedCategory) ResourceResult {
	log := observability.LoggerFromContext(ctx).With("stage", r.Name(), "session_id", sessionID)

	if needs == nil {
		extracted, err := r.extractNeeds(ctx, sessionID)
		if err != nil {
			log.Error("failed to extract needs", "error", err)
			return r.fallback(sessionID, level, err.Error(), log)
		}
		needs = extracted
	}

	resources := refdata.ResourcesForLevel(level, needs)

	needNames := make([]string, 0, len(needs))
	for _, n := range needs {
		needNames = append(needNames, string(n))
	}
	resourcesJSON, _ := json.MarshalIndent(resources, "", "  ")

	prompt := fmt.Sprintf(`Based on this crisis situation at %s level with needs: %s,
provide empathetic recommendations for mental health resources.

Available resources: %s

Provide:
1. Most relevant resources for immediate needs
2. How to access each resource
3. What to expect when contacting
4. Additional resources for longer-term support

Be specific and actionable. Prioritize accessibility.`,
		level, strings.Join(needNames, ", "), resourcesJSON)

	response, ok := r.gw.CompleteOK(ctx, prompt)
	if !ok {
		return r.fallback(sessionID, level, "llm completion failed", log)
	}

	if err := r.store.AppendMessage(sessionID, domain.RoleAssistant, response); err != nil {
		log.Error("failed to append response", "error", err)
		return r.fallback(sessionID, level, err.Error(), log)
	}
	if err := r.store.AppendResourceRecommendation(sessionID, domain.ResourceRecommendation{
		ProvidedAt: r.now(),
		Needs:      needs,
		Resources:  resources,
	}); err != nil {
		log.Error("failed to record recommendation", "error", err)
		return r.fallback(sessionID, level, err.Error(), log)
	}

	return ResourceResult{
		Response:        response,
		Resources:       resources,
		IdentifiedNeeds: needs,
		Status:          domain.StatusSuccess,
	}
}

// extractNeeds scans every user message in the session. The keyword scan is
// authoritative; when it finds nothing beyond the general default, the
// structured extractor gets a chance to spot needs phrased without any of
// the keywords.
func (r *ResourceStage) extractNeeds(ctx context.Context, sessionID domain.SessionID) ([]domain.NeedCategory, error) {
	msgs, err := r.store.GetRecentMessages(sessionID, 0)
	if err != nil {
		return nil, err
	}

	var userTexts []string
	for _, m := range msgs {
		if m.Role == domain.RoleUser {
			userTexts = append(userTexts, m.Text)
		}
	}
	joined := strings.Join(userTexts, " ")

	needs := refdata.ExtractNeeds(joined)
	if len(needs) == 1 && needs[0] == domain.NeedGeneralSupport {
		structured := r.gw.ExtractResourceNeeds(ctx, joined)
		if extra := needsFromStructured(structured); len(extra) > 0 {
			needs = extra
		}
	}
	return needs, nil
}

func needsFromStructured(n domain.ResourceNeeds) []domain.NeedCategory {
	var out []domain.NeedCategory
	if n.NeedsTherapist {
		out = append(out, domain.NeedTherapy)
	}
	if n.NeedsSupportGroup {
		out = append(out, domain.NeedPeerSupport)
	}
	if n.NeedsHotline {
		out = append(out, domain.NeedCrisis)
	}
	return out
}

func (r *ResourceStage) fallback(sessionID domain.SessionID, level domain.CrisisLevel, cause string, log *slog.Logger) ResourceResult {
	response := refdata.ResourceFallback(level)
	if err := r.store.AppendMessage(sessionID, domain.RoleAssistant, response); err != nil {
		log.Error("failed to append fallback response", "error", err)
	}
	return ResourceResult{
		Response:        response,
		IdentifiedNeeds: []domain.NeedCategory{domain.NeedGeneralSupport},
		Status:          domain.StatusFallback,
		Err:             cause,
	}
}
