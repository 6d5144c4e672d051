package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dharmesh8t/mental-health-crisis-agent/internal/app/gateway"
	"github.com/dharmesh8t/mental-health-crisis-agent/internal/domain"
	"github.com/dharmesh8t/mental-health-crisis-agent/internal/observability"
)

// Orchestrator sequences the stages for one interaction:
// assessment → safety routing → (early exit on emergency) → de-escalation →
// resources → recovery plan + follow-up schedule. It holds no per-request
// state of its own; everything flows through the session store.
type Orchestrator struct {
	store domain.SessionStore

	assessment   *AssessmentStage
	router       *SafetyRouter
	deescalation *DeescalationStage
	resources    *ResourceStage
	followup     *FollowupStage
}

// NewOrchestrator wires the default pipeline over one gateway and store.
func NewOrchestrator(gw *gateway.Gateway, store domain.SessionStore, detector domain.EmergencyDetector) *Orchestrator {
	return &Orchestrator{
		store:        store,
		assessment:   NewAssessmentStage(gw, store),
		router:       NewSafetyRouter(store, detector),
		deescalation: NewDeescalationStage(gw, store),
		resources:    NewResourceStage(gw, store),
		followup:     NewFollowupStage(gw, store),
	}
}

// Followup exposes the follow-up stage for callers that run progress checks
// outside a full interaction.
func (o *Orchestrator) Followup() *FollowupStage {
	return o.followup
}

// ProcessInteraction runs the full pipeline for one user message. A missing
// sessionID starts a new session. Stage degradation shows up in the result
// statuses, never as a returned error; the only errors here are session
// bookkeeping failures before the pipeline starts.
func (o *Orchestrator) ProcessInteraction(ctx context.Context, message string, sessionID domain.SessionID) (*InteractionResult, error) {
	if sessionID == "" {
		sessionID = domain.SessionID(uuid.NewString())
	}

	log := observability.LoggerFromContext(ctx).With("session_id", sessionID)
	log.Info("interaction started")

	if _, err := o.store.CreateSession(sessionID); err != nil {
		return nil, err
	}
	if err := o.store.AppendMessage(sessionID, domain.RoleUser, message); err != nil {
		return nil, err
	}

	assessment := runStage(log, o.assessment.Name(), func() AssessmentOutput {
		return o.assessment.Assess(ctx, sessionID, message)
	})

	routing := runStage(log, o.router.Name(), func() RoutingDecision {
		return o.router.AssessAndRoute(ctx, sessionID, message, assessment.Result)
	})

	if routing.Emergency() {
		log.Info("interaction escalated, downstream stages skipped")
		return &InteractionResult{
			SessionID: sessionID,
			Emergency: true,
			Routing:   routing,
		}, nil
	}

	level := assessment.Result.CrisisLevel

	deesc := runStage(log, o.deescalation.Name(), func() DeescalationResult {
		return o.deescalation.Provide(ctx, sessionID, level)
	})

	res := runStage(log, o.resources.Name(), func() ResourceResult {
		return o.resources.FindResources(ctx, sessionID, level, nil)
	})

	plan := runStage(log, "recovery_plan", func() RecoveryPlanResult {
		return o.followup.CreateRecoveryPlan(ctx, sessionID, assessment.Result)
	})

	followup := runStage(log, "followup_schedule", func() FollowupResult {
		return o.followup.ScheduleFollowup(ctx, sessionID, level)
	})

	log.Info("interaction complete", "routing", routing.Routing)
	return &InteractionResult{
		SessionID:    sessionID,
		Emergency:    false,
		Routing:      routing,
		Assessment:   &assessment,
		Deescalation: &deesc,
		Resources:    &res,
		RecoveryPlan: &plan,
		Followup:     &followup,
	}, nil
}

// runStage wraps one stage invocation with start/end logging.
func runStage[T any](log *slog.Logger, name string, run func() T) T {
	start := time.Now()
	log.Info("stage start", "stage", name)
	out := run()
	log.Info("stage end", "stage", name, "elapsed_ms", time.Since(start).Milliseconds())
	return out
}
