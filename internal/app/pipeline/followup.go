package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/dharmesh8t/mental-health-crisis-agent/internal/app/gateway"
	"github.com/dharmesh8t/mental-health-crisis-agent/internal/domain"
	"github.com/dharmesh8t/mental-health-crisis-agent/internal/observability"
	"github.com/dharmesh8t/mental-health-crisis-agent/internal/refdata"
)

// FollowupStage groups recovery planning, follow-up scheduling, and progress
// checks. Scheduling is pure reference-table arithmetic; the other two call
// the gateway.
type FollowupStage struct {
	gw    *gateway.Gateway
	store domain.SessionStore
	now   func() time.Time
}

func NewFollowupStage(gw *gateway.Gateway, store domain.SessionStore) *FollowupStage {
	return &FollowupStage{gw: gw, store: store, now: time.Now}
}

func (f *FollowupStage) Name() string {
	return "followup"
}

// CreateRecoveryPlan generates a personalized plan from the last three user
// messages and the assessment payload, and attaches it to the session,
// replacing any prior plan.
func (f *FollowupStage) CreateRecoveryPlan(ctx context.Context, sessionID domain.SessionID, assessment domain.AssessmentResult) RecoveryPlanResult {
	log := observability.LoggerFromContext(ctx).With("stage", f.Name(), "session_id", sessionID)

	msgs, err := f.store.GetRecentMessages(sessionID, 0)
	if err != nil {
		log.Error("failed to load conversation", "error", err)
		return f.fallbackPlan(sessionID, err.Error())
	}

	var userTexts []string
	for _, m := range msgs {
		if m.Role == domain.RoleUser {
			userTexts = append(userTexts, m.Text)
		}
	}
	if len(userTexts) > 3 {
		userTexts = userTexts[len(userTexts)-3:]
	}

	assessmentJSON, _ := json.MarshalIndent(assessment, "", "  ")

	prompt := fmt.Sprintf(`Based on this crisis interaction and recovery needs, create a detailed recovery plan.

Assessment data: %s
Conversation context: %s

Create a recovery plan that includes:
1. Specific triggers and warning signs identified
2. Personalized coping strategies
3. Support system recommendations
4. Professional help suggestions
5. Daily/weekly goals for recovery
6. Relapse prevention strategies
7. Emergency contacts and protocols

Make it specific, actionable, and compassionate.`,
		assessmentJSON, strings.Join(userTexts, " "))

	body, ok := f.gw.CompleteOK(ctx, prompt)
	if !ok {
		return f.fallbackPlan(sessionID, "llm completion failed")
	}

	plan := &domain.RecoveryPlan{
		CreatedAt:  f.now(),
		Body:       body,
		Components: refdata.RecoveryPlanComponents(),
	}

	if err := f.store.AttachRecoveryPlan(sessionID, plan); err != nil {
		log.Error("failed to attach plan", "error", err)
		return f.fallbackPlan(sessionID, err.Error())
	}
	if err := f.store.AppendMessage(sessionID, domain.RoleAssistant, body); err != nil {
		log.Error("failed to append plan message", "error", err)
	}

	log.Info("recovery plan created")
	return RecoveryPlanResult{Plan: plan, Status: domain.StatusSuccess}
}

// ScheduleFollowup computes absolute check-in times from the severity-keyed
// day offsets. No model call.
func (f *FollowupStage) ScheduleFollowup(ctx context.Context, sessionID domain.SessionID, level domain.CrisisLevel) FollowupResult {
	log := observability.LoggerFromContext(ctx).With("stage", f.Name(), "session_id", sessionID)

	schedule := refdata.FollowupScheduleFor(level, f.now())

	if err := f.store.AttachFollowupSchedule(sessionID, schedule); err != nil {
		log.Error("failed to store schedule", "error", err)
		return FollowupResult{
			CrisisLevel: level,
			Status:      domain.StatusError,
			Err:         err.Error(),
		}
	}

	log.Info("followup scheduled", "horizons", len(schedule))
	return FollowupResult{
		Schedule:    schedule,
		CrisisLevel: level,
		Status:      domain.StatusSuccess,
	}
}

// CheckProgress assesses progress against the stored plan and the last five
// messages. Sessions without a plan get a short no-plan result without a
// model call.
func (f *FollowupStage) CheckProgress(ctx context.Context, sessionID domain.SessionID) ProgressResult {
	log := observability.LoggerFromContext(ctx).With("stage", f.Name(), "session_id", sessionID)

	plan, err := f.store.GetRecoveryPlan(sessionID)
	if err != nil {
		log.Error("failed to load plan", "error", err)
		return ProgressResult{Status: domain.StatusError, Err: err.Error()}
	}
	if plan == nil {
		return ProgressResult{NoPlan: true, Status: domain.StatusSuccess}
	}

	msgs, err := f.store.GetRecentMessages(sessionID, 5)
	if err != nil {
		log.Error("failed to load conversation", "error", err)
		return ProgressResult{Status: domain.StatusError, Err: err.Error()}
	}

	var recent []string
	for _, m := range msgs {
		recent = append(recent, fmt.Sprintf("%s: %s", m.Role, m.Text))
	}

	prompt := fmt.Sprintf(`Based on the recovery plan and follow-up conversation, assess progress:

Recovery Plan: %s
Recent conversation: %s

Assess:
1. Progress toward recovery goals
2. Adherence to recovery plan
3. New challenges or concerns
4. Adjustments needed to the plan
5. Positive developments to celebrate

Be supportive and specific.`,
		plan.Body, strings.Join(recent, "\n"))

	assessment := f.gw.Complete(ctx, prompt)

	if err := f.store.AppendProgressEntry(sessionID, domain.ProgressEntry{
		AssessedAt: f.now(),
		Assessment: assessment,
	}); err != nil {
		log.Error("failed to store progress entry", "error", err)
		return ProgressResult{Assessment: assessment, Status: domain.StatusError, Err: err.Error()}
	}
	if err := f.store.AppendMessage(sessionID, domain.RoleAssistant, assessment); err != nil {
		log.Error("failed to append progress message", "error", err)
	}

	return ProgressResult{Assessment: assessment, Status: domain.StatusSuccess}
}

func (f *FollowupStage) fallbackPlan(sessionID domain.SessionID, cause string) RecoveryPlanResult {
	plan := &domain.RecoveryPlan{
		CreatedAt:  f.now(),
		Body:       refdata.RecoveryPlanFallback,
		Components: refdata.RecoveryPlanComponents(),
	}
	_ = f.store.AttachRecoveryPlan(sessionID, plan)
	return RecoveryPlanResult{
		Plan:   plan,
		Status: domain.StatusFallback,
		Err:    cause,
	}
}
