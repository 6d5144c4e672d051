// Package pipeline contains the five cooperating stages of the crisis
// support flow and the orchestrator that sequences them. Stages read and
// write shared session state through the SessionStore port and talk to the
// model only through the gateway; none of them lets an internal fault escape
// as an error.
package pipeline

import (
	"github.com/dharmesh8t/mental-health-crisis-agent/internal/domain"
	"github.com/dharmesh8t/mental-health-crisis-agent/internal/refdata"
)

// AssessmentOutput is the assessment stage's result, merged into the session
// before routing.
type AssessmentOutput struct {
	Result domain.AssessmentResult `json:"result"`
	Status domain.StageStatus      `json:"status"`
}

// RoutingDecision carries the safety router's verdict. For emergencies it
// includes the static response body and immediate-action checklist; for
// everything else the next stage and a level-keyed action list.
type RoutingDecision struct {
	Routing          domain.RoutingPath `json:"routing"`
	CrisisLevel      domain.CrisisLevel `json:"crisis_level"`
	Response         string             `json:"response,omitempty"`
	ImmediateActions []string           `json:"immediate_actions,omitempty"`
	Actions          []string           `json:"actions,omitempty"`
	NextStage        string             `json:"next_stage,omitempty"`
	Status           domain.StageStatus `json:"status"`
	Err              string             `json:"error,omitempty"`
}

// Emergency reports whether the decision terminates the interaction. The
// fail-safe route counts: a routing fault escalates, it never hands the
// conversation to the support stages.
func (d RoutingDecision) Emergency() bool {
	return d.Routing == domain.RouteEmergencyServices || d.Routing == domain.RouteFallbackEmergency
}

// DeescalationResult is the de-escalation stage's output.
type DeescalationResult struct {
	Response    string                   `json:"response"`
	Strategies  []refdata.CopingStrategy `json:"strategies"`
	CrisisLevel domain.CrisisLevel       `json:"crisis_level"`
	Status      domain.StageStatus       `json:"status"`
	Err         string                   `json:"error,omitempty"`
}

// ResourceResult is the resource stage's output.
type ResourceResult struct {
	Response        string                `json:"response"`
	Resources       domain.ResourceBundle `json:"resources"`
	IdentifiedNeeds []domain.NeedCategory `json:"identified_needs"`
	Status          domain.StageStatus    `json:"status"`
	Err             string                `json:"error,omitempty"`
}

// RecoveryPlanResult is the plan-creation output.
type RecoveryPlanResult struct {
	Plan   *domain.RecoveryPlan `json:"recovery_plan"`
	Status domain.StageStatus   `json:"status"`
	Err    string               `json:"error,omitempty"`
}

// FollowupResult is the follow-up scheduling output.
type FollowupResult struct {
	Schedule    domain.FollowupSchedule `json:"followup_schedule"`
	CrisisLevel domain.CrisisLevel      `json:"crisis_level"`
	Status      domain.StageStatus      `json:"status"`
	Err         string                  `json:"error,omitempty"`
}

// ProgressResult is the progress-check output. NoPlan marks the short-circuit
// return for sessions without a current plan.
type ProgressResult struct {
	Assessment string             `json:"progress_assessment,omitempty"`
	NoPlan     bool               `json:"no_plan,omitempty"`
	Status     domain.StageStatus `json:"status"`
	Err        string             `json:"error,omitempty"`
}

// InteractionResult is the composite record returned to the caller. On an
// emergency routing only SessionID, Emergency, and Routing are populated;
// the downstream stage fields stay nil.
type InteractionResult struct {
	SessionID    domain.SessionID    `json:"session_id"`
	Emergency    bool                `json:"emergency"`
	Routing      RoutingDecision     `json:"routing"`
	Assessment   *AssessmentOutput   `json:"assessment,omitempty"`
	Deescalation *DeescalationResult `json:"deescalation,omitempty"`
	Resources    *ResourceResult     `json:"resources,omitempty"`
	RecoveryPlan *RecoveryPlanResult `json:"recovery_plan,omitempty"`
	Followup     *FollowupResult     `json:"followup,omitempty"`
}
