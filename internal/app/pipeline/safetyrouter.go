package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dharmesh8t/mental-health-crisis-agent/internal/domain"
	"github.com/dharmesh8t/mental-health-crisis-agent/internal/observability"
	"github.com/dharmesh8t/mental-health-crisis-agent/internal/refdata"
)

// SafetyRouter decides whether an interaction escalates to emergency
// handling or continues through the support pipeline.
type SafetyRouter struct {
	store    domain.SessionStore
	detector domain.EmergencyDetector
	now      func() time.Time
}

func NewSafetyRouter(store domain.SessionStore, detector domain.EmergencyDetector) *SafetyRouter {
	return &SafetyRouter{
		store:    store,
		detector: detector,
		now:      time.Now,
	}
}

func (r *SafetyRouter) Name() string {
	return "safety_router"
}

// AssessAndRoute evaluates the message against the detector and the assessed
// crisis level. Any internal fault degrades to FALLBACK_EMERGENCY with a
// static safety message: failure routes to the most escalated outcome.
func (r *SafetyRouter) AssessAndRoute(ctx context.Context, sessionID domain.SessionID, userMessage string, assessment domain.AssessmentResult) (decision RoutingDecision) {
	log := observability.LoggerFromContext(ctx).With("stage", r.Name(), "session_id", sessionID)

	defer func() {
		if rec := recover(); rec != nil {
			log.Error("safety routing fault", "panic", rec)
			decision = r.fallbackDecision(fmt.Sprintf("panic: %v", rec))
		}
	}()

	if r.detector.Detect(userMessage, assessment.CrisisLevel) {
		return r.handleEmergency(sessionID, userMessage, assessment, log)
	}
	return r.handleNonEmergency(assessment.CrisisLevel, log)
}

func (r *SafetyRouter) handleEmergency(sessionID domain.SessionID, userMessage string, assessment domain.AssessmentResult, log *slog.Logger) RoutingDecision {
	flag := domain.EmergencyFlag{
		DetectedAt: r.now(),
		Message:    userMessage,
		Assessment: assessment,
	}
	if err := r.store.AppendEmergencyFlag(sessionID, flag); err != nil {
		log.Error("failed to record emergency flag", "error", err)
		return r.fallbackDecision(err.Error())
	}

	if err := r.store.AppendMessage(sessionID, domain.RoleAssistant, refdata.EmergencyResponse); err != nil {
		log.Error("failed to append emergency response", "error", err)
		return r.fallbackDecision(err.Error())
	}

	log.Info("emergency detected, escalating")
	return RoutingDecision{
		Routing:          domain.RouteEmergencyServices,
		CrisisLevel:      domain.LevelEmergency,
		Response:         refdata.EmergencyResponse,
		ImmediateActions: refdata.ImmediateActions(),
		Status:           domain.StatusSuccess,
	}
}

func (r *SafetyRouter) handleNonEmergency(level domain.CrisisLevel, log *slog.Logger) RoutingDecision {
	routing := domain.RouteProfessionalSupport
	nextStage := "resource_finder"
	if level == domain.LevelLow {
		routing = domain.RouteDeescalation
		nextStage = "deescalation"
	}

	log.Info("routed", "routing", routing, "crisis_level", level)
	return RoutingDecision{
		Routing:     routing,
		CrisisLevel: level,
		NextStage:   nextStage,
		Actions:     refdata.ActionsForLevel(level),
		Status:      domain.StatusSuccess,
	}
}

func (r *SafetyRouter) fallbackDecision(errMsg string) RoutingDecision {
	return RoutingDecision{
		Routing:     domain.RouteFallbackEmergency,
		CrisisLevel: domain.LevelEmergency,
		Response:    refdata.FallbackEmergencyMessage,
		Status:      domain.StatusError,
		Err:         errMsg,
	}
}
