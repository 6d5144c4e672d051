package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dharmesh8t/mental-health-crisis-agent/internal/adapters/storage/memory"
	"github.com/dharmesh8t/mental-health-crisis-agent/internal/domain"
	"github.com/dharmesh8t/mental-health-crisis-agent/internal/refdata"
)

func newRouter(t *testing.T) (*SafetyRouter, *memory.SessionStore) {
	t.Helper()
	store := memory.NewSessionStore()
	return NewSafetyRouter(store, refdata.NewKeywordDetector()), store
}

func TestRouteEmergencyPhraseOverridesLevel(t *testing.T) {
	router, store := newRouter(t)
	ctx := context.Background()

	// An explicit phrase escalates regardless of the assessed level.
	for _, level := range []domain.CrisisLevel{domain.LevelLow, domain.LevelMedium, domain.LevelUnknown} {
		decision := router.AssessAndRoute(ctx, "s1", "I want to kill myself", domain.AssessmentResult{CrisisLevel: level})
		assert.Equal(t, domain.RouteEmergencyServices, decision.Routing, "level %s", level)
		assert.True(t, decision.Emergency())
		assert.NotEmpty(t, decision.Response)
		assert.NotEmpty(t, decision.ImmediateActions)
	}

	sess, err := store.GetSession("s1")
	require.NoError(t, err)
	assert.Len(t, sess.EmergencyFlags, 3)
}

func TestRoutePlanningCueRequiresEscalatedLevel(t *testing.T) {
	router, _ := newRouter(t)
	ctx := context.Background()

	high := router.AssessAndRoute(ctx, "s2", "I have a plan", domain.AssessmentResult{CrisisLevel: domain.LevelHigh})
	assert.Equal(t, domain.RouteEmergencyServices, high.Routing)

	medium := router.AssessAndRoute(ctx, "s3", "I have a plan to get help", domain.AssessmentResult{CrisisLevel: domain.LevelMedium})
	assert.Equal(t, domain.RouteProfessionalSupport, medium.Routing)
}

func TestRouteNonEmergency(t *testing.T) {
	router, _ := newRouter(t)
	ctx := context.Background()

	low := router.AssessAndRoute(ctx, "s4", "I feel a bit stressed", domain.AssessmentResult{CrisisLevel: domain.LevelLow})
	assert.Equal(t, domain.RouteDeescalation, low.Routing)
	assert.Equal(t, "deescalation", low.NextStage)
	assert.NotEmpty(t, low.Actions)

	// High level with no emergency phrase and no planning cue.
	high := router.AssessAndRoute(ctx, "s5", "everything feels heavy", domain.AssessmentResult{CrisisLevel: domain.LevelHigh})
	assert.Equal(t, domain.RouteProfessionalSupport, high.Routing)
	assert.Equal(t, "resource_finder", high.NextStage)
}

func TestEmergencyAppendsScriptToSession(t *testing.T) {
	router, store := newRouter(t)
	ctx := context.Background()

	decision := router.AssessAndRoute(ctx, "s6", "thinking about overdose", domain.AssessmentResult{CrisisLevel: domain.LevelMedium})
	require.True(t, decision.Emergency())

	msgs, err := store.GetRecentMessages("s6", 1)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, domain.RoleAssistant, msgs[0].Role)
	assert.Equal(t, refdata.EmergencyResponse, msgs[0].Text)
}

type panickyDetector struct{}

func (panickyDetector) Detect(string, domain.CrisisLevel) bool {
	panic("detector exploded")
}

func TestRoutingFaultFailsSafeToEscalation(t *testing.T) {
	store := memory.NewSessionStore()
	router := NewSafetyRouter(store, panickyDetector{})

	decision := router.AssessAndRoute(context.Background(), "s7", "hello", domain.AssessmentResult{CrisisLevel: domain.LevelLow})

	assert.Equal(t, domain.RouteFallbackEmergency, decision.Routing)
	assert.Equal(t, domain.StatusError, decision.Status)
	assert.Equal(t, refdata.FallbackEmergencyMessage, decision.Response)
	assert.NotEmpty(t, decision.Err)
}
