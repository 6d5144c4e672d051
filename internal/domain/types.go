package domain

import "time"

type SessionID string
type MessageID string

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// CrisisLevel is the ordered severity classification produced by assessment.
type CrisisLevel string

const (
	LevelUnknown   CrisisLevel = "unknown"
	LevelLow       CrisisLevel = "low"
	LevelMedium    CrisisLevel = "medium"
	LevelHigh      CrisisLevel = "high"
	LevelEmergency CrisisLevel = "emergency"
)

// Rank orders levels from unknown (0) up to emergency (4).
func (l CrisisLevel) Rank() int {
	switch l {
	case LevelLow:
		return 1
	case LevelMedium:
		return 2
	case LevelHigh:
		return 3
	case LevelEmergency:
		return 4
	default:
		return 0
	}
}

// Escalated reports whether the level routes through the intensive paths.
func (l CrisisLevel) Escalated() bool {
	return l == LevelHigh || l == LevelEmergency
}

// ParseCrisisLevel normalizes free-form model output into a known level.
func ParseCrisisLevel(s string) CrisisLevel {
	switch CrisisLevel(s) {
	case LevelLow, LevelMedium, LevelHigh, LevelEmergency:
		return CrisisLevel(s)
	default:
		return LevelUnknown
	}
}

// RoutingPath is the safety router's decision for the current interaction.
type RoutingPath string

const (
	RouteEmergencyServices   RoutingPath = "EMERGENCY_SERVICES"
	RouteDeescalation        RoutingPath = "DEESCALATION"
	RouteProfessionalSupport RoutingPath = "PROFESSIONAL_SUPPORT"
	RouteFallbackEmergency   RoutingPath = "FALLBACK_EMERGENCY"
)

// StageStatus tags every stage result. Stages never raise past their
// boundary; internal faults become fallback or error results instead.
type StageStatus string

const (
	StatusSuccess  StageStatus = "success"
	StatusFallback StageStatus = "fallback"
	StatusError    StageStatus = "error"
)

// NeedCategory is a resource need identified from the user's messages.
type NeedCategory string

const (
	NeedTherapy        NeedCategory = "therapy"
	NeedMedication     NeedCategory = "medication"
	NeedPeerSupport    NeedCategory = "peer_support"
	NeedCrisis         NeedCategory = "crisis"
	NeedGeneralSupport NeedCategory = "general_support"
)

// Horizon names a follow-up checkpoint relative to the interaction.
type Horizon string

const (
	HorizonImmediate Horizon = "immediate"
	HorizonShortTerm Horizon = "short_term"
	HorizonWeekOne   Horizon = "week_one"
	HorizonWeekTwo   Horizon = "week_two"
	HorizonMonth     Horizon = "month"
)

type Timestamp = time.Time
