package domain

import "context"

// LLMClient defines how the core application talks to a language model
// service. Adapters own transport details; callers own prompt construction.
type LLMClient interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// SessionStore defines session persistence.
//
// Every operation on an unknown id lazily creates the session first. This is
// the store's single, uniform rule: mutators create-then-apply, and readers
// over per-session collections return empty values rather than a not-found
// error. Callers never need to create a session before using it.
type SessionStore interface {
	// CreateSession is idempotent: an existing session keeps its messages
	// and state.
	CreateSession(id SessionID) (SessionID, error)
	GetSession(id SessionID) (*Session, error)
	ListSessions(limit int) ([]*Session, error)

	AppendMessage(id SessionID, role Role, text string) error
	GetRecentMessages(id SessionID, n int) ([]*Message, error)
	GetContext(id SessionID) (SessionContext, error)

	SetCrisisLevel(id SessionID, level CrisisLevel) error
	SetSymptoms(id SessionID, symptoms []string) error
	MarkInterventionUsed(id SessionID, name string) error

	AppendEmergencyFlag(id SessionID, flag EmergencyFlag) error
	AppendResourceRecommendation(id SessionID, rec ResourceRecommendation) error

	AttachRecoveryPlan(id SessionID, plan *RecoveryPlan) error
	GetRecoveryPlan(id SessionID) (*RecoveryPlan, error)
	AppendProgressEntry(id SessionID, entry ProgressEntry) error
	AttachFollowupSchedule(id SessionID, schedule FollowupSchedule) error
}

// EmergencyDetector decides whether a message requires emergency routing.
// The default implementation is a keyword matcher; keeping it behind this
// interface lets a real classifier replace it without touching the router.
type EmergencyDetector interface {
	Detect(message string, level CrisisLevel) bool
}
