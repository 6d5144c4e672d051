package memory

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dharmesh8t/mental-health-crisis-agent/internal/domain"
)

// SessionStore keeps crisis sessions in a mutex-guarded map for the process
// lifetime. Lazy creation is centralized here: every operation on an unknown
// id creates the session first, so callers never pre-create.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[domain.SessionID]*domain.Session
	now      func() time.Time
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[domain.SessionID]*domain.Session),
		now:      time.Now,
	}
}

// sessionLocked returns the session for id, creating it if absent.
// Caller must hold the write lock.
func (s *SessionStore) sessionLocked(id domain.SessionID) *domain.Session {
	if sess, ok := s.sessions[id]; ok {
		return sess
	}
	now := s.now()
	sess := &domain.Session{
		ID:          id,
		CreatedAt:   now,
		UpdatedAt:   now,
		CrisisLevel: domain.LevelUnknown,
	}
	s.sessions[id] = sess
	return sess
}

// CreateSession ensures a session exists for id and returns the id. Calling
// it for an existing session keeps previously appended messages and state.
func (s *SessionStore) CreateSession(id domain.SessionID) (domain.SessionID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessionLocked(id)
	return id, nil
}

func (s *SessionStore) GetSession(id domain.SessionID) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sessionLocked(id), nil
}

func (s *SessionStore) ListSessions(limit int) ([]*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.Session
	for _, sess := range s.sessions {
		result = append(result, sess)
		if limit > 0 && len(result) >= limit {
			break
		}
	}
	return result, nil
}

func (s *SessionStore) AppendMessage(id domain.SessionID, role domain.Role, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.sessionLocked(id)
	now := s.now()
	sess.Messages = append(sess.Messages, &domain.Message{
		ID:        domain.MessageID(uuid.NewString()),
		SessionID: id,
		Role:      role,
		Text:      text,
		CreatedAt: now,
	})
	sess.UpdatedAt = now
	return nil
}

// GetRecentMessages returns the most recent n messages in chronological
// order, or all of them when n <= 0.
func (s *SessionStore) GetRecentMessages(id domain.SessionID, n int) ([]*domain.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	msgs := s.sessionLocked(id).Messages
	if n > 0 && len(msgs) > n {
		msgs = msgs[len(msgs)-n:]
	}
	out := make([]*domain.Message, len(msgs))
	copy(out, msgs)
	return out, nil
}

func (s *SessionStore) GetContext(id domain.SessionID) (domain.SessionContext, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.sessionLocked(id)
	return domain.SessionContext{
		CrisisLevel:       sess.CrisisLevel,
		Symptoms:          append([]string(nil), sess.Symptoms...),
		InterventionsUsed: append([]string(nil), sess.InterventionsUsed...),
	}, nil
}

func (s *SessionStore) SetCrisisLevel(id domain.SessionID, level domain.CrisisLevel) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.sessionLocked(id)
	sess.CrisisLevel = level
	sess.UpdatedAt = s.now()
	return nil
}

func (s *SessionStore) SetSymptoms(id domain.SessionID, symptoms []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.sessionLocked(id)
	sess.Symptoms = append([]string(nil), symptoms...)
	sess.UpdatedAt = s.now()
	return nil
}

func (s *SessionStore) MarkInterventionUsed(id domain.SessionID, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.sessionLocked(id)
	for _, used := range sess.InterventionsUsed {
		if used == name {
			return nil
		}
	}
	sess.InterventionsUsed = append(sess.InterventionsUsed, name)
	sess.UpdatedAt = s.now()
	return nil
}

func (s *SessionStore) AppendEmergencyFlag(id domain.SessionID, flag domain.EmergencyFlag) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.sessionLocked(id)
	sess.EmergencyFlags = append(sess.EmergencyFlags, flag)
	sess.FollowupNeeded = true
	sess.UpdatedAt = s.now()
	return nil
}

func (s *SessionStore) AppendResourceRecommendation(id domain.SessionID, rec domain.ResourceRecommendation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.sessionLocked(id)
	sess.ResourcesProvided = append(sess.ResourcesProvided, rec)
	sess.UpdatedAt = s.now()
	return nil
}

// AttachRecoveryPlan replaces any existing plan; no plan history is kept.
func (s *SessionStore) AttachRecoveryPlan(id domain.SessionID, plan *domain.RecoveryPlan) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.sessionLocked(id)
	sess.RecoveryPlan = plan
	sess.UpdatedAt = s.now()
	return nil
}

// GetRecoveryPlan returns nil when the session has no current plan.
func (s *SessionStore) GetRecoveryPlan(id domain.SessionID) (*domain.RecoveryPlan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sessionLocked(id).RecoveryPlan, nil
}

func (s *SessionStore) AppendProgressEntry(id domain.SessionID, entry domain.ProgressEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.sessionLocked(id)
	sess.ProgressEntries = append(sess.ProgressEntries, entry)
	sess.UpdatedAt = s.now()
	return nil
}

func (s *SessionStore) AttachFollowupSchedule(id domain.SessionID, schedule domain.FollowupSchedule) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.sessionLocked(id)
	sess.FollowupSchedule = schedule
	sess.FollowupNeeded = true
	sess.UpdatedAt = s.now()
	return nil
}
