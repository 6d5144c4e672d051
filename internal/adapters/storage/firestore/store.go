package firestore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dharmesh8t/mental-health-crisis-agent/internal/domain"
)

// Store persists crisis sessions in Firestore, one document per session.
// It implements the same lazy-creation contract as the in-memory store:
// reading an unknown id yields a fresh session, and the first mutation
// writes it.
type Store struct {
	client *firestore.Client
	now    func() time.Time
}

// NewStore creates a Firestore store for the given project.
func NewStore(ctx context.Context, projectID string) (*Store, error) {
	if projectID == "" {
		return nil, fmt.Errorf("projectID is required for Firestore store")
	}

	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("creating firestore client: %w", err)
	}

	return &Store{client: client, now: time.Now}, nil
}

func (s *Store) sessionsCol() *firestore.CollectionRef {
	return s.client.Collection("crisis_sessions")
}

func (s *Store) sessionDoc(id domain.SessionID) *firestore.DocumentRef {
	return s.sessionsCol().Doc(string(id))
}

// ─────────────────────────────────────────
// Firestore Types
// ─────────────────────────────────────────

type messageDoc struct {
	ID        string    `firestore:"id"`
	Role      string    `firestore:"role"`
	Text      string    `firestore:"text"`
	CreatedAt time.Time `firestore:"created_at"`
}

type emergencyFlagDoc struct {
	DetectedAt time.Time `firestore:"detected_at"`
	Message    string    `firestore:"message"`
	Level      string    `firestore:"level"`
	Symptoms   []string  `firestore:"symptoms"`
	Confidence float64   `firestore:"confidence"`
}

type recoveryPlanDoc struct {
	CreatedAt  time.Time         `firestore:"created_at"`
	Body       string            `firestore:"body"`
	Components map[string]string `firestore:"components"`
}

type progressEntryDoc struct {
	AssessedAt time.Time `firestore:"assessed_at"`
	Assessment string    `firestore:"assessment"`
}

type resourceRecDoc struct {
	ProvidedAt time.Time `firestore:"provided_at"`
	Needs      []string  `firestore:"needs"`
	// The bundle is stored as JSON so the directory entry types stay out of
	// the Firestore schema.
	Resources string `firestore:"resources_json"`
}

type sessionDoc struct {
	CreatedAt time.Time `firestore:"created_at"`
	UpdatedAt time.Time `firestore:"updated_at"`

	CrisisLevel       string               `firestore:"crisis_level"`
	Messages          []messageDoc         `firestore:"messages"`
	Symptoms          []string             `firestore:"symptoms"`
	InterventionsUsed []string             `firestore:"interventions_used"`
	ResourcesProvided []resourceRecDoc     `firestore:"resources_provided"`
	EmergencyFlags    []emergencyFlagDoc   `firestore:"emergency_flags"`
	RecoveryPlan      *recoveryPlanDoc     `firestore:"recovery_plan"`
	FollowupSchedule  map[string]time.Time `firestore:"followup_schedule"`
	ProgressEntries   []progressEntryDoc   `firestore:"progress_entries"`
	FollowupNeeded    bool                 `firestore:"followup_needed"`
}

func toDoc(sess *domain.Session) sessionDoc {
	doc := sessionDoc{
		CreatedAt:         sess.CreatedAt,
		UpdatedAt:         sess.UpdatedAt,
		CrisisLevel:       string(sess.CrisisLevel),
		Symptoms:          sess.Symptoms,
		InterventionsUsed: sess.InterventionsUsed,
		FollowupNeeded:    sess.FollowupNeeded,
	}
	for _, m := range sess.Messages {
		doc.Messages = append(doc.Messages, messageDoc{
			ID:        string(m.ID),
			Role:      string(m.Role),
			Text:      m.Text,
			CreatedAt: m.CreatedAt,
		})
	}
	for _, f := range sess.EmergencyFlags {
		doc.EmergencyFlags = append(doc.EmergencyFlags, emergencyFlagDoc{
			DetectedAt: f.DetectedAt,
			Message:    f.Message,
			Level:      string(f.Assessment.CrisisLevel),
			Symptoms:   f.Assessment.KeySymptoms,
			Confidence: f.Assessment.Confidence,
		})
	}
	for _, r := range sess.ResourcesProvided {
		rec := resourceRecDoc{ProvidedAt: r.ProvidedAt}
		for _, n := range r.Needs {
			rec.Needs = append(rec.Needs, string(n))
		}
		if raw, err := json.Marshal(r.Resources); err == nil {
			rec.Resources = string(raw)
		}
		doc.ResourcesProvided = append(doc.ResourcesProvided, rec)
	}
	if sess.RecoveryPlan != nil {
		doc.RecoveryPlan = &recoveryPlanDoc{
			CreatedAt:  sess.RecoveryPlan.CreatedAt,
			Body:       sess.RecoveryPlan.Body,
			Components: sess.RecoveryPlan.Components,
		}
	}
	for _, p := range sess.ProgressEntries {
		doc.ProgressEntries = append(doc.ProgressEntries, progressEntryDoc{
			AssessedAt: p.AssessedAt,
			Assessment: p.Assessment,
		})
	}
	if sess.FollowupSchedule != nil {
		doc.FollowupSchedule = make(map[string]time.Time, len(sess.FollowupSchedule))
		for h, t := range sess.FollowupSchedule {
			doc.FollowupSchedule[string(h)] = t
		}
	}
	return doc
}

func fromDoc(id domain.SessionID, doc sessionDoc) *domain.Session {
	sess := &domain.Session{
		ID:                id,
		CreatedAt:         doc.CreatedAt,
		UpdatedAt:         doc.UpdatedAt,
		CrisisLevel:       domain.CrisisLevel(doc.CrisisLevel),
		Symptoms:          doc.Symptoms,
		InterventionsUsed: doc.InterventionsUsed,
		FollowupNeeded:    doc.FollowupNeeded,
	}
	if sess.CrisisLevel == "" {
		sess.CrisisLevel = domain.LevelUnknown
	}
	for _, m := range doc.Messages {
		sess.Messages = append(sess.Messages, &domain.Message{
			ID:        domain.MessageID(m.ID),
			SessionID: id,
			Role:      domain.Role(m.Role),
			Text:      m.Text,
			CreatedAt: m.CreatedAt,
		})
	}
	for _, f := range doc.EmergencyFlags {
		sess.EmergencyFlags = append(sess.EmergencyFlags, domain.EmergencyFlag{
			DetectedAt: f.DetectedAt,
			Message:    f.Message,
			Assessment: domain.AssessmentResult{
				CrisisLevel: domain.CrisisLevel(f.Level),
				KeySymptoms: f.Symptoms,
				Confidence:  f.Confidence,
			},
		})
	}
	for _, r := range doc.ResourcesProvided {
		rec := domain.ResourceRecommendation{ProvidedAt: r.ProvidedAt}
		for _, n := range r.Needs {
			rec.Needs = append(rec.Needs, domain.NeedCategory(n))
		}
		if r.Resources != "" {
			_ = json.Unmarshal([]byte(r.Resources), &rec.Resources)
		}
		sess.ResourcesProvided = append(sess.ResourcesProvided, rec)
	}
	if doc.RecoveryPlan != nil {
		sess.RecoveryPlan = &domain.RecoveryPlan{
			CreatedAt:  doc.RecoveryPlan.CreatedAt,
			Body:       doc.RecoveryPlan.Body,
			Components: doc.RecoveryPlan.Components,
		}
	}
	for _, p := range doc.ProgressEntries {
		sess.ProgressEntries = append(sess.ProgressEntries, domain.ProgressEntry{
			AssessedAt: p.AssessedAt,
			Assessment: p.Assessment,
		})
	}
	if doc.FollowupSchedule != nil {
		sess.FollowupSchedule = make(domain.FollowupSchedule, len(doc.FollowupSchedule))
		for h, t := range doc.FollowupSchedule {
			sess.FollowupSchedule[domain.Horizon(h)] = t
		}
	}
	return sess
}

// ─────────────────────────────────────────
// Contract
// ─────────────────────────────────────────

// load reads the session, returning a fresh one for unknown ids.
func (s *Store) load(ctx context.Context, id domain.SessionID) (*domain.Session, error) {
	snap, err := s.sessionDoc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		now := s.now()
		return &domain.Session{
			ID:          id,
			CreatedAt:   now,
			UpdatedAt:   now,
			CrisisLevel: domain.LevelUnknown,
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get session %s: %w", id, err)
	}

	var doc sessionDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", id, err)
	}
	return fromDoc(id, doc), nil
}

func (s *Store) save(ctx context.Context, sess *domain.Session) error {
	sess.UpdatedAt = s.now()
	if _, err := s.sessionDoc(sess.ID).Set(ctx, toDoc(sess)); err != nil {
		return fmt.Errorf("save session %s: %w", sess.ID, err)
	}
	return nil
}

// mutate applies fn to the session and writes it back.
func (s *Store) mutate(id domain.SessionID, fn func(*domain.Session)) error {
	ctx := context.Background()
	sess, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	fn(sess)
	return s.save(ctx, sess)
}

func (s *Store) CreateSession(id domain.SessionID) (domain.SessionID, error) {
	ctx := context.Background()
	sess, err := s.load(ctx, id)
	if err != nil {
		return "", err
	}
	if err := s.save(ctx, sess); err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) GetSession(id domain.SessionID) (*domain.Session, error) {
	return s.load(context.Background(), id)
}

func (s *Store) ListSessions(limit int) ([]*domain.Session, error) {
	ctx := context.Background()
	q := s.sessionsCol().Query
	if limit > 0 {
		q = q.Limit(limit)
	}

	var result []*domain.Session
	it := q.Documents(ctx)
	defer it.Stop()
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("iterate sessions: %w", err)
		}
		var doc sessionDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("decode session %s: %w", snap.Ref.ID, err)
		}
		result = append(result, fromDoc(domain.SessionID(snap.Ref.ID), doc))
	}
	return result, nil
}

func (s *Store) AppendMessage(id domain.SessionID, role domain.Role, text string) error {
	return s.mutate(id, func(sess *domain.Session) {
		sess.Messages = append(sess.Messages, &domain.Message{
			ID:        domain.MessageID(uuid.NewString()),
			SessionID: id,
			Role:      role,
			Text:      text,
			CreatedAt: s.now(),
		})
	})
}

func (s *Store) GetRecentMessages(id domain.SessionID, n int) ([]*domain.Message, error) {
	sess, err := s.load(context.Background(), id)
	if err != nil {
		return nil, err
	}
	msgs := sess.Messages
	if n > 0 && len(msgs) > n {
		msgs = msgs[len(msgs)-n:]
	}
	return msgs, nil
}

func (s *Store) GetContext(id domain.SessionID) (domain.SessionContext, error) {
	sess, err := s.load(context.Background(), id)
	if err != nil {
		return domain.SessionContext{}, err
	}
	return domain.SessionContext{
		CrisisLevel:       sess.CrisisLevel,
		Symptoms:          sess.Symptoms,
		InterventionsUsed: sess.InterventionsUsed,
	}, nil
}

func (s *Store) SetCrisisLevel(id domain.SessionID, level domain.CrisisLevel) error {
	return s.mutate(id, func(sess *domain.Session) {
		sess.CrisisLevel = level
	})
}

func (s *Store) SetSymptoms(id domain.SessionID, symptoms []string) error {
	return s.mutate(id, func(sess *domain.Session) {
		sess.Symptoms = symptoms
	})
}

func (s *Store) MarkInterventionUsed(id domain.SessionID, name string) error {
	return s.mutate(id, func(sess *domain.Session) {
		for _, used := range sess.InterventionsUsed {
			if used == name {
				return
			}
		}
		sess.InterventionsUsed = append(sess.InterventionsUsed, name)
	})
}

func (s *Store) AppendEmergencyFlag(id domain.SessionID, flag domain.EmergencyFlag) error {
	return s.mutate(id, func(sess *domain.Session) {
		sess.EmergencyFlags = append(sess.EmergencyFlags, flag)
		sess.FollowupNeeded = true
	})
}

func (s *Store) AppendResourceRecommendation(id domain.SessionID, rec domain.ResourceRecommendation) error {
	return s.mutate(id, func(sess *domain.Session) {
		sess.ResourcesProvided = append(sess.ResourcesProvided, rec)
	})
}

func (s *Store) AttachRecoveryPlan(id domain.SessionID, plan *domain.RecoveryPlan) error {
	return s.mutate(id, func(sess *domain.Session) {
		sess.RecoveryPlan = plan
	})
}

func (s *Store) GetRecoveryPlan(id domain.SessionID) (*domain.RecoveryPlan, error) {
	sess, err := s.load(context.Background(), id)
	if err != nil {
		return nil, err
	}
	return sess.RecoveryPlan, nil
}

func (s *Store) AppendProgressEntry(id domain.SessionID, entry domain.ProgressEntry) error {
	return s.mutate(id, func(sess *domain.Session) {
		sess.ProgressEntries = append(sess.ProgressEntries, entry)
	})
}

func (s *Store) AttachFollowupSchedule(id domain.SessionID, schedule domain.FollowupSchedule) error {
	return s.mutate(id, func(sess *domain.Session) {
		sess.FollowupSchedule = schedule
		sess.FollowupNeeded = true
	})
}
