package domain

// Message is one entry in a session's conversation timeline (user or assistant).
type Message struct {
	ID        MessageID
	SessionID SessionID
	Role      Role
	Text      string
	CreatedAt Timestamp
}

// EmergencyFlag records one emergency detection, with the message that
// triggered it and a snapshot of the assessment at that moment.
type EmergencyFlag struct {
	DetectedAt Timestamp
	Message    string
	Assessment AssessmentResult
}

// RecoveryPlan is the session's current plan. At most one plan exists per
// session; attaching a new one replaces the old.
type RecoveryPlan struct {
	CreatedAt  Timestamp
	Body       string
	Components map[string]string
}

// ProgressEntry is one timestamped progress assessment.
type ProgressEntry struct {
	AssessedAt Timestamp
	Assessment string
}

// FollowupSchedule maps each follow-up horizon to an absolute check-in time.
type FollowupSchedule map[Horizon]Timestamp

// ResourceRecommendation records one set of resources surfaced to the user.
type ResourceRecommendation struct {
	ProvidedAt Timestamp
	Needs      []NeedCategory
	Resources  ResourceBundle
}

// ResourceBundle groups the directory entries selected for one recommendation.
type ResourceBundle struct {
	Hotlines      []Hotline `json:"hotlines,omitempty"`
	Therapy       *Therapy  `json:"therapy,omitempty"`
	SupportGroups []string  `json:"support_groups,omitempty"`
	Apps          []App     `json:"apps,omitempty"`
	Immediate     bool      `json:"immediate,omitempty"`
}

// Hotline is a crisis line in the static resource directory.
type Hotline struct {
	Name      string `json:"name"`
	Contact   string `json:"contact"`
	Country   string `json:"country"`
	Available string `json:"available"`
}

// Therapy describes therapy options in the static resource directory.
type Therapy struct {
	Types           []string `json:"types"`
	DeliveryMethods []string `json:"delivery_methods"`
}

// App is a mental-health app entry in the static resource directory.
type App struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
}

// Session is the aggregate record for one user's crisis conversation. It is
// created lazily on first reference and lives for the process lifetime.
type Session struct {
	ID        SessionID
	CreatedAt Timestamp
	UpdatedAt Timestamp

	CrisisLevel       CrisisLevel
	Messages          []*Message
	Symptoms          []string
	InterventionsUsed []string
	ResourcesProvided []ResourceRecommendation
	EmergencyFlags    []EmergencyFlag
	RecoveryPlan      *RecoveryPlan
	FollowupSchedule  FollowupSchedule
	ProgressEntries   []ProgressEntry
	FollowupNeeded    bool
}

// SessionContext is the compact summary stages embed in prompts.
type SessionContext struct {
	CrisisLevel       CrisisLevel
	Symptoms          []string
	InterventionsUsed []string
}

// AssessmentResult is the structured severity classification for one message.
// It has no identity of its own; it is folded into the session.
type AssessmentResult struct {
	CrisisLevel     CrisisLevel `json:"crisis_level"`
	KeySymptoms     []string    `json:"key_symptoms"`
	RiskFactors     []string    `json:"risk_factors"`
	Recommendations []string    `json:"immediate_recommendations"`
	Confidence      float64     `json:"confidence"`
}

// ResourceNeeds is the structured needs-extraction result.
type ResourceNeeds struct {
	NeedsTherapist    bool   `json:"needs_therapist"`
	NeedsHotline      bool   `json:"needs_hotline"`
	NeedsSupportGroup bool   `json:"needs_support_group"`
	Urgency           string `json:"urgency"`
	LocationInfo      string `json:"location_info"`
}
