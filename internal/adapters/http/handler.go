package httpadapter

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/dharmesh8t/mental-health-crisis-agent/internal/app/pipeline"
	"github.com/dharmesh8t/mental-health-crisis-agent/internal/domain"
)

type Server struct {
	orch  *pipeline.Orchestrator
	store domain.SessionStore
}

func NewServer(orch *pipeline.Orchestrator, store domain.SessionStore) http.Handler {
	s := &Server{orch: orch, store: store}
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", s.handleHealthz)

	// /interactions → POST: run the pipeline for one message
	mux.HandleFunc("/interactions", s.handleInteractions)

	// /sessions               → GET: list sessions
	// /sessions/{id}          → GET: session detail
	// /sessions/{id}/progress → POST: run a progress check
	// /sessions/{id}/plan     → GET: current recovery plan
	mux.HandleFunc("/sessions", s.handleSessions)
	mux.HandleFunc("/sessions/", s.handleSessionWithID)

	return chainMiddlewares(mux, withLogging, withCORS)
}

// ─────────────────────────────────────────────
// DTOs (request/response)
// ─────────────────────────────────────────────

type interactionRequest struct {
	SessionID string `json:"session_id,omitempty"`
	Message   string `json:"message"`
}

type messageResponse struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

type sessionResponse struct {
	ID               string               `json:"id"`
	CrisisLevel      string               `json:"crisis_level"`
	Symptoms         []string             `json:"symptoms,omitempty"`
	FollowupNeeded   bool                 `json:"followup_needed"`
	EmergencyFlags   int                  `json:"emergency_flags"`
	FollowupSchedule map[string]time.Time `json:"followup_schedule,omitempty"`
	CreatedAt        time.Time            `json:"created_at"`
	UpdatedAt        time.Time            `json:"updated_at"`
	Messages         []messageResponse    `json:"messages,omitempty"`
}

type planResponse struct {
	CreatedAt  time.Time         `json:"created_at"`
	Plan       string            `json:"plan"`
	Components map[string]string `json:"components"`
}

// ─────────────────────────────────────────────
// Handlers
// ─────────────────────────────────────────────

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleInteractions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req interactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		badRequest(w, "message is required")
		return
	}

	result, err := s.orch.ProcessInteraction(r.Context(), req.Message, domain.SessionID(req.SessionID))
	if err != nil {
		internalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleSessions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	sessions, err := s.store.ListSessions(100)
	if err != nil {
		internalError(w, err)
		return
	}

	out := make([]sessionResponse, 0, len(sessions))
	for _, sess := range sessions {
		out = append(out, toSessionResponse(sess, false))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleSessionWithID(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/sessions/")
	if path == "" {
		http.NotFound(w, r)
		return
	}

	parts := strings.Split(path, "/")
	id := domain.SessionID(parts[0])
	if id == "" {
		http.NotFound(w, r)
		return
	}

	switch {
	case len(parts) == 1:
		if r.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		s.handleGetSession(w, r, id)

	case len(parts) == 2 && parts[1] == "progress":
		if r.Method != http.MethodPost {
			methodNotAllowed(w)
			return
		}
		result := s.orch.Followup().CheckProgress(r.Context(), id)
		writeJSON(w, http.StatusOK, result)

	case len(parts) == 2 && parts[1] == "plan":
		if r.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		s.handleGetPlan(w, id)

	default:
		http.NotFound(w, r)
	}
}

func (s *Server) handleGetSession(w http.ResponseWriter, _ *http.Request, id domain.SessionID) {
	sess, err := s.store.GetSession(id)
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSessionResponse(sess, true))
}

func (s *Server) handleGetPlan(w http.ResponseWriter, id domain.SessionID) {
	plan, err := s.store.GetRecoveryPlan(id)
	if err != nil {
		internalError(w, err)
		return
	}
	if plan == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no recovery plan for this session"})
		return
	}
	writeJSON(w, http.StatusOK, planResponse{
		CreatedAt:  plan.CreatedAt,
		Plan:       plan.Body,
		Components: plan.Components,
	})
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

func toSessionResponse(sess *domain.Session, includeMessages bool) sessionResponse {
	resp := sessionResponse{
		ID:             string(sess.ID),
		CrisisLevel:    string(sess.CrisisLevel),
		Symptoms:       sess.Symptoms,
		FollowupNeeded: sess.FollowupNeeded,
		EmergencyFlags: len(sess.EmergencyFlags),
		CreatedAt:      sess.CreatedAt,
		UpdatedAt:      sess.UpdatedAt,
	}
	if sess.FollowupSchedule != nil {
		resp.FollowupSchedule = make(map[string]time.Time, len(sess.FollowupSchedule))
		for h, t := range sess.FollowupSchedule {
			resp.FollowupSchedule[string(h)] = t
		}
	}
	if includeMessages {
		for _, m := range sess.Messages {
			resp.Messages = append(resp.Messages, messageResponse{
				ID:        string(m.ID),
				Role:      string(m.Role),
				Text:      m.Text,
				CreatedAt: m.CreatedAt,
			})
		}
	}
	return resp
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
}

func internalError(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
}

func methodNotAllowed(w http.ResponseWriter) {
	writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
}
