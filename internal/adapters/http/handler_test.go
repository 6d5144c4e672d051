package httpadapter_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	httpadapter "github.com/dharmesh8t/mental-health-crisis-agent/internal/adapters/http"
	"github.com/dharmesh8t/mental-health-crisis-agent/internal/adapters/llm"
	"github.com/dharmesh8t/mental-health-crisis-agent/internal/adapters/storage/memory"
	"github.com/dharmesh8t/mental-health-crisis-agent/internal/app/gateway"
	"github.com/dharmesh8t/mental-health-crisis-agent/internal/app/pipeline"
	"github.com/dharmesh8t/mental-health-crisis-agent/internal/refdata"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()

	llmClient := llm.NewMockLLM()
	store := memory.NewSessionStore()
	orch := pipeline.NewOrchestrator(gateway.New(llmClient), store, refdata.NewKeywordDetector())

	return httpadapter.NewServer(orch, store)
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()

	srv.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestPostInteractionAndGetSession(t *testing.T) {
	srv := newTestServer(t)

	// Run the pipeline once
	body := []byte(`{"session_id":"user-http","message":"I have been feeling anxious all week"}`)
	req := httptest.NewRequest(http.MethodPost, "/interactions", bytes.NewReader(body))
	w := httptest.NewRecorder()

	srv.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d, body=%s", w.Code, w.Body.String())
	}

	var result struct {
		SessionID string `json:"session_id"`
		Emergency bool   `json:"emergency"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if result.SessionID != "user-http" {
		t.Fatalf("expected session_id user-http, got %q", result.SessionID)
	}
	if result.Emergency {
		t.Fatal("expected non-emergency interaction")
	}

	// Read the session back
	req = httptest.NewRequest(http.MethodGet, "/sessions/user-http", nil)
	w = httptest.NewRecorder()

	srv.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var sess struct {
		ID       string `json:"id"`
		Messages []struct {
			Role string `json:"role"`
			Text string `json:"text"`
		} `json:"messages"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &sess); err != nil {
		t.Fatalf("decode session: %v", err)
	}
	if sess.ID != "user-http" {
		t.Fatalf("expected id user-http, got %q", sess.ID)
	}
	if len(sess.Messages) == 0 {
		t.Fatal("expected session messages")
	}
	if sess.Messages[0].Role != "user" {
		t.Fatalf("expected first message from user, got %q", sess.Messages[0].Role)
	}
}

func TestPostInteractionRejectsEmptyMessage(t *testing.T) {
	srv := newTestServer(t)

	body := []byte(`{"message":"   "}`)
	req := httptest.NewRequest(http.MethodPost, "/interactions", bytes.NewReader(body))
	w := httptest.NewRecorder()

	srv.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestGetPlanBeforePlanExists(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/sessions/nobody/plan", nil)
	w := httptest.NewRecorder()

	srv.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}
