package main

import (
	"context"
	"log"
	"net/http"

	httpadapter "github.com/dharmesh8t/mental-health-crisis-agent/internal/adapters/http"
	"github.com/dharmesh8t/mental-health-crisis-agent/internal/adapters/llm"
	firestorestore "github.com/dharmesh8t/mental-health-crisis-agent/internal/adapters/storage/firestore"
	memstore "github.com/dharmesh8t/mental-health-crisis-agent/internal/adapters/storage/memory"
	"github.com/dharmesh8t/mental-health-crisis-agent/internal/app/gateway"
	"github.com/dharmesh8t/mental-health-crisis-agent/internal/app/pipeline"
	"github.com/dharmesh8t/mental-health-crisis-agent/internal/config"
	"github.com/dharmesh8t/mental-health-crisis-agent/internal/domain"
	"github.com/dharmesh8t/mental-health-crisis-agent/internal/refdata"
)

func main() {
	ctx := context.Background()
	cfg := config.Load()

	var (
		llmClient domain.LLMClient
		err       error
	)
	switch cfg.LLMBackend {
	case config.LLMMock:
		log.Println("[LLM] Using MOCK LLM client")
		llmClient = llm.NewMockLLM()
	case config.LLMOpenAI:
		log.Println("[LLM] Using OpenAI LLM client")
		llmClient = llm.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	default:
		log.Println("[LLM] Using Gemini LLM client")
		llmClient, err = llm.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Fatalf("error initializing Gemini LLM client: %v", err)
		}
	}

	var store domain.SessionStore
	switch cfg.StorageBackend {
	case "firestore":
		log.Printf("[STORE] Using Firestore storage (project=%s)", cfg.GCPProjectID)
		store, err = firestorestore.NewStore(ctx, cfg.GCPProjectID)
		if err != nil {
			log.Fatalf("error initializing Firestore store: %v", err)
		}
	default:
		log.Println("[STORE] Using in-memory storage")
		store = memstore.NewSessionStore()
	}

	gw := gateway.New(llmClient)
	orch := pipeline.NewOrchestrator(gw, store, refdata.NewKeywordDetector())

	handler := httpadapter.NewServer(orch, store)

	addr := ":" + cfg.Port
	log.Println("Crisis support API listening on", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatal(err)
	}
}
