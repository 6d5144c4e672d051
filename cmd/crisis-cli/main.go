package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/dharmesh8t/mental-health-crisis-agent/internal/adapters/llm"
	memstore "github.com/dharmesh8t/mental-health-crisis-agent/internal/adapters/storage/memory"
	"github.com/dharmesh8t/mental-health-crisis-agent/internal/app/gateway"
	"github.com/dharmesh8t/mental-health-crisis-agent/internal/app/pipeline"
	"github.com/dharmesh8t/mental-health-crisis-agent/internal/config"
	"github.com/dharmesh8t/mental-health-crisis-agent/internal/domain"
	"github.com/dharmesh8t/mental-health-crisis-agent/internal/refdata"
)

// Interactive conversation loop. One session per run; "exit" or "quit" ends it.
func main() {
	ctx := context.Background()
	cfg := config.Load()

	var (
		llmClient domain.LLMClient
		err       error
	)
	switch cfg.LLMBackend {
	case config.LLMMock:
		llmClient = llm.NewMockLLM()
	case config.LLMOpenAI:
		llmClient = llm.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	default:
		llmClient, err = llm.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Fatalf("error initializing Gemini LLM client: %v", err)
		}
	}

	store := memstore.NewSessionStore()
	gw := gateway.New(llmClient)
	orch := pipeline.NewOrchestrator(gw, store, refdata.NewKeywordDetector())

	fmt.Println("Mental Health Crisis Support System Initialized")
	fmt.Println("Starting crisis support agent...")
	fmt.Println()

	var sessionID domain.SessionID
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("User: ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if lower := strings.ToLower(input); lower == "exit" || lower == "quit" {
			break
		}

		result, err := orch.ProcessInteraction(ctx, input, sessionID)
		if err != nil {
			fmt.Println("Something went wrong; please try again.")
			continue
		}
		sessionID = result.SessionID

		printResult(result)
	}
}

func printResult(result *pipeline.InteractionResult) {
	if result.Emergency {
		fmt.Println()
		fmt.Println(result.Routing.Response)
		for _, action := range result.Routing.ImmediateActions {
			fmt.Println(" -", action)
		}
		fmt.Println()
		return
	}

	if result.Deescalation != nil {
		fmt.Println()
		fmt.Println(result.Deescalation.Response)
	}
	if result.Resources != nil {
		fmt.Println()
		fmt.Println(result.Resources.Response)
	}
	if result.Followup != nil && result.Followup.Schedule != nil {
		fmt.Println()
		fmt.Println("Follow-up check-ins:")
		for horizon, at := range result.Followup.Schedule {
			fmt.Printf(" - %s: %s\n", horizon, at.Format("Mon Jan 2"))
		}
	}
	fmt.Println()
}
