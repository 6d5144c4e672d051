// Package gateway is the single boundary to the language-model service. Call
// failures never cross it: Complete degrades to a short supportive string and
// CompleteStructured leaves the caller's fallback value untouched.
package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dharmesh8t/mental-health-crisis-agent/internal/domain"
	"github.com/dharmesh8t/mental-health-crisis-agent/internal/observability"
)

// fallbackReply is returned by Complete when the model call fails.
const fallbackReply = "I'm here to help. Please tell me more."

const assessmentPrompt = `You are a mental health crisis assessment expert.
Analyze this message and respond ONLY with valid JSON matching this shape:
{
    "crisis_level": "low",
    "key_symptoms": [],
    "risk_factors": [],
    "immediate_recommendations": [],
    "confidence": 0.8
}
crisis_level must be one of: low, medium, high, emergency.

User message: `

const needsPrompt = `Extract resource needs from this message.
Respond with ONLY JSON matching this shape:
{
    "needs_therapist": false,
    "needs_hotline": false,
    "needs_support_group": false,
    "urgency": "soon",
    "location_info": ""
}

Message: `

type Gateway struct {
	llm domain.LLMClient
}

func New(llm domain.LLMClient) *Gateway {
	return &Gateway{llm: llm}
}

// Complete requests a free-text completion. It never fails: on any error the
// documented fallback string comes back instead.
func (g *Gateway) Complete(ctx context.Context, prompt string) string {
	text, ok := g.CompleteOK(ctx, prompt)
	if !ok {
		return fallbackReply
	}
	return text
}

// CompleteOK is Complete for stages that carry their own static fallback
// scripts: failure is still contained here, but reported, so the caller can
// substitute its script instead of the generic apology.
func (g *Gateway) CompleteOK(ctx context.Context, prompt string) (string, bool) {
	text, err := g.llm.GenerateText(ctx, prompt)
	if err != nil {
		observability.LoggerFromContext(ctx).Warn("llm completion failed", "error", err)
		return "", false
	}
	return text, true
}

// CompleteStructured requests a completion and parses the first balanced JSON
// object in the response into out. On any failure (call error, no JSON,
// malformed JSON) out is left untouched, so callers pre-populate it with
// their fallback value. The return value reports whether out was filled from
// the model.
func (g *Gateway) CompleteStructured(ctx context.Context, prompt string, out any) bool {
	text, err := g.llm.GenerateText(ctx, prompt)
	if err != nil {
		observability.LoggerFromContext(ctx).Warn("llm structured completion failed", "error", err)
		return false
	}

	raw, ok := ExtractJSON(text)
	if !ok {
		observability.LoggerFromContext(ctx).Warn("no JSON object in llm response")
		return false
	}

	if err := json.Unmarshal([]byte(raw), out); err != nil {
		observability.LoggerFromContext(ctx).Warn("llm JSON did not match expected shape", "error", err)
		return false
	}
	return true
}

// AssessSeverity classifies a user message. On failure it returns the
// documented unknown-severity default.
func (g *Gateway) AssessSeverity(ctx context.Context, userMessage string) domain.AssessmentResult {
	result := domain.AssessmentResult{
		CrisisLevel:     domain.LevelUnknown,
		KeySymptoms:     []string{},
		RiskFactors:     []string{},
		Recommendations: []string{},
		Confidence:      0.0,
	}

	var parsed struct {
		CrisisLevel     string   `json:"crisis_level"`
		KeySymptoms     []string `json:"key_symptoms"`
		RiskFactors     []string `json:"risk_factors"`
		Recommendations []string `json:"immediate_recommendations"`
		Confidence      float64  `json:"confidence"`
	}
	if !g.CompleteStructured(ctx, assessmentPrompt+userMessage, &parsed) {
		return result
	}

	result.CrisisLevel = domain.ParseCrisisLevel(parsed.CrisisLevel)
	if parsed.KeySymptoms != nil {
		result.KeySymptoms = parsed.KeySymptoms
	}
	if parsed.RiskFactors != nil {
		result.RiskFactors = parsed.RiskFactors
	}
	if parsed.Recommendations != nil {
		result.Recommendations = parsed.Recommendations
	}
	result.Confidence = parsed.Confidence
	return result
}

// ExtractResourceNeeds asks the model which resources the user is looking
// for. On failure it returns the documented default.
func (g *Gateway) ExtractResourceNeeds(ctx context.Context, userMessage string) domain.ResourceNeeds {
	needs := domain.ResourceNeeds{Urgency: "soon"}
	g.CompleteStructured(ctx, needsPrompt+userMessage, &needs)
	return needs
}

// BuildContextBlock renders a session context summary for prompt embedding.
func BuildContextBlock(sctx domain.SessionContext) string {
	return fmt.Sprintf("Crisis Level: %s\nSymptoms: %s\nInterventions Used: %s",
		sctx.CrisisLevel,
		strings.Join(sctx.Symptoms, ", "),
		strings.Join(sctx.InterventionsUsed, ", "))
}
