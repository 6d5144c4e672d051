package gateway

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dharmesh8t/mental-health-crisis-agent/internal/domain"
)

type stubLLM struct {
	reply string
	err   error
}

func (s *stubLLM) GenerateText(ctx context.Context, prompt string) (string, error) {
	return s.reply, s.err
}

func TestCompleteContainsFailure(t *testing.T) {
	gw := New(&stubLLM{err: errors.New("network down")})

	got := gw.Complete(context.Background(), "hello")
	assert.Equal(t, fallbackReply, got)
}

func TestCompletePassesThroughText(t *testing.T) {
	gw := New(&stubLLM{reply: "You're doing well by reaching out."})

	got := gw.Complete(context.Background(), "hello")
	assert.Equal(t, "You're doing well by reaching out.", got)
}

func TestCompleteOKReportsFailure(t *testing.T) {
	gw := New(&stubLLM{err: errors.New("network down")})

	got, ok := gw.CompleteOK(context.Background(), "hello")
	assert.False(t, ok)
	assert.Empty(t, got)

	gw = New(&stubLLM{reply: "supportive reply"})
	got, ok = gw.CompleteOK(context.Background(), "hello")
	assert.True(t, ok)
	assert.Equal(t, "supportive reply", got)
}

func TestCompleteStructuredLeavesFallbackUntouched(t *testing.T) {
	tests := []struct {
		name string
		llm  *stubLLM
	}{
		{"call failure", &stubLLM{err: errors.New("timeout")}},
		{"no JSON in response", &stubLLM{reply: "plain prose, no braces"}},
		{"malformed JSON only", &stubLLM{reply: "{broken"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := New(tt.llm)
			out := map[string]any{"keep": "me"}

			ok := gw.CompleteStructured(context.Background(), "prompt", &out)
			require.False(t, ok)
			assert.Equal(t, map[string]any{"keep": "me"}, out)
		})
	}
}

func TestCompleteStructuredExtractsEmbeddedJSON(t *testing.T) {
	gw := New(&stubLLM{reply: "Of course. {\"crisis_level\": \"high\", \"confidence\": 0.9} Stay safe."})

	var out struct {
		CrisisLevel string  `json:"crisis_level"`
		Confidence  float64 `json:"confidence"`
	}
	ok := gw.CompleteStructured(context.Background(), "prompt", &out)
	require.True(t, ok)
	assert.Equal(t, "high", out.CrisisLevel)
	assert.Equal(t, 0.9, out.Confidence)
}

func TestAssessSeverityDefaultOnFailure(t *testing.T) {
	gw := New(&stubLLM{err: errors.New("unavailable")})

	got := gw.AssessSeverity(context.Background(), "I feel sad")

	want := domain.AssessmentResult{
		CrisisLevel:     domain.LevelUnknown,
		KeySymptoms:     []string{},
		RiskFactors:     []string{},
		Recommendations: []string{},
		Confidence:      0.0,
	}
	assert.Equal(t, want, got)
}

func TestAssessSeverityParsesLevel(t *testing.T) {
	gw := New(&stubLLM{reply: `{"crisis_level": "medium", "key_symptoms": ["hopelessness"], "confidence": 0.8}`})

	got := gw.AssessSeverity(context.Background(), "I feel hopeless")

	assert.Equal(t, domain.LevelMedium, got.CrisisLevel)
	assert.Equal(t, []string{"hopelessness"}, got.KeySymptoms)
	assert.Equal(t, 0.8, got.Confidence)
}

func TestAssessSeverityUnknownLevelString(t *testing.T) {
	gw := New(&stubLLM{reply: `{"crisis_level": "catastrophic", "confidence": 0.5}`})

	got := gw.AssessSeverity(context.Background(), "message")
	assert.Equal(t, domain.LevelUnknown, got.CrisisLevel)
	assert.Equal(t, 0.5, got.Confidence)
}

func TestExtractResourceNeedsDefault(t *testing.T) {
	gw := New(&stubLLM{reply: "no structure here"})

	got := gw.ExtractResourceNeeds(context.Background(), "message")
	assert.Equal(t, domain.ResourceNeeds{Urgency: "soon"}, got)
}
