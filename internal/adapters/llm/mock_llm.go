package llm

import (
	"context"
	"fmt"
)

// MockLLM is a local stand-in for development and tests.
type MockLLM struct{}

func NewMockLLM() *MockLLM {
	return &MockLLM{}
}

func (m *MockLLM) GenerateText(ctx context.Context, prompt string) (string, error) {
	return fmt.Sprintf("I hear you. Thank you for sharing that with me. (mock reply, prompt %d chars)", len(prompt)), nil
}
