package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/felixstiven/wog-agent/internal/domain"
)

// MockModel is a deterministic stand-in for the Gemini client, useful for
// development without an API key and for tests.
type MockModel struct{}

func NewMockModel() *MockModel {
	return &MockModel{}
}

func (m *MockModel) GenerateReply(
	ctx context.Context,
	userMessage string,
	history []domain.Message,
) (*domain.ModelReply, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	text := fmt.Sprintf("You said %q. Ask me about my projects or my stack!", userMessage)
	if strings.Contains(strings.ToLower(userMessage), "contact") {
		text = "Sure, I would love to talk!\n\n" + ContactFormMarker
	}
	text, showForm := stripContactMarker(text)

	tokens := len(strings.Fields(userMessage)) + len(strings.Fields(text))
	return &domain.ModelReply{Text: text, TokensUsed: &tokens, ShowContactForm: showForm}, nil
}
