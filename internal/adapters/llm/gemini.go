package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/felixstiven/wog-agent/internal/domain"
)

// GeminiConfig carries the provider settings for the real model client.
type GeminiConfig struct {
	APIKey          string
	ModelName       string
	MaxOutputTokens int32
}

// GeminiClient implements domain.ModelClient on the Gemini API.
type GeminiClient struct {
	client          *genai.Client
	modelName       string
	maxOutputTokens int32
}

func NewGeminiClient(ctx context.Context, cfg GeminiConfig) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini: api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	return &GeminiClient{
		client:          client,
		modelName:       cfg.ModelName,
		maxOutputTokens: cfg.MaxOutputTokens,
	}, nil
}

// GenerateReply sends the session history plus the new user message and
// returns the generated text. History order is preserved as-is; it is the
// prompt context.
func (g *GeminiClient) GenerateReply(
	ctx context.Context,
	userMessage string,
	history []domain.Message,
) (*domain.ModelReply, error) {
	var contents []*genai.Content
	for _, m := range history {
		role := genai.Role(genai.RoleUser)
		if m.Role == domain.RoleAgent {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(m.Text, role))
	}
	contents = append(contents, genai.NewContentFromText(userMessage, genai.RoleUser))

	temp := float32(0.7)
	topP := float32(0.9)

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
		Temperature:       &temp,
		TopP:              &topP,
		MaxOutputTokens:   g.maxOutputTokens,
	}

	res, err := g.client.Models.GenerateContent(ctx, g.modelName, contents, cfg)
	if err != nil {
		return nil, fmt.Errorf("gemini generate content: %w", err)
	}

	text := res.Text()
	if text == "" {
		return nil, fmt.Errorf("gemini returned empty text")
	}

	text, showForm := stripContactMarker(text)

	reply := &domain.ModelReply{Text: text, ShowContactForm: showForm}
	if res.UsageMetadata != nil {
		tokens := int(res.UsageMetadata.TotalTokenCount)
		reply.TokensUsed = &tokens
	}
	return reply, nil
}
