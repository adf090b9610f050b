package services

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"resume-analyzer/internal/models"
)

// LLMService is the language model behind the analysis stage. Backends are
// selected by configuration; both treat any failure as fatal for the request.
type LLMService interface {
	GenerateText(ctx context.Context, prompt string, images []models.ImageAttachment) (string, error)
	Ping(ctx context.Context) error
}

type geminiService struct {
	client    *genai.Client
	modelName string
}

func NewGeminiService(apiKey string) (LLMService, error) {
	ctx := context.Background()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiService{
		client:    client,
		modelName: "gemini-2.5-flash",
	}, nil
}

// GenerateText implements LLMService.
func (g *geminiService) GenerateText(ctx context.Context, prompt string, images []models.ImageAttachment) (string, error) {
	parts := []*genai.Part{{Text: prompt}}
	for _, img := range images {
		parts = append(parts, &genai.Part{
			InlineData: &genai.Blob{Data: img.Data, MIMEType: img.MIMEType},
		})
	}

	temperature := float32(0.3)
	config := &genai.GenerateContentConfig{
		Temperature:     &temperature,
		MaxOutputTokens: 4096,
	}

	contents := []*genai.Content{{Role: "user", Parts: parts}}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, contents, config)
	if err != nil {
		return "", models.NewAnalysisError(models.ErrCodeModelUnavailable, "Gemini analysis failed", err)
	}
	if resp == nil {
		return "", models.NewAnalysisError(models.ErrCodeModelUnavailable, "No response generated", nil)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", models.NewAnalysisError(models.ErrCodeModelUnavailable, "Empty response from language model", nil)
	}

	return text, nil
}

// Ping implements LLMService. Client construction already validates the API
// key, so there is nothing cheap left to probe.
func (g *geminiService) Ping(ctx context.Context) error {
	return nil
}
