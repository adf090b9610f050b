package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"resume-analyzer/internal/models"
)

// ollamaService talks to a local Ollama server through its chat API.
type ollamaService struct {
	baseURL string
	model   string
	client  *http.Client
}

func NewOllamaService(baseURL, model string) LLMService {
	return &ollamaService{
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		client:  &http.Client{Timeout: 120 * time.Second},
	}
}

type ollamaMessage struct {
	Role    string   `json:"role"`
	Content string   `json:"content"`
	Images  []string `json:"images,omitempty"`
}

type ollamaChatRequest struct {
	Model    string          `json:"model"`
	Messages []ollamaMessage `json:"messages"`
	Stream   bool            `json:"stream"`
}

// GenerateText implements LLMService.
func (o *ollamaService) GenerateText(ctx context.Context, prompt string, images []models.ImageAttachment) (string, error) {
	message := ollamaMessage{Role: "user", Content: prompt}
	for _, img := range images {
		message.Images = append(message.Images, base64.StdEncoding.EncodeToString(img.Data))
	}

	payload, err := json.Marshal(ollamaChatRequest{
		Model:    o.model,
		Messages: []ollamaMessage{message},
		Stream:   false,
	})
	if err != nil {
		return "", models.NewAnalysisError(models.ErrCodeInternal, "Failed to build model request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/api/chat", bytes.NewReader(payload))
	if err != nil {
		return "", models.NewAnalysisError(models.ErrCodeInternal, "Failed to build model request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return "", models.NewAnalysisError(
			models.ErrCodeModelUnavailable,
			"Ollama server not running. Run 'ollama serve' and pull the configured model.",
			err,
		)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return "", models.NewAnalysisError(
			models.ErrCodeModelUnavailable,
			fmt.Sprintf("Llama analysis failed: model returned %s", resp.Status),
			fmt.Errorf("%s", strings.TrimSpace(string(raw))),
		)
	}

	var out struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", models.NewAnalysisError(models.ErrCodeModelUnavailable, "Failed to decode model response", err)
	}

	text := strings.TrimSpace(out.Message.Content)
	if text == "" {
		return "", models.NewAnalysisError(models.ErrCodeModelUnavailable, "Empty response from language model", nil)
	}

	return text, nil
}

// Ping implements LLMService. It checks server reachability via the model
// listing endpoint, mirroring the 'ollama list' preflight.
func (o *ollamaService) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.baseURL+"/api/tags", nil)
	if err != nil {
		return err
	}

	resp, err := o.client.Do(req)
	if err != nil {
		return fmt.Errorf("ollama unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ollama returned %s", resp.Status)
	}
	return nil
}
