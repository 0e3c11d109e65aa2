package llm

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/time/rate"
	genai "google.golang.org/genai"
)

// GeminiClient is a thin wrapper around the official genai client.
type GeminiClient struct {
	model   string
	limiter *rate.Limiter
}

// NewGeminiClient limits outgoing calls to rps per second; rps <= 0 disables the limit
func NewGeminiClient(model string, rps float64, burst int) *GeminiClient {
	limit := rate.Inf
	if rps > 0 {
		limit = rate.Limit(rps)
	}
	if burst <= 0 {
		burst = 1
	}
	return &GeminiClient{model: model, limiter: rate.NewLimiter(limit, burst)}
}

func (g *GeminiClient) Name() string { return "Gemini:" + g.model }

// Generate sends a single text prompt and returns the first candidate's text
func (g *GeminiClient) Generate(ctx context.Context, apiKey, prompt string) (string, error) {
	if strings.TrimSpace(apiKey) == "" {
		return "", ErrMissingAPIKey
	}
	if err := g.limiter.Wait(ctx); err != nil {
		return "", err
	}

	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", fmt.Errorf("create gemini client: %w", err)
	}

	resp, err := cli.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: prompt}}}},
		&genai.GenerateContentConfig{},
	)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", ErrEmptyResponse
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}
