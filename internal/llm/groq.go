// Package llm holds thin clients for the hosted language models used by
// search and suggestions.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// GroqEndpoint is the OpenAI-compatible chat completions URL
const GroqEndpoint = "https://api.groq.com/openai/v1/chat/completions"

var (
	ErrMissingAPIKey = errors.New("llm: API key not configured")
	ErrUnauthorized  = errors.New("llm: invalid API key")
	ErrRateLimited   = errors.New("llm: rate limit exceeded")
	ErrEmptyResponse = errors.New("llm: no response content")
)

// StatusError is any other non-2xx answer
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("llm: unexpected status %d: %s", e.Code, e.Body)
}

// Message is one chat turn
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatOptions tunes a completion request
type ChatOptions struct {
	Model       string
	Temperature float32
	MaxTokens   int
}

// GroqClient calls the Groq Chat Completions API.
// See: https://console.groq.com/docs/api-reference
type GroqClient struct {
	http    *http.Client
	baseURL string
}

// NewGroqClient creates a client. An empty baseURL targets GroqEndpoint.
func NewGroqClient(baseURL string, timeout time.Duration) *GroqClient {
	if baseURL == "" {
		baseURL = GroqEndpoint
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &GroqClient{
		http:    &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}
}

type groqChatReq struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float32   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
}

type groqChatResp struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Chat sends messages and returns the first choice's content
func (g *GroqClient) Chat(ctx context.Context, apiKey string, messages []Message, opts ChatOptions) (string, error) {
	if strings.TrimSpace(apiKey) == "" {
		return "", ErrMissingAPIKey
	}

	b, err := json.Marshal(groqChatReq{
		Model:       opts.Model,
		Messages:    messages,
		Temperature: opts.Temperature,
		MaxTokens:   opts.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL, bytes.NewReader(b))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := g.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("groq request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return "", ErrUnauthorized
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", ErrRateLimited
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var out groqChatResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode groq response: %w", err)
	}
	if len(out.Choices) == 0 || out.Choices[0].Message.Content == "" {
		return "", ErrEmptyResponse
	}
	return out.Choices[0].Message.Content, nil
}
