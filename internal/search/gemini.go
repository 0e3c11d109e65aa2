package search

import (
	"context"

	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/llm"
	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/models"
)

// geminiGenerator is the part of llm.GeminiClient used here
type geminiGenerator interface {
	Generate(ctx context.Context, apiKey, prompt string) (string, error)
}

// GeminiSearcher asks Gemini to write search results in the same section format as Groq
type GeminiSearcher struct {
	client geminiGenerator
}

func NewGeminiSearcher(client *llm.GeminiClient) *GeminiSearcher {
	return &GeminiSearcher{client: client}
}

func (s *GeminiSearcher) Name() string { return "gemini" }

func (s *GeminiSearcher) Search(ctx context.Context, query, _ string, keys Keys) ([]models.SearchResult, error) {
	prompt := groqSearchPrompt +
		"\nSeparate results with a blank line and use the labels Title:, Summary:, Source:, Relevance Score: and URL:." +
		"\n\nQuery: " + query
	content, err := s.client.Generate(ctx, keys.Google, prompt)
	if err != nil {
		return nil, err
	}
	return parseSections(content, "Gemini AI Analysis"), nil
}
