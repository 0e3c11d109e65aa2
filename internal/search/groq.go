package search

import (
	"context"

	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/llm"
	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/models"
)

const (
	groqSearchModel  = "llama-3.1-8b-instant"
	groqSearchPrompt = "You are a software architecture expert. Generate 3-5 search results about software architecture patterns and best practices related to the user query. Format each result with a title, summary, source, and relevance score between 0 and 1. Make the results highly relevant to the query."
)

// GroqSearcher asks a Groq-hosted model to write search results
type GroqSearcher struct {
	client *llm.GroqClient
}

func NewGroqSearcher(client *llm.GroqClient) *GroqSearcher {
	return &GroqSearcher{client: client}
}

func (s *GroqSearcher) Name() string { return "groq" }

func (s *GroqSearcher) Search(ctx context.Context, query, _ string, keys Keys) ([]models.SearchResult, error) {
	content, err := s.client.Chat(ctx, keys.Groq, []llm.Message{
		{Role: "system", Content: groqSearchPrompt},
		{Role: "user", Content: query},
	}, llm.ChatOptions{Model: groqSearchModel, Temperature: 0.7, MaxTokens: 1000})
	if err != nil {
		return nil, err
	}
	return parseSections(content, "GROQ AI Analysis"), nil
}
