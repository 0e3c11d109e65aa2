package search

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/llm"
	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/models"
)

type stubSearcher struct {
	name    string
	results []models.SearchResult
	err     error
	calls   int
}

func (s *stubSearcher) Name() string { return s.name }

func (s *stubSearcher) Search(context.Context, string, string, Keys) ([]models.SearchResult, error) {
	s.calls++
	return s.results, s.err
}

func TestParseSections(t *testing.T) {
	content := "Title: Event Sourcing\nSummary: Store changes as events\nSource: Martin Fowler\nRelevance Score: 0.93\nURL: https://martinfowler.com/eaaDev/EventSourcing.html\n\n" +
		"Title: CQRS\nSummary: Split reads and writes\n\nnot a result"

	results := parseSections(content, "GROQ AI Analysis")
	require.Len(t, results, 2)
	assert.Equal(t, "Event Sourcing", results[0].Title)
	assert.Equal(t, 0.93, results[0].RelevanceScore)
	assert.Equal(t, "https://martinfowler.com/eaaDev/EventSourcing.html", results[0].URL)
	assert.Equal(t, "GROQ AI Analysis", results[1].Source)
	assert.Equal(t, 0.9, results[1].RelevanceScore)
}

func TestParseSectionsUnstructured(t *testing.T) {
	results := parseSections("just some prose", "Gemini AI Analysis")
	require.Len(t, results, 1)
	assert.Equal(t, "Architecture Analysis", results[0].Title)
	assert.Equal(t, 0.85, results[0].RelevanceScore)
}

func TestMockTables(t *testing.T) {
	results, err := MockSearcher{}.Search(context.Background(), "webapp shop", ModelDefault, Keys{})
	require.NoError(t, err)
	assert.Len(t, results, 4)

	deep, _ := MockSearcher{}.Search(context.Background(), "ml platform", ModelDeepseekCoder, Keys{})
	assert.Equal(t, "ML Pipeline Implementation for Production Applications", deep[0].Title)

	llama, _ := MockSearcher{}.Search(context.Background(), "android", ModelLlama3, Keys{})
	assert.Len(t, llama, 2)
}

func TestServiceSelectionOrder(t *testing.T) {
	groq := &stubSearcher{name: "groq", results: []models.SearchResult{{Title: "g", RelevanceScore: 0.5}}}
	serper := &stubSearcher{name: "serper", results: []models.SearchResult{{Title: "s", RelevanceScore: 0.5}}}
	svc := NewService(Providers{Groq: groq, Serper: serper}, 0, zap.NewNop())

	out := svc.Search(context.Background(), "web", ModelGroq, Keys{Groq: "k", Serper: "k"})
	assert.Equal(t, "g", out[0].Title)

	out = svc.Search(context.Background(), "web", ModelDefault, Keys{Groq: "k", Serper: "k"})
	assert.Equal(t, "s", out[0].Title)

	out = svc.Search(context.Background(), "web", ModelGroq, Keys{})
	assert.Equal(t, "Modern Web Application Architecture Patterns", out[0].Title)
}

func TestServiceFallsThroughOnError(t *testing.T) {
	serper := &stubSearcher{name: "serper", err: errors.New("down")}
	tavily := &stubSearcher{name: "tavily", results: []models.SearchResult{
		{Title: "low", RelevanceScore: 0.1},
		{Title: "high", RelevanceScore: 0.9},
	}}
	svc := NewService(Providers{Serper: serper, Tavily: tavily}, 0, nil)

	out := svc.Search(context.Background(), "api", ModelDefault, Keys{Serper: "a", Tavily: "b"})
	require.Len(t, out, 2)
	assert.Equal(t, "high", out[0].Title)
	assert.Equal(t, 1, serper.calls)
}

func TestServiceCaches(t *testing.T) {
	serper := &stubSearcher{name: "serper", results: []models.SearchResult{{Title: "s"}}}
	svc := NewService(Providers{Serper: serper}, 8, nil)

	svc.Search(context.Background(), "q", "", Keys{Serper: "k"})
	out := svc.Search(context.Background(), "q", "", Keys{Serper: "k"})
	assert.Equal(t, 1, serper.calls)
	assert.Equal(t, "s", out[0].Title)
}

func TestSerperSearcher(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "key", r.Header.Get("X-API-KEY"))
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "software architecture patterns for webapp", body["q"])
		_, _ = w.Write([]byte(`{"organic":[{"title":"A","snippet":"a","link":"https://a.example"},{"title":"B","snippet":"b","domain":"b.example"}]}`))
	}))
	defer srv.Close()

	results, err := NewSerperSearcher(srv.URL, time.Second).Search(context.Background(), "webapp", "", Keys{Serper: "key"})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "Google Search", results[0].Source)
	assert.InDelta(t, 0.95, results[0].RelevanceScore, 1e-9)
	assert.Equal(t, "b.example", results[1].Source)
	assert.InDelta(t, 0.90, results[1].RelevanceScore, 1e-9)
}

func TestTavilySearcher(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"results":[{"title":"A","content":"body","url":"https://docs.example.com/a"}]}`))
	}))
	defer srv.Close()

	results, err := NewTavilySearcher(srv.URL, time.Second).Search(context.Background(), "api", "", Keys{Tavily: "key"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "docs.example.com", results[0].Source)

	_, err = NewTavilySearcher(srv.URL, time.Second).Search(context.Background(), "api", "", Keys{})
	assert.ErrorIs(t, err, llm.ErrMissingAPIKey)
}

type fakeGemini struct{ text string }

func (f fakeGemini) Generate(context.Context, string, string) (string, error) { return f.text, nil }

func TestGeminiSearcher(t *testing.T) {
	s := &GeminiSearcher{client: fakeGemini{text: "Title: T\nSummary: S\nRelevance Score: 0.7"}}
	results, err := s.Search(context.Background(), "q", ModelGemini, Keys{Google: "k"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Gemini AI Analysis", results[0].Source)
	assert.Equal(t, 0.7, results[0].RelevanceScore)
}
