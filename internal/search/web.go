package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/llm"
	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/models"
)

const (
	SerperEndpoint = "https://google.serper.dev/search"
	TavilyEndpoint = "https://api.tavily.com/search"

	maxWebResults = 5
)

func webQuery(query string) string {
	return "software architecture patterns for " + query
}

func postJSON(ctx context.Context, client *http.Client, endpoint string, headers map[string]string, body, out any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("search API returned status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode search response: %w", err)
	}
	return nil
}

// SerperSearcher queries Google results through serper.dev
type SerperSearcher struct {
	http     *http.Client
	endpoint string
}

func NewSerperSearcher(endpoint string, timeout time.Duration) *SerperSearcher {
	if endpoint == "" {
		endpoint = SerperEndpoint
	}
	return &SerperSearcher{http: &http.Client{Timeout: timeout}, endpoint: endpoint}
}

func (s *SerperSearcher) Name() string { return "serper" }

func (s *SerperSearcher) Search(ctx context.Context, query, _ string, keys Keys) ([]models.SearchResult, error) {
	if keys.Serper == "" {
		return nil, llm.ErrMissingAPIKey
	}
	var out struct {
		Organic []struct {
			Title   string `json:"title"`
			Snippet string `json:"snippet"`
			Link    string `json:"link"`
			Source  string `json:"source"`
			Domain  string `json:"domain"`
		} `json:"organic"`
	}
	err := postJSON(ctx, s.http, s.endpoint,
		map[string]string{"X-API-KEY": keys.Serper},
		map[string]any{"q": webQuery(query), "num": maxWebResults},
		&out,
	)
	if err != nil {
		return nil, err
	}

	results := make([]models.SearchResult, 0, len(out.Organic))
	for i, o := range out.Organic {
		source := firstNonEmpty(o.Source, o.Domain, "Google Search")
		results = append(results, models.SearchResult{
			Title:          o.Title,
			Summary:        o.Snippet,
			Source:         source,
			RelevanceScore: rankScore(i),
			URL:            o.Link,
		})
	}
	return results, nil
}

// TavilySearcher queries the Tavily search API
type TavilySearcher struct {
	http     *http.Client
	endpoint string
}

func NewTavilySearcher(endpoint string, timeout time.Duration) *TavilySearcher {
	if endpoint == "" {
		endpoint = TavilyEndpoint
	}
	return &TavilySearcher{http: &http.Client{Timeout: timeout}, endpoint: endpoint}
}

func (s *TavilySearcher) Name() string { return "tavily" }

func (s *TavilySearcher) Search(ctx context.Context, query, _ string, keys Keys) ([]models.SearchResult, error) {
	if keys.Tavily == "" {
		return nil, llm.ErrMissingAPIKey
	}
	var out struct {
		Results []struct {
			Title   string `json:"title"`
			Content string `json:"content"`
			URL     string `json:"url"`
			Source  string `json:"source"`
		} `json:"results"`
	}
	err := postJSON(ctx, s.http, s.endpoint,
		map[string]string{"Authorization": "Bearer " + keys.Tavily},
		map[string]any{"query": webQuery(query), "search_depth": "advanced", "max_results": maxWebResults},
		&out,
	)
	if err != nil {
		return nil, err
	}

	results := make([]models.SearchResult, 0, len(out.Results))
	for i, r := range out.Results {
		source := r.Source
		if source == "" {
			if u, err := url.Parse(r.URL); err == nil {
				source = u.Hostname()
			}
		}
		results = append(results, models.SearchResult{
			Title:          r.Title,
			Summary:        truncate(r.Content, 200),
			Source:         firstNonEmpty(source, "Tavily Search"),
			RelevanceScore: rankScore(i),
			URL:            r.URL,
		})
	}
	return results, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
