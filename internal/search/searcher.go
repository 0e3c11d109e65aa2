// Package search looks up architecture references for a project through
// pluggable providers, falling back to built-in results.
package search

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/models"
)

// Model selectors accepted by Search
const (
	ModelDefault       = "default"
	ModelGroq          = "groq"
	ModelGemini        = "gemini"
	ModelDeepseekCoder = "deepseek-coder"
	ModelLlama3        = "llama-3"
)

// Keys are the provider API keys available for one search
type Keys struct {
	Groq   string
	Serper string
	Tavily string
	Google string
}

// Searcher is one search provider
type Searcher interface {
	Name() string
	Search(ctx context.Context, query, model string, keys Keys) ([]models.SearchResult, error)
}

var (
	titleRe   = regexp.MustCompile(`(?i)Title:\s*(.+)`)
	summaryRe = regexp.MustCompile(`(?i)Summary:\s*(.+)`)
	sourceRe  = regexp.MustCompile(`(?i)Source:\s*(.+)`)
	scoreRe   = regexp.MustCompile(`(?i)Relevance\s*Score:\s*([0-9.]+)`)
	urlRe     = regexp.MustCompile(`(?i)URL:\s*(\S+)`)
	sectionRe = regexp.MustCompile(`\r?\n\s*\r?\n`)
)

// parseSections reads "Title:/Summary:/Source:/Relevance Score:/URL:" blocks
// separated by blank lines. Unparseable content becomes one summary result.
func parseSections(content, defaultSource string) []models.SearchResult {
	var results []models.SearchResult
	for _, section := range sectionRe.Split(content, -1) {
		if strings.TrimSpace(section) == "" {
			continue
		}
		title := titleRe.FindStringSubmatch(section)
		summary := summaryRe.FindStringSubmatch(section)
		if title == nil || summary == nil {
			continue
		}

		r := models.SearchResult{
			Title:          cleanField(title[1]),
			Summary:        cleanField(summary[1]),
			Source:         defaultSource,
			RelevanceScore: 0.9,
		}
		if m := sourceRe.FindStringSubmatch(section); m != nil {
			r.Source = cleanField(m[1])
		}
		if m := scoreRe.FindStringSubmatch(section); m != nil {
			if f, err := strconv.ParseFloat(strings.TrimRight(m[1], "."), 64); err == nil {
				r.RelevanceScore = f
			}
		}
		if m := urlRe.FindStringSubmatch(section); m != nil {
			r.URL = cleanField(m[1])
		}
		results = append(results, r)
	}

	if len(results) == 0 {
		results = append(results, models.SearchResult{
			Title:          "Architecture Analysis",
			Summary:        truncate(strings.TrimSpace(content), 200),
			Source:         defaultSource,
			RelevanceScore: 0.85,
		})
	}
	return results
}

func cleanField(s string) string {
	return strings.Trim(strings.TrimSpace(s), "*")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

// rankScore gives the i-th item of a ranked provider list its relevance
func rankScore(i int) float64 {
	return 0.95 - float64(i)*0.05
}
