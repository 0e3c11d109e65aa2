package search

import (
	"context"
	"sort"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/metrics"
	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/models"
)

// Providers are the strategies a Service may choose from. Nil entries are skipped.
type Providers struct {
	Groq   Searcher
	Gemini Searcher
	Serper Searcher
	Tavily Searcher
	Mock   Searcher
}

// Service picks a provider per request and never fails
type Service struct {
	providers Providers
	cache     *lru.Cache[string, []models.SearchResult]
	logger    *zap.Logger
}

// NewService creates a Service with an LRU of cacheSize entries; cacheSize <= 0 disables caching
func NewService(providers Providers, cacheSize int, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if providers.Mock == nil {
		providers.Mock = MockSearcher{}
	}
	s := &Service{providers: providers, logger: logger}
	if cacheSize > 0 {
		cache, err := lru.New[string, []models.SearchResult](cacheSize)
		if err == nil {
			s.cache = cache
		}
	}
	return s
}

// candidates lists providers in selection order for the given model and keys
func (s *Service) candidates(model string, keys Keys) []Searcher {
	var out []Searcher
	add := func(p Searcher, key string) {
		if p != nil && key != "" {
			out = append(out, p)
		}
	}
	if model == ModelGroq {
		add(s.providers.Groq, keys.Groq)
	}
	if model == ModelGemini {
		add(s.providers.Gemini, keys.Google)
	}
	add(s.providers.Serper, keys.Serper)
	add(s.providers.Tavily, keys.Tavily)
	return out
}

// Search returns results sorted by relevance. Provider errors fall through to
// the next candidate and finally to the built-in results.
func (s *Service) Search(ctx context.Context, query, model string, keys Keys) []models.SearchResult {
	query = strings.TrimSpace(query)
	if model == "" {
		model = ModelDefault
	}

	for _, p := range s.candidates(model, keys) {
		cacheKey := p.Name() + "|" + model + "|" + query
		if s.cache != nil {
			if cached, ok := s.cache.Get(cacheKey); ok {
				metrics.SearchCacheHits.Inc()
				return cloneResults(cached)
			}
		}

		results, err := p.Search(ctx, query, model, keys)
		if err != nil || len(results) == 0 {
			metrics.SearchRequests.WithLabelValues(p.Name(), "error").Inc()
			s.logger.Warn("search provider failed, trying next",
				zap.String("provider", p.Name()),
				zap.Error(err),
			)
			continue
		}
		metrics.SearchRequests.WithLabelValues(p.Name(), "ok").Inc()
		sortByRelevance(results)
		if s.cache != nil {
			s.cache.Add(cacheKey, cloneResults(results))
		}
		return results
	}

	results, _ := s.providers.Mock.Search(ctx, query, model, keys)
	metrics.SearchRequests.WithLabelValues(s.providers.Mock.Name(), "ok").Inc()
	sortByRelevance(results)
	return results
}

func sortByRelevance(results []models.SearchResult) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].RelevanceScore > results[j].RelevanceScore
	})
}

func cloneResults(in []models.SearchResult) []models.SearchResult {
	return append([]models.SearchResult(nil), in...)
}
