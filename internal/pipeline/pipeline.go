// Package pipeline turns project requirements into an architecture
// recommendation, using the AI backend when it answers and the local
// generator when it does not.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/adapter"
	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/aiagent"
	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/analysis"
	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/diagram"
	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/eventbus"
	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/metrics"
	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/models"
	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/runlog"
	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/search"
	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/settings"
)

var tracer = otel.Tracer("designpanda/pipeline")

// ErrGenerationFailed is the only error Generate returns for valid input
var ErrGenerationFailed = errors.New("failed to generate recommendation")

const (
	NoticeFallback       = "Could not connect to AI backend. Using fallback architecture generation."
	NoticeDefaultBackend = "No AI backend configured. Using default " + settings.DefaultBackendURL + "."

	sideEffectTimeout = 3 * time.Second
)

// Fetcher calls the remote backend
type Fetcher interface {
	Execute(ctx context.Context, baseURL string, req models.BackendRequest) (*aiagent.Result, error)
}

// FallbackGenerator produces a recommendation locally
type FallbackGenerator interface {
	Generate(ctx context.Context, req models.ProjectRequirements) (models.ArchitectureRecommendation, error)
}

// Searcher returns related search results and never fails
type Searcher interface {
	Search(ctx context.Context, query, model string, keys search.Keys) []models.SearchResult
}

// RunRecorder persists run metadata
type RunRecorder interface {
	Record(ctx context.Context, run runlog.Run) error
}

// EventPublisher announces finished runs
type EventPublisher interface {
	PublishRecommendation(ctx context.Context, event eventbus.RecommendationEvent) error
}

// Deps are the collaborators of a Service. Runs and Events may be nil.
type Deps struct {
	Settings settings.Store
	Adapter  *adapter.Adapter
	Fetcher  Fetcher
	Fallback FallbackGenerator
	Analyzer *analysis.Engine
	Search   Searcher
	Runs     RunRecorder
	Events   EventPublisher
}

// Options tune a single Generate call
type Options struct {
	SessionID   string
	SearchModel string
}

// Service runs the recommendation pipeline
type Service struct {
	deps   Deps
	logger *zap.Logger
}

// NewService creates a Service, filling the adapter and analyzer when unset
func NewService(deps Deps, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if deps.Adapter == nil {
		deps.Adapter = adapter.New(logger)
	}
	if deps.Analyzer == nil {
		deps.Analyzer = analysis.NewEngine(logger)
	}
	return &Service{deps: deps, logger: logger}
}

// Generate returns exactly one recommendation, remote or fallback. Remote
// errors are recovered by falling back; only a fallback failure is returned,
// wrapped in ErrGenerationFailed.
func (s *Service) Generate(ctx context.Context, req models.ProjectRequirements, opts Options) (*models.RecommendationResult, error) {
	ctx, span := tracer.Start(ctx, "pipeline.Generate")
	defer span.End()

	start := time.Now()
	result := &models.RecommendationResult{ID: uuid.New()}
	span.SetAttributes(
		attribute.String("run_id", result.ID.String()),
		attribute.String("domain", string(req.Domain)),
	)

	cfg := s.resolveSettings(ctx, result)
	backendReq := s.deps.Adapter.ToBackendRequest(req)

	outcome := runlog.OutcomeFull
	res, err := s.deps.Fetcher.Execute(ctx, cfg.BackendURL, backendReq)
	switch {
	case err != nil:
		outcome = fetchOutcome(err)
		s.logger.Warn("AI backend unavailable, falling back",
			zap.String("run_id", result.ID.String()),
			zap.String("backend_url", cfg.BackendURL),
			zap.Error(err),
		)
		result.Notices = append(result.Notices, NoticeFallback)
	case res.Partial:
		result.Notices = append(result.Notices, res.Notice)
		if strings.TrimSpace(res.Response.Architecture) != "" {
			outcome = runlog.OutcomePartial
			s.buildRemote(result, res, req)
		} else {
			// a diagram error with nothing usable is a failed call
			outcome = runlog.OutcomeFailure
			result.Notices = append(result.Notices, NoticeFallback)
		}
	default:
		s.buildRemote(result, res, req)
	}

	if result.Origin == "" {
		rec, ferr := s.deps.Fallback.Generate(ctx, req)
		if ferr != nil {
			metrics.RecommendationFailures.Inc()
			span.RecordError(ferr)
			span.SetStatus(codes.Error, ferr.Error())
			s.logger.Error("fallback generation failed",
				zap.String("run_id", result.ID.String()),
				zap.Error(ferr),
			)
			return nil, fmt.Errorf("%w: %w", ErrGenerationFailed, ferr)
		}
		result.Recommendation = rec
		result.Origin = models.OriginFallback
	}

	if s.deps.Search != nil {
		query := strings.TrimSpace(req.ProjectType + " " + req.ProjectName)
		keys := search.Keys{
			Groq:   cfg.Keys.Groq(),
			Serper: cfg.Keys.Serper(),
			Tavily: cfg.Keys.Tavily(),
			Google: cfg.Keys.Google(),
		}
		result.Recommendation.SearchResults = s.deps.Search.Search(ctx, query, opts.SearchModel, keys)
	}
	if result.Recommendation.SearchResults == nil {
		result.Recommendation.SearchResults = []models.SearchResult{}
	}
	result.GeneratedAt = time.Now().UTC()

	duration := time.Since(start)
	metrics.ObserveRecommendation(string(result.Origin), result.Partial)
	span.SetAttributes(
		attribute.String("origin", string(result.Origin)),
		attribute.Bool("partial", result.Partial),
	)
	s.record(ctx, req, opts, cfg, result, outcome, duration)

	s.logger.Info("recommendation generated",
		zap.String("run_id", result.ID.String()),
		zap.String("origin", string(result.Origin)),
		zap.Bool("partial", result.Partial),
		zap.String("pattern", result.Recommendation.Pattern),
		zap.Duration("duration", duration),
	)
	return result, nil
}

// resolveSettings never fails; a store error or an unset URL yields the default
func (s *Service) resolveSettings(ctx context.Context, result *models.RecommendationResult) settings.Settings {
	if s.deps.Settings == nil {
		result.Notices = append(result.Notices, NoticeDefaultBackend)
		return settings.Settings{BackendURL: settings.DefaultBackendURL, Keys: settings.APIKeys{}}
	}
	cfg, err := s.deps.Settings.Get(ctx)
	if err != nil {
		s.logger.Warn("settings unavailable, using defaults", zap.Error(err))
		cfg = settings.Settings{Keys: settings.APIKeys{}}
	}
	if !cfg.Configured || cfg.BackendURL == "" {
		cfg.BackendURL = settings.DefaultBackendURL
		result.Notices = append(result.Notices, NoticeDefaultBackend)
		s.logger.Info("no backend configured, using default", zap.String("backend_url", cfg.BackendURL))
	}
	if cfg.Keys == nil {
		cfg.Keys = settings.APIKeys{}
	}
	return cfg
}

func (s *Service) buildRemote(result *models.RecommendationResult, res *aiagent.Result, req models.ProjectRequirements) {
	resp := res.Response
	rec := s.deps.Analyzer.Analyze(resp.Architecture, req)
	rec.Diagrams = diagram.MaterializeAll(resp.UMLCode, resp.ImageData, resp.MimeType)

	result.Recommendation = rec
	result.Origin = models.OriginRemote
	result.Partial = res.Partial
	result.Architecture = resp.Architecture
}

// record writes the run log and event without holding up the caller on failure
func (s *Service) record(ctx context.Context, req models.ProjectRequirements, opts Options, cfg settings.Settings, result *models.RecommendationResult, outcome string, duration time.Duration) {
	if s.deps.Runs == nil && s.deps.Events == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sideEffectTimeout)
	defer cancel()

	if s.deps.Runs != nil {
		err := s.deps.Runs.Record(ctx, runlog.Run{
			ID:          result.ID,
			SessionID:   opts.SessionID,
			Domain:      string(req.Domain),
			ProjectType: req.ProjectType,
			Origin:      string(result.Origin),
			Partial:     result.Partial,
			Pattern:     result.Recommendation.Pattern,
			BackendURL:  cfg.BackendURL,
			Outcome:     outcome,
			Duration:    duration,
			CreatedAt:   result.GeneratedAt,
		})
		if err != nil {
			s.logger.Warn("failed to record run", zap.String("run_id", result.ID.String()), zap.Error(err))
		}
	}

	if s.deps.Events != nil {
		err := s.deps.Events.PublishRecommendation(ctx, eventbus.RecommendationEvent{
			RunID:       result.ID.String(),
			SessionID:   opts.SessionID,
			Domain:      string(req.Domain),
			ProjectType: req.ProjectType,
			Origin:      string(result.Origin),
			Partial:     result.Partial,
			Pattern:     result.Recommendation.Pattern,
			DurationMs:  duration.Milliseconds(),
			OccurredAt:  result.GeneratedAt,
		})
		if err != nil {
			s.logger.Warn("failed to publish recommendation event", zap.String("run_id", result.ID.String()), zap.Error(err))
		}
	}
}

func fetchOutcome(err error) string {
	switch {
	case errors.Is(err, aiagent.ErrCircuitOpen):
		return runlog.OutcomeCircuit
	case errors.Is(err, aiagent.ErrInvalidFormat):
		return runlog.OutcomeInvalid
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return runlog.OutcomeCancelled
	default:
		return runlog.OutcomeFailure
	}
}

// RetryAfter suggests how long a caller should wait before retrying a failed run
func RetryAfter(err error) time.Duration {
	if errors.Is(err, context.DeadlineExceeded) {
		return 5 * time.Second
	}
	return 2 * time.Second
}
