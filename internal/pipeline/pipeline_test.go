package pipeline

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"

	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/aiagent"
	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/analysis"
	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/eventbus"
	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/fallback"
	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/models"
	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/runlog"
	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/search"
	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/settings"
)

type fakeRuns struct {
	mu   sync.Mutex
	runs []runlog.Run
}

func (f *fakeRuns) Record(_ context.Context, run runlog.Run) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.runs = append(f.runs, run)
	return nil
}

type fakeEvents struct {
	events []eventbus.RecommendationEvent
	err    error
}

func (f *fakeEvents) PublishRecommendation(_ context.Context, e eventbus.RecommendationEvent) error {
	f.events = append(f.events, e)
	return f.err
}

type failingFallback struct{}

func (failingFallback) Generate(context.Context, models.ProjectRequirements) (models.ArchitectureRecommendation, error) {
	return models.ArchitectureRecommendation{}, errors.New("synthesis exploded")
}

type recordingFetcher struct {
	baseURL string
}

func (f *recordingFetcher) Execute(_ context.Context, baseURL string, _ models.BackendRequest) (*aiagent.Result, error) {
	f.baseURL = baseURL
	return nil, aiagent.ErrTransport
}

func backend(t *testing.T, status int, body string) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv.URL
}

func newService(t *testing.T, backendURL string) (*Service, *fakeRuns, *fakeEvents) {
	t.Helper()
	runs := &fakeRuns{}
	events := &fakeEvents{}
	svc := NewService(Deps{
		Settings: settings.NewMemoryStore(backendURL, nil),
		Fetcher:  aiagent.NewClient(5*time.Second, nil, zap.NewNop()),
		Fallback: fallback.NewGenerator(nil, nil, zap.NewNop()),
		Search:   search.NewService(search.Providers{}, 0, zap.NewNop()),
		Runs:     runs,
		Events:   events,
	}, zap.NewNop())
	return svc, runs, events
}

func shopRequirements() models.ProjectRequirements {
	return models.ProjectRequirements{
		Domain:      models.DomainGeneric,
		ProjectName: "Shop",
		ProjectType: "ecommerce",
		Description: "An online shop for handmade goods",
		Scale:       "medium",
		Features:    models.StringList{"Authentication", "Payments"},
	}
}

func TestGenerateRemoteFull(t *testing.T) {
	url := backend(t, http.StatusOK, `{"architecture":"A Microservices design using React and PostgreSQL","uml_code":"@startuml\n@enduml","image_data":"aGVsbG8=","mime_type":"image/png"}`)
	svc, runs, events := newService(t, url)

	res, err := svc.Generate(context.Background(), shopRequirements(), Options{SessionID: "s1"})
	require.NoError(t, err)

	assert.Equal(t, models.OriginRemote, res.Origin)
	assert.False(t, res.Partial)
	assert.Empty(t, res.Notices)
	assert.Equal(t, analysis.PatternMicroservices, res.Recommendation.Pattern)
	for _, kind := range models.DiagramKinds {
		d := res.Recommendation.Diagrams.Get(kind)
		assert.Equal(t, models.VisualImage, d.Visual.Kind, kind)
	}
	assert.NotNil(t, res.Recommendation.SearchResults)

	require.Len(t, runs.runs, 1)
	assert.Equal(t, runlog.OutcomeFull, runs.runs[0].Outcome)
	assert.Equal(t, "s1", runs.runs[0].SessionID)
	require.Len(t, events.events, 1)
	assert.Equal(t, res.ID.String(), events.events[0].RunID)
}

func TestGenerateRemotePartial(t *testing.T) {
	url := backend(t, http.StatusOK, `{"architecture":"Layered design","uml_code":"@startuml\n@enduml"}`)
	svc, runs, _ := newService(t, url)

	res, err := svc.Generate(context.Background(), shopRequirements(), Options{})
	require.NoError(t, err)

	assert.Equal(t, models.OriginRemote, res.Origin)
	assert.True(t, res.Partial)
	assert.Contains(t, res.Notices, aiagent.NoticeDiagramFailed)
	assert.Equal(t, models.VisualCode, res.Recommendation.Diagrams.Flowchart.Visual.Kind)
	assert.Equal(t, runlog.OutcomePartial, runs.runs[0].Outcome)
}

func TestGeneratePartialWithoutArchitectureFallsBack(t *testing.T) {
	url := backend(t, http.StatusInternalServerError, `{"detail":"PlantUML rendering failed"}`)
	svc, runs, _ := newService(t, url)

	res, err := svc.Generate(context.Background(), shopRequirements(), Options{})
	require.NoError(t, err)

	assert.Equal(t, models.OriginFallback, res.Origin)
	assert.False(t, res.Partial)
	assert.Contains(t, res.Notices, aiagent.NoticeDiagramFailed)
	assert.Contains(t, res.Notices, NoticeFallback)
	require.Len(t, runs.runs, 1)
	assert.Equal(t, runlog.OutcomeFailure, runs.runs[0].Outcome)
	assert.Equal(t, string(models.OriginFallback), runs.runs[0].Origin)
}

func TestGenerateFallsBack(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		outcome string
	}{
		{"invalid format", http.StatusOK, `{"architecture":"only text"}`, runlog.OutcomeInvalid},
		{"server error", http.StatusInternalServerError, `{"detail":"model overloaded"}`, runlog.OutcomeFailure},
		{"bad gateway text", http.StatusBadGateway, `upstream gone`, runlog.OutcomeFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			url := backend(t, tt.status, tt.body)
			svc, runs, _ := newService(t, url)

			res, err := svc.Generate(context.Background(), shopRequirements(), Options{})
			require.NoError(t, err)

			assert.Equal(t, models.OriginFallback, res.Origin)
			assert.Equal(t, []string{NoticeFallback}, res.Notices)
			assert.Equal(t, analysis.PatternLayered, res.Recommendation.Pattern)
			assert.NotEmpty(t, res.Recommendation.Frameworks)
			assert.NotEmpty(t, res.Recommendation.Deployment)
			assert.Equal(t, tt.outcome, runs.runs[0].Outcome)
		})
	}
}

func TestGenerateUnreachableBackend(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	svc, _, _ := newService(t, url)
	res, err := svc.Generate(context.Background(), shopRequirements(), Options{})
	require.NoError(t, err)
	assert.Equal(t, models.OriginFallback, res.Origin)
}

func TestGenerateFallbackPatternRules(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	svc, _, _ := newService(t, url)

	large := shopRequirements()
	large.Scale = "large"
	large.Features = models.StringList{"Real-time updates"}
	res, err := svc.Generate(context.Background(), large, Options{})
	require.NoError(t, err)
	assert.Equal(t, analysis.PatternMicroservices, res.Recommendation.Pattern)

	enterprise := shopRequirements()
	enterprise.Scale = ""
	enterprise.Size = "enterprise"
	res, err = svc.Generate(context.Background(), enterprise, Options{})
	require.NoError(t, err)
	assert.Equal(t, analysis.PatternMicroservices, res.Recommendation.Pattern)

	realtime := shopRequirements()
	realtime.Features = models.StringList{"Real-time"}
	res, err = svc.Generate(context.Background(), realtime, Options{})
	require.NoError(t, err)
	assert.Equal(t, analysis.PatternEventDriven, res.Recommendation.Pattern)
}

func TestGenerateUsesDefaultBackendWhenUnconfigured(t *testing.T) {
	fetcher := &recordingFetcher{}
	svc := NewService(Deps{
		Settings: settings.NewMemoryStore("", nil),
		Fetcher:  fetcher,
		Fallback: fallback.NewGenerator(nil, nil, nil),
	}, nil)

	res, err := svc.Generate(context.Background(), shopRequirements(), Options{})
	require.NoError(t, err)

	assert.Equal(t, settings.DefaultBackendURL, fetcher.baseURL)
	assert.Equal(t, []string{NoticeDefaultBackend, NoticeFallback}, res.Notices)
	assert.Equal(t, []models.SearchResult{}, res.Recommendation.SearchResults)
}

func TestGenerateFallbackFailure(t *testing.T) {
	svc := NewService(Deps{
		Settings: settings.NewMemoryStore("http://backend.invalid", nil),
		Fetcher:  &recordingFetcher{},
		Fallback: failingFallback{},
	}, nil)

	res, err := svc.Generate(context.Background(), shopRequirements(), Options{})
	assert.Nil(t, res)
	assert.ErrorIs(t, err, ErrGenerationFailed)
	assert.Equal(t, 2*time.Second, RetryAfter(err))
}

func TestGenerateIgnoresSideEffectErrors(t *testing.T) {
	events := &fakeEvents{err: errors.New("nats down")}
	svc := NewService(Deps{
		Settings: settings.NewMemoryStore("http://backend.invalid", nil),
		Fetcher:  &recordingFetcher{},
		Fallback: fallback.NewGenerator(nil, nil, nil),
		Events:   events,
	}, nil)

	res, err := svc.Generate(context.Background(), shopRequirements(), Options{})
	require.NoError(t, err)
	assert.Equal(t, models.OriginFallback, res.Origin)
	assert.Len(t, events.events, 1)
}

func TestGenerateCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc, _, _ := newService(t, "http://127.0.0.1:1")
	_, err := svc.Generate(ctx, shopRequirements(), Options{})
	assert.ErrorIs(t, err, ErrGenerationFailed)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGenerateRecordsSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)))

	svc := NewService(Deps{
		Settings: settings.NewMemoryStore("http://backend.invalid", nil),
		Fetcher:  &recordingFetcher{},
		Fallback: fallback.NewGenerator(nil, nil, nil),
	}, nil)
	_, err := svc.Generate(context.Background(), shopRequirements(), Options{})
	require.NoError(t, err)

	var names []string
	for _, s := range recorder.Ended() {
		names = append(names, s.Name())
	}
	assert.Contains(t, names, "pipeline.Generate")
}
