package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
	"go.uber.org/zap"

	_ "github.com/Aaryan1901/Agentic-AI-Software-Architecture/docs"
	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/aiagent"
	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/bundle"
	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/eventbus"
	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/llm"
	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/middleware"
	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/models"
	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/pipeline"
	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/runlog"
	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/search"
	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/session"
	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/settings"
	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/suggest"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeRecommender struct {
	err     error
	lastReq models.ProjectRequirements
	opts    pipeline.Options
}

func (f *fakeRecommender) Generate(_ context.Context, req models.ProjectRequirements, opts pipeline.Options) (*models.RecommendationResult, error) {
	f.lastReq = req
	f.opts = opts
	if f.err != nil {
		return nil, f.err
	}
	return &models.RecommendationResult{
		Origin:      models.OriginFallback,
		Notices:     []string{pipeline.NoticeFallback},
		GeneratedAt: time.Now().UTC(),
		Recommendation: models.ArchitectureRecommendation{
			Pattern:       "Layered Architecture",
			SearchResults: []models.SearchResult{},
		},
	}, nil
}

type fakeConnChecker struct {
	err     error
	lastURL string
}

func (f *fakeConnChecker) CheckConnection(_ context.Context, baseURL string) (*aiagent.ConnectionResult, error) {
	f.lastURL = baseURL
	if f.err != nil {
		return nil, f.err
	}
	return &aiagent.ConnectionResult{StatusCode: 200, Latency: 12 * time.Millisecond, HasArchitecture: true}, nil
}

type fakeSuggester struct {
	err error
	key string
}

func (f *fakeSuggester) Suggest(_ context.Context, _ string, apiKey string) (*suggest.Suggestion, error) {
	f.key = apiKey
	if f.err != nil {
		return nil, f.err
	}
	return &suggest.Suggestion{HospitalType: "general", Suggestions: "Start with registration"}, nil
}

type fakePinger struct{ err error }

func (f fakePinger) Ping(context.Context) error { return f.err }

type fakeStats struct{ since time.Time }

func (f *fakeStats) Stats(_ context.Context, since time.Time) (*runlog.Stats, error) {
	f.since = since
	return &runlog.Stats{Total: 4, Fallback: 1}, nil
}

type fakeEvents struct{}

func (fakeEvents) Recent(limit int) ([]eventbus.Event, error) {
	return []eventbus.Event{{ID: "r1", Subject: eventbus.SubjectRecommendationGenerated}}, nil
}

type testEnv struct {
	router      *gin.Engine
	recommender *fakeRecommender
	checker     *fakeConnChecker
	suggester   *fakeSuggester
	sessions    *session.MemoryStore
	settings    *settings.MemoryStore
	bundles     *bundle.Service
	adminToken  string
}

const testAdminSecret = "test-admin-secret-0123456789abcdef"

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := zap.NewNop()
	env := &testEnv{
		recommender: &fakeRecommender{},
		checker:     &fakeConnChecker{},
		suggester:   &fakeSuggester{},
		sessions:    session.NewMemoryStore(time.Hour),
		settings:    settings.NewMemoryStore("", nil),
		bundles:     bundle.NewService("test-key"),
	}

	env.router = gin.New()
	RegisterRoutes(env.router, Handlers{
		Health:          NewHealthHandler(nil, fakePinger{}, env.settings),
		Requirements:    NewRequirementsHandler(env.sessions, logger),
		Recommendations: NewRecommendationHandler(env.recommender, env.sessions, env.bundles, logger),
		Search:          NewSearchHandler(search.NewService(search.Providers{}, 0, logger), env.settings, logger),
		Suggestions:     NewSuggestionHandler(env.suggester, env.settings, logger),
		Settings:        NewSettingsHandler(env.settings, env.checker, logger),
		Runs:            NewRunsHandler(&fakeStats{}, fakeEvents{}, logger),
	}, middleware.NewRateLimiter(1000, 1000), middleware.NewRateLimiter(1000, 1000),
		middleware.AdminAuth(testAdminSecret, logger))

	token, err := middleware.IssueAdminToken(testAdminSecret, "ops", time.Hour)
	require.NoError(t, err)
	env.adminToken = token
	return env
}

func (e *testEnv) do(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if s, ok := body.(string); ok {
		buf.WriteString(s)
	} else if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if strings.HasPrefix(path, "/api/v1/settings") && e.adminToken != "" {
		req.Header.Set("Authorization", "Bearer "+e.adminToken)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

const validRequirements = `{
	"projectName": "Clinic Portal",
	"projectType": "web",
	"description": "A portal for booking clinic appointments",
	"scalability": "medium",
	"features": ["Authentication", "Real-time notifications"]
}`

func TestHealth(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.do(http.MethodGet, "/health/deep", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	deps := body["dependencies"].(map[string]any)
	assert.Equal(t, "not configured", deps["database"])
	assert.Equal(t, "healthy", deps["redis"])
}

func TestDeepHealthUsesBackendHealthEndpoint(t *testing.T) {
	var executes, healthChecks atomic.Int32
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/health":
			healthChecks.Add(1)
			w.WriteHeader(http.StatusOK)
		case r.URL.Path == "/execute":
			executes.Add(1)
			w.WriteHeader(http.StatusOK)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer backend.Close()

	store := settings.NewMemoryStore(backend.URL, nil)
	r := gin.New()
	r.GET("/health/deep", NewHealthHandler(nil, nil, store).DeepHealth)

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/deep", nil))
		require.Equal(t, http.StatusOK, w.Code)
		body := decode(t, w)
		assert.Equal(t, "healthy", body["status"])
		assert.Equal(t, "healthy", body["dependencies"].(map[string]any)["ai_backend"])
	}
	assert.EqualValues(t, 3, healthChecks.Load())
	assert.Zero(t, executes.Load())
}

func TestDeepHealthDegradedAndUnhealthy(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer backend.Close()
	store := settings.NewMemoryStore(backend.URL, nil)

	r := gin.New()
	r.GET("/health/deep", NewHealthHandler(fakePinger{err: errors.New("down")}, nil, store).DeepHealth)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/deep", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	r = gin.New()
	r.GET("/health/deep", NewHealthHandler(nil, nil, store).DeepHealth)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/deep", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "degraded", body["status"])
	assert.Equal(t, "unreachable", body["dependencies"].(map[string]any)["ai_backend"])
}

func TestRequirementsLifecycle(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/api/v1/requirements", validRequirements)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decode(t, w)
	sessionID := body["session_id"].(string)
	require.NotEmpty(t, sessionID)
	stored := body["requirements"].(map[string]any)
	assert.Equal(t, "medium", stored["scale"])
	assert.Equal(t, "generic", stored["domain"])

	w = env.do(http.MethodGet, "/api/v1/requirements/"+sessionID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(http.MethodGet, "/api/v1/requirements/unknown", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRequirementsValidation(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/api/v1/requirements", `{"projectName":"X","description":"short"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	apiErr := decode(t, w)["error"].(map[string]any)
	assert.Equal(t, middleware.ErrCodeValidation, apiErr["code"])
	assert.Contains(t, apiErr["details"], "projectName")
	assert.Contains(t, apiErr["details"], "projectType")

	w = env.do(http.MethodPost, "/api/v1/requirements", `{not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRecommendations(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/api/v1/recommendations?model=groq", validRequirements)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, "fallback", body["origin"])
	assert.Equal(t, "groq", env.recommender.opts.SearchModel)
	assert.Equal(t, "Clinic Portal", env.recommender.lastReq.ProjectName)
}

func TestRecommendationFailure(t *testing.T) {
	env := newTestEnv(t)
	env.recommender.err = pipeline.ErrGenerationFailed

	w := env.do(http.MethodPost, "/api/v1/recommendations", validRequirements)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	apiErr := decode(t, w)["error"].(map[string]any)
	assert.Equal(t, middleware.ErrCodeRecommendationFailed, apiErr["code"])
	assert.EqualValues(t, 2000, apiErr["retry_after_ms"])
}

func TestSessionRecommendationAndExport(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/api/v1/requirements", validRequirements)
	require.Equal(t, http.StatusCreated, w.Code)
	sessionID := decode(t, w)["session_id"].(string)

	w = env.do(http.MethodPost, "/api/v1/sessions/"+sessionID+"/recommendation", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, sessionID, env.recommender.opts.SessionID)

	w = env.do(http.MethodPost, "/api/v1/sessions/"+sessionID+"/export", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")

	var b bundle.Bundle
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &b))
	result := env.bundles.Verify(&b)
	assert.True(t, result.Valid, result.Errors)
	assert.True(t, result.Signed)

	w = env.do(http.MethodPost, "/api/v1/sessions/missing/export", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSearch(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/api/v1/search", `{"query":"ecommerce shop","model":"deepseek-coder"}`)
	require.Equal(t, http.StatusOK, w.Code)
	results := decode(t, w)["results"].([]any)
	assert.NotEmpty(t, results)

	w = env.do(http.MethodPost, "/api/v1/search", `{"query":"  "}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealthcareSuggestions(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.settings.UpdateKeys(context.Background(), map[string]string{settings.KeyGroq: "gsk"}))

	w := env.do(http.MethodPost, "/api/v1/suggestions/healthcare", `{"description":"A 200 bed general hospital"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "gsk", env.suggester.key)
	assert.Equal(t, "general", decode(t, w)["hospitalType"])

	w = env.do(http.MethodPost, "/api/v1/suggestions/healthcare", `{"description":""}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	env.suggester.err = llm.ErrMissingAPIKey
	w = env.do(http.MethodPost, "/api/v1/suggestions/healthcare", `{"description":"clinic"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	env.suggester.err = &llm.StatusError{Code: 500, Body: "boom"}
	w = env.do(http.MethodPost, "/api/v1/suggestions/healthcare", `{"description":"clinic"}`)
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestBackendSettings(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/api/v1/settings/backend", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, false, body["configured"])
	assert.Equal(t, settings.DefaultBackendURL, body["backend_url"])

	w = env.do(http.MethodPut, "/api/v1/settings/backend", `{"backend_url":"ftp://x"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(http.MethodPut, "/api/v1/settings/backend", `{"backend_url":"https://agent.example.com/"}`)
	require.Equal(t, http.StatusOK, w.Code)
	body = decode(t, w)
	assert.Equal(t, true, body["configured"])
	assert.Equal(t, "https://agent.example.com", body["backend_url"])

	w = env.do(http.MethodPost, "/api/v1/settings/backend/test", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w)["success"])
	assert.Equal(t, "https://agent.example.com", env.checker.lastURL)

	env.checker.err = aiagent.ErrTransport
	w = env.do(http.MethodPost, "/api/v1/settings/backend/test", `{"backend_url":"http://other:9000"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decode(t, w)["success"])
	assert.Equal(t, "http://other:9000", env.checker.lastURL)
}

func TestAPIKeysAreWriteOnly(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPut, "/api/v1/settings/api-keys", map[string]string{settings.KeyGroq: "gsk_secret"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "gsk_secret")
	keys := decode(t, w)["keys"].(map[string]any)
	assert.Equal(t, true, keys[settings.KeyGroq])
	assert.Equal(t, false, keys[settings.KeyTavily])

	w = env.do(http.MethodPut, "/api/v1/settings/api-keys", map[string]string{"OPENAI_API_KEY": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(http.MethodPut, "/api/v1/settings/api-keys", map[string]string{settings.KeyGroq: ""})
	require.Equal(t, http.StatusOK, w.Code)
	keys = decode(t, w)["keys"].(map[string]any)
	assert.Equal(t, false, keys[settings.KeyGroq])
}

func TestSettingsRequireAdminToken(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.settings.UpdateKeys(context.Background(), map[string]string{settings.KeyGroq: "gsk"}))

	send := func(method, path, body, auth string) int {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		if auth != "" {
			req.Header.Set("Authorization", auth)
		}
		w := httptest.NewRecorder()
		env.router.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusUnauthorized, send(http.MethodPut, "/api/v1/settings/backend", `{"backend_url":"http://attacker.example"}`, ""))
	assert.Equal(t, http.StatusUnauthorized, send(http.MethodPut, "/api/v1/settings/api-keys", `{"GROQ_API_KEY":""}`, ""))
	assert.Equal(t, http.StatusUnauthorized, send(http.MethodPost, "/api/v1/settings/backend/test", `{"backend_url":"http://internal:9000"}`, "Bearer forged"))
	assert.Equal(t, http.StatusUnauthorized, send(http.MethodGet, "/api/v1/settings/api-keys", "", ""))
	assert.Empty(t, env.checker.lastURL)

	cfg, err := env.settings.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, settings.DefaultBackendURL, cfg.BackendURL)
	assert.Equal(t, "gsk", cfg.Keys.Groq())

	assert.Equal(t, http.StatusOK, send(http.MethodGet, "/api/v1/settings/backend", "", "Bearer "+env.adminToken))
}

func TestRuns(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/api/v1/runs/stats?window=1h", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1h0m0s", decode(t, w)["window"])

	w = env.do(http.MethodGet, "/api/v1/runs/stats?window=nope", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(http.MethodGet, "/api/v1/events/recommendations?limit=5", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["events"], 1)
}

func TestRunsNotConfigured(t *testing.T) {
	r := gin.New()
	h := NewRunsHandler(nil, nil, zap.NewNop())
	r.GET("/stats", h.Stats)
	r.GET("/events", h.Events)

	for _, path := range []string{"/stats", "/events"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusNotImplemented, w.Code, path)
	}
}

func TestAPIDocsCoverEveryRoute(t *testing.T) {
	env := newTestEnv(t)

	raw, err := swag.ReadDoc()
	require.NoError(t, err)
	var doc struct {
		Paths map[string]map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))

	documented := 0
	for _, route := range env.router.Routes() {
		path := route.Path
		for _, param := range []string{"sessionId"} {
			path = strings.ReplaceAll(path, ":"+param, "{"+param+"}")
		}
		ops, ok := doc.Paths[path]
		if assert.True(t, ok, "undocumented path %s", path) {
			assert.Contains(t, ops, strings.ToLower(route.Method), path)
			documented++
		}
	}
	assert.Equal(t, len(env.router.Routes()), documented)
}
