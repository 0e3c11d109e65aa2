// Package aiagent talks to the remote AI backend that produces architecture
// recommendations.
package aiagent

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

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/metrics"
	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/models"
)

var tracer = otel.Tracer("designpanda/aiagent")

const (
	// ExecutePath is the backend endpoint for recommendations
	ExecutePath = "/execute"

	// NoticeDiagramFailed is attached to partial results
	NoticeDiagramFailed = "Diagram generation failed. The textual recommendation is still available."

	maxBodyBytes = 32 << 20
)

// Result is the outcome of a successful or partially successful call
type Result struct {
	Response   models.BackendResponse
	Partial    bool
	Notice     string
	StatusCode int
}

// Client posts requests to the backend's /execute endpoint
type Client struct {
	http    *http.Client
	breaker *CircuitBreaker
	logger  *zap.Logger
}

// NewClient creates a Client whose calls never outlive timeout
func NewClient(timeout time.Duration, breaker *CircuitBreaker, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if breaker == nil {
		breaker = NewCircuitBreaker()
	}
	breaker.OnStateChange = func(from, to CircuitState) {
		metrics.CircuitState.Set(float64(to))
		logger.Warn("AI backend circuit state changed",
			zap.String("from", from.String()),
			zap.String("to", to.String()),
		)
	}
	return &Client{
		http:    &http.Client{Timeout: timeout},
		breaker: breaker,
		logger:  logger,
	}
}

// Breaker exposes the circuit breaker for health reporting
func (c *Client) Breaker() *CircuitBreaker {
	return c.breaker
}

// Execute performs exactly one POST to {baseURL}/execute. Errors are one of
// ErrCircuitOpen, ErrInvalidFormat, *StatusError or ErrTransport.
func (c *Client) Execute(ctx context.Context, baseURL string, req models.BackendRequest) (*Result, error) {
	ctx, span := tracer.Start(ctx, "aiagent.Execute")
	defer span.End()

	if !c.breaker.Allow() {
		span.SetStatus(codes.Error, "circuit open")
		metrics.ObserveBackendCall("circuit_open", 0)
		return nil, ErrCircuitOpen
	}

	start := time.Now()
	res, err := c.execute(ctx, baseURL, req)
	duration := time.Since(start)

	outcome := "full"
	switch {
	case err == nil && res.Partial:
		outcome = "partial"
		c.breaker.RecordSuccess()
	case err == nil:
		c.breaker.RecordSuccess()
	case errors.Is(err, ErrInvalidFormat):
		outcome = "invalid"
		c.breaker.RecordSuccess()
	case errors.Is(err, context.Canceled):
		outcome = "cancelled"
	default:
		outcome = "failure"
		c.breaker.RecordFailure()
	}
	metrics.ObserveBackendCall(outcome, duration)
	span.SetAttributes(attribute.String("outcome", outcome))

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.logger.Warn("AI backend call failed",
			zap.String("outcome", outcome),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return nil, err
	}

	c.logger.Info("AI backend call completed",
		zap.String("outcome", outcome),
		zap.Int("status", res.StatusCode),
		zap.Duration("duration", duration),
	)
	return res, nil
}

func (c *Client) execute(ctx context.Context, baseURL string, req models.BackendRequest) (*Result, error) {
	status, body, err := c.post(ctx, baseURL, req)
	if err != nil {
		return nil, err
	}

	if status < 200 || status > 299 {
		return interpretError(status, body)
	}

	var resp models.BackendResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: decode response: %w", ErrTransport, err)
	}
	if strings.TrimSpace(resp.Architecture) == "" || strings.TrimSpace(resp.UMLCode) == "" {
		return nil, ErrInvalidFormat
	}

	if strings.TrimSpace(resp.ImageData) == "" {
		resp.ImageData = ""
		resp.MimeType = ""
		return &Result{Response: resp, Partial: true, Notice: NoticeDiagramFailed, StatusCode: status}, nil
	}
	return &Result{Response: resp, StatusCode: status}, nil
}

// interpretError maps a non-2xx answer. Bodies naming the diagram subsystem
// are partial content rather than failures.
func interpretError(status int, body []byte) (*Result, error) {
	var eb models.BackendErrorBody
	text := strings.TrimSpace(string(body))
	if err := json.Unmarshal(body, &eb); err == nil {
		if t := eb.Text(); t != "" {
			text = t
		}
	}

	lower := strings.ToLower(text)
	if strings.Contains(lower, "plantuml") || strings.Contains(lower, "diagram") {
		return &Result{
			Response: models.BackendResponse{
				Architecture: eb.Architecture,
				UMLCode:      eb.UMLCode,
			},
			Partial:    true,
			Notice:     NoticeDiagramFailed,
			StatusCode: status,
		}, nil
	}
	return nil, fmt.Errorf("%w: %w", ErrTransport, &StatusError{Code: status, Detail: text})
}

func (c *Client) post(ctx context.Context, baseURL string, payload any) (int, []byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, fmt.Errorf("marshal request: %w", err)
	}

	endpoint := strings.TrimRight(baseURL, "/") + ExecutePath
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return 0, nil, fmt.Errorf("%w: create request: %w", ErrTransport, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return 0, nil, fmt.Errorf("%w: read body: %w", ErrTransport, err)
	}
	return resp.StatusCode, data, nil
}
