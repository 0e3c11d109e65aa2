package aiagent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/models"
)

// ConnectionTestRequest is the fixed payload sent by CheckConnection
var ConnectionTestRequest = models.BackendRequest{
	UserIdea:               "Test connection",
	ProjectType:            "test",
	ProjectDescription:     "Testing connection to backend",
	Scale:                  "small",
	Budget:                 "low",
	ProjectDuration:        1,
	SecurityRequirements:   "standard",
	KeyFeatures:            []string{"test"},
	AdditionalRequirements: "None",
}

// ConnectionResult reports a successful connection test
type ConnectionResult struct {
	StatusCode      int           `json:"status_code"`
	Latency         time.Duration `json:"latency_ns"`
	HasArchitecture bool          `json:"has_architecture"`
}

// CheckConnection posts the connection-test payload and reports whether the backend
// answered with a 2xx. It bypasses the circuit breaker so an operator can
// check a backend the breaker has given up on.
func (c *Client) CheckConnection(ctx context.Context, baseURL string) (*ConnectionResult, error) {
	ctx, span := tracer.Start(ctx, "aiagent.CheckConnection")
	defer span.End()

	start := time.Now()
	status, body, err := c.post(ctx, baseURL, ConnectionTestRequest)
	if err != nil {
		return nil, err
	}
	if status < 200 || status > 299 {
		return nil, fmt.Errorf("%w: %w", ErrTransport, &StatusError{Code: status, Detail: strings.TrimSpace(string(body))})
	}

	var resp models.BackendResponse
	_ = json.Unmarshal(body, &resp)
	return &ConnectionResult{
		StatusCode:      status,
		Latency:         time.Since(start),
		HasArchitecture: resp.Architecture != "",
	}, nil
}
