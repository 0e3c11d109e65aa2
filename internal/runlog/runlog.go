// Package runlog records pipeline run metadata in Postgres. Requirement text
// and recommendation bodies are never stored.
package runlog

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// Outcomes of the remote fetch recorded with each run
const (
	OutcomeFull      = "full"
	OutcomePartial   = "partial"
	OutcomeInvalid   = "invalid"
	OutcomeFailure   = "failure"
	OutcomeCircuit   = "circuit_open"
	OutcomeCancelled = "cancelled"
)

// Run is one pipeline execution
type Run struct {
	ID          uuid.UUID
	SessionID   string
	Domain      string
	ProjectType string
	Origin      string
	Partial     bool
	Pattern     string
	BackendURL  string
	Outcome     string
	Duration    time.Duration
	CreatedAt   time.Time
}

// Stats aggregates recorded runs
type Stats struct {
	Total         int64   `json:"total"`
	Fallback      int64   `json:"fallback"`
	Partial       int64   `json:"partial"`
	AvgDurationMs float64 `json:"avg_duration_ms"`
}

type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repository writes runs to the recommendation_runs table
type Repository struct {
	db     db
	logger *zap.Logger
}

// NewRepository accepts a *pgxpool.Pool or anything with the same methods
func NewRepository(db db, logger *zap.Logger) *Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Repository{db: db, logger: logger}
}

// Record inserts run, filling ID and CreatedAt when unset
func (r *Repository) Record(ctx context.Context, run Run) error {
	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO recommendation_runs
			(id, session_id, domain, project_type, origin, partial, pattern, backend_url, outcome, duration_ms, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	var sessionID any
	if run.SessionID != "" {
		sessionID = run.SessionID
	}

	_, err := r.db.Exec(ctx, query,
		run.ID, sessionID, run.Domain, run.ProjectType, run.Origin, run.Partial,
		run.Pattern, run.BackendURL, run.Outcome, run.Duration.Milliseconds(), run.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}

	r.logger.Debug("run recorded",
		zap.String("run_id", run.ID.String()),
		zap.String("origin", run.Origin),
		zap.String("outcome", run.Outcome),
	)
	return nil
}

// Stats summarizes runs created since the given time
func (r *Repository) Stats(ctx context.Context, since time.Time) (*Stats, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE origin = 'fallback'),
			COUNT(*) FILTER (WHERE partial),
			COALESCE(AVG(duration_ms), 0)
		FROM recommendation_runs
		WHERE created_at >= $1
	`
	var s Stats
	if err := r.db.QueryRow(ctx, query, since).Scan(&s.Total, &s.Fallback, &s.Partial, &s.AvgDurationMs); err != nil {
		return nil, fmt.Errorf("run stats: %w", err)
	}
	return &s, nil
}
