package eventbus

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"
)

const (
	// RecommendationStream holds recommendation events
	RecommendationStream = "RECOMMENDATIONS"
	// SubjectRecommendationGenerated is published once per pipeline run
	SubjectRecommendationGenerated = "recommendations.generated"
)

// RecommendationEvent describes a finished pipeline run. It carries no
// requirement text and no recommendation body.
type RecommendationEvent struct {
	RunID       string    `json:"run_id"`
	SessionID   string    `json:"session_id,omitempty"`
	Domain      string    `json:"domain"`
	ProjectType string    `json:"project_type"`
	Origin      string    `json:"origin"`
	Partial     bool      `json:"partial"`
	Pattern     string    `json:"pattern"`
	DurationMs  int64     `json:"duration_ms"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// Publisher sends recommendation events, preferring JetStream
type Publisher struct {
	client *Client
	store  *JetStreamStore
	logger *zap.Logger
}

// NewPublisher prepares the recommendation stream when JetStream is available
func NewPublisher(client *Client, logger *zap.Logger) *Publisher {
	p := &Publisher{client: client, logger: logger}
	if js := client.JetStream(); js != nil {
		store, err := NewJetStreamStore(js)
		if err == nil {
			if err := store.EnsureStream(RecommendationStream, "recommendations.>"); err != nil {
				logger.Warn("could not ensure recommendation stream", zap.Error(err))
			} else {
				p.store = store
			}
		}
	}
	return p
}

// PublishRecommendation emits one event
func (p *Publisher) PublishRecommendation(_ context.Context, event RecommendationEvent) error {
	if p.store != nil {
		return p.store.AppendWithID(SubjectRecommendationGenerated, event.RunID, event)
	}
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.client.Publish(SubjectRecommendationGenerated, data)
}

// Recent returns the newest stored events, newest first, when JetStream is available
func (p *Publisher) Recent(limit int) ([]Event, error) {
	if p.store == nil {
		return []Event{}, nil
	}
	return p.store.Read(RecommendationStream, SubjectRecommendationGenerated, limit)
}
