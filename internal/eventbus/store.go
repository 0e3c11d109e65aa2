package eventbus

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
)

// EventStore is an append-only event log
type EventStore interface {
	Append(stream string, subject string, data any) error
	Read(stream string, subject string, limit int) ([]Event, error)
}

// Event wraps the payload with metadata
type Event struct {
	ID        string          `json:"id"`
	Subject   string          `json:"subject"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

type JetStreamStore struct {
	js nats.JetStreamContext
}

// NewJetStreamStore creates an event store backed by NATS JetStream
func NewJetStreamStore(js nats.JetStreamContext) (*JetStreamStore, error) {
	if js == nil {
		return nil, fmt.Errorf("JetStream context not initialized")
	}
	return &JetStreamStore{js: js}, nil
}

// EnsureStream creates stream for subjects unless it already exists
func (s *JetStreamStore) EnsureStream(stream string, subjects ...string) error {
	_, err := s.js.StreamInfo(stream)
	if err == nil {
		return nil
	}
	if !errors.Is(err, nats.ErrStreamNotFound) {
		return fmt.Errorf("stream info %s: %w", stream, err)
	}
	_, err = s.js.AddStream(&nats.StreamConfig{
		Name:     stream,
		Subjects: subjects,
		MaxAge:   7 * 24 * time.Hour,
	})
	if err != nil {
		return fmt.Errorf("add stream %s: %w", stream, err)
	}
	return nil
}

// Append publishes data as JSON; msgID deduplicates retries
func (s *JetStreamStore) Append(stream string, subject string, data any) error {
	return s.AppendWithID(subject, "", data)
}

// AppendWithID publishes data with a Nats-Msg-Id header when msgID is set
func (s *JetStreamStore) AppendWithID(subject, msgID string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	var opts []nats.PubOpt
	if msgID != "" {
		opts = append(opts, nats.MsgId(msgID))
	}
	_, err = s.js.Publish(subject, payload, opts...)
	return err
}

// streamReader is the part of JetStream that Read needs
type streamReader interface {
	StreamInfo(stream string, opts ...nats.JSOpt) (*nats.StreamInfo, error)
	GetMsg(name string, seq uint64, opts ...nats.JSOpt) (*nats.RawStreamMsg, error)
}

// Read returns up to limit of the newest events on subject, newest first.
// A limit of zero or less reads the whole stream.
func (s *JetStreamStore) Read(stream string, subject string, limit int) ([]Event, error) {
	return readRecent(s.js, stream, subject, limit)
}

func readRecent(r streamReader, stream, subject string, limit int) ([]Event, error) {
	info, err := r.StreamInfo(stream)
	if err != nil {
		return nil, fmt.Errorf("stream info %s: %w", stream, err)
	}
	state := info.State

	events := []Event{}
	if state.Msgs == 0 {
		return events, nil
	}
	first := max(state.FirstSeq, 1)
	for seq := state.LastSeq; seq >= first; seq-- {
		if limit > 0 && len(events) >= limit {
			break
		}
		msg, err := r.GetMsg(stream, seq)
		if errors.Is(err, nats.ErrMsgNotFound) {
			continue
		}
		if err != nil {
			return events, fmt.Errorf("get message %d: %w", seq, err)
		}
		if msg.Subject != subject {
			continue
		}
		events = append(events, Event{
			ID:        msg.Header.Get(nats.MsgIdHdr),
			Subject:   msg.Subject,
			Data:      json.RawMessage(msg.Data),
			Timestamp: msg.Time,
		})
	}
	return events, nil
}
