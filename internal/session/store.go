// Package session keeps the last submitted requirements for a session so the
// results view can be rebuilt.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/models"
)

// ErrNotFound is returned when a session holds no requirements
var ErrNotFound = errors.New("session not found")

// Store persists requirements per session id
type Store interface {
	Save(ctx context.Context, id string, req models.ProjectRequirements) error
	Load(ctx context.Context, id string) (models.ProjectRequirements, error)
	Delete(ctx context.Context, id string) error
}

// Key returns the Redis key for a session's requirements
func Key(id string) string {
	return "designpanda:session:" + id + ":requirements"
}

// RedisStore keeps requirements as JSON with a TTL
type RedisStore struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewRedisStore(client redis.Cmdable, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Save(ctx context.Context, id string, req models.ProjectRequirements) error {
	data, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal requirements: %w", err)
	}
	if err := s.client.Set(ctx, Key(id), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("save session %s: %w", id, err)
	}
	return nil
}

func (s *RedisStore) Load(ctx context.Context, id string) (models.ProjectRequirements, error) {
	var req models.ProjectRequirements
	data, err := s.client.Get(ctx, Key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return req, ErrNotFound
	}
	if err != nil {
		return req, fmt.Errorf("load session %s: %w", id, err)
	}
	if err := json.Unmarshal(data, &req); err != nil {
		return req, fmt.Errorf("decode session %s: %w", id, err)
	}
	return req, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, Key(id)).Err(); err != nil {
		return fmt.Errorf("delete session %s: %w", id, err)
	}
	return nil
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// MemoryStore is the single-process Store used when Redis is not configured
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry), ttl: ttl, now: time.Now}
}

func (s *MemoryStore) Save(_ context.Context, id string, req models.ProjectRequirements) error {
	data, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal requirements: %w", err)
	}
	var expires time.Time
	if s.ttl > 0 {
		expires = s.now().Add(s.ttl)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[id] = memoryEntry{data: data, expiresAt: expires}
	return nil
}

func (s *MemoryStore) Load(_ context.Context, id string) (models.ProjectRequirements, error) {
	var req models.ProjectRequirements

	s.mu.RLock()
	entry, ok := s.entries[id]
	s.mu.RUnlock()

	if !ok || (!entry.expiresAt.IsZero() && s.now().After(entry.expiresAt)) {
		return req, ErrNotFound
	}
	if err := json.Unmarshal(entry.data, &req); err != nil {
		return req, fmt.Errorf("decode session %s: %w", id, err)
	}
	return req, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
	return nil
}
