package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const (
	redisKey        = "designpanda:settings"
	fieldBackendURL = "backendUrl"
)

// RedisStore keeps settings in one Redis hash. Values are stored as given;
// protecting them is the job of Redis access control, not of this package.
type RedisStore struct {
	client redis.Cmdable
}

func NewRedisStore(client redis.Cmdable) *RedisStore {
	return &RedisStore{client: client}
}

// Seed writes values that are not already present
func (s *RedisStore) Seed(ctx context.Context, backendURL string, keys map[string]string) error {
	if backendURL != "" {
		if err := s.client.HSetNX(ctx, redisKey, fieldBackendURL, backendURL).Err(); err != nil {
			return fmt.Errorf("seed settings: %w", err)
		}
	}
	for k, v := range keys {
		if v == "" {
			continue
		}
		if err := s.client.HSetNX(ctx, redisKey, k, v).Err(); err != nil {
			return fmt.Errorf("seed settings: %w", err)
		}
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context) (Settings, error) {
	values, err := s.client.HGetAll(ctx, redisKey).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return Settings{}, fmt.Errorf("load settings: %w", err)
	}

	out := Settings{BackendURL: values[fieldBackendURL], Keys: APIKeys{}}
	out.Configured = out.BackendURL != ""
	if !out.Configured {
		out.BackendURL = DefaultBackendURL
	}
	for _, name := range KeyNames {
		if v := values[name]; v != "" {
			out.Keys[name] = v
		}
	}
	return out, nil
}

func (s *RedisStore) SetBackendURL(ctx context.Context, raw string) error {
	u, err := ValidateBackendURL(raw)
	if err != nil {
		return err
	}
	if err := s.client.HSet(ctx, redisKey, fieldBackendURL, u).Err(); err != nil {
		return fmt.Errorf("save backend url: %w", err)
	}
	return nil
}

func (s *RedisStore) UpdateKeys(ctx context.Context, keys map[string]string) error {
	if err := validateKeyNames(keys); err != nil {
		return err
	}
	for k, v := range keys {
		var err error
		if v == "" {
			err = s.client.HDel(ctx, redisKey, k).Err()
		} else {
			err = s.client.HSet(ctx, redisKey, k, v).Err()
		}
		if err != nil {
			return fmt.Errorf("save api key %s: %w", k, err)
		}
	}
	return nil
}
