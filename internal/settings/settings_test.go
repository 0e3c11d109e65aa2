package settings

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateBackendURL(t *testing.T) {
	u, err := ValidateBackendURL(" http://127.0.0.1:8000/ ")
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:8000", u)

	for _, bad := range []string{"", "localhost:8000", "ftp://host", "/execute"} {
		_, err := ValidateBackendURL(bad)
		assert.ErrorIs(t, err, ErrInvalidBackendURL, bad)
	}
}

func exerciseStore(t *testing.T, store Store) {
	ctx := context.Background()

	s, err := store.Get(ctx)
	require.NoError(t, err)
	assert.False(t, s.Configured)
	assert.Equal(t, DefaultBackendURL, s.BackendURL)

	require.NoError(t, store.SetBackendURL(ctx, "https://agent.example.com/"))
	assert.ErrorIs(t, store.SetBackendURL(ctx, "not a url"), ErrInvalidBackendURL)

	require.NoError(t, store.UpdateKeys(ctx, map[string]string{KeyGroq: "g", KeySerper: "s"}))
	assert.ErrorIs(t, store.UpdateKeys(ctx, map[string]string{"OPENAI_API_KEY": "x"}), ErrUnknownKey)

	s, err = store.Get(ctx)
	require.NoError(t, err)
	assert.True(t, s.Configured)
	assert.Equal(t, "https://agent.example.com", s.BackendURL)
	assert.Equal(t, "g", s.Keys.Groq())
	assert.True(t, s.Keys.Presence()[KeySerper])
	assert.False(t, s.Keys.Presence()[KeyTavily])

	require.NoError(t, store.UpdateKeys(ctx, map[string]string{KeyGroq: ""}))
	s, err = store.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, s.Keys.Groq())
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore("", nil))
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	exerciseStore(t, NewRedisStore(client))
}

func TestRedisSeedDoesNotOverwrite(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	store := NewRedisStore(client)
	ctx := context.Background()
	require.NoError(t, store.UpdateKeys(ctx, map[string]string{KeyTavily: "user-set"}))
	require.NoError(t, store.Seed(ctx, "http://seeded:8000", map[string]string{KeyTavily: "env", KeyGoogle: "env"}))

	s, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "user-set", s.Keys.Tavily())
	assert.Equal(t, "env", s.Keys.Google())
	assert.Equal(t, "http://seeded:8000", s.BackendURL)
}
