package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroqChat(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		var req groqChatReq
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "llama-3.1-8b-instant", req.Model)
		assert.Len(t, req.Messages, 2)

		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"hello"}}]}`))
	}))
	defer srv.Close()

	out, err := NewGroqClient(srv.URL, time.Second).Chat(context.Background(), "secret",
		[]Message{{Role: "system", Content: "s"}, {Role: "user", Content: "u"}},
		ChatOptions{Model: "llama-3.1-8b-instant"},
	)
	require.NoError(t, err)
	assert.Equal(t, "hello", out)
}

func TestGroqChatErrors(t *testing.T) {
	cases := []struct {
		status int
		body   string
		want   error
	}{
		{http.StatusUnauthorized, "", ErrUnauthorized},
		{http.StatusTooManyRequests, "", ErrRateLimited},
		{http.StatusOK, `{"choices":[]}`, ErrEmptyResponse},
	}
	for _, tc := range cases {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
			_, _ = w.Write([]byte(tc.body))
		}))
		_, err := NewGroqClient(srv.URL, time.Second).Chat(context.Background(), "k", nil, ChatOptions{})
		assert.ErrorIs(t, err, tc.want)
		srv.Close()
	}
}

func TestGroqChatStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("bad gateway"))
	}))
	defer srv.Close()

	_, err := NewGroqClient(srv.URL, time.Second).Chat(context.Background(), "k", nil, ChatOptions{})
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusBadGateway, se.Code)
}

func TestMissingKeys(t *testing.T) {
	_, err := NewGroqClient("", 0).Chat(context.Background(), "", nil, ChatOptions{})
	assert.ErrorIs(t, err, ErrMissingAPIKey)

	_, err = NewGeminiClient("gemini-2.0-flash", 0, 0).Generate(context.Background(), " ", "prompt")
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}
