package suggest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/llm"
)

type fakeChat struct {
	reply string
	err   error
	seen  []llm.Message
}

func (f *fakeChat) Chat(_ context.Context, _ string, messages []llm.Message, _ llm.ChatOptions) (string, error) {
	f.seen = messages
	return f.reply, f.err
}

func TestSuggestParsesEmbeddedJSON(t *testing.T) {
	chat := &fakeChat{reply: "Here you go:\n```json\n{\"hospitalType\":\"clinic\",\"hospitalSize\":\"small\",\"suggestions\":\"Start with scheduling\"}\n```"}
	a := &Assistant{client: chat, logger: zap.NewNop()}

	s, err := a.Suggest(context.Background(), "A small rural clinic", "key")
	require.NoError(t, err)
	assert.Equal(t, "clinic", s.HospitalType)
	assert.Equal(t, "small", s.HospitalSize)
	assert.Equal(t, "Start with scheduling", s.Suggestions)
	assert.Contains(t, chat.seen[1].Content, "A small rural clinic")
}

func TestSuggestFallsBackToRawText(t *testing.T) {
	a := &Assistant{client: &fakeChat{reply: "Consider HIPAA {broken"}, logger: zap.NewNop()}

	s, err := a.Suggest(context.Background(), "hospital", "key")
	require.NoError(t, err)
	assert.Equal(t, "Consider HIPAA {broken", s.Suggestions)
}

func TestSuggestErrors(t *testing.T) {
	a := &Assistant{client: &fakeChat{err: llm.ErrRateLimited}, logger: zap.NewNop()}

	_, err := a.Suggest(context.Background(), "hospital", "")
	assert.ErrorIs(t, err, llm.ErrMissingAPIKey)

	_, err = a.Suggest(context.Background(), "hospital", "key")
	assert.ErrorIs(t, err, llm.ErrRateLimited)
}
