package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/abhisek/studentsim/internal/logger"
	"github.com/abhisek/studentsim/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type recordingEventRepo struct {
	store.EventRepo
	events []store.LLMRequestEventData
	err    error
}

func (r *recordingEventRepo) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	r.events = append(r.events, data)
	return r.err
}

func TestLogging_RecordsSuccess(t *testing.T) {
	repo := &recordingEventRepo{}
	mock := NewMockProvider(MockResponse{
		Text:  "1. Plants make food.",
		Usage: Usage{InputTokens: 12, OutputTokens: 7},
	})
	p := WithLogging(mock, "openai", repo, nil)

	ctx := WithPurpose(context.Background(), PurposeResponses)
	_, err := p.Generate(ctx, Request{
		System:    "sys prompt",
		Messages:  []Message{{Role: RoleUser, Content: "Question: What is photosynthesis?"}},
		MaxTokens: 60,
	})
	require.NoError(t, err)

	require.Len(t, repo.events, 1)
	e := repo.events[0]
	assert.Equal(t, "openai", e.Provider)
	assert.Equal(t, "mock", e.Model)
	assert.Equal(t, "responses", e.Purpose)
	assert.True(t, e.Success)
	assert.Equal(t, 12, e.InputTokens)
	assert.Equal(t, "1. Plants make food.", e.ResponseBody)
	assert.Contains(t, e.RequestBody, "[system]\nsys prompt")
	assert.Contains(t, e.RequestBody, "[user]\nQuestion: What is photosynthesis?")
	assert.Contains(t, e.RequestBody, "max_tokens=60")
}

func TestLogging_RecordsFailureWithoutKeys(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	repo := &recordingEventRepo{}
	cause := &ErrInvalidCredential{Err: errors.New("Incorrect API key provided: sk-abcdefghijklmnopqrst")}
	p := WithLogging(NewMockProvider(MockResponse{Err: cause}), "openai", repo, logger.FromCore(core))

	_, err := p.Generate(context.Background(), Request{})
	assert.ErrorIs(t, err, cause)

	require.Len(t, repo.events, 1)
	assert.False(t, repo.events[0].Success)
	assert.Equal(t, "unknown", repo.events[0].Purpose)
	assert.NotContains(t, repo.events[0].ErrorMessage, "sk-abcdefghijklmnopqrst")

	warnings := logs.FilterMessage("llm request failed").All()
	require.Len(t, warnings, 1)
	assert.NotContains(t, warnings[0].ContextMap()["error"], "sk-abcdefghijklmnopqrst")
}

func TestLogging_EventFailureDoesNotFailRequest(t *testing.T) {
	repo := &recordingEventRepo{err: errors.New("disk full")}
	p := WithLogging(NewMockProvider(Reply("ok")), "openai", repo, nil)

	resp, err := p.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Text())
}

func TestLogging_NilRepo(t *testing.T) {
	p := WithLogging(NewMockProvider(Reply("ok")), "mock", nil, nil)
	_, err := p.Generate(context.Background(), Request{})
	assert.NoError(t, err)
	assert.Equal(t, "mock", p.ModelID())
}

func TestNewProvider(t *testing.T) {
	_, err := NewProvider(context.Background(), Config{Provider: "openai"}, nil, nil)
	assert.Error(t, err, "missing key")

	p, err := NewProvider(context.Background(), Config{Provider: "mock"}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "mock", p.ModelID())

	cfg := DefaultConfig().WithCredential("sk-abcdefghijklmnopqrstuvwx")
	p, err = NewProvider(context.Background(), cfg, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "gpt-3.5-turbo", p.ModelID())
	_, isLogging := p.(*LoggingProvider)
	assert.True(t, isLogging, "single attempt config is not wrapped in retry")

	cfg.Retry.MaxAttempts = 2
	p, err = NewProvider(context.Background(), cfg, nil, nil)
	require.NoError(t, err)
	_, isRetry := p.(*RetryProvider)
	assert.True(t, isRetry)
}

func TestNewProviderFromEnv(t *testing.T) {
	clearProviderEnv(t)
	_, _, err := NewProviderFromEnv(context.Background(), nil, nil)
	assert.ErrorIs(t, err, ErrNotConfigured)

	t.Setenv("OPENAI_API_KEY", "sk-abcdefghijklmnopqrstuvwx")
	p, cfg, err := NewProviderFromEnv(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "openai", cfg.Provider)
	assert.Equal(t, "gpt-3.5-turbo", p.ModelID())
}

func TestTimeoutProvider(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: context.DeadlineExceeded})
	_, err := WithTimeout(mock, 50*time.Millisecond).Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	assert.ErrorAs(t, err, &unavail)
}

func TestLookupCost(t *testing.T) {
	c := LookupCost("gpt-3.5-turbo")
	require.NotNil(t, c)
	assert.InDelta(t, 0.002, c.Cost(1000, 1000), 1e-9)

	snap := LookupCost("gpt-4o-mini-2024-07-18")
	require.NotNil(t, snap)
	assert.Equal(t, 0.15, snap.InputPerMTok)

	assert.Nil(t, LookupCost("unknown-model"))
}

func TestLogging_WarnsOnTruncatedReply(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	mock := NewMockProvider(MockResponse{Text: "1. Plants", StopReason: StopMaxTokens})
	p := WithLogging(mock, "openai", nil, logger.FromCore(core))

	resp, err := p.Generate(WithPurpose(context.Background(), PurposeAnalysis), Prompt("", "q", 20, 0))
	require.NoError(t, err)
	assert.Equal(t, "1. Plants", resp.Text())

	warnings := logs.FilterMessage("llm reply hit the token limit").All()
	require.Len(t, warnings, 1)
	assert.Equal(t, "analysis", warnings[0].ContextMap()["purpose"])
	assert.EqualValues(t, 20, warnings[0].ContextMap()["max_tokens"])
}
