package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAnthropicProvider(t *testing.T, handler http.HandlerFunc) *AnthropicProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := anthropic.NewClient(
		option.WithAPIKey("test-key"),
		option.WithBaseURL(server.URL),
		option.WithMaxRetries(0),
	)
	return &AnthropicProvider{
		client: client,
		model:  "claude-haiku-4-5-20251001",
	}
}

func TestAnthropicProvider_HappyPath(t *testing.T) {
	var body map[string]any
	handler := func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":   "msg_test",
			"type": "message",
			"role": "assistant",
			"content": []map[string]any{
				{"type": "text", "text": "**Student 1**: Clear explanation of chlorophyll."},
			},
			"model":       "claude-haiku-4-5-20251001",
			"stop_reason": "max_tokens",
			"usage": map[string]any{
				"input_tokens":  50,
				"output_tokens": 30,
			},
		})
	}

	p := newTestAnthropicProvider(t, handler)
	resp, err := p.Generate(context.Background(), Request{
		System:      "You are an experienced teacher.",
		Messages:    []Message{{Role: RoleUser, Content: "Give feedback."}},
		MaxTokens:   1200,
		Temperature: 0.7,
	})
	require.NoError(t, err)

	assert.Equal(t, "**Student 1**: Clear explanation of chlorophyll.", resp.Text())
	assert.Equal(t, 80, resp.Usage.TotalTokens)
	assert.Equal(t, "max_tokens", resp.StopReason)
	assert.EqualValues(t, 1200, body["max_tokens"])
	assert.NotNil(t, body["system"])
}

func TestAnthropicProvider_ErrorClassification(t *testing.T) {
	tests := []struct {
		status int
		target any
	}{
		{http.StatusUnauthorized, new(*ErrInvalidCredential)},
		{http.StatusTooManyRequests, new(*ErrRateLimit)},
		{http.StatusBadRequest, new(*ErrBadRequest)},
		{http.StatusServiceUnavailable, new(*ErrProviderUnavailable)},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			p := newTestAnthropicProvider(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				json.NewEncoder(w).Encode(map[string]any{
					"type":  "error",
					"error": map[string]any{"type": "api_error", "message": "nope"},
				})
			})
			_, err := p.Generate(context.Background(), Request{
				Messages:  []Message{{Role: RoleUser, Content: "x"}},
				MaxTokens: 10,
			})
			require.Error(t, err)
			assert.True(t, errors.As(err, tt.target), "got %T: %v", err, err)
		})
	}
}

func TestAnthropicProvider_NoTextContent(t *testing.T) {
	p := newTestAnthropicProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id": "msg_empty", "type": "message", "role": "assistant",
			"content":     []map[string]any{},
			"model":       "claude-haiku-4-5-20251001",
			"stop_reason": "end_turn",
			"usage":       map[string]any{"input_tokens": 1, "output_tokens": 0},
		})
	})
	_, err := p.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "x"}}, MaxTokens: 10})
	var inv *ErrInvalidResponse
	assert.ErrorAs(t, err, &inv)
}

func TestAnthropicProvider_JoinsTextBlocksAndFoldsSystemMessages(t *testing.T) {
	var body struct {
		System   []map[string]any `json:"system"`
		Messages []map[string]any `json:"messages"`
	}
	p := newTestAnthropicProvider(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id": "msg_split", "type": "message", "role": "assistant",
			"content": []map[string]any{
				{"type": "text", "text": "1. Plants use sunlight.\n"},
				{"type": "text", "text": "2. Leaves make sugar."},
			},
			"model":       "claude-haiku-4-5-20251001",
			"stop_reason": "refusal",
			"usage":       map[string]any{"input_tokens": 5, "output_tokens": 9},
		})
	})

	resp, err := p.Generate(context.Background(), Request{
		System: "Simulate students.",
		Messages: []Message{
			{Role: RoleSystem, Content: "Answer in a numbered list."},
			{Role: RoleUser, Content: "What is photosynthesis?"},
		},
		MaxTokens: 100,
	})
	require.NoError(t, err)
	assert.Equal(t, "1. Plants use sunlight.\n2. Leaves make sugar.", resp.Content)
	assert.Equal(t, StopBlocked, resp.StopReason)
	require.Len(t, body.System, 1)
	assert.Equal(t, "Simulate students.\n\nAnswer in a numbered list.", body.System[0]["text"])
	assert.Len(t, body.Messages, 1)
}

func TestModelOrDefault(t *testing.T) {
	assert.Equal(t, "claude-haiku-4-5-20251001", modelOrDefault("", "claude-haiku", anthropicModels))
	assert.Equal(t, "claude-sonnet-4-20250514", modelOrDefault(" claude-sonnet ", "claude-haiku", anthropicModels))
	assert.Equal(t, "claude-opus-4-1", modelOrDefault("claude-opus-4-1", "claude-haiku", anthropicModels))
}
