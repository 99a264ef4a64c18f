package llm

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/genai"
)

func TestGeminiModelNames(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", "gemini-2.0-flash"},
		{"gemini-flash", "gemini-2.0-flash"},
		{"gemini-pro", "gemini-2.0-pro"},
		{"gemini-2.5-flash", "gemini-2.5-flash"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, modelOrDefault(tt.input, "gemini-flash", geminiModels), tt.input)
	}
}

func TestClassifyGeminiError(t *testing.T) {
	var cred *ErrInvalidCredential
	assert.ErrorAs(t, classifyGeminiError(genai.APIError{Code: 403, Message: "API key not valid"}), &cred)

	var rl *ErrRateLimit
	assert.ErrorAs(t, classifyGeminiError(genai.APIError{Code: 429, Status: "RESOURCE_EXHAUSTED"}), &rl)

	var bad *ErrBadRequest
	assert.ErrorAs(t, classifyGeminiError(&genai.APIError{Code: 400}), &bad)

	var unavail *ErrProviderUnavailable
	assert.ErrorAs(t, classifyGeminiError(errors.New("dial tcp: connection refused")), &unavail)
}

func TestGeminiStopReason(t *testing.T) {
	withReason := func(r genai.FinishReason) *genai.GenerateContentResponse {
		return &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{FinishReason: r}}}
	}
	assert.Equal(t, StopMaxTokens, geminiStopReason(withReason(genai.FinishReasonMaxTokens)))
	assert.Equal(t, StopBlocked, geminiStopReason(withReason(genai.FinishReasonSafety)))
	assert.Equal(t, StopEnd, geminiStopReason(withReason(genai.FinishReasonStop)))
	assert.Equal(t, StopEnd, geminiStopReason(&genai.GenerateContentResponse{}))
}
