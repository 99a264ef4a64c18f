package analysis

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/studentsim/internal/llm"
	"github.com/abhisek/studentsim/internal/response"
)

// ErrEmptyFollowUp is returned when the follow-up question is blank.
var ErrEmptyFollowUp = errors.New("follow-up question is required")

// Analyzer answers a follow-up question about a batch of responses.
type Analyzer interface {
	Analyze(ctx context.Context, originalQuestion string, responses []response.StudentResponse, followUp string) (response.Analysis, error)
}

// LLMAnalyzer asks a provider for the analysis.
type LLMAnalyzer struct {
	provider llm.Provider
}

// NewLLMAnalyzer creates an analyzer backed by provider.
func NewLLMAnalyzer(provider llm.Provider) *LLMAnalyzer {
	return &LLMAnalyzer{provider: provider}
}

// Analyze sends one generation request and returns the text as-is.
func (a *LLMAnalyzer) Analyze(ctx context.Context, originalQuestion string, responses []response.StudentResponse, followUp string) (response.Analysis, error) {
	followUp = strings.TrimSpace(followUp)
	if followUp == "" {
		return response.Analysis{}, ErrEmptyFollowUp
	}

	ctx = llm.WithPurpose(ctx, llm.PurposeAnalysis)
	resp, err := a.provider.Generate(ctx, BuildRequest(originalQuestion, responses, followUp))
	if err != nil {
		return response.Analysis{}, fmt.Errorf("generate analysis: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return response.Analysis{}, &llm.ErrInvalidResponse{
			Content: resp.Content,
			Err:     errors.New("empty analysis"),
		}
	}
	return response.Analysis{Question: followUp, Response: text}, nil
}
