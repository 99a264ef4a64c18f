package response

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/studentsim/internal/llm"
)

// Mode selects how a batch of responses is produced.
type Mode string

const (
	// ModeDemo serves the curated catalog when the question matches exactly
	// and falls through to ModeMock otherwise.
	ModeDemo Mode = "demo"
	ModeMock Mode = "mock"
	ModeLive Mode = "live"
)

// ErrNoProvider is returned for ModeLive when no provider is configured.
var ErrNoProvider = errors.New("no LLM provider configured")

// Config controls live synthesis.
type Config struct {
	// TokensPerResponse is the token budget per requested response.
	TokensPerResponse int

	// MaxTokens caps the total token budget of a generation request.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64
}

// DefaultConfig returns the recommended live synthesis settings.
func DefaultConfig() Config {
	return Config{
		TokensPerResponse: 60,
		MaxTokens:         1500,
		Temperature:       0.7,
	}
}

// Synthesizer produces batches of student responses.
type Synthesizer struct {
	provider llm.Provider
	mock     *MockGenerator
	cfg      Config
}

// NewSynthesizer creates a Synthesizer. provider may be nil, in which case
// ModeLive returns ErrNoProvider.
func NewSynthesizer(provider llm.Provider, mock *MockGenerator, cfg Config) *Synthesizer {
	if mock == nil {
		mock = NewMockGenerator(nil)
	}
	return &Synthesizer{provider: provider, mock: mock, cfg: cfg}
}

// HasProvider reports whether live synthesis is available.
func (s *Synthesizer) HasProvider() bool {
	return s.provider != nil
}

// Synthesize returns exactly count responses for question. Errors from the
// generation call are returned as-is; falling back to mock data is the
// caller's decision.
func (s *Synthesizer) Synthesize(ctx context.Context, question string, count int, mode Mode) ([]StudentResponse, error) {
	q := Question{Text: question, NumberOfResponses: count}
	if err := q.Validate(); err != nil {
		return nil, err
	}

	switch mode {
	case ModeDemo:
		if out, ok := s.fromCatalog(question, count); ok {
			return out, nil
		}
		return s.mock.Generate(question, count), nil
	case ModeMock:
		return s.mock.Generate(question, count), nil
	case ModeLive:
		return s.generate(ctx, question, count)
	default:
		return nil, fmt.Errorf("unknown synthesis mode: %q", mode)
	}
}

// fromCatalog truncates or pads a curated batch to count. Padded mock
// responses continue the id sequence.
func (s *Synthesizer) fromCatalog(question string, count int) ([]StudentResponse, bool) {
	curated, ok := DemoResponses(question)
	if !ok {
		return nil, false
	}
	if count <= len(curated) {
		return curated[:count], true
	}
	extra := s.mock.GenerateFrom(question, count-len(curated), len(curated)+1)
	return append(curated, extra...), true
}

func (s *Synthesizer) generate(ctx context.Context, question string, count int) ([]StudentResponse, error) {
	if s.provider == nil {
		return nil, ErrNoProvider
	}

	ctx = llm.WithPurpose(ctx, llm.PurposeResponses)
	req := llm.Prompt(generationSystemPrompt, buildGenerationMessage(question, count),
		generationTokenBudget(count, s.cfg), s.cfg.Temperature)

	// A truncated reply still parses; the last answer is just cut short.
	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("generate student responses: %w", err)
	}

	answers := ParseResponses(resp.Text(), count)
	out := make([]StudentResponse, len(answers))
	for i, a := range answers {
		a = strings.TrimSpace(a)
		out[i] = StudentResponse{
			ID:      i + 1,
			Content: a,
			Quality: ClassifyQuality(a, question),
		}
	}
	return out, nil
}
