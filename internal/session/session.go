package session

import (
	"context"
	"errors"
	"math/rand/v2"

	"github.com/abhisek/studentsim/internal/analysis"
	"github.com/abhisek/studentsim/internal/llm"
	"github.com/abhisek/studentsim/internal/logger"
	"github.com/abhisek/studentsim/internal/response"
)

// ErrNoResponses is returned by Analyze before any batch was submitted.
var ErrNoResponses = errors.New("no student responses to analyze")

// Deps configures a Service.
type Deps struct {
	// Provider is used for live calls. Nil means offline: mock data only.
	Provider llm.Provider

	// Logger receives fallback warnings. Nil disables logging.
	Logger *logger.Logger

	// Rand seeds the mock generators. Nil uses a random seed.
	Rand *rand.Rand

	// Synth overrides the synthesizer settings.
	Synth *response.Config
}

// Service runs submissions and analyses. It keeps no session state of its
// own and is safe for concurrent use.
type Service struct {
	synth *response.Synthesizer
	live  analysis.Analyzer
	mock  analysis.Analyzer
	log   *logger.Logger
}

// NewService wires a Service from deps.
func NewService(d Deps) *Service {
	rng := d.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	analyzerRng := rand.New(rand.NewPCG(rng.Uint64(), rng.Uint64()))

	cfg := response.DefaultConfig()
	if d.Synth != nil {
		cfg = *d.Synth
	}

	log := d.Logger
	if log == nil {
		log = logger.Nop()
	}

	s := &Service{
		synth: response.NewSynthesizer(d.Provider, response.NewMockGenerator(rng), cfg),
		mock:  analysis.NewMockAnalyzer(analyzerRng),
		log:   log,
	}
	if d.Provider != nil {
		s.live = analysis.NewLLMAnalyzer(d.Provider)
	}
	return s
}

// Live reports whether live calls are configured.
func (s *Service) Live() bool {
	return s.live != nil
}

// Submit replaces the batch with responses to q and clears the analysis.
// Curated demo questions are served from the catalog. Otherwise the
// provider is used when configured; a failed live call is logged, turned
// into a banner and answered with mock data. Only validation errors are
// returned, with st unchanged.
func (s *Service) Submit(ctx context.Context, st State, q response.Question) (State, error) {
	if err := q.Validate(); err != nil {
		return st, err
	}

	next := State{Question: q.Text}

	mode, source := response.ModeMock, response.SourceMock
	switch {
	case isDemo(q.Text):
		mode, source = response.ModeDemo, response.SourceDemo
	case s.synth.HasProvider():
		mode, source = response.ModeLive, response.SourceLive
	}

	out, err := s.synth.Synthesize(ctx, q.Text, q.NumberOfResponses, mode)
	if err != nil && mode == response.ModeLive {
		s.log.Warn("live response generation failed, using mock data",
			"count", q.NumberOfResponses, "error", err)
		next.Banner = llm.UserMessage(err)
		source = response.SourceMock
		out, err = s.synth.Synthesize(ctx, q.Text, q.NumberOfResponses, response.ModeMock)
	}
	if err != nil {
		return st, err
	}

	next.Responses = out
	next.Source = source
	return next, nil
}

// Analyze answers followUp over the current batch and replaces any earlier
// analysis. A failed live call falls back to the mock analyzer with a
// banner.
func (s *Service) Analyze(ctx context.Context, st State, followUp string) (State, error) {
	if !st.HasResponses() {
		return st, ErrNoResponses
	}

	next := st
	next.Responses = cloneResponses(st.Responses)
	next.Banner = ""

	var (
		a   response.Analysis
		err error
	)
	if s.live != nil {
		a, err = s.live.Analyze(ctx, st.Question, st.Responses, followUp)
		if err != nil && !errors.Is(err, analysis.ErrEmptyFollowUp) {
			s.log.Warn("live analysis failed, using mock analysis", "error", err)
			next.Banner = llm.UserMessage(err)
			a, err = s.mock.Analyze(ctx, st.Question, st.Responses, followUp)
		}
	} else {
		a, err = s.mock.Analyze(ctx, st.Question, st.Responses, followUp)
	}
	if err != nil {
		return st, err
	}

	next.Analysis = &a
	return next, nil
}

func isDemo(question string) bool {
	_, ok := response.DemoResponses(question)
	return ok
}
