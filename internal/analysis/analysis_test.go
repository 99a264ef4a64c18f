package analysis

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/studentsim/internal/llm"
	"github.com/abhisek/studentsim/internal/render"
	"github.com/abhisek/studentsim/internal/response"
)

func batch(n int) []response.StudentResponse {
	out := make([]response.StudentResponse, n)
	for i := range out {
		out[i] = response.StudentResponse{ID: i + 1, Content: "answer " + string(rune('a'+i))}
	}
	return out
}

func TestBuildRequest(t *testing.T) {
	req := BuildRequest("What is photosynthesis?", batch(3), "Which students need help?")

	assert.Equal(t, MaxTokens, req.MaxTokens)
	assert.InDelta(t, Temperature, req.Temperature, 1e-9)
	assert.Contains(t, req.System, "**Student X**:")
	require.Len(t, req.Messages, 1)
	assert.Equal(t, llm.RoleUser, req.Messages[0].Role)

	msg := req.Messages[0].Content
	assert.Contains(t, msg, `"What is photosynthesis?"`)
	assert.Contains(t, msg, "Student 1: answer a\n\nStudent 2: answer b\n\nStudent 3: answer c")
	assert.Contains(t, msg, `"Which students need help?"`)
	assert.Contains(t, msg, "ALL 3 students (Student 1 through Student 3)")
	assert.Contains(t, msg, "CHART_DATA")
	assert.Contains(t, msg, "DASHBOARD")
	assert.Contains(t, msg, "FORMATTING INSTRUCTIONS")

	// Prompt order: question, responses, follow-up.
	assert.Less(t, strings.Index(msg, "photosynthesis"), strings.Index(msg, "Student 1:"))
	assert.Less(t, strings.Index(msg, "Student 3:"), strings.Index(msg, "Which students"))
}

func TestLLMAnalyzer(t *testing.T) {
	provider := llm.NewMockProvider(llm.MockResponse{
		Text: "  **Student 1**: solid.\n",
	})
	a := NewLLMAnalyzer(provider)

	got, err := a.Analyze(context.Background(), "Q?", batch(1), "  feedback please ")
	require.NoError(t, err)
	assert.Equal(t, response.Analysis{Question: "feedback please", Response: "**Student 1**: solid."}, got)
	require.Equal(t, 1, provider.CallCount())
	assert.Equal(t, MaxTokens, provider.Calls[0].MaxTokens)
}

func TestLLMAnalyzerErrors(t *testing.T) {
	t.Run("empty follow-up", func(t *testing.T) {
		provider := llm.NewMockProvider()
		_, err := NewLLMAnalyzer(provider).Analyze(context.Background(), "Q", batch(1), " ")
		assert.ErrorIs(t, err, ErrEmptyFollowUp)
		assert.Zero(t, provider.CallCount())
	})

	t.Run("provider error", func(t *testing.T) {
		provider := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrRateLimit{}})
		_, err := NewLLMAnalyzer(provider).Analyze(context.Background(), "Q", batch(1), "why?")
		var rl *llm.ErrRateLimit
		assert.True(t, errors.As(err, &rl))
	})

	t.Run("blank completion", func(t *testing.T) {
		provider := llm.NewMockProvider(llm.Reply("  \n"))
		_, err := NewLLMAnalyzer(provider).Analyze(context.Background(), "Q", batch(1), "why?")
		var inv *llm.ErrInvalidResponse
		assert.True(t, errors.As(err, &inv))
	})
}

func newTestMock() *MockAnalyzer {
	return NewMockAnalyzer(rand.New(rand.NewPCG(1, 2)))
}

func TestMockAnalyzerChart(t *testing.T) {
	got, err := newTestMock().Analyze(context.Background(), "Q", batch(10), "Show the distribution")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(got.Response, "Here's a visual breakdown"))

	doc := render.Render(got.Response)
	require.Len(t, doc.Blocks, 2)
	chart, ok := doc.Blocks[0].(render.Chart)
	require.True(t, ok, "got %T", doc.Blocks[0])
	assert.Equal(t, render.ChartPie, chart.Type)
	assert.Equal(t, "Understanding Level Distribution", chart.Title)
	require.Len(t, chart.Points, 3)
	assert.Equal(t, []float64{3, 5, 2}, []float64{chart.Points[0].Value, chart.Points[1].Value, chart.Points[2].Value})
}

func TestMockAnalyzerDashboard(t *testing.T) {
	got, err := newTestMock().Analyze(context.Background(), "Q", batch(10), "Give me a comprehensive view")
	require.NoError(t, err)

	doc := render.Render(got.Response)
	require.Len(t, doc.Blocks, 5)
	assert.Equal(t, render.Heading{Title: "Student Response Analysis Dashboard"}, doc.Blocks[0])
	assert.Equal(t, render.CardSummary, doc.Blocks[1].(render.Card).Kind)
	chart := doc.Blocks[2].(render.Chart)
	assert.Equal(t, []float64{7, 4, 3}, []float64{chart.Points[0].Value, chart.Points[1].Value, chart.Points[2].Value})
	assert.Len(t, doc.Blocks[3].(render.Card).Items, 3)
	assert.Len(t, doc.Blocks[4].(render.Card).Items, 4)
}

func TestMockAnalyzerIndividualCoversEveryStudent(t *testing.T) {
	responses := batch(7)
	got, err := newTestMock().Analyze(context.Background(), "Q", responses, "Give individual feedback")
	require.NoError(t, err)

	doc := render.Render(got.Response)
	var cards []int
	for _, b := range doc.Blocks {
		if c, ok := b.(render.StudentCard); ok {
			cards = append(cards, c.Number)
		}
	}
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7}, cards)
	assert.Contains(t, got.Response, "**Student 6**: This response demonstrates solid understanding")
}

func TestMockAnalyzerNarrativeSuffix(t *testing.T) {
	tests := []struct {
		followUp string
		suffix   string
	}{
		{"What misconceptions appear?", "Common misconceptions include"},
		{"How can they improve?", "Students would benefit from"},
		{"Any patterns?", "The response patterns suggest"},
	}
	for _, tt := range tests {
		got, err := newTestMock().Analyze(context.Background(), "Q", batch(2), tt.followUp)
		require.NoError(t, err)
		assert.Contains(t, got.Response, tt.suffix, tt.followUp)
	}

	got, err := newTestMock().Analyze(context.Background(), "Q", batch(2), "Thoughts?")
	require.NoError(t, err)
	assert.Contains(t, analysisTemplates, got.Response)
}

func TestMockAnalyzerRejectsEmptyFollowUp(t *testing.T) {
	_, err := newTestMock().Analyze(context.Background(), "Q", batch(2), "")
	assert.ErrorIs(t, err, ErrEmptyFollowUp)
}

func TestSuggestedPrompts(t *testing.T) {
	cats := SuggestedPrompts()
	require.Len(t, cats, 4)
	total := 0
	for _, c := range cats {
		total += len(c.Prompts)
		for _, p := range c.Prompts {
			assert.NotEmpty(t, p.Text)
		}
	}
	assert.Equal(t, 10, total)

	cats[0].Prompts[0].Text = "changed"
	assert.NotEqual(t, "changed", SuggestedPrompts()[0].Prompts[0].Text)
}
