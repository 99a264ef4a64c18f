package analysis

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/abhisek/studentsim/internal/response"
)

var analysisTemplates = []string{
	"Based on these responses, I can identify several patterns: The stronger answers demonstrate clear understanding while weaker responses show common misconceptions about...",
	"These student responses reveal varying levels of comprehension. Key areas for improvement include...",
	"The responses indicate that students generally understand the basic concepts, but struggle with...",
}

// templateSuffixes extend the default answer; the first keyword found wins.
var templateSuffixes = []struct {
	keyword string
	suffix  string
}{
	{"misconception", " Common misconceptions include oversimplification of complex concepts and difficulty connecting theoretical knowledge to practical applications."},
	{"improve", " Students would benefit from more concrete examples, guided practice, and scaffolded learning approaches."},
	{"pattern", " The response patterns suggest varying levels of prior knowledge and different learning styles among students."},
}

var feedbackTypes = []string{
	"demonstrates solid understanding with clear explanations",
	"shows basic grasp but could benefit from more specific examples",
	"displays creative thinking with some misconceptions to address",
	"exhibits good foundational knowledge with room for deeper analysis",
	"presents interesting perspective that needs factual refinement",
}

// Keywords that route a follow-up to a canned shape, checked in order.
var (
	chartKeywords      = []string{"chart", "visualization", "distribution"}
	dashboardKeywords  = []string{"dashboard", "comprehensive", "overview"}
	individualKeywords = []string{"individual", "each student", "student feedback"}
)

// MockAnalyzer returns canned analyses routed on keywords in the
// follow-up. It is safe for concurrent use.
type MockAnalyzer struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewMockAnalyzer creates a MockAnalyzer. A nil rng uses a randomly seeded
// source.
func NewMockAnalyzer(rng *rand.Rand) *MockAnalyzer {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &MockAnalyzer{rng: rng}
}

// Analyze never fails for a non-empty follow-up.
func (m *MockAnalyzer) Analyze(_ context.Context, _ string, responses []response.StudentResponse, followUp string) (response.Analysis, error) {
	followUp = strings.TrimSpace(followUp)
	if followUp == "" {
		return response.Analysis{}, ErrEmptyFollowUp
	}

	q := strings.ToLower(followUp)
	var text string
	switch {
	case containsAny(q, chartKeywords):
		text = mockChart(len(responses))
	case containsAny(q, dashboardKeywords):
		text = mockDashboard(len(responses))
	case containsAny(q, individualKeywords):
		text = mockIndividual(responses)
	default:
		text = m.mockNarrative(q)
	}
	return response.Analysis{Question: followUp, Response: text}, nil
}

func mockChart(n int) string {
	return fmt.Sprintf("Here's a visual breakdown of the student responses:\n\n```json\n"+`{
  "type": "CHART_DATA",
  "chartType": "pie",
  "title": "Understanding Level Distribution",
  "data": [
    {"label": "Strong Understanding", "value": %d, "description": "Students with comprehensive grasp"},
    {"label": "Developing Understanding", "value": %d, "description": "Students with basic concepts but missing details"},
    {"label": "Needs Support", "value": %d, "description": "Students requiring additional instruction"}
  ],
  "insights": "Most students demonstrate developing understanding, with opportunities for targeted support in specific areas."
}`+"\n```",
		share(n, 0.3), share(n, 0.5), int(math.Ceil(float64(n)*0.2)))
}

func mockDashboard(n int) string {
	return fmt.Sprintf("```json\n"+`{
  "type": "DASHBOARD",
  "title": "Student Response Analysis Dashboard",
  "components": [
    {
      "type": "summary",
      "title": "Overall Assessment",
      "content": "Analysis of %d student responses reveals varied understanding levels with clear patterns in misconceptions and strengths."
    },
    {
      "type": "chart",
      "chartType": "bar",
      "title": "Common Themes",
      "data": [
        {"label": "Correct Core Concepts", "value": %d},
        {"label": "Partial Understanding", "value": %d},
        {"label": "Misconceptions Present", "value": %d}
      ]
    },
    {
      "type": "insights",
      "title": "Key Learning Insights",
      "items": [
        "Students grasp fundamental concepts but struggle with applications",
        "Common vocabulary gaps observed across multiple responses",
        "Evidence-based reasoning needs development in most responses"
      ]
    },
    {
      "type": "recommendations",
      "title": "Teaching Recommendations",
      "items": [
        "Implement guided practice sessions for application skills",
        "Create vocabulary scaffolding activities",
        "Design think-aloud sessions to model reasoning processes",
        "Provide multiple examples connecting theory to practice"
      ]
    }
  ]
}`+"\n```",
		n, share(n, 0.7), share(n, 0.4), share(n, 0.3))
}

func mockIndividual(responses []response.StudentResponse) string {
	var b strings.Builder
	b.WriteString("Here's individual feedback for each student:\n\n")
	for i, r := range responses {
		fmt.Fprintf(&b, "**Student %d**: This response %s. Consider encouraging more detailed explanations and connections to broader concepts.\n\n",
			r.ID, feedbackTypes[i%len(feedbackTypes)])
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *MockAnalyzer) mockNarrative(q string) string {
	m.mu.Lock()
	text := analysisTemplates[m.rng.IntN(len(analysisTemplates))]
	m.mu.Unlock()

	for _, s := range templateSuffixes {
		if strings.Contains(q, s.keyword) {
			return text + s.suffix
		}
	}
	return text
}

func share(n int, f float64) int {
	return int(math.Floor(float64(n) * f))
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
