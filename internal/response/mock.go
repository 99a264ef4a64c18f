package response

import (
	"math/rand/v2"
	"strings"
	"sync"
)

// Target share of each tier in a mock batch, by position before shuffling.
// Whatever remains after strong and average is weak.
const (
	strongShare  = 0.3
	averageShare = 0.4
)

var mockTemplates = map[Quality][]string{
	QualityStrong: {
		"This is a well-structured answer that demonstrates deep understanding of the concept. The student shows clear reasoning and provides relevant examples to support their explanation.",
		"The response shows excellent comprehension with detailed analysis. The student connects multiple concepts and demonstrates critical thinking skills.",
		"This answer reflects thorough understanding and ability to apply knowledge. The explanation is clear, logical, and shows good grasp of underlying principles.",
	},
	QualityAverage: {
		"This answer shows basic understanding but lacks depth. The explanation covers the main points but could benefit from more detail and examples.",
		"The response demonstrates adequate knowledge but misses some key connections. The reasoning is generally sound but somewhat superficial.",
		"This shows reasonable comprehension with some gaps. The student understands the basics but struggles with more complex aspects.",
	},
	QualityWeak: {
		"This response shows limited understanding with several misconceptions. The explanation is unclear and contains factual errors.",
		"The answer demonstrates confusion about key concepts. There are significant gaps in knowledge and reasoning.",
		"This shows minimal comprehension with major misunderstandings. The response lacks coherent structure and contains inaccuracies.",
	},
}

// subjectClauses are appended to every mock response when the question
// mentions one of the keywords.
var subjectClauses = []struct {
	keywords []string
	clause   string
}{
	{
		keywords: []string{"math", "equation"},
		clause:   " The mathematical reasoning demonstrates various levels of understanding.",
	},
}

// TierCounts splits count into strong, average and weak positions.
func TierCounts(count int) (strong, average, weak int) {
	if count <= 0 {
		return 0, 0, 0
	}
	strong = int(float64(count) * strongShare)
	average = int(float64(count) * averageShare)
	weak = count - strong - average
	return strong, average, weak
}

// MockGenerator produces template-based responses without an LLM.
// It is safe for concurrent use.
type MockGenerator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewMockGenerator creates a MockGenerator drawing from rng. A nil rng
// uses a randomly seeded source.
func NewMockGenerator(rng *rand.Rand) *MockGenerator {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &MockGenerator{rng: rng}
}

// Generate returns count responses with ids 1..count in shuffled order.
func (g *MockGenerator) Generate(question string, count int) []StudentResponse {
	return g.GenerateFrom(question, count, 1)
}

// GenerateFrom returns count responses with ids firstID..firstID+count-1.
// Tiers are assigned by position, then the whole batch is shuffled so id
// order and quality are decorrelated from slice order.
func (g *MockGenerator) GenerateFrom(question string, count, firstID int) []StudentResponse {
	if count <= 0 {
		return []StudentResponse{}
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	strong, average, _ := TierCounts(count)
	clause := subjectClause(question)

	out := make([]StudentResponse, count)
	for i := range count {
		tier := QualityWeak
		switch {
		case i < strong:
			tier = QualityStrong
		case i < strong+average:
			tier = QualityAverage
		}
		templates := mockTemplates[tier]
		out[i] = StudentResponse{
			ID:      firstID + i,
			Content: templates[g.rng.IntN(len(templates))] + clause,
			Quality: tier,
		}
	}

	g.rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

func subjectClause(question string) string {
	lower := strings.ToLower(question)
	var b strings.Builder
	for _, s := range subjectClauses {
		if containsAny(lower, s.keywords...) {
			b.WriteString(s.clause)
		}
	}
	return b.String()
}
