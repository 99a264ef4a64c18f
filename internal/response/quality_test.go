package response

import (
	"strings"
	"testing"
)

func TestClassifyQuality_ShortNoConnectives(t *testing.T) {
	text := "Plants eat sun." // 15 chars
	if got := ScoreResponse(text, ""); got > 0 {
		t.Fatalf("score = %d, want <= 0", got)
	}
	if got := ClassifyQuality(text, ""); got != QualityWeak {
		t.Errorf("got %q, want %q", got, QualityWeak)
	}
}

func TestClassifyQuality_LongWithConnectives(t *testing.T) {
	text := "Plants make glucose because chlorophyll captures light energy, for example in leaves. " +
		"This matters for every food chain on the planet and all life."
	if n := len(text); n <= 100 {
		t.Fatalf("fixture too short: %d", n)
	}
	if got := ScoreResponse(text, ""); got < 3 {
		t.Fatalf("score = %d, want >= 3", got)
	}
	if got := ClassifyQuality(text, ""); got != QualityStrong {
		t.Errorf("got %q, want %q", got, QualityStrong)
	}
}

func TestScoreResponse_Weights(t *testing.T) {
	pad := func(s string, n int) string {
		if len(s) >= n {
			return s
		}
		return s + strings.Repeat(".", n-len(s))
	}

	tests := []struct {
		name string
		text string
		want int
	}{
		{"medium length only", pad("a medium answer", 60), 1},
		{"long length only", pad("a long answer", 120), 2},
		{"between 20 and 50", pad("x", 30), 0},
		{"causal connective", pad("therefore yes", 30), 1},
		{"two causal words count once", pad("because therefore", 30), 1},
		{"exemplifying phrase", pad("such as this", 30), 1},
		{"enumeration needs both", pad("first of all", 30), 0},
		{"enumeration", pad("first this, second that", 30), 1},
		{"concluding phrase", pad("Overall it works", 30), 1},
		{"hedging", pad("I guess so", 30), -1},
		{"ignorance", pad("idk really", 30), -2},
		{"dismissive", pad("this is BORING", 30), -1},
		{"very short", "ok", -2},
		{"ignorance and hedging stack", pad("not sure, i don't know", 30), -3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ScoreResponse(tt.text, ""); got != tt.want {
				t.Errorf("ScoreResponse(%q) = %d, want %d", tt.text, got, tt.want)
			}
		})
	}
}

func TestClassifyQuality_Boundaries(t *testing.T) {
	// 60 chars (+1) with "because" (+1) = 2 -> average.
	avg := "because " + strings.Repeat("x", 52)
	if got := ClassifyQuality(avg, ""); got != QualityAverage {
		t.Errorf("score 2: got %q, want average", got)
	}

	// 60 chars (+1), "because" (+1), "such as" (+1) = 3 -> strong.
	strong := "because such as " + strings.Repeat("x", 44)
	if got := ClassifyQuality(strong, ""); got != QualityStrong {
		t.Errorf("score 3: got %q, want strong", got)
	}
}

func TestClassifyQuality_Deterministic(t *testing.T) {
	text := "First, the water evaporates. Second, it condenses into clouds. Overall it is a cycle."
	first := ClassifyQuality(text, "water cycle")
	for range 10 {
		if got := ClassifyQuality(text, "water cycle"); got != first {
			t.Fatalf("non-deterministic: %q then %q", first, got)
		}
	}
}
