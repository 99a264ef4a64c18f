package response

import (
	"strings"
	"unicode/utf8"
)

// qualityRule adjusts the score when any of its phrases appears in the
// lowercased response.
type qualityRule struct {
	phrases []string
	weight  int
}

var qualityRules = []qualityRule{
	{phrases: []string{"because", "therefore", "however"}, weight: 1},
	{phrases: []string{"for example", "such as"}, weight: 1},
	{phrases: []string{"in conclusion", "overall"}, weight: 1},
	{phrases: []string{"i think maybe", "not sure", "i guess"}, weight: -1},
	{phrases: []string{"idk", "don't know"}, weight: -2},
	{phrases: []string{"boring", "stupid", "dumb"}, weight: -1},
}

// ScoreResponse computes the heuristic quality score of a response.
// The question is accepted for future question-aware rules and is
// currently unused.
func ScoreResponse(text, question string) int {
	_ = question
	lower := strings.ToLower(text)
	length := utf8.RuneCountInString(text)

	score := 0
	switch {
	case length > 100:
		score += 2
	case length > 50:
		score++
	}
	if length < 20 {
		score -= 2
	}

	for _, r := range qualityRules {
		if containsAny(lower, r.phrases...) {
			score += r.weight
		}
	}

	// Enumeration needs both markers.
	if strings.Contains(lower, "first") && strings.Contains(lower, "second") {
		score++
	}
	return score
}

// ClassifyQuality maps a response to a quality tier: a score of 3 or more
// is strong, 0 or less is weak, anything between is average.
func ClassifyQuality(text, question string) Quality {
	score := ScoreResponse(text, question)
	switch {
	case score >= 3:
		return QualityStrong
	case score <= 0:
		return QualityWeak
	default:
		return QualityAverage
	}
}

func containsAny(s string, patterns ...string) bool {
	for _, p := range patterns {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}
