package response

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Placeholder fills slots the parser could not recover from the
// generation output.
const Placeholder = "I'm not sure how to answer this one. I would need to ask for guidance."

// minParsedLength is the shortest line or block (exclusive) kept by the
// line and paragraph strategies.
const minParsedLength = 10

var (
	numberedItemRe  = regexp.MustCompile(`(?m)^[ \t]*\d+(?:\.[ \t]*|[ \t]+)(.+?)[ \t\r]*$`)
	bareNumberRe    = regexp.MustCompile(`^\d+[.)]?$`)
	leadingNumberRe = regexp.MustCompile(`^(?:\d+[.)]|\(\d+\)|[-*•])\s*`)
	leadInRe        = regexp.MustCompile(`(?i)^(?:here (?:are|is)\b|here's\b|below are\b|the following\b|student responses?\s*:|student answers?\s*:|answers?\s*:)`)
	blankLineRe     = regexp.MustCompile(`\n[ \t\r]*\n`)
)

// parseStrategy turns raw generation output into candidate responses.
type parseStrategy struct {
	name  string
	parse func(raw string) []string
}

// parseStrategies are attempted in order. Each one replaces the previous
// attempt's result; the first reaching the expected count wins.
var parseStrategies = []parseStrategy{
	{name: "numbered", parse: parseNumbered},
	{name: "lines", parse: parseLines},
	{name: "paragraphs", parse: parseParagraphs},
}

// ParseResponses extracts exactly expected response strings from raw
// generation output. It never fails: missing entries are filled with
// Placeholder and surplus entries are dropped, preserving order.
func ParseResponses(raw string, expected int) []string {
	if expected <= 0 {
		return []string{}
	}

	var answers []string
	for _, s := range parseStrategies {
		answers = s.parse(raw)
		if len(answers) >= expected {
			break
		}
	}

	for len(answers) < expected {
		answers = append(answers, Placeholder)
	}
	return answers[:expected]
}

func parseNumbered(raw string) []string {
	var out []string
	for _, m := range numberedItemRe.FindAllStringSubmatch(raw, -1) {
		if content := strings.TrimSpace(m[1]); content != "" {
			out = append(out, content)
		}
	}
	return out
}

func parseLines(raw string) []string {
	var out []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || bareNumberRe.MatchString(line) || leadInRe.MatchString(line) {
			continue
		}
		line = strings.TrimSpace(leadingNumberRe.ReplaceAllString(line, ""))
		if utf8.RuneCountInString(line) > minParsedLength {
			out = append(out, line)
		}
	}
	return out
}

func parseParagraphs(raw string) []string {
	var out []string
	for _, block := range blankLineRe.Split(raw, -1) {
		block = strings.TrimSpace(block)
		block = strings.TrimSpace(leadingNumberRe.ReplaceAllString(block, ""))
		if utf8.RuneCountInString(block) > minParsedLength {
			out = append(out, block)
		}
	}
	return out
}
