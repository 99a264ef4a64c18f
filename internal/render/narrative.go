package render

import (
	"regexp"
	"strconv"
	"strings"
)

// rule inspects the whole text and either renders it or reports no match.
type rule func(text string, lines []string) ([]Block, bool)

// narrativeRules run in order; the first match renders the whole text.
var narrativeRules = []rule{
	studentRule,
	numberedRule,
	bulletRule,
	sectionRule,
	paragraphRule,
}

// Narrative structures free text that carries no envelope.
func Narrative(text string) []Block {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	lines := nonEmptyLines(text)
	for _, r := range narrativeRules {
		if blocks, ok := r(text, lines); ok {
			return blocks
		}
	}
	return nil
}

// Per-student feedback.

// studentLineRes detect a student marker anywhere on a line.
var studentLineRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\*\*Student\s*\d+\*\*:`),
	regexp.MustCompile(`(?i)__Student\s*\d+__:`),
	regexp.MustCompile(`(?i)Student\s*\d+:`),
	regexp.MustCompile(`(?i)\*\*Student\s*\d+\s*\*\*`),
	regexp.MustCompile(`(?i)Student\s*\d+\s*\*\*:`),
}

// studentMarkerRes are tried in order; the first spelling with at least
// one match is used to cut the text into cards.
var studentMarkerRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\*\*Student\s*(\d+)\*\*:\s*`),
	regexp.MustCompile(`(?i)__Student\s*(\d+)__:\s*`),
	regexp.MustCompile(`(?i)Student\s*(\d+):\s*`),
	regexp.MustCompile(`(?i)\*\*Student\s*(\d+)\s*\*\*\s*-?\s*`),
}

var studentMentionRe = regexp.MustCompile(`(?i)Student\s*\d+`)

func studentRule(text string, lines []string) ([]Block, bool) {
	if !anyLineMatches(lines, studentLineRes) {
		return nil, false
	}
	for _, re := range studentMarkerRes {
		if blocks := studentCards(text, re); blocks != nil {
			return blocks, true
		}
	}
	return mixedContent(text), true
}

// studentCards emits one card per marker. A card runs from its marker to
// the next marker of the same spelling or the end of the text. Text before
// the first marker is kept as paragraphs.
func studentCards(text string, marker *regexp.Regexp) []Block {
	matches := marker.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return nil
	}

	blocks := paragraphs(text[:matches[0][0]], false)
	for i, m := range matches {
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		n, _ := strconv.Atoi(text[m[2]:m[3]])
		blocks = append(blocks, StudentCard{
			Number: n,
			Spans:  Inline(strings.TrimSpace(text[m[1]:end])),
		})
	}
	return blocks
}

// mixedContent renders blank-line paragraphs, highlighting those that
// mention a student.
func mixedContent(text string) []Block {
	return paragraphs(text, true)
}

// Numbered lists.

var numberedLineRes = []*regexp.Regexp{
	regexp.MustCompile(`^\d+\.`),
	regexp.MustCompile(`^\d+\)\s`),
	regexp.MustCompile(`^\(\d+\)`),
	regexp.MustCompile(`^\d+\s*[-–—]\s*`),
}

var numberedItemRes = []*regexp.Regexp{
	regexp.MustCompile(`^\d+\.\s*(.*)$`),
	regexp.MustCompile(`^\d+\)\s*(.*)$`),
	regexp.MustCompile(`^\(\d+\)\s*(.*)$`),
	regexp.MustCompile(`^\d+\s*[-–—]\s*(.*)$`),
}

func numberedRule(_ string, lines []string) ([]Block, bool) {
	if !anyLineMatches(lines, numberedLineRes) {
		return nil, false
	}
	return collectList(lines, numberedItemRes, true), true
}

// Bulleted lists.

// A dash or asterisk only counts as a bullet when followed by whitespace,
// so lines opening with bold text or a rule are not lists.
var bulletLineRes = []*regexp.Regexp{
	regexp.MustCompile(`^[-*]\s`),
	regexp.MustCompile(`^[•·‣⁃→➤➢➣✓✗◦]`),
}

var bulletItemRes = []*regexp.Regexp{
	regexp.MustCompile(`^[-*]\s+(.*)$`),
	regexp.MustCompile(`^[•·‣⁃→➤➢➣✓✗◦]\s*(.*)$`),
}

func bulletRule(_ string, lines []string) ([]Block, bool) {
	if !anyLineMatches(lines, bulletLineRes) {
		return nil, false
	}
	return collectList(lines, bulletItemRes, false), true
}

// collectList starts an item at every marker line and appends other lines
// to the current item. Lines before the first item become a paragraph.
func collectList(lines []string, items []*regexp.Regexp, ordered bool) []Block {
	var (
		lead    []string
		entries []string
		current = -1
	)
	for _, line := range lines {
		if body, ok := matchItem(line, items); ok {
			entries = append(entries, body)
			current = len(entries) - 1
			continue
		}
		if current < 0 {
			lead = append(lead, line)
			continue
		}
		entries[current] = strings.TrimSpace(entries[current] + " " + line)
	}

	var blocks []Block
	if len(lead) > 0 {
		blocks = append(blocks, Paragraph{Spans: Inline(strings.Join(lead, " "))})
	}
	list := List{Ordered: ordered}
	for _, e := range entries {
		list.Items = append(list.Items, Inline(strings.TrimSpace(e)))
	}
	return append(blocks, list)
}

func matchItem(line string, items []*regexp.Regexp) (string, bool) {
	for _, re := range items {
		if m := re.FindStringSubmatch(line); m != nil {
			return m[1], true
		}
	}
	return "", false
}

// Titled sections.

var sectionRe = regexp.MustCompile(`(?i)^(Question|Analysis|Summary|Conclusion|Overview|Introduction):\s*(.*)$`)

func sectionRule(_ string, lines []string) ([]Block, bool) {
	found := false
	for _, l := range lines {
		if sectionRe.MatchString(l) {
			found = true
			break
		}
	}
	if !found {
		return nil, false
	}

	var (
		blocks []Block
		lead   []string
		title  string
		body   []string
		open   bool
	)
	flush := func() {
		if open {
			blocks = append(blocks, Section{Title: title, Spans: Inline(strings.Join(body, "\n"))})
		}
	}
	for _, l := range lines {
		if m := sectionRe.FindStringSubmatch(l); m != nil {
			flush()
			title, body, open = sectionTitle(m[1]), nil, true
			if first := strings.TrimSpace(m[2]); first != "" {
				body = append(body, first)
			}
			continue
		}
		if !open {
			lead = append(lead, l)
			continue
		}
		body = append(body, l)
	}
	flush()

	if len(lead) > 0 {
		blocks = append([]Block{Paragraph{Spans: Inline(strings.Join(lead, "\n"))}}, blocks...)
	}
	return blocks, true
}

func sectionTitle(label string) string {
	label = strings.ToLower(label)
	return strings.ToUpper(label[:1]) + label[1:]
}

// Paragraphs.

func paragraphRule(text string, _ []string) ([]Block, bool) {
	return paragraphs(text, false), true
}

var blankLineRe = regexp.MustCompile(`\n\s*\n`)

// paragraphs splits text on blank lines. With highlight set, paragraphs
// that mention a student are marked.
func paragraphs(text string, highlight bool) []Block {
	var blocks []Block
	for _, p := range blankLineRe.Split(text, -1) {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		blocks = append(blocks, Paragraph{
			Spans:     Inline(p),
			Highlight: highlight && studentMentionRe.MatchString(p),
		})
	}
	return blocks
}

func nonEmptyLines(text string) []string {
	var out []string
	for _, l := range strings.Split(text, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}

func anyLineMatches(lines []string, res []*regexp.Regexp) bool {
	for _, l := range lines {
		for _, re := range res {
			if re.MatchString(l) {
				return true
			}
		}
	}
	return false
}
