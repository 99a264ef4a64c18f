package render

import "regexp"

var (
	boldRe   = regexp.MustCompile(`\*\*(.+?)\*\*|__(.+?)__`)
	italicRe = regexp.MustCompile(`\*(.+?)\*|_(.+?)_`)
)

// Inline splits text into styled spans. Bold markers (** and __) are
// resolved first; italic markers (* and _) are only looked for in the
// text between bold runs, so the two never overlap. Empty spans are
// dropped.
func Inline(text string) []Span {
	var spans []Span
	for _, seg := range splitStyled(text, boldRe, StyleBold) {
		if seg.Style == StyleBold {
			spans = appendSpan(spans, seg)
			continue
		}
		for _, inner := range splitStyled(seg.Text, italicRe, StyleItalic) {
			spans = appendSpan(spans, inner)
		}
	}
	return spans
}

// splitStyled cuts text at every match of re. Matched text (without its
// markers) gets style; the rest is plain.
func splitStyled(text string, re *regexp.Regexp, style Style) []Span {
	var out []Span
	last := 0
	for _, m := range re.FindAllStringSubmatchIndex(text, -1) {
		out = append(out, Span{Text: text[last:m[0]]})
		inner := ""
		switch {
		case m[2] >= 0:
			inner = text[m[2]:m[3]]
		case m[4] >= 0:
			inner = text[m[4]:m[5]]
		}
		out = append(out, Span{Text: inner, Style: style})
		last = m[1]
	}
	return append(out, Span{Text: text[last:]})
}

func appendSpan(spans []Span, s Span) []Span {
	if s.Text == "" {
		return spans
	}
	if n := len(spans); n > 0 && spans[n-1].Style == s.Style {
		spans[n-1].Text += s.Text
		return spans
	}
	return append(spans, s)
}
