package render

import (
	"encoding/json"
	"regexp"
	"strings"
)

var fenceRe = regexp.MustCompile("(?s)```([A-Za-z]*)[ \\t]*\\r?\\n(.*?)```")

// Render builds the presentation tree for an analysis answer. A fenced
// json block holding a chart or dashboard envelope is drawn first and the
// text around it follows as narrative. Anything else, including a fence
// that fails to decode, is rendered as narrative over the full text.
func Render(text string) *Document {
	doc := &Document{}
	if start, end, body, ok := findEnvelopeFence(text); ok {
		if env, ok := DecodeEnvelope(body); ok {
			doc.Blocks = envelopeBlocks(env)
			outside := joinOutside(text[:start], text[end:])
			doc.Blocks = append(doc.Blocks, Narrative(outside)...)
			return doc
		}
	}
	doc.Blocks = Narrative(text)
	return doc
}

// findEnvelopeFence locates the first fence tagged json, or untagged with
// a body that opens with a brace.
func findEnvelopeFence(text string) (start, end int, body string, ok bool) {
	for _, m := range fenceRe.FindAllStringSubmatchIndex(text, -1) {
		tag := strings.ToLower(text[m[2]:m[3]])
		b := strings.TrimSpace(text[m[4]:m[5]])
		if tag == "json" || (tag == "" && strings.HasPrefix(b, "{")) {
			return m[0], m[1], b, true
		}
	}
	return 0, 0, "", false
}

func joinOutside(before, after string) string {
	var parts []string
	for _, p := range []string{before, after} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, "\n\n")
}

func envelopeBlocks(env Envelope) []Block {
	switch e := env.(type) {
	case *ChartEnvelope:
		return []Block{chartBlock(*e)}
	case *DashboardEnvelope:
		var blocks []Block
		if t := strings.TrimSpace(e.Title); t != "" {
			blocks = append(blocks, Heading{Title: t})
		}
		for _, c := range e.Components {
			blocks = append(blocks, componentBlock(c))
		}
		return blocks
	}
	return nil
}

func chartBlock(c ChartEnvelope) Block {
	t := ChartType(strings.ToLower(strings.TrimSpace(c.ChartType)))
	if !t.Supported() {
		return Unsupported{ChartType: c.ChartType, Title: c.Title}
	}
	return Chart{Type: t, Title: c.Title, Points: c.Data, Insights: c.Insights}
}

func componentBlock(c Component) Block {
	switch v := c.(type) {
	case SummaryComponent:
		return Card{Kind: CardSummary, Title: v.Title, Spans: Inline(v.Content)}
	case ChartComponent:
		return chartBlock(v.Chart)
	case InsightsComponent:
		return Card{Kind: CardInsights, Title: v.Title, Items: inlineItems(v.Items)}
	case RecommendationsComponent:
		return Card{Kind: CardRecommendations, Title: v.Title, Items: inlineItems(v.Items)}
	case UnknownComponent:
		return Card{Kind: CardGeneric, Title: v.Title, Spans: Inline(genericContent(v.Raw))}
	}
	return Card{Kind: CardGeneric}
}

func inlineItems(items []string) [][]Span {
	out := make([][]Span, 0, len(items))
	for _, it := range items {
		out = append(out, Inline(it))
	}
	return out
}

// genericContent shows the content field when it is a string and the raw
// component otherwise.
func genericContent(raw json.RawMessage) string {
	var c struct {
		Content any `json:"content"`
	}
	if err := json.Unmarshal(raw, &c); err == nil {
		switch v := c.Content.(type) {
		case string:
			return v
		case nil:
		default:
			if b, err := json.Marshal(v); err == nil {
				return string(b)
			}
		}
	}
	return string(raw)
}
