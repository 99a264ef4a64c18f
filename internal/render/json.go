package render

import (
	"encoding/json"
)

type spanJSON struct {
	Text  string `json:"text"`
	Style string `json:"style,omitempty"`
}

// blockJSON is the wire form of every block kind, told apart by Kind.
type blockJSON struct {
	Kind      string       `json:"kind"`
	Title     string       `json:"title,omitempty"`
	Spans     []spanJSON   `json:"spans,omitempty"`
	Items     [][]spanJSON `json:"items,omitempty"`
	Highlight bool         `json:"highlight,omitempty"`
	Number    int          `json:"number,omitempty"`
	Ordered   bool         `json:"ordered,omitempty"`
	ChartType string       `json:"chartType,omitempty"`
	Points    []DataPoint  `json:"data,omitempty"`
	Insights  string       `json:"insights,omitempty"`
	CardKind  CardKind     `json:"cardKind,omitempty"`
}

// MarshalJSON encodes the document as {"blocks": [...]} with a "kind" on
// each block.
func (d *Document) MarshalJSON() ([]byte, error) {
	blocks := make([]blockJSON, 0, len(d.Blocks))
	for _, b := range d.Blocks {
		blocks = append(blocks, encodeBlock(b))
	}
	return json.Marshal(struct {
		Blocks []blockJSON `json:"blocks"`
	}{blocks})
}

func encodeBlock(b Block) blockJSON {
	switch v := b.(type) {
	case Paragraph:
		return blockJSON{Kind: "paragraph", Spans: encodeSpans(v.Spans), Highlight: v.Highlight}
	case StudentCard:
		return blockJSON{Kind: "student", Number: v.Number, Spans: encodeSpans(v.Spans)}
	case List:
		return blockJSON{Kind: "list", Ordered: v.Ordered, Items: encodeItems(v.Items)}
	case Section:
		return blockJSON{Kind: "section", Title: v.Title, Spans: encodeSpans(v.Spans)}
	case Chart:
		return blockJSON{Kind: "chart", ChartType: string(v.Type), Title: v.Title, Points: v.Points, Insights: v.Insights}
	case Unsupported:
		return blockJSON{Kind: "unsupported", ChartType: v.ChartType, Title: v.Title}
	case Card:
		return blockJSON{Kind: "card", CardKind: v.Kind, Title: v.Title, Spans: encodeSpans(v.Spans), Items: encodeItems(v.Items)}
	case Heading:
		return blockJSON{Kind: "heading", Title: v.Title}
	}
	return blockJSON{Kind: "unknown"}
}

func encodeSpans(spans []Span) []spanJSON {
	if len(spans) == 0 {
		return nil
	}
	out := make([]spanJSON, len(spans))
	for i, s := range spans {
		out[i] = spanJSON{Text: s.Text, Style: s.Style.String()}
	}
	return out
}

func encodeItems(items [][]Span) [][]spanJSON {
	if len(items) == 0 {
		return nil
	}
	out := make([][]spanJSON, len(items))
	for i, it := range items {
		out[i] = encodeSpans(it)
	}
	return out
}

// String names the style; plain is empty.
func (s Style) String() string {
	switch s {
	case StyleBold:
		return "bold"
	case StyleItalic:
		return "italic"
	}
	return ""
}
