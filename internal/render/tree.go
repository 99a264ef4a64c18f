// Package render turns the free-form text of an analysis answer into a
// presentation tree. Text that carries a chart or dashboard envelope is
// decoded into typed blocks; everything else is structured by a fixed
// cascade of narrative rules. Rendering never fails: the weakest outcome
// is a list of plain paragraphs.
package render

// Style is the emphasis applied to a run of text.
type Style int

const (
	StylePlain Style = iota
	StyleBold
	StyleItalic
)

// Span is a run of text with a single style.
type Span struct {
	Text  string
	Style Style
}

// Document is the root of a rendered analysis.
type Document struct {
	Blocks []Block
}

// Block is one of the block kinds below. The set is closed.
type Block interface {
	isBlock()
}

// Paragraph is prose. Highlight marks paragraphs that mention a student
// in mixed content.
type Paragraph struct {
	Spans     []Span
	Highlight bool
}

// StudentCard holds feedback addressed to one student.
type StudentCard struct {
	Number int
	Spans  []Span
}

// List is a bulleted or numbered list. Ordered lists are numbered from 1
// at display time regardless of the source numbering.
type List struct {
	Ordered bool
	Items   [][]Span
}

// Section is a titled block such as "Summary:".
type Section struct {
	Title string
	Spans []Span
}

// Chart is a bar, pie or line chart.
type Chart struct {
	Type     ChartType
	Title    string
	Points   []DataPoint
	Insights string
}

// Unsupported stands in for a chart whose type cannot be drawn.
type Unsupported struct {
	ChartType string
	Title     string
}

// CardKind distinguishes dashboard cards.
type CardKind string

const (
	CardSummary         CardKind = "summary"
	CardInsights        CardKind = "insights"
	CardRecommendations CardKind = "recommendations"
	CardGeneric         CardKind = "generic"
)

// Card is a dashboard component other than a chart. Summary and generic
// cards carry Spans; insights and recommendations carry Items.
type Card struct {
	Kind  CardKind
	Title string
	Spans []Span
	Items [][]Span
}

// Heading is the title of a dashboard.
type Heading struct {
	Title string
}

func (Paragraph) isBlock()   {}
func (StudentCard) isBlock() {}
func (List) isBlock()        {}
func (Section) isBlock()     {}
func (Chart) isBlock()       {}
func (Unsupported) isBlock() {}
func (Card) isBlock()        {}
func (Heading) isBlock()     {}

// Text concatenates the text of spans without markup.
func Text(spans []Span) string {
	n := 0
	for _, s := range spans {
		n += len(s.Text)
	}
	b := make([]byte, 0, n)
	for _, s := range spans {
		b = append(b, s.Text...)
	}
	return string(b)
}
