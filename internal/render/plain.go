package render

import (
	"fmt"
	"strconv"
	"strings"
)

// Plain writes doc as markdown-flavoured text. Pie charts show each slice
// as a share of the total.
func Plain(doc *Document) string {
	if doc == nil {
		return ""
	}
	var parts []string
	for _, b := range doc.Blocks {
		if s := plainBlock(b); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n\n")
}

// Markdown restores emphasis markers around styled spans.
func Markdown(spans []Span) string {
	var sb strings.Builder
	for _, s := range spans {
		switch s.Style {
		case StyleBold:
			sb.WriteString("**" + s.Text + "**")
		case StyleItalic:
			sb.WriteString("*" + s.Text + "*")
		default:
			sb.WriteString(s.Text)
		}
	}
	return sb.String()
}

func plainBlock(b Block) string {
	switch v := b.(type) {
	case Paragraph:
		return Markdown(v.Spans)
	case StudentCard:
		return fmt.Sprintf("**Student %d**: %s", v.Number, Markdown(v.Spans))
	case List:
		return plainList(v.Ordered, v.Items)
	case Section:
		return fmt.Sprintf("%s:\n%s", v.Title, Markdown(v.Spans))
	case Heading:
		return "# " + v.Title
	case Chart:
		return plainChart(v)
	case Unsupported:
		return fmt.Sprintf("[unsupported chart type %q: %s]", v.ChartType, v.Title)
	case Card:
		var sb strings.Builder
		if v.Title != "" {
			sb.WriteString("## " + v.Title + "\n")
		}
		if len(v.Items) > 0 {
			sb.WriteString(plainList(false, v.Items))
		} else {
			sb.WriteString(Markdown(v.Spans))
		}
		return strings.TrimRight(sb.String(), "\n")
	}
	return ""
}

func plainList(ordered bool, items [][]Span) string {
	lines := make([]string, 0, len(items))
	for i, it := range items {
		marker := "-"
		if ordered {
			marker = strconv.Itoa(i+1) + "."
		}
		lines = append(lines, marker+" "+Markdown(it))
	}
	return strings.Join(lines, "\n")
}

func plainChart(c Chart) string {
	var sb strings.Builder
	title := c.Title
	if title == "" {
		title = "Chart"
	}
	fmt.Fprintf(&sb, "%s (%s chart)", title, c.Type)
	for _, p := range c.Points {
		fmt.Fprintf(&sb, "\n- %s: %s", p.Label, formatValue(p.Value))
		if c.Type == ChartPie {
			fmt.Fprintf(&sb, " (%.0f%%)", Share(c.Points, p.Value))
		}
		if p.Description != "" {
			sb.WriteString(" " + p.Description)
		}
	}
	if c.Insights != "" {
		sb.WriteString("\n" + c.Insights)
	}
	return sb.String()
}

// Share returns v as a percentage of the sum of points, or 0 when the sum
// is not positive.
func Share(points []DataPoint, v float64) float64 {
	total := 0.0
	for _, p := range points {
		total += p.Value
	}
	if total <= 0 {
		return 0
	}
	return v / total * 100
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
