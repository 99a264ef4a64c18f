// Package docview draws a rendered analysis document for the terminal.
package docview

import (
	"fmt"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/studentsim/internal/render"
	"github.com/abhisek/studentsim/internal/ui/components"
	"github.com/abhisek/studentsim/internal/ui/theme"
)

const chartLabelWidth = 18

// View renders doc at the given width. Blocks are separated by a blank line.
func View(doc *render.Document, width int) string {
	if doc == nil || len(doc.Blocks) == 0 {
		return theme.Hint.Render("Nothing to show.")
	}
	parts := make([]string, 0, len(doc.Blocks))
	for _, b := range doc.Blocks {
		parts = append(parts, block(b, width))
	}
	return strings.Join(parts, "\n\n")
}

func block(b render.Block, width int) string {
	switch v := b.(type) {
	case render.Paragraph:
		text := Spans(v.Spans)
		if v.Highlight {
			return theme.Highlight.Width(width).Render(text)
		}
		return theme.Body.Width(width).Render(text)
	case render.StudentCard:
		label := theme.Heading.Render(fmt.Sprintf("Student %d", v.Number))
		return theme.StudentCard.Width(width).Render(label + "\n" + Spans(v.Spans))
	case render.List:
		return list(v.Ordered, v.Items, width)
	case render.Section:
		return theme.Heading.Render(v.Title) + "\n" + theme.Body.Width(width).Render(Spans(v.Spans))
	case render.Heading:
		return theme.Title.Width(width).Render(v.Title)
	case render.Chart:
		return chart(v, width)
	case render.Unsupported:
		msg := fmt.Sprintf("Unsupported chart type %q", v.ChartType)
		if v.Title != "" {
			msg += ": " + v.Title
		}
		return theme.Card.Width(width).Render(theme.ErrorText.Render(msg))
	case render.Card:
		return card(v, width)
	}
	return ""
}

// Spans styles each run by its emphasis.
func Spans(spans []render.Span) string {
	var sb strings.Builder
	for _, s := range spans {
		switch s.Style {
		case render.StyleBold:
			sb.WriteString(lipgloss.NewStyle().Bold(true).Render(s.Text))
		case render.StyleItalic:
			sb.WriteString(lipgloss.NewStyle().Italic(true).Render(s.Text))
		default:
			sb.WriteString(s.Text)
		}
	}
	return sb.String()
}

func list(ordered bool, items [][]render.Span, width int) string {
	lines := make([]string, 0, len(items))
	for i, it := range items {
		marker := "•"
		if ordered {
			marker = strconv.Itoa(i+1) + "."
		}
		prefix := lipgloss.NewStyle().Foreground(theme.Secondary).Render(marker) + " "
		body := theme.Body.Width(width - lipgloss.Width(prefix)).Render(Spans(it))
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, prefix, body))
	}
	return strings.Join(lines, "\n")
}

func card(c render.Card, width int) string {
	var sb strings.Builder
	if c.Title != "" {
		sb.WriteString(theme.Heading.Render(c.Title) + "\n")
	}
	inner := width - 4
	if len(c.Items) > 0 {
		sb.WriteString(list(false, c.Items, inner))
	} else {
		sb.WriteString(theme.Body.Width(inner).Render(Spans(c.Spans)))
	}
	style := theme.Card
	if c.Kind == render.CardSummary {
		style = style.BorderForeground(theme.Primary)
	}
	return style.Width(width).Render(sb.String())
}

// chart draws bar and pie charts as horizontal bars scaled to the largest
// value. Pie bars show each slice's share. Line charts keep source order
// and show the change from the previous point.
func chart(c render.Chart, width int) string {
	var sb strings.Builder
	title := c.Title
	if title == "" {
		title = "Chart"
	}
	sb.WriteString(theme.Heading.Render(title) + " " + theme.Hint.Render("("+string(c.Type)+" chart)"))

	peak := 0.0
	for _, p := range c.Points {
		if p.Value > peak {
			peak = p.Value
		}
	}
	for i, p := range c.Points {
		bar := components.NewProgressBar(p.Label, 0, false, width-4)
		bar.LabelWidth = chartLabelWidth
		switch c.Type {
		case render.ChartPie:
			share := render.Share(c.Points, p.Value)
			bar.Percent = share / 100
			bar.Suffix = fmt.Sprintf("  %s (%.0f%%)", formatValue(p.Value), share)
		default:
			if peak > 0 {
				bar.Percent = p.Value / peak
			}
			bar.Suffix = "  " + formatValue(p.Value)
			if c.Type == render.ChartLine && i > 0 {
				bar.Suffix += " " + delta(p.Value-c.Points[i-1].Value)
			}
		}
		sb.WriteString("\n" + bar.View())
		if p.Description != "" {
			sb.WriteString("\n" + strings.Repeat(" ", chartLabelWidth+2) + theme.Hint.Render(p.Description))
		}
	}
	if c.Insights != "" {
		sb.WriteString("\n\n" + theme.Body.Width(width-4).Render(c.Insights))
	}
	return theme.Card.Width(width).Render(sb.String())
}

func delta(d float64) string {
	switch {
	case d > 0:
		return lipgloss.NewStyle().Foreground(theme.Success).Render("▲" + formatValue(d))
	case d < 0:
		return lipgloss.NewStyle().Foreground(theme.Error).Render("▼" + formatValue(-d))
	}
	return theme.Hint.Render("=")
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
