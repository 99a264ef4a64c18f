package components

import (
	"fmt"
	"math"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/studentsim/internal/ui/theme"
)

// ProgressBar is one horizontal bar with an optional fixed-width label on
// the left and a suffix on the right. Chart rendering draws one bar per
// data point.
type ProgressBar struct {
	Label       string
	LabelWidth  int
	Percent     float64 // 0..1, clamped when drawn
	ShowPercent bool
	Suffix      string
	Width       int // total width including label and suffix
}

// minBarCells keeps a bar visible however narrow the terminal gets.
const minBarCells = 4

// NewProgressBar returns a bar of the given total width.
func NewProgressBar(label string, percent float64, showPercent bool, width int) ProgressBar {
	return ProgressBar{Label: label, Percent: percent, ShowPercent: showPercent, Width: width}
}

func (p ProgressBar) View() string {
	var left, right string
	if p.Label != "" {
		style := theme.Body
		if p.LabelWidth > 0 {
			style = style.Width(p.LabelWidth).MaxWidth(p.LabelWidth)
		}
		left = style.Render(p.Label) + "  "
	}
	frac := math.Max(0, math.Min(1, p.Percent))
	if p.ShowPercent {
		right = theme.Hint.Render(fmt.Sprintf("  %3.0f%%", frac*100))
	}
	if p.Suffix != "" {
		right += theme.Hint.Render(p.Suffix)
	}

	cells := max(p.Width-lipgloss.Width(left)-lipgloss.Width(right), minBarCells)
	filled := int(math.Round(float64(cells) * frac))
	return left +
		theme.ProgressFilled.Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", cells-filled)) +
		right
}
