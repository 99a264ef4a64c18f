// Package theme holds the colors and text styles shared by every screen.
package theme

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studentsim/internal/response"
)

// Palette. A chalkboard slate background with indigo for navigation and
// the quality traffic light (green, amber, rose) for grading.
var (
	Primary   = lipgloss.Color("#6366F1")
	Secondary = lipgloss.Color("#14B8A6")
	Accent    = lipgloss.Color("#F59E0B")
	Success   = lipgloss.Color("#22C55E")
	Error     = lipgloss.Color("#F43F5E")
	Text      = lipgloss.Color("#F8FAFC")
	TextDim   = lipgloss.Color("#94A3B8")
	Chalk     = lipgloss.Color("#0F172A")
	BgCard    = lipgloss.Color("#1E293B")
	Border    = lipgloss.Color("#334155")
)

var (
	Title    = lipgloss.NewStyle().Bold(true).Foreground(Primary).Align(lipgloss.Center)
	Subtitle = lipgloss.NewStyle().Foreground(TextDim).Align(lipgloss.Center)
	Body     = lipgloss.NewStyle().Foreground(Text)
	Hint     = lipgloss.NewStyle().Foreground(TextDim).Italic(true)
	Heading  = lipgloss.NewStyle().Bold(true).Foreground(Secondary)

	Selected   = lipgloss.NewStyle().Bold(true).Foreground(Primary)
	Unselected = lipgloss.NewStyle().Foreground(Text)
	ErrorText  = lipgloss.NewStyle().Bold(true).Foreground(Error)

	ProgressFilled = lipgloss.NewStyle().Background(Secondary)
	ProgressEmpty  = lipgloss.NewStyle().Background(Border)
)

// Boxes.
var (
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)

	// StudentCard frames the feedback addressed to one student.
	StudentCard = Card.BorderForeground(Secondary)

	// Highlight is a left rule for paragraphs that name a student.
	Highlight = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder(), false, false, false, true).
			BorderForeground(Accent).
			PaddingLeft(1)

	// Banner announces that answers came from the offline generator.
	Banner = lipgloss.NewStyle().
		Foreground(Chalk).
		Background(Accent).
		Padding(0, 1)
)

// QualityStyle colors a quality tag like a traffic light.
func QualityStyle(q response.Quality) lipgloss.Style {
	color := TextDim
	switch q {
	case response.QualityStrong:
		color = Success
	case response.QualityAverage:
		color = Accent
	case response.QualityWeak:
		color = Error
	}
	return lipgloss.NewStyle().Bold(true).Foreground(color)
}
