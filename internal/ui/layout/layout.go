// Package layout draws the frame around every screen and holds the sizing
// helpers screens share.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/studentsim/internal/ui/theme"
)

const (
	MinWidth  = 80
	MinHeight = 24

	// MaxReadingWidth caps prose so student answers stay readable on wide
	// terminals.
	MaxReadingWidth = 100
)

// KeyHint is one "key description" pair in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// IsTooSmall reports whether the terminal is below the supported size.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// ReadingWidth is the prose width for a screen of the given width.
func ReadingWidth(width int) int {
	return min(max(width-4, 20), MaxReadingWidth)
}

// Window cuts height lines out of content starting at offset. The offset
// is clamped so the last page is always full, and the clamped value is
// returned for the caller to store. A non-positive height shows all of it.
func Window(content string, offset, height int) (string, int) {
	lines := strings.Split(content, "\n")
	if height <= 0 || height >= len(lines) {
		return content, 0
	}
	offset = min(max(offset, 0), len(lines)-height)
	return strings.Join(lines[offset:offset+height], "\n"), offset
}

// RenderMinSizeMessage asks the user to enlarge the terminal.
func RenderMinSizeMessage(width, height int) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(fmt.Sprintf("Terminal too small!\n\nStudentSim needs at least %d x %d.\nCurrent: %d x %d",
			MinWidth, MinHeight, width, height))
}

// bar is the bordered strip used for both header and footer.
func bar(content string, width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(content)
}

// RenderHeader shows the app name, the screen title centered, and the
// generation mode on the right with a dot that is filled when a live
// model is connected.
func RenderHeader(title, status string, live bool, width int) string {
	brand := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("  StudentSim")
	center := theme.Body.Render(title)

	dot := lipgloss.NewStyle().Foreground(theme.TextDim).Render("○")
	if live {
		dot = lipgloss.NewStyle().Foreground(theme.Success).Render("●")
	}
	mode := dot + " " + lipgloss.NewStyle().Foreground(theme.Accent).Render(status)

	inner := max(width-4, 0)
	gapL := max((inner-lipgloss.Width(center))/2-lipgloss.Width(brand), 1)
	gapR := max(inner-lipgloss.Width(brand)-gapL-lipgloss.Width(center)-lipgloss.Width(mode), 1)

	return bar(brand+strings.Repeat(" ", gapL)+center+strings.Repeat(" ", gapR)+mode, width)
}

// RenderFooter lists key hints left to right.
func RenderFooter(hints []KeyHint, width int) string {
	keyStyle := theme.Body.Bold(true)
	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = keyStyle.Render(h.Key) + " " + lipgloss.NewStyle().Foreground(theme.TextDim).Render(h.Description)
	}
	return bar("  "+strings.Join(parts, "   "), width)
}

// RenderFrame stacks header, content and footer, padding the content to
// fill whatever height the two strips leave.
func RenderFrame(header, content, footer string, width, height int) string {
	body := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		lipgloss.NewStyle().Width(width).Height(body).Render(content),
		footer,
	)
}
