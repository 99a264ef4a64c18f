// Package gallery browses published sessions and remixes them into a new
// workspace.
package gallery

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studentsim/internal/gallery"
	"github.com/abhisek/studentsim/internal/response"
	"github.com/abhisek/studentsim/internal/router"
	"github.com/abhisek/studentsim/internal/screen"
	sessionscreen "github.com/abhisek/studentsim/internal/screens/session"
	"github.com/abhisek/studentsim/internal/ui/layout"
	"github.com/abhisek/studentsim/internal/ui/theme"
)

const listLimit = 50

type galleryLoadedMsg struct {
	Entries []gallery.Entry
	Err     error
}

// GalleryScreen lists published sessions, newest first.
type GalleryScreen struct {
	svc      screen.Services
	entries  []gallery.Entry
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*GalleryScreen)(nil)
var _ screen.KeyHintProvider = (*GalleryScreen)(nil)

// New creates a new GalleryScreen.
func New(svc screen.Services) *GalleryScreen {
	return &GalleryScreen{
		svc:      svc,
		expanded: make(map[int]bool),
	}
}

func (s *GalleryScreen) Init() tea.Cmd {
	g := s.svc.Gallery
	return func() tea.Msg {
		if g == nil {
			return galleryLoadedMsg{}
		}
		entries, err := g.List(context.Background(), listLimit)
		return galleryLoadedMsg{Entries: entries, Err: err}
	}
}

func (s *GalleryScreen) Title() string {
	return "Gallery"
}

func (s *GalleryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Remix"},
		{Key: "Space", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *GalleryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case galleryLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.entries = msg.Entries
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, router.Pop()
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.entries)-1 {
				s.selected++
			}
			return s, nil
		case "space", " ":
			s.expanded[s.selected] = !s.expanded[s.selected]
			return s, nil
		case "enter":
			if s.selected < 0 || s.selected >= len(s.entries) {
				return s, nil
			}
			next := sessionscreen.FromState(s.svc, gallery.Remix(s.entries[s.selected]))
			return s, router.Replace(next)
		}
	}
	return s, nil
}

func (s *GalleryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading gallery...")
	}
	if len(s.entries) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  Nothing published yet. Publish a session with g.")
	}

	w := layout.ReadingWidth(width)
	var b strings.Builder
	b.WriteString("\n")
	selectedLine := 0

	for i, e := range s.entries {
		prefix := "  "
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			prefix = "▸ "
			style = style.Foreground(theme.Primary).Bold(true)
			selectedLine = strings.Count(b.String(), "\n")
		}

		meta := fmt.Sprintf("%s  by %s  %d responses",
			e.SubmittedAt.Local().Format("Jan 02, 2006"), e.SubmittedBy, len(e.Responses))
		if e.Analysis != nil {
			meta += "  analyzed"
		}
		b.WriteString(style.Render(prefix+e.Title) + "  " + theme.Hint.Render(meta) + "\n")

		if s.expanded[i] {
			detail := lipgloss.NewStyle().Foreground(theme.TextDim).Width(w - 4).PaddingLeft(4)
			b.WriteString(detail.Render("Q: "+e.Question) + "\n")
			if e.Analysis != nil {
				b.WriteString(detail.Render("Follow-up: "+e.Analysis.Question) + "\n")
			}
			for _, r := range firstN(e, 3) {
				b.WriteString(detail.Render(fmt.Sprintf("Student %d: %s", r.ID, r.Content)) + "\n")
			}
		}
	}

	out, _ := layout.Window(b.String(), selectedLine-height/2, height)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, lipgloss.NewStyle().Width(w).Render(out))
}

func firstN(e gallery.Entry, n int) []response.StudentResponse {
	if len(e.Responses) < n {
		n = len(e.Responses)
	}
	return e.Responses[:n]
}
