// Package app is the root Bubble Tea model: it owns the terminal size, the
// screen stack and the frame drawn around the active screen.
package app

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studentsim/internal/router"
	"github.com/abhisek/studentsim/internal/screen"
	"github.com/abhisek/studentsim/internal/screens/home"
	"github.com/abhisek/studentsim/internal/ui/layout"
)

// Options configures the application.
type Options struct {
	Services screen.Services
}

// AppModel is the root model. Screens handle their own Esc; only Ctrl+C
// is global.
type AppModel struct {
	router        *router.Router
	live          bool
	width, height int
}

func newAppModel(opts Options) AppModel {
	return AppModel{
		router: router.New(home.New(opts.Services)),
		live:   opts.Services.Session != nil && opts.Services.Session.Live(),
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}
	return m, m.router.Update(msg)
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	v.SetContent(m.render())
	return v
}

// footerHints uses the screen's own hints when it has them, and falls back
// to generic navigation hints otherwise.
func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	quit := layout.KeyHint{Key: "Ctrl+C", Description: "Quit"}
	if hp, ok := active.(screen.KeyHintProvider); ok {
		return append(hp.KeyHints(), quit)
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}, quit}
	}
	return []layout.KeyHint{{Key: "↑↓", Description: "Navigate"}, {Key: "Enter", Description: "Select"}, quit}
}

func (m AppModel) render() string {
	switch {
	case m.width == 0 || m.height == 0:
		return ""
	case layout.IsTooSmall(m.width, m.height):
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	mode := "offline"
	if m.live {
		mode = "live"
	}
	header := layout.RenderHeader(active.Title(), mode, m.live, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	room := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	return layout.RenderFrame(header, m.router.View(m.width, room), footer, m.width, m.height)
}

// Run starts the TUI and blocks until the user quits.
func Run(opts Options) error {
	if _, err := tea.NewProgram(newAppModel(opts)).Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
