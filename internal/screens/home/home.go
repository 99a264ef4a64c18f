package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studentsim/internal/router"
	"github.com/abhisek/studentsim/internal/screen"
	galleryscreen "github.com/abhisek/studentsim/internal/screens/gallery"
	sessionscreen "github.com/abhisek/studentsim/internal/screens/session"
	"github.com/abhisek/studentsim/internal/ui/components"
	"github.com/abhisek/studentsim/internal/ui/layout"
	"github.com/abhisek/studentsim/internal/ui/theme"
)

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	svc  screen.Services
	menu components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(svc screen.Services) *HomeScreen {
	items := []components.MenuItem{
		{Label: "New Question", Detail: "ask your class anything", Action: func() tea.Cmd {
			return router.Push(sessionscreen.New(svc))
		}},
		{Label: "Demo Questions", Detail: "try a sample classroom", Action: func() tea.Cmd {
			return router.Push(NewDemoPicker(svc))
		}},
		{Label: "Gallery", Detail: "browse and remix published sessions", Disabled: svc.Gallery == nil, Action: func() tea.Cmd {
			return router.Push(galleryscreen.New(svc))
		}},
		{Label: "Quit", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		svc:  svc,
		menu: components.NewMenu(items),
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	cw := layout.ReadingWidth(width)
	if cw > 70 {
		cw = 70
	}

	var sections []string
	sections = append(sections, theme.Title.Width(cw).Render("StudentSim"))
	sections = append(sections, theme.Subtitle.Width(cw).Render(
		"Simulate a classroom of student answers, then ask follow-up questions about them."))

	mode := "Offline mode: responses and analyses come from built-in templates."
	if h.svc.Session != nil && h.svc.Session.Live() {
		mode = "Live mode: your AI provider writes the responses and analyses."
	}
	sections = append(sections, theme.Hint.Width(cw).Align(lipgloss.Center).Render(mode))
	sections = append(sections, theme.Card.Width(cw).Render(strings.TrimRight(h.menu.View(), "\n")))

	content := strings.Join(sections, "\n\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
