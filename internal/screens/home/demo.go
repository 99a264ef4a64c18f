package home

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studentsim/internal/response"
	"github.com/abhisek/studentsim/internal/router"
	"github.com/abhisek/studentsim/internal/screen"
	sessionscreen "github.com/abhisek/studentsim/internal/screens/session"
	"github.com/abhisek/studentsim/internal/ui/components"
	"github.com/abhisek/studentsim/internal/ui/layout"
	"github.com/abhisek/studentsim/internal/ui/theme"
)

// DemoPicker lists the sample questions. Picking one opens a session in
// its place.
type DemoPicker struct {
	menu components.Menu
}

var _ screen.Screen = (*DemoPicker)(nil)
var _ screen.KeyHintProvider = (*DemoPicker)(nil)

// NewDemoPicker creates the picker.
func NewDemoPicker(svc screen.Services) *DemoPicker {
	items := make([]components.MenuItem, 0, len(response.DemoQuestions))
	for _, q := range response.DemoQuestions {
		item := components.MenuItem{Label: q, Action: func() tea.Cmd {
			return router.Replace(sessionscreen.NewDemo(svc, q))
		}}
		if demo, ok := response.DemoResponses(q); ok {
			item.Detail = fmt.Sprintf("curated, %d responses", len(demo))
		}
		items = append(items, item)
	}
	return &DemoPicker{menu: components.NewMenu(items)}
}

func (d *DemoPicker) Init() tea.Cmd {
	return nil
}

func (d *DemoPicker) Title() string {
	return "Demo Questions"
}

func (d *DemoPicker) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Simulate"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (d *DemoPicker) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.String() == "esc" {
		return d, router.Pop()
	}
	var cmd tea.Cmd
	d.menu, cmd = d.menu.Update(msg)
	return d, cmd
}

func (d *DemoPicker) View(width, height int) string {
	w := layout.ReadingWidth(width)
	body := theme.Hint.Render("Pick a sample question to see how a class might answer it.") +
		"\n\n" + strings.TrimRight(d.menu.View(), "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, lipgloss.NewStyle().Width(w).Render(body))
}
