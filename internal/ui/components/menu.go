package components

import (
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studentsim/internal/ui/theme"
)

// MenuItem is one selectable row. Detail is shown dimmed after the label.
type MenuItem struct {
	Label    string
	Detail   string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical list. Disabled rows are drawn but never selected.
// Rows can also be picked with their number key.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu returns a menu with the first enabled row selected.
func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items, Selected: -1}
	m.move(1)
	if m.Selected < 0 {
		m.Selected = 0
	}
	return m
}

func (m Menu) Init() tea.Cmd {
	return nil
}

func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch k := key.String(); k {
	case "up", "k":
		m.move(-1)
	case "down", "j":
		m.move(1)
	case "enter":
		return m, m.activate(m.Selected)
	default:
		if n, err := strconv.Atoi(k); err == nil && n >= 1 && n <= len(m.Items) && !m.Items[n-1].Disabled {
			m.Selected = n - 1
			return m, m.activate(m.Selected)
		}
	}
	return m, nil
}

// move steps to the next enabled row in direction dir, staying put at
// either end.
func (m *Menu) move(dir int) {
	for i := m.Selected + dir; i >= 0 && i < len(m.Items); i += dir {
		if !m.Items[i].Disabled {
			m.Selected = i
			return
		}
	}
}

func (m Menu) activate(i int) tea.Cmd {
	item, ok := m.at(i)
	if !ok || item.Disabled || item.Action == nil {
		return nil
	}
	return item.Action()
}

func (m Menu) at(i int) (MenuItem, bool) {
	if i < 0 || i >= len(m.Items) {
		return MenuItem{}, false
	}
	return m.Items[i], true
}

// Current returns the selected row.
func (m Menu) Current() (MenuItem, bool) {
	return m.at(m.Selected)
}

func (m Menu) View() string {
	var b strings.Builder
	for i, item := range m.Items {
		row := "    " + item.Label
		style := theme.Unselected
		switch {
		case item.Disabled:
			style = theme.Hint
		case i == m.Selected:
			row = "  ▸ " + item.Label
			style = theme.Selected
		}
		b.WriteString(style.Render(row))
		if item.Detail != "" {
			b.WriteString("  " + theme.Hint.Render(item.Detail))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
