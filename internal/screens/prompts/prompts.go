// Package prompts lets the teacher pick a follow-up prompt from the
// suggested catalog or from prompts saved earlier.
package prompts

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studentsim/internal/analysis"
	"github.com/abhisek/studentsim/internal/router"
	"github.com/abhisek/studentsim/internal/screen"
	"github.com/abhisek/studentsim/internal/store"
	"github.com/abhisek/studentsim/internal/ui/layout"
	"github.com/abhisek/studentsim/internal/ui/theme"
)

// ChosenMsg carries the picked prompt text to the screen below.
type ChosenMsg struct {
	Text string
}

type savedLoadedMsg struct {
	Prompts []store.SavedPrompt
	Err     error
}

type deletedMsg struct {
	ID  string
	Err error
}

// entry is one selectable row. Saved prompts carry their store id.
type entry struct {
	group   string
	title   string
	text    string
	detail  string
	savedID string
}

// PickerScreen lists suggested and saved prompts.
type PickerScreen struct {
	repo     store.PromptRepo
	entries  []entry
	selected int
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*PickerScreen)(nil)
var _ screen.KeyHintProvider = (*PickerScreen)(nil)

// New creates a picker. repo may be nil, in which case only suggestions
// are shown.
func New(repo store.PromptRepo) *PickerScreen {
	s := &PickerScreen{repo: repo}
	for _, cat := range analysis.SuggestedPrompts() {
		for _, p := range cat.Prompts {
			s.entries = append(s.entries, entry{
				group:  cat.Category,
				title:  p.Title,
				text:   p.Text,
				detail: p.Description,
			})
		}
	}
	if repo == nil {
		s.loaded = true
	}
	return s
}

func (s *PickerScreen) Init() tea.Cmd {
	if s.repo == nil {
		return nil
	}
	repo := s.repo
	return func() tea.Msg {
		saved, err := repo.List(context.Background())
		return savedLoadedMsg{Prompts: saved, Err: err}
	}
}

func (s *PickerScreen) Title() string {
	return "Follow-up Prompts"
}

func (s *PickerScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "Enter", Description: "Use"},
		{Key: "↑↓", Description: "Navigate"},
	}
	if s.repo != nil {
		hints = append(hints, layout.KeyHint{Key: "d", Description: "Delete saved"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

func (s *PickerScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case savedLoadedMsg:
		s.loaded = true
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		for _, p := range msg.Prompts {
			s.entries = append(s.entries, entry{
				group:   "Saved",
				title:   p.Name,
				text:    p.Text,
				detail:  p.CreatedAt.Format("Jan 02, 2006"),
				savedID: p.ID,
			})
		}
		return s, nil

	case deletedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		for i, e := range s.entries {
			if e.savedID == msg.ID {
				s.entries = append(s.entries[:i], s.entries[i+1:]...)
				break
			}
		}
		if s.selected >= len(s.entries) {
			s.selected = len(s.entries) - 1
		}
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, router.Pop()
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.entries)-1 {
				s.selected++
			}
		case "enter":
			if s.selected < 0 || s.selected >= len(s.entries) {
				return s, nil
			}
			text := s.entries[s.selected].text
			return s, tea.Sequence(
				router.Pop(),
				func() tea.Msg { return ChosenMsg{Text: text} },
			)
		case "d":
			if s.repo == nil || s.selected < 0 || s.selected >= len(s.entries) {
				return s, nil
			}
			id := s.entries[s.selected].savedID
			if id == "" {
				return s, nil
			}
			repo := s.repo
			return s, func() tea.Msg {
				return deletedMsg{ID: id, Err: repo.Delete(context.Background(), id)}
			}
		}
	}
	return s, nil
}

func (s *PickerScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")

	selectedLine := 0
	group := ""
	for i, e := range s.entries {
		if e.group != group {
			group = e.group
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString("  " + theme.Heading.Render(group) + "\n")
		}
		if i == s.selected {
			selectedLine = strings.Count(b.String(), "\n")
			b.WriteString(theme.Selected.Render("  ▸ "+e.title) + "\n")
			wrap := lipgloss.NewStyle().Foreground(theme.Text).Width(layout.ReadingWidth(width) - 6).PaddingLeft(6)
			b.WriteString(wrap.Render(e.text) + "\n")
			if e.detail != "" {
				b.WriteString(theme.Hint.PaddingLeft(6).Render(e.detail) + "\n")
			}
		} else {
			b.WriteString(theme.Unselected.Render("    "+e.title) + "\n")
		}
	}

	if !s.loaded {
		b.WriteString("\n" + theme.Hint.Render("  Loading saved prompts..."))
	}
	if s.errMsg != "" {
		b.WriteString("\n" + theme.ErrorText.Render(fmt.Sprintf("  Error: %s", s.errMsg)))
	}

	offset := selectedLine - height/2
	out, _ := layout.Window(b.String(), offset, height)
	return out
}
