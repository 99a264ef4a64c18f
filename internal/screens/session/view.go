package session

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/studentsim/internal/response"
	"github.com/abhisek/studentsim/internal/ui/docview"
	"github.com/abhisek/studentsim/internal/ui/layout"
	"github.com/abhisek/studentsim/internal/ui/theme"
)

func (s *SessionScreen) KeyHints() []layout.KeyHint {
	switch s.phase {
	case phaseCompose:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Simulate"},
			{Key: "Tab", Description: "Switch field"},
			{Key: "Esc", Description: "Back"},
		}
	case phaseWorking:
		return []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
	case phaseFollowUp:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Analyze"},
			{Key: "Tab", Description: "Suggestions"},
			{Key: "Esc", Description: "Cancel"},
		}
	case phasePublish:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Publish"},
			{Key: "Tab", Description: "Switch field"},
			{Key: "Esc", Description: "Cancel"},
		}
	}

	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "a", Description: "Ask"},
		{Key: "p", Description: "Prompts"},
	}
	if s.phase == phaseAnalysis {
		hints = append(hints, layout.KeyHint{Key: "r", Description: "Responses"})
		if s.svc.Prompts != nil {
			hints = append(hints, layout.KeyHint{Key: "s", Description: "Save prompt"})
		}
	} else if s.doc != nil {
		hints = append(hints, layout.KeyHint{Key: "v", Description: "Analysis"})
	}
	if s.svc.Gallery != nil {
		hints = append(hints, layout.KeyHint{Key: "g", Description: "Publish"})
	}
	return append(hints,
		layout.KeyHint{Key: "n", Description: "New"},
		layout.KeyHint{Key: "Esc", Description: "Back"},
	)
}

func (s *SessionScreen) View(width, height int) string {
	switch s.phase {
	case phaseCompose:
		return s.viewCompose(width)
	case phaseWorking:
		return s.viewWorking(width, height)
	case phasePublish:
		return s.viewPublish(width)
	}

	top := s.viewContext(width)
	bottom := s.viewStatus(width)
	if s.phase == phaseFollowUp {
		bottom = s.viewFollowUp(width) + bottom
	}

	var body string
	if s.phase == phaseAnalysis {
		body = s.viewAnalysis(width)
	} else {
		body = s.viewResponses(width)
	}

	bodyHeight := height - lipgloss.Height(top) - lipgloss.Height(bottom)
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	body, s.offset = layout.Window(body, s.offset, bodyHeight)
	return lipgloss.JoinVertical(lipgloss.Left, top, body, bottom)
}

func (s *SessionScreen) viewCompose(width int) string {
	w := layout.ReadingWidth(width)
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.Heading.Render("Question") + "\n")
	b.WriteString(s.question.View() + "\n\n")
	b.WriteString(theme.Heading.Render(fmt.Sprintf("Number of students (1-%d)", response.MaxResponses)) + "\n")
	b.WriteString(s.count.View() + "\n\n")
	if s.errMsg != "" {
		b.WriteString(theme.ErrorText.Render(s.errMsg) + "\n\n")
	}
	mode := "Offline: responses come from built-in templates."
	if s.svc.Session != nil && s.svc.Session.Live() {
		mode = "Live: responses are generated by your configured AI provider."
	}
	b.WriteString(theme.Hint.Render(mode))
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, lipgloss.NewStyle().Width(w).Render(b.String()))
}

func (s *SessionScreen) viewWorking(width, height int) string {
	line := lipgloss.NewStyle().Foreground(theme.Secondary).Render(spinnerFrames[s.spinnerFrame]) +
		" " + theme.Body.Render(s.working)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, line)
}

func (s *SessionScreen) viewPublish(width int) string {
	w := layout.ReadingWidth(width)
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.Heading.Render("Publish to gallery") + "\n")
	b.WriteString(theme.Hint.Render(fmt.Sprintf("%d responses", len(s.state.Responses))))
	if s.state.Analysis != nil {
		b.WriteString(theme.Hint.Render(" with analysis"))
	}
	b.WriteString("\n\n")
	b.WriteString(s.title.View() + "\n\n")
	b.WriteString(s.author.View() + "\n")
	if s.errMsg != "" {
		b.WriteString("\n" + theme.ErrorText.Render(s.errMsg) + "\n")
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, lipgloss.NewStyle().Width(w).Render(b.String()))
}

// viewContext shows the question, the data source and any banner.
func (s *SessionScreen) viewContext(width int) string {
	w := layout.ReadingWidth(width)
	source := lipgloss.NewStyle().Foreground(theme.Accent).Render("[" + string(s.state.Source) + "]")
	q := lipgloss.NewStyle().Bold(true).Foreground(theme.Text).Width(w - lipgloss.Width(source) - 1).
		Render(s.state.Question)
	lines := []string{lipgloss.JoinHorizontal(lipgloss.Top, q, " ", source)}
	if s.state.Banner != "" {
		lines = append(lines, theme.Banner.Width(w).Render(s.state.Banner+"  (x to dismiss)"))
	}
	return lipgloss.NewStyle().PaddingLeft(2).Render(strings.Join(lines, "\n")) + "\n"
}

func (s *SessionScreen) viewResponses(width int) string {
	w := layout.ReadingWidth(width)
	var b strings.Builder
	for _, r := range s.state.Responses {
		q := r.Quality
		if q == "" {
			q = response.ClassifyQuality(r.Content, s.state.Question)
		}
		head := theme.Heading.Render(fmt.Sprintf("Student %d", r.ID)) + "  " +
			theme.QualityStyle(q).Render(string(q))
		body := theme.Body.Width(w - 2).PaddingLeft(2).Render(r.Content)
		b.WriteString("  " + head + "\n" + body + "\n\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (s *SessionScreen) viewAnalysis(width int) string {
	w := layout.ReadingWidth(width)
	var b strings.Builder
	if s.state.Analysis != nil {
		b.WriteString("  " + theme.Hint.Render("You asked: ") +
			lipgloss.NewStyle().Foreground(theme.Text).Render(s.state.Analysis.Question) + "\n\n")
	}
	b.WriteString(lipgloss.NewStyle().PaddingLeft(2).Render(docview.View(s.doc, w)))
	return b.String()
}

func (s *SessionScreen) viewFollowUp(width int) string {
	w := layout.ReadingWidth(width)
	box := theme.Card.Width(w).BorderForeground(theme.Primary).
		Render(theme.Heading.Render("Follow-up") + "\n" + s.followUp.View())
	return "\n" + lipgloss.NewStyle().PaddingLeft(2).Render(box)
}

func (s *SessionScreen) viewStatus(int) string {
	switch {
	case s.errMsg != "":
		return "\n  " + theme.ErrorText.Render(s.errMsg)
	case s.notice != "":
		return "\n  " + lipgloss.NewStyle().Foreground(theme.Success).Render(s.notice)
	}
	return ""
}
