package components

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func key(s string) tea.KeyPressMsg {
	switch s {
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	}
	r := []rune(s)[0]
	return tea.KeyPressMsg{Code: r, Text: s}
}

type picked string

func item(label string, disabled bool) MenuItem {
	return MenuItem{Label: label, Disabled: disabled, Action: func() tea.Cmd {
		return func() tea.Msg { return picked(label) }
	}}
}

func TestMenuSkipsDisabledRows(t *testing.T) {
	m := NewMenu([]MenuItem{item("off", true), item("a", false), item("gone", true), item("b", false)})
	assert.Equal(t, 1, m.Selected)

	m, _ = m.Update(key("down"))
	assert.Equal(t, 3, m.Selected)
	m, _ = m.Update(key("down"))
	assert.Equal(t, 3, m.Selected, "stays on the last enabled row")
	m, _ = m.Update(key("up"))
	m, _ = m.Update(key("up"))
	assert.Equal(t, 1, m.Selected)

	_, cmd := m.Update(key("enter"))
	require.NotNil(t, cmd)
	assert.Equal(t, picked("a"), cmd())
}

func TestMenuNumberShortcut(t *testing.T) {
	m := NewMenu([]MenuItem{item("a", false), item("b", true), item("c", false)})

	m, cmd := m.Update(key("3"))
	require.NotNil(t, cmd)
	assert.Equal(t, picked("c"), cmd())
	assert.Equal(t, 2, m.Selected)

	_, cmd = m.Update(key("2"))
	assert.Nil(t, cmd, "disabled rows ignore their shortcut")
	_, cmd = m.Update(key("9"))
	assert.Nil(t, cmd)
}

func TestMenuCurrentAndView(t *testing.T) {
	m := NewMenu([]MenuItem{{Label: "New Question", Detail: "ask anything"}})
	cur, ok := m.Current()
	require.True(t, ok)
	assert.Equal(t, "New Question", cur.Label)
	assert.Contains(t, m.View(), "▸ New Question")
	assert.Contains(t, m.View(), "ask anything")

	_, ok = NewMenu(nil).Current()
	assert.False(t, ok)
}

func TestDigitsOnlyInput(t *testing.T) {
	in := NewTextInput("10", true, 2)
	in, _ = in.Update(key("a"))
	in, _ = in.Update(key("1"))
	in, _ = in.Update(key("2"))
	in, _ = in.Update(key("3"))
	assert.Equal(t, "12", in.Value(), "letters dropped and limit applied")

	n, err := in.NumericValue()
	require.NoError(t, err)
	assert.Equal(t, 12, n)

	in.Reset()
	_, err = in.NumericValue()
	assert.Error(t, err)
}

func TestTextInputFocus(t *testing.T) {
	in := NewTextInput("Ask...", false, 0)
	assert.True(t, in.Focused())
	in.Blur()
	assert.False(t, in.Focused())
	in.SetValue("Why is the sky blue?")
	assert.Equal(t, "Why is the sky blue?", in.Value())
}

func TestProgressBarWidth(t *testing.T) {
	bar := ProgressBar{Label: "Correct", LabelWidth: 10, Percent: 1.7, Suffix: "  3", Width: 40}
	assert.Equal(t, 40, lipgloss.Width(bar.View()))

	narrow := NewProgressBar("", 0.5, true, 2)
	assert.Contains(t, narrow.View(), "50%")
}
