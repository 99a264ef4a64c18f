package components

import (
	"strconv"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

// TextInput is a single-line field. Digits-only fields back the response
// count on the compose form.
type TextInput struct {
	Model  textinput.Model
	digits bool
}

// NewTextInput returns a focused field. limit caps the character count
// when positive.
func NewTextInput(placeholder string, digitsOnly bool, limit int) TextInput {
	m := textinput.New()
	m.Placeholder = placeholder
	m.CharLimit = max(limit, 0)
	m.Focus()
	return TextInput{Model: m, digits: digitsOnly}
}

func (t TextInput) Init() tea.Cmd {
	return t.Model.Focus()
}

// Update drops printable non-digit keys on digit fields and forwards
// everything else, so editing keys keep working.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if key, ok := msg.(tea.KeyPressMsg); ok && t.digits && key.Text != "" {
		if strings.TrimLeft(key.Text, "0123456789") != "" {
			return t, nil
		}
	}
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

func (t TextInput) View() string {
	return t.Model.View()
}

func (t *TextInput) Focus() tea.Cmd { return t.Model.Focus() }
func (t *TextInput) Blur()          { t.Model.Blur() }
func (t TextInput) Focused() bool   { return t.Model.Focused() }

// Value is the raw text of the field.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// NumericValue parses the field as an integer, ignoring surrounding space.
func (t TextInput) NumericValue() (int, error) {
	return strconv.Atoi(strings.TrimSpace(t.Model.Value()))
}

// SetValue replaces the text and moves the cursor to the end.
func (t *TextInput) SetValue(v string) {
	t.Model.SetValue(v)
	t.Model.CursorEnd()
}

// Reset empties the field.
func (t *TextInput) Reset() {
	t.Model.SetValue("")
}
