// Package session is the classroom workspace: ask a question, read the
// simulated responses, then ask follow-ups about them.
package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studentsim/internal/llm"
	"github.com/abhisek/studentsim/internal/render"
	"github.com/abhisek/studentsim/internal/response"
	"github.com/abhisek/studentsim/internal/router"
	"github.com/abhisek/studentsim/internal/screen"
	"github.com/abhisek/studentsim/internal/screens/prompts"
	sess "github.com/abhisek/studentsim/internal/session"
	"github.com/abhisek/studentsim/internal/ui/components"
)

const defaultCount = 10

type phase int

const (
	phaseCompose phase = iota
	phaseWorking
	phaseResponses
	phaseFollowUp
	phaseAnalysis
	phasePublish
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// SessionScreen drives one classroom session.
type SessionScreen struct {
	svc   screen.Services
	state sess.State
	phase phase

	question components.TextInput
	count    components.TextInput
	followUp components.TextInput
	title    components.TextInput
	author   components.TextInput

	doc          *render.Document
	autoSubmit   bool
	returnTo     phase
	working      string
	spinnerFrame int
	offset       int
	notice       string
	errMsg       string
}

var _ screen.Screen = (*SessionScreen)(nil)
var _ screen.KeyHintProvider = (*SessionScreen)(nil)

// New creates an empty session that starts at the question form.
func New(svc screen.Services) *SessionScreen {
	s := &SessionScreen{
		svc:      svc,
		question: components.NewTextInput("Ask your class a question...", false, 500),
		count:    components.NewTextInput("10", true, 2),
		followUp: components.NewTextInput("What would you like to know about these responses?", false, 500),
		title:    components.NewTextInput("Title (optional)", false, 120),
		author:   components.NewTextInput("Your name (optional)", false, 60),
	}
	s.count.SetValue(strconv.Itoa(defaultCount))
	s.count.Blur()
	s.followUp.Blur()
	s.title.Blur()
	s.author.Blur()
	return s
}

// NewDemo creates a session that immediately answers a curated demo
// question.
func NewDemo(svc screen.Services, question string) *SessionScreen {
	s := New(svc)
	s.question.SetValue(question)
	n := defaultCount
	if demo, ok := response.DemoResponses(question); ok {
		n = len(demo)
	}
	s.count.SetValue(strconv.Itoa(n))
	s.autoSubmit = true
	return s
}

// FromState resumes a session, for example a remixed gallery entry.
func FromState(svc screen.Services, st sess.State) *SessionScreen {
	s := New(svc)
	s.state = st
	s.question.SetValue(st.Question)
	s.question.Blur()
	if len(st.Responses) > 0 {
		s.count.SetValue(strconv.Itoa(len(st.Responses)))
	}
	s.phase = phaseResponses
	if st.Analysis != nil {
		s.doc = render.Render(st.Analysis.Response)
		s.phase = phaseAnalysis
	}
	return s
}

func (s *SessionScreen) Init() tea.Cmd {
	if s.autoSubmit {
		return s.submit()
	}
	if s.phase == phaseCompose {
		return s.question.Init()
	}
	return nil
}

func (s *SessionScreen) Title() string {
	switch s.phase {
	case phaseCompose:
		return "New Question"
	case phaseAnalysis:
		return "Analysis"
	case phasePublish:
		return "Publish"
	}
	return "Student Responses"
}

func (s *SessionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case spinnerTickMsg:
		if s.phase != phaseWorking {
			return s, nil
		}
		s.spinnerFrame = (s.spinnerFrame + 1) % len(spinnerFrames)
		return s, spinnerTick()

	case submittedMsg:
		if msg.Err != nil {
			s.errMsg = errorText(msg.Err)
			s.phase = phaseCompose
			return s, s.question.Focus()
		}
		s.state = msg.State
		s.doc = nil
		s.offset = 0
		s.phase = phaseResponses
		return s, nil

	case analyzedMsg:
		if msg.Err != nil {
			s.errMsg = errorText(msg.Err)
			s.phase = phaseFollowUp
			return s, s.followUp.Focus()
		}
		s.state = msg.State
		s.doc = render.Render(s.state.Analysis.Response)
		s.offset = 0
		s.phase = phaseAnalysis
		return s, nil

	case publishedMsg:
		s.phase = s.returnTo
		if msg.Err != nil {
			s.errMsg = errorText(msg.Err)
			return s, nil
		}
		s.notice = fmt.Sprintf("Published to the gallery as #%d.", msg.Entry.ID)
		return s, nil

	case promptSavedMsg:
		if msg.Err != nil {
			s.errMsg = errorText(msg.Err)
		} else {
			s.notice = "Prompt saved."
		}
		return s, nil

	case prompts.ChosenMsg:
		s.followUp.SetValue(msg.Text)
		return s, s.enterFollowUp()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	return s.updateInputs(msg)
}

func (s *SessionScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()
	switch s.phase {
	case phaseWorking:
		return s, nil

	case phaseCompose:
		switch key {
		case "esc":
			if s.state.HasResponses() {
				s.errMsg = ""
				s.phase = phaseResponses
				return s, nil
			}
			return s, router.Pop()
		case "tab", "shift+tab":
			return s, s.toggle(&s.question, &s.count)
		case "enter":
			return s, s.submit()
		}

	case phaseFollowUp:
		switch key {
		case "esc":
			s.errMsg = ""
			s.phase = phaseResponses
			if s.doc != nil {
				s.phase = phaseAnalysis
			}
			s.followUp.Blur()
			return s, nil
		case "tab":
			return s, s.openPicker()
		case "enter":
			return s, s.analyze()
		}

	case phasePublish:
		switch key {
		case "esc":
			s.phase = s.returnTo
			return s, nil
		case "tab", "shift+tab":
			return s, s.toggle(&s.title, &s.author)
		case "enter":
			return s, s.publish()
		}

	case phaseResponses, phaseAnalysis:
		return s.handleBrowseKey(key)
	}

	return s.updateInputs(msg)
}

func (s *SessionScreen) handleBrowseKey(key string) (screen.Screen, tea.Cmd) {
	s.notice = ""
	switch key {
	case "esc":
		return s, router.Pop()
	case "up", "k":
		if s.offset > 0 {
			s.offset--
		}
	case "down", "j":
		s.offset++
	case "pgup":
		s.offset -= 10
		if s.offset < 0 {
			s.offset = 0
		}
	case "pgdown":
		s.offset += 10
	case "a", "enter":
		return s, s.enterFollowUp()
	case "p":
		return s, s.openPicker()
	case "n":
		s.errMsg = ""
		s.phase = phaseCompose
		s.count.Blur()
		return s, s.question.Focus()
	case "x":
		s.state = sess.DismissBanner(s.state)
	case "g":
		if s.svc.Gallery == nil {
			return s, nil
		}
		s.returnTo = s.phase
		s.errMsg = ""
		s.phase = phasePublish
		s.author.Blur()
		return s, s.title.Focus()
	case "r":
		if s.phase == phaseAnalysis {
			s.phase = phaseResponses
			s.offset = 0
		}
	case "v":
		if s.phase == phaseResponses && s.doc != nil {
			s.phase = phaseAnalysis
			s.offset = 0
		}
	case "s":
		if s.phase == phaseAnalysis {
			return s, s.savePrompt()
		}
	}
	return s, nil
}

// updateInputs forwards msg to whichever input has focus.
func (s *SessionScreen) updateInputs(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	switch s.phase {
	case phaseCompose:
		if s.count.Focused() {
			s.count, cmd = s.count.Update(msg)
		} else {
			s.question, cmd = s.question.Update(msg)
		}
	case phaseFollowUp:
		s.followUp, cmd = s.followUp.Update(msg)
	case phasePublish:
		if s.author.Focused() {
			s.author, cmd = s.author.Update(msg)
		} else {
			s.title, cmd = s.title.Update(msg)
		}
	}
	return s, cmd
}

func (s *SessionScreen) toggle(a, b *components.TextInput) tea.Cmd {
	if a.Focused() {
		a.Blur()
		return b.Focus()
	}
	b.Blur()
	return a.Focus()
}

func (s *SessionScreen) enterFollowUp() tea.Cmd {
	if !s.state.HasResponses() {
		return nil
	}
	s.errMsg = ""
	s.phase = phaseFollowUp
	return s.followUp.Focus()
}

func (s *SessionScreen) openPicker() tea.Cmd {
	if !s.state.HasResponses() {
		return nil
	}
	picker := prompts.New(s.svc.Prompts)
	return router.Push(picker)
}

func (s *SessionScreen) submit() tea.Cmd {
	n, err := s.count.NumericValue()
	if err != nil {
		n = 0
	}
	q := response.Question{Text: strings.TrimSpace(s.question.Value()), NumberOfResponses: n}
	if err := q.Validate(); err != nil {
		s.errMsg = errorText(err)
		return nil
	}

	s.errMsg = ""
	s.notice = ""
	s.autoSubmit = false
	s.question.Blur()
	s.count.Blur()
	s.startWork(fmt.Sprintf("Simulating %d student responses...", n))

	svc, st := s.svc.Session, s.state
	return tea.Batch(spinnerTick(), func() tea.Msg {
		next, err := svc.Submit(context.Background(), st, q)
		return submittedMsg{State: next, Err: err}
	})
}

func (s *SessionScreen) analyze() tea.Cmd {
	followUp := strings.TrimSpace(s.followUp.Value())
	if followUp == "" {
		s.errMsg = "Please enter a follow-up question."
		return nil
	}

	s.errMsg = ""
	s.followUp.Blur()
	s.startWork("Analyzing student responses...")

	svc, st := s.svc.Session, s.state
	return tea.Batch(spinnerTick(), func() tea.Msg {
		next, err := svc.Analyze(context.Background(), st, followUp)
		return analyzedMsg{State: next, Err: err}
	})
}

func (s *SessionScreen) publish() tea.Cmd {
	s.title.Blur()
	s.author.Blur()
	s.startWork("Publishing to the gallery...")

	g, st := s.svc.Gallery, s.state
	title, author := s.title.Value(), s.author.Value()
	return tea.Batch(spinnerTick(), func() tea.Msg {
		e, err := g.Submit(context.Background(), title, author, st)
		return publishedMsg{Entry: e, Err: err}
	})
}

func (s *SessionScreen) savePrompt() tea.Cmd {
	if s.svc.Prompts == nil || s.state.Analysis == nil {
		return nil
	}
	repo, text := s.svc.Prompts, s.state.Analysis.Question
	return func() tea.Msg {
		_, err := repo.Save(context.Background(), "", text)
		return promptSavedMsg{Err: err}
	}
}

func (s *SessionScreen) startWork(label string) {
	s.phase = phaseWorking
	s.working = label
	s.spinnerFrame = 0
}

func spinnerTick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}

// errorText turns an error into a message for the status line.
func errorText(err error) string {
	switch {
	case errors.Is(err, response.ErrInvalidQuestion):
		msg := strings.TrimPrefix(err.Error(), response.ErrInvalidQuestion.Error()+": ")
		return strings.ToUpper(msg[:1]) + msg[1:] + "."
	case errors.Is(err, sess.ErrNoResponses):
		return "Ask a question first."
	case isProviderError(err):
		return llm.UserMessage(err)
	}
	return err.Error()
}

func isProviderError(err error) bool {
	var (
		cred *llm.ErrInvalidCredential
		rl   *llm.ErrRateLimit
		bad  *llm.ErrBadRequest
		inv  *llm.ErrInvalidResponse
		down *llm.ErrProviderUnavailable
	)
	return errors.As(err, &cred) || errors.As(err, &rl) || errors.As(err, &bad) ||
		errors.As(err, &inv) || errors.As(err, &down)
}
