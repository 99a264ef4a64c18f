package session

import (
	"context"
	"math/rand/v2"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/studentsim/internal/gallery"
	"github.com/abhisek/studentsim/internal/render"
	"github.com/abhisek/studentsim/internal/response"
	"github.com/abhisek/studentsim/internal/router"
	"github.com/abhisek/studentsim/internal/screen"
	"github.com/abhisek/studentsim/internal/screens/prompts"
	sess "github.com/abhisek/studentsim/internal/session"
	"github.com/abhisek/studentsim/internal/store"
)

const demoQuestion = "What is photosynthesis and why is it important for life on Earth?"

func newServices(t *testing.T) screen.Services {
	t.Helper()
	st, err := store.Open("file:screen_" + t.Name() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return screen.Services{
		Session: sess.NewService(sess.Deps{Rand: rand.New(rand.NewPCG(3, 5))}),
		Gallery: gallery.NewService(st.GalleryRepo()),
		Prompts: st.PromptRepo(),
	}
}

func key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

var enter = tea.KeyPressMsg{Code: tea.KeyEnter}

func typeText(s *SessionScreen, text string) {
	for _, r := range text {
		s.Update(key(r))
	}
}

// run executes cmd and feeds the first message that is not a spinner tick
// back into the screen.
func run(t *testing.T, s *SessionScreen, cmd tea.Cmd) tea.Msg {
	t.Helper()
	require.NotNil(t, cmd)
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			if c == nil {
				continue
			}
			m := c()
			if _, tick := m.(spinnerTickMsg); tick {
				continue
			}
			s.Update(m)
			return m
		}
		t.Fatal("batch produced no result message")
	}
	s.Update(msg)
	return msg
}

func TestSubmitShowsResponses(t *testing.T) {
	s := New(newServices(t))
	s.Init()
	typeText(s, "Why do seasons change?")
	s.count.SetValue("4")

	_, cmd := s.Update(enter)
	assert.Equal(t, phaseWorking, s.phase)
	msg := run(t, s, cmd)
	require.IsType(t, submittedMsg{}, msg)

	assert.Equal(t, phaseResponses, s.phase)
	assert.Len(t, s.state.Responses, 4)
	assert.Equal(t, response.SourceMock, s.state.Source)

	out := s.View(100, 200)
	assert.Contains(t, out, "Why do seasons change?")
	assert.Contains(t, out, "Student 1")
	assert.Contains(t, out, "Student 4")
	assert.Contains(t, out, "[mock]")
}

func TestSubmitValidation(t *testing.T) {
	s := New(newServices(t))
	_, cmd := s.Update(enter)
	assert.Nil(t, cmd)
	assert.Equal(t, phaseCompose, s.phase)
	assert.Contains(t, s.View(100, 40), "Text is required.")

	typeText(s, "Q?")
	s.count.SetValue("99")
	_, cmd = s.Update(enter)
	assert.Nil(t, cmd)
	assert.Contains(t, s.errMsg, "between 1 and 50")
}

func TestTabSwitchesField(t *testing.T) {
	s := New(newServices(t))
	assert.True(t, s.question.Focused())
	s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	assert.True(t, s.count.Focused())
	assert.False(t, s.question.Focused())

	s.Update(key('x'))
	assert.Equal(t, "10", s.count.Value())
}

func TestDemoAutoSubmits(t *testing.T) {
	s := NewDemo(newServices(t), demoQuestion)
	run(t, s, s.Init())

	demo, ok := response.DemoResponses(demoQuestion)
	require.True(t, ok)
	assert.Equal(t, response.SourceDemo, s.state.Source)
	assert.Len(t, s.state.Responses, len(demo))
}

func TestFollowUpRendersAnalysis(t *testing.T) {
	s := FromState(newServices(t), sess.State{
		Question:  "Explain gravity.",
		Responses: response.NewMockGenerator(rand.New(rand.NewPCG(1, 1))).Generate("Explain gravity.", 3),
		Source:    response.SourceMock,
	})
	assert.Equal(t, phaseResponses, s.phase)

	s.Update(key('a'))
	assert.Equal(t, phaseFollowUp, s.phase)
	_, cmd := s.Update(enter)
	assert.Nil(t, cmd)
	assert.Equal(t, "Please enter a follow-up question.", s.errMsg)

	typeText(s, "Give individual feedback")
	_, cmd = s.Update(enter)
	run(t, s, cmd)

	require.Equal(t, phaseAnalysis, s.phase)
	require.NotNil(t, s.doc)
	cards := 0
	for _, b := range s.doc.Blocks {
		if _, ok := b.(render.StudentCard); ok {
			cards++
		}
	}
	assert.Equal(t, 3, cards)
	assert.Contains(t, s.View(100, 200), "You asked:")

	s.Update(key('r'))
	assert.Equal(t, phaseResponses, s.phase)
	s.Update(key('v'))
	assert.Equal(t, phaseAnalysis, s.phase)
}

func TestChosenPromptFillsFollowUp(t *testing.T) {
	s := FromState(newServices(t), sess.State{
		Question:  "Q",
		Responses: []response.StudentResponse{{ID: 1, Content: "An answer"}},
	})

	_, cmd := s.Update(key('p'))
	require.NotNil(t, cmd)
	push, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	assert.IsType(t, &prompts.PickerScreen{}, push.Screen)

	s.Update(prompts.ChosenMsg{Text: "Summarize understanding"})
	assert.Equal(t, phaseFollowUp, s.phase)
	assert.Equal(t, "Summarize understanding", s.followUp.Value())
}

func TestPublishAndSavePrompt(t *testing.T) {
	svc := newServices(t)
	st, err := svc.Session.Submit(context.Background(), sess.State{}, response.Question{Text: "Why is the sky blue?", NumberOfResponses: 2})
	require.NoError(t, err)
	st, err = svc.Session.Analyze(context.Background(), st, "Show me a chart")
	require.NoError(t, err)

	s := FromState(svc, st)
	require.Equal(t, phaseAnalysis, s.phase)

	s.Update(key('g'))
	require.Equal(t, phasePublish, s.phase)
	typeText(s, "Sky lesson")
	_, cmd := s.Update(enter)
	run(t, s, cmd)

	assert.Equal(t, phaseAnalysis, s.phase)
	assert.True(t, strings.HasPrefix(s.notice, "Published to the gallery as #"))

	entries, err := svc.Gallery.List(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Sky lesson", entries[0].Title)
	require.NotNil(t, entries[0].Analysis)

	_, cmd = s.Update(key('s'))
	run(t, s, cmd)
	assert.Equal(t, "Prompt saved.", s.notice)
	saved, err := svc.Prompts.List(context.Background())
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, "Show me a chart", saved[0].Text)
}

func TestBannerDismiss(t *testing.T) {
	s := FromState(newServices(t), sess.State{
		Question:  "Q",
		Responses: []response.StudentResponse{{ID: 1, Content: "An answer"}},
		Banner:    "Rate limit exceeded. Please try again later.",
	})
	assert.Contains(t, s.View(100, 40), "Rate limit exceeded")
	s.Update(key('x'))
	assert.NotContains(t, s.View(100, 40), "Rate limit exceeded")
}

func TestEscFromComposeReturnsToResponses(t *testing.T) {
	s := FromState(newServices(t), sess.State{
		Question:  "Q",
		Responses: []response.StudentResponse{{ID: 1, Content: "An answer"}},
	})
	s.Update(key('n'))
	assert.Equal(t, phaseCompose, s.phase)
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	assert.Nil(t, cmd)
	assert.Equal(t, phaseResponses, s.phase)

	_, cmd = s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	assert.Equal(t, router.PopScreenMsg{}, cmd())
}
