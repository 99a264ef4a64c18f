package app

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/studentsim/internal/router"
	"github.com/abhisek/studentsim/internal/screen"
	sess "github.com/abhisek/studentsim/internal/session"
)

func newModel() AppModel {
	return newAppModel(Options{Services: screen.Services{Session: sess.NewService(sess.Deps{})}})
}

func TestViewBeforeSize(t *testing.T) {
	m := newModel()
	assert.Empty(t, m.render())
	assert.True(t, m.View().AltScreen)
}

func TestViewTooSmall(t *testing.T) {
	m := newModel()
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	assert.Contains(t, updated.(AppModel).render(), "Terminal too small!")
}

func TestViewShowsHomeAndOfflineBadge(t *testing.T) {
	m := newModel()
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	out := updated.(AppModel).render()
	assert.Contains(t, out, "StudentSim")
	assert.Contains(t, out, "offline")
	assert.Contains(t, out, "New Question")
}

func TestCtrlCQuits(t *testing.T) {
	m := newModel()
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestNavigationThroughRouter(t *testing.T) {
	m := newModel()
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	msg := cmd()
	require.IsType(t, router.PushScreenMsg{}, msg)

	updated, _ := m.Update(msg)
	assert.Equal(t, 2, updated.(AppModel).router.Depth())
	assert.Equal(t, "New Question", updated.(AppModel).router.Active().Title())
}

func TestFooterHintsFallBackToNavigation(t *testing.T) {
	m := newModel()
	hints := m.footerHints(m.router.Active())
	require.NotEmpty(t, hints)
	assert.Equal(t, "Ctrl+C", hints[len(hints)-1].Key)
}
