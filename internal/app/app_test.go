package app

import (
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finko/finko/internal/content"
	"github.com/finko/finko/internal/logger"
	"github.com/finko/finko/internal/progression"
	"github.com/finko/finko/internal/review"
	"github.com/finko/finko/internal/screens/lessonlist"
	"github.com/finko/finko/internal/screens/player"
	"github.com/finko/finko/internal/screens/welcome"
)

func testOptions(t *testing.T) Options {
	t.Helper()
	catalog, err := content.LoadDefault("dev")
	require.NoError(t, err)
	engine := progression.NewEngine(catalog, review.NewMemoryQueue(catalog), logger.Nop())
	return Options{Player: player.Deps{Engine: engine, Content: catalog, Pacing: time.Millisecond}}
}

func TestStartsOnSplash(t *testing.T) {
	m := newAppModel(testOptions(t))
	assert.IsType(t, &welcome.WelcomeScreen{}, m.router.Active())
	assert.NotNil(t, m.Init())
}

func TestLessonIDOpensPlayer(t *testing.T) {
	opts := testOptions(t)
	opts.LessonID = "L1"
	m := newAppModel(opts)
	defer m.router.CloseAll()

	assert.Equal(t, 2, m.router.Depth())
	assert.IsType(t, &player.Screen{}, m.router.Active())
}

func TestEscPopsAboveRoot(t *testing.T) {
	opts := testOptions(t)
	opts.LessonID = "L1"
	m := newAppModel(opts)
	defer m.router.CloseAll()

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	m.Update(cmd())
	assert.Equal(t, 1, m.router.Depth())
	assert.IsType(t, &lessonlist.Screen{}, m.router.Active())

	_, cmd = m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	assert.Nil(t, cmd, "Esc on the root does nothing")
}

func TestViewRendersFrame(t *testing.T) {
	opts := testOptions(t)
	opts.LessonID = "L1"
	model, _ := newAppModel(opts).Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m := model.(AppModel)
	defer m.router.CloseAll()

	v := m.View()
	assert.True(t, v.AltScreen)
	assert.NotNil(t, v.Content)
}
