// Package app hosts the terminal player: a router of screens inside a
// header/footer frame.
package app

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/finko/finko/internal/assistant"
	"github.com/finko/finko/internal/router"
	"github.com/finko/finko/internal/screen"
	"github.com/finko/finko/internal/screens/history"
	"github.com/finko/finko/internal/screens/lessonlist"
	"github.com/finko/finko/internal/screens/player"
	"github.com/finko/finko/internal/screens/welcome"
	"github.com/finko/finko/internal/ui/layout"
)

// Options configures the terminal player.
type Options struct {
	Player    player.Deps
	Assistant *assistant.Assistant

	// History feeds the progress screen. A nil History.Lessons hides it.
	History history.Sources

	// LessonID opens this lesson directly instead of the lesson list.
	LessonID string
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	start  tea.Cmd
	width  int
	height int
}

func newAppModel(opts Options) AppModel {
	lessons := func() screen.Screen {
		return lessonlist.New(opts.Player, opts.Assistant, opts.History)
	}
	if opts.LessonID == "" {
		root := welcome.New(lessons)
		return AppModel{router: router.New(root), start: root.Init()}
	}

	root := lessons()
	r := router.New(root)
	start := tea.Batch(root.Init(), r.Push(player.New(opts.Player, opts.LessonID)))
	return AppModel{router: r, start: start}
}

func (m AppModel) Init() tea.Cmd {
	return m.start
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.router.CloseAll()
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	var status layout.Status
	if active != nil {
		title = active.Title()
		if sp, ok := active.(screen.StatusProvider); ok {
			status = sp.Status()
		}
	}
	header := layout.RenderHeader(title, status, m.width)

	var hints []layout.KeyHint
	if kp, ok := active.(screen.KeyHintProvider); ok {
		hints = kp.KeyHints()
	}
	if hints == nil {
		if m.router.Depth() > 1 {
			hints = []layout.KeyHint{
				{Key: "Esc", Description: "Atrás"},
				{Key: "Ctrl+C", Description: "Salir"},
			}
		} else {
			hints = []layout.KeyHint{
				{Key: "↑↓", Description: "Navegar"},
				{Key: "Enter", Description: "Elegir"},
				{Key: "Ctrl+C", Description: "Salir"},
			}
		}
	}
	footer := layout.RenderFooter(hints, m.width)

	contentHeight := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

// Run starts the Bubble Tea program and closes every screen on exit.
func Run(opts Options) error {
	m := newAppModel(opts)
	_, err := tea.NewProgram(m).Run()
	m.router.CloseAll()
	return err
}
