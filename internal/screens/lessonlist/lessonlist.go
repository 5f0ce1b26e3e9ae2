// Package lessonlist is the root screen: the lesson catalogue plus the
// assistant entry.
package lessonlist

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/finko/finko/internal/assistant"
	"github.com/finko/finko/internal/content"
	"github.com/finko/finko/internal/router"
	"github.com/finko/finko/internal/screen"
	"github.com/finko/finko/internal/screens/chat"
	"github.com/finko/finko/internal/screens/history"
	"github.com/finko/finko/internal/screens/player"
	"github.com/finko/finko/internal/ui/components"
	"github.com/finko/finko/internal/ui/theme"
)

// loadedMsg carries the lesson listing.
type loadedMsg struct {
	Lessons []content.Summary
	Err     error
}

// Screen lists lessons.
type Screen struct {
	deps      player.Deps
	assistant *assistant.Assistant
	progress  history.Sources
	titles    map[string]string
	menu      components.Menu
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*Screen)(nil)

// New creates the root screen. a may be nil and progress.Lessons may be nil,
// which hides their menu entries.
func New(deps player.Deps, a *assistant.Assistant, progress history.Sources) *Screen {
	return &Screen{deps: deps, assistant: a, progress: progress}
}

func (s *Screen) Init() tea.Cmd {
	provider := s.deps.Content
	return func() tea.Msg {
		lessons, err := provider.Lessons(context.Background())
		return loadedMsg{Lessons: lessons, Err: err}
	}
}

func (s *Screen) Title() string {
	return "Aprende"
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(loadedMsg); ok {
		s.loaded = true
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		}
		s.menu = components.NewMenu(s.items(msg.Lessons))
		return s, nil
	}
	if !s.loaded {
		return s, nil
	}
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *Screen) items(lessons []content.Summary) []components.MenuItem {
	items := make([]components.MenuItem, 0, len(lessons)+3)
	s.titles = make(map[string]string, len(lessons))
	for _, l := range lessons {
		id := l.ID
		s.titles[id] = l.Title
		items = append(items, components.MenuItem{
			Label:       l.Title,
			Description: describe(l),
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: player.New(s.deps, id)}
				}
			},
		})
	}
	if s.assistant != nil {
		items = append(items, components.MenuItem{
			Label:       "Asistente Finko",
			Description: "Pregunta lo que quieras sobre tus finanzas",
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: chat.New(s.assistant)}
				}
			},
		})
	}
	if s.progress.Lessons != nil {
		items = append(items, components.MenuItem{
			Label:       "Mi progreso",
			Description: "Monedas, racha y lecciones completadas",
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: history.New(s.progress, s.titles)}
				}
			},
		})
	}
	items = append(items, components.MenuItem{Label: "Salir", Action: func() tea.Cmd { return tea.Quit }})
	return items
}

func describe(l content.Summary) string {
	steps := fmt.Sprintf("%d pasos", l.StepCount)
	if l.Description == "" {
		return steps
	}
	return l.Description + " · " + steps
}

func (s *Screen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Foreground(theme.Primary).Bold(true).
		Render("¿Qué quieres aprender hoy?"))
	b.WriteString("\n\n")

	switch {
	case !s.loaded:
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Hint.Render("Cargando lecciones...")))
	default:
		if s.errMsg != "" {
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Incorrect.Render(s.errMsg)))
			b.WriteString("\n\n")
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.menu.View()))
	}
	return b.String()
}
