// Package unavailable shows the "lesson unavailable" surface.
package unavailable

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/finko/finko/internal/progression"
	"github.com/finko/finko/internal/router"
	"github.com/finko/finko/internal/screen"
	"github.com/finko/finko/internal/ui/layout"
	"github.com/finko/finko/internal/ui/theme"
)

// Screen explains that a lesson cannot be played.
type Screen struct {
	target progression.Target
}

var _ screen.Screen = (*Screen)(nil)

// New creates the screen for an unavailable target.
func New(t progression.Target) *Screen {
	return &Screen{target: t}
}

func (s *Screen) Init() tea.Cmd {
	return nil
}

func (s *Screen) Title() string {
	return "Lección no disponible"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "Enter", Description: "Volver a las lecciones"}}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.String() == "enter" {
		return s, func() tea.Msg { return router.PopToRootMsg{} }
	}
	return s, nil
}

func (s *Screen) View(width, height int) string {
	body := theme.Incorrect.Render("Esta lección no está disponible por ahora.") +
		"\n\n" + theme.Hint.Render("Vuelve a intentarlo más tarde.")
	if s.target.Reason != "" {
		body += "\n\n" + lipgloss.NewStyle().Foreground(theme.TextDim).Render(s.target.Reason)
	}
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(body)
}
