// Package completed shows the level-completed surface.
package completed

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/finko/finko/internal/lesson"
	"github.com/finko/finko/internal/rewards"
	"github.com/finko/finko/internal/router"
	"github.com/finko/finko/internal/screen"
	"github.com/finko/finko/internal/ui/components"
	"github.com/finko/finko/internal/ui/layout"
	"github.com/finko/finko/internal/ui/theme"
)

// StatsSource reports the learner's standing. *rewards.Service satisfies it.
type StatsSource interface {
	Stats(ctx context.Context) (rewards.Stats, error)
}

// Info is what the screen shows about the finished lesson.
type Info struct {
	LessonID    string
	LessonTitle string
	Completion  *lesson.Completion
	ReviewCount int

	// Stats, when set, adds the learner's totals and tells a first
	// completion from a replay.
	Stats StatsSource
}

type statsMsg struct {
	Stats rewards.Stats
	Err   error
}

// Screen congratulates the learner and offers to replay or go back.
type Screen struct {
	info  Info
	menu  components.Menu
	stats *rewards.Stats
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates the screen. replay restarts the lesson; nil hides the option.
func New(info Info, replay func() tea.Cmd) *Screen {
	var items []components.MenuItem
	if replay != nil {
		items = append(items, components.MenuItem{Label: "Repetir lección", Action: replay})
	}
	items = append(items, components.MenuItem{
		Label:  "Volver a las lecciones",
		Action: func() tea.Cmd { return func() tea.Msg { return router.PopToRootMsg{} } },
	})
	return &Screen{info: info, menu: components.NewMenu(items)}
}

func (s *Screen) Init() tea.Cmd {
	source := s.info.Stats
	if source == nil {
		return nil
	}
	return func() tea.Msg {
		st, err := source.Stats(context.Background())
		return statsMsg{Stats: st, Err: err}
	}
}

func (s *Screen) Title() string {
	return "Nivel completado"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Elegir"},
		{Key: "Enter", Description: "Aceptar"},
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(statsMsg); ok {
		// Without stats the screen still shows the lesson's reward.
		if msg.Err == nil {
			s.stats = &msg.Stats
		}
		return s, nil
	}
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *Screen) View(width, height int) string {
	c := s.info.Completion
	if c == nil {
		c = &lesson.Completion{Title: "¡Nivel Completado!", LevelName: s.info.LessonTitle}
	}

	centered := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centered.Foreground(theme.Primary).Bold(true).Render(c.Title))
	b.WriteString("\n\n")
	if c.LevelName != "" {
		b.WriteString(centered.Foreground(theme.Text).Render(c.LevelName))
		b.WriteString("\n")
	}
	if c.Description != "" {
		b.WriteString("\n")
		b.WriteString(centered.Foreground(theme.TextDim).Render(c.Description))
		b.WriteString("\n")
	}
	if c.Coins > 0 {
		b.WriteString("\n")
		if s.stats != nil && s.stats.TimesCompleted(s.info.LessonID) > 1 {
			b.WriteString(centered.Foreground(theme.TextDim).Render(fmt.Sprintf("Ya ganaste las %d monedas de esta lección", c.Coins)))
		} else {
			b.WriteString(centered.Foreground(theme.Accent).Bold(true).Render(fmt.Sprintf("+%d monedas", c.Coins)))
		}
		b.WriteString("\n")
	}
	if s.info.ReviewCount > 0 {
		b.WriteString("\n")
		b.WriteString(centered.Foreground(theme.Review).Render(fmt.Sprintf("Repasaste %d pregunta(s)", s.info.ReviewCount)))
		b.WriteString("\n")
	}
	if st := s.stats; st != nil {
		b.WriteString("\n")
		b.WriteString(centered.Foreground(theme.Text).Render(totals(*st)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.menu.View()))
	return b.String()
}

func totals(st rewards.Stats) string {
	return fmt.Sprintf("%d monedas · racha de %d día(s) · %d nivel(es) completado(s)",
		st.Coins, st.CurrentStreak, st.LevelsCompleted)
}
