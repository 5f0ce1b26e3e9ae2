// Package history shows the learner's standing and per-lesson results from
// the event journal.
package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/finko/finko/internal/learn"
	"github.com/finko/finko/internal/router"
	"github.com/finko/finko/internal/screen"
	"github.com/finko/finko/internal/store"
	"github.com/finko/finko/internal/ui/layout"
	"github.com/finko/finko/internal/ui/theme"
)

// StatsSource is the slice of the event repository this screen reads.
type StatsSource interface {
	LessonStats(ctx context.Context) ([]store.LessonStats, error)
}

// DashboardSource reports curriculum progress and learner stats.
// *learn.Service satisfies it.
type DashboardSource interface {
	Dashboard(ctx context.Context) (learn.Dashboard, error)
}

// Sources feed the screen. Learn is optional.
type Sources struct {
	Lessons StatsSource
	Learn   DashboardSource
}

type historyLoadedMsg struct {
	Stats     []store.LessonStats
	Dashboard *learn.Dashboard
	Err       error
}

// HistoryScreen shows coins, streak, achievements and unit progress above
// the answered and completed counts per lesson.
type HistoryScreen struct {
	sources   Sources
	titles    map[string]string
	stats     []store.LessonStats
	dashboard *learn.Dashboard
	selected  int
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates the screen. titles maps lesson ids to display names.
func New(sources Sources, titles map[string]string) *HistoryScreen {
	return &HistoryScreen{sources: sources, titles: titles}
}

func (s *HistoryScreen) Init() tea.Cmd {
	sources := s.sources
	return func() tea.Msg {
		ctx := context.Background()
		stats, err := sources.Lessons.LessonStats(ctx)
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		msg := historyLoadedMsg{Stats: stats}
		if sources.Learn != nil {
			d, err := sources.Learn.Dashboard(ctx)
			if err != nil {
				return historyLoadedMsg{Err: err}
			}
			msg.Dashboard = &d
		}
		return msg
	}
}

func (s *HistoryScreen) Title() string {
	return "Mi progreso"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navegar"},
		{Key: "Esc", Description: "Atrás"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.stats = msg.Stats
			s.dashboard = msg.Dashboard
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.stats)-1 {
				s.selected++
			}
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Cargando progreso...")
	}

	var b strings.Builder
	b.WriteString("\n")
	if s.dashboard != nil {
		b.WriteString(s.renderDashboard(width))
	}
	if len(s.stats) == 0 {
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n  Todavía no has hecho ninguna lección. ¡Empieza ya!"))
		return b.String()
	}
	for i, st := range s.stats {
		prefix := "  "
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			prefix = "> "
			style = style.Foreground(theme.Primary).Bold(true)
		}

		line := fmt.Sprintf("%s%-24s  %3d respuestas  %3.0f%% aciertos  %s",
			prefix, s.title(st.LessonID), st.Answers, st.Accuracy()*100, completions(st.Completed))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")
	}
	return b.String()
}

func (s *HistoryScreen) renderDashboard(width int) string {
	d := s.dashboard
	centered := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder
	b.WriteString(centered.Foreground(theme.Accent).Bold(true).Render(fmt.Sprintf(
		"%d monedas · racha de %d día(s) (meta %d) · %d nivel(es) · %d%% del curso",
		d.Stats.Coins, d.Stats.CurrentStreak, d.Stats.NextStreakGoal, d.Stats.LevelsCompleted, d.GeneralProgress)))
	b.WriteString("\n")

	var earned []string
	for _, a := range d.Stats.Achievements {
		mark := "·"
		if a.Earned {
			mark = "★"
		}
		earned = append(earned, mark+" "+a.Title)
	}
	if len(earned) > 0 {
		b.WriteString(centered.Foreground(theme.TextDim).Render(strings.Join(earned, "   ")))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	for _, u := range d.Units {
		line := fmt.Sprintf("%-42s %3d%%", u.Title, u.Progress)
		b.WriteString(centered.Foreground(theme.Text).Render(line))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	return b.String()
}

func (s *HistoryScreen) title(lessonID string) string {
	if t, ok := s.titles[lessonID]; ok && t != "" {
		return t
	}
	return lessonID
}

func completions(n int) string {
	switch n {
	case 0:
		return "sin completar"
	case 1:
		return "completada 1 vez"
	}
	return fmt.Sprintf("completada %d veces", n)
}
