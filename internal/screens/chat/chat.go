// Package chat is the assistant conversation screen.
package chat

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/finko/finko/internal/assistant"
	"github.com/finko/finko/internal/screen"
	"github.com/finko/finko/internal/ui/components"
	"github.com/finko/finko/internal/ui/layout"
	"github.com/finko/finko/internal/ui/theme"
)

// replyMsg is sent when the assistant has answered.
type replyMsg struct {
	Err error
}

// Screen shows the conversation and a prompt.
type Screen struct {
	assistant *assistant.Assistant
	input     components.TextInput
	waiting   bool
	errMsg    string
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates the chat screen.
func New(a *assistant.Assistant) *Screen {
	return &Screen{
		assistant: a,
		input:     components.NewTextInput("Escribe tu pregunta...", 280),
	}
}

func (s *Screen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *Screen) Title() string {
	return "Asistente"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Enviar"},
		{Key: "Ctrl+L", Description: "Nueva conversación"},
		{Key: "Esc", Description: "Volver"},
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case replyMsg:
		s.waiting = false
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		}
		return s, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			return s, s.send()
		case "ctrl+l":
			s.assistant.Clear()
			s.errMsg = ""
			return s, nil
		}
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *Screen) send() tea.Cmd {
	text := strings.TrimSpace(s.input.Value())
	if text == "" || s.waiting {
		return nil
	}
	s.input.Reset()
	s.waiting = true
	s.errMsg = ""
	a := s.assistant
	return func() tea.Msg {
		_, err := a.Send(context.Background(), text)
		return replyMsg{Err: err}
	}
}

func (s *Screen) View(width, height int) string {
	wrap := width - 8
	if wrap > 80 {
		wrap = 80
	}

	var lines []string
	for _, m := range s.assistant.History() {
		if m.Sender == assistant.SenderUser {
			lines = append(lines, lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render("Tú"))
		} else {
			lines = append(lines, lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("Finko"))
		}
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.Text).Width(wrap).Render(m.Text), "")
	}
	if s.waiting {
		lines = append(lines, theme.Hint.Render("Finko está escribiendo..."), "")
	}
	if s.errMsg != "" {
		lines = append(lines, theme.Incorrect.Render(s.errMsg), "")
	}

	transcript := strings.Join(lines, "\n")
	// Keep the newest messages visible above the prompt.
	avail := height - 3
	if h := lipgloss.Height(transcript); avail > 0 && h > avail {
		all := strings.Split(transcript, "\n")
		transcript = strings.Join(all[len(all)-avail:], "\n")
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Width(wrap).Render(transcript+"\n\n"+"› "+s.input.View()))
}
