package player

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/finko/finko/internal/lesson"
	"github.com/finko/finko/internal/progression"
	"github.com/finko/finko/internal/ui/components"
	"github.com/finko/finko/internal/ui/layout"
	"github.com/finko/finko/internal/ui/theme"
)

func (p *Screen) View(width, height int) string {
	if p.session == nil {
		return center(width, height, theme.Hint.Render("Cargando lección..."))
	}

	inner := width - 8
	if !layout.IsCompactWidth(width) {
		inner = 72
	}

	var b strings.Builder
	b.WriteString(components.StepProgress(p.progress.Number, p.progress.Total, inner))
	b.WriteString("\n")
	if p.target.Mode == progression.ModeReview {
		b.WriteString("\n")
		b.WriteString(theme.ReviewBadge.Render("REPASO"))
		b.WriteString(theme.Hint.Render("  Volvamos a las preguntas que fallaste."))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(p.renderStep(inner))

	if p.result != nil {
		b.WriteString("\n")
		b.WriteString(renderFeedback(*p.result, inner))
	}
	if p.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(theme.Incorrect.Render(p.errMsg))
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, "\n"+b.String())
}

func (p *Screen) renderStep(width int) string {
	body := lipgloss.NewStyle().Foreground(theme.Text).Width(width)
	switch p.step.Kind {
	case lesson.KindContent:
		var b strings.Builder
		if p.step.Title != "" {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(p.step.Title))
			b.WriteString("\n\n")
		}
		b.WriteString(body.Render(p.step.Text))
		b.WriteString("\n\n")
		b.WriteString(theme.Hint.Render("Enter para continuar"))
		return b.String()
	case lesson.KindQuiz, lesson.KindTrueFalse:
		return p.choice.View()
	case lesson.KindDragDrop:
		return p.assign.View()
	}
	return ""
}

func renderFeedback(r lesson.Result, width int) string {
	style := theme.Correct
	title := "¡Correcto!"
	if !r.Correct {
		style = theme.Incorrect
		title = "Incorrecto"
	}
	out := style.Render(title)
	if r.Feedback != "" {
		out += "\n" + lipgloss.NewStyle().Foreground(theme.Text).Width(width).Render(r.Feedback)
	}
	return out
}

func center(width, height int, s string) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(s)
}
