package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/finko/finko/internal/ui/theme"
)

// StepProgress renders "Paso n de total" followed by a bar filling width.
func StepProgress(number, total, width int) string {
	label := lipgloss.NewStyle().Foreground(theme.Text).Render(fmt.Sprintf("Paso %d de %d", number, total)) + "  "

	barWidth := width - lipgloss.Width(label)
	if barWidth < 4 {
		barWidth = 4
	}

	filled := 0
	if total > 0 {
		filled = barWidth * number / total
	}
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 0 {
		filled = 0
	}

	return label +
		lipgloss.NewStyle().Background(theme.Secondary).Render(strings.Repeat(" ", filled)) +
		lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", barWidth-filled))
}

// PercentLabel formats a completion percentage for the header.
func PercentLabel(percent int) string {
	return fmt.Sprintf("%d%% completado", percent)
}
