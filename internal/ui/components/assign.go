package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/finko/finko/internal/ui/theme"
)

// Assigner sorts items into categories: up/down picks an item, left/right
// cycles its category, Enter submits once every item is placed.
type Assigner struct {
	Prompt     string
	Items      []string
	Categories []string

	// Placement holds a category index per item, -1 when unplaced.
	Placement []int
	Cursor    int
	Submitted bool

	// Wrong marks items placed in the wrong category after grading.
	Wrong map[int]bool
}

// NewAssigner creates an assigner with every item unplaced.
func NewAssigner(prompt string, items, categories []string) Assigner {
	placement := make([]int, len(items))
	for i := range placement {
		placement[i] = -1
	}
	return Assigner{Prompt: prompt, Items: items, Categories: categories, Placement: placement}
}

// Complete reports whether every item has a category.
func (a Assigner) Complete() bool {
	for _, p := range a.Placement {
		if p < 0 {
			return false
		}
	}
	return true
}

// Update handles navigation and submission.
func (a Assigner) Update(msg tea.Msg) (Assigner, tea.Cmd) {
	if a.Submitted || len(a.Categories) == 0 {
		return a, nil
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return a, nil
	}

	n := len(a.Categories)
	switch kmsg.String() {
	case "up", "k":
		if a.Cursor > 0 {
			a.Cursor--
		}
	case "down", "j":
		if a.Cursor < len(a.Items)-1 {
			a.Cursor++
		}
	case "right", "l", "tab":
		a.Placement[a.Cursor] = (a.Placement[a.Cursor] + 1) % n
	case "left", "h":
		p := a.Placement[a.Cursor] - 1
		if p < 0 {
			p = n - 1
		}
		a.Placement[a.Cursor] = p
	case "enter":
		if a.Complete() {
			a.Submitted = true
		}
	}
	return a, nil
}

// View renders the items with their current categories.
func (a Assigner) View() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(a.Prompt))
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render("Categorías: " + strings.Join(a.Categories, " · ")))
	b.WriteString("\n\n")

	for i, item := range a.Items {
		category := "?"
		if p := a.Placement[i]; p >= 0 {
			category = a.Categories[p]
		}
		prefix := "  "
		if i == a.Cursor && !a.Submitted {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%-28s → %s", prefix, item, category)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		switch {
		case a.Submitted && a.Wrong[i]:
			style = theme.Incorrect
		case a.Submitted:
			style = theme.Correct
		case i == a.Cursor:
			style = theme.Selected
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
