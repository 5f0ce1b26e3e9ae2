package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/finko/finko/internal/ui/layout"
)

// Screen is one page of the terminal player.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// StatusProvider is an optional interface for screens that show a status
// on the right of the header.
type StatusProvider interface {
	Status() layout.Status
}

// Closer is implemented by screens holding resources, such as a pending
// navigation timer, that must be released when they leave the stack.
type Closer interface {
	Close()
}
