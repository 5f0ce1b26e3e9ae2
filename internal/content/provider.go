// Package content supplies lesson data to the progression engine, either
// from YAML lesson files or from a remote finko API server.
package content

import (
	"context"

	"github.com/finko/finko/internal/lesson"
)

// Summary is the listing view of a lesson.
type Summary struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
	StepCount   int    `json:"stepCount"`
}

// Provider is the read side of lesson content. Unknown ids yield
// *lesson.NotFoundError.
type Provider interface {
	Lessons(ctx context.Context) ([]Summary, error)
	Lesson(ctx context.Context, lessonID string) (lesson.Lesson, error)
	Steps(ctx context.Context, lessonID string) ([]lesson.Step, error)
	Step(ctx context.Context, lessonID, stepID string) (lesson.Step, error)
}

// Summarize builds the listing view of l.
func Summarize(l lesson.Lesson) Summary {
	return Summary{
		ID:          l.ID,
		Title:       l.Title,
		Description: l.Description,
		Image:       l.Image,
		StepCount:   len(l.Steps),
	}
}
