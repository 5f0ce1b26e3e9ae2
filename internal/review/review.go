// Package review tracks, per lesson, the quiz and true/false steps a learner
// answered wrong and still has to repeat.
package review

import (
	"context"
	"errors"

	"github.com/finko/finko/internal/lesson"
)

// ErrQueueEmpty is returned by Next when nothing is pending.
var ErrQueueEmpty = errors.New("review queue is empty")

// IsQueueEmpty reports whether err wraps ErrQueueEmpty.
func IsQueueEmpty(err error) bool {
	return errors.Is(err, ErrQueueEmpty)
}

// Status summarises a lesson's queue.
type Status struct {
	HasPending   bool   `json:"hasPending"`
	PendingCount int    `json:"pendingCount"`
	NextStepID   string `json:"nextStepId,omitempty"`
}

// Queue is the review queue consumed by the progression engine.
// Implementations observe their own prior writes.
type Queue interface {
	Status(ctx context.Context, lessonID string) (Status, error)

	// Next returns the first pending step without removing it.
	Next(ctx context.Context, lessonID string) (lesson.Step, error)

	Reset(ctx context.Context, lessonID string) error

	// Record feeds an answer outcome. A wrong answer enqueues the step if it
	// is not already pending; a correct one removes it. Steps whose kind is
	// not reviewable are ignored.
	Record(ctx context.Context, lessonID string, step lesson.Step, correct bool) error
}

// Backlog stores the ordered step ids pending per lesson.
// store.ReviewRepo satisfies it.
type Backlog interface {
	Enqueue(ctx context.Context, lessonID, stepID string) error
	Remove(ctx context.Context, lessonID, stepID string) error
	Pending(ctx context.Context, lessonID string) ([]string, error)
	Clear(ctx context.Context, lessonID string) error
}

// StepSource resolves step ids to content. content.Provider satisfies it.
type StepSource interface {
	Step(ctx context.Context, lessonID, stepID string) (lesson.Step, error)
}
