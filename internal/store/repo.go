package store

import (
	"context"
	"time"
)

// Lesson outcomes recorded in lesson events.
const (
	OutcomeCompleted   = "completed"
	OutcomeAbandoned   = "abandoned"
	OutcomeUnavailable = "unavailable"
)

// ReviewRepo persists the per-lesson backlog of steps to repeat.
type ReviewRepo interface {
	// Enqueue adds a step to the lesson's backlog. Re-enqueueing a step that
	// is already pending keeps its original position.
	Enqueue(ctx context.Context, lessonID, stepID string) error

	// Remove drops a step from the backlog. Removing an absent step is a no-op.
	Remove(ctx context.Context, lessonID, stepID string) error

	// Pending returns the backlog in FIFO order.
	Pending(ctx context.Context, lessonID string) ([]string, error)

	// Clear empties the lesson's backlog.
	Clear(ctx context.Context, lessonID string) error
}

// AnswerEventData captures one graded answer.
type AnswerEventData struct {
	SessionID  string
	LessonID   string
	StepID     string
	Kind       string
	Correct    bool
	ReviewMode bool
}

// LessonEventData captures how a lesson session ended.
type LessonEventData struct {
	SessionID   string
	LessonID    string
	Outcome     string
	ReviewCount int
}

// LessonStats aggregates history for one lesson.
type LessonStats struct {
	LessonID  string
	Answers   int
	Correct   int
	Completed int
}

// Accuracy returns Correct/Answers, or 0 with no answers.
func (s LessonStats) Accuracy() float64 {
	if s.Answers == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Answers)
}

// Completion is one completed lesson session.
type Completion struct {
	LessonID string
	At       time.Time
}

// EventRepo provides append access to learning events and simple aggregates.
type EventRepo interface {
	AppendAnswerEvent(ctx context.Context, data AnswerEventData) error
	AppendLessonEvent(ctx context.Context, data LessonEventData) error

	// LessonStats returns per-lesson aggregates ordered by lesson id.
	LessonStats(ctx context.Context) ([]LessonStats, error)

	// Completions returns every completed lesson session, oldest first.
	Completions(ctx context.Context) ([]Completion, error)
}
