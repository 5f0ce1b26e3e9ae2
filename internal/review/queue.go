package review

import (
	"context"
	"fmt"

	"github.com/finko/finko/internal/lesson"
	"github.com/finko/finko/internal/store"
)

// BacklogQueue implements Queue over any Backlog.
type BacklogQueue struct {
	backlog Backlog
	steps   StepSource
}

// New builds a Queue that keeps ids in backlog and resolves them via steps.
func New(backlog Backlog, steps StepSource) *BacklogQueue {
	return &BacklogQueue{backlog: backlog, steps: steps}
}

// NewMemoryQueue returns a process-local queue.
func NewMemoryQueue(steps StepSource) *BacklogQueue {
	return New(NewMemoryBacklog(), steps)
}

// NewStoreQueue returns a queue persisted in the SQLite store.
func NewStoreQueue(repo store.ReviewRepo, steps StepSource) *BacklogQueue {
	return New(repo, steps)
}

func (q *BacklogQueue) Status(ctx context.Context, lessonID string) (Status, error) {
	ids, err := q.backlog.Pending(ctx, lessonID)
	if err != nil {
		return Status{}, fmt.Errorf("review status %s: %w", lessonID, err)
	}
	st := Status{HasPending: len(ids) > 0, PendingCount: len(ids)}
	if st.HasPending {
		st.NextStepID = ids[0]
	}
	return st, nil
}

func (q *BacklogQueue) Next(ctx context.Context, lessonID string) (lesson.Step, error) {
	ids, err := q.backlog.Pending(ctx, lessonID)
	if err != nil {
		return lesson.Step{}, fmt.Errorf("review next %s: %w", lessonID, err)
	}
	if len(ids) == 0 {
		return lesson.Step{}, ErrQueueEmpty
	}
	step, err := q.steps.Step(ctx, lessonID, ids[0])
	if err != nil {
		return lesson.Step{}, fmt.Errorf("resolve review step %s: %w", ids[0], err)
	}
	return step, nil
}

func (q *BacklogQueue) Reset(ctx context.Context, lessonID string) error {
	if err := q.backlog.Clear(ctx, lessonID); err != nil {
		return fmt.Errorf("review reset %s: %w", lessonID, err)
	}
	return nil
}

func (q *BacklogQueue) Record(ctx context.Context, lessonID string, step lesson.Step, correct bool) error {
	if !step.Kind.Reviewable() {
		return nil
	}
	var err error
	if correct {
		err = q.backlog.Remove(ctx, lessonID, step.ID)
	} else {
		err = q.backlog.Enqueue(ctx, lessonID, step.ID)
	}
	if err != nil {
		return fmt.Errorf("record review %s/%s: %w", lessonID, step.ID, err)
	}
	return nil
}
