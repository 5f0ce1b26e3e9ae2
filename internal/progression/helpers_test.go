package progression

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/finko/finko/internal/content"
	"github.com/finko/finko/internal/lesson"
	"github.com/finko/finko/internal/logger"
	"github.com/finko/finko/internal/review"
	"github.com/finko/finko/internal/store"
)

func l1Lesson() lesson.Lesson {
	return lesson.Lesson{
		ID:    "L1",
		Title: "Ahorro básico",
		Steps: []lesson.Step{
			{ID: "content-1", Kind: lesson.KindContent, Text: "Ahorrar es guardar."},
			{
				ID:     "quiz-1",
				Kind:   lesson.KindQuiz,
				Prompt: "¿Cuál es ahorrar?",
				Options: []lesson.Option{
					{ID: "a", Text: "Gastar todo"},
					{ID: "b", Text: "Guardar el 10%"},
				},
				CorrectOption: "b",
			},
			{ID: "true-false-1", Kind: lesson.KindTrueFalse, Prompt: "Un fondo de emergencia cubre imprevistos.", CorrectBool: true, Last: true},
		},
	}
}

// fiveStepLesson has no last flag; the catalog puts it on the final step.
func fiveStepLesson() lesson.Lesson {
	return lesson.Lesson{
		ID: "five",
		Steps: []lesson.Step{
			{ID: "s1", Kind: lesson.KindContent},
			{ID: "s2", Kind: lesson.KindTrueFalse, Prompt: "p"},
			{ID: "s3", Kind: lesson.KindContent},
			{
				ID:         "s4",
				Kind:       lesson.KindDragDrop,
				Categories: []lesson.Category{{ID: "c1", Title: "C1"}},
				Items:      []lesson.DragItem{{ID: "i1", Text: "I1", CorrectCategory: "c1"}},
			},
			{
				ID:            "s5",
				Kind:          lesson.KindQuiz,
				Options:       []lesson.Option{{ID: "a"}, {ID: "d"}},
				CorrectOption: "d",
			},
		},
	}
}

func newCatalog(t *testing.T, lessons ...lesson.Lesson) *content.Catalog {
	t.Helper()
	c, err := content.NewCatalog(lessons...)
	require.NoError(t, err)
	return c
}

func newTestEngine(t *testing.T, opts ...Option) (*Engine, *review.BacklogQueue) {
	t.Helper()
	catalog := newCatalog(t, l1Lesson(), fiveStepLesson())
	queue := review.NewMemoryQueue(catalog)
	return NewEngine(catalog, queue, logger.Nop(), opts...), queue
}

var errUnavailable = errors.New("review service unavailable")

// failingQueue fails every read; writes succeed.
type failingQueue struct {
	failStatus bool
	failNext   bool
	inner      review.Queue
}

func (f *failingQueue) Status(ctx context.Context, lessonID string) (review.Status, error) {
	if f.failStatus {
		return review.Status{}, errUnavailable
	}
	return f.inner.Status(ctx, lessonID)
}

func (f *failingQueue) Next(ctx context.Context, lessonID string) (lesson.Step, error) {
	if f.failNext {
		return lesson.Step{}, errUnavailable
	}
	return f.inner.Next(ctx, lessonID)
}

func (f *failingQueue) Reset(ctx context.Context, lessonID string) error {
	return f.inner.Reset(ctx, lessonID)
}

func (f *failingQueue) Record(ctx context.Context, lessonID string, step lesson.Step, correct bool) error {
	return f.inner.Record(ctx, lessonID, step, correct)
}

// blockingQueue holds Status until release is closed.
type blockingQueue struct {
	review.Queue
	entered chan struct{}
	release chan struct{}
}

func (b *blockingQueue) Status(ctx context.Context, lessonID string) (review.Status, error) {
	close(b.entered)
	select {
	case <-b.release:
	case <-ctx.Done():
		return review.Status{}, ctx.Err()
	}
	return b.Queue.Status(ctx, lessonID)
}

func boolPtr(b bool) *bool { return &b }

// recordingJournal keeps lesson outcomes in memory.
type recordingJournal struct {
	mu       sync.Mutex
	outcomes []string
}

func (j *recordingJournal) AppendAnswerEvent(context.Context, store.AnswerEventData) error {
	return nil
}

func (j *recordingJournal) AppendLessonEvent(ctx context.Context, data store.LessonEventData) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	j.outcomes = append(j.outcomes, data.Outcome)
	return nil
}

func (j *recordingJournal) Outcomes() []string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]string(nil), j.outcomes...)
}
