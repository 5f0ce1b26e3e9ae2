package review

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finko/finko/internal/lesson"
	"github.com/finko/finko/internal/store"
)

type fakeSteps map[string]lesson.Step

func (f fakeSteps) Step(_ context.Context, lessonID, stepID string) (lesson.Step, error) {
	s, ok := f[stepID]
	if !ok {
		return lesson.Step{}, &lesson.NotFoundError{What: "step", ID: stepID}
	}
	return s, nil
}

var (
	contentStep = lesson.Step{ID: "content-1", Kind: lesson.KindContent}
	quizStep    = lesson.Step{ID: "quiz-1", Kind: lesson.KindQuiz}
	tfStep      = lesson.Step{ID: "true-false-1", Kind: lesson.KindTrueFalse}
	dragStep    = lesson.Step{ID: "drag-1", Kind: lesson.KindDragDrop}
)

func testSteps() fakeSteps {
	return fakeSteps{
		contentStep.ID: contentStep,
		quizStep.ID:    quizStep,
		tfStep.ID:      tfStep,
		dragStep.ID:    dragStep,
	}
}

// queueFactories builds every backlog-backed implementation available here.
func queueFactories(t *testing.T) map[string]func(t *testing.T) Queue {
	factories := map[string]func(t *testing.T) Queue{
		"memory": func(t *testing.T) Queue {
			return NewMemoryQueue(testSteps())
		},
		"store": func(t *testing.T) Queue {
			s, err := store.Open(":memory:")
			require.NoError(t, err)
			t.Cleanup(func() { s.Close() })
			return NewStoreQueue(s.ReviewRepo(), testSteps())
		},
	}
	if addr := os.Getenv("FINKO_TEST_REDIS_ADDR"); addr != "" {
		factories["redis"] = func(t *testing.T) Queue {
			rdb, err := DialRedis(context.Background(), addr)
			require.NoError(t, err)
			t.Cleanup(func() { rdb.Close() })
			q := NewRedisQueue(rdb, testSteps())
			require.NoError(t, q.Reset(context.Background(), "L1"))
			require.NoError(t, q.Reset(context.Background(), "L2"))
			return q
		}
	}
	return factories
}

func TestQueueEmpty(t *testing.T) {
	for name, newQueue := range queueFactories(t) {
		t.Run(name, func(t *testing.T) {
			q := newQueue(t)
			ctx := context.Background()

			st, err := q.Status(ctx, "L1")
			require.NoError(t, err)
			assert.Equal(t, Status{}, st)

			_, err = q.Next(ctx, "L1")
			assert.True(t, IsQueueEmpty(err), "got %v", err)
		})
	}
}

func TestQueueRecordWrongThenCorrect(t *testing.T) {
	for name, newQueue := range queueFactories(t) {
		t.Run(name, func(t *testing.T) {
			q := newQueue(t)
			ctx := context.Background()

			require.NoError(t, q.Record(ctx, "L1", quizStep, false))
			require.NoError(t, q.Record(ctx, "L1", tfStep, false))
			// Wrong again does not duplicate.
			require.NoError(t, q.Record(ctx, "L1", quizStep, false))

			st, err := q.Status(ctx, "L1")
			require.NoError(t, err)
			assert.Equal(t, Status{HasPending: true, PendingCount: 2, NextStepID: "quiz-1"}, st)

			next, err := q.Next(ctx, "L1")
			require.NoError(t, err)
			assert.Equal(t, quizStep, next)

			// Next does not consume.
			again, err := q.Next(ctx, "L1")
			require.NoError(t, err)
			assert.Equal(t, quizStep.ID, again.ID)

			require.NoError(t, q.Record(ctx, "L1", quizStep, true))
			next, err = q.Next(ctx, "L1")
			require.NoError(t, err)
			assert.Equal(t, tfStep, next)

			require.NoError(t, q.Record(ctx, "L1", tfStep, true))
			st, err = q.Status(ctx, "L1")
			require.NoError(t, err)
			assert.False(t, st.HasPending)
		})
	}
}

func TestQueueIgnoresNonReviewableKinds(t *testing.T) {
	for name, newQueue := range queueFactories(t) {
		t.Run(name, func(t *testing.T) {
			q := newQueue(t)
			ctx := context.Background()

			require.NoError(t, q.Record(ctx, "L1", contentStep, false))
			require.NoError(t, q.Record(ctx, "L1", dragStep, false))

			st, err := q.Status(ctx, "L1")
			require.NoError(t, err)
			assert.Zero(t, st.PendingCount)
		})
	}
}

func TestQueueResetAndIsolation(t *testing.T) {
	for name, newQueue := range queueFactories(t) {
		t.Run(name, func(t *testing.T) {
			q := newQueue(t)
			ctx := context.Background()

			require.NoError(t, q.Record(ctx, "L1", quizStep, false))
			require.NoError(t, q.Record(ctx, "L2", tfStep, false))

			require.NoError(t, q.Reset(ctx, "L1"))

			st, err := q.Status(ctx, "L1")
			require.NoError(t, err)
			assert.False(t, st.HasPending)

			st, err = q.Status(ctx, "L2")
			require.NoError(t, err)
			assert.Equal(t, 1, st.PendingCount)
			assert.Equal(t, "true-false-1", st.NextStepID)
		})
	}
}

func TestQueueNextUnknownStep(t *testing.T) {
	q := New(NewMemoryBacklog(), fakeSteps{})
	ctx := context.Background()

	require.NoError(t, q.Record(ctx, "L1", quizStep, false))
	_, err := q.Next(ctx, "L1")
	require.Error(t, err)
	assert.True(t, lesson.IsNotFound(err))
	assert.False(t, IsQueueEmpty(err))
}
