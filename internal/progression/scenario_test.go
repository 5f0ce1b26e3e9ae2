package progression

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/finko/finko/internal/lesson"
)

// TestLessonWithOneMissedQuestion walks L1 end to end: the missed quiz does
// not block the normal pass and comes back once in review.
func TestLessonWithOneMissedQuestion(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()

	s, first, err := e.Start(ctx, "L1")
	require.NoError(t, err)

	type turn struct {
		stepID string
		answer lesson.Answer
		want   Target
	}
	turns := []turn{
		{
			stepID: "content-1",
			want:   Target{Kind: TargetStep, LessonID: "L1", StepID: "quiz-1", StepKind: lesson.KindQuiz, Mode: ModeNormal, Surface: SurfaceLessonQuiz},
		},
		{
			stepID: "quiz-1",
			answer: lesson.Answer{OptionID: "a"},
			want:   Target{Kind: TargetStep, LessonID: "L1", StepID: "true-false-1", StepKind: lesson.KindTrueFalse, Mode: ModeNormal, Surface: SurfaceTrueFalseStep},
		},
		{
			stepID: "true-false-1",
			answer: lesson.Answer{Bool: boolPtr(true)},
			want:   Target{Kind: TargetStep, LessonID: "L1", StepID: "quiz-1", StepKind: lesson.KindQuiz, Mode: ModeReview, Surface: SurfaceLessonQuiz},
		},
		{
			stepID: "quiz-1",
			answer: lesson.Answer{OptionID: "b"},
			want:   Target{Kind: TargetCompleted, LessonID: "L1", Surface: SurfaceLevelCompleted},
		},
	}

	require.Equal(t, "content-1", first.StepID)
	for i, tt := range turns {
		res, err := e.Submit(ctx, s, tt.stepID, tt.answer)
		require.NoError(t, err, "turn %d", i)

		got, err := e.Advance(ctx, s, Outcome{WasCorrect: res.Correct})
		require.NoError(t, err, "turn %d", i)
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Fatalf("turn %d (%s) target mismatch (-want +got):\n%s", i, tt.stepID, diff)
		}
	}
	require.True(t, s.Completed)
	require.Equal(t, 1, s.ReviewCount)
}
