package progression

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finko/finko/internal/lesson"
)

func TestTargetJSON(t *testing.T) {
	target := Target{
		Kind:     TargetStep,
		LessonID: "L1",
		StepID:   "quiz-1",
		StepKind: lesson.KindQuiz,
		Mode:     ModeReview,
		Surface:  SurfaceLessonQuiz,
	}
	raw, err := json.Marshal(target)
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"step","lessonId":"L1","stepId":"quiz-1","stepKind":"quiz","mode":"review","surface":"LessonQuiz"}`, string(raw))

	var back Target
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, target, back)
}

func TestTargetJSONStepKindOnlyOnSteps(t *testing.T) {
	raw, err := json.Marshal(completedTarget("L1"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"completed","lessonId":"L1","mode":"normal","surface":"LevelCompleted"}`, string(raw))

	raw, err = json.Marshal(unavailableTarget("L1", &lesson.ContentError{LessonID: "L1", Reason: "broken"}))
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "stepKind")

	content, err := stepTarget("L1", lesson.Step{ID: "content-1", Kind: lesson.KindContent}, ModeNormal)
	require.NoError(t, err)
	raw, err = json.Marshal(content)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"stepKind":"content"`)

	var back Target
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, content, back)
}

func TestModeAndTargetKindParsing(t *testing.T) {
	var m Mode
	assert.Error(t, m.UnmarshalText([]byte("sideways")))
	var k TargetKind
	assert.Error(t, k.UnmarshalText([]byte("teleport")))
	assert.Equal(t, "mode(7)", Mode(7).String())
	assert.Equal(t, "target(9)", TargetKind(9).String())
}
