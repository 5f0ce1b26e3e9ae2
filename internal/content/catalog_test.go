package content

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finko/finko/internal/lesson"
)

func TestLoadDefault(t *testing.T) {
	c, err := LoadDefault("v0.1.0")
	require.NoError(t, err)
	ctx := context.Background()

	summaries, err := c.Lessons(ctx)
	require.NoError(t, err)
	ids := make([]string, 0, len(summaries))
	for _, s := range summaries {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []string{"L1", "lesson1", "u1s1l1"}, ids)

	l, err := c.Lesson(ctx, "u1s1l1")
	require.NoError(t, err)
	require.Len(t, l.Steps, 5)
	kinds := []lesson.Kind{lesson.KindContent, lesson.KindTrueFalse, lesson.KindContent, lesson.KindDragDrop, lesson.KindQuiz}
	for i, k := range kinds {
		assert.Equal(t, k, l.Steps[i].Kind, "step %d", i)
	}
	// The flag is missing from the file and is normalised onto the final step.
	assert.True(t, l.Steps[4].Last)
	assert.Equal(t, "d", l.Steps[4].CorrectOption)
	require.NotNil(t, l.Completion)
	assert.Equal(t, 50, l.Completion.Coins)

	quiz, err := c.Step(ctx, "L1", "quiz-1")
	require.NoError(t, err)
	assert.Equal(t, "b", quiz.CorrectOption)
}

func TestCatalogNotFound(t *testing.T) {
	c, err := LoadDefault("(devel)")
	require.NoError(t, err)
	ctx := context.Background()

	_, err = c.Lesson(ctx, "missing")
	assert.True(t, lesson.IsNotFound(err))

	_, err = c.Steps(ctx, "missing")
	assert.True(t, lesson.IsNotFound(err))

	_, err = c.Step(ctx, "L1", "missing")
	assert.True(t, lesson.IsNotFound(err))
}

func TestCatalogReturnsCopies(t *testing.T) {
	c, err := LoadDefault("v1.0.0")
	require.NoError(t, err)
	ctx := context.Background()

	steps, err := c.Steps(ctx, "L1")
	require.NoError(t, err)
	steps[0].ID = "mutated"

	again, err := c.Steps(ctx, "L1")
	require.NoError(t, err)
	assert.Equal(t, "content-1", again[0].ID)
}

const minimalLesson = `
id: tiny
title: Tiny
steps:
  - id: only
    type: content
    text: hello
`

func TestParseLessonFile(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		version string
		wantErr string
	}{
		{name: "minimal", data: minimalLesson, version: "v0.1.0"},
		{name: "unknown kind", data: `
id: bad
title: Bad
steps:
  - id: s1
    type: video
`, version: "v0.1.0", wantErr: "schema"},
		{name: "no steps", data: `
id: empty
title: Empty
steps: []
`, version: "v0.1.0", wantErr: "schema"},
		{name: "unknown field", data: `
id: x
title: X
colour: red
steps:
  - id: s1
    type: content
`, version: "v0.1.0", wantErr: "schema"},
		{name: "too new", data: "min_version: v2.0.0\n" + minimalLesson, version: "v1.4.0", wantErr: "requires finko v2.0.0"},
		{name: "dev build ignores gate", data: "min_version: v2.0.0\n" + minimalLesson, version: "(devel)"},
		{name: "version without prefix", data: "min_version: 1.2.0\n" + minimalLesson, version: "1.2.0"},
		{name: "not yaml", data: "id: [", version: "v0.1.0", wantErr: "parse yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := ParseLessonFile([]byte(tt.data), tt.version)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.True(t, lesson.IsContentError(err), "want ContentError, got %T", err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "tiny", l.ID)
			assert.Equal(t, lesson.KindContent, l.Steps[0].Kind)
		})
	}
}

func TestLoadRejectsInvalidLessons(t *testing.T) {
	fsys := fstest.MapFS{
		"dup.yaml": {Data: []byte(`
id: dup
title: Dup
steps:
  - id: s1
    type: content
  - id: s1
    type: content
`)},
	}
	_, err := Load(fsys, "v0.1.0")
	require.Error(t, err)
	assert.True(t, lesson.IsContentError(err))
	assert.Contains(t, err.Error(), "duplicate step id")
}

func TestLoadRejectsDuplicateLessons(t *testing.T) {
	fsys := fstest.MapFS{
		"a.yaml":    {Data: []byte(minimalLesson)},
		"b.yml":     {Data: []byte(minimalLesson)},
		"notes.txt": {Data: []byte("ignored")},
	}
	_, err := Load(fsys, "v0.1.0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate lesson id")
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tiny.yaml"), []byte(minimalLesson), 0o644))

	c, err := LoadDir(dir, "v0.1.0")
	require.NoError(t, err)

	steps, err := c.Steps(context.Background(), "tiny")
	require.NoError(t, err)
	require.Len(t, steps, 1)
	assert.True(t, steps[0].Last)
}

func TestNewCatalogValidates(t *testing.T) {
	_, err := NewCatalog(lesson.Lesson{ID: "empty"})
	require.Error(t, err)
	assert.True(t, lesson.IsContentError(err))
}

func TestLoadDefaultCurriculum(t *testing.T) {
	c, err := LoadDefault("v0.1.0")
	require.NoError(t, err)

	units, err := c.Units(context.Background())
	require.NoError(t, err)
	require.Len(t, units, 6)
	assert.Equal(t, "unit1", units[0].ID)
	assert.Equal(t, "Unidad 1: Fundamentos del Dinero", units[0].Title)
	require.Len(t, units[0].Skills, 5)
	assert.Equal(t, []string{"L1"}, units[0].Skills[2].Lessons)

	// Callers get their own copy.
	units[0].Skills[0].Lessons[0] = "mutated"
	again, err := c.Units(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "lesson1", again[0].Skills[0].Lessons[0])
}

func TestLoadCurriculum(t *testing.T) {
	tests := []struct {
		name       string
		curriculum string
		wantErr    string
	}{
		{name: "valid", curriculum: `
units:
  - id: u
    title: U
    skills:
      - id: s
        title: S
        lessons: [tiny]
`},
		{name: "unknown lesson", curriculum: `
units:
  - id: u
    title: U
    skills:
      - id: s
        title: S
        lessons: [ghost]
`, wantErr: "unknown lesson"},
		{name: "duplicate id", curriculum: `
units:
  - id: u
    title: U
    skills:
      - id: u
        title: S
`, wantErr: "duplicate curriculum id"},
		{name: "unknown field", curriculum: `
units:
  - id: u
    title: U
    colour: red
`, wantErr: "decode curriculum"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := fstest.MapFS{
				"tiny.yaml":    {Data: []byte(minimalLesson)},
				CurriculumFile: {Data: []byte(tt.curriculum)},
			}
			c, err := Load(fsys, "v0.1.0")
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.True(t, lesson.IsContentError(err), "want ContentError, got %T", err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			units, err := c.Units(context.Background())
			require.NoError(t, err)
			require.Len(t, units, 1)
			assert.Equal(t, []string{"tiny"}, units[0].Skills[0].Lessons)
		})
	}
}

func TestLoadWithoutCurriculum(t *testing.T) {
	c, err := Load(fstest.MapFS{"tiny.yaml": {Data: []byte(minimalLesson)}}, "v0.1.0")
	require.NoError(t, err)
	units, err := c.Units(context.Background())
	require.NoError(t, err)
	assert.Empty(t, units)
}
