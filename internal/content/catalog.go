package content

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"slices"
	"strings"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/finko/finko/internal/lesson"
)

//go:embed data/*.yaml
var defaultData embed.FS

// lessonFile is the on-disk shape of one lesson.
type lessonFile struct {
	MinVersion    string `yaml:"min_version"`
	lesson.Lesson `yaml:",inline"`
}

// Catalog is an in-memory Provider loaded from lesson files.
type Catalog struct {
	lessons map[string]lesson.Lesson
	order   []string
	units   []Unit
}

// NewCatalog builds a catalog from already-decoded lessons. Each lesson is
// validated and its last step normalised.
func NewCatalog(lessons ...lesson.Lesson) (*Catalog, error) {
	c := &Catalog{lessons: make(map[string]lesson.Lesson, len(lessons))}
	for _, l := range lessons {
		if err := c.add(l); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// LoadDefault loads the lessons bundled with the binary.
func LoadDefault(appVersion string) (*Catalog, error) {
	sub, err := fs.Sub(defaultData, "data")
	if err != nil {
		return nil, err
	}
	return Load(sub, appVersion)
}

// LoadDir loads every *.yaml file in dir.
func LoadDir(dir, appVersion string) (*Catalog, error) {
	return Load(os.DirFS(dir), appVersion)
}

// Load reads every *.yaml and *.yml file at the root of fsys. Files are
// checked against the lesson JSON Schema, decoded, then validated. A file
// whose min_version is newer than appVersion is rejected. CurriculumFile,
// when present, is read last and may only name loaded lessons.
func Load(fsys fs.FS, appVersion string) (*Catalog, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("read lesson dir: %w", err)
	}

	c := &Catalog{lessons: make(map[string]lesson.Lesson)}
	for _, e := range entries {
		ext := path.Ext(e.Name())
		if e.IsDir() || (ext != ".yaml" && ext != ".yml") || e.Name() == CurriculumFile {
			continue
		}
		data, err := fs.ReadFile(fsys, e.Name())
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", e.Name(), err)
		}
		l, err := ParseLessonFile(data, appVersion)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.Name(), err)
		}
		if err := c.add(l); err != nil {
			return nil, fmt.Errorf("%s: %w", e.Name(), err)
		}
	}

	data, err := fs.ReadFile(fsys, CurriculumFile)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return c, nil
	case err != nil:
		return nil, fmt.Errorf("read %s: %w", CurriculumFile, err)
	}
	units, err := ParseCurriculum(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", CurriculumFile, err)
	}
	if err := c.setUnits(units); err != nil {
		return nil, fmt.Errorf("%s: %w", CurriculumFile, err)
	}
	return c, nil
}

// ParseLessonFile decodes and validates a single YAML lesson file.
func ParseLessonFile(data []byte, appVersion string) (lesson.Lesson, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return lesson.Lesson{}, &lesson.ContentError{Reason: fmt.Sprintf("parse yaml: %v", err)}
	}
	if err := validateDocument(doc); err != nil {
		return lesson.Lesson{}, &lesson.ContentError{Reason: fmt.Sprintf("schema: %v", err)}
	}

	var f lessonFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return lesson.Lesson{}, &lesson.ContentError{Reason: fmt.Sprintf("decode lesson: %v", err)}
	}
	if err := checkVersion(f.MinVersion, appVersion); err != nil {
		return lesson.Lesson{}, &lesson.ContentError{LessonID: f.ID, Reason: err.Error()}
	}
	return f.Lesson, nil
}

// checkVersion rejects content that needs a newer app. Development builds
// accept everything.
func checkVersion(minVersion, appVersion string) error {
	if minVersion == "" {
		return nil
	}
	minV := canonical(minVersion)
	if !semver.IsValid(minV) {
		return fmt.Errorf("invalid min_version %q", minVersion)
	}
	appV := canonical(appVersion)
	if !semver.IsValid(appV) {
		return nil
	}
	if semver.Compare(appV, minV) < 0 {
		return fmt.Errorf("requires finko %s or newer (running %s)", minV, appV)
	}
	return nil
}

func canonical(v string) string {
	v = strings.TrimSpace(v)
	if v != "" && !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}

func (c *Catalog) add(l lesson.Lesson) error {
	if l.ID == "" {
		return &lesson.ContentError{Reason: "lesson has no id"}
	}
	if _, dup := c.lessons[l.ID]; dup {
		return &lesson.ContentError{LessonID: l.ID, Reason: "duplicate lesson id"}
	}
	if err := lesson.Validate(l); err != nil {
		return err
	}
	l.Steps = slices.Clone(l.Steps)
	lesson.MarkLast(&l)
	c.lessons[l.ID] = l
	c.order = append(c.order, l.ID)
	slices.Sort(c.order)
	return nil
}

func (c *Catalog) Lessons(_ context.Context) ([]Summary, error) {
	out := make([]Summary, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, Summarize(c.lessons[id]))
	}
	return out, nil
}

func (c *Catalog) Lesson(_ context.Context, lessonID string) (lesson.Lesson, error) {
	l, ok := c.lessons[lessonID]
	if !ok {
		return lesson.Lesson{}, &lesson.NotFoundError{What: "lesson", ID: lessonID}
	}
	l.Steps = slices.Clone(l.Steps)
	return l, nil
}

func (c *Catalog) Steps(ctx context.Context, lessonID string) ([]lesson.Step, error) {
	l, err := c.Lesson(ctx, lessonID)
	if err != nil {
		return nil, err
	}
	return l.Steps, nil
}

func (c *Catalog) Step(_ context.Context, lessonID, stepID string) (lesson.Step, error) {
	l, ok := c.lessons[lessonID]
	if !ok {
		return lesson.Step{}, &lesson.NotFoundError{What: "lesson", ID: lessonID}
	}
	s, ok := l.StepByID(stepID)
	if !ok {
		return lesson.Step{}, &lesson.NotFoundError{What: "step", ID: stepID}
	}
	return s, nil
}
