package content

import (
	"bytes"
	"context"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/finko/finko/internal/lesson"
)

// CurriculumFile is the file in a lesson directory that groups lessons into
// units and skills. It is optional.
const CurriculumFile = "curriculum.yaml"

// Unit is a chapter of the course.
type Unit struct {
	ID          string  `json:"id" yaml:"id"`
	Title       string  `json:"title" yaml:"title"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
	Image       string  `json:"image,omitempty" yaml:"image,omitempty"`
	Color       string  `json:"bgColor,omitempty" yaml:"bg_color,omitempty"`
	Skills      []Skill `json:"skills" yaml:"skills"`
}

// Skill is a topic inside a unit, taught by one or more lessons.
type Skill struct {
	ID      string   `json:"id" yaml:"id"`
	Title   string   `json:"title" yaml:"title"`
	Image   string   `json:"image,omitempty" yaml:"image,omitempty"`
	Lessons []string `json:"lessons" yaml:"lessons"`
}

// CurriculumSource lists units in display order. *Catalog and *HTTPProvider
// satisfy it.
type CurriculumSource interface {
	Units(ctx context.Context) ([]Unit, error)
}

type curriculumFile struct {
	Units []Unit `yaml:"units"`
}

// ParseCurriculum decodes a curriculum file. Unknown keys are rejected.
func ParseCurriculum(data []byte) ([]Unit, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var f curriculumFile
	if err := dec.Decode(&f); err != nil {
		return nil, &lesson.ContentError{Reason: fmt.Sprintf("decode curriculum: %v", err)}
	}
	return f.Units, nil
}

// setUnits installs units after checking that ids are unique and every
// referenced lesson is in the catalog.
func (c *Catalog) setUnits(units []Unit) error {
	seen := make(map[string]bool)
	for _, u := range units {
		if u.ID == "" {
			return &lesson.ContentError{Reason: "unit has no id"}
		}
		if seen[u.ID] {
			return &lesson.ContentError{Reason: fmt.Sprintf("duplicate curriculum id %q", u.ID)}
		}
		seen[u.ID] = true
		for _, sk := range u.Skills {
			if sk.ID == "" {
				return &lesson.ContentError{Reason: fmt.Sprintf("unit %s: skill has no id", u.ID)}
			}
			if seen[sk.ID] {
				return &lesson.ContentError{Reason: fmt.Sprintf("duplicate curriculum id %q", sk.ID)}
			}
			seen[sk.ID] = true
			for _, id := range sk.Lessons {
				if _, ok := c.lessons[id]; !ok {
					return &lesson.ContentError{LessonID: id, Reason: fmt.Sprintf("skill %s refers to an unknown lesson", sk.ID)}
				}
			}
		}
	}
	c.units = units
	return nil
}

// Units returns a copy of the curriculum. Catalogs without a curriculum
// file have no units.
func (c *Catalog) Units(_ context.Context) ([]Unit, error) {
	out := make([]Unit, len(c.units))
	for i, u := range c.units {
		u.Skills = slices.Clone(u.Skills)
		for j := range u.Skills {
			u.Skills[j].Lessons = slices.Clone(u.Skills[j].Lessons)
		}
		out[i] = u
	}
	return out, nil
}
