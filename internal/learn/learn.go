// Package learn joins the curriculum with the learner's journal: how far each
// unit and skill has got, and the overall standing.
package learn

import (
	"context"
	"fmt"

	"github.com/finko/finko/internal/content"
	"github.com/finko/finko/internal/lesson"
	"github.com/finko/finko/internal/rewards"
)

// StatsSource reports the learner's standing. *rewards.Service satisfies it.
type StatsSource interface {
	Stats(ctx context.Context) (rewards.Stats, error)
}

// UnitView is a unit with the share of its lessons completed.
type UnitView struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
	Color       string `json:"bgColor,omitempty"`
	Progress    int    `json:"progress"`
	SkillCount  int    `json:"skillCount"`
}

// SkillView is a skill with the share of its lessons completed.
type SkillView struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Image       string `json:"image,omitempty"`
	Progress    int    `json:"progress"`
	LessonCount int    `json:"lessonCount"`
}

// LessonView is a lesson listed under a skill.
type LessonView struct {
	content.Summary
	Completed      bool `json:"completed"`
	TimesCompleted int  `json:"timesCompleted"`
}

// Dashboard is the learn home: overall progress, every unit, and the stats.
type Dashboard struct {
	GeneralProgress int           `json:"generalProgress"`
	Units           []UnitView    `json:"units"`
	Stats           rewards.Stats `json:"stats"`
}

// Service builds the learn views. Progress is recomputed from the journal on
// every call, so finishing a lesson updates its skill without a separate
// write.
type Service struct {
	curriculum content.CurriculumSource
	lessons    content.Provider
	stats      StatsSource
}

// NewService creates a Service.
func NewService(curriculum content.CurriculumSource, lessons content.Provider, stats StatsSource) *Service {
	return &Service{curriculum: curriculum, lessons: lessons, stats: stats}
}

// Curriculum returns the units as authored.
func (s *Service) Curriculum(ctx context.Context) ([]content.Unit, error) {
	units, err := s.curriculum.Units(ctx)
	if err != nil {
		return nil, fmt.Errorf("load curriculum: %w", err)
	}
	return units, nil
}

// Stats returns the learner's standing.
func (s *Service) Stats(ctx context.Context) (rewards.Stats, error) {
	return s.stats.Stats(ctx)
}

// Dashboard returns overall progress and every unit. Without a curriculum,
// general progress covers every lesson in the content.
func (s *Service) Dashboard(ctx context.Context) (Dashboard, error) {
	units, st, err := s.load(ctx)
	if err != nil {
		return Dashboard{}, err
	}

	d := Dashboard{Units: make([]UnitView, 0, len(units)), Stats: st}
	var all []string
	for _, u := range units {
		ids := unitLessons(u)
		all = append(all, ids...)
		d.Units = append(d.Units, UnitView{
			ID:          u.ID,
			Title:       u.Title,
			Description: u.Description,
			Image:       u.Image,
			Color:       u.Color,
			Progress:    progress(ids, st),
			SkillCount:  len(u.Skills),
		})
	}
	if len(units) == 0 {
		list, err := s.lessons.Lessons(ctx)
		if err != nil {
			return Dashboard{}, fmt.Errorf("list lessons: %w", err)
		}
		for _, l := range list {
			all = append(all, l.ID)
		}
	}
	d.GeneralProgress = progress(dedupe(all), st)
	return d, nil
}

// UnitSkills lists the skills of unitID.
func (s *Service) UnitSkills(ctx context.Context, unitID string) ([]SkillView, error) {
	units, st, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range units {
		if u.ID != unitID {
			continue
		}
		out := make([]SkillView, 0, len(u.Skills))
		for _, sk := range u.Skills {
			out = append(out, SkillView{
				ID:          sk.ID,
				Title:       sk.Title,
				Image:       sk.Image,
				Progress:    progress(sk.Lessons, st),
				LessonCount: len(sk.Lessons),
			})
		}
		return out, nil
	}
	return nil, &lesson.NotFoundError{What: "unit", ID: unitID}
}

// SkillLessons lists the lessons of skillID in curriculum order.
func (s *Service) SkillLessons(ctx context.Context, skillID string) ([]LessonView, error) {
	units, st, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range units {
		for _, sk := range u.Skills {
			if sk.ID != skillID {
				continue
			}
			out := make([]LessonView, 0, len(sk.Lessons))
			for _, id := range sk.Lessons {
				l, err := s.lessons.Lesson(ctx, id)
				if err != nil {
					return nil, fmt.Errorf("skill %s: %w", skillID, err)
				}
				n := st.TimesCompleted(id)
				out = append(out, LessonView{Summary: content.Summarize(l), Completed: n > 0, TimesCompleted: n})
			}
			return out, nil
		}
	}
	return nil, &lesson.NotFoundError{What: "skill", ID: skillID}
}

func (s *Service) load(ctx context.Context) ([]content.Unit, rewards.Stats, error) {
	units, err := s.curriculum.Units(ctx)
	if err != nil {
		return nil, rewards.Stats{}, fmt.Errorf("load curriculum: %w", err)
	}
	st, err := s.stats.Stats(ctx)
	if err != nil {
		return nil, rewards.Stats{}, err
	}
	return units, st, nil
}

func unitLessons(u content.Unit) []string {
	var ids []string
	for _, sk := range u.Skills {
		ids = append(ids, sk.Lessons...)
	}
	return dedupe(ids)
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

// progress is the whole percentage of ids completed at least once. An empty
// set is at 0.
func progress(ids []string, st rewards.Stats) int {
	if len(ids) == 0 {
		return 0
	}
	done := 0
	for _, id := range ids {
		if st.TimesCompleted(id) > 0 {
			done++
		}
	}
	return done * 100 / len(ids)
}
