// Package rewards derives what the learner has earned (coins, a day streak,
// achievements) from the journal of completed lessons.
package rewards

import (
	"context"
	"fmt"
	"time"

	"github.com/finko/finko/internal/lesson"
	"github.com/finko/finko/internal/store"
)

// CompletionSource lists completed lesson sessions. store.EventRepo
// satisfies it.
type CompletionSource interface {
	Completions(ctx context.Context) ([]store.Completion, error)
}

// LessonSource looks up what a lesson pays. content.Provider satisfies it.
type LessonSource interface {
	Lesson(ctx context.Context, lessonID string) (lesson.Lesson, error)
}

// Achievement is a milestone and whether it has been reached.
type Achievement struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Earned bool   `json:"earned"`
}

// Stats is the learner's standing.
type Stats struct {
	Coins           int           `json:"coins"`
	CurrentStreak   int           `json:"currentStreak"`
	LongestStreak   int           `json:"longestStreak"`
	NextStreakGoal  int           `json:"nextStreakGoal"`
	LevelsCompleted int           `json:"levelsCompleted"`
	Achievements    []Achievement `json:"achievements"`

	// Completions counts completed sessions per lesson id.
	Completions map[string]int `json:"completions"`
}

// TimesCompleted returns how often lessonID was completed.
func (s Stats) TimesCompleted(lessonID string) int {
	return s.Completions[lessonID]
}

var milestones = []struct {
	id, title string
	reached   func(Stats) bool
}{
	{"first-lesson", "Primera lección", func(s Stats) bool { return s.LevelsCompleted >= 1 }},
	{"streak-5", fmt.Sprintf("Racha de %d días", BaseStreakThreshold), func(s Stats) bool { return s.LongestStreak >= BaseStreakThreshold }},
	{"levels-10", "10 Niveles", func(s Stats) bool { return s.LevelsCompleted >= 10 }},
}

// Service computes Stats on demand; nothing is stored beyond the journal.
type Service struct {
	completions CompletionSource
	lessons     LessonSource
	now         func() time.Time
}

// NewService creates a Service. lessons may be nil, in which case no coins
// are counted.
func NewService(completions CompletionSource, lessons LessonSource) *Service {
	return &Service{completions: completions, lessons: lessons, now: time.Now}
}

// Stats totals the journal. A lesson pays its coins on the first
// completion only; replays count towards the streak but not the purse.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	done, err := s.completions.Completions(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("load completions: %w", err)
	}

	st := Stats{Completions: make(map[string]int)}
	times := make([]time.Time, 0, len(done))
	for _, c := range done {
		if st.Completions[c.LessonID] == 0 {
			st.LevelsCompleted++
			st.Coins += s.coins(ctx, c.LessonID)
		}
		st.Completions[c.LessonID]++
		times = append(times, c.At)
	}

	st.CurrentStreak, st.LongestStreak = DayStreaks(times, s.now())
	st.NextStreakGoal = NextStreakThreshold(st.CurrentStreak)
	for _, m := range milestones {
		st.Achievements = append(st.Achievements, Achievement{ID: m.id, Title: m.title, Earned: m.reached(st)})
	}
	return st, nil
}

// coins is what lessonID pays. Lessons no longer in the content pay nothing.
func (s *Service) coins(ctx context.Context, lessonID string) int {
	if s.lessons == nil {
		return 0
	}
	l, err := s.lessons.Lesson(ctx, lessonID)
	if err != nil || l.Completion == nil {
		return 0
	}
	return l.Completion.Coins
}
