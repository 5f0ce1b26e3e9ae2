package progression

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/finko/finko/internal/lesson"
)

// Session is one learner working through one lesson. The engine is its only
// writer; callers thread it through every engine call.
//
// The position fields are written under mu. Code that may run while the
// session is advancing reads them through Snapshot.
type Session struct {
	ID       string
	LessonID string

	Steps     []lesson.Step
	StartedAt time.Time

	mu            sync.RWMutex
	CurrentStepID string
	Mode          Mode
	Completed     bool

	// LastCorrect is the outcome of the most recent advance, nil before any.
	LastCorrect *bool

	// ReviewCount is the number of review steps served so far.
	ReviewCount int

	// served is the step content last handed out, which for review steps
	// comes from the queue rather than Steps.
	served lesson.Step

	busy      atomic.Bool
	abandoned atomic.Bool
}

// Snapshot is a consistent copy of a session's position.
type Snapshot struct {
	ID            string
	LessonID      string
	CurrentStepID string
	Mode          Mode
	Completed     bool
	Abandoned     bool
	LastCorrect   *bool
	ReviewCount   int
	Progress      lesson.Progress
}

// Snapshot copies the session position. Safe to call during an advance.
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := Snapshot{
		ID:            s.ID,
		LessonID:      s.LessonID,
		CurrentStepID: s.CurrentStepID,
		Mode:          s.Mode,
		Completed:     s.Completed,
		Abandoned:     s.abandoned.Load(),
		ReviewCount:   s.ReviewCount,
		Progress:      lesson.Position(s.Steps, s.CurrentStepID),
	}
	if s.LastCorrect != nil {
		v := *s.LastCorrect
		snap.LastCorrect = &v
	}
	return snap
}

// CurrentStep returns the step being presented.
func (s *Session) CurrentStep() (lesson.Step, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.served.ID != "" && s.served.ID == s.CurrentStepID {
		return s.served, true
	}
	idx := lesson.IndexOf(s.Steps, s.CurrentStepID)
	if idx < 0 {
		return lesson.Step{}, false
	}
	return s.Steps[idx], true
}

// Progress reports the position of the current step.
func (s *Session) Progress() lesson.Progress {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return lesson.Position(s.Steps, s.CurrentStepID)
}

// InProgress reports whether an advance is running on this session.
func (s *Session) InProgress() bool {
	return s.busy.Load()
}

// Abandoned reports whether the learner left the session.
func (s *Session) Abandoned() bool {
	return s.abandoned.Load()
}

func (s *Session) isCompleted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Completed
}

func (s *Session) moveTo(step lesson.Step, mode Mode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.CurrentStepID = step.ID
	s.served = step
	s.Mode = mode
}

func (s *Session) enterReview(step lesson.Step) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.CurrentStepID = step.ID
	s.served = step
	s.Mode = ModeReview
	s.ReviewCount++
}

func (s *Session) setLastCorrect(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.LastCorrect = &v
}

// markCompleted flips Completed and reports whether it was already set.
func (s *Session) markCompleted() (already bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	already = s.Completed
	s.Completed = true
	return already
}

func (s *Session) rewind() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.CurrentStepID = s.Steps[0].ID
	s.served = s.Steps[0]
	s.Mode = ModeNormal
	s.Completed = false
	s.LastCorrect = nil
	s.ReviewCount = 0
	s.StartedAt = time.Now()
}

func (s *Session) acquire() bool {
	return s.busy.CompareAndSwap(false, true)
}

func (s *Session) release() {
	s.busy.Store(false)
}
