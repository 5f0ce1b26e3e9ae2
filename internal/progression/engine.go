// Package progression decides where a learner goes next inside a lesson:
// the next step in order, a review step, a retry, or the end of the lesson.
package progression

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/finko/finko/internal/content"
	"github.com/finko/finko/internal/lesson"
	"github.com/finko/finko/internal/logger"
	"github.com/finko/finko/internal/review"
	"github.com/finko/finko/internal/store"
)

var (
	// ErrAdvanceInProgress is returned when a session is already advancing.
	ErrAdvanceInProgress = errors.New("advance already in progress")

	// ErrSessionCompleted is returned when submitting to a finished session.
	ErrSessionCompleted = errors.New("session already completed")
)

// Outcome is what happened on the step being left.
type Outcome struct {
	WasCorrect bool `json:"wasCorrect"`
}

// Journal receives learning events. store.EventRepo satisfies it.
type Journal interface {
	AppendAnswerEvent(ctx context.Context, data store.AnswerEventData) error
	AppendLessonEvent(ctx context.Context, data store.LessonEventData) error
}

// Engine computes navigation targets. It holds no per-learner state; all of
// that lives in the Session passed to each call.
type Engine struct {
	content content.Provider
	queue   review.Queue
	journal Journal
	log     *logger.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithJournal records answers and lesson outcomes to j.
func WithJournal(j Journal) Option {
	return func(e *Engine) { e.journal = j }
}

// NewEngine creates an engine over a content provider and a review queue.
func NewEngine(provider content.Provider, queue review.Queue, log *logger.Logger, opts ...Option) *Engine {
	if log == nil {
		log = logger.Nop()
	}
	e := &Engine{
		content: provider,
		queue:   queue,
		log:     log.With("component", "progression"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ResolveFirstStep returns the target for the first step of l.
func (e *Engine) ResolveFirstStep(l lesson.Lesson) (Target, error) {
	if len(l.Steps) == 0 {
		return Target{}, &lesson.ContentError{LessonID: l.ID, Reason: "lesson has no steps"}
	}
	return stepTarget(l.ID, l.Steps[0], ModeNormal)
}

// Start opens a session on lessonID positioned at its first step.
func (e *Engine) Start(ctx context.Context, lessonID string) (*Session, Target, error) {
	steps, err := e.content.Steps(ctx, lessonID)
	if err != nil {
		return nil, Target{}, fmt.Errorf("load steps for %s: %w", lessonID, err)
	}
	l := lesson.Lesson{ID: lessonID, Steps: append([]lesson.Step(nil), steps...)}
	if err := lesson.Validate(l); err != nil {
		return nil, Target{}, err
	}
	lesson.MarkLast(&l)

	target, err := e.ResolveFirstStep(l)
	if err != nil {
		return nil, Target{}, err
	}

	s := &Session{
		ID:        uuid.NewString(),
		LessonID:  lessonID,
		Steps:     l.Steps,
		StartedAt: time.Now(),
	}
	s.moveTo(l.Steps[0], ModeNormal)

	e.log.Debug("session started", "session_id", s.ID, "lesson_id", lessonID, "steps", len(l.Steps))
	return s, target, nil
}

// Submit grades an answer to the current step and feeds the outcome to the
// review queue. Queue failures are logged and do not fail the submission.
func (e *Engine) Submit(ctx context.Context, s *Session, stepID string, answer lesson.Answer) (lesson.Result, error) {
	if s.isCompleted() || s.Abandoned() {
		return lesson.Result{}, ErrSessionCompleted
	}
	if !s.acquire() {
		return lesson.Result{}, ErrAdvanceInProgress
	}
	defer s.release()

	step, ok := s.CurrentStep()
	if !ok || step.ID != stepID {
		return lesson.Result{}, &lesson.NotFoundError{What: "current step", ID: stepID}
	}

	result := lesson.Grade(step, answer)

	if err := e.queue.Record(ctx, s.LessonID, step, result.Correct); err != nil {
		e.log.Warn("review queue record failed",
			"session_id", s.ID, "lesson_id", s.LessonID, "step_id", step.ID, "error", err)
	}
	if e.journal != nil && step.Kind != lesson.KindContent {
		err := e.journal.AppendAnswerEvent(ctx, store.AnswerEventData{
			SessionID:  s.ID,
			LessonID:   s.LessonID,
			StepID:     step.ID,
			Kind:       step.Kind.String(),
			Correct:    result.Correct,
			ReviewMode: s.Mode == ModeReview,
		})
		if err != nil {
			e.log.Warn("append answer event failed", "session_id", s.ID, "error", err)
		}
	}
	return result, nil
}

// Advance computes the next target after the current step was completed.
// Overlapping calls on the same session fail with ErrAdvanceInProgress.
// A session abandoned while Advance runs is ended in place and never moves.
func (e *Engine) Advance(ctx context.Context, s *Session, o Outcome) (Target, error) {
	if !s.acquire() {
		return Target{}, ErrAdvanceInProgress
	}
	defer s.release()

	if s.isCompleted() || e.left(ctx, s) {
		return completedTarget(s.LessonID), nil
	}

	s.setLastCorrect(o.WasCorrect)

	if s.Mode == ModeReview {
		if !o.WasCorrect {
			step, _ := s.CurrentStep()
			return Target{
				Kind:     TargetRetry,
				LessonID: s.LessonID,
				StepID:   s.CurrentStepID,
				StepKind: step.Kind,
				Mode:     ModeReview,
				Surface:  stepSurfaces[step.Kind],
			}, nil
		}
		return e.nextReview(ctx, s), nil
	}

	current, found := s.CurrentStep()
	if found && current.Last {
		return e.nextReview(ctx, s), nil
	}

	idx := lesson.IndexOf(s.Steps, s.CurrentStepID)
	if idx < 0 {
		ids := make([]string, len(s.Steps))
		for i, st := range s.Steps {
			ids[i] = st.ID
		}
		e.log.Warn("current step not in lesson, completing",
			"session_id", s.ID, "lesson_id", s.LessonID, "step_id", s.CurrentStepID, "known_steps", ids)
		return e.complete(ctx, s), nil
	}
	if idx == len(s.Steps)-1 {
		return e.complete(ctx, s), nil
	}

	next := s.Steps[idx+1]
	target, err := stepTarget(s.LessonID, next, ModeNormal)
	if err != nil {
		return e.Unavailable(ctx, s, err), err
	}
	if e.left(ctx, s) {
		return completedTarget(s.LessonID), nil
	}
	s.moveTo(next, ModeNormal)
	return target, nil
}

// nextReview serves the first pending review step, switching the session to
// review mode, or completes the lesson when nothing is pending.
func (e *Engine) nextReview(ctx context.Context, s *Session) Target {
	status, err := e.queue.Status(ctx, s.LessonID)
	if e.left(ctx, s) {
		return completedTarget(s.LessonID)
	}
	if err != nil {
		e.log.Warn("review status failed", "session_id", s.ID, "lesson_id", s.LessonID, "error", err)
		return e.reviewFailed(ctx, s)
	}
	if !status.HasPending {
		return e.complete(ctx, s)
	}

	step, err := e.queue.Next(ctx, s.LessonID)
	if e.left(ctx, s) {
		return completedTarget(s.LessonID)
	}
	if err != nil {
		if review.IsQueueEmpty(err) {
			return e.complete(ctx, s)
		}
		e.log.Warn("review next failed", "session_id", s.ID, "lesson_id", s.LessonID, "error", err)
		return e.reviewFailed(ctx, s)
	}

	target, err := stepTarget(s.LessonID, step, ModeReview)
	if err != nil {
		e.log.Warn("review step unusable", "session_id", s.ID, "step_id", step.ID, "error", err)
		return e.reviewFailed(ctx, s)
	}
	if s.Mode == ModeNormal {
		e.log.Debug("entering review", "session_id", s.ID, "pending", status.PendingCount)
	}
	s.enterReview(step)
	return target
}

// left ends s as abandoned when the learner walked away while it was
// advancing. The caller must not move the session when it returns true.
func (e *Engine) left(ctx context.Context, s *Session) bool {
	if !s.Abandoned() {
		return false
	}
	e.finish(ctx, s, store.OutcomeAbandoned)
	return true
}

func (e *Engine) reviewFailed(ctx context.Context, s *Session) Target {
	t := e.OnReviewServiceFailure(s.LessonID)
	e.finish(ctx, s, store.OutcomeCompleted)
	return t
}

// OnReviewServiceFailure is the policy applied when the review queue cannot
// be reached: the lesson counts as completed.
func (e *Engine) OnReviewServiceFailure(lessonID string) Target {
	return completedTarget(lessonID)
}

func (e *Engine) complete(ctx context.Context, s *Session) Target {
	e.finish(ctx, s, store.OutcomeCompleted)
	return completedTarget(s.LessonID)
}

// Unavailable tears the session down after an unrecoverable error and
// returns the "lesson unavailable" target. s may be nil when no session
// could be created.
func (e *Engine) Unavailable(ctx context.Context, s *Session, cause error) Target {
	if s == nil {
		return unavailableTarget("", cause)
	}
	e.log.Error("lesson unavailable", "session_id", s.ID, "lesson_id", s.LessonID, "error", cause)
	e.finish(ctx, s, store.OutcomeUnavailable)
	return unavailableTarget(s.LessonID, cause)
}

// UnavailableFor returns the unavailable target for a lesson without a session.
func (e *Engine) UnavailableFor(lessonID string, cause error) Target {
	return unavailableTarget(lessonID, cause)
}

// Abandon ends a session the learner walked away from. If an advance holds
// the session it returns ErrAdvanceInProgress; that advance then ends the
// session as abandoned instead of moving it.
func (e *Engine) Abandon(ctx context.Context, s *Session) error {
	if s.isCompleted() {
		return nil
	}
	s.abandoned.Store(true)
	if !s.acquire() {
		return ErrAdvanceInProgress
	}
	defer s.release()
	e.finish(ctx, s, store.OutcomeAbandoned)
	return nil
}

// Restart clears the lesson's review backlog and puts the session back on
// the first step in normal mode. Abandoned sessions cannot be restarted.
func (e *Engine) Restart(ctx context.Context, s *Session) (Target, error) {
	if s.Abandoned() {
		return Target{}, ErrSessionCompleted
	}
	if !s.acquire() {
		return Target{}, ErrAdvanceInProgress
	}
	defer s.release()

	if err := e.queue.Reset(ctx, s.LessonID); err != nil {
		e.log.Warn("review reset failed", "session_id", s.ID, "lesson_id", s.LessonID, "error", err)
	}

	target, err := e.ResolveFirstStep(lesson.Lesson{ID: s.LessonID, Steps: s.Steps})
	if err != nil {
		return Target{}, err
	}
	s.rewind()
	return target, nil
}

func (e *Engine) finish(ctx context.Context, s *Session, outcome string) {
	if s.markCompleted() {
		return
	}
	// The event outlives a cancelled advance.
	ctx = context.WithoutCancel(ctx)
	e.log.Info("session finished",
		"session_id", s.ID, "lesson_id", s.LessonID, "outcome", outcome, "reviews", s.ReviewCount)
	if e.journal == nil {
		return
	}
	err := e.journal.AppendLessonEvent(ctx, store.LessonEventData{
		SessionID:   s.ID,
		LessonID:    s.LessonID,
		Outcome:     outcome,
		ReviewCount: s.ReviewCount,
	})
	if err != nil {
		e.log.Warn("append lesson event failed", "session_id", s.ID, "error", err)
	}
}
