// Package player is the step-by-step lesson screen. It renders the surface
// for the engine's current target and applies the next target once answer
// feedback has been on screen for the pacing delay.
package player

import (
	"context"
	"errors"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/finko/finko/internal/content"
	"github.com/finko/finko/internal/lesson"
	"github.com/finko/finko/internal/logger"
	"github.com/finko/finko/internal/progression"
	"github.com/finko/finko/internal/router"
	"github.com/finko/finko/internal/screen"
	"github.com/finko/finko/internal/screens/completed"
	"github.com/finko/finko/internal/screens/unavailable"
	"github.com/finko/finko/internal/ui/components"
	"github.com/finko/finko/internal/ui/layout"
)

// Deps are the collaborators of the player.
type Deps struct {
	Engine  *progression.Engine
	Content content.Provider
	// Pacing is how long feedback shows before navigating; zero skips the pause.
	Pacing time.Duration
	// Rewards feeds the totals on the completed screen. Optional.
	Rewards completed.StatsSource
	Log     *logger.Logger
}

// Screen plays one lesson session.
type Screen struct {
	deps     Deps
	lessonID string
	lesson   lesson.Lesson

	session *progression.Session
	pacer   *progression.Pacer

	target   progression.Target
	step     lesson.Step
	progress lesson.Progress

	choice components.MultiChoice
	assign components.Assigner

	// busy is set while a submit or paced advance is outstanding.
	busy   bool
	result *lesson.Result
	errMsg string
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)
var _ screen.StatusProvider = (*Screen)(nil)
var _ screen.Closer = (*Screen)(nil)

// New creates a player that opens a fresh session on lessonID.
func New(deps Deps, lessonID string) *Screen {
	if deps.Log == nil {
		deps.Log = logger.Nop()
	}
	return &Screen{deps: deps, lessonID: lessonID}
}

// resume creates a player over an existing session already positioned on t.
func resume(deps Deps, l lesson.Lesson, s *progression.Session, t progression.Target) *Screen {
	p := New(deps, l.ID)
	p.lesson = l
	p.bind(s)
	p.apply(t)
	return p
}

func (p *Screen) Init() tea.Cmd {
	if p.session != nil {
		return nil
	}
	return p.start()
}

func (p *Screen) Title() string {
	if p.lesson.Title != "" {
		return p.lesson.Title
	}
	return "Lección"
}

func (p *Screen) Status() layout.Status {
	if p.session == nil {
		return layout.Status{}
	}
	if p.target.Mode == progression.ModeReview {
		return layout.Status{Text: "Repaso", Review: true}
	}
	return layout.Status{Text: components.PercentLabel(p.progress.Percent())}
}

func (p *Screen) KeyHints() []layout.KeyHint {
	switch {
	case p.result != nil:
		return []layout.KeyHint{{Key: "Esc", Description: "Salir"}}
	case p.step.Kind == lesson.KindDragDrop:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Elemento"},
			{Key: "←→", Description: "Categoría"},
			{Key: "Enter", Description: "Comprobar"},
			{Key: "Esc", Description: "Salir"},
		}
	case p.step.Kind == lesson.KindContent:
		return []layout.KeyHint{{Key: "Enter", Description: "Continuar"}, {Key: "Esc", Description: "Salir"}}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Elegir"},
		{Key: "Enter", Description: "Responder"},
		{Key: "Esc", Description: "Salir"},
	}
}

// Close abandons an unfinished session and stops any pending navigation.
// The session is marked first so a paced advance already running ends it
// rather than moving it.
func (p *Screen) Close() {
	if p.session != nil {
		_ = p.deps.Engine.Abandon(context.Background(), p.session)
	}
	if p.pacer != nil {
		p.pacer.Close()
	}
}

func (p *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case startedMsg:
		return p.handleStarted(msg)
	case gradedMsg:
		return p.handleGraded(msg)
	case advancedMsg:
		return p.handleAdvanced(msg)
	case tea.KeyMsg:
		return p.handleKey(msg)
	}
	return p, nil
}

func (p *Screen) start() tea.Cmd {
	engine, provider, lessonID := p.deps.Engine, p.deps.Content, p.lessonID
	return func() tea.Msg {
		ctx := context.Background()
		s, t, err := engine.Start(ctx, lessonID)
		if err != nil {
			return startedMsg{Err: err}
		}
		l, err := provider.Lesson(ctx, lessonID)
		if err != nil {
			// Titles and completion text are cosmetic.
			l = lesson.Lesson{ID: lessonID}
		}
		return startedMsg{Session: s, Target: t, Lesson: l}
	}
}

func (p *Screen) handleStarted(msg startedMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		p.deps.Log.Warn("lesson start failed", "lesson_id", p.lessonID, "error", msg.Err)
		t := p.deps.Engine.UnavailableFor(p.lessonID, msg.Err)
		return p, replaceWith(unavailable.New(t))
	}
	p.lesson = msg.Lesson
	p.bind(msg.Session)
	return p, p.apply(msg.Target)
}

func (p *Screen) bind(s *progression.Session) {
	p.session = s
	p.pacer = progression.NewPacer(p.deps.Engine, s, p.deps.Pacing)
}

// apply makes t the displayed target.
func (p *Screen) apply(t progression.Target) tea.Cmd {
	p.target = t
	p.result = nil
	p.busy = false
	p.errMsg = ""

	switch t.Kind {
	case progression.TargetCompleted:
		return replaceWith(completed.New(completed.Info{
			LessonID:    p.lessonID,
			LessonTitle: p.lesson.Title,
			Completion:  p.lesson.Completion,
			ReviewCount: p.session.Snapshot().ReviewCount,
			Stats:       p.deps.Rewards,
		}, p.replay))
	case progression.TargetUnavailable:
		return replaceWith(unavailable.New(t))
	}

	step, ok := p.session.CurrentStep()
	if !ok {
		t := p.deps.Engine.Unavailable(context.Background(), p.session, &lesson.NotFoundError{What: "step", ID: t.StepID})
		return replaceWith(unavailable.New(t))
	}
	p.step = step
	p.progress = p.session.Progress()

	switch step.Kind {
	case lesson.KindQuiz:
		labels := make([]string, len(step.Options))
		for i, o := range step.Options {
			labels[i] = o.Text
		}
		p.choice = components.NewMultiChoice(step.Prompt, labels)
	case lesson.KindTrueFalse:
		p.choice = components.NewMultiChoice(step.Prompt, []string{"Verdadero", "Falso"})
	case lesson.KindDragDrop:
		items := make([]string, len(step.Items))
		for i, it := range step.Items {
			items[i] = it.Text
		}
		cats := make([]string, len(step.Categories))
		for i, c := range step.Categories {
			cats[i] = c.Title
		}
		p.assign = components.NewAssigner(step.Prompt, items, cats)
	}
	return nil
}

// replay restarts the finished session from its first step.
func (p *Screen) replay() tea.Cmd {
	deps, l, s := p.deps, p.lesson, p.session
	return func() tea.Msg {
		t, err := deps.Engine.Restart(context.Background(), s)
		if err != nil {
			return router.ReplaceScreenMsg{Screen: unavailable.New(deps.Engine.UnavailableFor(l.ID, err))}
		}
		return router.ReplaceScreenMsg{Screen: resume(deps, l, s, t)}
	}
}

func (p *Screen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if p.session == nil || p.busy || p.result != nil {
		return p, nil
	}

	switch p.step.Kind {
	case lesson.KindContent:
		if msg.String() == "enter" {
			return p, p.submit(lesson.Answer{})
		}
	case lesson.KindQuiz, lesson.KindTrueFalse:
		p.choice, _ = p.choice.Update(msg)
		if p.choice.Submitted {
			return p, p.submit(p.choiceAnswer())
		}
	case lesson.KindDragDrop:
		p.assign, _ = p.assign.Update(msg)
		if p.assign.Submitted {
			return p, p.submit(p.placementAnswer())
		}
	}
	return p, nil
}

func (p *Screen) choiceAnswer() lesson.Answer {
	idx := p.choice.ChosenIndex
	if p.step.Kind == lesson.KindTrueFalse {
		v := idx == 0
		return lesson.Answer{Bool: &v}
	}
	if idx >= 0 && idx < len(p.step.Options) {
		return lesson.Answer{OptionID: p.step.Options[idx].ID}
	}
	return lesson.Answer{}
}

func (p *Screen) placementAnswer() lesson.Answer {
	placement := make(map[string]string, len(p.step.Items))
	for i, it := range p.step.Items {
		if c := p.assign.Placement[i]; c >= 0 {
			placement[it.ID] = p.step.Categories[c].ID
		}
	}
	return lesson.Answer{Placement: placement}
}

func (p *Screen) submit(a lesson.Answer) tea.Cmd {
	p.busy = true
	engine, s, stepID := p.deps.Engine, p.session, p.step.ID
	return func() tea.Msg {
		r, err := engine.Submit(context.Background(), s, stepID, a)
		return gradedMsg{Result: r, Err: err}
	}
}

func (p *Screen) handleGraded(msg gradedMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		p.busy = false
		if errors.Is(msg.Err, progression.ErrAdvanceInProgress) {
			return p, nil
		}
		p.errMsg = msg.Err.Error()
		return p, nil
	}

	// Content steps move on without a feedback pause.
	if p.step.Kind == lesson.KindContent {
		return p, p.advanceNow()
	}

	r := msg.Result
	p.result = &r
	p.reveal(r)

	ch, err := p.pacer.Schedule(progression.Outcome{WasCorrect: r.Correct})
	if err != nil {
		p.deps.Log.Debug("navigation dropped", "error", err)
		return p, nil
	}
	return p, waitFor(ch)
}

func (p *Screen) reveal(r lesson.Result) {
	switch p.step.Kind {
	case lesson.KindQuiz:
		for i, o := range p.step.Options {
			if o.ID == p.step.CorrectOption {
				p.choice.Reveal(i)
			}
		}
	case lesson.KindTrueFalse:
		if p.step.CorrectBool {
			p.choice.Reveal(0)
		} else {
			p.choice.Reveal(1)
		}
	case lesson.KindDragDrop:
		wrong := make(map[string]bool, len(r.Misplaced))
		for _, id := range r.Misplaced {
			wrong[id] = true
		}
		p.assign.Wrong = make(map[int]bool)
		for i, it := range p.step.Items {
			if wrong[it.ID] {
				p.assign.Wrong[i] = true
			}
		}
	}
}

func (p *Screen) advanceNow() tea.Cmd {
	engine, s := p.deps.Engine, p.session
	return func() tea.Msg {
		t, err := engine.Advance(context.Background(), s, progression.Outcome{WasCorrect: true})
		return advancedMsg{Target: t, Err: err}
	}
}

// waitFor delivers the paced result. A cancelled navigation yields no message.
func waitFor(ch <-chan progression.Result) tea.Cmd {
	return func() tea.Msg {
		r, ok := <-ch
		if !ok {
			return nil
		}
		return advancedMsg{Target: r.Target, Err: r.Err}
	}
}

func (p *Screen) handleAdvanced(msg advancedMsg) (screen.Screen, tea.Cmd) {
	if errors.Is(msg.Err, progression.ErrAdvanceInProgress) {
		return p, nil
	}
	// A failed advance still carries the unavailable target.
	return p, p.apply(msg.Target)
}

func replaceWith(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: s} }
}
