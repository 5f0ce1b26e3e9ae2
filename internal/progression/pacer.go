package progression

import (
	"context"
	"errors"
	"sync"
	"time"
)

// DefaultPacing is how long feedback stays on screen before navigating.
const DefaultPacing = 500 * time.Millisecond

// ErrPacerClosed is returned when scheduling on a closed pacer.
var ErrPacerClosed = errors.New("pacer closed")

// Result is a delayed Advance outcome.
type Result struct {
	Target Target
	Err    error
}

// Pacer runs Advance for one session after a delay, so the learner gets to
// read the feedback first. Close drops a pending navigation and waits for one
// already running; once it returns no result is ever delivered.
type Pacer struct {
	engine  *Engine
	session *Session
	delay   time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	timer   *time.Timer
	pending chan Result
	gen     uint64
	closed  bool
	wg      sync.WaitGroup
}

// NewPacer binds a pacer to s. A zero delay navigates without a pause; a
// negative one selects DefaultPacing.
func NewPacer(e *Engine, s *Session, delay time.Duration) *Pacer {
	if delay < 0 {
		delay = DefaultPacing
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Pacer{engine: e, session: s, delay: delay, ctx: ctx, cancel: cancel}
}

// Delay returns the configured pacing delay.
func (p *Pacer) Delay() time.Duration {
	return p.delay
}

// Schedule arranges for Advance(o) to run after the delay. The returned
// channel yields one Result, or is closed empty if the navigation is
// cancelled. Scheduling while a navigation is pending fails with
// ErrAdvanceInProgress.
func (p *Pacer) Schedule(o Outcome) (<-chan Result, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil, ErrPacerClosed
	}
	if p.pending != nil {
		return nil, ErrAdvanceInProgress
	}

	ch := make(chan Result, 1)
	p.pending = ch
	p.gen++
	gen := p.gen
	p.wg.Add(1)
	p.timer = time.AfterFunc(p.delay, func() { p.fire(gen, o) })
	return ch, nil
}

func (p *Pacer) fire(gen uint64, o Outcome) {
	defer p.wg.Done()

	p.mu.Lock()
	stale := p.closed || p.gen != gen
	p.mu.Unlock()
	if stale {
		return
	}

	target, err := p.engine.Advance(p.ctx, p.session, o)

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed || p.gen != gen {
		return
	}
	ch := p.pending
	p.pending = nil
	p.timer = nil
	ch <- Result{Target: target, Err: err}
	close(ch)
}

// Pending reports whether a navigation is scheduled.
func (p *Pacer) Pending() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pending != nil
}

func (p *Pacer) dropLocked() {
	if p.timer != nil && p.timer.Stop() {
		// The callback will never run.
		p.wg.Done()
	}
	p.timer = nil
	if p.pending != nil {
		close(p.pending)
		p.pending = nil
	}
	p.gen++
}

// Close cancels any pending navigation and waits for an in-flight Advance
// to return. It is safe to call more than once.
func (p *Pacer) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	p.dropLocked()
	p.mu.Unlock()

	p.cancel()
	p.wg.Wait()
}
