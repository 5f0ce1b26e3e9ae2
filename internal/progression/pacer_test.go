package progression

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestPacerDeliversAfterDelay(t *testing.T) {
	e, _ := newTestEngine(t)
	s, _, err := e.Start(context.Background(), "L1")
	require.NoError(t, err)

	p := NewPacer(e, s, 20*time.Millisecond)
	defer p.Close()

	start := time.Now()
	ch, err := p.Schedule(Outcome{WasCorrect: true})
	require.NoError(t, err)
	assert.True(t, p.Pending())

	res, ok := <-ch
	require.True(t, ok)
	require.NoError(t, res.Err)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
	assert.Equal(t, "quiz-1", res.Target.StepID)
	assert.False(t, p.Pending())

	_, ok = <-ch
	assert.False(t, ok, "channel closes after the result")
}

func TestPacerDebounces(t *testing.T) {
	e, _ := newTestEngine(t)
	s, _, err := e.Start(context.Background(), "L1")
	require.NoError(t, err)

	p := NewPacer(e, s, time.Hour)
	defer p.Close()

	_, err = p.Schedule(Outcome{WasCorrect: true})
	require.NoError(t, err)
	_, err = p.Schedule(Outcome{WasCorrect: true})
	assert.ErrorIs(t, err, ErrAdvanceInProgress)
}

func TestPacerZeroDelayNavigatesAtOnce(t *testing.T) {
	e, _ := newTestEngine(t)
	s, _, err := e.Start(context.Background(), "L1")
	require.NoError(t, err)

	p := NewPacer(e, s, 0)
	defer p.Close()
	assert.Zero(t, p.Delay())

	ch, err := p.Schedule(Outcome{WasCorrect: true})
	require.NoError(t, err)
	select {
	case res := <-ch:
		require.NoError(t, res.Err)
		assert.Equal(t, "quiz-1", res.Target.StepID)
	case <-time.After(time.Second):
		t.Fatal("no navigation with zero pacing")
	}

	neg := NewPacer(e, s, -time.Second)
	defer neg.Close()
	assert.Equal(t, DefaultPacing, neg.Delay())
}

func TestPacerSchedulesAgainAfterDelivery(t *testing.T) {
	e, _ := newTestEngine(t)
	s, _, err := e.Start(context.Background(), "L1")
	require.NoError(t, err)

	p := NewPacer(e, s, time.Millisecond)
	defer p.Close()

	for _, want := range []string{"quiz-1", "true-false-1"} {
		ch, err := p.Schedule(Outcome{WasCorrect: true})
		require.NoError(t, err)
		res, ok := <-ch
		require.True(t, ok)
		assert.Equal(t, want, res.Target.StepID)
	}
}

func TestPacerCloseStopsDelivery(t *testing.T) {
	e, _ := newTestEngine(t)
	s, _, err := e.Start(context.Background(), "L1")
	require.NoError(t, err)

	p := NewPacer(e, s, 10*time.Millisecond)
	ch, err := p.Schedule(Outcome{WasCorrect: true})
	require.NoError(t, err)

	p.Close()
	p.Close()

	_, ok := <-ch
	assert.False(t, ok)
	_, err = p.Schedule(Outcome{WasCorrect: true})
	assert.ErrorIs(t, err, ErrPacerClosed)
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, "content-1", s.CurrentStepID)
}

func TestPacerCloseWaitsForInflightAdvance(t *testing.T) {
	e, _ := newTestEngine(t)
	s, _, err := e.Start(context.Background(), "L1")
	require.NoError(t, err)
	s.CurrentStepID = "true-false-1"

	bq := &blockingQueue{
		Queue:   e.queue,
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	e.queue = bq

	p := NewPacer(e, s, time.Millisecond)
	ch, err := p.Schedule(Outcome{WasCorrect: true})
	require.NoError(t, err)

	<-bq.entered
	// Close cancels the pacer context, which unblocks the queue call.
	p.Close()
	assert.False(t, s.InProgress())

	_, ok := <-ch
	assert.False(t, ok, "no result after Close")
}
