package server

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finko/finko/internal/apierr"
	"github.com/finko/finko/internal/content"
	"github.com/finko/finko/internal/learn"
	"github.com/finko/finko/internal/progression"
	"github.com/finko/finko/internal/review"
	"github.com/finko/finko/internal/rewards"
	"github.com/finko/finko/internal/store"
)

func newLearnServer(t *testing.T) *testServer {
	t.Helper()
	catalog, err := content.LoadDefault("dev")
	require.NoError(t, err)
	st, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	events := st.EventRepo()
	queue := review.NewMemoryQueue(catalog)
	srv := New(Deps{
		Content: catalog,
		Queue:   queue,
		Engine:  progression.NewEngine(catalog, queue, nil, progression.WithJournal(events)),
		Learn:   learn.NewService(catalog, catalog, rewards.NewService(events, catalog)),
	})
	return &testServer{srv: srv, router: srv.Router()}
}

func TestLearnRoutes(t *testing.T) {
	ts := newLearnServer(t)

	w := ts.do(t, http.MethodGet, "/api/learn/curriculum", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]content.Unit](t, w), 6)

	d := decode[learn.Dashboard](t, ts.do(t, http.MethodGet, "/api/learn/dashboard", nil))
	assert.Zero(t, d.GeneralProgress)
	assert.Zero(t, d.Stats.Coins)

	// Play L1 to the end without mistakes.
	started := decode[sessionResponse](t, ts.do(t, http.MethodPost, "/api/sessions", startRequest{LessonID: "L1"}))
	var last sessionResponse
	for range 3 {
		w := ts.do(t, http.MethodPost, "/api/sessions/"+started.Session.ID+"/advance", progression.Outcome{WasCorrect: true})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		last = decode[sessionResponse](t, w)
	}
	require.Equal(t, progression.TargetCompleted, last.Target.Kind)

	d = decode[learn.Dashboard](t, ts.do(t, http.MethodGet, "/api/learn/dashboard", nil))
	assert.Equal(t, 33, d.GeneralProgress)
	assert.Equal(t, 33, d.Units[0].Progress)
	assert.Equal(t, 1, d.Stats.LevelsCompleted)
	assert.Equal(t, 1, d.Stats.CurrentStreak)

	skills := decode[[]learn.SkillView](t, ts.do(t, http.MethodGet, "/api/learn/units/unit1/skills", nil))
	require.Len(t, skills, 5)
	assert.Equal(t, "skill1-3", skills[2].ID)
	assert.Equal(t, 100, skills[2].Progress)

	lessons := decode[[]learn.LessonView](t, ts.do(t, http.MethodGet, "/api/learn/skills/skill1-3/lessons", nil))
	require.Len(t, lessons, 1)
	assert.True(t, lessons[0].Completed)

	stats := decode[rewards.Stats](t, ts.do(t, http.MethodGet, "/api/learn/stats", nil))
	assert.Equal(t, 1, stats.TimesCompleted("L1"))
	assert.True(t, stats.Achievements[0].Earned)
}

func TestLearnRoutesNotFound(t *testing.T) {
	ts := newLearnServer(t)

	w := ts.do(t, http.MethodGet, "/api/learn/units/unit99/skills", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, apierr.CodeNotFound, decode[apierr.Envelope](t, w).Error.Code)

	w = ts.do(t, http.MethodGet, "/api/learn/skills/nope/lessons", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLearnRoutesDisabledWithoutService(t *testing.T) {
	ts := newTestServer(t, nil)
	w := ts.do(t, http.MethodGet, "/api/learn/dashboard", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
