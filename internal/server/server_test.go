package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finko/finko/internal/apierr"
	"github.com/finko/finko/internal/assistant"
	"github.com/finko/finko/internal/content"
	"github.com/finko/finko/internal/lesson"
	"github.com/finko/finko/internal/progression"
	"github.com/finko/finko/internal/remote"
	"github.com/finko/finko/internal/review"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	srv    *Server
	router *gin.Engine
}

func newTestServer(t *testing.T, provider content.Provider) *testServer {
	t.Helper()
	if provider == nil {
		catalog, err := content.LoadDefault("dev")
		require.NoError(t, err)
		provider = catalog
	}
	queue := review.NewMemoryQueue(provider)
	srv := New(Deps{
		Content:   provider,
		Queue:     queue,
		Engine:    progression.NewEngine(provider, queue, nil),
		Assistant: assistant.New(nil, assistant.DefaultConfig(), nil),
	})
	return &testServer{srv: srv, router: srv.Router()}
}

func (ts *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestHealthcheck(t *testing.T) {
	ts := newTestServer(t, nil)
	w := ts.do(t, http.MethodGet, "/healthcheck", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}

func TestLessonRoutes(t *testing.T) {
	ts := newTestServer(t, nil)

	w := ts.do(t, http.MethodGet, "/api/lessons", nil)
	require.Equal(t, http.StatusOK, w.Code)
	summaries := decode[[]content.Summary](t, w)
	ids := make([]string, len(summaries))
	for i, s := range summaries {
		ids[i] = s.ID
	}
	assert.Contains(t, ids, "L1")

	w = ts.do(t, http.MethodGet, "/api/lessons/L1/steps/quiz-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	step := decode[lesson.Step](t, w)
	assert.Equal(t, lesson.KindQuiz, step.Kind)

	w = ts.do(t, http.MethodGet, "/api/lessons/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, apierr.CodeNotFound, decode[apierr.Envelope](t, w).Error.Code)
}

func TestSessionFlow_L1WithReview(t *testing.T) {
	ts := newTestServer(t, nil)

	w := ts.do(t, http.MethodPost, "/api/sessions", startRequest{LessonID: "L1"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	started := decode[sessionResponse](t, w)
	assert.Equal(t, "content-1", started.Target.StepID)
	assert.Equal(t, progression.SurfaceLessonContent, started.Target.Surface)
	sid := started.Session.ID

	answer := func(stepID string, a lesson.Answer) answerResponse {
		t.Helper()
		w := ts.do(t, http.MethodPost, "/api/sessions/"+sid+"/answers", answerRequest{StepID: stepID, Answer: a})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		return decode[answerResponse](t, w)
	}

	r := answer("content-1", lesson.Answer{})
	assert.Equal(t, "quiz-1", r.Target.StepID)

	r = answer("quiz-1", lesson.Answer{OptionID: "a"})
	assert.False(t, r.Result.Correct)
	assert.Equal(t, "true-false-1", r.Target.StepID)
	assert.Equal(t, progression.ModeNormal, r.Target.Mode)

	yes := true
	r = answer("true-false-1", lesson.Answer{Bool: &yes})
	assert.True(t, r.Result.Correct)
	assert.Equal(t, "quiz-1", r.Target.StepID)
	assert.Equal(t, progression.ModeReview, r.Target.Mode)
	assert.Equal(t, progression.SurfaceLessonQuiz, r.Target.Surface)

	r = answer("quiz-1", lesson.Answer{OptionID: "b"})
	assert.True(t, r.Result.Correct)
	assert.Equal(t, progression.TargetCompleted, r.Target.Kind)
	assert.True(t, r.Session.Completed)
	assert.Equal(t, 1, r.Session.ReviewCount)

	w = ts.do(t, http.MethodGet, "/api/lessons/L1/review/status", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, decode[review.Status](t, w).HasPending)
}

func TestSessionAdvanceAndRestart(t *testing.T) {
	ts := newTestServer(t, nil)
	started := decode[sessionResponse](t, ts.do(t, http.MethodPost, "/api/sessions", startRequest{LessonID: "L1"}))
	sid := started.Session.ID

	w := ts.do(t, http.MethodPost, "/api/sessions/"+sid+"/advance", progression.Outcome{WasCorrect: true})
	require.Equal(t, http.StatusOK, w.Code)
	adv := decode[sessionResponse](t, w)
	assert.Equal(t, "quiz-1", adv.Target.StepID)
	assert.Equal(t, 2, adv.Session.Step)
	assert.Equal(t, 3, adv.Session.Total)

	w = ts.do(t, http.MethodPost, "/api/sessions/"+sid+"/restart", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "content-1", decode[sessionResponse](t, w).Target.StepID)

	w = ts.do(t, http.MethodGet, "/api/sessions/"+sid, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "content-1", decode[sessionView](t, w).CurrentStepID)
}

func TestSubmitWrongStep(t *testing.T) {
	ts := newTestServer(t, nil)
	started := decode[sessionResponse](t, ts.do(t, http.MethodPost, "/api/sessions", startRequest{LessonID: "L1"}))

	w := ts.do(t, http.MethodPost, "/api/sessions/"+started.Session.ID+"/answers", answerRequest{StepID: "quiz-1"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSessionErrors(t *testing.T) {
	ts := newTestServer(t, nil)

	w := ts.do(t, http.MethodPost, "/api/sessions", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(t, http.MethodPost, "/api/sessions", startRequest{LessonID: "missing"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = ts.do(t, http.MethodPost, "/api/sessions/unknown/advance", progression.Outcome{})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// brokenProvider serves a lesson whose steps repeat an id.
type brokenProvider struct {
	*content.Catalog
}

func (brokenProvider) Steps(context.Context, string) ([]lesson.Step, error) {
	return []lesson.Step{
		{ID: "x", Kind: lesson.KindContent},
		{ID: "x", Kind: lesson.KindContent},
	}, nil
}

func TestStartSession_ContentErrorIsUnavailable(t *testing.T) {
	catalog, err := content.LoadDefault("dev")
	require.NoError(t, err)
	ts := newTestServer(t, brokenProvider{catalog})

	w := ts.do(t, http.MethodPost, "/api/sessions", startRequest{LessonID: "L1"})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	body := decode[unavailableEnvelope](t, w)
	assert.Equal(t, apierr.CodeLessonUnavailable, body.Error.Code)
	assert.Equal(t, progression.TargetUnavailable, body.Target.Kind)
	assert.Equal(t, progression.SurfaceLessonUnavailable, body.Target.Surface)
	assert.Equal(t, "L1", body.Target.LessonID)
}

func TestEndSession(t *testing.T) {
	ts := newTestServer(t, nil)
	started := decode[sessionResponse](t, ts.do(t, http.MethodPost, "/api/sessions", startRequest{LessonID: "L1"}))
	sid := started.Session.ID

	assert.Equal(t, http.StatusNoContent, ts.do(t, http.MethodDelete, "/api/sessions/"+sid, nil).Code)
	assert.Equal(t, http.StatusNotFound, ts.do(t, http.MethodDelete, "/api/sessions/"+sid, nil).Code)
	assert.Equal(t, 0, ts.srv.Sessions().Len())
}

// stallingQueue holds Status until release is closed.
type stallingQueue struct {
	review.Queue
	entered chan struct{}
	release chan struct{}
}

func (q *stallingQueue) Status(ctx context.Context, lessonID string) (review.Status, error) {
	close(q.entered)
	<-q.release
	return q.Queue.Status(ctx, lessonID)
}

func TestEndSession_ConflictWhileAdvancing(t *testing.T) {
	catalog, err := content.LoadDefault("dev")
	require.NoError(t, err)
	queue := &stallingQueue{
		Queue:   review.NewMemoryQueue(catalog),
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	srv := New(Deps{
		Content:   catalog,
		Queue:     queue,
		Engine:    progression.NewEngine(catalog, queue, nil),
		Assistant: assistant.New(nil, assistant.DefaultConfig(), nil),
	})
	ts := &testServer{srv: srv, router: srv.Router()}

	started := decode[sessionResponse](t, ts.do(t, http.MethodPost, "/api/sessions", startRequest{LessonID: "L1"}))
	sid := started.Session.ID
	for range 2 {
		require.Equal(t, http.StatusOK, ts.do(t, http.MethodPost, "/api/sessions/"+sid+"/advance", progression.Outcome{WasCorrect: true}).Code)
	}

	done := make(chan *httptest.ResponseRecorder)
	go func() {
		done <- ts.do(t, http.MethodPost, "/api/sessions/"+sid+"/advance", progression.Outcome{WasCorrect: true})
	}()
	<-queue.entered

	w := ts.do(t, http.MethodDelete, "/api/sessions/"+sid, nil)
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, apierr.CodeAdvanceInProgress, decode[apierr.Envelope](t, w).Error.Code)

	w = ts.do(t, http.MethodGet, "/api/sessions/"+sid, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "true-false-1", decode[sessionView](t, w).CurrentStepID)

	close(queue.release)
	adv := <-done
	require.Equal(t, http.StatusOK, adv.Code)
	assert.Equal(t, progression.TargetCompleted, decode[sessionResponse](t, adv).Target.Kind)

	assert.Equal(t, http.StatusNoContent, ts.do(t, http.MethodDelete, "/api/sessions/"+sid, nil).Code)
	assert.Equal(t, 0, ts.srv.Sessions().Len())
}

func TestReviewRoutes(t *testing.T) {
	ts := newTestServer(t, nil)

	w := ts.do(t, http.MethodGet, "/api/lessons/L1/review/next", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, apierr.CodeQueueEmpty, decode[apierr.Envelope](t, w).Error.Code)

	w = ts.do(t, http.MethodPost, "/api/lessons/L1/review/answers", recordRequest{StepID: "quiz-1", Correct: false})
	require.Equal(t, http.StatusNoContent, w.Code)

	w = ts.do(t, http.MethodGet, "/api/lessons/L1/review/status", nil)
	st := decode[review.Status](t, w)
	assert.Equal(t, review.Status{HasPending: true, PendingCount: 1, NextStepID: "quiz-1"}, st)

	w = ts.do(t, http.MethodGet, "/api/lessons/L1/review/next", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "quiz-1", decode[lesson.Step](t, w).ID)

	require.Equal(t, http.StatusNoContent, ts.do(t, http.MethodPost, "/api/lessons/L1/review/reset", nil).Code)
	st = decode[review.Status](t, ts.do(t, http.MethodGet, "/api/lessons/L1/review/status", nil))
	assert.False(t, st.HasPending)

	w = ts.do(t, http.MethodPost, "/api/lessons/L1/review/answers", recordRequest{StepID: "ghost"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestChatRoutes(t *testing.T) {
	ts := newTestServer(t, nil)

	w := ts.do(t, http.MethodPost, "/api/chat", chatRequest{Text: "¿qué es un presupuesto?"})
	require.Equal(t, http.StatusOK, w.Code)
	reply := decode[assistant.Message](t, w)
	assert.Equal(t, assistant.SenderIA, reply.Sender)
	assert.Contains(t, reply.Text, "presupuesto")

	w = ts.do(t, http.MethodPost, "/api/chat", chatRequest{Text: "  "})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(t, http.MethodGet, "/api/chat", nil)
	history := decode[struct {
		Messages []assistant.Message `json:"messages"`
	}](t, w)
	assert.Len(t, history.Messages, 3)

	assert.Equal(t, http.StatusNoContent, ts.do(t, http.MethodDelete, "/api/chat", nil).Code)
}

// The HTTP clients and the server must agree on the wire contract.
func TestRemoteClientsAgainstServer(t *testing.T) {
	ts := newTestServer(t, nil)
	httpSrv := httptest.NewServer(ts.router)
	defer httpSrv.Close()

	client := remote.NewClient(httpSrv.URL, remote.Options{RetryCount: 1, RetryWaitTime: time.Millisecond})
	provider := content.NewHTTPProvider(client)
	queue := review.NewHTTPQueue(client)
	ctx := context.Background()

	l, err := provider.Lesson(ctx, "L1")
	require.NoError(t, err)
	assert.Len(t, l.Steps, 3)

	_, err = provider.Step(ctx, "L1", "ghost")
	assert.True(t, lesson.IsNotFound(err), "got %v", err)

	quiz, err := provider.Step(ctx, "L1", "quiz-1")
	require.NoError(t, err)

	_, err = queue.Next(ctx, "L1")
	assert.ErrorIs(t, err, review.ErrQueueEmpty)

	require.NoError(t, queue.Record(ctx, "L1", quiz, false))
	st, err := queue.Status(ctx, "L1")
	require.NoError(t, err)
	assert.Equal(t, 1, st.PendingCount)

	next, err := queue.Next(ctx, "L1")
	require.NoError(t, err)
	assert.Equal(t, "quiz-1", next.ID)

	require.NoError(t, queue.Reset(ctx, "L1"))
	st, err = queue.Status(ctx, "L1")
	require.NoError(t, err)
	assert.False(t, st.HasPending)

	engine := progression.NewEngine(provider, queue, nil)
	_, target, err := engine.Start(ctx, "L1")
	require.NoError(t, err)
	assert.Equal(t, "content-1", target.StepID)
}
