package review

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finko/finko/internal/apierr"
	"github.com/finko/finko/internal/remote"
)

// newReviewServer exposes a MemoryQueue over the review routes.
func newReviewServer(t *testing.T) *httptest.Server {
	t.Helper()
	q := NewMemoryQueue(testSteps())
	steps := testSteps()

	writeJSON := func(w http.ResponseWriter, status int, v any) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(v)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/lessons/{id}/review/status", func(w http.ResponseWriter, r *http.Request) {
		st, _ := q.Status(r.Context(), r.PathValue("id"))
		writeJSON(w, http.StatusOK, st)
	})
	mux.HandleFunc("GET /api/lessons/{id}/review/next", func(w http.ResponseWriter, r *http.Request) {
		step, err := q.Next(r.Context(), r.PathValue("id"))
		if IsQueueEmpty(err) {
			writeJSON(w, http.StatusNotFound, apierr.Envelope{Error: apierr.APIError{Message: err.Error(), Code: apierr.CodeQueueEmpty}})
			return
		}
		writeJSON(w, http.StatusOK, step)
	})
	mux.HandleFunc("POST /api/lessons/{id}/review/reset", func(w http.ResponseWriter, r *http.Request) {
		_ = q.Reset(r.Context(), r.PathValue("id"))
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("POST /api/lessons/{id}/review/answers", func(w http.ResponseWriter, r *http.Request) {
		var req recordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, apierr.Envelope{Error: apierr.APIError{Message: err.Error(), Code: apierr.CodeBadRequest}})
			return
		}
		_ = q.Record(r.Context(), r.PathValue("id"), steps[req.StepID], req.Correct)
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("GET /api/lessons/broken/review/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, apierr.Envelope{Error: apierr.APIError{Message: "bad", Code: apierr.CodeBadRequest}})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestHTTPQueueRoundTrip(t *testing.T) {
	srv := newReviewServer(t)
	q := NewHTTPQueue(remote.NewClient(srv.URL, remote.Options{RetryWaitTime: time.Millisecond}))
	ctx := context.Background()

	_, err := q.Next(ctx, "L1")
	assert.True(t, IsQueueEmpty(err), "got %v", err)

	require.NoError(t, q.Record(ctx, "L1", quizStep, false))
	st, err := q.Status(ctx, "L1")
	require.NoError(t, err)
	assert.Equal(t, Status{HasPending: true, PendingCount: 1, NextStepID: "quiz-1"}, st)

	next, err := q.Next(ctx, "L1")
	require.NoError(t, err)
	assert.Equal(t, quizStep, next)

	require.NoError(t, q.Reset(ctx, "L1"))
	st, err = q.Status(ctx, "L1")
	require.NoError(t, err)
	assert.False(t, st.HasPending)
}

func TestHTTPQueueError(t *testing.T) {
	srv := newReviewServer(t)
	q := NewHTTPQueue(remote.NewClient(srv.URL, remote.Options{RetryWaitTime: time.Millisecond}))

	_, err := q.Status(context.Background(), "broken")
	require.Error(t, err)
	assert.Equal(t, apierr.CodeBadRequest, remote.Code(err))
}
