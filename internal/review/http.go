package review

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"

	"github.com/finko/finko/internal/apierr"
	"github.com/finko/finko/internal/lesson"
	"github.com/finko/finko/internal/remote"
)

// HTTPQueue talks to the review endpoints of a finko API server.
type HTTPQueue struct {
	client *resty.Client
}

// NewHTTPQueue wraps a client rooted at the server's base URL.
func NewHTTPQueue(client *resty.Client) *HTTPQueue {
	return &HTTPQueue{client: client}
}

type recordRequest struct {
	StepID  string `json:"stepId"`
	Correct bool   `json:"correct"`
}

func (q *HTTPQueue) request(ctx context.Context, lessonID string) *resty.Request {
	return q.client.R().
		SetContext(ctx).
		SetPathParam("id", lessonID).
		SetError(&apierr.Envelope{})
}

func (q *HTTPQueue) Status(ctx context.Context, lessonID string) (Status, error) {
	var st Status
	resp, err := q.request(ctx, lessonID).
		SetResult(&st).
		Get("/api/lessons/{id}/review/status")
	if err != nil {
		return Status{}, fmt.Errorf("review status %s: %w", lessonID, err)
	}
	if err := remote.ResponseError(resp); err != nil {
		return Status{}, fmt.Errorf("review status %s: %w", lessonID, err)
	}
	return st, nil
}

func (q *HTTPQueue) Next(ctx context.Context, lessonID string) (lesson.Step, error) {
	var step lesson.Step
	resp, err := q.request(ctx, lessonID).
		SetResult(&step).
		Get("/api/lessons/{id}/review/next")
	if err != nil {
		return lesson.Step{}, fmt.Errorf("review next %s: %w", lessonID, err)
	}
	if err := remote.ResponseError(resp); err != nil {
		if remote.Code(err) == apierr.CodeQueueEmpty {
			return lesson.Step{}, ErrQueueEmpty
		}
		return lesson.Step{}, fmt.Errorf("review next %s: %w", lessonID, err)
	}
	return step, nil
}

func (q *HTTPQueue) Reset(ctx context.Context, lessonID string) error {
	resp, err := q.request(ctx, lessonID).Post("/api/lessons/{id}/review/reset")
	if err != nil {
		return fmt.Errorf("review reset %s: %w", lessonID, err)
	}
	if err := remote.ResponseError(resp); err != nil {
		return fmt.Errorf("review reset %s: %w", lessonID, err)
	}
	return nil
}

func (q *HTTPQueue) Record(ctx context.Context, lessonID string, step lesson.Step, correct bool) error {
	if !step.Kind.Reviewable() {
		return nil
	}
	resp, err := q.request(ctx, lessonID).
		SetBody(recordRequest{StepID: step.ID, Correct: correct}).
		Post("/api/lessons/{id}/review/answers")
	if err != nil {
		return fmt.Errorf("record review %s/%s: %w", lessonID, step.ID, err)
	}
	if err := remote.ResponseError(resp); err != nil {
		return fmt.Errorf("record review %s/%s: %w", lessonID, step.ID, err)
	}
	return nil
}
