package content

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
	"golang.org/x/sync/singleflight"

	"github.com/finko/finko/internal/apierr"
	"github.com/finko/finko/internal/lesson"
	"github.com/finko/finko/internal/remote"
)

// HTTPProvider reads lessons from a finko API server.
type HTTPProvider struct {
	client *resty.Client
	group  singleflight.Group
}

// NewHTTPProvider wraps a client rooted at the server's base URL.
func NewHTTPProvider(client *resty.Client) *HTTPProvider {
	return &HTTPProvider{client: client}
}

func (p *HTTPProvider) Lessons(ctx context.Context) ([]Summary, error) {
	var out []Summary
	resp, err := p.client.R().
		SetContext(ctx).
		SetResult(&out).
		SetError(&apierr.Envelope{}).
		Get("/api/lessons")
	if err != nil {
		return nil, fmt.Errorf("list lessons: %w", err)
	}
	if err := remote.ResponseError(resp); err != nil {
		return nil, fmt.Errorf("list lessons: %w", err)
	}
	return out, nil
}

// Units fetches the curriculum.
func (p *HTTPProvider) Units(ctx context.Context) ([]Unit, error) {
	var out []Unit
	resp, err := p.client.R().
		SetContext(ctx).
		SetResult(&out).
		SetError(&apierr.Envelope{}).
		Get("/api/learn/curriculum")
	if err != nil {
		return nil, fmt.Errorf("get curriculum: %w", err)
	}
	if err := remote.ResponseError(resp); err != nil {
		return nil, fmt.Errorf("get curriculum: %w", err)
	}
	return out, nil
}

// Lesson fetches a lesson. Concurrent calls for the same id share one request.
func (p *HTTPProvider) Lesson(ctx context.Context, lessonID string) (lesson.Lesson, error) {
	v, err, _ := p.group.Do(lessonID, func() (any, error) {
		var l lesson.Lesson
		resp, err := p.client.R().
			SetContext(ctx).
			SetPathParam("id", lessonID).
			SetResult(&l).
			SetError(&apierr.Envelope{}).
			Get("/api/lessons/{id}")
		if err != nil {
			return nil, fmt.Errorf("get lesson %s: %w", lessonID, err)
		}
		if err := checkResponse(resp, lessonID, "lesson", lessonID); err != nil {
			return nil, err
		}
		return l, nil
	})
	if err != nil {
		return lesson.Lesson{}, err
	}
	l := v.(lesson.Lesson)
	// Callers may mutate their copy.
	l.Steps = append([]lesson.Step(nil), l.Steps...)
	return l, nil
}

func (p *HTTPProvider) Steps(ctx context.Context, lessonID string) ([]lesson.Step, error) {
	l, err := p.Lesson(ctx, lessonID)
	if err != nil {
		return nil, err
	}
	return l.Steps, nil
}

func (p *HTTPProvider) Step(ctx context.Context, lessonID, stepID string) (lesson.Step, error) {
	var s lesson.Step
	resp, err := p.client.R().
		SetContext(ctx).
		SetPathParams(map[string]string{"id": lessonID, "stepId": stepID}).
		SetResult(&s).
		SetError(&apierr.Envelope{}).
		Get("/api/lessons/{id}/steps/{stepId}")
	if err != nil {
		return lesson.Step{}, fmt.Errorf("get step %s/%s: %w", lessonID, stepID, err)
	}
	if err := checkResponse(resp, lessonID, "step", stepID); err != nil {
		return lesson.Step{}, err
	}
	return s, nil
}

// checkResponse maps 404 to *lesson.NotFoundError and 422 to
// *lesson.ContentError so remote content fails the same way local content does.
func checkResponse(resp *resty.Response, lessonID, what, id string) error {
	err := remote.ResponseError(resp)
	if err == nil {
		return nil
	}
	switch remote.StatusCode(err) {
	case http.StatusNotFound:
		return fmt.Errorf("%w: %v", &lesson.NotFoundError{What: what, ID: id}, err)
	case http.StatusUnprocessableEntity:
		return &lesson.ContentError{LessonID: lessonID, Reason: err.Error()}
	}
	return fmt.Errorf("get %s %s: %w", what, id, err)
}
