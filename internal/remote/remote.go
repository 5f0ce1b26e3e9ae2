// Package remote builds the resty clients used to talk to a finko API server.
package remote

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/finko/finko/internal/apierr"
)

// Options tunes a client. Zero values select defaults.
type Options struct {
	Timeout       time.Duration
	RetryCount    int
	RetryWaitTime time.Duration
}

// NewClient returns a resty client rooted at baseURL. Transport failures and
// 5xx responses are retried here so callers never loop themselves.
func NewClient(baseURL string, opts Options) *resty.Client {
	if opts.Timeout == 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.RetryCount == 0 {
		opts.RetryCount = 2
	}
	if opts.RetryWaitTime == 0 {
		opts.RetryWaitTime = 200 * time.Millisecond
	}
	return resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(opts.Timeout).
		SetHeader("Accept", "application/json").
		SetRetryCount(opts.RetryCount).
		SetRetryWaitTime(opts.RetryWaitTime).
		SetRetryMaxWaitTime(4 * opts.RetryWaitTime).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || (r != nil && r.StatusCode() >= http.StatusInternalServerError)
		})
}

// ResponseError converts an error response into *apierr.Error, reading the
// envelope when the server sent one. It returns nil for 2xx responses.
func ResponseError(resp *resty.Response) error {
	if !resp.IsError() {
		return nil
	}
	e := &apierr.Error{Status: resp.StatusCode()}
	if env, ok := resp.Error().(*apierr.Envelope); ok && env != nil && env.Error.Code != "" {
		e.Code = env.Error.Code
		e.Err = errors.New(env.Error.Message)
		return e
	}
	e.Err = fmt.Errorf("%s %s: %s", resp.Request.Method, resp.Request.URL, resp.Status())
	return e
}

// Code returns the apierr code carried by err, if any.
func Code(err error) string {
	var e *apierr.Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var e *apierr.Error
	if errors.As(err, &e) {
		return e.Status
	}
	return 0
}
