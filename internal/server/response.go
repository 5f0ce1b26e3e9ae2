package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finko/finko/internal/apierr"
	"github.com/finko/finko/internal/lesson"
	"github.com/finko/finko/internal/progression"
	"github.com/finko/finko/internal/review"
)

// unavailableEnvelope is the 422 body: the error plus the target the client
// should show.
type unavailableEnvelope struct {
	Error  apierr.APIError    `json:"error"`
	Target progression.Target `json:"target"`
}

func respondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, apierr.Envelope{Error: apierr.APIError{Message: msg, Code: code}})
}

func respondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// classify maps domain errors to an HTTP status and error code.
func classify(err error) *apierr.Error {
	var ae *apierr.Error
	switch {
	case errors.As(err, &ae):
		return ae
	case lesson.IsContentError(err):
		return apierr.New(http.StatusUnprocessableEntity, apierr.CodeLessonUnavailable, err)
	case lesson.IsNotFound(err):
		return apierr.New(http.StatusNotFound, apierr.CodeNotFound, err)
	case review.IsQueueEmpty(err):
		return apierr.New(http.StatusNotFound, apierr.CodeQueueEmpty, err)
	case errors.Is(err, progression.ErrAdvanceInProgress):
		return apierr.New(http.StatusConflict, apierr.CodeAdvanceInProgress, err)
	case errors.Is(err, progression.ErrSessionCompleted):
		return apierr.New(http.StatusConflict, apierr.CodeBadRequest, err)
	}
	return apierr.New(http.StatusInternalServerError, apierr.CodeInternal, err)
}

func (s *Server) fail(c *gin.Context, err error) {
	ae := classify(err)
	if ae.Status >= http.StatusInternalServerError {
		s.log.Error("request failed", "path", c.FullPath(), "error", err)
	}
	respondError(c, ae.Status, ae.Code, err)
}

// failLesson is fail for errors that make a lesson unplayable: content
// errors also carry the unavailable target.
func (s *Server) failLesson(c *gin.Context, target progression.Target, err error) {
	ae := classify(err)
	if ae.Code != apierr.CodeLessonUnavailable {
		s.fail(c, err)
		return
	}
	c.JSON(ae.Status, unavailableEnvelope{
		Error:  apierr.APIError{Message: err.Error(), Code: ae.Code},
		Target: target,
	})
}
