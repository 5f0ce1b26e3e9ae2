package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finko/finko/internal/apierr"
	"github.com/finko/finko/internal/lesson"
	"github.com/finko/finko/internal/progression"
)

type startRequest struct {
	LessonID string `json:"lessonId" binding:"required"`
}

type answerRequest struct {
	StepID string        `json:"stepId" binding:"required"`
	Answer lesson.Answer `json:"answer"`
}

type sessionView struct {
	ID            string           `json:"id"`
	LessonID      string           `json:"lessonId"`
	CurrentStepID string           `json:"currentStepId"`
	Mode          progression.Mode `json:"mode"`
	Completed     bool             `json:"completed"`
	LastCorrect   *bool            `json:"lastCorrect,omitempty"`
	ReviewCount   int              `json:"reviewCount"`
	Step          int              `json:"step"`
	Total         int              `json:"total"`
	Percent       int              `json:"percent"`
}

type sessionResponse struct {
	Session sessionView        `json:"session"`
	Target  progression.Target `json:"target"`
}

type answerResponse struct {
	Result  lesson.Result      `json:"result"`
	Session sessionView        `json:"session"`
	Target  progression.Target `json:"target"`
}

func viewOf(sess *progression.Session) sessionView {
	snap := sess.Snapshot()
	return sessionView{
		ID:            snap.ID,
		LessonID:      snap.LessonID,
		CurrentStepID: snap.CurrentStepID,
		Mode:          snap.Mode,
		Completed:     snap.Completed,
		LastCorrect:   snap.LastCorrect,
		ReviewCount:   snap.ReviewCount,
		Step:          snap.Progress.Number,
		Total:         snap.Progress.Total,
		Percent:       snap.Progress.Percent(),
	}
}

func (s *Server) session(c *gin.Context) (*progression.Session, bool) {
	sess, ok := s.sessions.Get(c.Param("sid"))
	if !ok {
		respondError(c, http.StatusNotFound, apierr.CodeNotFound, fmt.Errorf("session %q not found", c.Param("sid")))
		return nil, false
	}
	return sess, true
}

// POST /api/sessions
func (s *Server) startSession(c *gin.Context) {
	var req startRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, apierr.CodeBadRequest, err)
		return
	}
	sess, target, err := s.engine.Start(c.Request.Context(), req.LessonID)
	if err != nil {
		s.failLesson(c, s.engine.UnavailableFor(req.LessonID, err), err)
		return
	}
	s.sessions.Put(sess)
	c.JSON(http.StatusCreated, sessionResponse{Session: viewOf(sess), Target: target})
}

// GET /api/sessions/:sid
func (s *Server) getSession(c *gin.Context) {
	sess, ok := s.session(c)
	if !ok {
		return
	}
	respondOK(c, viewOf(sess))
}

// POST /api/sessions/:sid/answers grades the answer and advances.
func (s *Server) submitAnswer(c *gin.Context) {
	sess, ok := s.session(c)
	if !ok {
		return
	}
	var req answerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, apierr.CodeBadRequest, err)
		return
	}

	ctx := c.Request.Context()
	result, err := s.engine.Submit(ctx, sess, req.StepID, req.Answer)
	if err != nil {
		s.fail(c, err)
		return
	}
	target, err := s.engine.Advance(ctx, sess, progression.Outcome{WasCorrect: result.Correct})
	if err != nil {
		s.failLesson(c, target, err)
		return
	}
	respondOK(c, answerResponse{Result: result, Session: viewOf(sess), Target: target})
}

// POST /api/sessions/:sid/advance
func (s *Server) advance(c *gin.Context) {
	sess, ok := s.session(c)
	if !ok {
		return
	}
	var o progression.Outcome
	if err := c.ShouldBindJSON(&o); err != nil {
		respondError(c, http.StatusBadRequest, apierr.CodeBadRequest, err)
		return
	}
	target, err := s.engine.Advance(c.Request.Context(), sess, o)
	if err != nil {
		s.failLesson(c, target, err)
		return
	}
	respondOK(c, sessionResponse{Session: viewOf(sess), Target: target})
}

// POST /api/sessions/:sid/restart
func (s *Server) restart(c *gin.Context) {
	sess, ok := s.session(c)
	if !ok {
		return
	}
	target, err := s.engine.Restart(c.Request.Context(), sess)
	if err != nil {
		s.fail(c, err)
		return
	}
	respondOK(c, sessionResponse{Session: viewOf(sess), Target: target})
}

// DELETE /api/sessions/:sid answers 409 while the session is advancing.
func (s *Server) endSession(c *gin.Context) {
	sess, ok := s.session(c)
	if !ok {
		return
	}
	if sess.InProgress() {
		s.fail(c, progression.ErrAdvanceInProgress)
		return
	}
	s.sessions.Remove(sess.ID)
	if err := s.engine.Abandon(c.Request.Context(), sess); err != nil {
		// An advance started after the check; it ends the session itself.
		s.log.Debug("abandon deferred to running advance", "session_id", sess.ID)
	}
	c.Status(http.StatusNoContent)
}
