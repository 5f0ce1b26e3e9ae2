package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finko/finko/internal/apierr"
)

type recordRequest struct {
	StepID  string `json:"stepId" binding:"required"`
	Correct bool   `json:"correct"`
}

// GET /api/lessons/:id/review/status
func (s *Server) reviewStatus(c *gin.Context) {
	st, err := s.queue.Status(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	respondOK(c, st)
}

// GET /api/lessons/:id/review/next
func (s *Server) reviewNext(c *gin.Context) {
	step, err := s.queue.Next(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	respondOK(c, step)
}

// POST /api/lessons/:id/review/reset
func (s *Server) reviewReset(c *gin.Context) {
	if err := s.queue.Reset(c.Request.Context(), c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// POST /api/lessons/:id/review/answers
func (s *Server) reviewRecord(c *gin.Context) {
	var req recordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, apierr.CodeBadRequest, err)
		return
	}
	ctx := c.Request.Context()
	lessonID := c.Param("id")
	step, err := s.content.Step(ctx, lessonID, req.StepID)
	if err != nil {
		s.fail(c, err)
		return
	}
	if err := s.queue.Record(ctx, lessonID, step, req.Correct); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
