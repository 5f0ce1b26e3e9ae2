package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finko/finko/internal/apierr"
	"github.com/finko/finko/internal/assistant"
)

type chatRequest struct {
	Text string `json:"text"`
}

// GET /api/chat
func (s *Server) chatHistory(c *gin.Context) {
	respondOK(c, gin.H{"messages": s.assistant.History()})
}

// POST /api/chat
func (s *Server) chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, apierr.CodeBadRequest, err)
		return
	}
	reply, err := s.assistant.Send(c.Request.Context(), req.Text)
	if errors.Is(err, assistant.ErrEmptyMessage) {
		respondError(c, http.StatusBadRequest, apierr.CodeBadRequest, err)
		return
	}
	if err != nil {
		s.fail(c, err)
		return
	}
	respondOK(c, reply)
}

// DELETE /api/chat
func (s *Server) clearChat(c *gin.Context) {
	s.assistant.Clear()
	c.Status(http.StatusNoContent)
}
