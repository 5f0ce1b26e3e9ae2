package server

import "github.com/gin-gonic/gin"

// GET /api/lessons
func (s *Server) listLessons(c *gin.Context) {
	lessons, err := s.content.Lessons(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	respondOK(c, lessons)
}

// GET /api/lessons/:id
func (s *Server) getLesson(c *gin.Context) {
	l, err := s.content.Lesson(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	respondOK(c, l)
}

// GET /api/lessons/:id/steps/:stepId
func (s *Server) getStep(c *gin.Context) {
	step, err := s.content.Step(c.Request.Context(), c.Param("id"), c.Param("stepId"))
	if err != nil {
		s.fail(c, err)
		return
	}
	respondOK(c, step)
}
