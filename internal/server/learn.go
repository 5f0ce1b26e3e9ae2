package server

import "github.com/gin-gonic/gin"

// GET /api/learn/dashboard
func (s *Server) dashboard(c *gin.Context) {
	d, err := s.learn.Dashboard(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	respondOK(c, d)
}

// GET /api/learn/curriculum
func (s *Server) curriculum(c *gin.Context) {
	units, err := s.learn.Curriculum(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	respondOK(c, units)
}

// GET /api/learn/units/:id/skills
func (s *Server) unitSkills(c *gin.Context) {
	skills, err := s.learn.UnitSkills(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	respondOK(c, skills)
}

// GET /api/learn/skills/:id/lessons
func (s *Server) skillLessons(c *gin.Context) {
	lessons, err := s.learn.SkillLessons(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	respondOK(c, lessons)
}

// GET /api/learn/stats
func (s *Server) learnerStats(c *gin.Context) {
	st, err := s.learn.Stats(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	respondOK(c, st)
}
