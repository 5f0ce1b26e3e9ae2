package server

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var defaultOrigins = []string{
	"http://localhost:5173",
	"http://localhost:3000",
	"http://127.0.0.1:5173",
	"http://127.0.0.1:3000",
}

// Router builds the gin engine with every route.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(s.requestLog())
	r.Use(s.cors())

	r.GET("/healthcheck", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	api := r.Group("/api")
	{
		// Content
		api.GET("/lessons", s.listLessons)
		api.GET("/lessons/:id", s.getLesson)
		api.GET("/lessons/:id/steps/:stepId", s.getStep)

		// Review queue
		api.GET("/lessons/:id/review/status", s.reviewStatus)
		api.GET("/lessons/:id/review/next", s.reviewNext)
		api.POST("/lessons/:id/review/reset", s.reviewReset)
		api.POST("/lessons/:id/review/answers", s.reviewRecord)

		// Sessions
		api.POST("/sessions", s.startSession)
		api.GET("/sessions/:sid", s.getSession)
		api.POST("/sessions/:sid/answers", s.submitAnswer)
		api.POST("/sessions/:sid/advance", s.advance)
		api.POST("/sessions/:sid/restart", s.restart)
		api.DELETE("/sessions/:sid", s.endSession)

		// Curriculum and learner stats
		if s.learn != nil {
			api.GET("/learn/dashboard", s.dashboard)
			api.GET("/learn/curriculum", s.curriculum)
			api.GET("/learn/units/:id/skills", s.unitSkills)
			api.GET("/learn/skills/:id/lessons", s.skillLessons)
			api.GET("/learn/stats", s.learnerStats)
		}

		// Assistant
		if s.assistant != nil {
			api.GET("/chat", s.chatHistory)
			api.POST("/chat", s.chat)
			api.DELETE("/chat", s.clearChat)
		}
	}
	return r
}

func (s *Server) cors() gin.HandlerFunc {
	origins := s.origins
	if len(origins) == 0 {
		origins = defaultOrigins
	}
	return cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Content-Type", "X-Requested-With"},
	})
}

func (s *Server) requestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		s.log.Debug("request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status())
	}
}
