// Package server exposes lessons, the review queue, progression sessions and
// the assistant over a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/finko/finko/internal/assistant"
	"github.com/finko/finko/internal/content"
	"github.com/finko/finko/internal/learn"
	"github.com/finko/finko/internal/logger"
	"github.com/finko/finko/internal/progression"
	"github.com/finko/finko/internal/review"
)

// Deps are the collaborators a Server serves.
type Deps struct {
	Content   content.Provider
	Queue     review.Queue
	Engine    *progression.Engine
	Assistant *assistant.Assistant
	Learn     *learn.Service
	Log       *logger.Logger

	// SessionTTL is how long an idle session survives. Zero disables eviction.
	SessionTTL time.Duration

	// AllowOrigins lists browser origins accepted by CORS.
	AllowOrigins []string
}

// Server is the finko API.
type Server struct {
	content   content.Provider
	queue     review.Queue
	engine    *progression.Engine
	assistant *assistant.Assistant
	learn     *learn.Service
	sessions  *Registry
	log       *logger.Logger
	ttl       time.Duration
	origins   []string
}

// New builds a server. Assistant may be nil, which disables /api/chat, and
// Learn may be nil, which disables /api/learn.
func New(d Deps) *Server {
	log := d.Log
	if log == nil {
		log = logger.Nop()
	}
	return &Server{
		content:   d.Content,
		queue:     d.Queue,
		engine:    d.Engine,
		assistant: d.Assistant,
		learn:     d.Learn,
		sessions:  NewRegistry(),
		log:       log.With("component", "server"),
		ttl:       d.SessionTTL,
		origins:   d.AllowOrigins,
	}
}

// Sessions exposes the live session registry.
func (s *Server) Sessions() *Registry {
	return s.sessions
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	var janitor *Janitor
	if s.ttl > 0 {
		j, err := StartJanitor("@every 1m", s.ttl, s.sessions, s.engine, s.log)
		if err != nil {
			return err
		}
		janitor = j
		defer janitor.Stop()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.log.Info("listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
