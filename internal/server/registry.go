package server

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/finko/finko/internal/logger"
	"github.com/finko/finko/internal/progression"
)

type entry struct {
	session  *progression.Session
	lastSeen time.Time
}

// Registry holds the live sessions of the API server.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*entry
	now      func() time.Time
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*entry), now: time.Now}
}

// Put adds a session.
func (r *Registry) Put(s *progression.Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID] = &entry{session: s, lastSeen: r.now()}
}

// Get returns a session and marks it as recently used.
func (r *Registry) Get(id string) (*progression.Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.sessions[id]
	if !ok {
		return nil, false
	}
	e.lastSeen = r.now()
	return e.session, true
}

// Remove drops a session and returns it.
func (r *Registry) Remove(id string) (*progression.Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.sessions[id]
	if !ok {
		return nil, false
	}
	delete(r.sessions, id)
	return e.session, true
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Expire removes sessions idle for longer than ttl that are not mid-advance,
// and returns them.
func (r *Registry) Expire(ttl time.Duration) []*progression.Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	cutoff := r.now().Add(-ttl)
	var out []*progression.Session
	for id, e := range r.sessions {
		if e.lastSeen.Before(cutoff) && !e.session.InProgress() {
			delete(r.sessions, id)
			out = append(out, e.session)
		}
	}
	return out
}

// Janitor periodically evicts idle sessions, abandoning the unfinished ones.
type Janitor struct {
	cron *cron.Cron
}

// StartJanitor schedules eviction on a cron spec such as "@every 1m".
func StartJanitor(spec string, ttl time.Duration, reg *Registry, engine *progression.Engine, log *logger.Logger) (*Janitor, error) {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		expired := reg.Expire(ttl)
		for _, s := range expired {
			if err := engine.Abandon(context.Background(), s); err != nil {
				log.Debug("abandon deferred to running advance", "session_id", s.ID)
			}
		}
		if len(expired) > 0 {
			log.Info("evicted idle sessions", "count", len(expired), "live", reg.Len())
		}
	})
	if err != nil {
		return nil, err
	}
	c.Start()
	return &Janitor{cron: c}, nil
}

// Stop halts the schedule and waits for a running sweep.
func (j *Janitor) Stop() {
	<-j.cron.Stop().Done()
}
