package sessions

import (
	"log/slog"
	"sync"
	"time"

	"github.com/nfrund/finassist/internal/assistant"
)

const (
	// DefaultTTL is how long an untouched browser session is kept.
	DefaultTTL = 30 * time.Minute

	// DefaultSweepInterval is how often idle sessions are looked for.
	DefaultSweepInterval = time.Minute
)

// Factory builds the controller for a new browser session.
type Factory func(id string) (*assistant.Controller, error)

type entry struct {
	controller *assistant.Controller
	lastSeen   time.Time
}

// Registry maps browser session IDs to their controllers and forgets
// sessions that have been idle for longer than the TTL.
type Registry struct {
	mu      sync.Mutex
	entries map[string]*entry
	factory Factory
	logger  *slog.Logger
	now     func() time.Time

	ttl           time.Duration
	sweepInterval time.Duration
	stopSweep     chan struct{}
	stopOnce      sync.Once
}

// Option is a function that configures a Registry.
type Option func(*Registry)

func WithTTL(d time.Duration) Option {
	return func(r *Registry) {
		r.ttl = d
	}
}

// WithSweepInterval sets how often idle sessions are removed. Zero disables
// the background sweep; Sweep can still be called directly.
func WithSweepInterval(d time.Duration) Option {
	return func(r *Registry) {
		r.sweepInterval = d
	}
}

func WithClock(now func() time.Time) Option {
	return func(r *Registry) {
		r.now = now
	}
}

// New creates a registry and starts its sweeper.
func New(factory Factory, opts ...Option) *Registry {
	r := &Registry{
		entries:       make(map[string]*entry),
		factory:       factory,
		logger:        slog.Default().With("service", "sessions"),
		now:           time.Now,
		ttl:           DefaultTTL,
		sweepInterval: DefaultSweepInterval,
		stopSweep:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.sweepInterval > 0 {
		go r.startSweep()
	}
	return r
}

// Get returns the controller for id, creating it on first use, and marks the
// session as active.
func (r *Registry) Get(id string) (*assistant.Controller, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.entries[id]; ok {
		e.lastSeen = r.now()
		return e.controller, nil
	}

	ctrl, err := r.factory(id)
	if err != nil {
		return nil, err
	}
	r.entries[id] = &entry{controller: ctrl, lastSeen: r.now()}
	r.logger.Debug("Session created", "session_id", id)
	return ctrl, nil
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Sweep drops every session idle for longer than the TTL and reports how many
// were dropped.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	threshold := r.now().Add(-r.ttl)
	removed := 0
	for id, e := range r.entries {
		if e.lastSeen.Before(threshold) {
			delete(r.entries, id)
			removed++
		}
	}
	if removed > 0 {
		r.logger.Info("Expired idle sessions", "count", removed, "remaining", len(r.entries))
	}
	return removed
}

func (r *Registry) startSweep() {
	ticker := time.NewTicker(r.sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			r.Sweep()
		case <-r.stopSweep:
			return
		}
	}
}

// Shutdown stops the sweeper. It is safe to call more than once.
func (r *Registry) Shutdown() {
	r.stopOnce.Do(func() { close(r.stopSweep) })
}
