// Package session keeps the live workflow controllers of the HTTP API in memory.
package session

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/23bam037-tech/HITHESH-P-H/internal/events"
	"github.com/23bam037-tech/HITHESH-P-H/internal/workflow"
)

// DefaultTTL is how long an untouched session is kept
const DefaultTTL = 2 * time.Hour

// NotFoundError is returned for unknown or expired session ids
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("session not found: %s", e.ID)
}

// ErrStoreClosed is returned by Create after Close
var ErrStoreClosed = errors.New("session store is closed")

// Factory returns the engines for a new session
type Factory func() workflow.Engines

type entry struct {
	ctrl     *workflow.Controller
	lastSeen time.Time
}

// Store maps session ids to controllers and expires idle ones
type Store struct {
	factory   Factory
	publisher events.Publisher
	broker    *events.Broker
	logger    *slog.Logger
	ttl       time.Duration
	now       func() time.Time

	mu       sync.Mutex
	sessions map[string]*entry
	closed   bool

	stop     chan struct{}
	stopOnce sync.Once
}

// Options configures a Store
type Options struct {
	TTL       time.Duration
	Publisher events.Publisher
	// Broker is told when a session ends so its subscribers are released
	Broker *events.Broker
	Logger *slog.Logger
}

// NewStore creates an empty store
func NewStore(factory Factory, opts Options) *Store {
	if opts.TTL <= 0 {
		opts.TTL = DefaultTTL
	}
	if opts.Publisher == nil {
		opts.Publisher = events.Discard{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Store{
		factory:   factory,
		publisher: opts.Publisher,
		broker:    opts.Broker,
		logger:    opts.Logger,
		ttl:       opts.TTL,
		now:       time.Now,
		sessions:  make(map[string]*entry),
		stop:      make(chan struct{}),
	}
}

// Create starts a new session with a fresh controller
func (s *Store) Create() (*workflow.Controller, error) {
	id := uuid.NewString()
	ctrl := workflow.New(s.factory(), workflow.Config{
		SessionID: id,
		Publisher: s.publisher,
		Logger:    s.logger,
	})

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		_ = ctrl.Close()
		return nil, ErrStoreClosed
	}
	s.sessions[id] = &entry{ctrl: ctrl, lastSeen: s.now()}
	count := len(s.sessions)
	s.mu.Unlock()

	s.logger.Info("session created", "session_id", id, "active", count)
	return ctrl, nil
}

// Get returns the controller for id and marks the session as used
func (s *Store) Get(id string) (*workflow.Controller, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[id]
	if !ok {
		return nil, &NotFoundError{ID: id}
	}
	e.lastSeen = s.now()
	return e.ctrl, nil
}

// Delete ends a session and releases its resources
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	e, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()

	if !ok {
		return &NotFoundError{ID: id}
	}
	s.end(id, e.ctrl)
	return nil
}

// Len returns the number of live sessions
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Store) end(id string, ctrl *workflow.Controller) {
	if err := ctrl.Close(); err != nil {
		s.logger.Warn("session close failed", "session_id", id, "error", err)
	}
	if s.broker != nil {
		s.broker.CloseSession(id)
	}
}

// Sweep removes sessions idle for longer than the TTL and returns how many were removed
func (s *Store) Sweep() int {
	cutoff := s.now().Add(-s.ttl)

	s.mu.Lock()
	expired := make(map[string]*workflow.Controller)
	for id, e := range s.sessions {
		if e.lastSeen.Before(cutoff) {
			expired[id] = e.ctrl
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()

	for id, ctrl := range expired {
		s.logger.Info("session expired", "session_id", id)
		s.end(id, ctrl)
	}
	return len(expired)
}

// StartSweeper sweeps on every interval until Close
func (s *Store) StartSweeper(interval time.Duration) {
	if interval <= 0 {
		interval = s.ttl / 4
	}
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.Sweep()
			case <-s.stop:
				return
			}
		}
	}()
}

// Close ends every session and stops the sweeper
func (s *Store) Close() {
	s.stopOnce.Do(func() { close(s.stop) })

	s.mu.Lock()
	s.closed = true
	all := s.sessions
	s.sessions = make(map[string]*entry)
	s.mu.Unlock()

	for id, e := range all {
		s.end(id, e.ctrl)
	}
}
