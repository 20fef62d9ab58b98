package service

import (
	"context"
	"log/slog"
	"time"

	"bizarre-bazaar/internal/logger"
	"bizarre-bazaar/internal/metrics"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	DefaultSessionIdleTTL = 30 * time.Minute
	DefaultMaxSessions    = 10000
)

// SessionService keeps one Dashboard per client. Sessions share the catalog
// and nothing else. A session idle for longer than the TTL is dropped, and
// when the cap is reached the least recently used one makes room.
type SessionService struct {
	catalog *CatalogService
	metrics *metrics.Metrics

	idleTTL     time.Duration
	maxSessions int
	sessions    *expirable.LRU[uuid.UUID, *Dashboard]
}

type SessionOption func(*SessionService)

// WithSessionIdleTTL sets how long an untouched session survives.
func WithSessionIdleTTL(ttl time.Duration) SessionOption {
	return func(s *SessionService) {
		if ttl > 0 {
			s.idleTTL = ttl
		}
	}
}

// WithMaxSessions caps the number of open sessions.
func WithMaxSessions(n int) SessionOption {
	return func(s *SessionService) {
		if n > 0 {
			s.maxSessions = n
		}
	}
}

func NewSessionService(catalog *CatalogService, m *metrics.Metrics, opts ...SessionOption) *SessionService {
	s := &SessionService{
		catalog:     catalog,
		metrics:     m,
		idleTTL:     DefaultSessionIdleTTL,
		maxSessions: DefaultMaxSessions,
	}
	for _, opt := range opts {
		opt(s)
	}
	// Fires for Close, idle expiry and cap eviction alike.
	s.sessions = expirable.NewLRU[uuid.UUID, *Dashboard](s.maxSessions, func(uuid.UUID, *Dashboard) {
		if s.metrics != nil {
			s.metrics.DashboardActive.Dec()
		}
	}, s.idleTTL)
	return s
}

// Open creates a signed-out dashboard and returns its id.
func (s *SessionService) Open(ctx context.Context) (string, *Dashboard) {
	id := uuid.New()
	d := NewDashboard(s.catalog)

	if s.metrics != nil {
		s.metrics.DashboardActive.Inc()
	}
	if s.sessions.Add(id, d) {
		logger.Warn(ctx, "Session cap reached, evicted least recently used", slog.Int("max_sessions", s.maxSessions))
	}
	logger.Info(ctx, "Session opened", slog.String("session_id", id.String()))
	return id.String(), d
}

// Get returns the session and restarts its idle timer.
func (s *SessionService) Get(id string) (*Dashboard, error) {
	key, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrSessionNotFound
	}

	d, ok := s.sessions.Get(key)
	if !ok {
		return nil, ErrSessionNotFound
	}
	// Re-adding an existing key only renews its expiry.
	s.sessions.Add(key, d)
	return d, nil
}

// Close forgets the session. Closing an unknown or expired id is an error so
// clients notice stale ids.
func (s *SessionService) Close(ctx context.Context, id string) error {
	key, err := uuid.Parse(id)
	if err != nil {
		return ErrSessionNotFound
	}

	if _, ok := s.sessions.Peek(key); !ok {
		return ErrSessionNotFound
	}
	if !s.sessions.Remove(key) {
		return ErrSessionNotFound
	}
	logger.Info(ctx, "Session closed", slog.String("session_id", id))
	return nil
}

// Len counts stored sessions, including expired ones not yet swept.
func (s *SessionService) Len() int {
	return s.sessions.Len()
}
