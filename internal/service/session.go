package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/forgo/camp/internal/model"
)

// SessionRepository defines the interface for session storage
type SessionRepository interface {
	Create(ctx context.Context, session *model.Session) error
	GetByToken(ctx context.Context, token string) (*model.Session, error)
	UpdateFlash(ctx context.Context, id string, flash map[string][]string) error
	Touch(ctx context.Context, id string, expiresOn time.Time) error
	DeleteByToken(ctx context.Context, token string) error
}

// SessionService owns session lifecycle and the per-session flash queues.
// The client only ever holds the opaque token; all state lives server-side.
type SessionService struct {
	repo SessionRepository
	ttl  time.Duration
	now  func() time.Time
}

// SessionServiceConfig holds configuration for the session service
type SessionServiceConfig struct {
	Repo SessionRepository
	TTL  time.Duration

	// Now overrides the clock, for tests. Defaults to time.Now.
	Now func() time.Time
}

// NewSessionService creates a new session service
func NewSessionService(cfg SessionServiceConfig) *SessionService {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &SessionService{
		repo: cfg.Repo,
		ttl:  cfg.TTL,
		now:  now,
	}
}

// Start creates a new session. userID may be empty for an anonymous session.
func (s *SessionService) Start(ctx context.Context, userID string) (*model.Session, error) {
	session := &model.Session{
		Token:     uuid.New().String(),
		UserID:    userID,
		Flash:     map[string][]string{},
		ExpiresOn: s.now().Add(s.ttl),
	}
	if err := s.repo.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Resolve looks up a session by token. A missing or expired token resolves
// to (nil, nil), anonymous rather than an error. Live sessions have their
// expiry refreshed.
func (s *SessionService) Resolve(ctx context.Context, token string) (*model.Session, error) {
	if token == "" {
		return nil, nil
	}

	session, err := s.repo.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, nil
	}

	if session.Expired(s.now()) {
		_ = s.repo.DeleteByToken(ctx, token)
		return nil, nil
	}

	session.ExpiresOn = s.now().Add(s.ttl)
	if err := s.repo.Touch(ctx, session.ID, session.ExpiresOn); err != nil {
		return nil, err
	}
	return session, nil
}

// Destroy deletes the session holding the given token. Idempotent.
func (s *SessionService) Destroy(ctx context.Context, token string) error {
	return s.repo.DeleteByToken(ctx, token)
}

// AddFlash enqueues a flash message under the given category
func (s *SessionService) AddFlash(ctx context.Context, session *model.Session, category, message string) error {
	if session == nil {
		return nil
	}
	if session.Flash == nil {
		session.Flash = map[string][]string{}
	}
	session.Flash[category] = append(session.Flash[category], message)
	return s.repo.UpdateFlash(ctx, session.ID, session.Flash)
}

// PopFlash drains every flash queue for rendering. Draining is destructive:
// a second pop returns nothing.
func (s *SessionService) PopFlash(ctx context.Context, session *model.Session) (map[string][]string, error) {
	if session == nil || len(session.Flash) == 0 {
		return map[string][]string{}, nil
	}

	drained := session.Flash
	session.Flash = map[string][]string{}
	if err := s.repo.UpdateFlash(ctx, session.ID, session.Flash); err != nil {
		return nil, err
	}
	return drained, nil
}
