package repository

import (
	"context"
	"errors"
	"time"

	"github.com/forgo/camp/internal/database"
	"github.com/forgo/camp/internal/model"
)

// SessionRepository handles session data access
type SessionRepository struct {
	db database.Database
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db database.Database) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create persists a new session
func (r *SessionRepository) Create(ctx context.Context, session *model.Session) error {
	query := `
		CREATE session CONTENT {
			token: $token,
			user_id: $user_id,
			flash: $flash,
			expires_on: <datetime> $expires_on
		}
	`
	vars := map[string]interface{}{
		"token":      session.Token,
		"user_id":    session.UserID,
		"flash":      session.Flash,
		"expires_on": session.ExpiresOn.UTC().Format(time.RFC3339Nano),
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return err
	}

	id := extractCreatedID(result)
	if id == "" {
		return errors.New("create returned no record")
	}
	session.ID = id
	return nil
}

// GetByToken retrieves a session by its opaque token. Returns (nil, nil)
// when no session holds that token.
func (r *SessionRepository) GetByToken(ctx context.Context, token string) (*model.Session, error) {
	query := `SELECT * FROM session WHERE token = $token LIMIT 1`
	vars := map[string]interface{}{"token": token}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	data, ok := result.(map[string]interface{})
	if !ok {
		return nil, errors.New("unexpected result format")
	}
	return parseSession(data), nil
}

// UpdateFlash replaces the session's flash queues
func (r *SessionRepository) UpdateFlash(ctx context.Context, id string, flash map[string][]string) error {
	query := `UPDATE type::record($id) SET flash = $flash`
	vars := map[string]interface{}{
		"id":    id,
		"flash": flash,
	}
	return r.db.Execute(ctx, query, vars)
}

// Touch pushes the session's expiry forward
func (r *SessionRepository) Touch(ctx context.Context, id string, expiresOn time.Time) error {
	query := `UPDATE type::record($id) SET expires_on = <datetime> $expires_on`
	vars := map[string]interface{}{
		"id":         id,
		"expires_on": expiresOn.UTC().Format(time.RFC3339Nano),
	}
	return r.db.Execute(ctx, query, vars)
}

// DeleteByToken removes the session holding the given token. Deleting a
// token with no session is not an error.
func (r *SessionRepository) DeleteByToken(ctx context.Context, token string) error {
	query := `DELETE session WHERE token = $token`
	vars := map[string]interface{}{"token": token}
	return r.db.Execute(ctx, query, vars)
}

func parseSession(data map[string]interface{}) *model.Session {
	session := &model.Session{
		ID:     convertSurrealID(data["id"]),
		Token:  getString(data, "token"),
		UserID: convertSurrealID(data["user_id"]),
		Flash:  map[string][]string{},
	}

	if raw, ok := data["flash"].(map[string]interface{}); ok {
		for category, queue := range raw {
			if items, ok := queue.([]interface{}); ok {
				for _, item := range items {
					if msg, ok := item.(string); ok {
						session.Flash[category] = append(session.Flash[category], msg)
					}
				}
			}
		}
	}

	if t := getTime(data, "expires_on"); t != nil {
		session.ExpiresOn = *t
	}
	return session
}
