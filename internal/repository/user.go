package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/forgo/camp/internal/database"
	"github.com/forgo/camp/internal/model"
)

// UserRepository handles user data access
type UserRepository struct {
	db database.Database
}

// NewUserRepository creates a new user repository
func NewUserRepository(db database.Database) *UserRepository {
	return &UserRepository{db: db}
}

// Create persists a new user. Returns database.ErrDuplicate when the email
// is already registered.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	query := `
		CREATE user CONTENT {
			email: $email,
			hash: $hash,
			created_on: time::now()
		}
	`
	vars := map[string]interface{}{
		"email": user.Email,
		"hash":  user.Hash,
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("%w: email %s", database.ErrDuplicate, user.Email)
		}
		return err
	}

	id := extractCreatedID(result)
	if id == "" {
		return errors.New("create returned no record")
	}
	user.ID = id
	return nil
}

// GetByEmail retrieves a user by email. Returns (nil, nil) when no user has
// that email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT * FROM user WHERE email = $email LIMIT 1`
	vars := map[string]interface{}{"email": email}

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
	return parseUser(data), nil
}

// GetByID retrieves a user by ID. Returns (nil, nil) when the record does
// not exist.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	id, ok := normalizeRecordID("user", id)
	if !ok {
		return nil, nil
	}

	query := `SELECT * FROM type::record($id)`
	vars := map[string]interface{}{"id": id}

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
	return parseUser(data), nil
}

func parseUser(data map[string]interface{}) *model.User {
	user := &model.User{
		ID:    convertSurrealID(data["id"]),
		Email: getString(data, "email"),
		Hash:  getString(data, "hash"),
	}
	if t := getTime(data, "created_on"); t != nil {
		user.CreatedOn = *t
	}
	return user
}
