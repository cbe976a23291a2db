package repository

import (
	"context"
	"errors"

	"github.com/forgo/camp/internal/database"
	"github.com/forgo/camp/internal/model"
)

// ReviewRepository handles review data access
type ReviewRepository struct {
	db database.Database
}

// NewReviewRepository creates a new review repository
func NewReviewRepository(db database.Database) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// Create persists a new review and returns its generated ID
func (r *ReviewRepository) Create(ctx context.Context, input *model.ReviewInput) (string, error) {
	query := `
		CREATE review CONTENT {
			body: $body,
			rating: $rating
		}
	`
	vars := map[string]interface{}{
		"body":   input.Body,
		"rating": input.Rating,
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return "", err
	}

	id := extractCreatedID(result)
	if id == "" {
		return "", errors.New("create returned no record")
	}
	return id, nil
}

// GetByID retrieves a review by ID. Returns (nil, nil) when the record does
// not exist.
func (r *ReviewRepository) GetByID(ctx context.Context, id string) (*model.Review, error) {
	id, ok := normalizeRecordID("review", id)
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
	return parseReview(data), nil
}

// Delete removes a review record
func (r *ReviewRepository) Delete(ctx context.Context, id string) error {
	id, ok := normalizeRecordID("review", id)
	if !ok {
		return nil
	}

	query := `DELETE type::record($id)`
	vars := map[string]interface{}{"id": id}
	return r.db.Execute(ctx, query, vars)
}

func parseReview(data map[string]interface{}) *model.Review {
	return &model.Review{
		ID:     convertSurrealID(data["id"]),
		Body:   getString(data, "body"),
		Rating: getInt(data, "rating"),
	}
}
