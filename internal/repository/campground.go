package repository

import (
	"context"
	"errors"

	"github.com/forgo/camp/internal/database"
	"github.com/forgo/camp/internal/model"
)

// CampgroundRepository handles campground data access
type CampgroundRepository struct {
	db database.Database
}

// NewCampgroundRepository creates a new campground repository
func NewCampgroundRepository(db database.Database) *CampgroundRepository {
	return &CampgroundRepository{db: db}
}

// List retrieves all campgrounds
func (r *CampgroundRepository) List(ctx context.Context) ([]*model.Campground, error) {
	query := `SELECT * FROM campground ORDER BY title`

	result, err := r.db.Query(ctx, query, nil)
	if err != nil {
		return nil, err
	}

	records := extractQueryResults(result)
	campgrounds := make([]*model.Campground, 0, len(records))
	for _, item := range records {
		if data, ok := item.(map[string]interface{}); ok {
			campgrounds = append(campgrounds, parseCampground(data))
		}
	}
	return campgrounds, nil
}

// GetByID retrieves a campground by ID with its reviews resolved.
// Returns (nil, nil) when the record does not exist.
func (r *CampgroundRepository) GetByID(ctx context.Context, id string) (*model.Campground, error) {
	id, ok := normalizeRecordID("campground", id)
	if !ok {
		return nil, nil
	}

	query := `SELECT * FROM type::record($id) FETCH reviews`
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
	return parseCampground(data), nil
}

// Create persists a new campground and returns its generated ID
func (r *CampgroundRepository) Create(ctx context.Context, input *model.CampgroundInput) (string, error) {
	query := `
		CREATE campground CONTENT {
			title: $title,
			image: $image,
			price: $price,
			description: $description,
			location: $location,
			reviews: []
		}
	`
	vars := map[string]interface{}{
		"title":       input.Title,
		"image":       input.Image,
		"price":       input.Price,
		"description": input.Description,
		"location":    input.Location,
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

// Update applies the input to an existing campground.
// Returns database.ErrNotFound when the record does not exist.
func (r *CampgroundRepository) Update(ctx context.Context, id string, input *model.CampgroundInput) error {
	id, ok := normalizeRecordID("campground", id)
	if !ok {
		return database.ErrNotFound
	}

	query := `
		UPDATE type::record($id) MERGE {
			title: $title,
			image: $image,
			price: $price,
			description: $description,
			location: $location
		} RETURN AFTER
	`
	vars := map[string]interface{}{
		"id":          id,
		"title":       input.Title,
		"image":       input.Image,
		"price":       input.Price,
		"description": input.Description,
		"location":    input.Location,
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return err
	}
	if len(extractQueryResults(result)) == 0 {
		return database.ErrNotFound
	}
	return nil
}

// Delete removes a campground record. Pruning the reviews it references is
// the pipeline's responsibility, not the repository's.
func (r *CampgroundRepository) Delete(ctx context.Context, id string) error {
	id, ok := normalizeRecordID("campground", id)
	if !ok {
		return nil
	}

	query := `DELETE type::record($id)`
	vars := map[string]interface{}{"id": id}
	return r.db.Execute(ctx, query, vars)
}

// AppendReview appends a review reference to the campground's owned list
func (r *CampgroundRepository) AppendReview(ctx context.Context, id, reviewID string) error {
	id, ok := normalizeRecordID("campground", id)
	if !ok {
		return database.ErrNotFound
	}
	reviewID, ok = normalizeRecordID("review", reviewID)
	if !ok {
		return database.ErrNotFound
	}

	query := `UPDATE type::record($id) SET reviews += type::record($review_id)`
	vars := map[string]interface{}{
		"id":        id,
		"review_id": reviewID,
	}
	return r.db.Execute(ctx, query, vars)
}

// RemoveReview removes a review reference from the campground's owned list,
// preserving the order of the remaining references
func (r *CampgroundRepository) RemoveReview(ctx context.Context, id, reviewID string) error {
	id, ok := normalizeRecordID("campground", id)
	if !ok {
		return database.ErrNotFound
	}
	reviewID, ok = normalizeRecordID("review", reviewID)
	if !ok {
		return database.ErrNotFound
	}

	query := `UPDATE type::record($id) SET reviews -= type::record($review_id)`
	vars := map[string]interface{}{
		"id":        id,
		"review_id": reviewID,
	}
	return r.db.Execute(ctx, query, vars)
}

// parseCampground decodes a campground record. The reviews field holds
// record references normally and full review objects after a FETCH; both
// shapes are handled.
func parseCampground(data map[string]interface{}) *model.Campground {
	campground := &model.Campground{
		ID:          convertSurrealID(data["id"]),
		Title:       getString(data, "title"),
		Image:       getString(data, "image"),
		Price:       getFloat(data, "price"),
		Description: getString(data, "description"),
		Location:    getString(data, "location"),
		ReviewIDs:   []string{},
	}

	refs, ok := data["reviews"].([]interface{})
	if !ok {
		return campground
	}

	for _, ref := range refs {
		if obj, ok := ref.(map[string]interface{}); ok {
			review := parseReview(obj)
			campground.ReviewIDs = append(campground.ReviewIDs, review.ID)
			campground.Reviews = append(campground.Reviews, review)
			continue
		}
		if id := convertSurrealID(ref); id != "" {
			campground.ReviewIDs = append(campground.ReviewIDs, id)
		}
	}
	return campground
}
