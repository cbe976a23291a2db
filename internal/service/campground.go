package service

import (
	"context"
	"errors"

	"github.com/forgo/camp/internal/database"
	"github.com/forgo/camp/internal/model"
)

// CampgroundRepository defines the interface for campground storage
type CampgroundRepository interface {
	List(ctx context.Context) ([]*model.Campground, error)
	GetByID(ctx context.Context, id string) (*model.Campground, error)
	Create(ctx context.Context, input *model.CampgroundInput) (string, error)
	Update(ctx context.Context, id string, input *model.CampgroundInput) error
	Delete(ctx context.Context, id string) error
	AppendReview(ctx context.Context, id, reviewID string) error
	RemoveReview(ctx context.Context, id, reviewID string) error
}

// ReviewRepository defines the interface for review storage
type ReviewRepository interface {
	Create(ctx context.Context, input *model.ReviewInput) (string, error)
	Delete(ctx context.Context, id string) error
}

// CampgroundService runs the per-request resource pipeline: validate, load,
// mutate, and keep the campground→review reference graph consistent. The
// read-then-write sequences are not guarded against concurrent requests
// touching the same campground; a simultaneous pair can lose an update.
type CampgroundService struct {
	campgrounds CampgroundRepository
	reviews     ReviewRepository
}

// CampgroundServiceConfig holds configuration for the campground service
type CampgroundServiceConfig struct {
	Campgrounds CampgroundRepository
	Reviews     ReviewRepository
}

// NewCampgroundService creates a new campground service
func NewCampgroundService(cfg CampgroundServiceConfig) *CampgroundService {
	return &CampgroundService{
		campgrounds: cfg.Campgrounds,
		reviews:     cfg.Reviews,
	}
}

// List retrieves all campgrounds
func (s *CampgroundService) List(ctx context.Context) ([]*model.Campground, error) {
	return s.campgrounds.List(ctx)
}

// Get loads a campground with its reviews resolved
func (s *CampgroundService) Get(ctx context.Context, id string) (*model.Campground, error) {
	campground, err := s.campgrounds.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if campground == nil {
		return nil, ErrCampgroundNotFound
	}
	return campground, nil
}

// Create validates the form and persists a new campground, returning its
// generated ID. Nothing is written when validation fails.
func (s *CampgroundService) Create(ctx context.Context, form model.CampgroundForm) (string, error) {
	input, messages := form.Validate()
	if messages != nil {
		return "", &ValidationError{Messages: messages}
	}
	return s.campgrounds.Create(ctx, input)
}

// Update validates the form and applies it to an existing campground.
// A missing ID surfaces as ErrCampgroundNotFound rather than the silent
// no-op the store would otherwise perform.
func (s *CampgroundService) Update(ctx context.Context, id string, form model.CampgroundForm) error {
	input, messages := form.Validate()
	if messages != nil {
		return &ValidationError{Messages: messages}
	}

	if err := s.campgrounds.Update(ctx, id, input); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return ErrCampgroundNotFound
		}
		return err
	}
	return nil
}

// Delete removes a campground and every review it references. Children go
// first, then the parent, so an interrupted delete never leaves the parent
// pointing at missing reviews. Deleting a missing campground is a no-op.
func (s *CampgroundService) Delete(ctx context.Context, id string) error {
	campground, err := s.campgrounds.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if campground == nil {
		return nil
	}

	for _, reviewID := range campground.ReviewIDs {
		if err := s.reviews.Delete(ctx, reviewID); err != nil {
			return err
		}
	}

	return s.campgrounds.Delete(ctx, id)
}

// AddReview validates the form, persists the review, then appends its
// reference to the parent. The review is written first: if the append fails
// the store holds an orphan review, which is recoverable. A dangling
// reference would not be.
func (s *CampgroundService) AddReview(ctx context.Context, campgroundID string, form model.ReviewForm) error {
	input, messages := form.Validate()
	if messages != nil {
		return &ValidationError{Messages: messages}
	}

	campground, err := s.campgrounds.GetByID(ctx, campgroundID)
	if err != nil {
		return err
	}
	if campground == nil {
		return ErrCampgroundNotFound
	}

	reviewID, err := s.reviews.Create(ctx, input)
	if err != nil {
		return err
	}

	return s.campgrounds.AppendReview(ctx, campgroundID, reviewID)
}

// DeleteReview prunes the reference from the parent's list, then deletes the
// review record. Pull-then-delete means no reader ever observes a reference
// to a missing review. Sibling references keep their order.
func (s *CampgroundService) DeleteReview(ctx context.Context, campgroundID, reviewID string) error {
	if err := s.campgrounds.RemoveReview(ctx, campgroundID, reviewID); err != nil {
		return err
	}
	return s.reviews.Delete(ctx, reviewID)
}
