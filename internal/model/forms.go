package model

import (
	"strconv"
	"strings"
)

// Form types carry raw HTML form values. Validate checks a form against its
// schema in declaration order and returns either the normalized input or the
// ordered list of violation messages. Validation always runs before any
// repository write.

// CampgroundForm is the raw campground create/update form
type CampgroundForm struct {
	Title       string
	Image       string
	Price       string
	Description string
	Location    string
}

// CampgroundInput is a validated, normalized campground body
type CampgroundInput struct {
	Title       string
	Image       string
	Price       float64
	Description string
	Location    string
}

// Validate checks the form in schema order: title, image, price, description,
// location. Returns the typed input, or the violation messages if any field
// fails.
func (f CampgroundForm) Validate() (*CampgroundInput, []string) {
	var messages []string

	title := strings.TrimSpace(f.Title)
	if title == "" {
		messages = append(messages, "Title cannot be empty.")
	}

	price := 0.0
	if raw := strings.TrimSpace(f.Price); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		switch {
		case err != nil:
			messages = append(messages, "Price must be a number.")
		case parsed < 0:
			messages = append(messages, "Price cannot be negative.")
		default:
			price = parsed
		}
	}

	if messages != nil {
		return nil, messages
	}

	return &CampgroundInput{
		Title:       title,
		Image:       strings.TrimSpace(f.Image),
		Price:       price,
		Description: strings.TrimSpace(f.Description),
		Location:    strings.TrimSpace(f.Location),
	}, nil
}

// ReviewForm is the raw review create form
type ReviewForm struct {
	Body   string
	Rating string
}

// ReviewInput is a validated, normalized review body
type ReviewInput struct {
	Body   string
	Rating int
}

// Validate checks the form in schema order: body, rating
func (f ReviewForm) Validate() (*ReviewInput, []string) {
	var messages []string

	body := strings.TrimSpace(f.Body)
	if body == "" {
		messages = append(messages, "Review cannot be empty.")
	}

	rating := 0
	raw := strings.TrimSpace(f.Rating)
	parsed, err := strconv.Atoi(raw)
	switch {
	case raw == "" || err != nil:
		messages = append(messages, "Rating must be a number.")
	case parsed < 1 || parsed > 5:
		messages = append(messages, "Rating must be between 1 and 5.")
	default:
		rating = parsed
	}

	if messages != nil {
		return nil, messages
	}

	return &ReviewInput{Body: body, Rating: rating}, nil
}
