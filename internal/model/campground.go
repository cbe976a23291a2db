// Package model defines the records stored in the document store and the
// form types submitted against them.
package model

// Campground represents a listed campground
type Campground struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Image       string  `json:"image,omitempty"`
	Price       float64 `json:"price"`
	Description string  `json:"description,omitempty"`
	Location    string  `json:"location,omitempty"`

	// ReviewIDs holds ordered references to owned review records.
	// Reviews are stored in their own table, never embedded.
	ReviewIDs []string `json:"reviews"`

	// Reviews is populated on detail reads only (FETCH reviews).
	Reviews []*Review `json:"-"`
}

// Review represents a single review owned by exactly one campground
type Review struct {
	ID     string `json:"id"`
	Body   string `json:"body"`
	Rating int    `json:"rating"`
}
