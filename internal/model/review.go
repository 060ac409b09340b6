package model

import "time"

// Review is one user's tasting of one coffee. Flavor notes belong to the
// tasting, not to the coffee.
type Review struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	CoffeeID      string    `json:"coffee_id"`
	Rating        int       `json:"rating"`                 // 1-5
	FlavorNotes   []string  `json:"flavor_notes,omitempty"` // Flavor note IDs
	BrewingMethod *string   `json:"brewing_method,omitempty"`
	Text          *string   `json:"review,omitempty"`
	CreatedOn     time.Time `json:"created_on"`
}

// Review constraints
const (
	MinRating               = 1
	MaxRating               = 5
	MaxFlavorNotesPerReview = 10
	MaxReviewTextLength     = 2000
)

// CreateReviewRequest represents a request to review a coffee
type CreateReviewRequest struct {
	CoffeeID      string   `json:"coffee_id" validate:"required"`
	Rating        int      `json:"rating" validate:"required,min=1,max=5"`
	FlavorNotes   []string `json:"flavor_notes,omitempty" validate:"max=10,dive,required"`
	BrewingMethod *string  `json:"brewing_method,omitempty" validate:"omitempty,max=50"`
	Text          *string  `json:"review,omitempty" validate:"omitempty,max=2000"`
}

// RatingSummary aggregates community ratings for a coffee
type RatingSummary struct {
	CoffeeID      string  `json:"coffee_id"`
	ReviewCount   int     `json:"review_count"`
	AverageRating float64 `json:"average_rating"`
}
