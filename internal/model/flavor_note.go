package model

import "time"

// FlavorNote is a free-text tasting tag such as "Blueberry"
type FlavorNote struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Category  *string   `json:"category,omitempty"`
	CreatedOn time.Time `json:"created_on"`
}

// MaxFlavorNoteNameLength bounds flavor note names
const MaxFlavorNoteNameLength = 50

// CreateFlavorNoteRequest represents a request to add a flavor note
type CreateFlavorNoteRequest struct {
	Name     string  `json:"name" validate:"required,max=50"`
	Category *string `json:"category,omitempty" validate:"omitempty,max=50"`
}
