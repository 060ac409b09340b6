package service

import "errors"

// Centralized service layer errors.
// All errors returned by service methods are defined here for consistency
// and to make error handling in handlers predictable.

// ===== Coffee Errors =====
var (
	ErrCoffeeNotFound       = errors.New("coffee not found")
	ErrCoffeeNameRequired   = errors.New("coffee name is required")
	ErrCoffeeNameTooLong    = errors.New("coffee name too long")
	ErrRoasterRequired      = errors.New("roaster is required")
	ErrRoasterTooLong       = errors.New("roaster name too long")
	ErrOriginRequired       = errors.New("origin is required")
	ErrOriginTooLong        = errors.New("origin too long")
	ErrDescriptionTooLong   = errors.New("description too long")
	ErrInvalidRoastLevel    = errors.New("invalid roast level")
	ErrInvalidProcessMethod = errors.New("invalid process method")
	ErrSearchTermRequired   = errors.New("search term is required")
)

// ===== Flavor Note Errors =====
var (
	ErrFlavorNoteNotFound     = errors.New("flavor note not found")
	ErrFlavorNoteExists       = errors.New("flavor note already exists")
	ErrFlavorNoteNameRequired = errors.New("flavor note name is required")
	ErrFlavorNoteNameTooLong  = errors.New("flavor note name too long")
)

// ===== Review Errors =====
var (
	ErrInvalidRating      = errors.New("rating must be between 1 and 5")
	ErrAlreadyReviewed    = errors.New("coffee already reviewed by this user")
	ErrTooManyFlavorNotes = errors.New("too many flavor notes")
	ErrReviewTextTooLong  = errors.New("review text too long")
)

// ===== Quiz Errors =====
var (
	ErrInvalidQuizRoast     = errors.New("invalid quiz roast preference")
	ErrTooManyQuizFlavors   = errors.New("too many quiz flavor preferences")
	ErrQuizQuestionNotFound = errors.New("quiz question not found")
	ErrQuizQuestionExists   = errors.New("quiz question already exists")
	ErrInvalidAnswerType    = errors.New("invalid quiz answer type")
	ErrQuizOptionsRequired  = errors.New("quiz question needs at least one option")
)

// ===== Recommendation Errors =====
var (
	ErrInvalidLimit = errors.New("limit must be between 1 and 100")
)

// ===== Authorization Errors =====
var (
	ErrUserIDRequired = errors.New("user id is required")
)
