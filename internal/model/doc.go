// Package model defines domain entities and data structures for the Cuppa API.
//
// The model package contains the catalogue types (Coffee, FlavorNote), user
// activity (Review, Favorite), the taste quiz, recommendation inputs and
// outputs, request types and RFC 9457 error definitions. Models are shared
// by every layer and carry no behavior beyond small validity helpers.
//
// # JSON Serialization
//
// All models use snake_case json struct tags:
//
//	type Coffee struct {
//	    ID         string `json:"id"`
//	    RoastLevel string `json:"roast_level"`
//	}
//
// # Request Validation
//
// Request types carry go-playground/validator tags. The handler layer runs
// them and reports failures as FieldError values:
//
//	type CreateReviewRequest struct {
//	    CoffeeID string `json:"coffee_id" validate:"required"`
//	    Rating   int    `json:"rating" validate:"required,min=1,max=5"`
//	}
//
// # Identifiers
//
// Identifiers are SurrealDB record ids rendered as strings ("coffee:abc").
// User ids are opaque strings taken from the authenticated token subject.
package model
