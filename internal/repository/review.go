package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/forgo/cuppa/internal/database"
	"github.com/forgo/cuppa/internal/model"
)

// ReviewRepository handles coffee review data access
type ReviewRepository struct {
	db database.Database
}

// NewReviewRepository creates a new review repository
func NewReviewRepository(db database.Database) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// Create stores a review. A user may review a coffee once.
func (r *ReviewRepository) Create(ctx context.Context, review *model.Review) error {
	flavorNotes := review.FlavorNotes
	if flavorNotes == nil {
		flavorNotes = []string{}
	}

	content := map[string]interface{}{
		"user_id":      review.UserID,
		"rating":       review.Rating,
		"flavor_notes": flavorNotes,
	}
	optionalFields(content, map[string]*string{
		"brewing_method": review.BrewingMethod,
		"text":           review.Text,
	})

	query := `CREATE review CONTENT object::extend($content, { coffee: type::record($coffee_id) })`
	vars := map[string]interface{}{
		"content":   content,
		"coffee_id": recordID("coffee", review.CoffeeID),
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return fmt.Errorf("%w: coffee already reviewed by user", database.ErrDuplicate)
		}
		return err
	}

	created, err := extractCreatedRecord(result)
	if err != nil {
		return err
	}

	review.ID = created.ID
	review.CoffeeID = recordID("coffee", review.CoffeeID)
	review.CreatedOn = created.CreatedOn
	return nil
}

// GetByUserAndCoffee returns the user's review of a coffee, or nil
func (r *ReviewRepository) GetByUserAndCoffee(ctx context.Context, userID, coffeeID string) (*model.Review, error) {
	query := `
		SELECT * FROM review
		WHERE user_id = $user_id AND coffee = type::record($coffee_id)
		LIMIT 1
	`
	vars := map[string]interface{}{
		"user_id":   userID,
		"coffee_id": recordID("coffee", coffeeID),
	}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return parseReview(result)
}

// ListAll returns every review, oldest first
func (r *ReviewRepository) ListAll(ctx context.Context) ([]*model.Review, error) {
	query := `SELECT * FROM review ORDER BY created_on ASC`

	result, err := r.db.Query(ctx, query, nil)
	if err != nil {
		return nil, err
	}

	return parseRecords(result, parseReview), nil
}

// ListByCoffee returns a coffee's reviews, newest first
func (r *ReviewRepository) ListByCoffee(ctx context.Context, coffeeID string, limit, offset int) ([]*model.Review, error) {
	query := `
		SELECT * FROM review
		WHERE coffee = type::record($coffee_id)
		ORDER BY created_on DESC
		LIMIT $limit START $offset
	`
	vars := map[string]interface{}{
		"coffee_id": recordID("coffee", coffeeID),
		"limit":     limit,
		"offset":    offset,
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	return parseRecords(result, parseReview), nil
}

// ListByUser returns every review written by a user, oldest first
func (r *ReviewRepository) ListByUser(ctx context.Context, userID string) ([]*model.Review, error) {
	query := `
		SELECT * FROM review
		WHERE user_id = $user_id
		ORDER BY created_on ASC
	`
	vars := map[string]interface{}{"user_id": userID}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	return parseRecords(result, parseReview), nil
}

// GetRatingSummary aggregates the community rating of a coffee
func (r *ReviewRepository) GetRatingSummary(ctx context.Context, coffeeID string) (*model.RatingSummary, error) {
	query := `
		SELECT count() AS count, math::mean(rating) AS average
		FROM review
		WHERE coffee = type::record($coffee_id)
		GROUP ALL
	`
	coffeeID = recordID("coffee", coffeeID)
	vars := map[string]interface{}{"coffee_id": coffeeID}

	summary := &model.RatingSummary{CoffeeID: coffeeID}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return summary, nil
		}
		return nil, err
	}

	summary.ReviewCount = extractCount(result)
	if data, ok := result.(map[string]interface{}); ok {
		summary.AverageRating = getFloat(data, "average")
	}
	return summary, nil
}

func parseReview(result interface{}) (*model.Review, error) {
	data, ok := result.(map[string]interface{})
	if !ok {
		return nil, errors.New("unexpected result format")
	}

	return &model.Review{
		ID:            convertSurrealID(data["id"]),
		UserID:        getString(data, "user_id"),
		CoffeeID:      convertSurrealID(data["coffee"]),
		Rating:        getInt(data, "rating"),
		FlavorNotes:   getIDSlice(data, "flavor_notes"),
		BrewingMethod: getStringPtr(data, "brewing_method"),
		Text:          getStringPtr(data, "text"),
		CreatedOn:     getTime(data, "created_on"),
	}, nil
}
