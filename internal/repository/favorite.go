package repository

import (
	"context"
	"errors"

	"github.com/forgo/cuppa/internal/database"
	"github.com/forgo/cuppa/internal/model"
)

// FavoriteRepository handles saved-coffee data access
type FavoriteRepository struct {
	db database.Database
}

// NewFavoriteRepository creates a new favorite repository
func NewFavoriteRepository(db database.Database) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

// Add saves a coffee for a user. Adding an existing favorite is a no-op.
func (r *FavoriteRepository) Add(ctx context.Context, userID, coffeeID string) (*model.Favorite, error) {
	query := `
		CREATE favorite CONTENT {
			user_id: $user_id,
			coffee: type::record($coffee_id),
			created_on: time::now()
		}
	`
	vars := map[string]interface{}{
		"user_id":   userID,
		"coffee_id": recordID("coffee", coffeeID),
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return r.get(ctx, userID, coffeeID)
		}
		return nil, err
	}

	created, err := extractCreatedRecord(result)
	if err != nil {
		return nil, err
	}

	return &model.Favorite{
		UserID:    userID,
		CoffeeID:  recordID("coffee", coffeeID),
		CreatedOn: created.CreatedOn,
	}, nil
}

// Remove deletes a favorite. Removing a missing favorite is a no-op.
func (r *FavoriteRepository) Remove(ctx context.Context, userID, coffeeID string) error {
	query := `DELETE favorite WHERE user_id = $user_id AND coffee = type::record($coffee_id)`
	vars := map[string]interface{}{
		"user_id":   userID,
		"coffee_id": recordID("coffee", coffeeID),
	}

	return r.db.Execute(ctx, query, vars)
}

// Exists reports whether the user saved the coffee
func (r *FavoriteRepository) Exists(ctx context.Context, userID, coffeeID string) (bool, error) {
	favorite, err := r.get(ctx, userID, coffeeID)
	if err != nil {
		return false, err
	}
	return favorite != nil, nil
}

// ListByUser returns a user's favorites, newest first
func (r *FavoriteRepository) ListByUser(ctx context.Context, userID string) ([]*model.Favorite, error) {
	query := `
		SELECT * FROM favorite
		WHERE user_id = $user_id
		ORDER BY created_on DESC
	`
	vars := map[string]interface{}{"user_id": userID}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	return parseRecords(result, parseFavorite), nil
}

func (r *FavoriteRepository) get(ctx context.Context, userID, coffeeID string) (*model.Favorite, error) {
	query := `
		SELECT * FROM favorite
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

	return parseFavorite(result)
}

func parseFavorite(result interface{}) (*model.Favorite, error) {
	data, ok := result.(map[string]interface{})
	if !ok {
		return nil, errors.New("unexpected result format")
	}

	return &model.Favorite{
		UserID:    getString(data, "user_id"),
		CoffeeID:  convertSurrealID(data["coffee"]),
		CreatedOn: getTime(data, "created_on"),
	}, nil
}
