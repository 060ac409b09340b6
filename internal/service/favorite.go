package service

import (
	"context"

	"github.com/forgo/cuppa/internal/model"
)

// FavoriteRepository defines the interface for favorite storage
type FavoriteRepository interface {
	Add(ctx context.Context, userID, coffeeID string) (*model.Favorite, error)
	Remove(ctx context.Context, userID, coffeeID string) error
	Exists(ctx context.Context, userID, coffeeID string) (bool, error)
	ListByUser(ctx context.Context, userID string) ([]*model.Favorite, error)
}

// FavoriteService handles saved coffees
type FavoriteService struct {
	repo        FavoriteRepository
	coffeeRepo  CoffeeGetter
	invalidator RecommendationInvalidator
}

// FavoriteServiceConfig holds configuration for the favorite service
type FavoriteServiceConfig struct {
	Repo        FavoriteRepository
	CoffeeRepo  CoffeeGetter
	Invalidator RecommendationInvalidator
}

// NewFavoriteService creates a new favorite service
func NewFavoriteService(cfg FavoriteServiceConfig) *FavoriteService {
	return &FavoriteService{
		repo:        cfg.Repo,
		coffeeRepo:  cfg.CoffeeRepo,
		invalidator: cfg.Invalidator,
	}
}

// AddFavorite saves a coffee for the user. Saving twice is a no-op.
func (s *FavoriteService) AddFavorite(ctx context.Context, userID, coffeeID string) (*model.Favorite, error) {
	coffee, err := s.requireCoffee(ctx, userID, coffeeID)
	if err != nil {
		return nil, err
	}

	favorite, err := s.repo.Add(ctx, userID, coffee.ID)
	if err != nil {
		return nil, err
	}

	invalidateUser(ctx, s.invalidator, userID)
	return favorite, nil
}

// RemoveFavorite forgets a saved coffee. Removing a missing favorite is a no-op.
func (s *FavoriteService) RemoveFavorite(ctx context.Context, userID, coffeeID string) error {
	coffee, err := s.requireCoffee(ctx, userID, coffeeID)
	if err != nil {
		return err
	}

	if err := s.repo.Remove(ctx, userID, coffee.ID); err != nil {
		return err
	}

	invalidateUser(ctx, s.invalidator, userID)
	return nil
}

// IsFavorite reports whether the user saved the coffee
func (s *FavoriteService) IsFavorite(ctx context.Context, userID, coffeeID string) (*model.FavoriteStatus, error) {
	coffee, err := s.requireCoffee(ctx, userID, coffeeID)
	if err != nil {
		return nil, err
	}

	exists, err := s.repo.Exists(ctx, userID, coffee.ID)
	if err != nil {
		return nil, err
	}
	return &model.FavoriteStatus{CoffeeID: coffee.ID, IsFavorite: exists}, nil
}

// ListFavorites returns the user's saved coffees, newest first
func (s *FavoriteService) ListFavorites(ctx context.Context, userID string) ([]*model.Favorite, error) {
	if userID == "" {
		return nil, ErrUserIDRequired
	}
	return s.repo.ListByUser(ctx, userID)
}

func (s *FavoriteService) requireCoffee(ctx context.Context, userID, coffeeID string) (*model.Coffee, error) {
	if userID == "" {
		return nil, ErrUserIDRequired
	}
	coffee, err := s.coffeeRepo.GetByID(ctx, coffeeID)
	if err != nil {
		return nil, err
	}
	if coffee == nil {
		return nil, ErrCoffeeNotFound
	}
	return coffee, nil
}
