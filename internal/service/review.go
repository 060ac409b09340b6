package service

import (
	"context"
	"errors"
	"strings"

	"github.com/forgo/cuppa/internal/database"
	"github.com/forgo/cuppa/internal/model"
)

// ReviewRepository defines the interface for review storage
type ReviewRepository interface {
	Create(ctx context.Context, review *model.Review) error
	GetByUserAndCoffee(ctx context.Context, userID, coffeeID string) (*model.Review, error)
	ListByCoffee(ctx context.Context, coffeeID string, limit, offset int) ([]*model.Review, error)
	ListByUser(ctx context.Context, userID string) ([]*model.Review, error)
	GetRatingSummary(ctx context.Context, coffeeID string) (*model.RatingSummary, error)
}

// CoffeeGetter looks up a single coffee
type CoffeeGetter interface {
	GetByID(ctx context.Context, id string) (*model.Coffee, error)
}

// FlavorNoteLister lists the flavor vocabulary
type FlavorNoteLister interface {
	List(ctx context.Context) ([]*model.FlavorNote, error)
}

// ReviewService handles review business logic
type ReviewService struct {
	repo           ReviewRepository
	coffeeRepo     CoffeeGetter
	flavorNoteRepo FlavorNoteLister
	invalidator    RecommendationInvalidator
}

// ReviewServiceConfig holds configuration for the review service
type ReviewServiceConfig struct {
	Repo           ReviewRepository
	CoffeeRepo     CoffeeGetter
	FlavorNoteRepo FlavorNoteLister
	Invalidator    RecommendationInvalidator
}

// NewReviewService creates a new review service
func NewReviewService(cfg ReviewServiceConfig) *ReviewService {
	return &ReviewService{
		repo:           cfg.Repo,
		coffeeRepo:     cfg.CoffeeRepo,
		flavorNoteRepo: cfg.FlavorNoteRepo,
		invalidator:    cfg.Invalidator,
	}
}

// CreateReview records a user's tasting of a coffee
func (s *ReviewService) CreateReview(ctx context.Context, userID string, req *model.CreateReviewRequest) (*model.Review, error) {
	if userID == "" {
		return nil, ErrUserIDRequired
	}
	if req.Rating < model.MinRating || req.Rating > model.MaxRating {
		return nil, ErrInvalidRating
	}
	if req.Text != nil && len(*req.Text) > model.MaxReviewTextLength {
		return nil, ErrReviewTextTooLong
	}

	notes := dedupeIDs(qualifyIDs(flavorNoteTable, req.FlavorNotes))
	if len(notes) > model.MaxFlavorNotesPerReview {
		return nil, ErrTooManyFlavorNotes
	}

	coffee, err := s.coffeeRepo.GetByID(ctx, req.CoffeeID)
	if err != nil {
		return nil, err
	}
	if coffee == nil {
		return nil, ErrCoffeeNotFound
	}

	if err := s.checkFlavorNotes(ctx, notes); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByUserAndCoffee(ctx, userID, coffee.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyReviewed
	}

	review := &model.Review{
		UserID:        userID,
		CoffeeID:      coffee.ID,
		Rating:        req.Rating,
		FlavorNotes:   notes,
		BrewingMethod: req.BrewingMethod,
		Text:          req.Text,
	}

	if err := s.repo.Create(ctx, review); err != nil {
		// Lost a race with a concurrent submission
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrAlreadyReviewed
		}
		return nil, err
	}

	// The review shifts this user's preferences and the coffee's community rating.
	invalidateUser(ctx, s.invalidator, userID)
	invalidateAll(ctx, s.invalidator)
	return review, nil
}

func (s *ReviewService) checkFlavorNotes(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	known, err := s.flavorNoteRepo.List(ctx)
	if err != nil {
		return err
	}
	valid := make(map[string]bool, len(known))
	for _, n := range known {
		valid[n.ID] = true
	}

	for _, id := range ids {
		if !valid[id] {
			return ErrFlavorNoteNotFound
		}
	}
	return nil
}

const flavorNoteTable = "flavor_note"

// qualifyIDs prefixes bare record keys with table. Blank ids pass through.
func qualifyIDs(table string, ids []string) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		id = strings.TrimSpace(id)
		if id != "" && !strings.Contains(id, ":") {
			id = table + ":" + id
		}
		out[i] = id
	}
	return out
}

// dedupeIDs trims and removes repeated ids, keeping first occurrences
func dedupeIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// ListCoffeeReviews retrieves a page of reviews for a coffee
func (s *ReviewService) ListCoffeeReviews(ctx context.Context, coffeeID string, limit, offset int) ([]*model.Review, error) {
	coffee, err := s.coffeeRepo.GetByID(ctx, coffeeID)
	if err != nil {
		return nil, err
	}
	if coffee == nil {
		return nil, ErrCoffeeNotFound
	}

	if limit <= 0 || limit > 50 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.ListByCoffee(ctx, coffee.ID, limit, offset)
}

// ListUserReviews retrieves every review a user wrote
func (s *ReviewService) ListUserReviews(ctx context.Context, userID string) ([]*model.Review, error) {
	if userID == "" {
		return nil, ErrUserIDRequired
	}
	return s.repo.ListByUser(ctx, userID)
}

// GetRatingSummary aggregates the community rating for a coffee
func (s *ReviewService) GetRatingSummary(ctx context.Context, coffeeID string) (*model.RatingSummary, error) {
	coffee, err := s.coffeeRepo.GetByID(ctx, coffeeID)
	if err != nil {
		return nil, err
	}
	if coffee == nil {
		return nil, ErrCoffeeNotFound
	}

	summary, err := s.repo.GetRatingSummary(ctx, coffee.ID)
	if err != nil {
		return nil, err
	}
	if summary == nil {
		summary = &model.RatingSummary{CoffeeID: coffee.ID}
	}
	return summary, nil
}
