package service

import (
	"context"
	"errors"
	"strings"

	"github.com/forgo/cuppa/internal/database"
	"github.com/forgo/cuppa/internal/model"
)

// CoffeeRepository defines the interface for coffee storage
type CoffeeRepository interface {
	Create(ctx context.Context, coffee *model.Coffee) error
	GetByID(ctx context.Context, id string) (*model.Coffee, error)
	List(ctx context.Context, limit, offset int) ([]*model.Coffee, error)
	Search(ctx context.Context, term string, limit int) ([]*model.Coffee, error)
}

// FlavorNoteRepository defines the interface for flavor note storage
type FlavorNoteRepository interface {
	Create(ctx context.Context, note *model.FlavorNote) error
	List(ctx context.Context) ([]*model.FlavorNote, error)
	ListByCoffee(ctx context.Context, coffeeID string) ([]*model.FlavorNote, error)
}

// CoffeeService handles the coffee catalogue and its flavor vocabulary
type CoffeeService struct {
	repo           CoffeeRepository
	flavorNoteRepo FlavorNoteRepository
	invalidator    RecommendationInvalidator
}

// CoffeeServiceConfig holds configuration for the coffee service
type CoffeeServiceConfig struct {
	Repo           CoffeeRepository
	FlavorNoteRepo FlavorNoteRepository
	Invalidator    RecommendationInvalidator
}

// NewCoffeeService creates a new coffee service
func NewCoffeeService(cfg CoffeeServiceConfig) *CoffeeService {
	return &CoffeeService{
		repo:           cfg.Repo,
		flavorNoteRepo: cfg.FlavorNoteRepo,
		invalidator:    cfg.Invalidator,
	}
}

// ListCoffees returns a page of the catalogue, newest first
func (s *CoffeeService) ListCoffees(ctx context.Context, limit, offset int) ([]*model.Coffee, error) {
	if limit <= 0 || limit > model.MaxCoffeePageSize {
		limit = model.DefaultCoffeePageSize
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(ctx, limit, offset)
}

// GetCoffee retrieves a coffee by ID
func (s *CoffeeService) GetCoffee(ctx context.Context, id string) (*model.Coffee, error) {
	coffee, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if coffee == nil {
		return nil, ErrCoffeeNotFound
	}
	return coffee, nil
}

// SearchCoffees matches the term against name, roaster and origin
func (s *CoffeeService) SearchCoffees(ctx context.Context, term string, limit int) ([]*model.Coffee, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, ErrSearchTermRequired
	}
	if limit <= 0 || limit > model.MaxCoffeePageSize {
		limit = model.DefaultCoffeePageSize
	}
	return s.repo.Search(ctx, term, limit)
}

// CreateCoffee adds a coffee submitted by a user
func (s *CoffeeService) CreateCoffee(ctx context.Context, userID string, req *model.CreateCoffeeRequest) (*model.Coffee, error) {
	if err := validateCoffee(req); err != nil {
		return nil, err
	}

	coffee := &model.Coffee{
		Name:          strings.TrimSpace(req.Name),
		Roaster:       strings.TrimSpace(req.Roaster),
		Origin:        strings.TrimSpace(req.Origin),
		Region:        req.Region,
		RoastLevel:    req.RoastLevel,
		ProcessMethod: req.ProcessMethod,
		Description:   req.Description,
		SubmittedBy:   userID,
	}

	if err := s.repo.Create(ctx, coffee); err != nil {
		return nil, err
	}

	// A new candidate changes everyone's ranking.
	invalidateAll(ctx, s.invalidator)
	return coffee, nil
}

func validateCoffee(req *model.CreateCoffeeRequest) error {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return ErrCoffeeNameRequired
	}
	if len(name) > model.MaxCoffeeNameLength {
		return ErrCoffeeNameTooLong
	}

	roaster := strings.TrimSpace(req.Roaster)
	if roaster == "" {
		return ErrRoasterRequired
	}
	if len(roaster) > model.MaxRoasterNameLength {
		return ErrRoasterTooLong
	}

	origin := strings.TrimSpace(req.Origin)
	if origin == "" {
		return ErrOriginRequired
	}
	if len(origin) > model.MaxOriginLength {
		return ErrOriginTooLong
	}

	if !model.IsValidRoastLevel(req.RoastLevel) {
		return ErrInvalidRoastLevel
	}
	if req.ProcessMethod != nil && !model.IsValidProcessMethod(*req.ProcessMethod) {
		return ErrInvalidProcessMethod
	}
	if req.Description != nil && len(*req.Description) > model.MaxDescriptionLength {
		return ErrDescriptionTooLong
	}
	return nil
}

// ListFlavorNotes returns the full flavor vocabulary
func (s *CoffeeService) ListFlavorNotes(ctx context.Context) ([]*model.FlavorNote, error) {
	return s.flavorNoteRepo.List(ctx)
}

// CreateFlavorNote adds a flavor note. Names are unique.
func (s *CoffeeService) CreateFlavorNote(ctx context.Context, req *model.CreateFlavorNoteRequest) (*model.FlavorNote, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrFlavorNoteNameRequired
	}
	if len(name) > model.MaxFlavorNoteNameLength {
		return nil, ErrFlavorNoteNameTooLong
	}

	note := &model.FlavorNote{
		Name:     name,
		Category: req.Category,
	}
	if err := s.flavorNoteRepo.Create(ctx, note); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrFlavorNoteExists
		}
		return nil, err
	}
	return note, nil
}

// GetCoffeeFlavorNotes returns the flavor notes reviewers tasted in a coffee
func (s *CoffeeService) GetCoffeeFlavorNotes(ctx context.Context, coffeeID string) ([]*model.FlavorNote, error) {
	if _, err := s.GetCoffee(ctx, coffeeID); err != nil {
		return nil, err
	}
	return s.flavorNoteRepo.ListByCoffee(ctx, coffeeID)
}
