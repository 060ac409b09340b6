package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/forgo/cuppa/internal/database"
	"github.com/forgo/cuppa/internal/model"
)

// CoffeeRepository handles coffee catalogue data access
type CoffeeRepository struct {
	db database.Database
}

// NewCoffeeRepository creates a new coffee repository
func NewCoffeeRepository(db database.Database) *CoffeeRepository {
	return &CoffeeRepository{db: db}
}

// Create adds a coffee to the catalogue
func (r *CoffeeRepository) Create(ctx context.Context, coffee *model.Coffee) error {
	content := map[string]interface{}{
		"name":         coffee.Name,
		"roaster":      coffee.Roaster,
		"origin":       coffee.Origin,
		"roast_level":  coffee.RoastLevel,
		"submitted_by": coffee.SubmittedBy,
	}
	optionalFields(content, map[string]*string{
		"region":         coffee.Region,
		"process_method": coffee.ProcessMethod,
		"description":    coffee.Description,
	})

	query := `CREATE coffee CONTENT $content`
	vars := map[string]interface{}{"content": content}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return err
	}

	created, err := extractCreatedRecord(result)
	if err != nil {
		return err
	}

	coffee.ID = created.ID
	coffee.CreatedOn = created.CreatedOn
	return nil
}

// GetByID retrieves a coffee by ID. Returns nil when it does not exist.
func (r *CoffeeRepository) GetByID(ctx context.Context, id string) (*model.Coffee, error) {
	if !belongsTo("coffee", id) {
		return nil, nil
	}

	query := `SELECT * FROM type::record($id)`
	vars := map[string]interface{}{"id": recordID("coffee", id)}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return parseCoffee(result)
}

// List returns a page of coffees, newest first
func (r *CoffeeRepository) List(ctx context.Context, limit, offset int) ([]*model.Coffee, error) {
	query := `
		SELECT * FROM coffee
		ORDER BY created_on DESC
		LIMIT $limit START $offset
	`
	vars := map[string]interface{}{
		"limit":  limit,
		"offset": offset,
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	return parseRecords(result, parseCoffee), nil
}

// ListAll returns the whole catalogue in insertion order
func (r *CoffeeRepository) ListAll(ctx context.Context) ([]*model.Coffee, error) {
	query := `SELECT * FROM coffee ORDER BY created_on ASC`

	result, err := r.db.Query(ctx, query, nil)
	if err != nil {
		return nil, err
	}

	return parseRecords(result, parseCoffee), nil
}

// Search matches name, roaster or origin case-insensitively
func (r *CoffeeRepository) Search(ctx context.Context, term string, limit int) ([]*model.Coffee, error) {
	query := `
		SELECT * FROM coffee
		WHERE string::lowercase(name) CONTAINS $term
			OR string::lowercase(roaster) CONTAINS $term
			OR string::lowercase(origin) CONTAINS $term
		ORDER BY name ASC
		LIMIT $limit
	`
	vars := map[string]interface{}{
		"term":  strings.ToLower(term),
		"limit": limit,
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	return parseRecords(result, parseCoffee), nil
}

func parseCoffee(result interface{}) (*model.Coffee, error) {
	data, ok := result.(map[string]interface{})
	if !ok {
		return nil, errors.New("unexpected result format")
	}

	return &model.Coffee{
		ID:            convertSurrealID(data["id"]),
		Name:          getString(data, "name"),
		Roaster:       getString(data, "roaster"),
		Origin:        getString(data, "origin"),
		Region:        getStringPtr(data, "region"),
		RoastLevel:    getString(data, "roast_level"),
		ProcessMethod: getStringPtr(data, "process_method"),
		Description:   getStringPtr(data, "description"),
		SubmittedBy:   getString(data, "submitted_by"),
		CreatedOn:     getTime(data, "created_on"),
	}, nil
}
