package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/forgo/cuppa/internal/database"
	"github.com/forgo/cuppa/internal/model"
)

// FlavorNoteRepository handles flavor note data access
type FlavorNoteRepository struct {
	db database.Database
}

// NewFlavorNoteRepository creates a new flavor note repository
func NewFlavorNoteRepository(db database.Database) *FlavorNoteRepository {
	return &FlavorNoteRepository{db: db}
}

// Create adds a flavor note. Names are unique.
func (r *FlavorNoteRepository) Create(ctx context.Context, note *model.FlavorNote) error {
	content := map[string]interface{}{"name": note.Name}
	optionalFields(content, map[string]*string{"category": note.Category})

	query := `CREATE flavor_note CONTENT $content`
	vars := map[string]interface{}{"content": content}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return fmt.Errorf("%w: flavor note name already exists", database.ErrDuplicate)
		}
		return err
	}

	created, err := extractCreatedRecord(result)
	if err != nil {
		return err
	}

	note.ID = created.ID
	note.CreatedOn = created.CreatedOn
	return nil
}

// List returns every flavor note ordered by name
func (r *FlavorNoteRepository) List(ctx context.Context) ([]*model.FlavorNote, error) {
	query := `SELECT * FROM flavor_note ORDER BY name ASC`

	result, err := r.db.Query(ctx, query, nil)
	if err != nil {
		return nil, err
	}

	return parseRecords(result, parseFlavorNote), nil
}

// ListByCoffee returns the flavor notes reviewers attributed to a coffee
func (r *FlavorNoteRepository) ListByCoffee(ctx context.Context, coffeeID string) ([]*model.FlavorNote, error) {
	query := `
		LET $ids = array::distinct(array::flatten(
			SELECT VALUE flavor_notes FROM review WHERE coffee = type::record($coffee_id)
		));
		SELECT * FROM flavor_note WHERE <string> id IN $ids ORDER BY name ASC;
	`
	vars := map[string]interface{}{"coffee_id": recordID("coffee", coffeeID)}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	return parseRecords(result, parseFlavorNote), nil
}

func parseFlavorNote(result interface{}) (*model.FlavorNote, error) {
	data, ok := result.(map[string]interface{})
	if !ok {
		return nil, errors.New("unexpected result format")
	}

	return &model.FlavorNote{
		ID:        convertSurrealID(data["id"]),
		Name:      getString(data, "name"),
		Category:  getStringPtr(data, "category"),
		CreatedOn: getTime(data, "created_on"),
	}, nil
}
