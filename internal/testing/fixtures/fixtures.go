package fixtures

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/forgo/cuppa/internal/database"
	"github.com/forgo/cuppa/internal/model"
)

// Factory inserts test entities straight into the database
type Factory struct {
	db database.Database
}

// New creates a new fixture factory
func New(db database.Database) *Factory {
	return &Factory{db: db}
}

func randomID() string {
	b := make([]byte, 6)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// UserID returns a fresh user id. Users live in the identity provider,
// not in this database.
func UserID() string {
	return "user:" + randomID()
}

func (f *Factory) create(t *testing.T, what, query string, vars map[string]interface{}) map[string]interface{} {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	record, err := f.db.QueryOne(ctx, query, vars)
	if err != nil {
		t.Fatalf("fixtures: failed to create %s: %v", what, err)
	}
	data, ok := record.(map[string]interface{})
	if !ok {
		t.Fatalf("fixtures: unexpected %s record type %T", what, record)
	}
	return data
}

// ============================================================================
// Coffee Fixtures
// ============================================================================

// CoffeeOpts customizes coffee creation
type CoffeeOpts struct {
	Name          string
	Roaster       string
	Origin        string
	RoastLevel    string
	ProcessMethod *string
	SubmittedBy   string
	// Age backdates created_on; zero means now
	Age time.Duration
}

// WithOrigin sets the coffee's origin
func WithOrigin(origin string) func(*CoffeeOpts) {
	return func(o *CoffeeOpts) { o.Origin = origin }
}

// WithRoast sets the coffee's roast level
func WithRoast(level string) func(*CoffeeOpts) {
	return func(o *CoffeeOpts) { o.RoastLevel = level }
}

// WithProcess sets the coffee's process method
func WithProcess(method string) func(*CoffeeOpts) {
	return func(o *CoffeeOpts) { o.ProcessMethod = &method }
}

// WithAge backdates the coffee's creation time
func WithAge(age time.Duration) func(*CoffeeOpts) {
	return func(o *CoffeeOpts) { o.Age = age }
}

// CreateCoffee creates a coffee with optional customizations
func (f *Factory) CreateCoffee(t *testing.T, opts ...func(*CoffeeOpts)) *model.Coffee {
	t.Helper()

	o := &CoffeeOpts{
		Name:        fmt.Sprintf("Coffee %s", randomID()),
		Roaster:     "Test Roasters",
		Origin:      "Ethiopia",
		RoastLevel:  model.RoastLight,
		SubmittedBy: "user:fixtures",
	}
	for _, fn := range opts {
		fn(o)
	}

	createdOn := time.Now().UTC().Add(-o.Age)
	content := map[string]interface{}{
		"name":         o.Name,
		"roaster":      o.Roaster,
		"origin":       o.Origin,
		"roast_level":  o.RoastLevel,
		"submitted_by": o.SubmittedBy,
		"created_on":   models.CustomDateTime{Time: createdOn},
	}
	if o.ProcessMethod != nil {
		content["process_method"] = *o.ProcessMethod
	}

	data := f.create(t, "coffee", `CREATE coffee CONTENT $content`, map[string]interface{}{"content": content})

	return &model.Coffee{
		ID:            recordID(data["id"]),
		Name:          o.Name,
		Roaster:       o.Roaster,
		Origin:        o.Origin,
		RoastLevel:    o.RoastLevel,
		ProcessMethod: o.ProcessMethod,
		SubmittedBy:   o.SubmittedBy,
		CreatedOn:     createdOn,
	}
}

// ============================================================================
// Flavor Note Fixtures
// ============================================================================

// CreateFlavorNote creates a flavor note; an empty name gets a random one
func (f *Factory) CreateFlavorNote(t *testing.T, name string) *model.FlavorNote {
	t.Helper()

	if name == "" {
		name = "note-" + randomID()
	}
	data := f.create(t, "flavor note", `CREATE flavor_note CONTENT { name: $name }`,
		map[string]interface{}{"name": name})

	return &model.FlavorNote{ID: recordID(data["id"]), Name: name}
}

// ============================================================================
// Review and Favorite Fixtures
// ============================================================================

// CreateReview records a rating by userID for coffee with the given flavor notes
func (f *Factory) CreateReview(t *testing.T, userID string, coffee *model.Coffee, rating int, notes ...*model.FlavorNote) *model.Review {
	t.Helper()

	noteIDs := make([]string, 0, len(notes))
	for _, n := range notes {
		noteIDs = append(noteIDs, n.ID)
	}

	query := `
		CREATE review CONTENT {
			user_id: $user_id,
			coffee: type::record($coffee_id),
			rating: $rating,
			flavor_notes: $flavor_notes
		}
	`
	data := f.create(t, "review", query, map[string]interface{}{
		"user_id":      userID,
		"coffee_id":    coffee.ID,
		"rating":       rating,
		"flavor_notes": noteIDs,
	})

	return &model.Review{
		ID:          recordID(data["id"]),
		UserID:      userID,
		CoffeeID:    coffee.ID,
		Rating:      rating,
		FlavorNotes: noteIDs,
	}
}

// AddFavorite saves coffee to userID's favorites
func (f *Factory) AddFavorite(t *testing.T, userID string, coffee *model.Coffee) {
	t.Helper()

	f.create(t, "favorite", `CREATE favorite CONTENT { user_id: $user_id, coffee: type::record($coffee_id) }`,
		map[string]interface{}{"user_id": userID, "coffee_id": coffee.ID})
}

// recordID renders a SurrealDB id as "table:key"
func recordID(v interface{}) string {
	switch id := v.(type) {
	case string:
		return id
	case models.RecordID:
		return fmt.Sprintf("%s:%v", id.Table, id.ID)
	case *models.RecordID:
		if id != nil {
			return fmt.Sprintf("%s:%v", id.Table, id.ID)
		}
	}
	return fmt.Sprintf("%v", v)
}
