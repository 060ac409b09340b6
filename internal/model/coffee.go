package model

import "time"

// Coffee represents a catalogued coffee
type Coffee struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Roaster       string    `json:"roaster"`
	Origin        string    `json:"origin"`           // Country of origin
	Region        *string   `json:"region,omitempty"` // Growing region within the origin
	RoastLevel    string    `json:"roast_level"`      // One of RoastLevels()
	ProcessMethod *string   `json:"process_method,omitempty"`
	Description   *string   `json:"description,omitempty"`
	SubmittedBy   string    `json:"submitted_by,omitempty"`
	CreatedOn     time.Time `json:"created_on"`
}

// Roast level constants, lightest first
const (
	RoastLight       = "Light"
	RoastMediumLight = "Medium-Light"
	RoastMedium      = "Medium"
	RoastMediumDark  = "Medium-Dark"
	RoastDark        = "Dark"
)

// Process method constants
const (
	ProcessWashed    = "Washed"
	ProcessNatural   = "Natural"
	ProcessHoney     = "Honey"
	ProcessAnaerobic = "Anaerobic"
	ProcessOther     = "Other"
)

// RoastLevels returns the roast levels in order from lightest to darkest
func RoastLevels() []string {
	return []string{RoastLight, RoastMediumLight, RoastMedium, RoastMediumDark, RoastDark}
}

// ProcessMethods returns all known process methods
func ProcessMethods() []string {
	return []string{ProcessWashed, ProcessNatural, ProcessHoney, ProcessAnaerobic, ProcessOther}
}

// IsValidRoastLevel reports whether level is one of the fixed roast levels
func IsValidRoastLevel(level string) bool {
	for _, l := range RoastLevels() {
		if l == level {
			return true
		}
	}
	return false
}

// IsValidProcessMethod reports whether method is one of the known process methods
func IsValidProcessMethod(method string) bool {
	for _, m := range ProcessMethods() {
		if m == method {
			return true
		}
	}
	return false
}

// Coffee constraints
const (
	MaxCoffeeNameLength   = 200
	MaxRoasterNameLength  = 200
	MaxOriginLength       = 100
	MaxDescriptionLength  = 2000
	DefaultCoffeePageSize = 20
	MaxCoffeePageSize     = 100
)

// CreateCoffeeRequest represents a request to add a coffee to the catalog
type CreateCoffeeRequest struct {
	Name          string  `json:"name" validate:"required,max=200"`
	Roaster       string  `json:"roaster" validate:"required,max=200"`
	Origin        string  `json:"origin" validate:"required,max=100"`
	Region        *string `json:"region,omitempty" validate:"omitempty,max=100"`
	RoastLevel    string  `json:"roast_level" validate:"required,roastlevel"`
	ProcessMethod *string `json:"process_method,omitempty" validate:"omitempty,processmethod"`
	Description   *string `json:"description,omitempty" validate:"omitempty,max=2000"`
}
