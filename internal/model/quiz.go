package model

import "time"

// QuizQuestion is one question of the taste quiz
type QuizQuestion struct {
	ID          string       `json:"id"`
	QuestionID  string       `json:"question_id"` // Stable slug, e.g. "roast"
	Question    string       `json:"question"`
	Description *string      `json:"description,omitempty"`
	AnswerType  string       `json:"answer_type"` // single, multiple
	SortOrder   int          `json:"sort_order"`
	Options     []QuizOption `json:"options"`
	CreatedOn   time.Time    `json:"created_on"`
}

// QuizOption is a selectable answer for a quiz question
type QuizOption struct {
	OptionID  string  `json:"option_id"`
	Text      string  `json:"text"`
	Value     string  `json:"value"`
	Icon      *string `json:"icon,omitempty"`
	SortOrder int     `json:"sort_order"`
}

// Quiz answer types
const (
	QuizAnswerSingle   = "single"
	QuizAnswerMultiple = "multiple"
)

// Quiz roast answers
const (
	QuizRoastLight      = "light"
	QuizRoastMedium     = "medium"
	QuizRoastMediumDark = "medium-dark"
	QuizRoastDark       = "dark"
)

// QuizResults holds a completed taste quiz. Only PreferredRoast and
// PreferredFlavors feed scoring; the rest is carried for clients.
type QuizResults struct {
	PreferredRoast     string   `json:"preferred_roast,omitempty" validate:"max=20"`
	PreferredFlavors   []string `json:"preferred_flavors,omitempty" validate:"max=10,dive,required,max=30"`
	BrewingMethod      string   `json:"brewing_method,omitempty" validate:"max=50"`
	ConsumptionTime    string   `json:"consumption_time,omitempty" validate:"max=50"`
	CaffeinePreference string   `json:"caffeine_preference,omitempty" validate:"max=50"`
}

// QuizRecommendationRequest asks for recommendations from quiz answers
type QuizRecommendationRequest struct {
	Quiz  QuizResults `json:"quiz"`
	Limit int         `json:"limit,omitempty" validate:"omitempty,min=1,max=100"`
}

// CreateQuizOptionRequest describes one option of a new quiz question
type CreateQuizOptionRequest struct {
	OptionID  string  `json:"option_id" validate:"required,max=50"`
	Text      string  `json:"text" validate:"required,max=200"`
	Value     string  `json:"value" validate:"required,max=50"`
	Icon      *string `json:"icon,omitempty" validate:"omitempty,max=50"`
	SortOrder int     `json:"sort_order"`
}

// CreateQuizQuestionRequest represents a request to add a quiz question
type CreateQuizQuestionRequest struct {
	QuestionID  string                    `json:"question_id" validate:"required,max=50"`
	Question    string                    `json:"question" validate:"required,max=500"`
	Description *string                   `json:"description,omitempty" validate:"omitempty,max=1000"`
	AnswerType  string                    `json:"answer_type" validate:"required,oneof=single multiple"`
	SortOrder   int                       `json:"sort_order"`
	Options     []CreateQuizOptionRequest `json:"options" validate:"required,min=1,max=20,dive"`
}
