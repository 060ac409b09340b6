package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/forgo/cuppa/internal/database"
	"github.com/forgo/cuppa/internal/model"
)

// QuizRepository handles taste quiz data access
type QuizRepository struct {
	db database.Database
}

// NewQuizRepository creates a new quiz repository
func NewQuizRepository(db database.Database) *QuizRepository {
	return &QuizRepository{db: db}
}

// ListQuestions returns every question with its options, in display order
func (r *QuizRepository) ListQuestions(ctx context.Context) ([]*model.QuizQuestion, error) {
	query := `
		SELECT * FROM quiz_question ORDER BY sort_order ASC;
		SELECT * FROM quiz_option ORDER BY sort_order ASC;
	`

	result, err := r.db.Query(ctx, query, nil)
	if err != nil {
		return nil, err
	}
	if len(result) < 2 {
		return []*model.QuizQuestion{}, nil
	}

	questions := parseRecords(result[:1], parseQuizQuestion)
	attachOptions(questions, result[1:])
	return questions, nil
}

// GetQuestion returns one question by its slug, or nil
func (r *QuizRepository) GetQuestion(ctx context.Context, questionID string) (*model.QuizQuestion, error) {
	query := `
		SELECT * FROM quiz_question WHERE question_id = $question_id LIMIT 1;
		SELECT * FROM quiz_option WHERE question_id = $question_id ORDER BY sort_order ASC;
	`
	vars := map[string]interface{}{"question_id": questionID}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}
	if len(result) < 2 {
		return nil, nil
	}

	questions := parseRecords(result[:1], parseQuizQuestion)
	if len(questions) == 0 {
		return nil, nil
	}
	attachOptions(questions, result[1:])
	return questions[0], nil
}

// CreateQuestion stores a question and its options atomically
func (r *QuizRepository) CreateQuestion(ctx context.Context, question *model.QuizQuestion) error {
	content := map[string]interface{}{
		"question_id": question.QuestionID,
		"question":    question.Question,
		"answer_type": question.AnswerType,
		"sort_order":  question.SortOrder,
	}
	optionalFields(content, map[string]*string{"description": question.Description})

	batch := database.NewAtomicBatch().
		Add(`CREATE quiz_question CONTENT $question`, map[string]interface{}{"question": content})

	for _, opt := range question.Options {
		option := map[string]interface{}{
			"question_id": question.QuestionID,
			"option_id":   opt.OptionID,
			"text":        opt.Text,
			"value":       opt.Value,
			"sort_order":  opt.SortOrder,
		}
		optionalFields(option, map[string]*string{"icon": opt.Icon})
		batch.Add(`CREATE quiz_option CONTENT $option`, map[string]interface{}{"option": option})
	}

	result, err := batch.Execute(ctx, r.db)
	if err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return fmt.Errorf("%w: quiz question already exists", database.ErrDuplicate)
		}
		return err
	}

	created, err := extractCreatedRecord(result)
	if err != nil {
		return err
	}

	question.ID = created.ID
	question.CreatedOn = created.CreatedOn
	return nil
}

func attachOptions(questions []*model.QuizQuestion, optionResult []interface{}) {
	byQuestion := make(map[string]*model.QuizQuestion, len(questions))
	for _, q := range questions {
		byQuestion[q.QuestionID] = q
	}

	for _, item := range statementRecords(optionResult) {
		data, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		q, ok := byQuestion[getString(data, "question_id")]
		if !ok {
			continue
		}
		q.Options = append(q.Options, model.QuizOption{
			OptionID:  getString(data, "option_id"),
			Text:      getString(data, "text"),
			Value:     getString(data, "value"),
			Icon:      getStringPtr(data, "icon"),
			SortOrder: getInt(data, "sort_order"),
		})
	}
}

func parseQuizQuestion(result interface{}) (*model.QuizQuestion, error) {
	data, ok := result.(map[string]interface{})
	if !ok {
		return nil, errors.New("unexpected result format")
	}

	return &model.QuizQuestion{
		ID:          convertSurrealID(data["id"]),
		QuestionID:  getString(data, "question_id"),
		Question:    getString(data, "question"),
		Description: getStringPtr(data, "description"),
		AnswerType:  getString(data, "answer_type"),
		SortOrder:   getInt(data, "sort_order"),
		Options:     []model.QuizOption{},
		CreatedOn:   getTime(data, "created_on"),
	}, nil
}
