package service

import (
	"context"
	"errors"
	"strings"

	"github.com/forgo/cuppa/internal/database"
	"github.com/forgo/cuppa/internal/model"
)

// QuizRepository defines the interface for taste quiz storage
type QuizRepository interface {
	ListQuestions(ctx context.Context) ([]*model.QuizQuestion, error)
	GetQuestion(ctx context.Context, questionID string) (*model.QuizQuestion, error)
	CreateQuestion(ctx context.Context, question *model.QuizQuestion) error
}

// QuizService serves the taste quiz
type QuizService struct {
	repo QuizRepository
}

// QuizServiceConfig holds configuration for the quiz service
type QuizServiceConfig struct {
	Repo QuizRepository
}

// NewQuizService creates a new quiz service
func NewQuizService(cfg QuizServiceConfig) *QuizService {
	return &QuizService{repo: cfg.Repo}
}

// ListQuestions returns the quiz in display order
func (s *QuizService) ListQuestions(ctx context.Context) ([]*model.QuizQuestion, error) {
	return s.repo.ListQuestions(ctx)
}

// GetQuestion returns one question by its slug
func (s *QuizService) GetQuestion(ctx context.Context, questionID string) (*model.QuizQuestion, error) {
	question, err := s.repo.GetQuestion(ctx, questionID)
	if err != nil {
		return nil, err
	}
	if question == nil {
		return nil, ErrQuizQuestionNotFound
	}
	return question, nil
}

// CreateQuestion adds a question with its options
func (s *QuizService) CreateQuestion(ctx context.Context, req *model.CreateQuizQuestionRequest) (*model.QuizQuestion, error) {
	if req.AnswerType != model.QuizAnswerSingle && req.AnswerType != model.QuizAnswerMultiple {
		return nil, ErrInvalidAnswerType
	}
	if len(req.Options) == 0 {
		return nil, ErrQuizOptionsRequired
	}

	question := &model.QuizQuestion{
		QuestionID:  strings.TrimSpace(req.QuestionID),
		Question:    strings.TrimSpace(req.Question),
		Description: req.Description,
		AnswerType:  req.AnswerType,
		SortOrder:   req.SortOrder,
		Options:     make([]model.QuizOption, 0, len(req.Options)),
	}
	for _, opt := range req.Options {
		question.Options = append(question.Options, model.QuizOption{
			OptionID:  opt.OptionID,
			Text:      opt.Text,
			Value:     opt.Value,
			Icon:      opt.Icon,
			SortOrder: opt.SortOrder,
		})
	}

	if err := s.repo.CreateQuestion(ctx, question); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrQuizQuestionExists
		}
		return nil, err
	}
	return question, nil
}
