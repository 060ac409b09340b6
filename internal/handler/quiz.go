package handler

import (
	"context"
	"net/http"

	"github.com/forgo/cuppa/internal/model"
)

// QuizService is the quiz surface the handler needs
type QuizService interface {
	ListQuestions(ctx context.Context) ([]*model.QuizQuestion, error)
	GetQuestion(ctx context.Context, questionID string) (*model.QuizQuestion, error)
	CreateQuestion(ctx context.Context, req *model.CreateQuizQuestionRequest) (*model.QuizQuestion, error)
}

// QuizHandler handles taste quiz endpoints
type QuizHandler struct {
	quizService QuizService
}

// NewQuizHandler creates a new quiz handler
func NewQuizHandler(quizService QuizService) *QuizHandler {
	return &QuizHandler{quizService: quizService}
}

// ListQuestions handles GET /v1/quiz/questions
func (h *QuizHandler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	questions, err := h.quizService.ListQuestions(r.Context())
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "list quiz questions"))
		return
	}

	WriteCollection(w, http.StatusOK, questions, nil, map[string]string{
		"self":            "/v1/quiz/questions",
		"recommendations": "/v1/recommendations/quiz",
	})
}

// GetQuestion handles GET /v1/quiz/questions/{questionId}
func (h *QuizHandler) GetQuestion(w http.ResponseWriter, r *http.Request) {
	questionID := r.PathValue("questionId")

	question, err := h.quizService.GetQuestion(r.Context(), questionID)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "get quiz question"))
		return
	}

	WriteData(w, http.StatusOK, question, map[string]string{
		"self": "/v1/quiz/questions/" + question.QuestionID,
	})
}

// CreateQuestion handles POST /v1/quiz/questions (admin only)
func (h *QuizHandler) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	var req model.CreateQuizQuestionRequest
	if err := DecodeJSON(w, r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}
	if problem := validateRequest(&req); problem != nil {
		WriteError(w, problem)
		return
	}

	question, err := h.quizService.CreateQuestion(r.Context(), &req)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "create quiz question"))
		return
	}

	WriteData(w, http.StatusCreated, question, map[string]string{
		"self": "/v1/quiz/questions/" + question.QuestionID,
	})
}
