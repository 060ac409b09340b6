package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/forgo/cuppa/internal/middleware"
	"github.com/forgo/cuppa/internal/model"
)

// RecommendationService is the ranking surface the handler needs
type RecommendationService interface {
	GetRecommendations(ctx context.Context, userID string, opts model.RecommendationOptions) ([]model.ScoredCoffee, error)
	GetQuizRecommendations(ctx context.Context, userID string, quiz model.QuizResults, limit int) ([]model.ScoredCoffee, error)
	GetPreferences(ctx context.Context, userID string) (*model.UserPreference, error)
}

// RecommendationHandler handles recommendation endpoints
type RecommendationHandler struct {
	recommendationService RecommendationService
}

// NewRecommendationHandler creates a new recommendation handler
func NewRecommendationHandler(recommendationService RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{recommendationService: recommendationService}
}

// Get handles GET /v1/recommendations?limit=&roast=&flavors=
// The optional roast and flavors parameters fold quiz answers into the
// personal ranking; flavors is comma separated.
func (h *RecommendationHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		WriteError(w, model.NewBadRequestError(err.Error()))
		return
	}

	opts := model.RecommendationOptions{
		Limit: limit,
		Quiz:  quizFromQuery(r),
	}

	recs, err := h.recommendationService.GetRecommendations(r.Context(), userID, opts)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "get recommendations"))
		return
	}

	WriteCollection(w, http.StatusOK, recs, nil, map[string]string{
		"self":        "/v1/recommendations",
		"preferences": "/v1/recommendations/preferences",
	})
}

// Quiz handles POST /v1/recommendations/quiz. Anonymous callers get a
// pure quiz ranking; signed-in callers also skip coffees they rated or saved.
func (h *RecommendationHandler) Quiz(w http.ResponseWriter, r *http.Request) {
	var req model.QuizRecommendationRequest
	if err := DecodeJSON(w, r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}
	if problem := validateRequest(&req); problem != nil {
		WriteError(w, problem)
		return
	}

	userID := middleware.GetUserID(r.Context())
	recs, err := h.recommendationService.GetQuizRecommendations(r.Context(), userID, req.Quiz, req.Limit)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "get quiz recommendations"))
		return
	}

	WriteCollection(w, http.StatusOK, recs, nil, map[string]string{
		"self":      "/v1/recommendations/quiz",
		"questions": "/v1/quiz/questions",
	})
}

// Preferences handles GET /v1/recommendations/preferences
func (h *RecommendationHandler) Preferences(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	prefs, err := h.recommendationService.GetPreferences(r.Context(), userID)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "get preferences"))
		return
	}

	WriteData(w, http.StatusOK, prefs, map[string]string{
		"self":            "/v1/recommendations/preferences",
		"recommendations": "/v1/recommendations",
	})
}

// quizFromQuery returns nil when neither roast nor flavors is present
func quizFromQuery(r *http.Request) *model.QuizResults {
	q := r.URL.Query()
	roast := strings.TrimSpace(q.Get("roast"))
	rawFlavors := strings.TrimSpace(q.Get("flavors"))
	if roast == "" && rawFlavors == "" {
		return nil
	}

	quiz := &model.QuizResults{PreferredRoast: roast}
	for _, f := range strings.Split(rawFlavors, ",") {
		if f = strings.TrimSpace(f); f != "" {
			quiz.PreferredFlavors = append(quiz.PreferredFlavors, f)
		}
	}
	return quiz
}
