package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/forgo/cuppa/internal/middleware"
	"github.com/forgo/cuppa/internal/model"
)

// ============================================================================
// Mock CoffeeService
// ============================================================================

type mockCoffeeService struct {
	listCoffeesFunc          func(ctx context.Context, limit, offset int) ([]*model.Coffee, error)
	getCoffeeFunc            func(ctx context.Context, id string) (*model.Coffee, error)
	searchCoffeesFunc        func(ctx context.Context, term string, limit int) ([]*model.Coffee, error)
	createCoffeeFunc         func(ctx context.Context, userID string, req *model.CreateCoffeeRequest) (*model.Coffee, error)
	listFlavorNotesFunc      func(ctx context.Context) ([]*model.FlavorNote, error)
	createFlavorNoteFunc     func(ctx context.Context, req *model.CreateFlavorNoteRequest) (*model.FlavorNote, error)
	getCoffeeFlavorNotesFunc func(ctx context.Context, coffeeID string) ([]*model.FlavorNote, error)
}

func (m *mockCoffeeService) ListCoffees(ctx context.Context, limit, offset int) ([]*model.Coffee, error) {
	if m.listCoffeesFunc != nil {
		return m.listCoffeesFunc(ctx, limit, offset)
	}
	return nil, nil
}

func (m *mockCoffeeService) GetCoffee(ctx context.Context, id string) (*model.Coffee, error) {
	if m.getCoffeeFunc != nil {
		return m.getCoffeeFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockCoffeeService) SearchCoffees(ctx context.Context, term string, limit int) ([]*model.Coffee, error) {
	if m.searchCoffeesFunc != nil {
		return m.searchCoffeesFunc(ctx, term, limit)
	}
	return nil, nil
}

func (m *mockCoffeeService) CreateCoffee(ctx context.Context, userID string, req *model.CreateCoffeeRequest) (*model.Coffee, error) {
	if m.createCoffeeFunc != nil {
		return m.createCoffeeFunc(ctx, userID, req)
	}
	return nil, nil
}

func (m *mockCoffeeService) ListFlavorNotes(ctx context.Context) ([]*model.FlavorNote, error) {
	if m.listFlavorNotesFunc != nil {
		return m.listFlavorNotesFunc(ctx)
	}
	return nil, nil
}

func (m *mockCoffeeService) CreateFlavorNote(ctx context.Context, req *model.CreateFlavorNoteRequest) (*model.FlavorNote, error) {
	if m.createFlavorNoteFunc != nil {
		return m.createFlavorNoteFunc(ctx, req)
	}
	return nil, nil
}

func (m *mockCoffeeService) GetCoffeeFlavorNotes(ctx context.Context, coffeeID string) ([]*model.FlavorNote, error) {
	if m.getCoffeeFlavorNotesFunc != nil {
		return m.getCoffeeFlavorNotesFunc(ctx, coffeeID)
	}
	return nil, nil
}

// ============================================================================
// Mock ReviewService
// ============================================================================

type mockReviewService struct {
	createReviewFunc      func(ctx context.Context, userID string, req *model.CreateReviewRequest) (*model.Review, error)
	listCoffeeReviewsFunc func(ctx context.Context, coffeeID string, limit, offset int) ([]*model.Review, error)
	listUserReviewsFunc   func(ctx context.Context, userID string) ([]*model.Review, error)
	getRatingSummaryFunc  func(ctx context.Context, coffeeID string) (*model.RatingSummary, error)
}

func (m *mockReviewService) CreateReview(ctx context.Context, userID string, req *model.CreateReviewRequest) (*model.Review, error) {
	if m.createReviewFunc != nil {
		return m.createReviewFunc(ctx, userID, req)
	}
	return nil, nil
}

func (m *mockReviewService) ListCoffeeReviews(ctx context.Context, coffeeID string, limit, offset int) ([]*model.Review, error) {
	if m.listCoffeeReviewsFunc != nil {
		return m.listCoffeeReviewsFunc(ctx, coffeeID, limit, offset)
	}
	return nil, nil
}

func (m *mockReviewService) ListUserReviews(ctx context.Context, userID string) ([]*model.Review, error) {
	if m.listUserReviewsFunc != nil {
		return m.listUserReviewsFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockReviewService) GetRatingSummary(ctx context.Context, coffeeID string) (*model.RatingSummary, error) {
	if m.getRatingSummaryFunc != nil {
		return m.getRatingSummaryFunc(ctx, coffeeID)
	}
	return nil, nil
}

// ============================================================================
// Mock FavoriteService
// ============================================================================

type mockFavoriteService struct {
	addFavoriteFunc    func(ctx context.Context, userID, coffeeID string) (*model.Favorite, error)
	removeFavoriteFunc func(ctx context.Context, userID, coffeeID string) error
	isFavoriteFunc     func(ctx context.Context, userID, coffeeID string) (*model.FavoriteStatus, error)
	listFavoritesFunc  func(ctx context.Context, userID string) ([]*model.Favorite, error)
}

func (m *mockFavoriteService) AddFavorite(ctx context.Context, userID, coffeeID string) (*model.Favorite, error) {
	if m.addFavoriteFunc != nil {
		return m.addFavoriteFunc(ctx, userID, coffeeID)
	}
	return nil, nil
}

func (m *mockFavoriteService) RemoveFavorite(ctx context.Context, userID, coffeeID string) error {
	if m.removeFavoriteFunc != nil {
		return m.removeFavoriteFunc(ctx, userID, coffeeID)
	}
	return nil
}

func (m *mockFavoriteService) IsFavorite(ctx context.Context, userID, coffeeID string) (*model.FavoriteStatus, error) {
	if m.isFavoriteFunc != nil {
		return m.isFavoriteFunc(ctx, userID, coffeeID)
	}
	return nil, nil
}

func (m *mockFavoriteService) ListFavorites(ctx context.Context, userID string) ([]*model.Favorite, error) {
	if m.listFavoritesFunc != nil {
		return m.listFavoritesFunc(ctx, userID)
	}
	return nil, nil
}

// ============================================================================
// Mock QuizService
// ============================================================================

type mockQuizService struct {
	listQuestionsFunc  func(ctx context.Context) ([]*model.QuizQuestion, error)
	getQuestionFunc    func(ctx context.Context, questionID string) (*model.QuizQuestion, error)
	createQuestionFunc func(ctx context.Context, req *model.CreateQuizQuestionRequest) (*model.QuizQuestion, error)
}

func (m *mockQuizService) ListQuestions(ctx context.Context) ([]*model.QuizQuestion, error) {
	if m.listQuestionsFunc != nil {
		return m.listQuestionsFunc(ctx)
	}
	return nil, nil
}

func (m *mockQuizService) GetQuestion(ctx context.Context, questionID string) (*model.QuizQuestion, error) {
	if m.getQuestionFunc != nil {
		return m.getQuestionFunc(ctx, questionID)
	}
	return nil, nil
}

func (m *mockQuizService) CreateQuestion(ctx context.Context, req *model.CreateQuizQuestionRequest) (*model.QuizQuestion, error) {
	if m.createQuestionFunc != nil {
		return m.createQuestionFunc(ctx, req)
	}
	return nil, nil
}

// ============================================================================
// Mock RecommendationService
// ============================================================================

type mockRecommendationService struct {
	getRecommendationsFunc     func(ctx context.Context, userID string, opts model.RecommendationOptions) ([]model.ScoredCoffee, error)
	getQuizRecommendationsFunc func(ctx context.Context, userID string, quiz model.QuizResults, limit int) ([]model.ScoredCoffee, error)
	getPreferencesFunc         func(ctx context.Context, userID string) (*model.UserPreference, error)
}

func (m *mockRecommendationService) GetRecommendations(ctx context.Context, userID string, opts model.RecommendationOptions) ([]model.ScoredCoffee, error) {
	if m.getRecommendationsFunc != nil {
		return m.getRecommendationsFunc(ctx, userID, opts)
	}
	return nil, nil
}

func (m *mockRecommendationService) GetQuizRecommendations(ctx context.Context, userID string, quiz model.QuizResults, limit int) ([]model.ScoredCoffee, error) {
	if m.getQuizRecommendationsFunc != nil {
		return m.getQuizRecommendationsFunc(ctx, userID, quiz, limit)
	}
	return nil, nil
}

func (m *mockRecommendationService) GetPreferences(ctx context.Context, userID string) (*model.UserPreference, error) {
	if m.getPreferencesFunc != nil {
		return m.getPreferencesFunc(ctx, userID)
	}
	return nil, nil
}

// ============================================================================
// Test Helpers
// ============================================================================

func strPtr(s string) *string { return &s }

func testCoffee(id string) *model.Coffee {
	return &model.Coffee{
		ID:         id,
		Name:       "Yirgacheffe Kochere",
		Roaster:    "Tandem",
		Origin:     "Ethiopia",
		RoastLevel: model.RoastLight,
		CreatedOn:  time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
	}
}

// jsonRequest builds a request with an encoded body. A string body is sent verbatim.
func jsonRequest(t *testing.T, method, path string, body interface{}) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		if err := json.NewEncoder(&buf).Encode(b); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func withUser(req *http.Request, userID string) *http.Request {
	return req.WithContext(context.WithValue(req.Context(), middleware.UserIDKey, userID))
}

// serve routes req through a mux so path values resolve
func serve(pattern string, h http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	mux := http.NewServeMux()
	mux.HandleFunc(pattern, h)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	return rr
}

type envelope struct {
	Data       json.RawMessage   `json:"data"`
	Pagination *PaginationInfo   `json:"pagination"`
	Links      map[string]string `json:"_links"`
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v (body %s)", err, rr.Body.String())
	}
	return env
}

func decodeProblem(t *testing.T, rr *httptest.ResponseRecorder) model.ProblemDetails {
	t.Helper()
	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/problem+json") {
		t.Errorf("expected problem+json content type, got %q", ct)
	}
	var pd model.ProblemDetails
	if err := json.Unmarshal(rr.Body.Bytes(), &pd); err != nil {
		t.Fatalf("decode problem: %v (body %s)", err, rr.Body.String())
	}
	return pd
}
