package service

import (
	"context"
	"strconv"

	"github.com/forgo/cuppa/internal/cache"
	"github.com/forgo/cuppa/internal/model"
)

// ============================================================================
// Mock Repositories
// ============================================================================

type mockCoffeeRepo struct {
	createFunc  func(ctx context.Context, coffee *model.Coffee) error
	getByIDFunc func(ctx context.Context, id string) (*model.Coffee, error)
	listFunc    func(ctx context.Context, limit, offset int) ([]*model.Coffee, error)
	listAllFunc func(ctx context.Context) ([]*model.Coffee, error)
	searchFunc  func(ctx context.Context, term string, limit int) ([]*model.Coffee, error)
}

func (m *mockCoffeeRepo) Create(ctx context.Context, coffee *model.Coffee) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, coffee)
	}
	coffee.ID = "coffee:new"
	return nil
}

func (m *mockCoffeeRepo) GetByID(ctx context.Context, id string) (*model.Coffee, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockCoffeeRepo) List(ctx context.Context, limit, offset int) ([]*model.Coffee, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, limit, offset)
	}
	return []*model.Coffee{}, nil
}

func (m *mockCoffeeRepo) ListAll(ctx context.Context) ([]*model.Coffee, error) {
	if m.listAllFunc != nil {
		return m.listAllFunc(ctx)
	}
	return []*model.Coffee{}, nil
}

func (m *mockCoffeeRepo) Search(ctx context.Context, term string, limit int) ([]*model.Coffee, error) {
	if m.searchFunc != nil {
		return m.searchFunc(ctx, term, limit)
	}
	return []*model.Coffee{}, nil
}

type mockFlavorNoteRepo struct {
	createFunc       func(ctx context.Context, note *model.FlavorNote) error
	listFunc         func(ctx context.Context) ([]*model.FlavorNote, error)
	listByCoffeeFunc func(ctx context.Context, coffeeID string) ([]*model.FlavorNote, error)
}

func (m *mockFlavorNoteRepo) Create(ctx context.Context, note *model.FlavorNote) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, note)
	}
	note.ID = "flavor_note:new"
	return nil
}

func (m *mockFlavorNoteRepo) List(ctx context.Context) ([]*model.FlavorNote, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return []*model.FlavorNote{}, nil
}

func (m *mockFlavorNoteRepo) ListByCoffee(ctx context.Context, coffeeID string) ([]*model.FlavorNote, error) {
	if m.listByCoffeeFunc != nil {
		return m.listByCoffeeFunc(ctx, coffeeID)
	}
	return []*model.FlavorNote{}, nil
}

type mockReviewRepo struct {
	createFunc             func(ctx context.Context, review *model.Review) error
	getByUserAndCoffeeFunc func(ctx context.Context, userID, coffeeID string) (*model.Review, error)
	listAllFunc            func(ctx context.Context) ([]*model.Review, error)
	listByCoffeeFunc       func(ctx context.Context, coffeeID string, limit, offset int) ([]*model.Review, error)
	listByUserFunc         func(ctx context.Context, userID string) ([]*model.Review, error)
	getRatingSummaryFunc   func(ctx context.Context, coffeeID string) (*model.RatingSummary, error)
}

func (m *mockReviewRepo) Create(ctx context.Context, review *model.Review) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, review)
	}
	review.ID = "review:new"
	return nil
}

func (m *mockReviewRepo) GetByUserAndCoffee(ctx context.Context, userID, coffeeID string) (*model.Review, error) {
	if m.getByUserAndCoffeeFunc != nil {
		return m.getByUserAndCoffeeFunc(ctx, userID, coffeeID)
	}
	return nil, nil
}

func (m *mockReviewRepo) ListAll(ctx context.Context) ([]*model.Review, error) {
	if m.listAllFunc != nil {
		return m.listAllFunc(ctx)
	}
	return []*model.Review{}, nil
}

func (m *mockReviewRepo) ListByCoffee(ctx context.Context, coffeeID string, limit, offset int) ([]*model.Review, error) {
	if m.listByCoffeeFunc != nil {
		return m.listByCoffeeFunc(ctx, coffeeID, limit, offset)
	}
	return []*model.Review{}, nil
}

func (m *mockReviewRepo) ListByUser(ctx context.Context, userID string) ([]*model.Review, error) {
	if m.listByUserFunc != nil {
		return m.listByUserFunc(ctx, userID)
	}
	return []*model.Review{}, nil
}

func (m *mockReviewRepo) GetRatingSummary(ctx context.Context, coffeeID string) (*model.RatingSummary, error) {
	if m.getRatingSummaryFunc != nil {
		return m.getRatingSummaryFunc(ctx, coffeeID)
	}
	return nil, nil
}

type mockFavoriteRepo struct {
	addFunc        func(ctx context.Context, userID, coffeeID string) (*model.Favorite, error)
	removeFunc     func(ctx context.Context, userID, coffeeID string) error
	existsFunc     func(ctx context.Context, userID, coffeeID string) (bool, error)
	listByUserFunc func(ctx context.Context, userID string) ([]*model.Favorite, error)
}

func (m *mockFavoriteRepo) Add(ctx context.Context, userID, coffeeID string) (*model.Favorite, error) {
	if m.addFunc != nil {
		return m.addFunc(ctx, userID, coffeeID)
	}
	return &model.Favorite{UserID: userID, CoffeeID: coffeeID}, nil
}

func (m *mockFavoriteRepo) Remove(ctx context.Context, userID, coffeeID string) error {
	if m.removeFunc != nil {
		return m.removeFunc(ctx, userID, coffeeID)
	}
	return nil
}

func (m *mockFavoriteRepo) Exists(ctx context.Context, userID, coffeeID string) (bool, error) {
	if m.existsFunc != nil {
		return m.existsFunc(ctx, userID, coffeeID)
	}
	return false, nil
}

func (m *mockFavoriteRepo) ListByUser(ctx context.Context, userID string) ([]*model.Favorite, error) {
	if m.listByUserFunc != nil {
		return m.listByUserFunc(ctx, userID)
	}
	return []*model.Favorite{}, nil
}

type mockQuizRepo struct {
	listQuestionsFunc  func(ctx context.Context) ([]*model.QuizQuestion, error)
	getQuestionFunc    func(ctx context.Context, questionID string) (*model.QuizQuestion, error)
	createQuestionFunc func(ctx context.Context, question *model.QuizQuestion) error
}

func (m *mockQuizRepo) ListQuestions(ctx context.Context) ([]*model.QuizQuestion, error) {
	if m.listQuestionsFunc != nil {
		return m.listQuestionsFunc(ctx)
	}
	return []*model.QuizQuestion{}, nil
}

func (m *mockQuizRepo) GetQuestion(ctx context.Context, questionID string) (*model.QuizQuestion, error) {
	if m.getQuestionFunc != nil {
		return m.getQuestionFunc(ctx, questionID)
	}
	return nil, nil
}

func (m *mockQuizRepo) CreateQuestion(ctx context.Context, question *model.QuizQuestion) error {
	if m.createQuestionFunc != nil {
		return m.createQuestionFunc(ctx, question)
	}
	question.ID = "quiz_question:new"
	return nil
}

// ============================================================================
// Mock Cache, Invalidator and Metrics
// ============================================================================

type mockInvalidator struct {
	users []string
	all   int
	err   error
}

func (m *mockInvalidator) InvalidateUser(ctx context.Context, userID string) error {
	m.users = append(m.users, userID)
	return m.err
}

func (m *mockInvalidator) InvalidateAll(ctx context.Context) error {
	m.all++
	return m.err
}

type mockCache struct {
	entries map[string][]model.ScoredCoffee
	getErr  error
	setErr  error
	sets    int
}

func newMockCache() *mockCache {
	return &mockCache{entries: make(map[string][]model.ScoredCoffee)}
}

func (m *mockCache) key(q cache.Query) string {
	key := q.Kind + "|" + q.UserID + "|" + strconv.Itoa(q.Limit)
	if q.Quiz != nil {
		key += "|" + q.Quiz.PreferredRoast
	}
	return key
}

func (m *mockCache) Get(ctx context.Context, q cache.Query) ([]model.ScoredCoffee, string, error) {
	if m.getErr != nil {
		return nil, "", m.getErr
	}
	key := m.key(q)
	return m.entries[key], key, nil
}

func (m *mockCache) Set(ctx context.Context, key string, recs []model.ScoredCoffee) error {
	m.sets++
	if m.setErr != nil {
		return m.setErr
	}
	if recs == nil {
		recs = []model.ScoredCoffee{}
	}
	m.entries[key] = recs
	return nil
}

type recordedRun struct {
	kind       string
	outcome    string
	candidates int
}

type mockRecorder struct {
	runs  []recordedRun
	cache []string
}

func (m *mockRecorder) ObserveRecommendation(kind, outcome string, seconds float64, candidates int) {
	m.runs = append(m.runs, recordedRun{kind: kind, outcome: outcome, candidates: candidates})
}

func (m *mockRecorder) IncCache(result string) {
	m.cache = append(m.cache, result)
}

// ============================================================================
// Fixtures
// ============================================================================

func strPtr(s string) *string {
	return &s
}

func coffeeByID(coffees ...*model.Coffee) func(ctx context.Context, id string) (*model.Coffee, error) {
	return func(ctx context.Context, id string) (*model.Coffee, error) {
		for _, c := range coffees {
			if c.ID == id {
				return c, nil
			}
		}
		return nil, nil
	}
}
