package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/forgo/cuppa/internal/cache"
	"github.com/forgo/cuppa/internal/metrics"
	"github.com/forgo/cuppa/internal/model"
	"github.com/forgo/cuppa/internal/recommend"
)

const tracerName = "github.com/forgo/cuppa/internal/service"

// CatalogRepository loads the whole coffee catalogue
type CatalogRepository interface {
	ListAll(ctx context.Context) ([]*model.Coffee, error)
}

// ReviewHistoryRepository loads reviews for scoring
type ReviewHistoryRepository interface {
	ListAll(ctx context.Context) ([]*model.Review, error)
	ListByUser(ctx context.Context, userID string) ([]*model.Review, error)
}

// FavoriteLister loads a user's saved coffees
type FavoriteLister interface {
	ListByUser(ctx context.Context, userID string) ([]*model.Favorite, error)
}

// RecommendationCache stores ranked results between requests
type RecommendationCache interface {
	Get(ctx context.Context, q cache.Query) ([]model.ScoredCoffee, string, error)
	Set(ctx context.Context, key string, recs []model.ScoredCoffee) error
}

// RecommendationRecorder receives recommendation metrics
type RecommendationRecorder interface {
	ObserveRecommendation(kind, outcome string, seconds float64, candidates int)
	IncCache(result string)
}

// RecommendationService turns catalogue data into ranked recommendations
type RecommendationService struct {
	coffeeRepo     CatalogRepository
	reviewRepo     ReviewHistoryRepository
	flavorNoteRepo FlavorNoteLister
	favoriteRepo   FavoriteLister
	cache          RecommendationCache
	metrics        RecommendationRecorder
	tracer         trace.Tracer
	now            func() time.Time
}

// RecommendationServiceConfig holds configuration for the recommendation service.
// Cache and Metrics are optional.
type RecommendationServiceConfig struct {
	CoffeeRepo     CatalogRepository
	ReviewRepo     ReviewHistoryRepository
	FlavorNoteRepo FlavorNoteLister
	FavoriteRepo   FavoriteLister
	Cache          RecommendationCache
	Metrics        RecommendationRecorder
	// Clock overrides the wall clock used for freshness
	Clock func() time.Time
}

// NewRecommendationService creates a new recommendation service
func NewRecommendationService(cfg RecommendationServiceConfig) *RecommendationService {
	now := cfg.Clock
	if now == nil {
		now = time.Now
	}
	return &RecommendationService{
		coffeeRepo:     cfg.CoffeeRepo,
		reviewRepo:     cfg.ReviewRepo,
		flavorNoteRepo: cfg.FlavorNoteRepo,
		favoriteRepo:   cfg.FavoriteRepo,
		cache:          cfg.Cache,
		metrics:        cfg.Metrics,
		tracer:         otel.Tracer(tracerName),
		now:            now,
	}
}

// catalogSnapshot is everything ranking reads from storage
type catalogSnapshot struct {
	coffees     []*model.Coffee
	reviews     []*model.Review
	flavorNotes []*model.FlavorNote
}

// GetRecommendations ranks the catalogue for a signed-in user
func (s *RecommendationService) GetRecommendations(ctx context.Context, userID string, opts model.RecommendationOptions) (recs []model.ScoredCoffee, err error) {
	if userID == "" {
		return nil, ErrUserIDRequired
	}
	limit, err := normalizeLimit(opts.Limit)
	if err != nil {
		return nil, err
	}
	if opts.Quiz != nil {
		if err := validateQuiz(opts.Quiz); err != nil {
			return nil, err
		}
	}

	ctx, finish := s.startRun(ctx, metrics.KindPersonal, userID, limit)
	defer func() { finish(len(recs), err) }()

	query := cache.Query{Kind: metrics.KindPersonal, UserID: userID, Limit: limit, Quiz: opts.Quiz}
	cached, key := s.lookup(ctx, query)
	if cached != nil {
		return cached, nil
	}

	snap, err := s.loadCatalog(ctx)
	if err != nil {
		return nil, err
	}

	rc, err := s.userContext(ctx, userID, snap.coffees, snap.reviews)
	if err != nil {
		return nil, err
	}
	rc.QuizResults = opts.Quiz

	recs = truncate(recommend.Rank(snap.coffees, snap.reviews, snap.flavorNotes, rc), limit)
	s.store(ctx, key, recs)
	return recs, nil
}

// GetQuizRecommendations ranks the catalogue from quiz answers. An empty
// userID is an anonymous caller; otherwise the user's rated and saved
// coffees are excluded.
func (s *RecommendationService) GetQuizRecommendations(ctx context.Context, userID string, quiz model.QuizResults, limit int) (recs []model.ScoredCoffee, err error) {
	limit, err = normalizeLimit(limit)
	if err != nil {
		return nil, err
	}
	if err := validateQuiz(&quiz); err != nil {
		return nil, err
	}

	ctx, finish := s.startRun(ctx, metrics.KindQuiz, userID, limit)
	defer func() { finish(len(recs), err) }()

	query := cache.Query{Kind: metrics.KindQuiz, UserID: userID, Limit: limit, Quiz: &quiz}
	cached, key := s.lookup(ctx, query)
	if cached != nil {
		return cached, nil
	}

	snap, err := s.loadCatalog(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if userID == "" {
		recs = recommend.RankFromQuiz(snap.coffees, snap.reviews, snap.flavorNotes, quiz, now)
	} else {
		rc := recommend.QuizContext(quiz, now)
		user, err := s.userContext(ctx, userID, snap.coffees, snap.reviews)
		if err != nil {
			return nil, err
		}
		rc.Ratings = user.Ratings
		rc.FavoritedIDs = user.FavoritedIDs
		recs = recommend.Rank(snap.coffees, snap.reviews, snap.flavorNotes, rc)
	}

	recs = truncate(recs, limit)
	s.store(ctx, key, recs)
	return recs, nil
}

// GetPreferences derives the user's taste profile from their reviews
func (s *RecommendationService) GetPreferences(ctx context.Context, userID string) (*model.UserPreference, error) {
	if userID == "" {
		return nil, ErrUserIDRequired
	}

	userReviews, err := s.reviewRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	coffees, err := s.coffeeRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	notes, err := s.flavorNoteRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	prefs := recommend.ExtractPreferences(userReviews, coffees, notes)
	return &prefs, nil
}

// userContext builds the recommendation context for a user from a
// consistent snapshot of reviews
func (s *RecommendationService) userContext(ctx context.Context, userID string, coffees []*model.Coffee, reviews []*model.Review) (*model.RecommendationContext, error) {
	var userReviews []*model.Review
	ratings := make(map[string]int)
	for _, r := range reviews {
		if r == nil || r.UserID != userID {
			continue
		}
		userReviews = append(userReviews, r)
		ratings[r.CoffeeID] = r.Rating
	}

	favorites, err := s.favoriteRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	favoritedIDs := make([]string, 0, len(favorites))
	for _, f := range favorites {
		favoritedIDs = append(favoritedIDs, f.CoffeeID)
	}

	return &model.RecommendationContext{
		UserPreferences: recommend.ExtractPreferences(userReviews, coffees, nil),
		Ratings:         ratings,
		FavoritedIDs:    favoritedIDs,
		Now:             s.now(),
	}, nil
}

func (s *RecommendationService) loadCatalog(ctx context.Context) (*catalogSnapshot, error) {
	coffees, err := s.coffeeRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	reviews, err := s.reviewRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	notes, err := s.flavorNoteRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	trace.SpanFromContext(ctx).SetAttributes(
		attribute.Int("recommendation.coffees", len(coffees)),
		attribute.Int("recommendation.reviews", len(reviews)),
	)
	return &catalogSnapshot{coffees: coffees, reviews: reviews, flavorNotes: notes}, nil
}

// startRun opens a span for one recommendation run. The returned func
// records the outcome and ends the span.
func (s *RecommendationService) startRun(ctx context.Context, kind, userID string, limit int) (context.Context, func(int, error)) {
	started := time.Now()
	ctx, span := s.tracer.Start(ctx, "recommendation."+kind,
		trace.WithAttributes(
			attribute.Bool("user.authenticated", userID != ""),
			attribute.Int("recommendation.limit", limit),
		),
	)

	return ctx, func(results int, err error) {
		outcome := metrics.OutcomeSuccess
		if err != nil {
			outcome = metrics.OutcomeError
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.SetAttributes(attribute.Int("recommendation.results", results))
		span.End()

		if s.metrics != nil {
			s.metrics.ObserveRecommendation(kind, outcome, time.Since(started).Seconds(), results)
		}
	}
}

// lookup returns a cached result, or nil and the key to store under.
// Cache failures degrade to computing.
func (s *RecommendationService) lookup(ctx context.Context, q cache.Query) ([]model.ScoredCoffee, string) {
	if s.cache == nil {
		return nil, ""
	}

	recs, key, err := s.cache.Get(ctx, q)
	switch {
	case err != nil:
		s.countCache(metrics.CacheError)
		slog.Warn("recommendation cache lookup failed", slog.String("error", err.Error()))
		return nil, ""
	case recs != nil:
		s.countCache(metrics.CacheHit)
		trace.SpanFromContext(ctx).SetAttributes(attribute.Bool("recommendation.cached", true))
		return recs, key
	default:
		s.countCache(metrics.CacheMiss)
		return nil, key
	}
}

func (s *RecommendationService) store(ctx context.Context, key string, recs []model.ScoredCoffee) {
	if s.cache == nil || key == "" {
		return
	}
	if err := s.cache.Set(ctx, key, recs); err != nil {
		s.countCache(metrics.CacheError)
		slog.Warn("recommendation cache store failed", slog.String("error", err.Error()))
	}
}

func (s *RecommendationService) countCache(result string) {
	if s.metrics != nil {
		s.metrics.IncCache(result)
	}
}

// normalizeLimit applies the default to an unset limit
func normalizeLimit(limit int) (int, error) {
	if limit == 0 {
		return model.DefaultRecommendationLimit, nil
	}
	if limit < 0 || limit > model.MaxRecommendationLimit {
		return 0, ErrInvalidLimit
	}
	return limit, nil
}

var validQuizRoasts = map[string]bool{
	model.QuizRoastLight:      true,
	model.QuizRoastMedium:     true,
	model.QuizRoastMediumDark: true,
	model.QuizRoastDark:       true,
}

func validateQuiz(quiz *model.QuizResults) error {
	if quiz.PreferredRoast != "" && !validQuizRoasts[strings.ToLower(quiz.PreferredRoast)] {
		return ErrInvalidQuizRoast
	}
	if len(quiz.PreferredFlavors) > 10 {
		return ErrTooManyQuizFlavors
	}
	return nil
}

func truncate(recs []model.ScoredCoffee, limit int) []model.ScoredCoffee {
	if len(recs) > limit {
		return recs[:limit]
	}
	return recs
}
