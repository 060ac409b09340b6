package main

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/forgo/cuppa/internal/database"
	"github.com/forgo/cuppa/internal/handler"
	"github.com/forgo/cuppa/internal/metrics"
	"github.com/forgo/cuppa/internal/middleware"
	"github.com/forgo/cuppa/internal/repository"
	"github.com/forgo/cuppa/internal/service"
)

// dependencies are the process-wide resources the handlers are built from.
// Everything except DB is optional.
type dependencies struct {
	DB          database.Database
	Cache       service.RecommendationCache
	Invalidator service.RecommendationInvalidator
	Metrics     *metrics.Metrics
	Registry    *prometheus.Registry
	// Optional health checks reported as degraded rather than down
	Optional map[string]handler.Pinger
}

// handlers groups everything the router dispatches to
type handlers struct {
	Coffee         *handler.CoffeeHandler
	Review         *handler.ReviewHandler
	Favorite       *handler.FavoriteHandler
	Quiz           *handler.QuizHandler
	Recommendation *handler.RecommendationHandler
	Health         *handler.HealthHandler
	Metrics        http.Handler
}

// newHandlers builds repositories, services and handlers over deps
func newHandlers(deps dependencies) handlers {
	coffeeRepo := repository.NewCoffeeRepository(deps.DB)
	flavorNoteRepo := repository.NewFlavorNoteRepository(deps.DB)
	reviewRepo := repository.NewReviewRepository(deps.DB)
	favoriteRepo := repository.NewFavoriteRepository(deps.DB)
	quizRepo := repository.NewQuizRepository(deps.DB)

	var recorder service.RecommendationRecorder
	if deps.Metrics != nil {
		recorder = deps.Metrics
	}

	coffeeService := service.NewCoffeeService(service.CoffeeServiceConfig{
		Repo:           coffeeRepo,
		FlavorNoteRepo: flavorNoteRepo,
		Invalidator:    deps.Invalidator,
	})

	reviewService := service.NewReviewService(service.ReviewServiceConfig{
		Repo:           reviewRepo,
		CoffeeRepo:     coffeeRepo,
		FlavorNoteRepo: flavorNoteRepo,
		Invalidator:    deps.Invalidator,
	})

	favoriteService := service.NewFavoriteService(service.FavoriteServiceConfig{
		Repo:        favoriteRepo,
		CoffeeRepo:  coffeeRepo,
		Invalidator: deps.Invalidator,
	})

	quizService := service.NewQuizService(service.QuizServiceConfig{
		Repo: quizRepo,
	})

	recommendationService := service.NewRecommendationService(service.RecommendationServiceConfig{
		CoffeeRepo:     coffeeRepo,
		ReviewRepo:     reviewRepo,
		FlavorNoteRepo: flavorNoteRepo,
		FavoriteRepo:   favoriteRepo,
		Cache:          deps.Cache,
		Metrics:        recorder,
	})

	h := handlers{
		Coffee:         handler.NewCoffeeHandler(coffeeService),
		Review:         handler.NewReviewHandler(reviewService),
		Favorite:       handler.NewFavoriteHandler(favoriteService),
		Quiz:           handler.NewQuizHandler(quizService),
		Recommendation: handler.NewRecommendationHandler(recommendationService),
		Health:         handler.NewHealthHandler(map[string]handler.Pinger{"database": deps.DB}, deps.Optional),
	}
	if deps.Registry != nil {
		h.Metrics = promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{})
	}
	return h
}

// newRouter registers every route on a fresh mux. Public routes see the
// caller when a token is present, protected routes require one, and admin
// routes require the admin role on top.
func newRouter(h handlers, validator middleware.TokenValidator, rateLimit middleware.RateLimitConfig) *http.ServeMux {
	mux := http.NewServeMux()

	// One limiter shared by every route so the budget is per client, not per endpoint
	limit := middleware.RateLimit(rateLimit)

	public := func(fn http.HandlerFunc) http.Handler {
		return middleware.Chain(fn, middleware.OptionalAuth(validator), limit)
	}
	protected := func(fn http.HandlerFunc) http.Handler {
		return middleware.Chain(fn, middleware.Auth(validator), limit)
	}
	admin := func(fn http.HandlerFunc) http.Handler {
		return middleware.Chain(fn, middleware.Auth(validator), middleware.RequireAdmin, limit)
	}

	// Operational endpoints
	mux.HandleFunc("GET /health", h.Health.Health)
	if h.Metrics != nil {
		mux.Handle("GET /metrics", h.Metrics)
	}

	// Coffee catalogue
	mux.Handle("GET /v1/coffees", public(h.Coffee.List))
	mux.Handle("GET /v1/coffees/search", public(h.Coffee.Search))
	mux.Handle("GET /v1/coffees/{coffeeId}", public(h.Coffee.Get))
	mux.Handle("POST /v1/coffees", protected(h.Coffee.Create))
	mux.Handle("GET /v1/coffees/{coffeeId}/flavor-notes", public(h.Coffee.GetFlavorNotes))

	// Flavor notes
	mux.Handle("GET /v1/flavor-notes", public(h.Coffee.ListFlavorNotes))
	mux.Handle("POST /v1/flavor-notes", protected(h.Coffee.CreateFlavorNote))

	// Reviews
	mux.Handle("GET /v1/coffees/{coffeeId}/reviews", public(h.Review.ListForCoffee))
	mux.Handle("GET /v1/coffees/{coffeeId}/rating", public(h.Review.GetRating))
	mux.Handle("POST /v1/reviews", protected(h.Review.Create))
	mux.Handle("GET /v1/users/{userId}/reviews", public(h.Review.ListForUser))

	// Favorites
	mux.Handle("GET /v1/favorites", protected(h.Favorite.List))
	mux.Handle("GET /v1/favorites/{coffeeId}", protected(h.Favorite.Status))
	mux.Handle("PUT /v1/coffees/{coffeeId}/favorite", protected(h.Favorite.Add))
	mux.Handle("DELETE /v1/coffees/{coffeeId}/favorite", protected(h.Favorite.Remove))

	// Taste quiz
	mux.Handle("GET /v1/quiz/questions", public(h.Quiz.ListQuestions))
	mux.Handle("GET /v1/quiz/questions/{questionId}", public(h.Quiz.GetQuestion))
	mux.Handle("POST /v1/quiz/questions", admin(h.Quiz.CreateQuestion))

	// Recommendations
	mux.Handle("GET /v1/recommendations", protected(h.Recommendation.Get))
	mux.Handle("GET /v1/recommendations/preferences", protected(h.Recommendation.Preferences))
	mux.Handle("POST /v1/recommendations/quiz", public(h.Recommendation.Quiz))

	return mux
}
