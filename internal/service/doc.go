// Package service implements the business logic layer for the Cuppa API.
//
// Services validate input, orchestrate repository calls and hand catalog
// data to the pure scoring code in the recommend package. Handlers never
// touch repositories directly.
//
// # Service Pattern
//
// All services follow a consistent pattern:
//
//   - Constructor function (NewXxxService) accepts a config struct with its dependencies
//   - Each service declares the narrow repository interface it needs
//   - Errors are returned as sentinel errors from errors.go or wrapped with %w
//   - Context is passed through for cancellation and request-scoped values
//
// # Recommendation Caching
//
// Writes that change what a user would be recommended (reviews, favorites,
// new catalog entries) notify a RecommendationInvalidator. A nil
// invalidator disables caching; cache failures are logged and never fail
// the request.
//
// # Example Usage
//
//	svc := NewRecommendationService(RecommendationServiceConfig{
//	    CoffeeRepo:     coffeeRepository,
//	    ReviewRepo:     reviewRepository,
//	    FlavorNoteRepo: flavorNoteRepository,
//	    FavoriteRepo:   favoriteRepository,
//	})
//	recs, err := svc.GetRecommendations(ctx, userID, model.RecommendationOptions{Limit: 10})
package service
