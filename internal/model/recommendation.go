package model

import "time"

// UserPreference is a taste profile derived from a user's highly rated reviews.
// Lists are ordered most-favored first.
type UserPreference struct {
	FavoriteOrigins        []string `json:"favorite_origins"`
	FavoriteRoastLevels    []string `json:"favorite_roast_levels"`
	FavoriteProcessMethods []string `json:"favorite_process_methods"`
	FavoriteFlavorProfiles []string `json:"favorite_flavor_profiles"` // Flavor note IDs
}

// RecommendationContext is everything known about the requesting user
type RecommendationContext struct {
	UserPreferences   UserPreference
	Ratings           map[string]int // Coffee ID -> the user's rating
	FavoritedIDs      []string
	RecentlyViewedIDs []string
	QuizResults       *QuizResults
	// Now is the reference time for freshness. Zero means wall clock.
	Now time.Time
}

// ScoredCoffee is a ranked recommendation
type ScoredCoffee struct {
	Coffee       *Coffee  `json:"coffee"`
	Score        float64  `json:"score"`
	MatchReasons []string `json:"match_reasons"`
}

// Recommendation paging
const (
	DefaultRecommendationLimit = 20
	MaxRecommendationLimit     = 100
)

// RecommendationOptions tunes a personalized recommendation request
type RecommendationOptions struct {
	Limit int
	Quiz  *QuizResults
}
