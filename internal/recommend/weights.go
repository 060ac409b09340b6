package recommend

// Scoring weights. Changing a ranking means changing these.
const (
	WeightFlavorMatch     = 2.0
	WeightOriginMatch     = 1.5
	WeightRoastMatch      = 1.0
	WeightProcessMatch    = 0.7
	WeightRatingInfluence = 0.5

	// QuizFlavorDiscount scales quiz flavor matches below explicit ones.
	QuizFlavorDiscount = 0.8

	// MaxFlavorMatches caps how many explicit flavor matches are scored.
	MaxFlavorMatches = 3

	// RatingBaseline is the community average below which no boost applies.
	RatingBaseline = 3.0
)

// Freshness tuning
const (
	MinFreshness         = 0.8
	FreshnessHorizonDays = 365
	// DefaultAgeDays is assumed for coffees without a creation time.
	DefaultAgeDays = 90
)

// Preference extraction policy
const (
	HighRatingThreshold  = 4
	MaxFavoriteOrigins   = 3
	MaxFavoriteRoasts    = 2
	MaxFavoriteProcesses = 2
	MaxFavoriteFlavors   = 5
)

// Community rating thresholds for reasons
const (
	HighlyRatedAverage = 4.5
	WellRatedAverage   = 4.0
)
