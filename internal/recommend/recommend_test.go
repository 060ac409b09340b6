package recommend

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgo/cuppa/internal/model"
)

var testNow = time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }

func daysAgo(n int) time.Time {
	return testNow.Add(-time.Duration(n) * 24 * time.Hour)
}

func newCoffee(id, origin, roast string, process *string, created time.Time) *model.Coffee {
	return &model.Coffee{
		ID:            id,
		Name:          "Coffee " + id,
		Roaster:       "Roaster",
		Origin:        origin,
		RoastLevel:    roast,
		ProcessMethod: process,
		CreatedOn:     created,
	}
}

func newReview(id, userID, coffeeID string, rating int, notes ...string) *model.Review {
	return &model.Review{
		ID:          id,
		UserID:      userID,
		CoffeeID:    coffeeID,
		Rating:      rating,
		FlavorNotes: notes,
		CreatedOn:   testNow,
	}
}

func contextWith(prefs model.UserPreference) *model.RecommendationContext {
	return &model.RecommendationContext{UserPreferences: prefs, Now: testNow}
}

// ============================================================================
// ExtractPreferences Tests
// ============================================================================

func TestExtractPreferences_ColdStart(t *testing.T) {
	t.Parallel()
	coffees := []*model.Coffee{newCoffee("c1", "Ethiopia", model.RoastLight, nil, testNow)}
	reviews := []*model.Review{
		newReview("r1", "u1", "c1", 3, "n1"),
		newReview("r2", "u1", "c1", 1),
	}

	prefs := ExtractPreferences(reviews, coffees, nil)

	assert.NotNil(t, prefs.FavoriteOrigins)
	assert.Empty(t, prefs.FavoriteOrigins)
	assert.NotNil(t, prefs.FavoriteRoastLevels)
	assert.Empty(t, prefs.FavoriteRoastLevels)
	assert.NotNil(t, prefs.FavoriteProcessMethods)
	assert.Empty(t, prefs.FavoriteProcessMethods)
	assert.NotNil(t, prefs.FavoriteFlavorProfiles)
	assert.Empty(t, prefs.FavoriteFlavorProfiles)
}

func TestExtractPreferences_TopNWithFirstSeenTieBreak(t *testing.T) {
	t.Parallel()
	washed := strPtr(model.ProcessWashed)
	natural := strPtr(model.ProcessNatural)
	honey := strPtr(model.ProcessHoney)
	coffees := []*model.Coffee{
		newCoffee("c1", "Kenya", model.RoastLight, washed, testNow),
		newCoffee("c2", "Ethiopia", model.RoastMedium, natural, testNow),
		newCoffee("c3", "Colombia", model.RoastDark, honey, testNow),
		newCoffee("c4", "Ethiopia", model.RoastDark, nil, testNow),
		newCoffee("c5", "Brazil", model.RoastLight, natural, testNow),
	}
	reviews := []*model.Review{
		newReview("r1", "u1", "c1", 5, "n3", "n1"),
		newReview("r2", "u1", "c2", 4, "n2", "n1"),
		newReview("r3", "u1", "c3", 4, "n4", "n5", "n6"),
		newReview("r4", "u1", "c4", 5, "n2"),
		newReview("r5", "u1", "c5", 4),
	}

	prefs := ExtractPreferences(reviews, coffees, nil)

	assert.Equal(t, []string{"Ethiopia", "Kenya", "Colombia"}, prefs.FavoriteOrigins)
	assert.Equal(t, []string{model.RoastLight, model.RoastDark}, prefs.FavoriteRoastLevels)
	assert.Equal(t, []string{model.ProcessNatural, model.ProcessWashed}, prefs.FavoriteProcessMethods)
	assert.Equal(t, []string{"n1", "n2", "n3", "n4", "n5"}, prefs.FavoriteFlavorProfiles)
}

func TestExtractPreferences_UnknownCoffeeKeepsFlavorNotes(t *testing.T) {
	t.Parallel()
	coffees := []*model.Coffee{newCoffee("c1", "Kenya", model.RoastLight, nil, testNow)}
	reviews := []*model.Review{newReview("r1", "u1", "missing", 5, "n1")}

	prefs := ExtractPreferences(reviews, coffees, nil)

	assert.Empty(t, prefs.FavoriteOrigins)
	assert.Empty(t, prefs.FavoriteRoastLevels)
	assert.Equal(t, []string{"n1"}, prefs.FavoriteFlavorProfiles)
}

func TestExtractPreferences_IgnoresNilEntries(t *testing.T) {
	t.Parallel()
	coffees := []*model.Coffee{nil, newCoffee("c1", "Kenya", model.RoastLight, nil, testNow)}
	reviews := []*model.Review{nil, newReview("r1", "u1", "c1", 4)}

	prefs := ExtractPreferences(reviews, coffees, nil)

	assert.Equal(t, []string{"Kenya"}, prefs.FavoriteOrigins)
	assert.Empty(t, prefs.FavoriteProcessMethods)
}

// ============================================================================
// Freshness Tests
// ============================================================================

func TestFreshness(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		created time.Time
		want    float64
	}{
		{"brand new", testNow, 1.0},
		{"ten days", daysAgo(10), 1 - 10.0/365},
		{"partial day floors", testNow.Add(-36 * time.Hour), 1 - 1.0/365},
		{"missing date", time.Time{}, 1 - 90.0/365},
		{"older than a year", daysAgo(400), MinFreshness},
		{"floor reached", daysAgo(73), MinFreshness},
		{"future date", testNow.Add(48 * time.Hour), 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Freshness(tt.created, testNow)
			assert.InDelta(t, tt.want, got, 1e-9)
			assert.GreaterOrEqual(t, got, MinFreshness)
			assert.LessOrEqual(t, got, 1.0)
		})
	}
}

// ============================================================================
// Score Tests
// ============================================================================

func TestScore_FreshnessOnly(t *testing.T) {
	t.Parallel()
	coffee := newCoffee("c1", "Brazil", model.RoastDark, nil, daysAgo(400))

	result := Score(coffee, nil, nil, contextWith(model.UserPreference{}))

	assert.InDelta(t, 0.8, result.Value, 1e-9)
	assert.NotNil(t, result.Reasons)
	assert.Empty(t, result.Reasons)
}

func TestScore_NilContext(t *testing.T) {
	t.Parallel()
	coffee := newCoffee("c1", "Brazil", model.RoastDark, nil, time.Now().Add(-400*24*time.Hour))

	result := Score(coffee, nil, nil, nil)

	assert.InDelta(t, 0.8, result.Value, 1e-9)
	assert.Empty(t, result.Reasons)
}

func TestScore_AllSignalsInOrder(t *testing.T) {
	t.Parallel()
	coffee := newCoffee("c1", "Ethiopia", model.RoastLight, strPtr(model.ProcessNatural), testNow)
	notes := []*model.FlavorNote{
		{ID: "n1", Name: "Blueberry"},
		{ID: "n2", Name: "Milk Chocolate"},
		{ID: "n3", Name: "Jasmine"},
	}
	reviews := []*model.Review{
		newReview("r1", "u2", "c1", 5, "n1", "n2"),
		newReview("r2", "u3", "c1", 4, "n1", "n3"),
	}
	rc := contextWith(model.UserPreference{
		FavoriteOrigins:        []string{"Ethiopia"},
		FavoriteRoastLevels:    []string{model.RoastLight},
		FavoriteProcessMethods: []string{model.ProcessNatural},
		FavoriteFlavorProfiles: []string{"n1", "n3"},
	})
	rc.QuizResults = &model.QuizResults{PreferredFlavors: []string{"fruity", "Floral", "nutty"}}

	result := Score(coffee, reviews, notes, rc)

	want := 1.0 + WeightOriginMatch + WeightRoastMatch + WeightProcessMatch +
		2*WeightFlavorMatch + 2*WeightFlavorMatch*QuizFlavorDiscount + 1.5*WeightRatingInfluence
	assert.InDelta(t, want, result.Value, 1e-9)
	assert.Equal(t, []string{
		"From Ethiopia, one of your favorite origins",
		"Light roast matches your preference",
		"Natural process matches your preference",
		"Has 2 flavor notes you like",
		"Matches 2 flavor preferences from your quiz",
		"Highly rated by the community",
	}, result.Reasons)
}

func TestScore_ExplicitFlavorCap(t *testing.T) {
	t.Parallel()
	coffee := newCoffee("c1", "Kenya", model.RoastMedium, nil, testNow)
	reviews := []*model.Review{
		newReview("r1", "u2", "c1", 3, "n1", "n2", "n3"),
		newReview("r2", "u3", "c1", 3, "n4", "n5", "n1"),
	}
	rc := contextWith(model.UserPreference{
		FavoriteFlavorProfiles: []string{"n1", "n2", "n3", "n4", "n5"},
	})

	result := Score(coffee, reviews, nil, rc)

	assert.InDelta(t, 1.0+float64(MaxFlavorMatches)*WeightFlavorMatch, result.Value, 1e-9)
	assert.Equal(t, []string{"Has 5 flavor notes you like"}, result.Reasons)
}

func TestScore_QuizRoastFallback(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name       string
		prefs      model.UserPreference
		roast      string
		quizRoast  string
		wantValue  float64
		wantReason []string
	}{
		{
			name:       "quiz fills in",
			roast:      model.RoastMediumDark,
			quizRoast:  "Dark",
			wantValue:  1.0 + WeightRoastMatch,
			wantReason: []string{"Medium-Dark roast matches your quiz preference"},
		},
		{
			name:       "explicit wins",
			prefs:      model.UserPreference{FavoriteRoastLevels: []string{model.RoastMedium}},
			roast:      model.RoastMedium,
			quizRoast:  "medium",
			wantValue:  1.0 + WeightRoastMatch,
			wantReason: []string{"Medium roast matches your preference"},
		},
		{
			name:       "no overlap",
			roast:      model.RoastDark,
			quizRoast:  "light",
			wantValue:  1.0,
			wantReason: []string{},
		},
		{
			name:       "unmapped answer",
			roast:      model.RoastMediumDark,
			quizRoast:  model.QuizRoastMediumDark,
			wantValue:  1.0,
			wantReason: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			coffee := newCoffee("c1", "Peru", tt.roast, nil, testNow)
			rc := contextWith(tt.prefs)
			rc.QuizResults = &model.QuizResults{PreferredRoast: tt.quizRoast}

			result := Score(coffee, nil, nil, rc)

			assert.InDelta(t, tt.wantValue, result.Value, 1e-9)
			assert.Equal(t, tt.wantReason, result.Reasons)
		})
	}
}

func TestScore_QuizFlavorUsesNoteNames(t *testing.T) {
	t.Parallel()
	coffee := newCoffee("c1", "Kenya", model.RoastLight, nil, testNow)
	notes := []*model.FlavorNote{
		{ID: "n1", Name: "Red CHERRY"},
		{ID: "n2", Name: "Lemon zest"},
		{ID: "n3", Name: ""},
	}
	reviews := []*model.Review{newReview("r1", "u2", "c1", 3, "n1", "n2", "n3", "unknown")}
	rc := contextWith(model.UserPreference{})
	rc.QuizResults = &model.QuizResults{PreferredFlavors: []string{"fruity", "spicy", "sweet"}}

	result := Score(coffee, reviews, notes, rc)

	// Two fruity notes still count the category once
	assert.InDelta(t, 1.0+WeightFlavorMatch*QuizFlavorDiscount, result.Value, 1e-9)
	assert.Equal(t, []string{"Matches 1 flavor preferences from your quiz"}, result.Reasons)
}

func TestScore_CommunityRating(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		ratings []int
		boost   float64
		reasons []string
	}{
		{"highly rated", []int{5, 4}, 0.75, []string{"Highly rated by the community"}},
		{"well rated", []int{4, 4}, 0.5, []string{"Well rated by the community"}},
		{"just below well rated", []int{4, 4, 3, 4, 4, 4, 4, 4, 4, 4}, 0.45, []string{}},
		{"below baseline", []int{1, 2}, 0, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			coffee := newCoffee("c1", "Kenya", model.RoastLight, nil, testNow)
			reviews := make([]*model.Review, 0, len(tt.ratings))
			for i, r := range tt.ratings {
				reviews = append(reviews, newReview(fmt.Sprintf("r%d", i), fmt.Sprintf("u%d", i), "c1", r))
			}

			result := Score(coffee, reviews, nil, contextWith(model.UserPreference{}))

			assert.InDelta(t, 1.0+tt.boost, result.Value, 1e-9)
			assert.Equal(t, tt.reasons, result.Reasons)
		})
	}
}

func TestScore_Monotonicity(t *testing.T) {
	t.Parallel()
	prefs := model.UserPreference{
		FavoriteOrigins:        []string{"Ethiopia"},
		FavoriteRoastLevels:    []string{model.RoastLight},
		FavoriteProcessMethods: []string{model.ProcessWashed},
	}
	base := newCoffee("c1", "Brazil", model.RoastDark, strPtr(model.ProcessNatural), daysAgo(30))

	variants := map[string]*model.Coffee{
		"origin":  newCoffee("c1", "Ethiopia", model.RoastDark, strPtr(model.ProcessNatural), daysAgo(30)),
		"roast":   newCoffee("c1", "Brazil", model.RoastLight, strPtr(model.ProcessNatural), daysAgo(30)),
		"process": newCoffee("c1", "Brazil", model.RoastDark, strPtr(model.ProcessWashed), daysAgo(30)),
	}

	baseScore := Score(base, nil, nil, contextWith(prefs)).Value
	for name, coffee := range variants {
		t.Run(name, func(t *testing.T) {
			assert.Greater(t, Score(coffee, nil, nil, contextWith(prefs)).Value, baseScore)
		})
	}
}

// ============================================================================
// Rank Tests
// ============================================================================

func TestRank_WorkedExample(t *testing.T) {
	t.Parallel()
	a := newCoffee("a", "Ethiopia", model.RoastLight, nil, daysAgo(10))
	b := newCoffee("b", "Brazil", model.RoastDark, nil, daysAgo(400))
	reviews := []*model.Review{newReview("r1", "u2", "a", 5, "1")}
	rc := contextWith(model.UserPreference{
		FavoriteOrigins:        []string{"Ethiopia"},
		FavoriteFlavorProfiles: []string{"1"},
	})

	ranked := Rank([]*model.Coffee{b, a}, reviews, nil, rc)

	require.Len(t, ranked, 2)
	assert.Equal(t, "a", ranked[0].Coffee.ID)
	assert.Equal(t, "b", ranked[1].Coffee.ID)

	wantA := (1 - 10.0/365) + WeightOriginMatch + WeightFlavorMatch + 2*WeightRatingInfluence
	assert.InDelta(t, wantA, ranked[0].Score, 1e-9)
	assert.Contains(t, ranked[0].MatchReasons, "From Ethiopia, one of your favorite origins")
	assert.Contains(t, ranked[0].MatchReasons, "Has a flavor note you like")

	assert.InDelta(t, 0.8, ranked[1].Score, 1e-9)
	assert.Empty(t, ranked[1].MatchReasons)
}

func TestRank_ExcludesRatedAndFavorited(t *testing.T) {
	t.Parallel()
	coffees := []*model.Coffee{
		newCoffee("c1", "Kenya", model.RoastLight, nil, testNow),
		newCoffee("c2", "Kenya", model.RoastLight, nil, testNow),
		newCoffee("c3", "Kenya", model.RoastLight, nil, testNow),
		nil,
	}
	rc := contextWith(model.UserPreference{})
	rc.Ratings = map[string]int{"c1": 2}
	rc.FavoritedIDs = []string{"c3"}
	rc.RecentlyViewedIDs = []string{"c2"}

	ranked := Rank(coffees, nil, nil, rc)

	require.Len(t, ranked, 1)
	assert.Equal(t, "c2", ranked[0].Coffee.ID)
}

func TestRank_StableOnTies(t *testing.T) {
	t.Parallel()
	coffees := []*model.Coffee{
		newCoffee("c1", "Kenya", model.RoastLight, nil, daysAgo(500)),
		newCoffee("c2", "Peru", model.RoastDark, nil, daysAgo(600)),
		newCoffee("c3", "Ethiopia", model.RoastLight, nil, daysAgo(10)),
		newCoffee("c4", "Brazil", model.RoastMedium, nil, daysAgo(700)),
	}

	ranked := Rank(coffees, nil, nil, contextWith(model.UserPreference{}))

	ids := make([]string, len(ranked))
	for i, sc := range ranked {
		ids[i] = sc.Coffee.ID
	}
	assert.Equal(t, []string{"c3", "c1", "c2", "c4"}, ids)
}

func TestRank_Deterministic(t *testing.T) {
	t.Parallel()
	coffees := []*model.Coffee{
		newCoffee("c1", "Kenya", model.RoastLight, strPtr(model.ProcessWashed), daysAgo(5)),
		newCoffee("c2", "Ethiopia", model.RoastMedium, nil, daysAgo(50)),
		newCoffee("c3", "Colombia", model.RoastDark, strPtr(model.ProcessHoney), daysAgo(500)),
	}
	notes := []*model.FlavorNote{{ID: "n1", Name: "Honey"}, {ID: "n2", Name: "Walnut"}}
	reviews := []*model.Review{
		newReview("r1", "u2", "c1", 4, "n1"),
		newReview("r2", "u3", "c2", 5, "n2"),
		newReview("r3", "u4", "c3", 2, "n1", "n2"),
	}
	rc := contextWith(model.UserPreference{FavoriteFlavorProfiles: []string{"n2"}})
	rc.QuizResults = &model.QuizResults{PreferredRoast: "medium", PreferredFlavors: []string{"sweet", "nutty"}}

	first := Rank(coffees, reviews, notes, rc)
	second := Rank(coffees, reviews, notes, rc)

	assert.Equal(t, first, second)
}

func TestRankFromQuiz(t *testing.T) {
	t.Parallel()
	coffees := []*model.Coffee{
		newCoffee("c1", "Brazil", model.RoastDark, nil, testNow),
		newCoffee("c2", "Kenya", model.RoastLight, nil, testNow),
		newCoffee("c3", "Ethiopia", model.RoastMediumLight, nil, testNow),
	}
	notes := []*model.FlavorNote{{ID: "n1", Name: "Raspberry"}}
	reviews := []*model.Review{newReview("r1", "u2", "c3", 3, "n1")}
	quiz := model.QuizResults{PreferredRoast: "light", PreferredFlavors: []string{"fruity"}}

	ranked := RankFromQuiz(coffees, reviews, notes, quiz, testNow)

	require.Len(t, ranked, 3)
	assert.Equal(t, "c3", ranked[0].Coffee.ID)
	assert.Equal(t, []string{
		"Medium-Light roast matches your preference",
		"Matches 1 flavor preferences from your quiz",
	}, ranked[0].MatchReasons)
	assert.Equal(t, "c2", ranked[1].Coffee.ID)
	assert.Equal(t, []string{"Light roast matches your preference"}, ranked[1].MatchReasons)
	assert.Equal(t, "c1", ranked[2].Coffee.ID)
	assert.Empty(t, ranked[2].MatchReasons)
}

func TestQuizContext(t *testing.T) {
	t.Parallel()
	rc := QuizContext(model.QuizResults{PreferredRoast: "DARK"}, testNow)

	assert.Equal(t, []string{model.RoastMediumDark, model.RoastDark}, rc.UserPreferences.FavoriteRoastLevels)
	assert.Empty(t, rc.UserPreferences.FavoriteOrigins)
	require.NotNil(t, rc.QuizResults)
	assert.Equal(t, testNow, rc.Now)
}

func TestQuizRoastLevels_ReturnsCopy(t *testing.T) {
	t.Parallel()
	levels := QuizRoastLevels("light")
	levels[0] = "mutated"

	assert.Equal(t, []string{model.RoastLight, model.RoastMediumLight}, QuizRoastLevels("light"))
	assert.Empty(t, QuizRoastLevels("unknown"))
}
