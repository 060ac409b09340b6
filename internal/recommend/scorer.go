package recommend

import (
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/forgo/cuppa/internal/model"
)

// Result is a coffee's affinity score and the reasons behind it
type Result struct {
	Value   float64
	Reasons []string
}

// Score computes how well a coffee matches the context. It is total: missing
// data degrades the relevant term to zero.
//
// Callers scoring many coffees against the same reviews should use Rank, which
// indexes the reviews once.
func Score(coffee *model.Coffee, reviews []*model.Review, flavorNotes []*model.FlavorNote, rc *model.RecommendationContext) Result {
	if rc == nil {
		rc = &model.RecommendationContext{}
	}
	return newCatalog(reviews, flavorNotes).score(coffee, rc, referenceTime(rc.Now))
}

// Freshness returns the base score for a coffee created at createdOn. A zero
// createdOn counts as DefaultAgeDays old. The result is always within
// [MinFreshness, 1].
func Freshness(createdOn, now time.Time) float64 {
	days := float64(DefaultAgeDays)
	if !createdOn.IsZero() {
		days = math.Floor(now.Sub(createdOn).Hours() / 24)
	}
	if days < 0 {
		days = 0
	}
	return math.Max(MinFreshness, 1-days/FreshnessHorizonDays)
}

// catalog indexes reviews by coffee and flavor note names by ID
type catalog struct {
	reviewsByCoffee map[string][]*model.Review
	notesByCoffee   map[string][]string
	noteNames       map[string]string
}

func newCatalog(reviews []*model.Review, flavorNotes []*model.FlavorNote) *catalog {
	c := &catalog{
		reviewsByCoffee: make(map[string][]*model.Review),
		notesByCoffee:   make(map[string][]string),
		noteNames:       make(map[string]string, len(flavorNotes)),
	}

	for _, note := range flavorNotes {
		if note == nil {
			continue
		}
		if _, ok := c.noteNames[note.ID]; !ok {
			c.noteNames[note.ID] = note.Name
		}
	}

	seen := make(map[string]map[string]bool)
	for _, review := range reviews {
		if review == nil {
			continue
		}
		c.reviewsByCoffee[review.CoffeeID] = append(c.reviewsByCoffee[review.CoffeeID], review)

		notes := seen[review.CoffeeID]
		if notes == nil {
			notes = make(map[string]bool)
			seen[review.CoffeeID] = notes
		}
		for _, noteID := range review.FlavorNotes {
			if notes[noteID] {
				continue
			}
			notes[noteID] = true
			c.notesByCoffee[review.CoffeeID] = append(c.notesByCoffee[review.CoffeeID], noteID)
		}
	}

	return c
}

// flavorNoteNames resolves a coffee's flavor note IDs to names, skipping
// unknown IDs and blank names.
func (c *catalog) flavorNoteNames(coffeeID string) []string {
	ids := c.notesByCoffee[coffeeID]
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if name := c.noteNames[id]; name != "" {
			names = append(names, name)
		}
	}
	return names
}

func (c *catalog) score(coffee *model.Coffee, rc *model.RecommendationContext, now time.Time) Result {
	prefs := rc.UserPreferences
	reasons := make([]string, 0, 6)
	value := Freshness(coffee.CreatedOn, now)

	if slices.Contains(prefs.FavoriteOrigins, coffee.Origin) {
		value += WeightOriginMatch
		reasons = append(reasons, fmt.Sprintf("From %s, one of your favorite origins", coffee.Origin))
	}

	if slices.Contains(prefs.FavoriteRoastLevels, coffee.RoastLevel) {
		value += WeightRoastMatch
		reasons = append(reasons, fmt.Sprintf("%s roast matches your preference", coffee.RoastLevel))
	} else if rc.QuizResults != nil && rc.QuizResults.PreferredRoast != "" {
		if slices.Contains(QuizRoastLevels(rc.QuizResults.PreferredRoast), coffee.RoastLevel) {
			value += WeightRoastMatch
			reasons = append(reasons, fmt.Sprintf("%s roast matches your quiz preference", coffee.RoastLevel))
		}
	}

	if coffee.ProcessMethod != nil && slices.Contains(prefs.FavoriteProcessMethods, *coffee.ProcessMethod) {
		value += WeightProcessMatch
		reasons = append(reasons, fmt.Sprintf("%s process matches your preference", *coffee.ProcessMethod))
	}

	matches := 0
	for _, noteID := range c.notesByCoffee[coffee.ID] {
		if slices.Contains(prefs.FavoriteFlavorProfiles, noteID) {
			matches++
		}
	}
	if matches > 0 {
		value += float64(min(matches, MaxFlavorMatches)) * WeightFlavorMatch
		if matches == 1 {
			reasons = append(reasons, "Has a flavor note you like")
		} else {
			reasons = append(reasons, fmt.Sprintf("Has %d flavor notes you like", matches))
		}
	}

	if rc.QuizResults != nil && len(rc.QuizResults.PreferredFlavors) > 0 {
		quizMatches := countQuizFlavorMatches(rc.QuizResults.PreferredFlavors, c.flavorNoteNames(coffee.ID))
		if quizMatches > 0 {
			value += float64(quizMatches) * WeightFlavorMatch * QuizFlavorDiscount
			reasons = append(reasons, fmt.Sprintf("Matches %d flavor preferences from your quiz", quizMatches))
		}
	}

	if reviews := c.reviewsByCoffee[coffee.ID]; len(reviews) > 0 {
		avg := averageRating(reviews)
		value += math.Max(0, avg-RatingBaseline) * WeightRatingInfluence
		switch {
		case avg >= HighlyRatedAverage:
			reasons = append(reasons, "Highly rated by the community")
		case avg >= WellRatedAverage:
			reasons = append(reasons, "Well rated by the community")
		}
	}

	return Result{Value: value, Reasons: reasons}
}

func averageRating(reviews []*model.Review) float64 {
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	return float64(sum) / float64(len(reviews))
}

func referenceTime(now time.Time) time.Time {
	if now.IsZero() {
		return time.Now()
	}
	return now
}
