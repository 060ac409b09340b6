package recommend

import (
	"cmp"
	"slices"
	"time"

	"github.com/forgo/cuppa/internal/model"
)

// Rank scores every coffee the user has neither rated nor favorited and
// returns them by descending score. Equal scores keep catalogue order.
func Rank(coffees []*model.Coffee, reviews []*model.Review, flavorNotes []*model.FlavorNote, rc *model.RecommendationContext) []model.ScoredCoffee {
	if rc == nil {
		rc = &model.RecommendationContext{}
	}

	excluded := exclusions(rc)
	index := newCatalog(reviews, flavorNotes)
	now := referenceTime(rc.Now)

	scored := make([]model.ScoredCoffee, 0, len(coffees))
	for _, coffee := range coffees {
		if coffee == nil || excluded[coffee.ID] {
			continue
		}
		result := index.score(coffee, rc, now)
		scored = append(scored, model.ScoredCoffee{
			Coffee:       coffee,
			Score:        result.Value,
			MatchReasons: result.Reasons,
		})
	}

	slices.SortStableFunc(scored, func(a, b model.ScoredCoffee) int {
		return cmp.Compare(b.Score, a.Score)
	})

	return scored
}

// RankFromQuiz ranks coffees for someone known only by their quiz answers.
// The quiz roast is promoted to an explicit roast preference; no other
// preference is set. A zero now means wall clock.
func RankFromQuiz(coffees []*model.Coffee, reviews []*model.Review, flavorNotes []*model.FlavorNote, quiz model.QuizResults, now time.Time) []model.ScoredCoffee {
	return Rank(coffees, reviews, flavorNotes, QuizContext(quiz, now))
}

// QuizContext builds the recommendation context used for quiz-only ranking
func QuizContext(quiz model.QuizResults, now time.Time) *model.RecommendationContext {
	return &model.RecommendationContext{
		UserPreferences: model.UserPreference{
			FavoriteRoastLevels: QuizRoastLevels(quiz.PreferredRoast),
		},
		QuizResults: &quiz,
		Now:         now,
	}
}

func exclusions(rc *model.RecommendationContext) map[string]bool {
	excluded := make(map[string]bool, len(rc.Ratings)+len(rc.FavoritedIDs))
	for coffeeID := range rc.Ratings {
		excluded[coffeeID] = true
	}
	for _, coffeeID := range rc.FavoritedIDs {
		excluded[coffeeID] = true
	}
	return excluded
}
