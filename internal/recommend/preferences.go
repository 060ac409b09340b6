package recommend

import (
	"cmp"
	"slices"

	"github.com/forgo/cuppa/internal/model"
)

// ExtractPreferences derives a taste profile from a user's reviews.
//
// Only reviews rated HighRatingThreshold or above count. Reviews of coffees
// missing from the catalogue still contribute their flavor notes but no
// origin, roast or process tallies. Ties keep first-seen order. A user without
// highly rated reviews gets empty (non-nil) lists.
//
// Flavor notes are tallied by ID as recorded on the reviews; the note catalogue
// is accepted for symmetry with Rank and not consulted.
func ExtractPreferences(userReviews []*model.Review, coffees []*model.Coffee, _ []*model.FlavorNote) model.UserPreference {
	byID := make(map[string]*model.Coffee, len(coffees))
	for _, c := range coffees {
		if c == nil {
			continue
		}
		if _, ok := byID[c.ID]; !ok {
			byID[c.ID] = c
		}
	}

	origins := newTally()
	roasts := newTally()
	processes := newTally()
	flavors := newTally()

	for _, review := range userReviews {
		if review == nil || review.Rating < HighRatingThreshold {
			continue
		}

		for _, noteID := range review.FlavorNotes {
			flavors.add(noteID)
		}

		coffee, ok := byID[review.CoffeeID]
		if !ok {
			continue
		}
		origins.add(coffee.Origin)
		roasts.add(coffee.RoastLevel)
		if coffee.ProcessMethod != nil {
			processes.add(*coffee.ProcessMethod)
		}
	}

	return model.UserPreference{
		FavoriteOrigins:        origins.top(MaxFavoriteOrigins),
		FavoriteRoastLevels:    roasts.top(MaxFavoriteRoasts),
		FavoriteProcessMethods: processes.top(MaxFavoriteProcesses),
		FavoriteFlavorProfiles: flavors.top(MaxFavoriteFlavors),
	}
}

// tally counts occurrences and remembers first-seen order
type tally struct {
	order  []string
	counts map[string]int
}

func newTally() *tally {
	return &tally{counts: make(map[string]int)}
}

func (t *tally) add(key string) {
	if _, seen := t.counts[key]; !seen {
		t.order = append(t.order, key)
	}
	t.counts[key]++
}

// top returns up to n keys by descending count, ties in first-seen order
func (t *tally) top(n int) []string {
	keys := make([]string, len(t.order))
	copy(keys, t.order)

	slices.SortStableFunc(keys, func(a, b string) int {
		return cmp.Compare(t.counts[b], t.counts[a])
	})

	if len(keys) > n {
		keys = keys[:n]
	}
	return keys
}
