package recommend

import (
	"slices"
	"strings"

	"github.com/forgo/cuppa/internal/model"
)

var quizRoastLevels = map[string][]string{
	model.QuizRoastLight:  {model.RoastLight, model.RoastMediumLight},
	model.QuizRoastMedium: {model.RoastMediumLight, model.RoastMedium, model.RoastMediumDark},
	model.QuizRoastDark:   {model.RoastMediumDark, model.RoastDark},
}

// Quiz flavor categories mapped to substrings of flavor note names.
// Matching is case-insensitive containment.
var quizFlavorKeywords = map[string][]string{
	"sweet":  {"sweet", "sugar", "honey", "caramel", "chocolate", "toffee", "candy"},
	"fruity": {"fruit", "berry", "citrus", "apple", "cherry", "orange", "lemon", "tropical"},
	"nutty":  {"nut", "almond", "hazelnut", "peanut", "walnut"},
	"earthy": {"earth", "woody", "forest", "tobacco", "leather", "spice"},
	"floral": {"floral", "jasmine", "rose", "lavender", "herb"},
	"acidic": {"bright", "acidic", "tangy", "sour", "tart"},
}

// QuizRoastLevels maps a quiz roast answer (light, medium, dark) onto catalogue
// roast levels. Unknown answers map to nothing.
func QuizRoastLevels(preferredRoast string) []string {
	return slices.Clone(quizRoastLevels[strings.ToLower(preferredRoast)])
}

// countQuizFlavorMatches counts quiz categories with at least one keyword
// contained in any of the note names.
func countQuizFlavorMatches(categories []string, noteNames []string) int {
	lowered := make([]string, len(noteNames))
	for i, name := range noteNames {
		lowered[i] = strings.ToLower(name)
	}

	matches := 0
	for _, category := range categories {
		keywords := quizFlavorKeywords[strings.ToLower(category)]
		if anyContains(lowered, keywords) {
			matches++
		}
	}
	return matches
}

func anyContains(names, keywords []string) bool {
	for _, name := range names {
		for _, keyword := range keywords {
			if strings.Contains(name, keyword) {
				return true
			}
		}
	}
	return false
}
