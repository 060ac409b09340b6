// Package recommend ranks catalogue coffees for a user.
//
// The package is a pure computation: callers hand over the whole catalogue,
// every review and every flavor note, and get back a ranked list. Nothing here
// performs I/O or keeps state between calls, so it is safe to call from any
// number of goroutines.
//
// # Pipeline
//
//   - ExtractPreferences derives a UserPreference from a user's reviews rated 4 or 5.
//   - Score computes an additive affinity score plus human-readable reasons.
//   - Rank drops coffees the user already rated or favorited, scores the rest
//     and stable-sorts them by descending score.
//
// # Scoring
//
// Every coffee starts with a freshness term in [0.8, 1.0]. Matching signals
// then add fixed weights:
//
//	origin match             1.5
//	roast match              1.0  (explicit preference, else quiz roast)
//	process match            0.7
//	flavor notes             2.0 per match, at most 3 matches
//	quiz flavor categories   1.6 per matching category
//	community rating         0.5 per star above 3
//
// Each signal that fires appends a reason string, in the order above.
package recommend
