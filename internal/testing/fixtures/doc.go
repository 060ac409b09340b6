// Package fixtures provides test data factories for integration tests.
//
// Factory methods insert rows with sensible defaults and return populated
// models; option functions override individual fields:
//
//	f := fixtures.New(tdb.DB)
//	coffee := f.CreateCoffee(t, fixtures.WithOrigin("Kenya"), fixtures.WithRoast(model.RoastDark))
//	berry := f.CreateFlavorNote(t, "berry")
//	f.CreateReview(t, fixtures.UserID(), coffee, 5, berry)
//
// Users are not stored in the database; UserID mints a fresh id.
package fixtures
