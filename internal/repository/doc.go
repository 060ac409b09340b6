// Package repository implements the data access layer for the Cuppa API.
//
// Each repository wraps a database.Database and owns the SurrealQL for one
// entity: coffees, flavor notes, reviews, favorites and quiz questions.
//
// # Conventions
//
//   - Constructor function (NewXxxRepository) accepts a database connection
//   - Lookups return (nil, nil) when the record does not exist
//   - Unique index violations surface as database.ErrDuplicate
//   - Record ids are accepted bare ("abc") or qualified ("coffee:abc")
//   - Optional fields are left out of CONTENT so they stay NONE
//
// # Example Usage
//
//	repo := NewCoffeeRepository(db)
//	coffee, err := repo.GetByID(ctx, "coffee:abc123")
//	if err != nil {
//	    return err
//	}
//	if coffee == nil {
//	    // Handle not found
//	}
package repository
