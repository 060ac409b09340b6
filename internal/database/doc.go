// Package database provides SurrealDB connectivity for the Cuppa API.
//
// The Database interface is the only thing repositories depend on:
//
//	db := database.NewSurrealDB(cfg)
//	if err := db.Connect(ctx); err != nil {
//	    return err
//	}
//	defer db.Close()
//
//	record, err := db.QueryOne(ctx, "SELECT * FROM type::record($id)", map[string]interface{}{"id": coffeeID})
//
// Query returns one {status, result} map per statement. QueryOne unwraps the
// first record of the first statement and reports ErrNotFound when it is empty.
//
// # Error Types
//
//   - ErrNotFound: Record does not exist
//   - ErrDuplicate: Unique index violation
//   - ErrConnection: Database connection failed
//   - ErrQuery: Statement failed
//
// Use errors.Is to test for them. Multi-statement writes go through
// AtomicBatch (see transaction.go).
package database
