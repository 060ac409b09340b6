// Package testdb provides isolated SurrealDB databases for integration tests.
//
// Each TestDB gets its own namespace with every migration applied, so tests
// run real SurrealQL against the real schema:
//
//	func TestCoffeeRepository(t *testing.T) {
//	    tdb := testdb.New(t) // skipped when SurrealDB is unreachable
//	    repo := repository.NewCoffeeRepository(tdb.DB)
//	}
//
// # Configuration
//
// TEST_DB_HOST, TEST_DB_PORT, TEST_DB_USER and TEST_DB_PASSWORD override the
// local defaults (localhost:8000, root/root). Migrations are located by
// walking up from the test's working directory, or from CUPPA_ROOT.
//
// # Cleanup
//
// The namespace is removed through t.Cleanup. Reset clears every table for
// tests that want a blank slate mid-run.
package testdb
