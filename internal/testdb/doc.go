// Package testdb opens a migrated PostgreSQL database for integration tests.
//
// Tests using it are skipped unless LEXIS_TEST_DATABASE_URL (or
// DATABASE_URL) points at a disposable database. Each test should run its
// statements through WithTx so nothing is committed:
//
//	db := testdb.Open(t)
//	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//		s := postgres.NewWordStore(tx, nil)
//		...
//	})
package testdb
