// Package postgres implements the repositories of internal/store on
// PostgreSQL through the pgx stdlib driver. Stores accept a store.DBTX so
// they run against a pool or inside a transaction.
package postgres
