// Package postgres implements the store interfaces against a PostgreSQL
// database using the pgx stdlib driver. The content collections persist
// through full-replace snapshots executed in a single transaction; users,
// reviews, and messages persist row-by-row.
package postgres
