// Package postgres provides PostgreSQL implementations of the repository
// interfaces defined in internal/store, built on sqlx over the pgx stdlib driver.
//
// Queries on tags and tasks are always scoped by the owning user's ID, so a
// row that belongs to another user is reported as not found. Driver errors are
// translated to store sentinels by MapError before they leave the package.
//
// The schema lives in the embedded goose migrations exposed as Migrations.
package postgres
