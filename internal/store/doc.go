// Package store declares the persistence contracts for users, admins, tags,
// tasks and revoked tokens, the sentinel errors implementations map to, and
// the transaction helper shared by the services.
package store
