package store

import "github.com/jmoiron/sqlx"

// DBTX is satisfied by both *sqlx.DB and *sqlx.Tx, so a store runs the same
// queries inside or outside a transaction.
type DBTX interface {
	sqlx.ExtContext
}
