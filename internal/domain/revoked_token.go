package domain

import (
	"time"

	"github.com/google/uuid"
)

// RevokedToken marks a bearer token as unusable before its natural expiry.
// Only a digest of the token is kept; ExpiresAt is the token's own expiry,
// after which the entry can be purged.
type RevokedToken struct {
	ID        uuid.UUID `db:"id"`
	TokenHash string    `db:"token_hash"`
	ExpiresAt time.Time `db:"expires_at"`
	RevokedAt time.Time `db:"revoked_at"`
}
