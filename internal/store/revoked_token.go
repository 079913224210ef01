package store

import (
	"context"
	"time"

	"github.com/phrazzld/tasklist-api/internal/domain"
)

// RevokedTokenStore persists the token revocation list.
type RevokedTokenStore interface {
	// Add records a revoked token. Adding a hash that is already present
	// is a no-op.
	Add(ctx context.Context, token *domain.RevokedToken) error

	// Exists reports whether tokenHash has been revoked.
	Exists(ctx context.Context, tokenHash string) (bool, error)

	// DeleteExpired removes entries whose token expired before now and
	// returns how many were removed.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
