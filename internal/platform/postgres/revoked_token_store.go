package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/tasklist-api/internal/domain"
	"github.com/phrazzld/tasklist-api/internal/platform/logger"
	"github.com/phrazzld/tasklist-api/internal/store"
)

// PostgresRevokedTokenStore implements store.RevokedTokenStore on PostgreSQL.
type PostgresRevokedTokenStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresRevokedTokenStore creates a new PostgresRevokedTokenStore.
// If logger is nil, a default logger will be used.
func NewPostgresRevokedTokenStore(db store.DBTX, logger *slog.Logger) *PostgresRevokedTokenStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresRevokedTokenStore{
		db:     db,
		logger: logger.With(slog.String("component", "revoked_token_store")),
	}
}

var _ store.RevokedTokenStore = (*PostgresRevokedTokenStore)(nil)

// Add implements store.RevokedTokenStore.Add
// Adding a hash that is already present is a no-op.
func (s *PostgresRevokedTokenStore) Add(ctx context.Context, token *domain.RevokedToken) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if token.ID == uuid.Nil {
		token.ID = uuid.New()
	}
	if token.RevokedAt.IsZero() {
		token.RevokedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO revoked_tokens (id, token_hash, expires_at, revoked_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (token_hash) DO NOTHING
	`
	if _, err := s.db.ExecContext(ctx, query, token.ID, token.TokenHash, token.ExpiresAt, token.RevokedAt); err != nil {
		log.Error("failed to revoke token", slog.String("error", err.Error()))
		return MapError(err)
	}

	log.Debug("token revoked", slog.Time("expires_at", token.ExpiresAt))
	return nil
}

// Exists implements store.RevokedTokenStore.Exists
func (s *PostgresRevokedTokenStore) Exists(ctx context.Context, tokenHash string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM revoked_tokens WHERE token_hash = $1)`
	if err := sqlx.GetContext(ctx, s.db, &exists, query, tokenHash); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to check revoked token",
			slog.String("error", err.Error()))
		return false, MapError(err)
	}
	return exists, nil
}

// DeleteExpired implements store.RevokedTokenStore.DeleteExpired
func (s *PostgresRevokedTokenStore) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM revoked_tokens WHERE expires_at < $1`, now.UTC())
	if err != nil {
		log.Error("failed to purge revoked tokens", slog.String("error", err.Error()))
		return 0, MapError(err)
	}

	count, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	log.Debug("purged expired revoked tokens", slog.Int64("count", count))
	return count, nil
}
