package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/tasklist-api/internal/domain"
	"github.com/phrazzld/tasklist-api/internal/platform/logger"
	"github.com/phrazzld/tasklist-api/internal/store"
)

const tagColumns = `id, user_id, name, created_at, updated_at`

// PostgresTagStore implements the store.TagStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTagStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTagStore creates a new PostgreSQL implementation of the TagStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresTagStore(db store.DBTX, logger *slog.Logger) *PostgresTagStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresTagStore{
		db:     db,
		logger: logger.With(slog.String("component", "tag_store")),
	}
}

var _ store.TagStore = (*PostgresTagStore)(nil)

// WithTx returns a new PostgresTagStore that runs its statements inside tx.
func (s *PostgresTagStore) WithTx(tx *sqlx.Tx) store.TagStore {
	return &PostgresTagStore{db: tx, logger: s.logger}
}

// Create implements store.TagStore.Create
// Returns store.ErrTagExists if the user already has a tag with this name.
// Returns store.ErrInvalidEntity if the user does not exist.
func (s *PostgresTagStore) Create(ctx context.Context, tag *domain.Tag) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := tag.Validate(); err != nil {
		log.Warn("tag validation failed during create",
			slog.String("error", err.Error()),
			slog.String("user_id", tag.UserID.String()))
		return err
	}

	query := `
		INSERT INTO tags (id, user_id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.db.ExecContext(ctx, query, tag.ID, tag.UserID, tag.Name, tag.CreatedAt, tag.UpdatedAt)
	if err != nil {
		if IsUniqueViolation(err) {
			log.Debug("tag already exists",
				slog.String("user_id", tag.UserID.String()),
				slog.String("tag", tag.Name))
			return fmt.Errorf("%w: %s", store.ErrTagExists, tag.Name)
		}
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during tag creation",
				slog.String("user_id", tag.UserID.String()))
			return fmt.Errorf("%w: user with ID %s not found", store.ErrInvalidEntity, tag.UserID)
		}
		log.Error("failed to create tag",
			slog.String("error", err.Error()),
			slog.String("tag_id", tag.ID.String()))
		return MapError(err)
	}

	log.Info("tag created successfully",
		slog.String("tag_id", tag.ID.String()),
		slog.String("user_id", tag.UserID.String()))
	return nil
}

// GetByID implements store.TagStore.GetByID
func (s *PostgresTagStore) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Tag, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + tagColumns + ` FROM tags WHERE id = $1 AND user_id = $2`

	var tag domain.Tag
	if err := sqlx.GetContext(ctx, s.db, &tag, query, id, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("tag not found",
				slog.String("tag_id", id.String()),
				slog.String("user_id", userID.String()))
			return nil, store.ErrTagNotFound
		}
		log.Error("failed to get tag",
			slog.String("error", err.Error()),
			slog.String("tag_id", id.String()))
		return nil, MapError(err)
	}
	return &tag, nil
}

// List implements store.TagStore.List
func (s *PostgresTagStore) List(ctx context.Context, userID uuid.UUID) ([]*domain.Tag, error) {
	query := `SELECT ` + tagColumns + ` FROM tags WHERE user_id = $1 ORDER BY created_at, id`

	tags := []*domain.Tag{}
	if err := sqlx.SelectContext(ctx, s.db, &tags, query, userID); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list tags",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}
	return tags, nil
}

// Update implements store.TagStore.Update
func (s *PostgresTagStore) Update(ctx context.Context, tag *domain.Tag) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := tag.Validate(); err != nil {
		return err
	}
	tag.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE tags
		SET name = $1, updated_at = $2
		WHERE id = $3 AND user_id = $4
	`
	result, err := s.db.ExecContext(ctx, query, tag.Name, tag.UpdatedAt, tag.ID, tag.UserID)
	if err != nil {
		if IsUniqueViolation(err) {
			return fmt.Errorf("%w: %s", store.ErrTagExists, tag.Name)
		}
		log.Error("failed to update tag",
			slog.String("error", err.Error()),
			slog.String("tag_id", tag.ID.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrTagNotFound); err != nil {
		return err
	}

	log.Info("tag updated successfully", slog.String("tag_id", tag.ID.String()))
	return nil
}

// Delete implements store.TagStore.Delete
// The tag_id of tasks that referenced the tag is set to NULL by the foreign key.
func (s *PostgresTagStore) Delete(ctx context.Context, userID, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM tags WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		log.Error("failed to delete tag",
			slog.String("error", err.Error()),
			slog.String("tag_id", id.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrTagNotFound); err != nil {
		return err
	}

	log.Info("tag deleted successfully", slog.String("tag_id", id.String()))
	return nil
}
