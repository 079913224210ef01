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

const adminColumns = `id, username, password, created_at, updated_at`

// PostgresAdminStore implements store.AdminStore on PostgreSQL.
type PostgresAdminStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresAdminStore creates a new PostgresAdminStore.
// If logger is nil, a default logger will be used.
func NewPostgresAdminStore(db store.DBTX, logger *slog.Logger) *PostgresAdminStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresAdminStore{
		db:     db,
		logger: logger.With(slog.String("component", "admin_store")),
	}
}

var _ store.AdminStore = (*PostgresAdminStore)(nil)

// Create implements store.AdminStore.Create
func (s *PostgresAdminStore) Create(ctx context.Context, admin *domain.Admin) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := admin.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO admins (id, username, password, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.db.ExecContext(ctx, query,
		admin.ID, admin.Username, admin.Password, admin.CreatedAt, admin.UpdatedAt)
	if err != nil {
		if IsUniqueViolation(err) {
			return fmt.Errorf("%w: %s", store.ErrUsernameExists, admin.Username)
		}
		log.Error("failed to create admin",
			slog.String("error", err.Error()),
			slog.String("username", admin.Username))
		return MapError(err)
	}

	log.Info("admin created", slog.String("admin_id", admin.ID.String()))
	return nil
}

// GetByID implements store.AdminStore.GetByID
func (s *PostgresAdminStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Admin, error) {
	return s.getOne(ctx, `SELECT `+adminColumns+` FROM admins WHERE id = $1`, id)
}

// GetByUsername implements store.AdminStore.GetByUsername
func (s *PostgresAdminStore) GetByUsername(ctx context.Context, username string) (*domain.Admin, error) {
	return s.getOne(ctx, `SELECT `+adminColumns+` FROM admins WHERE username = $1`, username)
}

func (s *PostgresAdminStore) getOne(ctx context.Context, query string, arg any) (*domain.Admin, error) {
	var admin domain.Admin
	if err := sqlx.GetContext(ctx, s.db, &admin, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrAdminNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to get admin",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	return &admin, nil
}

// Update implements store.AdminStore.Update
func (s *PostgresAdminStore) Update(ctx context.Context, admin *domain.Admin) error {
	if err := admin.Validate(); err != nil {
		return err
	}
	admin.UpdatedAt = time.Now().UTC()

	result, err := s.db.ExecContext(ctx,
		`UPDATE admins SET username = $1, password = $2, updated_at = $3 WHERE id = $4`,
		admin.Username, admin.Password, admin.UpdatedAt, admin.ID)
	if err != nil {
		return MapUniqueViolation(err, store.ErrUsernameExists)
	}
	return CheckRowsAffected(result, store.ErrAdminNotFound)
}

// Delete implements store.AdminStore.Delete
func (s *PostgresAdminStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM admins WHERE id = $1`, id)
	if err != nil {
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrAdminNotFound)
}
