package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/tasklist-api/internal/domain"
	"github.com/phrazzld/tasklist-api/internal/store"
)

// AdminService provides the admin-only account operations
type AdminService interface {
	ListUsers(ctx context.Context) ([]*domain.User, error)
	GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error)

	// ListActiveUsers returns users whose record changed at or after since.
	ListActiveUsers(ctx context.Context, since time.Time) ([]*domain.User, error)

	DeleteUser(ctx context.Context, userID uuid.UUID) error

	// EnsureAdmin creates the admin account if it is missing and resets its
	// password if it differs.
	EnsureAdmin(ctx context.Context, username, password string) error
}

// AdminServiceImpl implements the AdminService interface
type AdminServiceImpl struct {
	userStore  store.UserStore
	adminStore store.AdminStore
	logger     *slog.Logger
}

// NewAdminService creates a new AdminService
func NewAdminService(userStore store.UserStore, adminStore store.AdminStore, logger *slog.Logger) AdminService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AdminServiceImpl{
		userStore:  userStore,
		adminStore: adminStore,
		logger:     logger.With("component", "admin_service"),
	}
}

// ListUsers implements AdminService.ListUsers
func (s *AdminServiceImpl) ListUsers(ctx context.Context) ([]*domain.User, error) {
	users, err := s.userStore.List(ctx)
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// GetUser implements AdminService.GetUser
func (s *AdminServiceImpl) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}
	return user, nil
}

// ListActiveUsers implements AdminService.ListActiveUsers
func (s *AdminServiceImpl) ListActiveUsers(ctx context.Context, since time.Time) ([]*domain.User, error) {
	if since.IsZero() {
		return nil, domain.NewValidationError("updated_at", "is required", domain.ErrValidation)
	}
	users, err := s.userStore.ListUpdatedSince(ctx, since)
	if err != nil {
		s.logger.Error("failed to list active users", "error", err, "since", since)
		return nil, fmt.Errorf("failed to list active users: %w", err)
	}
	return users, nil
}

// DeleteUser implements AdminService.DeleteUser
func (s *AdminServiceImpl) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	if err := s.userStore.Delete(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	s.logger.Info("user deleted by admin", "user_id", userID)
	return nil
}

// EnsureAdmin implements AdminService.EnsureAdmin
func (s *AdminServiceImpl) EnsureAdmin(ctx context.Context, username, password string) error {
	existing, err := s.adminStore.GetByUsername(ctx, username)
	switch {
	case err == nil:
		if existing.Password == password {
			return nil
		}
		existing.Password = password
		if err := s.adminStore.Update(ctx, existing); err != nil {
			return fmt.Errorf("failed to update admin: %w", err)
		}
		s.logger.Info("admin password reset from configuration", "admin_id", existing.ID)
		return nil
	case errors.Is(err, store.ErrAdminNotFound):
		admin, err := domain.NewAdmin(username, password)
		if err != nil {
			return fmt.Errorf("failed to create admin: %w", err)
		}
		if err := s.adminStore.Create(ctx, admin); err != nil {
			return fmt.Errorf("failed to create admin: %w", err)
		}
		s.logger.Info("admin account created", "admin_id", admin.ID, "username", username)
		return nil
	default:
		return fmt.Errorf("failed to look up admin: %w", err)
	}
}
