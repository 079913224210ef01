package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/tasklist-api/internal/domain"
	"github.com/phrazzld/tasklist-api/internal/store"
)

// UserUpdate carries the optional fields of a self-service account update.
type UserUpdate struct {
	NewUsername *string
	NewPassword *string
}

// UserService provides self-service account operations.
type UserService interface {
	// Register creates a new account with the specified username and password
	Register(ctx context.Context, username, password string) (*domain.User, error)

	// GetUser retrieves a user by their ID
	GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error)

	// UpdateUser changes the username, the password or both. The current
	// record is read and written in one transaction.
	UpdateUser(ctx context.Context, userID uuid.UUID, update UserUpdate) (*domain.User, error)

	// DeleteUser deletes a user and, through the schema, their tags and tasks
	DeleteUser(ctx context.Context, userID uuid.UUID) error
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	userStore store.UserStore
	db        *sqlx.DB
	logger    *slog.Logger
}

// NewUserService creates a new UserService
func NewUserService(userStore store.UserStore, db *sqlx.DB, logger *slog.Logger) UserService {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserServiceImpl{
		userStore: userStore,
		db:        db,
		logger:    logger.With("component", "user_service"),
	}
}

// Register creates a new account with the specified username and password
func (s *UserServiceImpl) Register(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := domain.NewUser(username, password)
	if err != nil {
		s.logger.Debug("rejected registration", "error", err, "username", username)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if err := s.userStore.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrUsernameExists) {
			s.logger.Debug("attempted to register an existing username", "username", username)
		} else {
			s.logger.Error("failed to save user to database", "error", err, "username", username)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user registered", "user_id", user.ID, "username", user.Username)
	return user, nil
}

// GetUser retrieves a user by their ID
func (s *UserServiceImpl) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, store.ErrUserNotFound) {
			s.logger.Error("failed to retrieve user", "error", err, "user_id", userID)
		}
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}
	return user, nil
}

// UpdateUser changes the username and/or password of an account
// Uses a transaction so the read and the write see the same row
func (s *UserServiceImpl) UpdateUser(
	ctx context.Context,
	userID uuid.UUID,
	update UserUpdate,
) (*domain.User, error) {
	if update.NewUsername == nil && update.NewPassword == nil {
		return nil, domain.NewValidationError("user", "update must change username or password", ErrEmptyUpdate)
	}
	if update.NewUsername != nil {
		if err := domain.ValidateUsername(*update.NewUsername); err != nil {
			return nil, err
		}
	}
	if update.NewPassword != nil {
		if err := domain.ValidatePassword(*update.NewPassword); err != nil {
			return nil, err
		}
	}

	var updated *domain.User
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sqlx.Tx) error {
		txStore := s.userStore.WithTx(tx)

		user, err := txStore.GetByID(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to retrieve user for update: %w", err)
		}

		if update.NewUsername != nil {
			user.Username = *update.NewUsername
		}
		if update.NewPassword != nil {
			// UserStore.Update handles the hashing
			user.Password = *update.NewPassword
		}

		if err := txStore.Update(ctx, user); err != nil {
			if errors.Is(err, store.ErrUsernameExists) {
				s.logger.Debug("attempted to rename to an existing username", "user_id", userID)
			} else {
				s.logger.Error("failed to update user", "error", err, "user_id", userID)
			}
			return fmt.Errorf("failed to update user: %w", err)
		}

		updated = user
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user updated successfully", "user_id", userID)
	return updated, nil
}

// DeleteUser deletes a user by their ID
func (s *UserServiceImpl) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	if err := s.userStore.Delete(ctx, userID); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.logger.Debug("attempted to delete non-existent user", "user_id", userID)
		} else {
			s.logger.Error("failed to delete user", "error", err, "user_id", userID)
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.logger.Info("user deleted successfully", "user_id", userID)
	return nil
}
