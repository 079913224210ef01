package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/tasklist-api/internal/domain"
)

// AdminStore defines the interface for admin account persistence.
type AdminStore interface {
	// Create saves a new admin. Returns ErrUsernameExists on a taken username.
	Create(ctx context.Context, admin *domain.Admin) error

	// GetByID returns ErrAdminNotFound if the admin does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Admin, error)

	// GetByUsername returns ErrAdminNotFound if the admin does not exist.
	GetByUsername(ctx context.Context, username string) (*domain.Admin, error)

	// Update replaces the admin's username and password.
	Update(ctx context.Context, admin *domain.Admin) error

	// Delete returns ErrAdminNotFound if the admin does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}
