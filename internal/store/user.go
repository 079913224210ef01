package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/tasklist-api/internal/domain"
)

// UserStore persists regular accounts. Implementations hash User.Password
// on write and never return it.
type UserStore interface {
	// Create fails with ErrUsernameExists when the name is taken.
	Create(ctx context.Context, user *domain.User) error

	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// List is ordered by creation time.
	List(ctx context.Context) ([]*domain.User, error)

	// ListUpdatedSince returns users with updated_at >= since.
	ListUpdatedSince(ctx context.Context, since time.Time) ([]*domain.User, error)

	// Update writes username and, when user.Password is set, a fresh hash of
	// it; otherwise HashedPassword is kept. Fails with ErrUserNotFound or
	// ErrUsernameExists.
	Update(ctx context.Context, user *domain.User) error

	// Delete cascades to the user's tags and tasks.
	Delete(ctx context.Context, id uuid.UUID) error

	WithTx(tx *sqlx.Tx) UserStore
}
