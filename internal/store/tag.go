package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/tasklist-api/internal/domain"
)

// TagStore defines the interface for tag persistence. Every read and write
// is scoped to the owning user; a tag belonging to someone else is reported
// as ErrTagNotFound.
type TagStore interface {
	// Create saves a new tag. Returns ErrTagExists if the user already has
	// a tag with the same name.
	Create(ctx context.Context, tag *domain.Tag) error

	// GetByID returns ErrTagNotFound if the user has no such tag.
	GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Tag, error)

	// List returns the user's tags ordered by creation time.
	List(ctx context.Context, userID uuid.UUID) ([]*domain.Tag, error)

	// Update renames a tag. Returns ErrTagNotFound or ErrTagExists.
	Update(ctx context.Context, tag *domain.Tag) error

	// Delete removes a tag. Tasks referencing it keep existing with no tag.
	Delete(ctx context.Context, userID, id uuid.UUID) error

	// WithTx returns a new TagStore instance that uses the provided transaction.
	WithTx(tx *sqlx.Tx) TagStore
}
