package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/tasklist-api/internal/domain"
)

// TaskStore defines the interface for task persistence. Every query is
// scoped by the owning user's ID. List results are ordered by creation
// time, then ID.
type TaskStore interface {
	// Create saves a new task.
	// Returns ErrInvalidEntity if the owner or tag does not exist.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID returns ErrTaskNotFound if the user has no such task.
	GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Task, error)

	// List returns all of the user's tasks.
	List(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error)

	// ListByTag returns the user's tasks labeled with tagID.
	ListByTag(ctx context.Context, userID, tagID uuid.UUID) ([]*domain.Task, error)

	// ListByStatus returns the user's tasks with the given status.
	ListByStatus(ctx context.Context, userID uuid.UUID, status domain.TaskStatus) ([]*domain.Task, error)

	// ListByPriority returns the user's tasks with the given priority.
	ListByPriority(ctx context.Context, userID uuid.UUID, priority domain.TaskPriority) ([]*domain.Task, error)

	// SearchByTitle returns tasks whose title contains text, ignoring case.
	SearchByTitle(ctx context.Context, userID uuid.UUID, text string) ([]*domain.Task, error)

	// SearchByDescription returns tasks whose description contains text, ignoring case.
	SearchByDescription(ctx context.Context, userID uuid.UUID, text string) ([]*domain.Task, error)

	// Update writes every mutable field of task.
	// Returns ErrTaskNotFound if the user has no such task.
	Update(ctx context.Context, task *domain.Task) error

	// Delete returns ErrTaskNotFound if the user has no such task.
	Delete(ctx context.Context, userID, id uuid.UUID) error

	// MarkOverdue sets status Overdue on every task of the user that is due
	// before now and is neither Completed nor already Overdue. It returns
	// the number of tasks changed.
	MarkOverdue(ctx context.Context, userID uuid.UUID, now time.Time) (int64, error)

	// WithTx returns a new TaskStore instance that uses the provided transaction.
	WithTx(tx *sqlx.Tx) TaskStore
}
