package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/tasklist-api/internal/domain"
	"github.com/phrazzld/tasklist-api/internal/store"
)

// TaskInput holds the fields of a new task. Nil fields take their defaults.
type TaskInput struct {
	Title       string
	Description *string
	TagID       *uuid.UUID
	DueDate     *time.Time
	Priority    *domain.TaskPriority
}

// TaskPatch holds a partial task update. Nil fields are left unchanged;
// ClearTag removes the tag reference and wins over TagID.
type TaskPatch struct {
	Title       *string
	Description *string
	TagID       *uuid.UUID
	ClearTag    bool
	DueDate     *time.Time
	Priority    *domain.TaskPriority
	Status      *domain.TaskStatus
}

// IsEmpty reports whether the patch changes nothing.
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.TagID == nil && !p.ClearTag &&
		p.DueDate == nil && p.Priority == nil && p.Status == nil
}

// TaskService manages a user's tasks. Every operation is scoped to userID.
type TaskService interface {
	CreateTask(ctx context.Context, userID uuid.UUID, input TaskInput) (*domain.Task, error)
	GetTask(ctx context.Context, userID, taskID uuid.UUID) (*domain.Task, error)
	UpdateTask(ctx context.Context, userID, taskID uuid.UUID, patch TaskPatch) (*domain.Task, error)
	DeleteTask(ctx context.Context, userID, taskID uuid.UUID) error

	ListTasks(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error)
	ListTasksByTag(ctx context.Context, userID, tagID uuid.UUID) ([]*domain.Task, error)
	ListTasksByStatus(ctx context.Context, userID uuid.UUID, status domain.TaskStatus) ([]*domain.Task, error)
	ListTasksByPriority(ctx context.Context, userID uuid.UUID, priority domain.TaskPriority) ([]*domain.Task, error)

	// SearchTasks returns tasks whose title or description contains text,
	// ignoring case. A task matching both appears once.
	SearchTasks(ctx context.Context, userID uuid.UUID, text string) ([]*domain.Task, error)

	// SweepOverdue marks the user's past-due tasks that are not Completed as
	// Overdue and returns how many changed.
	SweepOverdue(ctx context.Context, userID uuid.UUID) (int64, error)
}

// TaskServiceImpl implements the TaskService interface
type TaskServiceImpl struct {
	taskStore store.TaskStore
	tagStore  store.TagStore
	db        *sqlx.DB
	timeFunc  func() time.Time
	logger    *slog.Logger
}

// NewTaskService creates a new TaskService
func NewTaskService(
	taskStore store.TaskStore,
	tagStore store.TagStore,
	db *sqlx.DB,
	logger *slog.Logger,
) TaskService {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskServiceImpl{
		taskStore: taskStore,
		tagStore:  tagStore,
		db:        db,
		timeFunc:  time.Now,
		logger:    logger.With("component", "task_service"),
	}
}

// checkTagOwnership returns ErrTagNotFound unless tagID is one of the user's tags.
func checkTagOwnership(ctx context.Context, tags store.TagStore, userID, tagID uuid.UUID) error {
	if _, err := tags.GetByID(ctx, userID, tagID); err != nil {
		if errors.Is(err, store.ErrTagNotFound) {
			return ErrTagNotFound
		}
		return fmt.Errorf("failed to check tag: %w", err)
	}
	return nil
}

// CreateTask implements TaskService.CreateTask
func (s *TaskServiceImpl) CreateTask(ctx context.Context, userID uuid.UUID, input TaskInput) (*domain.Task, error) {
	task, err := domain.NewTask(userID, input.Title)
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	task.Description = input.Description
	task.TagID = input.TagID
	task.DueDate = input.DueDate
	if input.Priority != nil {
		task.Priority = *input.Priority
	}
	if err := task.Validate(); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sqlx.Tx) error {
		if task.TagID != nil {
			if err := checkTagOwnership(ctx, s.tagStore.WithTx(tx), userID, *task.TagID); err != nil {
				return err
			}
		}
		return s.taskStore.WithTx(tx).Create(ctx, task)
	})
	if err != nil {
		if !errors.Is(err, ErrTagNotFound) {
			s.logger.Error("failed to create task", "error", err, "user_id", userID)
		}
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.logger.Info("task created", "task_id", task.ID, "user_id", userID)
	return task, nil
}

// GetTask implements TaskService.GetTask
func (s *TaskServiceImpl) GetTask(ctx context.Context, userID, taskID uuid.UUID) (*domain.Task, error) {
	task, err := s.taskStore.GetByID(ctx, userID, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve task: %w", err)
	}
	return task, nil
}

// UpdateTask implements TaskService.UpdateTask
// Uses a transaction so the tag check, the read and the write are atomic
func (s *TaskServiceImpl) UpdateTask(
	ctx context.Context,
	userID, taskID uuid.UUID,
	patch TaskPatch,
) (*domain.Task, error) {
	if patch.IsEmpty() {
		return nil, domain.NewValidationError("task", "update must change at least one field", ErrEmptyUpdate)
	}

	var updated *domain.Task
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sqlx.Tx) error {
		txTasks := s.taskStore.WithTx(tx)

		task, err := txTasks.GetByID(ctx, userID, taskID)
		if err != nil {
			return fmt.Errorf("failed to retrieve task for update: %w", err)
		}

		if patch.TagID != nil && !patch.ClearTag {
			if err := checkTagOwnership(ctx, s.tagStore.WithTx(tx), userID, *patch.TagID); err != nil {
				return err
			}
		}

		applyPatch(task, patch)

		if err := txTasks.Update(ctx, task); err != nil {
			return fmt.Errorf("failed to update task: %w", err)
		}
		updated = task
		return nil
	})
	if err != nil {
		if !store.IsNotFoundError(err) && !errors.Is(err, domain.ErrValidation) {
			s.logger.Error("failed to update task", "error", err, "task_id", taskID)
		}
		return nil, err
	}

	s.logger.Info("task updated", "task_id", taskID, "user_id", userID)
	return updated, nil
}

func applyPatch(task *domain.Task, patch TaskPatch) {
	if patch.Title != nil {
		task.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil {
		task.Description = patch.Description
	}
	switch {
	case patch.ClearTag:
		task.TagID = nil
	case patch.TagID != nil:
		task.TagID = patch.TagID
	}
	if patch.DueDate != nil {
		task.DueDate = patch.DueDate
	}
	if patch.Priority != nil {
		task.Priority = *patch.Priority
	}
	if patch.Status != nil {
		task.Status = *patch.Status
	}
}

// DeleteTask implements TaskService.DeleteTask
func (s *TaskServiceImpl) DeleteTask(ctx context.Context, userID, taskID uuid.UUID) error {
	if err := s.taskStore.Delete(ctx, userID, taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	s.logger.Info("task deleted", "task_id", taskID, "user_id", userID)
	return nil
}

// ListTasks implements TaskService.ListTasks
func (s *TaskServiceImpl) ListTasks(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error) {
	tasks, err := s.taskStore.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// ListTasksByTag implements TaskService.ListTasksByTag
// An unknown or foreign tag is reported as not found rather than as an empty list.
func (s *TaskServiceImpl) ListTasksByTag(ctx context.Context, userID, tagID uuid.UUID) ([]*domain.Task, error) {
	if err := checkTagOwnership(ctx, s.tagStore, userID, tagID); err != nil {
		return nil, err
	}
	tasks, err := s.taskStore.ListByTag(ctx, userID, tagID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks by tag: %w", err)
	}
	return tasks, nil
}

// ListTasksByStatus implements TaskService.ListTasksByStatus
func (s *TaskServiceImpl) ListTasksByStatus(
	ctx context.Context,
	userID uuid.UUID,
	status domain.TaskStatus,
) ([]*domain.Task, error) {
	if !status.IsValid() {
		return nil, domain.NewValidationError("status", "is not a valid task status", domain.ErrInvalidTaskStatus)
	}
	tasks, err := s.taskStore.ListByStatus(ctx, userID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks by status: %w", err)
	}
	return tasks, nil
}

// ListTasksByPriority implements TaskService.ListTasksByPriority
func (s *TaskServiceImpl) ListTasksByPriority(
	ctx context.Context,
	userID uuid.UUID,
	priority domain.TaskPriority,
) ([]*domain.Task, error) {
	if !priority.IsValid() {
		return nil, domain.NewValidationError("priority", "is not a valid task priority", domain.ErrInvalidPriority)
	}
	tasks, err := s.taskStore.ListByPriority(ctx, userID, priority)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks by priority: %w", err)
	}
	return tasks, nil
}

// SearchTasks implements TaskService.SearchTasks
func (s *TaskServiceImpl) SearchTasks(ctx context.Context, userID uuid.UUID, text string) ([]*domain.Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, domain.NewValidationError("text", "cannot be empty", ErrEmptySearchText)
	}

	byTitle, err := s.taskStore.SearchByTitle(ctx, userID, text)
	if err != nil {
		return nil, fmt.Errorf("failed to search task titles: %w", err)
	}
	byDescription, err := s.taskStore.SearchByDescription(ctx, userID, text)
	if err != nil {
		return nil, fmt.Errorf("failed to search task descriptions: %w", err)
	}

	return mergeTasks(byTitle, byDescription), nil
}

// mergeTasks unions the lists by task ID, ordered by creation time then ID.
func mergeTasks(lists ...[]*domain.Task) []*domain.Task {
	seen := make(map[uuid.UUID]struct{})
	merged := []*domain.Task{}
	for _, list := range lists {
		for _, task := range list {
			if _, ok := seen[task.ID]; ok {
				continue
			}
			seen[task.ID] = struct{}{}
			merged = append(merged, task)
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		if !merged[i].CreatedAt.Equal(merged[j].CreatedAt) {
			return merged[i].CreatedAt.Before(merged[j].CreatedAt)
		}
		return merged[i].ID.String() < merged[j].ID.String()
	})
	return merged
}

// SweepOverdue implements TaskService.SweepOverdue
func (s *TaskServiceImpl) SweepOverdue(ctx context.Context, userID uuid.UUID) (int64, error) {
	count, err := s.taskStore.MarkOverdue(ctx, userID, s.timeFunc())
	if err != nil {
		return 0, fmt.Errorf("failed to sweep overdue tasks: %w", err)
	}
	s.logger.Debug("overdue sweep finished", "user_id", userID, "transitioned", count)
	return count, nil
}
