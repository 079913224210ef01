package domain

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// MaxTaskTitleLength bounds the task title.
const MaxTaskTitleLength = 255

// TaskStatus represents the lifecycle state of a task.
type TaskStatus string

// Possible task status values
const (
	TaskStatusPending    TaskStatus = "Pending"
	TaskStatusInProgress TaskStatus = "In Progress"
	TaskStatusCompleted  TaskStatus = "Completed"
	TaskStatusOverdue    TaskStatus = "Overdue"
)

// TaskPriority ranks tasks for the owner.
type TaskPriority string

// Possible task priority values
const (
	TaskPriorityLow    TaskPriority = "Low"
	TaskPriorityMedium TaskPriority = "Medium"
	TaskPriorityHigh   TaskPriority = "High"
)

// Common validation errors for Task
var (
	ErrEmptyTaskID       = errors.New("task ID cannot be empty")
	ErrEmptyTaskUserID   = errors.New("task user ID cannot be empty")
	ErrEmptyTaskTitle    = errors.New("task title cannot be empty")
	ErrTaskTitleTooLong  = errors.New("task title must be at most 255 characters long")
	ErrInvalidTaskStatus = errors.New("invalid task status")
	ErrInvalidPriority   = errors.New("invalid task priority")
)

// Task is a unit of work owned by a single user, optionally labeled with one
// of that user's tags.
type Task struct {
	ID          uuid.UUID    `json:"id"                    db:"id"`
	UserID      uuid.UUID    `json:"user_id"               db:"user_id"`
	TagID       *uuid.UUID   `json:"tag_id,omitempty"      db:"tag_id"`
	Title       string       `json:"title"                 db:"title"`
	Description *string      `json:"description,omitempty" db:"description"`
	DueDate     *time.Time   `json:"due_date,omitempty"    db:"due_date"`
	Priority    TaskPriority `json:"priority"              db:"priority"`
	Status      TaskStatus   `json:"status"                db:"status"`
	CreatedAt   time.Time    `json:"created_at"            db:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"            db:"updated_at"`
}

// NewTask creates a Pending, Medium priority task for userID.
func NewTask(userID uuid.UUID, title string) (*Task, error) {
	now := time.Now().UTC()
	task := &Task{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     strings.TrimSpace(title),
		Priority:  TaskPriorityMedium,
		Status:    TaskStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := task.Validate(); err != nil {
		return nil, err
	}
	return task, nil
}

// Validate checks if the Task has valid data.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return NewValidationError("id", "cannot be empty", ErrEmptyTaskID)
	}
	if t.UserID == uuid.Nil {
		return NewValidationError("user_id", "cannot be empty", ErrEmptyTaskUserID)
	}
	if err := ValidateTaskTitle(t.Title); err != nil {
		return err
	}
	if !t.Status.IsValid() {
		return NewValidationError("status", "is not a valid task status", ErrInvalidTaskStatus)
	}
	if !t.Priority.IsValid() {
		return NewValidationError("priority", "is not a valid task priority", ErrInvalidPriority)
	}
	return nil
}

// ValidateTaskTitle checks a task's title.
func ValidateTaskTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return NewValidationError("title", "cannot be empty", ErrEmptyTaskTitle)
	}
	if utf8.RuneCountInString(title) > MaxTaskTitleLength {
		return NewValidationError("title", "is too long", ErrTaskTitleTooLong)
	}
	return nil
}

// IsValid reports whether s is one of the defined statuses.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted, TaskStatusOverdue:
		return true
	}
	return false
}

// IsValid reports whether p is one of the defined priorities.
func (p TaskPriority) IsValid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}

// ParseTaskStatus maps user input to a TaskStatus, ignoring case and
// accepting "in_progress" style separators.
func ParseTaskStatus(value string) (TaskStatus, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	normalized = strings.NewReplacer("_", " ", "-", " ").Replace(normalized)
	for _, s := range []TaskStatus{
		TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted, TaskStatusOverdue,
	} {
		if strings.ToLower(string(s)) == normalized {
			return s, nil
		}
	}
	return "", NewValidationError("status", "is not a valid task status", ErrInvalidTaskStatus)
}

// ParseTaskPriority maps user input to a TaskPriority, ignoring case.
func ParseTaskPriority(value string) (TaskPriority, error) {
	normalized := strings.TrimSpace(value)
	for _, p := range []TaskPriority{TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh} {
		if strings.EqualFold(string(p), normalized) {
			return p, nil
		}
	}
	return "", NewValidationError("priority", "is not a valid task priority", ErrInvalidPriority)
}
