package domain

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTask(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	task, err := NewTask(userID, "  Buy milk ")
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", task.Title)
	assert.Equal(t, userID, task.UserID)
	assert.Equal(t, TaskStatusPending, task.Status, "new tasks start pending")
	assert.Equal(t, TaskPriorityMedium, task.Priority, "new tasks default to medium priority")
	assert.Nil(t, task.TagID)
	assert.Nil(t, task.DueDate)

	_, err = NewTask(userID, "   ")
	assert.ErrorIs(t, err, ErrEmptyTaskTitle)

	_, err = NewTask(userID, strings.Repeat("t", 256))
	assert.ErrorIs(t, err, ErrTaskTitleTooLong)

	_, err = NewTask(uuid.Nil, "Buy milk")
	assert.ErrorIs(t, err, ErrEmptyTaskUserID)
}

func TestTaskValidate_Enums(t *testing.T) {
	t.Parallel()

	task, err := NewTask(uuid.New(), "Buy milk")
	require.NoError(t, err)

	task.Status = "Done"
	assert.ErrorIs(t, task.Validate(), ErrInvalidTaskStatus)

	task.Status = TaskStatusCompleted
	task.Priority = "Urgent"
	assert.ErrorIs(t, task.Validate(), ErrInvalidPriority)
}

func TestParseTaskStatus(t *testing.T) {
	t.Parallel()

	tests := map[string]TaskStatus{
		"Pending":     TaskStatusPending,
		"pending":     TaskStatusPending,
		"In Progress": TaskStatusInProgress,
		"in_progress": TaskStatusInProgress,
		"in-progress": TaskStatusInProgress,
		"COMPLETED":   TaskStatusCompleted,
		" Overdue ":   TaskStatusOverdue,
	}
	for input, want := range tests {
		got, err := ParseTaskStatus(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := ParseTaskStatus("archived")
	assert.ErrorIs(t, err, ErrInvalidTaskStatus)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestParseTaskPriority(t *testing.T) {
	t.Parallel()

	got, err := ParseTaskPriority("high")
	require.NoError(t, err)
	assert.Equal(t, TaskPriorityHigh, got)

	got, err = ParseTaskPriority("Low")
	require.NoError(t, err)
	assert.Equal(t, TaskPriorityLow, got)

	_, err = ParseTaskPriority("critical")
	assert.ErrorIs(t, err, ErrInvalidPriority)
}

func TestNewTag(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	tag, err := NewTag(userID, " groceries ")
	require.NoError(t, err)
	assert.Equal(t, "groceries", tag.Name)
	assert.Equal(t, userID, tag.UserID)

	_, err = NewTag(userID, "")
	assert.ErrorIs(t, err, ErrEmptyTagName)

	_, err = NewTag(userID, strings.Repeat("x", 51))
	assert.ErrorIs(t, err, ErrTagNameTooLong)

	_, err = NewTag(uuid.Nil, "groceries")
	assert.ErrorIs(t, err, ErrEmptyTagUserID)
}
