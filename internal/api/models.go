package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/tasklist-api/internal/domain"
)

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,max=50"`
	Password string `json:"password" validate:"required,max=72"`
}

// LoginRequest holds the form fields of the login endpoint.
type LoginRequest struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

// TokenResponse is the successful login response.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// UpdateUserRequest defines the payload for self-service account updates.
// At least one field must be present.
type UpdateUserRequest struct {
	NewUsername *string `json:"new_username" validate:"omitempty,max=50"`
	NewPassword *string `json:"new_password" validate:"omitempty,max=72"`
}

// UserResponse is the public view of a user; it never carries password data.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserListResponse wraps the admin user listing.
type UserListResponse struct {
	UserCount int            `json:"user_count"`
	Users     []UserResponse `json:"users"`
}

// CreateTaskRequest defines the payload for task creation.
type CreateTaskRequest struct {
	Title       string     `json:"title"       validate:"required,max=255"`
	Description *string    `json:"description"`
	TagID       *uuid.UUID `json:"tag_id"`
	DueDate     *time.Time `json:"due_date"`
	Priority    *string    `json:"priority"`
}

// UpdateTaskRequest defines a partial task update. Absent fields are left
// unchanged; clear_tag removes the tag.
type UpdateTaskRequest struct {
	Title       *string    `json:"title"       validate:"omitempty,max=255"`
	Description *string    `json:"description"`
	TagID       *uuid.UUID `json:"tag_id"`
	ClearTag    bool       `json:"clear_tag"`
	DueDate     *time.Time `json:"due_date"`
	Priority    *string    `json:"priority"`
	Status      *string    `json:"status"`
}

// TaskResponse is the JSON view of a task.
type TaskResponse struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	TagID       *uuid.UUID `json:"tag_id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	Priority    string     `json:"priority"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TaskListResponse wraps every task listing.
type TaskListResponse struct {
	TaskCount int            `json:"task_count"`
	Tasks     []TaskResponse `json:"tasks"`
}

// CreateTagRequest defines the payload for tag creation.
type CreateTagRequest struct {
	Tag string `json:"tag" validate:"required,max=50"`
}

// RenameTagRequest defines the payload for renaming a tag.
type RenameTagRequest struct {
	NewTag string `json:"new_tag" validate:"required,max=50"`
}

// TagResponse is the JSON view of a tag.
type TagResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TagListResponse wraps the tag listing.
type TagListResponse struct {
	TagCount int           `json:"tag_count"`
	Tags     []TagResponse `json:"tags"`
}

func userToResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

func usersToResponse(users []*domain.User) UserListResponse {
	resp := UserListResponse{UserCount: len(users), Users: make([]UserResponse, 0, len(users))}
	for _, u := range users {
		resp.Users = append(resp.Users, userToResponse(u))
	}
	return resp
}

func taskToResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID,
		UserID:      task.UserID,
		TagID:       task.TagID,
		Title:       task.Title,
		Description: task.Description,
		DueDate:     task.DueDate,
		Priority:    string(task.Priority),
		Status:      string(task.Status),
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

func tasksToResponse(tasks []*domain.Task) TaskListResponse {
	resp := TaskListResponse{TaskCount: len(tasks), Tasks: make([]TaskResponse, 0, len(tasks))}
	for _, t := range tasks {
		resp.Tasks = append(resp.Tasks, taskToResponse(t))
	}
	return resp
}

func tagToResponse(tag *domain.Tag) TagResponse {
	return TagResponse{
		ID:        tag.ID,
		Name:      tag.Name,
		CreatedAt: tag.CreatedAt,
		UpdatedAt: tag.UpdatedAt,
	}
}

func tagsToResponse(tags []*domain.Tag) TagListResponse {
	resp := TagListResponse{TagCount: len(tags), Tags: make([]TagResponse, 0, len(tags))}
	for _, t := range tags {
		resp.Tags = append(resp.Tags, tagToResponse(t))
	}
	return resp
}
