package mocks

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/tasklist-api/internal/domain"
	"github.com/phrazzld/tasklist-api/internal/service"
	"github.com/phrazzld/tasklist-api/internal/service/auth"
)

// errNotConfigured is returned by service mocks whose function field is unset.
var errNotConfigured = errors.New("mock function not configured")

// MockAuthService implements auth.Service with overridable function fields.
type MockAuthService struct {
	AuthenticateFn func(ctx context.Context, username, password string) (string, domain.Principal, error)
	VerifyFn       func(ctx context.Context, token string) (domain.Principal, error)
	RevokeFn       func(ctx context.Context, token string) error
	IsRevokedFn    func(ctx context.Context, token string) (bool, error)
	PurgeExpiredFn func(ctx context.Context, now time.Time) (int64, error)

	// RevokedTokens records every token passed to Revoke.
	RevokedTokens []string
}

var _ auth.Service = (*MockAuthService)(nil)

// Authenticate implements auth.Service
func (m *MockAuthService) Authenticate(
	ctx context.Context,
	username, password string,
) (string, domain.Principal, error) {
	if m.AuthenticateFn != nil {
		return m.AuthenticateFn(ctx, username, password)
	}
	return "", domain.Principal{}, auth.ErrInvalidCredentials
}

// Verify implements auth.Service
func (m *MockAuthService) Verify(ctx context.Context, token string) (domain.Principal, error) {
	if m.VerifyFn != nil {
		return m.VerifyFn(ctx, token)
	}
	return domain.Principal{}, auth.ErrInvalidToken
}

// Revoke implements auth.Service
func (m *MockAuthService) Revoke(ctx context.Context, token string) error {
	m.RevokedTokens = append(m.RevokedTokens, token)
	if m.RevokeFn != nil {
		return m.RevokeFn(ctx, token)
	}
	return nil
}

// IsRevoked implements auth.Service
func (m *MockAuthService) IsRevoked(ctx context.Context, token string) (bool, error) {
	if m.IsRevokedFn != nil {
		return m.IsRevokedFn(ctx, token)
	}
	return false, nil
}

// PurgeExpired implements auth.Service
func (m *MockAuthService) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	if m.PurgeExpiredFn != nil {
		return m.PurgeExpiredFn(ctx, now)
	}
	return 0, nil
}

// MockUserService implements service.UserService with overridable function fields.
type MockUserService struct {
	RegisterFn   func(ctx context.Context, username, password string) (*domain.User, error)
	GetUserFn    func(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	UpdateUserFn func(ctx context.Context, userID uuid.UUID, update service.UserUpdate) (*domain.User, error)
	DeleteUserFn func(ctx context.Context, userID uuid.UUID) error
}

var _ service.UserService = (*MockUserService)(nil)

// Register implements service.UserService
func (m *MockUserService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	if m.RegisterFn != nil {
		return m.RegisterFn(ctx, username, password)
	}
	return nil, errNotConfigured
}

// GetUser implements service.UserService
func (m *MockUserService) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	if m.GetUserFn != nil {
		return m.GetUserFn(ctx, userID)
	}
	return nil, errNotConfigured
}

// UpdateUser implements service.UserService
func (m *MockUserService) UpdateUser(
	ctx context.Context,
	userID uuid.UUID,
	update service.UserUpdate,
) (*domain.User, error) {
	if m.UpdateUserFn != nil {
		return m.UpdateUserFn(ctx, userID, update)
	}
	return nil, errNotConfigured
}

// DeleteUser implements service.UserService
func (m *MockUserService) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	if m.DeleteUserFn != nil {
		return m.DeleteUserFn(ctx, userID)
	}
	return errNotConfigured
}

// MockTaskService implements service.TaskService with overridable function fields.
type MockTaskService struct {
	CreateTaskFn          func(ctx context.Context, userID uuid.UUID, input service.TaskInput) (*domain.Task, error)
	GetTaskFn             func(ctx context.Context, userID, taskID uuid.UUID) (*domain.Task, error)
	UpdateTaskFn          func(ctx context.Context, userID, taskID uuid.UUID, patch service.TaskPatch) (*domain.Task, error)
	DeleteTaskFn          func(ctx context.Context, userID, taskID uuid.UUID) error
	ListTasksFn           func(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error)
	ListTasksByTagFn      func(ctx context.Context, userID, tagID uuid.UUID) ([]*domain.Task, error)
	ListTasksByStatusFn   func(ctx context.Context, userID uuid.UUID, status domain.TaskStatus) ([]*domain.Task, error)
	ListTasksByPriorityFn func(ctx context.Context, userID uuid.UUID, priority domain.TaskPriority) ([]*domain.Task, error)
	SearchTasksFn         func(ctx context.Context, userID uuid.UUID, text string) ([]*domain.Task, error)
	SweepOverdueFn        func(ctx context.Context, userID uuid.UUID) (int64, error)
}

var _ service.TaskService = (*MockTaskService)(nil)

// CreateTask implements service.TaskService
func (m *MockTaskService) CreateTask(
	ctx context.Context,
	userID uuid.UUID,
	input service.TaskInput,
) (*domain.Task, error) {
	if m.CreateTaskFn != nil {
		return m.CreateTaskFn(ctx, userID, input)
	}
	return nil, errNotConfigured
}

// GetTask implements service.TaskService
func (m *MockTaskService) GetTask(ctx context.Context, userID, taskID uuid.UUID) (*domain.Task, error) {
	if m.GetTaskFn != nil {
		return m.GetTaskFn(ctx, userID, taskID)
	}
	return nil, errNotConfigured
}

// UpdateTask implements service.TaskService
func (m *MockTaskService) UpdateTask(
	ctx context.Context,
	userID, taskID uuid.UUID,
	patch service.TaskPatch,
) (*domain.Task, error) {
	if m.UpdateTaskFn != nil {
		return m.UpdateTaskFn(ctx, userID, taskID, patch)
	}
	return nil, errNotConfigured
}

// DeleteTask implements service.TaskService
func (m *MockTaskService) DeleteTask(ctx context.Context, userID, taskID uuid.UUID) error {
	if m.DeleteTaskFn != nil {
		return m.DeleteTaskFn(ctx, userID, taskID)
	}
	return errNotConfigured
}

// ListTasks implements service.TaskService
func (m *MockTaskService) ListTasks(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error) {
	if m.ListTasksFn != nil {
		return m.ListTasksFn(ctx, userID)
	}
	return nil, errNotConfigured
}

// ListTasksByTag implements service.TaskService
func (m *MockTaskService) ListTasksByTag(ctx context.Context, userID, tagID uuid.UUID) ([]*domain.Task, error) {
	if m.ListTasksByTagFn != nil {
		return m.ListTasksByTagFn(ctx, userID, tagID)
	}
	return nil, errNotConfigured
}

// ListTasksByStatus implements service.TaskService
func (m *MockTaskService) ListTasksByStatus(
	ctx context.Context,
	userID uuid.UUID,
	status domain.TaskStatus,
) ([]*domain.Task, error) {
	if m.ListTasksByStatusFn != nil {
		return m.ListTasksByStatusFn(ctx, userID, status)
	}
	return nil, errNotConfigured
}

// ListTasksByPriority implements service.TaskService
func (m *MockTaskService) ListTasksByPriority(
	ctx context.Context,
	userID uuid.UUID,
	priority domain.TaskPriority,
) ([]*domain.Task, error) {
	if m.ListTasksByPriorityFn != nil {
		return m.ListTasksByPriorityFn(ctx, userID, priority)
	}
	return nil, errNotConfigured
}

// SearchTasks implements service.TaskService
func (m *MockTaskService) SearchTasks(ctx context.Context, userID uuid.UUID, text string) ([]*domain.Task, error) {
	if m.SearchTasksFn != nil {
		return m.SearchTasksFn(ctx, userID, text)
	}
	return nil, errNotConfigured
}

// SweepOverdue implements service.TaskService
func (m *MockTaskService) SweepOverdue(ctx context.Context, userID uuid.UUID) (int64, error) {
	if m.SweepOverdueFn != nil {
		return m.SweepOverdueFn(ctx, userID)
	}
	return 0, nil
}

// MockTagService implements service.TagService with overridable function fields.
type MockTagService struct {
	CreateTagFn func(ctx context.Context, userID uuid.UUID, name string) (*domain.Tag, error)
	GetTagFn    func(ctx context.Context, userID, tagID uuid.UUID) (*domain.Tag, error)
	ListTagsFn  func(ctx context.Context, userID uuid.UUID) ([]*domain.Tag, error)
	RenameTagFn func(ctx context.Context, userID, tagID uuid.UUID, newName string) (*domain.Tag, error)
	DeleteTagFn func(ctx context.Context, userID, tagID uuid.UUID) error
}

var _ service.TagService = (*MockTagService)(nil)

// CreateTag implements service.TagService
func (m *MockTagService) CreateTag(ctx context.Context, userID uuid.UUID, name string) (*domain.Tag, error) {
	if m.CreateTagFn != nil {
		return m.CreateTagFn(ctx, userID, name)
	}
	return nil, errNotConfigured
}

// GetTag implements service.TagService
func (m *MockTagService) GetTag(ctx context.Context, userID, tagID uuid.UUID) (*domain.Tag, error) {
	if m.GetTagFn != nil {
		return m.GetTagFn(ctx, userID, tagID)
	}
	return nil, errNotConfigured
}

// ListTags implements service.TagService
func (m *MockTagService) ListTags(ctx context.Context, userID uuid.UUID) ([]*domain.Tag, error) {
	if m.ListTagsFn != nil {
		return m.ListTagsFn(ctx, userID)
	}
	return nil, errNotConfigured
}

// RenameTag implements service.TagService
func (m *MockTagService) RenameTag(
	ctx context.Context,
	userID, tagID uuid.UUID,
	newName string,
) (*domain.Tag, error) {
	if m.RenameTagFn != nil {
		return m.RenameTagFn(ctx, userID, tagID, newName)
	}
	return nil, errNotConfigured
}

// DeleteTag implements service.TagService
func (m *MockTagService) DeleteTag(ctx context.Context, userID, tagID uuid.UUID) error {
	if m.DeleteTagFn != nil {
		return m.DeleteTagFn(ctx, userID, tagID)
	}
	return errNotConfigured
}

// MockAdminService implements service.AdminService with overridable function fields.
type MockAdminService struct {
	ListUsersFn       func(ctx context.Context) ([]*domain.User, error)
	GetUserFn         func(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	ListActiveUsersFn func(ctx context.Context, since time.Time) ([]*domain.User, error)
	DeleteUserFn      func(ctx context.Context, userID uuid.UUID) error
	EnsureAdminFn     func(ctx context.Context, username, password string) error
}

var _ service.AdminService = (*MockAdminService)(nil)

// ListUsers implements service.AdminService
func (m *MockAdminService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	if m.ListUsersFn != nil {
		return m.ListUsersFn(ctx)
	}
	return nil, errNotConfigured
}

// GetUser implements service.AdminService
func (m *MockAdminService) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	if m.GetUserFn != nil {
		return m.GetUserFn(ctx, userID)
	}
	return nil, errNotConfigured
}

// ListActiveUsers implements service.AdminService
func (m *MockAdminService) ListActiveUsers(ctx context.Context, since time.Time) ([]*domain.User, error) {
	if m.ListActiveUsersFn != nil {
		return m.ListActiveUsersFn(ctx, since)
	}
	return nil, errNotConfigured
}

// DeleteUser implements service.AdminService
func (m *MockAdminService) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	if m.DeleteUserFn != nil {
		return m.DeleteUserFn(ctx, userID)
	}
	return errNotConfigured
}

// EnsureAdmin implements service.AdminService
func (m *MockAdminService) EnsureAdmin(ctx context.Context, username, password string) error {
	if m.EnsureAdminFn != nil {
		return m.EnsureAdminFn(ctx, username, password)
	}
	return nil
}
