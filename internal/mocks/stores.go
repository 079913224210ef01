package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/tasklist-api/internal/domain"
	"github.com/phrazzld/tasklist-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// MockUserStore is a mock of store.UserStore for use with testify/mock.
// WithTx returns the mock itself so expectations carry into transactions.
type MockUserStore struct {
	mock.Mock
}

var _ store.UserStore = (*MockUserStore)(nil)

// Create is a mock implementation of store.UserStore.Create
func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

// GetByID is a mock implementation of store.UserStore.GetByID
func (m *MockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if user, ok := args.Get(0).(*domain.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

// GetByUsername is a mock implementation of store.UserStore.GetByUsername
func (m *MockUserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if user, ok := args.Get(0).(*domain.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

// List is a mock implementation of store.UserStore.List
func (m *MockUserStore) List(ctx context.Context) ([]*domain.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]*domain.User)
	return users, args.Error(1)
}

// ListUpdatedSince is a mock implementation of store.UserStore.ListUpdatedSince
func (m *MockUserStore) ListUpdatedSince(ctx context.Context, since time.Time) ([]*domain.User, error) {
	args := m.Called(ctx, since)
	users, _ := args.Get(0).([]*domain.User)
	return users, args.Error(1)
}

// Update is a mock implementation of store.UserStore.Update
func (m *MockUserStore) Update(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

// Delete is a mock implementation of store.UserStore.Delete
func (m *MockUserStore) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// WithTx is a mock implementation of store.UserStore.WithTx
func (m *MockUserStore) WithTx(tx *sqlx.Tx) store.UserStore {
	return m
}

// MockAdminStore is a mock of store.AdminStore for use with testify/mock.
type MockAdminStore struct {
	mock.Mock
}

var _ store.AdminStore = (*MockAdminStore)(nil)

// Create is a mock implementation of store.AdminStore.Create
func (m *MockAdminStore) Create(ctx context.Context, admin *domain.Admin) error {
	return m.Called(ctx, admin).Error(0)
}

// GetByID is a mock implementation of store.AdminStore.GetByID
func (m *MockAdminStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Admin, error) {
	args := m.Called(ctx, id)
	if admin, ok := args.Get(0).(*domain.Admin); ok {
		return admin, args.Error(1)
	}
	return nil, args.Error(1)
}

// GetByUsername is a mock implementation of store.AdminStore.GetByUsername
func (m *MockAdminStore) GetByUsername(ctx context.Context, username string) (*domain.Admin, error) {
	args := m.Called(ctx, username)
	if admin, ok := args.Get(0).(*domain.Admin); ok {
		return admin, args.Error(1)
	}
	return nil, args.Error(1)
}

// Update is a mock implementation of store.AdminStore.Update
func (m *MockAdminStore) Update(ctx context.Context, admin *domain.Admin) error {
	return m.Called(ctx, admin).Error(0)
}

// Delete is a mock implementation of store.AdminStore.Delete
func (m *MockAdminStore) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// MockTagStore is a mock of store.TagStore for use with testify/mock.
type MockTagStore struct {
	mock.Mock
}

var _ store.TagStore = (*MockTagStore)(nil)

// Create is a mock implementation of store.TagStore.Create
func (m *MockTagStore) Create(ctx context.Context, tag *domain.Tag) error {
	return m.Called(ctx, tag).Error(0)
}

// GetByID is a mock implementation of store.TagStore.GetByID
func (m *MockTagStore) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Tag, error) {
	args := m.Called(ctx, userID, id)
	if tag, ok := args.Get(0).(*domain.Tag); ok {
		return tag, args.Error(1)
	}
	return nil, args.Error(1)
}

// List is a mock implementation of store.TagStore.List
func (m *MockTagStore) List(ctx context.Context, userID uuid.UUID) ([]*domain.Tag, error) {
	args := m.Called(ctx, userID)
	tags, _ := args.Get(0).([]*domain.Tag)
	return tags, args.Error(1)
}

// Update is a mock implementation of store.TagStore.Update
func (m *MockTagStore) Update(ctx context.Context, tag *domain.Tag) error {
	return m.Called(ctx, tag).Error(0)
}

// Delete is a mock implementation of store.TagStore.Delete
func (m *MockTagStore) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return m.Called(ctx, userID, id).Error(0)
}

// WithTx is a mock implementation of store.TagStore.WithTx
func (m *MockTagStore) WithTx(tx *sqlx.Tx) store.TagStore {
	return m
}

// MockTaskStore is a mock of store.TaskStore for use with testify/mock.
type MockTaskStore struct {
	mock.Mock
}

var _ store.TaskStore = (*MockTaskStore)(nil)

func (m *MockTaskStore) tasks(args mock.Arguments) ([]*domain.Task, error) {
	tasks, _ := args.Get(0).([]*domain.Task)
	return tasks, args.Error(1)
}

// Create is a mock implementation of store.TaskStore.Create
func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	return m.Called(ctx, task).Error(0)
}

// GetByID is a mock implementation of store.TaskStore.GetByID
func (m *MockTaskStore) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Task, error) {
	args := m.Called(ctx, userID, id)
	if task, ok := args.Get(0).(*domain.Task); ok {
		return task, args.Error(1)
	}
	return nil, args.Error(1)
}

// List is a mock implementation of store.TaskStore.List
func (m *MockTaskStore) List(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error) {
	return m.tasks(m.Called(ctx, userID))
}

// ListByTag is a mock implementation of store.TaskStore.ListByTag
func (m *MockTaskStore) ListByTag(ctx context.Context, userID, tagID uuid.UUID) ([]*domain.Task, error) {
	return m.tasks(m.Called(ctx, userID, tagID))
}

// ListByStatus is a mock implementation of store.TaskStore.ListByStatus
func (m *MockTaskStore) ListByStatus(
	ctx context.Context,
	userID uuid.UUID,
	status domain.TaskStatus,
) ([]*domain.Task, error) {
	return m.tasks(m.Called(ctx, userID, status))
}

// ListByPriority is a mock implementation of store.TaskStore.ListByPriority
func (m *MockTaskStore) ListByPriority(
	ctx context.Context,
	userID uuid.UUID,
	priority domain.TaskPriority,
) ([]*domain.Task, error) {
	return m.tasks(m.Called(ctx, userID, priority))
}

// SearchByTitle is a mock implementation of store.TaskStore.SearchByTitle
func (m *MockTaskStore) SearchByTitle(ctx context.Context, userID uuid.UUID, text string) ([]*domain.Task, error) {
	return m.tasks(m.Called(ctx, userID, text))
}

// SearchByDescription is a mock implementation of store.TaskStore.SearchByDescription
func (m *MockTaskStore) SearchByDescription(
	ctx context.Context,
	userID uuid.UUID,
	text string,
) ([]*domain.Task, error) {
	return m.tasks(m.Called(ctx, userID, text))
}

// Update is a mock implementation of store.TaskStore.Update
func (m *MockTaskStore) Update(ctx context.Context, task *domain.Task) error {
	return m.Called(ctx, task).Error(0)
}

// Delete is a mock implementation of store.TaskStore.Delete
func (m *MockTaskStore) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return m.Called(ctx, userID, id).Error(0)
}

// MarkOverdue is a mock implementation of store.TaskStore.MarkOverdue
func (m *MockTaskStore) MarkOverdue(ctx context.Context, userID uuid.UUID, now time.Time) (int64, error) {
	args := m.Called(ctx, userID, now)
	return args.Get(0).(int64), args.Error(1)
}

// WithTx is a mock implementation of store.TaskStore.WithTx
func (m *MockTaskStore) WithTx(tx *sqlx.Tx) store.TaskStore {
	return m
}

// MockRevokedTokenStore is a mock of store.RevokedTokenStore for use with testify/mock.
type MockRevokedTokenStore struct {
	mock.Mock
}

var _ store.RevokedTokenStore = (*MockRevokedTokenStore)(nil)

// Add is a mock implementation of store.RevokedTokenStore.Add
func (m *MockRevokedTokenStore) Add(ctx context.Context, token *domain.RevokedToken) error {
	return m.Called(ctx, token).Error(0)
}

// Exists is a mock implementation of store.RevokedTokenStore.Exists
func (m *MockRevokedTokenStore) Exists(ctx context.Context, tokenHash string) (bool, error) {
	args := m.Called(ctx, tokenHash)
	return args.Bool(0), args.Error(1)
}

// DeleteExpired is a mock implementation of store.RevokedTokenStore.DeleteExpired
func (m *MockRevokedTokenStore) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}
