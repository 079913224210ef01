//go:build integration

package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/tasklist-api/internal/domain"
	"github.com/phrazzld/tasklist-api/internal/platform/postgres"
	"github.com/phrazzld/tasklist-api/internal/store"
	"github.com/phrazzld/tasklist-api/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func createTestUser(t *testing.T, ctx context.Context, tx *sqlx.Tx, username string) *domain.User {
	t.Helper()
	user, err := domain.NewUser(username, "pw1")
	require.NoError(t, err)
	require.NoError(t, postgres.NewPostgresUserStore(tx, bcrypt.MinCost, nil).Create(ctx, user))
	return user
}

func TestUserStore_Integration(t *testing.T) {
	db := testdb.GetTestDB(t)
	ctx := context.Background()

	testdb.WithTx(t, db, func(t *testing.T, tx *sqlx.Tx) {
		users := postgres.NewPostgresUserStore(tx, bcrypt.MinCost, nil)
		alice := createTestUser(t, ctx, tx, "alice")

		got, err := users.GetByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, alice.ID, got.ID)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(got.HashedPassword), []byte("pw1")))

		dup, err := domain.NewUser("alice", "other")
		require.NoError(t, err)
		assert.ErrorIs(t, users.Create(ctx, dup), store.ErrUsernameExists)
	})
}

func TestDeleteUserCascades_Integration(t *testing.T) {
	db := testdb.GetTestDB(t)
	ctx := context.Background()

	testdb.WithTx(t, db, func(t *testing.T, tx *sqlx.Tx) {
		users := postgres.NewPostgresUserStore(tx, bcrypt.MinCost, nil)
		tags := postgres.NewPostgresTagStore(tx, nil)
		tasks := postgres.NewPostgresTaskStore(tx, nil)

		alice := createTestUser(t, ctx, tx, "alice")
		tag, err := domain.NewTag(alice.ID, "work")
		require.NoError(t, err)
		require.NoError(t, tags.Create(ctx, tag))

		task, err := domain.NewTask(alice.ID, "Write report")
		require.NoError(t, err)
		task.TagID = &tag.ID
		require.NoError(t, tasks.Create(ctx, task))

		require.NoError(t, users.Delete(ctx, alice.ID))

		remainingTags, err := tags.List(ctx, alice.ID)
		require.NoError(t, err)
		assert.Empty(t, remainingTags)

		remainingTasks, err := tasks.List(ctx, alice.ID)
		require.NoError(t, err)
		assert.Empty(t, remainingTasks)
	})
}

func TestDeleteTagClearsTaskReference_Integration(t *testing.T) {
	db := testdb.GetTestDB(t)
	ctx := context.Background()

	testdb.WithTx(t, db, func(t *testing.T, tx *sqlx.Tx) {
		tags := postgres.NewPostgresTagStore(tx, nil)
		tasks := postgres.NewPostgresTaskStore(tx, nil)

		alice := createTestUser(t, ctx, tx, "alice")
		tag, err := domain.NewTag(alice.ID, "errands")
		require.NoError(t, err)
		require.NoError(t, tags.Create(ctx, tag))

		task, err := domain.NewTask(alice.ID, "Buy milk")
		require.NoError(t, err)
		task.TagID = &tag.ID
		require.NoError(t, tasks.Create(ctx, task))

		require.NoError(t, tags.Delete(ctx, alice.ID, tag.ID))

		got, err := tasks.GetByID(ctx, alice.ID, task.ID)
		require.NoError(t, err)
		assert.Nil(t, got.TagID)
	})
}

func TestTaskStoreOwnershipAndSearch_Integration(t *testing.T) {
	db := testdb.GetTestDB(t)
	ctx := context.Background()

	testdb.WithTx(t, db, func(t *testing.T, tx *sqlx.Tx) {
		tasks := postgres.NewPostgresTaskStore(tx, nil)
		alice := createTestUser(t, ctx, tx, "alice")
		bob := createTestUser(t, ctx, tx, "bob")

		milk, err := domain.NewTask(alice.ID, "Buy MILK")
		require.NoError(t, err)
		require.NoError(t, tasks.Create(ctx, milk))

		desc := "100% organic"
		eggs, err := domain.NewTask(alice.ID, "Buy eggs")
		require.NoError(t, err)
		eggs.Description = &desc
		require.NoError(t, tasks.Create(ctx, eggs))

		_, err = tasks.GetByID(ctx, bob.ID, milk.ID)
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
		assert.ErrorIs(t, tasks.Delete(ctx, bob.ID, milk.ID), store.ErrTaskNotFound)

		byTitle, err := tasks.SearchByTitle(ctx, alice.ID, "milk")
		require.NoError(t, err)
		require.Len(t, byTitle, 1)
		assert.Equal(t, milk.ID, byTitle[0].ID)

		byDesc, err := tasks.SearchByDescription(ctx, alice.ID, "100%")
		require.NoError(t, err)
		require.Len(t, byDesc, 1)
		assert.Equal(t, eggs.ID, byDesc[0].ID)

		none, err := tasks.SearchByDescription(ctx, alice.ID, "0%o")
		require.NoError(t, err)
		assert.Empty(t, none)
	})
}

func TestMarkOverdue_Integration(t *testing.T) {
	db := testdb.GetTestDB(t)
	ctx := context.Background()

	testdb.WithTx(t, db, func(t *testing.T, tx *sqlx.Tx) {
		tasks := postgres.NewPostgresTaskStore(tx, nil)
		alice := createTestUser(t, ctx, tx, "alice")
		now := time.Now().UTC()
		past := now.Add(-24 * time.Hour)
		future := now.Add(24 * time.Hour)

		newTask := func(title string, due *time.Time, status domain.TaskStatus) *domain.Task {
			task, err := domain.NewTask(alice.ID, title)
			require.NoError(t, err)
			task.DueDate = due
			task.Status = status
			require.NoError(t, tasks.Create(ctx, task))
			return task
		}

		late := newTask("late", &past, domain.TaskStatusInProgress)
		done := newTask("done", &past, domain.TaskStatusCompleted)
		upcoming := newTask("upcoming", &future, domain.TaskStatusPending)
		undated := newTask("undated", nil, domain.TaskStatusPending)

		count, err := tasks.MarkOverdue(ctx, alice.ID, now)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)

		expected := map[*domain.Task]domain.TaskStatus{
			late:     domain.TaskStatusOverdue,
			done:     domain.TaskStatusCompleted,
			upcoming: domain.TaskStatusPending,
			undated:  domain.TaskStatusPending,
		}
		for task, status := range expected {
			got, err := tasks.GetByID(ctx, alice.ID, task.ID)
			require.NoError(t, err)
			assert.Equal(t, status, got.Status, task.Title)
		}

		count, err = tasks.MarkOverdue(ctx, alice.ID, now)
		require.NoError(t, err)
		assert.Zero(t, count, "sweep is idempotent")
	})
}

func TestRevokedTokenStore_Integration(t *testing.T) {
	db := testdb.GetTestDB(t)
	ctx := context.Background()

	testdb.WithTx(t, db, func(t *testing.T, tx *sqlx.Tx) {
		revoked := postgres.NewPostgresRevokedTokenStore(tx, nil)
		now := time.Now().UTC()

		require.NoError(t, revoked.Add(ctx, &domain.RevokedToken{TokenHash: "live", ExpiresAt: now.Add(time.Hour)}))
		require.NoError(t, revoked.Add(ctx, &domain.RevokedToken{TokenHash: "live", ExpiresAt: now.Add(time.Hour)}))
		require.NoError(t, revoked.Add(ctx, &domain.RevokedToken{TokenHash: "stale", ExpiresAt: now.Add(-time.Hour)}))

		purged, err := revoked.DeleteExpired(ctx, now)
		require.NoError(t, err)
		assert.Equal(t, int64(1), purged)

		exists, err := revoked.Exists(ctx, "live")
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = revoked.Exists(ctx, "stale")
		require.NoError(t, err)
		assert.False(t, exists)
	})
}
