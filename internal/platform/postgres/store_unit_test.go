package postgres

import (
	"context"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/tasklist-api/internal/domain"
	"github.com/phrazzld/tasklist-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return sqlx.NewDb(db, "sqlmock"), mock
}

var taskColumnNames = []string{
	"id", "user_id", "tag_id", "title", "description", "due_date",
	"priority", "status", "created_at", "updated_at",
}

func TestNewPostgresUserStore(t *testing.T) {
	db, _ := newMockDB(t)

	tests := []struct {
		name       string
		bcryptCost int
		expected   int
	}{
		{name: "valid cost", bcryptCost: 12, expected: 12},
		{name: "zero cost uses default", bcryptCost: 0, expected: bcrypt.DefaultCost},
		{name: "cost too low uses default", bcryptCost: 3, expected: bcrypt.DefaultCost},
		{name: "cost too high uses default", bcryptCost: 32, expected: bcrypt.DefaultCost},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewPostgresUserStore(db, tt.bcryptCost, nil)
			assert.Equal(t, tt.expected, s.bcryptCost)
			assert.NotNil(t, s.logger)
		})
	}

	t.Run("nil db panics", func(t *testing.T) {
		assert.Panics(t, func() { NewPostgresUserStore(nil, 10, nil) })
	})
}

func TestPostgresUserStore_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("hashes password before insert", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresUserStore(db, bcrypt.MinCost, nil)

		user, err := domain.NewUser("alice", "pw1")
		require.NoError(t, err)

		mock.ExpectExec("INSERT INTO users").
			WithArgs(user.ID, "alice", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, s.Create(ctx, user))
		assert.Empty(t, user.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte("pw1")))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate username", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresUserStore(db, bcrypt.MinCost, nil)

		user, err := domain.NewUser("alice", "pw1")
		require.NoError(t, err)

		mock.ExpectExec("INSERT INTO users").
			WillReturnError(&pgconn.PgError{Code: uniqueViolationCode})

		err = s.Create(ctx, user)
		assert.ErrorIs(t, err, store.ErrUsernameExists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("invalid user is rejected before any query", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresUserStore(db, bcrypt.MinCost, nil)

		err := s.Create(ctx, &domain.User{ID: uuid.New(), Username: "", Password: "pw1"})
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresUserStore_Get(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	now := time.Now().UTC()

	t.Run("by username", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresUserStore(db, bcrypt.MinCost, nil)

		rows := sqlmock.NewRows([]string{"id", "username", "password_hash", "created_at", "updated_at"}).
			AddRow(id.String(), "alice", "hash", now, now)
		mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE username = $1")).
			WithArgs("alice").
			WillReturnRows(rows)

		user, err := s.GetByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, id, user.ID)
		assert.Equal(t, "hash", user.HashedPassword)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing user", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresUserStore(db, bcrypt.MinCost, nil)

		mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE id = $1")).
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := s.GetByID(ctx, id)
		assert.ErrorIs(t, err, store.ErrUserNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresUserStore_ListUpdatedSince(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPostgresUserStore(db, bcrypt.MinCost, nil)
	since := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE updated_at >= $1")).
		WithArgs(since).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash", "created_at", "updated_at"}))

	users, err := s.ListUpdatedSince(context.Background(), since)
	require.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUserStore_UpdateDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("update missing user", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresUserStore(db, bcrypt.MinCost, nil)

		user := &domain.User{ID: uuid.New(), Username: "alice", HashedPassword: "hash"}
		mock.ExpectExec("UPDATE users").WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, s.Update(ctx, user), store.ErrUserNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("update keeps existing hash when no new password", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresUserStore(db, bcrypt.MinCost, nil)

		user := &domain.User{ID: uuid.New(), Username: "alice2", HashedPassword: "hash"}
		mock.ExpectExec("UPDATE users").
			WithArgs("alice2", "hash", sqlmock.AnyArg(), user.ID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, s.Update(ctx, user))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("delete", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresUserStore(db, bcrypt.MinCost, nil)
		id := uuid.New()

		mock.ExpectExec("DELETE FROM users").WithArgs(id).WillReturnResult(sqlmock.NewResult(0, 1))
		require.NoError(t, s.Delete(ctx, id))

		mock.ExpectExec("DELETE FROM users").WithArgs(id).WillReturnResult(sqlmock.NewResult(0, 0))
		assert.ErrorIs(t, s.Delete(ctx, id), store.ErrUserNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresTagStore(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("create duplicate name", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresTagStore(db, nil)

		tag, err := domain.NewTag(userID, "work")
		require.NoError(t, err)

		mock.ExpectExec("INSERT INTO tags").WillReturnError(&pgconn.PgError{Code: uniqueViolationCode})
		assert.ErrorIs(t, s.Create(ctx, tag), store.ErrTagExists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("create for missing user", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresTagStore(db, nil)

		tag, err := domain.NewTag(userID, "work")
		require.NoError(t, err)

		mock.ExpectExec("INSERT INTO tags").WillReturnError(&pgconn.PgError{Code: foreignKeyViolationCode})
		assert.ErrorIs(t, s.Create(ctx, tag), store.ErrInvalidEntity)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("get is scoped to owner", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresTagStore(db, nil)
		tagID := uuid.New()

		mock.ExpectQuery(regexp.QuoteMeta("FROM tags WHERE id = $1 AND user_id = $2")).
			WithArgs(tagID, userID).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := s.GetByID(ctx, userID, tagID)
		assert.ErrorIs(t, err, store.ErrTagNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("list", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresTagStore(db, nil)
		now := time.Now().UTC()

		rows := sqlmock.NewRows([]string{"id", "user_id", "name", "created_at", "updated_at"}).
			AddRow(uuid.NewString(), userID.String(), "home", now, now).
			AddRow(uuid.NewString(), userID.String(), "work", now, now)
		mock.ExpectQuery("FROM tags WHERE user_id").WithArgs(userID).WillReturnRows(rows)

		tags, err := s.List(ctx, userID)
		require.NoError(t, err)
		require.Len(t, tags, 2)
		assert.Equal(t, "home", tags[0].Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("delete missing tag", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresTagStore(db, nil)

		mock.ExpectExec("DELETE FROM tags").WillReturnResult(sqlmock.NewResult(0, 0))
		assert.ErrorIs(t, s.Delete(ctx, userID, uuid.New()), store.ErrTagNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresTaskStore_Queries(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	now := time.Now().UTC()

	row := func(rows *sqlmock.Rows, title string, description any) *sqlmock.Rows {
		return rows.AddRow(uuid.NewString(), userID.String(), nil, title, description, nil,
			"Medium", "Pending", now, now)
	}

	tests := []struct {
		name  string
		match string
		args  []driver.Value
		call  func(s *PostgresTaskStore) ([]*domain.Task, error)
	}{
		{
			name:  "list",
			match: "WHERE user_id = $1 ORDER BY created_at, id",
			args:  []driver.Value{userID},
			call: func(s *PostgresTaskStore) ([]*domain.Task, error) {
				return s.List(ctx, userID)
			},
		},
		{
			name:  "by status",
			match: "AND status = $2",
			args:  []driver.Value{userID, domain.TaskStatusInProgress},
			call: func(s *PostgresTaskStore) ([]*domain.Task, error) {
				return s.ListByStatus(ctx, userID, domain.TaskStatusInProgress)
			},
		},
		{
			name:  "by priority",
			match: "AND priority = $2",
			args:  []driver.Value{userID, domain.TaskPriorityHigh},
			call: func(s *PostgresTaskStore) ([]*domain.Task, error) {
				return s.ListByPriority(ctx, userID, domain.TaskPriorityHigh)
			},
		},
		{
			name:  "title search escapes wildcards",
			match: "AND title ILIKE $2",
			args:  []driver.Value{userID, `%50\%%`},
			call: func(s *PostgresTaskStore) ([]*domain.Task, error) {
				return s.SearchByTitle(ctx, userID, "50%")
			},
		},
		{
			name:  "description search",
			match: "AND description ILIKE $2",
			args:  []driver.Value{userID, "%milk%"},
			call: func(s *PostgresTaskStore) ([]*domain.Task, error) {
				return s.SearchByDescription(ctx, userID, "milk")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			s := NewPostgresTaskStore(db, nil)

			rows := row(sqlmock.NewRows(taskColumnNames), "Buy milk", "2 litres")
			mock.ExpectQuery(regexp.QuoteMeta(tt.match)).WithArgs(tt.args...).WillReturnRows(rows)

			tasks, err := tt.call(s)
			require.NoError(t, err)
			require.Len(t, tasks, 1)
			assert.Equal(t, "Buy milk", tasks[0].Title)
			require.NotNil(t, tasks[0].Description)
			assert.Equal(t, "2 litres", *tasks[0].Description)
			assert.Nil(t, tasks[0].TagID)
			assert.Nil(t, tasks[0].DueDate)
			assert.Equal(t, domain.TaskStatusPending, tasks[0].Status)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPostgresTaskStore_Mutations(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("create with missing tag", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresTaskStore(db, nil)

		task, err := domain.NewTask(userID, "Buy milk")
		require.NoError(t, err)

		mock.ExpectExec("INSERT INTO tasks").WillReturnError(&pgconn.PgError{Code: foreignKeyViolationCode})
		assert.ErrorIs(t, s.Create(ctx, task), store.ErrInvalidEntity)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("create rejects invalid status", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresTaskStore(db, nil)

		task, err := domain.NewTask(userID, "Buy milk")
		require.NoError(t, err)
		task.Status = "Someday"

		assert.ErrorIs(t, s.Create(ctx, task), domain.ErrInvalidTaskStatus)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("update other user's task", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresTaskStore(db, nil)

		task, err := domain.NewTask(userID, "Buy milk")
		require.NoError(t, err)

		mock.ExpectExec("UPDATE tasks").WillReturnResult(sqlmock.NewResult(0, 0))
		assert.ErrorIs(t, s.Update(ctx, task), store.ErrTaskNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("mark overdue reports count", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresTaskStore(db, nil)
		now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

		mock.ExpectExec(regexp.QuoteMeta("AND status NOT IN ($4, $1)")).
			WithArgs(domain.TaskStatusOverdue, now, userID, domain.TaskStatusCompleted).
			WillReturnResult(sqlmock.NewResult(0, 3))

		count, err := s.MarkOverdue(ctx, userID, now)
		require.NoError(t, err)
		assert.Equal(t, int64(3), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("mark overdue statement skips completed and undated tasks", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresTaskStore(db, nil)
		now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

		statement := `UPDATE tasks\s+SET status = \$1, updated_at = \$2\s+` +
			`WHERE user_id = \$3\s+AND due_date IS NOT NULL\s+AND due_date < \$2\s+` +
			`AND status NOT IN \(\$4, \$1\)`
		mock.ExpectExec(statement).
			WithArgs(string(domain.TaskStatusOverdue), now, userID, string(domain.TaskStatusCompleted)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		count, err := s.MarkOverdue(ctx, userID, now)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("mark overdue database error", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresTaskStore(db, nil)

		mock.ExpectExec("UPDATE tasks").WillReturnError(errors.New("connection refused"))
		_, err := s.MarkOverdue(ctx, userID, time.Now())
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresTaskStore_WithTx(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPostgresTaskStore(db, nil)
	userID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM tasks").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := store.RunInTransaction(context.Background(), db, func(ctx context.Context, tx *sqlx.Tx) error {
		return s.WithTx(tx).Delete(ctx, userID, uuid.New())
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRevokedTokenStore(t *testing.T) {
	ctx := context.Background()

	t.Run("add is idempotent on hash", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresRevokedTokenStore(db, nil)

		mock.ExpectExec(regexp.QuoteMeta("ON CONFLICT (token_hash) DO NOTHING")).
			WithArgs(sqlmock.AnyArg(), "abc", sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 0))

		token := &domain.RevokedToken{TokenHash: "abc", ExpiresAt: time.Now().Add(time.Minute)}
		require.NoError(t, s.Add(ctx, token))
		assert.NotEqual(t, uuid.Nil, token.ID)
		assert.False(t, token.RevokedAt.IsZero())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("exists", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresRevokedTokenStore(db, nil)

		mock.ExpectQuery("SELECT EXISTS").
			WithArgs("abc").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		exists, err := s.Exists(ctx, "abc")
		require.NoError(t, err)
		assert.True(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("delete expired", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresRevokedTokenStore(db, nil)
		now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

		mock.ExpectExec("DELETE FROM revoked_tokens").
			WithArgs(now).
			WillReturnResult(sqlmock.NewResult(0, 2))

		count, err := s.DeleteExpired(ctx, now)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresAdminStore_GetByUsername(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPostgresAdminStore(db, nil)

	mock.ExpectQuery(regexp.QuoteMeta("FROM admins WHERE username = $1")).
		WithArgs("root").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := s.GetByUsername(context.Background(), "root")
	assert.ErrorIs(t, err, store.ErrAdminNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
