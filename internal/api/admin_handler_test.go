package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/tasklist-api/internal/domain"
	"github.com/phrazzld/tasklist-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminHandler(t *testing.T) {
	alice := &domain.User{ID: uuid.New(), Username: "alice", HashedPassword: "secret-hash"}
	since := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	svc := newTestServices()
	svc.admin.ListUsersFn = func(ctx context.Context) ([]*domain.User, error) {
		return []*domain.User{alice}, nil
	}
	svc.admin.ListActiveUsersFn = func(ctx context.Context, got time.Time) ([]*domain.User, error) {
		assert.True(t, since.Equal(got))
		return []*domain.User{}, nil
	}
	svc.admin.GetUserFn = func(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
		if userID == alice.ID {
			return alice, nil
		}
		return nil, store.ErrUserNotFound
	}
	svc.admin.DeleteUserFn = func(ctx context.Context, userID uuid.UUID) error {
		if userID == alice.ID {
			return nil
		}
		return store.ErrUserNotFound
	}

	t.Run("list users", func(t *testing.T) {
		rr := svc.do(t, &testAdmin, http.MethodGet, "/api/admin/users/", "")
		require.Equal(t, http.StatusOK, rr.Code)

		var resp UserListResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, 1, resp.UserCount)
		assert.NotContains(t, rr.Body.String(), "secret-hash")
	})

	t.Run("active users", func(t *testing.T) {
		rr := svc.do(t, &testAdmin, http.MethodGet, "/api/admin/users/active?updated_at=2025-03-01T12:00:00Z", "")
		require.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"user_count":0,"users":[]}`, rr.Body.String())

		rr = svc.do(t, &testAdmin, http.MethodGet, "/api/admin/users/active?updated_at=yesterday", "")
		assert.Equal(t, http.StatusBadRequest, rr.Code)

		rr = svc.do(t, &testAdmin, http.MethodGet, "/api/admin/users/active", "")
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("active users with offset", func(t *testing.T) {
		for _, query := range []string{
			"updated_at=2025-03-01T14:00:00%2B02:00",
			"updated_at=2025-03-01T14:00:00+02:00",
			"updated_at=2025-03-01T10:00:00-02:00",
		} {
			rr := svc.do(t, &testAdmin, http.MethodGet, "/api/admin/users/active?"+query, "")
			assert.Equal(t, http.StatusOK, rr.Code, query)
		}
	})

	t.Run("get user", func(t *testing.T) {
		rr := svc.do(t, &testAdmin, http.MethodGet, "/api/admin/users/"+alice.ID.String(), "")
		assert.Equal(t, http.StatusOK, rr.Code)

		rr = svc.do(t, &testAdmin, http.MethodGet, "/api/admin/users/"+uuid.NewString(), "")
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("delete user", func(t *testing.T) {
		rr := svc.do(t, &testAdmin, http.MethodDelete, "/api/admin/users/"+alice.ID.String(), "")
		assert.Equal(t, http.StatusOK, rr.Code)

		rr = svc.do(t, &testAdmin, http.MethodDelete, "/api/admin/users/"+uuid.NewString(), "")
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestParseQueryTime(t *testing.T) {
	want := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{name: "utc", raw: "2025-03-01T12:00:00Z"},
		{name: "plus offset", raw: "2025-03-01T14:00:00+02:00"},
		{name: "plus offset decoded to space", raw: "2025-03-01T14:00:00 02:00"},
		{name: "minus offset", raw: "2025-03-01T10:00:00-02:00"},
		{name: "empty", raw: "", wantErr: true},
		{name: "date only", raw: "2025-03-01", wantErr: true},
		{name: "space elsewhere", raw: "2025-03-01 12:00:00Z", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseQueryTime(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, want.Equal(got), "got %s", got)
		})
	}
}
