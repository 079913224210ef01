package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/tasklist-api/internal/domain"
	"github.com/phrazzld/tasklist-api/internal/service"
	"github.com/phrazzld/tasklist-api/internal/service/auth"
	"github.com/phrazzld/tasklist-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserHandler_Register(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		serviceErr error
		wantStatus int
		wantError  string
	}{
		{name: "created", body: `{"username":"alice","password":"pw1"}`, wantStatus: http.StatusCreated},
		{
			name:       "duplicate",
			body:       `{"username":"alice","password":"pw1"}`,
			serviceErr: store.ErrUsernameExists,
			wantStatus: http.StatusConflict,
			wantError:  "Username already exists",
		},
		{
			name:       "missing password",
			body:       `{"username":"alice"}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid password: required field",
		},
		{name: "malformed json", body: `{"username":`, wantStatus: http.StatusBadRequest, wantError: "Invalid request format"},
		{
			name:       "username with spaces",
			body:       `{"username":"al ice","password":"pw1"}`,
			serviceErr: domain.NewValidationError("username", "cannot contain whitespace", domain.ErrUsernameWhitespace),
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid username: cannot contain whitespace",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestServices()
			svc.users.RegisterFn = func(ctx context.Context, username, password string) (*domain.User, error) {
				if tt.serviceErr != nil {
					return nil, tt.serviceErr
				}
				return &domain.User{ID: uuid.New(), Username: username, HashedPassword: "hash"}, nil
			}

			rr := svc.do(t, nil, http.MethodPost, "/api/user/register", tt.body)

			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantError != "" {
				assert.Contains(t, rr.Body.String(), tt.wantError)
				return
			}
			var resp map[string]interface{}
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, "alice", resp["username"])
			assert.NotContains(t, rr.Body.String(), "hash")
		})
	}
}

func TestUserHandler_Login(t *testing.T) {
	svc := newTestServices()
	svc.auth.AuthenticateFn = func(ctx context.Context, username, password string) (string, domain.Principal, error) {
		if username == "alice" && password == "pw1" {
			return "signed-token", testUser, nil
		}
		return "", domain.Principal{}, auth.ErrInvalidCredentials
	}

	login := func(form url.Values) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/user/login", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rr := httptest.NewRecorder()
		svc.router().ServeHTTP(rr, req)
		return rr
	}

	rr := login(url.Values{"username": {"alice"}, "password": {"pw1"}})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"access_token":"signed-token","token_type":"bearer"}`, rr.Body.String())

	rr = login(url.Values{"username": {"alice"}, "password": {"wrong"}})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Body.String(), "Invalid username or password")

	rr = login(url.Values{"username": {"alice"}})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestUserHandler_Logout(t *testing.T) {
	svc := newTestServices()

	rr := svc.do(t, &testUser, http.MethodPost, "/api/user/logout", "")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, []string{"current-token"}, svc.auth.RevokedTokens)
}

func TestUserHandler_Update(t *testing.T) {
	t.Run("rename revokes the current token", func(t *testing.T) {
		svc := newTestServices()
		svc.users.UpdateUserFn = func(ctx context.Context, userID uuid.UUID, update service.UserUpdate) (*domain.User, error) {
			assert.Equal(t, testUser.ID, userID)
			require.NotNil(t, update.NewUsername)
			assert.Nil(t, update.NewPassword)
			return &domain.User{ID: userID, Username: *update.NewUsername, UpdatedAt: time.Now()}, nil
		}

		rr := svc.do(t, &testUser, http.MethodPatch, "/api/user/update", `{"new_username":"alice2"}`)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"username":"alice2"`)
		assert.Equal(t, []string{"current-token"}, svc.auth.RevokedTokens)
	})

	t.Run("conflict keeps the token", func(t *testing.T) {
		svc := newTestServices()
		svc.users.UpdateUserFn = func(ctx context.Context, userID uuid.UUID, update service.UserUpdate) (*domain.User, error) {
			return nil, store.ErrUsernameExists
		}

		rr := svc.do(t, &testUser, http.MethodPatch, "/api/user/update", `{"new_username":"bob"}`)

		assert.Equal(t, http.StatusConflict, rr.Code)
		assert.Empty(t, svc.auth.RevokedTokens)
	})

	t.Run("admin principal is rejected", func(t *testing.T) {
		svc := newTestServices()
		rr := svc.do(t, &testAdmin, http.MethodPatch, "/api/user/update", `{"new_username":"bob"}`)
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("revoke failure does not undo the update", func(t *testing.T) {
		svc := newTestServices()
		svc.users.UpdateUserFn = func(ctx context.Context, userID uuid.UUID, update service.UserUpdate) (*domain.User, error) {
			return &domain.User{ID: userID, Username: "alice"}, nil
		}
		svc.auth.RevokeFn = func(ctx context.Context, token string) error {
			return errors.New("connection reset")
		}

		rr := svc.do(t, &testUser, http.MethodPatch, "/api/user/update", `{"new_password":"pw2"}`)
		assert.Equal(t, http.StatusOK, rr.Code)
	})
}

func TestUserHandler_Delete(t *testing.T) {
	svc := newTestServices()
	svc.users.DeleteUserFn = func(ctx context.Context, userID uuid.UUID) error {
		if userID == testUser.ID {
			return nil
		}
		return store.ErrUserNotFound
	}

	rr := svc.do(t, &testUser, http.MethodDelete, "/api/user/delete", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, []string{"current-token"}, svc.auth.RevokedTokens)

	ghost := domain.Principal{ID: uuid.New(), Username: "ghost", Role: domain.RoleUser}
	rr = svc.do(t, &ghost, http.MethodDelete, "/api/user/delete", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestUserHandler_Me(t *testing.T) {
	svc := newTestServices()
	svc.users.GetUserFn = func(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
		return &domain.User{ID: userID, Username: "alice"}, nil
	}

	rr := svc.do(t, &testUser, http.MethodGet, "/api/user/me", "")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), testUser.ID.String())
}
