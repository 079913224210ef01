package api

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/tasklist-api/internal/api/shared"
	"github.com/phrazzld/tasklist-api/internal/domain"
	"github.com/phrazzld/tasklist-api/internal/mocks"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

var (
	testUser  = domain.Principal{ID: uuid.New(), Username: "alice", Role: domain.RoleUser}
	testAdmin = domain.Principal{ID: uuid.New(), Username: "root", Role: domain.RoleAdmin}
)

// testServices bundles the service mocks behind a router laid out like the
// production one, minus token verification: requests carry their principal
// directly in the context.
type testServices struct {
	auth  *mocks.MockAuthService
	users *mocks.MockUserService
	tasks *mocks.MockTaskService
	tags  *mocks.MockTagService
	admin *mocks.MockAdminService
}

func newTestServices() *testServices {
	return &testServices{
		auth:  &mocks.MockAuthService{},
		users: &mocks.MockUserService{},
		tasks: &mocks.MockTaskService{},
		tags:  &mocks.MockTagService{},
		admin: &mocks.MockAdminService{},
	}
}

func (s *testServices) router() http.Handler {
	userHandler := NewUserHandler(s.users, s.auth, testLogger)
	taskHandler := NewTaskHandler(s.tasks, testLogger)
	tagHandler := NewTagHandler(s.tags, testLogger)
	adminHandler := NewAdminHandler(s.admin, testLogger)

	r := chi.NewRouter()
	r.Route("/api/user", func(r chi.Router) {
		r.Post("/register", userHandler.Register)
		r.Post("/login", userHandler.Login)
		r.Post("/logout", userHandler.Logout)
		r.Get("/me", userHandler.Me)
		r.Patch("/update", userHandler.Update)
		r.Delete("/delete", userHandler.Delete)
	})
	r.Route("/api/task", func(r chi.Router) {
		r.Post("/create", taskHandler.CreateTask)
		r.Get("/all", taskHandler.ListTasks)
		r.Get("/task_id/{task_id}", taskHandler.GetTask)
		r.Get("/tag/{tag_id}", taskHandler.ListTasksByTag)
		r.Get("/status", taskHandler.ListTasksByStatus)
		r.Get("/priority", taskHandler.ListTasksByPriority)
		r.Get("/text", taskHandler.SearchTasks)
		r.Patch("/{task_id}", taskHandler.UpdateTask)
		r.Delete("/{task_id}", taskHandler.DeleteTask)
	})
	r.Route("/api/tag", func(r chi.Router) {
		r.Get("/all", tagHandler.ListTags)
		r.Post("/create", tagHandler.CreateTag)
		r.Get("/{tag_id}", tagHandler.GetTag)
		r.Patch("/{tag_id}", tagHandler.RenameTag)
		r.Delete("/{tag_id}", tagHandler.DeleteTag)
	})
	r.Route("/api/admin/users", func(r chi.Router) {
		r.Get("/", adminHandler.ListUsers)
		r.Get("/active", adminHandler.ListActiveUsers)
		r.Get("/{user_id}", adminHandler.GetUser)
		r.Delete("/{user_id}", adminHandler.DeleteUser)
	})
	return r
}

// do sends a request through the test router. A nil principal sends the
// request unauthenticated.
func (s *testServices) do(
	t *testing.T,
	principal *domain.Principal,
	method, path, body string,
) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if principal != nil {
		req = req.WithContext(shared.WithPrincipal(req.Context(), *principal, "current-token"))
	}

	rr := httptest.NewRecorder()
	s.router().ServeHTTP(rr, req)
	return rr
}
