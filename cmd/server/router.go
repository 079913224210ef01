package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/tasklist-api/internal/api"
	apiMiddleware "github.com/phrazzld/tasklist-api/internal/api/middleware"
)

// setupRouter creates the router with every route and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware(app.logger))

	userHandler := api.NewUserHandler(app.userService, app.authService, app.logger)
	taskHandler := api.NewTaskHandler(app.taskService, app.logger)
	tagHandler := api.NewTagHandler(app.tagService, app.logger)
	adminHandler := api.NewAdminHandler(app.adminService, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.authService, app.logger)

	r.Route("/api", func(r chi.Router) {
		r.Route("/user", func(r chi.Router) {
			r.Post("/register", userHandler.Register)
			r.Post("/login", userHandler.Login)

			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.Authenticate)
				r.Post("/logout", userHandler.Logout)

				r.Group(func(r chi.Router) {
					r.Use(authMiddleware.RequireUser)
					r.Get("/me", userHandler.Me)
					r.Patch("/update", userHandler.Update)
					r.Delete("/delete", userHandler.Delete)
				})
			})
		})

		r.Route("/task", func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			r.Use(authMiddleware.RequireUser)

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

		r.Route("/tag", func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			r.Use(authMiddleware.RequireUser)

			r.Get("/all", tagHandler.ListTags)
			r.Post("/create", tagHandler.CreateTag)
			r.Get("/{tag_id}", tagHandler.GetTag)
			r.Patch("/{tag_id}", tagHandler.RenameTag)
			r.Delete("/{tag_id}", tagHandler.DeleteTag)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			r.Use(authMiddleware.RequireAdmin)

			r.Get("/users", adminHandler.ListUsers)
			r.Get("/users/active", adminHandler.ListActiveUsers)
			r.Get("/users/{user_id}", adminHandler.GetUser)
			r.Delete("/users/{user_id}", adminHandler.DeleteUser)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
