package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/tasklist-api/internal/config"
	"github.com/phrazzld/tasklist-api/internal/platform/postgres"
	"github.com/phrazzld/tasklist-api/internal/service"
	"github.com/phrazzld/tasklist-api/internal/service/auth"
)

// application holds the shared dependencies of the server and owns their
// cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sqlx.DB

	authService  auth.Service
	userService  service.UserService
	taskService  service.TaskService
	tagService   service.TagService
	adminService service.AdminService
}

// newApplication wires stores and services over db and makes sure the
// configured bootstrap admin exists.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sqlx.DB) (*application, error) {
	if db == nil {
		return nil, errors.New("database connection cannot be nil")
	}

	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	userStore := postgres.NewPostgresUserStore(db, cfg.Auth.BCryptCost, logger)
	adminStore := postgres.NewPostgresAdminStore(db, logger)
	tagStore := postgres.NewPostgresTagStore(db, logger)
	taskStore := postgres.NewPostgresTaskStore(db, logger)
	revokedStore := postgres.NewPostgresRevokedTokenStore(db, logger)

	app.userService = service.NewUserService(userStore, db, logger)
	app.tagService = service.NewTagService(tagStore, logger)
	app.taskService = service.NewTaskService(taskStore, tagStore, db, logger)
	app.adminService = service.NewAdminService(userStore, adminStore, logger)

	app.authService, err = auth.NewService(auth.Deps{
		Users:   userStore,
		Admins:  adminStore,
		Revoked: revokedStore,
		JWT:     jwtService,
		Sweeper: app.taskService,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create auth service: %w", err)
	}

	if cfg.Auth.AdminUsername != "" {
		if err := app.adminService.EnsureAdmin(ctx, cfg.Auth.AdminUsername, cfg.Auth.AdminPassword); err != nil {
			return nil, fmt.Errorf("failed to bootstrap admin account: %w", err)
		}
	}

	logger.Info("application initialized successfully")
	return app, nil
}

// Run serves HTTP and runs the revocation janitor until ctx is canceled.
func (app *application) Run(ctx context.Context) error {
	defer app.cleanup()

	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", app.config.Server.Port))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	janitor := newRevocationJanitor(
		app.authService,
		time.Duration(app.config.Auth.RevocationPurgeIntervalMinutes)*time.Minute,
		app.logger,
	)
	janitor.Start(ctx)

	err = app.startHTTPServer(ctx, listener, app.setupRouter())
	cancel()
	janitor.Wait()
	return err
}

// cleanup releases application resources.
func (app *application) cleanup() {
	if app.db != nil {
		closeDB(app.db, app.logger)
	}
	app.logger.Info("application shutdown completed")
}
