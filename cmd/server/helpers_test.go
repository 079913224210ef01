package main

import (
	"io"
	"log/slog"

	"github.com/phrazzld/tasklist-api/internal/config"
	"github.com/phrazzld/tasklist-api/internal/mocks"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:                   0,
			LogLevel:               "debug",
			ShutdownTimeoutSeconds: 2,
		},
		Database: config.DatabaseConfig{
			MaxOpenConns:           4,
			MaxIdleConns:           2,
			ConnMaxLifetimeMinutes: 1,
		},
		Auth: config.AuthConfig{
			JWTSecret:                      "test-secret-that-is-at-least-32-chars-long",
			TokenLifetimeMinutes:           30,
			BCryptCost:                     4,
			RevocationPurgeIntervalMinutes: 60,
		},
	}
}

// newMockApplication builds an application whose services are all mocks.
func newMockApplication() (*application, *mocks.MockAuthService) {
	authService := &mocks.MockAuthService{}
	return &application{
		config:       testConfig(),
		logger:       testLogger,
		authService:  authService,
		userService:  &mocks.MockUserService{},
		taskService:  &mocks.MockTaskService{},
		tagService:   &mocks.MockTagService{},
		adminService: &mocks.MockAdminService{},
	}, authService
}
