package service

import (
	"errors"
	"fmt"

	"github.com/phrazzld/tasklist-api/internal/store"
)

// Common service errors - sentinel errors used across service implementations.
// These errors represent common conditions that callers may want to check for with errors.Is().
//
// Error handling principles:
// 1. Service methods return sentinel errors for expected error conditions
// 2. Unexpected errors are wrapped with the failing operation as context
// 3. Callers use errors.Is/errors.As to check for specific error conditions
// 4. The API layer maps service errors to appropriate HTTP status codes
var (
	// ErrTagNotFound indicates a task refers to a tag the user does not own.
	// It matches store.ErrTagNotFound, so the API layer maps it to 404.
	ErrTagNotFound = fmt.Errorf("%w: tag does not belong to user", store.ErrTagNotFound)

	// ErrEmptyUpdate indicates an update request that changes nothing.
	// API layer should map this to HTTP 400 Bad Request.
	ErrEmptyUpdate = errors.New("no fields to update")

	// ErrEmptySearchText indicates a text search without any text.
	ErrEmptySearchText = errors.New("search text cannot be empty")
)
