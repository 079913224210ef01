package store

import (
	"errors"
	"fmt"
)

// Base sentinels. Callers should match these with errors.Is rather than the
// entity-specific variants unless the entity matters to them.
var (
	ErrNotFound          = errors.New("entity not found")
	ErrDuplicate         = errors.New("entity already exists")
	ErrInvalidEntity     = errors.New("invalid entity")
	ErrTransactionFailed = errors.New("transaction failed")
)

// Entity-specific variants wrap a base sentinel.
var (
	ErrUserNotFound  = fmt.Errorf("%w: user", ErrNotFound)
	ErrAdminNotFound = fmt.Errorf("%w: admin", ErrNotFound)
	ErrTagNotFound   = fmt.Errorf("%w: tag", ErrNotFound)
	ErrTaskNotFound  = fmt.Errorf("%w: task", ErrNotFound)

	// ErrUsernameExists covers both the users and the admins table.
	ErrUsernameExists = fmt.Errorf("%w: username", ErrDuplicate)

	// ErrTagExists means the owner already has a tag with that name.
	ErrTagExists = fmt.Errorf("%w: tag", ErrDuplicate)
)

// IsNotFoundError reports whether err wraps ErrNotFound or any of its variants.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError reports whether err wraps ErrDuplicate or any of its variants.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}
