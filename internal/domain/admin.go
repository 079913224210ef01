package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrEmptyAdminID is returned for an admin without an identifier.
var ErrEmptyAdminID = errors.New("admin ID cannot be empty")

// Admin is an operator account. Admins live in their own credential space:
// the same username may exist as both an Admin and a User.
type Admin struct {
	ID        uuid.UUID `json:"id"         db:"id"`
	Username  string    `json:"username"   db:"username"`
	Password  string    `json:"-"          db:"password"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// NewAdmin creates a validated Admin with a fresh ID.
func NewAdmin(username, password string) (*Admin, error) {
	now := time.Now().UTC()
	admin := &Admin{
		ID:        uuid.New(),
		Username:  username,
		Password:  password,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := admin.Validate(); err != nil {
		return nil, err
	}
	return admin, nil
}

// Validate checks if the Admin has valid data.
func (a *Admin) Validate() error {
	if a.ID == uuid.Nil {
		return NewValidationError("id", "cannot be empty", ErrEmptyAdminID)
	}
	if err := ValidateUsername(a.Username); err != nil {
		return err
	}
	return ValidatePassword(a.Password)
}
