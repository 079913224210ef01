package domain

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Field limits shared by users and admins.
const (
	MaxUsernameLength = 50
	// MaxPasswordLength is bcrypt's input limit in bytes.
	MaxPasswordLength = 72
)

// Common validation errors
var (
	ErrEmptyUserID         = errors.New("user ID cannot be empty")
	ErrEmptyUsername       = errors.New("username cannot be empty")
	ErrUsernameTooLong     = errors.New("username must be at most 50 characters long")
	ErrUsernameWhitespace  = errors.New("username cannot contain whitespace")
	ErrEmptyPassword       = errors.New("password cannot be empty")
	ErrPasswordTooLong     = errors.New("password must be at most 72 bytes long")
	ErrEmptyHashedPassword = errors.New("hashed password cannot be empty")
)

// User is a registered account that owns tags and tasks.
type User struct {
	ID             uuid.UUID `json:"id"         db:"id"`
	Username       string    `json:"username"   db:"username"`
	Password       string    `json:"-"          db:"-"`             // Plaintext password, used temporarily during registration/updates
	HashedPassword string    `json:"-"          db:"password_hash"` // Never expose password hash in JSON
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// NewUser creates a new User with the given username and password.
// It generates a new UUID for the user ID and sets the creation/update timestamps.
//
// NOTE: The plaintext password must be hashed before the user is stored.
func NewUser(username, password string) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		ID:        uuid.New(),
		Username:  username,
		Password:  password,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return NewValidationError("id", "cannot be empty", ErrEmptyUserID)
	}

	if err := ValidateUsername(u.Username); err != nil {
		return err
	}

	if u.Password != "" {
		return ValidatePassword(u.Password)
	}
	if u.HashedPassword == "" {
		return NewValidationError("password", "cannot be empty", ErrEmptyPassword)
	}

	return nil
}

// ValidateUsername checks the username rules shared by users and admins.
func ValidateUsername(username string) error {
	if username == "" {
		return NewValidationError("username", "cannot be empty", ErrEmptyUsername)
	}
	if utf8.RuneCountInString(username) > MaxUsernameLength {
		return NewValidationError("username", "is too long", ErrUsernameTooLong)
	}
	if strings.IndexFunc(username, isSpace) >= 0 {
		return NewValidationError("username", "cannot contain whitespace", ErrUsernameWhitespace)
	}
	return nil
}

// ValidatePassword checks a plaintext password before hashing.
func ValidatePassword(password string) error {
	if password == "" {
		return NewValidationError("password", "cannot be empty", ErrEmptyPassword)
	}
	if len(password) > MaxPasswordLength {
		return NewValidationError("password", "is too long", ErrPasswordTooLong)
	}
	return nil
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}
