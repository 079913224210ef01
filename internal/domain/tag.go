package domain

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// MaxTagNameLength bounds the tag text.
const MaxTagNameLength = 50

// Common validation errors for Tag
var (
	ErrEmptyTagID     = errors.New("tag ID cannot be empty")
	ErrEmptyTagUserID = errors.New("tag user ID cannot be empty")
	ErrEmptyTagName   = errors.New("tag name cannot be empty")
	ErrTagNameTooLong = errors.New("tag name must be at most 50 characters long")
)

// Tag is a user-defined label for grouping tasks. Names are unique per user.
type Tag struct {
	ID        uuid.UUID `json:"id"         db:"id"`
	UserID    uuid.UUID `json:"user_id"    db:"user_id"`
	Name      string    `json:"name"       db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// NewTag creates a validated Tag owned by userID. Surrounding whitespace is trimmed.
func NewTag(userID uuid.UUID, name string) (*Tag, error) {
	now := time.Now().UTC()
	tag := &Tag{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      strings.TrimSpace(name),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := tag.Validate(); err != nil {
		return nil, err
	}
	return tag, nil
}

// Validate checks if the Tag has valid data.
func (t *Tag) Validate() error {
	if t.ID == uuid.Nil {
		return NewValidationError("id", "cannot be empty", ErrEmptyTagID)
	}
	if t.UserID == uuid.Nil {
		return NewValidationError("user_id", "cannot be empty", ErrEmptyTagUserID)
	}
	return ValidateTagName(t.Name)
}

// ValidateTagName checks a tag's text.
func ValidateTagName(name string) error {
	if strings.TrimSpace(name) == "" {
		return NewValidationError("tag", "cannot be empty", ErrEmptyTagName)
	}
	if utf8.RuneCountInString(name) > MaxTagNameLength {
		return NewValidationError("tag", "is too long", ErrTagNameTooLong)
	}
	return nil
}
