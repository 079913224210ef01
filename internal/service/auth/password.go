package auth

import (
	"crypto/subtle"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrPasswordMismatch is returned by PlainVerifier when the passwords differ.
var ErrPasswordMismatch = errors.New("password mismatch")

// PasswordVerifier defines the interface for comparing passwords.
type PasswordVerifier interface {
	// Compare compares a stored password with its possible plaintext equivalent.
	// Returns nil on success, or an error on failure (e.g., mismatch).
	Compare(storedPassword, password string) error
}

// BcryptVerifier implements PasswordVerifier using bcrypt.
type BcryptVerifier struct{}

// NewBcryptVerifier creates a new BcryptVerifier.
func NewBcryptVerifier() *BcryptVerifier {
	return &BcryptVerifier{}
}

// Compare implements the PasswordVerifier interface using bcrypt.
func (v *BcryptVerifier) Compare(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// PlainVerifier compares stored plaintext passwords in constant time.
// Admin accounts are provisioned by operators and stored this way.
type PlainVerifier struct{}

// NewPlainVerifier creates a new PlainVerifier.
func NewPlainVerifier() *PlainVerifier {
	return &PlainVerifier{}
}

// Compare implements the PasswordVerifier interface.
func (v *PlainVerifier) Compare(storedPassword, password string) error {
	if subtle.ConstantTimeCompare([]byte(storedPassword), []byte(password)) != 1 {
		return ErrPasswordMismatch
	}
	return nil
}
