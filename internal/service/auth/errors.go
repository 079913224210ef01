package auth

import "errors"

// Token errors, in the order Verify can produce them.
var (
	ErrMissingToken     = errors.New("authentication token is missing")
	ErrInvalidToken     = errors.New("invalid authentication token")
	ErrExpiredToken     = errors.New("authentication token has expired")
	ErrTokenNotYetValid = errors.New("authentication token not yet valid")
	ErrRevokedToken     = errors.New("authentication token has been revoked")
)

// ErrInvalidCredentials covers both an unknown username and a wrong password
// so callers cannot tell them apart.
var ErrInvalidCredentials = errors.New("incorrect username or password")
