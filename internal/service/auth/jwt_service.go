package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/tasklist-api/internal/domain"
)

// JWTService issues and checks signed bearer tokens.
type JWTService interface {
	GenerateToken(ctx context.Context, principal domain.Principal) (string, error)

	// ValidateToken checks signature and time claims only; revocation and
	// principal lookup are the caller's job. Expired tokens yield
	// ErrExpiredToken, everything else ErrInvalidToken.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims is the decoded payload of an access token.
type Claims struct {
	PrincipalID uuid.UUID   `json:"uid,omitempty"`
	Role        domain.Role `json:"role,omitempty"`

	// Subject is the username at issue time; informational only.
	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
