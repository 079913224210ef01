package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/tasklist-api/internal/domain"
	"github.com/phrazzld/tasklist-api/internal/platform/logger"
	"github.com/phrazzld/tasklist-api/internal/store"
)

// OverdueSweeper marks a user's past-due tasks as Overdue.
type OverdueSweeper interface {
	SweepOverdue(ctx context.Context, userID uuid.UUID) (int64, error)
}

// Service issues, verifies and revokes bearer tokens for users and admins.
type Service interface {
	// Authenticate checks the credentials against the admin store and then the
	// user store, and returns a fresh token for the matching principal.
	// A successful user login sweeps that user's overdue tasks first.
	Authenticate(ctx context.Context, username, password string) (string, domain.Principal, error)

	// Verify validates the token, rejects revoked tokens, and resolves the
	// principal named by its role and uid claims.
	Verify(ctx context.Context, token string) (domain.Principal, error)

	// Revoke adds the token to the revocation list until it expires.
	// Revoking the same token twice is a no-op.
	Revoke(ctx context.Context, token string) error

	// IsRevoked reports whether the token is on the revocation list.
	IsRevoked(ctx context.Context, token string) (bool, error)

	// PurgeExpired drops revocation entries whose tokens expired before now.
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}

// Deps holds the collaborators of the auth service.
type Deps struct {
	Users          store.UserStore
	Admins         store.AdminStore
	Revoked        store.RevokedTokenStore
	JWT            JWTService
	UserPasswords  PasswordVerifier
	AdminPasswords PasswordVerifier
	Sweeper        OverdueSweeper
}

type serviceImpl struct {
	users          store.UserStore
	admins         store.AdminStore
	revoked        store.RevokedTokenStore
	jwt            JWTService
	userPasswords  PasswordVerifier
	adminPasswords PasswordVerifier
	sweeper        OverdueSweeper
	logger         *slog.Logger
}

var _ Service = (*serviceImpl)(nil)

// NewService creates the auth service. Password verifiers default to bcrypt
// for users and constant-time plaintext comparison for admins.
func NewService(deps Deps, logger *slog.Logger) (Service, error) {
	if deps.Users == nil {
		return nil, errors.New("user store cannot be nil")
	}
	if deps.Admins == nil {
		return nil, errors.New("admin store cannot be nil")
	}
	if deps.Revoked == nil {
		return nil, errors.New("revoked token store cannot be nil")
	}
	if deps.JWT == nil {
		return nil, errors.New("jwt service cannot be nil")
	}
	if deps.UserPasswords == nil {
		deps.UserPasswords = NewBcryptVerifier()
	}
	if deps.AdminPasswords == nil {
		deps.AdminPasswords = NewPlainVerifier()
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &serviceImpl{
		users:          deps.Users,
		admins:         deps.Admins,
		revoked:        deps.Revoked,
		jwt:            deps.JWT,
		userPasswords:  deps.UserPasswords,
		adminPasswords: deps.AdminPasswords,
		sweeper:        deps.Sweeper,
		logger:         logger.With("component", "auth_service"),
	}, nil
}

// HashToken returns the hex-encoded SHA-256 digest stored for a revoked token.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// Authenticate implements Service.Authenticate
func (s *serviceImpl) Authenticate(
	ctx context.Context,
	username, password string,
) (string, domain.Principal, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	principal, err := s.authenticateAdmin(ctx, username, password)
	if err != nil {
		return "", domain.Principal{}, err
	}

	if principal == nil {
		principal, err = s.authenticateUser(ctx, username, password)
		if err != nil {
			return "", domain.Principal{}, err
		}
	}

	token, err := s.jwt.GenerateToken(ctx, *principal)
	if err != nil {
		log.Error("failed to generate token", "error", err, "principal_id", principal.ID)
		return "", domain.Principal{}, fmt.Errorf("failed to generate token: %w", err)
	}

	log.Info("login succeeded", "principal_id", principal.ID, "role", principal.Role)
	return token, *principal, nil
}

// authenticateAdmin returns nil, nil when no admin matches so the user store is tried next.
func (s *serviceImpl) authenticateAdmin(ctx context.Context, username, password string) (*domain.Principal, error) {
	admin, err := s.admins.GetByUsername(ctx, username)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to look up admin: %w", err)
	}

	if err := s.adminPasswords.Compare(admin.Password, password); err != nil {
		return nil, nil
	}

	principal := domain.AdminPrincipal(admin)
	return &principal, nil
}

func (s *serviceImpl) authenticateUser(ctx context.Context, username, password string) (*domain.Principal, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("login failed: unknown username")
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := s.userPasswords.Compare(user.HashedPassword, password); err != nil {
		log.Debug("login failed: password mismatch", "user_id", user.ID)
		return nil, ErrInvalidCredentials
	}

	if s.sweeper != nil {
		count, err := s.sweeper.SweepOverdue(ctx, user.ID)
		if err != nil {
			log.Warn("overdue sweep failed during login", "error", err, "user_id", user.ID)
		} else {
			log.Debug("overdue sweep completed", "user_id", user.ID, "count", count)
		}
	}

	principal := domain.UserPrincipal(user)
	return &principal, nil
}

// Verify implements Service.Verify
func (s *serviceImpl) Verify(ctx context.Context, token string) (domain.Principal, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if token == "" {
		return domain.Principal{}, ErrMissingToken
	}

	claims, err := s.jwt.ValidateToken(ctx, token)
	if err != nil {
		return domain.Principal{}, err
	}

	revoked, err := s.IsRevoked(ctx, token)
	if err != nil {
		return domain.Principal{}, err
	}
	if revoked {
		log.Debug("rejected revoked token", "token_id", claims.ID)
		return domain.Principal{}, ErrRevokedToken
	}

	switch claims.Role {
	case domain.RoleAdmin:
		admin, err := s.admins.GetByID(ctx, claims.PrincipalID)
		if err != nil {
			return domain.Principal{}, s.resolveError(ctx, err, claims)
		}
		return domain.AdminPrincipal(admin), nil
	case domain.RoleUser:
		user, err := s.users.GetByID(ctx, claims.PrincipalID)
		if err != nil {
			return domain.Principal{}, s.resolveError(ctx, err, claims)
		}
		return domain.UserPrincipal(user), nil
	default:
		return domain.Principal{}, ErrInvalidToken
	}
}

func (s *serviceImpl) resolveError(ctx context.Context, err error, claims *Claims) error {
	if store.IsNotFoundError(err) {
		logger.FromContextOrDefault(ctx, s.logger).Debug("token principal no longer exists",
			"principal_id", claims.PrincipalID,
			"role", claims.Role)
		return ErrInvalidToken
	}
	return fmt.Errorf("failed to resolve token principal: %w", err)
}

// Revoke implements Service.Revoke
// Tokens that have already expired are not recorded.
func (s *serviceImpl) Revoke(ctx context.Context, token string) error {
	claims, err := s.jwt.ValidateToken(ctx, token)
	if err != nil {
		if errors.Is(err, ErrExpiredToken) {
			return nil
		}
		return err
	}

	entry := &domain.RevokedToken{
		ID:        uuid.New(),
		TokenHash: HashToken(token),
		ExpiresAt: claims.ExpiresAt,
		RevokedAt: time.Now().UTC(),
	}
	if err := s.revoked.Add(ctx, entry); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("token revoked",
		"token_id", claims.ID,
		"principal_id", claims.PrincipalID)
	return nil
}

// IsRevoked implements Service.IsRevoked
func (s *serviceImpl) IsRevoked(ctx context.Context, token string) (bool, error) {
	revoked, err := s.revoked.Exists(ctx, HashToken(token))
	if err != nil {
		return false, fmt.Errorf("failed to check token revocation: %w", err)
	}
	return revoked, nil
}

// PurgeExpired implements Service.PurgeExpired
func (s *serviceImpl) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	count, err := s.revoked.DeleteExpired(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("failed to purge revoked tokens: %w", err)
	}
	if count > 0 {
		logger.FromContextOrDefault(ctx, s.logger).Info("purged expired revoked tokens", "count", count)
	}
	return count, nil
}
