package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/phrazzld/tasklist-api/internal/api/shared"
	"github.com/phrazzld/tasklist-api/internal/domain"
	"github.com/phrazzld/tasklist-api/internal/platform/logger"
	"github.com/phrazzld/tasklist-api/internal/service/auth"
)

// AuthMiddleware provides bearer-token authentication and role checks for routes.
type AuthMiddleware struct {
	authService auth.Service
	logger      *slog.Logger
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(authService auth.Service, logger *slog.Logger) *AuthMiddleware {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthMiddleware{
		authService: authService,
		logger:      logger.With(slog.String("component", "auth_middleware")),
	}
}

// Authenticate resolves the bearer token to a principal and stores both in
// the request context. Invalid, expired or revoked tokens get a 401.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContextOrDefault(r.Context(), m.logger)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Authorization header required")
			return
		}

		scheme, token, found := strings.Cut(authHeader, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid authorization format")
			return
		}

		principal, err := m.authService.Verify(r.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrExpiredToken):
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Token expired")
			case errors.Is(err, auth.ErrRevokedToken):
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Token revoked")
			case errors.Is(err, auth.ErrInvalidToken),
				errors.Is(err, auth.ErrTokenNotYetValid),
				errors.Is(err, auth.ErrMissingToken):
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid token")
			default:
				shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Authentication error", err)
			}
			return
		}

		log.Debug("request authenticated",
			slog.String("principal_id", principal.ID.String()),
			slog.String("role", string(principal.Role)))

		ctx := shared.WithPrincipal(r.Context(), principal, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireUser lets through only requests authenticated as a regular user.
func (m *AuthMiddleware) RequireUser(next http.Handler) http.Handler {
	return m.requireRole(domain.RoleUser, next)
}

// RequireAdmin lets through only requests authenticated as an admin.
func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return m.requireRole(domain.RoleAdmin, next)
}

func (m *AuthMiddleware) requireRole(role domain.Role, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, ok := shared.GetPrincipal(r.Context())
		if !ok {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
			return
		}
		if principal.Role != role {
			logger.FromContextOrDefault(r.Context(), m.logger).Debug("role check failed",
				slog.String("principal_id", principal.ID.String()),
				slog.String("role", string(principal.Role)),
				slog.String("required_role", string(role)))
			shared.RespondWithError(w, r, http.StatusForbidden, "Not allowed")
			return
		}
		next.ServeHTTP(w, r)
	})
}
