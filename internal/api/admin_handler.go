package api

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/phrazzld/tasklist-api/internal/api/shared"
	"github.com/phrazzld/tasklist-api/internal/domain"
	"github.com/phrazzld/tasklist-api/internal/platform/logger"
	"github.com/phrazzld/tasklist-api/internal/service"
)

// AdminHandler serves /api/admin. Routes are mounted behind RequireAdmin.
type AdminHandler struct {
	adminService service.AdminService
	logger       *slog.Logger
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(adminService service.AdminService, logger *slog.Logger) *AdminHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for AdminHandler")
	}
	return &AdminHandler{
		adminService: adminService,
		logger:       logger.With(slog.String("component", "admin_handler")),
	}
}

// ListUsers handles GET /api/admin/users
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.adminService.ListUsers(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list users")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, usersToResponse(users))
}

// ListActiveUsers handles GET /api/admin/users/active?updated_at=<RFC3339>
// The offset's "+" should be sent as %2B; an unencoded one arrives as a space
// and is accepted as well.
func (h *AdminHandler) ListActiveUsers(w http.ResponseWriter, r *http.Request) {
	since, err := parseQueryTime(r.URL.Query().Get("updated_at"))
	if err != nil {
		HandleAPIError(w, r, domain.NewValidationError("updated_at", "must be an RFC3339 timestamp", domain.ErrValidation), "")
		return
	}

	users, err := h.adminService.ListActiveUsers(r.Context(), since)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list users")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, usersToResponse(users))
}

// GetUser handles GET /api/admin/users/{user_id}
func (h *AdminHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := handlePathUUID(w, r, "user_id", logger.FromContextOrDefault(r.Context(), h.logger))
	if !ok {
		return
	}

	user, err := h.adminService.GetUser(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get user")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, userToResponse(user))
}

// DeleteUser handles DELETE /api/admin/users/{user_id}
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, ok := handlePathUUID(w, r, "user_id", log)
	if !ok {
		return
	}

	if err := h.adminService.DeleteUser(r.Context(), userID); err != nil {
		HandleAPIError(w, r, err, "Failed to delete user")
		return
	}

	if principal, ok := getPrincipalFromContext(r); ok {
		log.Info("user deleted", slog.String("user_id", userID.String()), slog.String("admin_id", principal.ID.String()))
	}
	shared.RespondWithMessage(w, r, http.StatusOK, "User deleted")
}

// parseQueryTime parses an RFC3339 query value, restoring a "+" offset that
// query decoding turned into a space.
func parseQueryTime(raw string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil && strings.Contains(raw, " ") {
		return time.Parse(time.RFC3339, strings.Replace(raw, " ", "+", 1))
	}
	return t, err
}
