package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/tasklist-api/internal/api/shared"
	"github.com/phrazzld/tasklist-api/internal/platform/logger"
	"github.com/phrazzld/tasklist-api/internal/service"
	"github.com/phrazzld/tasklist-api/internal/service/auth"
)

// UserHandler serves the account endpoints: registration, login, logout and
// self-service profile changes.
type UserHandler struct {
	userService service.UserService
	authService auth.Service
	logger      *slog.Logger
}

// NewUserHandler creates a new UserHandler with the given dependencies.
func NewUserHandler(userService service.UserService, authService auth.Service, logger *slog.Logger) *UserHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for UserHandler")
	}
	return &UserHandler{
		userService: userService,
		authService: authService,
		logger:      logger.With(slog.String("component", "user_handler")),
	}
}

// Register handles POST /api/user/register.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.userService.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create user")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, userToResponse(user))
}

// Login handles POST /api/user/login. Credentials arrive form-encoded.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	req := LoginRequest{
		Username: r.PostForm.Get("username"),
		Password: r.PostForm.Get("password"),
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	token, principal, err := h.authService.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to authenticate")
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).Info("login succeeded",
		slog.String("principal_id", principal.ID.String()),
		slog.String("role", string(principal.Role)))

	shared.RespondWithJSON(w, r, http.StatusOK, TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}

// Logout handles POST /api/user/logout by revoking the presented token.
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.authService.Revoke(r.Context(), shared.GetToken(r.Context())); err != nil {
		HandleAPIError(w, r, err, "Failed to log out")
		return
	}
	shared.RespondWithMessage(w, r, http.StatusOK, "Logged out")
}

// Me handles GET /api/user/me.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}

	user, err := h.userService.GetUser(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get user")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, userToResponse(user))
}

// Update handles PATCH /api/user/update. The token used for the request is
// revoked on success, so the client must log in again.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}

	var req UpdateUserRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.userService.UpdateUser(r.Context(), userID, service.UserUpdate{
		NewUsername: req.NewUsername,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update user")
		return
	}

	h.revokeCurrentToken(r, log)
	shared.RespondWithJSON(w, r, http.StatusOK, userToResponse(user))
}

// Delete handles DELETE /api/user/delete. Tags and tasks go with the account.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}

	if err := h.userService.DeleteUser(r.Context(), userID); err != nil {
		HandleAPIError(w, r, err, "Failed to delete user")
		return
	}

	h.revokeCurrentToken(r, log)
	shared.RespondWithMessage(w, r, http.StatusOK, "User deleted")
}

// revokeCurrentToken revokes the request's token after an account change has
// already been committed. A failure is logged, not returned.
func (h *UserHandler) revokeCurrentToken(r *http.Request, log *slog.Logger) {
	if err := h.authService.Revoke(r.Context(), shared.GetToken(r.Context())); err != nil {
		log.Error("failed to revoke token after account change", slog.Any("error", err))
	}
}
