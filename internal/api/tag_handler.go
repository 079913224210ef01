package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/tasklist-api/internal/api/shared"
	"github.com/phrazzld/tasklist-api/internal/platform/logger"
	"github.com/phrazzld/tasklist-api/internal/service"
)

// TagHandler serves /api/tag for the authenticated user.
type TagHandler struct {
	tagService service.TagService
	logger     *slog.Logger
}

// NewTagHandler creates a new TagHandler
func NewTagHandler(tagService service.TagService, logger *slog.Logger) *TagHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for TagHandler")
	}
	return &TagHandler{
		tagService: tagService,
		logger:     logger.With(slog.String("component", "tag_handler")),
	}
}

// ListTags handles GET /api/tag/all
func (h *TagHandler) ListTags(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r, logger.FromContextOrDefault(r.Context(), h.logger))
	if !ok {
		return
	}

	tags, err := h.tagService.ListTags(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list tags")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, tagsToResponse(tags))
}

// GetTag handles GET /api/tag/{tag_id}
func (h *TagHandler) GetTag(w http.ResponseWriter, r *http.Request) {
	userID, tagID, ok := handleUserIDAndPathUUID(w, r, "tag_id", logger.FromContextOrDefault(r.Context(), h.logger))
	if !ok {
		return
	}

	tag, err := h.tagService.GetTag(r.Context(), userID, tagID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get tag")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, tagToResponse(tag))
}

// CreateTag handles POST /api/tag/create
func (h *TagHandler) CreateTag(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r, logger.FromContextOrDefault(r.Context(), h.logger))
	if !ok {
		return
	}

	var req CreateTagRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	tag, err := h.tagService.CreateTag(r.Context(), userID, req.Tag)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create tag")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, tagToResponse(tag))
}

// RenameTag handles PATCH /api/tag/{tag_id}
func (h *TagHandler) RenameTag(w http.ResponseWriter, r *http.Request) {
	userID, tagID, ok := handleUserIDAndPathUUID(w, r, "tag_id", logger.FromContextOrDefault(r.Context(), h.logger))
	if !ok {
		return
	}

	var req RenameTagRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	tag, err := h.tagService.RenameTag(r.Context(), userID, tagID, req.NewTag)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to rename tag")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, tagToResponse(tag))
}

// DeleteTag handles DELETE /api/tag/{tag_id}. Tasks carrying the tag are kept untagged.
func (h *TagHandler) DeleteTag(w http.ResponseWriter, r *http.Request) {
	userID, tagID, ok := handleUserIDAndPathUUID(w, r, "tag_id", logger.FromContextOrDefault(r.Context(), h.logger))
	if !ok {
		return
	}

	if err := h.tagService.DeleteTag(r.Context(), userID, tagID); err != nil {
		HandleAPIError(w, r, err, "Failed to delete tag")
		return
	}
	shared.RespondWithMessage(w, r, http.StatusOK, "Tag deleted")
}
