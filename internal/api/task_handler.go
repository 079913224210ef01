package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/phrazzld/tasklist-api/internal/api/shared"
	"github.com/phrazzld/tasklist-api/internal/domain"
	"github.com/phrazzld/tasklist-api/internal/platform/logger"
	"github.com/phrazzld/tasklist-api/internal/service"
)

// TaskHandler serves /api/task for the authenticated user.
type TaskHandler struct {
	taskService service.TaskService
	logger      *slog.Logger
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(taskService service.TaskService, logger *slog.Logger) *TaskHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for TaskHandler")
	}
	return &TaskHandler{
		taskService: taskService,
		logger:      logger.With(slog.String("component", "task_handler")),
	}
}

// CreateTask handles POST /api/task/create
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r, logger.FromContextOrDefault(r.Context(), h.logger))
	if !ok {
		return
	}

	var req CreateTaskRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	input := service.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		TagID:       req.TagID,
		DueDate:     req.DueDate,
	}
	if req.Priority != nil {
		priority, err := domain.ParseTaskPriority(*req.Priority)
		if err != nil {
			HandleAPIError(w, r, err, "")
			return
		}
		input.Priority = &priority
	}

	task, err := h.taskService.CreateTask(r.Context(), userID, input)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create task")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, taskToResponse(task))
}

// GetTask handles GET /api/task/task_id/{task_id}
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	userID, taskID, ok := handleUserIDAndPathUUID(w, r, "task_id", logger.FromContextOrDefault(r.Context(), h.logger))
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(r.Context(), userID, taskID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get task")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// UpdateTask handles PATCH /api/task/{task_id}
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	userID, taskID, ok := handleUserIDAndPathUUID(w, r, "task_id", logger.FromContextOrDefault(r.Context(), h.logger))
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	patch, err := req.toPatch()
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	task, err := h.taskService.UpdateTask(r.Context(), userID, taskID, patch)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update task")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

func (req UpdateTaskRequest) toPatch() (service.TaskPatch, error) {
	patch := service.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		TagID:       req.TagID,
		ClearTag:    req.ClearTag,
		DueDate:     req.DueDate,
	}
	if req.Priority != nil {
		priority, err := domain.ParseTaskPriority(*req.Priority)
		if err != nil {
			return service.TaskPatch{}, err
		}
		patch.Priority = &priority
	}
	if req.Status != nil {
		status, err := domain.ParseTaskStatus(*req.Status)
		if err != nil {
			return service.TaskPatch{}, err
		}
		patch.Status = &status
	}
	return patch, nil
}

// DeleteTask handles DELETE /api/task/{task_id}
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	userID, taskID, ok := handleUserIDAndPathUUID(w, r, "task_id", logger.FromContextOrDefault(r.Context(), h.logger))
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(r.Context(), userID, taskID); err != nil {
		HandleAPIError(w, r, err, "Failed to delete task")
		return
	}
	shared.RespondWithMessage(w, r, http.StatusOK, "Task deleted")
}

// ListTasks handles GET /api/task/all
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r, logger.FromContextOrDefault(r.Context(), h.logger))
	if !ok {
		return
	}

	tasks, err := h.taskService.ListTasks(r.Context(), userID)
	h.respondWithTasks(w, r, tasks, err)
}

// ListTasksByTag handles GET /api/task/tag/{tag_id}
func (h *TaskHandler) ListTasksByTag(w http.ResponseWriter, r *http.Request) {
	userID, tagID, ok := handleUserIDAndPathUUID(w, r, "tag_id", logger.FromContextOrDefault(r.Context(), h.logger))
	if !ok {
		return
	}

	tasks, err := h.taskService.ListTasksByTag(r.Context(), userID, tagID)
	h.respondWithTasks(w, r, tasks, err)
}

// ListTasksByStatus handles GET /api/task/status?status=
func (h *TaskHandler) ListTasksByStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r, logger.FromContextOrDefault(r.Context(), h.logger))
	if !ok {
		return
	}

	status, err := domain.ParseTaskStatus(r.URL.Query().Get("status"))
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	tasks, err := h.taskService.ListTasksByStatus(r.Context(), userID, status)
	h.respondWithTasks(w, r, tasks, err)
}

// ListTasksByPriority handles GET /api/task/priority?priority=
func (h *TaskHandler) ListTasksByPriority(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r, logger.FromContextOrDefault(r.Context(), h.logger))
	if !ok {
		return
	}

	priority, err := domain.ParseTaskPriority(r.URL.Query().Get("priority"))
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	tasks, err := h.taskService.ListTasksByPriority(r.Context(), userID, priority)
	h.respondWithTasks(w, r, tasks, err)
}

// SearchTasks handles GET /api/task/text?text=
func (h *TaskHandler) SearchTasks(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r, logger.FromContextOrDefault(r.Context(), h.logger))
	if !ok {
		return
	}

	text := strings.TrimSpace(r.URL.Query().Get("text"))
	tasks, err := h.taskService.SearchTasks(r.Context(), userID, text)
	h.respondWithTasks(w, r, tasks, err)
}

func (h *TaskHandler) respondWithTasks(w http.ResponseWriter, r *http.Request, tasks []*domain.Task, err error) {
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list tasks")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, tasksToResponse(tasks))
}
