package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/taskhive/taskhive-server/internal/logger"
	"github.com/taskhive/taskhive-server/internal/model"
)

// TaskService handles owner-scoped task operations.
type TaskService interface {
	Create(ctx context.Context, ownerID uuid.UUID, description string, completed bool) (model.Task, error)
	List(ctx context.Context, ownerID uuid.UUID, opts model.TaskListOptions) ([]model.Task, error)
	Get(ctx context.Context, id, ownerID uuid.UUID) (model.Task, error)
	Update(ctx context.Context, id, ownerID uuid.UUID, update model.TaskUpdate) (model.Task, error)
	Delete(ctx context.Context, id, ownerID uuid.UUID) (model.Task, error)
	DeleteAll(ctx context.Context, ownerID uuid.UUID) error
	SetImage(ctx context.Context, id, ownerID uuid.UUID, filename string, r io.Reader) error
	GetImage(ctx context.Context, id, ownerID uuid.UUID) (io.ReadCloser, error)
	DeleteImage(ctx context.Context, id, ownerID uuid.UUID) error
}

// Task exposes HTTP endpoints for the caller's tasks. The owner on every
// operation is the authenticated caller; a client-supplied owner field is
// never consulted.
type Task struct {
	service        TaskService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewTask creates a new Task handler instance.
func NewTask(service TaskService, contextManager model.ContextManager, logger *logger.Logger) *Task {
	return &Task{service: service, contextManager: contextManager, logger: logger}
}

type createTaskRequest struct {
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

// Create handles POST /tasks.
func (h *Task) Create(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.contextManager.GetUserID(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthorized)
		return
	}

	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: errInvalidPayload.Error()})
		return
	}

	task, err := h.service.Create(r.Context(), ownerID, req.Description, req.Completed)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, newTaskView(task))
}

// List handles GET /tasks with completed, limit, page and sortBy query
// parameters.
func (h *Task) List(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.contextManager.GetUserID(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthorized)
		return
	}

	opts, err := parseListOptions(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	tasks, err := h.service.List(r.Context(), ownerID, opts)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, newTaskViews(tasks))
}

// Get handles GET /tasks/{id}.
func (h *Task) Get(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.contextManager.GetUserID(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthorized)
		return
	}

	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	task, err := h.service.Get(r.Context(), id, ownerID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, newTaskView(task))
}

// Update handles PATCH /tasks/{id}.
func (h *Task) Update(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.contextManager.GetUserID(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthorized)
		return
	}

	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	raw, err := decodeAllowed(r, model.TaskAllowedUpdates)
	if err != nil {
		writeError(w, err)
		return
	}

	var update model.TaskUpdate
	if update.Description, err = unmarshalField[string](raw, "description"); err != nil {
		writeError(w, err)
		return
	}
	if update.Completed, err = unmarshalField[bool](raw, "completed"); err != nil {
		writeError(w, err)
		return
	}

	task, err := h.service.Update(r.Context(), id, ownerID, update)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, newTaskView(task))
}

// Delete handles DELETE /tasks/{id} and returns the deleted task.
func (h *Task) Delete(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.contextManager.GetUserID(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthorized)
		return
	}

	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	task, err := h.service.Delete(r.Context(), id, ownerID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, newTaskView(task))
}

// DeleteAll handles DELETE /tasks.
func (h *Task) DeleteAll(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.contextManager.GetUserID(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthorized)
		return
	}

	if err := h.service.DeleteAll(r.Context(), ownerID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, struct{}{})
}

// SetImage handles POST /tasks/{id}/img.
func (h *Task) SetImage(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.contextManager.GetUserID(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthorized)
		return
	}

	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	file, filename, err := formImage(w, r, "image")
	if err != nil {
		writeError(w, err)
		return
	}
	defer file.Close()

	if err := h.service.SetImage(r.Context(), id, ownerID, filename, file); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, struct{}{})
}

// GetImage handles GET /tasks/{id}/img and serves the stored PNG.
func (h *Task) GetImage(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.contextManager.GetUserID(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthorized)
		return
	}

	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	img, err := h.service.GetImage(r.Context(), id, ownerID)
	if err != nil {
		writeError(w, err)
		return
	}
	defer img.Close()

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, img); err != nil {
		h.logger.Error("task handler: failed to stream image", "error", err.Error())
	}
}

// DeleteImage handles DELETE /tasks/{id}/img.
func (h *Task) DeleteImage(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.contextManager.GetUserID(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthorized)
		return
	}

	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.service.DeleteImage(r.Context(), id, ownerID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, struct{}{})
}

func parseListOptions(r *http.Request) (model.TaskListOptions, error) {
	q := r.URL.Query()
	var opts model.TaskListOptions

	if v := q.Get("completed"); v != "" {
		completed := v == "true"
		opts.Completed = &completed
	}

	if v := q.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 0 {
			return model.TaskListOptions{}, errInvalidPayload
		}
		opts.Limit = limit
	}

	if v := q.Get("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil || page < 1 {
			return model.TaskListOptions{}, errInvalidPayload
		}
		opts.Page = page
	}

	if v := q.Get("sortBy"); v != "" {
		field, dir, _ := strings.Cut(v, ":")
		opts.SortBy = field
		if dir == "desc" {
			opts.SortDir = model.SortDesc
		} else {
			opts.SortDir = model.SortAsc
		}
	}

	return opts, nil
}
