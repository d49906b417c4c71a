package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/taskdeck/taskdeck-api/internal/api/shared"
	"github.com/taskdeck/taskdeck-api/internal/cache"
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/service"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// TaskHandler handles task-related API requests. The read-only list
// endpoints are wrapped by the response cache; mutations go straight to
// the service and do not invalidate cached entries (staleness up to the
// cache TTL is accepted).
type TaskHandler struct {
	taskService *service.TaskService
	cache       cache.Cache
	cacheTTL    time.Duration
	validator   *validator.Validate
}

// NewTaskHandler creates a new TaskHandler with the given dependencies.
func NewTaskHandler(taskService *service.TaskService, responseCache cache.Cache, cacheTTL time.Duration) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		cache:       responseCache,
		cacheTTL:    cacheTTL,
		validator:   validator.New(),
	}
}

// Create handles POST /tasks/.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req CreateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	task, err := h.taskService.Create(r.Context(), user.ID, service.CreateTaskParams{
		Title:       req.Title,
		Description: req.Description,
		Status:      domain.TaskStatus(req.Status),
		Priority:    req.Priority,
	})
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewTaskResponse(task))
}

// List handles GET /tasks/. Results are cached per identity and full
// parameter tuple for the configured TTL.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	q := taskQueryFromRequest(r)

	key := cache.Key("tasks:list",
		strconv.FormatInt(user.ID, 10),
		fmt.Sprintf("skip=%d", q.Skip),
		fmt.Sprintf("limit=%d", q.Limit),
		"sort_by="+q.SortBy,
		"sort_order="+q.SortOrder,
		"search="+q.Search,
		"status="+q.Status,
	)

	body, err := h.cache.GetOrCompute(r.Context(), key, h.cacheTTL, func(ctx context.Context) ([]byte, error) {
		tasks, err := h.taskService.List(ctx, user.ID, q)
		if err != nil {
			return nil, err
		}
		return json.Marshal(NewTaskListResponse(tasks))
	})
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithRaw(w, r, http.StatusOK, body)
}

// TopPriority handles GET /tasks/top_priority/. Cached identically to List.
func (h *TaskHandler) TopPriority(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	n := intQueryParam(r, "n", store.DefaultTopN)

	key := cache.Key("tasks:top_priority",
		strconv.FormatInt(user.ID, 10),
		fmt.Sprintf("n=%d", n),
	)

	body, err := h.cache.GetOrCompute(r.Context(), key, h.cacheTTL, func(ctx context.Context) ([]byte, error) {
		tasks, err := h.taskService.TopPriority(ctx, user.ID, n)
		if err != nil {
			return nil, err
		}
		return json.Marshal(NewTaskListResponse(tasks))
	})
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithRaw(w, r, http.StatusOK, body)
}

// Get handles GET /tasks/{id}.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	taskID, ok := taskIDFromURL(w, r)
	if !ok {
		return
	}

	task, err := h.taskService.Get(r.Context(), user.ID, taskID)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewTaskResponse(task))
}

// Update handles PUT /tasks/{id}.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	taskID, ok := taskIDFromURL(w, r)
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	params := service.UpdateTaskParams{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
	}
	if req.Status != nil {
		status := domain.TaskStatus(*req.Status)
		params.Status = &status
	}

	task, err := h.taskService.Update(r.Context(), user.ID, taskID, params)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewTaskResponse(task))
}

// Delete handles DELETE /tasks/{id}. Responds with the deleted task's
// last representation.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	taskID, ok := taskIDFromURL(w, r)
	if !ok {
		return
	}

	task, err := h.taskService.Delete(r.Context(), user.ID, taskID)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewTaskResponse(task))
}

// requireUser extracts the authenticated user placed in the context by
// the auth middleware. Answers 401 itself when absent.
func requireUser(w http.ResponseWriter, r *http.Request) (*domain.User, bool) {
	user, ok := shared.UserFromContext(r.Context())
	if !ok {
		w.Header().Set("WWW-Authenticate", "Bearer")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Not authenticated")
		return nil, false
	}
	return user, true
}

// taskQueryFromRequest builds the list query from URL parameters.
// Unparsable numbers fall back to their defaults; the endpoint stays
// permissive rather than erroring.
func taskQueryFromRequest(r *http.Request) store.TaskQuery {
	params := r.URL.Query()
	return store.TaskQuery{
		Skip:      intQueryParam(r, "skip", 0),
		Limit:     intQueryParam(r, "limit", store.DefaultListLimit),
		SortBy:    params.Get("sort_by"),
		SortOrder: params.Get("sort_order"),
		Search:    params.Get("search"),
		Status:    params.Get("status"),
	}.Normalize()
}

// intQueryParam parses an integer query parameter, returning the default
// when absent or malformed.
func intQueryParam(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}

// taskIDFromURL parses the {id} URL parameter. Answers 404 itself for
// non-numeric ids, which cannot name any task.
func taskIDFromURL(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusNotFound, "Task not found")
		return 0, false
	}
	return id, true
}
