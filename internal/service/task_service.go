package service

import (
	"context"
	"fmt"

	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/platform/logger"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// TaskService implements the task operations exposed over the API: create,
// list (filter/sort/search/paginate), priority ranking, and the
// ownership-gated single-task read, update, and delete.
type TaskService struct {
	taskStore store.TaskStore
}

// NewTaskService creates a new TaskService with the given dependencies.
func NewTaskService(taskStore store.TaskStore) *TaskService {
	return &TaskService{
		taskStore: taskStore,
	}
}

// CreateTaskParams carries the fields of a task creation request.
// A nil Priority means "not provided" and defaults to domain.DefaultPriority.
type CreateTaskParams struct {
	Title       string
	Description string
	Status      domain.TaskStatus
	Priority    *int
}

// UpdateTaskParams carries the fields of a task update request.
// Nil fields are left unchanged.
type UpdateTaskParams struct {
	Title       *string
	Description *string
	Status      *domain.TaskStatus
	Priority    *int
}

// Create stores a new task for the owner, applying the default priority
// when none was provided.
func (s *TaskService) Create(ctx context.Context, ownerID int64, params CreateTaskParams) (*domain.Task, error) {
	// A nil Priority means "not provided" and lets NewTask apply the
	// default. An explicit out-of-range value is rejected, never silently
	// promoted.
	priority := 0
	if params.Priority != nil {
		if *params.Priority < 1 {
			return nil, fmt.Errorf("%w: %w", store.ErrInvalidEntity, domain.ErrInvalidPriority)
		}
		priority = *params.Priority
	}

	task, err := domain.NewTask(ownerID, params.Title, params.Description, params.Status, priority)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	if err := s.taskStore.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	logger.FromContext(ctx).Debug("task created",
		"task_id", task.ID,
		"owner_id", ownerID,
		"priority", task.Priority)

	return task, nil
}

// List returns the owner's tasks matching the query. The owner scope is
// applied unconditionally by the store; an empty result is a valid,
// successful result. This is a pure read.
func (s *TaskService) List(ctx context.Context, ownerID int64, q store.TaskQuery) ([]*domain.Task, error) {
	return s.taskStore.List(ctx, ownerID, q)
}

// TopPriority returns the owner's n highest-priority tasks. Ties are broken
// by earlier creation time and then lower id, so repeated calls with
// unchanged data are stable. Zero or negative n selects the default.
func (s *TaskService) TopPriority(ctx context.Context, ownerID int64, n int) ([]*domain.Task, error) {
	if n <= 0 {
		n = store.DefaultTopN
	}
	return s.taskStore.TopByPriority(ctx, ownerID, n)
}

// Get fetches a single task by id on behalf of the owner.
// Returns store.ErrTaskNotFound for unknown ids and ErrTaskNotOwned when
// the task belongs to someone else.
func (s *TaskService) Get(ctx context.Context, ownerID, taskID int64) (*domain.Task, error) {
	return s.authorize(ctx, ownerID, taskID)
}

// Update applies a partial update to the owner's task and returns the
// updated representation. Same not-found/not-owned rules as Get.
func (s *TaskService) Update(ctx context.Context, ownerID, taskID int64, params UpdateTaskParams) (*domain.Task, error) {
	task, err := s.authorize(ctx, ownerID, taskID)
	if err != nil {
		return nil, err
	}

	if params.Title != nil {
		task.Title = *params.Title
	}
	if params.Description != nil {
		task.Description = *params.Description
	}
	if params.Status != nil {
		task.Status = *params.Status
	}
	if params.Priority != nil {
		task.Priority = *params.Priority
	}

	if err := task.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	if err := s.taskStore.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

// Delete removes the owner's task and returns its last representation.
// Same not-found/not-owned rules as Get.
func (s *TaskService) Delete(ctx context.Context, ownerID, taskID int64) (*domain.Task, error) {
	task, err := s.authorize(ctx, ownerID, taskID)
	if err != nil {
		return nil, err
	}

	if err := s.taskStore.Delete(ctx, taskID); err != nil {
		return nil, fmt.Errorf("failed to delete task: %w", err)
	}

	logger.FromContext(ctx).Debug("task deleted", "task_id", taskID, "owner_id", ownerID)

	return task, nil
}

// authorize fetches the task and enforces the ownership gate applied to
// every single-task operation.
func (s *TaskService) authorize(ctx context.Context, ownerID, taskID int64) (*domain.Task, error) {
	task, err := s.taskStore.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if task.OwnerID != ownerID {
		return nil, ErrTaskNotOwned
	}

	return task, nil
}
