package domain

import (
	"errors"
	"time"
)

// Common task validation errors
var (
	ErrEmptyTaskTitle    = errors.New("task title cannot be empty")
	ErrEmptyTaskOwner    = errors.New("task owner cannot be empty")
	ErrInvalidTaskStatus = errors.New("invalid task status")
	ErrInvalidPriority   = errors.New("task priority must be positive")
)

// TaskStatus represents the lifecycle state of a task.
type TaskStatus string

// Valid task statuses.
const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusDone       TaskStatus = "done"
)

// DefaultPriority is assigned to tasks created without an explicit priority.
const DefaultPriority = 1

// IsValid reports whether s is one of the known task statuses.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusDone:
		return true
	}
	return false
}

// Task represents a single to-do item owned by exactly one user.
// Only the owner may read, modify, or delete it.
type Task struct {
	ID          int64      `json:"id"`
	OwnerID     int64      `json:"owner_id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      TaskStatus `json:"status"`
	Priority    int        `json:"priority"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// NewTask creates a new Task for the given owner. A zero priority is
// replaced with DefaultPriority and an empty status with
// TaskStatusPending. The numeric ID and timestamps are assigned by the
// store when the task is persisted. Returns an error if validation fails.
func NewTask(ownerID int64, title, description string, status TaskStatus, priority int) (*Task, error) {
	if status == "" {
		status = TaskStatusPending
	}
	if priority == 0 {
		priority = DefaultPriority
	}

	task := &Task{
		OwnerID:     ownerID,
		Title:       title,
		Description: description,
		Status:      status,
		Priority:    priority,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
// Returns an error if any field fails validation.
func (t *Task) Validate() error {
	if t.OwnerID == 0 {
		return ErrEmptyTaskOwner
	}

	if t.Title == "" {
		return ErrEmptyTaskTitle
	}

	if !t.Status.IsValid() {
		return ErrInvalidTaskStatus
	}

	if t.Priority < 1 {
		return ErrInvalidPriority
	}

	return nil
}
