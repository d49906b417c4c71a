package store

import (
	"context"

	"github.com/taskdeck/taskdeck-api/internal/domain"
)

// Task list defaults and guards.
const (
	// DefaultListLimit is applied when a query does not specify a limit.
	DefaultListLimit = 100

	// MaxListLimit caps a single list query to guard against unbounded scans.
	MaxListLimit = 500

	// DefaultTopN is the number of tasks returned by a priority ranking
	// query that does not specify one.
	DefaultTopN = 5
)

// TaskSortOrderDesc is the only sort order token with a meaning of its own;
// any other value sorts ascending.
const TaskSortOrderDesc = "desc"

// TaskQuery carries the filter, search, sort, and pagination parameters of
// a task list query. The owner scope is passed separately and is always
// applied; nothing in TaskQuery can widen it.
type TaskQuery struct {
	// Skip is the number of matching rows to skip (non-negative).
	Skip int

	// Limit bounds the result size. Zero means DefaultListLimit; values
	// above MaxListLimit are clamped.
	Limit int

	// SortBy names the attribute to order by. Unknown values fall back to
	// the default deterministic order (id ascending) rather than erroring.
	SortBy string

	// SortOrder is "asc" or "desc". Unrecognized values behave as "asc".
	SortOrder string

	// Search, when non-empty, restricts results to tasks whose title or
	// description contains the value, case-insensitively.
	Search string

	// Status, when non-empty, restricts results to tasks with this status.
	Status string
}

// Normalize returns a copy of the query with pagination defaults and
// guards applied.
func (q TaskQuery) Normalize() TaskQuery {
	if q.Skip < 0 {
		q.Skip = 0
	}
	if q.Limit <= 0 {
		q.Limit = DefaultListLimit
	}
	if q.Limit > MaxListLimit {
		q.Limit = MaxListLimit
	}
	return q
}

// TaskStore defines the interface for task data persistence.
type TaskStore interface {
	// Create saves a new task to the store and fills in the generated ID
	// and timestamps.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its unique ID regardless of owner.
	// Ownership checks are the caller's responsibility.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Task, error)

	// List returns the owner's tasks matching the query, ordered per the
	// query's sort parameters with id ascending as the tie-break.
	// An empty result is a valid result, not an error.
	List(ctx context.Context, ownerID int64, q TaskQuery) ([]*domain.Task, error)

	// TopByPriority returns the owner's n highest-priority tasks ordered
	// by priority descending, with earlier creation time and then lower id
	// breaking ties, so repeated calls with unchanged data are stable.
	TopByPriority(ctx context.Context, ownerID int64, n int) ([]*domain.Task, error)

	// Update persists the task's mutable fields (title, description,
	// status, priority) and refreshes the updated timestamp.
	// Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes a task from the store by its ID.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id int64) error
}
