package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/platform/logger"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// taskColumns is the column list shared by all task queries.
const taskColumns = "id, owner_id, title, description, status, priority, created_at, updated_at"

// sortColumns is the allow-list of task attributes a list query may order
// by. Anything else falls back to the default deterministic order.
var sortColumns = map[string]string{
	"id":         "id",
	"title":      "title",
	"status":     "status",
	"priority":   "priority",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

// TaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
type TaskStore struct {
	db store.DBTX
}

// NewTaskStore creates a new PostgreSQL implementation of the TaskStore
// interface.
func NewTaskStore(db store.DBTX) *TaskStore {
	return &TaskStore{
		db: db,
	}
}

// Ensure TaskStore implements store.TaskStore interface
var _ store.TaskStore = (*TaskStore)(nil)

// Create implements store.TaskStore.Create
func (s *TaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContext(ctx)

	if err := task.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO tasks (owner_id, title, description, status, priority)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		task.OwnerID,
		task.Title,
		task.Description,
		task.Status,
		task.Priority,
	).Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		log.Error("failed to insert task", "owner_id", task.OwnerID, "error", err)
		return fmt.Errorf("failed to insert task: %w", err)
	}

	return nil
}

// GetByID implements store.TaskStore.GetByID
func (s *TaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	log := logger.FromContext(ctx)

	query := fmt.Sprintf("SELECT %s FROM tasks WHERE id = $1", taskColumns)

	var task domain.Task
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&task.ID,
		&task.OwnerID,
		&task.Title,
		&task.Description,
		&task.Status,
		&task.Priority,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to query task by id", "task_id", id, "error", err)
		return nil, fmt.Errorf("failed to query task by id: %w", err)
	}

	return &task, nil
}

// List implements store.TaskStore.List. The owner predicate is always the
// first condition; query parameters can only narrow the result further.
func (s *TaskStore) List(ctx context.Context, ownerID int64, q store.TaskQuery) ([]*domain.Task, error) {
	log := logger.FromContext(ctx)
	q = q.Normalize()

	query := fmt.Sprintf("SELECT %s FROM tasks WHERE owner_id = $1", taskColumns)
	args := []any{ownerID}

	if q.Status != "" {
		args = append(args, q.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}

	if q.Search != "" {
		args = append(args, "%"+q.Search+"%")
		query += fmt.Sprintf(" AND (title ILIKE $%d OR description ILIKE $%d)", len(args), len(args))
	}

	query += " ORDER BY " + orderClause(q.SortBy, q.SortOrder)

	args = append(args, q.Limit)
	query += fmt.Sprintf(" LIMIT $%d", len(args))
	args = append(args, q.Skip)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	tasks, err := s.queryTasks(ctx, query, args...)
	if err != nil {
		log.Error("failed to list tasks", "owner_id", ownerID, "error", err)
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, nil
}

// TopByPriority implements store.TaskStore.TopByPriority
func (s *TaskStore) TopByPriority(ctx context.Context, ownerID int64, n int) ([]*domain.Task, error) {
	log := logger.FromContext(ctx)

	query := fmt.Sprintf(`
		SELECT %s FROM tasks
		WHERE owner_id = $1
		ORDER BY priority DESC, created_at ASC, id ASC
		LIMIT $2
	`, taskColumns)

	tasks, err := s.queryTasks(ctx, query, ownerID, n)
	if err != nil {
		log.Error("failed to query top priority tasks", "owner_id", ownerID, "error", err)
		return nil, fmt.Errorf("failed to query top priority tasks: %w", err)
	}

	return tasks, nil
}

// Update implements store.TaskStore.Update
func (s *TaskStore) Update(ctx context.Context, task *domain.Task) error {
	log := logger.FromContext(ctx)

	if err := task.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	query := `
		UPDATE tasks
		SET title = $1, description = $2, status = $3, priority = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		task.Title,
		task.Description,
		task.Status,
		task.Priority,
		task.ID,
	).Scan(&task.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return store.ErrTaskNotFound
		}
		log.Error("failed to update task", "task_id", task.ID, "error", err)
		return fmt.Errorf("failed to update task: %w", err)
	}

	return nil
}

// Delete implements store.TaskStore.Delete
func (s *TaskStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	result, err := s.db.ExecContext(ctx, "DELETE FROM tasks WHERE id = $1", id)
	if err != nil {
		log.Error("failed to delete task", "task_id", id, "error", err)
		return fmt.Errorf("failed to delete task: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return store.ErrTaskNotFound
	}

	return nil
}

// queryTasks runs a multi-row task query and scans the results.
func (s *TaskStore) queryTasks(ctx context.Context, query string, args ...any) ([]*domain.Task, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	tasks := []*domain.Task{}
	for rows.Next() {
		var task domain.Task
		if err := rows.Scan(
			&task.ID,
			&task.OwnerID,
			&task.Title,
			&task.Description,
			&task.Status,
			&task.Priority,
			&task.CreatedAt,
			&task.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan task row: %w", err)
		}
		tasks = append(tasks, &task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating task rows: %w", err)
	}

	return tasks, nil
}

// orderClause builds the ORDER BY clause for a list query from the
// allow-listed sort column and direction. Unknown columns fall back to id
// ascending; id ascending is always appended as the tie-break so the
// ordering is deterministic.
func orderClause(sortBy, sortOrder string) string {
	column, ok := sortColumns[sortBy]
	if !ok {
		return "id ASC"
	}

	direction := "ASC"
	if sortOrder == store.TaskSortOrderDesc {
		direction = "DESC"
	}

	if column == "id" {
		return "id " + direction
	}
	return fmt.Sprintf("%s %s, id ASC", column, direction)
}
