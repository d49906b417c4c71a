package mocks

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// MockTaskStore implements store.TaskStore for testing. The default
// implementation is a small in-memory store with the same filter, sort,
// and ranking semantics as the SQL implementation, so handler and service
// tests can assert ordering without a database.
type MockTaskStore struct {
	// Function fields for customizable behavior
	CreateFn        func(ctx context.Context, task *domain.Task) error
	GetByIDFn       func(ctx context.Context, id int64) (*domain.Task, error)
	ListFn          func(ctx context.Context, ownerID int64, q store.TaskQuery) ([]*domain.Task, error)
	TopByPriorityFn func(ctx context.Context, ownerID int64, n int) ([]*domain.Task, error)
	UpdateFn        func(ctx context.Context, task *domain.Task) error
	DeleteFn        func(ctx context.Context, id int64) error

	// Call counters for cache-interaction assertions
	ListCalls          int
	TopByPriorityCalls int

	// Data for default implementation
	Tasks  map[int64]*domain.Task
	nextID int64
}

// Ensure MockTaskStore implements store.TaskStore
var _ store.TaskStore = (*MockTaskStore)(nil)

// NewMockTaskStore creates a new mock store with initialized defaults
func NewMockTaskStore() *MockTaskStore {
	return &MockTaskStore{
		Tasks: make(map[int64]*domain.Task),
	}
}

// Seed inserts a task directly, assigning an ID if missing.
func (m *MockTaskStore) Seed(task *domain.Task) *domain.Task {
	if task.ID == 0 {
		m.nextID++
		task.ID = m.nextID
	} else if task.ID > m.nextID {
		m.nextID = task.ID
	}
	if task.CreatedAt.IsZero() {
		task.CreatedAt = time.Now().UTC()
	}
	if task.UpdatedAt.IsZero() {
		task.UpdatedAt = task.CreatedAt
	}
	m.Tasks[task.ID] = task
	return task
}

// Create implements the TaskStore interface
func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, task)
	}

	m.nextID++
	task.ID = m.nextID
	now := time.Now().UTC()
	task.CreatedAt = now
	task.UpdatedAt = now
	m.Tasks[task.ID] = task
	return nil
}

// GetByID implements the TaskStore interface
func (m *MockTaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	if task, ok := m.Tasks[id]; ok {
		return task, nil
	}
	return nil, store.ErrTaskNotFound
}

// List implements the TaskStore interface
func (m *MockTaskStore) List(ctx context.Context, ownerID int64, q store.TaskQuery) ([]*domain.Task, error) {
	m.ListCalls++
	if m.ListFn != nil {
		return m.ListFn(ctx, ownerID, q)
	}

	q = q.Normalize()

	matched := []*domain.Task{}
	for _, task := range m.Tasks {
		if task.OwnerID != ownerID {
			continue
		}
		if q.Status != "" && string(task.Status) != q.Status {
			continue
		}
		if q.Search != "" {
			needle := strings.ToLower(q.Search)
			if !strings.Contains(strings.ToLower(task.Title), needle) &&
				!strings.Contains(strings.ToLower(task.Description), needle) {
				continue
			}
		}
		matched = append(matched, task)
	}

	sortTasks(matched, q.SortBy, q.SortOrder)

	if q.Skip >= len(matched) {
		return []*domain.Task{}, nil
	}
	matched = matched[q.Skip:]
	if len(matched) > q.Limit {
		matched = matched[:q.Limit]
	}
	return matched, nil
}

// TopByPriority implements the TaskStore interface
func (m *MockTaskStore) TopByPriority(ctx context.Context, ownerID int64, n int) ([]*domain.Task, error) {
	m.TopByPriorityCalls++
	if m.TopByPriorityFn != nil {
		return m.TopByPriorityFn(ctx, ownerID, n)
	}

	matched := []*domain.Task{}
	for _, task := range m.Tasks {
		if task.OwnerID == ownerID {
			matched = append(matched, task)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].Priority != matched[j].Priority {
			return matched[i].Priority > matched[j].Priority
		}
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.Before(matched[j].CreatedAt)
		}
		return matched[i].ID < matched[j].ID
	})

	if len(matched) > n {
		matched = matched[:n]
	}
	return matched, nil
}

// Update implements the TaskStore interface
func (m *MockTaskStore) Update(ctx context.Context, task *domain.Task) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, task)
	}

	if _, ok := m.Tasks[task.ID]; !ok {
		return store.ErrTaskNotFound
	}
	task.UpdatedAt = time.Now().UTC()
	m.Tasks[task.ID] = task
	return nil
}

// Delete implements the TaskStore interface
func (m *MockTaskStore) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	if _, ok := m.Tasks[id]; !ok {
		return store.ErrTaskNotFound
	}
	delete(m.Tasks, id)
	return nil
}

// sortTasks orders tasks the way the SQL list query does: by the
// allow-listed column with id ascending as the tie-break, falling back to
// id ascending for unknown columns.
func sortTasks(tasks []*domain.Task, sortBy, sortOrder string) {
	desc := sortOrder == store.TaskSortOrderDesc

	var less func(a, b *domain.Task) (lt, eq bool)
	switch sortBy {
	case "title":
		less = func(a, b *domain.Task) (bool, bool) { return a.Title < b.Title, a.Title == b.Title }
	case "status":
		less = func(a, b *domain.Task) (bool, bool) { return a.Status < b.Status, a.Status == b.Status }
	case "priority":
		less = func(a, b *domain.Task) (bool, bool) { return a.Priority < b.Priority, a.Priority == b.Priority }
	case "created_at":
		less = func(a, b *domain.Task) (bool, bool) {
			return a.CreatedAt.Before(b.CreatedAt), a.CreatedAt.Equal(b.CreatedAt)
		}
	case "updated_at":
		less = func(a, b *domain.Task) (bool, bool) {
			return a.UpdatedAt.Before(b.UpdatedAt), a.UpdatedAt.Equal(b.UpdatedAt)
		}
	case "id":
		less = func(a, b *domain.Task) (bool, bool) { return a.ID < b.ID, false }
	default:
		sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })
		return
	}

	sort.Slice(tasks, func(i, j int) bool {
		lt, eq := less(tasks[i], tasks[j])
		if eq {
			return tasks[i].ID < tasks[j].ID
		}
		if desc {
			return !lt
		}
		return lt
	})
}
