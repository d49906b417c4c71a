package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTask(t *testing.T) {
	t.Parallel()

	t.Run("applies defaults", func(t *testing.T) {
		t.Parallel()
		task, err := NewTask(42, "write report", "", "", 0)
		require.NoError(t, err)

		assert.Equal(t, int64(42), task.OwnerID)
		assert.Equal(t, TaskStatusPending, task.Status)
		assert.Equal(t, DefaultPriority, task.Priority)
	})

	t.Run("keeps explicit values", func(t *testing.T) {
		t.Parallel()
		task, err := NewTask(42, "write report", "quarterly numbers", TaskStatusInProgress, 7)
		require.NoError(t, err)

		assert.Equal(t, TaskStatusInProgress, task.Status)
		assert.Equal(t, 7, task.Priority)
		assert.Equal(t, "quarterly numbers", task.Description)
	})

	tests := []struct {
		name     string
		ownerID  int64
		title    string
		status   TaskStatus
		priority int
		wantErr  error
	}{
		{"missing owner", 0, "title", TaskStatusPending, 1, ErrEmptyTaskOwner},
		{"missing title", 42, "", TaskStatusPending, 1, ErrEmptyTaskTitle},
		{"unknown status", 42, "title", TaskStatus("archived"), 1, ErrInvalidTaskStatus},
		{"negative priority", 42, "title", TaskStatusPending, -3, ErrInvalidPriority},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			task, err := NewTask(tt.ownerID, tt.title, "", tt.status, tt.priority)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, task)
		})
	}
}

func TestTaskStatusIsValid(t *testing.T) {
	t.Parallel()

	assert.True(t, TaskStatusPending.IsValid())
	assert.True(t, TaskStatusInProgress.IsValid())
	assert.True(t, TaskStatusDone.IsValid())
	assert.False(t, TaskStatus("").IsValid())
	assert.False(t, TaskStatus("PENDING").IsValid())
}
