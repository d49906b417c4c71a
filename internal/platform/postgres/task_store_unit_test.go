package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderClause(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		sortBy    string
		sortOrder string
		want      string
	}{
		{"empty falls back to id", "", "", "id ASC"},
		{"unknown column falls back to id", "owner_id; DROP TABLE tasks", "desc", "id ASC"},
		{"priority desc", "priority", "desc", "priority DESC, id ASC"},
		{"priority default order is asc", "priority", "", "priority ASC, id ASC"},
		{"unrecognized order behaves as asc", "title", "descending", "title ASC, id ASC"},
		{"created_at desc", "created_at", "desc", "created_at DESC, id ASC"},
		{"id desc", "id", "desc", "id DESC"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, orderClause(tt.sortBy, tt.sortOrder))
		})
	}
}
