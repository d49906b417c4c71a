package service

import "errors"

// Common service errors
var (
	// ErrTaskNotOwned indicates the task exists but belongs to a different
	// user. Kept distinct from the store's not-found error: single-task
	// operations deliberately reveal existence, matching REST semantics.
	ErrTaskNotOwned = errors.New("task not owned by user")
)
