package services

import (
	"errors"
	"fmt"
)

// Error kinds. Every sentinel below wraps exactly one of them, so callers can
// branch on the kind with errors.Is and still tell projects from tasks.
var (
	ErrNotFound     = errors.New("not found")
	ErrAccessDenied = errors.New("access denied")
	ErrValidation   = errors.New("validation failed")
)

var (
	ErrProjectNotFound = fmt.Errorf("project %w", ErrNotFound)
	ErrTaskNotFound    = fmt.Errorf("task %w", ErrNotFound)

	ErrProjectAccessDenied = fmt.Errorf("%w: you can only manage tasks of projects you own", ErrAccessDenied)
	ErrTaskAccessDenied    = fmt.Errorf("%w: task belongs to another user's project", ErrAccessDenied)

	ErrTitleRequired     = fmt.Errorf("%w: title is required", ErrValidation)
	ErrInvalidPagination = fmt.Errorf("%w: page must be >= 0 and size must be > 0", ErrValidation)

	// ErrIdentityInconsistency means a verified principal has no backing account.
	ErrIdentityInconsistency = fmt.Errorf("authenticated user %w", ErrNotFound)
)
