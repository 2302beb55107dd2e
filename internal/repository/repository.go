package repository

import (
	"context"

	"github.com/yukikurage/project-tasks-api/internal/models"
	"github.com/yukikurage/project-tasks-api/internal/utils"
)

// Store groups the repositories that share one database handle. Repositories
// obtained from the Store passed to a Transaction/ReadOnly callback run inside
// that transaction.
type Store interface {
	Users() UserRepository
	Projects() ProjectRepository
	Tasks() TaskRepository

	// Transaction runs fn in a read-write transaction, rolled back if fn fails
	Transaction(ctx context.Context, fn func(tx Store) error) error

	// ReadOnly runs fn in a read-only transaction
	ReadOnly(ctx context.Context, fn func(tx Store) error) error
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// ExistsByEmail reports whether an account uses the email
	ExistsByEmail(email string) (bool, error)

	// ExistsByUsername reports whether an account uses the username
	ExistsByUsername(username string) (bool, error)
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// Create creates a new project
	Create(project *models.Project) error

	// ExistsByID reports whether a project exists, regardless of owner
	ExistsByID(id uint64) (bool, error)

	// FindByIDAndUserID finds a project by ID scoped to its owner in one query
	FindByIDAndUserID(id, userID uint64, preload ...string) (*models.Project, error)

	// ListByUserID lists all projects of a user in creation order, tasks preloaded
	ListByUserID(userID uint64) ([]models.Project, error)

	// PageByUserID lists one page of a user's projects, tasks preloaded
	PageByUserID(userID uint64, params utils.PaginationParams) ([]models.Project, int64, error)

	// Update saves the project's own columns
	Update(project *models.Project) error

	// Delete deletes a project together with all of its tasks
	Delete(id uint64) error
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// ListByProjectID lists every task of a project, newest first
	ListByProjectID(projectID uint64) ([]models.Task, error)

	// List retrieves tasks with filtering and pagination, newest first
	List(filter TaskFilter) ([]models.Task, int64, error)

	// CountByProjectID counts the tasks of a project
	CountByProjectID(projectID uint64) (int64, error)

	// Update saves the task's own columns
	Update(task *models.Task) error

	// Delete deletes a task
	Delete(id uint64) error
}

// TaskFilter holds filtering options for listing tasks of one project
type TaskFilter struct {
	ProjectID uint64
	// Search is matched case-insensitively against title or description; empty disables it
	Search     string
	Completed  *bool
	Pagination utils.PaginationParams
}
