package services

import (
	"errors"
	"fmt"

	"github.com/yukikurage/project-tasks-api/internal/models"
	"github.com/yukikurage/project-tasks-api/internal/repository"
	"gorm.io/gorm"
)

// OwnershipGuard decides whether a user may touch a project or task. It is
// bound to the transaction of the operation it protects, so the check and the
// mutation that follows see the same rows.
type OwnershipGuard struct {
	store repository.Store
}

// NewOwnershipGuard creates an OwnershipGuard over a transaction-scoped store.
func NewOwnershipGuard(store repository.Store) *OwnershipGuard {
	return &OwnershipGuard{store: store}
}

// AuthorizeProject loads a project owned by user in a single scoped lookup.
// Missing and foreign projects both yield ErrProjectNotFound.
func (g *OwnershipGuard) AuthorizeProject(user *models.User, projectID uint64, preload ...string) (*models.Project, error) {
	project, err := g.store.Projects().FindByIDAndUserID(projectID, user.ID, preload...)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return project, nil
}

// AuthorizeProjectForTasks is the check used before creating or listing tasks
// under a project: a missing project is ErrProjectNotFound, a project owned by
// someone else is ErrProjectAccessDenied.
func (g *OwnershipGuard) AuthorizeProjectForTasks(user *models.User, projectID uint64) (*models.Project, error) {
	exists, err := g.store.Projects().ExistsByID(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to check project: %w", err)
	}
	if !exists {
		return nil, ErrProjectNotFound
	}

	project, err := g.store.Projects().FindByIDAndUserID(projectID, user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectAccessDenied
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return project, nil
}

// AuthorizeTask loads a task by id and grants access only if its project is
// owned by user. Task ownership is always decided through the project.
func (g *OwnershipGuard) AuthorizeTask(user *models.User, taskID uint64) (*models.Task, error) {
	task, err := g.store.Tasks().FindByID(taskID, "Project")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if task.Project.ID == 0 || task.Project.UserID != user.ID {
		return nil, ErrTaskAccessDenied
	}

	return task, nil
}
