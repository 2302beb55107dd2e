package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/yukikurage/project-tasks-api/internal/models"
	"github.com/yukikurage/project-tasks-api/internal/repository"
	"github.com/yukikurage/project-tasks-api/internal/utils"
)

// TaskService handles task business logic. Access to a task is always decided
// through the owner of its project.
type TaskService struct {
	store repository.Store
}

// NewTaskService creates a new TaskService
func NewTaskService(store repository.Store) *TaskService {
	return &TaskService{store: store}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title       string
	Description string
	DueDate     *time.Time
}

// UpdateTaskInput represents input for updating a task.
// A nil DueDate leaves the stored due date unchanged.
type UpdateTaskInput struct {
	Title       string
	Description string
	DueDate     *time.Time
}

// Create adds a task to one of user's projects
func (s *TaskService) Create(ctx context.Context, projectID uint64, user *models.User, input CreateTaskInput) (*models.Task, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrTitleRequired
	}

	var task *models.Task
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		project, err := NewOwnershipGuard(tx).AuthorizeProjectForTasks(user, projectID)
		if err != nil {
			return err
		}

		task = &models.Task{
			Title:       input.Title,
			Description: input.Description,
			DueDate:     input.DueDate,
			ProjectID:   project.ID,
		}
		if err := tx.Tasks().Create(task); err != nil {
			return fmt.Errorf("failed to create task: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

// ListByProject returns every task of a project, newest first
func (s *TaskService) ListByProject(ctx context.Context, projectID uint64, user *models.User) ([]models.Task, error) {
	var tasks []models.Task
	err := s.store.ReadOnly(ctx, func(tx repository.Store) error {
		if _, err := NewOwnershipGuard(tx).AuthorizeProjectForTasks(user, projectID); err != nil {
			return err
		}

		found, err := tx.Tasks().ListByProjectID(projectID)
		if err != nil {
			return fmt.Errorf("failed to list tasks: %w", err)
		}
		tasks = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// ListByProjectPaginated returns one filtered page of a project's tasks
func (s *TaskService) ListByProjectPaginated(ctx context.Context, projectID uint64, user *models.User, query TaskQuery) (utils.Page[models.Task], error) {
	var page utils.Page[models.Task]
	err := s.store.ReadOnly(ctx, func(tx repository.Store) error {
		if _, err := NewOwnershipGuard(tx).AuthorizeProjectForTasks(user, projectID); err != nil {
			return err
		}

		result, err := paginateTasks(tx.Tasks(), projectID, query)
		if err != nil {
			return err
		}
		page = result
		return nil
	})
	if err != nil {
		return utils.Page[models.Task]{}, err
	}
	return page, nil
}

// Get returns a task of one of user's projects
func (s *TaskService) Get(ctx context.Context, taskID uint64, user *models.User) (*models.Task, error) {
	var task *models.Task
	err := s.store.ReadOnly(ctx, func(tx repository.Store) error {
		found, err := NewOwnershipGuard(tx).AuthorizeTask(user, taskID)
		if err != nil {
			return err
		}
		task = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

// Update overwrites title and description, and the due date only when one is given
func (s *TaskService) Update(ctx context.Context, taskID uint64, user *models.User, input UpdateTaskInput) (*models.Task, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrTitleRequired
	}

	return s.mutate(ctx, taskID, user, func(task *models.Task) {
		task.Title = input.Title
		task.Description = input.Description
		if input.DueDate != nil {
			task.DueDate = input.DueDate
		}
	})
}

// UpdateStatus sets the completed flag and nothing else
func (s *TaskService) UpdateStatus(ctx context.Context, taskID uint64, user *models.User, completed bool) (*models.Task, error) {
	return s.mutate(ctx, taskID, user, func(task *models.Task) {
		task.Completed = completed
	})
}

// Delete removes a task of one of user's projects
func (s *TaskService) Delete(ctx context.Context, taskID uint64, user *models.User) error {
	return s.store.Transaction(ctx, func(tx repository.Store) error {
		task, err := NewOwnershipGuard(tx).AuthorizeTask(user, taskID)
		if err != nil {
			return err
		}

		if err := tx.Tasks().Delete(task.ID); err != nil {
			return fmt.Errorf("failed to delete task: %w", err)
		}
		return nil
	})
}

// mutate authorizes, applies fn and saves the task within one transaction
func (s *TaskService) mutate(ctx context.Context, taskID uint64, user *models.User, fn func(task *models.Task)) (*models.Task, error) {
	var task *models.Task
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		found, err := NewOwnershipGuard(tx).AuthorizeTask(user, taskID)
		if err != nil {
			return err
		}

		fn(found)
		if err := tx.Tasks().Update(found); err != nil {
			return fmt.Errorf("failed to update task: %w", err)
		}
		task = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}
