package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/yukikurage/project-tasks-api/internal/models"
	"github.com/yukikurage/project-tasks-api/internal/repository"
	"github.com/yukikurage/project-tasks-api/internal/utils"
)

// ProjectService provides business logic for project operations.
// Every method takes the requesting user explicitly and only ever sees that
// user's projects.
type ProjectService struct {
	store repository.Store
}

// NewProjectService creates a new ProjectService.
func NewProjectService(store repository.Store) *ProjectService {
	return &ProjectService{store: store}
}

// ProjectInput holds the mutable fields of a project.
type ProjectInput struct {
	Title       string
	Description string
}

func (in ProjectInput) validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return ErrTitleRequired
	}
	return nil
}

// Create creates a project owned by user.
func (s *ProjectService) Create(ctx context.Context, user *models.User, input ProjectInput) (*ProjectSummary, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	project := &models.Project{
		Title:       input.Title,
		Description: input.Description,
		UserID:      user.ID,
	}

	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		if err := tx.Projects().Create(project); err != nil {
			return fmt.Errorf("failed to create project: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	summary := summarize(*project)
	return &summary, nil
}

// List returns every project of user in creation order.
func (s *ProjectService) List(ctx context.Context, user *models.User) ([]ProjectSummary, error) {
	var summaries []ProjectSummary
	err := s.store.ReadOnly(ctx, func(tx repository.Store) error {
		projects, err := tx.Projects().ListByUserID(user.ID)
		if err != nil {
			return fmt.Errorf("failed to list projects: %w", err)
		}

		summaries = make([]ProjectSummary, len(projects))
		for i, project := range projects {
			summaries[i] = summarize(project)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return summaries, nil
}

// ListPaginated returns one page of user's projects in creation order.
func (s *ProjectService) ListPaginated(ctx context.Context, user *models.User, page, size int) (utils.Page[ProjectSummary], error) {
	params := utils.PaginationParams{Page: page, Size: size}
	if !params.Valid() {
		return utils.Page[ProjectSummary]{}, ErrInvalidPagination
	}

	var result utils.Page[ProjectSummary]
	err := s.store.ReadOnly(ctx, func(tx repository.Store) error {
		projects, total, err := tx.Projects().PageByUserID(user.ID, params)
		if err != nil {
			return fmt.Errorf("failed to list projects: %w", err)
		}

		result = utils.MapPage(utils.NewPage(projects, params, total), summarize)
		return nil
	})
	if err != nil {
		return utils.Page[ProjectSummary]{}, err
	}
	return result, nil
}

// Get returns one of user's projects.
func (s *ProjectService) Get(ctx context.Context, user *models.User, projectID uint64) (*ProjectSummary, error) {
	var summary ProjectSummary
	err := s.store.ReadOnly(ctx, func(tx repository.Store) error {
		project, err := NewOwnershipGuard(tx).AuthorizeProject(user, projectID, "Tasks")
		if err != nil {
			return err
		}
		summary = summarize(*project)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

// Update overwrites title and description. Id and owner never change.
func (s *ProjectService) Update(ctx context.Context, user *models.User, projectID uint64, input ProjectInput) (*ProjectSummary, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	var summary ProjectSummary
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		project, err := NewOwnershipGuard(tx).AuthorizeProject(user, projectID, "Tasks")
		if err != nil {
			return err
		}

		project.Title = input.Title
		project.Description = input.Description
		if err := tx.Projects().Update(project); err != nil {
			return fmt.Errorf("failed to update project: %w", err)
		}

		summary = summarize(*project)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

// Delete removes one of user's projects together with all of its tasks.
func (s *ProjectService) Delete(ctx context.Context, user *models.User, projectID uint64) error {
	return s.store.Transaction(ctx, func(tx repository.Store) error {
		project, err := NewOwnershipGuard(tx).AuthorizeProject(user, projectID)
		if err != nil {
			return err
		}

		if err := tx.Projects().Delete(project.ID); err != nil {
			return fmt.Errorf("failed to delete project: %w", err)
		}
		return nil
	})
}
