package services

import (
	"fmt"
	"strings"

	"github.com/yukikurage/project-tasks-api/internal/models"
	"github.com/yukikurage/project-tasks-api/internal/repository"
	"github.com/yukikurage/project-tasks-api/internal/utils"
)

// TaskQuery selects one page of a project's tasks.
type TaskQuery struct {
	Page int
	Size int
	// Search matches title or description case-insensitively; blank means no filter.
	Search string
	// Completed filters on status; nil means any status.
	Completed *bool
}

func (q TaskQuery) pagination() utils.PaginationParams {
	return utils.PaginationParams{Page: q.Page, Size: q.Size}
}

// paginateTasks builds a newest-first page of a project's tasks. The project
// must already be authorized by the caller.
func paginateTasks(tasks repository.TaskRepository, projectID uint64, q TaskQuery) (utils.Page[models.Task], error) {
	params := q.pagination()
	if !params.Valid() {
		return utils.Page[models.Task]{}, ErrInvalidPagination
	}

	content, total, err := tasks.List(repository.TaskFilter{
		ProjectID:  projectID,
		Search:     strings.TrimSpace(q.Search),
		Completed:  q.Completed,
		Pagination: params,
	})
	if err != nil {
		return utils.Page[models.Task]{}, fmt.Errorf("failed to list tasks: %w", err)
	}

	return utils.NewPage(content, params, total), nil
}
