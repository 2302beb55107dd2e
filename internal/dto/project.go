package dto

import (
	"time"

	"github.com/yukikurage/project-tasks-api/internal/services"
	"github.com/yukikurage/project-tasks-api/internal/utils"
)

// ProjectRequest is the body of project create and update requests
type ProjectRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

// ProjectDTO is a project with its progress, computed at read time
type ProjectDTO struct {
	ID                 uint64    `json:"id"`
	Title              string    `json:"title"`
	Description        string    `json:"description"`
	TotalTasks         int       `json:"total_tasks"`
	CompletedTasks     int       `json:"completed_tasks"`
	ProgressPercentage float64   `json:"progress_percentage"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func ToProjectDTO(summary services.ProjectSummary) ProjectDTO {
	return ProjectDTO{
		ID:                 summary.Project.ID,
		Title:              summary.Project.Title,
		Description:        summary.Project.Description,
		TotalTasks:         summary.Progress.TotalTasks,
		CompletedTasks:     summary.Progress.CompletedTasks,
		ProgressPercentage: summary.Progress.ProgressPercentage,
		CreatedAt:          summary.Project.CreatedAt,
		UpdatedAt:          summary.Project.UpdatedAt,
	}
}

func ToProjectDTOs(summaries []services.ProjectSummary) []ProjectDTO {
	dtos := make([]ProjectDTO, len(summaries))
	for i, summary := range summaries {
		dtos[i] = ToProjectDTO(summary)
	}
	return dtos
}

func ToProjectPage(page utils.Page[services.ProjectSummary]) utils.Page[ProjectDTO] {
	return utils.MapPage(page, ToProjectDTO)
}
