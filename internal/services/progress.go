package services

import (
	"math"

	"github.com/yukikurage/project-tasks-api/internal/models"
)

// ProjectProgress is derived from a project's tasks on every read and never stored.
type ProjectProgress struct {
	TotalTasks         int
	CompletedTasks     int
	ProgressPercentage float64
}

// AggregateProgress counts tasks and completed tasks. The percentage is rounded
// half-up to two decimals; a project without tasks is at 0.
func AggregateProgress(tasks []models.Task) ProjectProgress {
	progress := ProjectProgress{TotalTasks: len(tasks)}
	for _, task := range tasks {
		if task.Completed {
			progress.CompletedTasks++
		}
	}

	if progress.TotalTasks > 0 {
		ratio := float64(progress.CompletedTasks) / float64(progress.TotalTasks) * 100
		progress.ProgressPercentage = math.Round(ratio*100) / 100
	}

	return progress
}

// ProjectSummary is a project together with its derived progress.
type ProjectSummary struct {
	Project  models.Project
	Progress ProjectProgress
}

func summarize(project models.Project) ProjectSummary {
	return ProjectSummary{
		Project:  project,
		Progress: AggregateProgress(project.Tasks),
	}
}
