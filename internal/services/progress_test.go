package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yukikurage/project-tasks-api/internal/models"
)

func tasksWithCompleted(total, completed int) []models.Task {
	tasks := make([]models.Task, total)
	for i := 0; i < completed; i++ {
		tasks[i].Completed = true
	}
	return tasks
}

func TestAggregateProgress(t *testing.T) {
	tests := []struct {
		name      string
		tasks     []models.Task
		completed int
		percent   float64
	}{
		{"unloaded", nil, 0, 0},
		{"empty", []models.Task{}, 0, 0},
		{"one of three", tasksWithCompleted(3, 1), 1, 33.33},
		{"two of three", tasksWithCompleted(3, 2), 2, 66.67},
		{"one of eight", tasksWithCompleted(8, 1), 1, 12.5},
		{"all done", tasksWithCompleted(4, 4), 4, 100},
		{"none done", tasksWithCompleted(5, 0), 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			progress := AggregateProgress(tt.tasks)
			assert.Equal(t, len(tt.tasks), progress.TotalTasks)
			assert.Equal(t, tt.completed, progress.CompletedTasks)
			assert.Equal(t, tt.percent, progress.ProgressPercentage)
		})
	}
}
