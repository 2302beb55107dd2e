package repository

import (
	"strings"

	"github.com/yukikurage/project-tasks-api/internal/database"
	"github.com/yukikurage/project-tasks-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Omit(clause.Associations).Create(task).Error
}

// FindByID finds a task by ID with optional preloading
func (r *GormTaskRepository) FindByID(id uint64, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db

	// Apply preloading if specified
	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&task, id).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

// ListByProjectID lists every task of a project, newest first
func (r *GormTaskRepository) ListByProjectID(projectID uint64) ([]models.Task, error) {
	var tasks []models.Task
	if err := r.db.Where("tasks.project_id = ?", projectID).
		Scopes(database.NewestFirst).
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// List retrieves tasks with filtering and pagination
func (r *GormTaskRepository) List(filter TaskFilter) ([]models.Task, int64, error) {
	query := r.db.Model(&models.Task{}).Where("tasks.project_id = ?", filter.ProjectID)

	// Apply filters
	if search := strings.TrimSpace(filter.Search); search != "" {
		// Both sides are folded by the database so they agree on every dialect
		pattern := "%" + escapeLike(search) + "%"
		query = query.Where(
			"(LOWER(tasks.title) LIKE LOWER(?) ESCAPE '!' OR LOWER(COALESCE(tasks.description, '')) LIKE LOWER(?) ESCAPE '!')",
			pattern, pattern,
		)
	}
	if filter.Completed != nil {
		query = query.Where("tasks.completed = ?", *filter.Completed)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var tasks []models.Task
	if err := query.Scopes(database.NewestFirst, database.Paginate(filter.Pagination)).
		Find(&tasks).Error; err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// CountByProjectID counts the tasks of a project
func (r *GormTaskRepository) CountByProjectID(projectID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.Task{}).Where("project_id = ?", projectID).Count(&count).Error
	return count, err
}

// Update saves the task's own columns; the owning project is never rewritten
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Model(task).
		Select("title", "description", "completed", "due_date", "updated_at").
		Omit(clause.Associations).
		Updates(task).Error
}

// Delete deletes a task
func (r *GormTaskRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Task{}, id).Error
}

// escapeLike makes LIKE wildcards in user input match literally, using '!' as
// the escape character because it behaves the same on every supported dialect.
func escapeLike(s string) string {
	return strings.NewReplacer("!", "!!", "%", "!%", "_", "!_").Replace(s)
}
