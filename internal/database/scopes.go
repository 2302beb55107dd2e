package database

import (
	"gorm.io/gorm"

	"github.com/yukikurage/project-tasks-api/internal/utils"
)

// Paginate applies pagination to a GORM query
func Paginate(params utils.PaginationParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(params.Offset()).Limit(params.Size)
	}
}

// NewestFirst orders tasks by creation time descending. The id breaks ties
// between rows created within the same clock tick.
func NewestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("tasks.created_at DESC").Order("tasks.id DESC")
}
