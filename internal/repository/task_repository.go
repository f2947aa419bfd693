package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/globalreach/crm-api/internal/models"
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
	return r.db.Create(task).Error
}

// FindByID finds a task by ID with optional preloading
func (r *GormTaskRepository) FindByID(id uint64, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&task, id).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

// List retrieves tasks matching the filter
func (r *GormTaskRepository) List(filter TaskFilter) ([]models.Task, error) {
	var tasks []models.Task

	query := r.db.Model(&models.Task{})

	if filter.ClientID != nil {
		query = query.Where("client_id = ?", *filter.ClientID)
	}
	if filter.AssignedTo != nil {
		query = query.Where("assigned_to = ?", *filter.AssignedTo)
	}
	if filter.OverdueBefore != nil {
		query = query.
			Where("status IN ?", []models.TaskStatus{
				models.TaskStatusPending,
				models.TaskStatusInProgress,
				models.TaskStatusOverdue,
			}).
			Where("due_date < ?", *filter.OverdueBefore)
	}

	if filter.SortByDueDate {
		query = query.Order("due_date ASC")
	} else {
		query = query.Order("created_at DESC")
	}

	if filter.PreloadClient {
		query = query.Preload("Client")
	}

	if err := query.Find(&tasks).Error; err != nil {
		return nil, err
	}

	return tasks, nil
}

// Update saves the full task record
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Save(task).Error
}

// Delete permanently removes a task
func (r *GormTaskRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Task{}, id).Error
}

// MarkOverdue flips open tasks with a passed due date to Overdue
func (r *GormTaskRepository) MarkOverdue(now time.Time) (int64, error) {
	result := r.db.Model(&models.Task{}).
		Where("status IN ?", []models.TaskStatus{
			models.TaskStatusPending,
			models.TaskStatusInProgress,
		}).
		Where("due_date < ?", now).
		Update("status", models.TaskStatusOverdue)
	return result.RowsAffected, result.Error
}

// CountByStatus counts tasks with the given status
func (r *GormTaskRepository) CountByStatus(status models.TaskStatus) (int64, error) {
	var count int64
	err := r.db.Model(&models.Task{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

// CountByPriority counts tasks with the given priority
func (r *GormTaskRepository) CountByPriority(priority models.TaskPriority) (int64, error) {
	var count int64
	err := r.db.Model(&models.Task{}).Where("priority = ?", priority).Count(&count).Error
	return count, err
}
