package repository

import (
	"github.com/ymaeda/pomodoro-tracker/internal/database"
	"github.com/ymaeda/pomodoro-tracker/internal/models"
	"github.com/ymaeda/pomodoro-tracker/internal/utils"
	"gorm.io/gorm"
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

// FindByID finds a task owned by the given user
func (r *GormTaskRepository) FindByID(userID, id uint64) (*models.Task, error) {
	var task models.Task
	if err := r.db.Scopes(database.OwnedBy(userID)).
		First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// List retrieves tasks with filtering, ordering and pagination
func (r *GormTaskRepository) List(filter TaskFilter) ([]models.Task, int64, error) {
	query := r.db.Model(&models.Task{}).Scopes(database.OwnedBy(filter.UserID))

	if filter.Completed != nil {
		query = query.Where("completed = ?", *filter.Completed)
	}
	if filter.Priority != nil {
		query = query.Where("priority = ?", *filter.Priority)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Incomplete first, then nearest deadline with NULL deadlines last,
	// then newest creation time.
	listQuery := query.Order("completed ASC").
		Order("CASE WHEN deadline IS NULL THEN 1 ELSE 0 END, deadline ASC").
		Order("created_at DESC")

	if filter.Page > 0 && filter.PageSize > 0 {
		listQuery = listQuery.Scopes(database.Paginate(utils.PaginationParams{
			Page:   filter.Page,
			Limit:  filter.PageSize,
			Offset: (filter.Page - 1) * filter.PageSize,
		}))
	}

	var tasks []models.Task
	if err := listQuery.Find(&tasks).Error; err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// Update updates a task
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Save(task).Error
}

// Delete removes a task and detaches its pomodoros. Pomodoro rows stay
// behind with a NULL task reference; they are owned by the user, not the
// task.
func (r *GormTaskRepository) Delete(userID, id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Pomodoro{}).
			Scopes(database.OwnedBy(userID)).
			Where("task_id = ?", id).
			Update("task_id", nil).Error; err != nil {
			return err
		}

		return tx.Scopes(database.OwnedBy(userID)).
			Delete(&models.Task{}, id).Error
	})
}

// CountByUser counts tasks owned by the user, optionally by completion
func (r *GormTaskRepository) CountByUser(userID uint64, completed *bool) (int64, error) {
	query := r.db.Model(&models.Task{}).Scopes(database.OwnedBy(userID))
	if completed != nil {
		query = query.Where("completed = ?", *completed)
	}

	var count int64
	err := query.Count(&count).Error
	return count, err
}
