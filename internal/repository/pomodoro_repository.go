package repository

import (
	"time"

	"github.com/ymaeda/pomodoro-tracker/internal/database"
	"github.com/ymaeda/pomodoro-tracker/internal/models"
	"gorm.io/gorm"
)

// GormPomodoroRepository is a GORM implementation of PomodoroRepository
type GormPomodoroRepository struct {
	db *gorm.DB
}

// NewPomodoroRepository creates a new PomodoroRepository
func NewPomodoroRepository(db *gorm.DB) PomodoroRepository {
	return &GormPomodoroRepository{db: db}
}

// Create creates a new pomodoro session
func (r *GormPomodoroRepository) Create(pomodoro *models.Pomodoro) error {
	return r.db.Create(pomodoro).Error
}

// FindByID finds a pomodoro owned by the given user
func (r *GormPomodoroRepository) FindByID(userID, id uint64) (*models.Pomodoro, error) {
	var pomodoro models.Pomodoro
	if err := r.db.Scopes(database.OwnedBy(userID)).
		First(&pomodoro, id).Error; err != nil {
		return nil, err
	}
	return &pomodoro, nil
}

// Update updates a pomodoro session
func (r *GormPomodoroRepository) Update(pomodoro *models.Pomodoro) error {
	return r.db.Save(pomodoro).Error
}

// CountCompletedInRange counts completed sessions started within [from, to)
func (r *GormPomodoroRepository) CountCompletedInRange(userID uint64, from, to time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.Pomodoro{}).
		Scopes(database.OwnedBy(userID)).
		Where("completed = ?", true).
		Where("started_at >= ? AND started_at < ?", from, to).
		Count(&count).Error
	return count, err
}

// SumCompletedDurationInRange sums the duration of completed sessions
// started within [from, to)
func (r *GormPomodoroRepository) SumCompletedDurationInRange(userID uint64, from, to time.Time) (int64, error) {
	var total int64
	err := r.db.Model(&models.Pomodoro{}).
		Scopes(database.OwnedBy(userID)).
		Where("completed = ?", true).
		Where("started_at >= ? AND started_at < ?", from, to).
		Select("COALESCE(SUM(duration), 0)").
		Scan(&total).Error
	return total, err
}
