package database

import (
	"fmt"
	"log"

	"github.com/ymaeda/pomodoro-tracker/internal/models"
	"gorm.io/gorm"
)

// AddIndexes adds the indexes backing list filtering and the stats queries.
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		model   interface{}
		table   string
		name    string
		columns string
	}{
		// Task indexes for ownership scoping, filtering and sorting
		{&models.Task{}, "tasks", "idx_tasks_user_id", "user_id"},
		{&models.Task{}, "tasks", "idx_tasks_completed", "completed"},
		{&models.Task{}, "tasks", "idx_tasks_deadline", "deadline"},
		{&models.Task{}, "tasks", "idx_tasks_created_at", "created_at"},

		// Pomodoro indexes for ownership scoping and date-window aggregation
		{&models.Pomodoro{}, "pomodoros", "idx_pomodoros_user_id", "user_id"},
		{&models.Pomodoro{}, "pomodoros", "idx_pomodoros_task_id", "task_id"},
		{&models.Pomodoro{}, "pomodoros", "idx_pomodoros_started_at", "started_at"},
	}

	for _, idx := range indexes {
		if db.Migrator().HasIndex(idx.model, idx.name) {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		log.Printf("Created index %s on %s(%s)", idx.name, idx.table, idx.columns)
	}

	return nil
}
