package database

import (
	"gorm.io/gorm"

	"github.com/ymaeda/pomodoro-tracker/internal/utils"
)

// OwnedBy restricts a query to rows belonging to the given user.
// Every task/pomodoro query goes through this scope so a user can never
// see or touch another user's rows.
func OwnedBy(userID uint64) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ?", userID)
	}
}

// Paginate applies pagination to a GORM query
func Paginate(params utils.PaginationParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(params.Offset).Limit(params.Limit)
	}
}
