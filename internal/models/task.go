package models

import (
	"time"
)

type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

// ValidPriority reports whether p is one of the known priority levels.
func ValidPriority(p TaskPriority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

type Task struct {
	ID          uint64       `gorm:"primarykey" json:"id"`
	UserID      uint64       `gorm:"not null" json:"user_id"`
	Title       string       `gorm:"type:varchar(200);not null" json:"title"`
	Description string       `gorm:"type:text" json:"description"`
	Priority    TaskPriority `gorm:"type:varchar(10);not null;default:'medium'" json:"priority"`
	Deadline    *time.Time   `gorm:"type:date" json:"deadline"`
	Completed   bool         `gorm:"not null;default:false" json:"completed"`
	CreatedAt   time.Time    `json:"created_at"`

	// Relations. Pomodoros reference tasks but are not owned by them.
	User      User       `gorm:"foreignKey:UserID" json:"-"`
	Pomodoros []Pomodoro `gorm:"foreignKey:TaskID" json:"-"`
}
