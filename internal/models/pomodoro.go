package models

import (
	"time"
)

type Pomodoro struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	UserID    uint64    `gorm:"not null" json:"user_id"`
	TaskID    *uint64   `json:"task_id"`
	Duration  int       `gorm:"not null;default:25" json:"duration"`
	Completed bool      `gorm:"not null;default:false" json:"completed"`
	StartedAt time.Time `json:"started_at"`

	// Relations
	User User  `gorm:"foreignKey:UserID" json:"-"`
	Task *Task `gorm:"foreignKey:TaskID" json:"-"`
}
