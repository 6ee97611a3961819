package models

import (
	"time"
)

type User struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	Username     string    `gorm:"type:varchar(80);uniqueIndex;not null" json:"username"`
	PasswordHash string    `gorm:"type:varchar(256);not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`

	// Relations. Deleting a user removes everything they own.
	Tasks     []Task     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Pomodoros []Pomodoro `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
