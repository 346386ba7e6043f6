package models

import "time"

type Session struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	UserID       uint64    `gorm:"not null;index" json:"user_id"`
	SessionToken string    `gorm:"type:varchar(128);uniqueIndex;not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	ExpiresAt    time.Time `gorm:"not null;index" json:"expires_at"`
}
