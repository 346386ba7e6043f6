package models

import "time"

type Event struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	EventDate   *string   `gorm:"type:varchar(32)" json:"event_date"`
	Place       *string   `gorm:"type:varchar(255)" json:"place"`
	Description *string   `gorm:"type:text" json:"description"`
	CreatedBy   uint64    `gorm:"not null;index" json:"created_by"`
	UserID      uint64    `gorm:"not null;index" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime:false" json:"updated_at"`

	// Relations
	Person Person `gorm:"foreignKey:CreatedBy" json:"-"`
}
