package models

import "time"

type User struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	Username     string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"username"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	Email        *string   `gorm:"type:varchar(255);uniqueIndex" json:"email"`
	FullName     string    `gorm:"type:varchar(255)" json:"full_name"`
	IsActive     bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime:false" json:"updated_at"`

	// Relations
	Sessions []Session `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	People   []Person  `gorm:"foreignKey:UserID" json:"-"`
}

// UserProfile is the caller projection resolved from a session.
// It never carries the password hash.
type UserProfile struct {
	ID       uint64  `json:"id"`
	Username string  `json:"username"`
	Email    *string `json:"email"`
	FullName string  `json:"full_name"`
}

// Profile projects a User onto its public fields.
func (u User) Profile() UserProfile {
	return UserProfile{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		FullName: u.FullName,
	}
}
