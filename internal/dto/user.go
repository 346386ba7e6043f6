package dto

import (
	"time"

	"github.com/yukikurage/family-graph-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID        uint64    `json:"id"`
	Username  string    `json:"username"`
	Email     *string   `json:"email"`
	FullName  string    `json:"full_name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// RegisterResponse is returned by the registration endpoint
type RegisterResponse struct {
	UserID uint64  `json:"user_id"`
	User   UserDTO `json:"user"`
}

// LoginResponse carries the issued session token
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      UserDTO   `json:"user"`
}

// UserPatch is a partial profile update
type UserPatch struct {
	Email    Optional[string] `json:"email"`
	FullName Optional[string] `json:"full_name"`
	Password Optional[string] `json:"password"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		FullName:  user.FullName,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
	}
}
