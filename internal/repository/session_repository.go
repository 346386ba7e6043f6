package repository

import (
	"context"
	"time"

	"github.com/yukikurage/family-graph-api/internal/models"
	"gorm.io/gorm"
)

// GormSessionRepository is a GORM implementation of SessionRepository
type GormSessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository creates a new SessionRepository
func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &GormSessionRepository{db: db}
}

// Create persists a new session
func (r *GormSessionRepository) Create(ctx context.Context, session *models.Session) error {
	return r.db.WithContext(ctx).Create(session).Error
}

// FindActiveUser returns the owner of an unexpired session whose account is active
func (r *GormSessionRepository) FindActiveUser(ctx context.Context, token string, now time.Time) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Select("users.*").
		Joins("JOIN sessions ON sessions.user_id = users.id").
		Where("sessions.session_token = ?", token).
		Where("sessions.expires_at > ?", now).
		Where("users.is_active = ?", true).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteByToken removes the session with the given token
func (r *GormSessionRepository) DeleteByToken(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).Where("session_token = ?", token).Delete(&models.Session{}).Error
}

// DeleteByUserID removes every session of a user
func (r *GormSessionRepository) DeleteByUserID(ctx context.Context, userID uint64) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.Session{}).Error
}
