package repository

import (
	"context"

	"github.com/yukikurage/family-graph-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const eventRowColumns = `events.id, events.title, events.event_date, events.place, events.description,
	events.created_by, events.user_id, events.created_at, events.updated_at,
	people.given_name AS person_given_name, people.family_name AS person_family_name`

// GormEventRepository is a GORM implementation of EventRepository
type GormEventRepository struct {
	db *gorm.DB
}

// NewEventRepository creates a new EventRepository
func NewEventRepository(db *gorm.DB) EventRepository {
	return &GormEventRepository{db: db}
}

// Create creates a new event
func (r *GormEventRepository) Create(ctx context.Context, event *models.Event) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(event).Error
}

// ownedRows only joins a subject that belongs to the event's owner.
func (r *GormEventRepository) ownedRows(ctx context.Context, ownerID uint64) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("events").
		Select(eventRowColumns).
		Joins("LEFT JOIN people ON people.id = events.created_by AND people.user_id = events.user_id").
		Where("events.user_id = ?", ownerID)
}

// FindOwned finds an event of the owner with its subject's name
func (r *GormEventRepository) FindOwned(ctx context.Context, ownerID, id uint64) (*EventRow, error) {
	var row EventRow
	if err := r.ownedRows(ctx, ownerID).
		Where("events.id = ?", id).
		Take(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// ListOwned lists the owner's events, undated last, newest date first
func (r *GormEventRepository) ListOwned(ctx context.Context, ownerID uint64) ([]EventRow, error) {
	rows := []EventRow{}
	if err := r.ownedRows(ctx, ownerID).
		Order("CASE WHEN events.event_date IS NULL THEN 1 ELSE 0 END, events.event_date DESC, events.id DESC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Update saves all columns of the event
func (r *GormEventRepository) Update(ctx context.Context, event *models.Event) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(event).Error
}

// DeleteOwned hard deletes an event of the owner and reports the rows affected
func (r *GormEventRepository) DeleteOwned(ctx context.Context, ownerID, id uint64) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		Delete(&models.Event{})
	return result.RowsAffected, result.Error
}
