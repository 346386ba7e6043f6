package repository

import (
	"context"
	"time"

	"github.com/yukikurage/family-graph-api/internal/database"
	"github.com/yukikurage/family-graph-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPersonRepository is a GORM implementation of PersonRepository
type GormPersonRepository struct {
	db *gorm.DB
}

// NewPersonRepository creates a new PersonRepository
func NewPersonRepository(db *gorm.DB) PersonRepository {
	return &GormPersonRepository{db: db}
}

// Create creates a new person
func (r *GormPersonRepository) Create(ctx context.Context, person *models.Person) error {
	return r.db.WithContext(ctx).Create(person).Error
}

// FindOwned finds a visible person of the owner
func (r *GormPersonRepository) FindOwned(ctx context.Context, ownerID, id uint64) (*models.Person, error) {
	var person models.Person
	if err := r.db.WithContext(ctx).
		Scopes(database.VisiblePeople("people", ownerID)).
		First(&person, id).Error; err != nil {
		return nil, err
	}
	return &person, nil
}

// ListOwned lists visible people ordered by family and given name
func (r *GormPersonRepository) ListOwned(ctx context.Context, ownerID uint64) ([]models.Person, error) {
	people := []models.Person{}
	if err := r.db.WithContext(ctx).
		Scopes(database.VisiblePeople("people", ownerID)).
		Order("family_name ASC, given_name ASC, id ASC").
		Find(&people).Error; err != nil {
		return nil, err
	}
	return people, nil
}

// Update saves all columns of the person
func (r *GormPersonRepository) Update(ctx context.Context, person *models.Person) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(person).Error
}

// SoftDelete flags a visible person as deleted and reports the rows affected
func (r *GormPersonRepository) SoftDelete(ctx context.Context, ownerID, id uint64, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.Person{}).
		Scopes(database.VisiblePeople("people", ownerID)).
		Where("id = ?", id).
		Updates(map[string]interface{}{"is_deleted": true, "updated_at": now})
	return result.RowsAffected, result.Error
}

// CountOwned counts how many of the ids are visible people of the owner
func (r *GormPersonRepository) CountOwned(ctx context.Context, ownerID uint64, ids []uint64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Person{}).
		Scopes(database.VisiblePeople("people", ownerID)).
		Where("id IN ?", ids).
		Count(&count).Error
	return count, err
}
