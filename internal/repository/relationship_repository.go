package repository

import (
	"context"

	"github.com/yukikurage/family-graph-api/internal/database"
	"github.com/yukikurage/family-graph-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const relationshipRowColumns = `relationships.id, relationships.person1_id, relationships.person2_id,
	relationships.type, relationships.details, relationships.start_date, relationships.end_date,
	relationships.created_at, relationships.updated_at,
	p1.given_name AS person1_given_name, p1.family_name AS person1_family_name,
	p2.given_name AS person2_given_name, p2.family_name AS person2_family_name`

// GormRelationshipRepository is a GORM implementation of RelationshipRepository
type GormRelationshipRepository struct {
	db *gorm.DB
}

// NewRelationshipRepository creates a new RelationshipRepository
func NewRelationshipRepository(db *gorm.DB) RelationshipRepository {
	return &GormRelationshipRepository{db: db}
}

// Create creates a new relationship
func (r *GormRelationshipRepository) Create(ctx context.Context, rel *models.Relationship) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(rel).Error
}

// ownedRows joins both endpoints; a row is visible only when both people are.
func (r *GormRelationshipRepository) ownedRows(ctx context.Context, ownerID uint64) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("relationships").
		Select(relationshipRowColumns).
		Joins("JOIN people p1 ON p1.id = relationships.person1_id").
		Joins("JOIN people p2 ON p2.id = relationships.person2_id").
		Scopes(database.VisiblePeople("p1", ownerID), database.VisiblePeople("p2", ownerID))
}

// FindOwned finds a relationship whose endpoints are both visible to the owner
func (r *GormRelationshipRepository) FindOwned(ctx context.Context, ownerID, id uint64) (*RelationshipRow, error) {
	var row RelationshipRow
	if err := r.ownedRows(ctx, ownerID).
		Where("relationships.id = ?", id).
		Take(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// ListOwned lists relationships visible to the owner, newest first
func (r *GormRelationshipRepository) ListOwned(ctx context.Context, ownerID uint64) ([]RelationshipRow, error) {
	rows := []RelationshipRow{}
	if err := r.ownedRows(ctx, ownerID).
		Order("relationships.created_at DESC, relationships.id DESC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Update saves all columns of the relationship
func (r *GormRelationshipRepository) Update(ctx context.Context, rel *models.Relationship) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(rel).Error
}

// Delete hard deletes a relationship
func (r *GormRelationshipRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Delete(&models.Relationship{}, id).Error
}
