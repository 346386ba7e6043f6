package dto

import (
	"time"

	"github.com/yukikurage/family-graph-api/internal/models"
)

// RelationshipInput is used for both create and full update.
type RelationshipInput struct {
	Person1ID uint64  `json:"person1_id"`
	Person2ID uint64  `json:"person2_id"`
	Type      string  `json:"type"`
	Details   *string `json:"details"`
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
}

// RelationshipDTO represents a relationship with denormalized endpoint names
type RelationshipDTO struct {
	ID          uint64    `json:"id"`
	Person1ID   uint64    `json:"person1_id"`
	Person1Name string    `json:"person1_name"`
	Person2ID   uint64    `json:"person2_id"`
	Person2Name string    `json:"person2_name"`
	Type        string    `json:"type"`
	Details     *string   `json:"details"`
	StartDate   *string   `json:"start_date"`
	EndDate     *string   `json:"end_date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToRelationshipDTO combines a relationship row with its endpoint names
func ToRelationshipDTO(rel models.Relationship, person1Name, person2Name string) RelationshipDTO {
	return RelationshipDTO{
		ID:          rel.ID,
		Person1ID:   rel.Person1ID,
		Person1Name: person1Name,
		Person2ID:   rel.Person2ID,
		Person2Name: person2Name,
		Type:        rel.Type,
		Details:     rel.Details,
		StartDate:   rel.StartDate,
		EndDate:     rel.EndDate,
		CreatedAt:   rel.CreatedAt,
		UpdatedAt:   rel.UpdatedAt,
	}
}
