package services

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/yukikurage/family-graph-api/internal/constants"
	"github.com/yukikurage/family-graph-api/internal/dto"
	"github.com/yukikurage/family-graph-api/internal/models"
	"github.com/yukikurage/family-graph-api/internal/repository"
	"gorm.io/gorm"
)

// RelationshipService manages relationships between the caller's people.
// A relationship has no owner column; it belongs to whoever owns both of
// its endpoints.
type RelationshipService struct {
	clock
	store repository.Store
}

// NewRelationshipService creates a new RelationshipService.
func NewRelationshipService(store repository.Store) *RelationshipService {
	return &RelationshipService{store: store}
}

// ListTypes returns the allowed relationship types.
func (s *RelationshipService) ListTypes() []string {
	return slices.Clone(constants.RelationshipTypes)
}

// List returns every relationship whose endpoints are both visible to the
// caller, newest first.
func (s *RelationshipService) List(ctx context.Context, callerID uint64) ([]dto.RelationshipDTO, error) {
	rows, err := s.store.Relationships().ListOwned(ctx, callerID)
	if err != nil {
		return nil, storageError("failed to list relationships", err)
	}

	result := make([]dto.RelationshipDTO, 0, len(rows))
	for _, row := range rows {
		result = append(result, relationshipDTO(row))
	}
	return result, nil
}

// Get returns one relationship visible to the caller.
func (s *RelationshipService) Get(ctx context.Context, callerID, id uint64) (*dto.RelationshipDTO, error) {
	row, err := findRelationship(ctx, s.store, callerID, id)
	if err != nil {
		return nil, err
	}
	rel := relationshipDTO(*row)
	return &rel, nil
}

// Create links two of the caller's people.
func (s *RelationshipService) Create(ctx context.Context, callerID uint64, input dto.RelationshipInput) (*models.Relationship, error) {
	relType, err := validateRelationship(input)
	if err != nil {
		return nil, err
	}

	now := s.timeNow()
	rel := &models.Relationship{
		Person1ID: input.Person1ID,
		Person2ID: input.Person2ID,
		Type:      relType,
		Details:   input.Details,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = s.store.Transaction(ctx, func(tx repository.Store) error {
		if err := verifyEndpoints(ctx, tx, callerID, input.Person1ID, input.Person2ID); err != nil {
			return err
		}
		if err := tx.Relationships().Create(ctx, rel); err != nil {
			return storageError("failed to create relationship", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return rel, nil
}

// Update overwrites a relationship visible to the caller. The new endpoints
// are checked the same way as on create.
func (s *RelationshipService) Update(ctx context.Context, callerID, id uint64, input dto.RelationshipInput) (*models.Relationship, error) {
	var updated *models.Relationship

	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		row, err := findRelationship(ctx, tx, callerID, id)
		if err != nil {
			return err
		}

		relType, err := validateRelationship(input)
		if err != nil {
			return err
		}
		if err := verifyEndpoints(ctx, tx, callerID, input.Person1ID, input.Person2ID); err != nil {
			return err
		}

		rel := row.Relationship()
		rel.Person1ID = input.Person1ID
		rel.Person2ID = input.Person2ID
		rel.Type = relType
		rel.Details = input.Details
		rel.StartDate = input.StartDate
		rel.EndDate = input.EndDate
		rel.UpdatedAt = s.timeNow()

		if err := tx.Relationships().Update(ctx, &rel); err != nil {
			return storageError("failed to update relationship", err)
		}
		updated = &rel
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// Delete removes a relationship visible to the caller.
func (s *RelationshipService) Delete(ctx context.Context, callerID, id uint64) error {
	return s.store.Transaction(ctx, func(tx repository.Store) error {
		if _, err := findRelationship(ctx, tx, callerID, id); err != nil {
			return err
		}
		if err := tx.Relationships().Delete(ctx, id); err != nil {
			return storageError("failed to delete relationship", err)
		}
		return nil
	})
}

// validateRelationship runs the checks that need no storage and returns the
// normalized type.
func validateRelationship(input dto.RelationshipInput) (string, error) {
	if input.Person1ID == 0 || input.Person2ID == 0 {
		return "", newValidationError("person_ids", "both people required")
	}
	if input.Person1ID == input.Person2ID {
		return "", newValidationError("person_ids", "a person cannot have a relationship with themselves")
	}

	relType := strings.ToLower(strings.TrimSpace(input.Type))
	if relType != "" && !slices.Contains(constants.RelationshipTypes, relType) {
		return "", newValidationError("type", "invalid relationship type")
	}
	return relType, nil
}

func verifyEndpoints(ctx context.Context, store repository.Store, callerID, person1ID, person2ID uint64) error {
	count, err := store.People().CountOwned(ctx, callerID, []uint64{person1ID, person2ID})
	if err != nil {
		return storageError("failed to verify people", err)
	}
	if count != 2 {
		return newValidationError("person_ids", "both people must exist and belong to you")
	}
	return nil
}

func findRelationship(ctx context.Context, store repository.Store, callerID, id uint64) (*repository.RelationshipRow, error) {
	row, err := store.Relationships().FindOwned(ctx, callerID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRelationshipNotFound
		}
		return nil, storageError("failed to find relationship", err)
	}
	return row, nil
}

func relationshipDTO(row repository.RelationshipRow) dto.RelationshipDTO {
	return dto.ToRelationshipDTO(
		row.Relationship(),
		models.DisplayName(row.Person1GivenName, row.Person1FamilyName),
		models.DisplayName(row.Person2GivenName, row.Person2FamilyName),
	)
}
