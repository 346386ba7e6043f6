package services

import (
	"context"
	"errors"
	"strings"

	"github.com/yukikurage/family-graph-api/internal/dto"
	"github.com/yukikurage/family-graph-api/internal/models"
	"github.com/yukikurage/family-graph-api/internal/repository"
	"gorm.io/gorm"
)

// PersonService manages the caller's people.
type PersonService struct {
	clock
	store repository.Store
}

// NewPersonService creates a new PersonService.
func NewPersonService(store repository.Store) *PersonService {
	return &PersonService{store: store}
}

// CreatePersonInput holds the fields of a new person.
type CreatePersonInput struct {
	GivenName  string
	FamilyName string
	OtherNames *string
	Gender     *string
	BirthDate  *string
	DeathDate  *string
	BirthPlace *string
	Bio        *string
	Relation   *string
}

// List returns the caller's visible people sorted by name.
func (s *PersonService) List(ctx context.Context, callerID uint64) ([]models.Person, error) {
	people, err := s.store.People().ListOwned(ctx, callerID)
	if err != nil {
		return nil, storageError("failed to list people", err)
	}
	return people, nil
}

// Get returns one visible person of the caller.
func (s *PersonService) Get(ctx context.Context, callerID, id uint64) (*models.Person, error) {
	return findPerson(ctx, s.store, callerID, id)
}

// Create adds a person owned by the caller.
func (s *PersonService) Create(ctx context.Context, callerID uint64, input CreatePersonInput) (*models.Person, error) {
	givenName, familyName, err := requireNames(input.GivenName, input.FamilyName)
	if err != nil {
		return nil, err
	}

	now := s.timeNow()
	person := &models.Person{
		UserID:     callerID,
		GivenName:  givenName,
		FamilyName: familyName,
		OtherNames: input.OtherNames,
		Gender:     input.Gender,
		BirthDate:  input.BirthDate,
		DeathDate:  input.DeathDate,
		BirthPlace: input.BirthPlace,
		Bio:        input.Bio,
		Relation:   input.Relation,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.store.People().Create(ctx, person); err != nil {
		return nil, storageError("failed to create person", err)
	}
	return person, nil
}

// Update applies patch to a visible person of the caller. Absent slots keep
// their column, null slots clear it.
func (s *PersonService) Update(ctx context.Context, callerID, id uint64, patch dto.PersonPatch) (*models.Person, error) {
	var updated *models.Person

	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		person, err := findPerson(ctx, tx, callerID, id)
		if err != nil {
			return err
		}

		givenName, familyName := person.GivenName, person.FamilyName
		if patch.GivenName.Set {
			givenName = patch.GivenName.Value
		}
		if patch.FamilyName.Set {
			familyName = patch.FamilyName.Value
		}
		if person.GivenName, person.FamilyName, err = requireNames(givenName, familyName); err != nil {
			return err
		}

		applyString(&person.OtherNames, patch.OtherNames)
		applyString(&person.Gender, patch.Gender)
		applyString(&person.BirthDate, patch.BirthDate)
		applyString(&person.DeathDate, patch.DeathDate)
		applyString(&person.BirthPlace, patch.BirthPlace)
		applyString(&person.Bio, patch.Bio)
		applyString(&person.Relation, patch.Relation)
		person.UpdatedAt = s.timeNow()

		if err := tx.People().Update(ctx, person); err != nil {
			return storageError("failed to update person", err)
		}
		updated = person
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// SoftDelete hides a visible person of the caller. Relationships and events
// that reference the person are kept.
func (s *PersonService) SoftDelete(ctx context.Context, callerID, id uint64) error {
	affected, err := s.store.People().SoftDelete(ctx, callerID, id, s.timeNow())
	if err != nil {
		return storageError("failed to delete person", err)
	}
	if affected == 0 {
		return ErrPersonNotFound
	}
	return nil
}

func findPerson(ctx context.Context, store repository.Store, callerID, id uint64) (*models.Person, error) {
	person, err := store.People().FindOwned(ctx, callerID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPersonNotFound
		}
		return nil, storageError("failed to find person", err)
	}
	return person, nil
}

func requireNames(givenName, familyName string) (string, string, error) {
	givenName = strings.TrimSpace(givenName)
	familyName = strings.TrimSpace(familyName)
	if givenName == "" || familyName == "" {
		return "", "", newValidationError("names", "given name and family name are required")
	}
	return givenName, familyName, nil
}

func applyString(dst **string, slot dto.Optional[string]) {
	if slot.Set {
		*dst = slot.Ptr()
	}
}
