package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/family-graph-api/internal/dto"
)

type RelationshipServiceTestSuite struct {
	serviceSuite
	alice, bob     uint64
	john, jane, ed uint64
}

func TestRelationshipService(t *testing.T) {
	suite.Run(t, new(RelationshipServiceTestSuite))
}

func (s *RelationshipServiceTestSuite) SetupTest() {
	s.serviceSuite.SetupTest()
	s.alice = s.createUser("alice")
	s.bob = s.createUser("bob")
	s.john = s.createPerson(s.alice, "John", "Smith").ID
	s.jane = s.createPerson(s.alice, "Jane", "Smith").ID
	s.ed = s.createPerson(s.bob, "Ed", "Jones").ID
}

func (s *RelationshipServiceTestSuite) TestListTypes() {
	types := s.relationships.ListTypes()
	s.Equal([]string{"father", "mother", "brother", "sister", "husband", "wife"}, types)

	types[0] = "cousin"
	s.Equal("father", s.relationships.ListTypes()[0])
}

func (s *RelationshipServiceTestSuite) TestCreate() {
	rel, err := s.relationships.Create(s.ctx, s.alice, dto.RelationshipInput{
		Person1ID: s.john,
		Person2ID: s.jane,
		Type:      "Husband",
		StartDate: ptr("1975-06-14"),
	})
	s.Require().NoError(err)
	s.NotZero(rel.ID)
	s.Equal("husband", rel.Type)

	got, err := s.relationships.Get(s.ctx, s.alice, rel.ID)
	s.Require().NoError(err)
	s.Equal("John Smith", got.Person1Name)
	s.Equal("Jane Smith", got.Person2Name)
	s.Equal("husband", got.Type)
	s.Require().NotNil(got.StartDate)
	s.Equal("1975-06-14", *got.StartDate)
}

func (s *RelationshipServiceTestSuite) TestCreate_EmptyTypeAllowed() {
	rel, err := s.relationships.Create(s.ctx, s.alice, dto.RelationshipInput{Person1ID: s.john, Person2ID: s.jane})
	s.Require().NoError(err)
	s.Equal("", rel.Type)
}

func (s *RelationshipServiceTestSuite) TestCreate_Validation() {
	tests := []struct {
		name    string
		input   dto.RelationshipInput
		field   string
		message string
	}{
		{
			name:    "missing person",
			input:   dto.RelationshipInput{Person1ID: s.john},
			field:   "person_ids",
			message: "both people required",
		},
		{
			name:    "self relationship",
			input:   dto.RelationshipInput{Person1ID: s.john, Person2ID: s.john, Type: "father"},
			field:   "person_ids",
			message: "a person cannot have a relationship with themselves",
		},
		{
			name:    "unknown type",
			input:   dto.RelationshipInput{Person1ID: s.john, Person2ID: s.jane, Type: "cousin"},
			field:   "type",
			message: "invalid relationship type",
		},
		{
			name:    "foreign person",
			input:   dto.RelationshipInput{Person1ID: s.john, Person2ID: s.ed, Type: "brother"},
			field:   "person_ids",
			message: "both people must exist and belong to you",
		},
		{
			name:    "nonexistent person",
			input:   dto.RelationshipInput{Person1ID: s.john, Person2ID: 9999},
			field:   "person_ids",
			message: "both people must exist and belong to you",
		},
		{
			// Self check runs before the type check.
			name:    "self relationship with bad type",
			input:   dto.RelationshipInput{Person1ID: s.john, Person2ID: s.john, Type: "cousin"},
			field:   "person_ids",
			message: "a person cannot have a relationship with themselves",
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.relationships.Create(s.ctx, s.alice, tt.input)
			s.requireValidation(err, tt.field, tt.message)
		})
	}

	list, err := s.relationships.List(s.ctx, s.alice)
	s.Require().NoError(err)
	s.Empty(list)
}

func (s *RelationshipServiceTestSuite) TestCreate_DeletedPerson() {
	s.Require().NoError(s.people.SoftDelete(s.ctx, s.alice, s.jane))

	_, err := s.relationships.Create(s.ctx, s.alice, dto.RelationshipInput{Person1ID: s.john, Person2ID: s.jane})
	s.requireValidation(err, "person_ids", "both people must exist and belong to you")
}

func (s *RelationshipServiceTestSuite) TestList_NewestFirstAndScoped() {
	mary := s.createPerson(s.alice, "Mary", "Smith").ID

	first, err := s.relationships.Create(s.ctx, s.alice, dto.RelationshipInput{Person1ID: s.john, Person2ID: s.jane, Type: "husband"})
	s.Require().NoError(err)
	s.clock.Advance(time.Minute)
	second, err := s.relationships.Create(s.ctx, s.alice, dto.RelationshipInput{Person1ID: s.john, Person2ID: mary, Type: "father"})
	s.Require().NoError(err)

	list, err := s.relationships.List(s.ctx, s.alice)
	s.Require().NoError(err)
	s.Require().Len(list, 2)
	s.Equal(second.ID, list[0].ID)
	s.Equal(first.ID, list[1].ID)
	s.Equal("Mary Smith", list[0].Person2Name)

	other, err := s.relationships.List(s.ctx, s.bob)
	s.Require().NoError(err)
	s.Empty(other)

	_, err = s.relationships.Get(s.ctx, s.bob, first.ID)
	s.ErrorIs(err, ErrRelationshipNotFound)

	// Soft deleting an endpoint hides the relationship without removing it.
	s.Require().NoError(s.people.SoftDelete(s.ctx, s.alice, mary))
	list, err = s.relationships.List(s.ctx, s.alice)
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.Equal(first.ID, list[0].ID)

	_, err = s.relationships.Get(s.ctx, s.alice, second.ID)
	s.ErrorIs(err, ErrRelationshipNotFound)
}

func (s *RelationshipServiceTestSuite) TestUpdate() {
	mary := s.createPerson(s.alice, "Mary", "Smith").ID
	rel, err := s.relationships.Create(s.ctx, s.alice, dto.RelationshipInput{Person1ID: s.john, Person2ID: s.jane, Type: "husband", Details: ptr("married")})
	s.Require().NoError(err)

	s.clock.Advance(time.Hour)
	updated, err := s.relationships.Update(s.ctx, s.alice, rel.ID, dto.RelationshipInput{Person1ID: s.john, Person2ID: mary, Type: "FATHER"})
	s.Require().NoError(err)
	s.Equal("father", updated.Type)
	s.Nil(updated.Details)
	s.True(rel.CreatedAt.Equal(updated.CreatedAt))
	s.Equal(s.clock.Now(), updated.UpdatedAt)

	got, err := s.relationships.Get(s.ctx, s.alice, rel.ID)
	s.Require().NoError(err)
	s.Equal(mary, got.Person2ID)
	s.Equal("Mary Smith", got.Person2Name)
}

func (s *RelationshipServiceTestSuite) TestUpdate_RevalidatesAndScopes() {
	rel, err := s.relationships.Create(s.ctx, s.alice, dto.RelationshipInput{Person1ID: s.john, Person2ID: s.jane})
	s.Require().NoError(err)

	_, err = s.relationships.Update(s.ctx, s.alice, rel.ID, dto.RelationshipInput{Person1ID: s.jane, Person2ID: s.jane})
	s.requireValidation(err, "person_ids", "a person cannot have a relationship with themselves")

	_, err = s.relationships.Update(s.ctx, s.alice, rel.ID, dto.RelationshipInput{Person1ID: s.john, Person2ID: s.ed})
	s.requireValidation(err, "person_ids", "both people must exist and belong to you")

	_, err = s.relationships.Update(s.ctx, s.bob, rel.ID, dto.RelationshipInput{Person1ID: s.ed, Person2ID: s.john})
	s.ErrorIs(err, ErrRelationshipNotFound)

	_, err = s.relationships.Update(s.ctx, s.alice, rel.ID+100, dto.RelationshipInput{Person1ID: s.john, Person2ID: s.jane})
	s.ErrorIs(err, ErrRelationshipNotFound)
}

func (s *RelationshipServiceTestSuite) TestDelete() {
	rel, err := s.relationships.Create(s.ctx, s.alice, dto.RelationshipInput{Person1ID: s.john, Person2ID: s.jane})
	s.Require().NoError(err)

	s.ErrorIs(s.relationships.Delete(s.ctx, s.bob, rel.ID), ErrRelationshipNotFound)

	s.Require().NoError(s.relationships.Delete(s.ctx, s.alice, rel.ID))
	s.ErrorIs(s.relationships.Delete(s.ctx, s.alice, rel.ID), ErrRelationshipNotFound)

	_, err = s.relationships.Get(s.ctx, s.alice, rel.ID)
	s.ErrorIs(err, ErrRelationshipNotFound)
}

func (s *RelationshipServiceTestSuite) TestDuplicatesAndReverseAllowed() {
	input := dto.RelationshipInput{Person1ID: s.john, Person2ID: s.jane, Type: "husband"}
	_, err := s.relationships.Create(s.ctx, s.alice, input)
	s.Require().NoError(err)
	_, err = s.relationships.Create(s.ctx, s.alice, input)
	s.Require().NoError(err)
	_, err = s.relationships.Create(s.ctx, s.alice, dto.RelationshipInput{Person1ID: s.jane, Person2ID: s.john, Type: "wife"})
	s.Require().NoError(err)

	list, err := s.relationships.List(s.ctx, s.alice)
	s.Require().NoError(err)
	s.Len(list, 3)
}
