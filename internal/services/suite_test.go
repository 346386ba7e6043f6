package services

import (
	"context"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/family-graph-api/internal/config"
	"github.com/yukikurage/family-graph-api/internal/database"
	"github.com/yukikurage/family-graph-api/internal/models"
	"github.com/yukikurage/family-graph-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

func (c *testClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// serviceSuite gives each test a fresh in-memory database with every
// service wired to it and to one controllable clock.
type serviceSuite struct {
	suite.Suite
	ctx   context.Context
	db    *gorm.DB
	store repository.Store
	clock *testClock

	credentials   *CredentialStore
	sessions      *SessionService
	auth          *AuthService
	people        *PersonService
	relationships *RelationshipService
	events        *EventService
}

func (s *serviceSuite) SetupTest() {
	db, err := database.Connect(&config.Config{DBDriver: "sqlite", SQLitePath: ":memory:", LogLevel: "silent"})
	s.Require().NoError(err)
	s.Require().NoError(database.Migrate(db))

	sqlDB, err := db.DB()
	s.Require().NoError(err)
	s.T().Cleanup(func() { sqlDB.Close() })

	s.ctx = context.Background()
	s.db = db
	s.store = repository.NewStore(db)
	s.clock = &testClock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}

	s.credentials = NewCredentialStore(bcrypt.MinCost)
	s.sessions = NewSessionService(s.store, time.Hour)
	s.auth = NewAuthService(s.store, s.credentials, s.sessions)
	s.people = NewPersonService(s.store)
	s.relationships = NewRelationshipService(s.store)
	s.events = NewEventService(s.store)

	s.sessions.SetClock(s.clock.Now)
	s.auth.SetClock(s.clock.Now)
	s.people.SetClock(s.clock.Now)
	s.relationships.SetClock(s.clock.Now)
	s.events.SetClock(s.clock.Now)
}

func (s *serviceSuite) createUser(username string) uint64 {
	user, err := s.auth.Register(s.ctx, RegisterInput{Username: username, Password: "secret123"})
	s.Require().NoError(err)
	return user.ID
}

func (s *serviceSuite) createPerson(ownerID uint64, givenName, familyName string) *models.Person {
	person, err := s.people.Create(s.ctx, ownerID, CreatePersonInput{GivenName: givenName, FamilyName: familyName})
	s.Require().NoError(err)
	return person
}

func (s *serviceSuite) requireValidation(err error, field, message string) {
	var validationErr *ValidationError
	s.Require().ErrorAs(err, &validationErr)
	s.Equal(field, validationErr.Field)
	s.Equal(message, validationErr.Message)
}

func ptr[T any](v T) *T {
	return &v
}
