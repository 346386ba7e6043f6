package repository

import (
	"context"

	"gorm.io/gorm"
)

// GormStore is a GORM implementation of Store
type GormStore struct {
	db *gorm.DB
}

// NewStore creates a Store bound to db
func NewStore(db *gorm.DB) Store {
	return &GormStore{db: db}
}

func (s *GormStore) Users() UserRepository {
	return NewUserRepository(s.db)
}

func (s *GormStore) Sessions() SessionRepository {
	return NewSessionRepository(s.db)
}

func (s *GormStore) People() PersonRepository {
	return NewPersonRepository(s.db)
}

func (s *GormStore) Relationships() RelationshipRepository {
	return NewRelationshipRepository(s.db)
}

func (s *GormStore) Events() EventRepository {
	return NewEventRepository(s.db)
}

// Transaction runs fn with a Store bound to a new transaction. The
// transaction commits when fn returns nil and rolls back otherwise.
func (s *GormStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}

// Ping checks database connectivity
func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
