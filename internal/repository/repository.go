package repository

import (
	"context"
	"time"

	"github.com/yukikurage/family-graph-api/internal/models"
)

// Store bundles the repositories bound to one database handle. Transaction
// hands the callback a Store bound to the transaction, so multi-step checks
// and the write that depends on them see the same snapshot.
type Store interface {
	Users() UserRepository
	Sessions() SessionRepository
	People() PersonRepository
	Relationships() RelationshipRepository
	Events() EventRepository

	// Transaction runs fn inside a single database transaction
	Transaction(ctx context.Context, fn func(tx Store) error) error

	// Ping checks database connectivity
	Ping(ctx context.Context) error
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *models.User) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(ctx context.Context, username string) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// Update saves all columns of the user
	Update(ctx context.Context, user *models.User) error

	// SetActive toggles the is_active flag
	SetActive(ctx context.Context, id uint64, active bool, now time.Time) error
}

// SessionRepository defines the interface for session data access
type SessionRepository interface {
	// Create persists a new session
	Create(ctx context.Context, session *models.Session) error

	// FindActiveUser returns the user owning an unexpired session for an
	// active account
	FindActiveUser(ctx context.Context, token string, now time.Time) (*models.User, error)

	// DeleteByToken removes the session with the given token
	DeleteByToken(ctx context.Context, token string) error

	// DeleteByUserID removes every session of a user
	DeleteByUserID(ctx context.Context, userID uint64) error
}

// PersonRepository defines the interface for person data access.
// Every query is scoped to a non-deleted person of the given owner.
type PersonRepository interface {
	// Create creates a new person
	Create(ctx context.Context, person *models.Person) error

	// FindOwned finds a visible person of the owner
	FindOwned(ctx context.Context, ownerID, id uint64) (*models.Person, error)

	// ListOwned lists visible people ordered by family and given name
	ListOwned(ctx context.Context, ownerID uint64) ([]models.Person, error)

	// Update saves all columns of the person
	Update(ctx context.Context, person *models.Person) error

	// SoftDelete flags a visible person as deleted
	SoftDelete(ctx context.Context, ownerID, id uint64, now time.Time) (int64, error)

	// CountOwned counts how many of the ids are visible people of the owner
	CountOwned(ctx context.Context, ownerID uint64, ids []uint64) (int64, error)
}

// RelationshipRow is a relationship joined to the names of both endpoints
type RelationshipRow struct {
	ID                uint64    `gorm:"column:id"`
	Person1ID         uint64    `gorm:"column:person1_id"`
	Person2ID         uint64    `gorm:"column:person2_id"`
	Type              string    `gorm:"column:type"`
	Details           *string   `gorm:"column:details"`
	StartDate         *string   `gorm:"column:start_date"`
	EndDate           *string   `gorm:"column:end_date"`
	CreatedAt         time.Time `gorm:"column:created_at"`
	UpdatedAt         time.Time `gorm:"column:updated_at"`
	Person1GivenName  string    `gorm:"column:person1_given_name"`
	Person1FamilyName string    `gorm:"column:person1_family_name"`
	Person2GivenName  string    `gorm:"column:person2_given_name"`
	Person2FamilyName string    `gorm:"column:person2_family_name"`
}

// Relationship returns the relationship columns of the row
func (r RelationshipRow) Relationship() models.Relationship {
	return models.Relationship{
		ID:        r.ID,
		Person1ID: r.Person1ID,
		Person2ID: r.Person2ID,
		Type:      r.Type,
		Details:   r.Details,
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// RelationshipRepository defines the interface for relationship data access.
// Ownership is derived by joining both endpoints to visible people of the owner.
type RelationshipRepository interface {
	// Create creates a new relationship
	Create(ctx context.Context, rel *models.Relationship) error

	// FindOwned finds a relationship whose endpoints are both visible to the owner
	FindOwned(ctx context.Context, ownerID, id uint64) (*RelationshipRow, error)

	// ListOwned lists relationships visible to the owner, newest first
	ListOwned(ctx context.Context, ownerID uint64) ([]RelationshipRow, error)

	// Update saves all columns of the relationship
	Update(ctx context.Context, rel *models.Relationship) error

	// Delete hard deletes a relationship
	Delete(ctx context.Context, id uint64) error
}

// EventRow is an event joined to its subject's names
type EventRow struct {
	ID               uint64    `gorm:"column:id"`
	Title            string    `gorm:"column:title"`
	EventDate        *string   `gorm:"column:event_date"`
	Place            *string   `gorm:"column:place"`
	Description      *string   `gorm:"column:description"`
	CreatedBy        uint64    `gorm:"column:created_by"`
	UserID           uint64    `gorm:"column:user_id"`
	CreatedAt        time.Time `gorm:"column:created_at"`
	UpdatedAt        time.Time `gorm:"column:updated_at"`
	PersonGivenName  *string   `gorm:"column:person_given_name"`
	PersonFamilyName *string   `gorm:"column:person_family_name"`
}

// Event returns the event columns of the row
func (r EventRow) Event() models.Event {
	return models.Event{
		ID:          r.ID,
		Title:       r.Title,
		EventDate:   r.EventDate,
		Place:       r.Place,
		Description: r.Description,
		CreatedBy:   r.CreatedBy,
		UserID:      r.UserID,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// PersonName returns the subject's display name, or nil when the join found
// no person
func (r EventRow) PersonName() *string {
	if r.PersonGivenName == nil || r.PersonFamilyName == nil {
		return nil
	}
	name := models.DisplayName(*r.PersonGivenName, *r.PersonFamilyName)
	return &name
}

// EventRepository defines the interface for event data access
type EventRepository interface {
	// Create creates a new event
	Create(ctx context.Context, event *models.Event) error

	// FindOwned finds an event of the owner with its subject's name
	FindOwned(ctx context.Context, ownerID, id uint64) (*EventRow, error)

	// ListOwned lists the owner's events, undated last, newest date first
	ListOwned(ctx context.Context, ownerID uint64) ([]EventRow, error)

	// Update saves all columns of the event
	Update(ctx context.Context, event *models.Event) error

	// DeleteOwned hard deletes an event of the owner
	DeleteOwned(ctx context.Context, ownerID, id uint64) (int64, error)
}
