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

// EventService manages the caller's life events.
type EventService struct {
	clock
	store repository.Store
}

// NewEventService creates a new EventService.
func NewEventService(store repository.Store) *EventService {
	return &EventService{store: store}
}

// CreateEventInput holds the fields of a new event.
type CreateEventInput struct {
	PersonID    uint64
	Title       string
	EventDate   *string
	Place       *string
	Description *string
}

// List returns the caller's events, undated events last.
func (s *EventService) List(ctx context.Context, callerID uint64) ([]dto.EventDTO, error) {
	rows, err := s.store.Events().ListOwned(ctx, callerID)
	if err != nil {
		return nil, storageError("failed to list events", err)
	}

	result := make([]dto.EventDTO, 0, len(rows))
	for _, row := range rows {
		result = append(result, dto.ToEventDTO(row.Event(), row.PersonName()))
	}
	return result, nil
}

// Get returns one event of the caller.
func (s *EventService) Get(ctx context.Context, callerID, id uint64) (*dto.EventDTO, error) {
	row, err := findEvent(ctx, s.store, callerID, id)
	if err != nil {
		return nil, err
	}
	event := dto.ToEventDTO(row.Event(), row.PersonName())
	return &event, nil
}

// Create records an event about one of the caller's people.
func (s *EventService) Create(ctx context.Context, callerID uint64, input CreateEventInput) (*models.Event, error) {
	if input.PersonID == 0 {
		return nil, newValidationError("person_id", "person is required")
	}
	title, err := requireTitle(input.Title)
	if err != nil {
		return nil, err
	}

	now := s.timeNow()
	event := &models.Event{
		Title:       title,
		EventDate:   input.EventDate,
		Place:       input.Place,
		Description: input.Description,
		CreatedBy:   input.PersonID,
		UserID:      callerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = s.store.Transaction(ctx, func(tx repository.Store) error {
		if _, err := findPerson(ctx, tx, callerID, input.PersonID); err != nil {
			return err
		}
		if err := tx.Events().Create(ctx, event); err != nil {
			return storageError("failed to create event", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return event, nil
}

// Update applies patch to one of the caller's events. The subject person is
// re-checked even when person_id is unchanged.
func (s *EventService) Update(ctx context.Context, callerID, id uint64, patch dto.EventPatch) (*models.Event, error) {
	var updated *models.Event

	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		row, err := findEvent(ctx, tx, callerID, id)
		if err != nil {
			return err
		}
		event := row.Event()

		if patch.PersonID.Set {
			if patch.PersonID.Null || patch.PersonID.Value == 0 {
				return newValidationError("person_id", "person is required")
			}
			event.CreatedBy = patch.PersonID.Value
		}
		if patch.Title.Set {
			if event.Title, err = requireTitle(patch.Title.Value); err != nil {
				return err
			}
		}
		applyString(&event.EventDate, patch.EventDate)
		applyString(&event.Place, patch.Place)
		applyString(&event.Description, patch.Description)

		if _, err := findPerson(ctx, tx, callerID, event.CreatedBy); err != nil {
			return err
		}

		event.UpdatedAt = s.timeNow()
		if err := tx.Events().Update(ctx, &event); err != nil {
			return storageError("failed to update event", err)
		}
		updated = &event
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// Delete removes one of the caller's events.
func (s *EventService) Delete(ctx context.Context, callerID, id uint64) error {
	affected, err := s.store.Events().DeleteOwned(ctx, callerID, id)
	if err != nil {
		return storageError("failed to delete event", err)
	}
	if affected == 0 {
		return ErrEventNotFound
	}
	return nil
}

func findEvent(ctx context.Context, store repository.Store, callerID, id uint64) (*repository.EventRow, error) {
	row, err := store.Events().FindOwned(ctx, callerID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, storageError("failed to find event", err)
	}
	return row, nil
}

func requireTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", newValidationError("title", "title is required")
	}
	return title, nil
}
