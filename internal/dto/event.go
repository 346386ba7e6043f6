package dto

import (
	"time"

	"github.com/yukikurage/family-graph-api/internal/models"
)

// CreateEventRequest is the body of POST /api/events
type CreateEventRequest struct {
	PersonID    uint64  `json:"person_id"`
	Title       string  `json:"title"`
	EventDate   *string `json:"event_date"`
	Place       *string `json:"place"`
	Description *string `json:"description"`
}

// EventPatch carries one tri-state slot per mutable event column.
type EventPatch struct {
	PersonID    Optional[uint64] `json:"person_id"`
	Title       Optional[string] `json:"title"`
	EventDate   Optional[string] `json:"event_date"`
	Place       Optional[string] `json:"place"`
	Description Optional[string] `json:"description"`
}

// Full turns every absent slot into null so the patch overwrites all columns.
func (p EventPatch) Full() EventPatch {
	return EventPatch{
		PersonID:    p.PersonID.OrNull(),
		Title:       p.Title.OrNull(),
		EventDate:   p.EventDate.OrNull(),
		Place:       p.Place.OrNull(),
		Description: p.Description.OrNull(),
	}
}

// EventDTO represents an event joined to its subject's display name
type EventDTO struct {
	ID          uint64    `json:"id"`
	Title       string    `json:"title"`
	EventDate   *string   `json:"event_date"`
	Place       *string   `json:"place"`
	Description *string   `json:"description"`
	PersonID    uint64    `json:"person_id"`
	PersonName  *string   `json:"person_name"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToEventDTO converts an Event model to EventDTO
func ToEventDTO(event models.Event, personName *string) EventDTO {
	return EventDTO{
		ID:          event.ID,
		Title:       event.Title,
		EventDate:   event.EventDate,
		Place:       event.Place,
		Description: event.Description,
		PersonID:    event.CreatedBy,
		PersonName:  personName,
		CreatedAt:   event.CreatedAt,
		UpdatedAt:   event.UpdatedAt,
	}
}
