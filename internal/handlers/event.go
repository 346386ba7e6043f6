package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/family-graph-api/internal/dto"
	"github.com/yukikurage/family-graph-api/internal/services"
)

// EventHandler serves the caller's life events.
type EventHandler struct {
	eventService *services.EventService
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(eventService *services.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// ListEvents returns the caller's events
func (h *EventHandler) ListEvents(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	events, err := h.eventService.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"events": events})
}

// GetEvent returns a single event
func (h *EventHandler) GetEvent(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	event, err := h.eventService.Get(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, event)
}

// CreateEvent records an event
func (h *EventHandler) CreateEvent(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req dto.CreateEventRequest
	if !bindJSON(c, &req) {
		return
	}

	event, err := h.eventService.Create(c.Request.Context(), userID, services.CreateEventInput{
		PersonID:    req.PersonID,
		Title:       req.Title,
		EventDate:   req.EventDate,
		Place:       req.Place,
		Description: req.Description,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": event.ID})
}

// ReplaceEvent overwrites every mutable field; omitted fields are cleared.
func (h *EventHandler) ReplaceEvent(c *gin.Context) {
	h.updateEvent(c, true)
}

// PatchEvent changes only the fields present in the body.
func (h *EventHandler) PatchEvent(c *gin.Context) {
	h.updateEvent(c, false)
}

func (h *EventHandler) updateEvent(c *gin.Context, full bool) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	var patch dto.EventPatch
	if !bindJSON(c, &patch) {
		return
	}
	if full {
		patch = patch.Full()
	}

	if _, err := h.eventService.Update(c.Request.Context(), userID, id, patch); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Event updated successfully"})
}

// DeleteEvent removes an event
func (h *EventHandler) DeleteEvent(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.eventService.Delete(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Event deleted successfully"})
}
