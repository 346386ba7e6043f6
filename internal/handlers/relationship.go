package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/family-graph-api/internal/dto"
	"github.com/yukikurage/family-graph-api/internal/services"
)

// RelationshipHandler serves relationships between the caller's people.
type RelationshipHandler struct {
	relationshipService *services.RelationshipService
}

// NewRelationshipHandler creates a new RelationshipHandler.
func NewRelationshipHandler(relationshipService *services.RelationshipService) *RelationshipHandler {
	return &RelationshipHandler{relationshipService: relationshipService}
}

// ListTypes returns the allowed relationship types
func (h *RelationshipHandler) ListTypes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"types": h.relationshipService.ListTypes()})
}

// ListRelationships returns the caller's relationships, newest first
func (h *RelationshipHandler) ListRelationships(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	relationships, err := h.relationshipService.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"relationships": relationships})
}

// GetRelationship returns a single relationship
func (h *RelationshipHandler) GetRelationship(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	rel, err := h.relationshipService.Get(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, rel)
}

// CreateRelationship links two people
func (h *RelationshipHandler) CreateRelationship(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req dto.RelationshipInput
	if !bindJSON(c, &req) {
		return
	}

	rel, err := h.relationshipService.Create(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": rel.ID})
}

// UpdateRelationship overwrites a relationship
func (h *RelationshipHandler) UpdateRelationship(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req dto.RelationshipInput
	if !bindJSON(c, &req) {
		return
	}

	if _, err := h.relationshipService.Update(c.Request.Context(), userID, id, req); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Relationship updated successfully"})
}

// DeleteRelationship removes a relationship
func (h *RelationshipHandler) DeleteRelationship(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.relationshipService.Delete(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Relationship deleted successfully"})
}
