package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/family-graph-api/internal/dto"
	"github.com/yukikurage/family-graph-api/internal/services"
)

// PersonHandler serves the caller's people.
type PersonHandler struct {
	personService *services.PersonService
}

// NewPersonHandler creates a new PersonHandler.
func NewPersonHandler(personService *services.PersonService) *PersonHandler {
	return &PersonHandler{personService: personService}
}

// ListPeople returns the caller's people sorted by name
func (h *PersonHandler) ListPeople(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	people, err := h.personService.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"people": people})
}

// GetPerson returns a single person
func (h *PersonHandler) GetPerson(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	person, err := h.personService.Get(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, person)
}

// CreatePerson adds a person
func (h *PersonHandler) CreatePerson(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req dto.CreatePersonRequest
	if !bindJSON(c, &req) {
		return
	}

	person, err := h.personService.Create(c.Request.Context(), userID, services.CreatePersonInput{
		GivenName:  req.GivenName,
		FamilyName: req.FamilyName,
		OtherNames: req.OtherNames,
		Gender:     req.Gender,
		BirthDate:  req.BirthDate,
		DeathDate:  req.DeathDate,
		BirthPlace: req.BirthPlace,
		Bio:        req.Bio,
		Relation:   req.Relation,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": person.ID})
}

// ReplacePerson overwrites every mutable field; omitted fields are cleared.
func (h *PersonHandler) ReplacePerson(c *gin.Context) {
	h.updatePerson(c, true)
}

// PatchPerson changes only the fields present in the body.
func (h *PersonHandler) PatchPerson(c *gin.Context) {
	h.updatePerson(c, false)
}

func (h *PersonHandler) updatePerson(c *gin.Context, full bool) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	var patch dto.PersonPatch
	if !bindJSON(c, &patch) {
		return
	}
	if full {
		patch = patch.Full()
	}

	if _, err := h.personService.Update(c.Request.Context(), userID, id, patch); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Person updated successfully"})
}

// DeletePerson soft deletes a person
func (h *PersonHandler) DeletePerson(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.personService.SoftDelete(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Person deleted successfully"})
}
