package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/family-graph-api/internal/constants"
	apierrors "github.com/yukikurage/family-graph-api/internal/errors"
	"github.com/yukikurage/family-graph-api/internal/logger"
	"github.com/yukikurage/family-graph-api/internal/middleware"
	"github.com/yukikurage/family-graph-api/internal/services"
)

// respondError maps a service error onto the API error envelope. Anything
// unrecognized is logged and reported as a generic 500.
func respondError(c *gin.Context, err error) {
	var validationErr *services.ValidationError

	switch {
	case errors.As(err, &validationErr):
		apierrors.BadRequestWithDetails(c, validationErr.Message, apierrors.FieldDetails{Field: validationErr.Field})
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.InvalidCredentials(c, err.Error())
	case errors.Is(err, services.ErrUnauthenticated):
		apierrors.Unauthorized(c, "")
	case errors.Is(err, services.ErrNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrConflict):
		apierrors.Conflict(c, err.Error())
	default:
		logger.Log.Errorw("request failed",
			"request_id", c.GetString(constants.ContextKeyRequestID),
			"path", c.FullPath(),
			"err", err,
		)
		_ = c.Error(err)
		apierrors.InternalError(c, "")
	}
}

// callerID returns the authenticated user's id, answering 401 when the
// route was mounted without the auth middleware.
func callerID(c *gin.Context) (uint64, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return 0, false
	}
	return user.ID, true
}

// parseID reads the :id path parameter.
func parseID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		apierrors.BadRequestWithDetails(c, "Invalid id", apierrors.FieldDetails{Field: "id"})
		return 0, false
	}
	return id, true
}

func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return false
	}
	return true
}
