package middleware

//go:generate mockgen -source=auth.go -destination=auth_mock.go -package=middleware

import (
	"context"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/family-graph-api/internal/constants"
	apierrors "github.com/yukikurage/family-graph-api/internal/errors"
	"github.com/yukikurage/family-graph-api/internal/models"
)

// SessionResolver maps a bearer credential to the caller it authenticates,
// or nil when the credential proves nothing.
type SessionResolver interface {
	Resolve(ctx context.Context, credential string) *models.UserProfile
}

// RequireAuth authenticates the request before any handler runs. The
// credential comes from the Authorization header, or from the cookie session
// written at login when the header is absent.
func RequireAuth(resolver SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		credential := Credential(c)
		if credential == "" {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		user := resolver.Resolve(c.Request.Context(), credential)
		if user == nil {
			apierrors.Unauthorized(c, "Invalid or expired session")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyCurrentUser, user)
		c.Set(constants.ContextKeyToken, strings.TrimSpace(strings.TrimPrefix(credential, constants.BearerPrefix)))
		c.Next()
	}
}

// Credential returns the raw credential presented with the request.
func Credential(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		return header
	}

	session := sessionFrom(c)
	if session == nil {
		return ""
	}
	credential, _ := session.Get(constants.SessionKeyCredential).(string)
	return credential
}

// CurrentUser retrieves the authenticated caller from context
func CurrentUser(c *gin.Context) (*models.UserProfile, bool) {
	value, exists := c.Get(constants.ContextKeyCurrentUser)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.UserProfile)
	return user, ok && user != nil
}

// SessionToken retrieves the bare token the caller authenticated with
func SessionToken(c *gin.Context) string {
	return c.GetString(constants.ContextKeyToken)
}

// sessionFrom returns the cookie session, or nil when the sessions
// middleware is not installed.
func sessionFrom(c *gin.Context) sessions.Session {
	if _, ok := c.Get(sessions.DefaultKey); !ok {
		return nil
	}
	return sessions.Default(c)
}
