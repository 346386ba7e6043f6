package handlers

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/family-graph-api/internal/constants"
	"github.com/yukikurage/family-graph-api/internal/dto"
	"github.com/yukikurage/family-graph-api/internal/logger"
	"github.com/yukikurage/family-graph-api/internal/middleware"
	"github.com/yukikurage/family-graph-api/internal/services"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register creates a new account.
func (h *AuthHandler) Register(c *gin.Context) {
	type RegisterRequest struct {
		Username string  `json:"username"`
		Password string  `json:"password"`
		Email    *string `json:"email"`
		FullName string  `json:"full_name"`
	}

	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.authService.Register(c.Request.Context(), services.RegisterInput{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
		FullName: req.FullName,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.RegisterResponse{
		UserID: user.ID,
		User:   dto.ToUserDTO(*user),
	})
}

// Login authenticates a user, issues a session token and mirrors it into
// the cookie session for browser clients.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.authService.Login(c.Request.Context(), services.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	session := sessions.Default(c)
	session.Set(constants.SessionKeyCredential, constants.BearerPrefix+result.Token)
	if err := session.Save(); err != nil {
		logger.Log.Warnw("failed to save cookie session", "user_id", result.User.ID, "err", err)
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
		User:      dto.ToUserDTO(*result.User),
	})
}

// Logout revokes the presented session token.
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.authService.Logout(c.Request.Context(), middleware.SessionToken(c)); err != nil {
		respondError(c, err)
		return
	}
	clearCookieSession(c)

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out successfully",
	})
}

// GetCurrentUser returns the authenticated user.
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	user, err := h.authService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// UpdateCurrentUser changes the caller's email, full name or password.
func (h *AuthHandler) UpdateCurrentUser(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var patch dto.UserPatch
	if !bindJSON(c, &patch) {
		return
	}

	user, err := h.authService.UpdateProfile(c.Request.Context(), userID, patch)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// DeactivateCurrentUser disables the caller's account and ends every session.
func (h *AuthHandler) DeactivateCurrentUser(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	if err := h.authService.Deactivate(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}
	clearCookieSession(c)

	c.JSON(http.StatusOK, gin.H{
		"message": "Account deactivated",
	})
}

func clearCookieSession(c *gin.Context) {
	if _, ok := c.Get(sessions.DefaultKey); !ok {
		return
	}
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		logger.Log.Warnw("failed to clear cookie session", "err", err)
	}
}
