package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/family-graph-api/internal/config"
	"github.com/yukikurage/family-graph-api/internal/constants"
	"github.com/yukikurage/family-graph-api/internal/database"
	"github.com/yukikurage/family-graph-api/internal/dto"
	apierrors "github.com/yukikurage/family-graph-api/internal/errors"
	"github.com/yukikurage/family-graph-api/internal/models"
	"github.com/yukikurage/family-graph-api/internal/repository"
	"github.com/yukikurage/family-graph-api/internal/services"
	"golang.org/x/crypto/bcrypt"
)

type testEnv struct {
	store       repository.Store
	authService *services.AuthService
	sessions    *services.SessionService
	people      *services.PersonService
	handler     *AuthHandler
}

func setupTestEnv(t *testing.T) testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Connect(&config.Config{DBDriver: "sqlite", SQLitePath: ":memory:", LogLevel: "silent"})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	store := repository.NewStore(db)
	sessionService := services.NewSessionService(store, time.Hour)
	authService := services.NewAuthService(store, services.NewCredentialStore(bcrypt.MinCost), sessionService)

	return testEnv{
		store:       store,
		authService: authService,
		sessions:    sessionService,
		people:      services.NewPersonService(store),
		handler:     NewAuthHandler(authService),
	}
}

func (env testEnv) register(t *testing.T, username string) *models.User {
	t.Helper()
	user, err := env.authService.Register(context.Background(), services.RegisterInput{
		Username: username,
		Password: "supersecret",
	})
	require.NoError(t, err)
	return user
}

// withCaller mimics the auth middleware for handlers exercised in isolation.
func withCaller(user *models.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		profile := user.Profile()
		c.Set(constants.ContextKeyCurrentUser, &profile)
		c.Next()
	}
}

func newSessionRouter() *gin.Engine {
	r := gin.New()
	r.Use(sessions.Sessions(constants.SessionCookieName, cookie.NewStore([]byte("secret"))))
	return r
}

func doJSON(r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) apierrors.APIError {
	t.Helper()
	var body apierrors.APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestAuthHandler_Register(t *testing.T) {
	env := setupTestEnv(t)

	r := newSessionRouter()
	r.POST("/api/auth/register", env.handler.Register)

	w := doJSON(r, http.MethodPost, "/api/auth/register", map[string]string{
		"username":  "newuser",
		"password":  "supersecret",
		"email":     "New@Example.com",
		"full_name": "New User",
	})

	require.Equal(t, http.StatusCreated, w.Code)

	var response dto.RegisterResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.NotZero(t, response.UserID)
	assert.Equal(t, response.UserID, response.User.ID)
	assert.Equal(t, "newuser", response.User.Username)
	require.NotNil(t, response.User.Email)
	assert.Equal(t, "new@example.com", *response.User.Email)
	assert.NotContains(t, w.Body.String(), "password")
}

func TestAuthHandler_Register_Errors(t *testing.T) {
	env := setupTestEnv(t)
	env.register(t, "existing")

	r := newSessionRouter()
	r.POST("/api/auth/register", env.handler.Register)

	tests := []struct {
		name     string
		body     interface{}
		wantCode string
	}{
		{"duplicate username", map[string]string{"username": "existing", "password": "supersecret"}, apierrors.ErrCodeConflict},
		{"short password", map[string]string{"username": "someone", "password": "123"}, apierrors.ErrCodeInvalidInput},
		{"missing username", map[string]string{"password": "supersecret"}, apierrors.ErrCodeInvalidInput},
		{"malformed body", "not an object", apierrors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(r, http.MethodPost, "/api/auth/register", tt.body)

			require.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.wantCode, decodeError(t, w).Code)
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	env := setupTestEnv(t)
	user := env.register(t, "existing")

	r := newSessionRouter()
	r.POST("/api/auth/login", env.handler.Login)

	w := doJSON(r, http.MethodPost, "/api/auth/login", map[string]string{
		"username": "existing",
		"password": "supersecret",
	})

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, user.ID, response.User.ID)
	assert.NotEmpty(t, response.Token)
	assert.False(t, response.ExpiresAt.IsZero())

	profile := env.sessions.Resolve(context.Background(), constants.BearerPrefix+response.Token)
	require.NotNil(t, profile)
	assert.Equal(t, user.ID, profile.ID)

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies, "expected session cookie to be set")
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	env := setupTestEnv(t)
	env.register(t, "existing")

	r := newSessionRouter()
	r.POST("/api/auth/login", env.handler.Login)

	w := doJSON(r, http.MethodPost, "/api/auth/login", map[string]string{
		"username": "existing",
		"password": "wrong-password",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, apierrors.ErrCodeInvalidCredentials, decodeError(t, w).Code)

	w = doJSON(r, http.MethodPost, "/api/auth/login", map[string]string{"username": "existing"})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_GetCurrentUser(t *testing.T) {
	env := setupTestEnv(t)
	user := env.register(t, "current-user")

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	profile := user.Profile()
	c.Set(constants.ContextKeyCurrentUser, &profile)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)

	env.handler.GetCurrentUser(c)

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.UserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, user.Username, response.Username)
}

func TestAuthHandler_GetCurrentUser_Unauthenticated(t *testing.T) {
	env := setupTestEnv(t)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)

	env.handler.GetCurrentUser(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_UpdateCurrentUser(t *testing.T) {
	env := setupTestEnv(t)
	user := env.register(t, "alice")

	r := newSessionRouter()
	r.PATCH("/api/auth/me", withCaller(user), env.handler.UpdateCurrentUser)

	w := doJSON(r, http.MethodPatch, "/api/auth/me", map[string]interface{}{"full_name": "Alice Smith"})
	require.Equal(t, http.StatusOK, w.Code)

	var response dto.UserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Alice Smith", response.FullName)

	w = doJSON(r, http.MethodPatch, "/api/auth/me", map[string]interface{}{"password": "abc"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeError(t, w)
	assert.Equal(t, apierrors.ErrCodeInvalidInput, body.Code)
	assert.Equal(t, map[string]interface{}{"field": "password"}, body.Details)
}

func TestAuthHandler_DeactivateCurrentUser(t *testing.T) {
	env := setupTestEnv(t)
	user := env.register(t, "alice")
	result, err := env.authService.Login(context.Background(), services.LoginInput{Username: "alice", Password: "supersecret"})
	require.NoError(t, err)

	r := newSessionRouter()
	r.DELETE("/api/auth/me", withCaller(user), env.handler.DeactivateCurrentUser)

	w := doJSON(r, http.MethodDelete, "/api/auth/me", nil)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Nil(t, env.sessions.Resolve(context.Background(), constants.BearerPrefix+result.Token))
}
