package router

import (
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/family-graph-api/internal/constants"
	"github.com/yukikurage/family-graph-api/internal/handlers"
	"github.com/yukikurage/family-graph-api/internal/logger"
	"github.com/yukikurage/family-graph-api/internal/middleware"
	"github.com/yukikurage/family-graph-api/internal/repository"
	"github.com/yukikurage/family-graph-api/internal/services"
)

// Services groups the services behind the HTTP API.
type Services struct {
	Auth          *services.AuthService
	Sessions      *services.SessionService
	People        *services.PersonService
	Relationships *services.RelationshipService
	Events        *services.EventService
}

// NewServices wires every service to store.
func NewServices(store repository.Store, sessionTTL time.Duration, bcryptCost int) Services {
	sessionService := services.NewSessionService(store, sessionTTL)
	return Services{
		Auth:          services.NewAuthService(store, services.NewCredentialStore(bcryptCost), sessionService),
		Sessions:      sessionService,
		People:        services.NewPersonService(store),
		Relationships: services.NewRelationshipService(store),
		Events:        services.NewEventService(store),
	}
}

// New builds the gin engine with every API route mounted.
func New(store repository.Store, sessionStore sessions.Store, svc Services) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger.Log))
	r.Use(sessions.Sessions(constants.SessionCookieName, sessionStore))

	authHandler := handlers.NewAuthHandler(svc.Auth)
	personHandler := handlers.NewPersonHandler(svc.People)
	relationshipHandler := handlers.NewRelationshipHandler(svc.Relationships)
	eventHandler := handlers.NewEventHandler(svc.Events)
	healthHandler := handlers.NewHealthHandler(store)

	requireAuth := middleware.RequireAuth(svc.Sessions)

	api := r.Group("/api")
	{
		api.GET("/health", healthHandler.Health)

		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", requireAuth, authHandler.Logout)
			auth.GET("/me", requireAuth, authHandler.GetCurrentUser)
			auth.PATCH("/me", requireAuth, authHandler.UpdateCurrentUser)
			auth.DELETE("/me", requireAuth, authHandler.DeactivateCurrentUser)
		}

		api.GET("/relationship-types", requireAuth, relationshipHandler.ListTypes)

		// People routes (protected)
		people := api.Group("/people")
		people.Use(requireAuth)
		{
			people.GET("", personHandler.ListPeople)
			people.POST("", personHandler.CreatePerson)
			people.GET("/:id", personHandler.GetPerson)
			people.PUT("/:id", personHandler.ReplacePerson)
			people.PATCH("/:id", personHandler.PatchPerson)
			people.DELETE("/:id", personHandler.DeletePerson)
		}

		// Relationship routes (protected)
		relationships := api.Group("/relationships")
		relationships.Use(requireAuth)
		{
			relationships.GET("", relationshipHandler.ListRelationships)
			relationships.POST("", relationshipHandler.CreateRelationship)
			relationships.GET("/:id", relationshipHandler.GetRelationship)
			relationships.PUT("/:id", relationshipHandler.UpdateRelationship)
			relationships.DELETE("/:id", relationshipHandler.DeleteRelationship)
		}

		// Event routes (protected)
		events := api.Group("/events")
		events.Use(requireAuth)
		{
			events.GET("", eventHandler.ListEvents)
			events.POST("", eventHandler.CreateEvent)
			events.GET("/:id", eventHandler.GetEvent)
			events.PUT("/:id", eventHandler.ReplaceEvent)
			events.PATCH("/:id", eventHandler.PatchEvent)
			events.DELETE("/:id", eventHandler.DeleteEvent)
		}
	}

	return r
}
