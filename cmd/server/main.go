package main

import (
	"log"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/family-graph-api/internal/config"
	"github.com/yukikurage/family-graph-api/internal/database"
	"github.com/yukikurage/family-graph-api/internal/logger"
	"github.com/yukikurage/family-graph-api/internal/repository"
	"github.com/yukikurage/family-graph-api/internal/router"
)

func main() {
	// Load configuration
	cfg := config.Load(".env")

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	if err := logger.Initialize(cfg.LogLevel, cfg.GinMode == gin.DebugMode); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		logger.Log.Fatalw("Failed to connect to database", "err", err)
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		logger.Log.Fatalw("Failed to run migrations", "err", err)
	}

	sessionStore, err := newSessionStore(cfg)
	if err != nil {
		logger.Log.Fatalw("Failed to create session store", "store", cfg.SessionStore, "err", err)
	}

	store := repository.NewStore(db)
	r := router.New(store, sessionStore, router.NewServices(store, cfg.SessionTTL, cfg.BcryptCost))

	// Start server
	logger.Log.Infow("Server starting", "port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Log.Fatalw("Failed to start server", "err", err)
	}
}

// newSessionStore builds the cookie session backend carrying the browser
// credential, signed with the configured secret.
func newSessionStore(cfg *config.Config) (sessions.Store, error) {
	var store sessions.Store
	switch cfg.SessionStore {
	case "redis":
		redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
		rs, err := redisStore.NewStore(
			10,        // Redis pool size
			"tcp",     // network type
			redisAddr, // Redis address from config
			"",        // password (empty = no password)
			[]byte(cfg.SessionSecret),
		)
		if err != nil {
			return nil, err
		}
		store = rs
	default:
		store = cookie.NewStore([]byte(cfg.SessionSecret))
	}

	isProduction := cfg.GinMode == gin.ReleaseMode
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int(cfg.SessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // Lax
	})
	return store, nil
}
