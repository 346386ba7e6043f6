package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/yukikurage/family-graph-api/internal/constants"
	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	Port          string
	GinMode       string
	LogLevel      string
	DBDriver      string
	SQLitePath    string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	SessionStore  string
	RedisHost     string
	RedisPort     string
	SessionSecret string
	SessionTTL    time.Duration
	BcryptCost    int
}

// Load reads configuration from the environment. Values from the optional
// dotenv files are applied first and never override variables already set.
func Load(envFiles ...string) *Config {
	for _, f := range envFiles {
		_ = godotenv.Load(f)
	}

	return &Config{
		Port:          getEnv("APP_PORT", "8080"),
		GinMode:       getEnv("GIN_MODE", "debug"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		DBDriver:      getEnv("DB_DRIVER", "sqlite"),
		SQLitePath:    getEnv("SQLITE_DB_PATH", filepath.Join("data", "family.db")),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "3306"),
		DBUser:        getEnv("DB_USER", "familyuser"),
		DBPassword:    getEnv("DB_PASSWORD", "familypassword"),
		DBName:        getEnv("DB_NAME", "family_graph"),
		SessionStore:  getEnv("SESSION_STORE", "cookie"),
		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		SessionSecret: getEnv("SESSION_SECRET", "default-secret-key-change-me"),
		SessionTTL:    getDuration("SESSION_TTL", constants.DefaultSessionTTL),
		BcryptCost:    getInt("BCRYPT_COST", bcrypt.DefaultCost),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getInt(key string, defaultValue int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return n
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil || d <= 0 {
		return defaultValue
	}
	return d
}
