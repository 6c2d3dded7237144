package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds the process-wide configuration. It is built once at startup
// and passed into module constructors; nothing reads the environment after
// Load returns.
type Config struct {
	Port       string
	AppEnv     string
	JWTSecret  string
	JWTIssuer  string
	AuthDBPath string
	TodoDBPath string
	DBDebug    bool
}

// Load reads configuration from the environment, honoring a local .env file
// when present.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, using environment variables")
	}

	return &Config{
		Port:       getEnv("PORT", "5000"),
		AppEnv:     getEnv("APP_ENV", "development"),
		JWTSecret:  os.Getenv("JWT_SECRET_KEY"),
		JWTIssuer:  getEnv("JWT_ISSUER", "todo-app"),
		AuthDBPath: getEnv("AUTH_DB_PATH", "users.db"),
		TodoDBPath: getEnv("TODO_DB_PATH", "todos.db"),
		DBDebug:    os.Getenv("DB_DEBUG") == "true",
	}
}

// IsProduction reports whether the app runs in production mode. It controls
// the Secure flag on the session cookie.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
