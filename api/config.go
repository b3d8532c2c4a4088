package api

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds process configuration loaded from environment variables.
type Config struct {
	Addr          string
	StaticDir     string
	MongoURI      string
	MongoDatabase string
	JWTSecret     string
	JWTIssuer     string
	ReadTimeout   time.Duration
	WriteTimeout  time.Duration
	SeedAdmin     bool
	AdminEmail    string
	AdminUsername string
	AdminPassword string
}

// LoadConfig reads a .env file when present, then the environment.
func LoadConfig() Config {
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment variables from .env")
	}
	cfg := Config{
		Addr:          getEnv("LISTEN_ADDR", ":8080"),
		StaticDir:     getEnv("STATIC_DIR", "./client/public"),
		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnv("MONGO_DB", "laneglide"),
		JWTSecret:     getEnv("JWT_SECRET", "dev-secret-change-me"),
		JWTIssuer:     getEnv("JWT_ISSUER", "laneglide-server"),
		ReadTimeout:   parseDuration(getEnv("API_READ_TIMEOUT", "15s"), 15*time.Second),
		WriteTimeout:  parseDuration(getEnv("API_WRITE_TIMEOUT", "15s"), 15*time.Second),
		SeedAdmin:     getEnv("ADMIN_SEED", "true") == "true",
		AdminEmail:    getEnv("ADMIN_EMAIL", "admin@example.com"),
		AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "ChangeMe1!"),
	}
	if cfg.JWTSecret == "dev-secret-change-me" {
		log.Println("[WARN] Using default JWT secret; set JWT_SECRET in production")
	}
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDuration(s string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return def
	}
	return d
}
