package config

import (
	"os"
	"strings"
)

const defaultJWTSecret = "change-me-in-production"

type Config struct {
	MongoURI       string
	MongoDB        string
	JWTSecret      string
	Port           string
	AllowedOrigins []string // CORS: from ALLOWED_ORIGINS or FRONTEND_URL
}

func Load() *Config {
	allowedOrigins := parseOrigins(getEnv("ALLOWED_ORIGINS", ""))
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{getEnv("FRONTEND_URL", "http://localhost:3000")}
	}

	return &Config{
		MongoURI:       getEnv("MONGODB_URI", getEnv("MONGO_URI", "mongodb://localhost:27017/omoide")),
		MongoDB:        getEnv("MONGO_DB", "omoide"),
		JWTSecret:      getEnv("JWT_SECRET", defaultJWTSecret),
		Port:           getEnv("PORT", "5000"),
		AllowedOrigins: allowedOrigins,
	}
}

// UsingDefaultSecret reports whether JWT_SECRET was left unset, so main
// can warn on startup.
func (c *Config) UsingDefaultSecret() bool {
	return c.JWTSecret == defaultJWTSecret
}

func parseOrigins(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
