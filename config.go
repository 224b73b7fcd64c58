package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the server configuration loaded from the environment.
type Config struct {
	Port        string
	MongoURI    string
	MongoDBName string
	JWTSecret   string
	JWTTTL      time.Duration
	RedisURL    string
	Environment string
}

// LoadConfig reads configuration from a .env file (when present) and the
// process environment. JWT_SECRET has no default and must be set.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		MongoURI:    getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDBName: getEnv("MONGO_DB", "tapiocraft"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		JWTTTL:      12 * time.Hour,
		RedisURL:    os.Getenv("REDIS_URL"),
		Environment: getEnv("ENVIRONMENT", "development"),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
