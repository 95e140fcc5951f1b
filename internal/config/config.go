package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	ServerPort string
	GinMode    string
	LogLevel   string
	LogFormat  string
	// SessionDir is where one JSON document per game session is persisted.
	SessionDir string
	// QuestionsFile is the default question list used when a session is
	// created without an explicit one.
	QuestionsFile string
	// LeaderboardFile stores the all-time player scores.
	LeaderboardFile string
	// AdminPassword is compared directly when AdminPasswordHash is unset.
	// Use cmd/hash-password to generate a bcrypt hash for production.
	AdminPassword     string
	AdminPasswordHash string
	JWTSecret         string
	JWTExpiry         time.Duration
	BcryptCost        int
	// AllowedOrigins controls HTTP CORS and WebSocket origin validation.
	// Empty slice means all origins are permitted (dev default).
	AllowedOrigins []string
}

// Load reads configuration from environment variables with sensible defaults.
// It loads .env file if present but does not fail if missing.
func Load() *Config {
	_ = godotenv.Load() // Ignore error — .env is optional

	return &Config{
		ServerPort:        getEnv("SERVER_PORT", "8080"),
		GinMode:           getEnv("GIN_MODE", "debug"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFormat:         getEnv("LOG_FORMAT", "pretty"),
		SessionDir:        getEnv("SESSION_DIR", "./data/sessions"),
		QuestionsFile:     getEnv("QUESTIONS_FILE", "./data/questions.json"),
		LeaderboardFile:   getEnv("LEADERBOARD_FILE", "./data/players.json"),
		AdminPassword:     getEnv("ADMIN_PASSWORD", "change-this-admin-password"),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		JWTSecret:         getEnv("JWT_SECRET", "change-this-to-a-secure-random-string"),
		JWTExpiry:         time.Duration(getEnvInt("JWT_EXPIRY_HOURS", 24)) * time.Hour,
		BcryptCost:        getEnvInt("BCRYPT_COST", 10),
		AllowedOrigins:    parseOrigins(getEnv("ALLOWED_ORIGINS", "")),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

// parseOrigins splits a comma-separated origins string into a trimmed slice.
// Returns nil (allow-all) if the input is empty.
func parseOrigins(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
