package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: no .env file loaded, using process environment: %v", err)
	}
}

func GetEnv(key string) string {
	return os.Getenv(key)
}

// GetEnvDefault returns the variable or fallback when it is unset
func GetEnvDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// GetEnvDuration reads a Go duration such as "168h"
func GetEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Warning: invalid duration %s=%q, using %s", key, value, fallback)
		return fallback
	}
	return d
}

func GetEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return b
}

// DefaultJWTSecret is the development signing key; it is public and refused outside dev
const DefaultJWTSecret = "change_me_in_production"

// Settings is the resolved runtime configuration
type Settings struct {
	Env            string
	Port           string
	LogLevel       string
	LogDir         string
	JWTSecret      string
	JWTTTL         time.Duration
	LockTTL        time.Duration
	CacheTTL       time.Duration
	CompletionCron string
	CookieSecure   bool
}

func LoadSettings() Settings {
	return Settings{
		Env:            GetEnvDefault("ENV", "dev"),
		Port:           GetEnvDefault("PORT", "8083"),
		LogLevel:       GetEnvDefault("LOG_LEVEL", "info"),
		LogDir:         GetEnv("LOG_DIR"),
		JWTSecret:      GetEnvDefault("JWT_SECRET", DefaultJWTSecret),
		JWTTTL:         GetEnvDuration("JWT_TTL", 7*24*time.Hour),
		LockTTL:        GetEnvDuration("ROOM_LOCK_TTL", 10*time.Second),
		CacheTTL:       GetEnvDuration("ROOM_CACHE_TTL", 5*time.Minute),
		CompletionCron: GetEnvDefault("COMPLETION_CRON", "0 0 * * *"),
		CookieSecure:   GetEnvBool("COOKIE_SECURE", true),
	}
}

// Validate rejects settings the server must not start with
func (s Settings) Validate() error {
	if s.Env != "dev" && s.JWTSecret == DefaultJWTSecret {
		return fmt.Errorf("JWT_SECRET must be set when ENV=%s", s.Env)
	}
	return nil
}
