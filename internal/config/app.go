package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// AppConfig holds server configuration loaded from environment variables
type AppConfig struct {
	Port string
	// PGURL selects the PostgreSQL profile store; the file store is used when empty
	PGURL      string
	ProfileDir string
	LogLevel   log.Level
}

// LoadAppConfig reads configuration from the environment. A .env file in the working
// directory is loaded first; variables already set in the shell take precedence.
func LoadAppConfig() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	dir := os.Getenv("PROFILE_DIR")
	if dir == "" {
		dir = "./profiles"
	}

	level, err := ParseLogLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		return nil, err
	}

	return &AppConfig{
		Port:       port,
		PGURL:      os.Getenv("PG_URL"),
		ProfileDir: dir,
		LogLevel:   level,
	}, nil
}

// ParseLogLevel parses a logrus level name; empty means info.
func ParseLogLevel(s string) (log.Level, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return log.InfoLevel, nil
	}
	level, err := log.ParseLevel(s)
	if err != nil {
		return log.InfoLevel, fmt.Errorf("invalid LOG_LEVEL %q: %w", s, err)
	}
	return level, nil
}
