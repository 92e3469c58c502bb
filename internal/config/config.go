// Package config loads process configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/alexanderramin/dealdesk/internal/llm"
	"github.com/joho/godotenv"
)

const appName = "dealdesk"

type Config struct {
	DBPath      string
	WorkspaceID string
	ActorID     string
	HTTPAddr    string
	LogLevel    string
	LogFormat   string // "text", "json", or "" to pick by terminal
	LLM         llm.LLMConfig
}

// Load reads a .env file from the working directory when present, then
// resolves every setting from DEALDESK_* variables.
func Load() Config {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv resolves settings without touching .env files.
func FromEnv() Config {
	return Config{
		DBPath:      getEnv("DEALDESK_DB", DefaultDBPath()),
		WorkspaceID: getEnv("DEALDESK_WORKSPACE", "default"),
		ActorID:     getEnv("DEALDESK_ACTOR", currentUser()),
		HTTPAddr:    getEnv("DEALDESK_HTTP_ADDR", ":8080"),
		LogLevel:    strings.ToLower(getEnv("DEALDESK_LOG_LEVEL", "info")),
		LogFormat:   strings.ToLower(getEnv("DEALDESK_LOG_FORMAT", "")),
		LLM:         llm.LoadConfig(),
	}
}

// DefaultDBPath places the database under the XDG data directory.
func DefaultDBPath() string {
	return filepath.Join(xdg.DataHome, appName, appName+".db")
}

func currentUser() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "rep"
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
