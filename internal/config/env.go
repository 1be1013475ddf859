package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Env holds process settings read from the environment.
type Env struct {
	Port           string
	Mode           string
	ConfigPath     string
	SyncBackend    string
	RedisURL       string
	AllowedOrigins []string
}

// LoadEnv reads .env if present, then the process environment.
func LoadEnv() Env {
	// A missing .env is fine; deployments inject variables directly.
	_ = godotenv.Load()

	return Env{
		Port:           getEnv("API_PORT", "8080"),
		Mode:           getEnv("API_ENV", "development"),
		ConfigPath:     getEnv("ALC_CONFIG", ""),
		SyncBackend:    getEnv("ALC_SYNC_BACKEND", ""),
		RedisURL:       getEnv("REDIS_URL", ""),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "")),
	}
}

// ApplyEnv lets the environment override the sync section of c.
func (c *Config) ApplyEnv(e Env) {
	if e.SyncBackend != "" {
		c.Sync.Backend = e.SyncBackend
	}
	if e.RedisURL != "" {
		c.Sync.RedisURL = e.RedisURL
	}
}

// LoadOrDefault loads path, or returns Default() when path is empty.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// Helper to get env var with default
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
