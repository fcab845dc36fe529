// ABOUTME: Centralized configuration for the NPA consultant pipeline
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/adrg/xdg"
)

// Config holds all configuration for the consultant system.
type Config struct {
	// Completion service (x.ai, OpenAI-compatible)
	GrokAPIKey  string
	GrokBaseURL string
	ChatModel   string

	// Embedding service
	OpenAIKey      string
	EmbeddingModel string

	// Corpus store
	DBPath string

	// Retrieval settings
	TopK     int
	InitialK int

	// Pipeline settings
	HistoryWindow     int
	AuditContextLimit int
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		GrokAPIKey:        os.Getenv("GROK_API_KEY"),
		GrokBaseURL:       getEnv("GROK_BASE_URL", "https://api.x.ai/v1"),
		ChatModel:         getEnv("GROK_MODEL", "grok-4-fast-non-reasoning"),
		OpenAIKey:         os.Getenv("OPENAI_API_KEY"),
		EmbeddingModel:    getEnv("EMBEDDING_MODEL", "text-embedding-3-small"),
		DBPath:            getEnv("NPA_DB_PATH", defaultDBPath()),
		TopK:              getEnvInt("NPA_TOP_K", 5),
		InitialK:          getEnvInt("NPA_INITIAL_K", 150),
		HistoryWindow:     getEnvInt("NPA_HISTORY_WINDOW", 5),
		AuditContextLimit: getEnvInt("NPA_AUDIT_CONTEXT_LIMIT", 15000),
	}

	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if c.TopK <= 0 {
		return fmt.Errorf("NPA_TOP_K must be positive, got %d", c.TopK)
	}
	if c.InitialK < c.TopK {
		return fmt.Errorf("NPA_INITIAL_K must be >= NPA_TOP_K, got %d", c.InitialK)
	}
	if c.HistoryWindow < 0 {
		return fmt.Errorf("NPA_HISTORY_WINDOW must be >= 0, got %d", c.HistoryWindow)
	}
	if c.AuditContextLimit <= 0 {
		return fmt.Errorf("NPA_AUDIT_CONTEXT_LIMIT must be positive, got %d", c.AuditContextLimit)
	}
	return nil
}

// defaultDBPath returns the XDG-compliant corpus database location.
// Respects XDG_DATA_HOME environment variable override for testing.
func defaultDBPath() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		dataHome = xdg.DataHome
	}
	return filepath.Join(dataHome, "npa-consultant", "corpus.db")
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}
