package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"photo-studio-backend/internal/prompt"
)

type Config struct {
	// Gemini
	GeminiAPIKey    string
	GeminiBaseURL   string
	GeminiFastModel string
	GeminiProModel  string

	// Supabase (optional result archive)
	SupabaseURL           string
	SupabaseServiceKey    string
	SupabaseStorageBucket string

	// Database (optional transformation history)
	DatabaseURL string

	// Auth (optional, enabled when set)
	JWTSecret string

	// Server
	Port             string
	Environment      string
	LogLevel         string
	MaxUploadBytes   int64
	WorkspaceIdleTTL time.Duration
	FilenamePrefix   string
}

// Load reads .env when present, then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		GeminiAPIKey:    getEnv("GEMINI_API_KEY", ""),
		GeminiBaseURL:   getEnv("GEMINI_BASE_URL", ""),
		GeminiFastModel: getEnv("GEMINI_FAST_MODEL", prompt.DefaultFastModel),
		GeminiProModel:  getEnv("GEMINI_PRO_MODEL", prompt.DefaultProModel),

		SupabaseURL:           getEnv("SUPABASE_URL", ""),
		SupabaseServiceKey:    getEnv("SUPABASE_SERVICE_KEY", ""),
		SupabaseStorageBucket: getEnv("SUPABASE_STORAGE_BUCKET", "processed-images"),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		JWTSecret: getEnv("JWT_SECRET", ""),

		Port:           getEnv("PORT", "8080"),
		Environment:    getEnv("ENVIRONMENT", "development"),
		LogLevel:       getEnv("LOG_LEVEL", ""),
		FilenamePrefix: getEnv("FILENAME_PREFIX", "PhotoStudioAI"),
	}

	var err error
	if cfg.MaxUploadBytes, err = getEnvInt64("MAX_UPLOAD_BYTES", 20<<20); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if cfg.WorkspaceIdleTTL, err = getEnvDuration("WORKSPACE_IDLE_TTL", 2*time.Hour); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate rejects malformed values only. A missing GEMINI_API_KEY is not an
// error here: every transformation reports it at call time instead.
func (c *Config) Validate() error {
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("PORT must be numeric, got %q", c.Port)
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be positive")
	}
	if c.WorkspaceIdleTTL <= 0 {
		return fmt.Errorf("WORKSPACE_IDLE_TTL must be positive")
	}
	if c.SupabaseURL != "" && c.SupabaseServiceKey == "" {
		return fmt.Errorf("SUPABASE_SERVICE_KEY is required when SUPABASE_URL is set")
	}
	if c.FilenamePrefix == "" {
		return fmt.Errorf("FILENAME_PREFIX must not be empty")
	}
	return nil
}

func (c *Config) ArchiveEnabled() bool {
	return c.SupabaseURL != ""
}

func (c *Config) AuthEnabled() bool {
	return c.JWTSecret != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) (int64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return parsed, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration: %w", key, err)
	}
	return parsed, nil
}
