package config

import (
	"fmt"
	"os"
	"time"
)

type Config struct {
	// Generation providers
	GeminiAPIKey     string
	GeminiAPIBaseURL string
	GeminiModel      string
	KieAPIKey        string
	KieAPIBaseURL    string
	KieWebhookToken  string

	// Social posting
	LateAPIKey     string
	LateAPIBaseURL string

	// Supabase
	SupabaseURL            string
	SupabasePublishableKey string
	SupabaseJWTSecret      string
	SupabaseStorageBucket  string

	// Webhook
	WebhookCallbackURL string

	// Database
	DatabaseURL string

	// Poller
	PollInterval time.Duration

	// Server
	Port        string
	Environment string
	BaseURL     string
}

func Load() (*Config, error) {
	pollInterval, err := time.ParseDuration(getEnv("POLL_INTERVAL", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid POLL_INTERVAL: %w", err)
	}

	cfg := &Config{
		GeminiAPIKey:     getEnv("GEMINI_API_KEY", ""),
		GeminiAPIBaseURL: getEnv("GEMINI_API_BASE_URL", "https://generativelanguage.googleapis.com/v1beta/"),
		GeminiModel:      getEnv("GEMINI_MODEL", "gemini-2.5-flash-image"),
		KieAPIKey:        getEnv("KIE_API_KEY", ""),
		KieAPIBaseURL:    getEnv("KIE_API_BASE_URL", "https://api.kie.ai/"),
		KieWebhookToken:  getEnv("KIE_WEBHOOK_TOKEN", ""),

		LateAPIKey:     getEnv("LATE_API_KEY", ""),
		LateAPIBaseURL: getEnv("LATE_API_BASE_URL", "https://getlate.dev/api/"),

		SupabaseURL:            getEnv("SUPABASE_URL", ""),
		SupabasePublishableKey: getEnv("SUPABASE_PUBLISHABLE_KEY", ""),
		SupabaseJWTSecret:      getEnv("SUPABASE_JWT_SECRET", ""),
		SupabaseStorageBucket:  getEnv("SUPABASE_STORAGE_BUCKET", "generated-media"),

		WebhookCallbackURL: getEnv("WEBHOOK_CALLBACK_URL", ""),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		PollInterval: pollInterval,

		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		BaseURL:     getEnv("BASE_URL", "http://localhost:8080"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.SupabaseURL == "" {
		return fmt.Errorf("SUPABASE_URL is required")
	}
	if c.SupabasePublishableKey == "" {
		return fmt.Errorf("SUPABASE_PUBLISHABLE_KEY is required")
	}
	if c.SupabaseJWTSecret == "" {
		return fmt.Errorf("SUPABASE_JWT_SECRET is required")
	}
	// Provider keys stay optional here: an adapter constructed without a
	// credential reports provider.ErrMissingCredential on first use, which
	// surfaces as 503 instead of blocking startup.
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
