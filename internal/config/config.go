package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds the configuration for the application.
type Config struct {
	Port         string
	DatabasePath string

	// LLM backends. A missing Gemini key disables ingredient suggestions
	// and the recipe importer unless a Groq key is provided instead.
	GeminiAPIKey string
	GroqAPIKey   string

	// CORS origins for the browser frontend. "*" by default.
	AllowedOrigins []string

	// Telegram Config (required only for the bot binary)
	TelegramBotToken       string
	TelegramWebhookURL     string
	TelegramAllowedUserIDs []int64
}

// NewFromEnv creates a new Config object from environment variables. All
// variables are optional; features degrade when their keys are absent.
func NewFromEnv() (*Config, error) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	dbPath := os.Getenv("DATABASE_PATH")
	if dbPath == "" {
		dbPath = "data/planner.db"
	}

	origins := []string{"*"}
	if raw := os.Getenv("ALLOWED_ORIGINS"); raw != "" {
		origins = splitList(raw)
	}

	var allowedIDs []int64
	if raw := os.Getenv("TELEGRAM_ALLOWED_USER_IDS"); raw != "" {
		for _, part := range splitList(raw) {
			id, err := strconv.ParseInt(part, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("TELEGRAM_ALLOWED_USER_IDS: invalid id %q", part)
			}
			allowedIDs = append(allowedIDs, id)
		}
	}

	return &Config{
		Port:                   port,
		DatabasePath:           dbPath,
		GeminiAPIKey:           os.Getenv("GEMINI_API_KEY"),
		GroqAPIKey:             os.Getenv("GROQ_API_KEY"),
		AllowedOrigins:         origins,
		TelegramBotToken:       os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramWebhookURL:     os.Getenv("TELEGRAM_WEBHOOK_URL"),
		TelegramAllowedUserIDs: allowedIDs,
	}, nil
}

// HasLLM reports whether any text generation backend is configured.
func (c *Config) HasLLM() bool {
	return c.GeminiAPIKey != "" || c.GroqAPIKey != ""
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
