package config

import (
	"testing"
)

func TestNewFromEnv(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		t.Setenv("PORT", "")
		t.Setenv("DATABASE_PATH", "")
		t.Setenv("ALLOWED_ORIGINS", "")
		t.Setenv("TELEGRAM_ALLOWED_USER_IDS", "")

		cfg, err := NewFromEnv()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cfg.Port != "8080" {
			t.Errorf("Expected default port '8080', got '%s'", cfg.Port)
		}
		if cfg.DatabasePath != "data/planner.db" {
			t.Errorf("Expected default database path, got '%s'", cfg.DatabasePath)
		}
		if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "*" {
			t.Errorf("Expected default origins ['*'], got %v", cfg.AllowedOrigins)
		}
		if cfg.HasLLM() {
			t.Error("Expected no LLM backend without API keys")
		}
	})

	t.Run("Explicit", func(t *testing.T) {
		t.Setenv("PORT", "9000")
		t.Setenv("DATABASE_PATH", "/tmp/test.db")
		t.Setenv("GEMINI_API_KEY", "gemini_key")
		t.Setenv("ALLOWED_ORIGINS", "http://localhost:5173, https://planner.test")
		t.Setenv("TELEGRAM_ALLOWED_USER_IDS", "123, 456")

		cfg, err := NewFromEnv()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cfg.Port != "9000" {
			t.Errorf("Expected port '9000', got '%s'", cfg.Port)
		}
		if cfg.DatabasePath != "/tmp/test.db" {
			t.Errorf("Expected database path '/tmp/test.db', got '%s'", cfg.DatabasePath)
		}
		if !cfg.HasLLM() {
			t.Error("Expected LLM backend with Gemini key set")
		}
		if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://planner.test" {
			t.Errorf("Expected 2 trimmed origins, got %v", cfg.AllowedOrigins)
		}
		if len(cfg.TelegramAllowedUserIDs) != 2 || cfg.TelegramAllowedUserIDs[0] != 123 {
			t.Errorf("Expected user ids [123 456], got %v", cfg.TelegramAllowedUserIDs)
		}
	})

	t.Run("InvalidUserID", func(t *testing.T) {
		t.Setenv("TELEGRAM_ALLOWED_USER_IDS", "123,abc")

		_, err := NewFromEnv()
		if err == nil {
			t.Fatal("Expected an error for malformed user id, got nil")
		}
	})
}
