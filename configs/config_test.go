package config

import (
	"errors"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("QUIZ_CACHE_TTL", "")
	t.Setenv("FRONTEND_URL", "https://quiz.example.com/")

	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("expected default port 8080, got %q", cfg.Port)
	}
	if cfg.DBDriver != "postgres" {
		t.Fatalf("expected postgres driver, got %q", cfg.DBDriver)
	}
	if cfg.QuizCacheTTL != 10*time.Minute {
		t.Fatalf("expected 10m cache ttl, got %s", cfg.QuizCacheTTL)
	}
	if cfg.FrontendURL != "https://quiz.example.com" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.FrontendURL)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("LLM_TIMEOUT", "5s")
	t.Setenv("QUIZ_CACHE_TTL", "not-a-duration")

	cfg := Load()
	if cfg.DBDriver != "sqlite" {
		t.Fatalf("expected lower-cased driver, got %q", cfg.DBDriver)
	}
	if cfg.RedisDB != 3 {
		t.Fatalf("expected redis db 3, got %d", cfg.RedisDB)
	}
	if cfg.LLMTimeout != 5*time.Second {
		t.Fatalf("expected 5s llm timeout, got %s", cfg.LLMTimeout)
	}
	if cfg.QuizCacheTTL != 10*time.Minute {
		t.Fatalf("expected fallback ttl on invalid value, got %s", cfg.QuizCacheTTL)
	}
}

func TestValidateRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	if err := Load().Validate(); !errors.Is(err, ErrMissingJWTSecret) {
		t.Fatalf("expected ErrMissingJWTSecret, got %v", err)
	}

	t.Setenv("JWT_SECRET", "   ")
	if err := Load().Validate(); !errors.Is(err, ErrMissingJWTSecret) {
		t.Fatalf("expected blank secret to be rejected, got %v", err)
	}

	t.Setenv("JWT_SECRET", "s3cret")
	if err := Load().Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}
