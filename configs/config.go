package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port        string
	CORSOrigins string

	DBDriver    string
	DatabaseURL string

	JWTSecret   string
	FrontendURL string

	BrevoAPIKey     string
	EmailSender     string
	EmailSenderName string

	LLMProvider   string
	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string
	GeminiAPIKey  string
	GeminiModel   string
	LLMTimeout    time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	QuizCacheTTL  time.Duration

	CloudinaryURL  string
	CompletionCron string

	AdminFullName string
	AdminEmail    string
	AdminPassword string
}

// ErrMissingJWTSecret is returned by Validate when JWT_SECRET is empty.
var ErrMissingJWTSecret = errors.New("JWT_SECRET environment variable not set")

// Validate reports settings the server cannot safely start without.
func (c AppConfig) Validate() error {
	if strings.TrimSpace(c.JWTSecret) == "" {
		return ErrMissingJWTSecret
	}
	return nil
}

var loadEnvOnce sync.Once

func loadEnv() {
	loadEnvOnce.Do(func() {
		if err := godotenv.Load(".env"); err != nil {
			log.Println("Warning: .env file not found, reading from system environment variables")
		}
	})
}

// Config returns a single environment value, loading .env on first use.
func Config(key string) string {
	loadEnv()
	return os.Getenv(key)
}

func Load() AppConfig {
	loadEnv()

	return AppConfig{
		Port:        envOr("PORT", "8080"),
		CORSOrigins: envOr("CORS_ORIGINS", "*"),

		DBDriver:    strings.ToLower(envOr("DB_DRIVER", "postgres")),
		DatabaseURL: os.Getenv("DATABASE_URL"),

		JWTSecret:   os.Getenv("JWT_SECRET"),
		FrontendURL: strings.TrimRight(envOr("FRONTEND_URL", "http://localhost:3000"), "/"),

		BrevoAPIKey:     os.Getenv("BREVO_API_KEY"),
		EmailSender:     os.Getenv("EMAIL_SENDER"),
		EmailSenderName: envOr("EMAIL_SENDER_NAME", "Aptitude Quiz"),

		LLMProvider:   strings.ToLower(envOr("LLM_PROVIDER", "openai")),
		OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:   envOr("OPENAI_MODEL", "gpt-3.5-turbo"),
		OpenAIBaseURL: os.Getenv("OPENAI_BASE_URL"),
		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		GeminiModel:   envOr("GEMINI_MODEL", "gemini-1.5-flash"),
		LLMTimeout:    envDuration("LLM_TIMEOUT", 60*time.Second),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       envInt("REDIS_DB", 0),
		QuizCacheTTL:  envDuration("QUIZ_CACHE_TTL", 10*time.Minute),

		CloudinaryURL:  os.Getenv("CLOUDINARY_URL"),
		CompletionCron: envOr("COMPLETION_CRON", "*/5 * * * *"),

		AdminFullName: envOr("ADMIN_FULL_NAME", "Administrator"),
		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
	}
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("⚠️ Invalid integer for %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("⚠️ Invalid duration for %s=%q, using %s", key, v, fallback)
		return fallback
	}
	return d
}
