// Package llm wraps the third-party language models used to draft quiz questions.
package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	config "github.com/anjiri1684/aptitude_quiz/configs"
)

var (
	ErrRateLimited     = errors.New("language model rate limit reached")
	ErrEmptyCompletion = errors.New("language model returned no content")
)

// Completer sends one user prompt and returns the raw text of the reply.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// New picks the provider configured by LLM_PROVIDER.
func New(ctx context.Context, cfg config.AppConfig) (Completer, error) {
	switch cfg.LLMProvider {
	case "openai", "":
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
		return NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL, cfg.LLMTimeout), nil
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
		}
		return NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.LLMTimeout)
	default:
		return nil, fmt.Errorf("unsupported LLM_PROVIDER %q", cfg.LLMProvider)
	}
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
