package llm

import (
	"fmt"

	"github.com/nagampere/MLIT-Summary-Bot/internal/config"
	"github.com/nagampere/MLIT-Summary-Bot/internal/ports"
)

// New selects the summarization backend once per run from configuration.
func New(cfg config.ProviderConfig) (ports.Summarizer, error) {
	switch cfg.Kind {
	case config.ProviderClaude:
		return NewClaudeClient(cfg.Claude), nil
	case config.ProviderGemini:
		return NewGeminiClient(cfg.Gemini), nil
	case config.ProviderOpenAI, "":
		return NewOpenAIClient(cfg.OpenAI), nil
	default:
		return nil, fmt.Errorf("unknown provider kind %q", cfg.Kind)
	}
}
