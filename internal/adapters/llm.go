package adapters

import (
	"github.com/gage-technologies/mistral-go"

	"github.com/mitre88/go-on-line/internal/bootstrap"
)

type LlmAdapter struct {
	Client    *mistral.MistralClient
	apiKey    string
	Model     string
	MaxTokens int
}

func NewLlmAdapter(cfg *bootstrap.Config) *LlmAdapter {
	adapter := &LlmAdapter{
		apiKey:    cfg.LlmApiKey,
		Model:     cfg.LlmModel,
		MaxTokens: cfg.LlmMaxTokens,
	}
	adapter.Client = mistral.NewMistralClientDefault(cfg.LlmApiKey)
	return adapter
}

func (a *LlmAdapter) Configured() bool {
	return a.apiKey != ""
}
