package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/gage-technologies/mistral-go"
	"go.uber.org/zap"

	"github.com/mitre88/go-on-line/internal/adapters"
)

type LlmRepo struct {
	adapter *adapters.LlmAdapter
	log     *zap.SugaredLogger
}

func NewLlmRepository(adapter *adapters.LlmAdapter, log *zap.SugaredLogger) *LlmRepo {
	return &LlmRepo{adapter: adapter, log: log}
}

type llmResult struct {
	text string
	err  error
}

// SendRequestToLlm sends a single user message and returns the first choice.
// The client has no context support, so the call runs in its own goroutine
// and the caller stops waiting once ctx is done.
func (l *LlmRepo) SendRequestToLlm(ctx context.Context, request string) (string, error) {
	if !l.adapter.Configured() {
		return "", errors.New("llm api key is not configured")
	}

	params := mistral.DefaultChatRequestParams
	params.MaxTokens = l.adapter.MaxTokens
	params.Temperature = 0.2

	done := make(chan llmResult, 1)
	go func() {
		res, err := l.adapter.Client.Chat(l.adapter.Model, []mistral.ChatMessage{{Content: request, Role: mistral.RoleUser}}, &params)
		if err != nil {
			done <- llmResult{err: fmt.Errorf("llm chat: %w", err)}
			return
		}
		if res == nil || len(res.Choices) == 0 {
			done <- llmResult{err: errors.New("llm returned no choices")}
			return
		}
		done <- llmResult{text: res.Choices[0].Message.Content}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		if r.err != nil {
			l.log.Errorf("send request to llm: %v", r.err)
		}
		return r.text, r.err
	}
}
