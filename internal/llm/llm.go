// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package llm wraps the chat-completion service used to write itinerary
// narratives. The itinerary builder only needs prompt-in, text-out;
// everything else (model choice, retries, endpoints) stays here.
//
// Implements: prd006-itinerary (R4); docs/ARCHITECTURE § Itinerary.
package llm

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/pdiddy/trip-engine/pkg/types"
)

// backoffBase controls the delay between completion retries. Tests
// override this to avoid real sleeps.
var backoffBase = 2 * time.Second

// TextService produces completion text for a prompt.
type TextService interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// OpenAI is the production TextService backed by a chat-completion API.
type OpenAI struct {
	client *openai.Client
	model  string
}

// NewOpenAI builds a client from config. A custom BaseURL points the
// client at any OpenAI-compatible endpoint.
func NewOpenAI(cfg types.LLMConfig) *OpenAI {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	model := cfg.Model
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAI{client: openai.NewClientWithConfig(clientCfg), model: model}
}

// Complete sends one prompt and returns the completion text. Low
// temperature keeps the structured-JSON portions of itinerary output
// parseable.
func (o *OpenAI) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       o.model,
		Temperature: 0.1,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// CompleteWithRetry retries transient completion failures with a doubling
// backoff. maxRetries <= 0 selects the default of 3 retries.
func CompleteWithRetry(ctx context.Context, svc TextService, prompt string, maxRetries int) (string, error) {
	if maxRetries <= 0 {
		maxRetries = 3
	}
	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			backoff := backoffBase * time.Duration(1<<(attempt-1))
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(backoff):
			}
		}
		text, err := svc.Complete(ctx, prompt)
		if err == nil {
			return text, nil
		}
		lastErr = err
	}
	return "", fmt.Errorf("completion failed after %d attempts: %w", maxRetries+1, lastErr)
}
