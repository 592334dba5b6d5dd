// Package llm wraps an OpenAI-compatible chat completion endpoint used to
// translate natural-language questions into graph queries.
package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// ErrNoChoices is returned when the model answers without any completion.
var ErrNoChoices = errors.New("model returned no choices")

// Config holds configuration for the language model client.
type Config struct {
	// APIKey authenticates against the completion endpoint.
	APIKey string `mapstructure:"api_key" default:""`
	// BaseURL is the OpenAI-compatible API root.
	BaseURL string `mapstructure:"base_url" default:"https://generativelanguage.googleapis.com/v1beta/openai"`
	// Model is the chat model name.
	Model string `mapstructure:"model" default:"gemini-2.0-flash"`
}

// Generator produces a completion for a system instruction and a user prompt.
type Generator interface {
	Generate(ctx context.Context, system, prompt string) (string, error)
}

// Client is a Generator backed by go-openai.
type Client struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

// NewClient creates a chat completion client.
func NewClient(cfg Config, logger *zap.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("llm api key is not configured")
	}
	oc := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		oc.BaseURL = cfg.BaseURL
	}
	model := cfg.Model
	if model == "" {
		model = "gemini-2.0-flash"
	}
	return &Client{
		client: openai.NewClientWithConfig(oc),
		model:  model,
		logger: logger,
	}, nil
}

// Generate implements Generator.
func (c *Client) Generate(ctx context.Context, system, prompt string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrNoChoices
	}
	c.logger.Debug("Received completion",
		zap.String("model", c.model),
		zap.String("finish_reason", string(resp.Choices[0].FinishReason)))
	return resp.Choices[0].Message.Content, nil
}
