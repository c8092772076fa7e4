package client

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/kube-rca/incident-desk/internal/config"
	"github.com/sashabaranov/go-openai"
)

// TogetherClient - OpenAI 호환 chat completions API 클라이언트 (Together AI)
type TogetherClient struct {
	client      *openai.Client
	apiKey      string
	model       string
	temperature float32
	maxTokens   int
	logger      *slog.Logger
}

func NewTogetherClient(cfg config.CompletionConfig, logger *slog.Logger) *TogetherClient {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	clientCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	return &TogetherClient{
		client:      openai.NewClientWithConfig(clientCfg),
		apiKey:      cfg.APIKey,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		logger:      logger,
	}
}

func (c *TogetherClient) IsConfigured() bool {
	return c.apiKey != ""
}

func (c *TogetherClient) Provider() string {
	return config.ProviderTogether
}

func (c *TogetherClient) Complete(ctx context.Context, system, user string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	}

	c.logger.Debug("sending chat completion request", "provider", c.Provider(), "model", c.model)

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("chat completion request failed: %w", err)
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", ErrEmptyCompletion
	}

	c.logger.Debug("received chat completion", "provider", c.Provider(), "finish_reason", resp.Choices[0].FinishReason)
	return resp.Choices[0].Message.Content, nil
}
