package client

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/kube-rca/incident-desk/internal/config"
	"google.golang.org/genai"
)

// GeminiClient - Google GenAI GenerateContent 기반 Completer
type GeminiClient struct {
	client      *genai.Client
	model       string
	temperature float32
	maxTokens   int32
	logger      *slog.Logger
}

// NewGeminiClient - AI_API_KEY 가 없으면 client 없이 생성 (IsConfigured=false)
func NewGeminiClient(ctx context.Context, cfg config.CompletionConfig, logger *slog.Logger) (*GeminiClient, error) {
	c := &GeminiClient{
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   int32(cfg.MaxTokens),
		logger:      logger,
	}
	if cfg.APIKey == "" {
		return c, nil
	}

	clientCfg := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: cfg.Timeout},
	}
	// 프록시/게이트웨이 경유 시 (비어 있으면 SDK 기본 엔드포인트)
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	c.client = client
	return c, nil
}

func (c *GeminiClient) IsConfigured() bool {
	return c.client != nil
}

func (c *GeminiClient) Provider() string {
	return config.ProviderGemini
}

func (c *GeminiClient) Complete(ctx context.Context, system, user string) (string, error) {
	if c.client == nil {
		return "", fmt.Errorf("gemini client is not configured")
	}

	res, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(user), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		Temperature:       genai.Ptr(c.temperature),
		MaxOutputTokens:   c.maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("generate content request failed: %w", err)
	}
	if res == nil {
		return "", ErrEmptyCompletion
	}

	text := res.Text()
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyCompletion
	}
	return text, nil
}
