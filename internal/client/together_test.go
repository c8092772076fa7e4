package client

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/kube-rca/incident-desk/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type chatRequest struct {
	Model       string  `json:"model"`
	Temperature float32 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
	Messages    []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func newCompletionServer(t *testing.T, reply string, captured *chatRequest, calls *int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*calls++
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		if captured != nil {
			_ = json.NewDecoder(r.Body).Decode(captured)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(reply))
	}))
}

func testCompletionConfig(baseURL string) config.CompletionConfig {
	return config.CompletionConfig{
		Provider:    config.ProviderTogether,
		APIKey:      "test-key",
		BaseURL:     baseURL,
		Model:       "deepseek-ai/deepseek-r1-distill-llama-70b",
		Temperature: 0.7,
		MaxTokens:   500,
		Timeout:     5 * time.Second,
	}
}

func TestTogetherComplete(t *testing.T) {
	var req chatRequest
	calls := 0
	srv := newCompletionServer(t, `{"id":"1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"Possible Cause: x\n\nSuggested Solution: y"},"finish_reason":"stop"}]}`, &req, &calls)
	defer srv.Close()

	c := NewTogetherClient(testCompletionConfig(srv.URL+"/v1"), newTestLogger())
	require.True(t, c.IsConfigured())

	out, err := c.Complete(context.Background(), "system prompt", "user prompt")
	require.NoError(t, err)
	assert.Equal(t, "Possible Cause: x\n\nSuggested Solution: y", out)
	assert.Equal(t, 1, calls)

	assert.Equal(t, "deepseek-ai/deepseek-r1-distill-llama-70b", req.Model)
	assert.InDelta(t, 0.7, req.Temperature, 0.0001)
	assert.Equal(t, 500, req.MaxTokens)
	require.Len(t, req.Messages, 2)
	assert.Equal(t, "system", req.Messages[0].Role)
	assert.Equal(t, "system prompt", req.Messages[0].Content)
	assert.Equal(t, "user", req.Messages[1].Role)
	assert.Equal(t, "user prompt", req.Messages[1].Content)
}

func TestTogetherCompleteEmptyChoices(t *testing.T) {
	calls := 0
	srv := newCompletionServer(t, `{"id":"1","object":"chat.completion","choices":[]}`, nil, &calls)
	defer srv.Close()

	c := NewTogetherClient(testCompletionConfig(srv.URL+"/v1"), newTestLogger())
	_, err := c.Complete(context.Background(), "s", "u")
	assert.ErrorIs(t, err, ErrEmptyCompletion)
}

func TestTogetherCompleteHTTPErrorNotRetried(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"boom","type":"server_error"}}`))
	}))
	defer srv.Close()

	c := NewTogetherClient(testCompletionConfig(srv.URL+"/v1"), newTestLogger())
	_, err := c.Complete(context.Background(), "s", "u")
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestNewCompleterSelectsProvider(t *testing.T) {
	ctx := context.Background()

	together, err := NewCompleter(ctx, config.CompletionConfig{Provider: config.ProviderTogether}, newTestLogger())
	require.NoError(t, err)
	assert.Equal(t, config.ProviderTogether, together.Provider())
	assert.False(t, together.IsConfigured())

	gemini, err := NewCompleter(ctx, config.CompletionConfig{Provider: config.ProviderGemini, Model: "gemini-2.0-flash"}, newTestLogger())
	require.NoError(t, err)
	assert.Equal(t, config.ProviderGemini, gemini.Provider())
	assert.False(t, gemini.IsConfigured())

	_, err = gemini.Complete(ctx, "s", "u")
	assert.Error(t, err)
}
