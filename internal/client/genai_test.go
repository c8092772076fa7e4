package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/kube-rca/incident-desk/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGeminiServer(t *testing.T, status int, reply string, captured *map[string]any, calls *int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*calls++
		assert.True(t, strings.HasSuffix(r.URL.Path, "/models/gemini-2.0-flash:generateContent"), r.URL.Path)
		assert.Equal(t, "gemini-key", r.Header.Get("x-goog-api-key"))
		if captured != nil {
			_ = json.NewDecoder(r.Body).Decode(captured)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(reply))
	}))
}

func newTestGeminiClient(t *testing.T, baseURL string) *GeminiClient {
	t.Helper()
	c, err := NewGeminiClient(context.Background(), config.CompletionConfig{
		Provider:    config.ProviderGemini,
		APIKey:      "gemini-key",
		BaseURL:     baseURL,
		Model:       "gemini-2.0-flash",
		Temperature: 0.7,
		MaxTokens:   500,
		Timeout:     5 * time.Second,
	}, newTestLogger())
	require.NoError(t, err)
	require.True(t, c.IsConfigured())
	return c
}

func TestGeminiComplete(t *testing.T) {
	var body map[string]any
	calls := 0
	srv := newGeminiServer(t, http.StatusOK,
		`{"candidates":[{"content":{"role":"model","parts":[{"text":"Possible Cause: A\n\nSuggested Solution: B"}]}}]}`,
		&body, &calls)
	defer srv.Close()

	c := newTestGeminiClient(t, srv.URL)
	got, err := c.Complete(context.Background(), "system prompt", "user prompt")
	require.NoError(t, err)

	assert.Equal(t, "Possible Cause: A\n\nSuggested Solution: B", got)
	assert.Equal(t, 1, calls)
	assert.Contains(t, body, "contents")
	assert.Contains(t, body, "systemInstruction")
	assert.Contains(t, body, "generationConfig")
}

func TestGeminiCompleteEmptyResponse(t *testing.T) {
	calls := 0
	srv := newGeminiServer(t, http.StatusOK, `{"candidates":[]}`, nil, &calls)
	defer srv.Close()

	c := newTestGeminiClient(t, srv.URL)
	_, err := c.Complete(context.Background(), "system", "user")
	assert.ErrorIs(t, err, ErrEmptyCompletion)
	assert.Equal(t, 1, calls)
}

func TestGeminiCompleteAPIError(t *testing.T) {
	calls := 0
	srv := newGeminiServer(t, http.StatusBadRequest,
		`{"error":{"code":400,"message":"API key not valid","status":"INVALID_ARGUMENT"}}`, nil, &calls)
	defer srv.Close()

	c := newTestGeminiClient(t, srv.URL)
	_, err := c.Complete(context.Background(), "system", "user")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "generate content request failed")
	assert.NotErrorIs(t, err, ErrEmptyCompletion)
	assert.Equal(t, 1, calls)
}

func TestGeminiNotConfigured(t *testing.T) {
	c, err := NewGeminiClient(context.Background(), config.CompletionConfig{Model: "gemini-2.0-flash"}, newTestLogger())
	require.NoError(t, err)
	assert.False(t, c.IsConfigured())

	_, err = c.Complete(context.Background(), "system", "user")
	assert.Error(t, err)
}
