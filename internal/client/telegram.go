// Telegram Bot API 클라이언트
//
// 환경변수:
//   - TELEGRAM_BOT_TOKEN: BotFather 에서 발급한 토큰
//   - TELEGRAM_API_URL: 기본값 https://api.telegram.org

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kube-rca/incident-desk/internal/config"
	"golang.org/x/time/rate"
)

// Bot API 전송 한도 (봇당 초당 30건)
const telegramMessagesPerSecond = 30

type TelegramClient struct {
	botToken   string
	apiURL     string
	httpClient *http.Client
	limiter    *rate.Limiter
}

type telegramSendMessage struct {
	ChatID string `json:"chat_id"`
	Text   string `json:"text"`
}

type telegramResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description,omitempty"`
}

func NewTelegramClient(cfg config.TelegramConfig) *TelegramClient {
	apiURL := cfg.APIURL
	if apiURL == "" {
		apiURL = "https://api.telegram.org"
	}
	return &TelegramClient{
		botToken: cfg.BotToken,
		apiURL:   strings.TrimRight(apiURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		limiter: rate.NewLimiter(rate.Limit(telegramMessagesPerSecond), 1),
	}
}

func (c *TelegramClient) IsConfigured() bool {
	return c.botToken != ""
}

// SendMessage - chat id 로 텍스트 메시지 전송
func (c *TelegramClient) SendMessage(ctx context.Context, chatID, text string) error {
	if !c.IsConfigured() {
		return fmt.Errorf("telegram bot token not configured")
	}
	if chatID == "" {
		return fmt.Errorf("telegram chat id is empty")
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("telegram send throttled: %w", err)
	}

	payload, err := json.Marshal(telegramSendMessage{ChatID: chatID, Text: text})
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", c.apiURL, c.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", withoutURL(err))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send message: %w", withoutURL(err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	var tgResp telegramResponse
	if err := json.Unmarshal(body, &tgResp); err != nil {
		return fmt.Errorf("failed to parse response (status %d): %w", resp.StatusCode, err)
	}
	if !tgResp.OK {
		return fmt.Errorf("telegram API error: %s", tgResp.Description)
	}
	return nil
}

// withoutURL - *url.Error 는 bot 토큰이 포함된 요청 URL 을 출력하므로 원인 에러만 남김
func withoutURL(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err
	}
	return err
}
