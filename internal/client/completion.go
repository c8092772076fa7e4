// 원인 분석용 LLM completion 클라이언트
//
// 환경변수:
//   - COMPLETION_PROVIDER: together (default) | gemini
//   - TOGETHER_API_KEY: Together AI API Key (together)
//   - AI_API_KEY: Google GenAI API Key (gemini)
//   - COMPLETION_BASE_URL, COMPLETION_MODEL, COMPLETION_TIMEOUT
//
// 재시도는 하지 않는다. 호출 1회당 요청 1회.

package client

import (
	"context"
	"errors"
	"log/slog"

	"github.com/kube-rca/incident-desk/internal/config"
)

// ErrEmptyCompletion - 응답에 content 가 없음
var ErrEmptyCompletion = errors.New("completion response has no content")

// Completer - system/user 프롬프트로 응답 텍스트 1개를 받아오는 클라이언트
type Completer interface {
	IsConfigured() bool
	Provider() string
	Complete(ctx context.Context, system, user string) (string, error)
}

// NewCompleter - provider 설정에 맞는 Completer 생성
// API Key 가 없어도 생성은 성공하고 IsConfigured() 가 false 를 반환한다.
func NewCompleter(ctx context.Context, cfg config.CompletionConfig, logger *slog.Logger) (Completer, error) {
	switch cfg.Provider {
	case config.ProviderGemini:
		return NewGeminiClient(ctx, cfg, logger)
	default:
		return NewTogetherClient(cfg, logger), nil
	}
}
