// 환경변수 기반 설정 로딩
//
// 작업 디렉터리에 .env 파일이 있으면 먼저 읽고(이미 설정된 환경변수는 덮어쓰지 않음),
// 이후 os.Getenv로 값을 채운다.

package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	ProviderTogether = "together"
	ProviderGemini   = "gemini"
)

type Config struct {
	Server     ServerConfig
	Log        LogConfig
	Postgres   PostgresConfig
	Completion CompletionConfig
	Telegram   TelegramConfig
	Slack      SlackConfig
	Auth       AuthConfig
	RateLimit  RateLimitConfig
	Notify     NotifyConfig
}

// ServerConfig - TrustedProxies 가 비어 있으면 X-Forwarded-For 를 무시하고 접속 주소를 사용
type ServerConfig struct {
	Port           string
	AllowedOrigins []string
	TrustedProxies []string
}

type LogConfig struct {
	Level  string
	Format string
}

type PostgresConfig struct {
	DatabaseURL string
	Host        string
	Port        string
	User        string
	Password    string
	Database    string
	SSLMode     string
}

// CompletionConfig - 원인 분석용 LLM 설정
type CompletionConfig struct {
	Provider    string
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float32
	MaxTokens   int
	Timeout     time.Duration
}

type TelegramConfig struct {
	BotToken string
	APIURL   string
}

type SlackConfig struct {
	BotToken  string
	ChannelID string
	APIURL    string
}

// AuthConfig - 외부 인증 제공자가 발급한 access token 검증용 secret
// 비어 있으면 토큰 검증을 하지 않는다.
type AuthConfig struct {
	JWTSecret string
}

// RateLimitConfig - analyze 엔드포인트 고정 윈도우 제한
type RateLimitConfig struct {
	Max    int
	Window time.Duration
}

type NotifyConfig struct {
	Template string
}

func Load() Config {
	_ = godotenv.Load()

	provider := strings.ToLower(getenv("COMPLETION_PROVIDER", ProviderTogether))

	return Config{
		Server: ServerConfig{
			Port:           getenv("PORT", "8080"),
			AllowedOrigins: splitList(getenv("CORS_ALLOWED_ORIGINS", "*")),
			TrustedProxies: splitList(os.Getenv("TRUSTED_PROXIES")),
		},
		Log: LogConfig{
			Level:  getenv("LOG_LEVEL", "info"),
			Format: getenv("LOG_FORMAT", "text"),
		},
		Postgres: PostgresConfig{
			DatabaseURL: os.Getenv("DATABASE_URL"),
			Host:        getenv("PGHOST", "localhost"),
			Port:        getenv("PGPORT", "5432"),
			User:        os.Getenv("PGUSER"),
			Password:    os.Getenv("PGPASSWORD"),
			Database:    os.Getenv("PGDATABASE"),
			SSLMode:     getenv("PGSSLMODE", "disable"),
		},
		Completion: loadCompletion(provider),
		Telegram: TelegramConfig{
			BotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
			APIURL:   getenv("TELEGRAM_API_URL", "https://api.telegram.org"),
		},
		Slack: SlackConfig{
			BotToken:  os.Getenv("SLACK_BOT_TOKEN"),
			ChannelID: os.Getenv("SLACK_CHANNEL_ID"),
			APIURL:    getenv("SLACK_API_URL", "https://slack.com/api"),
		},
		Auth: AuthConfig{
			JWTSecret: os.Getenv("AUTH_JWT_SECRET"),
		},
		RateLimit: RateLimitConfig{
			Max:    getenvInt("ANALYZE_RATE_LIMIT_MAX", 100),
			Window: getenvDuration("ANALYZE_RATE_LIMIT_WINDOW", 15*time.Minute),
		},
		Notify: NotifyConfig{
			Template: os.Getenv("NOTIFY_TEMPLATE"),
		},
	}
}

func loadCompletion(provider string) CompletionConfig {
	cfg := CompletionConfig{
		Provider:    provider,
		Temperature: float32(getenvFloat("COMPLETION_TEMPERATURE", 0.7)),
		MaxTokens:   getenvInt("COMPLETION_MAX_TOKENS", 500),
		Timeout:     getenvDuration("COMPLETION_TIMEOUT", 120*time.Second),
	}

	switch provider {
	case ProviderGemini:
		cfg.APIKey = os.Getenv("AI_API_KEY")
		cfg.BaseURL = os.Getenv("COMPLETION_BASE_URL")
		cfg.Model = getenv("COMPLETION_MODEL", "gemini-2.0-flash")
	default:
		cfg.Provider = ProviderTogether
		cfg.APIKey = os.Getenv("TOGETHER_API_KEY")
		cfg.BaseURL = getenv("COMPLETION_BASE_URL", "https://api.together.xyz/v1")
		cfg.Model = getenv("COMPLETION_MODEL", "deepseek-ai/deepseek-r1-distill-llama-70b")
	}
	return cfg
}

func getenv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	val, err := strconv.Atoi(os.Getenv(key))
	if err != nil || val <= 0 {
		return fallback
	}
	return val
}

func getenvFloat(key string, fallback float64) float64 {
	val, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return fallback
	}
	return val
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	val, err := time.ParseDuration(os.Getenv(key))
	if err != nil || val <= 0 {
		return fallback
	}
	return val
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
