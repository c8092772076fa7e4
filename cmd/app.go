package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kube-rca/incident-desk/internal/client"
	"github.com/kube-rca/incident-desk/internal/config"
	"github.com/kube-rca/incident-desk/internal/db"
	"github.com/kube-rca/incident-desk/internal/handler"
	"github.com/kube-rca/incident-desk/internal/logging"
	"github.com/kube-rca/incident-desk/internal/service"
)

// app - 프로세스 전체에서 공유하는 의존성
type app struct {
	cfg    config.Config
	logger *slog.Logger
	pool   *pgxpool.Pool
	repo   *db.Postgres

	incidents *service.IncidentService
	analysis  *service.AnalysisService
	team      *service.TeamService
	comments  *service.CommentService
	analytics *service.AnalyticsService
	tokens    *service.TokenVerifier
}

func newApp(ctx context.Context) (*app, error) {
	cfg := config.Load()
	logger := logging.New(os.Stdout, cfg.Log)

	pool, err := db.NewPostgresPool(ctx, cfg.Postgres)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	repo := db.New(pool)

	completer, err := client.NewCompleter(ctx, cfg.Completion, logger)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("create completion client: %w", err)
	}
	if !completer.IsConfigured() {
		logger.Warn("completion API key not set, analysis requests will fail", "provider", completer.Provider())
	}

	notifier := service.NewNotificationService(
		client.NewTelegramClient(cfg.Telegram),
		client.NewSlackClient(cfg.Slack),
		cfg.Notify.Template,
		logger,
	)

	logger.Info("configuration loaded",
		"port", cfg.Server.Port,
		"completion_provider", cfg.Completion.Provider,
		"completion_model", cfg.Completion.Model,
		"completion_api_key", logging.MaskSecret(cfg.Completion.APIKey),
		"telegram_bot_token", logging.MaskSecret(cfg.Telegram.BotToken),
		"slack_bot_token", logging.MaskSecret(cfg.Slack.BotToken),
		"auth_enabled", cfg.Auth.JWTSecret != "",
		"analyze_rate_limit", cfg.RateLimit.Max,
		"analyze_rate_window", cfg.RateLimit.Window,
	)

	return &app{
		cfg:       cfg,
		logger:    logger,
		pool:      pool,
		repo:      repo,
		incidents: service.NewIncidentService(repo, notifier, logger),
		analysis:  service.NewAnalysisService(repo, completer, logger),
		team:      service.NewTeamService(repo),
		comments:  service.NewCommentService(repo),
		analytics: service.NewAnalyticsService(repo, logger),
		tokens:    service.NewTokenVerifier(cfg.Auth),
	}, nil
}

func (a *app) router() (*gin.Engine, error) {
	return handler.NewRouter(handler.Handlers{
		Incidents: handler.NewIncidentHandler(a.incidents, a.logger),
		Analysis:  handler.NewAnalysisHandler(a.analysis, a.logger),
		Team:      handler.NewTeamHandler(a.team, a.comments, a.logger),
		Analytics: handler.NewAnalyticsHandler(a.analytics, a.logger),
	}, handler.RouterConfig{
		AllowedOrigins: a.cfg.Server.AllowedOrigins,
		TrustedProxies: a.cfg.Server.TrustedProxies,
		Limiter:        handler.NewFixedWindowLimiter(a.cfg.RateLimit.Max, a.cfg.RateLimit.Window),
		Tokens:         a.tokens,
		Logger:         a.logger,
	})
}

func (a *app) close() {
	a.pool.Close()
}
