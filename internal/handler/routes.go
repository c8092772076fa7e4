package handler

import (
	"fmt"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/kube-rca/incident-desk/internal/metrics"
)

type Handlers struct {
	Incidents *IncidentHandler
	Analysis  *AnalysisHandler
	Team      *TeamHandler
	Analytics *AnalyticsHandler
}

type RouterConfig struct {
	AllowedOrigins []string
	TrustedProxies []string
	Limiter        *FixedWindowLimiter
	Tokens         tokenParser
	Logger         *slog.Logger
}

// NewRouter - 전체 라우트 등록
//
// TrustedProxies 에 없는 peer 가 보낸 X-Forwarded-For/X-Real-IP 는 무시하므로
// rate limit key(ClientIP)는 기본적으로 접속 주소다.
func NewRouter(h Handlers, cfg RouterConfig) (*gin.Engine, error) {
	router := gin.New()
	if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, fmt.Errorf("invalid trusted proxies: %w", err)
	}
	router.Use(gin.Recovery(), RequestLogger(cfg.Logger), CORSMiddleware(cfg.AllowedOrigins, false))

	router.GET("/", Root)
	router.GET("/ping", Ping)
	router.GET("/openapi.json", OpenAPIDoc)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := router.Group("/api/v1")
	api.Use(AuthMiddleware(cfg.Tokens))

	incidents := api.Group("/incidents")
	incidents.GET("", h.Incidents.ListIncidents)
	incidents.POST("", h.Incidents.CreateIncident)
	incidents.GET("/analytics/category", h.Analytics.GetCategoryAnalytics)
	incidents.GET("/analytics/team-member", h.Analytics.GetTeamMemberAnalytics)
	incidents.GET("/:id", h.Incidents.GetIncident)
	incidents.PUT("/:id", h.Incidents.UpdateIncident)
	incidents.PUT("/:id/status", h.Incidents.UpdateIncidentStatus)
	incidents.PUT("/:id/assign", h.Incidents.AssignIncident)
	incidents.PUT("/:id/category", h.Incidents.UpdateIncidentCategory)
	incidents.POST("/:id/analyze", RateLimit(cfg.Limiter, "analyze", cfg.Logger), h.Analysis.AnalyzeIncident)

	api.GET("/analytics/dashboard", h.Analytics.GetDashboardAnalytics)

	api.GET("/team-members", h.Team.ListTeamMembers)
	api.GET("/team-members/:id", h.Team.GetTeamMember)

	api.GET("/comments", h.Team.ListComments)
	api.POST("/comments", h.Team.CreateComment)

	return router, nil
}
