package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kube-rca/incident-desk/internal/model"
)

type analyticsService interface {
	CategoryStats(ctx context.Context) ([]model.CategoryStats, error)
	TeamMemberStats(ctx context.Context) ([]model.TeamMemberStats, error)
	Dashboard(ctx context.Context) (*model.DashboardAnalytics, error)
}

type AnalyticsHandler struct {
	svc    analyticsService
	logger *slog.Logger
}

func NewAnalyticsHandler(svc analyticsService, logger *slog.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{svc: svc, logger: logger}
}

// GetCategoryAnalytics godoc
// @Summary Incident counts per category and status
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.CategoryStats
// @Failure 500 {object} model.ErrorResponse
// @Router /api/v1/incidents/analytics/category [get]
func (h *AnalyticsHandler) GetCategoryAnalytics(c *gin.Context) {
	res, err := h.svc.CategoryStats(c.Request.Context())
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GetTeamMemberAnalytics godoc
// @Summary Assigned and resolved counts per team member
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.TeamMemberStats
// @Failure 500 {object} model.ErrorResponse
// @Router /api/v1/incidents/analytics/team-member [get]
func (h *AnalyticsHandler) GetTeamMemberAnalytics(c *gin.Context) {
	res, err := h.svc.TeamMemberStats(c.Request.Context())
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GetDashboardAnalytics godoc
// @Summary Dashboard cards (this week vs previous week)
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.DashboardAnalytics
// @Failure 500 {object} model.ErrorResponse
// @Router /api/v1/analytics/dashboard [get]
func (h *AnalyticsHandler) GetDashboardAnalytics(c *gin.Context) {
	res, err := h.svc.Dashboard(c.Request.Context())
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
