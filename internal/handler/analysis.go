package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kube-rca/incident-desk/internal/model"
	"github.com/kube-rca/incident-desk/internal/service"
)

type analysisService interface {
	Analyze(ctx context.Context, incidentID string) (*model.AnalysisRecord, error)
}

type AnalysisHandler struct {
	svc    analysisService
	logger *slog.Logger
}

func NewAnalysisHandler(svc analysisService, logger *slog.Logger) *AnalysisHandler {
	return &AnalysisHandler{svc: svc, logger: logger}
}

// AnalyzeIncident godoc
// @Summary Analyze incident
// @Description Returns the cached analysis while title and description are unchanged, otherwise asks the completion API once.
// @Tags analysis
// @Produce json
// @Security BearerAuth
// @Param id path string true "Incident ID"
// @Success 200 {object} model.AnalysisRecord
// @Failure 404 {object} model.ErrorResponse
// @Failure 429 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/v1/incidents/{id}/analyze [post]
func (h *AnalysisHandler) AnalyzeIncident(c *gin.Context) {
	id := c.Param("id")

	// 클라이언트가 끊겨도 분석/캐시 저장은 끝까지 진행
	ctx := context.WithoutCancel(c.Request.Context())

	res, err := h.svc.Analyze(ctx, id)
	if err != nil {
		// 저장되지 않은 결과도 분석 자체는 성공이므로 그대로 응답
		if errors.Is(err, service.ErrAnalysisNotCached) && res != nil && !res.Saved() {
			h.logger.Warn("returning uncached analysis", "incident_id", id, "error", err)
			c.JSON(http.StatusOK, res)
			return
		}
		writeServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
