package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kube-rca/incident-desk/internal/model"
)

// 헬스체크 엔드포인트
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} model.PingResponse
// @Router /ping [get]
func Ping(c *gin.Context) {
	c.JSON(http.StatusOK, model.PingResponse{Message: "pong"})
}

// 루트 엔드포인트
// @Summary API index
// @Tags health
// @Produce json
// @Success 200 {object} model.RootResponse
// @Router / [get]
func Root(c *gin.Context) {
	c.JSON(http.StatusOK, model.RootResponse{
		Status:  "ok",
		Message: "API is running",
		Endpoints: map[string][]string{
			"incidents": {
				"GET /api/v1/incidents",
				"POST /api/v1/incidents",
				"GET /api/v1/incidents/:id",
				"PUT /api/v1/incidents/:id",
				"PUT /api/v1/incidents/:id/status",
				"PUT /api/v1/incidents/:id/assign",
				"PUT /api/v1/incidents/:id/category",
				"POST /api/v1/incidents/:id/analyze",
			},
			"analytics": {
				"GET /api/v1/incidents/analytics/category",
				"GET /api/v1/incidents/analytics/team-member",
				"GET /api/v1/analytics/dashboard",
			},
			"team": {
				"GET /api/v1/team-members",
				"GET /api/v1/team-members/:id",
			},
			"comments": {
				"GET /api/v1/comments",
				"POST /api/v1/comments",
			},
		},
	})
}
