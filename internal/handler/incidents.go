package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kube-rca/incident-desk/internal/model"
)

type incidentService interface {
	List(ctx context.Context, filter model.IncidentFilter) ([]model.Incident, error)
	Get(ctx context.Context, id string) (*model.Incident, error)
	Create(ctx context.Context, req model.CreateIncidentRequest) (*model.Incident, error)
	Update(ctx context.Context, id string, req model.UpdateIncidentRequest) (*model.Incident, error)
	UpdateStatus(ctx context.Context, id string, req model.UpdateStatusRequest) (*model.Incident, error)
	UpdateCategory(ctx context.Context, id string, req model.UpdateCategoryRequest) (*model.Incident, error)
	Assign(ctx context.Context, id string, req model.AssignIncidentRequest) (*model.Incident, error)
}

type IncidentHandler struct {
	svc    incidentService
	logger *slog.Logger
}

func NewIncidentHandler(svc incidentService, logger *slog.Logger) *IncidentHandler {
	return &IncidentHandler{svc: svc, logger: logger}
}

// ListIncidents godoc
// @Summary List incidents
// @Description Newest first. Empty filters are ignored.
// @Tags incidents
// @Produce json
// @Security BearerAuth
// @Param status query string false "Open | In Progress | Closed"
// @Param priority query string false "Low | Medium | High | Critical"
// @Param category query string false "Hardware | Software | Services"
// @Param assigned_to query string false "Team member ID"
// @Success 200 {array} model.Incident
// @Failure 400 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/v1/incidents [get]
func (h *IncidentHandler) ListIncidents(c *gin.Context) {
	var filter model.IncidentFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		writeError(c, http.StatusBadRequest, model.ErrCodeValidation, "invalid query parameters", err.Error())
		return
	}

	res, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GetIncident godoc
// @Summary Get incident
// @Tags incidents
// @Produce json
// @Security BearerAuth
// @Param id path string true "Incident ID"
// @Success 200 {object} model.Incident
// @Failure 404 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/v1/incidents/{id} [get]
func (h *IncidentHandler) GetIncident(c *gin.Context) {
	res, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// CreateIncident godoc
// @Summary Create incident
// @Description status defaults to Open, priority defaults to Medium.
// @Tags incidents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.CreateIncidentRequest true "Incident payload"
// @Success 201 {object} model.Incident
// @Failure 400 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/v1/incidents [post]
func (h *IncidentHandler) CreateIncident(c *gin.Context) {
	var req model.CreateIncidentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	res, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// UpdateIncident godoc
// @Summary Update incident
// @Description Only provided fields change. An empty assigned_to clears the assignee.
// @Tags incidents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Incident ID"
// @Param request body model.UpdateIncidentRequest true "Incident update payload"
// @Success 200 {object} model.Incident
// @Failure 400 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/v1/incidents/{id} [put]
func (h *IncidentHandler) UpdateIncident(c *gin.Context) {
	var req model.UpdateIncidentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	res, err := h.svc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// UpdateIncidentStatus godoc
// @Summary Update incident status
// @Tags incidents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Incident ID"
// @Param request body model.UpdateStatusRequest true "New status"
// @Success 200 {object} model.Incident
// @Failure 400 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/v1/incidents/{id}/status [put]
func (h *IncidentHandler) UpdateIncidentStatus(c *gin.Context) {
	var req model.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	res, err := h.svc.UpdateStatus(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// UpdateIncidentCategory godoc
// @Summary Update incident category
// @Tags incidents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Incident ID"
// @Param request body model.UpdateCategoryRequest true "New category"
// @Success 200 {object} model.Incident
// @Failure 400 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/v1/incidents/{id}/category [put]
func (h *IncidentHandler) UpdateIncidentCategory(c *gin.Context) {
	var req model.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	res, err := h.svc.UpdateCategory(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// AssignIncident godoc
// @Summary Assign incident
// @Description null or empty assigned_to clears the assignee. The assignee is notified asynchronously.
// @Tags incidents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Incident ID"
// @Param request body model.AssignIncidentRequest true "Team member ID"
// @Success 200 {object} model.Incident
// @Failure 400 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/v1/incidents/{id}/assign [put]
func (h *IncidentHandler) AssignIncident(c *gin.Context) {
	var req model.AssignIncidentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	res, err := h.svc.Assign(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
