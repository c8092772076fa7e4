package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kube-rca/incident-desk/internal/model"
)

type teamService interface {
	List(ctx context.Context) ([]model.TeamMember, error)
	Get(ctx context.Context, id string) (*model.TeamMember, error)
}

type commentService interface {
	List(ctx context.Context) ([]model.Comment, error)
	Create(ctx context.Context, req model.CreateCommentRequest) (*model.Comment, error)
}

type TeamHandler struct {
	team     teamService
	comments commentService
	logger   *slog.Logger
}

func NewTeamHandler(team teamService, comments commentService, logger *slog.Logger) *TeamHandler {
	return &TeamHandler{team: team, comments: comments, logger: logger}
}

// ListTeamMembers godoc
// @Summary List team members
// @Tags team
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.TeamMember
// @Failure 500 {object} model.ErrorResponse
// @Router /api/v1/team-members [get]
func (h *TeamHandler) ListTeamMembers(c *gin.Context) {
	res, err := h.team.List(c.Request.Context())
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GetTeamMember godoc
// @Summary Get team member
// @Tags team
// @Produce json
// @Security BearerAuth
// @Param id path string true "Team member ID"
// @Success 200 {object} model.TeamMember
// @Failure 404 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/v1/team-members/{id} [get]
func (h *TeamHandler) GetTeamMember(c *gin.Context) {
	res, err := h.team.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// ListComments godoc
// @Summary List comments
// @Tags comments
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Comment
// @Failure 500 {object} model.ErrorResponse
// @Router /api/v1/comments [get]
func (h *TeamHandler) ListComments(c *gin.Context) {
	res, err := h.comments.List(c.Request.Context())
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// CreateComment godoc
// @Summary Add comment
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.CreateCommentRequest true "Name and comment"
// @Success 201 {object} model.Comment
// @Failure 400 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/v1/comments [post]
func (h *TeamHandler) CreateComment(c *gin.Context) {
	var req model.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	res, err := h.comments.Create(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}
