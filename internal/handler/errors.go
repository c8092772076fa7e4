package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kube-rca/incident-desk/internal/model"
	"github.com/kube-rca/incident-desk/internal/service"
)

func writeError(c *gin.Context, status int, code, message, details string) {
	c.JSON(status, model.ErrorResponse{Error: code, Message: message, Details: details})
}

func writeBindError(c *gin.Context, err error) {
	writeError(c, http.StatusBadRequest, model.ErrCodeValidation, "invalid request body", err.Error())
}

// writeServiceError - 서비스 에러 분류를 HTTP 상태 코드로 매핑
func writeServiceError(c *gin.Context, logger *slog.Logger, err error) {
	message, details := err.Error(), ""
	var svcErr *service.Error
	if errors.As(err, &svcErr) {
		message, details = svcErr.Message, svcErr.Detail()
	}

	switch {
	case errors.Is(err, service.ErrNotFound):
		writeError(c, http.StatusNotFound, model.ErrCodeNotFound, message, details)
	case errors.Is(err, service.ErrValidation):
		writeError(c, http.StatusBadRequest, model.ErrCodeValidation, message, details)
	case errors.Is(err, service.ErrUnauthorized):
		writeError(c, http.StatusUnauthorized, model.ErrCodeUnauthorized, "unauthorized", "")
	case errors.Is(err, service.ErrConfiguration):
		logger.Error("service misconfigured", "path", c.FullPath(), "error", err)
		writeError(c, http.StatusInternalServerError, model.ErrCodeConfiguration, message, details)
	case errors.Is(err, service.ErrUpstream):
		logger.Error("upstream failure", "path", c.FullPath(), "error", err)
		writeError(c, http.StatusInternalServerError, model.ErrCodeUpstream, message, details)
	default:
		logger.Error("unhandled error", "path", c.FullPath(), "error", err)
		writeError(c, http.StatusInternalServerError, model.ErrCodeInternal, "internal server error", "")
	}
}
