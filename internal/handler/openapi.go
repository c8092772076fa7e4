package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kube-rca/incident-desk/docs"
	"github.com/kube-rca/incident-desk/internal/model"
	"github.com/swaggo/swag"
)

// OpenAPIDoc - swag 레지스트리에 등록된 문서를 그대로 반환
func OpenAPIDoc(c *gin.Context) {
	doc, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
	if err != nil {
		writeError(c, http.StatusInternalServerError, model.ErrCodeInternal, "openapi document unavailable", err.Error())
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(doc))
}
