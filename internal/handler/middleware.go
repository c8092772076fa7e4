package handler

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kube-rca/incident-desk/internal/model"
)

const authUserKey = "auth_user"

type tokenParser interface {
	Enabled() bool
	ParseAccessToken(token string) (*model.AuthUser, error)
}

// AuthMiddleware - 토큰 검증이 꺼져 있으면 그대로 통과
func AuthMiddleware(tokens tokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokens == nil || !tokens.Enabled() || c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			abortUnauthorized(c)
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if token == "" {
			abortUnauthorized(c)
			return
		}

		user, err := tokens.ParseAccessToken(token)
		if err != nil {
			abortUnauthorized(c)
			return
		}

		c.Set(authUserKey, user)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context) {
	writeError(c, http.StatusUnauthorized, model.ErrCodeUnauthorized, "unauthorized", "")
	c.Abort()
}

func GetAuthUser(c *gin.Context) *model.AuthUser {
	if value, ok := c.Get(authUserKey); ok {
		if user, ok := value.(*model.AuthUser); ok {
			return user
		}
	}
	return nil
}

// CORSMiddleware - "*" 가 포함되면 모든 Origin 허용
func CORSMiddleware(allowedOrigins []string, allowCredentials bool) gin.HandlerFunc {
	allowAll := false
	originMap := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		trimmed := strings.TrimSpace(origin)
		if trimmed == "" {
			continue
		}
		if trimmed == "*" {
			allowAll = true
			continue
		}
		originMap[trimmed] = struct{}{}
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			_, ok := originMap[origin]
			if ok || allowAll {
				if allowAll && !allowCredentials {
					c.Header("Access-Control-Allow-Origin", "*")
				} else {
					c.Header("Access-Control-Allow-Origin", origin)
					c.Header("Vary", "Origin")
				}
				if allowCredentials {
					c.Header("Access-Control-Allow-Credentials", "true")
				}
				c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")
				c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			}
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// RequestLogger - 요청 1건당 로그 1줄
func RequestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		attrs := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		}
		// 토큰 검증을 통과한 요청만 user_id 가 있음
		if user := GetAuthUser(c); user != nil {
			attrs = append(attrs, "user_id", user.ID)
		}
		switch {
		case status >= http.StatusInternalServerError:
			logger.Error("request completed", attrs...)
		case status >= http.StatusBadRequest:
			logger.Warn("request completed", attrs...)
		default:
			logger.Info("request completed", attrs...)
		}
	}
}
