package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kube-rca/incident-desk/internal/metrics"
	"github.com/kube-rca/incident-desk/internal/model"
)

const rateLimitMessage = "Too many requests, please try again later"

// FixedWindowLimiter - key(클라이언트 주소)별 고정 윈도우 카운터
//
// 윈도우는 key 의 첫 요청 시점부터 시작하고, 만료되면 카운트를 0 으로 되돌린다.
// 만료된 항목은 윈도우 길이마다 한 번씩 정리한다.
type FixedWindowLimiter struct {
	max    int
	window time.Duration
	now    func() time.Time

	mu        sync.Mutex
	windows   map[string]*windowCounter
	lastSweep time.Time
}

type windowCounter struct {
	start time.Time
	count int
}

// LimitResult - 응답 헤더에 쓰는 현재 윈도우 상태
type LimitResult struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

func NewFixedWindowLimiter(max int, window time.Duration) *FixedWindowLimiter {
	return &FixedWindowLimiter{
		max:     max,
		window:  window,
		now:     time.Now,
		windows: make(map[string]*windowCounter),
	}
}

func (l *FixedWindowLimiter) Allow(key string) LimitResult {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)

	w, ok := l.windows[key]
	if !ok || !now.Before(w.start.Add(l.window)) {
		w = &windowCounter{start: now}
		l.windows[key] = w
	}

	res := LimitResult{Limit: l.max, ResetAt: w.start.Add(l.window)}
	if w.count >= l.max {
		return res
	}

	w.count++
	res.Allowed = true
	res.Remaining = l.max - w.count
	return res
}

func (l *FixedWindowLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < l.window {
		return
	}
	for key, w := range l.windows {
		if !now.Before(w.start.Add(l.window)) {
			delete(l.windows, key)
		}
	}
	l.lastSweep = now
}

// RateLimit - 제한 초과 시 429, 대기열 없음
func RateLimit(limiter *FixedWindowLimiter, route string, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		res := limiter.Allow(c.ClientIP())

		resetSeconds := int(res.ResetAt.Sub(limiter.now()).Round(time.Second).Seconds())
		if resetSeconds < 0 {
			resetSeconds = 0
		}

		c.Header("RateLimit-Limit", strconv.Itoa(res.Limit))
		c.Header("RateLimit-Remaining", strconv.Itoa(res.Remaining))
		c.Header("RateLimit-Reset", strconv.Itoa(resetSeconds))

		if !res.Allowed {
			metrics.RateLimitRejections.WithLabelValues(route).Inc()
			logger.Warn("rate limit exceeded", "route", route, "client_ip", c.ClientIP())
			c.Header("Retry-After", strconv.Itoa(resetSeconds))
			writeError(c, http.StatusTooManyRequests, model.ErrCodeRateLimited, "rate limit exceeded", rateLimitMessage)
			c.Abort()
			return
		}
		c.Next()
	}
}
