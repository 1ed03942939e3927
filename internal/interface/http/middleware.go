package http

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/yanqian/internship-faqbot/internal/infra/config"
)

const visitorTTL = 5 * time.Minute

func errorHandlingMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		httpErr := asHTTPError(c.Errors.Last().Err)
		message := httpErr.Message
		if message == "" {
			message = httpErr.Error()
		}

		attrs := []any{"code", httpErr.Code, "status", httpErr.Status, "path", c.Request.URL.Path, "request_id", c.GetString("request_id"), "error", httpErr.Err}
		if httpErr.Status >= http.StatusInternalServerError {
			logger.Error("request failed", attrs...)
		} else {
			logger.Warn("request failed", attrs...)
		}

		c.JSON(httpErr.Status, gin.H{
			"error": gin.H{
				"code":    httpErr.Code,
				"message": message,
			},
		})
	}
}

func rateLimitMiddleware(cfg config.RateLimitConfig, logger *slog.Logger) gin.HandlerFunc {
	if !cfg.Enabled || cfg.RequestsPerMinute <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	limiter := newIPRateLimiter(cfg, time.Now)
	return func(c *gin.Context) {
		if isRetryReplay(c.Request.Context()) {
			c.Next()
			return
		}
		ip := c.ClientIP()
		wait, ok := limiter.allow(ip)
		if ok {
			c.Next()
			return
		}
		logger.Warn("rate limit exceeded", "ip", ip, "path", c.Request.URL.Path)
		c.Header("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
		abortWithError(c, NewHTTPError(http.StatusTooManyRequests, "rate_limit_exceeded", "too many requests", nil))
	}
}

// ipRateLimiter keeps one token bucket per client address.
type ipRateLimiter struct {
	mu          sync.Mutex
	visitors    map[string]*visitor
	limit       rate.Limit
	burst       int
	now         func() time.Time
	lastCleanup time.Time
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newIPRateLimiter(cfg config.RateLimitConfig, now func() time.Time) *ipRateLimiter {
	return &ipRateLimiter{
		visitors: make(map[string]*visitor),
		limit:    rate.Limit(float64(cfg.RequestsPerMinute) / 60),
		burst:    max(cfg.Burst, 1),
		now:      now,
	}
}

// allow takes a token for ip, or reports how long until one is available.
func (l *ipRateLimiter) allow(ip string) (time.Duration, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	v, ok := l.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[ip] = v
	}
	v.lastSeen = now

	if now.Sub(l.lastCleanup) > visitorTTL {
		for key, candidate := range l.visitors {
			if now.Sub(candidate.lastSeen) > visitorTTL {
				delete(l.visitors, key)
			}
		}
		l.lastCleanup = now
	}

	if v.limiter.AllowN(now, 1) {
		return 0, true
	}
	reservation := v.limiter.ReserveN(now, 1)
	wait := reservation.DelayFrom(now)
	reservation.CancelAt(now)
	return wait, false
}
