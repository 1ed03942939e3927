package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yanqian/internship-faqbot/internal/infra/config"
)

const requestIDHeader = "X-Request-ID"

// NewRouter wires up the HTTP handlers and returns a configured server.
func NewRouter(cfg *config.Config, handler *Handler) *http.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(
		gin.Recovery(),
		requestID(),
		requestLogger(handler.logger),
		corsMiddleware(cfg.HTTP.AllowedOrigins),
		errorHandlingMiddleware(handler.logger),
		rateLimitMiddleware(cfg.HTTP.RateLimit, handler.logger),
	)

	router.GET("/healthz", handler.Health)

	api := router.Group("/api/v1")
	{
		api.POST("/faq", handler.Ask)
		api.GET("/faq/entries", handler.Entries)
		api.GET("/faq/trending", handler.Trending)
		api.POST("/chat", handler.Chat)
	}

	return &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        withRetry(router, cfg.HTTP.Retry, handler.logger),
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Writer.Header().Set(requestIDHeader, id)
		c.Next()
	}
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("http request", "method", c.Request.Method, "path", c.Request.URL.Path, "status", c.Writer.Status(), "latency_ms", latency.Milliseconds(), "request_id", c.GetString("request_id"))
	}
}
