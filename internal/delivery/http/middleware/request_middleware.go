package middleware

import (
	"context"
	"time"

	"go-inquiry-backend/internal/delivery/http/response"
	"go-inquiry-backend/internal/domain"
	"go-inquiry-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const requestIDHeader = "X-Request-ID"

// RequestID assigns every request an id, echoes it in X-Request-ID and
// attaches a request-scoped logger to the request context.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" || len(id) > 64 {
			id = uuid.NewString()
		}

		c.Set(response.ContextKeyRequestID, id)
		c.Header(requestIDHeader, id)

		ctx := c.Request.Context()
		ctx = context.WithValue(ctx, domain.KeyRequestID, id)
		ctx = logger.WithLogger(ctx, logger.Log.With(zap.String("request_id", id)))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// AccessLog writes one line per request. skipPaths are not logged.
func AccessLog(skipPaths ...string) gin.HandlerFunc {
	skip := make(map[string]struct{}, len(skipPaths))
	for _, p := range skipPaths {
		skip[p] = struct{}{}
	}

	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		if _, ok := skip[path]; ok {
			return
		}

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
			zap.String("user_agent", c.Request.UserAgent()),
		}

		log := logger.FromContext(c.Request.Context())
		switch {
		case status >= 500:
			log.Error("HTTP request", fields...)
		case status >= 400:
			log.Warn("HTTP request", fields...)
		default:
			log.Info("HTTP request", fields...)
		}
	}
}
