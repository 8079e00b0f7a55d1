package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"go-inquiry-backend/internal/delivery/http/response"
	"go-inquiry-backend/pkg/apperror"
	"go-inquiry-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorHandler renders the last error a handler pushed with c.Error.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		log := logger.FromContext(c.Request.Context())

		var appErr *apperror.AppError
		if !errors.As(err, &appErr) {
			appErr = apperror.Internal(err)
		}

		// Never expose internal error details to clients; the cause is
		// logged here and only the label and message go out.
		if appErr.Code >= http.StatusInternalServerError {
			log.Error("Request failed",
				zap.Int("status", appErr.Code),
				zap.String("path", c.FullPath()),
				zap.Error(err),
			)
		}

		response.Error(c, appErr.Code, appErr.Label, appErr.Message, appErr.Details)
	}
}

// Recovery turns a handler panic into the standard 500 error body.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.FromContext(c.Request.Context()).Error("Handler panic recovered",
			zap.String("path", c.Request.URL.Path),
			zap.Any("panic", recovered),
			zap.Stack("stack"),
		)

		appErr := apperror.Internal(fmt.Errorf("panic: %v", recovered))
		response.Error(c, appErr.Code, appErr.Label, appErr.Message, nil)
		c.Abort()
	})
}

// NotFound renders unknown routes.
func NotFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		appErr := apperror.NotFound("The requested endpoint does not exist")
		response.Error(c, appErr.Code, appErr.Label, appErr.Message, nil)
	}
}
