package middleware

import (
	"log/slog"

	"unibordima/services/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

// RequestID tạo request id nếu client chưa gửi, gắn logger theo request vào context
func RequestID(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		ctx := logger.NewContext(c.Request.Context(), log.With(slog.String("request_id", requestID)))
		c.Request = c.Request.WithContext(ctx)
		c.Writer.Header().Set(RequestIDHeader, requestID)

		c.Next()
	}
}
