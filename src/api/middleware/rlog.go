package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ProjectsTask/TraitSigner/base/logger/xzap"
)

const HeaderRequestID = "X-Request-Id"

// RLog 为每个请求分配 request id 并在结束时记录访问日志
// 上游已带 X-Request-Id 时沿用
func RLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Request = c.Request.WithContext(xzap.ContextWithRequestID(c.Request.Context(), requestID))
		c.Header(HeaderRequestID, requestID)

		c.Next()

		xzap.WithContext(c.Request.Context()).Info("access",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
