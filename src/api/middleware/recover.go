package middleware

import (
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ProjectsTask/TraitSigner/base/errcode"
	"github.com/ProjectsTask/TraitSigner/base/logger/xzap"
)

// RecoverMiddleware 捕获 handler 中的 panic, 记录堆栈后返回通用 500
func RecoverMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				xzap.WithContext(c.Request.Context()).Error("panic recovered",
					zap.Any("panic", r),
					zap.String("path", c.Request.URL.Path),
					zap.ByteString("stack", debug.Stack()))
				c.AbortWithStatusJSON(errcode.ErrUnexpected.HTTPCode, errcode.ErrUnexpected)
			}
		}()
		c.Next()
	}
}
