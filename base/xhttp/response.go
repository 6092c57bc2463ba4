package xhttp

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/ProjectsTask/TraitSigner/base/errcode"
	"github.com/ProjectsTask/TraitSigner/base/kit/validator"
	"github.com/ProjectsTask/TraitSigner/base/logger/xzap"
)

// OkJson 返回 200 及 JSON 响应体
func OkJson(c *gin.Context, v interface{}) {
	c.JSON(http.StatusOK, v)
}

// Error 统一的错误出口
// 1. *errcode.Err: 按其状态码返回 {code, msg}
// 2. validator.FieldErrors: 400, 返回每个字段的错误
// 3. 其它错误: 记录日志, 返回不含内部细节的 500
func Error(c *gin.Context, err error) {
	var fieldErrs validator.FieldErrors
	if errors.As(err, &fieldErrs) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"errors": fieldErrs})
		return
	}

	var e *errcode.Err
	if errors.As(err, &e) {
		if e.HTTPCode >= http.StatusInternalServerError {
			xzap.WithContext(c.Request.Context()).Error("request failed",
				zap.String("path", c.FullPath()), zap.Error(err))
		}
		c.AbortWithStatusJSON(e.HTTPCode, e)
		return
	}

	xzap.WithContext(c.Request.Context()).Error("unexpected error",
		zap.String("path", c.FullPath()), zap.Error(err))
	c.AbortWithStatusJSON(errcode.ErrUnexpected.HTTPCode, errcode.ErrUnexpected)
}
