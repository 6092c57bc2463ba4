package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ProjectsTask/TraitSigner/base/errcode"
	"github.com/ProjectsTask/TraitSigner/base/logger/xzap"
	"github.com/ProjectsTask/TraitSigner/base/xhttp"
	"github.com/ProjectsTask/TraitSigner/src/service/svc"
)

const HeaderAuthToken = "x-auth-token"

// AdminAuth 校验管理员 JWT
// token 从 x-auth-token 或 Authorization: Bearer 读取, claims 中 role 必须为 admin
func AdminAuth(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(HeaderAuthToken)
		if token == "" {
			if bearer := c.GetHeader("Authorization"); strings.HasPrefix(bearer, "Bearer ") {
				token = strings.TrimSpace(strings.TrimPrefix(bearer, "Bearer "))
			}
		}
		if token == "" {
			xhttp.Error(c, errcode.ErrTokenMissing)
			return
		}

		claims, err := svcCtx.Jwt.Validate(token)
		if err != nil {
			xzap.WithContext(c.Request.Context()).Info("reject admin token", zap.Error(err))
			xhttp.Error(c, errcode.ErrTokenInvalid)
			return
		}
		if !claims.IsAdmin() {
			xhttp.Error(c, errcode.ErrAdminOnly)
			return
		}

		c.Next()
	}
}
