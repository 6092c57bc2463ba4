package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/ProjectsTask/TraitSigner/src/api/middleware"
	"github.com/ProjectsTask/TraitSigner/src/service/svc"
)

func NewRouter(svcCtx *svc.ServerCtx) *gin.Engine {
	// 设置 Gin 为发布模式 (ReleaseMode)
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(middleware.RecoverMiddleware()) // 处理 Panic
	r.Use(middleware.RLog())              // 记录 API 访问日志

	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", middleware.HeaderAuthToken},
		ExposeHeaders:    []string{"Content-Length", "Content-Type", middleware.HeaderRequestID},
		AllowCredentials: true,
		MaxAge:           1 * time.Hour,
	}))
	loadV1(r, svcCtx) // 加载 v1 版本的路由分组

	return r
}
